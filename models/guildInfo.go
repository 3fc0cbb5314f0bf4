package models

import "gorm.io/gorm"

type Guild struct {
	gorm.Model
	ID              uint `gorm:"primaryKey"`
	GuildID         string
	GuildName       string
	GameChannelID   string
	StartingBalance int `gorm:"default:100"`
}
