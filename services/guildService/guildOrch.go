package guildService

import (
	"fmt"

	"cardTableBot/models"
	"cardTableBot/services/common"
	"cardTableBot/services/ledgerService"

	"github.com/bwmarrin/discordgo"
	"gorm.io/gorm"
)

func GetGuildInfo(s *discordgo.Session, db *gorm.DB, guildID string, channelId string) (*models.Guild, error) {
	var guild models.Guild
	guildResult := db.Where("guild_id = ?", guildID).First(&guild)

	if guildResult.RowsAffected == 0 {
		guildInfo, err := s.Guild(guildID)
		if err != nil {
			return nil, err
		}
		newGuild := &models.Guild{
			GuildID:         guildID,
			GameChannelID:   channelId,
			GuildName:       guildInfo.Name,
			StartingBalance: ledgerService.DefaultStartingBalance,
		}
		newGuildResult := db.Create(newGuild)
		if newGuildResult.Error != nil {
			return nil, newGuildResult.Error
		} else {
			guild = *newGuild
		}
	} else {
		checkGuild, err := s.Guild(guildID)
		if err != nil {
			common.SendError(s, nil, err, db)
		} else {
			if guild.GuildName != checkGuild.Name {
				guild.GuildName = checkGuild.Name
				db.Save(&guild)
			}
		}
	}

	return &guild, nil
}

func SetStartingBalance(s *discordgo.Session, i *discordgo.InteractionCreate, db *gorm.DB) {
	if !common.IsAdmin(s, i) {
		common.RespondEphemeral(s, i, "You are not authorized to use this command.")
		return
	}

	options := i.ApplicationCommandData().Options
	amount := int(options[0].IntValue())
	if amount < 0 {
		common.RespondEphemeral(s, i, "Starting balance cannot be negative.")
		return
	}

	guild, err := GetGuildInfo(s, db, i.GuildID, i.ChannelID)
	if err != nil {
		common.SendError(s, i, fmt.Errorf("error getting guild info: %v", err), db)
		return
	}

	guild.StartingBalance = amount
	db.Save(guild)

	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: fmt.Sprintf("Starting balance for new players is now **%d** chips.", amount),
		},
	})
	if err != nil {
		common.SendError(s, i, err, db)
	}
}
