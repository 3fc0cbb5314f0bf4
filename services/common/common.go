package common

import (
	"fmt"
	"log"

	"cardTableBot/models"

	"github.com/bwmarrin/discordgo"
	"gorm.io/gorm"
)

func IsAdmin(s *discordgo.Session, i *discordgo.InteractionCreate) bool {
	// Use member data from the interaction - no privileged intent needed
	if i.Member == nil {
		return false
	}

	for _, roleID := range i.Member.Roles {
		role, err := s.State.Role(i.GuildID, roleID)
		if err != nil || role == nil {
			roles, err := s.GuildRoles(i.GuildID)
			if err != nil {
				log.Printf("Error fetching roles from API: %v", err)
				continue
			}

			for _, r := range roles {
				if r.ID == roleID {
					role = r
					break
				}
			}

			if role == nil {
				log.Printf("Role %s not found in guild %s", roleID, i.GuildID)
				continue
			}
		}

		if role.Permissions&discordgo.PermissionAdministrator != 0 {
			return true
		}
	}

	return false
}

func SendError(s *discordgo.Session, i *discordgo.InteractionCreate, err error, db *gorm.DB) {
	fmt.Println(err)

	guildId := ""
	if i != nil {
		guildId = i.GuildID
		localErr := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseChannelMessageWithSource,
			Data: &discordgo.InteractionResponseData{
				Content: fmt.Sprintf("An error occured: %v", err),
				Flags:   discordgo.MessageFlagsEphemeral,
			},
		})
		if localErr != nil {
			log.Printf("Error sending interaction: %v", localErr)
		}
	}
	LogError(db, guildId, err)
}

// LogError records an operational error without touching Discord. Used where
// no interaction is in flight, e.g. a failed ledger write during settlement.
func LogError(db *gorm.DB, guildId string, err error) {
	errLog := models.ErrorLog{
		GuildID: guildId,
		Message: fmt.Sprintf("%v", err),
	}
	db.Create(&errLog)
}

// RespondEphemeral answers an interaction with a message only the actor sees.
func RespondEphemeral(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		log.Printf("Error sending interaction: %v", err)
	}
}

// GetUsernameFromUser extracts username from a discordgo.User object
func GetUsernameFromUser(user *discordgo.User) string {
	if user == nil {
		return "Unknown User"
	}
	username := user.GlobalName
	if username == "" {
		username = user.Username
	}
	if username == "" {
		return "Unknown User"
	}
	return username
}

// UpdateUserUsername updates the username field in the database if it's different
func UpdateUserUsername(db *gorm.DB, user *models.User, username string) {
	if user.Username == nil || *user.Username != username {
		user.Username = &username
		db.Save(user)
	}
}

// GetUsernameWithDB gets username from database first, then falls back to state cache
func GetUsernameWithDB(db *gorm.DB, s *discordgo.Session, guildId string, userId string) string {
	var user models.User
	if err := db.Where("discord_id = ? AND guild_id = ?", userId, guildId).First(&user).Error; err == nil {
		if user.Username != nil && *user.Username != "" {
			return *user.Username
		}
	}

	if guild, err := s.State.Guild(guildId); err == nil && guild != nil {
		for _, member := range guild.Members {
			if member.User != nil && member.User.ID == userId {
				return GetUsernameFromUser(member.User)
			}
		}
	}

	return "Unknown User"
}
