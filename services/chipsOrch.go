package services

import (
	"fmt"

	"cardTableBot/models"
	"cardTableBot/services/common"
	"cardTableBot/services/guildService"
	"cardTableBot/services/ledgerService"

	"github.com/bwmarrin/discordgo"
	"gorm.io/gorm"
)

// RegisterUser is the explicit registration command. Registration is
// idempotent; repeat calls just restate the current balance.
func RegisterUser(s *discordgo.Session, i *discordgo.InteractionCreate, db *gorm.DB) {
	guild, err := guildService.GetGuildInfo(s, db, i.GuildID, i.ChannelID)
	if err != nil {
		common.SendError(s, i, fmt.Errorf("error getting guild info: %v", err), db)
		return
	}

	username := common.GetUsernameFromUser(i.Member.User)
	user, _, err := ledgerService.EnsureUser(db, i.GuildID, i.Member.User.ID, username, guild.StartingBalance)
	if err != nil {
		common.SendError(s, i, err, db)
		return
	}

	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: fmt.Sprintf("✅ **%s** registered (balance: %d chips)", username, user.Balance),
		},
	})
	if err != nil {
		common.SendError(s, i, err, db)
	}
}

func ShowBalance(s *discordgo.Session, i *discordgo.InteractionCreate, db *gorm.DB) {
	guild, err := guildService.GetGuildInfo(s, db, i.GuildID, i.ChannelID)
	if err != nil {
		common.SendError(s, i, fmt.Errorf("error getting guild info: %v", err), db)
		return
	}

	username := common.GetUsernameFromUser(i.Member.User)
	balance, err := ledgerService.GetBalance(db, i.GuildID, i.Member.User.ID, username, guild.StartingBalance)
	if err != nil {
		common.SendError(s, i, err, db)
		return
	}

	common.RespondEphemeral(s, i, fmt.Sprintf("You have **%d** chips.", balance))
}

func GiveChips(s *discordgo.Session, i *discordgo.InteractionCreate, db *gorm.DB) {
	if !common.IsAdmin(s, i) {
		common.RespondEphemeral(s, i, "You are not authorized to use this command.")
		return
	}

	guild, err := guildService.GetGuildInfo(s, db, i.GuildID, i.ChannelID)
	if err != nil {
		common.SendError(s, i, fmt.Errorf("error getting guild info: %v", err), db)
		return
	}

	options := i.ApplicationCommandData().Options
	targetUser := options[0].UserValue(s)
	amount := int(options[1].IntValue())

	if amount <= 0 {
		common.RespondEphemeral(s, i, "Please enter a valid amount greater than zero.")
		return
	}

	username := common.GetUsernameFromUser(targetUser)
	balance, err := ledgerService.AddBalance(db, i.GuildID, targetUser.ID, username, guild.StartingBalance, amount)
	if err != nil {
		common.SendError(s, i, err, db)
		return
	}

	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: fmt.Sprintf("Successfully gave **%d** chips to **%s** (new balance: %d).", amount, username, balance),
		},
	})
	if err != nil {
		common.SendError(s, i, err, db)
	}
}

func ShowLeaderboard(s *discordgo.Session, i *discordgo.InteractionCreate, db *gorm.DB) {
	guildID := i.GuildID

	var users []models.User
	db.Where("guild_id = ?", guildID).Order("balance desc").Limit(10).Find(&users)

	if len(users) == 0 {
		err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseChannelMessageWithSource,
			Data: &discordgo.InteractionResponseData{
				Content: "No players found on the leaderboard.",
			},
		})
		if err != nil {
			return
		}
		return
	}

	description := ""
	for idx, user := range users {
		username := common.GetUsernameWithDB(db, s, guildID, user.DiscordID)
		description += fmt.Sprintf("**%d. %s** - %d chips\n", idx+1, username, user.Balance)
	}

	embed := &discordgo.MessageEmbed{
		Title:       "🏆 Leaderboard",
		Description: description,
		Color:       0x00ff00,
	}

	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
		},
	})
	if err != nil {
		return
	}
}
