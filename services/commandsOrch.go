package services

import (
	"cardTableBot/services/common"
	"cardTableBot/services/guildService"

	"github.com/bwmarrin/discordgo"
	"gorm.io/gorm"
)

func HandleSlashCommand(s *discordgo.Session, i *discordgo.InteractionCreate, db *gorm.DB) {
	switch i.ApplicationCommandData().Name {
	case "setup":
		ShowGameMenu(s, i, db)
	case "register":
		RegisterUser(s, i, db)
	case "balance":
		ShowBalance(s, i, db)
	case "leaderboard":
		ShowLeaderboard(s, i, db)
	case "give-chips":
		GiveChips(s, i, db)
	case "set-starting-balance":
		guildService.SetStartingBalance(s, i, db)
	}
}

// ShowGameMenu posts the game menu for the channel. The blackjack buttons
// open a table; the rest are one-shot minigames.
func ShowGameMenu(s *discordgo.Session, i *discordgo.InteractionCreate, db *gorm.DB) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: "Pick a game.",
			Components: []discordgo.MessageComponent{
				discordgo.ActionsRow{Components: []discordgo.MessageComponent{
					discordgo.Button{Label: "Blackjack", Style: discordgo.DangerButton, CustomID: "menu_bj"},
					discordgo.Button{Label: "Blind Blackjack", Style: discordgo.DangerButton, CustomID: "menu_blind"},
				}},
				discordgo.ActionsRow{Components: []discordgo.MessageComponent{
					discordgo.Button{Label: "Rock Paper Scissors", Style: discordgo.PrimaryButton, CustomID: "menu_rps"},
					discordgo.Button{Label: "Odd or Even", Style: discordgo.PrimaryButton, CustomID: "menu_odd"},
					discordgo.Button{Label: "Shell Game", Style: discordgo.PrimaryButton, CustomID: "menu_shell"},
				}},
				discordgo.ActionsRow{Components: []discordgo.MessageComponent{
					discordgo.Button{Label: "Slots", Style: discordgo.SuccessButton, CustomID: "menu_slot"},
					discordgo.Button{Label: "Dice", Style: discordgo.SuccessButton, CustomID: "menu_dice"},
				}},
				discordgo.ActionsRow{Components: []discordgo.MessageComponent{
					discordgo.Button{Label: "Register", Style: discordgo.SecondaryButton, CustomID: "menu_register"},
				}},
			},
		},
	})
	if err != nil {
		common.SendError(s, i, err, db)
	}
}

func RegisterCommands(s *discordgo.Session) error {
	commands := []*discordgo.ApplicationCommand{
		{
			Name:        "setup",
			Description: "Post the game menu in this channel",
		},
		{
			Name:        "register",
			Description: "Register yourself and receive your starting chips",
		},
		{
			Name:        "balance",
			Description: "Show your current chip balance",
		},
		{
			Name:        "leaderboard",
			Description: "Show the top players by chips",
		},
		{
			Name:        "give-chips",
			Description: "🛡 Give chips to a player - ADMIN ONLY",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Name:        "user",
					Description: "User to give chips to",
					Type:        discordgo.ApplicationCommandOptionUser,
					Required:    true,
				},
				{
					Name:        "amount",
					Description: "Amount of chips to give",
					Type:        discordgo.ApplicationCommandOptionInteger,
					Required:    true,
				},
			},
		},
		{
			Name:        "set-starting-balance",
			Description: "🛡 Set the starting balance for new players - ADMIN ONLY",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Name:        "amount",
					Description: "Chips granted on registration",
					Type:        discordgo.ApplicationCommandOptionInteger,
					Required:    true,
				},
			},
		},
	}

	for _, cmd := range commands {
		_, err := s.ApplicationCommandCreate(s.State.User.ID, "", cmd)
		if err != nil {
			return err
		}
	}
	return nil
}
