package services

import (
	"log"
	"strconv"
	"strings"

	"cardTableBot/services/blackjackService"
	"cardTableBot/services/minigameService"

	"github.com/bwmarrin/discordgo"
	"gorm.io/gorm"
)

func HandleComponentInteraction(s *discordgo.Session, i *discordgo.InteractionCreate, db *gorm.DB) {
	customID := i.MessageComponentData().CustomID

	switch customID {
	case "menu_bj":
		blackjackService.OpenTableSetup(s, i, db, blackjackService.VariantOpen)
		return
	case "menu_blind":
		blackjackService.OpenTableSetup(s, i, db, blackjackService.VariantBlind)
		return
	case "menu_rps":
		minigameService.HandleRPS(s, i)
		return
	case "menu_odd":
		minigameService.HandleOddEven(s, i)
		return
	case "menu_shell":
		minigameService.HandleShell(s, i)
		return
	case "menu_slot":
		minigameService.HandleSlots(s, i)
		return
	case "menu_dice":
		minigameService.HandleDice(s, i)
		return
	case "menu_register":
		RegisterUser(s, i, db)
		return
	case "bj_join":
		blackjackService.PromptJoinModal(s, i, db)
		return
	}

	if strings.HasPrefix(customID, "bj_count_") {
		parts := strings.Split(strings.TrimPrefix(customID, "bj_count_"), "_")
		if len(parts) != 2 {
			log.Printf("Error parsing table size customID %q", customID)
			return
		}
		seats, err := strconv.Atoi(parts[1])
		if err != nil {
			log.Printf("Error parsing table size customID %q: %v", customID, err)
			return
		}
		blackjackService.CreateTable(s, i, db, blackjackService.Variant(parts[0]), seats)
		return
	}

	if strings.HasPrefix(customID, "bj_hit_") {
		blackjackService.HandleHit(s, i, db, strings.TrimPrefix(customID, "bj_hit_"))
		return
	}

	if strings.HasPrefix(customID, "bj_stand_") {
		blackjackService.HandleStand(s, i, db, strings.TrimPrefix(customID, "bj_stand_"))
		return
	}

	if strings.HasPrefix(customID, "bj_ace_") {
		parts := strings.Split(strings.TrimPrefix(customID, "bj_ace_"), "_")
		if len(parts) != 3 {
			log.Printf("Error parsing ace customID %q", customID)
			return
		}
		index, err1 := strconv.Atoi(parts[1])
		value, err2 := strconv.Atoi(parts[2])
		if err1 != nil || err2 != nil {
			log.Printf("Error parsing ace customID %q", customID)
			return
		}
		blackjackService.HandleAce(s, i, db, parts[0], index, value)
		return
	}
}

func HandleModalSubmit(s *discordgo.Session, i *discordgo.InteractionCreate, db *gorm.DB) {
	customID := i.ModalSubmitData().CustomID

	if customID == "bj_join_submit" {
		blackjackService.SubmitJoin(s, i, db)
		return
	}

	log.Printf("Unhandled modal submit customID %q", customID)
}
