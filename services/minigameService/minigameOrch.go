package minigameService

import (
	"fmt"
	"log"
	"math/rand"
	"strings"

	"github.com/bwmarrin/discordgo"
)

// One-shot games carried over from the game menu. None of these hold any
// session state or touch the ledger; each press is a single roll.

var (
	rpsHands     = []string{"Scissors", "Rock", "Paper"}
	shellLayouts = []string{"OXX", "XOX", "XXO"}
	slotSymbols  = []string{"❤️", "💔", "💖", "💝", "🔴", "🔥", "🦋", "💥"}
)

func rollDie() int {
	return rand.Intn(6) + 1
}

func oddEvenLabel(roll int) string {
	if roll%2 == 1 {
		return "Odd"
	}
	return "Even"
}

func spinReels() []string {
	reels := make([]string, 3)
	for i := range reels {
		reels[i] = slotSymbols[rand.Intn(len(slotSymbols))]
	}
	return reels
}

// slotVerdict classifies a spin by how many distinct symbols it shows.
func slotVerdict(reels []string) string {
	distinct := make(map[string]bool, len(reels))
	for _, r := range reels {
		distinct[r] = true
	}
	switch len(distinct) {
	case 1:
		return "💥 Jackpot!"
	case 2:
		return "💎 Double!"
	default:
		return "❌ Bust!"
	}
}

func HandleRPS(s *discordgo.Session, i *discordgo.InteractionCreate) {
	respond(s, i, fmt.Sprintf("✂️ Result: %s", rpsHands[rand.Intn(len(rpsHands))]))
}

func HandleOddEven(s *discordgo.Session, i *discordgo.InteractionCreate) {
	respond(s, i, fmt.Sprintf("⚪ Result: %s", oddEvenLabel(rollDie())))
}

func HandleShell(s *discordgo.Session, i *discordgo.InteractionCreate) {
	respond(s, i, fmt.Sprintf("🎲 Shell game: %s", shellLayouts[rand.Intn(len(shellLayouts))]))
}

func HandleSlots(s *discordgo.Session, i *discordgo.InteractionCreate) {
	reels := spinReels()
	respond(s, i, strings.Join(reels, " ")+"\n"+slotVerdict(reels))
}

func HandleDice(s *discordgo.Session, i *discordgo.InteractionCreate) {
	respond(s, i, fmt.Sprintf("<@%s> 🎲 %d", i.Member.User.ID, rollDie()))
}

func respond(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
		},
	})
	if err != nil {
		log.Printf("Error sending interaction: %v", err)
	}
}
