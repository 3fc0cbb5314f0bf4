package scheduler_jobs

import (
	"fmt"
	"time"

	"cardTableBot/services/blackjackService"

	"github.com/bwmarrin/discordgo"
	"gorm.io/gorm"
)

const staleAfter = 30 * time.Minute

// CheckStaleTables announces tables nobody has acted on for a while. An
// abandoned table blocks its channel until the round ends, so the notice
// nudges the seated players; the table itself is left alone.
func CheckStaleTables(s *discordgo.Session, db *gorm.DB) error {
	for _, table := range blackjackService.Tables.Stale(staleAfter) {
		idle := int(table.IdleFor().Minutes())
		msg := fmt.Sprintf("⏳ This table has been idle for %d minutes. Seated players, finish the round so the channel can start a new game.", idle)
		if _, err := s.ChannelMessageSend(table.ChannelID, msg); err != nil {
			return fmt.Errorf("error sending stale table notice to channel %s: %v", table.ChannelID, err)
		}
	}
	return nil
}
