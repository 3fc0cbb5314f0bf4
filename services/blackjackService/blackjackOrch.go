package blackjackService

import (
	"fmt"
	"log"
	"strconv"
	"strings"

	"cardTableBot/services/common"
	"cardTableBot/services/guildService"
	"cardTableBot/services/ledgerService"

	"github.com/bwmarrin/discordgo"
	"gorm.io/gorm"
)

func variantLabel(variant Variant) string {
	if variant == VariantBlind {
		return "Blind Blackjack"
	}
	return "Blackjack"
}

// OpenTableSetup handles the game-menu button for either variant: if the
// channel is free it offers the table-size choice, otherwise the actor gets
// an ephemeral rejection.
func OpenTableSetup(s *discordgo.Session, i *discordgo.InteractionCreate, db *gorm.DB, variant Variant) {
	if _, err := Tables.Get(i.ChannelID); err == nil {
		common.RespondEphemeral(s, i, "⚠️ A game is already running in this channel.")
		return
	}

	var buttons []discordgo.MessageComponent
	for n := 2; n <= 4; n++ {
		buttons = append(buttons, discordgo.Button{
			Label:    fmt.Sprintf("%d players", n),
			Style:    discordgo.PrimaryButton,
			CustomID: fmt.Sprintf("bj_count_%s_%d", variant, n),
		})
	}

	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content:    fmt.Sprintf("🃏 %s — choose the table size", variantLabel(variant)),
			Components: []discordgo.MessageComponent{discordgo.ActionsRow{Components: buttons}},
		},
	})
	if err != nil {
		common.SendError(s, i, err, db)
	}
}

// CreateTable handles the table-size button and opens the table.
func CreateTable(s *discordgo.Session, i *discordgo.InteractionCreate, db *gorm.DB, variant Variant, seats int) {
	if seats < 2 || seats > 4 {
		common.RespondEphemeral(s, i, "Tables seat 2 to 4 players.")
		return
	}

	deck := Decks.Deck(i.ChannelID, variant)
	_, err := Tables.Create(i.ChannelID, i.GuildID, variant, seats, deck)
	if err != nil {
		common.RespondEphemeral(s, i, "⚠️ A game is already running in this channel.")
		return
	}

	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: fmt.Sprintf("🃏 %s table opened for **%d** players! Press Join to sit down with a bet.", variantLabel(variant), seats),
			Components: []discordgo.MessageComponent{discordgo.ActionsRow{Components: []discordgo.MessageComponent{
				discordgo.Button{Label: "Join", Style: discordgo.SuccessButton, CustomID: "bj_join"},
			}}},
		},
	})
	if err != nil {
		common.SendError(s, i, err, db)
	}
}

// PromptJoinModal handles the Join button by asking for the wager.
func PromptJoinModal(s *discordgo.Session, i *discordgo.InteractionCreate, db *gorm.DB) {
	if _, err := Tables.Get(i.ChannelID); err != nil {
		common.RespondEphemeral(s, i, err.Error())
		return
	}

	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{
			Title:    "Join the table",
			CustomID: "bj_join_submit",
			Components: []discordgo.MessageComponent{
				discordgo.ActionsRow{
					Components: []discordgo.MessageComponent{
						discordgo.TextInput{
							CustomID:    "bet_amount",
							Label:       "Bet (chips)",
							Style:       discordgo.TextInputShort,
							Placeholder: "10",
							Required:    true,
						},
					},
				},
			},
		},
	})
	if err != nil {
		log.Printf("Error presenting join modal: %v", err)
	}
}

// SubmitJoin handles the join modal: validates the wager against the ledger,
// seats the player and, when the table fills, renders the opening deal.
func SubmitJoin(s *discordgo.Session, i *discordgo.InteractionCreate, db *gorm.DB) {
	table, err := Tables.Get(i.ChannelID)
	if err != nil {
		common.RespondEphemeral(s, i, err.Error())
		return
	}

	amountStr := i.ModalSubmitData().Components[0].(*discordgo.ActionsRow).Components[0].(*discordgo.TextInput).Value
	bet, err := strconv.Atoi(strings.TrimSpace(amountStr))
	if err != nil || bet <= 0 {
		common.RespondEphemeral(s, i, "Enter a positive whole number of chips.")
		return
	}

	guild, err := guildService.GetGuildInfo(s, db, i.GuildID, i.ChannelID)
	if err != nil {
		common.SendError(s, i, fmt.Errorf("error getting guild info: %v", err), db)
		return
	}

	userID := i.Member.User.ID
	username := common.GetUsernameFromUser(i.Member.User)
	balance, err := ledgerService.GetBalance(db, i.GuildID, userID, username, guild.StartingBalance)
	if err != nil {
		common.SendError(s, i, err, db)
		return
	}

	events, err := table.Join(userID, bet, balance)
	if err != nil {
		common.RespondEphemeral(s, i, err.Error())
		return
	}

	respErr := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: fmt.Sprintf("✅ **%s** joined — betting **%d** chips", username, bet),
		},
	})
	if respErr != nil {
		log.Printf("Error sending interaction: %v", respErr)
	}

	renderEvents(s, db, table, events)
}

// HandleHit handles a player's Hit button.
func HandleHit(s *discordgo.Session, i *discordgo.InteractionCreate, db *gorm.DB, targetID string) {
	table, ok := actionTable(s, i, targetID)
	if !ok {
		return
	}

	events, err := table.Hit(targetID)
	if err != nil {
		common.RespondEphemeral(s, i, err.Error())
		return
	}
	ackComponent(s, i)
	renderEvents(s, db, table, events)
}

// HandleStand handles a player's Stand button.
func HandleStand(s *discordgo.Session, i *discordgo.InteractionCreate, db *gorm.DB, targetID string) {
	table, ok := actionTable(s, i, targetID)
	if !ok {
		return
	}

	events, err := table.Stand(targetID)
	if err != nil {
		common.RespondEphemeral(s, i, err.Error())
		return
	}
	ackComponent(s, i)
	renderEvents(s, db, table, events)
}

// HandleAce handles the A=1 / A=11 buttons for a pending ace.
func HandleAce(s *discordgo.Session, i *discordgo.InteractionCreate, db *gorm.DB, targetID string, index int, value int) {
	table, ok := actionTable(s, i, targetID)
	if !ok {
		return
	}

	events, err := table.ResolveAce(targetID, index, value)
	if err != nil {
		common.RespondEphemeral(s, i, err.Error())
		return
	}
	ackComponent(s, i)
	renderEvents(s, db, table, events)
}

// actionTable resolves the channel's table and enforces that only the seated
// player presses their own buttons.
func actionTable(s *discordgo.Session, i *discordgo.InteractionCreate, targetID string) (*Table, bool) {
	table, err := Tables.Get(i.ChannelID)
	if err != nil {
		common.RespondEphemeral(s, i, err.Error())
		return nil, false
	}
	if i.Member.User.ID != targetID {
		common.RespondEphemeral(s, i, "⛔ Only the seated player can use these buttons.")
		return nil, false
	}
	return table, true
}

func ackComponent(s *discordgo.Session, i *discordgo.InteractionCreate) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredMessageUpdate,
	})
	if err != nil {
		log.Printf("Error acknowledging interaction: %v", err)
	}
}

// renderEvents turns the engine's ordered announcements into channel
// messages. The blind variant never discloses cards or totals before the
// final reveal; the engine always reports them and the renderer withholds.
func renderEvents(s *discordgo.Session, db *gorm.DB, table *Table, events []Event) {
	blind := table.Variant == VariantBlind

	for _, e := range events {
		switch e.Kind {
		case EventRoundStart:
			names := make([]string, 0, table.TargetSeats)
			for _, id := range table.SeatedIDs() {
				names = append(names, common.GetUsernameWithDB(db, s, table.GuildID, id))
			}
			sendChannel(s, table.ChannelID, fmt.Sprintf("🎮 Game on!\nPlayers: %s\n🃏 Dealing the opening hands...", strings.Join(names, ", ")))

		case EventHandDealt:
			name := common.GetUsernameWithDB(db, s, table.GuildID, e.PlayerID)
			if blind {
				sendChannel(s, table.ChannelID, fmt.Sprintf("**%s** — opening hand dealt. (cards and total hidden)", name))
			} else {
				sendChannel(s, table.ChannelID, fmt.Sprintf("**%s** — opening hand: %s (total %d)", name, handString(e.Hand), e.Score))
			}

		case EventActionResult:
			name := common.GetUsernameWithDB(db, s, table.GuildID, e.PlayerID)
			sendChannel(s, table.ChannelID, actionLine(name, e, blind))

		case EventAcePrompt:
			sendChannelComplex(s, table.ChannelID, &discordgo.MessageSend{
				Content:    fmt.Sprintf("<@%s> drew %s — choose its value.", e.PlayerID, e.Card.String()),
				Components: aceView(e.PlayerID, e.CardIndex),
			})

		case EventTurnPrompt:
			sendChannelComplex(s, table.ChannelID, &discordgo.MessageSend{
				Content:    fmt.Sprintf("<@%s> it's your turn.", e.PlayerID),
				Components: playView(e.PlayerID, blind),
			})

		case EventRoundFinished:
			settleAndEnd(s, db, table)
		}
	}
}

func actionLine(name string, e Event, blind bool) string {
	switch {
	case e.Busted && blind:
		return fmt.Sprintf("💥 **%s** busts! (total %d, hidden from here on)", name, e.Score)
	case e.Busted:
		return fmt.Sprintf("💥 **%s** busts! (total %d)", name, e.Score)
	case e.Blackjack:
		return fmt.Sprintf("🎉 **%s** hits 21!", name)
	case e.Action == ActionStand && blind:
		return fmt.Sprintf("**%s** stands. (total hidden)", name)
	case e.Action == ActionStand:
		return fmt.Sprintf("**%s** stands (total %d)", name, e.Score)
	case blind:
		return fmt.Sprintf("**%s** hits. (card and total hidden)", name)
	case e.Action == ActionResolveAce:
		return fmt.Sprintf("**%s** sets A=%d → %s (total %d)", name, e.AceValue, handString(e.Hand), e.Score)
	default:
		return fmt.Sprintf("**%s** → %s (total %d)", name, handString(e.Hand), e.Score)
	}
}

// settleAndEnd pays out the finished round. Deltas are computed before any
// ledger write; each write is attempted independently and a failure is
// logged for manual reconciliation while teardown continues, because a stale
// table would block the channel forever.
func settleAndEnd(s *discordgo.Session, db *gorm.DB, table *Table) {
	settlement, err := table.Settle()
	if err != nil {
		log.Printf("Error settling table in channel %s: %v", table.ChannelID, err)
		common.LogError(db, table.GuildID, err)
		Tables.Remove(table.ChannelID)
		Decks.ShuffleChannel(table.ChannelID)
		return
	}

	var guildStarting = ledgerService.DefaultStartingBalance
	if guild, gErr := guildService.GetGuildInfo(s, db, table.GuildID, table.ChannelID); gErr == nil {
		guildStarting = guild.StartingBalance
	}

	var resultLines []string
	var payoutLines []string
	anyWinner := false
	for _, o := range settlement.Outcomes {
		name := common.GetUsernameWithDB(db, s, table.GuildID, o.PlayerID)

		status := fmt.Sprintf("total %d", o.Score)
		if o.Busted {
			status = fmt.Sprintf("busted at %d", o.Score)
		}
		resultLines = append(resultLines, fmt.Sprintf("**%s** → %s (%s)", name, handString(o.Hand), status))

		if o.Winner {
			anyWinner = true
			payoutLines = append(payoutLines, fmt.Sprintf("🏆 **%s** wins! (+%d chips)", name, o.Delta))
		} else {
			payoutLines = append(payoutLines, fmt.Sprintf("❌ **%s** loses (-%d chips)", name, o.Bet))
		}

		if _, err := ledgerService.AddBalance(db, table.GuildID, o.PlayerID, name, guildStarting, o.Delta); err != nil {
			log.Printf("Error applying settlement for %s in guild %s: %v", o.PlayerID, table.GuildID, err)
			common.LogError(db, table.GuildID, fmt.Errorf("settlement write failed for %s (delta %d): %v", o.PlayerID, o.Delta, err))
		}
	}

	if !anyWinner {
		sendChannel(s, table.ChannelID, "Everyone busted! No winner this round.")
	}
	sendChannel(s, table.ChannelID, "🃏 Final hands\n"+strings.Join(resultLines, "\n"))
	sendChannel(s, table.ChannelID, strings.Join(payoutLines, "\n"))

	Tables.Remove(table.ChannelID)
	Decks.ShuffleChannel(table.ChannelID)
	sendChannel(s, table.ChannelID, "🎮 Round over! Use /setup to start another game.")
}

func handString(hand []Card) string {
	parts := make([]string, len(hand))
	for i, c := range hand {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}

func playView(playerID string, blind bool) []discordgo.MessageComponent {
	hitLabel := "Hit"
	if blind {
		hitLabel = "Hit (hidden)"
	}
	return []discordgo.MessageComponent{discordgo.ActionsRow{Components: []discordgo.MessageComponent{
		discordgo.Button{Label: hitLabel, Style: discordgo.SuccessButton, CustomID: fmt.Sprintf("bj_hit_%s", playerID)},
		discordgo.Button{Label: "Stand", Style: discordgo.DangerButton, CustomID: fmt.Sprintf("bj_stand_%s", playerID)},
	}}}
}

func aceView(playerID string, index int) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{discordgo.ActionsRow{Components: []discordgo.MessageComponent{
		discordgo.Button{Label: "A=1", Style: discordgo.PrimaryButton, CustomID: fmt.Sprintf("bj_ace_%s_%d_1", playerID, index)},
		discordgo.Button{Label: "A=11", Style: discordgo.SuccessButton, CustomID: fmt.Sprintf("bj_ace_%s_%d_11", playerID, index)},
	}}}
}

func sendChannel(s *discordgo.Session, channelID, content string) {
	if _, err := s.ChannelMessageSend(channelID, content); err != nil {
		log.Printf("Error sending channel message: %v", err)
	}
}

func sendChannelComplex(s *discordgo.Session, channelID string, msg *discordgo.MessageSend) {
	if _, err := s.ChannelMessageSendComplex(channelID, msg); err != nil {
		log.Printf("Error sending channel message: %v", err)
	}
}
