package blackjackService

import (
	"errors"
	"sync"
	"time"
)

var (
	ErrNoTable             = errors.New("no table is open in this channel")
	ErrTableExists         = errors.New("a table is already open in this channel")
	ErrTableStarted        = errors.New("the round has already started")
	ErrTableFull           = errors.New("every seat is taken")
	ErrNotSeated           = errors.New("you are not seated at this table")
	ErrInvalidBet          = errors.New("bet must be a positive whole number")
	ErrInsufficientBalance = errors.New("bet exceeds your balance")
	ErrWrongPhase          = errors.New("that action is not allowed right now")
	ErrPlayerSettled       = errors.New("you have already stood or busted")
	ErrAcePending          = errors.New("choose a value for your ace first")
	ErrNoPendingAce        = errors.New("there is no ace waiting for a value")
	ErrInvalidAceValue     = errors.New("an ace is worth 1 or 11")
)

// Phase is the table's position in the round lifecycle.
type Phase string

const (
	PhaseForming  Phase = "FORMING"
	PhaseDealing  Phase = "DEALING"
	PhaseActive   Phase = "ACTIVE"
	PhaseFinished Phase = "FINISHED"
	PhaseSettled  Phase = "SETTLED"
)

// PlayerStatus consolidates the stood/busted bookkeeping into one enum so the
// flags cannot drift apart. Waiting players are the only ones still acting.
type PlayerStatus int

const (
	StatusWaiting PlayerStatus = iota
	StatusStood
	StatusBusted
)

const noPendingAce = -1

type seat struct {
	playerID   string
	hand       []Card
	bet        int
	status     PlayerStatus
	acted      bool
	aceChoices map[int]int
	pendingAce int
}

// Table runs one wager round for one channel. All mutating operations take
// the table lock for their whole transition; discordgo delivers interactions
// on multiple goroutines, so each entry point re-validates actor and phase
// under the lock before touching state.
type Table struct {
	mu sync.Mutex

	ChannelID   string
	GuildID     string
	Variant     Variant
	TargetSeats int

	deck       *Deck
	scoring    ScorePolicy
	seats      []*seat
	phase      Phase
	started    bool
	lastAction time.Time
}

// NewTable seats targetSeats players for one round of the given variant. The
// deck must be exclusively owned by this table for its lifetime.
func NewTable(channelID, guildID string, variant Variant, targetSeats int, deck *Deck) *Table {
	return &Table{
		ChannelID:   channelID,
		GuildID:     guildID,
		Variant:     variant,
		TargetSeats: targetSeats,
		deck:        deck,
		scoring:     policyFor(variant),
		phase:       PhaseForming,
		lastAction:  time.Now(),
	}
}

func (t *Table) Phase() Phase {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.phase
}

// IdleFor reports how long ago the table last changed.
func (t *Table) IdleFor() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return time.Since(t.lastAction)
}

// SeatedIDs returns the player IDs in seat order.
func (t *Table) SeatedIDs() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	ids := make([]string, len(t.seats))
	for i, s := range t.seats {
		ids[i] = s.playerID
	}
	return ids
}

func (t *Table) seatOf(playerID string) *seat {
	for _, s := range t.seats {
		if s.playerID == playerID {
			return s
		}
	}
	return nil
}

func (t *Table) scoreOf(s *seat) int {
	return t.scoring.Score(s.hand, s.aceChoices)
}

// Join seats a player with a bet, or corrects an already-seated player's bet.
// The repeat-join overwrite is deliberate: before the deal a player may fix a
// mistyped wager and the confirmation message restates the recorded amount.
// When the last seat fills, the initial two cards are dealt in seat order and
// the round starts.
func (t *Table) Join(playerID string, bet int, balance int) ([]Event, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.phase != PhaseForming || t.started {
		return nil, ErrTableStarted
	}
	if bet <= 0 {
		return nil, ErrInvalidBet
	}
	if bet > balance {
		return nil, ErrInsufficientBalance
	}

	if existing := t.seatOf(playerID); existing != nil {
		existing.bet = bet
	} else {
		if len(t.seats) >= t.TargetSeats {
			return nil, ErrTableFull
		}
		t.seats = append(t.seats, &seat{
			playerID:   playerID,
			bet:        bet,
			aceChoices: make(map[int]int),
			pendingAce: noPendingAce,
		})
	}
	t.lastAction = time.Now()

	if len(t.seats) < t.TargetSeats {
		return nil, nil
	}
	return t.deal()
}

// deal hands two cards to every seat in order and opens the first pass.
// Caller holds the lock.
func (t *Table) deal() ([]Event, error) {
	t.phase = PhaseDealing
	for _, s := range t.seats {
		for i := 0; i < 2; i++ {
			card, err := t.deck.Draw()
			if err != nil {
				return nil, err
			}
			s.hand = append(s.hand, card)
		}
	}
	t.phase = PhaseActive
	t.started = true

	events := []Event{{Kind: EventRoundStart}}
	for _, s := range t.seats {
		events = append(events, Event{
			Kind:     EventHandDealt,
			PlayerID: s.playerID,
			Hand:     append([]Card(nil), s.hand...),
			Score:    t.scoreOf(s),
		})
	}
	for _, s := range t.seats {
		events = append(events, Event{Kind: EventTurnPrompt, PlayerID: s.playerID})
	}
	return events, nil
}

// Hit draws one card into the player's hand. Drawing an ace in the open
// variant suspends that player behind an ace prompt instead of evaluating
// the hand.
func (t *Table) Hit(playerID string) ([]Event, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	s, err := t.actingSeat(playerID)
	if err != nil {
		return nil, err
	}

	card, err := t.deck.Draw()
	if err != nil {
		return nil, err
	}
	s.hand = append(s.hand, card)
	t.lastAction = time.Now()

	if card.Rank == "A" && t.scoring.AceSelectable() {
		index := len(s.hand) - 1
		s.pendingAce = index
		return []Event{{
			Kind:      EventAcePrompt,
			PlayerID:  playerID,
			Card:      &card,
			CardIndex: index,
		}}, nil
	}

	events := []Event{t.evaluate(s, ActionHit, &card)}
	return append(events, t.checkPass()...), nil
}

// ResolveAce records the chosen value for the ace the player just drew, then
// evaluates the hand exactly as a hit would. A choice is final for its index.
func (t *Table) ResolveAce(playerID string, index int, value int) ([]Event, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.phase != PhaseActive {
		return nil, ErrWrongPhase
	}
	s := t.seatOf(playerID)
	if s == nil {
		return nil, ErrNotSeated
	}
	if s.pendingAce == noPendingAce || s.pendingAce != index {
		return nil, ErrNoPendingAce
	}
	if value != 1 && value != 11 {
		return nil, ErrInvalidAceValue
	}

	s.aceChoices[index] = value
	s.pendingAce = noPendingAce
	t.lastAction = time.Now()

	event := t.evaluate(s, ActionResolveAce, &s.hand[index])
	event.AceValue = value
	event.CardIndex = index
	events := []Event{event}
	return append(events, t.checkPass()...), nil
}

// Stand ends the player's turn for the round.
func (t *Table) Stand(playerID string) ([]Event, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	s, err := t.actingSeat(playerID)
	if err != nil {
		return nil, err
	}

	s.status = StatusStood
	s.acted = true
	t.lastAction = time.Now()

	events := []Event{{
		Kind:     EventActionResult,
		PlayerID: playerID,
		Action:   ActionStand,
		Hand:     append([]Card(nil), s.hand...),
		Score:    t.scoreOf(s),
	}}
	return append(events, t.checkPass()...), nil
}

// actingSeat validates that the player may act right now. Caller holds the lock.
func (t *Table) actingSeat(playerID string) (*seat, error) {
	if t.phase != PhaseActive {
		return nil, ErrWrongPhase
	}
	s := t.seatOf(playerID)
	if s == nil {
		return nil, ErrNotSeated
	}
	if s.status != StatusWaiting {
		return nil, ErrPlayerSettled
	}
	if s.pendingAce != noPendingAce {
		return nil, ErrAcePending
	}
	return s, nil
}

// evaluate re-scores the seat after a card or ace choice, applying the bust
// and blackjack-at-21 auto-transitions, and marks the pass action.
// Caller holds the lock.
func (t *Table) evaluate(s *seat, action string, card *Card) Event {
	score := t.scoreOf(s)
	switch {
	case score > 21:
		s.status = StatusBusted
	case score == 21:
		s.status = StatusStood
	}
	s.acted = true

	return Event{
		Kind:      EventActionResult,
		PlayerID:  s.playerID,
		Action:    action,
		Hand:      append([]Card(nil), s.hand...),
		Card:      card,
		Score:     score,
		Busted:    s.status == StatusBusted,
		Blackjack: score == 21,
	}
}

// checkPass runs the turn-completion check after every action: once every
// seat has acted or settled, either the round finishes or a new pass opens
// with fresh prompts for the players still in. A seat behind an ace prompt
// has not acted, which keeps the pass open. Caller holds the lock.
func (t *Table) checkPass() []Event {
	for _, s := range t.seats {
		if s.status == StatusWaiting && !s.acted {
			return nil
		}
	}

	if t.isFinished() {
		t.phase = PhaseFinished
		return []Event{{Kind: EventRoundFinished}}
	}

	var events []Event
	for _, s := range t.seats {
		if s.status == StatusWaiting {
			s.acted = false
			events = append(events, Event{Kind: EventTurnPrompt, PlayerID: s.playerID})
		}
	}
	return events
}

// isFinished reports whether every seat has stood or busted. Caller holds the lock.
func (t *Table) isFinished() bool {
	for _, s := range t.seats {
		if s.status == StatusWaiting {
			return false
		}
	}
	return true
}

// Settle derives the round outcome and moves the table to its terminal
// phase. Deltas are fully computed here, before any ledger write is
// attempted, so a failed write can never corrupt the result.
func (t *Table) Settle() (*Settlement, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.phase != PhaseFinished {
		return nil, ErrWrongPhase
	}

	outcomes := make([]PlayerOutcome, len(t.seats))
	for i, s := range t.seats {
		outcomes[i] = PlayerOutcome{
			PlayerID: s.playerID,
			Bet:      s.bet,
			Score:    t.scoreOf(s),
			Hand:     append([]Card(nil), s.hand...),
		}
	}
	t.phase = PhaseSettled
	return computeSettlement(outcomes), nil
}
