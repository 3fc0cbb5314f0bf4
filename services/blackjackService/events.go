package blackjackService

// EventKind tags an announcement the transport layer should render.
type EventKind string

const (
	// EventRoundStart fires once when all seats are filled and dealing begins.
	EventRoundStart EventKind = "ROUND_START"
	// EventHandDealt carries one player's initial two cards.
	EventHandDealt EventKind = "HAND_DEALT"
	// EventActionResult reports the outcome of a hit, stand or ace choice.
	EventActionResult EventKind = "ACTION_RESULT"
	// EventAcePrompt asks a player to value the ace they just drew.
	EventAcePrompt EventKind = "ACE_PROMPT"
	// EventTurnPrompt opens a player's turn for the current pass.
	EventTurnPrompt EventKind = "TURN_PROMPT"
	// EventRoundFinished marks the table ready for settlement.
	EventRoundFinished EventKind = "ROUND_FINISHED"
)

// Action names carried by EventActionResult.
const (
	ActionHit        = "hit"
	ActionStand      = "stand"
	ActionResolveAce = "ace"
)

// Event is one ordered announcement produced by a table mutation. The engine
// always includes cards and scores; whether they are disclosed is the
// renderer's call based on the table variant.
type Event struct {
	Kind      EventKind
	PlayerID  string
	Action    string
	Hand      []Card
	Card      *Card
	CardIndex int
	AceValue  int
	Score     int
	Busted    bool
	Blackjack bool
}
