package blackjackService

type Variant string

const (
	// VariantOpen shows every hand and lets each player pick 1 or 11 per ace.
	VariantOpen Variant = "open"
	// VariantBlind keeps hands private and values every ace at 1.
	VariantBlind Variant = "blind"
)

// ScorePolicy computes a hand total under one variant's ace rule. Policies
// are pure; the same hand and choices always score the same.
type ScorePolicy interface {
	// Score totals the hand. aceChoices maps hand index to a chosen ace
	// value and is ignored by policies without selectable aces.
	Score(hand []Card, aceChoices map[int]int) int
	// AceSelectable reports whether drawing an ace requires a value choice.
	AceSelectable() bool
}

func policyFor(variant Variant) ScorePolicy {
	if variant == VariantBlind {
		return blindScoring{}
	}
	return openScoring{}
}

type openScoring struct{}

func (openScoring) Score(hand []Card, aceChoices map[int]int) int {
	total := 0
	for i, card := range hand {
		switch card.Rank {
		case "J", "Q", "K":
			total += 10
		case "A":
			if v, ok := aceChoices[i]; ok {
				total += v
			} else {
				total += 11
			}
		default:
			total += numeralValue(card.Rank)
		}
	}
	return total
}

func (openScoring) AceSelectable() bool { return true }

type blindScoring struct{}

func (blindScoring) Score(hand []Card, _ map[int]int) int {
	total := 0
	for _, card := range hand {
		switch card.Rank {
		case "J", "Q", "K":
			total += 10
		case "A":
			total += 1
		default:
			total += numeralValue(card.Rank)
		}
	}
	return total
}

func (blindScoring) AceSelectable() bool { return false }

func numeralValue(rank string) int {
	value := 0
	for _, ch := range rank {
		value = value*10 + int(ch-'0')
	}
	return value
}
