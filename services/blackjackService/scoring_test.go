package blackjackService

import "testing"

func assertEqual(t *testing.T, expected, actual interface{}, msg string) {
	t.Helper()
	if expected != actual {
		t.Errorf("%s: expected %v, got %v", msg, expected, actual)
	}
}

func c(suit, rank string) Card {
	return Card{Suit: suit, Rank: rank}
}

func TestOpenScoring(t *testing.T) {
	tests := []struct {
		name     string
		hand     []Card
		choices  map[int]int
		expected int
	}{
		{
			name:     "numerals sum to face value",
			hand:     []Card{c("♠", "2"), c("♥", "7"), c("♦", "10")},
			expected: 19,
		},
		{
			name:     "face cards count ten",
			hand:     []Card{c("♠", "J"), c("♥", "Q"), c("♦", "K")},
			expected: 30,
		},
		{
			name:     "ace defaults to eleven",
			hand:     []Card{c("♠", "A"), c("♥", "9")},
			expected: 20,
		},
		{
			name:     "chosen ace value eleven",
			hand:     []Card{c("♥", "9"), c("♠", "A")},
			choices:  map[int]int{1: 11},
			expected: 20,
		},
		{
			name:     "chosen ace value one",
			hand:     []Card{c("♥", "9"), c("♠", "A")},
			choices:  map[int]int{1: 1},
			expected: 10,
		},
		{
			name:     "ace choices are independent per index",
			hand:     []Card{c("♠", "A"), c("♥", "A"), c("♦", "9")},
			choices:  map[int]int{0: 1, 1: 11},
			expected: 21,
		},
		{
			name:     "unchosen ace keeps default next to chosen ace",
			hand:     []Card{c("♠", "A"), c("♥", "A")},
			choices:  map[int]int{1: 1},
			expected: 12,
		},
	}

	policy := openScoring{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertEqual(t, tt.expected, policy.Score(tt.hand, tt.choices), "score")
		})
	}
}

func TestOpenScoringChoiceShiftsByTen(t *testing.T) {
	hand := []Card{c("♥", "5"), c("♦", "3"), c("♠", "A")}
	policy := openScoring{}

	low := policy.Score(hand, map[int]int{2: 1})
	high := policy.Score(hand, map[int]int{2: 11})
	assertEqual(t, 10, high-low, "choosing 11 over 1 for one ace")
}

func TestBlindScoring(t *testing.T) {
	tests := []struct {
		name     string
		hand     []Card
		expected int
	}{
		{
			name:     "ace and king score eleven",
			hand:     []Card{c("♠", "A"), c("♦", "K")},
			expected: 11,
		},
		{
			name:     "two face cards are the blind maximum opening hand",
			hand:     []Card{c("♠", "K"), c("♥", "Q")},
			expected: 20,
		},
		{
			name:     "every ace counts one",
			hand:     []Card{c("♠", "A"), c("♥", "A"), c("♦", "A")},
			expected: 3,
		},
	}

	policy := blindScoring{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertEqual(t, tt.expected, policy.Score(tt.hand, nil), "score")
		})
	}
}

func TestBlindScoringIgnoresChoices(t *testing.T) {
	hand := []Card{c("♠", "A"), c("♦", "K")}
	policy := blindScoring{}

	assertEqual(t, 11, policy.Score(hand, map[int]int{0: 11}), "externally supplied choice must not apply")
	assertEqual(t, false, policy.AceSelectable(), "blind variant never prompts for aces")
}

func TestScoringIsIdempotent(t *testing.T) {
	hand := []Card{c("♥", "9"), c("♠", "A"), c("♦", "4")}
	choices := map[int]int{1: 1}
	policy := openScoring{}

	first := policy.Score(hand, choices)
	second := policy.Score(hand, choices)
	assertEqual(t, first, second, "re-scoring the same hand")
}
