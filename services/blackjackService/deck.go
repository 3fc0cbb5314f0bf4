package blackjackService

import (
	"errors"
	"math/rand"
	"sync"
)

var ErrDeckExhausted = errors.New("deck is exhausted")

var suits = []string{"♠", "♥", "♦", "♣"}
var ranks = []string{"A", "2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K"}

// Card is an immutable suit/rank pair. Equality is by value.
type Card struct {
	Suit string
	Rank string
}

func (c Card) String() string {
	return c.Suit + c.Rank
}

// Deck is an ordered sequence of cards owned by exactly one table at a time.
// Drawn cards do not reappear until Shuffle replaces the whole sequence.
type Deck struct {
	cards []Card
}

// NewDeck builds a shuffled deck from the given number of 52-card copies.
func NewDeck(copies int) *Deck {
	d := &Deck{}
	d.ShuffleCopies(copies)
	return d
}

// Draw removes and returns the top card.
func (d *Deck) Draw() (Card, error) {
	if len(d.cards) == 0 {
		return Card{}, ErrDeckExhausted
	}
	card := d.cards[0]
	d.cards = d.cards[1:]
	return card, nil
}

func (d *Deck) Remaining() int {
	return len(d.cards)
}

// Shuffle replaces the sequence with a fresh permutation of a single copy.
func (d *Deck) Shuffle() {
	d.ShuffleCopies(1)
}

func (d *Deck) ShuffleCopies(copies int) {
	if copies < 1 {
		copies = 1
	}
	cards := make([]Card, 0, copies*len(suits)*len(ranks))
	for i := 0; i < copies; i++ {
		for _, s := range suits {
			for _, r := range ranks {
				cards = append(cards, Card{Suit: s, Rank: r})
			}
		}
	}
	rand.Shuffle(len(cards), func(i, j int) { cards[i], cards[j] = cards[j], cards[i] })
	d.cards = cards
}

// DeckManager owns one deck per (channel, variant). A deck is handed to at
// most one table at a time because the registry allows one table per channel.
type DeckManager struct {
	mu    sync.Mutex
	decks map[string]map[Variant]*Deck
}

func NewDeckManager() *DeckManager {
	return &DeckManager{decks: make(map[string]map[Variant]*Deck)}
}

// Deck returns the channel's deck for the variant, creating and shuffling it
// on first use.
func (m *DeckManager) Deck(channelID string, variant Variant) *Deck {
	m.mu.Lock()
	defer m.mu.Unlock()

	byVariant, ok := m.decks[channelID]
	if !ok {
		byVariant = make(map[Variant]*Deck)
		m.decks[channelID] = byVariant
	}
	deck, ok := byVariant[variant]
	if !ok {
		deck = NewDeck(1)
		byVariant[variant] = deck
	}
	return deck
}

// ShuffleChannel reshuffles every deck the channel owns. Called after each
// round so the next table starts from a full deck.
func (m *DeckManager) ShuffleChannel(channelID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, deck := range m.decks[channelID] {
		deck.Shuffle()
	}
}
