package blackjackService

import (
	"sync"
	"time"
)

// Registry owns the map from channel key to its single live table. The map
// is never handed out; check-and-create runs as one atomic step so two
// concurrent setups cannot both open a table on the same channel.
type Registry struct {
	mu     sync.Mutex
	tables map[string]*Table
}

func NewRegistry() *Registry {
	return &Registry{tables: make(map[string]*Table)}
}

// Create opens a table for the channel, failing if one of either variant is
// already live there.
func (r *Registry) Create(channelID, guildID string, variant Variant, targetSeats int, deck *Deck) (*Table, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.tables[channelID]; exists {
		return nil, ErrTableExists
	}
	table := NewTable(channelID, guildID, variant, targetSeats, deck)
	r.tables[channelID] = table
	return table, nil
}

// Get returns the channel's live table, if any.
func (r *Registry) Get(channelID string) (*Table, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	table, ok := r.tables[channelID]
	if !ok {
		return nil, ErrNoTable
	}
	return table, nil
}

// Remove destroys the channel's table. Removing an absent key is a no-op so
// settlement teardown is idempotent.
func (r *Registry) Remove(channelID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.tables, channelID)
}

// Stale returns tables that have not changed for at least minIdle. An
// abandoned table blocks its channel indefinitely, so the scheduler reports
// these; it never tears them down.
func (r *Registry) Stale(minIdle time.Duration) []*Table {
	r.mu.Lock()
	tables := make([]*Table, 0, len(r.tables))
	for _, t := range r.tables {
		tables = append(tables, t)
	}
	r.mu.Unlock()

	var stale []*Table
	for _, t := range tables {
		if t.IdleFor() >= minIdle {
			stale = append(stale, t)
		}
	}
	return stale
}

// Process-wide session and deck state. One registry and one deck manager per
// process, mirroring one bot per token.
var (
	Tables = NewRegistry()
	Decks  = NewDeckManager()
)
