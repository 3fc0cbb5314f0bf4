package blackjackService

import (
	"sync"
	"testing"
	"time"
)

func TestRegistryOneTablePerChannel(t *testing.T) {
	r := NewRegistry()

	table, err := r.Create("chan1", "guild1", VariantOpen, 2, NewDeck(1))
	if err != nil {
		t.Fatalf("unexpected create error: %v", err)
	}

	_, err = r.Create("chan1", "guild1", VariantBlind, 3, NewDeck(1))
	assertEqual(t, ErrTableExists, err, "a second table of any variant is rejected")

	got, err := r.Get("chan1")
	if err != nil {
		t.Fatalf("unexpected get error: %v", err)
	}
	if got != table {
		t.Fatal("get must return the created table")
	}

	_, err = r.Get("chan2")
	assertEqual(t, ErrNoTable, err, "unknown channel has no table")
}

func TestRegistryRemoveIsIdempotent(t *testing.T) {
	r := NewRegistry()
	r.Create("chan1", "guild1", VariantOpen, 2, NewDeck(1))

	r.Remove("chan1")
	_, err := r.Get("chan1")
	assertEqual(t, ErrNoTable, err, "removed table is gone")

	r.Remove("chan1")

	if _, err := r.Create("chan1", "guild1", VariantOpen, 2, NewDeck(1)); err != nil {
		t.Fatalf("channel must be reusable after removal: %v", err)
	}
}

func TestRegistryConcurrentCreate(t *testing.T) {
	r := NewRegistry()

	var wg sync.WaitGroup
	created := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := r.Create("chan1", "guild1", VariantOpen, 2, NewDeck(1))
			created <- err
		}()
	}
	wg.Wait()
	close(created)

	wins := 0
	for err := range created {
		if err == nil {
			wins++
		} else if err != ErrTableExists {
			t.Errorf("unexpected error: %v", err)
		}
	}
	assertEqual(t, 1, wins, "exactly one concurrent create may win")
}

func TestRegistryStale(t *testing.T) {
	r := NewRegistry()
	table, _ := r.Create("chan1", "guild1", VariantOpen, 2, NewDeck(1))

	assertEqual(t, 0, len(r.Stale(time.Minute)), "fresh table is not stale")

	table.mu.Lock()
	table.lastAction = time.Now().Add(-2 * time.Minute)
	table.mu.Unlock()

	stale := r.Stale(time.Minute)
	assertEqual(t, 1, len(stale), "idle table is reported")
	if stale[0] != table {
		t.Fatal("stale must return the idle table")
	}
}
