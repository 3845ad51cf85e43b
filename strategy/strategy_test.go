package strategy

import (
	"io"
	"testing"

	"github.com/rs/zerolog"

	"github.com/voidland/turngrille/cracker"
	"github.com/voidland/turngrille/grille"
	"github.com/voidland/turngrille/queue"
	"github.com/voidland/turngrille/wordstrie"
)

func silentLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

// newFixtureCracker builds an s=4 cracker (G=4^4=256) big enough to
// exercise every rotation and every strategy's partitioning logic. The
// trie is empty: these tests assert grille-count conservation, which does
// not depend on any candidate clearing the acceptance threshold.
func newFixtureCracker(t *testing.T) *cracker.Cracker {
	t.Helper()
	c, err := cracker.New("THEQUICKBROWNFOX", wordstrie.New())
	if err != nil {
		t.Fatalf("cracker.New: %v", err)
	}
	return c
}

func TestSerialConservesGrilleCount(t *testing.T) {
	c := newFixtureCracker(t)
	s := NewSerial(silentLogger(), false)

	if err := s.Run(c); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got, want := c.GrilleCountSoFar(), c.GrilleCount(); got != want {
		t.Fatalf("GrilleCountSoFar() = %d, want %d", got, want)
	}
}

func TestSynclessConservesGrilleCount(t *testing.T) {
	for _, workers := range []int{1, 3, 4, 7} {
		t.Run("", func(t *testing.T) {
			c := newFixtureCracker(t)
			s := NewSyncless(workers, silentLogger(), false)

			if err := s.Run(c); err != nil {
				t.Fatalf("Run: %v", err)
			}
			if got, want := c.GrilleCountSoFar(), c.GrilleCount(); got != want {
				t.Fatalf("workers=%d: GrilleCountSoFar() = %d, want %d", workers, got, want)
			}
		})
	}
}

func TestProducerConsumerVariantsConserveGrilleCount(t *testing.T) {
	const producers, initialConsumers = 4, 8
	capacity := queue.Capacity(initialConsumers, producers)

	builders := map[string]func() queue.Bounded[*grille.Grille]{
		"textbook":     func() queue.Bounded[*grille.Grille] { return queue.NewTextbook[*grille.Grille](capacity) },
		"textbook_pl":  func() queue.Bounded[*grille.Grille] { return queue.NewTextbookFast[*grille.Grille](capacity) },
		"hybrid_ring":  func() queue.Bounded[*grille.Grille] { return queue.NewHybridRing[*grille.Grille](capacity) },
		"hybrid_async": func() queue.Bounded[*grille.Grille] { return queue.NewHybridChannel[*grille.Grille](capacity) },
		"sync_mpmc":    func() queue.Bounded[*grille.Grille] { return queue.NewChannel[*grille.Grille](capacity) },
	}

	for name, build := range builders {
		t.Run(name, func(t *testing.T) {
			c := newFixtureCracker(t)
			q := build()
			s := NewProducerConsumer(q, producers, initialConsumers, silentLogger(), false)

			if err := s.Run(c); err != nil {
				t.Fatalf("Run: %v", err)
			}
			if got, want := c.GrilleCountSoFar(), c.GrilleCount(); got != want {
				t.Fatalf("GrilleCountSoFar() = %d, want %d", got, want)
			}
			if got := s.BestConsumerCount(); got < 1 {
				t.Fatalf("BestConsumerCount() = %d, want >= 1", got)
			}
		})
	}
}

// TestProducerConsumerConsumerFloor exercises the tuner's shutdown path
// with a minimal initial consumer count: any floor-check bug in
// startConsumer's shutdown branch (at least one consumer must survive a
// shrink) would manifest as a lost grille or a hang with zero live
// consumers.
func TestProducerConsumerConsumerFloor(t *testing.T) {
	const producers, initialConsumers = 2, 1
	capacity := queue.Capacity(initialConsumers, producers)

	c := newFixtureCracker(t)
	q := queue.NewHybridRing[*grille.Grille](capacity)
	s := NewProducerConsumer(q, producers, initialConsumers, silentLogger(), false)

	if err := s.Run(c); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got, want := c.GrilleCountSoFar(), c.GrilleCount(); got != want {
		t.Fatalf("GrilleCountSoFar() = %d, want %d", got, want)
	}
}
