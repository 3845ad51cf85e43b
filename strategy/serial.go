package strategy

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/voidland/turngrille/cracker"
	"github.com/voidland/turngrille/grille"
)

// Serial applies every grille on a single goroutine, in ordinal order. It
// is the baseline against which the concurrent strategies are measured.
type Serial struct {
	logger  zerolog.Logger
	verbose bool

	mu    sync.Mutex
	state milestoneState
}

// NewSerial creates a Serial strategy that logs milestones through logger.
// verbose controls whether per-milestone detail is logged at Info level
// (Debug level otherwise).
func NewSerial(logger zerolog.Logger, verbose bool) *Serial {
	return &Serial{logger: logger, verbose: verbose}
}

// Run applies every grille in [0, c.GrilleCount()) on the calling goroutine.
func (s *Serial) Run(c *cracker.Cracker) error {
	c.SetMilestoneSink(s)
	s.state.init(time.Now())

	it := grille.NewInterval(c.HalfSideLength(), 0, c.GrilleCount())
	for {
		g := it.Next()
		if g == nil {
			break
		}
		c.ApplyGrille(g)
	}

	if got, want := c.GrilleCountSoFar(), c.GrilleCount(); got != want {
		return lostGrillesErr(got, want)
	}
	return nil
}

// TryMilestone is the cracker's best-effort progress callback. It never
// blocks: a concurrent call (there is only ever one goroutine here, but the
// sink must still satisfy [cracker.MilestoneSink]) that loses the TryLock
// race is a silent no-op.
func (s *Serial) TryMilestone(now time.Time, countSoFar uint64) {
	if !s.mu.TryLock() {
		return
	}
	defer s.mu.Unlock()

	gps := s.state.advance(now, countSoFar)
	s.logger.WithLevel(logLevel(s.verbose)).
		Uint64("grille_count_so_far", countSoFar).
		Float64("grilles_per_second", gps).
		Float64("best_grilles_per_second", s.state.bestGps).
		Msg("milestone")
}
