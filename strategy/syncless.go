package strategy

import (
	"strings"
	"sync"
	"time"

	"code.hybscloud.com/atomix"
	"github.com/rs/zerolog"

	"github.com/voidland/turngrille/cracker"
	"github.com/voidland/turngrille/grille"
)

// Syncless partitions [0, G) into one disjoint interval per worker and lets
// each worker run it to completion with no shared queue — the only
// synchronization on the hot path is the cracker's atomic progress counter.
type Syncless struct {
	workerCount int
	logger      zerolog.Logger
	verbose     bool

	workersRunning atomix.Int64

	mu         sync.Mutex
	state      milestoneState
	completion []*synclessWorker
}

type synclessWorker struct {
	processed atomix.Uint64
	total     uint64
}

// NewSyncless creates a Syncless strategy with one worker per workerCount
// (typically runtime.NumCPU()).
func NewSyncless(workerCount int, logger zerolog.Logger, verbose bool) *Syncless {
	return &Syncless{workerCount: workerCount, logger: logger, verbose: verbose}
}

// Run spawns workerCount goroutines, each owning a disjoint GrilleInterval
// covering [0, c.GrilleCount()) exactly, and waits for all of them.
func (s *Syncless) Run(c *cracker.Cracker) error {
	c.SetMilestoneSink(s)
	s.state.init(time.Now())

	s.completion = make([]*synclessWorker, s.workerCount)

	var wg sync.WaitGroup
	nextBegin := uint64(0)
	intervalLength := divRound(c.GrilleCount(), uint64(s.workerCount))

	for i := 0; i < s.workerCount; i++ {
		end := nextBegin + intervalLength
		if i == s.workerCount-1 {
			end = c.GrilleCount()
		}

		w := &synclessWorker{total: end - nextBegin}
		s.completion[i] = w
		s.workersRunning.AddAcqRel(1)

		wg.Add(1)
		go func(begin, end uint64, w *synclessWorker) {
			defer wg.Done()
			it := grille.NewInterval(c.HalfSideLength(), begin, end)
			for {
				g := it.Next()
				if g == nil {
					break
				}
				c.ApplyGrille(g)
				w.processed.AddAcqRel(1)
			}
			s.workersRunning.AddAcqRel(-1)
		}(nextBegin, end, w)

		nextBegin = end
	}

	wg.Wait()

	if got, want := c.GrilleCountSoFar(), c.GrilleCount(); got != want {
		return lostGrillesErr(got, want)
	}
	return nil
}

func (s *Syncless) TryMilestone(now time.Time, countSoFar uint64) {
	if !s.mu.TryLock() {
		return
	}
	defer s.mu.Unlock()

	gps := s.state.advance(now, countSoFar)

	ev := s.logger.WithLevel(logLevel(s.verbose)).
		Uint64("grille_count_so_far", countSoFar).
		Float64("grilles_per_second", gps).
		Float64("best_grilles_per_second", s.state.bestGps)

	if s.verbose {
		ev = ev.Int64("workers", s.workersRunning.LoadRelaxed()).
			Str("completion_per_worker", s.completionStatus())
	}
	ev.Msg("milestone")
}

func (s *Syncless) completionStatus() string {
	var b strings.Builder
	for i, w := range s.completion {
		if i > 0 {
			b.WriteByte('/')
		}
		pct := float64(w.processed.LoadRelaxed()) * 100 / float64(w.total)
		b.WriteString(formatPercent(pct))
	}
	return b.String()
}
