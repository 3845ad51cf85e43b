package strategy

import (
	"sync"
	"time"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/iox"
	"github.com/rs/zerolog"

	"github.com/voidland/turngrille/cracker"
	"github.com/voidland/turngrille/grille"
	"github.com/voidland/turngrille/queue"
)

// tunerState is the adaptive consumer-count tuner's bookkeeping, entered
// and mutated only while the strategy's milestone mutex is held.
type tunerState struct {
	improving     int
	addingThreads bool
	prevGps       float64
	bestGps       float64
	bestConsumers int
}

// ProducerConsumer drives producers GrilleInterval.CloneNext → queue.Put
// and consumers queue.Take → Cracker.ApplyGrille across a shared
// [queue.Bounded] queue, adaptively growing or shrinking the consumer pool
// based on observed throughput trend.
//
// The same strategy shape backs every queue-selecting CLI value
// (textbook, textbook_pl, concurrent, async_mpmc, sync_mpmc) — only the
// queue passed to [NewProducerConsumer] differs.
type ProducerConsumer struct {
	queue            queue.Bounded[*grille.Grille]
	producers        int
	initialConsumers int
	logger           zerolog.Logger
	verbose          bool

	cracker *cracker.Cracker

	consumerCount      atomix.Int64 // may dip to 0 briefly during a revert
	shutdownNConsumers atomix.Int64

	consumerWg sync.WaitGroup

	mu    sync.Mutex
	state milestoneState
	tuner tunerState
}

// NewProducerConsumer creates a ProducerConsumer strategy over q, with
// producers producer goroutines and initialConsumers consumer goroutines
// at start.
func NewProducerConsumer(q queue.Bounded[*grille.Grille], producers, initialConsumers int, logger zerolog.Logger, verbose bool) *ProducerConsumer {
	return &ProducerConsumer{
		queue:            q,
		producers:        producers,
		initialConsumers: initialConsumers,
		logger:           logger,
		verbose:          verbose,
	}
}

// Run starts producers producer goroutines, each owning a disjoint
// GrilleInterval, and initialConsumers consumer goroutines pulling from
// the shared queue, then waits for a clean shutdown.
func (p *ProducerConsumer) Run(c *cracker.Cracker) error {
	c.SetMilestoneSink(p)
	p.cracker = c
	p.state.init(time.Now())
	p.tuner.addingThreads = true

	var producerWg sync.WaitGroup
	nextBegin := uint64(0)

	for i := 0; i < p.producers; i++ {
		end := uint64(i+1) * c.GrilleCount() / uint64(p.producers)
		if i == p.producers-1 {
			end = c.GrilleCount()
		}

		producerWg.Add(1)
		go func(begin, end uint64) {
			defer producerWg.Done()
			it := grille.NewInterval(c.HalfSideLength(), begin, end)
			for {
				g := it.CloneNext()
				if g == nil {
					break
				}
				p.queue.Put(g)
			}
		}(nextBegin, end)

		nextBegin = end
	}

	for i := 0; i < p.initialConsumers; i++ {
		p.startConsumer()
	}

	producerWg.Wait()
	p.queue.Drain()

	// Spin until the last in-flight ApplyGrille calls land. The wait
	// window is bounded by those few calls, so a backoff spin beats a
	// dedicated condition variable here.
	backoff := iox.Backoff{}
	for c.GrilleCountSoFar() < c.GrilleCount() {
		backoff.Wait()
	}

	// Holding the milestone mutex across Shutdown and the consumer join
	// waits out a tuner step already in flight and turns every later
	// TryMilestone into a no-op, so no consumer is spawned or retired
	// after the final consumer count is read.
	p.mu.Lock()
	p.queue.Shutdown(int(p.consumerCount.LoadAcquire()))
	p.consumerWg.Wait()
	p.mu.Unlock()

	if got, want := c.GrilleCountSoFar(), c.GrilleCount(); got != want {
		return lostGrillesErr(got, want)
	}
	return nil
}

// startConsumer spawns one consumer goroutine and registers it with the
// strategy's WaitGroup. Safe to call from within TryMilestone: the
// WaitGroup's counter is always positive while any consumer or the tuner
// itself may still call startConsumer, so the Add here can never race a
// concurrent Wait reaching zero.
func (p *ProducerConsumer) startConsumer() {
	p.consumerCount.AddAcqRel(1)
	p.consumerWg.Add(1)

	go func() {
		defer p.consumerWg.Done()
		c := p.cracker
		for {
			g, ok := p.queue.Take()
			if !ok {
				p.consumerCount.AddAcqRel(-1)
				return
			}
			c.ApplyGrille(g)

			if p.shutdownNConsumers.LoadRelaxed() <= 0 {
				continue
			}
			if newShutdown := p.shutdownNConsumers.AddAcqRel(-1); newShutdown >= 0 {
				if newConsumer := p.consumerCount.AddAcqRel(-1); newConsumer > 0 {
					return
				}
				// Reverting: at least one consumer must survive.
				p.consumerCount.AddAcqRel(1)
			} else {
				p.shutdownNConsumers.AddAcqRel(1)
			}
		}
	}()
}

// TryMilestone is the cracker's best-effort progress callback: it folds in
// a throughput observation and, unless the scan is already complete, runs
// one step of the adaptive tuner.
func (p *ProducerConsumer) TryMilestone(now time.Time, countSoFar uint64) {
	if !p.mu.TryLock() {
		return
	}
	defer p.mu.Unlock()

	gps := p.state.advance(now, countSoFar)

	consumers := p.consumerCount.LoadAcquire()
	ev := p.logger.WithLevel(logLevel(p.verbose)).
		Uint64("grille_count_so_far", countSoFar).
		Float64("grilles_per_second", gps).
		Float64("best_grilles_per_second", p.state.bestGps)
	if p.verbose {
		ev = ev.Int64("consumers", consumers).
			Int("queue_size", p.queue.Size()).
			Int("queue_capacity", p.queue.Capacity())
	}
	ev.Msg("milestone")

	if gps > p.tuner.bestGps {
		p.tuner.bestGps = gps
		p.tuner.bestConsumers = int(consumers)
	}

	// The best-so-far update above still applies on the completion
	// milestone; only the adaptive spawn-or-shrink logic stops.
	if countSoFar >= p.cracker.GrilleCount() {
		return
	}

	switch {
	case gps < p.tuner.prevGps:
		p.tuner.improving--
	case gps > p.tuner.prevGps:
		p.tuner.improving++
	}

	if p.tuner.improving >= 1 || p.tuner.improving <= -2 {
		if p.tuner.improving < 0 {
			p.tuner.addingThreads = !p.tuner.addingThreads
		}
		p.tuner.improving = 0

		if p.tuner.addingThreads {
			p.startConsumer()
		} else {
			p.shutdownNConsumers.AddAcqRel(1)
		}
	}

	p.tuner.prevGps = gps
}

// BestConsumerCount returns the consumer count observed at the best
// throughput milestone seen so far. Exposed for strategy (f): the
// adaptive tuner's convergence test.
func (p *ProducerConsumer) BestConsumerCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.tuner.bestConsumers
}
