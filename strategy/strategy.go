// Package strategy implements the three execution strategies that drive a
// [cracker.Cracker] to completion: serial, producer/consumer with adaptive
// consumer-count tuning, and a partitioned syncless worker pool.
package strategy

import (
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"

	"github.com/voidland/turngrille/cracker"
)

// Strategy drives a cracker through every grille in [0, G) exactly once.
type Strategy interface {
	// Run applies every grille in c's range and returns an error if
	// c.GrilleCountSoFar() does not equal c.GrilleCount() at the end.
	Run(c *cracker.Cracker) error
}

// milestoneState is the bookkeeping shared by every strategy's milestone
// callback: elapsed-time throughput since the last milestone, and the best
// throughput observed so far.
type milestoneState struct {
	start                 time.Time
	milestoneStart        time.Time
	countAtMilestoneStart uint64
	bestGps               float64
}

func (m *milestoneState) init(now time.Time) {
	m.start = now
	m.milestoneStart = now
}

// advance folds in a new milestone observation and returns the throughput
// (grilles/second) since the previous one.
func (m *milestoneState) advance(now time.Time, countSoFar uint64) float64 {
	elapsed := now.Sub(m.milestoneStart).Seconds()
	delta := countSoFar - m.countAtMilestoneStart

	var gps float64
	if elapsed > 0 {
		gps = float64(delta) / elapsed
	}
	if gps > m.bestGps {
		m.bestGps = gps
	}

	m.milestoneStart = now
	m.countAtMilestoneStart = countSoFar
	return gps
}

func lostGrillesErr(gotCount, wantCount uint64) error {
	return fmt.Errorf("some grilles got lost: grilleCountSoFar=%d, want %d", gotCount, wantCount)
}

// divRound splits total into n roughly equal parts, rounding to the
// nearest integer. Callers must still clamp the final partition's end to
// total, since round-off can otherwise leave it short or long by a grille
// or two.
func divRound(total, n uint64) uint64 {
	return uint64(math.Round(float64(total) / float64(n)))
}

// formatPercent renders a percentage to one decimal place.
func formatPercent(pct float64) string {
	return fmt.Sprintf("%.1f", pct)
}

// logLevel returns Info when verbose milestone logging is enabled, Debug
// (effectively silent at the orchestrator's configured level) otherwise.
func logLevel(verbose bool) zerolog.Level {
	if verbose {
		return zerolog.InfoLevel
	}
	return zerolog.DebugLevel
}
