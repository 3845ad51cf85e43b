// Package cracker owns the ciphertext, dictionary trie, and shared search
// state for one brute-force run, and knows how to score a single grille.
package cracker

import (
	"fmt"
	"math/bits"
	"sort"
	"sync"
	"time"

	"code.hybscloud.com/atomix"

	"github.com/voidland/turngrille/grille"
	"github.com/voidland/turngrille/wordstrie"
)

// MinDetectedWordCount is the minimum dictionary word count for a reading
// of a candidate to be kept. The forward and reversed readings are scored
// and kept independently.
const MinDetectedWordCount = 17

// MilestoneSink receives a best-effort progress callback. The active
// execution strategy implements this; the cracker never blocks waiting
// for a milestone to be handled.
type MilestoneSink interface {
	TryMilestone(now time.Time, countSoFar uint64)
}

// Cracker owns the immutable ciphertext and trie for one run, plus the
// shared mutable progress counter and candidate set.
type Cracker struct {
	ciphertext  string
	sideLength  int
	halfSide    int
	grilleCount uint64
	trie        *wordstrie.Trie

	grilleCountSoFar atomix.Uint64

	candMu     sync.Mutex
	candidates map[string]struct{}

	sink MilestoneSink
}

// New validates ciphertext and constructs a Cracker. ciphertext is
// uppercased first; it must then match ^[A-Z]+$ and have length s² for
// some even positive s.
func New(ciphertext string, trie *wordstrie.Trie) (*Cracker, error) {
	upper := toUpper(ciphertext)
	for i := 0; i < len(upper); i++ {
		if upper[i] < 'A' || upper[i] > 'Z' {
			return nil, fmt.Errorf("cracker: ciphertext contains a non-letter character at position %d", i)
		}
	}

	s := isqrt(len(upper))
	if s*s != len(upper) || s <= 0 || s%2 != 0 {
		return nil, fmt.Errorf("cracker: ciphertext length %d is not an even perfect square", len(upper))
	}

	h := s / 2
	return &Cracker{
		ciphertext:  upper,
		sideLength:  s,
		halfSide:    h,
		grilleCount: uint64(1) << uint(h*h*2), // 4^(h*h) = 2^(2*h*h)
		trie:        trie,
		candidates:  make(map[string]struct{}),
	}, nil
}

// SetMilestoneSink wires the active strategy's milestone callback. Must be
// called before the strategy starts applying grilles.
func (c *Cracker) SetMilestoneSink(sink MilestoneSink) {
	c.sink = sink
}

// SideLength returns s.
func (c *Cracker) SideLength() int { return c.sideLength }

// HalfSideLength returns s/2, the grille's half-side length.
func (c *Cracker) HalfSideLength() int { return c.halfSide }

// GrilleCount returns G = 4^(s²/4), the total number of distinct grilles.
func (c *Cracker) GrilleCount() uint64 { return c.grilleCount }

// MilestoneInterval returns G/1000, floored to at least 1.
func (c *Cracker) MilestoneInterval() uint64 {
	if c.grilleCount < 1000 {
		return 1
	}
	return c.grilleCount / 1000
}

// GrilleCountSoFar returns the current value of the shared progress
// counter (an acquire load).
func (c *Cracker) GrilleCountSoFar() uint64 {
	return c.grilleCountSoFar.LoadAcquire()
}

// Contains reports whether candidate is in the accepted candidate set.
func (c *Cracker) Contains(candidate string) bool {
	c.candMu.Lock()
	defer c.candMu.Unlock()
	_, ok := c.candidates[candidate]
	return ok
}

// Candidates returns a sorted snapshot of the accepted candidate set.
func (c *Cracker) Candidates() []string {
	c.candMu.Lock()
	defer c.candMu.Unlock()
	out := make([]string, 0, len(c.candidates))
	for s := range c.candidates {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// ApplyGrille reads the ciphertext through g across its four rotations,
// scores the forward and reversed readings against the trie, keeps either
// reading that meets [MinDetectedWordCount], advances the shared progress
// counter, and fires the milestone sink when the post-increment count is a
// multiple of [Cracker.MilestoneInterval].
func (c *Cracker) ApplyGrille(g *grille.Grille) {
	candidate := c.readCandidate(g)

	c.score(candidate)
	c.score(reverseString(candidate))

	postCount := c.grilleCountSoFar.AddAcqRel(1)
	if c.sink != nil && postCount%c.MilestoneInterval() == 0 {
		c.sink.TryMilestone(time.Now(), postCount)
	}
}

// readCandidate reads the ciphertext through g: for each rotation, row by
// row, the characters under the grille's holes, concatenated across all
// four rotations into one length-s² string.
func (c *Cracker) readCandidate(g *grille.Grille) string {
	s := c.sideLength
	candidate := make([]byte, 0, s*s)

	for r := 0; r < 4; r++ {
		for y := 0; y < s; y++ {
			for x := 0; x < s; x++ {
				if g.IsHole(x, y, r) {
					candidate = append(candidate, c.ciphertext[y*s+x])
				}
			}
		}
	}

	return string(candidate)
}

func (c *Cracker) score(candidate string) {
	if c.trie.CountWords(candidate) < MinDetectedWordCount {
		return
	}
	c.candMu.Lock()
	c.candidates[candidate] = struct{}{}
	c.candMu.Unlock()
}

func reverseString(s string) string {
	b := []byte(s)
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return string(b)
}

func toUpper(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'a' && c <= 'z' {
			b[i] = c - ('a' - 'A')
		}
	}
	return string(b)
}

// isqrt returns the integer square root of n.
func isqrt(n int) int {
	if n < 0 {
		return -1
	}
	if n == 0 {
		return 0
	}
	r := 1 << ((bits.Len(uint(n)) + 1) / 2)
	for {
		next := (r + n/r) / 2
		if next >= r {
			return r
		}
		r = next
	}
}
