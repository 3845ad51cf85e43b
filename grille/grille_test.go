package grille

import "testing"

// TestTiling checks the core invariant: the four rotations of any grille
// tile the side×side square exactly once.
func TestTiling(t *testing.T) {
	for h := 1; h <= 4; h++ {
		side := h * 2
		count := uint64(1)
		for i := 0; i < h*h; i++ {
			count *= 4
		}

		for ordinal := uint64(0); ordinal < count && ordinal < 64; ordinal++ {
			g := New(h, ordinal)
			for y := 0; y < side; y++ {
				for x := 0; x < side; x++ {
					holes := 0
					for r := 0; r < 4; r++ {
						if g.IsHole(x, y, r) {
							holes++
						}
					}
					if holes != 1 {
						t.Fatalf("h=%d ordinal=%d cell(%d,%d): got %d holes across rotations, want 1", h, ordinal, x, y, holes)
					}
				}
			}
		}
	}
}

// TestScenarioA is the literal s=2 example: grille ordinal 0 punches
// (0,0) at rotation 0, and the remaining three cells at the other three
// rotations, one each.
func TestScenarioA(t *testing.T) {
	g := New(1, 0)

	want := map[[2]int]int{
		{0, 0}: 0,
		{1, 0}: 1,
		{1, 1}: 2,
		{0, 1}: 3,
	}
	for cell, wantR := range want {
		for r := 0; r < 4; r++ {
			got := g.IsHole(cell[0], cell[1], r)
			if got != (r == wantR) {
				t.Errorf("IsHole(%d,%d,%d) = %v, want %v", cell[0], cell[1], r, got, r == wantR)
			}
		}
	}
}

// TestOrdinalRoundTrip checks that constructing Grille(h, k) matches
// incrementing k times from ordinal 0.
func TestOrdinalRoundTrip(t *testing.T) {
	const h = 2
	direct := New(h, 37)

	built := New(h, 0)
	for i := 0; i < 37; i++ {
		built.Increment()
	}

	for i := range direct.holes {
		if direct.holes[i] != built.holes[i] {
			t.Fatalf("digit %d: direct=%d built=%d", i, direct.holes[i], built.holes[i])
		}
	}
}

func TestIntervalCloneNext(t *testing.T) {
	it := NewInterval(1, 1, 4)

	var got []uint64
	for {
		g := it.CloneNext()
		if g == nil {
			break
		}
		got = append(got, ordinalOf(g))
	}

	want := []uint64{1, 2, 3}
	if len(got) != len(want) {
		t.Fatalf("got %d grilles, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("grille %d: got ordinal %d, want %d", i, got[i], want[i])
		}
	}
}

func TestIntervalNextIsBorrowed(t *testing.T) {
	it := NewInterval(1, 0, 2)

	first := it.Next()
	if first == nil {
		t.Fatal("expected a grille")
	}
	if first.holes[0] != 0 {
		t.Fatalf("first grille digit = %d, want 0", first.holes[0])
	}

	second := it.Next()
	if second == nil {
		t.Fatal("expected a second grille")
	}

	// Next loans the interval's single backing grille: the second call
	// advances it in place, so the first reference observes the new state.
	if first != second {
		t.Fatal("Next returned distinct grilles; expected the shared cursor")
	}
	if second.holes[0] != 1 {
		t.Fatalf("second grille digit = %d, want 1", second.holes[0])
	}
	if it.Next() != nil {
		t.Fatal("expected interval to be exhausted")
	}
}

// ordinalOf decodes a grille's digit array back to its ordinal, for tests
// that need to confirm enumeration order without exposing internals.
func ordinalOf(g *Grille) uint64 {
	var ord uint64
	for i := len(g.holes) - 1; i >= 0; i-- {
		ord = ord<<2 | uint64(g.holes[i])
	}
	return ord
}
