// Package grille implements the turning-grille enumeration state machine:
// a single grille's hole layout and rotation test, and an interval type
// that walks an ordinal range of grilles without allocating one per step
// unless the caller asks for an owned copy.
package grille

// Grille encodes one turning-grille stencil as a base-4 odometer over
// halfSideLength² cells. The digit at a cell selects which of the four
// rotational quadrants has a hole there.
//
// Across the four rotations, exactly one quadrant is punched per cell of
// the full side×side square — see [Grille.IsHole].
type Grille struct {
	halfSideLength int
	holes          []uint8
}

// New builds the grille named by ordinal: its digit array is the base-4
// expansion of ordinal, little-endian, zero-padded to halfSideLength²
// digits. ordinal must be < 4^(halfSideLength²) for the grille to be
// distinct from others in the same enumeration; New does not itself
// validate this (the caller, typically a [GrilleInterval], owns the range).
func New(halfSideLength int, ordinal uint64) *Grille {
	g := &Grille{
		halfSideLength: halfSideLength,
		holes:          make([]uint8, halfSideLength*halfSideLength),
	}

	ord := ordinal
	for i := range g.holes {
		if ord == 0 {
			break
		}
		g.holes[i] = uint8(ord & 0b11)
		ord >>= 2
	}

	return g
}

// Clone returns an independent copy, safe to hand to another goroutine.
func (g *Grille) Clone() *Grille {
	holes := make([]uint8, len(g.holes))
	copy(holes, g.holes)
	return &Grille{halfSideLength: g.halfSideLength, holes: holes}
}

// Increment advances the grille to the next ordinal: its digit array is a
// little-endian base-4 counter. Overflow past the last digit is
// unreachable within any one [GrilleInterval] by construction (the
// interval's end ordinal never exceeds 4^(halfSideLength²)).
func (g *Grille) Increment() {
	for i := range g.holes {
		if g.holes[i] < 3 {
			g.holes[i]++
			return
		}
		g.holes[i] = 0
	}
}

// IsHole reports whether cell (x, y) of the side×side square (side =
// 2·halfSideLength) is punched when the stencil is read at the given
// rotation (0..3, counter-clockwise quarter turns).
//
// It rotates (x, y) back to the orientation the stencil's digit array was
// authored in, locates which of the four quadrants the rotated coordinate
// falls into (0=top-left, 1=top-right, 2=bottom-right, 3=bottom-left), maps
// it to the corresponding cell of the top-left quadrant, and compares the
// digit stored there against the quadrant index: the cell is a hole iff
// they match.
func (g *Grille) IsHole(x, y, rotation int) bool {
	sideLength := g.halfSideLength * 2

	var origX, origY int
	switch rotation {
	case 0:
		origX, origY = x, y
	case 1:
		origX, origY = y, sideLength-1-x
	case 2:
		origX, origY = sideLength-1-x, sideLength-1-y
	case 3:
		origX, origY = sideLength-1-y, x
	default:
		panic("grille: rotation must be in [0,4)")
	}

	var quadrant uint8
	var holeX, holeY int
	switch {
	case origX < g.halfSideLength && origY < g.halfSideLength:
		quadrant, holeX, holeY = 0, origX, origY
	case origX < g.halfSideLength:
		quadrant, holeX, holeY = 3, sideLength-1-origY, origX
	case origY < g.halfSideLength:
		quadrant, holeX, holeY = 1, origY, sideLength-1-origX
	default:
		quadrant, holeX, holeY = 2, sideLength-1-origX, sideLength-1-origY
	}

	return g.holes[holeX*g.halfSideLength+holeY] == quadrant
}

// GrilleInterval walks a half-open ordinal range [begin, end) of grilles.
//
// Two access modes are first-class: [GrilleInterval.CloneNext] hands an
// owned copy to a caller that will pass it to another goroutine (the
// producer side of the producer/consumer strategy), while
// [GrilleInterval.Next] loans a reference valid only until the following
// call (the serial and syncless strategies, which consume each grille
// before advancing).
type GrilleInterval struct {
	next           *Grille
	preincremented bool
	nextOrdinal    uint64
	end            uint64
}

// NewInterval creates an interval over [begin, end) for grilles of the
// given half-side length. The first call to CloneNext or Next returns the
// grille at ordinal begin exactly.
func NewInterval(halfSideLength int, begin, end uint64) *GrilleInterval {
	return &GrilleInterval{
		next:           New(halfSideLength, begin),
		preincremented: true,
		nextOrdinal:    begin,
		end:            end,
	}
}

// CloneNext returns an owned copy of the next grille in the interval, or
// nil once end−begin grilles have been returned.
func (it *GrilleInterval) CloneNext() *Grille {
	if it.nextOrdinal >= it.end {
		return nil
	}

	if !it.preincremented {
		it.next.Increment()
	}

	current := it.next.Clone()

	it.nextOrdinal++
	if it.nextOrdinal < it.end {
		it.next.Increment()
		it.preincremented = true
	}
	return current
}

// Next returns a reference to the next grille in the interval, valid only
// until the following call to CloneNext or Next, or nil once end−begin
// grilles have been returned.
func (it *GrilleInterval) Next() *Grille {
	if it.nextOrdinal >= it.end {
		return nil
	}

	if !it.preincremented {
		it.next.Increment()
	}
	it.preincremented = false

	it.nextOrdinal++
	return it.next
}
