package grille_test

import (
	"fmt"

	"github.com/voidland/turngrille/grille"
)

// ExampleNew demonstrates the core tiling invariant on the smallest
// possible grille (half-side 1, covering a 2×2 square): each cell is a
// hole at exactly one of the four rotations.
func ExampleNew() {
	g := grille.New(1, 0)

	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			for r := 0; r < 4; r++ {
				if g.IsHole(x, y, r) {
					fmt.Printf("(%d,%d) is a hole at rotation %d\n", x, y, r)
				}
			}
		}
	}

	// Output:
	// (0,0) is a hole at rotation 0
	// (1,0) is a hole at rotation 1
	// (0,1) is a hole at rotation 3
	// (1,1) is a hole at rotation 2
}

// ExampleNewInterval demonstrates enumerating a sub-range of grille
// ordinals with CloneNext, the owned-copy access mode used when grilles
// cross goroutine boundaries.
func ExampleNewInterval() {
	it := grille.NewInterval(1, 1, 4)

	for {
		g := it.CloneNext()
		if g == nil {
			break
		}
		fmt.Println(g.IsHole(0, 0, 0))
	}

	// Output:
	// false
	// false
	// false
}
