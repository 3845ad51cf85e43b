package wordstrie_test

import (
	"fmt"
	"os"

	"github.com/voidland/turngrille/wordstrie"
)

// ExampleLoad demonstrates loading a dictionary and counting overlapping
// word occurrences in a candidate string: CATER contains CAT@0, ATE@1,
// and CATER@0, for a total of 3 matches.
func ExampleLoad() {
	f, err := os.CreateTemp("", "words-*.txt")
	if err != nil {
		fmt.Println(err)
		return
	}
	defer os.Remove(f.Name())
	if _, err := f.WriteString("cat\nate\ncater\nit\n"); err != nil {
		fmt.Println(err)
		return
	}
	if err := f.Close(); err != nil {
		fmt.Println(err)
		return
	}

	trie, err := wordstrie.Load(f.Name())
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Println(trie.CountWords("CATER"))

	// Output:
	// 3
}
