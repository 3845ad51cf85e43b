package wordstrie

import "testing"

func build(words ...string) *Trie {
	t := New()
	for _, w := range words {
		t.insert(w)
	}
	return t
}

func TestCountWordsOverlap(t *testing.T) {
	tr := build("CAT", "ATE", "CATER")

	// CATER contains CAT@0, ATE@1, CATER@0 = 3 matches.
	got := tr.CountWords("CATER")
	if got != 3 {
		t.Fatalf("CountWords(CATER) = %d, want 3", got)
	}
}

func TestCountWordsNoMatch(t *testing.T) {
	tr := build("DOG")
	if got := tr.CountWords("CATS"); got != 0 {
		t.Fatalf("CountWords(CATS) = %d, want 0", got)
	}
}

func TestCountWordsMonotoneUnderConcatenation(t *testing.T) {
	tr := build("CAT", "DOG", "ATEDOG")
	a, b := "CATE", "DOGCAT"

	ca := tr.CountWords(a)
	cb := tr.CountWords(b)
	cab := tr.CountWords(a + b)

	if cab < ca+cb {
		t.Fatalf("CountWords(a+b)=%d < CountWords(a)+CountWords(b)=%d", cab, ca+cb)
	}
}

func TestLoadNormalizesAndDropsShortWords(t *testing.T) {
	tr := New()
	for _, line := range []string{"cat", "a1b", "it", "don't"} {
		tr.insert(normalize(line))
	}

	if tr.CountWords("CAT") != 1 {
		t.Fatal("expected 'cat' to be normalized and kept")
	}
	if tr.CountWords("AB") != 0 {
		t.Fatal("'a1b' normalizes to 'AB', length 2, should be dropped")
	}
	if tr.CountWords("IT") != 0 {
		t.Fatal("'it' has length 2 and should be dropped")
	}
	if tr.CountWords("DONT") != 1 {
		t.Fatal("\"don't\" should normalize to 'DONT' and be kept")
	}
}
