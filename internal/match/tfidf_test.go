package match

import (
	"math"
	"testing"
)

func TestTFIDFSimilarityIdenticalTexts(t *testing.T) {
	text := "python developer building django services with postgresql"
	got := TFIDFSimilarity(text, text)

	if math.Abs(got-1) > 1e-9 {
		t.Errorf("identical texts: similarity = %v, want 1", got)
	}
}

func TestTFIDFSimilarityDisjointTexts(t *testing.T) {
	got := TFIDFSimilarity("python django backend", "pastry chef croissant")

	if got != 0 {
		t.Errorf("disjoint texts: similarity = %v, want 0", got)
	}
}

func TestTFIDFSimilarityPartialOverlap(t *testing.T) {
	got := TFIDFSimilarity(
		"python developer with django experience",
		"python engineer working on kubernetes",
	)

	if got <= 0 || got >= 1 {
		t.Errorf("partial overlap: similarity = %v, want value in (0,1)", got)
	}
}

func TestTFIDFSimilarityEmptyInput(t *testing.T) {
	if got := TFIDFSimilarity("", "python"); got != 0 {
		t.Errorf("empty input: similarity = %v, want 0", got)
	}
	if got := TFIDFSimilarity("the and of", "python"); got != 0 {
		t.Errorf("stop-words-only input: similarity = %v, want 0", got)
	}
}

func TestTermCountsBigramsAndStopWords(t *testing.T) {
	counts := termCounts("the python developer")

	if _, ok := counts["the"]; ok {
		t.Error("stop word should be removed")
	}
	if counts["python"] != 1 {
		t.Errorf("unigram count = %v, want 1", counts["python"])
	}
	if counts["python developer"] != 1 {
		t.Errorf("bigram count = %v, want 1", counts["python developer"])
	}
}

func TestTFIDFSimilarityDeterministic(t *testing.T) {
	a := "python django rest api design"
	b := "senior python engineer django platform"

	first := TFIDFSimilarity(a, b)
	second := TFIDFSimilarity(a, b)
	if first != second {
		t.Errorf("similarity not deterministic: %v vs %v", first, second)
	}
}
