package match

import (
	"math"
	"regexp"
	"sort"
	"strings"
)

// maxTFIDFFeatures caps the vocabulary at the most frequent terms.
const maxTFIDFFeatures = 1000

var tokenPattern = regexp.MustCompile(`[a-z0-9][a-z0-9+#./-]*`)

// englishStopWords is a compact English stop-word list applied before
// term counting.
var englishStopWords = map[string]struct{}{}

func init() {
	words := []string{
		"a", "about", "above", "after", "again", "against", "all", "am", "an",
		"and", "any", "are", "as", "at", "be", "because", "been", "before",
		"being", "below", "between", "both", "but", "by", "can", "could",
		"did", "do", "does", "doing", "down", "during", "each", "few", "for",
		"from", "further", "had", "has", "have", "having", "he", "her",
		"here", "hers", "him", "his", "how", "i", "if", "in", "into", "is",
		"it", "its", "itself", "just", "me", "more", "most", "my", "myself",
		"no", "nor", "not", "now", "of", "off", "on", "once", "only", "or",
		"other", "our", "ours", "out", "over", "own", "same", "she",
		"should", "so", "some", "such", "than", "that", "the", "their",
		"theirs", "them", "then", "there", "these", "they", "this", "those",
		"through", "to", "too", "under", "until", "up", "very", "was", "we",
		"were", "what", "when", "where", "which", "while", "who", "whom",
		"why", "will", "with", "would", "you", "your", "yours", "yourself",
	}
	for _, w := range words {
		englishStopWords[w] = struct{}{}
	}
}

// TFIDFSimilarity builds a fresh TF-IDF model over exactly the two input
// documents (unigrams and bigrams, stop words removed, vocabulary capped)
// and returns the cosine similarity of their vectors.
func TFIDFSimilarity(textA, textB string) float64 {
	docA := termCounts(textA)
	docB := termCounts(textB)
	if len(docA) == 0 || len(docB) == 0 {
		return 0
	}

	vocabulary := selectVocabulary(docA, docB)
	if len(vocabulary) == 0 {
		return 0
	}

	vecA := tfidfVector(docA, docB, vocabulary)
	vecB := tfidfVector(docB, docA, vocabulary)
	return cosine(vecA, vecB)
}

// termCounts tokenizes lower-cased text and counts unigrams and bigrams,
// skipping stop words.
func termCounts(text string) map[string]float64 {
	tokens := tokenPattern.FindAllString(strings.ToLower(text), -1)
	kept := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if _, stop := englishStopWords[tok]; !stop {
			kept = append(kept, tok)
		}
	}

	counts := make(map[string]float64, len(kept)*2)
	for i, tok := range kept {
		counts[tok]++
		if i+1 < len(kept) {
			counts[tok+" "+kept[i+1]]++
		}
	}
	return counts
}

// selectVocabulary keeps the highest-frequency terms across both
// documents, bounded by maxTFIDFFeatures. Ties break alphabetically so
// the result is deterministic.
func selectVocabulary(docA, docB map[string]float64) []string {
	total := make(map[string]float64, len(docA)+len(docB))
	for term, count := range docA {
		total[term] += count
	}
	for term, count := range docB {
		total[term] += count
	}

	terms := make([]string, 0, len(total))
	for term := range total {
		terms = append(terms, term)
	}
	sort.Slice(terms, func(i, j int) bool {
		if total[terms[i]] != total[terms[j]] {
			return total[terms[i]] > total[terms[j]]
		}
		return terms[i] < terms[j]
	})
	if len(terms) > maxTFIDFFeatures {
		terms = terms[:maxTFIDFFeatures]
	}
	return terms
}

// tfidfVector builds the smoothed TF-IDF vector for doc against a
// two-document corpus {doc, other}.
func tfidfVector(doc, other map[string]float64, vocabulary []string) []float64 {
	const corpusSize = 2
	vec := make([]float64, len(vocabulary))
	for i, term := range vocabulary {
		tf := doc[term]
		if tf == 0 {
			continue
		}
		df := 0.0
		if doc[term] > 0 {
			df++
		}
		if other[term] > 0 {
			df++
		}
		idf := math.Log((corpusSize+1)/(df+1)) + 1
		vec[i] = tf * idf
	}
	return vec
}

func cosine(a, b []float64) float64 {
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
