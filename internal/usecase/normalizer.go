package usecase

import "strings"

// Default similarity cutoff for snapping a token to a vocabulary term
const defaultSimilarityThreshold = 0.7

// nutritionTerms is the controlled vocabulary of canonical label terms.
// Read-only process-wide state; order matters for tie-breaking.
var nutritionTerms = []string{
	"calories", "fat", "trans fat", "saturated fat", "cholesterol",
	"sodium", "carbohydrates", "sugar", "protein", "fiber", "vitamin", "iron",
}

// NormalizerConfig holds configuration for the term normalizer
type NormalizerConfig struct {
	SimilarityThreshold float64
}

// TermNormalizer corrects OCR noise by snapping each whitespace-delimited
// token to the nearest nutrition vocabulary term when sufficiently similar.
// It is pure and safe for concurrent use.
type TermNormalizer struct {
	threshold float64
}

// NewTermNormalizer creates a normalizer with the given configuration
func NewTermNormalizer(config NormalizerConfig) *TermNormalizer {
	threshold := config.SimilarityThreshold
	if threshold <= 0 {
		threshold = defaultSimilarityThreshold
	}
	return &TermNormalizer{threshold: threshold}
}

// Normalize splits the input on whitespace and emits, for each token, either
// the single closest vocabulary term (similarity at or above the threshold)
// or the token unchanged. Tokens are joined with single spaces.
func (n *TermNormalizer) Normalize(rawText string) string {
	words := strings.Fields(rawText)
	if len(words) == 0 {
		return ""
	}

	corrected := make([]string, 0, len(words))
	for _, word := range words {
		if term, ok := n.closestTerm(word); ok {
			corrected = append(corrected, term)
		} else {
			corrected = append(corrected, word)
		}
	}
	return strings.Join(corrected, " ")
}

// closestTerm returns the best-scoring vocabulary term for the token, if its
// similarity meets the threshold. Ties keep the earlier vocabulary term.
func (n *TermNormalizer) closestTerm(token string) (string, bool) {
	lowered := strings.ToLower(token)

	best := ""
	bestScore := 0.0
	for _, term := range nutritionTerms {
		score := sequenceRatio(lowered, term)
		if score > bestScore {
			bestScore = score
			best = term
		}
	}

	if best == "" || bestScore < n.threshold {
		return "", false
	}
	return best, true
}

// sequenceRatio computes 2*M/T similarity between two strings, where M is
// the total size of the greedy longest-matching-blocks decomposition and T
// the combined length. Equal empty strings score 1.
func sequenceRatio(a, b string) float64 {
	ra := []rune(a)
	rb := []rune(b)
	total := len(ra) + len(rb)
	if total == 0 {
		return 1
	}
	return 2 * float64(matchingChars(ra, rb)) / float64(total)
}

// matchingChars sums the matching-block sizes: it finds the longest common
// substring (earliest position on ties) and recurses on the pieces to its
// left and right.
func matchingChars(a, b []rune) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	bestI, bestJ, bestSize := 0, 0, 0
	prev := make([]int, len(b)+1)
	for i := 0; i < len(a); i++ {
		curr := make([]int, len(b)+1)
		for j := 0; j < len(b); j++ {
			if a[i] == b[j] {
				curr[j+1] = prev[j] + 1
				if curr[j+1] > bestSize {
					bestSize = curr[j+1]
					bestI = i - bestSize + 1
					bestJ = j - bestSize + 1
				}
			}
		}
		prev = curr
	}

	if bestSize == 0 {
		return 0
	}
	return bestSize +
		matchingChars(a[:bestI], b[:bestJ]) +
		matchingChars(a[bestI+bestSize:], b[bestJ+bestSize:])
}
