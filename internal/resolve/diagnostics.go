package resolve

import "github.com/hbollon/go-edlib"

// suggestClosest finds the known module path most similar to importPath
// by Jaro-Winkler similarity, the same algorithm and library the
// teacher's semantic package uses for its own "did you mean" matching.
// Returns "" if candidates is empty or nothing clears minSimilarity.
func suggestClosest(importPath string, candidates []string, minSimilarity float64) string {
	best := ""
	bestScore := 0.0

	for _, candidate := range candidates {
		score, err := edlib.StringsSimilarity(importPath, candidate, edlib.JaroWinkler)
		if err != nil {
			continue
		}
		s := float64(score)
		if s > bestScore {
			bestScore = s
			best = candidate
		}
	}

	if bestScore < minSimilarity {
		return ""
	}
	return best
}

const defaultSuggestionThreshold = 0.75
