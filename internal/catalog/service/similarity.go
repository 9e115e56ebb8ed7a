package service

import (
	"math"
	"sort"
	"strings"

	"github.com/agext/levenshtein"
	catalogdomain "github.com/pressratelabs/pressrate/internal/catalog/domain"
)

// normalizeName is the canonical form every catalog lookup and insert uses.
func normalizeName(raw string) string {
	return strings.ToUpper(strings.Join(strings.Fields(raw), " "))
}

// similarityScore maps edit-distance similarity onto 0..100. Only strings
// identical after normalization score 100; near-identical long strings that
// would round up are capped at 99 so the exact-match check stays unambiguous.
func similarityScore(candidate, existing string) int {
	if candidate == existing {
		return 100
	}
	score := int(math.Round(levenshtein.Similarity(candidate, existing, nil) * 100))
	if score > 99 {
		score = 99
	}
	return score
}

// rankMatches scores candidate against every entry and orders the result
// best first, ties broken by id ascending for reproducible output.
func rankMatches(candidate string, entries []catalogdomain.DimensionEntity) []catalogdomain.Match {
	matches := make([]catalogdomain.Match, 0, len(entries))
	for _, e := range entries {
		matches = append(matches, catalogdomain.Match{
			ID:    e.ID,
			Name:  e.Name,
			Code:  e.Code,
			Score: similarityScore(candidate, e.Name),
		})
	}
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].ID < matches[j].ID
	})
	return matches
}
