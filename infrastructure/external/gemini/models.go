package gemini

import (
	"slices"
	"strings"
)

// ScoreModel ranks a model name: newer generations first, then pro
// over flash, with preview and experimental builds slightly demoted.
func ScoreModel(name string) int {
	lower := strings.ToLower(name)
	score := 0
	for _, gen := range []struct {
		tag    string
		points int
	}{{"2.5", 400}, {"2.0", 300}, {"1.5", 200}, {"1.0", 100}} {
		if strings.Contains(lower, gen.tag) {
			score += gen.points
		}
	}
	if strings.Contains(lower, "pro") {
		score += 20
	}
	if strings.Contains(lower, "flash") {
		score += 10
	}
	if strings.Contains(lower, "preview") || strings.Contains(lower, "exp") {
		score -= 5
	}
	return score
}

// RankModels deduplicates names and orders them by descending score,
// keeping the listing order for ties.
func RankModels(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	ranked := make([]string, 0, len(names))
	for _, name := range names {
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		ranked = append(ranked, name)
	}
	slices.SortStableFunc(ranked, func(a, b string) int {
		return ScoreModel(b) - ScoreModel(a)
	})
	return ranked
}
