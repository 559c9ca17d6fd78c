package openalex

import "strings"

// AbstractFromInvertedIndex rebuilds an abstract from OpenAlex's
// word -> positions index. Unfilled positions are skipped.
func AbstractFromInvertedIndex(index map[string][]int) string {
	size := 0
	for _, positions := range index {
		for _, p := range positions {
			if p >= size {
				size = p + 1
			}
		}
	}
	if size == 0 {
		return ""
	}

	words := make([]string, size)
	for word, positions := range index {
		for _, p := range positions {
			if p >= 0 {
				words[p] = word
			}
		}
	}

	out := words[:0]
	for _, w := range words {
		if w != "" {
			out = append(out, w)
		}
	}
	return strings.Join(out, " ")
}

// Summarize keeps the first two sentences of text after collapsing
// whitespace. A sentence ends at '.', '!' or '?' followed by a space.
func Summarize(text string) string {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return ""
	}

	sentences := 0
	for i, f := range fields {
		if i == len(fields)-1 {
			break
		}
		if strings.ContainsAny(f[len(f)-1:], ".!?") {
			sentences++
			if sentences == 2 {
				return strings.Join(fields[:i+1], " ")
			}
		}
	}
	return strings.Join(fields, " ")
}
