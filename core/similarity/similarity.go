package similarity

import (
	"strings"
)

// JaroWinkler returns the Jaro-Winkler similarity of a and b in [0,1].
// Identical inputs score 1; if exactly one input is empty the score is 0.
// The Winkler prefix bonus favors strings sharing a common prefix, which
// suits filenames that diverge only in their suffix.
func JaroWinkler(a, b string) float64 {
	if a == b {
		return 1
	}
	if a == "" || b == "" {
		return 0
	}

	jaro := jaro(a, b)
	if jaro == 0 {
		return 0
	}

	// Common prefix up to 4 characters
	prefix := 0
	for i := 0; i < len(a) && i < len(b) && i < 4; i++ {
		if a[i] != b[i] {
			break
		}
		prefix++
	}

	const scaling = 0.1
	return jaro + float64(prefix)*scaling*(1-jaro)
}

func jaro(a, b string) float64 {
	la, lb := len(a), len(b)
	window := max(la, lb)/2 - 1
	if window < 0 {
		window = 0
	}

	matchedA := make([]bool, la)
	matchedB := make([]bool, lb)

	matches := 0
	for i := 0; i < la; i++ {
		lo := max(0, i-window)
		hi := min(lb-1, i+window)
		for j := lo; j <= hi; j++ {
			if matchedB[j] || a[i] != b[j] {
				continue
			}
			matchedA[i] = true
			matchedB[j] = true
			matches++
			break
		}
	}

	if matches == 0 {
		return 0
	}

	// Count transpositions between the matched sequences
	transpositions := 0
	j := 0
	for i := 0; i < la; i++ {
		if !matchedA[i] {
			continue
		}
		for !matchedB[j] {
			j++
		}
		if a[i] != b[j] {
			transpositions++
		}
		j++
	}

	m := float64(matches)
	t := float64(transpositions) / 2
	return (m/float64(la) + m/float64(lb) + (m-t)/m) / 3
}

// TokenOverlap returns the Jaccard similarity of the bigram sets of a
// and b in [0,1]. Identical inputs score 1; if exactly one input is
// empty the score is 0.
func TokenOverlap(a, b string) float64 {
	if a == b {
		return 1
	}
	if a == "" || b == "" {
		return 0
	}

	ba := bigrams(a)
	bb := bigrams(b)
	if len(ba) == 0 || len(bb) == 0 {
		// Single-character inputs have no bigrams; fall back to equality
		return 0
	}

	intersection := 0
	for g := range ba {
		if _, ok := bb[g]; ok {
			intersection++
		}
	}
	union := len(ba) + len(bb) - intersection
	return float64(intersection) / float64(union)
}

func bigrams(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for i := 0; i+2 <= len(s); i++ {
		set[s[i:i+2]] = struct{}{}
	}
	return set
}

// Levenshtein returns the edit distance between a and b.
func Levenshtein(a, b string) int {
	if a == b {
		return 0
	}
	if a == "" {
		return len(b)
	}
	if b == "" {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := 0; j <= len(b); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(min(curr[j-1]+1, prev[j]+1), prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

// LevenshteinSimilarity maps edit distance into [0,1], where 1 means
// identical. Two empty strings score 1.
func LevenshteinSimilarity(a, b string) float64 {
	if a == b {
		return 1
	}
	longest := max(len(a), len(b))
	if longest == 0 {
		return 1
	}
	return 1 - float64(Levenshtein(a, b))/float64(longest)
}

// Trigrams returns the set of 3-character substrings of s.
// Strings shorter than 3 characters have no trigrams.
func Trigrams(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for i := 0; i+3 <= len(s); i++ {
		set[s[i:i+3]] = struct{}{}
	}
	return set
}

// TrigramOverlap counts the trigrams of a that also occur in b.
// It is a cheap pre-filter, not a normalized similarity.
func TrigramOverlap(a, b string) int {
	tb := Trigrams(b)
	count := 0
	for g := range Trigrams(a) {
		if _, ok := tb[g]; ok {
			count++
		}
	}
	return count
}

// Stem reduces s to a crude consonant skeleton by dropping every vowel
// after the first character. "semester" and "semster" stem alike, which
// recovers matches lost to dropped or doubled vowels in hand-typed
// album names.
func Stem(s string) string {
	if len(s) <= 1 {
		return s
	}
	var sb strings.Builder
	sb.WriteByte(s[0])
	for i := 1; i < len(s); i++ {
		switch s[i] {
		case 'a', 'e', 'i', 'o', 'u', 'A', 'E', 'I', 'O', 'U':
			continue
		}
		sb.WriteByte(s[i])
	}
	return sb.String()
}

// NumericSkeleton collapses every run of digits in s to a single '#'.
// Filenames differing only in counters ("img001" vs "img017") share a
// skeleton.
func NumericSkeleton(s string) string {
	var sb strings.Builder
	inDigits := false
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			if !inDigits {
				sb.WriteByte('#')
				inDigits = true
			}
			continue
		}
		inDigits = false
		sb.WriteByte(s[i])
	}
	return sb.String()
}

// NormalizeSeparators lowercases s and folds hyphens and underscores
// into a single separator form.
func NormalizeSeparators(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, "-", "_")
	return s
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
