// Package match resolves free-text college name fragments against the
// catalog's canonical names using fuzzy string similarity.
package match

import "strings"

// DefaultThreshold is the minimum similarity (0-100 scale) a match must
// strictly exceed to be accepted.
const DefaultThreshold = 70

// Resolver fuzzy-matches a name fragment to one canonical catalog name. For
// a fixed name list the same fragment always resolves to the same name or to
// nothing.
type Resolver struct {
	names     []string
	threshold int
}

// NewResolver creates a resolver over the given canonical names. A
// non-positive threshold uses DefaultThreshold.
func NewResolver(names []string, threshold int) *Resolver {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Resolver{names: names, threshold: threshold}
}

// Resolve returns the canonical name best matching the fragment, or false if
// the fragment is empty or no name scores above the threshold. Each name is
// scored as the maximum of its whole-name similarity and its acronym
// similarity against the fragment and against each fragment word, so that
// surrounding words ("for", "of", trailing "in") do not drown out an
// embedded name or abbreviation. Ties keep the first name encountered.
func (r *Resolver) Resolve(fragment string) (string, bool) {
	fragment = strings.ToLower(strings.TrimSpace(fragment))
	if fragment == "" {
		return "", false
	}

	pieces := append([]string{fragment}, strings.Fields(fragment)...)

	best := ""
	bestScore := -1
	for _, name := range r.names {
		if score := matchScore(name, pieces); score > bestScore {
			best = name
			bestScore = score
		}
	}

	if bestScore <= r.threshold {
		return "", false
	}
	return best, true
}

// matchScore scores one canonical name against the already-lowercased
// fragment pieces.
func matchScore(name string, pieces []string) int {
	lower := strings.ToLower(name)
	acr := strings.ToLower(Acronym(name))

	score := 0
	for _, piece := range pieces {
		score = max(score, Ratio(lower, piece), Ratio(acr, piece))
	}
	return score
}

// Acronym builds the first-letters-of-each-word abbreviation of a name,
// e.g. "Indian Institute of Technology" -> "IIoT".
func Acronym(name string) string {
	var sb strings.Builder
	for _, word := range strings.Fields(name) {
		r := []rune(word)
		sb.WriteRune(r[0])
	}
	return sb.String()
}

// Ratio computes a similarity ratio between two strings on a 0-100 scale,
// derived from their Levenshtein edit distance: identical strings score 100,
// strings with nothing in common score 0.
func Ratio(a, b string) int {
	if a == b {
		return 100
	}
	longest := max(len(a), len(b))
	if longest == 0 {
		return 100
	}
	dist := levenshteinDistance(a, b)
	return int(100 * (float64(longest) - float64(dist)) / float64(longest))
}

// levenshteinDistance calculates the edit distance between two strings using
// two rows instead of the full matrix.
func levenshteinDistance(a, b string) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)

	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}

	return prev[len(b)]
}
