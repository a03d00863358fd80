// Package matching implements name normalization and comparison for conflict
// screening. Matching is deliberately loose: a missed conflict is an ethics
// violation, a false positive costs a few minutes of review.
package matching

import "strings"

// Normalize lowercases a name, trims surrounding whitespace and collapses
// internal runs of whitespace to single spaces.
func Normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// NormalizeAll normalizes every term and drops entries that are empty after
// normalization.
func NormalizeAll(terms []string) []string {
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		if n := Normalize(t); n != "" {
			out = append(out, n)
		}
	}
	return out
}

// Matches reports whether a stored record name matches a candidate search
// term. Both inputs must already be normalized. Substring containment in
// either direction counts: "john smith" matches the record "john smith jr"
// and the record "smith" matches the candidate "anna smith".
func Matches(record, candidate string) bool {
	if record == "" || candidate == "" {
		return false
	}
	return strings.Contains(record, candidate) || strings.Contains(candidate, record)
}

// MatchAny returns the first candidate that matches the record, and whether
// any did.
func MatchAny(record string, candidates []string) (string, bool) {
	for _, c := range candidates {
		if Matches(record, c) {
			return c, true
		}
	}
	return "", false
}
