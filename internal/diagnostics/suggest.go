package diagnostics

// Suggest finds the closest candidate name to an unresolved identifier for
// a "did you mean" hint on Scope errors (spec §4.4's undeclared-name
// diagnostic). No example or third-party dependency in the corpus performs
// fuzzy string matching, so this is intentionally stdlib-only: bounded
// Levenshtein edit distance over a short candidate list (the symbols
// visible at the point of the error) is a handful of lines and doesn't
// justify pulling in a general-purpose string-distance module.
//
// The threshold scales with name length: short names (5 chars or fewer)
// must match within 2 edits, longer names within 3 — "zz" does not suggest
// "abc" (3 edits), but "accumulate" mistyped as "acmlate" (also 3 edits,
// from a 7-character name) still surfaces its correction.
func Suggest(name string, candidates []string) (string, bool) {
	threshold := 3
	if len(name) <= 5 {
		threshold = 2
	}

	best := ""
	bestDist := threshold + 1
	for _, c := range candidates {
		d := levenshtein(name, c)
		if d < bestDist {
			bestDist = d
			best = c
		}
	}
	if bestDist > threshold {
		return "", false
	}
	return best, true
}

// levenshtein computes the classic edit distance with a two-row dynamic
// program, O(len(a)*len(b)) time and O(min(len(a),len(b))) space.
func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) < len(rb) {
		ra, rb = rb, ra
	}

	prev := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	curr := make([]int, len(rb)+1)

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			del := prev[j] + 1
			ins := curr[j-1] + 1
			sub := prev[j-1] + cost
			curr[j] = min(del, min(ins, sub))
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}
