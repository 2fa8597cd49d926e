package match

// Levenshtein computes the edit distance between two names, counted in
// runes: the minimum number of single-rune insertions, deletions or
// substitutions turning a into b.
func Levenshtein(a, b string) int {
	if a == b {
		return 0
	}

	ra, rb := []rune(a), []rune(b)

	// keep the shorter name in the row
	if len(ra) > len(rb) {
		ra, rb = rb, ra
	}

	if len(ra) == 0 {
		return len(rb)
	}

	row := make([]int, len(ra)+1)
	for i := range row {
		row[i] = i
	}

	for j := 1; j <= len(rb); j++ {
		diag := row[0]
		row[0] = j

		for i := 1; i <= len(ra); i++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}

			next := min(row[i]+1, row[i-1]+1, diag+cost)
			diag = row[i]
			row[i] = next
		}
	}

	return row[len(ra)]
}

// Similarity returns 1 - distance/maxLen in [0, 1]; 1 means identical.
func Similarity(a, b string) float64 {
	la, lb := len([]rune(a)), len([]rune(b))
	if la == 0 && lb == 0 {
		return 1.0
	}

	return 1.0 - float64(Levenshtein(a, b))/float64(max(la, lb))
}

// NameSimilarity compares two element names after normalization, taking the
// better of the plain and the suffix-stripped comparison.
func NameSimilarity(a, b string) float64 {
	plain := Similarity(NormalizeName(a), NormalizeName(b))
	stripped := Similarity(NormalizeNameWithSuffixStrip(a), NormalizeNameWithSuffixStrip(b))

	return max(plain, stripped)
}
