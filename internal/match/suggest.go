package match

import "sort"

// DefaultMinSimilarity is the lowest similarity a name needs to be suggested.
const DefaultMinSimilarity = 0.6

// DefaultMaxSuggestions bounds the number of suggestions in messages.
const DefaultMaxSuggestions = 3

// Candidate is a known name scored against a wanted name.
type Candidate struct {
	Name  string
	Score float64
}

// Rank scores every known name against wanted, best first. Ties keep the
// order of known, so results are deterministic.
func Rank(wanted string, known []string) []Candidate {
	out := make([]Candidate, 0, len(known))

	seen := make(map[string]bool, len(known))

	for _, name := range known {
		if seen[name] || name == wanted {
			continue
		}

		seen[name] = true

		out = append(out, Candidate{Name: name, Score: NameSimilarity(wanted, name)})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })

	return out
}

// Suggest returns up to limit known names at least DefaultMinSimilarity
// similar to wanted.
func Suggest(wanted string, known []string, limit int) []string {
	var out []string

	for _, c := range Rank(wanted, known) {
		if c.Score < DefaultMinSimilarity || len(out) == limit {
			break
		}

		out = append(out, c.Name)
	}

	return out
}
