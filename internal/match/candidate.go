package match

import (
	"sort"
)

// MinScore is the similarity below which a name is not worth suggesting.
const MinScore = 0.5

// Candidate is one name scored against a target.
type Candidate struct {
	Name  string
	Score float64 // NameSimilarity to the target, 0-1
}

// CandidateList sorts by score (descending), then by name.
type CandidateList []Candidate

func (c CandidateList) Len() int      { return len(c) }
func (c CandidateList) Swap(i, j int) { c[i], c[j] = c[j], c[i] }

func (c CandidateList) Less(i, j int) bool {
	if c[i].Score != c[j].Score {
		return c[i].Score > c[j].Score
	}

	return c[i].Name < c[j].Name
}

// Names returns the candidate names in list order.
func (c CandidateList) Names() []string {
	names := make([]string, len(c))
	for i := range c {
		names[i] = c[i].Name
	}

	return names
}

// Rank scores every distinct name against target, best first.
func Rank(target string, names []string) CandidateList {
	seen := make(map[string]bool, len(names))

	var list CandidateList

	for _, name := range names {
		if seen[name] {
			continue
		}

		seen[name] = true
		list = append(list, Candidate{Name: name, Score: NameSimilarity(target, name)})
	}

	sort.Sort(list)

	return list
}

// Suggest returns up to limit names scoring at least MinScore against target.
// A limit of zero or less means no limit.
func Suggest(target string, names []string, limit int) []string {
	var out CandidateList

	for _, c := range Rank(target, names) {
		if c.Score < MinScore {
			break
		}

		out = append(out, c)
	}

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}

	return out.Names()
}
