package native

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// rankAircraft returns the indices of names ordered by how well each matches query.
// Names containing the query come first, earliest match first; the rest are ordered
// by edit distance between the query and the same-length prefix of the name.
func rankAircraft(names []string, query string) []int {
	order := make([]int, len(names))
	for i := range order {
		order[i] = i
	}
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return order
	}

	qLen := len([]rune(q))
	scores := make([]int, len(names))
	for i, name := range names {
		n := strings.ToLower(name)
		if at := strings.Index(n, q); at >= 0 {
			scores[i] = at - 1000
			continue
		}
		prefix := []rune(n)
		if len(prefix) > qLen {
			prefix = prefix[:qLen]
		}
		scores[i] = levenshtein.ComputeDistance(q, string(prefix))
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] < scores[order[b]]
	})
	return order
}
