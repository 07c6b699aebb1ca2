package native

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRankAircraft(t *testing.T) {
	names := []string{"A320neo", "B737-800", "C172 Skyhawk", "DA40NG", "TBM 930"}

	tests := []struct {
		name  string
		query string
		first string
	}{
		{"empty query keeps order", "", "A320neo"},
		{"substring", "skyhawk", "C172 Skyhawk"},
		{"case insensitive", "tbm", "TBM 930"},
		{"earliest substring wins", "3", "A320neo"},
		{"typo falls back to edit distance", "b738", "B737-800"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order := rankAircraft(names, tt.query)
			assert.Len(t, order, len(names))
			assert.Equal(t, tt.first, names[order[0]])
		})
	}
}
