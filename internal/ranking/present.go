package ranking

import (
	"fmt"
	"strings"
)

// FormatRecommendations renders ranked candidates as plain text for a
// surrounding presentation layer (CLI, chat responses).
func FormatRecommendations(ranked []Candidate) string {
	if len(ranked) == 0 {
		return "No properties found matching your criteria."
	}

	var b strings.Builder
	for i, c := range ranked {
		fmt.Fprintf(&b, "%d. %s - $%.0f/night, sleeps %d (score %.2f)\n",
			i+1, c.Unit.Name, c.Unit.NightlyRate, c.Unit.MaxOccupancy, c.Score)
		if c.Unit.City != "" {
			fmt.Fprintf(&b, "   %s\n", c.Unit.City)
		}
		if len(c.Reasons) > 0 {
			fmt.Fprintf(&b, "   %s\n", strings.Join(c.Reasons, " • "))
		}
	}
	return b.String()
}
