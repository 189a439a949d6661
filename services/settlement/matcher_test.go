package settlement

import (
	"testing"
)

func assertEqual(t *testing.T, expected, actual interface{}, msg string) {
	if expected != actual {
		t.Errorf("%s: expected %v, got %v", msg, expected, actual)
	}
}

func TestMatchSide(t *testing.T) {
	tests := []struct {
		name      string
		selection string
		homeTeam  string
		awayTeam  string
		expected  Side
		scenario  string
	}{
		{
			name:      "Fragment inside home name",
			selection: "Celtics ML",
			homeTeam:  "Boston Celtics",
			awayTeam:  "Miami Heat",
			expected:  SideHome,
			scenario:  "Nickname token matches the full home name",
		},
		{
			name:      "Fragment inside away name",
			selection: "Heat -3.5",
			homeTeam:  "Boston Celtics",
			awayTeam:  "Miami Heat",
			expected:  SideAway,
			scenario:  "Nickname token matches the full away name",
		},
		{
			name:      "City token matches home",
			selection: "Boston to win",
			homeTeam:  "Boston Celtics",
			awayTeam:  "Miami Heat",
			expected:  SideHome,
			scenario:  "City prefix is a substring of the home name",
		},
		{
			name:      "Team name inside fragment",
			selection: "Heat-Celtics",
			homeTeam:  "Heat",
			awayTeam:  "Hawks",
			expected:  SideHome,
			scenario:  "Short team name contained in a longer token",
		},
		{
			name:      "Case insensitive",
			selection: "CELTICS moneyline",
			homeTeam:  "boston celtics",
			awayTeam:  "Miami Heat",
			expected:  SideHome,
			scenario:  "Matching ignores case on both sides",
		},
		{
			name:      "No side matches",
			selection: "Game total over 210",
			homeTeam:  "Boston Celtics",
			awayTeam:  "Miami Heat",
			expected:  SideUnmatched,
			scenario:  "Token names neither team",
		},
		{
			name:      "Both sides match is ambiguous",
			selection: "New York",
			homeTeam:  "New York Knicks",
			awayTeam:  "New York Nets",
			expected:  SideUnmatched,
			scenario:  "Same-city matchup cannot be resolved by city token",
		},
		{
			name:      "Empty selection",
			selection: "   ",
			homeTeam:  "Boston Celtics",
			awayTeam:  "Miami Heat",
			expected:  SideUnmatched,
			scenario:  "Whitespace-only selection has no token",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			side := MatchSide(tt.selection, tt.homeTeam, tt.awayTeam)
			assertEqual(t, tt.expected, side, tt.scenario)
		})
	}
}

func TestParseLine(t *testing.T) {
	tests := []struct {
		name      string
		selection string
		expected  float64
		found     bool
	}{
		{name: "Negative spread", selection: "Celtics -3.5", expected: -3.5, found: true},
		{name: "Positive spread with plus", selection: "Heat +7.5", expected: 7.5, found: true},
		{name: "Total line", selection: "over 210.5", expected: 210.5, found: true},
		{name: "Prop line", selection: "Tatum over 27.5 points", expected: 27.5, found: true},
		{name: "Whole number line", selection: "under 210", expected: 210, found: true},
		{name: "No line present", selection: "Celtics ML", expected: 0, found: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line, found := ParseLine(tt.selection)
			assertEqual(t, tt.found, found, tt.name+" found")
			assertEqual(t, tt.expected, line, tt.name+" value")
		})
	}
}

func TestParseDirection(t *testing.T) {
	assertEqual(t, DirectionOver, ParseDirection("over 210.5"), "over token")
	assertEqual(t, DirectionUnder, ParseDirection("Tatum Under 27.5"), "capitalized under token")
	assertEqual(t, DirectionOver, ParseDirection("o 45.5"), "abbreviated over")
	assertEqual(t, DirectionNone, ParseDirection("Celtics -3.5"), "spread has no direction")
}
