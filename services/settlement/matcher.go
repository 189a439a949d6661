package settlement

import (
	"strconv"
	"strings"
)

// Side identifies which side of a game a selection names.
type Side int

const (
	SideUnmatched Side = iota
	SideHome
	SideAway
)

func (s Side) String() string {
	switch s {
	case SideHome:
		return "home"
	case SideAway:
		return "away"
	}
	return "unmatched"
}

// Direction is the over/under half of a total or prop selection.
type Direction int

const (
	DirectionNone Direction = iota
	DirectionOver
	DirectionUnder
)

// MatchSide resolves a free-text selection to a side of the game. The first
// whitespace-delimited token is treated as a team fragment and matched
// case-insensitively against both team names, substring in either direction
// so "Celtics" matches "Boston Celtics" and "Boston Celtics ML" matches
// "Celtics". A fragment matching both sides or neither is unmatched; the
// caller leaves the leg pending rather than guessing.
func MatchSide(selection, homeTeam, awayTeam string) Side {
	fragment := firstToken(selection)
	if fragment == "" {
		return SideUnmatched
	}

	home := matchesTeam(fragment, homeTeam)
	away := matchesTeam(fragment, awayTeam)

	if home == away {
		// Neither side, or ambiguously both.
		return SideUnmatched
	}
	if home {
		return SideHome
	}
	return SideAway
}

func firstToken(selection string) string {
	fields := strings.Fields(strings.ToLower(selection))
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

func matchesTeam(fragment, team string) bool {
	team = strings.ToLower(strings.TrimSpace(team))
	team = strings.Join(strings.Fields(team), " ")
	if team == "" {
		return false
	}
	return strings.Contains(team, fragment) || strings.Contains(fragment, team)
}

// ParseLine extracts the line value from a spread, total, or prop selection:
// the first token that parses as a signed number, e.g. "Celtics -3.5" -> -3.5
// or "over 210.5" -> 210.5.
func ParseLine(selection string) (float64, bool) {
	for _, field := range strings.Fields(selection) {
		trimmed := strings.TrimPrefix(field, "+")
		value, err := strconv.ParseFloat(trimmed, 64)
		if err == nil {
			return value, true
		}
	}
	return 0, false
}

// ParseDirection finds the over/under token of a total or prop selection.
func ParseDirection(selection string) Direction {
	for _, field := range strings.Fields(strings.ToLower(selection)) {
		switch field {
		case "over", "o":
			return DirectionOver
		case "under", "u":
			return DirectionUnder
		}
	}
	return DirectionNone
}
