package settlement

import (
	"fmt"

	"betTracker/models"
	"betTracker/services/common"
)

// Outcome is the terminal result of grading one leg.
type Outcome int

const (
	OutcomePending Outcome = iota
	OutcomeWon
	OutcomeLost
	OutcomePush
	OutcomeVoid
)

// Status maps an outcome onto the bet status column.
func (o Outcome) Status() string {
	switch o {
	case OutcomeWon:
		return models.BetWon
	case OutcomeLost:
		return models.BetLost
	case OutcomePush:
		return models.BetPush
	case OutcomeVoid:
		return models.BetVoid
	}
	return models.BetPending
}

// SportRules answers whether a sport settles a tied final score as a push.
type SportRules interface {
	DrawsAllowed(sport string) bool
}

// StatProvider looks up a player's actual stat value for a finished game.
type StatProvider interface {
	GetStat(gameID, playerID, statType string) (float64, error)
}

// GradeLeg grades a single wager leg against its linked game. A pending
// outcome always carries an error explaining why the leg could not settle
// this pass.
func GradeLeg(bet models.Bet, game models.Game, stats StatProvider, rules SportRules) (Outcome, error) {
	if !game.IsFinal() {
		return OutcomePending, ErrUnresolvedGame
	}
	if bet.Odds == 0 {
		return OutcomePending, common.ErrInvalidOdds
	}

	switch bet.BetType {
	case models.BetTypeMoneyline:
		return gradeMoneyline(bet, game, rules)
	case models.BetTypeSpread:
		return gradeSpread(bet, game)
	case models.BetTypeTotal:
		return gradeTotal(bet, game)
	case models.BetTypeProp:
		return gradeProp(bet, game, stats)
	}
	return OutcomePending, fmt.Errorf("%w: unknown bet type %q", ErrAmbiguousSelection, bet.BetType)
}

func gradeMoneyline(bet models.Bet, game models.Game, rules SportRules) (Outcome, error) {
	side := MatchSide(bet.Selection, game.HomeTeam, game.AwayTeam)
	if side == SideUnmatched {
		return OutcomePending, ErrAmbiguousSelection
	}

	scoreDiff := *game.HomeScore - *game.AwayScore
	if scoreDiff == 0 {
		if rules.DrawsAllowed(game.Sport) {
			return OutcomePush, nil
		}
		// Tie in a sport without draws: flagged for manual resolution.
		return OutcomePending, fmt.Errorf("%w: tied final score in %q", ErrAmbiguousSelection, game.Sport)
	}

	if (side == SideHome) == (scoreDiff > 0) {
		return OutcomeWon, nil
	}
	return OutcomeLost, nil
}

func gradeSpread(bet models.Bet, game models.Game) (Outcome, error) {
	side := MatchSide(bet.Selection, game.HomeTeam, game.AwayTeam)
	if side == SideUnmatched {
		return OutcomePending, ErrAmbiguousSelection
	}
	line, ok := ParseLine(bet.Selection)
	if !ok {
		return OutcomePending, fmt.Errorf("%w: no spread line in %q", ErrAmbiguousSelection, bet.Selection)
	}

	// The line is written from the bet side's perspective ("Celtics -3.5"),
	// so flip the score margin for away-side bets before applying it.
	margin := float64(*game.HomeScore - *game.AwayScore)
	if side == SideAway {
		margin = -margin
	}

	adjusted := margin + line
	switch {
	case adjusted == 0:
		return OutcomePush, nil
	case adjusted > 0:
		return OutcomeWon, nil
	}
	return OutcomeLost, nil
}

func gradeTotal(bet models.Bet, game models.Game) (Outcome, error) {
	direction := ParseDirection(bet.Selection)
	if direction == DirectionNone {
		return OutcomePending, fmt.Errorf("%w: no over/under in %q", ErrAmbiguousSelection, bet.Selection)
	}
	line, ok := ParseLine(bet.Selection)
	if !ok {
		return OutcomePending, fmt.Errorf("%w: no total line in %q", ErrAmbiguousSelection, bet.Selection)
	}

	total := float64(*game.HomeScore + *game.AwayScore)
	return gradeOverUnder(direction, total, line), nil
}

func gradeProp(bet models.Bet, game models.Game, stats StatProvider) (Outcome, error) {
	if bet.PlayerID == nil || bet.StatType == nil {
		return OutcomePending, fmt.Errorf("%w: prop leg missing player or stat type", ErrAmbiguousSelection)
	}
	direction := ParseDirection(bet.Selection)
	if direction == DirectionNone {
		return OutcomePending, fmt.Errorf("%w: no over/under in %q", ErrAmbiguousSelection, bet.Selection)
	}
	line, ok := ParseLine(bet.Selection)
	if !ok {
		return OutcomePending, fmt.Errorf("%w: no prop line in %q", ErrAmbiguousSelection, bet.Selection)
	}

	value, err := stats.GetStat(game.GameID, *bet.PlayerID, *bet.StatType)
	if err != nil {
		// Stats arrive from ingestion after the game ends; missing stat is
		// retryable, same as a game that is not final yet.
		return OutcomePending, fmt.Errorf("%w: player stat: %v", ErrUnresolvedGame, err)
	}

	return gradeOverUnder(direction, value, line), nil
}

// gradeOverUnder applies shared over/under semantics: landing exactly on the
// line is a push.
func gradeOverUnder(direction Direction, actual, line float64) Outcome {
	if actual == line {
		return OutcomePush
	}
	if (direction == DirectionOver) == (actual > line) {
		return OutcomeWon
	}
	return OutcomeLost
}

// StandaloneProfit computes the profit for a non-parlay leg.
func StandaloneProfit(outcome Outcome, stake float64, odds int) (float64, error) {
	switch outcome {
	case OutcomeWon:
		return common.ProfitOnWin(stake, odds)
	case OutcomeLost:
		return common.ProfitOnLoss(stake), nil
	}
	// Push and void return the stake: profit is zero.
	return 0, nil
}
