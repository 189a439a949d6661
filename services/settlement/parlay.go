package settlement

import (
	"fmt"

	"betTracker/models"
	"betTracker/services/common"
)

// LegResult is one graded leg inside a parlay.
type LegResult struct {
	Bet     models.Bet
	Outcome Outcome
	Profit  float64
}

// ParlayResult is the transient settlement of one parlay group. It is
// recomputed each pass from the Bet rows and never persisted as its own row.
type ParlayResult struct {
	ParlayID     string
	Legs         []LegResult
	Outcome      Outcome
	CombinedOdds float64
	TotalProfit  float64
}

// GradeParlay settles every leg of one parlay all-or-nothing. If any leg is
// not resolvable this pass the whole parlay defers with ErrIncompleteParlay;
// partial grading is never produced, so a parlay can never be half settled.
//
// Push legs are removed from the combined odds product (standard sportsbook
// convention) but the parlay proceeds on the remaining legs. Profit, win or
// lose, is split evenly across every leg so each row reflects its share of
// the original stake.
func GradeParlay(parlayID string, legs []models.Bet, games map[string]models.Game, stats StatProvider, rules SportRules) (ParlayResult, error) {
	result := ParlayResult{ParlayID: parlayID}
	if len(legs) == 0 {
		return result, fmt.Errorf("%w: empty parlay %s", ErrIncompleteParlay, parlayID)
	}

	anyLost := false
	allPush := true
	var liveOdds []int

	for _, leg := range legs {
		if leg.GameID == nil {
			return result, fmt.Errorf("%w: leg %d has no linked game", ErrIncompleteParlay, leg.ID)
		}
		game, found := games[*leg.GameID]
		if !found || !game.IsFinal() {
			return result, fmt.Errorf("%w: leg %d: %v", ErrIncompleteParlay, leg.ID, ErrUnresolvedGame)
		}

		outcome, err := GradeLeg(leg, game, stats, rules)
		if err != nil {
			return result, fmt.Errorf("%w: leg %d: %v", ErrIncompleteParlay, leg.ID, err)
		}

		switch outcome {
		case OutcomeLost:
			anyLost = true
			allPush = false
		case OutcomeWon:
			allPush = false
			liveOdds = append(liveOdds, leg.Odds)
		case OutcomePush, OutcomeVoid:
			// Dropped from the odds product; the leg's stake share comes
			// back. A parlay of nothing but these collapses to a push.
		}

		result.Legs = append(result.Legs, LegResult{Bet: leg, Outcome: outcome})
	}

	legCount := float64(len(legs))
	originalStake := legs[0].OriginalStake

	switch {
	case anyLost:
		result.Outcome = OutcomeLost
		result.TotalProfit = -originalStake
		share := -originalStake / legCount
		for i := range result.Legs {
			result.Legs[i].Profit = share
		}
	case allPush:
		// Every leg pushed: the parlay collapses entirely, stake returned.
		result.Outcome = OutcomePush
		result.CombinedOdds = 1.0
	default:
		combined, err := common.ParlayMultiplier(liveOdds)
		if err != nil {
			return result, fmt.Errorf("%w: parlay %s: %v", ErrIncompleteParlay, parlayID, err)
		}
		result.Outcome = OutcomeWon
		result.CombinedOdds = combined
		result.TotalProfit = originalStake * (combined - 1)
		share := result.TotalProfit / legCount
		for i := range result.Legs {
			result.Legs[i].Profit = share
		}
	}

	return result, nil
}
