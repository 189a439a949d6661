package settlement

import (
	"errors"
	"math"
	"testing"

	"betTracker/models"
)

func assertClose(t *testing.T, expected, actual float64, msg string) {
	if math.Abs(expected-actual) > 0.01 {
		t.Errorf("%s: expected %v, got %v", msg, expected, actual)
	}
}

// parlayLeg builds a moneyline leg pointing at its own final game. The
// returned game has the selected team winning or losing as requested.
func parlayLeg(id uint, parlayID string, odds int, originalStake float64, wins bool) (models.Bet, models.Game) {
	gameID := "game-" + string(rune('a'+id))

	homeScore, awayScore := 100, 90
	if !wins {
		homeScore, awayScore = 90, 100
	}

	bet := models.Bet{
		ID:            id,
		ParlayID:      strPtr(parlayID),
		GameID:        strPtr(gameID),
		Selection:     "Home ML",
		BetType:       models.BetTypeMoneyline,
		Stake:         originalStake,
		OriginalStake: originalStake,
		Odds:          odds,
		Status:        models.BetPending,
	}
	game := models.Game{
		GameID:    gameID,
		Sport:     "nba",
		HomeTeam:  "Home Team",
		AwayTeam:  "Away Team",
		HomeScore: intPtr(homeScore),
		AwayScore: intPtr(awayScore),
		Status:    models.GameFinal,
	}
	return bet, game
}

func TestGradeParlay_AllLegsWin(t *testing.T) {
	// 3-leg winner: stake 30 at +120/-150/+100.
	games := make(map[string]models.Game)
	var legs []models.Bet
	for i, odds := range []int{120, -150, 100} {
		bet, game := parlayLeg(uint(i+1), "par-1", odds, 30, true)
		legs = append(legs, bet)
		games[*bet.GameID] = game
	}

	result, err := GradeParlay("par-1", legs, games, fakeStats{}, fakeRules{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assertEqual(t, OutcomeWon, result.Outcome, "all legs won")
	assertClose(t, 7.33, result.CombinedOdds, "combined decimal odds")
	assertClose(t, 190.0, result.TotalProfit, "total profit at 30 stake")

	for _, leg := range result.Legs {
		assertEqual(t, OutcomeWon, leg.Outcome, "every leg outcome is won")
		assertClose(t, result.TotalProfit/3, leg.Profit, "profit split evenly across legs")
	}
}

func TestGradeParlay_AnyLegLost(t *testing.T) {
	games := make(map[string]models.Game)
	var legs []models.Bet
	for i, wins := range []bool{true, false, true} {
		bet, game := parlayLeg(uint(i+1), "par-2", 150, 60, wins)
		legs = append(legs, bet)
		games[*bet.GameID] = game
	}

	result, err := GradeParlay("par-2", legs, games, fakeStats{}, fakeRules{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assertEqual(t, OutcomeLost, result.Outcome, "one lost leg loses the parlay")
	assertClose(t, -60, result.TotalProfit, "whole original stake lost")
	for _, leg := range result.Legs {
		assertClose(t, -20, leg.Profit, "loss split evenly across legs")
	}
	assertEqual(t, OutcomeLost, result.Legs[1].Outcome, "losing leg keeps its own outcome")
	assertEqual(t, OutcomeWon, result.Legs[0].Outcome, "winning leg keeps its own outcome")
}

func TestGradeParlay_PushExcludedFromOdds(t *testing.T) {
	// Legs: won(+150), push, won(-110). Combined odds must use only the two
	// non-push legs.
	games := make(map[string]models.Game)
	var legs []models.Bet

	bet1, game1 := parlayLeg(1, "par-3", 150, 30, true)
	legs = append(legs, bet1)
	games[*bet1.GameID] = game1

	// Spread leg landing exactly on the line.
	pushBet := models.Bet{
		ID:            2,
		ParlayID:      strPtr("par-3"),
		GameID:        strPtr("game-push"),
		Selection:     "Home -5",
		BetType:       models.BetTypeSpread,
		Stake:         30,
		OriginalStake: 30,
		Odds:          -110,
		Status:        models.BetPending,
	}
	legs = append(legs, pushBet)
	games["game-push"] = models.Game{
		GameID:    "game-push",
		Sport:     "nba",
		HomeTeam:  "Home Team",
		AwayTeam:  "Away Team",
		HomeScore: intPtr(105),
		AwayScore: intPtr(100),
		Status:    models.GameFinal,
	}

	bet3, game3 := parlayLeg(3, "par-3", -110, 30, true)
	legs = append(legs, bet3)
	games[*bet3.GameID] = game3

	result, err := GradeParlay("par-3", legs, games, fakeStats{}, fakeRules{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assertEqual(t, OutcomeWon, result.Outcome, "parlay proceeds on remaining legs")
	expectedOdds := 2.5 * (100.0/110.0 + 1.0)
	assertClose(t, expectedOdds, result.CombinedOdds, "push leg excluded from the product")
	assertEqual(t, OutcomePush, result.Legs[1].Outcome, "push leg keeps its push outcome")
	assertClose(t, 30*(expectedOdds-1)/3, result.Legs[0].Profit, "profit still split across all legs")
}

func TestGradeParlay_AllPush(t *testing.T) {
	games := make(map[string]models.Game)
	var legs []models.Bet
	for _, id := range []uint{1, 2} {
		gameID := "game-push-" + string(rune('0'+id))
		legs = append(legs, models.Bet{
			ID:            id,
			ParlayID:      strPtr("par-4"),
			GameID:        strPtr(gameID),
			Selection:     "Home -5",
			BetType:       models.BetTypeSpread,
			Stake:         20,
			OriginalStake: 20,
			Odds:          -110,
			Status:        models.BetPending,
		})
		games[gameID] = models.Game{
			GameID:    gameID,
			Sport:     "nba",
			HomeTeam:  "Home Team",
			AwayTeam:  "Away Team",
			HomeScore: intPtr(105),
			AwayScore: intPtr(100),
			Status:    models.GameFinal,
		}
	}

	result, err := GradeParlay("par-4", legs, games, fakeStats{}, fakeRules{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assertEqual(t, OutcomePush, result.Outcome, "fully pushed parlay settles as push")
	assertClose(t, 1.0, result.CombinedOdds, "combined odds collapse to 1")
	assertClose(t, 0, result.TotalProfit, "stake returned")
	for _, leg := range result.Legs {
		assertClose(t, 0, leg.Profit, "no leg gains or loses")
	}
}

func TestGradeParlay_Incomplete(t *testing.T) {
	games := make(map[string]models.Game)

	bet1, game1 := parlayLeg(1, "par-5", 150, 30, true)
	games[*bet1.GameID] = game1

	bet2, game2 := parlayLeg(2, "par-5", -110, 30, true)
	game2.Status = models.GameLive
	game2.HomeScore = nil
	game2.AwayScore = nil
	games[*bet2.GameID] = game2

	_, err := GradeParlay("par-5", []models.Bet{bet1, bet2}, games, fakeStats{}, fakeRules{})
	if !errors.Is(err, ErrIncompleteParlay) {
		t.Fatalf("expected ErrIncompleteParlay, got %v", err)
	}

	// Missing game entirely.
	bet3, _ := parlayLeg(3, "par-6", 150, 30, true)
	_, err = GradeParlay("par-6", []models.Bet{bet3}, map[string]models.Game{}, fakeStats{}, fakeRules{})
	if !errors.Is(err, ErrIncompleteParlay) {
		t.Fatalf("expected ErrIncompleteParlay for missing game, got %v", err)
	}

	// Ambiguous leg defers the whole parlay too.
	bet4, game4 := parlayLeg(4, "par-7", 150, 30, true)
	bet4.Selection = "Someone ML"
	games = map[string]models.Game{*bet4.GameID: game4}
	_, err = GradeParlay("par-7", []models.Bet{bet4}, games, fakeStats{}, fakeRules{})
	if !errors.Is(err, ErrIncompleteParlay) {
		t.Fatalf("expected ErrIncompleteParlay for ambiguous leg, got %v", err)
	}

	// Leg with no game linkage at all.
	bet5, game5 := parlayLeg(5, "par-8", 150, 30, true)
	bet5.GameID = nil
	games = map[string]models.Game{game5.GameID: game5}
	_, err = GradeParlay("par-8", []models.Bet{bet5}, games, fakeStats{}, fakeRules{})
	if !errors.Is(err, ErrIncompleteParlay) {
		t.Fatalf("expected ErrIncompleteParlay for unlinked leg, got %v", err)
	}
}
