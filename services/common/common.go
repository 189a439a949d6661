package common

import (
	"errors"
	"fmt"
	"log"
	"strconv"

	"betTracker/models"

	"gorm.io/gorm"
)

// ErrInvalidOdds is returned for a moneyline of 0, which never occurs in
// valid American odds data.
var ErrInvalidOdds = errors.New("invalid American odds: moneyline cannot be 0")

// ImpliedProbability converts American moneyline odds to the implied win
// probability. +150 -> 0.4, -150 -> 0.6.
func ImpliedProbability(moneyline int) (float64, error) {
	if moneyline == 0 {
		return 0, ErrInvalidOdds
	}

	if moneyline > 0 {
		return 100.0 / (float64(moneyline) + 100.0), nil
	}
	return float64(-moneyline) / (float64(-moneyline) + 100.0), nil
}

// DecimalMultiplier returns the profit multiplier on a winning unit stake.
// +150 -> 1.5, -200 -> 0.5.
func DecimalMultiplier(moneyline int) (float64, error) {
	if moneyline == 0 {
		return 0, ErrInvalidOdds
	}

	if moneyline > 0 {
		return float64(moneyline) / 100.0, nil
	}
	return 100.0 / float64(-moneyline), nil
}

// ProfitOnWin returns the profit (excluding returned stake) for a winning
// bet at the given stake and moneyline.
func ProfitOnWin(stake float64, moneyline int) (float64, error) {
	mult, err := DecimalMultiplier(moneyline)
	if err != nil {
		return 0, err
	}
	return stake * mult, nil
}

// ProfitOnLoss returns the profit for a losing bet: the whole stake, negative.
func ProfitOnLoss(stake float64) float64 {
	return -stake
}

// ParlayMultiplier calculates the combined decimal odds for a parlay.
// Each leg contributes its full decimal odds (profit multiplier + 1), so a
// two-leg parlay at +100/+100 returns 4.0.
func ParlayMultiplier(oddsList []int) (float64, error) {
	multiplier := 1.0
	for _, odds := range oddsList {
		mult, err := DecimalMultiplier(odds)
		if err != nil {
			return 0, err
		}
		multiplier *= mult + 1.0
	}

	return multiplier, nil
}

func FormatOdds(odds float64) string {
	response := ""

	if odds == float64(int(odds)) {
		response = strconv.Itoa(int(odds))
	} else {
		response = fmt.Sprintf("%.1f", odds)
	}

	if odds > 0 {
		return fmt.Sprintf("+%s", response)
	}
	return response
}

// LogError records an operational failure both to stdout and to the
// error_logs table so the dashboard can surface it.
func LogError(db *gorm.DB, scope string, message string) {
	log.Printf("%s: %s", scope, message)

	errLog := models.ErrorLog{
		Scope:   scope,
		Message: message,
	}
	db.Create(&errLog)
}
