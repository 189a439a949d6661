package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	BetPending = "pending"
	BetWon     = "won"
	BetLost    = "lost"
	BetPush    = "push"
	BetVoid    = "void"
)

const (
	BetTypeMoneyline = "moneyline"
	BetTypeSpread    = "spread"
	BetTypeTotal     = "total"
	BetTypeProp      = "prop"
)

// Bet is one wager leg. Legs sharing a ParlayID settle together as a parlay;
// a nil ParlayID means a straight bet. Status transitions exactly once from
// pending to a terminal state, with Profit and GradedAt set in the same write.
type Bet struct {
	gorm.Model
	ID            uint    `gorm:"primaryKey"`
	ParlayID      *string `gorm:"index; size:64"`
	GameID        *string `gorm:"index; size:64"`
	Selection     string
	BetType       string `gorm:"size:16"`
	Stake         float64
	OriginalStake float64 // stake of the parent parlay, replicated onto every leg
	Odds          int
	PlayerID      *string `gorm:"size:64"` // prop legs only
	StatType      *string `gorm:"size:32"` // prop legs only
	Status        string  `gorm:"size:16; default:pending"`
	Profit        *float64
	GradedAt      *time.Time
}
