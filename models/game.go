package models

import (
	"gorm.io/gorm"
)

const (
	GameScheduled = "scheduled"
	GameLive      = "live"
	GameFinal     = "final"
	GamePostponed = "postponed"
	GameCanceled  = "canceled"
)

// Game rows are written by score ingestion and read-only to settlement.
type Game struct {
	gorm.Model
	GameID     string `gorm:"uniqueIndex; size:64"`
	Sport      string `gorm:"size:32"`
	HomeTeamID string `gorm:"size:64"`
	AwayTeamID string `gorm:"size:64"`
	HomeTeam   string `gorm:"size:128"`
	AwayTeam   string `gorm:"size:128"`
	HomeScore  *int
	AwayScore  *int
	Status     string `gorm:"size:16"`
}

// IsFinal reports whether the game has concluded with authoritative scores.
// Scores are non-null iff status is final; both are checked so a bad
// ingestion row never grades a bet.
func (g *Game) IsFinal() bool {
	return g.Status == GameFinal && g.HomeScore != nil && g.AwayScore != nil
}
