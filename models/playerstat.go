package models

import "gorm.io/gorm"

// PlayerStat rows are written by the stats ingestion collaborator once a
// game is final. Settlement only reads them to grade prop legs.
type PlayerStat struct {
	gorm.Model
	GameID   string `gorm:"uniqueIndex:game_player_stat_idx; size:64"`
	PlayerID string `gorm:"uniqueIndex:game_player_stat_idx; size:64"`
	StatType string `gorm:"uniqueIndex:game_player_stat_idx; size:32"`
	Value    float64
}
