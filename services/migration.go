package services

import (
	"fmt"
	"log"
	"time"

	"betTracker/models"

	"gorm.io/gorm"
)

// RunOriginalStakeBackfill stamps OriginalStake onto parlay legs created
// before the column existed. Legs were staked as an even split of the parlay
// stake, so the parlay's original stake is the sum of its legs' stakes.
func RunOriginalStakeBackfill(db *gorm.DB) error {
	var existingMigration models.Migration
	result := db.Where("name = ?", "parlay_original_stake_backfill").First(&existingMigration)
	if result.Error == nil && existingMigration.ID != 0 {
		log.Println("Original stake backfill has already been executed. Skipping.")
		return nil
	}

	log.Println("Starting original stake backfill...")

	var legs []models.Bet
	if err := db.Where("parlay_id IS NOT NULL AND original_stake = 0").Find(&legs).Error; err != nil {
		return fmt.Errorf("error fetching parlay legs: %v", err)
	}

	stakeByParlay := make(map[string]float64)
	for _, leg := range legs {
		stakeByParlay[*leg.ParlayID] += leg.Stake
	}

	updated := 0
	for parlayID, totalStake := range stakeByParlay {
		result := db.Model(&models.Bet{}).
			Where("parlay_id = ? AND original_stake = 0", parlayID).
			UpdateColumn("original_stake", totalStake)
		if result.Error != nil {
			log.Printf("Error backfilling parlay %s: %v", parlayID, result.Error)
			continue
		}
		updated += int(result.RowsAffected)
	}

	migration := models.Migration{
		Name:       "parlay_original_stake_backfill",
		ExecutedAt: time.Now(),
	}
	if err := db.Create(&migration).Error; err != nil {
		return fmt.Errorf("error marking migration as complete: %v", err)
	}

	log.Printf("Original stake backfill completed. Updated %d legs.", updated)
	return nil
}
