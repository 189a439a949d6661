package store

import (
	"fmt"
	"time"

	"betTracker/models"
	"betTracker/services/settlement"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// lockTTL bounds how long a crashed pass can hold the settlement lock before
// the next pass reclaims it.
const lockTTL = 10 * time.Minute

// Store is the gorm-backed implementation of the settlement repositories.
type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// GetFinalGames returns only games that are final; requested ids that are
// missing or still in progress are absent from the map.
func (s *Store) GetFinalGames(ids []string) (map[string]models.Game, error) {
	result := make(map[string]models.Game, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	var games []models.Game
	err := s.db.Where("game_id IN ? AND status = ?", ids, models.GameFinal).Find(&games).Error
	if err != nil {
		return nil, err
	}

	for _, game := range games {
		result[game.GameID] = game
	}
	return result, nil
}

// GetStat returns a player's stat value for a finished game.
func (s *Store) GetStat(gameID, playerID, statType string) (float64, error) {
	var stat models.PlayerStat
	err := s.db.Where("game_id = ? AND player_id = ? AND stat_type = ?", gameID, playerID, statType).
		First(&stat).Error
	if err != nil {
		return 0, fmt.Errorf("stat %s/%s for game %s: %w", playerID, statType, gameID, err)
	}
	return stat.Value, nil
}

// FetchPending returns every ungraded leg. Terminal legs are excluded here,
// which is what makes re-running a pass a no-op for them.
func (s *Store) FetchPending() ([]models.Bet, error) {
	var bets []models.Bet
	err := s.db.Where("status = ?", models.BetPending).Order("id").Find(&bets).Error
	if err != nil {
		return nil, err
	}
	return bets, nil
}

// CommitGraded applies one graded group in a single transaction. Each update
// is guarded on the row still being pending, so a concurrent or repeated
// pass can never apply a second terminal transition.
func (s *Store) CommitGraded(updates []settlement.BetUpdate) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		for _, update := range updates {
			result := tx.Model(&models.Bet{}).
				Where("id = ? AND status = ?", update.BetID, models.BetPending).
				Updates(map[string]interface{}{
					"status":    update.Status,
					"profit":    update.Profit,
					"graded_at": update.GradedAt,
				})
			if result.Error != nil {
				return result.Error
			}
		}
		return nil
	})
}

// Acquire takes the named settlement lock, reclaiming it first if a crashed
// pass left it behind. The unique index on the name makes the create fail
// while another pass holds the lock.
func (s *Store) Acquire(name string) (string, error) {
	s.db.Where("name = ? AND acquired_at < ?", name, time.Now().Add(-lockTTL)).
		Delete(&models.SettlementLock{})

	lock := models.SettlementLock{
		Name:       name,
		Token:      uuid.NewString(),
		AcquiredAt: time.Now(),
	}
	if err := s.db.Create(&lock).Error; err != nil {
		return "", fmt.Errorf("already held: %w", err)
	}
	return lock.Token, nil
}

// Release drops the lock only if the token still matches, so a pass that
// lost its lock to TTL reclaim cannot release the next pass's lock.
func (s *Store) Release(name, token string) error {
	return s.db.Where("name = ? AND token = ?", name, token).
		Delete(&models.SettlementLock{}).Error
}
