package settlement

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"betTracker/models"
	"betTracker/services/common"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const settlementLockName = "settlement_pass"

// GameSource returns final games for the requested ids; ids whose game is
// missing or not final are simply absent from the result.
type GameSource interface {
	GetFinalGames(ids []string) (map[string]models.Game, error)
}

// BetSource fetches pending legs and commits graded groups transactionally.
type BetSource interface {
	FetchPending() ([]models.Bet, error)
	CommitGraded(updates []BetUpdate) error
}

// Locker serializes settlement passes. Acquire fails while another pass
// holds the lock.
type Locker interface {
	Acquire(name string) (token string, err error)
	Release(name, token string) error
}

// BetUpdate is one leg's terminal settlement, applied only while the row is
// still pending so re-running a pass never double-grades.
type BetUpdate struct {
	BetID    uint
	Status   string
	Profit   float64
	GradedAt time.Time
}

// Error reasons reported per leg. Recoverable ones retry on the next pass.
const (
	ReasonInvalidOdds        = "invalid_odds"
	ReasonUnresolvedGame     = "unresolved_game"
	ReasonAmbiguousSelection = "ambiguous_selection"
	ReasonIncompleteParlay   = "incomplete_parlay"
	ReasonPersistenceFailure = "persistence_failure"
)

// LegError describes why a leg (or its parlay) did not settle this pass.
type LegError struct {
	BetID    uint
	ParlayID string
	Reason   string
	Detail   string
}

func (e LegError) String() string {
	if e.ParlayID != "" {
		return fmt.Sprintf("bet %d (parlay %s): %s: %s", e.BetID, e.ParlayID, e.Reason, e.Detail)
	}
	return fmt.Sprintf("bet %d: %s: %s", e.BetID, e.Reason, e.Detail)
}

// Report is the outward result of one settlement pass.
type Report struct {
	PassID  string
	Graded  int
	Skipped int
	Errors  []LegError
}

// Coordinator orchestrates a settlement pass: pending bets joined against
// final games, standalone legs and parlay groups graded in parallel workers,
// each group committed in its own transaction.
type Coordinator struct {
	games   GameSource
	stats   StatProvider
	bets    BetSource
	lock    Locker
	cache   *GameCache
	rules   SportRules
	workers int

	mu     sync.Mutex
	report Report
}

func NewCoordinator(games GameSource, stats StatProvider, bets BetSource, lock Locker, cache *GameCache, rules SportRules, workers int) *Coordinator {
	if workers < 1 {
		workers = 1
	}
	return &Coordinator{
		games:   games,
		stats:   stats,
		bets:    bets,
		lock:    lock,
		cache:   cache,
		rules:   rules,
		workers: workers,
	}
}

// RunSettlementPass grades every pending bet whose linked game is final and
// persists the results. Safe to re-run: already-graded legs are excluded
// from the fetch, and the commit path refuses to touch non-pending rows.
// Aborting between groups leaves committed groups settled and the rest
// pending for the next pass.
func (c *Coordinator) RunSettlementPass(ctx context.Context) (Report, error) {
	c.mu.Lock()
	c.report = Report{PassID: uuid.NewString()}
	c.mu.Unlock()

	token, err := c.lock.Acquire(settlementLockName)
	if err != nil {
		return c.snapshot(), fmt.Errorf("settlement lock: %w", err)
	}
	defer func() {
		if releaseErr := c.lock.Release(settlementLockName, token); releaseErr != nil {
			// The lock row expires on its own; the next pass recovers.
			fmt.Println("error releasing settlement lock:", releaseErr)
		}
	}()

	pending, err := c.bets.FetchPending()
	if err != nil {
		return c.snapshot(), fmt.Errorf("fetching pending bets: %w", err)
	}

	var standalone []models.Bet
	parlays := make(map[string][]models.Bet)
	gameIDSet := make(map[string]bool)

	for _, bet := range pending {
		if bet.GameID != nil {
			gameIDSet[*bet.GameID] = true
		}

		if bet.ParlayID != nil {
			// An unlinked leg still joins its group, so grading sees the
			// whole parlay and defers it instead of settling the siblings.
			parlays[*bet.ParlayID] = append(parlays[*bet.ParlayID], bet)
			continue
		}

		if bet.GameID == nil {
			// Unresolved game linkage: skipped, not graded, not erred.
			c.addSkipped(1)
			continue
		}
		standalone = append(standalone, bet)
	}

	games, err := c.finalGames(gameIDSet)
	if err != nil {
		return c.snapshot(), fmt.Errorf("fetching final games: %w", err)
	}

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(c.workers)

	for _, bet := range standalone {
		bet := bet
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			c.settleStandalone(bet, games)
			return nil
		})
	}
	for parlayID, legs := range parlays {
		parlayID, legs := parlayID, legs
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			c.settleParlay(parlayID, legs, games)
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return c.snapshot(), err
	}
	return c.snapshot(), nil
}

// finalGames resolves game snapshots through the cache, fetching only the
// ids missing from it.
func (c *Coordinator) finalGames(ids map[string]bool) (map[string]models.Game, error) {
	games := make(map[string]models.Game, len(ids))
	var missing []string

	for id := range ids {
		if game, found := c.cache.Get(id); found {
			games[id] = game
		} else {
			missing = append(missing, id)
		}
	}

	if len(missing) > 0 {
		fetched, err := c.games.GetFinalGames(missing)
		if err != nil {
			return nil, err
		}
		c.cache.Put(fetched)
		for id, game := range fetched {
			games[id] = game
		}
	}

	return games, nil
}

func (c *Coordinator) settleStandalone(bet models.Bet, games map[string]models.Game) {
	game, found := games[*bet.GameID]
	if !found {
		c.addSkipped(1)
		return
	}

	outcome, err := GradeLeg(bet, game, c.stats, c.rules)
	if err != nil {
		c.recordLegError(bet, "", err)
		return
	}

	profit, err := StandaloneProfit(outcome, bet.Stake, bet.Odds)
	if err != nil {
		c.recordLegError(bet, "", err)
		return
	}

	update := BetUpdate{
		BetID:    bet.ID,
		Status:   outcome.Status(),
		Profit:   profit,
		GradedAt: time.Now(),
	}
	if err := c.bets.CommitGraded([]BetUpdate{update}); err != nil {
		c.addError(LegError{BetID: bet.ID, Reason: ReasonPersistenceFailure, Detail: err.Error()})
		return
	}
	c.addGraded(1)
}

func (c *Coordinator) settleParlay(parlayID string, legs []models.Bet, games map[string]models.Game) {
	result, err := GradeParlay(parlayID, legs, games, c.stats, c.rules)
	if err != nil {
		// The whole parlay defers; its grading is all-or-nothing.
		c.addSkipped(len(legs))
		c.addError(LegError{
			ParlayID: parlayID,
			Reason:   ReasonIncompleteParlay,
			Detail:   err.Error(),
		})
		return
	}

	gradedAt := time.Now()
	updates := make([]BetUpdate, 0, len(result.Legs))
	for _, leg := range result.Legs {
		updates = append(updates, BetUpdate{
			BetID:    leg.Bet.ID,
			Status:   leg.Outcome.Status(),
			Profit:   leg.Profit,
			GradedAt: gradedAt,
		})
	}

	if err := c.bets.CommitGraded(updates); err != nil {
		// Transaction rolled back: no leg of this parlay persisted.
		c.addError(LegError{
			ParlayID: parlayID,
			Reason:   ReasonPersistenceFailure,
			Detail:   err.Error(),
		})
		return
	}
	c.addGraded(len(result.Legs))
}

func (c *Coordinator) recordLegError(bet models.Bet, parlayID string, err error) {
	legErr := LegError{
		BetID:    bet.ID,
		ParlayID: parlayID,
		Detail:   fmt.Sprintf("%s (odds %s)", err.Error(), common.FormatOdds(float64(bet.Odds))),
	}

	switch {
	case errors.Is(err, common.ErrInvalidOdds):
		legErr.Reason = ReasonInvalidOdds
	case errors.Is(err, ErrAmbiguousSelection):
		legErr.Reason = ReasonAmbiguousSelection
	case errors.Is(err, ErrUnresolvedGame):
		// Retryable, counts as skipped rather than erred.
		c.addSkipped(1)
		return
	default:
		legErr.Reason = ReasonAmbiguousSelection
	}
	c.addError(legErr)
}

func (c *Coordinator) addGraded(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.report.Graded += n
}

func (c *Coordinator) addSkipped(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.report.Skipped += n
}

func (c *Coordinator) addError(legErr LegError) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.report.Errors = append(c.report.Errors, legErr)
}

func (c *Coordinator) snapshot() Report {
	c.mu.Lock()
	defer c.mu.Unlock()

	report := c.report
	report.Errors = append([]LegError(nil), c.report.Errors...)
	return report
}
