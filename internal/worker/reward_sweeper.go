package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/atelierhq/atelier/internal/domain/model"
)

// RewardFacade exposes the subset of application functionality required by the sweeper.
type RewardFacade interface {
	ExpireRewards(ctx context.Context, limit int) ([]model.Reward, error)
}

// RewardSweeper periodically persists expiry for lapsed active rewards.
// Reads stay correct without it through lazy effective status; the sweeper
// only catches the stored rows up.
type RewardSweeper struct {
	facade        RewardFacade
	sweepInterval time.Duration
	batchSize     int
	logger        *slog.Logger

	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewRewardSweeper constructs the expiry sweeper.
func NewRewardSweeper(facade RewardFacade, sweepInterval time.Duration, batchSize int, logger *slog.Logger) *RewardSweeper {
	if batchSize <= 0 {
		batchSize = 1
	}
	return &RewardSweeper{
		facade:        facade,
		sweepInterval: sweepInterval,
		batchSize:     batchSize,
		logger:        logger,
	}
}

// Start launches background sweeping.
func (s *RewardSweeper) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.wg.Add(1)
	go s.run(runCtx)
}

// Stop waits for the sweeper to finish.
func (s *RewardSweeper) Stop() {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.mu.Unlock()

	s.wg.Wait()
}

func (s *RewardSweeper) run(ctx context.Context) {
	defer s.wg.Done()
	ticker := time.NewTicker(s.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *RewardSweeper) sweep(ctx context.Context) {
	expired, err := s.facade.ExpireRewards(ctx, s.batchSize)
	if err != nil {
		s.logger.Error("reward expiry sweep failed", slog.String("error", err.Error()))
		return
	}
	if len(expired) > 0 {
		s.logger.Info("rewards expired", slog.Int("count", len(expired)))
	}
}
