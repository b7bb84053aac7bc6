package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/atelierhq/atelier/internal/adapter/esign"
	"github.com/atelierhq/atelier/internal/domain/model"
)

// ContractFacade exposes the subset of application functionality required by the poller.
type ContractFacade interface {
	ContractsForPolling(ctx context.Context, limit int) ([]model.Contract, error)
	CheckEnvelope(ctx context.Context, envelopeID string) (*model.Envelope, error)
	ApplyEnvelopeState(ctx context.Context, contractID int64, state model.EnvelopeState) error
}

// ContractPoller polls the e-signature provider and folds envelope states
// into contract rows concurrently.
type ContractPoller struct {
	facade       ContractFacade
	pollInterval time.Duration
	batchSize    int
	workers      int
	logger       *slog.Logger

	jobs   chan model.Contract
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewContractPoller constructs the poller worker pool.
func NewContractPoller(facade ContractFacade, pollInterval time.Duration, batchSize, workers int, logger *slog.Logger) *ContractPoller {
	if workers <= 0 {
		workers = 1
	}
	if batchSize <= 0 {
		batchSize = 1
	}
	return &ContractPoller{
		facade:       facade,
		pollInterval: pollInterval,
		batchSize:    batchSize,
		workers:      workers,
		logger:       logger,
		jobs:         make(chan model.Contract, batchSize*workers),
	}
}

// Start launches background polling.
func (p *ContractPoller) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel

	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker(runCtx)
	}

	p.wg.Add(1)
	go p.dispatch(runCtx)
}

// Stop waits for all workers to finish.
func (p *ContractPoller) Stop() {
	p.mu.Lock()
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	p.mu.Unlock()

	p.wg.Wait()
}

func (p *ContractPoller) dispatch(ctx context.Context) {
	defer p.wg.Done()
	defer close(p.jobs)
	ticker := time.NewTicker(p.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.fetchAndDispatch(ctx)
		}
	}
}

func (p *ContractPoller) fetchAndDispatch(ctx context.Context) {
	contracts, err := p.facade.ContractsForPolling(ctx, p.batchSize)
	if err != nil {
		p.logger.Error("fetch contracts for polling failed", slog.String("error", err.Error()))
		return
	}
	for _, contract := range contracts {
		select {
		case <-ctx.Done():
			return
		case p.jobs <- contract:
		}
	}
}

func (p *ContractPoller) worker(ctx context.Context) {
	defer p.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case contract, ok := <-p.jobs:
			if !ok {
				return
			}
			p.handleContract(ctx, contract)
		}
	}
}

func (p *ContractPoller) handleContract(ctx context.Context, contract model.Contract) {
	envelope, err := p.facade.CheckEnvelope(ctx, contract.EnvelopeID)
	if err != nil {
		var rateErr esign.TooManyRequestsError
		switch {
		case errors.As(err, &rateErr):
			p.logger.Warn("esign rate limited", slog.Duration("retry_after", rateErr.RetryAfter))
			time.Sleep(rateErr.RetryAfter)
		case errors.Is(err, esign.ErrEnvelopeNotFound):
			p.logger.Error("envelope unknown to provider",
				slog.Int64("contract", contract.ID),
				slog.String("envelope", contract.EnvelopeID),
			)
		default:
			p.logger.Error("envelope status fetch failed",
				slog.Int64("contract", contract.ID),
				slog.String("error", err.Error()),
			)
		}
		return
	}

	if err := p.facade.ApplyEnvelopeState(ctx, contract.ID, envelope.State); err != nil {
		p.logger.Error("apply envelope state failed",
			slog.Int64("contract", contract.ID),
			slog.String("error", err.Error()),
		)
	}
}
