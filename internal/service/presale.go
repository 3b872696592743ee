package service

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/dracma/presale/internal/contracts"
	"github.com/dracma/presale/internal/domain"
	"github.com/dracma/presale/internal/tokenomics"
)

// ErrSlotNotReset is returned when a slot still shows the result of its previous request
var ErrSlotNotReset = errors.New("dismiss the previous result before starting a new transaction")

// PresaleService is what the HTTP handlers and CLI commands talk to.
// It owns one flow per operation and only lets a slot start from idle.
type PresaleService struct {
	flows   map[domain.Operation]*Flow
	reg     *contracts.Registry
	terms   PresaleTerms
	reader  *DashboardReader
	journal TransactionRepository
	logger  *zap.Logger
	now     func() time.Time

	mu      sync.Mutex
	running map[domain.Operation]bool
	wg      sync.WaitGroup
}

func NewPresaleService(
	chain ChainClient,
	reg *contracts.Registry,
	terms PresaleTerms,
	flowCfg FlowConfig,
	reader *DashboardReader,
	journal TransactionRepository,
	publisher TransitionPublisher,
	logger *zap.Logger,
) *PresaleService {
	s := &PresaleService{
		flows:   make(map[domain.Operation]*Flow, len(domain.Operations)),
		reg:     reg,
		terms:   terms,
		reader:  reader,
		journal: journal,
		logger:  logger.With(zap.String("component", "presale")),
		now:     time.Now,
		running: make(map[domain.Operation]bool, len(domain.Operations)),
	}

	for kind, op := range NewOperations(reg, terms) {
		flow := NewFlow(op, chain, flowCfg, logger)
		if publisher != nil {
			flow.Subscribe(publisher.PublishTransition)
		}
		s.flows[kind] = flow
	}
	return s
}

// Quote projects a purchase without touching the chain
func (s *PresaleService) Quote(amount, currency string) (domain.PurchaseQuote, error) {
	if currency != "" {
		if _, err := s.reg.PaymentToken(currency); err != nil {
			return domain.PurchaseQuote{}, &ValidationError{Class: domain.ErrorClassUnsupportedCurrency, Message: err.Error()}
		}
	}
	return tokenomics.QuoteString(amount, s.terms.Price, s.terms.Tiers, s.now()), nil
}

// Terms returns the presale parameters
func (s *PresaleService) Terms() PresaleTerms {
	return s.terms
}

// Currencies lists the accepted payment symbols
func (s *PresaleService) Currencies() []string {
	return s.reg.Currencies()
}

// Start launches a request in the background and returns the state right after acceptance
func (s *PresaleService) Start(ctx context.Context, op domain.Operation, currency, amount string) (domain.TransactionState, error) {
	flow, req, err := s.acquire(op, currency, amount)
	if err != nil {
		return domain.TransactionState{}, err
	}

	// the flow outlives the request that started it
	runCtx := context.WithoutCancel(ctx)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer s.release(op)
		flow.Run(runCtx, req)
	}()

	state := flow.State()
	if state.Request == nil || state.Request.ID != req.ID {
		state = domain.TransactionState{Step: domain.StepIdle, Request: &req, UpdatedAt: s.now()}
	}
	return state, nil
}

// Execute runs a request to completion on the caller's goroutine
func (s *PresaleService) Execute(ctx context.Context, op domain.Operation, currency, amount string) (domain.TransactionState, error) {
	flow, req, err := s.acquire(op, currency, amount)
	if err != nil {
		return domain.TransactionState{}, err
	}
	defer s.release(op)
	return flow.Run(ctx, req), nil
}

// State returns the current state of a slot
func (s *PresaleService) State(op domain.Operation) (domain.TransactionState, error) {
	flow, ok := s.flows[op]
	if !ok {
		return domain.TransactionState{}, errors.Wrap(ErrUnknownOperation, string(op))
	}
	return flow.State(), nil
}

// States returns every slot keyed by operation
func (s *PresaleService) States() map[domain.Operation]domain.TransactionState {
	out := make(map[domain.Operation]domain.TransactionState, len(s.flows))
	for op, flow := range s.flows {
		out[op] = flow.State()
	}
	return out
}

// Reset dismisses a finished result; in-flight slots cannot be reset
func (s *PresaleService) Reset(op domain.Operation) error {
	flow, ok := s.flows[op]
	if !ok {
		return errors.Wrap(ErrUnknownOperation, string(op))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running[op] {
		return ErrSlotBusy
	}
	flow.Reset()
	return nil
}

// History lists journaled requests, newest first
func (s *PresaleService) History(ctx context.Context, account string, limit, offset int) ([]*domain.TransactionRecord, error) {
	if s.journal == nil {
		return nil, nil
	}
	return s.journal.ListRecords(ctx, account, limit, offset)
}

func (s *PresaleService) PresaleStatus(ctx context.Context) (*domain.PresaleStatus, error) {
	return s.reader.PresaleStatus(ctx)
}

func (s *PresaleService) Staking(ctx context.Context) (*domain.StakingInfo, error) {
	return s.reader.Staking(ctx)
}

func (s *PresaleService) Vesting(ctx context.Context) (*domain.VestingInfo, error) {
	return s.reader.Vesting(ctx)
}

// Wait blocks until every background request has finished
func (s *PresaleService) Wait() {
	s.wg.Wait()
}

func (s *PresaleService) acquire(op domain.Operation, currency, amount string) (*Flow, domain.TransactionRequest, error) {
	flow, ok := s.flows[op]
	if !ok {
		return nil, domain.TransactionRequest{}, errors.Wrap(ErrUnknownOperation, string(op))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running[op] {
		return nil, domain.TransactionRequest{}, ErrSlotBusy
	}
	if flow.State().Step != domain.StepIdle {
		return nil, domain.TransactionRequest{}, ErrSlotNotReset
	}
	s.running[op] = true

	req := domain.NewTransactionRequest(op, currency, amount)
	s.logger.Info("transaction requested",
		zap.String("request_id", req.ID.String()),
		zap.String("operation", string(op)),
		zap.String("currency", currency),
		zap.String("amount", amount),
	)
	return flow, req, nil
}

func (s *PresaleService) release(op domain.Operation) {
	s.mu.Lock()
	s.running[op] = false
	s.mu.Unlock()
}
