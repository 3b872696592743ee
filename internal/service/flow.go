package service

import (
	"context"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/dracma/presale/internal/contracts"
	"github.com/dracma/presale/internal/domain"
)

// Observer receives every step change of a flow, in order, after the state is updated
type Observer func(domain.Transition)

// FlowConfig are the chain parameters shared by all flows
type FlowConfig struct {
	ChainID       uint64 // 0 skips the network check
	Confirmations uint64
	WaitTimeout   time.Duration // bounds each network switch and receipt wait, 0 means unbounded
}

// Flow is the state machine for one operation slot.
// A flow never deduplicates requests; callers must not run it while a previous request is in flight.
type Flow struct {
	op     *Operation
	chain  ChainClient
	cfg    FlowConfig
	logger *zap.Logger
	now    func() time.Time

	mu        sync.RWMutex
	state     domain.TransactionState
	account   common.Address
	observers []Observer
}

func NewFlow(op *Operation, chain ChainClient, cfg FlowConfig, logger *zap.Logger) *Flow {
	return &Flow{
		op:     op,
		chain:  chain,
		cfg:    cfg,
		logger: logger.With(zap.String("component", "flow"), zap.String("operation", string(op.Kind))),
		now:    time.Now,
		state:  domain.IdleState(),
	}
}

// Operation returns the slot this flow drives
func (f *Flow) Operation() domain.Operation {
	return f.op.Kind
}

// State returns a snapshot of the current state
func (f *Flow) State() domain.TransactionState {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.state.Clone()
}

// Subscribe registers an observer for all future transitions
func (f *Flow) Subscribe(o Observer) {
	f.mu.Lock()
	f.observers = append(f.observers, o)
	f.mu.Unlock()
}

// Reset returns a terminal flow to idle, clearing hash and error
func (f *Flow) Reset() {
	f.mu.Lock()
	if f.state.Step == domain.StepIdle && f.state.Request == nil {
		f.mu.Unlock()
		return
	}
	f.mu.Unlock()
	f.transition(func(s *domain.TransactionState) {
		*s = domain.IdleState()
	})
}

// Run drives req through every step and returns the terminal state
func (f *Flow) Run(ctx context.Context, req domain.TransactionRequest) domain.TransactionState {
	f.mu.Lock()
	f.state = domain.TransactionState{Step: domain.StepIdle, Request: &req, UpdatedAt: f.now()}
	f.account = common.Address{}
	f.mu.Unlock()

	if err := f.execute(ctx, req); err != nil {
		f.fail(err)
	}
	return f.State()
}

func (f *Flow) execute(ctx context.Context, req domain.TransactionRequest) error {
	// the account is recorded before validation so rejected requests stay attributable
	account := f.chain.Account()
	f.mu.Lock()
	f.account = account
	f.mu.Unlock()

	p, err := f.op.prepare(req, f.now())
	if err != nil {
		return err
	}
	if account == (common.Address{}) {
		return ErrWalletNotConnected
	}

	if err := f.ensureNetwork(ctx); err != nil {
		return err
	}

	if p.approval != nil {
		if err := f.ensureAllowance(ctx, account, p.approval, p.amount); err != nil {
			return err
		}
	}

	f.moveTo(f.op.SubmitStep, func(s *domain.TransactionState) {
		s.Quote = p.quote
	})
	hash, err := f.chain.WriteContract(ctx, p.call)
	if err != nil {
		return errors.Wrapf(err, "submitting %s", p.call.Method)
	}

	f.moveTo(domain.StepConfirming, func(s *domain.TransactionState) {
		s.TxHash = &hash
	})
	receipt, err := f.wait(ctx, hash)
	if err != nil {
		return errors.Wrapf(err, "confirming %s", hash.Hex())
	}
	if receipt.Status != domain.ReceiptSuccess {
		return errors.Wrapf(ErrReverted, "%s in block %d", hash.Hex(), receipt.BlockNumber)
	}

	f.moveTo(domain.StepSuccess, nil)
	f.logger.Info("transaction confirmed",
		zap.String("tx_hash", hash.Hex()),
		zap.Uint64("block", receipt.BlockNumber),
		zap.Uint64("gas_used", receipt.GasUsed),
	)
	return nil
}

func (f *Flow) ensureNetwork(ctx context.Context) error {
	if f.cfg.ChainID == 0 {
		return nil
	}
	active, err := f.chain.ActiveNetwork(ctx)
	if err != nil {
		return errors.Wrap(err, "reading active network")
	}
	if active == f.cfg.ChainID {
		return nil
	}

	f.moveTo(domain.StepSwitchingChain, nil)
	wctx, cancel := f.bounded(ctx)
	defer cancel()
	if err := f.chain.SwitchNetwork(wctx, f.cfg.ChainID); err != nil {
		return errors.Wrapf(err, "switching network %d -> %d", active, f.cfg.ChainID)
	}
	return nil
}

func (f *Flow) ensureAllowance(ctx context.Context, owner common.Address, a *approval, amount *big.Int) error {
	out, err := f.chain.ReadContract(ctx, call(a.token, contracts.ERC20ABI, "allowance", owner, a.spender))
	if err != nil {
		return errors.Wrap(err, "reading allowance")
	}
	snapshot := domain.AllowanceSnapshot{Owner: owner, Spender: a.spender}
	if len(out) > 0 {
		snapshot.Amount, _ = out[0].(*big.Int)
	}
	if snapshot.Covers(amount) {
		f.logger.Debug("allowance sufficient, skipping approval", zap.Stringer("allowance", snapshot.Amount))
		return nil
	}

	f.moveTo(domain.StepApproving, nil)
	hash, err := f.chain.WriteContract(ctx, call(a.token, contracts.ERC20ABI, "approve", a.spender, amount))
	if err != nil {
		return errors.Wrap(err, "submitting approval")
	}

	f.moveTo(domain.StepWaitingApproval, nil)
	receipt, err := f.wait(ctx, hash)
	if err != nil {
		return errors.Wrapf(err, "confirming approval %s", hash.Hex())
	}
	if receipt.Status != domain.ReceiptSuccess {
		return errors.Wrapf(ErrApprovalReverted, "%s", hash.Hex())
	}
	return nil
}

func (f *Flow) wait(ctx context.Context, hash common.Hash) (*domain.Receipt, error) {
	wctx, cancel := f.bounded(ctx)
	defer cancel()

	receipt, err := f.chain.WaitForReceipt(wctx, hash, f.cfg.Confirmations)
	if err != nil {
		if wctx.Err() == context.DeadlineExceeded && ctx.Err() == nil {
			return nil, errors.Wrapf(context.DeadlineExceeded, "no receipt after %s", f.cfg.WaitTimeout)
		}
		return nil, err
	}
	if receipt == nil {
		return nil, errors.New("empty receipt")
	}
	return receipt, nil
}

func (f *Flow) bounded(ctx context.Context) (context.Context, context.CancelFunc) {
	if f.cfg.WaitTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, f.cfg.WaitTimeout)
}

func (f *Flow) fail(err error) {
	c := Classify(err)
	f.logger.Warn("transaction failed",
		zap.String("class", string(c.Class)),
		zap.String("message", c.Message),
		zap.Error(err),
	)
	f.moveTo(domain.StepError, func(s *domain.TransactionState) {
		s.ErrorClass = c.Class
		s.ErrorMessage = c.Message
	})
}

func (f *Flow) moveTo(step domain.Step, mutate func(*domain.TransactionState)) {
	f.transition(func(s *domain.TransactionState) {
		s.Step = step
		if mutate != nil {
			mutate(s)
		}
	})
}

// transition applies mutate under the lock and notifies observers outside it
func (f *Flow) transition(mutate func(*domain.TransactionState)) {
	f.mu.Lock()
	from := f.state.Step
	mutate(&f.state)
	f.state.UpdatedAt = f.now()
	t := domain.Transition{
		Operation: f.op.Kind,
		From:      from,
		To:        f.state.Step,
		State:     f.state.Clone(),
		Account:   f.account,
	}
	observers := make([]Observer, len(f.observers))
	copy(observers, f.observers)
	f.mu.Unlock()

	for _, o := range observers {
		o(t)
	}
}
