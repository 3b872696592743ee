package service

import (
	"context"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/dracma/presale/internal/domain"
)

// JournalRecorder writes a TransactionRecord for every request that reaches success or error
type JournalRecorder struct {
	repo    TransactionRepository
	logger  *zap.Logger
	timeout time.Duration
}

func NewJournalRecorder(repo TransactionRepository, logger *zap.Logger) *JournalRecorder {
	return &JournalRecorder{
		repo:    repo,
		logger:  logger.With(zap.String("component", "journal")),
		timeout: 5 * time.Second,
	}
}

// HandleTransition is meant to be subscribed to the transition bus
func (j *JournalRecorder) HandleTransition(t domain.Transition) {
	if !t.To.IsTerminal() || t.State.Request == nil {
		return
	}

	rec := RecordFromState(t.Operation, t.Account, t.State)

	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()
	if err := j.repo.SaveRecord(ctx, rec); err != nil {
		j.logger.Error("failed to journal transaction",
			zap.String("request_id", rec.RequestID),
			zap.String("operation", string(rec.Operation)),
			zap.Error(err),
		)
		return
	}
	j.logger.Debug("transaction journaled", zap.String("request_id", rec.RequestID), zap.String("status", string(rec.Status)))
}

// RecordFromState flattens a terminal state into a journal row
func RecordFromState(op domain.Operation, account common.Address, s domain.TransactionState) *domain.TransactionRecord {
	rec := &domain.TransactionRecord{
		Operation:    op,
		Account:      account.Hex(),
		Status:       s.Step,
		ErrorClass:   s.ErrorClass,
		ErrorMessage: s.ErrorMessage,
		FinishedAt:   s.UpdatedAt,
	}
	if s.Request != nil {
		rec.RequestID = s.Request.ID.String()
		rec.Currency = s.Request.Currency
		rec.Amount = s.Request.Amount
		rec.CreatedAt = s.Request.CreatedAt
	}
	if s.TxHash != nil {
		rec.TxHash = s.TxHash.Hex()
	}
	if s.Quote != nil {
		rec.BaseTokens = s.Quote.BaseTokens.String()
		rec.BonusTokens = s.Quote.BonusTokens.String()
		rec.TotalTokens = s.Quote.TotalTokens.String()
	}
	return rec
}
