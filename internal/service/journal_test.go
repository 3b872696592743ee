package service

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap/zaptest"

	"github.com/dracma/presale/internal/domain"
	"github.com/dracma/presale/internal/mocks"
)

func TestJournalRecorder_WritesTerminalTransitions(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockTransactionRepository(ctrl)

	req := domain.NewTransactionRequest(domain.OperationBuy, "USDT", "500")
	finished := time.Date(2026, 2, 9, 10, 0, 0, 0, time.UTC)
	state := domain.TransactionState{
		Step:      domain.StepSuccess,
		TxHash:    &submitHash,
		Request:   &req,
		UpdatedAt: finished,
		Quote: &domain.PurchaseQuote{
			BaseTokens:  decimal.NewFromInt(2500),
			BonusTokens: decimal.NewFromInt(375),
			TotalTokens: decimal.NewFromInt(2875),
		},
	}

	var saved *domain.TransactionRecord
	repo.EXPECT().SaveRecord(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, rec *domain.TransactionRecord) error {
			saved = rec
			return nil
		})

	j := NewJournalRecorder(repo, zaptest.NewLogger(t))
	j.HandleTransition(domain.Transition{Operation: domain.OperationBuy, From: domain.StepConfirming, To: domain.StepSuccess, State: state, Account: wallet})

	if assert.NotNil(t, saved) {
		assert.Equal(t, req.ID.String(), saved.RequestID)
		assert.Equal(t, wallet.Hex(), saved.Account)
		assert.Equal(t, submitHash.Hex(), saved.TxHash)
		assert.Equal(t, domain.StepSuccess, saved.Status)
		assert.Equal(t, "2875", saved.TotalTokens)
		assert.Equal(t, "USDT", saved.Currency)
		assert.Equal(t, finished, saved.FinishedAt)
	}
}

func TestJournalRecorder_IgnoresIntermediateSteps(t *testing.T) {
	ctrl := gomock.NewController(t)
	// no SaveRecord expected
	repo := mocks.NewMockTransactionRepository(ctrl)
	j := NewJournalRecorder(repo, zaptest.NewLogger(t))

	req := domain.NewTransactionRequest(domain.OperationStake, "", "1")
	for _, step := range []domain.Step{domain.StepApproving, domain.StepStaking, domain.StepConfirming} {
		j.HandleTransition(domain.Transition{To: step, State: domain.TransactionState{Step: step, Request: &req}})
	}
	// a reset carries no request
	j.HandleTransition(domain.Transition{To: domain.StepIdle, State: domain.IdleState()})
}

func TestJournalRecorder_LogsSaveFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockTransactionRepository(ctrl)
	repo.EXPECT().SaveRecord(gomock.Any(), gomock.Any()).Return(errors.New("database is locked"))

	req := domain.NewTransactionRequest(domain.OperationClaimRewards, "", "")
	j := NewJournalRecorder(repo, zaptest.NewLogger(t))

	assert.NotPanics(t, func() {
		j.HandleTransition(domain.Transition{
			To: domain.StepError,
			State: domain.TransactionState{
				Step:         domain.StepError,
				Request:      &req,
				ErrorClass:   domain.ErrorClassNothingStaked,
				ErrorMessage: "no tokens staked",
			},
		})
	})
}
