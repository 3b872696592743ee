package service

import (
	"context"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap/zaptest"

	"github.com/dracma/presale/internal/domain"
	"github.com/dracma/presale/internal/mocks"
)

func newTestPresaleService(t *testing.T, chain ChainClient, journal TransactionRepository, publisher TransitionPublisher) *PresaleService {
	t.Helper()
	logger := zaptest.NewLogger(t)
	reader := NewDashboardReader(chain, testRegistry(), nil, logger)
	svc := NewPresaleService(chain, testRegistry(), testTerms(), testFlowConfig(), reader, journal, publisher, logger)
	svc.now = func() time.Time { return presaleStart.Add(time.Hour) }
	for _, f := range svc.flows {
		f.now = svc.now
	}
	return svc
}

func TestPresaleService_Quote(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := newTestPresaleService(t, mocks.NewMockChainClient(ctrl), nil, nil)

	q, err := svc.Quote("500", "USDT")
	require.NoError(t, err)
	assert.Equal(t, "2875", q.TotalTokens.String())
	assert.Equal(t, "phase-1", q.TierLabel)

	q, err = svc.Quote("garbage", "")
	require.NoError(t, err)
	assert.True(t, q.TotalTokens.IsZero())

	_, err = svc.Quote("10", "DAI")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, domain.ErrorClassUnsupportedCurrency, verr.Class)

	assert.Equal(t, []string{"USDT", "USDC"}, svc.Currencies())
}

func TestPresaleService_StartRefusesBusySlot(t *testing.T) {
	ctrl := gomock.NewController(t)
	chain := mocks.NewMockChainClient(ctrl)
	publisher := mocks.NewMockTransitionPublisher(ctrl)
	publisher.EXPECT().PublishTransition(gomock.Any()).AnyTimes()

	release := make(chan struct{})
	confirming := make(chan struct{})

	chain.EXPECT().Account().Return(wallet)
	chain.EXPECT().ActiveNetwork(gomock.Any()).Return(uint64(56), nil)
	chain.EXPECT().WriteContract(gomock.Any(), callTo(stakingAddr, "claimRewards")).Return(submitHash, nil)
	chain.EXPECT().WaitForReceipt(gomock.Any(), submitHash, uint64(1)).
		DoAndReturn(func(context.Context, common.Hash, uint64) (*domain.Receipt, error) {
			close(confirming)
			<-release
			return receipt(submitHash, domain.ReceiptSuccess), nil
		})

	svc := newTestPresaleService(t, chain, nil, publisher)

	ctx, cancel := context.WithCancel(context.Background())
	state, err := svc.Start(ctx, domain.OperationClaimRewards, "", "")
	require.NoError(t, err)
	require.NotNil(t, state.Request)
	// cancelling the originating request must not abort the flow
	cancel()

	<-confirming
	_, err = svc.Start(context.Background(), domain.OperationClaimRewards, "", "")
	assert.ErrorIs(t, err, ErrSlotBusy)
	assert.ErrorIs(t, svc.Reset(domain.OperationClaimRewards), ErrSlotBusy)

	current, err := svc.State(domain.OperationClaimRewards)
	require.NoError(t, err)
	assert.Equal(t, domain.StepConfirming, current.Step)
	require.NotNil(t, current.TxHash)

	close(release)
	svc.Wait()

	current, err = svc.State(domain.OperationClaimRewards)
	require.NoError(t, err)
	assert.Equal(t, domain.StepSuccess, current.Step)

	_, err = svc.Start(context.Background(), domain.OperationClaimRewards, "", "")
	assert.ErrorIs(t, err, ErrSlotNotReset)

	require.NoError(t, svc.Reset(domain.OperationClaimRewards))
	current, _ = svc.State(domain.OperationClaimRewards)
	assert.Equal(t, domain.StepIdle, current.Step)
}

func TestPresaleService_SlotsAreIndependent(t *testing.T) {
	ctrl := gomock.NewController(t)
	chain := mocks.NewMockChainClient(ctrl)
	chain.EXPECT().Account().Return(wallet)

	svc := newTestPresaleService(t, chain, nil, nil)

	state, err := svc.Execute(context.Background(), domain.OperationBuy, "USDT", "0.1")
	require.NoError(t, err)
	assert.Equal(t, domain.ErrorClassBelowMinimum, state.ErrorClass)

	states := svc.States()
	assert.Len(t, states, len(domain.Operations))
	assert.Equal(t, domain.StepError, states[domain.OperationBuy].Step)
	assert.Equal(t, domain.StepIdle, states[domain.OperationStake].Step)
}

func TestPresaleService_UnknownOperation(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := newTestPresaleService(t, mocks.NewMockChainClient(ctrl), nil, nil)

	_, err := svc.Start(context.Background(), domain.Operation("swap"), "", "1")
	assert.ErrorIs(t, err, ErrUnknownOperation)
	_, err = svc.State(domain.Operation("swap"))
	assert.ErrorIs(t, err, ErrUnknownOperation)
	assert.ErrorIs(t, svc.Reset(domain.Operation("swap")), ErrUnknownOperation)
}

func TestPresaleService_History(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockTransactionRepository(ctrl)
	want := []*domain.TransactionRecord{{RequestID: "r1", Operation: domain.OperationBuy, Status: domain.StepSuccess}}
	repo.EXPECT().ListRecords(gomock.Any(), wallet.Hex(), 20, 0).Return(want, nil)

	svc := newTestPresaleService(t, mocks.NewMockChainClient(ctrl), repo, nil)
	got, err := svc.History(context.Background(), wallet.Hex(), 20, 0)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
