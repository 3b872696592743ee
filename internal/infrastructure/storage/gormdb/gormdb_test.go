package gormdb

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/dracma/presale/internal/domain"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := NewDB(sqlite.Open(dsn), nil)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func TestDialector(t *testing.T) {
	_, err := Dialector("sqlite", "file::memory:")
	assert.NoError(t, err)
	_, err = Dialector("postgres", "host=localhost")
	assert.NoError(t, err)
	_, err = Dialector("mysql", "")
	assert.ErrorIs(t, err, ErrUnknownDriver)
}

func TestTransactionRepository_SaveAndList(t *testing.T) {
	repo := NewTransactionRepository(newTestDB(t))
	ctx := context.Background()
	base := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)

	records := []*domain.TransactionRecord{
		{RequestID: "r1", Operation: domain.OperationBuy, Account: "0xAbC", Currency: "USDT", Amount: "500",
			TxHash: "0x01", Status: domain.StepSuccess, TotalTokens: "2875", CreatedAt: base, FinishedAt: base.Add(time.Minute)},
		{RequestID: "r2", Operation: domain.OperationStake, Account: "0xabc", Amount: "10",
			Status: domain.StepError, ErrorClass: domain.ErrorClassUserRejected, ErrorMessage: "transaction rejected by the user",
			CreatedAt: base.Add(time.Hour), FinishedAt: base.Add(time.Hour + time.Minute)},
		{RequestID: "r3", Operation: domain.OperationClaimRewards, Account: "0xdef",
			Status: domain.StepSuccess, CreatedAt: base.Add(2 * time.Hour), FinishedAt: base.Add(2*time.Hour + time.Minute)},
	}
	for _, rec := range records {
		require.NoError(t, repo.SaveRecord(ctx, rec))
		assert.NotEmpty(t, rec.ID)
	}

	all, err := repo.ListRecords(ctx, "", 10, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "r3", all[0].RequestID)
	assert.Equal(t, "r1", all[2].RequestID)

	mine, err := repo.ListRecords(ctx, "0xABC", 10, 0)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, domain.ErrorClassUserRejected, mine[0].ErrorClass)
	assert.Equal(t, "2875", mine[1].TotalTokens)
	assert.True(t, base.Equal(mine[1].CreatedAt))

	page, err := repo.ListRecords(ctx, "", 1, 1)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "r2", page[0].RequestID)

	got, err := repo.GetRecordByRequestID(ctx, "r1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, domain.StepSuccess, got.Status)

	missing, err := repo.GetRecordByRequestID(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestTransactionRepository_DuplicateRequest(t *testing.T) {
	repo := NewTransactionRepository(newTestDB(t))
	ctx := context.Background()

	rec := &domain.TransactionRecord{RequestID: "dup", Operation: domain.OperationBuy, Account: "0x1", Status: domain.StepSuccess, FinishedAt: time.Now().UTC()}
	require.NoError(t, repo.SaveRecord(ctx, rec))
	again := *rec
	assert.Error(t, repo.SaveRecord(ctx, &again))
}

func TestPurchaseRepository(t *testing.T) {
	repo := NewPurchaseRepository(newTestDB(t))
	ctx := context.Background()
	day := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)

	events := []*domain.PurchaseEvent{
		{TxHash: "0xa", LogIndex: 0, Buyer: "0xb1", TokenIndex: 0, PaymentAmount: "500", TokenAmount: "2875", BlockNumber: 10, Timestamp: day},
		{TxHash: "0xa", LogIndex: 1, Buyer: "0xb2", TokenIndex: 1, PaymentAmount: "100", TokenAmount: "575", BlockNumber: 10, Timestamp: day},
		{TxHash: "0xb", LogIndex: 0, Buyer: "0xb1", TokenIndex: 0, PaymentAmount: "20", TokenAmount: "115", BlockNumber: 42, Timestamp: day.Add(48 * time.Hour)},
	}
	require.NoError(t, repo.CreatePurchasesBatch(ctx, events))
	// re-indexing the same logs is a no-op
	require.NoError(t, repo.CreatePurchasesBatch(ctx, events[:1]))
	require.NoError(t, repo.CreatePurchasesBatch(ctx, nil))

	byBuyer, err := repo.GetPurchasesByBuyer(ctx, "0xb1", 10, 0)
	require.NoError(t, err)
	require.Len(t, byBuyer, 2)
	assert.Equal(t, uint64(42), byBuyer[0].BlockNumber)

	inRange, err := repo.GetPurchasesByTimeRange(ctx, day, day.Add(time.Hour))
	require.NoError(t, err)
	assert.Len(t, inRange, 2)

	buyers, err := repo.CountUniqueBuyers(ctx, day, day.Add(72*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(2), buyers)
}

func TestPurchaseRepository_SyncCursor(t *testing.T) {
	repo := NewPurchaseRepository(newTestDB(t))
	ctx := context.Background()

	_, ok, err := repo.GetSyncedBlock(ctx, "purchases:0xa")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, repo.SetSyncedBlock(ctx, "purchases:0xa", 2000))
	require.NoError(t, repo.SetSyncedBlock(ctx, "purchases:0xa", 4000))
	require.NoError(t, repo.SetSyncedBlock(ctx, "purchases:0xb", 7))

	block, ok, err := repo.GetSyncedBlock(ctx, "purchases:0xa")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, uint64(4000), block)

	block, ok, err = repo.GetSyncedBlock(ctx, "purchases:0xb")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, uint64(7), block)
}
