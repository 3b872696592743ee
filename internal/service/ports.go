package service

import (
	"context"
	"time"

	"github.com/dracma/presale/internal/domain"
)

//go:generate mockgen -source=ports.go -destination=../mocks/ports.go -package=mocks

// TransactionRepository stores the journal of finished requests
type TransactionRepository interface {
	SaveRecord(ctx context.Context, rec *domain.TransactionRecord) error
	// ListRecords returns newest first; an empty account lists every account
	ListRecords(ctx context.Context, account string, limit, offset int) ([]*domain.TransactionRecord, error)
}

// PurchaseRepository stores indexed TokensPurchased events
type PurchaseRepository interface {
	// GetSyncedBlock returns the last block fully indexed under cursor; ok is false before the first batch
	GetSyncedBlock(ctx context.Context, cursor string) (block uint64, ok bool, err error)
	SetSyncedBlock(ctx context.Context, cursor string, block uint64) error
	CreatePurchasesBatch(ctx context.Context, events []*domain.PurchaseEvent) error
	GetPurchasesByBuyer(ctx context.Context, buyer string, limit, offset int) ([]*domain.PurchaseEvent, error)
	GetPurchasesByTimeRange(ctx context.Context, start, end time.Time) ([]*domain.PurchaseEvent, error)
	CountUniqueBuyers(ctx context.Context, start, end time.Time) (int64, error)
}

// PurchaseLogSource reads presale purchase logs from the chain
type PurchaseLogSource interface {
	LatestBlock(ctx context.Context) (uint64, error)
	PurchaseLogs(ctx context.Context, fromBlock, toBlock uint64) ([]*domain.PurchaseEvent, error)
}

// Cache holds short-lived informational reads
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte)
}

// TransitionPublisher fans flow transitions out to the rest of the application
type TransitionPublisher interface {
	PublishTransition(t domain.Transition)
}
