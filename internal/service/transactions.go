package service

import (
	"context"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/dracma/presale/internal/contracts"
	"github.com/dracma/presale/internal/domain"
)

const defaultSyncBatch = uint64(2000)

// PurchaseIndexer mirrors TokensPurchased logs into the database
type PurchaseIndexer struct {
	repo       PurchaseRepository
	source     PurchaseLogSource
	reg        *contracts.Registry
	startBlock uint64
	batchSize  uint64
	logger     *zap.Logger
	onIndexed  func(n int)
}

func NewPurchaseIndexer(
	repo PurchaseRepository,
	source PurchaseLogSource,
	reg *contracts.Registry,
	startBlock uint64,
	batchSize uint64,
	logger *zap.Logger,
) *PurchaseIndexer {
	if batchSize == 0 {
		batchSize = defaultSyncBatch
	}
	return &PurchaseIndexer{
		repo:       repo,
		source:     source,
		reg:        reg,
		startBlock: startBlock,
		batchSize:  batchSize,
		logger:     logger.With(zap.String("component", "indexer")),
	}
}

// OnIndexed registers a callback receiving the number of logs stored per batch
func (s *PurchaseIndexer) OnIndexed(fn func(n int)) {
	s.onIndexed = fn
}

// SyncPurchases indexes every block between the sync cursor and the chain head
func (s *PurchaseIndexer) SyncPurchases(ctx context.Context) error {
	cursor := s.cursor()
	synced, ok, err := s.repo.GetSyncedBlock(ctx, cursor)
	if err != nil {
		return errors.Wrap(err, "getting sync cursor")
	}

	latestChainBlock, err := s.source.LatestBlock(ctx)
	if err != nil {
		return errors.Wrap(err, "getting latest block from chain")
	}

	from := s.startBlock
	if ok && synced+1 > from {
		from = synced + 1
	}
	if from > latestChainBlock {
		s.logger.Debug("purchases up to date", zap.Uint64("block", synced))
		return nil
	}

	s.logger.Info("syncing purchases", zap.Uint64("from", from), zap.Uint64("to", latestChainBlock))
	for start := from; start <= latestChainBlock; start += s.batchSize {
		end := start + s.batchSize - 1
		if end > latestChainBlock {
			end = latestChainBlock
		}

		events, err := s.source.PurchaseLogs(ctx, start, end)
		if err != nil {
			// stop here so the next run resumes after the last completed batch
			return errors.Wrapf(err, "reading purchase logs %d-%d", start, end)
		}
		if err := s.repo.CreatePurchasesBatch(ctx, events); err != nil {
			return errors.Wrapf(err, "saving purchases %d-%d", start, end)
		}
		if err := s.repo.SetSyncedBlock(ctx, cursor, end); err != nil {
			return errors.Wrapf(err, "advancing sync cursor to %d", end)
		}
		if s.onIndexed != nil && len(events) > 0 {
			s.onIndexed(len(events))
		}
		s.logger.Debug("synced purchase range", zap.Uint64("from", start), zap.Uint64("to", end), zap.Int("events", len(events)))
	}
	return nil
}

// cursor keys the sync position by contract so a redeployed presale is indexed from scratch
func (s *PurchaseIndexer) cursor() string {
	return "purchases:" + strings.ToLower(s.reg.Presale.Hex())
}

// Run syncs on every tick until ctx is done
func (s *PurchaseIndexer) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if err := s.SyncPurchases(ctx); err != nil && ctx.Err() == nil {
			s.logger.Warn("purchase sync failed", zap.Error(err))
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// GetPurchasesByBuyer lists indexed purchases of one wallet, newest first
func (s *PurchaseIndexer) GetPurchasesByBuyer(ctx context.Context, buyer string, limit, offset int) ([]*domain.PurchaseEvent, error) {
	return s.repo.GetPurchasesByBuyer(ctx, strings.ToLower(buyer), limit, offset)
}

// GetWeeklyStatistics aggregates the last seven days
func (s *PurchaseIndexer) GetWeeklyStatistics(ctx context.Context) (*domain.PresaleStatistics, error) {
	end := time.Now()
	return s.GetStatistics(ctx, end.AddDate(0, 0, -7), end)
}

// GetStatistics aggregates indexed purchases in [start, end].
// Sums are computed on big integers since payment amounts exceed float precision.
func (s *PurchaseIndexer) GetStatistics(ctx context.Context, start, end time.Time) (*domain.PresaleStatistics, error) {
	events, err := s.repo.GetPurchasesByTimeRange(ctx, start, end)
	if err != nil {
		return nil, errors.Wrap(err, "loading purchases")
	}
	buyers, err := s.repo.CountUniqueBuyers(ctx, start, end)
	if err != nil {
		return nil, errors.Wrap(err, "counting buyers")
	}

	sold := new(big.Int)
	raised := make(map[int64]*big.Int)
	for _, e := range events {
		addDecimalString(sold, e.TokenAmount)
		if raised[e.TokenIndex] == nil {
			raised[e.TokenIndex] = new(big.Int)
		}
		addDecimalString(raised[e.TokenIndex], e.PaymentAmount)
	}

	stats := &domain.PresaleStatistics{
		PeriodStart:   start,
		PeriodEnd:     end,
		PurchaseCount: int64(len(events)),
		UniqueBuyers:  buyers,
		TokensSold:    sold.String(),
		RaisedByToken: make(map[string]string, len(raised)),
	}
	for idx, total := range raised {
		stats.RaisedByToken[s.tokenSymbol(idx)] = total.String()
	}
	return stats, nil
}

func (s *PurchaseIndexer) tokenSymbol(index int64) string {
	for _, symbol := range s.reg.Currencies() {
		if token, err := s.reg.PaymentToken(symbol); err == nil && token.Index == index {
			return token.Symbol
		}
	}
	return "token-" + strconv.FormatInt(index, 10)
}

func addDecimalString(acc *big.Int, v string) {
	if n, ok := new(big.Int).SetString(v, 10); ok {
		acc.Add(acc, n)
	}
}
