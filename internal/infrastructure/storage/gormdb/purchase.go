package gormdb

import (
	"context"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/dracma/presale/internal/domain"
)

// PurchaseModel represents an indexed TokensPurchased log
type PurchaseModel struct {
	ID            uint      `gorm:"primaryKey;autoIncrement"`
	TxHash        string    `gorm:"uniqueIndex:idx_purchase_log;not null"`
	LogIndex      uint      `gorm:"uniqueIndex:idx_purchase_log;not null"`
	Buyer         string    `gorm:"index;not null"`
	TokenIndex    int64     `gorm:"index;not null"`
	PaymentAmount string    `gorm:"not null"`
	TokenAmount   string    `gorm:"not null"`
	BlockNumber   uint64    `gorm:"index;not null"`
	Timestamp     time.Time `gorm:"index;not null"`
	CreatedAt     time.Time
}

func (PurchaseModel) TableName() string {
	return "presale_purchases"
}

// SyncCursorModel stores how far a log stream has been indexed
type SyncCursorModel struct {
	Name        string `gorm:"primaryKey"`
	BlockNumber uint64 `gorm:"not null"`
	UpdatedAt   time.Time
}

func (SyncCursorModel) TableName() string {
	return "sync_cursors"
}

// PurchaseRepository handles database operations for indexed purchases
type PurchaseRepository struct {
	db *gorm.DB
}

func NewPurchaseRepository(db *gorm.DB) *PurchaseRepository {
	return &PurchaseRepository{db: db}
}

func toDomainPurchase(model *PurchaseModel) *domain.PurchaseEvent {
	return &domain.PurchaseEvent{
		ID:            strconv.FormatUint(uint64(model.ID), 10),
		TxHash:        model.TxHash,
		LogIndex:      model.LogIndex,
		Buyer:         model.Buyer,
		TokenIndex:    model.TokenIndex,
		PaymentAmount: model.PaymentAmount,
		TokenAmount:   model.TokenAmount,
		BlockNumber:   model.BlockNumber,
		Timestamp:     model.Timestamp,
	}
}

func toPurchaseModel(e *domain.PurchaseEvent) PurchaseModel {
	return PurchaseModel{
		TxHash:        e.TxHash,
		LogIndex:      e.LogIndex,
		Buyer:         e.Buyer,
		TokenIndex:    e.TokenIndex,
		PaymentAmount: e.PaymentAmount,
		TokenAmount:   e.TokenAmount,
		BlockNumber:   e.BlockNumber,
		Timestamp:     e.Timestamp,
	}
}

// CreatePurchasesBatch stores events; logs already indexed are skipped
func (r *PurchaseRepository) CreatePurchasesBatch(ctx context.Context, events []*domain.PurchaseEvent) error {
	if len(events) == 0 {
		return nil
	}

	models := make([]PurchaseModel, len(events))
	for i, e := range events {
		models[i] = toPurchaseModel(e)
	}

	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		CreateInBatches(models, 100).Error; err != nil {
		return errors.Wrap(err, "creating purchases batch")
	}
	return nil
}

// GetSyncedBlock returns the last fully indexed block of a cursor
func (r *PurchaseRepository) GetSyncedBlock(ctx context.Context, cursor string) (uint64, bool, error) {
	var model SyncCursorModel
	err := r.db.WithContext(ctx).Where("name = ?", cursor).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, false, nil
		}
		return 0, false, errors.Wrap(err, "getting sync cursor")
	}
	return model.BlockNumber, true, nil
}

// SetSyncedBlock moves a cursor, creating it on first use
func (r *PurchaseRepository) SetSyncedBlock(ctx context.Context, cursor string, block uint64) error {
	model := SyncCursorModel{Name: cursor, BlockNumber: block, UpdatedAt: time.Now().UTC()}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{"block_number", "updated_at"}),
		}).
		Create(&model).Error; err != nil {
		return errors.Wrap(err, "setting sync cursor")
	}
	return nil
}

// GetPurchasesByBuyer retrieves purchases of one buyer, newest first
func (r *PurchaseRepository) GetPurchasesByBuyer(ctx context.Context, buyer string, limit, offset int) ([]*domain.PurchaseEvent, error) {
	var models []PurchaseModel
	query := r.db.WithContext(ctx).
		Where("buyer = ?", buyer).
		Order("block_number DESC").
		Order("log_index DESC").
		Limit(limit).
		Offset(offset)

	if err := query.Find(&models).Error; err != nil {
		return nil, errors.Wrap(err, "getting purchases by buyer")
	}
	return toDomainPurchases(models), nil
}

// GetPurchasesByTimeRange retrieves purchases within a time range
func (r *PurchaseRepository) GetPurchasesByTimeRange(ctx context.Context, start, end time.Time) ([]*domain.PurchaseEvent, error) {
	var models []PurchaseModel
	if err := r.db.WithContext(ctx).
		Where("timestamp >= ? AND timestamp <= ?", start, end).
		Order("timestamp ASC").
		Find(&models).Error; err != nil {
		return nil, errors.Wrap(err, "getting purchases by time range")
	}
	return toDomainPurchases(models), nil
}

// CountUniqueBuyers counts distinct buyers within a time range
func (r *PurchaseRepository) CountUniqueBuyers(ctx context.Context, start, end time.Time) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&PurchaseModel{}).
		Where("timestamp >= ? AND timestamp <= ?", start, end).
		Distinct("buyer").
		Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "counting unique buyers")
	}
	return count, nil
}

func toDomainPurchases(models []PurchaseModel) []*domain.PurchaseEvent {
	out := make([]*domain.PurchaseEvent, len(models))
	for i := range models {
		out[i] = toDomainPurchase(&models[i])
	}
	return out
}
