package gormdb

import (
	"context"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/dracma/presale/internal/domain"
)

// TransactionRecordModel represents the database model for journaled requests
type TransactionRecordModel struct {
	ID           uint      `gorm:"primaryKey;autoIncrement"`
	RequestID    string    `gorm:"uniqueIndex;not null"`
	Operation    string    `gorm:"index;not null"`
	Account      string    `gorm:"index;not null"`
	Currency     string
	Amount       string
	TxHash       string    `gorm:"index"`
	Status       string    `gorm:"index;not null"`
	ErrorClass   string
	ErrorMessage string
	BaseTokens   string
	BonusTokens  string
	TotalTokens  string
	StartedAt    time.Time `gorm:"index"`
	FinishedAt   time.Time `gorm:"index;not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName specifies the table name for TransactionRecordModel
func (TransactionRecordModel) TableName() string {
	return "transaction_records"
}

// TransactionRepository handles database operations for the transaction journal
type TransactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) *TransactionRepository {
	return &TransactionRepository{
		db: db,
	}
}

func toDomainRecord(model *TransactionRecordModel) *domain.TransactionRecord {
	return &domain.TransactionRecord{
		ID:           strconv.FormatUint(uint64(model.ID), 10),
		RequestID:    model.RequestID,
		Operation:    domain.Operation(model.Operation),
		Account:      model.Account,
		Currency:     model.Currency,
		Amount:       model.Amount,
		TxHash:       model.TxHash,
		Status:       domain.Step(model.Status),
		ErrorClass:   domain.ErrorClass(model.ErrorClass),
		ErrorMessage: model.ErrorMessage,
		BaseTokens:   model.BaseTokens,
		BonusTokens:  model.BonusTokens,
		TotalTokens:  model.TotalTokens,
		CreatedAt:    model.StartedAt,
		FinishedAt:   model.FinishedAt,
	}
}

func toRecordModel(rec *domain.TransactionRecord) *TransactionRecordModel {
	return &TransactionRecordModel{
		RequestID:    rec.RequestID,
		Operation:    string(rec.Operation),
		Account:      rec.Account,
		Currency:     rec.Currency,
		Amount:       rec.Amount,
		TxHash:       rec.TxHash,
		Status:       string(rec.Status),
		ErrorClass:   string(rec.ErrorClass),
		ErrorMessage: rec.ErrorMessage,
		BaseTokens:   rec.BaseTokens,
		BonusTokens:  rec.BonusTokens,
		TotalTokens:  rec.TotalTokens,
		StartedAt:    rec.CreatedAt,
		FinishedAt:   rec.FinishedAt,
	}
}

// SaveRecord inserts a journal entry
func (r *TransactionRepository) SaveRecord(ctx context.Context, rec *domain.TransactionRecord) error {
	model := toRecordModel(rec)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return errors.Wrap(err, "creating transaction record")
	}
	rec.ID = strconv.FormatUint(uint64(model.ID), 10)
	return nil
}

// GetRecordByRequestID returns nil when the request was never journaled
func (r *TransactionRepository) GetRecordByRequestID(ctx context.Context, requestID string) (*domain.TransactionRecord, error) {
	var model TransactionRecordModel
	if err := r.db.WithContext(ctx).Where("request_id = ?", requestID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "getting transaction record")
	}
	return toDomainRecord(&model), nil
}

// ListRecords retrieves journal entries newest first, optionally for one account
func (r *TransactionRepository) ListRecords(ctx context.Context, account string, limit, offset int) ([]*domain.TransactionRecord, error) {
	var models []TransactionRecordModel
	query := r.db.WithContext(ctx).
		Order("finished_at DESC").
		Order("id DESC").
		Limit(limit).
		Offset(offset)
	if account != "" {
		query = query.Where("LOWER(account) = LOWER(?)", account)
	}

	if err := query.Find(&models).Error; err != nil {
		return nil, errors.Wrap(err, "listing transaction records")
	}

	recs := make([]*domain.TransactionRecord, len(models))
	for i := range models {
		recs[i] = toDomainRecord(&models[i])
	}
	return recs, nil
}
