package gormdb

import (
	"github.com/pkg/errors"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var ErrUnknownDriver = errors.New("unknown database driver")

// Dialector picks the gorm driver by name
func Dialector(driver, dsn string) (gorm.Dialector, error) {
	switch driver {
	case "postgres":
		return postgres.Open(dsn), nil
	case "sqlite":
		return sqlite.Open(dsn), nil
	default:
		return nil, errors.Wrap(ErrUnknownDriver, driver)
	}
}

// NewDB creates a new instance of database connection using GORM
func NewDB(dialector gorm.Dialector, cfg *gorm.Config) (*gorm.DB, error) {
	if cfg == nil {
		cfg = &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)}
	}
	db, err := gorm.Open(dialector, cfg)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to database")
	}

	// Auto-migrate the schema
	if err := db.AutoMigrate(&TransactionRecordModel{}, &PurchaseModel{}, &SyncCursorModel{}); err != nil {
		return nil, errors.Wrap(err, "failed to migrate database")
	}

	return db, nil
}
