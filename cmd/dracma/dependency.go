package main

import (
	"context"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/dracma/presale/internal/config"
	"github.com/dracma/presale/internal/events"
	"github.com/dracma/presale/internal/infrastructure/blockchain"
	"github.com/dracma/presale/internal/infrastructure/cache"
	"github.com/dracma/presale/internal/infrastructure/storage/gormdb"
	"github.com/dracma/presale/internal/logger"
	"github.com/dracma/presale/internal/metrics"
	"github.com/dracma/presale/internal/service"
)

// app holds every long-lived dependency; built once per command
type app struct {
	cfg      *config.Config
	logger   *zap.Logger
	bus      *events.Bus
	chain    *blockchain.EVMClient
	db       *gorm.DB
	store    *cache.Store
	metrics  *metrics.Metrics
	registry *prometheus.Registry
	presale  *service.PresaleService
	indexer  *service.PurchaseIndexer
}

func loadConfig() (*config.Config, *zap.Logger, error) {
	cfg, err := config.GetConfig(cfgPath)
	if err != nil {
		return nil, nil, err
	}
	log, err := logger.New(cfg.LoggerOptions())
	if err != nil {
		return nil, nil, err
	}
	return cfg, log, nil
}

func newApp(ctx context.Context) (*app, error) {
	cfg, log, err := loadConfig()
	if err != nil {
		return nil, err
	}
	a := &app{cfg: cfg, logger: log, bus: events.New()}

	signer, err := newSigner(cfg.Signer)
	if err != nil {
		return nil, err
	}
	if signer == nil {
		log.Warn("no signer configured, running read-only")
	} else {
		log.Info("signer loaded", zap.String("account", signer.Address().Hex()))
	}

	a.chain, err = blockchain.NewEVMClient(ctx, cfg.RPCEndpoints(), cfg.Chain.ID, signer, cfg.Chain.PollInterval, log)
	if err != nil {
		return nil, errors.Wrap(err, "connecting to chain")
	}

	dialector, err := gormdb.Dialector(cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		return nil, err
	}
	a.db, err = gormdb.NewDB(dialector, nil)
	if err != nil {
		return nil, err
	}

	a.store, err = cache.New(ctx, cfg.Cache.TTL, cfg.Cache.MaxSizeMB, log)
	if err != nil {
		return nil, err
	}

	terms, err := cfg.Terms()
	if err != nil {
		return nil, err
	}
	reg := cfg.Registry()

	a.registry = prometheus.NewRegistry()
	a.registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	a.metrics = metrics.New(a.registry)

	txRepo := gormdb.NewTransactionRepository(a.db)
	reader := service.NewDashboardReader(a.chain, reg, a.store, log)
	a.presale = service.NewPresaleService(a.chain, reg, terms, cfg.FlowConfig(), reader, txRepo, a.bus, log)

	journal := service.NewJournalRecorder(txRepo, log)
	if _, err := a.bus.OnTransitionAsync(journal.HandleTransition); err != nil {
		return nil, err
	}
	if _, err := a.bus.OnTransition(a.metrics.ObserveTransition); err != nil {
		return nil, err
	}

	a.indexer = service.NewPurchaseIndexer(
		gormdb.NewPurchaseRepository(a.db),
		blockchain.NewPurchaseLogReader(a.chain, reg.Presale),
		reg,
		cfg.Indexer.StartBlock,
		cfg.Indexer.BatchSize,
		log,
	)
	a.indexer.OnIndexed(a.metrics.AddIndexed)

	return a, nil
}

func newSigner(cfg config.Signer) (*blockchain.Signer, error) {
	if cfg.PrivateKey == "" && cfg.Mnemonic == "" {
		return nil, nil
	}
	return blockchain.NewSigner(cfg.PrivateKey, cfg.Mnemonic, cfg.Passphrase, cfg.AccountIndex)
}

// Close drains background work and releases connections
func (a *app) Close() {
	a.presale.Wait()
	a.bus.WaitAsync()

	if a.store != nil {
		_ = a.store.Close()
	}
	if a.db != nil {
		if sqlDB, err := a.db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	a.chain.Close()
	_ = a.logger.Sync()
}
