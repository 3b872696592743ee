package config

import (
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/dracma/presale/internal/contracts"
	"github.com/dracma/presale/internal/domain"
	"github.com/dracma/presale/internal/logger"
	"github.com/dracma/presale/internal/service"
)

type (
	Config struct {
		App          `yaml:"app" env-prefix:"APP_"`
		GRPC         `yaml:"grpc" env-prefix:"GRPC_"`
		HTTP         `yaml:"http" env-prefix:"HTTP_"`
		Database     `yaml:"database" env-prefix:"DATABASE_"`
		Chain        `yaml:"chain" env-prefix:"CHAIN_"`
		Contracts    `yaml:"contracts" env-prefix:"CONTRACTS_"`
		Tokens       []Token `yaml:"tokens"`
		Signer       `yaml:"signer" env-prefix:"SIGNER_"`
		Presale      `yaml:"presale" env-prefix:"PRESALE_"`
		Orchestrator `yaml:"orchestrator" env-prefix:"ORCHESTRATOR_"`
		Indexer      `yaml:"indexer" env-prefix:"INDEXER_"`
		Cache        `yaml:"cache" env-prefix:"CACHE_"`
		Log          `yaml:"log" env-prefix:"LOG_"`
		Assistant    `yaml:"assistant" env-prefix:"ASSISTANT_"`
	}

	App struct {
		Name    string `yaml:"name" env:"NAME" env-default:"dracma-presale"`
		Version string `yaml:"version" env:"VERSION" env-default:"dev"`
	}

	GRPC struct {
		Port             string `yaml:"port" env:"PORT" env-default:":9090"`
		EnableReflection bool   `yaml:"enable_reflection" env:"ENABLE_REFLECTION"`
	}

	HTTP struct {
		Port string `yaml:"port" env:"PORT" env-default:":8080"`
	}

	Database struct {
		Driver string `yaml:"driver" env:"DRIVER" env-default:"sqlite"` // postgres or sqlite
		DSN    string `yaml:"dsn" env:"DSN" env-default:"dracma.db"`
	}

	Chain struct {
		ID           uint64            `yaml:"id" env:"ID" env-default:"56"`
		Name         string            `yaml:"name" env:"NAME" env-default:"BSC"`
		RPC          map[uint64]string `yaml:"rpc"`
		RPCURL       string            `yaml:"rpc_url" env:"RPC_URL"` // overrides rpc[id]
		PollInterval time.Duration     `yaml:"poll_interval" env:"POLL_INTERVAL" env-default:"3s"`
	}

	Contracts struct {
		Presale       string `yaml:"presale" env:"PRESALE"`
		Staking       string `yaml:"staking" env:"STAKING"`
		Vesting       string `yaml:"vesting" env:"VESTING"`
		Token         string `yaml:"token" env:"TOKEN"`
		TokenDecimals uint8  `yaml:"token_decimals" env:"TOKEN_DECIMALS" env-default:"18"`
	}

	Token struct {
		Symbol   string `yaml:"symbol"`
		Address  string `yaml:"address"`
		Index    int64  `yaml:"index"`
		Decimals uint8  `yaml:"decimals"`
	}

	Signer struct {
		PrivateKey   string `yaml:"private_key" env:"PRIVATE_KEY"`
		Mnemonic     string `yaml:"mnemonic" env:"MNEMONIC"`
		Passphrase   string `yaml:"passphrase" env:"PASSPHRASE"`
		AccountIndex uint32 `yaml:"account_index" env:"ACCOUNT_INDEX"`
	}

	Presale struct {
		Price       string `yaml:"price" env:"PRICE" env-default:"0.20"`
		MinPurchase string `yaml:"min_purchase" env:"MIN_PURCHASE" env-default:"1"`
		Tiers       []Tier `yaml:"tiers"`
	}

	Tier struct {
		Label string `yaml:"label"`
		Start string `yaml:"start"` // RFC3339
		End   string `yaml:"end"`
		Rate  string `yaml:"rate"`
	}

	Orchestrator struct {
		Confirmations uint64        `yaml:"confirmations" env:"CONFIRMATIONS" env-default:"1"`
		WaitTimeout   time.Duration `yaml:"wait_timeout" env:"WAIT_TIMEOUT" env-default:"3m"`
	}

	Indexer struct {
		Enabled    bool          `yaml:"enabled" env:"ENABLED"`
		StartBlock uint64        `yaml:"start_block" env:"START_BLOCK"`
		BatchSize  uint64        `yaml:"batch_size" env:"BATCH_SIZE" env-default:"2000"`
		Interval   time.Duration `yaml:"interval" env:"INTERVAL" env-default:"1m"`
	}

	Cache struct {
		TTL       time.Duration `yaml:"ttl" env:"TTL" env-default:"15s"`
		MaxSizeMB int           `yaml:"max_size_mb" env:"MAX_SIZE_MB" env-default:"32"`
	}

	Log struct {
		Level      string `yaml:"level" env:"LEVEL" env-default:"info"`
		Format     string `yaml:"format" env:"FORMAT" env-default:"json"`
		File       string `yaml:"file" env:"FILE"`
		MaxSizeMB  int    `yaml:"max_size_mb" env:"MAX_SIZE_MB" env-default:"100"`
		MaxBackups int    `yaml:"max_backups" env:"MAX_BACKUPS" env-default:"5"`
		MaxAgeDays int    `yaml:"max_age_days" env:"MAX_AGE_DAYS" env-default:"30"`
	}

	Assistant struct {
		APIKey string `yaml:"api_key" env:"API_KEY"`
		Model  string `yaml:"model" env:"MODEL"`
	}
)

var (
	ErrInvalidChainID     = errors.New("chain id must be set")
	ErrMissingRPC         = errors.New("no rpc endpoint for the configured chain id")
	ErrInvalidAddress     = errors.New("invalid contract address")
	ErrNoPaymentTokens    = errors.New("at least one payment token must be configured")
	ErrInvalidPrice       = errors.New("presale price must be a positive decimal")
	ErrInvalidMinPurchase = errors.New("presale minimum purchase must be a non-negative decimal")
	ErrInvalidTier        = errors.New("invalid bonus tier")
	ErrInvalidDriver      = errors.New("database driver must be postgres or sqlite")
	ErrInvalidInterval    = errors.New("intervals and timeouts must be positive")
)

var (
	instance *Config
	once     sync.Once
)

// GetConfig reads config from file or environment variables
func GetConfig(path string) (*Config, error) {
	var err error

	once.Do(func() {
		instance, err = Load(path)
	})

	if err != nil {
		return nil, err
	}

	return instance, nil
}

// Load reads and validates the config without caching it
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := cleanenv.ReadConfig(path, cfg); err != nil {
		return nil, errors.Wrap(err, "config error")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Chain.ID == 0 {
		return ErrInvalidChainID
	}
	if c.RPCEndpoints()[c.Chain.ID] == "" {
		return errors.Wrapf(ErrMissingRPC, "chain %d", c.Chain.ID)
	}

	switch strings.ToLower(c.Database.Driver) {
	case "postgres", "sqlite":
	default:
		return errors.Wrap(ErrInvalidDriver, c.Database.Driver)
	}

	for name, d := range map[string]time.Duration{
		"indexer.interval":          c.Indexer.Interval,
		"orchestrator.wait_timeout": c.Orchestrator.WaitTimeout,
	} {
		if d <= 0 {
			return errors.Wrapf(ErrInvalidInterval, "%s %s", name, d)
		}
	}

	for name, addr := range map[string]string{
		"presale": c.Contracts.Presale,
		"vesting": c.Contracts.Vesting,
		"token":   c.Contracts.Token,
	} {
		if !common.IsHexAddress(addr) {
			return errors.Wrapf(ErrInvalidAddress, "%s %q", name, addr)
		}
	}
	// no staking deployment is published yet
	if c.Contracts.Staking != "" && !common.IsHexAddress(c.Contracts.Staking) {
		return errors.Wrapf(ErrInvalidAddress, "staking %q", c.Contracts.Staking)
	}

	if len(c.Tokens) == 0 {
		return ErrNoPaymentTokens
	}
	for _, t := range c.Tokens {
		if t.Symbol == "" || !common.IsHexAddress(t.Address) {
			return errors.Wrapf(ErrInvalidAddress, "payment token %q %q", t.Symbol, t.Address)
		}
	}

	_, err := c.Terms()
	return err
}

// RPCEndpoints merges rpc_url into the per-chain endpoint map
func (c *Config) RPCEndpoints() map[uint64]string {
	out := make(map[uint64]string, len(c.Chain.RPC)+1)
	for id, url := range c.Chain.RPC {
		out[id] = url
	}
	if c.Chain.RPCURL != "" {
		out[c.Chain.ID] = c.Chain.RPCURL
	}
	return out
}

// Registry builds the contract registry for the configured chain
func (c *Config) Registry() *contracts.Registry {
	payment := make([]contracts.PaymentToken, 0, len(c.Tokens))
	for _, t := range c.Tokens {
		payment = append(payment, contracts.PaymentToken{
			Symbol:   t.Symbol,
			Address:  common.HexToAddress(t.Address),
			Index:    t.Index,
			Decimals: t.Decimals,
		})
	}
	return contracts.NewRegistry(
		c.Chain.ID,
		common.HexToAddress(c.Contracts.Presale),
		common.HexToAddress(c.Contracts.Staking),
		common.HexToAddress(c.Contracts.Vesting),
		common.HexToAddress(c.Contracts.Token),
		c.Contracts.TokenDecimals,
		payment,
	)
}

// Terms parses the presale price, minimum and bonus tiers
func (c *Config) Terms() (service.PresaleTerms, error) {
	price, err := decimal.NewFromString(c.Presale.Price)
	if err != nil || !price.IsPositive() {
		return service.PresaleTerms{}, errors.Wrapf(ErrInvalidPrice, "%q", c.Presale.Price)
	}
	minPurchase, err := decimal.NewFromString(c.Presale.MinPurchase)
	if err != nil || minPurchase.IsNegative() {
		return service.PresaleTerms{}, errors.Wrapf(ErrInvalidMinPurchase, "%q", c.Presale.MinPurchase)
	}

	tiers := make([]domain.BonusTier, 0, len(c.Presale.Tiers))
	for i, t := range c.Presale.Tiers {
		tier, err := t.parse()
		if err != nil {
			return service.PresaleTerms{}, errors.Wrapf(err, "tier %d", i)
		}
		tiers = append(tiers, tier)
	}

	return service.PresaleTerms{Price: price, MinPurchase: minPurchase, Tiers: tiers}, nil
}

func (t Tier) parse() (domain.BonusTier, error) {
	start, err := time.Parse(time.RFC3339, t.Start)
	if err != nil {
		return domain.BonusTier{}, errors.Wrapf(ErrInvalidTier, "start %q", t.Start)
	}
	end, err := time.Parse(time.RFC3339, t.End)
	if err != nil {
		return domain.BonusTier{}, errors.Wrapf(ErrInvalidTier, "end %q", t.End)
	}
	if end.Before(start) {
		return domain.BonusTier{}, errors.Wrapf(ErrInvalidTier, "%s ends before it starts", t.Label)
	}
	rate, err := decimal.NewFromString(t.Rate)
	if err != nil || rate.IsNegative() {
		return domain.BonusTier{}, errors.Wrapf(ErrInvalidTier, "rate %q", t.Rate)
	}
	return domain.BonusTier{Start: start, End: end, Rate: rate, Label: t.Label}, nil
}

func (c *Config) FlowConfig() service.FlowConfig {
	return service.FlowConfig{
		ChainID:       c.Chain.ID,
		Confirmations: c.Orchestrator.Confirmations,
		WaitTimeout:   c.Orchestrator.WaitTimeout,
	}
}

func (c *Config) LoggerOptions() logger.Options {
	return logger.Options{
		Level:      c.Log.Level,
		Format:     c.Log.Format,
		File:       c.Log.File,
		MaxSizeMB:  c.Log.MaxSizeMB,
		MaxBackups: c.Log.MaxBackups,
		MaxAgeDays: c.Log.MaxAgeDays,
		Compress:   true,
	}
}
