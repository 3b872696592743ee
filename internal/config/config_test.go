package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalYAML = `
chain:
  id: 97
  rpc:
    97: https://bsc-testnet.example.org
contracts:
  presale: "0x13fE106497Ddc966caF6E788833c5F872BF95549"
  vesting: "0x9F984B6f8E414765263Ac4b64C4E7c876900785A"
  token: "0x8A9f07fdBc75144C9207373597136c6E280A872D"
tokens:
  - symbol: USDT
    address: "0x55d398326f99059fF775485246999027B3197955"
    index: 0
    decimals: 18
presale:
  tiers:
    - label: phase-1
      start: "2026-02-08T00:00:00Z"
      end: "2026-03-20T00:00:00Z"
      rate: "0.15"
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalYAML))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTP.Port)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, 3*time.Minute, cfg.Orchestrator.WaitTimeout)
	assert.Equal(t, uint64(1), cfg.Orchestrator.Confirmations)
	assert.Equal(t, 15*time.Second, cfg.Cache.TTL)
	assert.Equal(t, uint8(18), cfg.Contracts.TokenDecimals)

	terms, err := cfg.Terms()
	require.NoError(t, err)
	assert.True(t, terms.Price.Equal(decimal.RequireFromString("0.20")))
	assert.True(t, terms.MinPurchase.Equal(decimal.NewFromInt(1)))
	require.Len(t, terms.Tiers, 1)
	assert.Equal(t, "phase-1", terms.Tiers[0].Label)

	flow := cfg.FlowConfig()
	assert.Equal(t, uint64(97), flow.ChainID)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("CHAIN_RPC_URL", "https://override.example.org")
	t.Setenv("ORCHESTRATOR_WAIT_TIMEOUT", "45s")
	t.Setenv("SIGNER_ACCOUNT_INDEX", "3")

	cfg, err := Load(writeConfig(t, minimalYAML))
	require.NoError(t, err)

	assert.Equal(t, "https://override.example.org", cfg.RPCEndpoints()[97])
	assert.Equal(t, 45*time.Second, cfg.Orchestrator.WaitTimeout)
	assert.Equal(t, uint32(3), cfg.Signer.AccountIndex)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"no chain id", func(c *Config) { c.Chain.ID = 0 }, ErrInvalidChainID},
		{"no rpc", func(c *Config) { c.Chain.RPC = nil }, ErrMissingRPC},
		{"bad driver", func(c *Config) { c.Database.Driver = "mysql" }, ErrInvalidDriver},
		{"bad presale address", func(c *Config) { c.Contracts.Presale = "0x123" }, ErrInvalidAddress},
		{"bad staking address", func(c *Config) { c.Contracts.Staking = "staking" }, ErrInvalidAddress},
		{"no tokens", func(c *Config) { c.Tokens = nil }, ErrNoPaymentTokens},
		{"zero price", func(c *Config) { c.Presale.Price = "0" }, ErrInvalidPrice},
		{"negative minimum", func(c *Config) { c.Presale.MinPurchase = "-1" }, ErrInvalidMinPurchase},
		{"bad tier date", func(c *Config) { c.Presale.Tiers[0].Start = "08/02/2026" }, ErrInvalidTier},
		{"inverted tier", func(c *Config) { c.Presale.Tiers[0].End = "2026-01-01T00:00:00Z" }, ErrInvalidTier},
		{"zero indexer interval", func(c *Config) { c.Indexer.Interval = 0 }, ErrInvalidInterval},
		{"negative wait timeout", func(c *Config) { c.Orchestrator.WaitTimeout = -time.Second }, ErrInvalidInterval},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(writeConfig(t, minimalYAML))
			require.NoError(t, err)

			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), tt.wantErr)
		})
	}
}

func TestRepositoryConfig(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", "config", "config.yaml"))
	require.NoError(t, err)

	reg := cfg.Registry()
	assert.Equal(t, uint64(56), reg.ChainID)
	assert.Equal(t, common.HexToAddress("0x13fE106497Ddc966caF6E788833c5F872BF95549"), reg.Presale)
	assert.Equal(t, []string{"USDT", "USDC", "WBNB"}, reg.Currencies())

	terms, err := cfg.Terms()
	require.NoError(t, err)
	require.Len(t, terms.Tiers, 3)

	// tier boundaries are inclusive and back to back
	boundary := time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC)
	assert.True(t, terms.Tiers[0].Contains(boundary))
	assert.False(t, terms.Tiers[1].Contains(boundary))
	assert.True(t, terms.Tiers[1].Contains(boundary.Add(time.Millisecond)))
}

func TestLoad_RejectsZeroInterval(t *testing.T) {
	t.Setenv("INDEXER_INTERVAL", "0s")

	_, err := Load(writeConfig(t, minimalYAML))
	assert.ErrorIs(t, err, ErrInvalidInterval)
}
