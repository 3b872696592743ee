package blockchain

import (
	"context"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/dracma/presale/internal/domain"
)

var (
	ErrUnsupportedNetwork = errors.New("no RPC endpoint configured for network")
	ErrNoSigner           = errors.New("no signer configured")
	ErrChainIDMismatch    = errors.New("endpoint reports a different chain id")
)

const defaultPollInterval = 2 * time.Second

// EVMClient talks to an EVM JSON-RPC node and signs writes with a local key.
// Switching network redials the endpoint configured for the target chain.
type EVMClient struct {
	endpoints    map[uint64]string
	signer       *Signer
	pollInterval time.Duration
	logger       *zap.Logger

	mu      sync.RWMutex
	client  *ethclient.Client
	chainID uint64
}

// NewEVMClient dials the endpoint of chainID; signer may be nil for read-only use
func NewEVMClient(ctx context.Context, endpoints map[uint64]string, chainID uint64, signer *Signer, pollInterval time.Duration, logger *zap.Logger) (*EVMClient, error) {
	if pollInterval <= 0 {
		pollInterval = defaultPollInterval
	}
	c := &EVMClient{
		endpoints:    endpoints,
		signer:       signer,
		pollInterval: pollInterval,
		logger:       logger.With(zap.String("component", "evm-client")),
	}
	if err := c.SwitchNetwork(ctx, chainID); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *EVMClient) Account() common.Address {
	if c.signer == nil {
		return common.Address{}
	}
	return c.signer.Address()
}

func (c *EVMClient) ActiveNetwork(ctx context.Context) (uint64, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.client == nil {
		return 0, errors.New("not connected")
	}
	return c.chainID, nil
}

// SwitchNetwork connects to the endpoint configured for chainID and verifies the id it reports
func (c *EVMClient) SwitchNetwork(ctx context.Context, chainID uint64) error {
	url, ok := c.endpoints[chainID]
	if !ok {
		return errors.Wrapf(ErrUnsupportedNetwork, "chain %d", chainID)
	}

	client, err := ethclient.DialContext(ctx, url)
	if err != nil {
		return errors.Wrapf(err, "dialing chain %d", chainID)
	}
	reported, err := client.ChainID(ctx)
	if err != nil {
		client.Close()
		return errors.Wrapf(err, "reading chain id from chain %d", chainID)
	}
	if reported.Uint64() != chainID {
		client.Close()
		return errors.Wrapf(ErrChainIDMismatch, "want %d, got %d", chainID, reported.Uint64())
	}

	c.mu.Lock()
	old := c.client
	c.client = client
	c.chainID = chainID
	c.mu.Unlock()
	if old != nil {
		old.Close()
	}

	c.logger.Info("connected", zap.Uint64("chain_id", chainID))
	return nil
}

func (c *EVMClient) ReadContract(ctx context.Context, call domain.ContractCall) ([]interface{}, error) {
	client, _ := c.current()
	if client == nil {
		return nil, errors.New("not connected")
	}

	contract := bind.NewBoundContract(call.Address, *call.ABI, client, client, client)
	var out []interface{}
	opts := &bind.CallOpts{Context: ctx, From: c.Account()}
	if err := contract.Call(opts, &out, call.Method, call.Args...); err != nil {
		return nil, errors.Wrapf(err, "calling %s", call.Method)
	}
	return out, nil
}

func (c *EVMClient) WriteContract(ctx context.Context, call domain.ContractCall) (common.Hash, error) {
	if c.signer == nil {
		return common.Hash{}, ErrNoSigner
	}
	client, chainID := c.current()
	if client == nil {
		return common.Hash{}, errors.New("not connected")
	}

	opts, err := bind.NewKeyedTransactorWithChainID(c.signer.key, new(big.Int).SetUint64(chainID))
	if err != nil {
		return common.Hash{}, errors.Wrap(err, "creating transactor")
	}
	opts.Context = ctx

	contract := bind.NewBoundContract(call.Address, *call.ABI, client, client, client)
	tx, err := contract.Transact(opts, call.Method, call.Args...)
	if err != nil {
		return common.Hash{}, err
	}

	c.logger.Info("transaction sent",
		zap.String("method", call.Method),
		zap.String("to", call.Address.Hex()),
		zap.String("tx_hash", tx.Hash().Hex()),
		zap.Uint64("nonce", tx.Nonce()),
	)
	return tx.Hash(), nil
}

// WaitForReceipt polls until the transaction is mined and buried under enough blocks
func (c *EVMClient) WaitForReceipt(ctx context.Context, hash common.Hash, confirmations uint64) (*domain.Receipt, error) {
	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for {
		client, _ := c.current()
		if client == nil {
			return nil, errors.New("not connected")
		}

		receipt, err := client.TransactionReceipt(ctx, hash)
		switch {
		case err == nil:
			if ok, headErr := c.confirmed(ctx, client, receipt, confirmations); headErr != nil {
				c.logger.Debug("reading head failed", zap.Error(headErr))
			} else if ok {
				return toReceipt(receipt), nil
			}
		case errors.Is(err, ethereum.NotFound):
		default:
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			c.logger.Debug("receipt poll failed", zap.String("tx_hash", hash.Hex()), zap.Error(err))
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

// LatestBlock returns the current head of the active chain
func (c *EVMClient) LatestBlock(ctx context.Context) (uint64, error) {
	client, _ := c.current()
	if client == nil {
		return 0, errors.New("not connected")
	}
	return client.BlockNumber(ctx)
}

// Close releases the RPC connection
func (c *EVMClient) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.client != nil {
		c.client.Close()
		c.client = nil
	}
}

func (c *EVMClient) confirmed(ctx context.Context, client *ethclient.Client, receipt *types.Receipt, confirmations uint64) (bool, error) {
	if confirmations <= 1 || receipt.BlockNumber == nil {
		return true, nil
	}
	head, err := client.BlockNumber(ctx)
	if err != nil {
		return false, err
	}
	return confirmationsAt(receipt.BlockNumber.Uint64(), head) >= confirmations, nil
}

func (c *EVMClient) current() (*ethclient.Client, uint64) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.client, c.chainID
}

// confirmationsAt counts the inclusion block itself as the first confirmation
func confirmationsAt(included, head uint64) uint64 {
	if head < included {
		return 0
	}
	return head - included + 1
}

func toReceipt(r *types.Receipt) *domain.Receipt {
	out := &domain.Receipt{
		TxHash:  r.TxHash,
		Status:  domain.ReceiptReverted,
		GasUsed: r.GasUsed,
	}
	if r.Status == types.ReceiptStatusSuccessful {
		out.Status = domain.ReceiptSuccess
	}
	if r.BlockNumber != nil {
		out.BlockNumber = r.BlockNumber.Uint64()
	}
	return out
}
