package service

import (
	"context"

	"github.com/ethereum/go-ethereum/common"

	"github.com/dracma/presale/internal/domain"
)

//go:generate mockgen -source=chain.go -destination=../mocks/chain_client.go -package=mocks

// ChainClient is everything the flows need from the wallet and the RPC node.
// Every method except Account may block on the network or on the wallet owner.
type ChainClient interface {
	// Account returns the connected wallet address, or the zero address when no wallet is connected
	Account() common.Address

	ActiveNetwork(ctx context.Context) (uint64, error)
	SwitchNetwork(ctx context.Context, chainID uint64) error

	ReadContract(ctx context.Context, call domain.ContractCall) ([]interface{}, error)

	// WriteContract submits the call and returns as soon as the transaction hash is known
	WriteContract(ctx context.Context, call domain.ContractCall) (common.Hash, error)

	// WaitForReceipt blocks until the transaction has the requested confirmations
	WaitForReceipt(ctx context.Context, hash common.Hash, confirmations uint64) (*domain.Receipt, error)
}
