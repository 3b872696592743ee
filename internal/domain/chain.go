package domain

import (
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// ContractCall describes a single read or write against a deployed contract
type ContractCall struct {
	Address common.Address
	ABI     *abi.ABI
	Method  string
	Args    []interface{}
}

// ReceiptStatus is the execution outcome of a mined transaction
type ReceiptStatus string

const (
	ReceiptSuccess  ReceiptStatus = "success"
	ReceiptReverted ReceiptStatus = "reverted"
)

// Receipt is the subset of a transaction receipt the flows care about
type Receipt struct {
	TxHash      common.Hash
	Status      ReceiptStatus
	BlockNumber uint64
	GasUsed     uint64
}

// AllowanceSnapshot is read right before the approval decision and never cached
type AllowanceSnapshot struct {
	Owner   common.Address
	Spender common.Address
	Amount  *big.Int
}

// Covers reports whether the allowance is enough for amount
func (a AllowanceSnapshot) Covers(amount *big.Int) bool {
	if a.Amount == nil {
		return false
	}
	return a.Amount.Cmp(amount) >= 0
}
