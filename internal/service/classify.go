package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/pkg/errors"

	"github.com/dracma/presale/internal/domain"
)

const maxErrorMessageLen = 120

// userRejectedCode is the EIP-1193 code wallets return when the owner declines to sign
const userRejectedCode = 4001

var (
	ErrWalletNotConnected = errors.New("wallet not connected")
	ErrReverted           = errors.New("transaction reverted on-chain")
	ErrApprovalReverted   = errors.New("approval reverted on-chain")
	ErrSlotBusy           = errors.New("a transaction for this operation is already in progress")
	ErrUnknownOperation   = errors.New("unknown operation")
)

// ValidationError is a failure detected locally, before any network call
type ValidationError struct {
	Class   domain.ErrorClass
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(class domain.ErrorClass, format string, args ...interface{}) error {
	return &ValidationError{Class: class, Message: fmt.Sprintf(format, args...)}
}

// Classification is what ends up in a failed TransactionState
type Classification struct {
	Class   domain.ErrorClass
	Message string
}

type contractError struct {
	signature string
	class     domain.ErrorClass
	message   string
	selector  [4]byte
	name      string
}

// Custom errors declared by the presale, staking, vesting and token contracts
var contractErrors = newContractErrors([]contractError{
	{signature: "BelowMinimumPurchase()", class: domain.ErrorClassBelowMinimum, message: "amount is below the minimum purchase"},
	{signature: "ExceedsMaximumPurchase()", class: domain.ErrorClassExceedsMaximum, message: "amount exceeds the maximum purchase"},
	{signature: "InsufficientSaleTokens()", class: domain.ErrorClassExceedsMaximum, message: "not enough presale tokens left for this amount"},
	{signature: "PresaleEndedError()", class: domain.ErrorClassOperationClosed, message: "the presale has ended"},
	{signature: "PresaleTimeExpired()", class: domain.ErrorClassOperationClosed, message: "the presale has ended"},
	{signature: "EnforcedPause()", class: domain.ErrorClassOperationClosed, message: "the contract is paused"},
	{signature: "VestingNotStarted()", class: domain.ErrorClassOperationClosed, message: "vesting has not started yet"},
	{signature: "NothingToClaim()", class: domain.ErrorClassNothingToClaim, message: "nothing to claim"},
	{signature: "NothingStaked()", class: domain.ErrorClassNothingStaked, message: "no tokens staked"},
	{signature: "InsufficientRewardPool()", class: domain.ErrorClassRewardPoolExhausted, message: "the reward pool is insufficient"},
	{signature: "InvalidAmount()", class: domain.ErrorClassInvalidAmount, message: "invalid amount"},
	{signature: "InsufficientAllowance()", class: domain.ErrorClassInsufficientFunds, message: "insufficient balance or allowance"},
	{signature: "ERC20InsufficientAllowance(address,uint256,uint256)", class: domain.ErrorClassInsufficientFunds, message: "insufficient balance or allowance"},
	{signature: "ERC20InsufficientBalance(address,uint256,uint256)", class: domain.ErrorClassInsufficientFunds, message: "insufficient balance or allowance"},
})

func newContractErrors(defs []contractError) []contractError {
	for i := range defs {
		copy(defs[i].selector[:], crypto.Keccak256([]byte(defs[i].signature))[:4])
		defs[i].name = strings.ToLower(defs[i].signature[:strings.Index(defs[i].signature, "(")])
	}
	return defs
}

// Free-text fallbacks for failures that carry no structured data
var messagePatterns = []struct {
	needle  string
	class   domain.ErrorClass
	message string
}{
	{"user rejected", domain.ErrorClassUserRejected, "transaction rejected by the user"},
	{"user denied", domain.ErrorClassUserRejected, "transaction rejected by the user"},
	{"insufficient funds", domain.ErrorClassInsufficientFunds, "insufficient balance or allowance"},
}

// Classify maps a flow failure to an error class and a short display message.
// Structured data (local validation, RPC codes, revert selectors) wins over message matching.
func Classify(err error) Classification {
	if err == nil {
		return Classification{}
	}

	var verr *ValidationError
	if errors.As(err, &verr) {
		return Classification{Class: verr.Class, Message: verr.Message}
	}

	switch {
	case errors.Is(err, ErrWalletNotConnected):
		return Classification{Class: domain.ErrorClassWalletNotConnected, Message: "wallet not connected"}
	case errors.Is(err, context.DeadlineExceeded):
		return Classification{Class: domain.ErrorClassTimedOut, Message: "timed out waiting for the network"}
	case errors.Is(err, ErrApprovalReverted):
		return Classification{Class: domain.ErrorClassReverted, Message: "the approval was reverted"}
	case errors.Is(err, ErrReverted):
		return Classification{Class: domain.ErrorClassReverted, Message: "the transaction was reverted by the blockchain"}
	}

	var rpcErr rpc.Error
	if errors.As(err, &rpcErr) && rpcErr.ErrorCode() == userRejectedCode {
		return Classification{Class: domain.ErrorClassUserRejected, Message: "transaction rejected by the user"}
	}

	if c, ok := classifyRevertData(err); ok {
		return c
	}

	return classifyMessage(err.Error())
}

func classifyRevertData(err error) (Classification, bool) {
	var dataErr rpc.DataError
	if !errors.As(err, &dataErr) {
		return Classification{}, false
	}
	hexData, ok := dataErr.ErrorData().(string)
	if !ok {
		return Classification{}, false
	}
	data, decodeErr := hexutil.Decode(hexData)
	if decodeErr != nil || len(data) < 4 {
		return Classification{}, false
	}

	for _, ce := range contractErrors {
		if string(data[:4]) == string(ce.selector[:]) {
			return Classification{Class: ce.class, Message: ce.message}, true
		}
	}

	if reason, unpackErr := abi.UnpackRevert(data); unpackErr == nil {
		c := classifyMessage(reason)
		if c.Class == domain.ErrorClassUnknown {
			c = Classification{Class: domain.ErrorClassReverted, Message: truncate("execution reverted: " + reason)}
		}
		return c, true
	}
	return Classification{}, false
}

func classifyMessage(msg string) Classification {
	lower := strings.ToLower(msg)
	for _, p := range messagePatterns {
		if strings.Contains(lower, p.needle) {
			return Classification{Class: p.class, Message: p.message}
		}
	}
	for _, ce := range contractErrors {
		if strings.Contains(lower, ce.name) {
			return Classification{Class: ce.class, Message: ce.message}
		}
	}
	if strings.TrimSpace(msg) == "" {
		msg = "the transaction failed"
	}
	return Classification{Class: domain.ErrorClassUnknown, Message: truncate(msg)}
}

func truncate(msg string) string {
	runes := []rune(msg)
	if len(runes) <= maxErrorMessageLen {
		return msg
	}
	return string(runes[:maxErrorMessageLen])
}
