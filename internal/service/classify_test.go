package service

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dracma/presale/internal/domain"
)

func selectorHex(signature string) string {
	return hexutil.Encode(crypto.Keccak256([]byte(signature))[:4])
}

func revertReason(t *testing.T, reason string) string {
	t.Helper()
	stringType, err := abi.NewType("string", "", nil)
	require.NoError(t, err)
	packed, err := abi.Arguments{{Type: stringType}}.Pack(reason)
	require.NoError(t, err)
	return hexutil.Encode(append(crypto.Keccak256([]byte("Error(string)"))[:4], packed...))
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		class domain.ErrorClass
	}{
		{"local validation", invalid(domain.ErrorClassBelowMinimum, "minimum purchase is 1 USDT"), domain.ErrorClassBelowMinimum},
		{"wallet", errors.Wrap(ErrWalletNotConnected, "buy"), domain.ErrorClassWalletNotConnected},
		{"deadline", errors.Wrap(context.DeadlineExceeded, "waiting"), domain.ErrorClassTimedOut},
		{"reverted receipt", errors.Wrap(ErrReverted, "0xabc"), domain.ErrorClassReverted},
		{"reverted approval", errors.Wrap(ErrApprovalReverted, "0xabc"), domain.ErrorClassReverted},
		{"rpc code 4001", &rpcError{code: 4001, msg: "denied"}, domain.ErrorClassUserRejected},
		{"wrapped rpc code", errors.Wrap(&rpcError{code: 4001, msg: "x"}, "submitting"), domain.ErrorClassUserRejected},
		{"selector nothing staked", &rpcError{code: 3, msg: "execution reverted", data: selectorHex("NothingStaked()")}, domain.ErrorClassNothingStaked},
		{"selector reward pool", &rpcError{code: 3, msg: "execution reverted", data: selectorHex("InsufficientRewardPool()")}, domain.ErrorClassRewardPoolExhausted},
		{"selector erc20 allowance", &rpcError{code: 3, msg: "execution reverted", data: selectorHex("ERC20InsufficientAllowance(address,uint256,uint256)") + strings.Repeat("00", 96)}, domain.ErrorClassInsufficientFunds},
		{"selector pause", &rpcError{code: 3, msg: "execution reverted", data: selectorHex("EnforcedPause()")}, domain.ErrorClassOperationClosed},
		{"message rejected", errors.New("MetaMask Tx Signature: User denied transaction signature."), domain.ErrorClassUserRejected},
		{"message user rejected", errors.New("User rejected the request."), domain.ErrorClassUserRejected},
		{"message funds", errors.New("insufficient funds for gas * price + value"), domain.ErrorClassInsufficientFunds},
		{"message below minimum", errors.New("execution reverted: BelowMinimumPurchase()"), domain.ErrorClassBelowMinimum},
		{"message above maximum", errors.New("reverted with custom error 'ExceedsMaximumPurchase()'"), domain.ErrorClassExceedsMaximum},
		{"message sold out", errors.New("InsufficientSaleTokens"), domain.ErrorClassExceedsMaximum},
		{"message ended", errors.New("PresaleTimeExpired"), domain.ErrorClassOperationClosed},
		{"message vesting", errors.New("VestingNotStarted()"), domain.ErrorClassOperationClosed},
		{"message nothing to claim", errors.New("NothingToClaim"), domain.ErrorClassNothingToClaim},
		{"message allowance", errors.New("InsufficientAllowance"), domain.ErrorClassInsufficientFunds},
		{"unknown", errors.New("nonce too low"), domain.ErrorClassUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Classify(tt.err)
			assert.Equal(t, tt.class, c.Class)
			assert.NotEmpty(t, c.Message)
		})
	}
}

func TestClassify_RevertReason(t *testing.T) {
	c := Classify(&rpcError{code: 3, msg: "execution reverted", data: revertReason(t, "PresaleEndedError")})
	assert.Equal(t, domain.ErrorClassOperationClosed, c.Class)

	c = Classify(&rpcError{code: 3, msg: "execution reverted", data: revertReason(t, "Ownable: caller is not the owner")})
	assert.Equal(t, domain.ErrorClassReverted, c.Class)
	assert.Contains(t, c.Message, "caller is not the owner")
}

func TestClassify_SelectorWinsOverMessage(t *testing.T) {
	err := &rpcError{code: 3, msg: "insufficient funds", data: selectorHex("NothingToClaim()")}
	assert.Equal(t, domain.ErrorClassNothingToClaim, Classify(err).Class)
}

func TestClassify_UnknownIsTruncated(t *testing.T) {
	long := strings.Repeat("é", 300)
	c := Classify(errors.New(long))

	assert.Equal(t, domain.ErrorClassUnknown, c.Class)
	assert.Equal(t, maxErrorMessageLen, utf8.RuneCountInString(c.Message))
	assert.True(t, utf8.ValidString(c.Message))

	short := "nonce too low"
	assert.Equal(t, short, Classify(errors.New(short)).Message)
}

func TestClassify_Nil(t *testing.T) {
	assert.Equal(t, Classification{}, Classify(nil))
}
