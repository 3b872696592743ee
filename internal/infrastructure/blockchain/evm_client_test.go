package blockchain

import (
	"context"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/dracma/presale/internal/contracts"
	"github.com/dracma/presale/internal/domain"
)

func TestConfirmationsAt(t *testing.T) {
	assert.Equal(t, uint64(1), confirmationsAt(100, 100))
	assert.Equal(t, uint64(3), confirmationsAt(100, 102))
	assert.Equal(t, uint64(0), confirmationsAt(100, 99))
}

func TestToReceipt(t *testing.T) {
	hash := common.HexToHash("0x01")
	ok := toReceipt(&types.Receipt{TxHash: hash, Status: types.ReceiptStatusSuccessful, BlockNumber: big.NewInt(7), GasUsed: 50000})
	assert.Equal(t, domain.ReceiptSuccess, ok.Status)
	assert.Equal(t, uint64(7), ok.BlockNumber)
	assert.Equal(t, hash, ok.TxHash)

	failed := toReceipt(&types.Receipt{TxHash: hash, Status: types.ReceiptStatusFailed})
	assert.Equal(t, domain.ReceiptReverted, failed.Status)
	assert.Zero(t, failed.BlockNumber)
}

func TestSwitchNetwork_UnknownChain(t *testing.T) {
	_, err := NewEVMClient(context.Background(), map[uint64]string{56: "http://127.0.0.1:0"}, 97, nil, 0, zaptest.NewLogger(t))
	assert.ErrorIs(t, err, ErrUnsupportedNetwork)
}

func TestEVMClient_AccountWithoutSigner(t *testing.T) {
	c := &EVMClient{}
	assert.Equal(t, common.Address{}, c.Account())

	_, err := c.WriteContract(context.Background(), domain.ContractCall{})
	assert.ErrorIs(t, err, ErrNoSigner)
}

func TestDecodePurchase(t *testing.T) {
	event := contracts.PresaleABI.Events["TokensPurchased"]
	data, err := event.Inputs.NonIndexed().Pack(big.NewInt(500), big.NewInt(2875))
	require.NoError(t, err)

	buyer := common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")
	l := types.Log{
		Topics: []common.Hash{
			event.ID,
			common.BytesToHash(buyer.Bytes()),
			common.BigToHash(big.NewInt(2)),
		},
		Data:        data,
		BlockNumber: 123,
		TxHash:      common.HexToHash("0xfeed"),
		Index:       4,
	}

	got, err := decodePurchase(l)
	require.NoError(t, err)
	assert.Equal(t, "0xf39fd6e51aad88f6f4ce6ab8827279cfffb92266", got.Buyer)
	assert.Equal(t, int64(2), got.TokenIndex)
	assert.Equal(t, "500", got.PaymentAmount)
	assert.Equal(t, "2875", got.TokenAmount)
	assert.Equal(t, uint64(123), got.BlockNumber)
	assert.Equal(t, uint(4), got.LogIndex)

	l.Topics = l.Topics[:1]
	_, err = decodePurchase(l)
	assert.Error(t, err)
}
