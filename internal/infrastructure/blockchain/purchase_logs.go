package blockchain

import (
	"context"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/pkg/errors"

	"github.com/dracma/presale/internal/contracts"
	"github.com/dracma/presale/internal/domain"
)

// PurchaseLogReader reads TokensPurchased events of one presale contract
type PurchaseLogReader struct {
	client  *EVMClient
	presale common.Address
}

func NewPurchaseLogReader(client *EVMClient, presale common.Address) *PurchaseLogReader {
	return &PurchaseLogReader{client: client, presale: presale}
}

func (r *PurchaseLogReader) LatestBlock(ctx context.Context) (uint64, error) {
	return r.client.LatestBlock(ctx)
}

// PurchaseLogs returns the purchases mined in [fromBlock, toBlock], with block timestamps
func (r *PurchaseLogReader) PurchaseLogs(ctx context.Context, fromBlock, toBlock uint64) ([]*domain.PurchaseEvent, error) {
	client, _ := r.client.current()
	if client == nil {
		return nil, errors.New("not connected")
	}

	query := ethereum.FilterQuery{
		FromBlock: new(big.Int).SetUint64(fromBlock),
		ToBlock:   new(big.Int).SetUint64(toBlock),
		Addresses: []common.Address{r.presale},
		Topics:    [][]common.Hash{{contracts.PresaleABI.Events["TokensPurchased"].ID}},
	}
	logs, err := client.FilterLogs(ctx, query)
	if err != nil {
		return nil, errors.Wrapf(err, "filtering logs %d-%d", fromBlock, toBlock)
	}

	times := make(map[uint64]time.Time)
	events := make([]*domain.PurchaseEvent, 0, len(logs))
	for _, l := range logs {
		if l.Removed {
			continue
		}
		event, err := decodePurchase(l)
		if err != nil {
			return nil, err
		}

		ts, ok := times[l.BlockNumber]
		if !ok {
			header, err := client.HeaderByNumber(ctx, new(big.Int).SetUint64(l.BlockNumber))
			if err != nil {
				return nil, errors.Wrapf(err, "reading header %d", l.BlockNumber)
			}
			ts = time.Unix(int64(header.Time), 0).UTC()
			times[l.BlockNumber] = ts
		}
		event.Timestamp = ts
		events = append(events, event)
	}
	return events, nil
}

func decodePurchase(l types.Log) (*domain.PurchaseEvent, error) {
	if len(l.Topics) < 3 {
		return nil, errors.Errorf("TokensPurchased log %s has %d topics", l.TxHash.Hex(), len(l.Topics))
	}
	values, err := contracts.PresaleABI.Unpack("TokensPurchased", l.Data)
	if err != nil {
		return nil, errors.Wrapf(err, "decoding TokensPurchased in %s", l.TxHash.Hex())
	}
	if len(values) < 2 {
		return nil, errors.Errorf("TokensPurchased in %s has %d values", l.TxHash.Hex(), len(values))
	}
	payment, _ := values[0].(*big.Int)
	tokens, _ := values[1].(*big.Int)
	if payment == nil || tokens == nil {
		return nil, errors.Errorf("TokensPurchased in %s has unexpected types", l.TxHash.Hex())
	}

	return &domain.PurchaseEvent{
		TxHash:        l.TxHash.Hex(),
		LogIndex:      l.Index,
		Buyer:         strings.ToLower(common.BytesToAddress(l.Topics[1].Bytes()).Hex()),
		TokenIndex:    new(big.Int).SetBytes(l.Topics[2].Bytes()).Int64(),
		PaymentAmount: payment.String(),
		TokenAmount:   tokens.String(),
		BlockNumber:   l.BlockNumber,
	}, nil
}
