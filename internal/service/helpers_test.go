package service

import (
	"fmt"
	"math/big"
	"reflect"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap/zaptest"

	"github.com/dracma/presale/internal/contracts"
	"github.com/dracma/presale/internal/domain"
	"github.com/dracma/presale/internal/tokenomics"
)

var (
	wallet      = common.HexToAddress("0x00000000000000000000000000000000000000a1")
	presaleAddr = common.HexToAddress("0x13fE106497Ddc966caF6E788833c5F872BF95549")
	stakingAddr = common.HexToAddress("0x00000000000000000000000000000000000000b2")
	vestingAddr = common.HexToAddress("0x9F984B6f8E414765263Ac4b64C4E7c876900785A")
	tokenAddr   = common.HexToAddress("0x8A9f07fdBc75144C9207373597136c6E280A872D")
	usdtAddr    = common.HexToAddress("0x55d398326f99059fF775485246999027B3197955")
	usdcAddr    = common.HexToAddress("0x8AC76a51cc950d9822D68b83fE1Ad97B32Cd580d")

	presaleStart = time.Date(2026, 2, 8, 0, 0, 0, 0, time.UTC)
)

func testRegistry() *contracts.Registry {
	return contracts.NewRegistry(56, presaleAddr, stakingAddr, vestingAddr, tokenAddr, 18, []contracts.PaymentToken{
		{Symbol: "USDT", Address: usdtAddr, Index: 0, Decimals: 18},
		{Symbol: "USDC", Address: usdcAddr, Index: 1, Decimals: 18},
	})
}

func testTerms() PresaleTerms {
	return PresaleTerms{
		Price:       decimal.RequireFromString("0.20"),
		MinPurchase: decimal.NewFromInt(1),
		Tiers: []domain.BonusTier{
			{Start: presaleStart, End: presaleStart.Add(40 * 24 * time.Hour), Rate: decimal.RequireFromString("0.15"), Label: "phase-1"},
		},
	}
}

func testFlowConfig() FlowConfig {
	return FlowConfig{ChainID: 56, Confirmations: 1, WaitTimeout: time.Second}
}

// newTestFlow returns a flow and the list of steps it has been in, starting with the initial one
func newTestFlow(t *testing.T, chain ChainClient, op domain.Operation, cfg FlowConfig) (*Flow, *[]domain.Step) {
	t.Helper()
	ops := NewOperations(testRegistry(), testTerms())
	flow := NewFlow(ops[op], chain, cfg, zaptest.NewLogger(t))
	flow.now = func() time.Time { return presaleStart.Add(time.Hour) }

	steps := []domain.Step{flow.State().Step}
	flow.Subscribe(func(tr domain.Transition) {
		steps = append(steps, tr.To)
	})
	return flow, &steps
}

func units(amount string) *big.Int {
	v, err := tokenomics.ToBaseUnits(amount, 18)
	if err != nil {
		panic(err)
	}
	return v
}

type callMatcher struct {
	address common.Address
	method  string
	args    []interface{}
}

// callTo matches a ContractCall by target, method and arguments; big integers compare by value
func callTo(address common.Address, method string, args ...interface{}) gomock.Matcher {
	return callMatcher{address: address, method: method, args: args}
}

func (m callMatcher) Matches(x any) bool {
	c, ok := x.(domain.ContractCall)
	if !ok || c.Address != m.address || c.Method != m.method || len(c.Args) != len(m.args) {
		return false
	}
	for i, want := range m.args {
		if w, ok := want.(*big.Int); ok {
			got, ok := c.Args[i].(*big.Int)
			if !ok || w.Cmp(got) != 0 {
				return false
			}
			continue
		}
		if !reflect.DeepEqual(want, c.Args[i]) {
			return false
		}
	}
	return true
}

func (m callMatcher) String() string {
	return fmt.Sprintf("%s on %s with %v", m.method, m.address.Hex(), m.args)
}

// rpcError mimics a JSON-RPC error carrying a code and revert data
type rpcError struct {
	code int
	msg  string
	data interface{}
}

func (e *rpcError) Error() string          { return e.msg }
func (e *rpcError) ErrorCode() int         { return e.code }
func (e *rpcError) ErrorData() interface{} { return e.data }

func receipt(hash common.Hash, status domain.ReceiptStatus) *domain.Receipt {
	return &domain.Receipt{TxHash: hash, Status: status, BlockNumber: 100, GasUsed: 21000}
}
