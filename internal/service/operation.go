package service

import (
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"

	"github.com/dracma/presale/internal/contracts"
	"github.com/dracma/presale/internal/domain"
	"github.com/dracma/presale/internal/tokenomics"
)

// PresaleTerms are the off-chain presale parameters used for quoting and local validation
type PresaleTerms struct {
	Price       decimal.Decimal
	MinPurchase decimal.Decimal
	Tiers       []domain.BonusTier
}

// approval is the allowance a flow must hold before its primary write
type approval struct {
	token   common.Address
	spender common.Address
}

// plan is a validated request ready to be sent to the chain
type plan struct {
	amount   *big.Int
	approval *approval
	call     domain.ContractCall
	quote    *domain.PurchaseQuote
}

// Operation describes how one slot turns a request into chain calls
type Operation struct {
	Kind       domain.Operation
	SubmitStep domain.Step
	prepare    func(req domain.TransactionRequest, now time.Time) (*plan, error)
}

// NeedsApproval reports whether the flow reads the allowance before submitting
func (o *Operation) NeedsApproval() bool {
	return o.Kind == domain.OperationBuy || o.Kind == domain.OperationStake
}

// NewOperations builds the descriptor for every slot against one contract registry
func NewOperations(reg *contracts.Registry, terms PresaleTerms) map[domain.Operation]*Operation {
	return map[domain.Operation]*Operation{
		domain.OperationBuy: {
			Kind:       domain.OperationBuy,
			SubmitStep: domain.StepBuying,
			prepare:    buyPlan(reg, terms),
		},
		domain.OperationStake: {
			Kind:       domain.OperationStake,
			SubmitStep: domain.StepStaking,
			prepare: func(req domain.TransactionRequest, _ time.Time) (*plan, error) {
				if err := deployed(reg.Staking, "staking"); err != nil {
					return nil, err
				}
				amount, err := tokenAmount(req.Amount, reg.TokenDecimals)
				if err != nil {
					return nil, err
				}
				return &plan{
					amount:   amount,
					approval: &approval{token: reg.Token, spender: reg.Staking},
					call:     call(reg.Staking, contracts.StakingABI, "stake", amount),
				}, nil
			},
		},
		domain.OperationUnstake: {
			Kind:       domain.OperationUnstake,
			SubmitStep: domain.StepUnstaking,
			prepare: func(req domain.TransactionRequest, _ time.Time) (*plan, error) {
				if err := deployed(reg.Staking, "staking"); err != nil {
					return nil, err
				}
				amount, err := tokenAmount(req.Amount, reg.TokenDecimals)
				if err != nil {
					return nil, err
				}
				return &plan{
					amount: amount,
					call:   call(reg.Staking, contracts.StakingABI, "unstake", amount),
				}, nil
			},
		},
		domain.OperationClaimRewards: {
			Kind:       domain.OperationClaimRewards,
			SubmitStep: domain.StepClaiming,
			prepare: func(domain.TransactionRequest, time.Time) (*plan, error) {
				if err := deployed(reg.Staking, "staking"); err != nil {
					return nil, err
				}
				return &plan{call: call(reg.Staking, contracts.StakingABI, "claimRewards")}, nil
			},
		},
		domain.OperationClaimVesting: {
			Kind:       domain.OperationClaimVesting,
			SubmitStep: domain.StepClaiming,
			prepare: func(domain.TransactionRequest, time.Time) (*plan, error) {
				return &plan{call: call(reg.Vesting, contracts.VestingABI, "claim")}, nil
			},
		},
	}
}

func buyPlan(reg *contracts.Registry, terms PresaleTerms) func(domain.TransactionRequest, time.Time) (*plan, error) {
	return func(req domain.TransactionRequest, now time.Time) (*plan, error) {
		token, err := reg.PaymentToken(req.Currency)
		if err != nil {
			return nil, invalid(domain.ErrorClassUnsupportedCurrency, "currency %q is not accepted", req.Currency)
		}

		value, err := positiveAmount(req.Amount)
		if err != nil {
			return nil, err
		}
		if value.LessThan(terms.MinPurchase) {
			return nil, invalid(domain.ErrorClassBelowMinimum, "minimum purchase is %s %s", terms.MinPurchase, token.Symbol)
		}

		amount, err := tokenAmount(req.Amount, token.Decimals)
		if err != nil {
			return nil, err
		}

		quote := tokenomics.Quote(value, terms.Price, terms.Tiers, now)
		return &plan{
			amount:   amount,
			approval: &approval{token: token.Address, spender: reg.Presale},
			call:     call(reg.Presale, contracts.PresaleABI, "buyTokens", big.NewInt(token.Index), amount),
			quote:    &quote,
		}, nil
	}
}

func positiveAmount(raw string) (decimal.Decimal, error) {
	value, err := tokenomics.ParseDecimal(raw)
	if err != nil || !value.IsPositive() {
		return decimal.Zero, invalid(domain.ErrorClassInvalidAmount, "enter a valid amount")
	}
	return value, nil
}

func tokenAmount(raw string, decimals uint8) (*big.Int, error) {
	if _, err := positiveAmount(raw); err != nil {
		return nil, err
	}
	amount, err := tokenomics.ToBaseUnits(raw, decimals)
	if err != nil {
		return nil, invalid(domain.ErrorClassInvalidAmount, "amount %s is too small", strings.TrimSpace(raw))
	}
	return amount, nil
}

// deployed rejects flows against a contract left unset in the configuration
func deployed(address common.Address, name string) error {
	if address == (common.Address{}) {
		return invalid(domain.ErrorClassOperationClosed, "%s contract is not configured", name)
	}
	return nil
}

func call(address common.Address, parsed *abi.ABI, method string, args ...interface{}) domain.ContractCall {
	return domain.ContractCall{Address: address, ABI: parsed, Method: method, Args: args}
}
