// Package contracts holds the ABIs and deployed addresses of the presale, staking and vesting contracts.
package contracts

import (
	"sort"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
)

// PaymentToken is a stable token accepted by the presale contract
type PaymentToken struct {
	Symbol   string
	Address  common.Address
	Index    int64 // position in the presale acceptedTokens array
	Decimals uint8
}

// Registry maps the deployed contracts for one network
type Registry struct {
	ChainID       uint64
	Presale       common.Address
	Staking       common.Address
	Vesting       common.Address
	Token         common.Address // the DRACMA token itself
	TokenDecimals uint8
	payment       map[string]PaymentToken
}

// NewRegistry builds a registry; payment token symbols are matched case-insensitively
func NewRegistry(chainID uint64, presale, staking, vesting, token common.Address, tokenDecimals uint8, payment []PaymentToken) *Registry {
	r := &Registry{
		ChainID:       chainID,
		Presale:       presale,
		Staking:       staking,
		Vesting:       vesting,
		Token:         token,
		TokenDecimals: tokenDecimals,
		payment:       make(map[string]PaymentToken, len(payment)),
	}
	for _, p := range payment {
		r.payment[strings.ToUpper(p.Symbol)] = p
	}
	return r
}

// PaymentToken looks up an accepted currency
func (r *Registry) PaymentToken(symbol string) (PaymentToken, error) {
	p, ok := r.payment[strings.ToUpper(strings.TrimSpace(symbol))]
	if !ok {
		return PaymentToken{}, errors.Errorf("currency %q is not accepted", symbol)
	}
	return p, nil
}

// Currencies returns the accepted symbols ordered by contract index
func (r *Registry) Currencies() []string {
	tokens := make([]PaymentToken, 0, len(r.payment))
	for _, p := range r.payment {
		tokens = append(tokens, p)
	}
	sort.Slice(tokens, func(i, j int) bool { return tokens[i].Index < tokens[j].Index })

	out := make([]string, len(tokens))
	for i, p := range tokens {
		out[i] = p.Symbol
	}
	return out
}
