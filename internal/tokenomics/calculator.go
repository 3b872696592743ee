// Package tokenomics converts stable-token amounts into DRACMA token projections.
//
// Everything here is pure and synchronous. Malformed or non-positive input produces a zero quote
// instead of an error so a live-typing caller never has to handle a failure.
package tokenomics

import (
	"math/big"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/dracma/presale/internal/domain"
)

// ErrInvalidAmount is returned for empty, malformed, out-of-range or non-positive input
var ErrInvalidAmount = errors.New("amount must be a positive decimal number")

const (
	quotePrecision = 18

	// bounds on raw user input, checked before any arithmetic
	maxAmountLen      = 78
	maxAmountExponent = 36
)

// ActiveTier returns the first tier whose inclusive window contains now
func ActiveTier(tiers []domain.BonusTier, now time.Time) (domain.BonusTier, bool) {
	for _, tier := range tiers {
		if tier.Contains(now) {
			return tier, true
		}
	}
	return domain.BonusTier{}, false
}

// Quote projects the tokens bought with amountFiat at priceFiatPerToken under the tier active at now
func Quote(amountFiat, priceFiatPerToken decimal.Decimal, tiers []domain.BonusTier, now time.Time) domain.PurchaseQuote {
	rate := decimal.Zero
	label := ""
	if tier, ok := ActiveTier(tiers, now); ok {
		rate = tier.Rate
		label = tier.Label
	}

	quote := domain.PurchaseQuote{
		BaseTokens:  decimal.Zero,
		BonusTokens: decimal.Zero,
		TotalTokens: decimal.Zero,
		Rate:        rate,
		TierLabel:   label,
	}
	if !amountFiat.IsPositive() || !priceFiatPerToken.IsPositive() {
		return quote
	}

	base := amountFiat.DivRound(priceFiatPerToken, quotePrecision)
	bonus := base.Mul(rate)
	if bonus.IsNegative() {
		bonus = decimal.Zero
	}

	quote.BaseTokens = base
	quote.BonusTokens = bonus
	quote.TotalTokens = base.Add(bonus)
	return quote
}

// QuoteString is Quote for raw user input; anything that does not parse counts as zero
func QuoteString(amount string, priceFiatPerToken decimal.Decimal, tiers []domain.BonusTier, now time.Time) domain.PurchaseQuote {
	return Quote(ParseAmount(amount), priceFiatPerToken, tiers, now)
}

// ParseDecimal parses user input, rejecting values too long or too scaled to expand safely
func ParseDecimal(amount string) (decimal.Decimal, error) {
	s := strings.TrimSpace(amount)
	if len(s) > maxAmountLen {
		return decimal.Zero, errors.Wrapf(ErrInvalidAmount, "%d characters", len(s))
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, errors.Wrapf(ErrInvalidAmount, "parsing %q", s)
	}
	if exp := d.Exponent(); exp > maxAmountExponent || exp < -maxAmountExponent {
		return decimal.Zero, errors.Wrapf(ErrInvalidAmount, "%q is out of range", s)
	}
	return d, nil
}

// ParseAmount coerces user input into a decimal, returning zero for malformed, out-of-range or negative values
func ParseAmount(amount string) decimal.Decimal {
	d, err := ParseDecimal(amount)
	if err != nil || d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// ToBaseUnits converts a human-readable amount into the token's smallest unit.
// Precision beyond decimals is truncated.
func ToBaseUnits(amount string, decimals uint8) (*big.Int, error) {
	d, err := ParseDecimal(amount)
	if err != nil {
		return nil, err
	}
	units := d.Shift(int32(decimals)).Truncate(0)
	if !units.IsPositive() {
		return nil, errors.Wrapf(ErrInvalidAmount, "%q is not positive", amount)
	}
	return units.BigInt(), nil
}

// FromBaseUnits converts a smallest-unit amount back into a decimal
func FromBaseUnits(units *big.Int, decimals uint8) decimal.Decimal {
	if units == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(units, -int32(decimals))
}
