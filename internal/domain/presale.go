package domain

import (
	"math/big"
	"time"

	"github.com/shopspring/decimal"
)

// BonusTier is a time window with a bonus rate; both bounds are inclusive
type BonusTier struct {
	Start time.Time       `json:"start"`
	End   time.Time       `json:"end"`
	Rate  decimal.Decimal `json:"rate"`
	Label string          `json:"label"`
}

// Contains reports whether t falls inside the tier window
func (b BonusTier) Contains(t time.Time) bool {
	return !t.Before(b.Start) && !t.After(b.End)
}

// PurchaseQuote is the projected token amount for a fiat input
type PurchaseQuote struct {
	BaseTokens  decimal.Decimal `json:"base_tokens"`
	BonusTokens decimal.Decimal `json:"bonus_tokens"`
	TotalTokens decimal.Decimal `json:"total_tokens"`
	Rate        decimal.Decimal `json:"rate"`
	TierLabel   string          `json:"tier_label,omitempty"`
}

// PresaleStatus mirrors getPresaleStatus plus the pause flag
type PresaleStatus struct {
	TokensSold      *big.Int  `json:"tokens_sold"`
	TokensAvailable *big.Int  `json:"tokens_available"`
	TimeRemaining   *big.Int  `json:"time_remaining"`
	IsEnded         bool      `json:"is_ended"`
	Paused          bool      `json:"paused"`
	FetchedAt       time.Time `json:"fetched_at"`
}

// StakingInfo combines the account stake with the pool-wide figures
type StakingInfo struct {
	Staked            *big.Int  `json:"staked"`
	PendingRewards    *big.Int  `json:"pending_rewards"`
	LastClaimTime     *big.Int  `json:"last_claim_time"`
	AprBasisPoints    *big.Int  `json:"apr_basis_points"`
	TotalStaked       *big.Int  `json:"total_staked"`
	RewardPoolBalance *big.Int  `json:"reward_pool_balance"`
	TokenBalance      *big.Int  `json:"token_balance"`
	FetchedAt         time.Time `json:"fetched_at"`
}

// VestingInfo mirrors getUserVesting plus the schedule
type VestingInfo struct {
	Total     *big.Int  `json:"total"`
	Vested    *big.Int  `json:"vested"`
	Claimed   *big.Int  `json:"claimed"`
	Claimable *big.Int  `json:"claimable"`
	Remaining *big.Int  `json:"remaining"`
	Start     *big.Int  `json:"start"`
	Duration  *big.Int  `json:"duration"`
	FetchedAt time.Time `json:"fetched_at"`
}
