package service

import (
	"context"
	"encoding/json"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/dracma/presale/internal/contracts"
	"github.com/dracma/presale/internal/domain"
)

// DashboardReader performs the informational reads shown next to the forms.
// Results may be stale by the cache lifetime and are never used for approval decisions.
type DashboardReader struct {
	chain  ChainClient
	reg    *contracts.Registry
	cache  Cache
	logger *zap.Logger
	now    func() time.Time
}

func NewDashboardReader(chain ChainClient, reg *contracts.Registry, cache Cache, logger *zap.Logger) *DashboardReader {
	return &DashboardReader{
		chain:  chain,
		reg:    reg,
		cache:  cache,
		logger: logger.With(zap.String("component", "reader")),
		now:    time.Now,
	}
}

// PresaleStatus reads getPresaleStatus and the pause flag
func (r *DashboardReader) PresaleStatus(ctx context.Context) (*domain.PresaleStatus, error) {
	status := &domain.PresaleStatus{}
	if r.cached("presale:status", status) {
		return status, nil
	}

	out, err := r.chain.ReadContract(ctx, call(r.reg.Presale, contracts.PresaleABI, "getPresaleStatus"))
	if err != nil {
		return nil, errors.Wrap(err, "reading presale status")
	}
	if len(out) < 4 {
		return nil, errors.Errorf("getPresaleStatus returned %d values", len(out))
	}
	status.TokensSold = asBig(out[0])
	status.TokensAvailable = asBig(out[1])
	status.TimeRemaining = asBig(out[2])
	status.IsEnded, _ = out[3].(bool)

	paused, err := r.chain.ReadContract(ctx, call(r.reg.Presale, contracts.PresaleABI, "paused"))
	if err != nil {
		return nil, errors.Wrap(err, "reading pause flag")
	}
	if len(paused) > 0 {
		status.Paused, _ = paused[0].(bool)
	}

	status.FetchedAt = r.now().UTC()
	r.store("presale:status", status)
	return status, nil
}

// Staking reads the connected account's stake together with the pool figures
func (r *DashboardReader) Staking(ctx context.Context) (*domain.StakingInfo, error) {
	account := r.chain.Account()
	if account == (common.Address{}) {
		return nil, ErrWalletNotConnected
	}
	if err := deployed(r.reg.Staking, "staking"); err != nil {
		return nil, err
	}

	key := "staking:" + account.Hex()
	info := &domain.StakingInfo{}
	if r.cached(key, info) {
		return info, nil
	}

	out, err := r.chain.ReadContract(ctx, call(r.reg.Staking, contracts.StakingABI, "getUserStake", account))
	if err != nil {
		return nil, errors.Wrap(err, "reading user stake")
	}
	if len(out) < 3 {
		return nil, errors.Errorf("getUserStake returned %d values", len(out))
	}
	info.Staked = asBig(out[0])
	info.PendingRewards = asBig(out[1])
	info.LastClaimTime = asBig(out[2])

	if info.AprBasisPoints, err = r.readUint(ctx, call(r.reg.Staking, contracts.StakingABI, "aprBasisPoints")); err != nil {
		return nil, err
	}
	if info.TotalStaked, err = r.readUint(ctx, call(r.reg.Staking, contracts.StakingABI, "totalStaked")); err != nil {
		return nil, err
	}
	if info.RewardPoolBalance, err = r.readUint(ctx, call(r.reg.Staking, contracts.StakingABI, "rewardPoolBalance")); err != nil {
		return nil, err
	}
	if info.TokenBalance, err = r.readUint(ctx, call(r.reg.Token, contracts.ERC20ABI, "balanceOf", account)); err != nil {
		return nil, err
	}

	info.FetchedAt = r.now().UTC()
	r.store(key, info)
	return info, nil
}

// Vesting reads the connected account's vesting position and the schedule
func (r *DashboardReader) Vesting(ctx context.Context) (*domain.VestingInfo, error) {
	account := r.chain.Account()
	if account == (common.Address{}) {
		return nil, ErrWalletNotConnected
	}

	key := "vesting:" + account.Hex()
	info := &domain.VestingInfo{}
	if r.cached(key, info) {
		return info, nil
	}

	out, err := r.chain.ReadContract(ctx, call(r.reg.Vesting, contracts.VestingABI, "getUserVesting", account))
	if err != nil {
		return nil, errors.Wrap(err, "reading user vesting")
	}
	if len(out) < 5 {
		return nil, errors.Errorf("getUserVesting returned %d values", len(out))
	}
	info.Total = asBig(out[0])
	info.Vested = asBig(out[1])
	info.Claimed = asBig(out[2])
	info.Claimable = asBig(out[3])
	info.Remaining = asBig(out[4])

	if info.Start, err = r.readUint(ctx, call(r.reg.Vesting, contracts.VestingABI, "vestingStart")); err != nil {
		return nil, err
	}
	if info.Duration, err = r.readUint(ctx, call(r.reg.Vesting, contracts.VestingABI, "vestingDuration")); err != nil {
		return nil, err
	}

	info.FetchedAt = r.now().UTC()
	r.store(key, info)
	return info, nil
}

func (r *DashboardReader) readUint(ctx context.Context, c domain.ContractCall) (*big.Int, error) {
	out, err := r.chain.ReadContract(ctx, c)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", c.Method)
	}
	if len(out) == 0 {
		return new(big.Int), nil
	}
	return asBig(out[0]), nil
}

func (r *DashboardReader) cached(key string, dst interface{}) bool {
	if r.cache == nil {
		return false
	}
	raw, ok := r.cache.Get(key)
	if !ok {
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		r.logger.Debug("dropping unreadable cache entry", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (r *DashboardReader) store(key string, v interface{}) {
	if r.cache == nil {
		return
	}
	raw, err := json.Marshal(v)
	if err != nil {
		r.logger.Debug("cannot cache value", zap.String("key", key), zap.Error(err))
		return
	}
	r.cache.Set(key, raw)
}

func asBig(v interface{}) *big.Int {
	if b, ok := v.(*big.Int); ok && b != nil {
		return b
	}
	return new(big.Int)
}
