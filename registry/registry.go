// Copyright (c) 2025 The StakePool Registry developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package registry

import (
	"math/big"
	"sync"
	"time"

	"github.com/stakepool/registry/log"
	"github.com/stakepool/registry/stakepool"
	"github.com/stakepool/registry/weights"
)

var logger = log.WithContext("pkg", "registry")

// SetLogger overrides the package logger.
func SetLogger(l log.Logger) {
	logger = l
}

// Tier marks which NFT counter a stake update touches. The enumerated form
// makes rare/legendary mutually exclusive at the call boundary.
type Tier int

const (
	TierNone Tier = iota
	TierRare
	TierLegendary
)

func (t Tier) String() string {
	switch t {
	case TierRare:
		return "rare"
	case TierLegendary:
		return "legendary"
	default:
		return "none"
	}
}

// BaseRewardFunc generates the next opaque base reward value.
type BaseRewardFunc func() *big.Int

// RewardRateFunc derives the global reward rate.
type RewardRateFunc func(baseReward *big.Int, poolCount uint64, globalStakes *big.Int) *big.Int

// StakingPowerFunc derives a pool's staking power from its NFT counters and
// total stake.
type StakingPowerFunc func(rare, legendary uint64, totalStakes *big.Int) *big.Int

// Options options for the registry. Zero-valued fields fall back to the
// defaults of the weights package, crypto randomness and the protocol
// attempt bound.
type Options struct {
	BaseReward   BaseRewardFunc
	RewardRate   RewardRateFunc
	StakingPower StakingPowerFunc
	Rand         RandomSource

	// MaxSelectionAttempts bounds winner-selection re-draws.
	MaxSelectionAttempts int
}

func (o *Options) withDefaults() Options {
	opts := *o
	if opts.BaseReward == nil {
		opts.BaseReward = weights.BaseReward
	}
	if opts.RewardRate == nil {
		opts.RewardRate = weights.RewardRate
	}
	if opts.StakingPower == nil {
		opts.StakingPower = weights.StakingPower
	}
	if opts.Rand == nil {
		opts.Rand = CryptoSource()
	}
	if opts.MaxSelectionAttempts <= 0 {
		opts.MaxSelectionAttempts = stakepool.DefaultMaxSelectionAttempts
	}
	return opts
}

// PoolInfo is the read-only projection of a pool returned to callers.
type PoolInfo struct {
	Name        string
	TotalStakes *big.Int
	CreatedAt   time.Time
}

// Registry tracks staking pools, their aggregated stake and staking power,
// the dynamic reward rate, and runs weighted-random winner selection.
//
// Every exported operation runs start-to-finish under one exclusive lock:
// per-pool state and the global aggregates are read-modify-written jointly
// and must never be observed inconsistent.
type Registry struct {
	mu    sync.Mutex
	opts  Options
	store *poolStore
	stats *globalStats

	baseReward *big.Int
	rewardRate *big.Int
	lastWinner stakepool.Address

	feeds feeds
}

// New creates a registry. The base reward is seeded from the generator and
// refreshed only upon successful winner selections.
func New(opts Options) *Registry {
	r := &Registry{
		opts:  opts.withDefaults(),
		store: newPoolStore(),
		stats: newGlobalStats(),
	}
	r.baseReward = r.opts.BaseReward()
	r.rewardRate = r.opts.RewardRate(new(big.Int).Set(r.baseReward), 0, new(big.Int))
	return r
}

// RegisterPool registers a new pool under the given identity. A pool is
// created exactly once: re-registration and deletion do not exist.
func (r *Registry) RegisterPool(owner, id stakepool.Address, name string) error {
	logger.Debug("registering pool", "id", id, "owner", owner, "name", name)

	r.mu.Lock()
	defer r.mu.Unlock()

	entry, err := r.store.register(id, owner, name, time.Now())
	if err != nil {
		logger.Info("register pool failed", "id", id, "error", err)
		return err
	}
	r.stats.addPool()

	r.feeds.poolRegistered.Send(&PoolRegisteredEvent{
		Count: r.stats.pools,
		Pool:  id,
		Owner: entry.Owner,
		Name:  entry.Name,
	})
	r.recomputeRewardRate()

	metricsRegistrations().Add(1)
	r.updateAggregateMetrics()

	logger.Info("registered pool", "id", id, "name", name, "count", r.stats.pools)
	return nil
}

// IncreaseStake adds stake to a pool. TierRare/TierLegendary additionally
// count one staked NFT of that tier.
func (r *Registry) IncreaseStake(id stakepool.Address, amount *big.Int, tier Tier) error {
	logger.Debug("increasing stake", "id", id, "amount", amount, "tier", tier)

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.applyStakeDelta(id, amount, true, tier); err != nil {
		logger.Info("increase stake failed", "id", id, "error", err)
		return err
	}

	metricsStakeUpdates().AddWithLabel(1, map[string]string{"direction": "increase", "tier": tier.String()})
	r.updateAggregateMetrics()

	logger.Info("increased stake", "id", id, "amount", amount)
	return nil
}

// DecreaseStake removes stake from a pool. TierRare/TierLegendary
// additionally release one staked NFT of that tier.
func (r *Registry) DecreaseStake(id stakepool.Address, amount *big.Int, tier Tier) error {
	logger.Debug("decreasing stake", "id", id, "amount", amount, "tier", tier)

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.applyStakeDelta(id, amount, false, tier); err != nil {
		logger.Info("decrease stake failed", "id", id, "error", err)
		return err
	}

	metricsStakeUpdates().AddWithLabel(1, map[string]string{"direction": "decrease", "tier": tier.String()})
	r.updateAggregateMetrics()

	logger.Info("decreased stake", "id", id, "amount", amount)
	return nil
}

// applyStakeDelta mutates a pool's stake and NFT counters, recomputes its
// staking power, updates the global aggregates by the same deltas and
// recomputes the reward rate. All validation happens before any mutation,
// so a failure leaves no partial state.
//
// Caller must hold r.mu.
func (r *Registry) applyStakeDelta(id stakepool.Address, amount *big.Int, increase bool, tier Tier) error {
	entry, err := r.store.get(id)
	if err != nil {
		return err
	}
	if amount == nil || amount.Sign() <= 0 {
		return ErrInvalidAmount
	}
	if !increase {
		if amount.Cmp(entry.TotalStakes) > 0 {
			return ErrInsufficientPoolStake
		}
		// defensive double-check against aggregate drift
		if amount.Cmp(r.stats.stakes) > 0 {
			return ErrInsufficientGlobalStake
		}
		if tier == TierRare && entry.RareNFTs == 0 {
			return ErrInsufficientNFTs
		}
		if tier == TierLegendary && entry.LegendaryNFTs == 0 {
			return ErrInsufficientNFTs
		}
	}

	if increase {
		entry.TotalStakes.Add(entry.TotalStakes, amount)
		r.stats.addStakes(amount)
		switch tier {
		case TierRare:
			entry.RareNFTs++
		case TierLegendary:
			entry.LegendaryNFTs++
		}
	} else {
		entry.TotalStakes.Sub(entry.TotalStakes, amount)
		r.stats.subStakes(amount)
		switch tier {
		case TierRare:
			entry.RareNFTs--
		case TierLegendary:
			entry.LegendaryNFTs--
		}
	}

	newPower := r.opts.StakingPower(entry.RareNFTs, entry.LegendaryNFTs, new(big.Int).Set(entry.TotalStakes))
	r.stats.applyPowerDelta(entry.StakingPower, newPower)
	entry.StakingPower = newPower

	r.feeds.stakingPower.Send(&StakingPowerEvent{
		Pool:  id,
		Power: new(big.Int).Set(entry.StakingPower),
	})
	r.feeds.poolStakes.Send(&PoolStakesEvent{
		Pool:        id,
		TotalStakes: new(big.Int).Set(entry.TotalStakes),
	})
	r.feeds.globalStakes.Send(&GlobalStakesEvent{
		Stakes: new(big.Int).Set(r.stats.stakes),
	})
	r.recomputeRewardRate()

	return nil
}

// GetPoolData returns the read-only projection of a pool.
func (r *Registry) GetPoolData(id stakepool.Address) (*PoolInfo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, err := r.store.get(id)
	if err != nil {
		return nil, err
	}
	return &PoolInfo{
		Name:        entry.Name,
		TotalStakes: new(big.Int).Set(entry.TotalStakes),
		CreatedAt:   entry.CreatedAt,
	}, nil
}

// BaseReward returns the current base reward.
func (r *Registry) BaseReward() *big.Int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return new(big.Int).Set(r.baseReward)
}

// RewardRate returns the current reward rate.
func (r *Registry) RewardRate() *big.Int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return new(big.Int).Set(r.rewardRate)
}

// LastWinner returns the identity of the most recent winner. Zero address
// until the first selection succeeds.
func (r *Registry) LastWinner() stakepool.Address {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastWinner
}

// Len returns the number of registered pools.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.store.len()
}

// Pools returns a snapshot of all pools in registration order.
func (r *Registry) Pools() []*PoolData {
	r.mu.Lock()
	defer r.mu.Unlock()

	snapshot := make([]*PoolData, 0, r.store.len())
	r.store.iterate(func(_ stakepool.Address, entry *PoolData) bool {
		snapshot = append(snapshot, entry.clone())
		return true
	})
	return snapshot
}

// CheckConsistency verifies that the global aggregates equal the per-pool
// sums. A non-nil error means the bookkeeping drifted.
func (r *Registry) CheckConsistency() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stats.check(r.store)
}

// Close unsubscribes all event subscribers.
func (r *Registry) Close() {
	r.feeds.scope.Close()
	logger.Debug("closed")
}
