// Copyright (c) 2025 The StakePool Registry developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package registry

import (
	"math/big"

	"github.com/ethereum/go-ethereum/event"

	"github.com/stakepool/registry/stakepool"
)

// PoolRegisteredEvent will be posted when a new pool joins the registry.
type PoolRegisteredEvent struct {
	Count uint64 // total registrations including this one
	Pool  stakepool.Address
	Owner stakepool.Address
	Name  string
}

// PoolStakesEvent will be posted when a pool's stake changes.
type PoolStakesEvent struct {
	Pool        stakepool.Address
	TotalStakes *big.Int
}

// GlobalStakesEvent will be posted when the global stake total changes.
type GlobalStakesEvent struct {
	Stakes *big.Int
}

// StakingPowerEvent will be posted when a pool's staking power is recomputed.
type StakingPowerEvent struct {
	Pool  stakepool.Address
	Power *big.Int
}

// RewardRateEvent will be posted when the reward rate is recomputed.
type RewardRateEvent struct {
	Rate   *big.Int
	Pools  uint64
	Stakes *big.Int
}

// WinnerEvent will be posted when a winner selection succeeds.
type WinnerEvent struct {
	Pool       stakepool.Address
	Name       string
	Power      *big.Int
	TotalPower *big.Int
}

// feeds carries one typed feed per notification kind. Sends are
// fire-and-forget: no retries, no acknowledgements.
type feeds struct {
	scope event.SubscriptionScope

	poolRegistered event.Feed
	poolStakes     event.Feed
	globalStakes   event.Feed
	stakingPower   event.Feed
	rewardRate     event.Feed
	winner         event.Feed
}

// SubscribePoolRegistered receivers will receive pool registrations.
func (r *Registry) SubscribePoolRegistered(ch chan *PoolRegisteredEvent) event.Subscription {
	return r.feeds.scope.Track(r.feeds.poolRegistered.Subscribe(ch))
}

// SubscribePoolStakes receivers will receive per-pool stake changes.
func (r *Registry) SubscribePoolStakes(ch chan *PoolStakesEvent) event.Subscription {
	return r.feeds.scope.Track(r.feeds.poolStakes.Subscribe(ch))
}

// SubscribeGlobalStakes receivers will receive global stake changes.
func (r *Registry) SubscribeGlobalStakes(ch chan *GlobalStakesEvent) event.Subscription {
	return r.feeds.scope.Track(r.feeds.globalStakes.Subscribe(ch))
}

// SubscribeStakingPower receivers will receive staking power updates.
func (r *Registry) SubscribeStakingPower(ch chan *StakingPowerEvent) event.Subscription {
	return r.feeds.scope.Track(r.feeds.stakingPower.Subscribe(ch))
}

// SubscribeRewardRate receivers will receive reward rate updates.
func (r *Registry) SubscribeRewardRate(ch chan *RewardRateEvent) event.Subscription {
	return r.feeds.scope.Track(r.feeds.rewardRate.Subscribe(ch))
}

// SubscribeWinner receivers will receive winner selections.
func (r *Registry) SubscribeWinner(ch chan *WinnerEvent) event.Subscription {
	return r.feeds.scope.Track(r.feeds.winner.Subscribe(ch))
}
