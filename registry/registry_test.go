// Copyright (c) 2025 The StakePool Registry developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package registry

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stakepool/registry/stakepool"
)

// identityPower makes staking power equal the staked amount, which keeps
// selection and aggregate math trivial to reason about in tests.
func identityPower(_, _ uint64, totalStakes *big.Int) *big.Int {
	return totalStakes
}

func newTestRegistry(opts Options) *Registry {
	if opts.StakingPower == nil {
		opts.StakingPower = identityPower
	}
	return New(opts)
}

func registerWithStake(t *testing.T, reg *Registry, name string, stake int64) stakepool.Address {
	t.Helper()
	id := stakepool.NamedAddress(name)
	require.NoError(t, reg.RegisterPool(stakepool.NamedAddress("owner"), id, name))
	if stake > 0 {
		require.NoError(t, reg.IncreaseStake(id, big.NewInt(stake), TierNone))
	}
	return id
}

func TestRegisterPool(t *testing.T) {
	reg := newTestRegistry(Options{})
	defer reg.Close()

	owner := stakepool.NamedAddress("owner")
	id := stakepool.NamedAddress("pool-a")

	require.NoError(t, reg.RegisterPool(owner, id, "pool-a"))
	assert.Equal(t, 1, reg.Len())

	info, err := reg.GetPoolData(id)
	require.NoError(t, err)
	assert.Equal(t, "pool-a", info.Name)
	assert.Equal(t, int64(0), info.TotalStakes.Int64())
	assert.False(t, info.CreatedAt.IsZero())

	require.NoError(t, reg.CheckConsistency())
}

func TestRegisterPool_ZeroIdentity(t *testing.T) {
	reg := newTestRegistry(Options{})
	defer reg.Close()

	err := reg.RegisterPool(stakepool.NamedAddress("owner"), stakepool.Address{}, "bad")
	assert.ErrorIs(t, err, ErrInvalidIdentity)

	err = reg.RegisterPool(stakepool.Address{}, stakepool.NamedAddress("pool-a"), "bad")
	assert.ErrorIs(t, err, ErrInvalidIdentity)
	assert.Equal(t, 0, reg.Len())
}

// A zero-owner registration must not reserve the identity: it would read as
// the "not registered" sentinel, let the same id register twice and
// double-count the pool in the order list and the aggregates.
func TestRegisterPool_ZeroOwnerCannotShadow(t *testing.T) {
	reg := newTestRegistry(Options{})
	defer reg.Close()

	id := stakepool.NamedAddress("pool-a")
	assert.ErrorIs(t, reg.RegisterPool(stakepool.Address{}, id, "pool-a"), ErrInvalidIdentity)

	require.NoError(t, reg.RegisterPool(stakepool.NamedAddress("owner"), id, "pool-a"))
	require.NoError(t, reg.IncreaseStake(id, big.NewInt(100), TierNone))

	assert.Equal(t, 1, reg.Len())
	require.Len(t, reg.Pools(), 1)
	require.NoError(t, reg.CheckConsistency())

	assert.ErrorIs(t, reg.RegisterPool(stakepool.NamedAddress("owner"), id, "again"), ErrAlreadyRegistered)
	assert.Equal(t, 1, reg.Len())
}

func TestRegisterPool_Duplicate(t *testing.T) {
	reg := newTestRegistry(Options{})
	defer reg.Close()

	id := registerWithStake(t, reg, "pool-a", 100)

	err := reg.RegisterPool(stakepool.NamedAddress("other"), id, "imposter")
	assert.ErrorIs(t, err, ErrAlreadyRegistered)

	// failed registration leaves the original untouched
	assert.Equal(t, 1, reg.Len())
	info, err := reg.GetPoolData(id)
	require.NoError(t, err)
	assert.Equal(t, "pool-a", info.Name)
	assert.Equal(t, int64(100), info.TotalStakes.Int64())
	require.NoError(t, reg.CheckConsistency())
}

func TestStakeAccounting(t *testing.T) {
	reg := newTestRegistry(Options{})
	defer reg.Close()

	a := registerWithStake(t, reg, "pool-a", 0)
	b := registerWithStake(t, reg, "pool-b", 0)

	require.NoError(t, reg.IncreaseStake(a, big.NewInt(300), TierNone))
	require.NoError(t, reg.IncreaseStake(b, big.NewInt(200), TierNone))
	require.NoError(t, reg.DecreaseStake(a, big.NewInt(100), TierNone))
	require.NoError(t, reg.CheckConsistency())

	infoA, err := reg.GetPoolData(a)
	require.NoError(t, err)
	assert.Equal(t, int64(200), infoA.TotalStakes.Int64())

	infoB, err := reg.GetPoolData(b)
	require.NoError(t, err)
	assert.Equal(t, int64(200), infoB.TotalStakes.Int64())

	pools := reg.Pools()
	require.Len(t, pools, 2)
	assert.Equal(t, int64(200), pools[0].StakingPower.Int64())
	assert.Equal(t, int64(200), pools[1].StakingPower.Int64())
}

func TestStakeAccounting_Errors(t *testing.T) {
	reg := newTestRegistry(Options{})
	defer reg.Close()

	a := registerWithStake(t, reg, "pool-a", 100)

	tests := []struct {
		name string
		run  func() error
		want error
	}{
		{"unregistered pool", func() error {
			return reg.IncreaseStake(stakepool.NamedAddress("ghost"), big.NewInt(1), TierNone)
		}, ErrNotRegistered},
		{"nil amount", func() error {
			return reg.IncreaseStake(a, nil, TierNone)
		}, ErrInvalidAmount},
		{"zero amount", func() error {
			return reg.IncreaseStake(a, new(big.Int), TierNone)
		}, ErrInvalidAmount},
		{"negative amount", func() error {
			return reg.DecreaseStake(a, big.NewInt(-5), TierNone)
		}, ErrInvalidAmount},
		{"decrease beyond pool stake", func() error {
			return reg.DecreaseStake(a, big.NewInt(101), TierNone)
		}, ErrInsufficientPoolStake},
		{"tiered decrease without NFT", func() error {
			return reg.DecreaseStake(a, big.NewInt(1), TierRare)
		}, ErrInsufficientNFTs},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.run(), tt.want)

			// failed updates must not move any state
			info, err := reg.GetPoolData(a)
			require.NoError(t, err)
			assert.Equal(t, int64(100), info.TotalStakes.Int64())
			require.NoError(t, reg.CheckConsistency())
		})
	}
}

func TestStakeAccounting_NFTTiers(t *testing.T) {
	reg := New(Options{}) // default staking power, NFT bonuses apply
	defer reg.Close()

	id := stakepool.NamedAddress("pool-a")
	require.NoError(t, reg.RegisterPool(stakepool.NamedAddress("owner"), id, "pool-a"))

	require.NoError(t, reg.IncreaseStake(id, big.NewInt(100), TierRare))
	require.NoError(t, reg.IncreaseStake(id, big.NewInt(100), TierLegendary))

	pools := reg.Pools()
	require.Len(t, pools, 1)
	assert.Equal(t, uint64(1), pools[0].RareNFTs)
	assert.Equal(t, uint64(1), pools[0].LegendaryNFTs)
	wantPower := int64(200) + int64(stakepool.RareNFTBonus) + int64(stakepool.LegendaryNFTBonus)
	assert.Equal(t, wantPower, pools[0].StakingPower.Int64())
	require.NoError(t, reg.CheckConsistency())

	require.NoError(t, reg.DecreaseStake(id, big.NewInt(50), TierLegendary))
	pools = reg.Pools()
	assert.Equal(t, uint64(0), pools[0].LegendaryNFTs)
	assert.Equal(t, int64(150)+int64(stakepool.RareNFTBonus), pools[0].StakingPower.Int64())
	require.NoError(t, reg.CheckConsistency())

	// the released NFT cannot be released twice
	assert.ErrorIs(t, reg.DecreaseStake(id, big.NewInt(1), TierLegendary), ErrInsufficientNFTs)
}

func TestRewardRate(t *testing.T) {
	reg := newTestRegistry(Options{})
	defer reg.Close()

	// no pools, no stakes
	assert.Equal(t, int64(0), reg.RewardRate().Int64())
	assert.Equal(t, stakepool.InitialBaseReward.Int64(), reg.BaseReward().Int64())

	// 1000 * 1 / (0/100 + 1)
	a := registerWithStake(t, reg, "pool-a", 0)
	assert.Equal(t, int64(1000), reg.RewardRate().Int64())

	// 1000 * 2 / (300/100 + 1)
	registerWithStake(t, reg, "pool-b", 0)
	require.NoError(t, reg.IncreaseStake(a, big.NewInt(300), TierNone))
	assert.Equal(t, int64(500), reg.RewardRate().Int64())

	// back to 1000 * 2 / 1 once the stake is withdrawn
	require.NoError(t, reg.DecreaseStake(a, big.NewInt(300), TierNone))
	assert.Equal(t, int64(2000), reg.RewardRate().Int64())
}

func TestGetPoolData_Copies(t *testing.T) {
	reg := newTestRegistry(Options{})
	defer reg.Close()

	id := registerWithStake(t, reg, "pool-a", 100)

	info, err := reg.GetPoolData(id)
	require.NoError(t, err)
	info.TotalStakes.SetInt64(9999)

	again, err := reg.GetPoolData(id)
	require.NoError(t, err)
	assert.Equal(t, int64(100), again.TotalStakes.Int64())
	require.NoError(t, reg.CheckConsistency())
}

func TestPools_SnapshotIsolated(t *testing.T) {
	reg := newTestRegistry(Options{})
	defer reg.Close()

	id := registerWithStake(t, reg, "pool-a", 100)
	registerWithStake(t, reg, "pool-b", 50)

	snapshot := reg.Pools()
	require.Len(t, snapshot, 2)
	snapshot[0].TotalStakes.SetInt64(0)
	snapshot[0].StakingPower.SetInt64(0)

	info, err := reg.GetPoolData(id)
	require.NoError(t, err)
	assert.Equal(t, int64(100), info.TotalStakes.Int64())
	require.NoError(t, reg.CheckConsistency())
}

func TestEvents_Registration(t *testing.T) {
	reg := newTestRegistry(Options{})
	defer reg.Close()

	regCh := make(chan *PoolRegisteredEvent, 1)
	sub := reg.SubscribePoolRegistered(regCh)
	defer sub.Unsubscribe()

	owner := stakepool.NamedAddress("owner")
	id := stakepool.NamedAddress("pool-a")
	require.NoError(t, reg.RegisterPool(owner, id, "pool-a"))

	ev := <-regCh
	assert.Equal(t, uint64(1), ev.Count)
	assert.Equal(t, id, ev.Pool)
	assert.Equal(t, owner, ev.Owner)
	assert.Equal(t, "pool-a", ev.Name)
}

// A stake update must post staking power first, then pool stakes, then global
// stakes, then the recomputed reward rate. The sends are synchronous, so a
// single draining goroutine observes the exact order.
func TestEvents_StakeUpdateOrder(t *testing.T) {
	reg := newTestRegistry(Options{})
	defer reg.Close()

	id := registerWithStake(t, reg, "pool-a", 0)

	powerCh := make(chan *StakingPowerEvent)
	poolCh := make(chan *PoolStakesEvent)
	globalCh := make(chan *GlobalStakesEvent)
	rateCh := make(chan *RewardRateEvent)
	subs := []interface{ Unsubscribe() }{
		reg.SubscribeStakingPower(powerCh),
		reg.SubscribePoolStakes(poolCh),
		reg.SubscribeGlobalStakes(globalCh),
		reg.SubscribeRewardRate(rateCh),
	}
	defer func() {
		for _, sub := range subs {
			sub.Unsubscribe()
		}
	}()

	var order []string
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 4; i++ {
			select {
			case ev := <-powerCh:
				assert.Equal(t, int64(100), ev.Power.Int64())
				order = append(order, "stakingPower")
			case ev := <-poolCh:
				assert.Equal(t, int64(100), ev.TotalStakes.Int64())
				order = append(order, "poolStakes")
			case ev := <-globalCh:
				assert.Equal(t, int64(100), ev.Stakes.Int64())
				order = append(order, "globalStakes")
			case ev := <-rateCh:
				assert.Equal(t, uint64(1), ev.Pools)
				order = append(order, "rewardRate")
			}
		}
	}()

	require.NoError(t, reg.IncreaseStake(id, big.NewInt(100), TierNone))
	<-done

	assert.Equal(t, []string{"stakingPower", "poolStakes", "globalStakes", "rewardRate"}, order)
}
