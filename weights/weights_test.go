// Copyright (c) 2025 The StakePool Registry developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package weights

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stakepool/registry/stakepool"
)

func TestBaseReward(t *testing.T) {
	reward := BaseReward()
	assert.Equal(t, stakepool.InitialBaseReward.Int64(), reward.Int64())

	// callers get a copy, not the shared default
	reward.SetInt64(0)
	assert.Equal(t, int64(1000), stakepool.InitialBaseReward.Int64())
}

func TestRewardRate(t *testing.T) {
	tests := []struct {
		name         string
		baseReward   int64
		poolCount    uint64
		globalStakes int64
		want         int64
	}{
		{"no pools", 1000, 0, 0, 0},
		{"one pool no stakes", 1000, 1, 0, 1000},
		{"scaled by stake volume", 1000, 2, 300, 500},
		{"rounds down", 1000, 3, 1000, 272},
		{"stakes below divisor do not scale", 1000, 2, 99, 2000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rate := RewardRate(big.NewInt(tt.baseReward), tt.poolCount, big.NewInt(tt.globalStakes))
			assert.Equal(t, tt.want, rate.Int64())
		})
	}
}

func TestStakingPower(t *testing.T) {
	power := StakingPower(0, 0, big.NewInt(100))
	assert.Equal(t, int64(100), power.Int64())

	power = StakingPower(2, 1, big.NewInt(100))
	want := int64(100) + 2*int64(stakepool.RareNFTBonus) + int64(stakepool.LegendaryNFTBonus)
	assert.Equal(t, want, power.Int64())

	// the input amount must not be aliased by the result
	stakes := big.NewInt(100)
	StakingPower(1, 0, stakes).SetInt64(0)
	assert.Equal(t, int64(100), stakes.Int64())
}
