// Copyright (c) 2025 The StakePool Registry developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package weights ships the default implementations of the registry's
// injectable weight functions. The registry treats all three as opaque
// strategies; none of the formulas here is contractual.
package weights

import (
	"math/big"

	"github.com/stakepool/registry/stakepool"
)

// BaseReward returns the next base reward value.
func BaseReward() *big.Int {
	return new(big.Int).Set(stakepool.InitialBaseReward)
}

// RewardRate derives the global reward rate from the base reward, the pool
// count and the global stake volume. The rate grows with participation and
// is scaled down as staked volume accumulates.
func RewardRate(baseReward *big.Int, poolCount uint64, globalStakes *big.Int) *big.Int {
	rate := new(big.Int).Mul(baseReward, new(big.Int).SetUint64(poolCount))
	scale := new(big.Int).Div(globalStakes, stakepool.RewardRateDivisor)
	scale.Add(scale, big.NewInt(1))
	return rate.Div(rate, scale)
}

// StakingPower derives a pool's selection weight: its staked amount plus a
// fixed bonus per staked NFT, legendaries counting more than rares.
func StakingPower(rare, legendary uint64, totalStakes *big.Int) *big.Int {
	power := new(big.Int).Set(totalStakes)
	bonus := rare*stakepool.RareNFTBonus + legendary*stakepool.LegendaryNFTBonus
	return power.Add(power, new(big.Int).SetUint64(bonus))
}
