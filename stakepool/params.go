// Copyright (c) 2025 The StakePool Registry developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stakepool

import "math/big"

// Constants of the registry protocol.
const (
	// DefaultMaxSelectionAttempts bounds re-draws during winner selection
	// when the provisional winner equals the previous one. With two pools of
	// near-equal power the per-draw repeat probability is about 1/2, so 128
	// attempts leave a vanishing exhaustion probability while still
	// terminating when no eligible pool holds power.
	DefaultMaxSelectionAttempts = 128

	// RareNFTBonus staking power granted per staked rare NFT.
	RareNFTBonus uint64 = 500

	// LegendaryNFTBonus staking power granted per staked legendary NFT.
	LegendaryNFTBonus uint64 = 2000
)

// Defaults of the reward strategy.
var (
	// InitialBaseReward base reward seeded before the first winner selection.
	InitialBaseReward = big.NewInt(1000)

	// RewardRateDivisor scales the reward rate down as stake volume grows.
	RewardRateDivisor = big.NewInt(100)
)
