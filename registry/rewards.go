// Copyright (c) 2025 The StakePool Registry developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package registry

import "math/big"

// recomputeRewardRate derives the reward rate from the current base reward,
// pool count and global stakes, and posts the update. Called after every
// event that changes one of those inputs. The rate function is trusted not
// to fail.
//
// Caller must hold r.mu.
func (r *Registry) recomputeRewardRate() {
	r.rewardRate = r.opts.RewardRate(
		new(big.Int).Set(r.baseReward),
		r.stats.pools,
		new(big.Int).Set(r.stats.stakes),
	)

	r.feeds.rewardRate.Send(&RewardRateEvent{
		Rate:   new(big.Int).Set(r.rewardRate),
		Pools:  r.stats.pools,
		Stakes: new(big.Int).Set(r.stats.stakes),
	})

	logger.Debug("reward rate recomputed",
		"rate", r.rewardRate,
		"pools", r.stats.pools,
		"stakes", r.stats.stakes,
	)
}
