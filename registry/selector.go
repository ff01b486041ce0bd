// Copyright (c) 2025 The StakePool Registry developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package registry

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/stakepool/registry/stakepool"
)

// SelectWinner runs weighted-random winner selection over the registered
// pools and returns the winner's name.
//
// Each pool's chance is proportional to its share of the global staking
// power: a uniform draw in [0, globalStakingPower) is mapped onto the pools
// by walking them in registration order and accumulating power until the
// running total exceeds the draw. The previous winner is never returned
// twice in a row; a draw landing on it is discarded and re-drawn, up to the
// configured attempt bound.
//
// The whole selection, including retries, is one critical section. On any
// failure the registry state is unchanged.
func (r *Registry) SelectWinner() (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// More than one pool must hold nonzero power, or the selection could be
	// gamed by a single dominant staker. The first-registered pool's power
	// being strictly below the global total is a sufficient proxy.
	if r.stats.pools <= 1 {
		metricsSelections().AddWithLabel(1, map[string]string{"outcome": "no_competition"})
		return "", ErrInsufficientCompetition
	}
	if r.store.first().StakingPower.Cmp(r.stats.stakingPower) >= 0 {
		metricsSelections().AddWithLabel(1, map[string]string{"outcome": "no_competition"})
		return "", ErrInsufficientCompetition
	}

	for attempts := 0; attempts < r.opts.MaxSelectionAttempts; attempts++ {
		winningNum, err := r.opts.Rand.Draw(new(big.Int).Set(r.stats.stakingPower))
		if err != nil {
			return "", errors.Wrap(err, "draw winning number")
		}

		id, entry := r.pickAt(winningNum)
		if id == r.lastWinner {
			// no immediate repeat winner, re-draw
			logger.Debug("provisional winner repeats, re-drawing", "id", id, "attempt", attempts)
			continue
		}

		r.feeds.winner.Send(&WinnerEvent{
			Pool:       id,
			Name:       entry.Name,
			Power:      new(big.Int).Set(entry.StakingPower),
			TotalPower: new(big.Int).Set(r.stats.stakingPower),
		})
		r.lastWinner = id
		r.baseReward = r.opts.BaseReward()
		r.recomputeRewardRate()

		metricsSelections().AddWithLabel(1, map[string]string{"outcome": "won"})
		metricsSelectionAttempts().Observe(int64(attempts))

		logger.Info("winner selected",
			"id", id,
			"name", entry.Name,
			"power", entry.StakingPower,
			"totalPower", r.stats.stakingPower,
		)
		return entry.Name, nil
	}

	metricsSelections().AddWithLabel(1, map[string]string{"outcome": "exhausted"})
	logger.Info("winner selection exhausted", "attempts", r.opts.MaxSelectionAttempts)
	return "", ErrSelectionExhausted
}

// pickAt maps a draw in [0, globalStakingPower) onto a pool by the
// cumulative walk. The draw bound equals the sum of all pool powers, so the
// walk always crosses.
func (r *Registry) pickAt(winningNum *big.Int) (id stakepool.Address, entry *PoolData) {
	total := new(big.Int)
	r.store.iterate(func(poolID stakepool.Address, pool *PoolData) bool {
		total.Add(total, pool.StakingPower)
		if total.Cmp(winningNum) > 0 {
			id, entry = poolID, pool
			return false
		}
		return true
	})
	return id, entry
}
