// Copyright (c) 2025 The StakePool Registry developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package registry

import (
	"fmt"
	"math/big"

	"github.com/stakepool/registry/stakepool"
)

// globalStats tracks registry-wide staking totals. The totals are updated in
// the same critical section as the per-pool mutation they belong to, so they
// must equal the per-pool sums at every call boundary.
type globalStats struct {
	pools        uint64
	stakes       *big.Int
	stakingPower *big.Int
}

func newGlobalStats() *globalStats {
	return &globalStats{
		stakes:       new(big.Int),
		stakingPower: new(big.Int),
	}
}

// addPool counts a registration. The pool count is monotonic.
func (g *globalStats) addPool() {
	g.pools++
}

// addStakes increases the global stake total.
func (g *globalStats) addStakes(amount *big.Int) {
	g.stakes.Add(g.stakes, amount)
}

// subStakes decreases the global stake total.
// The caller has already checked amount <= stakes.
func (g *globalStats) subStakes(amount *big.Int) {
	g.stakes.Sub(g.stakes, amount)
}

// applyPowerDelta shifts the global staking power by newPower - oldPower of
// a single pool.
func (g *globalStats) applyPowerDelta(oldPower, newPower *big.Int) {
	g.stakingPower.Add(g.stakingPower, newPower)
	g.stakingPower.Sub(g.stakingPower, oldPower)
}

// check verifies the aggregates against the per-pool sums of the store.
func (g *globalStats) check(store *poolStore) error {
	if g.pools != uint64(store.len()) {
		return fmt.Errorf("pool count %d != registered pools %d", g.pools, store.len())
	}

	sumStakes := new(big.Int)
	sumPower := new(big.Int)
	store.iterate(func(_ stakepool.Address, entry *PoolData) bool {
		sumStakes.Add(sumStakes, entry.TotalStakes)
		sumPower.Add(sumPower, entry.StakingPower)
		return true
	})

	if g.stakes.Cmp(sumStakes) != 0 {
		return fmt.Errorf("global stakes %v != sum of pool stakes %v", g.stakes, sumStakes)
	}
	if g.stakingPower.Cmp(sumPower) != 0 {
		return fmt.Errorf("global staking power %v != sum of pool powers %v", g.stakingPower, sumPower)
	}
	return nil
}
