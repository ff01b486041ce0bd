// Copyright (c) 2025 The StakePool Registry developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package registry

import (
	"math/big"
	"time"

	"github.com/stakepool/registry/stakepool"
)

// PoolData is the bookkeeping record of one registered pool.
// Owner, Name and CreatedAt are immutable after registration; the stake and
// NFT counters are mutated only by the registry's stake accounting, and
// StakingPower is always the staking-power function applied to them.
type PoolData struct {
	Owner         stakepool.Address
	Name          string
	TotalStakes   *big.Int
	CreatedAt     time.Time
	RareNFTs      uint64
	LegendaryNFTs uint64
	StakingPower  *big.Int
}

func (p *PoolData) clone() *PoolData {
	cpy := *p
	cpy.TotalStakes = new(big.Int).Set(p.TotalStakes)
	cpy.StakingPower = new(big.Int).Set(p.StakingPower)
	return &cpy
}

// poolStore owns the pool mapping and the ordered list of registered
// identities. Registration order is the iteration order used by winner
// selection. Pools are never removed.
type poolStore struct {
	entries map[stakepool.Address]*PoolData
	order   []stakepool.Address
}

func newPoolStore() *poolStore {
	return &poolStore{
		entries: make(map[stakepool.Address]*PoolData),
	}
}

func (s *poolStore) register(id, owner stakepool.Address, name string, now time.Time) (*PoolData, error) {
	// a zero owner would read as the "not registered" sentinel and let the
	// entry be silently re-registered, duplicating it in the order list
	if id.IsZero() || owner.IsZero() {
		return nil, ErrInvalidIdentity
	}
	if _, ok := s.entries[id]; ok {
		return nil, ErrAlreadyRegistered
	}

	entry := &PoolData{
		Owner:        owner,
		Name:         name,
		TotalStakes:  new(big.Int),
		CreatedAt:    now,
		StakingPower: new(big.Int),
	}
	s.entries[id] = entry
	s.order = append(s.order, id)
	return entry, nil
}

func (s *poolStore) get(id stakepool.Address) (*PoolData, error) {
	entry, ok := s.entries[id]
	if !ok {
		return nil, ErrNotRegistered
	}
	return entry, nil
}

func (s *poolStore) len() int {
	return len(s.order)
}

// first returns the earliest registered pool, or nil if none.
func (s *poolStore) first() *PoolData {
	if len(s.order) == 0 {
		return nil
	}
	return s.entries[s.order[0]]
}

// iterate walks pools in registration order until the callback returns false.
func (s *poolStore) iterate(cb func(id stakepool.Address, entry *PoolData) bool) {
	for _, id := range s.order {
		if !cb(id, s.entries[id]) {
			return
		}
	}
}
