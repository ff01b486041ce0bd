// Copyright (c) 2025 The StakePool Registry developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package registry

import (
	"crypto/rand"
	"math/big"
	mrand "math/rand"
)

// RandomSource yields the uniform draws consumed by winner selection.
// Implementations must return values uniformly distributed over [0, max),
// or the weighting of the selection is no longer fair.
type RandomSource interface {
	// Draw returns a uniformly distributed value in [0, max).
	// max is always positive when called by the registry.
	Draw(max *big.Int) (*big.Int, error)
}

// CryptoSource returns the default randomness source backed by crypto/rand.
func CryptoSource() RandomSource {
	return cryptoSource{}
}

type cryptoSource struct{}

func (cryptoSource) Draw(max *big.Int) (*big.Int, error) {
	return rand.Int(rand.Reader, max)
}

// SeededSource returns a deterministic pseudo-random source. Meant for
// tooling and tests, not for production selection.
func SeededSource(seed int64) RandomSource {
	return &seededSource{rnd: mrand.New(mrand.NewSource(seed))} //#nosec G404
}

type seededSource struct {
	rnd *mrand.Rand
}

func (s *seededSource) Draw(max *big.Int) (*big.Int, error) {
	return new(big.Int).Rand(s.rnd, max), nil
}
