// Copyright (c) 2025 The StakePool Registry developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package registry

import "errors"

// Failures of registry operations. All of them are terminal for the calling
// operation and leave the registry state untouched. Match with errors.Is.
var (
	// ErrInvalidIdentity the pool or owner identity is the zero address.
	ErrInvalidIdentity = errors.New("identity is the zero address")

	// ErrAlreadyRegistered a pool with the same identity exists.
	ErrAlreadyRegistered = errors.New("pool already registered")

	// ErrNotRegistered no pool with the given identity exists.
	ErrNotRegistered = errors.New("pool not registered")

	// ErrInvalidAmount the stake amount is nil or not positive.
	ErrInvalidAmount = errors.New("stake amount must be positive")

	// ErrInsufficientPoolStake the decrease amount exceeds the pool's stake.
	ErrInsufficientPoolStake = errors.New("amount exceeds pool stake")

	// ErrInsufficientGlobalStake the decrease amount exceeds the global
	// stake. Only reachable if aggregates drifted from per-pool sums.
	ErrInsufficientGlobalStake = errors.New("amount exceeds global stake")

	// ErrInsufficientNFTs a tiered decrease was requested while the pool
	// has no staked NFT of that tier.
	ErrInsufficientNFTs = errors.New("no staked NFT of the given tier")

	// ErrInsufficientCompetition winner selection needs at least two pools
	// and more than one of them holding staking power.
	ErrInsufficientCompetition = errors.New("insufficient competition")

	// ErrSelectionExhausted the selection retry bound was hit without
	// finding a non-repeat winner.
	ErrSelectionExhausted = errors.New("unable to select a valid winner")
)
