// Copyright (c) 2025 The StakePool Registry developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package registry

import "github.com/stakepool/registry/metrics"

var (
	metricsPoolCount         = metrics.LazyLoadGauge("pool_count")
	metricsGlobalStakes      = metrics.LazyLoadGauge("global_stakes")
	metricsRegistrations     = metrics.LazyLoadCounter("pool_registrations_total")
	metricsStakeUpdates      = metrics.LazyLoadCounterVec("stake_updates_total", []string{"direction", "tier"})
	metricsSelections        = metrics.LazyLoadCounterVec("winner_selections_total", []string{"outcome"})
	metricsSelectionAttempts = metrics.LazyLoadHistogram("winner_selection_attempts", metrics.BucketSelectionAttempts)
)

// updateAggregateMetrics mirrors the global aggregates into gauges.
// Stake volumes beyond int64 are skipped rather than clipped.
func (r *Registry) updateAggregateMetrics() {
	metricsPoolCount().Set(int64(r.stats.pools)) // #nosec G115
	if r.stats.stakes.IsInt64() {
		metricsGlobalStakes().Set(r.stats.stakes.Int64())
	}
}
