// Copyright (c) 2025 The StakePool Registry developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	cli "gopkg.in/urfave/cli.v1"

	"github.com/stakepool/registry/stakepool"
)

var (
	poolsFlag = cli.UintFlag{
		Name:  "pools",
		Value: 5,
		Usage: "number of pools to seed",
	}
	roundsFlag = cli.UintFlag{
		Name:  "rounds",
		Value: 10,
		Usage: "number of selection rounds to run",
	}
	seedFlag = cli.Int64Flag{
		Name:  "seed",
		Usage: "deterministic selection seed (omit for crypto randomness)",
	}
	maxAttemptsFlag = cli.IntFlag{
		Name:  "max-attempts",
		Value: stakepool.DefaultMaxSelectionAttempts,
		Usage: "winner selection re-draw bound",
	}
	verbosityFlag = cli.Uint64Flag{
		Name:  "verbosity",
		Value: 3,
		Usage: "log verbosity (0-5)",
	}
	enableMetricsFlag = cli.BoolFlag{
		Name:  "enable-metrics",
		Usage: "enables metrics collection",
	}
	metricsAddrFlag = cli.StringFlag{
		Name:  "metrics-addr",
		Value: "localhost:2112",
		Usage: "metrics service listening address",
	}
)
