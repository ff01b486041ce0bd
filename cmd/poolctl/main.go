// Copyright (c) 2025 The StakePool Registry developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// poolctl seeds a pool registry and runs winner-selection rounds against it.
package main

import (
	"encoding/binary"
	"fmt"
	"math/big"
	"os"

	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/stakepool/registry/httpserver"
	"github.com/stakepool/registry/log"
	"github.com/stakepool/registry/metrics"
	"github.com/stakepool/registry/registry"
	"github.com/stakepool/registry/stakepool"
)

var (
	version   string
	gitCommit string

	flags = []cli.Flag{
		poolsFlag,
		roundsFlag,
		seedFlag,
		maxAttemptsFlag,
		verbosityFlag,
		enableMetricsFlag,
		metricsAddrFlag,
	}
)

func run(ctx *cli.Context) error {
	lvl, err := readIntFromUInt64Flag(ctx.Uint64(verbosityFlag.Name))
	if err != nil {
		return errors.Wrap(err, "parse verbosity flag")
	}
	initLogger(lvl)

	if ctx.Bool(enableMetricsFlag.Name) {
		metrics.InitializePrometheusMetrics()
		url, closeFunc, err := httpserver.StartMetricsServer(ctx.String(metricsAddrFlag.Name))
		if err != nil {
			return fmt.Errorf("unable to start metrics server - %w", err)
		}
		log.Info("metrics server started", "url", url)
		defer closeFunc()
	}

	opts := registry.Options{
		MaxSelectionAttempts: ctx.Int(maxAttemptsFlag.Name),
	}
	if ctx.IsSet(seedFlag.Name) {
		opts.Rand = registry.SeededSource(ctx.Int64(seedFlag.Name))
	}
	reg := registry.New(opts)
	defer reg.Close()

	rounds := ctx.Uint(roundsFlag.Name)
	winnerCh := make(chan *registry.WinnerEvent, rounds)
	sub := reg.SubscribeWinner(winnerCh)
	defer sub.Unsubscribe()

	if err := seedPools(reg, ctx.Uint(poolsFlag.Name)); err != nil {
		return err
	}

	for i := uint(0); i < rounds; i++ {
		name, err := reg.SelectWinner()
		if err != nil {
			return errors.Wrapf(err, "selection round %d", i+1)
		}
		fmt.Println("round", i+1, "winner:", name)
	}

	tally := make(map[string]int)
	for len(winnerCh) > 0 {
		ev := <-winnerCh
		tally[ev.Name]++
	}
	for name, wins := range tally {
		log.Info("selection tally", "name", name, "wins", wins)
	}

	if err := reg.CheckConsistency(); err != nil {
		return errors.Wrap(err, "registry aggregates drifted")
	}

	if ctx.Bool(enableMetricsFlag.Name) {
		log.Info("waiting for exit signal, metrics remain scrapeable")
		<-handleExitSignal().Done()
	}
	return nil
}

// seedPools registers n pools with deterministic identities and staggered
// stakes so selections have an uneven distribution to work with.
func seedPools(reg *registry.Registry, n uint) error {
	owner := stakepool.NamedAddress("poolctl")
	for i := uint(0); i < n; i++ {
		name := fmt.Sprintf("pool-%d", i+1)
		id := stakepool.NamedAddress(name)
		if err := reg.RegisterPool(owner, id, name); err != nil {
			return errors.Wrapf(err, "register %s", name)
		}

		// semi random, but deterministic stake per pool
		stake := binary.BigEndian.Uint32(id[:4])%100_000 + 1_000
		if err := reg.IncreaseStake(id, new(big.Int).SetUint64(uint64(stake)), registry.TierNone); err != nil {
			return errors.Wrapf(err, "stake %s", name)
		}
	}
	return nil
}

func main() {
	app := cli.App{
		Version:   version,
		Name:      "poolctl",
		Usage:     "seed a staking pool registry and run validator selections",
		Copyright: "2025 The StakePool Registry developers",
		Flags:     flags,
		Action:    run,
	}
	if gitCommit != "" {
		app.Version += "-" + gitCommit
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
