// Copyright (c) 2025 The StakePool Registry developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"os"
	"os/signal"
	"syscall"

	"github.com/mattn/go-isatty"

	"github.com/stakepool/registry/log"
)

func initLogger(lvl int) {
	logLevel := log.FromLegacyLevel(lvl)
	useColor := isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())

	var level slog.LevelVar
	level.Set(logLevel)
	log.SetDefault(log.NewLogger(log.NewTerminalHandlerWithLevel(os.Stderr, &level, useColor)))
}

func readIntFromUInt64Flag(val uint64) (int, error) {
	converted := int(val)
	if converted < 0 || val > math.MaxInt {
		return 0, fmt.Errorf("invalid verbosity value %d", val)
	}
	return converted, nil
}

func handleExitSignal() context.Context {
	exitSignalCh := make(chan os.Signal, 1)
	signal.Notify(exitSignalCh, os.Interrupt, syscall.SIGTERM)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		sig := <-exitSignalCh
		log.Info("exit signal received", "signal", sig)
		cancel()
	}()
	return ctx
}
