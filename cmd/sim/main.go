package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/zeusync/tds/internal/config"
	"github.com/zeusync/tds/internal/core/observability/log"
	"github.com/zeusync/tds/internal/core/player"
	"github.com/zeusync/tds/internal/injector"
	"github.com/zeusync/tds/internal/sim"
)

func main() {
	configPath := flag.String("config", "configs/sim.yaml", "path to the simulation config")
	frames := flag.Int("frames", -1, "frames to simulate, overrides sim.frames when set")
	realtime := flag.Bool("realtime", false, "pace frames at the tick rate")
	flag.Parse()

	cfg, err := config.LoadFile(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error loading config:", err)
		os.Exit(1)
	}
	if *frames >= 0 {
		cfg.Sim.Frames = *frames
	}
	if *realtime {
		cfg.Sim.Realtime = true
	}

	app, err := injector.InitializeApp(cfg)
	if err != nil {
		log.Provide().Fatal("failed to build simulation", log.Error(err))
	}
	logger := app.Logger
	defer func() { _ = logger.Sync() }()

	runner, err := sim.New(app.Game, player.NewScript(cfg.Sim.Script...), app.Bus, logger, sim.Options{
		Step:       cfg.TickDuration(),
		Frames:     cfg.Sim.Frames,
		Realtime:   cfg.Sim.Realtime,
		StatsEvery: cfg.Sim.StatsEvery,
	})
	if err != nil {
		logger.Fatal("failed to create runner", log.Error(err))
	}

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	group, ctx := errgroup.WithContext(sigCtx)
	ctx, finish := context.WithCancel(ctx)
	group.Go(func() error {
		defer finish()
		return runner.Run(ctx)
	})
	group.Go(func() error {
		<-ctx.Done()
		if sigCtx.Err() != nil {
			logger.Info("interrupt received, stopping simulation")
		}
		return nil
	})

	if err := group.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("simulation stopped", log.Error(err))
		os.Exit(1)
	}
}
