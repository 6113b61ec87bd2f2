// Package sim drives a game at a fixed step from an input source.
package sim

import (
	"context"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/zeusync/tds/internal/core/events/bus"
	"github.com/zeusync/tds/internal/core/game"
	"github.com/zeusync/tds/internal/core/observability/log"
	"github.com/zeusync/tds/internal/core/player"
)

type Options struct {
	// Step is the simulated time per frame.
	Step time.Duration
	// Frames stops the run after this many frames. Zero runs until ctx ends.
	Frames int
	// Realtime paces frames with a ticker instead of running flat out.
	Realtime bool
	// StatsEvery is simulated time between stats log lines. Zero disables them.
	StatsEvery time.Duration
}

// Runner owns the loop goroutine. The game is only touched from Run.
type Runner struct {
	game   *game.Game
	input  player.InputSource
	logger log.Log
	opts   Options

	mu     sync.Mutex
	counts map[string]uint64
}

// New subscribes to every event on eventBus to keep per-type counters.
func New(g *game.Game, input player.InputSource, eventBus bus.EventBus, logger log.Log, opts Options) (*Runner, error) {
	r := &Runner{
		game:   g,
		input:  input,
		logger: logger.Named("sim"),
		opts:   opts,
		counts: make(map[string]uint64),
	}
	if eventBus != nil {
		if _, err := eventBus.Subscribe(bus.Wildcard, r.count); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (r *Runner) count(e bus.Event) error {
	r.mu.Lock()
	r.counts[e.Type]++
	r.mu.Unlock()
	return nil
}

// EventCounts returns how many events of each type have been seen.
func (r *Runner) EventCounts() map[string]uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]uint64, len(r.counts))
	for k, v := range r.counts {
		out[k] = v
	}
	return out
}

// Run steps the game until ctx is done or the frame budget is spent. It
// returns ctx.Err() only when cancelled before the budget ran out.
func (r *Runner) Run(ctx context.Context) error {
	dt := float32(r.opts.Step.Seconds())
	statsFrames := 0
	if r.opts.StatsEvery > 0 && r.opts.Step > 0 {
		statsFrames = max(1, int(r.opts.StatsEvery/r.opts.Step))
	}

	var tick <-chan time.Time
	if r.opts.Realtime {
		ticker := time.NewTicker(r.opts.Step)
		defer ticker.Stop()
		tick = ticker.C
	}

	started := time.Now()
	r.logger.Info("simulation started",
		log.Duration("step", r.opts.Step),
		log.Int("frames", r.opts.Frames),
		log.Bool("realtime", r.opts.Realtime),
	)

	for frame := 1; r.opts.Frames == 0 || frame <= r.opts.Frames; frame++ {
		if tick != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-tick:
			}
		} else if err := ctx.Err(); err != nil {
			return err
		}

		r.game.Step(dt, r.input.Poll())

		if statsFrames > 0 && frame%statsFrames == 0 {
			r.logger.Info("stats", r.game.Stats().Fields()...)
		}
	}

	stats := r.game.Stats()
	fields := append(stats.Fields(), log.Duration("elapsed", time.Since(started)))
	counts := r.EventCounts()
	for _, typ := range slices.Sorted(maps.Keys(counts)) {
		fields = append(fields, log.Uint64(typ, counts[typ]))
	}
	r.logger.Info("simulation finished", fields...)
	return nil
}
