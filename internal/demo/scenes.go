package demo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ngnhng/settle/future"
	"github.com/ngnhng/settle/internal/config"
)

var errSimulatedFailure = errors.New("simulated worker failure")

func runScenes(ctx context.Context, cfg *config.Config) error {
	scenes := []struct {
		name string
		run  func(context.Context, *config.Config) error
	}{
		{name: "promise handoff", run: promiseHandoff},
		{name: "barrier fan-in", run: barrierFanIn},
		{name: "registry drain", run: registryDrain},
	}

	for _, scene := range scenes {
		slog.Info("running scene", "scene", scene.name)
		if err := scene.run(ctx, cfg); err != nil {
			return fmt.Errorf("scene %q: %w", scene.name, err)
		}
	}
	return nil
}

// promiseHandoff settles a promise from a worker goroutine while the main
// goroutine waits on it, the basic producer/consumer handoff.
func promiseHandoff(ctx context.Context, cfg *config.Config) error {
	p := future.NewPromise[string]()

	p.OnSettled(func(value string, err error) {
		slog.Debug("promise settled", "value", value, "rejected", err != nil)
	})

	go func() {
		if err := sleep(ctx, workDuration(cfg)); err != nil {
			p.Reject(err)
			return
		}
		p.Resolve("computed elsewhere")
	}()

	value, err := p.Get(ctx)
	if err != nil {
		return err
	}
	slog.Info("promise delivered", "value", value)
	return nil
}

// barrierFanIn spreads work across a fixed set of slots, waits on Race for
// the first finisher, then on All for the whole set. A rejected All is an
// expected outcome here, not a scene failure.
func barrierFanIn(ctx context.Context, cfg *config.Config) error {
	workers := cfg.Demo.Workers

	b, err := future.NewBarrier[int](workers)
	if err != nil {
		return err
	}

	race := b.Race()
	all := b.All()

	g, gCtx := errgroup.WithContext(ctx)
	for i := range workers {
		g.Go(func() error {
			if err := sleep(gCtx, workDuration(cfg)); err != nil {
				if rejectErr := b.Reject(i, err); rejectErr != nil {
					return rejectErr
				}
				return err
			}
			if rand.Float64() < cfg.Demo.FailureRate {
				return b.Reject(i, fmt.Errorf("%w: worker %d", errSimulatedFailure, i))
			}
			return b.Resolve(i, i*i)
		})
	}

	first, err := race.Get(ctx)
	if err != nil {
		slog.Warn("first slot to settle was a failure", "error", err)
	} else {
		slog.Info("first slot settled", "value", first)
	}

	if err := g.Wait(); err != nil {
		return err
	}

	values, err := all.Get(ctx)
	switch {
	case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
		return err
	case err != nil:
		slog.Warn("barrier rejected", "error", err)
	default:
		slog.Info("barrier collected", "values", values)
	}
	return nil
}

// registryDrain tracks a batch of in-flight futures and drains the batch
// through AllSettled, tallying the outcomes with Then.
func registryDrain(ctx context.Context, cfg *config.Config) error {
	reg := future.NewRegistry[int](&future.RegistryOptions{Logger: slog.Default()})

	// Register the whole batch before any worker can settle and evict, so
	// the AllSettled snapshot covers every task.
	batch := make([]*future.Promise[int], cfg.Demo.Tasks)
	for task := range batch {
		batch[task] = future.NewPromise[int]()
		reg.Add(batch[task])
	}

	slog.Info("tracking batch", "pending", reg.Pending())

	type tally struct {
		fulfilled int
		rejected  int
	}
	counted := future.Then(reg.AllSettled(), func(outcomes []future.Outcome[int]) (tally, error) {
		var tl tally
		for _, o := range outcomes {
			if o.Status == future.StatusFulfilled {
				tl.fulfilled++
			} else {
				tl.rejected++
			}
		}
		return tl, nil
	})

	g, gCtx := errgroup.WithContext(ctx)
	for task, p := range batch {
		g.Go(func() error {
			if err := sleep(gCtx, workDuration(cfg)); err != nil {
				p.Reject(err)
				return err
			}
			if rand.Float64() < cfg.Demo.FailureRate {
				p.Reject(fmt.Errorf("%w: task %d", errSimulatedFailure, task))
			} else {
				p.Resolve(task)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	tl, err := counted.Get(ctx)
	if err != nil {
		return err
	}
	slog.Info("batch drained",
		"fulfilled", tl.fulfilled,
		"rejected", tl.rejected,
		"pending", reg.Pending(),
	)
	return nil
}

func workDuration(cfg *config.Config) time.Duration {
	if cfg.Demo.WorkTime <= 0 {
		return 0
	}
	return rand.N(cfg.Demo.WorkTime)
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
