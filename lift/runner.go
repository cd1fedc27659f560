package lift

import (
	"context"
	"fmt"
	"time"
)

const DefaultStep = 100 * time.Millisecond

type callCmd struct {
	floor Floor
	dir   Direction
	reply chan error
}

// Runner drives an Engine against the wall clock. Every Interval it advances
// the engine by Step of virtual time. All access to the engine goes through
// Run's goroutine, so callers on other goroutines never touch it directly.
type Runner struct {
	engine   *Engine
	step     time.Duration
	interval time.Duration

	chCalls  chan callCmd
	chResets chan chan struct{}
	chStatus chan chan Status
	chDone   chan struct{}
}

// NewRunner plays engine at speed times real time, advancing step at a time.
func NewRunner(engine *Engine, step time.Duration, speed float64) (*Runner, error) {
	if step <= 0 {
		return nil, &ConfigurationError{Field: "Step", Value: step, Reason: "must be positive"}
	}
	if speed <= 0 {
		return nil, &ConfigurationError{Field: "Speed", Value: speed, Reason: "must be positive"}
	}
	interval := time.Duration(float64(step) / speed)
	if interval <= 0 {
		interval = time.Nanosecond
	}
	return &Runner{
		engine:   engine,
		step:     step,
		interval: interval,
		chCalls:  make(chan callCmd),
		chResets: make(chan chan struct{}),
		chStatus: make(chan chan Status),
		chDone:   make(chan struct{}),
	}, nil
}

// Run owns the engine until ctx is done or the engine fails.
func (r *Runner) Run(ctx context.Context) error {
	defer close(r.chDone)
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	Log.Debug().Msgf("Runner started, %v virtual every %v", r.step, r.interval)
	for {
		select {
		case <-ctx.Done():
			Log.Debug().Msg("Runner has been signaled to stop")
			return ctx.Err()

		case cmd := <-r.chCalls:
			cmd.reply <- r.engine.SubmitRequest(cmd.floor, cmd.dir)

		case done := <-r.chResets:
			r.engine.Reset()
			close(done)

		case reply := <-r.chStatus:
			reply <- r.engine.Status()

		case <-ticker.C:
			if err := r.engine.Tick(r.step); err != nil {
				Log.Error().Err(err).Msg("Runner stopped on engine failure")
				return fmt.Errorf("runner: %w", err)
			}
		}
	}
}

// Call submits a hall call and waits for the engine to accept or reject it.
func (r *Runner) Call(ctx context.Context, floor Floor, dir Direction) error {
	cmd := callCmd{floor: floor, dir: dir, reply: make(chan error, 1)}
	select {
	case r.chCalls <- cmd:
	case <-r.chDone:
		return ErrRunnerStopped
	case <-ctx.Done():
		return ctx.Err()
	}
	return <-cmd.reply
}

func (r *Runner) Reset(ctx context.Context) error {
	done := make(chan struct{})
	select {
	case r.chResets <- done:
	case <-r.chDone:
		return ErrRunnerStopped
	case <-ctx.Done():
		return ctx.Err()
	}
	<-done
	return nil
}

func (r *Runner) Status(ctx context.Context) (Status, error) {
	reply := make(chan Status, 1)
	select {
	case r.chStatus <- reply:
	case <-r.chDone:
		return Status{}, ErrRunnerStopped
	case <-ctx.Done():
		return Status{}, ctx.Err()
	}
	return <-reply, nil
}
