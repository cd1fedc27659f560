package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/delliston/liftsim/internal/logger"
	"github.com/delliston/liftsim/lift"
	"github.com/rs/zerolog"
)

var Log = logger.GetLogger()

func main() {
	configPath := flag.String("config", "", "YAML config file. Defaults to the reference building")
	envPath := flag.String("env", "", "Optional .env file with LIFTSIM_* overrides")
	scriptPath := flag.String("script", "", "Scenario script. Defaults to stdin")
	realtime := flag.Bool("realtime", false, "Play the scenario against the wall clock")
	speed := flag.Float64("speed", 1, "Playback speed in realtime mode")
	debug := flag.Bool("debug", false, "Log every dispatch and transition")
	flag.Parse()

	level := zerolog.InfoLevel
	if *debug {
		level = zerolog.DebugLevel
	}
	logger.GetLoggerConfigured(level)

	if err := run(*configPath, *envPath, *scriptPath, *realtime, *speed, os.Stdout); err != nil {
		Log.Error().Err(err).Msg("Simulation failed")
		os.Exit(1)
	}
}

func run(configPath, envPath, scriptPath string, realtime bool, speed float64, out io.Writer) error {
	cfg := lift.DefaultConfig()
	if configPath != "" {
		var err error
		if cfg, err = lift.LoadConfig(configPath); err != nil {
			return err
		}
	}
	cfg, err := lift.ApplyEnv(cfg, envPath)
	if err != nil {
		return err
	}

	var in io.Reader = os.Stdin
	if scriptPath != "" {
		f, err := os.Open(scriptPath)
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}
	cmds, err := parseScript(in)
	if err != nil {
		return err
	}

	engine, err := lift.NewEngine(cfg)
	if err != nil {
		return err
	}
	if realtime {
		// Transitions are printed from the runner goroutine.
		out = &syncWriter{w: out}
	}
	engine.OnTransition(func(t lift.Transition) {
		fmt.Fprintln(out, t)
	})

	if realtime {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		return playRealtime(ctx, engine, cmds, speed, out)
	}
	return playVirtual(engine, cmds, out)
}

// playVirtual runs the script as fast as possible on virtual time.
func playVirtual(engine *lift.Engine, cmds []command, out io.Writer) error {
	for _, c := range cmds {
		switch c.kind {
		case cmdCall:
			if err := engine.SubmitRequest(c.floor, c.dir); err != nil {
				var oor *lift.OutOfRangeError
				if errors.As(err, &oor) {
					fmt.Fprintf(out, "line %d: %v\n", c.line, err)
					continue
				}
				return err
			}
		case cmdWait:
			if err := engine.Tick(c.wait); err != nil {
				return err
			}
		case cmdUntilIdle:
			if _, err := engine.RunUntilIdle(); err != nil {
				return err
			}
		case cmdStatus:
			fmt.Fprint(out, formatStatus(engine.Status()))
		case cmdReset:
			engine.Reset()
		}
	}
	return nil
}

// playRealtime hands the engine to a Runner and feeds it the script, sleeping
// on waits.
func playRealtime(ctx context.Context, engine *lift.Engine, cmds []command, speed float64, out io.Writer) error {
	runner, err := lift.NewRunner(engine, lift.DefaultStep, speed)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	errc := make(chan error, 1)
	go func() { errc <- runner.Run(ctx) }()

	stopped := func(err error) error { return runnerError(err, errc) }

	sleep := func(d time.Duration) error {
		select {
		case <-time.After(time.Duration(float64(d) / speed)):
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	for _, c := range cmds {
		switch c.kind {
		case cmdCall:
			if err := runner.Call(ctx, c.floor, c.dir); err != nil {
				var oor *lift.OutOfRangeError
				if !errors.As(err, &oor) {
					return stopped(err)
				}
				fmt.Fprintf(out, "line %d: %v\n", c.line, err)
			}
		case cmdWait:
			if err := sleep(c.wait); err != nil {
				return err
			}
		case cmdUntilIdle:
			for {
				s, err := runner.Status(ctx)
				if err != nil {
					return stopped(err)
				}
				if s.Pending == 0 && allIdle(s.Lifts) {
					break
				}
				if err := sleep(lift.DefaultStep); err != nil {
					return err
				}
			}
		case cmdStatus:
			s, err := runner.Status(ctx)
			if err != nil {
				return stopped(err)
			}
			fmt.Fprint(out, formatStatus(s))
		case cmdReset:
			if err := runner.Reset(ctx); err != nil {
				return stopped(err)
			}
		}
	}

	cancel()
	if err := <-errc; err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// runnerError reports why the runner stopped when err only says that it did.
func runnerError(err error, errc <-chan error) error {
	if !errors.Is(err, lift.ErrRunnerStopped) {
		return err
	}
	if runErr := <-errc; runErr != nil {
		return runErr
	}
	return err
}

func allIdle(lifts []lift.LiftView) bool {
	for _, l := range lifts {
		if l.State != lift.Idle {
			return false
		}
	}
	return true
}

type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}
