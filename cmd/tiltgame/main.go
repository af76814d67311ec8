// Command tiltgame is the tilt maze in a terminal: arrow keys tilt the board
// until the ball rolls into the target.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"sensordemos/config"
	"sensordemos/logging"
	"sensordemos/notify"
	"sensordemos/notify/chime"
	"sensordemos/session"
	"sensordemos/source"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "tiltgame:", err)
		os.Exit(1)
	}
}

// logFilePath prefers the flag, then SENSORDEMOS_LOG_FILE. Empty means no logs.
func logFilePath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	v, err := config.GetEnvVariable("SENSORDEMOS_LOG_FILE")
	if err != nil {
		return ""
	}
	return v
}

func run() error {
	configDir := pflag.String("config", "", "directory holding config.yaml")
	logFile := pflag.String("log-file", "", "write logs here (default $SENSORDEMOS_LOG_FILE); the terminal is busy drawing")
	pflag.Parse()

	var paths []string
	if *configDir != "" {
		paths = append(paths, *configDir)
	}
	cfg, err := config.Load(paths...)
	if err != nil {
		return err
	}

	log := zap.NewNop()
	if path := logFilePath(*logFile); path != "" {
		if log, err = logging.New(cfg.Log.Level, cfg.Log.Format, path); err != nil {
			return err
		}
	}
	defer log.Sync()

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	var finiOnce sync.Once
	fini := func() { finiOnce.Do(screen.Fini) }
	defer fini()

	var muted atomic.Bool
	sinks := notify.Fanout{notify.NewLog(log)}
	if cfg.Audio.Enabled {
		bell, err := chime.New(log)
		if err != nil {
			log.Warn("audio disabled", zap.Error(err))
		} else {
			defer bell.Close()
			sinks = append(sinks, notify.Permitted(bell, func() bool { return !muted.Load() }))
		}
	}

	// latest snapshot only; the renderer skips frames it could not keep up with
	frames := make(chan session.Snapshot, 1)
	publish := session.ObserverFunc(func(snap session.Snapshot) {
		select {
		case <-frames:
		default:
		}
		frames <- snap
	})

	s := session.New(uuid.NewString(), session.Options{
		Sensitivity: cfg.Tilt.Sensitivity,
		WinRadius:   cfg.Tilt.WinRadius,
		Sink:        sinks,
		Observers:   []session.Observer{publish},
		Logger:      log,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	keyboard := source.NewKeyboard(screen)
	defer keyboard.Close()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.Run(gctx)
		return nil
	})

	sub, input, err := s.AttachTilt(gctx, nil, keyboard)
	if err != nil {
		cancel()
		_ = g.Wait()
		return err
	}
	defer sub.Unsubscribe()
	log.Info("tilt game started", zap.String("session", s.ID), zap.Stringer("input", input))

	redraw := make(chan struct{}, 1)
	g.Go(func() error {
		return keyboard.Poll(gctx, func(ev tcell.Event) bool {
			switch eventAction(ev) {
			case actionQuit:
				cancel()
				return true
			case actionRestart:
				s.Post(session.RestartGame{})
				return true
			case actionMute:
				log.Info("chime toggled", zap.Bool("muted", !muted.Load()))
				muted.Store(!muted.Load())
				return true
			case actionRedraw:
				screen.Sync()
				select {
				case redraw <- struct{}{}:
				default:
				}
				return true
			}
			return false
		})
	})

	// PollEvent only returns once the screen is finalized
	g.Go(func() error {
		<-gctx.Done()
		fini()
		return nil
	})

	g.Go(func() error {
		var last session.Snapshot
		if snap, ok := s.Snapshot(); ok {
			last = snap
			draw(screen, last)
		}
		for {
			select {
			case <-gctx.Done():
				return nil
			case snap := <-frames:
				last = snap
			case <-redraw:
			}
			draw(screen, last)
		}
	})

	err = g.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
