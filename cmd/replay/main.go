// Command replay drives one session from a JSON-lines feed of sensor readings
// and prints the notifications it raises.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"sensordemos/config"
	"sensordemos/logging"
	"sensordemos/metrics"
	"sensordemos/notify"
	"sensordemos/notify/chime"
	"sensordemos/session"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "replay:", err)
		os.Exit(1)
	}
}

func run() error {
	configDir := pflag.String("config", "", "directory holding config.yaml")
	keysOnly := pflag.Bool("keys", false, "ignore motion lines and tilt with key lines")
	metricsAddr := pflag.String("metrics-addr", "", "serve /metrics on this address while replaying")
	pflag.Parse()

	var paths []string
	if *configDir != "" {
		paths = append(paths, *configDir)
	}
	cfg, err := config.Load(paths...)
	if err != nil {
		return err
	}

	log, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}
	defer log.Sync()

	in := io.Reader(os.Stdin)
	if pflag.NArg() > 0 {
		f, err := os.Open(pflag.Arg(0))
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}

	sinks := notify.Fanout{notify.NewLog(log)}
	if cfg.Audio.Enabled {
		bell, err := chime.New(log)
		if err != nil {
			log.Warn("audio disabled", zap.Error(err))
		} else {
			defer bell.Close()
			sinks = append(sinks, bell)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s := session.New(uuid.NewString(), session.Options{
		AlertRadius: cfg.Proximity.AlertRadiusMeters,
		Sensitivity: cfg.Tilt.Sensitivity,
		WinRadius:   cfg.Tilt.WinRadius,
		Sink:        sinks,
		Logger:      log,
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.Run(gctx)
		return nil
	})

	if *metricsAddr != "" {
		srv := &http.Server{Addr: *metricsAddr, Handler: metricsMux(), ReadHeaderTimeout: 5 * time.Second}
		g.Go(func() error {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
		g.Go(func() error {
			<-s.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})
	}

	g.Go(func() error {
		defer s.Stop()

		f := newFeeds()
		defer f.close()
		input, err := f.attach(gctx, s, *keysOnly)
		if err != nil {
			return err
		}
		log.Info("replaying feed", zap.String("session", s.ID), zap.Stringer("tilt", input))

		n, err := f.replay(gctx, in, s, log)
		if err != nil && !errors.Is(err, context.Canceled) {
			return err
		}

		snap, ok := s.Snapshot()
		if !ok {
			return nil
		}
		log.Info("replay finished",
			zap.Int("messages", n),
			zap.Int("seq", snap.Seq),
			zap.Bool("armed", snap.Armed),
			zap.Bool("won", snap.Ball.Won),
			zap.Float64("scale", snap.Committed.Scale),
			zap.Float64("rotation", snap.Committed.RotationDegrees),
		)
		return nil
	})

	return g.Wait()
}

func metricsMux() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	return mux
}
