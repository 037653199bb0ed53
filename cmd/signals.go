package main

import (
	"log/slog"
	"os"
	"time"

	"hypernate/internal/platform"
)

// shutdownGrace bounds a signal-initiated quit. The task stop alone may take two seconds.
const shutdownGrace = 5 * time.Second

// signalWatch turns the first SIGINT/SIGTERM into an ordered quit.
// Later signals get the default action again, and if the quit has not
// finished within grace the process releases its locks and exits.
type signalWatch struct {
	signals <-chan os.Signal
	stop    func()
	done    <-chan struct{}
	quit    func()
	grace   time.Duration
	exit    func(code int)
	logger  *slog.Logger
}

func (watch signalWatch) run() {
	select {
	case sig := <-watch.signals:
		watch.stop()
		watch.logger.Info("signal received, shutting down", "signal", sig.String())
		watch.quit()
	case <-watch.done:
		return
	}

	timer := time.NewTimer(watch.grace)
	defer timer.Stop()
	select {
	case <-watch.done:
	case <-timer.C:
		watch.logger.Error("shutdown did not finish, exiting", "grace", watch.grace)
		platform.ReleaseAll()
		watch.exit(1)
	}
}
