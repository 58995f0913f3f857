package main

import (
	"context"
	"errors"
	"os/signal"

	"github.com/javanhut/machete/internal/events"
	"github.com/javanhut/machete/internal/monitor"
	"github.com/javanhut/machete/internal/notify"
	"github.com/javanhut/machete/internal/ui"
	"github.com/spf13/cobra"
)

func (a *app) runWatch(cmd *cobra.Command, _ []string) error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}

	var sink monitor.Sink = events.NewLogSink(a.log)
	if cfg.Notifications {
		sink = events.Fanout{sink, notify.New(a.log)}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), shutdownSignals()...)
	defer stop()

	m := monitor.New(a.directory, a.signaler, sink)
	summary, err := m.Run(ctx, policyFrom(cfg.Killing), specsFrom(cfg.Processes))
	if errors.Is(err, context.Canceled) {
		a.log.Info("Interrupted, stopping early.")
		err = nil
	}
	if err != nil {
		return err
	}

	ui.NewTerminalUI(a.stdout).Summary(summary)
	return nil
}
