package main

import (
	"fmt"

	"github.com/javanhut/machete/internal/monitor"
	"github.com/javanhut/machete/internal/ui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func (a *app) scanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scan",
		Short: "Show which running processes the config matches, without killing anything",
		Args:  cobra.NoArgs,
		RunE:  a.runScan,
	}
}

func (a *app) runScan(cmd *cobra.Command, _ []string) error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}

	snapshot, err := a.directory.Snapshot(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to refresh processes: %w", err)
	}
	a.log.Debug("Took a process snapshot", zap.Int("processes", snapshot.Len()))

	previews := monitor.Previews(snapshot, policyFrom(cfg.Killing), specsFrom(cfg.Processes))
	ui.NewTerminalUI(a.stdout).Scan(previews)
	return nil
}
