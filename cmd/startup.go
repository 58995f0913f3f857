package main

import (
	"fmt"

	"github.com/javanhut/machete/internal/logging"
	"github.com/javanhut/machete/internal/startup"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func (a *app) startupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:    "startup",
		Short:  "Manage a startup program on supported operating systems",
		Hidden: !startup.Supported,
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "add",
			Short: "Start running on operating system startup",
			Args:  cobra.NoArgs,
			RunE: func(*cobra.Command, []string) error {
				return a.runStartup(startup.Add, "add", "Added")
			},
		},
		&cobra.Command{
			Use:   "remove",
			Short: "Stop running on operating system startup",
			Args:  cobra.NoArgs,
			RunE: func(*cobra.Command, []string) error {
				return a.runStartup(startup.Remove, "remove", "Removed")
			},
		},
	)
	return cmd
}

func (a *app) runStartup(change func(*zap.Logger, string) (startup.Outcome, error), action, done string) error {
	a.log = logging.Basic(a.stderr, a.v.GetBool("debug"))

	exe, err := a.executable()
	if err != nil {
		return fmt.Errorf("failed to get the path of the current running executable: %w", err)
	}
	outcome, err := change(a.log, exe)
	if err != nil {
		return fmt.Errorf("failed to %s the startup program: %w", action, err)
	}
	if outcome == startup.Succeeded {
		a.log.Info(done + " a startup program!")
	}
	return nil
}
