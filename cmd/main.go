package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/javanhut/machete/internal/killer"
	"github.com/javanhut/machete/internal/proctable"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// exitConfigCreated tells the caller that a default config was written and
// nothing was watched.
const exitConfigCreated = 255

type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

// app holds everything a command needs. The logger stays nil until a
// command has built one.
type app struct {
	v      *viper.Viper
	fs     afero.Fs
	stdout io.Writer
	stderr io.Writer

	directory  proctable.Directory
	signaler   killer.Signaler
	executable func() (string, error)

	log      *zap.Logger
	closeLog func() error
}

func newApp(stdout, stderr io.Writer) *app {
	return &app{
		v:          viper.New(),
		fs:         afero.NewOsFs(),
		stdout:     stdout,
		stderr:     stderr,
		directory:  proctable.New(),
		signaler:   killer.Platform(),
		executable: os.Executable,
	}
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "machete",
		Short: "Kills unwanted processes as soon as they show up",
		Long: `Process Machete watches the running processes for the ones listed in config.yaml and
kills them once they have been alive for their configured wait time.

It stops when every listed process has been dealt with, or when the maximum wait time is
over for the ones that never showed up.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          a.runWatch,
	}

	flags := root.PersistentFlags()
	flags.Bool("debug", false, "read config.yaml from the current folder and log debug messages")
	flags.String("config-dir", "", "folder holding config.yaml (default is the executable's folder)")
	_ = a.v.BindPFlag("debug", flags.Lookup("debug"))
	_ = a.v.BindPFlag("config-dir", flags.Lookup("config-dir"))
	a.v.SetEnvPrefix("MACHETE")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	root.AddCommand(a.scanCmd(), a.startupCmd())
	return root
}

// execute runs the command line and returns the process exit code.
func (a *app) execute(ctx context.Context, args []string) int {
	root := a.rootCmd()
	root.SetArgs(args)
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return 0
	}
	var exit *exitError
	if errors.As(err, &exit) {
		return exit.code
	}

	if a.log != nil {
		a.log.Error("Error: " + err.Error())
	} else {
		fmt.Fprintf(a.stderr, "Error: %v\n", err)
	}
	return 1
}

func (a *app) close() {
	if a.closeLog != nil {
		_ = a.closeLog()
	}
}

func main() {
	a := newApp(os.Stdout, os.Stderr)
	code := a.execute(context.Background(), os.Args[1:])
	a.close()
	os.Exit(code)
}
