package main

import (
	"fmt"

	"github.com/javanhut/machete/internal/logging"
	"github.com/javanhut/machete/internal/monitor"
	"github.com/javanhut/machete/pkg/config"
	"go.uber.org/zap"
)

// loadConfig reads config.yaml and builds the logger from it. When the file
// did not exist a default one is written and an exitConfigCreated error is
// returned.
func (a *app) loadConfig() (*config.Config, error) {
	debug := a.v.GetBool("debug")

	dir, explanation, err := a.configDir(debug)
	if err != nil {
		return nil, fmt.Errorf("failed to get the config directory: %w", err)
	}
	cfg, outcome, err := config.Load(a.fs, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to load the config: %w", err)
	}

	opts := logging.Options{Debug: debug, Dir: dir, Console: a.stderr}
	if cfg != nil {
		opts.Debug = debug || cfg.Logging.AlwaysDebug
		opts.LogToFile = cfg.Logging.LogToFile
	}
	if err := a.initLogging(opts); err != nil {
		return nil, err
	}
	if debug {
		a.log.Warn("Debug mode is enabled. Things might behave slightly differently!")
	}

	if outcome == config.Created {
		a.log.Info(fmt.Sprintf("A default %s file has been created in %s. Configure it!", config.FileName, explanation))
		return nil, &exitError{code: exitConfigCreated}
	}
	a.log.Debug("Deserialized config", zap.Any("config", cfg))
	return cfg, nil
}

func (a *app) configDir(debug bool) (string, string, error) {
	if dir := a.v.GetString("config-dir"); dir != "" {
		return dir, dir, nil
	}
	return config.Dir(debug)
}

func (a *app) initLogging(opts logging.Options) error {
	log, closeFn, err := logging.New(opts)
	if err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	a.log = log
	a.closeLog = closeFn
	return nil
}

func policyFrom(k config.KillingConfig) monitor.Policy {
	return monitor.Policy{
		MaxWaitTime:           k.MaxWaitTime.Std(),
		RefreshInterval:       k.RefreshWaitTime.Std(),
		DefaultKillWaitTime:   k.KillWaitTime.Std(),
		DefaultKillGracefully: k.KillGracefully,
	}
}

func specsFrom(processes []config.ProcessConfig) []monitor.Spec {
	specs := make([]monitor.Spec, 0, len(processes))
	for _, p := range processes {
		pattern, exact := p.Pattern()
		spec := monitor.Spec{
			Match:          monitor.Contains(pattern),
			Limit:          p.Limit,
			KillGracefully: p.KillGracefully,
		}
		if exact {
			spec.Match = monitor.Exact(pattern)
		}
		if p.KillWaitTime != nil {
			wait := p.KillWaitTime.Std()
			spec.KillWaitTime = &wait
		}
		specs = append(specs, spec)
	}
	return specs
}
