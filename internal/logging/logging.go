// Package logging builds the zap loggers used by the CLI.
package logging

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// FileName is the log file written next to the config when file logging is
// enabled. It is started fresh on every run.
const FileName = "latest_log.txt"

type Options struct {
	Debug     bool
	LogToFile bool
	// Dir is where FileName is written.
	Dir string
	// Console defaults to stderr.
	Console io.Writer
}

// Basic returns a console-only logger writing to w.
func Basic(w io.Writer, debug bool) *zap.Logger {
	return zap.New(consoleCore(w, level(debug)))
}

// New returns a console logger that also writes to FileName in opts.Dir
// when opts.LogToFile is set. The returned close function flushes and
// releases the log file.
func New(opts Options) (*zap.Logger, func() error, error) {
	console := opts.Console
	if console == nil {
		console = os.Stderr
	}
	lvl := level(opts.Debug)

	if !opts.LogToFile {
		log := zap.New(consoleCore(console, lvl))
		return log, log.Sync, nil
	}

	path := filepath.Join(opts.Dir, FileName)
	// Each run starts a fresh file; nothing from the previous run is kept.
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, nil, fmt.Errorf("failed to replace the log file: %w", err)
	}
	file := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    10, // MB
		MaxBackups: 1,
	}

	log := zap.New(zapcore.NewTee(
		consoleCore(console, lvl),
		fileCore(file, lvl),
	))
	closeFn := func() error {
		_ = log.Sync()
		return file.Close()
	}
	return log, closeFn, nil
}

func level(debug bool) zapcore.Level {
	if debug {
		return zapcore.DebugLevel
	}
	return zapcore.InfoLevel
}

func consoleCore(w io.Writer, lvl zapcore.Level) zapcore.Core {
	cfg := zapcore.EncoderConfig{
		LevelKey:         "level",
		MessageKey:       "msg",
		EncodeLevel:      zapcore.CapitalColorLevelEncoder,
		EncodeDuration:   zapcore.StringDurationEncoder,
		ConsoleSeparator: " ",
	}
	return zapcore.NewCore(zapcore.NewConsoleEncoder(cfg), zapcore.Lock(zapcore.AddSync(w)), lvl)
}

func fileCore(w io.Writer, lvl zapcore.Level) zapcore.Core {
	cfg := zapcore.EncoderConfig{
		TimeKey:          "time",
		LevelKey:         "level",
		MessageKey:       "msg",
		EncodeTime:       zapcore.ISO8601TimeEncoder,
		EncodeLevel:      zapcore.CapitalLevelEncoder,
		EncodeDuration:   zapcore.StringDurationEncoder,
		ConsoleSeparator: " ",
	}
	return zapcore.NewCore(zapcore.NewConsoleEncoder(cfg), zapcore.AddSync(w), lvl)
}
