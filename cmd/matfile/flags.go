package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/matfile/internal/logger"
	"github.com/samcharles93/matfile/internal/matstore"
	"github.com/samcharles93/matfile/pkg/mat"
)

var (
	configFile   string
	logLevel     string
	logFormat    string
	debug        bool
	maxDepth     int
	maxInputSize int64
	legacyInt32  bool

	cfg Config
)

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:        "config",
		Usage:       "path to config file",
		Value:       configPath(),
		Destination: &configFile,
	}
}

func loggingFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "log level (debug, info, warn, error)",
			Value:       "info",
			Destination: &logLevel,
		},
		&cli.StringFlag{
			Name:        "log-format",
			Usage:       "log format (pretty, json, text)",
			Value:       "pretty",
			Destination: &logFormat,
		},
		&cli.BoolFlag{
			Name:        "debug",
			Usage:       "enable debug logging (shorthand for --log-level=debug)",
			Destination: &debug,
		},
	}
}

func decoderFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:        "max-depth",
			Usage:       "maximum nesting of compressed elements",
			Value:       mat.DefaultMaxDepth,
			Destination: &maxDepth,
		},
		&cli.Int64Flag{
			Name:        "max-size",
			Usage:       "maximum input and inflated size in bytes (0 = no limit)",
			Destination: &maxInputSize,
		},
		&cli.BoolFlag{
			Name:        "legacy-int32",
			Usage:       "check int32 arrays against the uint32 widening row",
			Destination: &legacyInt32,
		},
	}
}

// setup loads the config file and installs the logger into ctx.
func setup(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	loaded, err := LoadConfig(configFile)
	if err != nil {
		return ctx, err
	}
	cfg = loaded
	applyLoggingConfig(cmd, cfg)

	level, err := logger.ParseLevel(logLevel)
	if err != nil {
		return ctx, err
	}
	if debug {
		level = slog.LevelDebug
	}
	log, err := logger.New(os.Stderr, logFormat, level)
	if err != nil {
		return ctx, err
	}
	return logger.WithContext(ctx, log), nil
}

// newDecoder builds a decoder from the decoder flags, logging through log.
func newDecoder(cmd *cli.Command, log logger.Logger) (*mat.Decoder, error) {
	applyDecoderConfig(cmd, cfg)
	if maxDepth < 1 {
		return nil, fmt.Errorf("--max-depth must be at least 1, got %d", maxDepth)
	}
	if maxInputSize < 0 {
		return nil, fmt.Errorf("--max-size must not be negative, got %d", maxInputSize)
	}
	return &mat.Decoder{
		Logger:           log,
		MaxDepth:         maxDepth,
		MaxInputSize:     maxInputSize,
		LegacyInt32Check: legacyInt32,
	}, nil
}

// loadFile decodes the file at path through a single-entry store.
func loadFile(ctx context.Context, cmd *cli.Command, path string) (*matstore.Entry, error) {
	log := logger.FromContext(ctx)
	dec, err := newDecoder(cmd, log)
	if err != nil {
		return nil, err
	}
	store, err := matstore.New(1, dec, log.With("component", "store"))
	if err != nil {
		return nil, err
	}
	return store.Load(path)
}
