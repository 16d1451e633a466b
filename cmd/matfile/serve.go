package main

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v5"
	"github.com/labstack/echo/v5/middleware"
	"github.com/urfave/cli/v3"

	"github.com/samcharles93/matfile/internal/api"
	"github.com/samcharles93/matfile/internal/logger"
	"github.com/samcharles93/matfile/internal/matstore"
)

func serveCmd() *cli.Command {
	var (
		addr        string
		cacheSize   int
		maxUpload   int64
		readTimeout time.Duration
	)

	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the MAT-file decoding REST API",
		Flags: append(decoderFlags(),
			&cli.StringFlag{
				Name:        "addr",
				Usage:       "listen address",
				Value:       "127.0.0.1:8080",
				Destination: &addr,
			},
			&cli.IntFlag{
				Name:        "cache-size",
				Usage:       "number of decoded files kept in memory",
				Value:       matstore.DefaultSize,
				Destination: &cacheSize,
			},
			&cli.Int64Flag{
				Name:        "max-upload",
				Usage:       "maximum upload size in bytes",
				Value:       api.DefaultMaxUpload,
				Destination: &maxUpload,
			},
			&cli.DurationFlag{
				Name:        "read-timeout",
				Usage:       "read timeout",
				Value:       30 * time.Second,
				Destination: &readTimeout,
			},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			log := logger.FromContext(ctx)
			applyServeConfig(cmd, cfg, &addr, &cacheSize, &maxUpload)

			dec, err := newDecoder(cmd, log.With("component", "decoder"))
			if err != nil {
				return err
			}
			store, err := matstore.New(cacheSize, dec, log)
			if err != nil {
				return err
			}
			server := api.NewServer(store, log, maxUpload)

			e := echo.New()
			e.Use(middleware.RequestLogger())
			e.Use(middleware.Recover())
			server.Register(e)
			log.Info("starting server", "address", addr, "cache_size", cacheSize, "max_upload", maxUpload)
			sc := echo.StartConfig{
				Address: addr,
				BeforeServeFunc: func(srv *http.Server) error {
					srv.ReadHeaderTimeout = readTimeout
					return nil
				},
			}
			return sc.Start(ctx, e)
		},
	}
}
