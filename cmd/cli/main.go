package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/vidgen/internal/buildinfo"
	"github.com/dmitrijs2005/vidgen/internal/client/cli"
	"github.com/dmitrijs2005/vidgen/internal/client/client"
	"github.com/dmitrijs2005/vidgen/internal/client/config"
	"github.com/dmitrijs2005/vidgen/internal/client/download"
	"github.com/dmitrijs2005/vidgen/internal/client/notify"
	"github.com/dmitrijs2005/vidgen/internal/client/query"
	"github.com/dmitrijs2005/vidgen/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/vidgen/internal/client/rest"
	"github.com/dmitrijs2005/vidgen/internal/client/services"
	"github.com/dmitrijs2005/vidgen/internal/client/session"
	"github.com/dmitrijs2005/vidgen/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()
	logger := logging.New(os.Stderr, cfg.LogLevel)

	db, err := client.InitDatabase(ctx, cfg.DatabasePath)
	if err != nil {
		log.Fatalf("error initializing database: %v", err)
	}
	defer db.Close()

	tokens := session.NewTokenStore(metadata.NewSQLiteRepository(db))

	opts := []rest.Option{
		rest.WithTimeout(cfg.RequestTimeout),
		rest.WithRateLimit(cfg.RequestsPerSecond),
		rest.WithLogger(logger.With("component", "rest")),
	}
	api := client.NewHTTPClient(
		rest.New(cfg.ServerBaseURL, tokens, opts...),
		rest.New(cfg.ServerBaseURL, nil, opts...),
	)

	cache := query.NewCache(logger.With("component", "query"))
	notifier := notify.NewConsole(os.Stdout)

	app := cli.NewApp(cli.Deps{
		Auth:       session.NewStore(api, tokens, logger.With("component", "session")),
		Videos:     services.NewVideoService(api, cache, notifier, logger),
		Admin:      services.NewAdminService(api, cache, notifier, logger),
		Cache:      cache,
		Downloader: download.New(download.WithLogger(logger)),
		Notifier:   notifier,
		Logger:     logger,
		PageSize:   cfg.PageSize,
		In:         os.Stdin,
		Out:        os.Stdout,
	})

	app.Run(ctx)

}
