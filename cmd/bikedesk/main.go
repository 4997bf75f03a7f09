package main

import (
	"context"
	"os"
	"os/signal"

	"go.uber.org/zap"

	"bikedesk/internal/cli"
	"bikedesk/internal/config"
	"bikedesk/internal/refresher"
	"bikedesk/internal/store"
	"bikedesk/pkg/clients/dealer"
	"bikedesk/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New())
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	client := dealer.NewClient(cfg.API)
	tokens := store.NewFileTokenStore(cfg.Token.Path)
	st := store.New(client, tokens, baseLogger.Named("store"))

	refr := refresher.New(cfg.Refresh, st, baseLogger.Named("refresher"))
	refr.Start()
	defer refr.Stop()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	shell := cli.New(st, client, os.Stdin, os.Stdout, baseLogger.Named("cli"))
	shell.Run(ctx)
}
