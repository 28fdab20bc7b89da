package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/tijarah/internal/buildinfo"
	"github.com/dmitrijs2005/tijarah/internal/client/cli"
	"github.com/dmitrijs2005/tijarah/internal/client/config"
	"github.com/dmitrijs2005/tijarah/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()
	logger := logging.New(logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}
