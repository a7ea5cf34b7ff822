package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/pchela/internal/client/cli"
	"github.com/dmitrijs2005/pchela/internal/config"
	"github.com/dmitrijs2005/pchela/internal/logging"
	"github.com/dmitrijs2005/pchela/internal/loyalty"
	"github.com/dmitrijs2005/pchela/internal/profiles"
	"github.com/dmitrijs2005/pchela/internal/repositories/kv"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()
	logger := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)

	catalog, err := loyalty.LoadCatalog(cfg.CatalogPath)
	if err != nil {
		log.Fatalf("%v", err)
	}

	repo, closer, err := kv.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer closer.Close()

	store := profiles.NewStore(repo, profiles.WithLogger(logger), profiles.WithKey(cfg.StorageKey))
	svc := loyalty.NewService(store, catalog, cfg.MaxProfiles, logger)

	app := cli.NewStdApp(store, svc, logger)
	if err := app.Run(ctx); err != nil {
		log.Printf("%v", err)
	}

}
