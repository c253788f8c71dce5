package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/NgigiN/smscampaign/internal/campaign"
	"github.com/NgigiN/smscampaign/internal/cli"
	"github.com/NgigiN/smscampaign/internal/config"
	"github.com/NgigiN/smscampaign/internal/logging"
	"github.com/NgigiN/smscampaign/internal/storage"
)

func main() {
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration %v\n", err)
		os.Exit(1)
	}

	log := logging.SetupLogging(cfg.LogLevel)
	if envErr != nil {
		log.WithError(envErr).Debug("Main.Env.no .env file")
	}

	var store storage.Store
	if cfg.DatabasePath == ":memory:" {
		store = storage.NewMemoryStore()
	} else {
		db, err := storage.NewDatabase(cfg.DatabasePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open database %q: %v\n", cfg.DatabasePath, err)
			os.Exit(1)
		}
		store = db
	}

	session, err := campaign.Open(store,
		campaign.WithLogger(log),
		campaign.WithUndoDepth(cfg.UndoDepth),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load campaign: %v\n", err)
		os.Exit(1)
	}

	env := &cli.Env{
		Session: session,
		Config:  cfg,
		Log:     log,
		In:      os.Stdin,
		Out:     os.Stdout,
		Err:     os.Stderr,
	}
	status := cli.Run(context.Background(), env, os.Args[1:])

	if closer, ok := store.(interface{ Close() error }); ok {
		closer.Close()
	}
	os.Exit(int(status))
}
