// Command feed-update downloads the public phishing blocklist feeds, merges
// them and persists the result through the configured domain list store.
// It is meant to run periodically (cron or similar), out-of-band from the
// scoring server, which picks the fresh list up on its next start.
package main

import (
	"context"
	"log"
	"path/filepath"
	"time"

	"github.com/phishguard/phishguard/internal/adapters/storage"
	"github.com/phishguard/phishguard/internal/config"
	"github.com/phishguard/phishguard/internal/feeds"
	"github.com/phishguard/phishguard/internal/ports"
)

func main() {
	log.Println("Updating phishing domain feeds...")

	cfg := config.Load()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	var store ports.DomainListStore
	if cfg.DatabaseURL != "" {
		pg, err := storage.NewPostgresStore(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		if err := pg.InitSchema(); err != nil {
			log.Fatalf("Failed to initialize schema: %v", err)
		}
		store = pg
	} else {
		store = storage.NewFileListStore(filepath.Join(cfg.DataDir, "phishingList.json"))
	}
	defer store.Close()

	fetcher := feeds.NewFetcher(nil, feeds.DefaultSources)
	domains, err := fetcher.FetchAll(ctx)
	if err != nil {
		log.Fatalf("Feed update failed: %v", err)
	}

	if err := store.SaveDomains(ctx, domains); err != nil {
		log.Fatalf("Failed to persist domain list: %v", err)
	}

	log.Printf("🎉 Saved %d unique entries", len(domains))
}
