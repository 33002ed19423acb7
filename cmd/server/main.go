package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/phishguard/phishguard/internal/adapters/httpapi"
	"github.com/phishguard/phishguard/internal/adapters/lookup"
	"github.com/phishguard/phishguard/internal/adapters/storage"
	"github.com/phishguard/phishguard/internal/application"
	"github.com/phishguard/phishguard/internal/config"
	"github.com/phishguard/phishguard/internal/domain"
	"github.com/phishguard/phishguard/internal/domain/scoring"
	"github.com/phishguard/phishguard/internal/mlmodel"
	"github.com/phishguard/phishguard/internal/ports"
)

func main() {
	log.Println("Starting PhishGuard scoring service...")

	cfg := config.Load()
	ctx := context.Background()

	// Known-phishing set: Postgres when configured, JSON file otherwise.
	// Loaded once; immutable for the lifetime of the process.
	store := openListStore(cfg)
	entries, err := store.LoadDomains(ctx)
	if err != nil {
		log.Fatalf("Failed to load phishing domain list: %v", err)
	}
	store.Close()
	known := domain.NewHostnameSet(entries)
	log.Printf("Loaded %d known phishing hostnames", known.Len())

	// Scaler parameters. A shape mismatch against the feature arity means
	// the artifacts belong to a different feature layout: refuse to serve.
	scaler, err := storage.LoadScaler(filepath.Join(cfg.ModelDir, "scaler.json"))
	if err != nil {
		log.Fatalf("Failed to load scaler: %v", err)
	}
	if err := scoring.ValidateScaler(scaler); err != nil {
		log.Fatalf("Refusing to serve: %v", err)
	}

	// Trained classifier. Unlike the scaler, a missing model is survivable:
	// scoring degrades to heuristics only and says so in every explanation.
	var classifier ports.Classifier
	model, err := mlmodel.Load(filepath.Join(cfg.ModelDir, "model.json"))
	switch {
	case err != nil:
		log.Printf("⚠️  ML model unavailable, serving heuristic-only scores: %v", err)
	case model.InputSize() != domain.FeatureArity:
		log.Fatalf("Refusing to serve: model expects %d features, engine produces %d",
			model.InputSize(), domain.FeatureArity)
	default:
		classifier = model
		log.Println("✅ ML model loaded")
	}

	extractor := scoring.NewExtractor(scoring.DefaultPhishingKeywords, scoring.DefaultBrandDomains, known)
	engine, err := scoring.NewEngine(extractor, scoring.NewHeuristicScorer(), scaler, classifier)
	if err != nil {
		log.Fatalf("Failed to build scoring engine: %v", err)
	}

	countries, err := lookup.LoadCountryTable(filepath.Join(cfg.DataDir, "countries.json"))
	if err != nil {
		log.Fatalf("Failed to load country table: %v", err)
	}
	if countries.Len() == 0 {
		log.Println("⚠️  Country table empty, geolocation will report unknown")
	}

	service := application.NewScanService(
		engine,
		lookup.NewWHOISAgeLookup(),
		lookup.NewTLSCertificateLookup(),
		lookup.NewDNSGeoLocator(cfg.DNSServer, countries),
		cfg.LookupTimeout,
	)

	api := httpapi.New(service, cfg.PublicDir)
	server := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           api.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("🚀 PhishGuard listening on %s", cfg.ListenAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server failed: %v", err)
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Println("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
	log.Println("PhishGuard stopped")
}

func openListStore(cfg config.Config) ports.DomainListStore {
	if cfg.DatabaseURL != "" {
		store, err := storage.NewPostgresStore(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		if err := store.InitSchema(); err != nil {
			log.Fatalf("Failed to initialize schema: %v", err)
		}
		log.Println("Using Postgres domain list store")
		return store
	}
	log.Println("Using file domain list store")
	return storage.NewFileListStore(filepath.Join(cfg.DataDir, "phishingList.json"))
}
