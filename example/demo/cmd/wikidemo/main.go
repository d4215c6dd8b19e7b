package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.opentelemetry.io/otel"

	"github.com/wikiservice/wikidb-go/example/pagestore"
	"github.com/wikiservice/wikidb-go/wikidb"
	"github.com/wikiservice/wikidb-go/wikidb/oteladapters"
	"github.com/wikiservice/wikidb-go/wikidb/postgresengine"
)

func main() {
	observabilityEnabled := flag.Bool("observability", false, "export telemetry via OTLP")
	flag.Parse()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Shut down cleanly on Ctrl-C
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	var engineOptions []postgresengine.Option

	if *observabilityEnabled {
		providers, providersErr := NewObservabilityProviders()
		if providersErr != nil {
			log.Fatalf("Failed to set up observability providers: %v", providersErr)
		}
		defer func() {
			if shutdownErr := providers.Shutdown(); shutdownErr != nil {
				log.Printf("Failed to shut down observability providers: %v", shutdownErr)
			}
		}()

		engineOptions = append(engineOptions,
			postgresengine.WithContextualLogger(oteladapters.NewSlogBridgeLogger(serviceName)),
			postgresengine.WithMetrics(oteladapters.NewMetricsCollector(otel.Meter(serviceName))),
		)
	}

	settings := wikidb.LoadSettings()

	engine, connectErr := postgresengine.Connect(ctx, settings, engineOptions...)
	if connectErr != nil {
		log.Fatalf("Failed to connect to %s: %v", settings.DSN(), connectErr)
	}
	defer func() { _ = engine.Close() }()

	store, storeErr := pagestore.NewStore(engine)
	if storeErr != nil {
		log.Fatalf("Failed to create page store: %v", storeErr)
	}

	if runErr := run(ctx, store); runErr != nil {
		log.Fatalf("Demo run failed: %v", runErr)
	}

	log.Print("Demo run finished")
}

func run(ctx context.Context, store *pagestore.Store) error {
	welcome := pagestore.NewPage(
		"Welcome",
		"This wiki is powered by a pooled PostgreSQL connection layer.",
		map[string]string{"author": "system"},
	)

	syntax := pagestore.NewPage(
		"Syntax",
		"Pages are plain text for now.",
		map[string]string{"author": "system", "draft": "true"},
	)

	if saveErr := store.SaveAll(ctx, welcome, syntax); saveErr != nil {
		return saveErr
	}

	pages, listErr := store.List(ctx)
	if listErr != nil {
		return listErr
	}

	for _, page := range pages {
		log.Printf("Page %s: %s (updated %s)", page.ID, page.Title, page.UpdatedAt)
	}

	found, findErr := store.FindByTitle(ctx, "Welcome")
	if findErr != nil {
		return findErr
	}

	if deleteErr := store.Delete(ctx, found.ID); deleteErr != nil && !errors.Is(deleteErr, pagestore.ErrPageNotFound) {
		return deleteErr
	}

	return nil
}
