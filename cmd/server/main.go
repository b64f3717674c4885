package main

import (
	"fmt"
	"log"
	"time"

	"vocalis/internal/config"
	"vocalis/internal/dialogue"
	"vocalis/internal/enricher"
	"vocalis/internal/enricher/claude"
	"vocalis/internal/enricher/openai"
	"vocalis/internal/extractor"
	"vocalis/internal/formatter"
	"vocalis/internal/handler"
	"vocalis/internal/port"
	"vocalis/internal/router"
	"vocalis/internal/schema"
	"vocalis/internal/service"
	"vocalis/internal/session"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	registry := schema.NewRegistry()

	enr, err := buildEnricher(&cfg.Enricher)
	if err != nil {
		return fmt.Errorf("failed to initialize enricher: %w", err)
	}
	if enr == nil {
		log.Printf("no enrichment provider configured, running deterministic extraction only")
	}

	enrichTimeout := time.Duration(cfg.Enricher.Primary.TimeoutSecs) * time.Second
	ex := extractor.New(enr, enrichTimeout)

	// Initialize services
	store := session.NewStore(cfg.Session.TTL, cfg.Session.CleanupInterval)
	controller := dialogue.NewController(ex)
	authSvc := service.NewAuthService(cfg.Auth)
	sessionSvc := service.NewSessionService(registry, store, controller, formatter.New())

	// Initialize handlers
	authH := handler.NewAuthHandler(authSvc)
	sessionH := handler.NewSessionHandler(sessionSvc)
	schemaH := handler.NewSchemaHandler(registry)
	healthH := handler.NewHealthHandler(enr != nil)

	// Setup router
	r := router.Setup(authSvc, authH, sessionH, schemaH, healthH, cfg.CORS.AllowedOrigins)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}

// buildEnricher wires the configured providers behind a fallback chain. A nil
// result means enrichment is disabled.
func buildEnricher(cfg *config.EnricherConfig) (port.Enricher, error) {
	enricher.RegisterProvider("claude", func(c *config.EnricherProviderConfig) (port.Enricher, error) {
		return claude.NewEnricher(c), nil
	})
	enricher.RegisterProvider("openai", func(c *config.EnricherProviderConfig) (port.Enricher, error) {
		return openai.NewEnricher(c), nil
	})

	var chain []port.Enricher
	for _, pc := range []*config.EnricherProviderConfig{cfg.PrimaryConfig(), cfg.SecondaryConfig()} {
		if pc == nil {
			continue
		}
		e, err := enricher.NewEnricher(pc)
		if err != nil {
			return nil, err
		}
		chain = append(chain, e)
	}

	switch len(chain) {
	case 0:
		return nil, nil
	case 1:
		return chain[0], nil
	default:
		return enricher.NewFallbackEnricher(chain), nil
	}
}
