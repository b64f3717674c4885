package enricher

import (
	"fmt"

	"vocalis/internal/config"
	"vocalis/internal/port"
)

// ProviderFactory is a function that creates an Enricher from a provider config.
type ProviderFactory func(cfg *config.EnricherProviderConfig) (port.Enricher, error)

// registry of enrichment provider factories, populated explicitly via
// RegisterProvider at startup.
var providers = map[string]ProviderFactory{}

// RegisterProvider registers an enrichment provider factory by name.
func RegisterProvider(name string, factory ProviderFactory) {
	providers[name] = factory
}

// NewEnricher creates an Enricher from a provider config using the registered factory.
func NewEnricher(cfg *config.EnricherProviderConfig) (port.Enricher, error) {
	factory, ok := providers[cfg.Provider]
	if !ok {
		return nil, fmt.Errorf("unknown enrichment provider: %s", cfg.Provider)
	}
	return factory(cfg)
}
