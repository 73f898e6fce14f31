// Package oracle holds the completion-model plumbing shared by all
// providers: the provider registry, the error taxonomy, the fallback chain
// and request throttling.
package oracle

import (
	"fmt"
	"sort"
	"sync"

	"billscan/internal/config"
	"billscan/internal/domain"
	"billscan/internal/port"
)

// ProviderFactory is a function that creates a CompletionOracle from a provider config.
type ProviderFactory func(cfg *config.OracleProviderConfig) (port.CompletionOracle, error)

var (
	mu        sync.RWMutex
	providers = map[string]ProviderFactory{}
)

// RegisterProvider registers a completion provider factory by name.
func RegisterProvider(name string, factory ProviderFactory) {
	mu.Lock()
	defer mu.Unlock()
	providers[name] = factory
}

// Providers returns the registered provider names, sorted.
func Providers() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(providers))
	for name := range providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewOracle creates a CompletionOracle from a provider config using the
// registered factory. A missing credential is reported as
// domain.ErrConfiguration before any provider is contacted.
func NewOracle(cfg *config.OracleProviderConfig) (port.CompletionOracle, error) {
	mu.RLock()
	factory, ok := providers[cfg.Provider]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: unknown completion provider: %s", domain.ErrConfiguration, cfg.Provider)
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: API key for %s provider is missing", domain.ErrConfiguration, cfg.Provider)
	}
	return factory(cfg)
}
