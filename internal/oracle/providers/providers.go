// Package providers registers the built-in completion providers and builds
// the configured oracle chain.
package providers

import (
	"fmt"

	"go.uber.org/zap"

	"billscan/internal/config"
	"billscan/internal/oracle"
	"billscan/internal/oracle/claude"
	"billscan/internal/oracle/gemini"
	"billscan/internal/oracle/openai"
	"billscan/internal/port"
)

func init() {
	oracle.RegisterProvider("gemini", gemini.Factory)
	oracle.RegisterProvider("claude", claude.Factory)
	oracle.RegisterProvider("openai", openai.Factory)
}

// Build creates the oracle described by cfg: a single provider, or a
// Fallback over every configured provider, throttled when
// cfg.RequestsPerMinute is positive. Any provider without a credential
// fails with domain.ErrConfiguration.
func Build(cfg *config.OracleConfig, logger *zap.Logger) (port.CompletionOracle, error) {
	chain := cfg.Chain()
	oracles := make([]port.CompletionOracle, 0, len(chain))
	names := make([]string, 0, len(chain))
	for i, pc := range chain {
		o, err := oracle.NewOracle(pc)
		if err != nil {
			return nil, fmt.Errorf("oracle provider %d: %w", i+1, err)
		}
		oracles = append(oracles, o)
		names = append(names, pc.Provider)
	}

	var out port.CompletionOracle
	if len(oracles) == 1 {
		out = oracles[0]
	} else {
		out = oracle.NewFallback(oracles, names, logger)
	}
	return oracle.NewRateLimited(out, cfg.RequestsPerMinute), nil
}
