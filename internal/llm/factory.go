package llm

import (
	"fmt"

	"github.com/StephCurry07/Appication-Tracker/internal/config"
	"github.com/StephCurry07/Appication-Tracker/internal/llm/providers"
)

// Factory creates provider instances from configuration.
type Factory struct {
	config *config.Config
}

// NewFactory creates a provider factory.
func NewFactory(cfg *config.Config) *Factory {
	return &Factory{config: cfg}
}

// CreateProvider builds the configured provider.
func (f *Factory) CreateProvider() (Provider, error) {
	switch f.config.LLM.Provider {
	case "claude":
		return providers.NewClaudeProvider(f.config), nil
	case "disabled", "":
		return providers.NewDisabledProvider(), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", f.config.LLM.Provider)
	}
}

// SupportedProviders lists the provider names the factory understands.
func (f *Factory) SupportedProviders() []string {
	return []string{"claude", "disabled"}
}
