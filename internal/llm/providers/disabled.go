package providers

import (
	"context"
	"fmt"

	"github.com/StephCurry07/Appication-Tracker/pkg/models"
)

// DisabledProvider is the no-op provider used when job parsing is turned off.
type DisabledProvider struct{}

// NewDisabledProvider creates the no-op provider.
func NewDisabledProvider() *DisabledProvider {
	return &DisabledProvider{}
}

// ParseJob always fails; parsing is disabled.
func (dp *DisabledProvider) ParseJob(ctx context.Context, content, url string) (*models.Job, error) {
	return nil, fmt.Errorf("job parsing is disabled")
}

// IsHealthy always fails so callers report parsing as unavailable.
func (dp *DisabledProvider) IsHealthy(ctx context.Context) error {
	return fmt.Errorf("job parsing is disabled")
}

// Name returns the provider identifier.
func (dp *DisabledProvider) Name() string {
	return "disabled"
}
