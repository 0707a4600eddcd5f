// Package llm turns cleaned job-posting text into structured job records
// through a pluggable provider.
package llm

import (
	"context"

	"github.com/StephCurry07/Appication-Tracker/pkg/models"
)

// Provider parses cleaned posting text into a structured job record.
type Provider interface {
	// ParseJob takes cleaned, size-bounded posting content and returns a
	// structured job record.
	ParseJob(ctx context.Context, content, url string) (*models.Job, error)

	// IsHealthy checks whether the provider can serve requests.
	IsHealthy(ctx context.Context) error

	// Name returns the provider identifier.
	Name() string
}
