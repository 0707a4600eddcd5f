package models

import "time"

// ExtractionResult is the outcome of a successful pipeline run. It is created
// and discarded within a single request; nothing in the pipeline persists it.
type ExtractionResult struct {
	Content       string    `json:"content"`
	Method        string    `json:"method"`
	Hostname      string    `json:"hostname"`
	ContentLength int       `json:"contentLength"`
	Timestamp     time.Time `json:"timestamp"`
}

// ExtractResponse represents the response from the extract endpoint
type ExtractResponse struct {
	Success        bool          `json:"success"`
	Content        string        `json:"content"`
	URL            string        `json:"url"`
	ContentLength  int           `json:"contentLength"`
	Method         string        `json:"method"`
	Hostname       string        `json:"hostname"`
	Timestamp      time.Time     `json:"timestamp"`
	Job            *Job          `json:"job,omitempty"` // present only when parse_job was requested
	ProcessingTime time.Duration `json:"processing_time"`
	RequestID      string        `json:"request_id"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Version   string            `json:"version"`
	Uptime    time.Duration     `json:"uptime"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error     string    `json:"error"`
	Details   string    `json:"details,omitempty"`
	Method    string    `json:"method,omitempty"` // extraction method attempted when the failure is semantic
	RequestID string    `json:"request_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
