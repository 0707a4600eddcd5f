package models

// ExtractRequest represents the request payload for extracting job-posting content from a URL
type ExtractRequest struct {
	URL      string `json:"url" validate:"required,url"`
	Strategy string `json:"strategy,omitempty" validate:"omitempty,oneof=basic targeted auto"`
	ParseJob bool   `json:"parse_job,omitempty"` // also run the structured-parse collaborator on the result
}

// Strategy values accepted by the extraction pipeline
const (
	StrategyBasic    = "basic"
	StrategyTargeted = "targeted"
	StrategyAuto     = "auto"
)

// NormalizedStrategy returns the requested strategy, defaulting to auto
func (r *ExtractRequest) NormalizedStrategy() string {
	if r.Strategy == "" {
		return StrategyAuto
	}
	return r.Strategy
}
