// Package providers holds concrete LLM provider implementations.
package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/StephCurry07/Appication-Tracker/internal/config"
	"github.com/StephCurry07/Appication-Tracker/internal/logging"
	"github.com/StephCurry07/Appication-Tracker/pkg/models"
)

// ClaudeProvider parses job postings with Anthropic's Claude models.
type ClaudeProvider struct {
	client anthropic.Client
	config *config.Config
	logger logging.Logger
}

// NewClaudeProvider creates a Claude-backed provider.
func NewClaudeProvider(cfg *config.Config) *ClaudeProvider {
	client := anthropic.NewClient(
		option.WithAPIKey(cfg.LLM.APIKey),
	)

	return &ClaudeProvider{
		client: client,
		config: cfg,
		logger: logging.GetGlobalLogger().WithField("provider", "claude"),
	}
}

// ParseJob sends cleaned posting text to Claude and decodes the structured
// job record from its JSON reply. The input is expected to already be cleaned
// and size-bounded by the extraction pipeline.
func (cp *ClaudeProvider) ParseJob(ctx context.Context, content, url string) (*models.Job, error) {
	startTime := time.Now()

	// Keep the prompt inside the token budget. Rough estimate of 3 chars
	// per token.
	maxContentLength := cp.config.LLM.MaxTokens * 3
	if len(content) > maxContentLength {
		content = content[:maxContentLength] + "..."
	}

	prompt := cp.buildParsePrompt(content, url)

	response, err := cp.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(cp.config.LLM.Model),
		MaxTokens:   int64(cp.config.LLM.MaxTokens),
		Temperature: anthropic.Float(float64(cp.config.LLM.Temperature)),
		Messages: []anthropic.MessageParam{{
			Content: []anthropic.ContentBlockParamUnion{{
				OfText: &anthropic.TextBlockParam{Text: prompt},
			}},
			Role: anthropic.MessageParamRoleUser,
		}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to call Claude API: %w", err)
	}

	job, err := cp.parseResponse(response, url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Claude response: %w", err)
	}

	cp.logger.Info("Job parsing completed", map[string]interface{}{
		"url":             url,
		"job_title":       job.Title,
		"company":         job.CompanyName,
		"processing_time": time.Since(startTime).String(),
	})

	return job, nil
}

func (cp *ClaudeProvider) buildParsePrompt(content, url string) string {
	return fmt.Sprintf(`You are a job posting analyzer. Extract structured job information from the provided content and return it as a JSON object.

The content below is cleaned text from a job posting webpage. Extract the following information and return it as a valid JSON object with exactly these fields:

{
  "title": "string - The job title",
  "job_url": "string - The URL of the job posting (%s)",
  "company_name": "string - The company name",
  "location": "string - The job location (city, state, country, or 'Remote')",
  "salary": {
    "currency": "string - Salary as displayed (e.g., '$80,000 - $100,000 per year')",
    "max": number - Maximum salary as integer (0 if not specified),
    "min": number - Minimum salary as integer (0 if not specified)
  },
  "requirements": ["array of strings - Required qualifications, skills, experience"],
  "description": "string - Brief job description or summary (2-3 sentences max)",
  "responsibilities": ["array of strings - Key job responsibilities and duties"],
  "benefits": ["array of strings - Employee benefits, perks, compensation details"],
  "confidence": number - Your confidence that this is a job posting and the extraction is accurate, between 0.0 and 1.0
}

IMPORTANT RULES:
1. Return ONLY valid JSON, no additional text or explanation
2. If information is not found, use empty string "" for strings, empty array [] for arrays, and 0 for numbers
3. For salary: extract any monetary values mentioned (annual, hourly, etc.)
4. Keep descriptions concise but informative
5. Extract responsibilities and requirements separately
6. Include the provided URL as job_url
7. If the content doesn't appear to be a job posting, return a JSON with empty values, structure intact, and a low confidence

JOB POSTING CONTENT:
%s`, url, content)
}

func (cp *ClaudeProvider) parseResponse(response *anthropic.Message, url string) (*models.Job, error) {
	if len(response.Content) == 0 {
		return nil, fmt.Errorf("empty response from Claude")
	}

	var responseText string
	for _, content := range response.Content {
		textContent := content.AsText()
		responseText = textContent.Text
		break
	}
	if responseText == "" {
		return nil, fmt.Errorf("no text content in Claude response")
	}

	// Strip markdown fences if the model wrapped the JSON.
	responseText = strings.TrimSpace(responseText)
	if strings.HasPrefix(responseText, "```json") {
		responseText = strings.TrimPrefix(responseText, "```json")
		responseText = strings.TrimSuffix(responseText, "```")
		responseText = strings.TrimSpace(responseText)
	} else if strings.HasPrefix(responseText, "```") {
		responseText = strings.TrimPrefix(responseText, "```")
		responseText = strings.TrimSuffix(responseText, "```")
		responseText = strings.TrimSpace(responseText)
	}

	var job models.Job
	if err := json.Unmarshal([]byte(responseText), &job); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response from Claude: %w", err)
	}

	if job.JobURL == "" {
		job.JobURL = url
	}
	if job.Title == "" {
		job.Title = "Title Not Found"
	}
	if job.CompanyName == "" {
		job.CompanyName = "Company Not Found"
	}

	return &job, nil
}

// IsHealthy checks the API key and probes the API with a minimal request.
func (cp *ClaudeProvider) IsHealthy(ctx context.Context) error {
	if cp.config.LLM.APIKey == "" {
		return fmt.Errorf("claude API key not configured, set LLM_API_KEY environment variable")
	}

	_, err := cp.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(cp.config.LLM.Model),
		MaxTokens: 16,
		Messages: []anthropic.MessageParam{{
			Content: []anthropic.ContentBlockParamUnion{{
				OfText: &anthropic.TextBlockParam{Text: "Hello"},
			}},
			Role: anthropic.MessageParamRoleUser,
		}},
	})
	if err != nil {
		return fmt.Errorf("claude API health check failed: %w", err)
	}

	return nil
}

// Name returns the provider identifier.
func (cp *ClaudeProvider) Name() string {
	return "claude"
}
