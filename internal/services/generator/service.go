// Package generator provides a client for the external image generation
// API. This package centralizes all generation endpoint interactions for
// the application; it is the only component that performs network I/O.
package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/imaginai/internal/common"
	"github.com/ternarybob/imaginai/internal/models"
	"golang.org/x/time/rate"
)

// ErrEmptyPrompt is returned when the prompt is empty after trimming.
// No network call is made in that case.
var ErrEmptyPrompt = errors.New("prompt must not be empty")

// GenerationError represents a failed generation call: non-2xx status,
// malformed JSON, or a response without any recognized image payload.
// It carries a human-readable message and nothing more; no retry is
// attempted.
type GenerationError struct {
	StatusCode int
	Message    string
}

func (e *GenerationError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("image generation failed: %s (status: %d)", e.Message, e.StatusCode)
	}
	return fmt.Sprintf("image generation failed: %s", e.Message)
}

// Client is the external image generation API client.
type Client struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
	logger     arbor.ILogger
	limiter    *rate.Limiter
	extractors []Extractor
}

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithLogger sets a logger.
func WithLogger(logger arbor.ILogger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRateLimit sets the minimum interval between generation requests.
func WithRateLimit(interval time.Duration) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Every(interval), 1)
	}
}

// WithExtractors replaces the response extraction strategies.
func WithExtractors(extractors []Extractor) ClientOption {
	return func(c *Client) {
		c.extractors = extractors
	}
}

// NewClient creates a new generation client from configuration. The bearer
// credential is resolved once at startup and immutable thereafter.
func NewClient(config *common.GeneratorConfig, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: config.BaseURL,
		apiKey:  config.APIKey,
		model:   config.Model,
		httpClient: &http.Client{
			Timeout: config.GetTimeout(),
		},
		limiter:    rate.NewLimiter(rate.Every(config.GetRateLimit()), 1),
		extractors: DefaultExtractors(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// generateRequest is the JSON body sent to the generation endpoint.
type generateRequest struct {
	Prompt string `json:"prompt"`
	Model  string `json:"model"`
}

// Generate sends the prompt to the external endpoint and returns a
// displayable image reference. Cancelling ctx aborts the in-flight
// request; there is no retry and no caching.
func (c *Client) Generate(ctx context.Context, prompt string) (*models.GeneratedImage, error) {
	trimmed := strings.TrimSpace(prompt)
	if trimmed == "" {
		return nil, ErrEmptyPrompt
	}

	// Wait for rate limiter
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait cancelled: %w", err)
	}

	payload, err := json.Marshal(generateRequest{Prompt: trimmed, Model: c.model})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	if c.logger != nil {
		c.logger.Debug().
			Str("url", c.baseURL).
			Str("model", c.model).
			Msg("Generation API request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &GenerationError{Message: err.Error()}
	}
	defer resp.Body.Close()

	// Non-2xx is failure regardless of body content
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &GenerationError{
			StatusCode: resp.StatusCode,
			Message:    "generation endpoint returned an error status",
		}
	}

	var body map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, &GenerationError{Message: "generation endpoint returned malformed JSON"}
	}

	// Try each extraction strategy in priority order; first match wins
	for _, extract := range c.extractors {
		if ref := extract(body); ref != "" {
			return &models.GeneratedImage{URL: ref, Prompt: trimmed}, nil
		}
	}

	return nil, &GenerationError{Message: "no image payload found in response"}
}
