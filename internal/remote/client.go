// Package remote talks to an external generation service over HTTP.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"sitegen_server/internal/pipeline"
	"sitegen_server/internal/types"
	"sitegen_server/internal/utils"
)

const (
	DefaultTimeout    = 30 * time.Second
	DefaultMaxRetries = 2
	DefaultRetryDelay = time.Second
	DefaultSchema     = "site-configuration/v1"

	maxErrorBody = 4 << 10
)

// Error is a failed call to the generation service.
type Error struct {
	StatusCode int
	Message    string
	transient  bool
}

func (e *Error) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("remote generation failed (status %d): %s", e.StatusCode, e.Message)
	}
	return "remote generation failed: " + e.Message
}

// Transient reports whether retrying the call could succeed.
func (e *Error) Transient() bool { return e.transient }

// Config holds the client settings.
type Config struct {
	Endpoint   string
	APIKey     string
	Schema     string
	Timeout    time.Duration
	MaxRetries int
	RetryDelay time.Duration
}

// Client is a pipeline.Generator backed by the remote service.
type Client struct {
	cfg        Config
	httpClient *http.Client
}

// NewClient creates a client. Zero-valued settings take the package defaults.
func NewClient(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = DefaultRetryDelay
	}
	if cfg.Schema == "" {
		cfg.Schema = DefaultSchema
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

func (c *Client) Name() string { return "remote" }

type generateOptions struct {
	MaxFeatures  int    `json:"maxFeatures,omitempty"`
	BusinessType string `json:"businessType,omitempty"`
}

type generateRequest struct {
	Prompt  string          `json:"prompt"`
	Schema  string          `json:"schema"`
	Options generateOptions `json:"options"`
}

type generateResponse struct {
	Success *bool           `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

// Generate posts the prompt and returns the service's configuration. Transient
// failures are retried up to MaxRetries times.
func (c *Client) Generate(ctx context.Context, req pipeline.Request) (*types.SiteConfiguration, error) {
	if c.cfg.Endpoint == "" {
		return nil, &Error{Message: "endpoint is not configured"}
	}
	body, err := json.Marshal(generateRequest{
		Prompt: req.Prompt,
		Schema: c.cfg.Schema,
		Options: generateOptions{
			MaxFeatures:  req.MaxFeatures,
			BusinessType: string(req.BusinessType),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal generation request: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt <= c.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			log.Printf("WARN: remote generation attempt %d failed: %v. Retrying in %s", attempt, lastErr, c.cfg.RetryDelay)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(c.cfg.RetryDelay):
			}
		}
		cfg, err := c.do(ctx, body)
		if err == nil {
			return cfg, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if !utils.ShouldRetry(err) {
			break
		}
	}
	return nil, lastErr
}

func (c *Client) do(ctx context.Context, body []byte) (*types.SiteConfiguration, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, &Error{Message: fmt.Sprintf("build request: %v", err)}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	if c.cfg.APIKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &Error{Message: err.Error(), transient: true}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &Error{
			StatusCode: resp.StatusCode,
			Message:    utils.Excerpt(string(bytes.TrimSpace(msg)), 200),
			transient:  utils.RetryableStatus(resp.StatusCode),
		}
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{StatusCode: resp.StatusCode, Message: fmt.Sprintf("read body: %v", err), transient: true}
	}
	cfg, err := decodeResponse(raw)
	if err != nil {
		return nil, &Error{StatusCode: resp.StatusCode, Message: err.Error()}
	}
	return cfg, nil
}

// decodeResponse accepts the {success, data, error} envelope or a bare
// configuration object.
func decodeResponse(raw []byte) (*types.SiteConfiguration, error) {
	var env generateResponse
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("malformed response: %w", err)
	}
	if env.Success != nil {
		if !*env.Success {
			if env.Error == "" {
				env.Error = "service reported failure"
			}
			return nil, errors.New(env.Error)
		}
		raw = env.Data
	}

	var cfg types.SiteConfiguration
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("malformed configuration: %w", err)
	}
	if cfg.Name == "" && cfg.Pages.Home == nil {
		return nil, errors.New("response did not contain a configuration")
	}
	return &cfg, nil
}
