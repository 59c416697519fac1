// Package api implements the HTTP client used by the CLI to talk to the
// punchclock server.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/avasiliev/punchclock/pkg/api"
)

// Client is an HTTP client for the punchclock API
type Client struct {
	httpClient *http.Client
	baseURL    string
	authToken  string
}

// NewClient creates a new API client
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// SetAuthToken sets the bearer token sent with subsequent requests
func (c *Client) SetAuthToken(token string) {
	c.authToken = token
}

// Signup registers a new user and returns the issued token
func (c *Client) Signup(ctx context.Context, req api.SignupRequest) (*api.AuthResponse, error) {
	var resp api.AuthResponse
	if err := c.doRequest(ctx, http.MethodPost, "/auth/signup", req, &resp); err != nil {
		return nil, fmt.Errorf("signup request failed: %w", err)
	}
	return &resp, nil
}

// Login authenticates and returns the issued token
func (c *Client) Login(ctx context.Context, req api.LoginRequest) (*api.AuthResponse, error) {
	var resp api.AuthResponse
	if err := c.doRequest(ctx, http.MethodPost, "/auth/login", req, &resp); err != nil {
		return nil, fmt.Errorf("login request failed: %w", err)
	}
	return &resp, nil
}

// Verify checks the stored token and returns its claims
func (c *Client) Verify(ctx context.Context) (*api.VerifyResponse, error) {
	var resp api.VerifyResponse
	if err := c.doRequest(ctx, http.MethodGet, "/auth/verify", nil, &resp); err != nil {
		return nil, fmt.Errorf("verify request failed: %w", err)
	}
	return &resp, nil
}

// ClockIn opens a punch entry
func (c *Client) ClockIn(ctx context.Context) (*api.PunchResponse, error) {
	var resp api.PunchResponse
	if err := c.doRequest(ctx, http.MethodPost, "/punchclock/in", nil, &resp); err != nil {
		return nil, fmt.Errorf("clock-in request failed: %w", err)
	}
	return &resp, nil
}

// ClockOut closes the open punch entry
func (c *Client) ClockOut(ctx context.Context) (*api.PunchResponse, error) {
	var resp api.PunchResponse
	if err := c.doRequest(ctx, http.MethodPost, "/punchclock/out", nil, &resp); err != nil {
		return nil, fmt.Errorf("clock-out request failed: %w", err)
	}
	return &resp, nil
}

// ListPunches lists the caller's punch entries
func (c *Client) ListPunches(ctx context.Context) (*api.PunchListResponse, error) {
	var resp api.PunchListResponse
	if err := c.doRequest(ctx, http.MethodGet, "/punchclock", nil, &resp); err != nil {
		return nil, fmt.Errorf("list request failed: %w", err)
	}
	return &resp, nil
}

// doRequest performs one HTTP round-trip with JSON bodies
func (c *Client) doRequest(ctx context.Context, method, path string, body, result interface{}) error {
	url := c.baseURL + path

	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.authToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp api.ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Message != "" {
			return fmt.Errorf("server error (%d): %s", resp.StatusCode, errResp.Message)
		}
		return fmt.Errorf("request failed with status %d: %s", resp.StatusCode, string(respBody))
	}

	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}
