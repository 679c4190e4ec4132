package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

type Config struct {
	BaseURL string
	Timeout time.Duration

	// GenerateLength, when positive, is sent as the length query parameter
	// on generation requests. Zero means the service default.
	GenerateLength int
}

type RawResponse struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
	Duration   time.Duration
}

// Client talks to the scoring service (POST /api/check, GET /api/generate).
type Client struct {
	baseURL   string
	genLength int
	client    *http.Client
}

func NewClient(cfg Config) *Client {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = "http://127.0.0.1:5000"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:   baseURL,
		genLength: cfg.GenerateLength,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

func (c *Client) Check(ctx context.Context, password string) (*CheckResponse, *RawResponse, error) {
	raw, err := c.rawRequest(ctx, http.MethodPost, "/api/check", CheckRequest{Password: password})
	if err != nil {
		return nil, raw, err
	}

	var resp CheckResponse
	if err := json.Unmarshal(raw.Body, &resp); err != nil {
		return nil, raw, fmt.Errorf("decode check response: %w", err)
	}
	return &resp, raw, nil
}

func (c *Client) Generate(ctx context.Context) (*GenerateResponse, *RawResponse, error) {
	path := "/api/generate"
	if c.genLength > 0 {
		path = fmt.Sprintf("/api/generate?length=%d", c.genLength)
	}
	raw, err := c.rawRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, raw, err
	}

	var resp GenerateResponse
	if err := json.Unmarshal(raw.Body, &resp); err != nil {
		return nil, raw, fmt.Errorf("decode generate response: %w", err)
	}
	return &resp, raw, nil
}

func (c *Client) rawRequest(ctx context.Context, method, path string, body any) (*RawResponse, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	request, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	response, err := c.client.Do(request)
	if err != nil {
		return nil, fmt.Errorf("http request failed: %w", err)
	}
	defer response.Body.Close()

	bodyBytes, readErr := io.ReadAll(response.Body)
	raw := &RawResponse{
		StatusCode: response.StatusCode,
		Headers:    response.Header.Clone(),
		Body:       bodyBytes,
		Duration:   time.Since(start),
	}
	if readErr != nil {
		return raw, fmt.Errorf("read response body: %w", readErr)
	}

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		message, ok := ParseErrorMessage(bodyBytes)
		if !ok {
			return raw, fmt.Errorf("api status %d: %s", response.StatusCode, string(bodyBytes))
		}
		return raw, &APIError{
			StatusCode: response.StatusCode,
			Message:    message,
			Body:       bodyBytes,
		}
	}
	return raw, nil
}

func IsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
