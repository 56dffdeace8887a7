// Package colour wraps the seasonal colour-analysis service.
package colour

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"julie/internal/observability"
)

// Result is the analysis verdict returned by the colour service.
type Result struct {
	Season    string   `json:"season"`
	Undertone string   `json:"undertone"`
	Palette   []string `json:"palette"`
}

// Client calls the colour-analysis service's /analyze endpoint.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// Analyze sends the profile fields (as a JSON form value) together with the
// user's photo and decodes the service's verdict.
func (c *Client) Analyze(ctx context.Context, profile any, photoName string, photo io.Reader) (result *Result, err error) {
	start := time.Now()
	defer func() { observability.ObserveUpstream("colour", start, err) }()

	profileJSON, err := json.Marshal(profile)
	if err != nil {
		return nil, fmt.Errorf("failed to encode profile: %w", err)
	}

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	if err := w.WriteField("profile", string(profileJSON)); err != nil {
		return nil, fmt.Errorf("failed to write profile field: %w", err)
	}
	part, err := w.CreateFormFile("photo", photoName)
	if err != nil {
		return nil, fmt.Errorf("failed to build multipart body: %w", err)
	}
	if _, err := io.Copy(part, photo); err != nil {
		return nil, fmt.Errorf("failed to copy photo into request: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/analyze", &body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("colour service request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read colour service response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("colour service returned status %d: %s", resp.StatusCode, string(data))
	}

	var out Result
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("failed to decode colour service response: %w", err)
	}
	return &out, nil
}
