// Package stylist proxies chat turns to the stylist assistant service.
package stylist

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"julie/internal/observability"
)

// Message is one prior turn in a chat conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Message     string    `json:"message"`
	UserID      uint      `json:"userId"`
	ChatHistory []Message `json:"chatHistory"`
}

type chatResponse struct {
	Response string `json:"response"`
}

// Client calls the stylist service's /chat endpoint.
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

// Chat forwards one user message plus history and returns the assistant reply.
func (c *Client) Chat(ctx context.Context, userID uint, message string, history []Message) (reply string, err error) {
	start := time.Now()
	defer func() { observability.ObserveUpstream("stylist", start, err) }()

	if history == nil {
		history = []Message{}
	}
	payload, err := json.Marshal(chatRequest{
		Message:     message,
		UserID:      userID,
		ChatHistory: history,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("stylist service request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read stylist service response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("stylist service returned status %d: %s", resp.StatusCode, string(data))
	}

	var out chatResponse
	if err := json.Unmarshal(data, &out); err != nil {
		return "", fmt.Errorf("failed to decode stylist service response: %w", err)
	}
	return out.Response, nil
}
