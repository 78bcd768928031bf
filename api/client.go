// Package api implements the ThinkBot backend HTTP client.
//
// The backend exposes a small JSON API:
//
//	POST {base}/chat            one chat turn
//	GET  {base}/history         conversation summaries, newest first
//	GET  {base}/chats/{id}      full message list for one conversation
//	POST {base}/history/delete  batched deletion
//
// Server-reported chat failures (error status, bad body, application
// error marker) are returned as a Failed ChatResult rather than a Go
// error so the caller can render them as an assistant turn; Go errors
// are reserved for transport failures where no usable response exists.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client talks to one ThinkBot backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for the given base URL. A zero timeout
// leaves the transport's default behavior in place.
func NewClient(baseURL string, timeout time.Duration) (*Client, error) {
	baseURL = strings.TrimRight(baseURL, "/")
	if baseURL == "" {
		return nil, fmt.Errorf("API base URL is required")
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("invalid API base URL %q: %w", baseURL, err)
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// BaseURL returns the configured backend base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Chat sends one turn. chatID is empty for the first turn of a new
// conversation; the backend then assigns an id and returns it.
func (c *Client) Chat(ctx context.Context, question string, chatID string) (*ChatResult, error) {
	reqBody := chatRequest{Question: question}
	if chatID != "" {
		id := ID(chatID)
		reqBody.ChatID = &id
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to encode chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("chat request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read chat response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &ChatResult{Failed: true, Answer: errorMessageFromBody(body, resp.StatusCode)}, nil
	}

	var data chatResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return &ChatResult{
			Failed: true,
			Answer: "Received an invalid response from the server. Please try again.",
		}, nil
	}

	// Backend-specific error format: {error, answer} with no chat_id.
	if data.Error != "" {
		return &ChatResult{Failed: true, Answer: data.Answer}, nil
	}

	return &ChatResult{
		ChatID:           string(data.ChatID),
		Answer:           data.Answer,
		Sources:          data.Sources,
		SuggestedPrompts: data.SuggestedPrompts,
	}, nil
}

// errorMessageFromBody extracts a human-readable message from an error
// status body: prefer the backend's friendly "answer", then its
// "error", then a generic status line.
func errorMessageFromBody(body []byte, status int) string {
	var data chatResponse
	if err := json.Unmarshal(body, &data); err == nil {
		if data.Answer != "" {
			return data.Answer
		}
		if data.Error != "" {
			return fmt.Sprintf("Error: %s", data.Error)
		}
		return fmt.Sprintf("Server error (%d)", status)
	}
	return fmt.Sprintf("Server error (%d): Please check your configuration and try again.", status)
}

// History fetches the conversation summary list, newest first.
func (c *Client) History(ctx context.Context) ([]HistorySummary, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/history", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build history request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("history request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("failed to fetch chat history: server returned %d", resp.StatusCode)
	}

	var history []HistorySummary
	if err := json.NewDecoder(resp.Body).Decode(&history); err != nil {
		return nil, fmt.Errorf("failed to decode chat history: %w", err)
	}

	return history, nil
}

// Messages fetches the full message list for one conversation.
func (c *Client) Messages(ctx context.Context, chatID string) ([]Message, error) {
	if chatID == "" {
		return nil, fmt.Errorf("chat id is required")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/chats/"+url.PathEscape(chatID), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build messages request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("messages request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("failed to load chat %s: server returned %d", chatID, resp.StatusCode)
	}

	var messages []Message
	if err := json.NewDecoder(resp.Body).Decode(&messages); err != nil {
		return nil, fmt.Errorf("failed to decode chat messages: %w", err)
	}

	return messages, nil
}

// DeleteChats deletes the given conversations in one batched call.
// The operation is all-or-nothing from the client's perspective: any
// non-2xx response means nothing may be assumed deleted.
func (c *Client) DeleteChats(ctx context.Context, chatIDs []string) error {
	if len(chatIDs) == 0 {
		return fmt.Errorf("no chat ids to delete")
	}

	ids := make([]ID, len(chatIDs))
	for i, id := range chatIDs {
		ids[i] = ID(id)
	}

	payload, err := json.Marshal(struct {
		IDs []ID `json:"ids"`
	}{IDs: ids})
	if err != nil {
		return fmt.Errorf("failed to encode delete request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/history/delete", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build delete request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("delete request failed: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("failed to delete chats on the server: status %d", resp.StatusCode)
	}

	return nil
}
