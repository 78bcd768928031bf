package api

import (
	"encoding/json"
	"fmt"
	"time"
)

// ID is the backend's opaque conversation identifier. The current
// backend issues integers, older deployments issued strings; decode
// either form and re-emit whatever shape was received so the server
// always gets its own identifiers back.
type ID string

func (id *ID) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid chat id %q: %w", string(data), err)
	}
	*id = ID(n.String())
	return nil
}

func (id ID) MarshalJSON() ([]byte, error) {
	if id == "" {
		return []byte("null"), nil
	}
	if isNumeric(string(id)) {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if r == '-' && i == 0 && len(s) > 1 {
			continue
		}
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// chatRequest is the POST /chat body. A nil ChatID marshals to null,
// which tells the backend to open a new conversation.
type chatRequest struct {
	Question string `json:"question"`
	ChatID   *ID    `json:"chat_id"`
}

// chatResponse covers both the success and the application-error shape
// of POST /chat ({error, answer} with no chat_id).
type chatResponse struct {
	ChatID           ID       `json:"chat_id"`
	Answer           string   `json:"answer"`
	Error            string   `json:"error"`
	Sources          []Source `json:"sources"`
	SuggestedPrompts []string `json:"suggested_prompts"`
}

// Source is one retrieval citation attached to an assistant answer.
// The backend emits raw document metadata: course modules carry
// source_module/timestamp, PDF documents carry source/page.
type Source struct {
	SourceModule string `json:"source_module,omitempty"`
	Timestamp    string `json:"timestamp,omitempty"`
	Source       string `json:"source,omitempty"`
	Page         *int   `json:"page,omitempty"`
}

// ChatResult is the outcome of one turn. Failed marks server-reported
// failures (HTTP error status, undecodable body, or the backend's
// {error, answer} marker); Answer then carries the human-readable
// message and every other field is zero.
type ChatResult struct {
	ChatID           string
	Answer           string
	Sources          []Source
	SuggestedPrompts []string
	Failed           bool
}

// HistorySummary is the server's lightweight view of one past
// conversation: metadata only, no message bodies.
type HistorySummary struct {
	ID        ID        `json:"id"`
	Title     string    `json:"title"`
	Timestamp Timestamp `json:"timestamp"`
}

// Message is one stored turn as returned by GET /chats/{id}. The
// backend uses "user"/"ai" for the type column.
type Message struct {
	ID        ID        `json:"id,omitempty"`
	Type      string    `json:"type"`
	Text      string    `json:"text"`
	Sources   []Source  `json:"sources,omitempty"`
	Timestamp Timestamp `json:"timestamp,omitempty"`
}

// Timestamp decodes the backend's ISO-8601 strings, which come in
// both full RFC 3339 form and Python's naive isoformat (no zone).
type Timestamp struct {
	time.Time
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		t.Time = time.Time{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		t.Time = time.Time{}
		return nil
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05.999999", "2006-01-02T15:04:05"} {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("unrecognized timestamp %q", s)
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.Time.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Time.Format(time.RFC3339))
}
