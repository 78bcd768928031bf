package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(server.URL, 0)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return client, server
}

func TestNewClientValidation(t *testing.T) {
	if _, err := NewClient("", 0); err == nil {
		t.Error("empty base URL should be rejected")
	}
	client, err := NewClient("http://localhost:8000/", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.BaseURL() != "http://localhost:8000" {
		t.Errorf("trailing slash not trimmed: %q", client.BaseURL())
	}
}

func TestChatSuccess(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat" || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}

		var req map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decoding request: %v", err)
		}
		if req["question"] != "What is R?" {
			t.Errorf("question = %v", req["question"])
		}
		if req["chat_id"] != nil {
			t.Errorf("first turn should send chat_id null, got %v", req["chat_id"])
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"chat_id": 7,
			"answer": "R is a language for statistics.",
			"sources": [{"source_module": "Module 1", "timestamp": "10:32"}],
			"suggested_prompts": ["Show me an example"]
		}`))
	})

	result, err := client.Chat(context.Background(), "What is R?", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Failed {
		t.Fatalf("unexpected failure: %q", result.Answer)
	}
	if result.ChatID != "7" {
		t.Errorf("numeric chat id should decode as %q, got %q", "7", result.ChatID)
	}
	if len(result.Sources) != 1 || result.Sources[0].SourceModule != "Module 1" {
		t.Errorf("sources = %+v", result.Sources)
	}
	if len(result.SuggestedPrompts) != 1 {
		t.Errorf("prompts = %v", result.SuggestedPrompts)
	}
}

func TestChatSendsExistingChatID(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decoding request: %v", err)
		}
		// JSON numbers decode as float64
		if id, ok := req["chat_id"].(float64); !ok || id != 7 {
			t.Errorf("chat_id should round-trip as number 7, got %v", req["chat_id"])
		}
		w.Write([]byte(`{"chat_id": 7, "answer": "more"}`))
	})

	result, err := client.Chat(context.Background(), "Tell me more", "7")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.ChatID != "7" {
		t.Errorf("chat id = %q", result.ChatID)
	}
}

func TestChatErrorStatusPrefersAnswer(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error": "rate_limited", "answer": "I'm a bit busy right now. Please try again shortly."}`))
	})

	result, err := client.Chat(context.Background(), "hi", "")
	if err != nil {
		t.Fatalf("status errors should not be Go errors: %v", err)
	}
	if !result.Failed {
		t.Fatal("result should be marked failed")
	}
	if result.Answer != "I'm a bit busy right now. Please try again shortly." {
		t.Errorf("answer = %q", result.Answer)
	}
}

func TestChatErrorStatusWithoutBody(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`not json`))
	})

	result, err := client.Chat(context.Background(), "hi", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Failed {
		t.Fatal("result should be marked failed")
	}
	if result.Answer != "Server error (500): Please check your configuration and try again." {
		t.Errorf("answer = %q", result.Answer)
	}
}

func TestChatMalformedSuccessBody(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"chat_id": `))
	})

	result, err := client.Chat(context.Background(), "hi", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Failed {
		t.Fatal("undecodable body should be a failed result")
	}
	if result.Answer != "Received an invalid response from the server. Please try again." {
		t.Errorf("answer = %q", result.Answer)
	}
}

func TestChatApplicationErrorMarker(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error": "llm_unavailable", "answer": "Sorry, something went wrong while answering."}`))
	})

	result, err := client.Chat(context.Background(), "hi", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Failed {
		t.Fatal("application error marker should fail the result")
	}
	if result.Answer != "Sorry, something went wrong while answering." {
		t.Errorf("answer = %q", result.Answer)
	}
}

func TestChatTransportError(t *testing.T) {
	client, server := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})
	server.Close()

	if _, err := client.Chat(context.Background(), "hi", ""); err == nil {
		t.Fatal("connection failure should be a Go error")
	}
}

func TestHistory(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/history" {
			t.Errorf("path = %s", r.URL.Path)
		}
		w.Write([]byte(`[
			{"id": 2, "title": "What is a p-value?", "timestamp": "2025-03-02T09:30:00"},
			{"id": 1, "title": "ggplot2 basics", "timestamp": "2025-03-01T18:12:45.123456"}
		]`))
	})

	history, err := client.History(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("got %d entries", len(history))
	}
	if history[0].ID != "2" || history[0].Title != "What is a p-value?" {
		t.Errorf("entry 0 = %+v", history[0])
	}
	// Python naive isoformat with fractional seconds must parse
	if history[1].Timestamp.IsZero() {
		t.Error("timestamp should be parsed")
	}
}

func TestHistoryErrorStatus(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	if _, err := client.History(context.Background()); err == nil {
		t.Fatal("error status should surface as a Go error")
	}
}

func TestMessages(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chats/5" {
			t.Errorf("path = %s", r.URL.Path)
		}
		w.Write([]byte(`[
			{"type": "user", "text": "What is R?", "timestamp": "2025-03-01T18:12:45"},
			{"type": "ai", "text": "R is a language.", "sources": [{"source": "intro.pdf", "page": 2}]}
		]`))
	})

	messages, err := client.Messages(context.Background(), "5")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(messages) != 2 {
		t.Fatalf("got %d messages", len(messages))
	}
	if messages[0].Type != "user" || messages[1].Type != "ai" {
		t.Errorf("types = %q %q", messages[0].Type, messages[1].Type)
	}
	if len(messages[1].Sources) != 1 || *messages[1].Sources[0].Page != 2 {
		t.Errorf("sources = %+v", messages[1].Sources)
	}
}

func TestMessagesRequiresID(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})
	if _, err := client.Messages(context.Background(), ""); err == nil {
		t.Fatal("empty chat id should be rejected")
	}
}

func TestDeleteChats(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/history/delete" || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var req struct {
			IDs []json.Number `json:"ids"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decoding request: %v", err)
		}
		if len(req.IDs) != 2 || req.IDs[0].String() != "1" || req.IDs[1].String() != "3" {
			t.Errorf("ids = %v", req.IDs)
		}
		w.Write([]byte(`{"deleted": 2}`))
	})

	if err := client.DeleteChats(context.Background(), []string{"1", "3"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDeleteChatsErrorStatus(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	if err := client.DeleteChats(context.Background(), []string{"1"}); err == nil {
		t.Fatal("error status should surface as a Go error")
	}
}

func TestIDRoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		decoded ID
		encoded string
	}{
		{name: "number", input: `7`, decoded: "7", encoded: `7`},
		{name: "string", input: `"abc"`, decoded: "abc", encoded: `"abc"`},
		{name: "null", input: `null`, decoded: "", encoded: `null`},
		{name: "negative number", input: `-3`, decoded: "-3", encoded: `-3`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var id ID
			if err := json.Unmarshal([]byte(tt.input), &id); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if id != tt.decoded {
				t.Errorf("decoded %q, want %q", id, tt.decoded)
			}
			out, err := json.Marshal(id)
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			if string(out) != tt.encoded {
				t.Errorf("encoded %s, want %s", out, tt.encoded)
			}
		})
	}
}
