package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// ReplyFunc produces the model answer for the last user prompt of a request.
type ReplyFunc func(prompt string) string

// Echo returns a ReplyFunc that always answers text.
func Echo(text string) ReplyFunc {
	return func(string) string { return text }
}

// Recorded is a captured provider request.
type Recorded struct {
	Method string
	Path   string
	Header http.Header
	Body   map[string]any
}

// FakeProvider is an httptest server emulating one vendor API.
type FakeProvider struct {
	*httptest.Server

	mu         sync.Mutex
	requests   []Recorded
	failStatus int
	failMsg    string

	reply   ReplyFunc
	prompt  func(body map[string]any) string
	success func(text string) any
	failure func(status int, msg string) any
}

func newFakeProvider(t testing.TB, f *FakeProvider) *FakeProvider {
	t.Helper()

	f.Server = httptest.NewServer(http.HandlerFunc(f.handle))
	t.Cleanup(f.Close)

	return f
}

func (f *FakeProvider) handle(w http.ResponseWriter, r *http.Request) {
	raw, _ := io.ReadAll(r.Body)

	body := map[string]any{}
	_ = json.Unmarshal(raw, &body)

	f.mu.Lock()
	f.requests = append(f.requests, Recorded{
		Method: r.Method,
		Path:   r.URL.Path,
		Header: r.Header.Clone(),
		Body:   body,
	})
	status, msg := f.failStatus, f.failMsg
	success := f.success
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")

	if status != 0 {
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(f.failure(status, msg))
		return
	}

	_ = json.NewEncoder(w).Encode(success(f.reply(f.prompt(body))))
}

// FailWith makes every following request fail with the given HTTP status and
// error message.
func (f *FakeProvider) FailWith(status int, msg string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.failStatus, f.failMsg = status, msg
}

// RespondWith replaces the success payload of every following request with
// payload, encoded as JSON verbatim.
func (f *FakeProvider) RespondWith(payload any) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.success = func(string) any { return payload }
}

// Requests returns a copy of all captured requests.
func (f *FakeProvider) Requests() []Recorded {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]Recorded, len(f.requests))
	copy(out, f.requests)

	return out
}

// LastRequest returns the most recent request. It fails the test when none was received.
func (f *FakeProvider) LastRequest(t testing.TB) Recorded {
	t.Helper()

	reqs := f.Requests()
	if len(reqs) == 0 {
		t.Fatalf("no request received by %s", f.URL)
	}

	return reqs[len(reqs)-1]
}

// NewOpenAIServer emulates POST /chat/completions.
func NewOpenAIServer(t testing.TB, reply ReplyFunc) *FakeProvider {
	return newFakeProvider(t, &FakeProvider{
		reply: reply,
		prompt: func(body map[string]any) string {
			msgs, _ := body["messages"].([]any)
			if len(msgs) == 0 {
				return ""
			}
			last, _ := msgs[len(msgs)-1].(map[string]any)
			s, _ := last["content"].(string)
			return s
		},
		success: func(text string) any {
			return map[string]any{
				"id":      "chatcmpl-test",
				"object":  "chat.completion",
				"created": 1,
				"model":   "test-model",
				"choices": []any{map[string]any{
					"index":         0,
					"finish_reason": "stop",
					"message":       map[string]any{"role": "assistant", "content": text},
				}},
				"usage": map[string]any{"prompt_tokens": 3, "completion_tokens": 2, "total_tokens": 5},
			}
		},
		failure: func(_ int, msg string) any {
			return map[string]any{"error": map[string]any{
				"message": msg,
				"type":    "invalid_request_error",
			}}
		},
	})
}

// NewAnthropicServer emulates POST /v1/messages.
func NewAnthropicServer(t testing.TB, reply ReplyFunc) *FakeProvider {
	return newFakeProvider(t, &FakeProvider{
		reply: reply,
		prompt: func(body map[string]any) string {
			msgs, _ := body["messages"].([]any)
			if len(msgs) == 0 {
				return ""
			}
			last, _ := msgs[len(msgs)-1].(map[string]any)
			switch content := last["content"].(type) {
			case string:
				return content
			case []any:
				if len(content) == 0 {
					return ""
				}
				block, _ := content[0].(map[string]any)
				s, _ := block["text"].(string)
				return s
			}
			return ""
		},
		success: func(text string) any {
			return map[string]any{
				"id":          "msg_test",
				"type":        "message",
				"role":        "assistant",
				"model":       "test-model",
				"content":     []any{map[string]any{"type": "text", "text": text}},
				"stop_reason": "end_turn",
				"usage":       map[string]any{"input_tokens": 3, "output_tokens": 2},
			}
		},
		failure: func(_ int, msg string) any {
			return map[string]any{
				"type":  "error",
				"error": map[string]any{"type": "authentication_error", "message": msg},
			}
		},
	})
}

// NewGeminiServer emulates POST /{version}/models/{model}:generateContent.
func NewGeminiServer(t testing.TB, reply ReplyFunc) *FakeProvider {
	return newFakeProvider(t, &FakeProvider{
		reply: reply,
		prompt: func(body map[string]any) string {
			contents, _ := body["contents"].([]any)
			if len(contents) == 0 {
				return ""
			}
			last, _ := contents[len(contents)-1].(map[string]any)
			parts, _ := last["parts"].([]any)
			if len(parts) == 0 {
				return ""
			}
			part, _ := parts[0].(map[string]any)
			s, _ := part["text"].(string)
			return s
		},
		success: func(text string) any {
			return map[string]any{
				"candidates": []any{map[string]any{
					"content": map[string]any{
						"role":  "model",
						"parts": []any{map[string]any{"text": text}},
					},
					"finishReason": "STOP",
				}},
				"usageMetadata": map[string]any{
					"promptTokenCount":     3,
					"candidatesTokenCount": 2,
					"totalTokenCount":      5,
				},
			}
		},
		failure: func(status int, msg string) any {
			return map[string]any{"error": map[string]any{
				"code":    status,
				"message": msg,
				"status":  "UNAUTHENTICATED",
			}}
		},
	})
}
