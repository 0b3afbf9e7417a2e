package planner

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

const testCredential = "sk-test-secret-123"

// mockHTTPClient is a mock HTTP client for testing.
type mockHTTPClient struct {
	DoFunc func(req *http.Request) (*http.Response, error)
}

func (m *mockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	return m.DoFunc(req)
}

func legacyBody(content string) string {
	body, _ := json.Marshal(map[string]any{
		"output": map[string]any{
			"choices": []map[string]any{
				{"finish_reason": "stop", "message": map[string]any{"role": "assistant", "content": content}},
			},
		},
		"usage":      map[string]any{"input_tokens": 10, "output_tokens": 20},
		"request_id": "req-1",
	})
	return string(body)
}

func compatibleBody(content string) string {
	body, _ := json.Marshal(map[string]any{
		"id": "chatcmpl-1",
		"choices": []map[string]any{
			{"index": 0, "message": map[string]any{"role": "assistant", "content": content}},
		},
	})
	return string(body)
}

func TestDashScopeLegacyShape(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_, _ = io.WriteString(w, legacyBody(`{"title":"ok"}`))
	}))
	defer srv.Close()

	c := NewDashScopeClient(DashScopeConfig{BaseURL: srv.URL}, nil)
	text, err := c.Generate(context.Background(), "plan my trip", testCredential)
	require.NoError(t, err)

	assert.Equal(t, `{"title":"ok"}`, text)
	assert.Equal(t, legacyPath, gotPath)
	assert.Equal(t, "Bearer "+testCredential, gotAuth)
	assert.Equal(t, DefaultModel, gotBody["model"])
	assert.Equal(t, map[string]any{"result_format": "message"}, gotBody["parameters"])

	input := gotBody["input"].(map[string]any)
	messages := input["messages"].([]any)
	require.Len(t, messages, 2)
	assert.Equal(t, "system", messages[0].(map[string]any)["role"])
	assert.Equal(t, SystemPrompt, messages[0].(map[string]any)["content"])
	assert.Equal(t, "user", messages[1].(map[string]any)["role"])
	assert.Equal(t, "plan my trip", messages[1].(map[string]any)["content"])
}

func TestDashScopeCompatibleShape(t *testing.T) {
	var gotPath string
	var gotBody map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_, _ = io.WriteString(w, compatibleBody("hello"))
	}))
	defer srv.Close()

	c := NewDashScopeClient(DashScopeConfig{BaseURL: srv.URL + "/compatible-mode/v1/", Model: "qwen3-max"}, nil)
	assert.Equal(t, srv.URL+"/compatible-mode/v1/chat/completions", c.Endpoint())

	text, err := c.Generate(context.Background(), "hi", testCredential)
	require.NoError(t, err)

	assert.Equal(t, "hello", text)
	assert.Equal(t, "/compatible-mode/v1/chat/completions", gotPath)
	assert.Equal(t, "qwen3-max", gotBody["model"])
	assert.NotContains(t, gotBody, "input")
	assert.Len(t, gotBody["messages"], 2)
}

func TestDashScopeDefaults(t *testing.T) {
	c := NewDashScopeClient(DashScopeConfig{}, nil)
	assert.Equal(t, DefaultBaseURL+legacyPath, c.Endpoint())
	assert.Equal(t, DefaultTimeout, c.timeout)
}

func TestDashScopeFailures(t *testing.T) {
	tests := []struct {
		name       string
		compatible bool
		status     int
		body       string
	}{
		{"unauthorized", false, http.StatusUnauthorized, `{"code":"InvalidApiKey","message":"bad key"}`},
		{"server error", false, http.StatusInternalServerError, `oops`},
		{"rate limited", true, http.StatusTooManyRequests, `{"error":{"message":"slow down"}}`},
		{"not json", false, http.StatusOK, `<html>gateway</html>`},
		{"missing output", false, http.StatusOK, `{"request_id":"x"}`},
		{"empty choices", false, http.StatusOK, `{"output":{"choices":[]}}`},
		{"missing message", false, http.StatusOK, `{"output":{"choices":[{"finish_reason":"stop"}]}}`},
		{"null content", true, http.StatusOK, `{"choices":[{"message":{"content":null}}]}`},
		{"empty content", true, http.StatusOK, `{"choices":[{"message":{"content":""}}]}`},
		{"legacy body on compatible endpoint", true, http.StatusOK, legacyBody("x")},
		{"compatible body on legacy endpoint", false, http.StatusOK, compatibleBody("x")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			}))
			defer srv.Close()

			base := srv.URL
			if tt.compatible {
				base += "/compatible-mode/v1"
			}

			core, logs := observer.New(zap.DebugLevel)
			c := NewDashScopeClient(DashScopeConfig{BaseURL: base}, zap.New(core))

			text, err := c.Generate(context.Background(), "p", testCredential)
			assert.Empty(t, text)
			assert.Equal(t, ErrGenerationFailed, err)

			require.Equal(t, 1, logs.Len())
			for _, entry := range logs.All() {
				for _, field := range entry.Context {
					assert.NotContains(t, field.String, testCredential)
					if e, ok := field.Interface.(error); ok {
						assert.NotContains(t, e.Error(), testCredential)
					}
				}
			}
		})
	}
}

func TestDashScopeTransportError(t *testing.T) {
	calls := 0
	c := NewDashScopeClient(DashScopeConfig{}, nil).WithHTTPClient(&mockHTTPClient{
		DoFunc: func(req *http.Request) (*http.Response, error) {
			calls++
			return nil, errors.New("connection refused")
		},
	})

	_, err := c.Generate(context.Background(), "p", testCredential)
	assert.ErrorIs(t, err, ErrGenerationFailed)
	assert.Equal(t, 1, calls, "no retries")
}

func TestDashScopeTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	c := NewDashScopeClient(DashScopeConfig{BaseURL: srv.URL, Timeout: 50 * time.Millisecond}, nil)

	start := time.Now()
	_, err := c.Generate(context.Background(), "p", testCredential)
	assert.ErrorIs(t, err, ErrGenerationFailed)
	assert.Less(t, time.Since(start), time.Second)
}
