package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completionBody(content string) string {
	body, _ := json.Marshal(map[string]any{
		"choices": []map[string]any{
			{"message": map[string]string{"content": content}},
		},
	})
	return string(body)
}

func TestCompleteReturnsFirstChoiceContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req completionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "test-model", req.Model)
		require.Len(t, req.Messages, 2)

		w.Write([]byte(completionBody("hello")))
	}))
	defer server.Close()

	client := NewClient("test-key", WithBaseURL(server.URL))
	content, err := client.Complete(context.Background(), "test-model", []Message{
		{Role: "system", Content: "be brief"},
		{Role: "user", Content: "hi"},
	})
	require.NoError(t, err)
	assert.Equal(t, "hello", content)
}

func TestCompleteMissingKeySkipsNetwork(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte(completionBody("never")))
	}))
	defer server.Close()

	client := NewClient("", WithBaseURL(server.URL))
	_, err := client.Complete(context.Background(), "m", []Message{{Role: "user", Content: "hi"}})
	assert.ErrorIs(t, err, ErrNotConfigured)
	assert.Equal(t, int32(0), calls.Load())
}

func TestCompleteStatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   error
	}{
		{"rate limited", http.StatusTooManyRequests, ErrRateLimited},
		{"quota exceeded", http.StatusPaymentRequired, ErrQuotaExceeded},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer server.Close()

			client := NewClient("key", WithBaseURL(server.URL))
			_, err := client.Complete(context.Background(), "m", []Message{{Role: "user", Content: "hi"}})
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestCompleteTransportErrorCarriesStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient("key", WithBaseURL(server.URL))
	_, err := client.Complete(context.Background(), "m", []Message{{Role: "user", Content: "hi"}})

	var transport *TransportError
	require.ErrorAs(t, err, &transport)
	assert.Equal(t, http.StatusInternalServerError, transport.Status)
}

func TestCompleteEmptyChoicesIsMalformed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices": []}`))
	}))
	defer server.Close()

	client := NewClient("key", WithBaseURL(server.URL))
	_, err := client.Complete(context.Background(), "m", []Message{{Role: "user", Content: "hi"}})
	assert.True(t, IsMalformed(err))
}

func TestCompleteJSONStripsFences(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(completionBody("```json\n{\"quote\":\"go lift\"}\n```")))
	}))
	defer server.Close()

	client := NewClient("key", WithBaseURL(server.URL))
	var out struct {
		Quote string `json:"quote"`
	}
	require.NoError(t, client.CompleteJSON(context.Background(), "m", []Message{{Role: "user", Content: "hi"}}, &out))
	assert.Equal(t, "go lift", out.Quote)
}

func TestCompleteJSONUnparseableIsMalformed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(completionBody("Sure! Here is your plan: it depends.")))
	}))
	defer server.Close()

	client := NewClient("key", WithBaseURL(server.URL))
	var out map[string]any
	err := client.CompleteJSON(context.Background(), "m", []Message{{Role: "user", Content: "hi"}}, &out)
	assert.True(t, IsMalformed(err))

	var transport *TransportError
	assert.False(t, errors.As(err, &transport), "parse failure must not look like a transport failure")
}
