package infrastructure

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOpenAIClient(url string) *OpenAIClient {
	return NewOpenAIClient("test-key", "gpt-4o-mini", "contexto del sistema", zerolog.Nop()).WithBaseURL(url)
}

func TestGenerateReplySuccess(t *testing.T) {
	var got chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"Hola, ¿en qué te ayudo?"}}]}`))
	}))
	defer srv.Close()

	reply, err := newTestOpenAIClient(srv.URL).GenerateReply(context.Background(), "Hola")

	require.NoError(t, err)
	assert.Equal(t, "Hola, ¿en qué te ayudo?", reply)
	assert.Equal(t, "gpt-4o-mini", got.Model)
	assert.Equal(t, maxReplyTokens, got.MaxTokens)
	assert.InDelta(t, completionTemperature, got.Temperature, 1e-9)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Equal(t, "contexto del sistema", got.Messages[0].Content)
	assert.Equal(t, "user", got.Messages[1].Role)
	assert.Equal(t, "Hola", got.Messages[1].Content)
}

func TestGenerateReplyOmitsEmptySystemContext(t *testing.T) {
	var got chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"ok"}}]}`))
	}))
	defer srv.Close()

	client := NewOpenAIClient("k", "gpt-4o-mini", "", zerolog.Nop()).WithBaseURL(srv.URL)
	_, err := client.GenerateReply(context.Background(), "Hola")

	require.NoError(t, err)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, "user", got.Messages[0].Role)
}

func TestGenerateReplyStatusFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"rate limited"}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := newTestOpenAIClient(srv.URL).GenerateReply(context.Background(), "Hola")

	var cerr *CompletionError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, FailureStatus, cerr.Reason)
	assert.Contains(t, cerr.Error(), "429")
}

func TestGenerateReplyMalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices": not-json`))
	}))
	defer srv.Close()

	_, err := newTestOpenAIClient(srv.URL).GenerateReply(context.Background(), "Hola")

	var cerr *CompletionError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, FailureMalformed, cerr.Reason)
}

func TestGenerateReplyEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	_, err := newTestOpenAIClient(srv.URL).GenerateReply(context.Background(), "Hola")

	var cerr *CompletionError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, FailureMalformed, cerr.Reason)
}

func TestGenerateReplyNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // immediately unreachable

	_, err := newTestOpenAIClient(srv.URL).GenerateReply(context.Background(), "Hola")

	var cerr *CompletionError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, FailureNetwork, cerr.Reason)
	assert.True(t, errors.Unwrap(cerr) != nil)
}
