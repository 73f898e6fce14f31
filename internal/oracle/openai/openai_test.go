package openai_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"billscan/internal/config"
	"billscan/internal/domain"
	"billscan/internal/oracle"
	"billscan/internal/oracle/openai"
	"billscan/internal/port"
)

func newTestOracle(serverURL string) *openai.Oracle {
	return openai.NewWithEndpoint(&config.OracleProviderConfig{
		Provider: "openai",
		APIKey:   "test-openai-key",
	}, serverURL)
}

func TestOracle_Complete_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-openai-key", r.Header.Get("Authorization"))

		var reqBody map[string]interface{}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&reqBody))
		assert.Equal(t, openai.DefaultModel, reqBody["model"])

		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"  - Name: Jane  "},"finish_reason":"stop"}]}`))
	}))
	defer server.Close()

	out, err := newTestOracle(server.URL).Complete(context.Background(), port.CompletionInput{Prompt: "p"})

	require.NoError(t, err)
	assert.Equal(t, "- Name: Jane", out.Text)
}

func TestOracle_Complete_NoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	_, err := newTestOracle(server.URL).Complete(context.Background(), port.CompletionInput{Prompt: "p"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no choices")
	assert.ErrorIs(t, err, domain.ErrCompletionService)
}

func TestOracle_Complete_Unauthorized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"Incorrect API key provided"}}`))
	}))
	defer server.Close()

	_, err := newTestOracle(server.URL).Complete(context.Background(), port.CompletionInput{Prompt: "p"})

	var svcErr *oracle.ServiceError
	require.True(t, errors.As(err, &svcErr))
	assert.Equal(t, http.StatusUnauthorized, svcErr.StatusCode)
	var rlErr *oracle.RateLimitError
	assert.False(t, errors.As(err, &rlErr))
}
