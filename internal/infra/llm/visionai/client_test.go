package visionai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	apperrors "github.com/skinlab/skinanalyzer/pkg/errors"
)

func TestCreateChatCompletionSuccess(t *testing.T) {
	var captured ChatCompletionRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat/completions", r.URL.Path)
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"{\"ok\":true}"}}]}`))
	}))
	defer server.Close()

	client, err := NewClient("test-key", server.URL, time.Second)
	require.NoError(t, err)

	resp, err := client.CreateChatCompletion(context.Background(), ChatCompletionRequest{
		Model: "vision-test",
		Messages: []Message{
			TextMessage("system", "analyze"),
			VisionMessage("user", "photo", "data:image/png;base64,AAAA"),
		},
	})
	require.NoError(t, err)
	require.Len(t, resp.Choices, 1)
	require.Equal(t, `{"ok":true}`, resp.Choices[0].Message.Content)

	require.Len(t, captured.Messages, 2)
	require.Len(t, captured.Messages[1].Content, 2)
	require.Equal(t, "image_url", captured.Messages[1].Content[1].Type)
	require.Equal(t, "data:image/png;base64,AAAA", captured.Messages[1].Content[1].ImageURL.URL)
}

func TestCreateChatCompletionStatusMapping(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		code   string
	}{
		{name: "rate limit", status: http.StatusTooManyRequests, body: `{"error":"slow down"}`, code: "rate_limited"},
		{name: "quota", status: http.StatusPaymentRequired, body: `{"error":"quota"}`, code: "quota_exceeded"},
		{name: "server error", status: http.StatusInternalServerError, body: `{"error":"boom"}`, code: "service_error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				w.Write([]byte(tc.body))
			}))
			defer server.Close()

			client, err := NewClient("test-key", server.URL, time.Second)
			require.NoError(t, err)

			_, err = client.CreateChatCompletion(context.Background(), ChatCompletionRequest{Model: "vision-test"})
			require.Error(t, err)
			require.True(t, apperrors.IsCode(err, tc.code), "expected code %s, got %v", tc.code, err)
		})
	}
}

func TestCreateChatCompletionTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client, err := NewClient("test-key", server.URL, time.Second)
	require.NoError(t, err)

	_, err = client.CreateChatCompletion(context.Background(), ChatCompletionRequest{Model: "vision-test"})
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, "network_error"))
}

func TestServiceMessageExtractsServerError(t *testing.T) {
	require.Equal(t, "Ошибка анализа изображения", serviceMessage(500, []byte(`{"error":"Ошибка анализа изображения"}`)))
	require.Equal(t, "nested", serviceMessage(500, []byte(`{"error":{"message":"nested"}}`)))
	require.Equal(t, "vision gateway request failed: status=503", serviceMessage(503, []byte("not json")))
}
