package analysis

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/skinlab/skinanalyzer/internal/infra/llm/visionai"
)

const validDocument = `{
	"skinType": "oily",
	"skinTypeDescription": "Жирная кожа",
	"conditions": [{"name": "Акне", "description": "Воспаления в Т-зоне", "severity": "moderate"}],
	"problemZones": [{"x": 30, "y": 40, "problem": "Воспаление", "severity": "moderate"}],
	"possibleCauses": ["Гормональный фон"],
	"recommendations": [{"title": "Очищение", "description": "Мягкий гель дважды в день", "category": "skincare"}],
	"shouldSeeDermatologist": false,
	"overallHealth": 65,
	"summary": "Состояние умеренное"
}`

func newTestService(client ChatClient, cache Cache) *service {
	return &service{
		cfg: Config{
			Model:       "vision-test",
			Temperature: 0.3,
			Prompt:      "Отвечай только JSON",
			CacheTTL:    time.Hour,
		},
		client: client,
		cache:  cache,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func TestAnalyzeParsesDocument(t *testing.T) {
	chatStub := &stubChatClient{content: validDocument}
	svc := newTestService(chatStub, newStubCache())

	res, err := svc.Analyze(context.Background(), "data:image/png;base64,AAAA")
	require.NoError(t, err)
	require.Equal(t, SkinTypeOily, res.SkinType)
	require.Len(t, res.Conditions, 1)
	require.Len(t, res.ProblemZones, 1)
	require.Equal(t, 65, res.OverallHealth)
	require.Equal(t, 1, chatStub.calls)
}

func TestAnalyzeFencedAndUnfencedBodiesMatch(t *testing.T) {
	fenced := "```json\n" + validDocument + "\n```"

	plain, ok := parseResult(validDocument)
	require.True(t, ok)
	wrapped, ok := parseResult(fenced)
	require.True(t, ok)
	require.Equal(t, plain, wrapped)
}

func TestAnalyzeMasksUnparseableContent(t *testing.T) {
	chatStub := &stubChatClient{content: "sorry, I can not analyze this image"}
	svc := newTestService(chatStub, newStubCache())

	res, err := svc.Analyze(context.Background(), "data:image/png;base64,AAAA")
	require.NoError(t, err)
	require.Equal(t, FallbackResult(), res)
	require.Equal(t, SkinTypeCombination, res.SkinType)
	require.Equal(t, 70, res.OverallHealth)
	require.Len(t, res.Conditions, 1)
	require.Empty(t, res.ProblemZones)
}

func TestAnalyzeMasksEmptyChoices(t *testing.T) {
	chatStub := &stubChatClient{empty: true}
	svc := newTestService(chatStub, newStubCache())

	res, err := svc.Analyze(context.Background(), "data:image/png;base64,AAAA")
	require.NoError(t, err)
	require.Equal(t, FallbackResult(), res)
}

func TestAnalyzeMasksMalformedGatewayBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("I'm sorry, here is plain prose instead of JSON"))
	}))
	defer server.Close()

	client, err := visionai.NewClient("test-key", server.URL, time.Second)
	require.NoError(t, err)
	cache := newStubCache()
	svc := newTestService(client, cache)

	res, err := svc.Analyze(context.Background(), "data:image/png;base64,AAAA")
	require.NoError(t, err)
	require.Equal(t, FallbackResult(), res)
	require.Empty(t, cache.entries)
}

func TestAnalyzePropagatesGatewayErrors(t *testing.T) {
	chatStub := &stubChatClient{err: context.DeadlineExceeded}
	svc := newTestService(chatStub, newStubCache())

	_, err := svc.Analyze(context.Background(), "data:image/png;base64,AAAA")
	require.Error(t, err)
}

func TestAnalyzeUsesCache(t *testing.T) {
	chatStub := &stubChatClient{content: validDocument}
	cache := newStubCache()
	svc := newTestService(chatStub, cache)

	first, err := svc.Analyze(context.Background(), "data:image/png;base64,AAAA")
	require.NoError(t, err)
	second, err := svc.Analyze(context.Background(), "data:image/png;base64,AAAA")
	require.NoError(t, err)

	require.Equal(t, first, second)
	require.Equal(t, 1, chatStub.calls)
}

func TestAnalyzeDoesNotCacheFallback(t *testing.T) {
	chatStub := &stubChatClient{content: "not json"}
	cache := newStubCache()
	svc := newTestService(chatStub, cache)

	_, err := svc.Analyze(context.Background(), "data:image/png;base64,AAAA")
	require.NoError(t, err)
	require.Empty(t, cache.entries)
}

type stubChatClient struct {
	content string
	empty   bool
	err     error
	calls   int
}

func (s *stubChatClient) CreateChatCompletion(ctx context.Context, req visionai.ChatCompletionRequest) (visionai.ChatCompletionResponse, error) {
	s.calls++
	if s.err != nil {
		return visionai.ChatCompletionResponse{}, s.err
	}
	var resp visionai.ChatCompletionResponse
	if s.empty {
		return resp, nil
	}
	resp.Choices = make([]struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
	}, 1)
	resp.Choices[0].Message.Role = "assistant"
	resp.Choices[0].Message.Content = s.content
	return resp, nil
}

type stubCache struct {
	entries map[string]Result
}

func newStubCache() *stubCache {
	return &stubCache{entries: make(map[string]Result)}
}

func (c *stubCache) Get(_ context.Context, key string) (Result, bool, error) {
	res, ok := c.entries[key]
	return res, ok, nil
}

func (c *stubCache) Save(_ context.Context, key string, result Result, _ time.Duration) error {
	c.entries[key] = result
	return nil
}
