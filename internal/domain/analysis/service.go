package analysis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/pkoukk/tiktoken-go"

	"github.com/skinlab/skinanalyzer/internal/infra/llm/visionai"
	apperrors "github.com/skinlab/skinanalyzer/pkg/errors"
	"github.com/skinlab/skinanalyzer/pkg/metrics"
)

const userPrompt = "Проанализируй эту фотографию кожи и предоставь детальный анализ состояния."

// Service runs a facial photo through the vision gateway and returns the
// sanitized analysis document.
type Service interface {
	Analyze(ctx context.Context, preview string) (Result, error)
}

// ChatClient is the slice of the vision gateway the service needs.
type ChatClient interface {
	CreateChatCompletion(ctx context.Context, req visionai.ChatCompletionRequest) (visionai.ChatCompletionResponse, error)
}

type service struct {
	cfg     Config
	client  ChatClient
	cache   Cache
	logger  *slog.Logger
	encoder *tiktoken.Tiktoken
}

// NewService wires up the analysis domain. The token encoder is best effort:
// when the encoding cannot be loaded usage metrics are simply skipped.
func NewService(cfg Config, client ChatClient, cache Cache, logger *slog.Logger) Service {
	encoder, err := tiktoken.GetEncoding("cl100k_base")
	if err != nil {
		logger.Warn("token encoder unavailable, usage metrics disabled", "error", err)
		encoder = nil
	}
	return &service{
		cfg:     cfg,
		client:  client,
		cache:   cache,
		logger:  logger.With("component", "analysis.service"),
		encoder: encoder,
	}
}

// Analyze performs exactly one gateway call per previously unseen image.
// Transport and service failures propagate to the caller; a 2xx response
// whose body cannot be parsed is masked with the fixed fallback document so
// the flow always reaches a result screen.
func (s *service) Analyze(ctx context.Context, preview string) (Result, error) {
	key := cacheKey(preview)
	if cached, ok, err := s.cache.Get(ctx, key); err == nil && ok {
		s.logger.Info("analysis served from cache", "key", key[:12])
		return cached, nil
	} else if err != nil {
		s.logger.Warn("result cache lookup failed", "error", err)
	}

	resp, err := s.client.CreateChatCompletion(ctx, visionai.ChatCompletionRequest{
		Model: s.cfg.Model,
		Messages: []visionai.Message{
			visionai.TextMessage("system", s.cfg.Prompt),
			visionai.VisionMessage("user", userPrompt, preview),
		},
		Temperature: s.cfg.Temperature,
		MaxTokens:   4096,
	})
	if err != nil {
		if apperrors.IsCode(err, "content_error") {
			s.logger.Warn("gateway response body unparseable, substituting fallback", "error", err)
			return FallbackResult(), nil
		}
		return Result{}, err
	}

	content := ""
	if len(resp.Choices) > 0 {
		content = resp.Choices[0].Message.Content
	}

	if usage := s.usageFor(content); !usage.IsZero() {
		s.logger.Info("analysis token usage",
			"promptTokens", usage.PromptTokens,
			"completionTokens", usage.CompletionTokens,
			"totalTokens", usage.TotalTokens)
	}

	result, ok := parseResult(content)
	if !ok {
		s.logger.Warn("analysis content unparseable, substituting fallback", "contentLen", len(content))
		return FallbackResult(), nil
	}

	if err := s.cache.Save(ctx, key, result, s.cfg.CacheTTL); err != nil {
		s.logger.Warn("result cache save failed", "error", err)
	}
	return result, nil
}

// usageFor estimates token spend for one call: the fixed prompts plus the
// returned content. Zero when the encoder is unavailable.
func (s *service) usageFor(content string) metrics.TokenUsage {
	if s.encoder == nil {
		return metrics.TokenUsage{}
	}
	usage := metrics.TokenUsage{
		PromptTokens:     len(s.encoder.Encode(s.cfg.Prompt+userPrompt, nil, nil)),
		CompletionTokens: len(s.encoder.Encode(content, nil, nil)),
	}
	usage.TotalTokens = usage.PromptTokens + usage.CompletionTokens
	return usage
}

func cacheKey(preview string) string {
	sum := sha256.Sum256([]byte(preview))
	return hex.EncodeToString(sum[:])
}

// parseResult unwraps an optionally fenced body and decodes the analysis
// document. The boolean is false when nothing usable could be extracted.
func parseResult(raw string) (Result, bool) {
	sanitized := stripFences(raw)
	if sanitized == "" {
		return Result{}, false
	}
	var wire Result
	if err := json.Unmarshal([]byte(sanitized), &wire); err != nil {
		return Result{}, false
	}
	return Sanitize(wire), true
}

// stripFences removes a leading/trailing fenced-code delimiter sequence,
// with or without a language tag.
func stripFences(raw string) string {
	sanitized := strings.TrimSpace(raw)
	sanitized = strings.TrimPrefix(sanitized, "```json")
	sanitized = strings.TrimSuffix(sanitized, "```")
	sanitized = strings.Trim(sanitized, "`")
	sanitized = strings.TrimSpace(strings.TrimPrefix(sanitized, "json"))
	return strings.TrimSpace(sanitized)
}
