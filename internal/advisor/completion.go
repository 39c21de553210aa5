package advisor

import (
	"context"
	"errors"
	"log/slog"
	"math/rand"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// Completer requests an allocation proposal from the external completion
// service. Implementations return the raw response text or a classified
// *ServiceError; they never panic or surface raw transport errors.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// chatCompletionAPI is the slice of the OpenAI client the completion
// client depends on, kept narrow so tests can substitute a stub.
type chatCompletionAPI interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// CompletionConfig holds tunables for the completion client.
type CompletionConfig struct {
	Model       string
	Temperature float32
	MaxTokens   int
	CallTimeout time.Duration // per attempt
	MaxRetries  int           // retries after the first attempt
	BaseDelay   time.Duration // backoff base, doubled per attempt
}

// DefaultCompletionConfig returns sensible defaults for advisory prompts.
func DefaultCompletionConfig() CompletionConfig {
	return CompletionConfig{
		Model:       openai.GPT4oMini,
		Temperature: 0.3, // low temperature for numeric consistency
		MaxTokens:   1024,
		CallTimeout: 30 * time.Second,
		MaxRetries:  2,
		BaseDelay:   500 * time.Millisecond,
	}
}

// CompletionClient calls the external completion service with bounded
// per-attempt timeouts and exponential backoff on transient failures.
type CompletionClient struct {
	api    chatCompletionAPI
	cfg    CompletionConfig
	logger *slog.Logger
}

// NewCompletionClient wraps an OpenAI client.
func NewCompletionClient(apiKey string, cfg CompletionConfig, logger *slog.Logger) *CompletionClient {
	if logger == nil {
		logger = slog.Default()
	}
	return &CompletionClient{
		api:    openai.NewClient(apiKey),
		cfg:    cfg,
		logger: logger,
	}
}

// newCompletionClientWithAPI is the test seam.
func newCompletionClientWithAPI(api chatCompletionAPI, cfg CompletionConfig, logger *slog.Logger) *CompletionClient {
	if logger == nil {
		logger = slog.Default()
	}
	return &CompletionClient{api: api, cfg: cfg, logger: logger}
}

// Complete sends the prompt, retrying timeouts, rate limits, and outages
// up to MaxRetries times. Auth errors and malformed responses are
// terminal. On exhaustion it returns the last classified failure.
func (c *CompletionClient) Complete(ctx context.Context, system, user string) (string, error) {
	request := openai.ChatCompletionRequest{
		Model:               c.cfg.Model,
		Temperature:         c.cfg.Temperature,
		MaxCompletionTokens: c.cfg.MaxTokens,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
	}

	attempts := c.cfg.MaxRetries + 1
	var last *ServiceError

	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			delay := c.cfg.BaseDelay * time.Duration(1<<uint(attempt-1))
			delay += time.Duration(rand.Intn(250)) * time.Millisecond
			c.logger.Warn("retrying completion call",
				"attempt", attempt+1,
				"delay_ms", delay.Milliseconds(),
				"last_failure", last.Kind)

			select {
			case <-time.After(delay):
			case <-ctx.Done():
				// The caller abandoned the request; behave as a timeout.
				return "", &ServiceError{Kind: FailureTimeout, Err: ctx.Err()}
			}
		}

		callCtx, cancel := context.WithTimeout(ctx, c.cfg.CallTimeout)
		start := time.Now()
		resp, err := c.api.CreateChatCompletion(callCtx, request)
		cancel()

		if err != nil {
			se := classifyCompletionError(err)
			c.logger.Warn("completion call failed",
				"attempt", attempt+1,
				"kind", se.Kind,
				"duration_ms", time.Since(start).Milliseconds(),
				"error", err)
			if !se.Retryable() {
				return "", se
			}
			last = se
			continue
		}

		if len(resp.Choices) == 0 {
			return "", &ServiceError{Kind: FailureMalformed, Err: errors.New("no completion choices returned")}
		}
		content := strings.TrimSpace(resp.Choices[0].Message.Content)
		if content == "" {
			return "", &ServiceError{Kind: FailureMalformed, Err: errors.New("empty completion content")}
		}

		c.logger.Debug("completion call succeeded",
			"attempt", attempt+1,
			"duration_ms", time.Since(start).Milliseconds(),
			"content_length", len(content))
		return content, nil
	}

	return "", last
}

// classifyCompletionError maps transport and API errors onto the failure
// taxonomy.
func classifyCompletionError(err error) *ServiceError {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return &ServiceError{Kind: FailureTimeout, Err: err}
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &ServiceError{Kind: kindFromStatus(apiErr.HTTPStatusCode), Err: err}
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return &ServiceError{Kind: kindFromStatus(reqErr.HTTPStatusCode), Err: err}
	}

	// Unrecognized transport failure: treat as an outage so it is retried.
	return &ServiceError{Kind: FailureUnavailable, Err: err}
}

func kindFromStatus(status int) FailureKind {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return FailureAuth
	case status == http.StatusTooManyRequests:
		return FailureRateLimited
	case status == http.StatusRequestTimeout:
		return FailureTimeout
	case status >= 500:
		return FailureUnavailable
	default:
		return FailureMalformed
	}
}
