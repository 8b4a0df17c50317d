package service

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"

	"feiyi/pkg/config"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

const (
	defaultMaxTokens   = 1000
	defaultTemperature = 0.7
)

// RemoteOutcome classifies a single attempt at the remote chat service.
type RemoteOutcome string

const (
	OutcomeSuccess       RemoteOutcome = "success"
	OutcomeNotConfigured RemoteOutcome = "not_configured"
	OutcomeTimeout       RemoteOutcome = "timeout"
	OutcomeHTTPError     RemoteOutcome = "http_error"
	OutcomeNetworkError  RemoteOutcome = "network_error"
	OutcomeParseError    RemoteOutcome = "parse_error"
)

var errEmptyCompletion = errors.New("empty completion")

// ChatCompleter sends a system prompt and one user question to a remote model.
type ChatCompleter interface {
	Provider() string
	Complete(ctx context.Context, systemPrompt, question string) (string, error)
}

// RemoteError carries the classified outcome of a failed remote call.
type RemoteError struct {
	Outcome    RemoteOutcome
	StatusCode int
	Err        error
}

func (e *RemoteError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s (status %d): %v", e.Outcome, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Outcome, e.Err)
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

// classifyRemoteError maps transport, HTTP and decoding failures onto a RemoteOutcome.
func classifyRemoteError(err error) *RemoteError {
	var remoteErr *RemoteError
	if errors.As(err, &remoteErr) {
		return remoteErr
	}

	var (
		netErr    net.Error
		apiErr    *openai.APIError
		reqErr    *openai.RequestError
		syntaxErr *json.SyntaxError
		typeErr   *json.UnmarshalTypeError
	)
	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.As(err, &netErr) && netErr.Timeout():
		return &RemoteError{Outcome: OutcomeTimeout, Err: err}
	case errors.As(err, &apiErr):
		return &RemoteError{Outcome: OutcomeHTTPError, StatusCode: apiErr.HTTPStatusCode, Err: err}
	case errors.As(err, &reqErr):
		return &RemoteError{Outcome: OutcomeHTTPError, StatusCode: reqErr.HTTPStatusCode, Err: err}
	case errors.As(err, &syntaxErr), errors.As(err, &typeErr),
		errors.Is(err, io.ErrUnexpectedEOF), errors.Is(err, io.EOF), errors.Is(err, errEmptyCompletion):
		return &RemoteError{Outcome: OutcomeParseError, Err: err}
	default:
		return &RemoteError{Outcome: OutcomeNetworkError, Err: err}
	}
}

// OpenAICompleter talks to any OpenAI-compatible chat completions endpoint.
type OpenAICompleter struct {
	client *openai.Client
	model  string
	logger *zap.Logger
}

func NewOpenAICompleter(cfg *config.AIConfig, logger *zap.Logger) *OpenAICompleter {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if cfg.InsecureSkipVerify {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
		logger.Warn("Remote AI TLS certificate verification is disabled")
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	clientConfig.BaseURL = baseURL(cfg.Endpoint)
	clientConfig.HTTPClient = &http.Client{
		Timeout:   cfg.Timeout,
		Transport: transport,
	}

	logger.Info("Remote AI configured",
		zap.String("provider", config.ProviderOpenAI),
		zap.String("base_url", clientConfig.BaseURL),
		zap.String("model", cfg.Model),
	)

	return &OpenAICompleter{
		client: openai.NewClientWithConfig(clientConfig),
		model:  cfg.Model,
		logger: logger,
	}
}

// baseURL strips the operation path so go-openai can append its own.
func baseURL(endpoint string) string {
	endpoint = strings.TrimRight(endpoint, "/")
	return strings.TrimSuffix(endpoint, "/chat/completions")
}

func (c *OpenAICompleter) Provider() string {
	return config.ProviderOpenAI
}

func (c *OpenAICompleter) Complete(ctx context.Context, systemPrompt, question string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: question},
		},
		MaxTokens:   defaultMaxTokens,
		Temperature: defaultTemperature,
	})
	if err != nil {
		return "", classifyRemoteError(err)
	}

	if len(resp.Choices) == 0 {
		return "", &RemoteError{Outcome: OutcomeParseError, Err: errEmptyCompletion}
	}
	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", &RemoteError{Outcome: OutcomeParseError, Err: errEmptyCompletion}
	}

	c.logger.Debug("Remote AI call succeeded",
		zap.String("model", resp.Model),
		zap.Int("total_tokens", resp.Usage.TotalTokens),
	)
	return content, nil
}
