package service

import (
	"context"
	"fmt"
	"strings"

	"feiyi/pkg/config"

	"github.com/Role1776/gigago"
	"go.uber.org/zap"
)

const gigaChatModel = "GigaChat"

// GigaChatCompleter answers through Sber GigaChat.
type GigaChatCompleter struct {
	client *gigago.Client
	logger *zap.Logger
}

func NewGigaChatCompleter(ctx context.Context, cfg *config.AIConfig, logger *zap.Logger) (*GigaChatCompleter, error) {
	var opts []gigago.Option
	if cfg.GigaChatScope != "" {
		opts = append(opts, gigago.WithCustomScope(cfg.GigaChatScope))
	}
	if cfg.InsecureSkipVerify {
		opts = append(opts, gigago.WithCustomInsecureSkipVerify(true))
		logger.Warn("GigaChat TLS certificate verification is disabled")
	}

	client, err := gigago.NewClient(ctx, cfg.GigaChatAPIKey, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create GigaChat client: %w", err)
	}

	logger.Info("Remote AI configured", zap.String("provider", config.ProviderGigaChat))
	return &GigaChatCompleter{client: client, logger: logger}, nil
}

func (c *GigaChatCompleter) Provider() string {
	return config.ProviderGigaChat
}

func (c *GigaChatCompleter) Complete(ctx context.Context, systemPrompt, question string) (string, error) {
	// the model carries the system instruction, so build one per call
	model := c.client.GenerativeModel(gigaChatModel)
	model.SystemInstruction = systemPrompt
	model.Temperature = defaultTemperature

	resp, err := model.Generate(ctx, []gigago.Message{
		{Role: gigago.RoleUser, Content: question},
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
	return content, nil
}

func (c *GigaChatCompleter) Close() error {
	if c.client != nil {
		c.client.Close()
	}
	return nil
}
