package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"feiyi/internal/models"

	"go.uber.org/zap"
)

type ChatRequest struct {
	Question   string
	SessionID  string
	CategoryID *int64
	ItemID     *int64
}

type ChatResponse struct {
	Answer    string
	SessionID string
	Timestamp time.Time
	Outcome   RemoteOutcome
	Path      ResolutionPath
}

// ChatService resolves a question and logs the exchange.
type ChatService struct {
	resolver     *AnswerResolver
	interactions *InteractionService
	rag          *RAGService
	logger       *zap.Logger
}

func NewChatService(resolver *AnswerResolver, interactions *InteractionService, rag *RAGService, logger *zap.Logger) *ChatService {
	return &ChatService{
		resolver:     resolver,
		interactions: interactions,
		rag:          rag,
		logger:       logger,
	}
}

// Chat fails only on an empty question or when the exchange cannot be stored.
func (s *ChatService) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	if strings.TrimSpace(req.Question) == "" {
		return nil, fmt.Errorf("question is required: %w", ErrInvalidArgument)
	}

	var background string
	if s.rag != nil && (req.CategoryID != nil || req.ItemID != nil) {
		background = s.rag.BuildContext(ctx, req.CategoryID, req.ItemID)
	}

	res := s.resolver.Resolve(ctx, req.Question, background)

	interaction, err := s.interactions.Record(ctx, RecordInput{
		SessionID:  req.SessionID,
		Question:   req.Question,
		Answer:     res.Answer,
		CategoryID: req.CategoryID,
		ItemID:     req.ItemID,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Chat answered",
		zap.String("session_id", req.SessionID),
		zap.Int64("interaction_id", interaction.ID),
		zap.String("path", string(res.Path)),
	)

	return &ChatResponse{
		Answer:    interaction.Answer,
		SessionID: req.SessionID,
		Timestamp: interaction.CreatedAt,
		Outcome:   res.Outcome,
		Path:      res.Path,
	}, nil
}

func (s *ChatService) Status() (configured bool, provider string) {
	return s.resolver.Configured(), s.resolver.Provider()
}

// History returns a session's stored exchanges, oldest first.
func (s *ChatService) History(ctx context.Context, sessionID string) ([]*models.Interaction, error) {
	return s.interactions.History(ctx, sessionID)
}
