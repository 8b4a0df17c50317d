package service

import (
	"context"
	"fmt"
	"time"

	"feiyi/internal/models"

	"go.uber.org/zap"
)

type InteractionStore interface {
	Create(ctx context.Context, in *models.Interaction) error
	ListBySession(ctx context.Context, sessionID string) ([]*models.Interaction, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// InteractionService keeps the append-only chat log.
type InteractionService struct {
	store  InteractionStore
	logger *zap.Logger
}

func NewInteractionService(store InteractionStore, logger *zap.Logger) *InteractionService {
	return &InteractionService{
		store:  store,
		logger: logger,
	}
}

type RecordInput struct {
	SessionID  string
	Question   string
	Answer     string
	CategoryID *int64
	ItemID     *int64
}

// Record stores one exchange; the id and timestamp are assigned by the store.
func (s *InteractionService) Record(ctx context.Context, in RecordInput) (*models.Interaction, error) {
	interaction := &models.Interaction{
		SessionID:  in.SessionID,
		Question:   in.Question,
		Answer:     sanitizeUTF8(in.Answer),
		CategoryID: in.CategoryID,
		ItemID:     in.ItemID,
	}
	if err := s.store.Create(ctx, interaction); err != nil {
		return nil, fmt.Errorf("failed to record interaction: %w", err)
	}
	return interaction, nil
}

func (s *InteractionService) History(ctx context.Context, sessionID string) ([]*models.Interaction, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("session_id is required: %w", ErrInvalidArgument)
	}
	return s.store.ListBySession(ctx, sessionID)
}

// Prune deletes interactions older than the given number of days.
func (s *InteractionService) Prune(ctx context.Context, days int) (int64, error) {
	if days <= 0 {
		return 0, fmt.Errorf("retention must be at least one day: %w", ErrInvalidArgument)
	}
	cutoff := time.Now().UTC().AddDate(0, 0, -days)
	n, err := s.store.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to prune interactions: %w", err)
	}
	s.logger.Info("Interaction retention applied", zap.Int("days", days), zap.Int64("deleted", n))
	return n, nil
}
