package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"feiyi/internal/models"
	"feiyi/pkg/database"

	"github.com/Masterminds/squirrel"
	"go.uber.org/zap"
)

const interactionsTable = "user_interactions"

type InteractionRepository struct {
	db     *database.DB
	logger *zap.Logger
}

func NewInteractionRepository(db *database.DB, logger *zap.Logger) *InteractionRepository {
	return &InteractionRepository{
		db:     db,
		logger: logger,
	}
}

// Create appends one interaction. The timestamp is always assigned here.
func (r *InteractionRepository) Create(ctx context.Context, in *models.Interaction) error {
	if in.Question == "" {
		return fmt.Errorf("%w: question is required", ErrInvalid)
	}
	in.CreatedAt = time.Now().UTC()

	query := r.db.Dialect.Builder().Insert(interactionsTable).
		Columns("session_id", "question", "answer", "category_id", "item_id", "created_at").
		Values(in.SessionID, in.Question, in.Answer, nullInt(in.CategoryID), nullInt(in.ItemID), in.CreatedAt).
		Suffix("RETURNING id")

	stmt, args, err := query.ToSql()
	if err != nil {
		return err
	}
	return r.db.QueryRowContext(ctx, stmt, args...).Scan(&in.ID)
}

// ListBySession returns a session's exchanges oldest first.
func (r *InteractionRepository) ListBySession(ctx context.Context, sessionID string) ([]*models.Interaction, error) {
	stmt, args, err := r.db.Dialect.Builder().
		Select("id", "session_id", "question", "answer", "category_id", "item_id", "created_at").
		From(interactionsTable).
		Where(squirrel.Eq{"session_id": sessionID}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*models.Interaction{}
	for rows.Next() {
		var (
			in             models.Interaction
			category, item sql.NullInt64
		)
		if err := rows.Scan(&in.ID, &in.SessionID, &in.Question, &in.Answer, &category, &item, &in.CreatedAt); err != nil {
			return nil, err
		}
		in.CategoryID = intPtr(category)
		in.ItemID = intPtr(item)
		out = append(out, &in)
	}
	return out, rows.Err()
}

// DeleteOlderThan removes interactions created before cutoff and reports how many went.
func (r *InteractionRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	stmt, args, err := r.db.Dialect.Builder().Delete(interactionsTable).
		Where(squirrel.Lt{"created_at": cutoff.UTC()}).
		ToSql()
	if err != nil {
		return 0, err
	}
	res, err := r.db.ExecContext(ctx, stmt, args...)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	r.logger.Info("Pruned interactions", zap.Int64("deleted", n), zap.Time("cutoff", cutoff))
	return n, nil
}
