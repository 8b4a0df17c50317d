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

const knowledgeTable = "feiyi_knowledge"

var knowledgeColumns = []string{
	"id", "title", "content", "category_id", "item_id", "keywords", "source", "created_at", "updated_at",
}

// KnowledgeFilter narrows knowledge listings. Zero values mean "no restriction".
type KnowledgeFilter struct {
	CategoryID int64
	Keyword    string
}

type KnowledgeRepository struct {
	db     *database.DB
	logger *zap.Logger
}

func NewKnowledgeRepository(db *database.DB, logger *zap.Logger) *KnowledgeRepository {
	return &KnowledgeRepository{
		db:     db,
		logger: logger,
	}
}

func (r *KnowledgeRepository) Create(ctx context.Context, entry *models.KnowledgeEntry) error {
	if entry.Title == "" {
		return fmt.Errorf("%w: knowledge title is required", ErrInvalid)
	}
	if entry.Content == "" {
		return fmt.Errorf("%w: knowledge content is required", ErrInvalid)
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	entry.UpdatedAt = entry.CreatedAt

	query := r.db.Dialect.Builder().Insert(knowledgeTable).
		Columns(knowledgeColumns[1:]...).
		Values(entry.Title, entry.Content, nullInt(entry.CategoryID), nullInt(entry.ItemID),
			entry.Keywords, entry.Source, entry.CreatedAt, entry.UpdatedAt).
		Suffix("RETURNING id")

	stmt, args, err := query.ToSql()
	if err != nil {
		return err
	}
	return r.db.QueryRowContext(ctx, stmt, args...).Scan(&entry.ID)
}

// ListByItem returns the entries attached to an item in creation order.
func (r *KnowledgeRepository) ListByItem(ctx context.Context, itemID int64) ([]*models.KnowledgeEntry, error) {
	query := r.db.Dialect.Builder().Select(knowledgeColumns...).
		From(knowledgeTable).
		Where(squirrel.Eq{"item_id": itemID}).
		OrderBy("created_at ASC", "id ASC")
	return r.query(ctx, query)
}

// List returns one page of entries matching filter, newest first, plus the total match count.
func (r *KnowledgeRepository) List(ctx context.Context, filter KnowledgeFilter, limit, offset int) ([]*models.KnowledgeEntry, int, error) {
	where := squirrel.And{}
	if filter.CategoryID != 0 {
		where = append(where, squirrel.Eq{"category_id": filter.CategoryID})
	}
	if filter.Keyword != "" {
		where = append(where, r.db.Dialect.ContainsAny(filter.Keyword, "title", "content", "keywords"))
	}

	stmt, args, err := r.db.Dialect.Builder().Select("COUNT(*)").From(knowledgeTable).Where(where).ToSql()
	if err != nil {
		return nil, 0, err
	}
	var total int
	if err := r.db.QueryRowContext(ctx, stmt, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := r.db.Dialect.Builder().Select(knowledgeColumns...).
		From(knowledgeTable).
		Where(where).
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset))

	entries, err := r.query(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

func (r *KnowledgeRepository) Search(ctx context.Context, keyword string, limit int) ([]*models.KnowledgeEntry, error) {
	query := r.db.Dialect.Builder().Select(knowledgeColumns...).
		From(knowledgeTable).
		Where(r.db.Dialect.ContainsAny(keyword, "title", "content", "keywords")).
		OrderBy("id ASC").
		Limit(uint64(limit))
	return r.query(ctx, query)
}

func (r *KnowledgeRepository) Count(ctx context.Context) (int, error) {
	var total int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+knowledgeTable).Scan(&total)
	return total, err
}

func (r *KnowledgeRepository) query(ctx context.Context, query squirrel.SelectBuilder) ([]*models.KnowledgeEntry, error) {
	stmt, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []*models.KnowledgeEntry{}
	for rows.Next() {
		var (
			e              models.KnowledgeEntry
			category, item sql.NullInt64
		)
		if err := rows.Scan(&e.ID, &e.Title, &e.Content, &category, &item,
			&e.Keywords, &e.Source, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		e.CategoryID = intPtr(category)
		e.ItemID = intPtr(item)
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}
