package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"feiyi/internal/models"
	"feiyi/pkg/database"

	"github.com/Masterminds/squirrel"
	"go.uber.org/zap"
)

const itemsTable = "feiyi_items"

var itemColumns = []string{
	"id", "name", "category_id", "description", "origin_location", "historical_background",
	"characteristics", "cultural_value", "inheritance_status", "protection_measures",
	"protection_level", "representative_inheritor", "declaration_date", "images", "videos",
	"created_at", "updated_at",
}

// ItemFilter narrows item listings. Zero values mean "no restriction".
type ItemFilter struct {
	CategoryID int64
	Keyword    string
}

type ItemRepository struct {
	db     *database.DB
	logger *zap.Logger
}

func NewItemRepository(db *database.DB, logger *zap.Logger) *ItemRepository {
	return &ItemRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts the item and fills in its id and timestamps.
func (r *ItemRepository) Create(ctx context.Context, item *models.Item) error {
	if err := validateItem(item); err != nil {
		return err
	}
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now().UTC()
	}
	item.UpdatedAt = item.CreatedAt

	images, err := encodeList(item.Images)
	if err != nil {
		return err
	}
	videos, err := encodeList(item.Videos)
	if err != nil {
		return err
	}

	query := r.db.Dialect.Builder().Insert(itemsTable).
		Columns(itemColumns[1:]...).
		Values(item.Name, item.CategoryID, item.Description, item.OriginLocation, item.HistoricalBackground,
			item.Characteristics, item.CulturalValue, item.InheritanceStatus, item.ProtectionMeasures,
			item.ProtectionLevel, item.RepresentativeInheritor, item.DeclarationDate, images, videos,
			item.CreatedAt, item.UpdatedAt).
		Suffix("RETURNING id")

	stmt, args, err := query.ToSql()
	if err != nil {
		return err
	}
	return r.db.QueryRowContext(ctx, stmt, args...).Scan(&item.ID)
}

// Update rewrites every mutable field and refreshes updated_at.
func (r *ItemRepository) Update(ctx context.Context, item *models.Item) error {
	if err := validateItem(item); err != nil {
		return err
	}
	images, err := encodeList(item.Images)
	if err != nil {
		return err
	}
	videos, err := encodeList(item.Videos)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	if now.Before(item.CreatedAt) {
		now = item.CreatedAt
	}

	query := r.db.Dialect.Builder().Update(itemsTable).
		SetMap(map[string]interface{}{
			"name":                     item.Name,
			"category_id":              item.CategoryID,
			"description":              item.Description,
			"origin_location":          item.OriginLocation,
			"historical_background":    item.HistoricalBackground,
			"characteristics":          item.Characteristics,
			"cultural_value":           item.CulturalValue,
			"inheritance_status":       item.InheritanceStatus,
			"protection_measures":      item.ProtectionMeasures,
			"protection_level":         item.ProtectionLevel,
			"representative_inheritor": item.RepresentativeInheritor,
			"declaration_date":         item.DeclarationDate,
			"images":                   images,
			"videos":                   videos,
			"updated_at":               now,
		}).
		Where(squirrel.Eq{"id": item.ID})

	stmt, args, err := query.ToSql()
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, stmt, args...)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	item.UpdatedAt = now
	return nil
}

func (r *ItemRepository) GetByID(ctx context.Context, id int64) (*models.Item, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

func (r *ItemRepository) GetByName(ctx context.Context, name string) (*models.Item, error) {
	return r.getOne(ctx, squirrel.Eq{"name": name})
}

func (r *ItemRepository) getOne(ctx context.Context, where squirrel.Sqlizer) (*models.Item, error) {
	query := r.db.Dialect.Builder().Select(itemColumns...).
		From(itemsTable).
		Where(where).
		OrderBy("id ASC").
		Limit(1)

	stmt, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	item, err := scanItem(r.db.QueryRowContext(ctx, stmt, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return item, err
}

// ListByCategory returns every item in a category, in insertion order.
func (r *ItemRepository) ListByCategory(ctx context.Context, categoryID int64) ([]*models.Item, error) {
	query := r.db.Dialect.Builder().Select(itemColumns...).
		From(itemsTable).
		Where(squirrel.Eq{"category_id": categoryID}).
		OrderBy("id ASC")
	return r.query(ctx, query)
}

// List returns one page of items matching filter, newest first, plus the total match count.
func (r *ItemRepository) List(ctx context.Context, filter ItemFilter, limit, offset int) ([]*models.Item, int, error) {
	where := squirrel.And{}
	if filter.CategoryID != 0 {
		where = append(where, squirrel.Eq{"category_id": filter.CategoryID})
	}
	if filter.Keyword != "" {
		where = append(where, r.db.Dialect.ContainsAny(filter.Keyword, "name", "description"))
	}

	total, err := r.count(ctx, where)
	if err != nil {
		return nil, 0, err
	}

	query := r.db.Dialect.Builder().Select(itemColumns...).
		From(itemsTable).
		Where(where).
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset))

	items, err := r.query(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// Search matches name, description or characteristics and returns at most limit items in insertion order.
func (r *ItemRepository) Search(ctx context.Context, keyword string, limit int) ([]*models.Item, error) {
	query := r.db.Dialect.Builder().Select(itemColumns...).
		From(itemsTable).
		Where(r.db.Dialect.ContainsAny(keyword, "name", "description", "characteristics")).
		OrderBy("id ASC").
		Limit(uint64(limit))
	return r.query(ctx, query)
}

// ListRelated returns up to limit other items of the same category.
func (r *ItemRepository) ListRelated(ctx context.Context, categoryID, excludeID int64, limit int) ([]*models.Item, error) {
	query := r.db.Dialect.Builder().Select(itemColumns...).
		From(itemsTable).
		Where(squirrel.Eq{"category_id": categoryID}).
		Where(squirrel.NotEq{"id": excludeID}).
		OrderBy("id ASC").
		Limit(uint64(limit))
	return r.query(ctx, query)
}

// Count returns the number of stored items.
func (r *ItemRepository) Count(ctx context.Context) (int, error) {
	return r.count(ctx, squirrel.And{})
}

func (r *ItemRepository) count(ctx context.Context, where squirrel.And) (int, error) {
	stmt, args, err := r.db.Dialect.Builder().Select("COUNT(*)").From(itemsTable).Where(where).ToSql()
	if err != nil {
		return 0, err
	}
	var total int
	if err := r.db.QueryRowContext(ctx, stmt, args...).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func (r *ItemRepository) query(ctx context.Context, query squirrel.SelectBuilder) ([]*models.Item, error) {
	stmt, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []*models.Item{}
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func validateItem(item *models.Item) error {
	if item.Name == "" {
		return fmt.Errorf("%w: item name is required", ErrInvalid)
	}
	if _, ok := models.FindCategory(item.CategoryID); !ok {
		return fmt.Errorf("%w: unknown category %d", ErrInvalid, item.CategoryID)
	}
	return nil
}

func scanItem(s scanner) (*models.Item, error) {
	var (
		item           models.Item
		images, videos string
	)
	if err := s.Scan(
		&item.ID, &item.Name, &item.CategoryID, &item.Description, &item.OriginLocation, &item.HistoricalBackground,
		&item.Characteristics, &item.CulturalValue, &item.InheritanceStatus, &item.ProtectionMeasures,
		&item.ProtectionLevel, &item.RepresentativeInheritor, &item.DeclarationDate, &images, &videos,
		&item.CreatedAt, &item.UpdatedAt,
	); err != nil {
		return nil, err
	}

	var err error
	if item.Images, err = decodeList(images); err != nil {
		return nil, err
	}
	if item.Videos, err = decodeList(videos); err != nil {
		return nil, err
	}
	return &item, nil
}
