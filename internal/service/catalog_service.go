package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"feiyi/internal/models"
	"feiyi/internal/repository"

	"go.uber.org/zap"
)

const (
	DefaultItemsPerPage     = 12
	DefaultKnowledgePerPage = 10
	SearchLimit             = 10
	RelatedItemsLimit       = 4
)

type ItemStore interface {
	GetByID(ctx context.Context, id int64) (*models.Item, error)
	ListByCategory(ctx context.Context, categoryID int64) ([]*models.Item, error)
	List(ctx context.Context, filter repository.ItemFilter, limit, offset int) ([]*models.Item, int, error)
	Search(ctx context.Context, keyword string, limit int) ([]*models.Item, error)
	ListRelated(ctx context.Context, categoryID, excludeID int64, limit int) ([]*models.Item, error)
}

type KnowledgeStore interface {
	ListByItem(ctx context.Context, itemID int64) ([]*models.KnowledgeEntry, error)
	List(ctx context.Context, filter repository.KnowledgeFilter, limit, offset int) ([]*models.KnowledgeEntry, int, error)
	Search(ctx context.Context, keyword string, limit int) ([]*models.KnowledgeEntry, error)
}

// PageRequest selects one page of a filtered listing. Non-positive Page or
// PerPage fall back to the listing's defaults.
type PageRequest struct {
	CategoryID int64
	Keyword    string
	Page       int
	PerPage    int
}

type Page[T any] struct {
	Items       []T
	Total       int
	Pages       int
	CurrentPage int
	PerPage     int
}

type CategoryDetail struct {
	Category models.Category
	Items    []*models.Item
}

type ItemDetail struct {
	Item             *models.Item
	Category         *models.Category // nil when the item's category id is unknown
	RelatedKnowledge []*models.KnowledgeEntry
	RelatedItems     []*models.Item
}

type SearchResult struct {
	Keyword   string
	Items     []*models.Item
	Knowledge []*models.KnowledgeEntry
}

// CatalogService answers read-only queries over items and knowledge.
type CatalogService struct {
	items     ItemStore
	knowledge KnowledgeStore
	logger    *zap.Logger
}

func NewCatalogService(items ItemStore, knowledge KnowledgeStore, logger *zap.Logger) *CatalogService {
	return &CatalogService{
		items:     items,
		knowledge: knowledge,
		logger:    logger,
	}
}

func (s *CatalogService) ListCategories() []models.Category {
	return models.Categories()
}

func (s *CatalogService) GetCategory(ctx context.Context, id int64) (*CategoryDetail, error) {
	category, ok := models.FindCategory(id)
	if !ok {
		return nil, fmt.Errorf("category %d: %w", id, ErrNotFound)
	}

	items, err := s.items.ListByCategory(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list category items: %w", err)
	}

	return &CategoryDetail{Category: category, Items: items}, nil
}

func (s *CatalogService) ListItems(ctx context.Context, req PageRequest) (*Page[*models.Item], error) {
	page, perPage := normalizePage(req.Page, req.PerPage, DefaultItemsPerPage)

	items, total, err := s.items.List(ctx,
		repository.ItemFilter{CategoryID: req.CategoryID, Keyword: req.Keyword},
		perPage, pageOffset(page, perPage),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}

	return newPage(items, total, page, perPage), nil
}

func (s *CatalogService) GetItem(ctx context.Context, id int64) (*ItemDetail, error) {
	item, err := s.items.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("item %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get item: %w", err)
	}

	knowledge, err := s.knowledge.ListByItem(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list item knowledge: %w", err)
	}

	related, err := s.items.ListRelated(ctx, item.CategoryID, item.ID, RelatedItemsLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list related items: %w", err)
	}

	detail := &ItemDetail{Item: item, RelatedKnowledge: knowledge, RelatedItems: related}
	if c, ok := models.FindCategory(item.CategoryID); ok {
		detail.Category = &c
	}
	return detail, nil
}

func (s *CatalogService) ListKnowledge(ctx context.Context, req PageRequest) (*Page[*models.KnowledgeEntry], error) {
	page, perPage := normalizePage(req.Page, req.PerPage, DefaultKnowledgePerPage)

	entries, total, err := s.knowledge.List(ctx,
		repository.KnowledgeFilter{CategoryID: req.CategoryID, Keyword: req.Keyword},
		perPage, pageOffset(page, perPage),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list knowledge: %w", err)
	}

	return newPage(entries, total, page, perPage), nil
}

// Search matches keyword against items and knowledge, each capped at SearchLimit.
func (s *CatalogService) Search(ctx context.Context, keyword string) (*SearchResult, error) {
	if strings.TrimSpace(keyword) == "" {
		return nil, fmt.Errorf("keyword is required: %w", ErrInvalidArgument)
	}

	items, err := s.items.Search(ctx, keyword, SearchLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to search items: %w", err)
	}
	knowledge, err := s.knowledge.Search(ctx, keyword, SearchLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to search knowledge: %w", err)
	}

	s.logger.Debug("Search completed",
		zap.String("keyword", keyword),
		zap.Int("items", len(items)),
		zap.Int("knowledge", len(knowledge)),
	)

	return &SearchResult{Keyword: keyword, Items: items, Knowledge: knowledge}, nil
}

func normalizePage(page, perPage, defaultPerPage int) (int, int) {
	if page <= 0 {
		page = 1
	}
	if perPage <= 0 {
		perPage = defaultPerPage
	}
	return page, perPage
}

// pageOffset returns the row offset of page, saturating at math.MaxInt so a
// page far past the end still yields an empty result instead of wrapping.
func pageOffset(page, perPage int) int {
	if page-1 > math.MaxInt/perPage {
		return math.MaxInt
	}
	return (page - 1) * perPage
}

func pageCount(total, perPage int) int {
	pages := total / perPage
	if total%perPage != 0 {
		pages++
	}
	return pages
}

func newPage[T any](items []T, total, page, perPage int) *Page[T] {
	if items == nil {
		items = []T{}
	}
	return &Page[T]{
		Items:       items,
		Total:       total,
		Pages:       pageCount(total, perPage),
		CurrentPage: page,
		PerPage:     perPage,
	}
}
