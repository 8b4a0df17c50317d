package dto

import (
	"time"

	"feiyi/internal/models"
	"feiyi/internal/service"

	"github.com/samber/lo"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type CategoryResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type CategoryDetailResponse struct {
	CategoryResponse
	Items []ItemResponse `json:"items"`
}

type ItemResponse struct {
	ID                      int64    `json:"id"`
	Name                    string   `json:"name"`
	CategoryID              int64    `json:"category_id"`
	Description             string   `json:"description"`
	OriginLocation          string   `json:"origin_location"`
	HistoricalBackground    string   `json:"historical_background"`
	Characteristics         string   `json:"characteristics"`
	CulturalValue           string   `json:"cultural_value"`
	InheritanceStatus       string   `json:"inheritance_status"`
	ProtectionMeasures      string   `json:"protection_measures"`
	ProtectionLevel         string   `json:"protection_level"`
	RepresentativeInheritor string   `json:"representative_inheritor"`
	DeclarationDate         string   `json:"declaration_date"`
	Images                  []string `json:"images"`
	Videos                  []string `json:"videos"`
	CreatedAt               string   `json:"created_at"`
	UpdatedAt               string   `json:"updated_at"`
}

type ItemDetailResponse struct {
	ItemResponse
	RelatedKnowledge []KnowledgeResponse `json:"related_knowledge"`
	RelatedItems     []ItemResponse      `json:"related_items"`
}

type KnowledgeResponse struct {
	ID         int64  `json:"id"`
	Title      string `json:"title"`
	Content    string `json:"content"`
	CategoryID *int64 `json:"category_id"`
	ItemID     *int64 `json:"item_id"`
	Keywords   string `json:"keywords"`
	Source     string `json:"source"`
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at"`
}

type PageResponse[T any] struct {
	Items       []T `json:"items"`
	Total       int `json:"total"`
	Pages       int `json:"pages"`
	CurrentPage int `json:"current_page"`
	PerPage     int `json:"per_page"`
}

// ItemPageResponse and KnowledgePageResponse name the generic envelope for swagger.
type ItemPageResponse = PageResponse[ItemResponse]

type KnowledgePageResponse = PageResponse[KnowledgeResponse]

type SearchResponse struct {
	Items     []ItemResponse      `json:"items"`
	Knowledge []KnowledgeResponse `json:"knowledge"`
	Keyword   string              `json:"keyword"`
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func NewCategory(c models.Category) CategoryResponse {
	return CategoryResponse{ID: c.ID, Name: c.Name, Description: c.Description}
}

func NewCategories(cs []models.Category) []CategoryResponse {
	return lo.Map(cs, func(c models.Category, _ int) CategoryResponse { return NewCategory(c) })
}

func NewCategoryDetail(d *service.CategoryDetail) CategoryDetailResponse {
	return CategoryDetailResponse{
		CategoryResponse: NewCategory(d.Category),
		Items:            NewItems(d.Items),
	}
}

func NewItem(it *models.Item) ItemResponse {
	return ItemResponse{
		ID:                      it.ID,
		Name:                    it.Name,
		CategoryID:              it.CategoryID,
		Description:             it.Description,
		OriginLocation:          it.OriginLocation,
		HistoricalBackground:    it.HistoricalBackground,
		Characteristics:         it.Characteristics,
		CulturalValue:           it.CulturalValue,
		InheritanceStatus:       it.InheritanceStatus,
		ProtectionMeasures:      it.ProtectionMeasures,
		ProtectionLevel:         it.ProtectionLevel,
		RepresentativeInheritor: it.RepresentativeInheritor,
		DeclarationDate:         it.DeclarationDate,
		Images:                  lo.Ternary(it.Images == nil, []string{}, it.Images),
		Videos:                  lo.Ternary(it.Videos == nil, []string{}, it.Videos),
		CreatedAt:               formatTime(it.CreatedAt),
		UpdatedAt:               formatTime(it.UpdatedAt),
	}
}

func NewItems(items []*models.Item) []ItemResponse {
	return lo.Map(items, func(it *models.Item, _ int) ItemResponse { return NewItem(it) })
}

func NewItemDetail(d *service.ItemDetail) ItemDetailResponse {
	return ItemDetailResponse{
		ItemResponse:     NewItem(d.Item),
		RelatedKnowledge: NewKnowledgeList(d.RelatedKnowledge),
		RelatedItems:     NewItems(d.RelatedItems),
	}
}

func NewKnowledge(e *models.KnowledgeEntry) KnowledgeResponse {
	return KnowledgeResponse{
		ID:         e.ID,
		Title:      e.Title,
		Content:    e.Content,
		CategoryID: e.CategoryID,
		ItemID:     e.ItemID,
		Keywords:   e.Keywords,
		Source:     e.Source,
		CreatedAt:  formatTime(e.CreatedAt),
		UpdatedAt:  formatTime(e.UpdatedAt),
	}
}

func NewKnowledgeList(entries []*models.KnowledgeEntry) []KnowledgeResponse {
	return lo.Map(entries, func(e *models.KnowledgeEntry, _ int) KnowledgeResponse { return NewKnowledge(e) })
}

func NewItemPage(p *service.Page[*models.Item]) ItemPageResponse {
	return ItemPageResponse{
		Items:       NewItems(p.Items),
		Total:       p.Total,
		Pages:       p.Pages,
		CurrentPage: p.CurrentPage,
		PerPage:     p.PerPage,
	}
}

func NewKnowledgePage(p *service.Page[*models.KnowledgeEntry]) KnowledgePageResponse {
	return KnowledgePageResponse{
		Items:       NewKnowledgeList(p.Items),
		Total:       p.Total,
		Pages:       p.Pages,
		CurrentPage: p.CurrentPage,
		PerPage:     p.PerPage,
	}
}

func NewSearch(r *service.SearchResult) SearchResponse {
	return SearchResponse{
		Items:     NewItems(r.Items),
		Knowledge: NewKnowledgeList(r.Knowledge),
		Keyword:   r.Keyword,
	}
}
