package handlers

import (
	"errors"

	"feiyi/internal/dto"
	"feiyi/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type CatalogHandler struct {
	catalog *service.CatalogService
	logger  *zap.Logger
}

func NewCatalogHandler(catalog *service.CatalogService, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalog: catalog,
		logger:  logger,
	}
}

// ListCategories godoc
// @Summary List heritage categories
// @Description Returns the ten fixed intangible-heritage categories
// @Tags catalog
// @Produce json
// @Success 200 {array} dto.CategoryResponse
// @Router /api/categories [get]
func (h *CatalogHandler) ListCategories(c *fiber.Ctx) error {
	return c.JSON(dto.NewCategories(h.catalog.ListCategories()))
}

// GetCategory godoc
// @Summary Get category detail
// @Description Returns a category together with every item filed under it
// @Tags catalog
// @Produce json
// @Param id path int true "Category ID"
// @Success 200 {object} dto.CategoryDetailResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/category/{id} [get]
func (h *CatalogHandler) GetCategory(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "分类不存在",
		})
	}

	detail, err := h.catalog.GetCategory(c.Context(), int64(id))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "分类不存在",
			})
		}
		h.logger.Error("Failed to get category", zap.Int("category_id", id), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get category",
		})
	}

	return c.JSON(dto.NewCategoryDetail(detail))
}

// ListItems godoc
// @Summary List heritage items
// @Description Paginated items, newest first, optionally filtered by category and keyword (name or description)
// @Tags catalog
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(12)
// @Param category_id query int false "Category ID"
// @Param keyword query string false "Case-sensitive substring"
// @Success 200 {object} dto.ItemPageResponse
// @Router /api/items [get]
func (h *CatalogHandler) ListItems(c *fiber.Ctx) error {
	page, err := h.catalog.ListItems(c.Context(), pageRequest(c))
	if err != nil {
		h.logger.Error("Failed to list items", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list items",
		})
	}
	return c.JSON(dto.NewItemPage(page))
}

// GetItem godoc
// @Summary Get item detail
// @Description Returns an item with its related knowledge entries and up to four items of the same category
// @Tags catalog
// @Produce json
// @Param id path int true "Item ID"
// @Success 200 {object} dto.ItemDetailResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/item/{id} [get]
func (h *CatalogHandler) GetItem(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "项目不存在",
		})
	}

	detail, err := h.catalog.GetItem(c.Context(), int64(id))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "项目不存在",
			})
		}
		h.logger.Error("Failed to get item", zap.Int("item_id", id), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get item",
		})
	}

	return c.JSON(dto.NewItemDetail(detail))
}

// ListKnowledge godoc
// @Summary List knowledge entries
// @Description Paginated knowledge entries, newest first, optionally filtered by category and keyword (title, content or keywords)
// @Tags catalog
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Entries per page" default(10)
// @Param category_id query int false "Category ID"
// @Param keyword query string false "Case-sensitive substring"
// @Success 200 {object} dto.KnowledgePageResponse
// @Router /api/knowledge [get]
func (h *CatalogHandler) ListKnowledge(c *fiber.Ctx) error {
	page, err := h.catalog.ListKnowledge(c.Context(), pageRequest(c))
	if err != nil {
		h.logger.Error("Failed to list knowledge", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list knowledge",
		})
	}
	return c.JSON(dto.NewKnowledgePage(page))
}

// Search godoc
// @Summary Global search
// @Description Up to ten matching items and ten matching knowledge entries
// @Tags catalog
// @Produce json
// @Param keyword query string true "Case-sensitive substring"
// @Success 200 {object} dto.SearchResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/search [get]
func (h *CatalogHandler) Search(c *fiber.Ctx) error {
	result, err := h.catalog.Search(c.Context(), c.Query("keyword"))
	if err != nil {
		if errors.Is(err, service.ErrInvalidArgument) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "搜索关键词不能为空",
			})
		}
		h.logger.Error("Search failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Search failed",
		})
	}
	return c.JSON(dto.NewSearch(result))
}

// pageRequest reads the shared listing parameters. Unparsable numbers count as absent.
func pageRequest(c *fiber.Ctx) service.PageRequest {
	return service.PageRequest{
		CategoryID: int64(c.QueryInt("category_id", 0)),
		Keyword:    c.Query("keyword"),
		Page:       c.QueryInt("page", 0),
		PerPage:    c.QueryInt("per_page", 0),
	}
}
