package handlers

import (
	"errors"

	"feiyi/internal/models"
	"feiyi/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const homeLatestItems = 6

// PageHandler renders the HTML site from the same queries the JSON API uses.
type PageHandler struct {
	catalog     *service.CatalogService
	chatService *service.ChatService
	logger      *zap.Logger
}

func NewPageHandler(catalog *service.CatalogService, chatService *service.ChatService, logger *zap.Logger) *PageHandler {
	return &PageHandler{
		catalog:     catalog,
		chatService: chatService,
		logger:      logger,
	}
}

func (h *PageHandler) Index(c *fiber.Ctx) error {
	latest, err := h.catalog.ListItems(c.Context(), service.PageRequest{PerPage: homeLatestItems})
	if err != nil {
		return h.serverError(c, "Failed to load latest items", err)
	}
	configured, _ := h.chatService.Status()

	return c.Render("index", fiber.Map{
		"Title":        "首页",
		"Categories":   h.catalog.ListCategories(),
		"Latest":       latest.Items,
		"AIConfigured": configured,
	})
}

func (h *PageHandler) Categories(c *fiber.Ctx) error {
	return c.Render("categories", fiber.Map{
		"Title":      "非遗分类",
		"Categories": h.catalog.ListCategories(),
	})
}

func (h *PageHandler) CategoryDetail(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return h.notFound(c, "分类不存在")
	}

	detail, err := h.catalog.GetCategory(c.Context(), int64(id))
	if errors.Is(err, service.ErrNotFound) {
		return h.notFound(c, "分类不存在")
	}
	if err != nil {
		return h.serverError(c, "Failed to load category", err)
	}

	return c.Render("category_detail", fiber.Map{
		"Title":    detail.Category.Name,
		"Category": detail.Category,
		"Intro":    models.CategoryIntro(detail.Category.ID),
		"Items":    detail.Items,
	})
}

func (h *PageHandler) ItemDetail(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return h.notFound(c, "项目不存在")
	}

	detail, err := h.catalog.GetItem(c.Context(), int64(id))
	if errors.Is(err, service.ErrNotFound) {
		return h.notFound(c, "项目不存在")
	}
	if err != nil {
		return h.serverError(c, "Failed to load item", err)
	}

	return c.Render("item_detail", fiber.Map{
		"Title":            detail.Item.Name,
		"Item":             detail.Item,
		"Category":         detail.Category,
		"RelatedKnowledge": detail.RelatedKnowledge,
		"RelatedItems":     detail.RelatedItems,
	})
}

func (h *PageHandler) Knowledge(c *fiber.Ctx) error {
	req := pageRequest(c)
	page, err := h.catalog.ListKnowledge(c.Context(), req)
	if err != nil {
		return h.serverError(c, "Failed to list knowledge", err)
	}

	return c.Render("knowledge", fiber.Map{
		"Title":      "知识库",
		"Page":       page,
		"Keyword":    req.Keyword,
		"CategoryID": req.CategoryID,
		"Categories": h.catalog.ListCategories(),
	})
}

func (h *PageHandler) Search(c *fiber.Ctx) error {
	keyword := c.Query("keyword")
	result, err := h.catalog.Search(c.Context(), keyword)
	if errors.Is(err, service.ErrInvalidArgument) {
		return c.Status(fiber.StatusBadRequest).Render("search", fiber.Map{
			"Title":   "搜索",
			"Keyword": keyword,
			"Error":   "搜索关键词不能为空",
		})
	}
	if err != nil {
		return h.serverError(c, "Search failed", err)
	}

	return c.Render("search", fiber.Map{
		"Title":   "搜索：" + keyword,
		"Keyword": keyword,
		"Result":  result,
	})
}

func (h *PageHandler) AIChat(c *fiber.Ctx) error {
	configured, _ := h.chatService.Status()
	return c.Render("ai_chat", fiber.Map{
		"Title":      "AI问答",
		"Configured": configured,
		"CategoryID": int64(c.QueryInt("category_id", 0)),
		"ItemID":     int64(c.QueryInt("item_id", 0)),
	})
}

func (h *PageHandler) notFound(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusNotFound).Render("error", fiber.Map{
		"Title":   "页面不存在",
		"Message": message,
	})
}

func (h *PageHandler) serverError(c *fiber.Ctx, msg string, err error) error {
	h.logger.Error(msg, zap.String("path", c.Path()), zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).Render("error", fiber.Map{
		"Title":   "服务器错误",
		"Message": "页面加载失败，请稍后重试。",
	})
}
