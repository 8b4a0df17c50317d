package handlers

import (
	"errors"

	"feiyi/internal/dto"
	"feiyi/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type ChatHandler struct {
	chatService *service.ChatService
	logger      *zap.Logger
}

func NewChatHandler(chatService *service.ChatService, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
		logger:      logger,
	}
}

// Chat godoc
// @Summary Ask the heritage assistant
// @Description Answers from the remote model when configured, otherwise from the local keyword table. Every answered question is logged.
// @Tags ai
// @Accept json
// @Produce json
// @Param request body dto.ChatRequest true "Question"
// @Success 200 {object} dto.ChatResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/ai/chat [post]
func (h *ChatHandler) Chat(c *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	resp, err := h.chatService.Chat(c.Context(), service.ChatRequest{
		Question:   req.Question,
		SessionID:  req.SessionID,
		CategoryID: req.CategoryID,
		ItemID:     req.ItemID,
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidArgument) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "问题不能为空",
			})
		}
		h.logger.Error("Chat failed", zap.String("session_id", req.SessionID), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "AI服务暂时不可用",
		})
	}

	return c.JSON(dto.NewChatResponse(resp))
}

// Status godoc
// @Summary Remote AI status
// @Description Reports whether a remote chat provider is configured
// @Tags ai
// @Produce json
// @Success 200 {object} dto.AIStatusResponse
// @Router /api/ai/status [get]
func (h *ChatHandler) Status(c *fiber.Ctx) error {
	configured, provider := h.chatService.Status()
	return c.JSON(dto.AIStatusResponse{Configured: configured, Provider: provider})
}

// History godoc
// @Summary Session history
// @Description Stored exchanges of one chat session, oldest first
// @Tags ai
// @Produce json
// @Param session_id query string true "Session ID"
// @Success 200 {array} dto.InteractionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/ai/history [get]
func (h *ChatHandler) History(c *fiber.Ctx) error {
	list, err := h.chatService.History(c.Context(), c.Query("session_id"))
	if err != nil {
		if errors.Is(err, service.ErrInvalidArgument) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "session_id is required",
			})
		}
		h.logger.Error("Failed to load chat history", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load chat history",
		})
	}
	return c.JSON(dto.NewInteractions(list))
}
