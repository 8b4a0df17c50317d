package dto

import (
	"feiyi/internal/models"
	"feiyi/internal/service"

	"github.com/samber/lo"
)

type ChatRequest struct {
	Question   string `json:"question"`
	SessionID  string `json:"session_id"`
	CategoryID *int64 `json:"category_id,omitempty"`
	ItemID     *int64 `json:"item_id,omitempty"`
}

type ChatResponse struct {
	Answer    string `json:"answer"`
	SessionID string `json:"session_id"`
	Timestamp string `json:"timestamp"`
}

type AIStatusResponse struct {
	Configured bool   `json:"configured"`
	Provider   string `json:"provider,omitempty"`
}

type InteractionResponse struct {
	ID         int64  `json:"id"`
	SessionID  string `json:"session_id"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	CategoryID *int64 `json:"category_id"`
	ItemID     *int64 `json:"item_id"`
	CreatedAt  string `json:"created_at"`
}

func NewChatResponse(r *service.ChatResponse) ChatResponse {
	return ChatResponse{
		Answer:    r.Answer,
		SessionID: r.SessionID,
		Timestamp: r.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z07:00"),
	}
}

func NewInteractions(list []*models.Interaction) []InteractionResponse {
	return lo.Map(list, func(in *models.Interaction, _ int) InteractionResponse {
		return InteractionResponse{
			ID:         in.ID,
			SessionID:  in.SessionID,
			Question:   in.Question,
			Answer:     in.Answer,
			CategoryID: in.CategoryID,
			ItemID:     in.ItemID,
			CreatedAt:  formatTime(in.CreatedAt),
		}
	})
}
