package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"feiyi/internal/models"
	"feiyi/internal/repository"

	"github.com/samber/lo"
	"go.uber.org/zap"
)

const (
	contextTopK         = 3
	contextSnippetRunes = 200
)

// RAGService turns the page a visitor is chatting from into background notes
// for the remote model.
type RAGService struct {
	items     ItemStore
	knowledge KnowledgeStore
	logger    *zap.Logger
}

func NewRAGService(items ItemStore, knowledge KnowledgeStore, logger *zap.Logger) *RAGService {
	return &RAGService{
		items:     items,
		knowledge: knowledge,
		logger:    logger,
	}
}

// BuildContext returns an empty string when neither id resolves to anything.
func (s *RAGService) BuildContext(ctx context.Context, categoryID, itemID *int64) string {
	var builder strings.Builder

	if itemID != nil {
		item, err := s.items.GetByID(ctx, *itemID)
		switch {
		case errors.Is(err, repository.ErrNotFound):
		case err != nil:
			s.logger.Warn("Failed to load item for chat context", zap.Int64("item_id", *itemID), zap.Error(err))
		default:
			s.writeItem(ctx, &builder, item)
		}
	}

	if categoryID != nil {
		if c, ok := models.FindCategory(*categoryID); ok {
			builder.WriteString(fmt.Sprintf("用户正在浏览分类：%s（%s）\n", c.Name, c.Description))
		}
	}

	if builder.Len() == 0 {
		return ""
	}
	return "参考资料：\n\n" + builder.String()
}

func (s *RAGService) writeItem(ctx context.Context, builder *strings.Builder, item *models.Item) {
	builder.WriteString(fmt.Sprintf("用户正在浏览项目：%s\n", item.Name))
	if item.Description != "" {
		builder.WriteString(fmt.Sprintf("   %s\n", truncateRunes(item.Description, contextSnippetRunes)))
	}

	entries, err := s.knowledge.ListByItem(ctx, item.ID)
	if err != nil {
		s.logger.Warn("Failed to load knowledge for chat context", zap.Int64("item_id", item.ID), zap.Error(err))
		return
	}
	for i, e := range lo.Slice(entries, 0, contextTopK) {
		builder.WriteString(fmt.Sprintf("%d. %s\n   %s\n", i+1, e.Title, truncateRunes(e.Content, contextSnippetRunes)))
	}
}
