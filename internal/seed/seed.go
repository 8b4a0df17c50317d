// Package seed loads the sample catalog into an empty or existing content store.
package seed

import (
	"context"
	"errors"
	"fmt"

	"feiyi/internal/models"
	"feiyi/internal/repository"

	"go.uber.org/zap"
)

type ItemStore interface {
	Create(ctx context.Context, item *models.Item) error
	Update(ctx context.Context, item *models.Item) error
	GetByName(ctx context.Context, name string) (*models.Item, error)
}

type KnowledgeStore interface {
	Create(ctx context.Context, entry *models.KnowledgeEntry) error
	Count(ctx context.Context) (int, error)
}

// Result counts what a run changed.
type Result struct {
	ItemsCreated     int
	ItemsUpdated     int
	ItemsSkipped     int
	KnowledgeCreated int
}

type Seeder struct {
	items     ItemStore
	knowledge KnowledgeStore
	logger    *zap.Logger
}

func NewSeeder(items ItemStore, knowledge KnowledgeStore, logger *zap.Logger) *Seeder {
	return &Seeder{
		items:     items,
		knowledge: knowledge,
		logger:    logger,
	}
}

// Run inserts the sample items, matching existing ones by name. With force set
// existing items are overwritten, otherwise they are left alone. Knowledge
// entries are only written into an empty knowledge table.
func (s *Seeder) Run(ctx context.Context, force bool) (Result, error) {
	var res Result
	ids := make(map[string]int64, len(sampleItems))

	for i := range sampleItems {
		item := sampleItems[i]
		item.Images = append([]string(nil), item.Images...)
		item.Videos = append([]string(nil), item.Videos...)

		existing, err := s.items.GetByName(ctx, item.Name)
		switch {
		case errors.Is(err, repository.ErrNotFound):
			if err := s.items.Create(ctx, &item); err != nil {
				return res, fmt.Errorf("creating item %q: %w", item.Name, err)
			}
			ids[item.Name] = item.ID
			res.ItemsCreated++
		case err != nil:
			return res, fmt.Errorf("looking up item %q: %w", item.Name, err)
		case force:
			item.ID = existing.ID
			item.CreatedAt = existing.CreatedAt
			if err := s.items.Update(ctx, &item); err != nil {
				return res, fmt.Errorf("updating item %q: %w", item.Name, err)
			}
			ids[item.Name] = item.ID
			res.ItemsUpdated++
		default:
			ids[item.Name] = existing.ID
			res.ItemsSkipped++
		}
	}

	count, err := s.knowledge.Count(ctx)
	if err != nil {
		return res, fmt.Errorf("counting knowledge entries: %w", err)
	}
	if count > 0 {
		s.logger.Info("Knowledge base already populated, skipping", zap.Int("entries", count))
		return res, nil
	}

	for _, k := range sampleKnowledge {
		entry := k.entry
		if k.itemName != "" {
			if id, ok := ids[k.itemName]; ok {
				entry.ItemID = &id
			}
		}
		if err := s.knowledge.Create(ctx, &entry); err != nil {
			return res, fmt.Errorf("creating knowledge %q: %w", entry.Title, err)
		}
		res.KnowledgeCreated++
	}

	s.logger.Info("Seeding finished",
		zap.Int("items_created", res.ItemsCreated),
		zap.Int("items_updated", res.ItemsUpdated),
		zap.Int("items_skipped", res.ItemsSkipped),
		zap.Int("knowledge_created", res.KnowledgeCreated),
	)
	return res, nil
}
