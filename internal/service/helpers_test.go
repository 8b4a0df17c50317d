package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"feiyi/internal/models"
	"feiyi/internal/repository"
	"feiyi/pkg/config"
	"feiyi/pkg/database"
	"feiyi/pkg/metrics"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type testStores struct {
	items        *repository.ItemRepository
	knowledge    *repository.KnowledgeRepository
	interactions *repository.InteractionRepository
}

func newTestStores(t *testing.T) testStores {
	t.Helper()
	db, err := database.Open(context.Background(),
		&config.DatabaseConfig{Driver: config.DriverSQLite, DSN: database.MemoryDSN}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return testStores{
		items:        repository.NewItemRepository(db, zap.NewNop()),
		knowledge:    repository.NewKnowledgeRepository(db, zap.NewNop()),
		interactions: repository.NewInteractionRepository(db, zap.NewNop()),
	}
}

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func (s testStores) addItem(t *testing.T, name string, categoryID int64, description string) *models.Item {
	t.Helper()
	it := &models.Item{Name: name, CategoryID: categoryID, Description: description}
	n, err := s.items.Count(context.Background())
	require.NoError(t, err)
	it.CreatedAt = epoch.Add(time.Duration(n) * time.Hour)
	require.NoError(t, s.items.Create(context.Background(), it))
	return it
}

func (s testStores) addKnowledge(t *testing.T, title, content string, itemID *int64) *models.KnowledgeEntry {
	t.Helper()
	e := &models.KnowledgeEntry{Title: title, Content: content, ItemID: itemID}
	n, err := s.knowledge.Count(context.Background())
	require.NoError(t, err)
	e.CreatedAt = epoch.Add(time.Duration(n) * time.Hour)
	require.NoError(t, s.knowledge.Create(context.Background(), e))
	return e
}

// stubCompleter records prompts and replies with a fixed answer or error.
type stubCompleter struct {
	mu      sync.Mutex
	answer  string
	err     error
	block   bool
	prompts []string
}

func (s *stubCompleter) Provider() string { return "stub" }

func (s *stubCompleter) Complete(ctx context.Context, systemPrompt, question string) (string, error) {
	s.mu.Lock()
	s.prompts = append(s.prompts, systemPrompt)
	s.mu.Unlock()

	if s.block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return s.answer, s.err
}

func (s *stubCompleter) lastPrompt() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.prompts) == 0 {
		return ""
	}
	return s.prompts[len(s.prompts)-1]
}

func newResolver(c ChatCompleter) (*AnswerResolver, *metrics.Metrics) {
	m := metrics.New("feiyi")
	return NewAnswerResolver(c, time.Second, m, zap.NewNop()), m
}

func int64Ptr(v int64) *int64 { return &v }
