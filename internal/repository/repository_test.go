package repository

import (
	"context"
	"testing"
	"time"

	"feiyi/internal/models"
	"feiyi/pkg/config"
	"feiyi/pkg/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func openTestDB(t *testing.T) *database.DB {
	t.Helper()
	db, err := database.Open(context.Background(),
		&config.DatabaseConfig{Driver: config.DriverSQLite, DSN: database.MemoryDSN}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func ptr(v int64) *int64 { return &v }

var base = time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)

func seedItems(t *testing.T, repo *ItemRepository, items ...*models.Item) {
	t.Helper()
	for i, it := range items {
		if it.CreatedAt.IsZero() {
			it.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		}
		require.NoError(t, repo.Create(context.Background(), it))
	}
}

func TestItemRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewItemRepository(openTestDB(t), zap.NewNop())

	in := &models.Item{
		Name:                    "昆曲",
		CategoryID:              4,
		Description:             "百戏之祖",
		OriginLocation:          "江苏昆山",
		HistoricalBackground:    "元末明初",
		Characteristics:         "婉转细腻",
		CulturalValue:           "人类口述和非物质遗产代表作",
		InheritanceStatus:       "良好",
		ProtectionMeasures:      "设立昆曲剧院",
		ProtectionLevel:         "世界级",
		RepresentativeInheritor: "张继青",
		DeclarationDate:         "2001-05-18",
		Images:                  []string{"/static/images/kunqu.jpg"},
		Videos:                  []string{},
	}
	require.NoError(t, repo.Create(ctx, in))
	require.NotZero(t, in.ID)

	got, err := repo.GetByID(ctx, in.ID)
	require.NoError(t, err)

	assert.Equal(t, in.Name, got.Name)
	assert.Equal(t, in.CategoryID, got.CategoryID)
	assert.Equal(t, in.Description, got.Description)
	assert.Equal(t, in.OriginLocation, got.OriginLocation)
	assert.Equal(t, in.HistoricalBackground, got.HistoricalBackground)
	assert.Equal(t, in.Characteristics, got.Characteristics)
	assert.Equal(t, in.CulturalValue, got.CulturalValue)
	assert.Equal(t, in.InheritanceStatus, got.InheritanceStatus)
	assert.Equal(t, in.ProtectionMeasures, got.ProtectionMeasures)
	assert.Equal(t, in.ProtectionLevel, got.ProtectionLevel)
	assert.Equal(t, in.RepresentativeInheritor, got.RepresentativeInheritor)
	assert.Equal(t, in.DeclarationDate, got.DeclarationDate)
	assert.Equal(t, in.Images, got.Images)
	assert.Equal(t, []string{}, got.Videos)
	assert.False(t, got.CreatedAt.IsZero())
	assert.False(t, got.UpdatedAt.Before(got.CreatedAt))
}

func TestItemCreateValidates(t *testing.T) {
	ctx := context.Background()
	repo := NewItemRepository(openTestDB(t), zap.NewNop())

	assert.ErrorIs(t, repo.Create(ctx, &models.Item{CategoryID: 1}), ErrInvalid)
	assert.ErrorIs(t, repo.Create(ctx, &models.Item{Name: "x", CategoryID: 11}), ErrInvalid)
}

func TestItemUpdateRefreshesTimestamp(t *testing.T) {
	ctx := context.Background()
	repo := NewItemRepository(openTestDB(t), zap.NewNop())

	it := &models.Item{Name: "京剧", CategoryID: 4, CreatedAt: base}
	require.NoError(t, repo.Create(ctx, it))

	it.Description = "国粹"
	require.NoError(t, repo.Update(ctx, it))

	got, err := repo.GetByName(ctx, "京剧")
	require.NoError(t, err)
	assert.Equal(t, "国粹", got.Description)
	assert.True(t, got.UpdatedAt.After(got.CreatedAt))

	missing := &models.Item{ID: 999, Name: "none", CategoryID: 1}
	assert.ErrorIs(t, repo.Update(ctx, missing), ErrNotFound)
}

func TestItemUpdateValidates(t *testing.T) {
	ctx := context.Background()
	repo := NewItemRepository(openTestDB(t), zap.NewNop())

	it := &models.Item{Name: "太极拳", CategoryID: 6}
	require.NoError(t, repo.Create(ctx, it))

	it.CategoryID = 42
	assert.ErrorIs(t, repo.Update(ctx, it), ErrInvalid)
	it.CategoryID = 6
	it.Name = ""
	assert.ErrorIs(t, repo.Update(ctx, it), ErrInvalid)

	got, err := repo.GetByID(ctx, it.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(6), got.CategoryID)
	assert.Equal(t, "太极拳", got.Name)
}

func TestItemGetMissing(t *testing.T) {
	repo := NewItemRepository(openTestDB(t), zap.NewNop())
	_, err := repo.GetByID(context.Background(), 42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestItemListFiltersAndPaginates(t *testing.T) {
	ctx := context.Background()
	repo := NewItemRepository(openTestDB(t), zap.NewNop())
	seedItems(t, repo,
		&models.Item{Name: "昆曲", CategoryID: 4, Description: "百戏之祖"},
		&models.Item{Name: "京剧", CategoryID: 4, Description: "国粹"},
		&models.Item{Name: "太极拳", CategoryID: 6, Description: "Taiji boxing"},
		&models.Item{Name: "蜀锦织造技艺", CategoryID: 8, Description: "中国四大名锦之一", Characteristics: "昆曲纹样"},
	)

	t.Run("newest first", func(t *testing.T) {
		items, total, err := repo.List(ctx, ItemFilter{}, 12, 0)
		require.NoError(t, err)
		assert.Equal(t, 4, total)
		names := make([]string, 0, len(items))
		for _, it := range items {
			names = append(names, it.Name)
		}
		assert.Equal(t, []string{"蜀锦织造技艺", "太极拳", "京剧", "昆曲"}, names)
	})

	t.Run("category", func(t *testing.T) {
		items, total, err := repo.List(ctx, ItemFilter{CategoryID: 4}, 12, 0)
		require.NoError(t, err)
		assert.Equal(t, 2, total)
		for _, it := range items {
			assert.Equal(t, int64(4), it.CategoryID)
		}
	})

	t.Run("keyword ignores characteristics", func(t *testing.T) {
		items, total, err := repo.List(ctx, ItemFilter{Keyword: "昆曲"}, 12, 0)
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		require.Len(t, items, 1)
		assert.Equal(t, "昆曲", items[0].Name)
	})

	t.Run("keyword is case sensitive", func(t *testing.T) {
		_, total, err := repo.List(ctx, ItemFilter{Keyword: "taiji"}, 12, 0)
		require.NoError(t, err)
		assert.Zero(t, total)

		_, total, err = repo.List(ctx, ItemFilter{Keyword: "Taiji"}, 12, 0)
		require.NoError(t, err)
		assert.Equal(t, 1, total)
	})

	t.Run("percent is literal", func(t *testing.T) {
		_, total, err := repo.List(ctx, ItemFilter{Keyword: "%"}, 12, 0)
		require.NoError(t, err)
		assert.Zero(t, total)
	})

	t.Run("pages", func(t *testing.T) {
		first, total, err := repo.List(ctx, ItemFilter{}, 3, 0)
		require.NoError(t, err)
		assert.Equal(t, 4, total)
		assert.Len(t, first, 3)

		again, _, err := repo.List(ctx, ItemFilter{}, 3, 0)
		require.NoError(t, err)
		assert.Equal(t, first, again)

		second, _, err := repo.List(ctx, ItemFilter{}, 3, 3)
		require.NoError(t, err)
		assert.Len(t, second, 1)

		beyond, total, err := repo.List(ctx, ItemFilter{}, 3, 300)
		require.NoError(t, err)
		assert.Equal(t, 4, total)
		assert.Empty(t, beyond)
	})
}

func TestItemSearchAndRelated(t *testing.T) {
	ctx := context.Background()
	repo := NewItemRepository(openTestDB(t), zap.NewNop())
	seedItems(t, repo,
		&models.Item{Name: "昆曲", CategoryID: 4},
		&models.Item{Name: "蜀锦", CategoryID: 8, Characteristics: "昆曲纹样"},
	)
	for i := 0; i < 12; i++ {
		seedItems(t, repo, &models.Item{Name: "地方戏", CategoryID: 4, Description: "受昆曲影响"})
	}

	found, err := repo.Search(ctx, "昆曲", 10)
	require.NoError(t, err)
	assert.Len(t, found, 10)
	assert.Equal(t, "昆曲", found[0].Name)
	assert.Equal(t, "蜀锦", found[1].Name)

	related, err := repo.ListRelated(ctx, 4, found[0].ID, 4)
	require.NoError(t, err)
	assert.Len(t, related, 4)
	for _, it := range related {
		assert.NotEqual(t, found[0].ID, it.ID)
		assert.Equal(t, int64(4), it.CategoryID)
	}

	all, err := repo.ListByCategory(ctx, 4)
	require.NoError(t, err)
	assert.Len(t, all, 13)

	none, err := repo.ListByCategory(ctx, 11)
	require.NoError(t, err)
	assert.Empty(t, none)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 14, n)
}

func TestKnowledgeRepository(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	repo := NewKnowledgeRepository(db, zap.NewNop())

	entries := []*models.KnowledgeEntry{
		{Title: "昆曲的历史", Content: "昆曲起源于元末明初", CategoryID: ptr(4), ItemID: ptr(1), Keywords: "昆曲,历史", CreatedAt: base},
		{Title: "针灸", Content: "经络学说", CategoryID: ptr(9), Keywords: "中医", CreatedAt: base.Add(time.Minute)},
		{Title: "孤立条目", Content: "dangling", ItemID: ptr(77), Keywords: "昆曲", CreatedAt: base.Add(2 * time.Minute)},
		{Title: "昆曲的唱腔", Content: "水磨调", ItemID: ptr(1), CreatedAt: base.Add(3 * time.Minute)},
	}
	for _, e := range entries {
		require.NoError(t, repo.Create(ctx, e))
	}
	assert.ErrorIs(t, repo.Create(ctx, &models.KnowledgeEntry{Content: "x"}), ErrInvalid)

	byItem, err := repo.ListByItem(ctx, 1)
	require.NoError(t, err)
	require.Len(t, byItem, 2)
	assert.Equal(t, "昆曲的历史", byItem[0].Title)
	assert.Equal(t, "昆曲的唱腔", byItem[1].Title)
	assert.Equal(t, int64(4), *byItem[0].CategoryID)
	assert.Nil(t, byItem[1].CategoryID)

	dangling, err := repo.ListByItem(ctx, 77)
	require.NoError(t, err)
	require.Len(t, dangling, 1)

	list, total, err := repo.List(ctx, KnowledgeFilter{Keyword: "昆曲"}, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Equal(t, "昆曲的唱腔", list[0].Title)

	list, total, err = repo.List(ctx, KnowledgeFilter{CategoryID: 9}, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, "针灸", list[0].Title)

	found, err := repo.Search(ctx, "中医", 10)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "针灸", found[0].Title)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
}

func TestInteractionRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewInteractionRepository(openTestDB(t), zap.NewNop())

	first := &models.Interaction{SessionID: "s1", Question: "什么是昆曲", Answer: "昆曲是...", ItemID: ptr(1)}
	require.NoError(t, repo.Create(ctx, first))
	assert.NotZero(t, first.ID)
	assert.False(t, first.CreatedAt.IsZero())

	require.NoError(t, repo.Create(ctx, &models.Interaction{Question: "你好", Answer: "您好"}))
	assert.ErrorIs(t, repo.Create(ctx, &models.Interaction{SessionID: "s1"}), ErrInvalid)

	got, err := repo.ListBySession(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "什么是昆曲", got[0].Question)
	assert.Equal(t, "昆曲是...", got[0].Answer)
	assert.Equal(t, int64(1), *got[0].ItemID)
	assert.Nil(t, got[0].CategoryID)

	deleted, err := repo.DeleteOlderThan(ctx, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	assert.Zero(t, deleted)

	deleted, err = repo.DeleteOlderThan(ctx, time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)
}
