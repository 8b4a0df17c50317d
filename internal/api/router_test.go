package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	_ "feiyi/docs"
	"feiyi/internal/api/handlers"
	"feiyi/internal/models"
	"feiyi/internal/repository"
	"feiyi/internal/service"
	"feiyi/pkg/config"
	"feiyi/pkg/database"
	"feiyi/pkg/metrics"
	"feiyi/web"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type testApp struct {
	app   *fiber.App
	items *repository.ItemRepository
	know  *repository.KnowledgeRepository
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	logger := zap.NewNop()

	db, err := database.Open(context.Background(),
		&config.DatabaseConfig{Driver: config.DriverSQLite, DSN: database.MemoryDSN}, logger)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	itemRepo := repository.NewItemRepository(db, logger)
	knowledgeRepo := repository.NewKnowledgeRepository(db, logger)
	interactionRepo := repository.NewInteractionRepository(db, logger)

	m := metrics.New("feiyi")
	catalog := service.NewCatalogService(itemRepo, knowledgeRepo, logger)
	resolver := service.NewAnswerResolver(nil, time.Second, m, logger)
	chat := service.NewChatService(resolver,
		service.NewInteractionService(interactionRepo, logger),
		service.NewRAGService(itemRepo, knowledgeRepo, logger),
		logger,
	)

	views := web.NewViews()
	app := SetupRouter(Handlers{
		Catalog: handlers.NewCatalogHandler(catalog, logger),
		Chat:    handlers.NewChatHandler(chat, logger),
		Pages:   handlers.NewPageHandler(catalog, chat, logger),
	}, views, db, m, Options{}, logger)

	return &testApp{app: app, items: itemRepo, know: knowledgeRepo}
}

func (a *testApp) do(t *testing.T, req *http.Request) (*http.Response, []byte) {
	t.Helper()
	resp, err := a.app.Test(req, -1)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, body
}

func (a *testApp) get(t *testing.T, target string) (*http.Response, []byte) {
	return a.do(t, httptest.NewRequest(http.MethodGet, target, nil))
}

func (a *testApp) seed(t *testing.T) *models.Item {
	t.Helper()
	ctx := context.Background()
	kunqu := &models.Item{Name: "昆曲", CategoryID: 4, Description: "百戏之祖", Images: []string{"/static/images/kunqu.jpg"}}
	require.NoError(t, a.items.Create(ctx, kunqu))
	require.NoError(t, a.items.Create(ctx, &models.Item{Name: "京剧", CategoryID: 4, Description: "国粹"}))
	require.NoError(t, a.items.Create(ctx, &models.Item{Name: "太极拳", CategoryID: 6}))
	require.NoError(t, a.know.Create(ctx, &models.KnowledgeEntry{Title: "昆曲的历史", Content: "元末明初", ItemID: &kunqu.ID}))
	return kunqu
}

func TestCategoriesAPI(t *testing.T) {
	a := newTestApp(t)
	a.seed(t)

	resp, body := a.get(t, "/api/categories")
	assert.Equal(t, 200, resp.StatusCode)
	var cats []map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &cats))
	assert.Len(t, cats, 10)

	resp, body = a.get(t, "/api/category/4")
	assert.Equal(t, 200, resp.StatusCode)
	var detail struct {
		ID    int64 `json:"id"`
		Name  string
		Items []struct {
			CategoryID int64 `json:"category_id"`
		} `json:"items"`
	}
	require.NoError(t, json.Unmarshal(body, &detail))
	assert.Equal(t, "传统戏剧", detail.Name)
	require.Len(t, detail.Items, 2)
	for _, it := range detail.Items {
		assert.Equal(t, int64(4), it.CategoryID)
	}

	for _, target := range []string{"/api/category/11", "/api/category/abc"} {
		resp, body = a.get(t, target)
		assert.Equal(t, 404, resp.StatusCode, target)
		assert.JSONEq(t, `{"error":"分类不存在"}`, string(body))
	}
}

func TestItemsAPI(t *testing.T) {
	a := newTestApp(t)
	kunqu := a.seed(t)

	resp, body := a.get(t, "/api/items?per_page=2")
	assert.Equal(t, 200, resp.StatusCode)
	var page struct {
		Items       []map[string]interface{} `json:"items"`
		Total       int                      `json:"total"`
		Pages       int                      `json:"pages"`
		CurrentPage int                      `json:"current_page"`
		PerPage     int                      `json:"per_page"`
	}
	require.NoError(t, json.Unmarshal(body, &page))
	assert.Equal(t, 3, page.Total)
	assert.Equal(t, 2, page.Pages)
	assert.Equal(t, 1, page.CurrentPage)
	assert.Equal(t, 2, page.PerPage)
	assert.Len(t, page.Items, 2)

	_, body = a.get(t, "/api/items?page=999&keyword="+urlEscape("昆曲"))
	require.NoError(t, json.Unmarshal(body, &page))
	assert.Equal(t, 1, page.Total)
	assert.Empty(t, page.Items)

	resp, body = a.get(t, "/api/items?page=4611686018427387903&per_page=9223372036854775807")
	assert.Equal(t, 200, resp.StatusCode)
	require.NoError(t, json.Unmarshal(body, &page))
	assert.Equal(t, 3, page.Total)
	assert.Equal(t, 1, page.Pages)
	assert.Empty(t, page.Items)

	resp, body = a.get(t, "/api/item/"+itoa(kunqu.ID))
	assert.Equal(t, 200, resp.StatusCode)
	var item struct {
		Name             string   `json:"name"`
		Images           []string `json:"images"`
		RelatedKnowledge []struct {
			Title string `json:"title"`
		} `json:"related_knowledge"`
		RelatedItems []struct {
			Name string `json:"name"`
		} `json:"related_items"`
	}
	require.NoError(t, json.Unmarshal(body, &item))
	assert.Equal(t, "昆曲", item.Name)
	assert.Equal(t, []string{"/static/images/kunqu.jpg"}, item.Images)
	require.Len(t, item.RelatedKnowledge, 1)
	assert.Equal(t, "昆曲的历史", item.RelatedKnowledge[0].Title)
	require.Len(t, item.RelatedItems, 1)
	assert.Equal(t, "京剧", item.RelatedItems[0].Name)

	resp, _ = a.get(t, "/api/item/999")
	assert.Equal(t, 404, resp.StatusCode)
}

func TestKnowledgeAndSearchAPI(t *testing.T) {
	a := newTestApp(t)
	a.seed(t)

	_, body := a.get(t, "/api/knowledge")
	var page struct {
		Items   []map[string]interface{} `json:"items"`
		PerPage int                      `json:"per_page"`
	}
	require.NoError(t, json.Unmarshal(body, &page))
	assert.Equal(t, 10, page.PerPage)
	assert.Len(t, page.Items, 1)

	resp, body := a.get(t, "/api/search")
	assert.Equal(t, 400, resp.StatusCode)
	assert.JSONEq(t, `{"error":"搜索关键词不能为空"}`, string(body))

	resp, body = a.get(t, "/api/search?keyword="+urlEscape("昆曲"))
	assert.Equal(t, 200, resp.StatusCode)
	var res struct {
		Items     []map[string]interface{} `json:"items"`
		Knowledge []map[string]interface{} `json:"knowledge"`
		Keyword   string                   `json:"keyword"`
	}
	require.NoError(t, json.Unmarshal(body, &res))
	assert.Equal(t, "昆曲", res.Keyword)
	assert.Len(t, res.Items, 1)
	assert.Len(t, res.Knowledge, 1)
}

func TestChatAPI(t *testing.T) {
	a := newTestApp(t)

	req := httptest.NewRequest(http.MethodPost, "/api/ai/chat", strings.NewReader(`{"question":"太极拳有什么好处","session_id":"s-1"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, body := a.do(t, req)
	assert.Equal(t, 200, resp.StatusCode)

	var out struct {
		Answer    string `json:"answer"`
		SessionID string `json:"session_id"`
		Timestamp string `json:"timestamp"`
	}
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Contains(t, out.Answer, "太极拳是中国传统武术的代表")
	assert.Equal(t, "s-1", out.SessionID)
	_, err := time.Parse(time.RFC3339Nano, out.Timestamp)
	assert.NoError(t, err)

	resp, body = a.get(t, "/api/ai/history?session_id=s-1")
	assert.Equal(t, 200, resp.StatusCode)
	var history []map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &history))
	require.Len(t, history, 1)
	assert.Equal(t, "太极拳有什么好处", history[0]["question"])

	for _, payload := range []string{`{"question":""}`, `{"session_id":"x"}`, `not json`} {
		req := httptest.NewRequest(http.MethodPost, "/api/ai/chat", strings.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := a.do(t, req)
		assert.Equal(t, 400, resp.StatusCode, payload)
	}

	resp, body = a.get(t, "/api/ai/status")
	assert.Equal(t, 200, resp.StatusCode)
	assert.JSONEq(t, `{"configured":false}`, string(body))
}

func TestPages(t *testing.T) {
	a := newTestApp(t)
	kunqu := a.seed(t)

	for _, target := range []string{"/", "/categories", "/category/4", "/item/" + itoa(kunqu.ID), "/knowledge", "/ai-chat?item_id=1", "/search?keyword=" + urlEscape("京剧")} {
		resp, body := a.get(t, target)
		assert.Equal(t, 200, resp.StatusCode, target)
		assert.Contains(t, resp.Header.Get("Content-Type"), "text/html", target)
		assert.Contains(t, string(body), "非遗之光", target)
	}

	resp, body := a.get(t, "/item/999")
	assert.Equal(t, 404, resp.StatusCode)
	assert.Contains(t, string(body), "项目不存在")

	resp, _ = a.get(t, "/category/0")
	assert.Equal(t, 404, resp.StatusCode)

	resp, _ = a.get(t, "/search")
	assert.Equal(t, 400, resp.StatusCode)
}

func TestOperationalEndpoints(t *testing.T) {
	a := newTestApp(t)

	resp, body := a.get(t, "/healthz")
	assert.Equal(t, 200, resp.StatusCode)
	assert.JSONEq(t, `{"status":"ok"}`, string(body))

	a.get(t, "/api/categories")
	resp, body = a.get(t, "/metrics")
	assert.Equal(t, 200, resp.StatusCode)
	assert.Contains(t, string(body), "feiyi_http_requests_total")

	resp, body = a.get(t, "/static/css/style.css")
	assert.Equal(t, 200, resp.StatusCode)
	assert.Contains(t, string(body), "--red")

	resp, _ = a.get(t, "/api/categories")
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))

	resp, body = a.get(t, "/swagger/doc.json")
	assert.Equal(t, 200, resp.StatusCode)
	assert.Contains(t, string(body), "/api/ai/chat")
}
