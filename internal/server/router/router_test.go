package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mamadbah2/realty/internal/domain/models"
	"github.com/mamadbah2/realty/internal/engine/analytics"
	"github.com/mamadbah2/realty/internal/engine/scoring"
	"github.com/mamadbah2/realty/internal/repository/mock"
	"github.com/mamadbah2/realty/internal/server/handlers"
	"github.com/mamadbah2/realty/internal/service/assistant"
	"github.com/mamadbah2/realty/internal/service/portfolio"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()

	clock := func() time.Time { return time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC) }
	engine := scoring.NewEngine(scoring.DefaultTable(), scoring.WithClock(clock))
	trends := models.MarketTrends{PriceChange30Days: 2.3, RentChange30Days: 1.8, InventoryChange: -5.2}
	svc := portfolio.NewService(mock.NewSource(), engine, analytics.NewAggregator(trends, 0), nil)
	if _, err := svc.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh returned error: %v", err)
	}

	return New(Handlers{
		Properties: handlers.NewPropertyHandler(svc, nil),
		Analytics:  handlers.NewAnalyticsHandler(svc, svc, nil),
		Chat:       handlers.NewChatHandler(assistant.NewService(svc, nil, nil), nil),
	}, nil)
}

func do(t *testing.T, r http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

type listBody struct {
	Count      int               `json:"count"`
	Properties []models.Property `json:"properties"`
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode %s: %v", rec.Body.String(), err)
	}
	return out
}

func TestHealthz(t *testing.T) {
	rec := do(t, newTestRouter(t), http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestListProperties(t *testing.T) {
	r := newTestRouter(t)

	tests := []struct {
		name   string
		target string
		status int
		check  func(*testing.T, listBody)
	}{
		{name: "all ranked", target: "/api/properties", status: http.StatusOK, check: func(t *testing.T, b listBody) {
			if b.Count != 10 || len(b.Properties) != 10 {
				t.Errorf("count = %d", b.Count)
			}
			for i := 1; i < len(b.Properties); i++ {
				if b.Properties[i-1].AIScore < b.Properties[i].AIScore {
					t.Errorf("not ranked at %d", i)
				}
			}
		}},
		{name: "condos under 300k", target: "/api/properties?maxPrice=300000&propertyTypes=Condo", status: http.StatusOK, check: func(t *testing.T, b listBody) {
			for _, p := range b.Properties {
				if p.Price > 300000 || p.PropertyType != models.PropertyTypeCondo {
					t.Errorf("unexpected listing %+v", p)
				}
			}
			if b.Count != 1 {
				t.Errorf("count = %d, want 1", b.Count)
			}
		}},
		{name: "comma separated zips", target: "/api/properties?zipCodes=37209,80205", status: http.StatusOK, check: func(t *testing.T, b listBody) {
			if b.Count != 3 {
				t.Errorf("count = %d, want 3", b.Count)
			}
		}},
		{name: "zero is a bound", target: "/api/properties?maxPrice=0", status: http.StatusOK, check: func(t *testing.T, b listBody) {
			if b.Count != 0 {
				t.Errorf("count = %d, want 0", b.Count)
			}
		}},
		{name: "bad number", target: "/api/properties?minPrice=cheap", status: http.StatusBadRequest},
		{name: "top three", target: "/api/properties/top?limit=3", status: http.StatusOK, check: func(t *testing.T, b listBody) {
			if b.Count != 3 {
				t.Errorf("count = %d, want 3", b.Count)
			}
		}},
		{name: "top bad limit", target: "/api/properties/top?limit=-1", status: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, r, http.MethodGet, tt.target, "")
			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d (%s)", rec.Code, tt.status, rec.Body.String())
			}
			if tt.check != nil {
				tt.check(t, decode[listBody](t, rec))
			}
		})
	}
}

func TestSearchProperties(t *testing.T) {
	r := newTestRouter(t)

	rec := do(t, r, http.MethodPost, "/api/properties/search", `{"minJobGrowth":3.3,"zipCodes":["78702","78701","78752"]}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d (%s)", rec.Code, rec.Body.String())
	}
	body := decode[listBody](t, rec)
	if body.Count != 3 {
		t.Errorf("count = %d, want 3", body.Count)
	}

	if rec := do(t, r, http.MethodPost, "/api/properties/search", `{"minPrice":"x"}`); rec.Code != http.StatusBadRequest {
		t.Errorf("bad body status = %d", rec.Code)
	}
	if rec := do(t, r, http.MethodPost, "/api/properties/search", ""); rec.Code != http.StatusOK {
		t.Errorf("empty body status = %d", rec.Code)
	}
}

func TestGetProperty(t *testing.T) {
	r := newTestRouter(t)

	rec := do(t, r, http.MethodGet, "/api/properties/prop-002", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	p := decode[models.Property](t, rec)
	if p.ID != "prop-002" || p.NOI == 0 {
		t.Errorf("property = %+v", p)
	}

	if rec := do(t, r, http.MethodGet, "/api/properties/nope", ""); rec.Code != http.StatusNotFound {
		t.Errorf("missing status = %d", rec.Code)
	}
}

func TestScoreProperties(t *testing.T) {
	r := newTestRouter(t)

	body := `[
		{"id":"cheap","price":300000,"estimatedRent":2000,"monthlyExpenses":200,"taxesAnnual":3000,"insuranceAnnual":1200,"maintenanceAnnual":1500},
		{"id":"broken","price":0}
	]`
	rec := do(t, r, http.MethodPost, "/api/properties/score", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d (%s)", rec.Code, rec.Body.String())
	}

	got := decode[struct {
		Properties []models.Property `json:"properties"`
		Rejected   []struct {
			ID string `json:"id"`
		} `json:"rejected"`
	}](t, rec)
	if len(got.Properties) != 1 || got.Properties[0].NOI != 15900 {
		t.Errorf("properties = %+v", got.Properties)
	}
	if len(got.Rejected) != 1 || got.Rejected[0].ID != "broken" {
		t.Errorf("rejected = %+v", got.Rejected)
	}

	if rec := do(t, r, http.MethodPost, "/api/properties/score", `{"id":"x"}`); rec.Code != http.StatusBadRequest {
		t.Errorf("object body status = %d", rec.Code)
	}
}

func TestAnalyticsRoutes(t *testing.T) {
	r := newTestRouter(t)

	rec := do(t, r, http.MethodGet, "/api/analytics", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	summary := decode[models.MarketAnalytics](t, rec)
	if summary.TotalProperties != 10 || len(summary.TopPerformingZips) != 5 || summary.MarketTrends.InventoryChange != -5.2 {
		t.Errorf("analytics = %+v", summary)
	}

	rec = do(t, r, http.MethodGet, "/api/analytics?maxPrice=1", "")
	empty := decode[models.MarketAnalytics](t, rec)
	if empty.TotalProperties != 0 || empty.TopPerformingZips == nil {
		t.Errorf("empty analytics = %+v", empty)
	}

	rec = do(t, r, http.MethodGet, "/api/analytics/overview", "")
	overview := decode[models.MarketOverview](t, rec)
	if len(overview.TopPerformers) != 5 || overview.StatusCounts[models.StatusForSale] != 7 {
		t.Errorf("overview = %+v", overview)
	}

	rec = do(t, r, http.MethodGet, "/api/filters/options", "")
	opts := decode[models.FilterOptions](t, rec)
	if len(opts.ZipCodes) != 9 || opts.ZipCodes[0] != "37206" {
		t.Errorf("options = %+v", opts)
	}

	rec = do(t, r, http.MethodPost, "/api/refresh", "")
	if rec.Code != http.StatusOK {
		t.Errorf("refresh status = %d", rec.Code)
	}
	if res := decode[portfolio.RefreshResult](t, rec); res.Ranked != 10 {
		t.Errorf("refresh = %+v", res)
	}
}

func TestChatRoutes(t *testing.T) {
	r := newTestRouter(t)

	rec := do(t, r, http.MethodPost, "/api/chat", `{"sessionId":"abc","message":"Show me the top scores"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d (%s)", rec.Code, rec.Body.String())
	}
	reply := decode[models.ChatReply](t, rec)
	if reply.Intent != models.IntentScores || !strings.Contains(reply.Message.Content, "1. ") {
		t.Errorf("reply = %+v", reply)
	}

	if rec := do(t, r, http.MethodPost, "/api/chat", `{"sessionId":"abc"}`); rec.Code != http.StatusBadRequest {
		t.Errorf("missing message status = %d", rec.Code)
	}

	rec = do(t, r, http.MethodGet, "/api/chat/abc", "")
	history := decode[struct {
		Messages []models.ChatMessage `json:"messages"`
	}](t, rec)
	if len(history.Messages) != 3 {
		t.Errorf("history = %d messages, want 3", len(history.Messages))
	}

	if rec := do(t, r, http.MethodDelete, "/api/chat/abc", ""); rec.Code != http.StatusNoContent {
		t.Errorf("delete status = %d", rec.Code)
	}
	rec = do(t, r, http.MethodGet, "/api/chat/abc", "")
	history = decode[struct {
		Messages []models.ChatMessage `json:"messages"`
	}](t, rec)
	if len(history.Messages) != 1 {
		t.Errorf("history after delete = %d messages, want greeting only", len(history.Messages))
	}
}
