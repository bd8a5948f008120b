package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Freeeeeet/afterschool_planner/internal/catalog"
	"github.com/Freeeeeet/afterschool_planner/internal/metrics"
	"github.com/Freeeeeet/afterschool_planner/internal/model"
	"github.com/Freeeeeet/afterschool_planner/internal/planner"
	"github.com/Freeeeeet/afterschool_planner/internal/service"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestRouter(t *testing.T) (http.Handler, *metrics.Metrics) {
	t.Helper()

	store := catalog.NewStore(nil, zap.NewNop())
	store.Replace([]model.Slot{
		{ID: "mon-math", DayOfWeek: 1, TimeRange: "10:00–12:00 PM", Subject: "Math", Price: 3000, SeatsLeft: 5, Status: model.SlotStatusOpen},
		{ID: "tue-art", DayOfWeek: 2, TimeRange: "3:00–5:00 PM", Subject: "Art & Design", Price: 2500, SeatsLeft: 5, Status: model.SlotStatusOpen},
		{ID: "tue-chess", DayOfWeek: 2, TimeRange: "5:00–7:00 PM", Subject: "Chess", Price: 2500, SeatsLeft: 0, Status: model.SlotStatusOpen},
	})
	m := metrics.New()
	ps := service.NewPlannerService(store, nil, planner.DefaultTiers, m, zap.NewNop())
	return NewRouter(ps, m, zap.NewNop()), m
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	h, _ := newTestRouter(t)

	rec := do(t, h, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}

func TestListSlots(t *testing.T) {
	h, m := newTestRouter(t)

	rec := do(t, h, http.MethodGet, "/api/slots", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp slotsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.Count)
	assert.Equal(t, int64(1), resp.Version)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequests.WithLabelValues("/api/slots", "200")))
}

func TestListSlots_Filters(t *testing.T) {
	h, _ := newTestRouter(t)

	rec := do(t, h, http.MethodGet, "/api/slots?band=morning,afternoon&subject=Art+%26+Design", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp slotsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Slots, 1)
	assert.Equal(t, "tue-art", resp.Slots[0].ID)

	rec = do(t, h, http.MethodGet, "/api/slots?day=1", "")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Slots, 1)
	assert.Equal(t, "mon-math", resp.Slots[0].ID)
}

func TestListSlots_SubjectList(t *testing.T) {
	h, _ := newTestRouter(t)

	slotIDs := func(target string) []string {
		rec := do(t, h, http.MethodGet, target, "")
		require.Equal(t, http.StatusOK, rec.Code)

		var resp slotsResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		var out []string
		for _, s := range resp.Slots {
			out = append(out, s.ID)
		}
		return out
	}

	assert.Equal(t, []string{"mon-math", "tue-chess"}, slotIDs("/api/slots?subject=Math,Chess"))
	assert.Equal(t, []string{"mon-math", "tue-chess"}, slotIDs("/api/slots?subject=Math&subject=Chess"))
	// пустой subject не фильтрует
	assert.Len(t, slotIDs("/api/slots?subject="), 3)
	assert.Len(t, slotIDs("/api/slots?subject=+,+"), 3)
}

func TestListSlots_BadInput(t *testing.T) {
	h, _ := newTestRouter(t)

	rec := do(t, h, http.MethodGet, "/api/slots?band=night", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"error"`)

	rec = do(t, h, http.MethodGet, "/api/slots?day=9", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestQuote(t *testing.T) {
	h, _ := newTestRouter(t)

	rec := do(t, h, http.MethodPost, "/api/quote", `{"slot_ids":["tue-art","mon-math","tue-chess","ghost"]}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp quoteResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Count)
	assert.Equal(t, int64(5500), resp.Subtotal)
	assert.Equal(t, int64(1000), resp.Discount)
	assert.Equal(t, int64(4500), resp.Due)
	require.NotNil(t, resp.NextTier)
	assert.Equal(t, int64(2500), resp.NextTier.Save)
	assert.Equal(t, []string{"ghost"}, resp.Missing)
	require.Len(t, resp.Items, 2)
	assert.Equal(t, "mon-math", resp.Items[0].ID)
}

func TestQuote_InvalidBody(t *testing.T) {
	h, _ := newTestRouter(t)

	rec := do(t, h, http.MethodPost, "/api/quote", `{"slot_ids":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	h, _ := newTestRouter(t)

	rec := do(t, h, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "planner_catalog_slots")
}

func TestCORSPreflight(t *testing.T) {
	h, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/api/quote", nil)
	req.Header.Set("Origin", "https://example.org")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
