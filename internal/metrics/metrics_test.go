package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveReload(t *testing.T) {
	m := New()

	m.ObserveReload(true, 12, 3)
	m.ObserveReload(false, 0, 0)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.CatalogReloads.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CatalogReloads.WithLabelValues("error")))
	assert.Equal(t, 12.0, testutil.ToFloat64(m.CatalogSlots))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.CatalogVersion))
}

func TestHandler(t *testing.T) {
	m := New()
	m.Actions.WithLabelValues("toggle_slot").Inc()
	m.ObserveCheckout(true, 4500)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, `planner_actions_total{action="toggle_slot"} 1`))
	assert.True(t, strings.Contains(body, `planner_checkouts_total{result="ok"} 1`))
}
