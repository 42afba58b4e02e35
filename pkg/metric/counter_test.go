package metric

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSet(t *testing.T) {
	reg := prometheus.NewRegistry()
	s := NewSet(reg)

	s.Pages.Increment("static", "../")
	s.Pages.Increment("static", "../")
	s.Pages.Increment("serve", "")
	s.Toggles.Increment("expanded")

	pages, ok := s.Pages.(*Counter)
	require.True(t, ok)
	assert.Equal(t, PagesRendered, pages.Name)
	assert.Equal(t, 2.0, testutil.ToFloat64(pages.vec.WithLabelValues("static", "../")))
	assert.Equal(t, 1.0, testutil.ToFloat64(pages.vec.WithLabelValues("serve", "")))

	n, err := testutil.GatherAndCount(reg, PagesRendered, MenuToggles)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestRegistryHandler(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewSet(reg).Toggles.Increment("collapsed")

	rec := httptest.NewRecorder()
	GetHandlerForRegistry(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `sitenav_menu_toggles_total{state="collapsed"} 1`)
}

func TestNoopSet(t *testing.T) {
	s := NoopSet()
	assert.NotPanics(t, func() {
		s.Pages.Increment("static", "")
		s.Toggles.Increment("expanded")
	})
}
