package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/annel0/fabula-editor/internal/undo"
	"github.com/annel0/fabula-editor/internal/vec"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveHistory(t *testing.T) {
	m := New()
	r := undo.NewRecord("terrain", []undo.Change{{Pos: vec.Vec2{X: 1}}, {Pos: vec.Vec2{X: 2}}})

	m.ObserveHistory(undo.OpRecord, r)
	m.ObserveHistory(undo.OpUndo, r)
	m.ObserveHistory(undo.OpUndo, r)
	m.ObserveHistory(undo.OpRedo, r)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.brushApplies.WithLabelValues("terrain")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.tilesChanged))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.history.WithLabelValues("undo")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.history.WithLabelValues("redo")))
}

func TestObserveRebuildAndSave(t *testing.T) {
	m := New()
	m.ObserveRebuild(3, 0)
	m.ObserveRebuild(0, 5)
	m.ObserveSave(10*time.Millisecond, nil)
	m.ObserveSave(0, errors.New("disk full"))
	m.LoadFailed()

	assert.Equal(t, 3.0, testutil.ToFloat64(m.sectorsRebuilt))
	assert.Equal(t, 5.0, testutil.ToFloat64(m.dirtySectors))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.saveFailures))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.loadFailures))
}

func TestIndependentRegistries(t *testing.T) {
	var a, b *Metrics
	assert.NotPanics(t, func() {
		a = New()
		b = New()
	})
	assert.NotSame(t, a.Registry(), b.Registry())

	a.LoadFailed()
	families, err := a.Registry().Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
	assert.Equal(t, 1.0, testutil.ToFloat64(a.loadFailures))
	assert.Zero(t, testutil.ToFloat64(b.loadFailures))
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveHistory(undo.OpUndo, nil)
		m.ObserveRebuild(1, 1)
		m.ObserveSave(time.Second, nil)
		m.LoadFailed()
	})
}

func TestHandlerExposesMetrics(t *testing.T) {
	m := New()
	m.LoadFailed()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "editor_scene_load_failures_total 1"))
}
