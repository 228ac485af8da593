// Package metrics экспортирует метрики редактора в Prometheus.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/annel0/fabula-editor/internal/logging"
	"github.com/annel0/fabula-editor/internal/undo"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "editor"

// Metrics держит собственный регистр, поэтому несколько экземпляров
// (например, в тестах) не конфликтуют. Методы безопасны на nil.
type Metrics struct {
	registry *prometheus.Registry
	server   *http.Server

	brushApplies   *prometheus.CounterVec
	tilesChanged   prometheus.Counter
	history        *prometheus.CounterVec
	sectorsRebuilt prometheus.Counter
	dirtySectors   prometheus.Gauge
	saveDuration   prometheus.Histogram
	saveFailures   prometheus.Counter
	loadFailures   prometheus.Counter
}

// New создает метрики, HTTP-сервер не запускается
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		brushApplies: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "brush_applies_total",
			Help:      "Число правок, записанных кистями.",
		}, []string{"brush"}),
		tilesChanged: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tiles_changed_total",
			Help:      "Число тайлов, измененных кистями.",
		}),
		history: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "history_ops_total",
			Help:      "Операции отмены и повтора.",
		}, []string{"op"}),
		sectorsRebuilt: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sectors_rebuilt_total",
			Help:      "Число перестроенных секторов.",
		}),
		dirtySectors: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "sectors_dirty",
			Help:      "Секторы, ожидающие перестройки.",
		}),
		saveDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "scene_save_seconds",
			Help:      "Длительность сохранения сцены.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12),
		}),
		saveFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scene_save_failures_total",
			Help:      "Неудачные сохранения сцены.",
		}),
		loadFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scene_load_failures_total",
			Help:      "Неудачные загрузки сцены.",
		}),
	}

	m.registry.MustRegister(
		m.brushApplies, m.tilesChanged, m.history,
		m.sectorsRebuilt, m.dirtySectors,
		m.saveDuration, m.saveFailures, m.loadFailures,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry возвращает регистр метрик
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler возвращает HTTP-обработчик /metrics
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// StartHTTP запускает эндпоинт Prometheus на указанном адресе (например, ":2112").
// Метод неблокирующий: HTTP-сервер стартует в отдельной горутине.
func (m *Metrics) StartHTTP(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	m.server = &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		logging.Info("📈 Prometheus /metrics доступен по адресу %s", addr)
		if err := m.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Error("Ошибка Prometheus HTTP сервера: %v", err)
		}
	}()
}

// Shutdown останавливает HTTP-сервер, если он запущен
func (m *Metrics) Shutdown(ctx context.Context) error {
	if m == nil || m.server == nil {
		return nil
	}
	return m.server.Shutdown(ctx)
}

// ObserveHistory подходит как undo.Observer
func (m *Metrics) ObserveHistory(op undo.Op, r *undo.Record) {
	if m == nil {
		return
	}
	switch op {
	case undo.OpRecord:
		m.brushApplies.WithLabelValues(r.Label()).Inc()
		m.tilesChanged.Add(float64(r.Len()))
	default:
		m.history.WithLabelValues(op.String()).Inc()
	}
}

// ObserveRebuild учитывает перестроенные и оставшиеся грязными секторы
func (m *Metrics) ObserveRebuild(rebuilt, dirty int) {
	if m == nil {
		return
	}
	if rebuilt > 0 {
		m.sectorsRebuilt.Add(float64(rebuilt))
	}
	m.dirtySectors.Set(float64(dirty))
}

// ObserveSave учитывает сохранение сцены
func (m *Metrics) ObserveSave(d time.Duration, err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.saveFailures.Inc()
		return
	}
	m.saveDuration.Observe(d.Seconds())
}

// LoadFailed учитывает неудачную загрузку сцены
func (m *Metrics) LoadFailed() {
	if m == nil {
		return
	}
	m.loadFailures.Inc()
}
