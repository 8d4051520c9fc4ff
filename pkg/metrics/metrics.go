package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор prometheus-метрик сервиса
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	GridCellsRendered   prometheus.Counter
	SlotsSavedTotal     prometheus.Counter
}

// New регистрирует метрики в default-регистре prometheus
func New(serviceName string) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		HTTPRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "path", "status"}),

		HTTPRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			Buckets:     prometheus.DefBuckets,
			ConstLabels: constLabels,
		}, []string{"method", "path"}),

		GridCellsRendered: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "calendar_grid_cells_rendered_total",
			Help:        "Total number of calendar grid cells composed",
			ConstLabels: constLabels,
		}),

		SlotsSavedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "time_slots_saved_total",
			Help:        "Total number of participant time slots persisted",
			ConstLabels: constLabels,
		}),
	}
}

// ObserveRequest фиксирует завершенный HTTP-запрос
func (m *Metrics) ObserveRequest(method, path, status string, durationSeconds float64) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(durationSeconds)
}

// AddGridCells увеличивает счетчик составленных ячеек сетки
func (m *Metrics) AddGridCells(n int) {
	m.GridCellsRendered.Add(float64(n))
}

// AddSlotsSaved увеличивает счетчик сохраненных отметок доступности
func (m *Metrics) AddSlotsSaved(n int) {
	m.SlotsSavedTotal.Add(float64(n))
}
