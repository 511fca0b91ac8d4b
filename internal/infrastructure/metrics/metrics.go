// Package metrics expone las métricas Prometheus del motor MRP y de la API.
package metrics

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/mrp-api/internal/application/planning"
	"github.com/jhoicas/mrp-api/internal/domain/entity"
)

var _ planning.RunMetrics = (*Metrics)(nil)

// Metrics colectores registrados en un registry propio (no en el global), para que
// cada proceso o test tenga su propio conjunto.
type Metrics struct {
	registry *prometheus.Registry

	runsTotal          *prometheus.CounterVec
	runDuration        prometheus.Histogram
	materialsProcessed prometheus.Counter
	materialsSkipped   *prometheus.CounterVec
	plannedOrders      prometheus.Counter

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// New registra los colectores con el prefijo indicado ("mrp" si está vacío).
func New(prefix string) *Metrics {
	if prefix == "" {
		prefix = "mrp"
	}
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		runsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_runs_total",
				Help: "Total de corridas MRP finalizadas por estado",
			},
			[]string{"status"},
		),
		runDuration: f.NewHistogram(
			prometheus.HistogramOpts{
				Name:    prefix + "_run_duration_seconds",
				Help:    "Duración de las corridas MRP en segundos",
				Buckets: []float64{0.1, 0.5, 1, 5, 15, 30, 60, 120, 300},
			},
		),
		materialsProcessed: f.NewCounter(
			prometheus.CounterOpts{
				Name: prefix + "_materials_processed_total",
				Help: "Materiales neteados con éxito",
			},
		),
		materialsSkipped: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_materials_skipped_total",
				Help: "Materiales omitidos por errores de datos",
			},
			[]string{"reason"},
		),
		plannedOrders: f.NewCounter(
			prometheus.CounterOpts{
				Name: prefix + "_planned_orders_created_total",
				Help: "Órdenes planificadas creadas por el motor",
			},
		),
		httpRequestsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_http_requests_total",
				Help: "Total de peticiones HTTP",
			},
			[]string{"method", "path", "status"},
		),
		httpRequestDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    prefix + "_http_request_duration_seconds",
				Help:    "Duración de las peticiones HTTP en segundos",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),
	}
}

// Registry registry con los colectores de la aplicación.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// ObserveRun registra una corrida finalizada.
func (m *Metrics) ObserveRun(status string, elapsed time.Duration) {
	if status == "" {
		status = entity.MRPRunStatusFailed
	}
	m.runsTotal.WithLabelValues(status).Inc()
	m.runDuration.Observe(elapsed.Seconds())
}

func (m *Metrics) MaterialProcessed() { m.materialsProcessed.Inc() }

func (m *Metrics) MaterialSkipped(reason string) { m.materialsSkipped.WithLabelValues(reason).Inc() }

func (m *Metrics) PlannedOrdersCreated(n int) {
	if n > 0 {
		m.plannedOrders.Add(float64(n))
	}
}

// Handler handler HTTP de exposición (formato texto de Prometheus).
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Middleware mide cada petición con la ruta registrada (no la URL cruda) como etiqueta.
func (m *Metrics) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		path := c.Route().Path
		labels := []string{c.Method(), path, strconv.Itoa(status)}
		m.httpRequestsTotal.WithLabelValues(labels...).Inc()
		m.httpRequestDuration.WithLabelValues(labels...).Observe(time.Since(start).Seconds())
		return err
	}
}
