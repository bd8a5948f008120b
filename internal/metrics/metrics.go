package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics счётчики планировщика на отдельном реестре
type Metrics struct {
	registry *prometheus.Registry

	Actions        *prometheus.CounterVec
	CatalogReloads *prometheus.CounterVec
	CatalogSlots   prometheus.Gauge
	CatalogVersion prometheus.Gauge
	Checkouts      *prometheus.CounterVec
	CheckoutDue    prometheus.Histogram
	ActiveSessions prometheus.Gauge
	HTTPRequests   *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		Actions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "planner",
			Name:      "actions_total",
			Help:      "Planner actions applied, by action name.",
		}, []string{"action"}),
		CatalogReloads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "planner",
			Name:      "catalog_reloads_total",
			Help:      "Catalog reload attempts, by result.",
		}, []string{"result"}),
		CatalogSlots: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "planner",
			Name:      "catalog_slots",
			Help:      "Slots in the current catalog.",
		}),
		CatalogVersion: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "planner",
			Name:      "catalog_version",
			Help:      "Version of the current catalog.",
		}),
		Checkouts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "planner",
			Name:      "checkouts_total",
			Help:      "Checkout submissions, by result.",
		}, []string{"result"}),
		CheckoutDue: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "planner",
			Name:      "checkout_due_coins",
			Help:      "Monthly amount due per submitted plan.",
			Buckets:   []float64{1000, 2500, 5000, 10000, 20000, 40000},
		}),
		ActiveSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "planner",
			Name:      "active_sessions",
			Help:      "Planner sessions held in memory.",
		}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "planner",
			Name:      "http_requests_total",
			Help:      "API requests, by route and status code.",
		}, []string{"route", "code"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.Actions,
		m.CatalogReloads,
		m.CatalogSlots,
		m.CatalogVersion,
		m.Checkouts,
		m.CheckoutDue,
		m.ActiveSessions,
		m.HTTPRequests,
	)

	return m
}

// Handler отдаёт метрики в формате Prometheus
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) ObserveReload(ok bool, slots int, version int64) {
	if !ok {
		m.CatalogReloads.WithLabelValues("error").Inc()
		return
	}
	m.CatalogReloads.WithLabelValues("ok").Inc()
	m.CatalogSlots.Set(float64(slots))
	m.CatalogVersion.Set(float64(version))
}

func (m *Metrics) ObserveCheckout(ok bool, due int64) {
	if !ok {
		m.Checkouts.WithLabelValues("error").Inc()
		return
	}
	m.Checkouts.WithLabelValues("ok").Inc()
	m.CheckoutDue.Observe(float64(due))
}
