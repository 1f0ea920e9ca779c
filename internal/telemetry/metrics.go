package telemetry

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the storefront counters exposed on /metrics. A private
// registry keeps tests free of global registration conflicts.
type Metrics struct {
	registry *prometheus.Registry

	OrdersConfirmed prometheus.Counter
	OrdersOffline   prometheus.Counter
	CartMutations   *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		OrdersConfirmed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "storefront_orders_confirmed_total",
			Help: "Orders accepted by the backend API.",
		}),
		OrdersOffline: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "storefront_orders_offline_total",
			Help: "Orders recorded locally after a backend failure.",
		}),
		CartMutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "storefront_cart_mutations_total",
			Help: "Cart store mutations by operation.",
		}, []string{"op"}),
	}
	m.registry.MustRegister(m.OrdersConfirmed, m.OrdersOffline, m.CartMutations)
	return m
}

// Handler serves the registry in Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
