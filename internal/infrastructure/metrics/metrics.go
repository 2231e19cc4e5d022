// Package metrics define las métricas Prometheus del servicio: contadores del ciclo de
// vida de los pedidos y latencia de las peticiones HTTP.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "restaurante"

// Metrics agrupa los colectores registrados en un Registry propio.
type Metrics struct {
	Registry *prometheus.Registry

	// PedidosCreatedTotal pedidos creados, por estado inicial.
	PedidosCreatedTotal *prometheus.CounterVec
	// EstadoTransitionsTotal cambios de estado, por estado de origen y destino.
	EstadoTransitionsTotal *prometheus.CounterVec
	// ItemsReplacedTotal reemplazos del conjunto de ítems de un pedido.
	ItemsReplacedTotal prometheus.Counter
	// PedidosDeletedTotal pedidos eliminados.
	PedidosDeletedTotal prometheus.Counter
	// HTTPRequestDuration latencia por método, ruta y clase de status (2xx, 4xx...).
	HTTPRequestDuration *prometheus.HistogramVec
}

// New crea un registry con los colectores de Go y de proceso más las métricas propias.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		Registry: reg,
		PedidosCreatedTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pedidos_created_total",
			Help:      "Total number of orders created, by initial estado.",
		}, []string{"estado"}),
		EstadoTransitionsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pedido_estado_transitions_total",
			Help:      "Total number of order estado changes.",
		}, []string{"from", "to"}),
		ItemsReplacedTotal: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pedido_items_replaced_total",
			Help:      "Total number of order item-set replacements.",
		}),
		PedidosDeletedTotal: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pedidos_deleted_total",
			Help:      "Total number of orders deleted.",
		}),
		HTTPRequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
}

func (m *Metrics) PedidoCreated(estado string) {
	m.PedidosCreatedTotal.WithLabelValues(estado).Inc()
}

func (m *Metrics) EstadoChanged(from, to string) {
	m.EstadoTransitionsTotal.WithLabelValues(from, to).Inc()
}

func (m *Metrics) ItemsReplaced() {
	m.ItemsReplacedTotal.Inc()
}

func (m *Metrics) PedidoDeleted() {
	m.PedidosDeletedTotal.Inc()
}

// ObserveHTTP registra la duración de una petición.
func (m *Metrics) ObserveHTTP(method, route string, status int, seconds float64) {
	m.HTTPRequestDuration.WithLabelValues(method, route, StatusClass(status)).Observe(seconds)
}

// StatusClass convierte el código en su clase (2xx, 3xx, 4xx, 5xx).
func StatusClass(status int) string {
	switch {
	case status >= 200 && status < 300:
		return "2xx"
	case status >= 300 && status < 400:
		return "3xx"
	case status >= 400 && status < 500:
		return "4xx"
	case status >= 500:
		return "5xx"
	default:
		return "unknown"
	}
}
