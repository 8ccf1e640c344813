package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	obscontext "github.com/smallbiznis/stockroom/internal/observability/context"
)

// HTTPMetrics exposes request-level instruments on the default registry.
type HTTPMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func NewHTTPMetrics() *HTTPMetrics {
	return &HTTPMetrics{
		requests: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "stockroom_http_requests_total",
			Help: "HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		duration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "stockroom_http_request_duration_seconds",
			Help:    "HTTP request latency by route and method.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method"}),
	}
}

// GinMiddleware records request counts and latencies.
func GinMiddleware(m *HTTPMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		route := obscontext.RouteLabel(c.FullPath())
		method := c.Request.Method
		m.requests.WithLabelValues(route, method, strconv.Itoa(c.Writer.Status())).Inc()
		m.duration.WithLabelValues(route, method).Observe(time.Since(start).Seconds())
	}
}

// Metrics exposes inventory-domain instruments.
type Metrics struct {
	productsCreated  prometheus.Counter
	productsDeleted  prometheus.Counter
	stockAdjustments *prometheus.CounterVec
}

func New() *Metrics {
	return &Metrics{
		productsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "stockroom_products_created_total",
			Help: "Products created.",
		}),
		productsDeleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "stockroom_products_deleted_total",
			Help: "Products deleted.",
		}),
		stockAdjustments: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "stockroom_stock_adjustments_total",
			Help: "Stock adjustments by direction.",
		}, []string{"direction"}),
	}
}

func (m *Metrics) RecordProductCreated() {
	if m == nil {
		return
	}
	m.productsCreated.Inc()
}

func (m *Metrics) RecordProductDeleted() {
	if m == nil {
		return
	}
	m.productsDeleted.Inc()
}

func (m *Metrics) RecordStockAdjustment(delta int64) {
	if m == nil {
		return
	}
	direction := "increase"
	if delta < 0 {
		direction = "decrease"
	}
	m.stockAdjustments.WithLabelValues(direction).Inc()
}
