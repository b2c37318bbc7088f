// Package metrics - метрики Prometheus для API безопасности
package metrics

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "geo_safety"

var (
	// HTTPRequestsTotal - число HTTP-запросов по методу, маршруту и статусу
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total HTTP requests by method, path pattern, and status code.",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration - длительность запросов по методу и маршруту
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// RiskAnalysesTotal - число оценок риска по итоговому уровню
	RiskAnalysesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "risk_analyses_total",
			Help:      "Total area risk analyses by level.",
		},
		[]string{"level"},
	)

	// HelpRequestsTotal - переходы запроса помощи (requested, cancelled)
	HelpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "help_requests_total",
			Help:      "Total help request transitions by action.",
		},
		[]string{"action"},
	)

	// HelpOffersTotal - записи предложений помощи по итоговому статусу
	HelpOffersTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "help_offers_total",
			Help:      "Total help offer writes by resulting status.",
		},
		[]string{"status"},
	)

	// NearbyQueriesTotal - число запросов пользователей поблизости
	NearbyQueriesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "nearby_queries_total",
		Help:      "Total nearby-user visibility queries.",
	})

	// HeartbeatsTotal - число обновлений местоположения
	HeartbeatsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "presence_heartbeats_total",
		Help:      "Total presence heartbeats.",
	})

	// ActiveUsers - число активных пользователей при последнем запросе статистики
	ActiveUsers = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "active_users",
		Help:      "Number of users seen within the presence window at the last stats query.",
	})

	// IncidentCacheLookupsTotal - обращения к кешу инцидентов по результату
	IncidentCacheLookupsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "incident_cache_lookups_total",
			Help:      "Incident cache lookups by result (hit, miss, error).",
		},
		[]string{"result"},
	)

	// WebhookDeliveriesTotal - попытки доставки вебхуков по результату
	WebhookDeliveriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "webhook_deliveries_total",
			Help:      "Total webhook deliveries by result.",
		},
		[]string{"result"},
	)
)

func init() {
	prometheus.MustRegister(
		HTTPRequestsTotal,
		HTTPRequestDuration,
		RiskAnalysesTotal,
		HelpRequestsTotal,
		HelpOffersTotal,
		NearbyQueriesTotal,
		HeartbeatsTotal,
		ActiveUsers,
		IncidentCacheLookupsTotal,
		WebhookDeliveriesTotal,
	)
}

// Middleware возвращает gin middleware, которое пишет метрики запросов
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		timer := prometheus.NewTimer(HTTPRequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
		))

		c.Next()

		timer.ObserveDuration()
		HTTPRequestsTotal.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			statusBucket(c.Writer.Status()),
		).Inc()
	}
}

// Handler возвращает обработчик эндпоинта /metrics
func Handler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}

// statusBucket сводит код ответа к классу 2xx/4xx/...
func statusBucket(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}
