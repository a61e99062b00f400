package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	Requests       *prometheus.CounterVec
	Conversions    *prometheus.CounterVec
	ParseErrors    *prometheus.CounterVec
	RequestSeconds *prometheus.HistogramVec
	ImageBytes     prometheus.Histogram
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		Requests: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "photogridref_http_requests_total",
			Help: "Total number of HTTP requests by route and status code.",
		}, []string{"route", "code"}),
		Conversions: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "photogridref_conversions_total",
			Help: "Total number of positions converted, by grid system.",
		}, []string{"system"}),
		ParseErrors: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "photogridref_parse_errors_total",
			Help: "Total number of images rejected, by reason.",
		}, []string{"reason"}),
		RequestSeconds: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "photogridref_http_request_duration_seconds",
			Help:    "Duration of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		ImageBytes: promauto.With(reg).NewHistogram(prometheus.HistogramOpts{
			Name:    "photogridref_image_bytes",
			Help:    "Size of images received.",
			Buckets: prometheus.ExponentialBuckets(64<<10, 4, 8),
		}),
	}
}
