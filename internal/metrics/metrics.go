package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	TradesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "curve_engine_trades_total",
		Help: "The total number of trades executed",
	}, []string{"side", "status"})

	TradeVolume = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "curve_engine_trade_volume_lamports_total",
		Help: "Cumulative lamports moved through the curves",
	}, []string{"side"})

	CurvesInitialized = promauto.NewCounter(prometheus.CounterOpts{
		Name: "curve_engine_curves_initialized_total",
		Help: "Total bonding curves created",
	})

	RequestRejects = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "curve_engine_rejects_total",
		Help: "Requests rejected before execution",
	}, []string{"class"})

	LatencyBucket = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "curve_engine_latency_bucket",
		Help:    "Request latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"endpoint"})
)
