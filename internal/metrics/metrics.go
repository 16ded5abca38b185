// Package metrics はPrometheusメトリクスの収集と公開を提供する。
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector はPrometheusメトリクスを収集する実装。
// coach.MetricsCollectorを満たす。
type Collector struct {
	sessionsStarted    *prometheus.CounterVec
	sessionsEnded      prometheus.Counter
	commitmentsCreated prometheus.Counter
	degradedOps        *prometheus.CounterVec
	httpStatus         *prometheus.CounterVec
	endSessionLatency  prometheus.Histogram
}

// NewCollector は新しいCollectorを生成し、指定されたレジストリにメトリクスを登録する。
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		sessionsStarted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "coachly_sessions_started_total",
			Help: "開始されたコーチングセッションの合計数（種別ごと）",
		}, []string{"mode"}),
		sessionsEnded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "coachly_sessions_ended_total",
			Help: "終了したコーチングセッションの合計数",
		}),
		commitmentsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "coachly_commitments_created_total",
			Help: "作成されたコミットメントの合計数",
		}),
		degradedOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "coachly_degraded_ops_total",
			Help: "ベストエフォート処理が縮退した合計数（処理ごと）",
		}, []string{"operation"}),
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "coachly_http_status_total",
			Help: "HTTPステータスコード別のレスポンス数",
		}, []string{"status_code"}),
		endSessionLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "coachly_end_session_latency_seconds",
			Help:    "セッション終了処理のレイテンシ（秒）",
			Buckets: prometheus.DefBuckets,
		}),
	}

	reg.MustRegister(
		c.sessionsStarted,
		c.sessionsEnded,
		c.commitmentsCreated,
		c.degradedOps,
		c.httpStatus,
		c.endSessionLatency,
	)

	return c
}

// RecordSessionStarted はセッション開始を記録する。
func (c *Collector) RecordSessionStarted(mode string) {
	c.sessionsStarted.WithLabelValues(mode).Inc()
}

// RecordSessionEnded はセッション終了を記録する。
func (c *Collector) RecordSessionEnded() {
	c.sessionsEnded.Inc()
}

// RecordCommitmentCreated はコミットメント作成を記録する。
func (c *Collector) RecordCommitmentCreated() {
	c.commitmentsCreated.Inc()
}

// RecordDegradedOp はベストエフォート処理の縮退を記録する。
func (c *Collector) RecordDegradedOp(operation string) {
	c.degradedOps.WithLabelValues(operation).Inc()
}

// RecordHTTPStatus はHTTPステータスコードを記録する。
func (c *Collector) RecordHTTPStatus(statusCode int) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

// RecordEndSessionLatency はセッション終了処理のレイテンシを記録する。
func (c *Collector) RecordEndSessionLatency(duration time.Duration) {
	c.endSessionLatency.Observe(duration.Seconds())
}

// Handler はPrometheusスクレイプ用のHTTPハンドラーを返す。
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// SetupMetricsRoute は/metricsエンドポイントを提供するHTTPハンドラーを返す。
// Prometheusスクレイプに対応する。
func SetupMetricsRoute(gatherer prometheus.Gatherer) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler(gatherer))
	return mux
}
