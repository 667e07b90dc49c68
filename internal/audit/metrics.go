package audit

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// 审计记录结果
const (
	ResultWritten = "written"
	ResultFailed  = "failed"
	ResultDropped = "dropped"
	ResultInvalid = "invalid"
)

// Metrics 审计写入指标
type Metrics struct {
	Entries    *prometheus.CounterVec
	QueueDepth prometheus.Gauge
}

// NewMetrics 在指定 registerer 上注册审计指标
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Entries: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "officer_registry_audit_entries_total",
			Help: "Audit entries by outcome",
		}, []string{"result"}),
		QueueDepth: factory.NewGauge(prometheus.GaugeOpts{
			Name: "officer_registry_audit_queue_depth",
			Help: "Audit entries waiting for a writer",
		}),
	}
}

func (m *Metrics) observe(result string) {
	if m == nil || m.Entries == nil {
		return
	}
	m.Entries.WithLabelValues(result).Inc()
}

func (m *Metrics) setDepth(depth int) {
	if m == nil || m.QueueDepth == nil {
		return
	}
	m.QueueDepth.Set(float64(depth))
}
