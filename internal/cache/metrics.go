package cache

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics 缓存指标
type Metrics struct {
	Requests *prometheus.CounterVec
}

// NewMetrics 在指定 registerer 上注册缓存指标
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Requests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "officer_registry_cache_requests_total",
			Help: "Cache gateway operations by operation and result",
		}, []string{"op", "result"}),
	}
}

func (m *Metrics) observe(op, result string) {
	if m == nil || m.Requests == nil {
		return
	}
	m.Requests.WithLabelValues(op, result).Inc()
}

// Instrumented 为 Gateway 增加命中率与错误计数
type Instrumented struct {
	next    Gateway
	metrics *Metrics
}

// NewInstrumented 包装 Gateway
func NewInstrumented(next Gateway, metrics *Metrics) *Instrumented {
	return &Instrumented{next: next, metrics: metrics}
}

// Get 读取并记录 hit / miss / error
func (g *Instrumented) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, hit, err := g.next.Get(ctx, key)
	switch {
	case err != nil:
		g.metrics.observe("get", "error")
	case hit:
		g.metrics.observe("get", "hit")
	default:
		g.metrics.observe("get", "miss")
	}
	return value, hit, err
}

// Set 写入并记录结果
func (g *Instrumented) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	err := g.next.Set(ctx, key, value, ttl)
	g.metrics.observe("set", resultOf(err))
	return err
}

// Delete 删除并记录结果
func (g *Instrumented) Delete(ctx context.Context, keys ...string) error {
	err := g.next.Delete(ctx, keys...)
	g.metrics.observe("delete", resultOf(err))
	return err
}

func resultOf(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
