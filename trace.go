// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package corepool

import (
	"context"
	"fmt"

	"github.com/zoobzio/metricz"
	"github.com/zoobzio/tracez"
)

// Metric keys for ThreadPool observability.
const (
	PoolTasksSubmittedTotal = metricz.Key("threadpool.tasks.submitted.total")
	PoolTasksCompletedTotal = metricz.Key("threadpool.tasks.completed.total")
	PoolTasksPanickedTotal  = metricz.Key("threadpool.tasks.panicked.total")
	PoolWorkersCurrent      = metricz.Key("threadpool.workers.current")
)

// Span names for ThreadPool observability.
const (
	PoolRunnableSpan = tracez.Key("threadpool.runnable")
)

// Span tags for ThreadPool observability.
const (
	PoolTagPanicked = tracez.Tag("threadpool.panicked")
)

// newPoolObservability registers the counters and gauge a ThreadPool
// reports through Metrics, and returns a tracer for its Runnable spans.
// Diagnostic output has no effect on scheduling: a pool with nobody
// reading its registry or tracer behaves identically to one with many.
func newPoolObservability() (*metricz.Registry, *tracez.Tracer) {
	registry := metricz.New()
	registry.Counter(PoolTasksSubmittedTotal)
	registry.Counter(PoolTasksCompletedTotal)
	registry.Counter(PoolTasksPanickedTotal)
	registry.Gauge(PoolWorkersCurrent)
	return registry, tracez.New()
}

// Metrics returns the pool's metric registry: submitted/completed/panicked
// task counters and a current-worker-count gauge.
func (p *ThreadPool) Metrics() *metricz.Registry {
	return p.metrics
}

// Tracer returns the tracer recording one span per Runnable execution.
func (p *ThreadPool) Tracer() *tracez.Tracer {
	return p.tracer
}

func (p *ThreadPool) traceRunnable(r Runnable) {
	_, span := p.tracer.StartSpan(context.Background(), PoolRunnableSpan)
	defer span.Finish()

	defer func() {
		if v := recover(); v != nil {
			span.SetTag(PoolTagPanicked, fmt.Sprintf("%v", v))
			p.metrics.Counter(PoolTasksPanickedTotal).Inc()
			p.outstanding.Notify()
			return
		}
		p.metrics.Counter(PoolTasksCompletedTotal).Inc()
		p.outstanding.Notify()
	}()
	_, _ = r.Run()
}
