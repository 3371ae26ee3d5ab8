package observability

import (
	"log/slog"
	"sync/atomic"
	"time"

	"loopchat/domain/event"
)

// PipelineStats aggregates the counters exposed to the heartbeat worker
// and to the final report.
type PipelineStats struct {
	Received     uint64 `json:"received"`
	Sent         uint64 `json:"sent"`
	SendFailures uint64 `json:"send_failures"`
	Summaries    uint64 `json:"summaries"`
	Restarts     uint64 `json:"restarts"`
}

// Monitor tracks pipeline throughput with atomic counters. It consumes
// telemetry events, so it can be plugged into the telemetry worker as a
// regular handler.
type Monitor struct {
	log       *slog.Logger
	received  atomic.Uint64
	sent      atomic.Uint64
	failures  atomic.Uint64
	summaries atomic.Uint64
	restarts  atomic.Uint64
	started   time.Time
}

func NewMonitor(log *slog.Logger) *Monitor {
	return &Monitor{log: log, started: time.Now()}
}

func (m *Monitor) Handle(e event.Event) {
	switch e.Type {
	case event.MessageReceivedType:
		m.received.Add(1)
	case event.MessageSentType:
		m.sent.Add(1)
	case event.SendFailedType:
		m.failures.Add(1)
	case event.SummaryUpdatedType:
		m.summaries.Add(1)
	case event.RestartedAfterPanicType:
		m.restarts.Add(1)
	}
}

func (m *Monitor) Stats() PipelineStats {
	return PipelineStats{
		Received:     m.received.Load(),
		Sent:         m.sent.Load(),
		SendFailures: m.failures.Load(),
		Summaries:    m.summaries.Load(),
		Restarts:     m.restarts.Load(),
	}
}

func (m *Monitor) Uptime() time.Duration {
	return time.Since(m.started)
}
