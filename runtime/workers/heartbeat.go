package workers

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/shirou/gopsutil/process"

	"loopchat/domain/event"
	"loopchat/observability"
)

// QueueLoader reports channel usage for the heartbeat report.
type QueueLoader interface {
	QueueLoad() (length, capacity int)
}

// HeartbeatWorker periodically logs process health (CPU, RAM, status)
// together with the pipeline counters, and samples queue usage into
// ChannelCapacity telemetry events. Purely observational.
type HeartbeatWorker struct {
	log       *slog.Logger
	interval  time.Duration
	monitor   *observability.Monitor
	queues    map[string]QueueLoader
	telemetry chan<- event.Event
}

func NewHeartbeatWorker(
	log *slog.Logger,
	interval time.Duration,
	monitor *observability.Monitor,
	queues map[string]QueueLoader,
	telemetry chan<- event.Event,
) *HeartbeatWorker {
	return &HeartbeatWorker{
		log:       log,
		interval:  interval,
		monitor:   monitor,
		queues:    queues,
		telemetry: telemetry,
	}
}

func (w *HeartbeatWorker) Run(ctx context.Context) error {
	w.log.Info("Starting heartbeat worker")
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			rss, cpu, status, err := selfStats(p)
			if err != nil {
				w.log.Error("Failed to collect self stats", "err", err)
				continue
			}

			stats := w.monitor.Stats()
			attrs := []any{
				"pid_status", status,
				"cpu_percent", cpu,
				"ram_bytes", rss,
				"received", stats.Received,
				"sent", stats.Sent,
				"send_failures", stats.SendFailures,
				"summaries", stats.Summaries,
				"uptime", w.monitor.Uptime().Round(time.Second),
			}
			for name, q := range w.queues {
				length, capacity := q.QueueLoad()
				attrs = append(attrs, "queue_"+name, length, "queue_"+name+"_cap", capacity)
				w.reportCapacity(name, length, capacity)
			}
			w.log.Info("Heartbeat", attrs...)
		}
	}
}

// reportCapacity samples a queue into a ChannelCapacity telemetry
// event. Capacity is sampled periodically, losing one report when the
// telemetry channel is full is acceptable.
func (w *HeartbeatWorker) reportCapacity(name string, length, capacity int) {
	evt := event.Event{
		Type: event.ChannelCapacityType,
		Payload: event.ChannelCapacity{
			ChannelName: name,
			Length:      length,
			Capacity:    capacity,
		},
	}
	select {
	case w.telemetry <- evt:
	default:
		w.log.Debug("Capacity telemetry event lost")
	}
}

// selfStats retrieves technical metrics (Memory, CPU, and OS Status)
// for the given process.
func selfStats(p *process.Process) (uint64, float64, string, error) {
	memInfo, err := p.MemoryInfo()
	if err != nil {
		return 0, 0, "", err
	}

	cpuPercent, err := p.CPUPercent()
	if err != nil {
		return 0, 0, "", err
	}

	status, err := p.Status()
	if err != nil {
		return 0, 0, "", err
	}
	return memInfo.RSS, cpuPercent, status, nil
}
