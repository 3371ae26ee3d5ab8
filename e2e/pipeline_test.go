package e2e

import (
	"context"
	"log/slog"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"loopchat/domain/event"
	"loopchat/moderation"
	"loopchat/observability"
	"loopchat/pipeline"
	"loopchat/projection"
	"loopchat/runtime"
	"loopchat/runtime/workers"
	"loopchat/services"
)

// captureSink mirrors every consumed event to a channel so the test
// can wait for specific pipeline stages.
type captureSink struct {
	events chan event.Event
}

func (s *captureSink) Consume(e event.Event) { s.events <- e }

func (s *captureSink) wait(t *testing.T, timeout time.Duration, wanted event.Type) event.Event {
	t.Helper()
	deadline := time.After(timeout)
	for {
		select {
		case evt := <-s.events:
			if evt.Type == wanted {
				return evt
			}
		case <-deadline:
			t.Fatalf("no %s event within %s", wanted, timeout)
		}
	}
}

func Test_Whole_Pipeline_From_Datagram_To_Summary(t *testing.T) {
	req := require.New(t)
	cfg, err := FromEnv()
	req.NoError(err)

	log := slog.Default()
	messages := pipeline.NewMessageLog()
	wake := pipeline.NewWake()
	trigger, err := pipeline.NewBatchTrigger(cfg.BatchSize, wake)
	req.NoError(err)

	moderationChan := make(chan event.Event, cfg.BufferSize)
	eventChan := make(chan event.Event, cfg.BufferSize)
	telemetryChan := make(chan event.Event, cfg.BufferSize)

	dispatcher := runtime.NewDispatcher(log, cfg.BufferSize)
	feed := projection.NewFeed()
	sink := &captureSink{events: make(chan event.Event, cfg.BufferSize)}
	monitor := observability.NewMonitor(log)

	moderator, err := moderation.NewModerator([]string{"secret"}, '*', log)
	req.NoError(err)

	listener := workers.NewListenerWorker(log, messages, trigger, moderationChan, 20000, 60000, 10, 2048)
	summarizer := workers.NewSummarizerWorker(log, messages, wake, moderationChan)
	moderating := workers.NewModerationWorker(moderator, moderationChan, eventChan, log)
	fanout := workers.NewFanoutWorker(log, dispatcher, eventChan, telemetryChan).Add(feed, sink)
	telemetry := workers.NewTelemetryWorker(log, telemetryChan, []event.Handler{monitor})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sup := workers.NewSupervisor(log, telemetryChan, 100*time.Millisecond)
	sup.Add(dispatcher, listener, summarizer, moderating, fanout, telemetry)
	supDone := make(chan struct{})
	go func() {
		sup.Run(ctx)
		close(supDone)
	}()

	// Given the listener announced its port
	ready := sink.wait(t, cfg.Timeout, event.ListenerReadyType)
	port := ready.Payload.(event.ListenerReady).Port
	req.NotZero(port)

	// When a full batch of datagrams arrives, one of them censored
	inbound := []string{"hi", "a secret plan", "short", "the longest message of all", "x"}
	for _, content := range inbound {
		req.NoError(pipeline.Send(port, content))
		sink.wait(t, cfg.Timeout, event.MessageReceivedType)
	}

	// Then the batch boundary produces the placeholder summary
	summary := sink.wait(t, cfg.Timeout, event.SummaryUpdatedType)
	payload := summary.Payload.(event.SummaryUpdated)
	req.Equal("the longest message of all", payload.Summary)
	req.Equal(len(inbound), payload.MessageCount)

	// And an operator send flows through the same pipeline
	service := services.NewPipelineService(ctx, log, messages, trigger, moderationChan)
	req.NoError(service.Send(strconv.Itoa(port), "reply"))
	service.Wait()

	// The loopback send also arrives as an inbound datagram; the two
	// notifications race, so accept them in any order.
	seen := map[event.Type]bool{}
	deadline := time.After(cfg.Timeout)
	for !seen[event.MessageSentType] || !seen[event.MessageReceivedType] {
		select {
		case evt := <-sink.events:
			seen[evt.Type] = true
		case <-deadline:
			req.Fail("send round trip incomplete")
		}
	}
	req.GreaterOrEqual(messages.Len(), len(inbound)+2)

	cancel()
	select {
	case <-supDone:
	case <-time.After(cfg.Timeout):
		req.Fail("workers did not stop")
	}

	// State owned by the interaction goroutine is safe to read now.
	req.Equal(port, feed.Port)
	req.NotEmpty(feed.Summary)
	for _, entry := range feed.Entries {
		if entry.Display == "a ****** plan" {
			return
		}
	}
	req.Fail("censored rendering never reached the feed")
}
