package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/Netflix/go-env"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
	"github.com/olekukonko/tablewriter"

	"loopchat/contract"
	"loopchat/domain/event"
	"loopchat/internal"
	"loopchat/moderation"
	"loopchat/observability"
	"loopchat/pipeline"
	"loopchat/projection"
	"loopchat/runtime"
	"loopchat/runtime/workers"
	"loopchat/services"
)

// Exit codes to provide meaningful status to the operating system or service manager.
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

func main() {
	// The main function acts as a thin wrapper.
	// Its only responsibility is to call run() and handle the OS exit code.
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "loopchat terminated with error: %v\n", err)
	}
	os.Exit(code)
}

// run initializes all components, manages the pipeline lifecycle, and
// centralizes error reporting so that defers execute before exit.
func run() (int, error) {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config internal.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}
	if err := config.Validate(); err != nil {
		return exitConfig, err
	}

	charReplacement, err := internal.CharacterRune(config.CharReplacement)
	if err != nil {
		return exitConfig, err
	}

	logger := logs.GetLoggerFromString(config.LogLevel)

	moderator, err := moderation.NewModerator(splitWords(config.CensoredWords), charReplacement, logger)
	if err != nil {
		return exitConfig, fmt.Errorf("moderation setup failed: %w", err)
	}

	// 2. Core pipeline state
	messages := pipeline.NewMessageLog()
	wake := pipeline.NewWake()
	trigger, err := pipeline.NewBatchTrigger(config.BatchSize, wake)
	if err != nil {
		return exitConfig, err
	}

	moderationChan := make(chan event.Event, config.BufferSize)
	eventChan := make(chan event.Event, config.BufferSize)
	telemetryChan := make(chan event.Event, config.BufferSize)

	// 3. Interaction loop, sinks and observability
	dispatcher := runtime.NewDispatcher(logger, config.BufferSize)
	feed := projection.NewFeed()
	monitor := observability.NewMonitor(logger)
	counter := event.NewCounter()

	// 4. Context & Signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 5. Workers under supervision
	listener := workers.NewListenerWorker(
		logger, messages, trigger, moderationChan,
		config.ListenPortMin, config.ListenPortMax, config.BindAttempts, config.ReadBufferBytes,
	)
	summarizer := workers.NewSummarizerWorker(logger, messages, wake, moderationChan)
	moderating := workers.NewModerationWorker(moderator, moderationChan, eventChan, logger)
	fanout := workers.NewFanoutWorker(logger, dispatcher, eventChan, telemetryChan).
		Add(feed, consoleSink{})
	telemetry := workers.NewTelemetryWorker(logger, telemetryChan, []event.Handler{
		monitor,
		event.NewMessageFlowHandler(logger, counter),
		event.NewWorkerRestartedAfterPanicHandler(logger, counter),
		event.NewChannelCapacityHandler(logger, config.LowCapacityThreshold),
	})
	heartbeat := workers.NewHeartbeatWorker(logger, config.MetricInterval, monitor,
		map[string]workers.QueueLoader{"dispatcher": dispatcher}, telemetryChan)

	sup := workers.NewSupervisor(logger, telemetryChan, config.RestartInterval)
	sup.Add(dispatcher, listener, summarizer, moderating, fanout, telemetry, heartbeat)

	service := services.NewPipelineService(ctx, logger, messages, trigger, moderationChan)

	supDone := make(chan struct{})
	go func() {
		logger.Info("Starting pipeline workers...")
		sup.Run(ctx)
		close(supDone)
	}()

	// 6. Operator input loop. Reading stdin blocks, so it runs on its
	// own goroutine and only ever talks to the service facade.
	go readCommands(ctx, stop, service, dispatcher, feed)

	// 7. Wait for shutdown, then drain
	<-ctx.Done()
	logger.Info("Shutting down gracefully...")
	service.Wait()
	sup.Stop()
	<-supDone

	dumpHistory(messages, monitor, listener.Port())
	logger.Info("Program stopped cleanly")
	return exitOK, nil
}

// readCommands drives the pipeline from stdin:
//
//	send <port> <text...> – transmit a datagram to loopback
//	summary               – print the latest computed summary
//	quit                  – stop the process
func readCommands(
	ctx context.Context,
	stop context.CancelFunc,
	service services.IPipelineService,
	dispatcher contract.Dispatcher,
	feed *projection.Feed,
) {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "send":
			if len(fields) < 3 {
				fmt.Println("usage: send <port> <text>")
				continue
			}
			// Validation failures come back as events, nothing to do here.
			_ = service.Send(fields[1], strings.Join(fields[2:], " "))
		case "summary":
			// Feed state belongs to the interaction goroutine.
			dispatcher.Post(func() {
				fmt.Printf("Summary: %q\n", feed.Summary)
			})
		case "quit", "exit":
			stop()
			return
		default:
			fmt.Println("commands: send <port> <text> | summary | quit")
		}
	}
}

// dumpHistory prints the final message log and counters once the
// pipeline has stopped.
func dumpHistory(messages *pipeline.MessageLog, monitor *observability.Monitor, port int) {
	snapshot := messages.Snapshot()
	if len(snapshot) == 0 {
		return
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"#", "Direction", "At", "Content"})
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	for i, msg := range snapshot {
		table.Append([]string{
			strconv.Itoa(i + 1),
			string(msg.Direction),
			msg.At.Format("15:04:05.000"),
			msg.Content,
		})
	}
	table.Render()

	stats := monitor.Stats()
	fmt.Printf("port=%d received=%d sent=%d send_failures=%d summaries=%d\n",
		port, stats.Received, stats.Sent, stats.SendFailures, stats.Summaries)
}

func splitWords(csv string) []string {
	var words []string
	for _, w := range strings.Split(csv, ",") {
		if trimmed := strings.TrimSpace(w); trimmed != "" {
			words = append(words, trimmed)
		}
	}
	return words
}
