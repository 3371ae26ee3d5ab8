package workers

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net"

	"loopchat/domain"
	"loopchat/domain/event"
	"loopchat/errors"
	"loopchat/pipeline"
)

// ListenerWorker receives inbound datagrams on a port chosen
// pseudo-randomly at startup and stable for the process lifetime.
// One datagram is one message: raw bytes, no framing, no ack.
//
// Bind or receive failure is terminal for the run: a single
// ListenerStopped event is emitted and Run returns nil so the
// supervisor never restarts the loop. Cancellation is cooperative, the
// socket is closed when the context is done to unblock the read.
type ListenerWorker struct {
	log      *slog.Logger
	messages *pipeline.MessageLog
	trigger  *pipeline.BatchTrigger
	ingress  chan<- event.Event
	portMin  int
	portMax  int
	attempts int
	readBuf  int
	port     int
	conn     *net.UDPConn
}

func NewListenerWorker(
	log *slog.Logger,
	messages *pipeline.MessageLog,
	trigger *pipeline.BatchTrigger,
	ingress chan<- event.Event,
	portMin, portMax, attempts, readBuf int,
) *ListenerWorker {
	return &ListenerWorker{
		log:      log,
		messages: messages,
		trigger:  trigger,
		ingress:  ingress,
		portMin:  portMin,
		portMax:  portMax,
		attempts: attempts,
		readBuf:  readBuf,
	}
}

// Port is the bound listening port, zero until the bind succeeded.
func (w *ListenerWorker) Port() int {
	return w.port
}

// bind draws random ports from [portMin, portMax) until one is free.
// The port that finally binds is kept for the whole process lifetime.
func (w *ListenerWorker) bind() error {
	var lastErr error
	for i := 0; i < w.attempts; i++ {
		port := w.portMin + rand.IntN(w.portMax-w.portMin)
		conn, err := net.ListenUDP("udp", &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1), Port: port})
		if err != nil {
			lastErr = err
			continue
		}
		w.conn = conn
		w.port = port
		return nil
	}
	return fmt.Errorf("%w: %v", errors.ErrNoFreePort, lastErr)
}

func (w *ListenerWorker) Run(ctx context.Context) error {
	if w.conn == nil {
		if err := w.bind(); err != nil {
			w.stopped(ctx, err)
			return nil
		}
		w.log.Info("Listener bound", "port", w.port)
		w.emit(ctx, event.Event{Type: event.ListenerReadyType, Payload: event.ListenerReady{Port: w.port}})
	}

	// A blocking read can only be interrupted by closing the socket.
	unblocked := make(chan struct{})
	defer close(unblocked)
	go func() {
		select {
		case <-ctx.Done():
			_ = w.conn.Close()
		case <-unblocked:
		}
	}()

	buf := make([]byte, w.readBuf)
	for {
		n, _, err := w.conn.ReadFromUDP(buf)
		if err != nil {
			if ctx.Err() != nil {
				w.log.Debug("Listener stopped (context canceled)")
				return ctx.Err()
			}
			// The loop does not distinguish recoverable from fatal
			// receive errors: both end this run for good.
			w.stopped(ctx, fmt.Errorf("receive datagram: %w", err))
			return nil
		}

		msg := domain.NewMessage(domain.Inbound, string(buf[:n]))
		count := w.messages.Append(msg)
		w.emit(ctx, event.Event{
			Type:    event.MessageReceivedType,
			Payload: event.MessageLogged{Message: msg, Count: count},
		})
		w.trigger.Check(count)
	}
}

func (w *ListenerWorker) stopped(ctx context.Context, cause error) {
	w.log.Error("Listener terminated", "error", cause)
	w.emit(ctx, event.Event{
		Type:    event.ListenerStoppedType,
		Payload: event.ListenerStopped{Port: w.port, Reason: cause.Error()},
	})
}

func (w *ListenerWorker) emit(ctx context.Context, e event.Event) {
	select {
	case <-ctx.Done():
	case w.ingress <- e:
	}
}
