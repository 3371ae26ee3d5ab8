package services

import (
	"context"
	"log/slog"
	"sync"

	"loopchat/domain"
	"loopchat/domain/event"
	"loopchat/pipeline"
)

type IPipelineService interface {
	Send(rawPort, content string) error
}

// PipelineService is the facade the presentation layer calls. Send runs
// the actual transmission on a transient goroutine, so the caller stays
// responsive; completion and failure both come back as events through
// the pipeline, never as a crash of the calling goroutine.
type PipelineService struct {
	log      *slog.Logger
	ctx      context.Context
	messages *pipeline.MessageLog
	trigger  *pipeline.BatchTrigger
	ingress  chan<- event.Event
	inflight sync.WaitGroup
}

func NewPipelineService(
	ctx context.Context,
	log *slog.Logger,
	messages *pipeline.MessageLog,
	trigger *pipeline.BatchTrigger,
	ingress chan<- event.Event,
) *PipelineService {
	return &PipelineService{
		ctx:      ctx,
		log:      log,
		messages: messages,
		trigger:  trigger,
		ingress:  ingress,
	}
}

// Send validates the operator input and transmits asynchronously. A
// validation failure aborts with no state change and is also reported
// through the event pipeline.
func (s *PipelineService) Send(rawPort, content string) error {
	req, err := ParseSendRequest(rawPort, content)
	if err != nil {
		s.emit(event.Event{
			Type:    event.InputRejectedType,
			Payload: event.InputRejected{RawPort: rawPort, Reason: err.Error()},
		})
		return err
	}

	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()
		s.transmit(req)
	}()
	return nil
}

// transmit performs the one-shot send and records the attempt. The
// message is appended whether or not the send succeeded: failed sends
// stay visible in the history as attempts.
func (s *PipelineService) transmit(req SendRequest) {
	sendErr := pipeline.Send(req.Port, req.Content)

	msg := domain.NewMessage(domain.Outbound, req.Content)
	count := s.messages.Append(msg)

	if sendErr != nil {
		s.log.Warn("Send failed", "port", req.Port, "error", sendErr)
		s.emit(event.Event{
			Type:    event.SendFailedType,
			Payload: event.SendFailed{Message: msg, Count: count, Reason: sendErr.Error()},
		})
	} else {
		s.emit(event.Event{
			Type:    event.MessageSentType,
			Payload: event.MessageLogged{Message: msg, Count: count},
		})
	}
	s.trigger.Check(count)
}

// Wait blocks until every in-flight send has completed. Used by
// shutdown and tests.
func (s *PipelineService) Wait() {
	s.inflight.Wait()
}

func (s *PipelineService) emit(e event.Event) {
	select {
	case <-s.ctx.Done():
	case s.ingress <- e:
	}
}
