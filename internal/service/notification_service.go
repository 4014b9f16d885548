package service

import (
	"context"

	"applydi-client/internal/pkg/clientutils"
	"applydi-client/internal/pkg/logger"
	"applydi-client/pkg/events"
)

// INotificationService turns operation outcomes into transient user
// notifications and domain events. Publishing never fails an operation.
type INotificationService interface {
	Success(ctx context.Context, message string, details map[string]interface{})
	Info(ctx context.Context, message string, details map[string]interface{})
	Failure(ctx context.Context, message string, err error)
	Emit(ctx context.Context, eventType string, data map[string]interface{})
}

type notificationService struct {
	publisher events.Publisher
	logger    logger.ILogger
}

func NewNotificationService(publisher events.Publisher, log logger.ILogger) INotificationService {
	return &notificationService{publisher: publisher, logger: log}
}

func (s *notificationService) Success(ctx context.Context, message string, details map[string]interface{}) {
	s.publish(ctx, events.Notification(events.LevelSuccess, message, details))
}

func (s *notificationService) Info(ctx context.Context, message string, details map[string]interface{}) {
	s.publish(ctx, events.Notification(events.LevelInfo, message, details))
}

// Failure shows message, followed by the backend's explanation when one
// exists.
func (s *notificationService) Failure(ctx context.Context, message string, err error) {
	text := message
	kind := clientutils.KindOf(err)
	if detail := clientutils.UserMessage(err); detail != "" && detail != message {
		switch kind {
		case clientutils.KindValidation, clientutils.KindPrecondition, clientutils.KindCancelled:
			text = detail
		default:
			text = message + " : " + detail
		}
	}

	s.logger.Warn("NOTIFY", message, map[string]interface{}{"error": errString(err), "kind": string(kind)})
	s.publish(ctx, events.Notification(events.LevelError, text, map[string]interface{}{"kind": string(kind)}))
}

func (s *notificationService) Emit(ctx context.Context, eventType string, data map[string]interface{}) {
	s.publish(ctx, events.NewEvent(eventType, data))
}

func (s *notificationService) publish(ctx context.Context, event events.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Error("NOTIFY", "Failed to publish event", map[string]interface{}{"type": event.EventType(), "error": err.Error()})
	}
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
