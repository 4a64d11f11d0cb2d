package services

import (
	"context"

	"go.uber.org/zap"

	"petcare/internal/petcare/domain/events"
	svc "petcare/internal/petcare/ports/services"
	"petcare/pkg/logger"
)

const logMsgAuditEvent = "domain event"

// ZapAuditLogger пишет каждое событие в журнал отдельной записью.
type ZapAuditLogger struct {
	log *logger.Logger
}

// NewZapAuditLogger создает журнал аудита. Если log равен nil,
// используется логгер из контекста вызова.
func NewZapAuditLogger(log *logger.Logger) svc.AuditLogger {
	return &ZapAuditLogger{log: log}
}

// LogEvent записывает конверт и тело события.
func (a *ZapAuditLogger) LogEvent(ctx context.Context, event events.Event) error {
	log := a.log
	if log == nil {
		log = logger.Log(ctx)
	}

	meta := event.Meta()
	payload, err := events.Marshal(event)
	if err != nil {
		return err
	}

	log.Info(ctx, logMsgAuditEvent,
		zap.String("event_type", event.EventType()),
		zap.String("event_id", meta.EventID.String()),
		zap.String("aggregate_id", meta.AggregateID.String()),
		zap.Int("aggregate_version", meta.AggregateVersion),
		zap.Time("occurred_at", meta.OccurredAt),
		zap.ByteString("payload", payload))
	return nil
}
