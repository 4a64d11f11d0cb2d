package app

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"petcare/internal/petcare/domain/entities"
	"petcare/internal/petcare/domain/events"
	"petcare/internal/petcare/ports/api"
	"petcare/internal/petcare/ports/services"
	"petcare/internal/petcare/resilience"
	"petcare/pkg/logger"
)

const (
	operationNotifyUser = "NotifyUser"

	subjectApplicationApproved = "Your adoption application was approved"
	subjectApplicationRejected = "Your adoption application was rejected"

	messageApplicationApproved = "Congratulations! The shelter approved your application. We will contact you to arrange the adoption."
	messageApplicationRejected = "Unfortunately, the shelter rejected your application. Reason: %s"

	msgMarkingAnimalAdopted = "marking animal as adopted"

	errCtxAuditing       = "writing audit record"
	errCtxNotifying      = "notifying applicant"
	errCtxMarkingAdopted = "marking animal as adopted"
)

// Subscriber - диспетчер, принимающий подписки обработчиков.
type Subscriber interface {
	Subscribe(handler services.EventHandler, eventTypes ...string)
	SubscribeAll(handler services.EventHandler)
}

// AuditHandler записывает каждое событие в журнал аудита.
func AuditHandler(audit services.AuditLogger) services.EventHandler {
	return func(ctx context.Context, event events.Event) error {
		if err := audit.LogEvent(ctx, event); err != nil {
			return fmt.Errorf("%s: %w", errCtxAuditing, err)
		}
		return nil
	}
}

// ApplicationDecisionNotifier уведомляет заявителя об одобрении или отклонении заявки.
// Вызовы сервиса уведомлений проходят через предохранитель.
func ApplicationDecisionNotifier(notifier services.NotificationService, r *resilience.ServiceResilience) services.EventHandler {
	return func(ctx context.Context, event events.Event) error {
		var (
			recipient        uuid.UUID
			subject, message string
		)
		switch e := event.(type) {
		case events.AdoptionApplicationApproved:
			recipient = e.UserID
			subject, message = subjectApplicationApproved, messageApplicationApproved
		case events.AdoptionApplicationRejected:
			recipient = e.UserID
			subject, message = subjectApplicationRejected, fmt.Sprintf(messageApplicationRejected, e.Reason)
		default:
			return nil
		}

		err := r.Execute(ctx, operationNotifyUser, func() error {
			return notifier.NotifyUser(ctx, recipient, subject, message)
		})
		if err != nil {
			return fmt.Errorf("%s: %w", errCtxNotifying, err)
		}
		return nil
	}
}

// AdoptionCompletionHandler переводит животное в статус Adopted после одобрения заявки.
// Повторная доставка события ничего не меняет.
func AdoptionCompletionHandler(animals api.AnimalUseCase) services.EventHandler {
	return func(ctx context.Context, event events.Event) error {
		approved, ok := event.(events.AdoptionApplicationApproved)
		if !ok {
			return nil
		}

		logger.Log(ctx).Debug(ctx, msgMarkingAnimalAdopted,
			zap.String("animalID", approved.AnimalID.String()),
			zap.String("applicationID", approved.ApplicationID.String()))

		if _, err := animals.ChangeStatus(ctx, approved.AnimalID, entities.AnimalAdopted); err != nil {
			return fmt.Errorf("%s: %w", errCtxMarkingAdopted, err)
		}
		return nil
	}
}

// RegisterHandlers подписывает обработчики сервиса на диспетчер.
func RegisterHandlers(
	d Subscriber,
	audit services.AuditLogger,
	notifier services.NotificationService,
	notifierResilience *resilience.ServiceResilience,
	animals api.AnimalUseCase,
) {
	d.SubscribeAll(AuditHandler(audit))
	d.Subscribe(ApplicationDecisionNotifier(notifier, notifierResilience),
		events.TypeAdoptionApplicationApproved,
		events.TypeAdoptionApplicationRejected)
	d.Subscribe(AdoptionCompletionHandler(animals), events.TypeAdoptionApplicationApproved)
}
