package services

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	svc "petcare/internal/petcare/ports/services"
	"petcare/pkg/logger"
)

const logMsgNotification = "user notification"

// LogNotifier записывает уведомления в журнал вместо отправки.
// Используется, пока не подключен почтовый или push-провайдер.
type LogNotifier struct{}

// NewLogNotifier создает новый экземпляр LogNotifier.
func NewLogNotifier() svc.NotificationService {
	return &LogNotifier{}
}

// NotifyUser записывает уведомление пользователю.
func (n *LogNotifier) NotifyUser(ctx context.Context, userID uuid.UUID, subject, message string) error {
	logger.Log(ctx).Info(ctx, logMsgNotification,
		zap.String("user_id", userID.String()),
		zap.String("subject", subject),
		zap.String("message", message))
	return nil
}
