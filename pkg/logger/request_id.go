package logger

import (
	"context"

	"github.com/google/uuid"
)

type requestIDKeyType struct{}

var requestIDKey = requestIDKeyType{}

// NewRequestIDContext кладет идентификатор запроса в контекст.
// Пустой идентификатор заменяется сгенерированным без префикса.
func NewRequestIDContext(ctx context.Context, requestID string) context.Context {
	if requestID == "" {
		requestID = GenerateRequestID("")
	}
	return context.WithValue(ctx, requestIDKey, requestID)
}

// EnsureRequestID возвращает контекст с идентификатором запроса. Уже заданный
// идентификатор сохраняется, иначе генерируется новый с префиксом операции,
// например "relay-6f1c...". Так записи фоновых задач группируются по итерациям.
func EnsureRequestID(ctx context.Context, prefix string) context.Context {
	if _, ok := GetRequestID(ctx); ok {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey, GenerateRequestID(prefix))
}

// GetRequestID извлекает идентификатор запроса из контекста.
func GetRequestID(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	id, ok := ctx.Value(requestIDKey).(string)
	return id, ok && id != ""
}

// GenerateRequestID генерирует идентификатор "<prefix>-<uuid>" или просто uuid.
func GenerateRequestID(prefix string) string {
	id := uuid.NewString()
	if prefix == "" {
		return id
	}
	return prefix + "-" + id
}
