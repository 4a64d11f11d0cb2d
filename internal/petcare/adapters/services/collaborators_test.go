package services_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"petcare/internal/petcare/adapters/services"
	"petcare/internal/petcare/domain/events"
	vo "petcare/internal/petcare/domain/valueobjects"
	svc "petcare/internal/petcare/ports/services"
	"petcare/pkg/logger"
)

func observedLogger(t *testing.T) (*logger.Logger, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zap.DebugLevel)
	return logger.NewWithCore(core), logs
}

func TestZapAuditLogger(t *testing.T) {
	log, logs := observedLogger(t)
	audit := services.NewZapAuditLogger(log)

	event := events.ShelterAnimalAdded{
		Envelope: events.NewEnvelope(uuid.New(), 3, time.Now()),
		AnimalID: uuid.New(),
	}
	require.NoError(t, audit.LogEvent(context.Background(), event))

	entries := logs.FilterMessage("domain event").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, events.TypeShelterAnimalAdded, fields["event_type"])
	assert.Equal(t, event.EventID.String(), fields["event_id"])
	assert.Equal(t, int64(3), fields["aggregate_version"])
	assert.Contains(t, fields["payload"], event.AnimalID.String())
}

func TestZapAuditLoggerFromContext(t *testing.T) {
	log, logs := observedLogger(t)
	ctx := logger.NewContext(context.Background(), log)

	audit := services.NewZapAuditLogger(nil)
	event := events.UserPasswordChanged{Envelope: events.NewEnvelope(uuid.New(), 2, time.Now())}

	require.NoError(t, audit.LogEvent(ctx, event))
	assert.Equal(t, 1, logs.FilterMessage("domain event").Len())
}

func TestLogNotifier(t *testing.T) {
	log, logs := observedLogger(t)
	ctx := logger.NewContext(context.Background(), log)
	userID := uuid.New()

	err := services.NewLogNotifier().NotifyUser(ctx, userID, "Заявку схвалено", "Мурчик чекає на вас")

	require.NoError(t, err)
	entries := logs.FilterField(zap.String("user_id", userID.String())).All()
	require.Len(t, entries, 1)
	assert.Equal(t, "Заявку схвалено", entries[0].ContextMap()["subject"])
}

func TestSandboxPaymentProcessor(t *testing.T) {
	ctx := context.Background()
	declinedMethod := uuid.New()
	processor := services.NewSandboxPaymentProcessor(declinedMethod)

	amount, err := vo.NewMoney(decimal.NewFromInt(250), "UAH")
	require.NoError(t, err)

	t.Run("успешный платеж", func(t *testing.T) {
		tx, err := processor.Charge(ctx, svc.PaymentRequest{
			DonationID:      uuid.New(),
			Amount:          amount,
			PaymentMethodID: uuid.New(),
		})

		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(tx, "sandbox-"))
	})

	t.Run("отклоненный способ оплаты", func(t *testing.T) {
		tx, err := processor.Charge(ctx, svc.PaymentRequest{
			DonationID:      uuid.New(),
			Amount:          amount,
			PaymentMethodID: declinedMethod,
		})

		assert.ErrorIs(t, err, services.ErrPaymentDeclined)
		assert.Empty(t, tx)
	})

	t.Run("отмененный контекст", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		_, err := processor.Charge(cancelled, svc.PaymentRequest{Amount: amount, PaymentMethodID: uuid.New()})
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestLocalFileStorage(t *testing.T) {
	ctx := context.Background()
	allowed := []string{"jpg", "png"}

	t.Run("загрузка и удаление", func(t *testing.T) {
		dir := t.TempDir()
		storage := services.NewLocalFileStorage(dir, "https://cdn.example.com/media/")

		url, err := storage.Upload(ctx, bytes.NewReader([]byte("image-bytes")), "photo.JPG", 1024, allowed)
		require.NoError(t, err)
		require.True(t, strings.HasPrefix(url, "https://cdn.example.com/media/"))
		assert.True(t, strings.HasSuffix(url, ".jpg"))

		name := filepath.Base(url)
		content, err := os.ReadFile(filepath.Join(dir, name))
		require.NoError(t, err)
		assert.Equal(t, "image-bytes", string(content))

		require.NoError(t, storage.Delete(ctx, url))
		_, err = os.Stat(filepath.Join(dir, name))
		assert.True(t, os.IsNotExist(err))

		assert.NoError(t, storage.Delete(ctx, url), "deleting a missing file is not an error")
	})

	t.Run("недопустимое расширение", func(t *testing.T) {
		storage := services.NewLocalFileStorage(t.TempDir(), "https://cdn.example.com")

		_, err := storage.Upload(ctx, strings.NewReader("x"), "script.exe", 1024, allowed)
		assert.ErrorIs(t, err, services.ErrExtensionNotAllowed)
	})

	t.Run("превышен размер", func(t *testing.T) {
		dir := t.TempDir()
		storage := services.NewLocalFileStorage(dir, "https://cdn.example.com")

		_, err := storage.Upload(ctx, strings.NewReader(strings.Repeat("x", 11)), "photo.png", 10, allowed)
		assert.ErrorIs(t, err, services.ErrFileTooLarge)

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Empty(t, entries, "oversized upload should not leave files behind")
	})

	t.Run("чужой URL", func(t *testing.T) {
		storage := services.NewLocalFileStorage(t.TempDir(), "https://cdn.example.com")

		assert.ErrorIs(t, storage.Delete(ctx, "https://other.example.com/a.jpg"), services.ErrForeignFileURL)
		assert.ErrorIs(t, storage.Delete(ctx, "https://cdn.example.com/../etc/passwd"), services.ErrForeignFileURL)
	})
}
