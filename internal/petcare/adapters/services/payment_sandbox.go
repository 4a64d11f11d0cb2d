package services

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"petcare/internal/petcare/domain/domainerr"
	svc "petcare/internal/petcare/ports/services"
	"petcare/pkg/logger"
)

const sandboxTransactionPrefix = "sandbox-"

var ErrPaymentDeclined = domainerr.InvalidState("payment declined")

// SandboxPaymentProcessor принимает любой положительный платеж и выдает
// идентификатор транзакции с префиксом sandbox-.
type SandboxPaymentProcessor struct {
	declined map[uuid.UUID]struct{}
}

// NewSandboxPaymentProcessor создает процессор. Платежи с перечисленными
// способами оплаты отклоняются.
func NewSandboxPaymentProcessor(declinedMethods ...uuid.UUID) svc.PaymentProcessor {
	declined := make(map[uuid.UUID]struct{}, len(declinedMethods))
	for _, id := range declinedMethods {
		declined[id] = struct{}{}
	}
	return &SandboxPaymentProcessor{declined: declined}
}

// Charge проводит платеж.
func (p *SandboxPaymentProcessor) Charge(ctx context.Context, req svc.PaymentRequest) (string, error) {
	log := logger.Log(ctx).With(zap.String("donation_id", req.DonationID.String()))

	if err := ctx.Err(); err != nil {
		return "", err
	}
	if _, ok := p.declined[req.PaymentMethodID]; ok || !req.Amount.IsPositive() {
		log.Warn(ctx, "sandbox payment declined", zap.String("amount", req.Amount.String()))
		return "", ErrPaymentDeclined
	}

	tx := sandboxTransactionPrefix + uuid.NewString()
	log.Info(ctx, "sandbox payment charged", zap.String("amount", req.Amount.String()), zap.String("transaction_id", tx))
	return tx, nil
}
