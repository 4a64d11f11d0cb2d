package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"petcare/internal/petcare/domain/entities"
	"petcare/internal/petcare/ports/api"
	"petcare/internal/petcare/ports/repositories"
	"petcare/internal/petcare/ports/services"
	"petcare/internal/petcare/resilience"
	"petcare/pkg/logger"
)

const (
	methodCreateDonation  = "CreateDonation"
	methodProcessDonation = "ProcessDonation"

	operationCharge = "Charge"

	msgDonationCreated    = "donation created"
	msgChargingDonation   = "charging donation"
	msgDonationCompleted  = "donation completed"
	msgDonationNotPending = "donation is already settled, skipping charge"

	msgErrChargeFailed = "payment charge failed"

	errCtxCreatingDonation = "creating donation"
	errCtxFetchingDonation = "fetching donation"
	errCtxChargingDonation = "charging donation"
	errCtxSettlingDonation = "settling donation"
	errCtxMarkingFailure   = "marking donation as failed"
)

const donationPaymentPurpose = "Donation"

// DonationUseCaseImpl реализует интерфейс DonationUseCase.
type DonationUseCaseImpl struct {
	donations  repositories.DonationRepository
	payments   services.PaymentProcessor
	resilience *resilience.ServiceResilience
	committer  *Committer
}

// NewDonationUseCase создает новый экземпляр сервиса пожертвований.
// Вызовы платежного сервиса проходят через paymentResilience.
func NewDonationUseCase(
	donations repositories.DonationRepository,
	payments services.PaymentProcessor,
	paymentResilience *resilience.ServiceResilience,
	committer *Committer,
) api.DonationUseCase {
	return &DonationUseCaseImpl{
		donations:  donations,
		payments:   payments,
		resilience: paymentResilience,
		committer:  committer,
	}
}

func (u *DonationUseCaseImpl) Create(ctx context.Context, params entities.NewDonationParams) (*entities.Donation, error) {
	log := logger.Log(ctx).With(zap.String("method", methodCreateDonation))

	donation, err := entities.CreateDonation(params)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxCreatingDonation, err)
	}
	if err := create[*entities.Donation](ctx, u.committer, u.donations, donation); err != nil {
		log.Error(ctx, errCtxCreatingDonation, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCreatingDonation, err)
	}

	log.Info(ctx, msgDonationCreated,
		zap.String("donationID", donation.ID().String()),
		zap.String("amount", donation.Amount().String()))
	return donation, nil
}

// Process списывает средства за ожидающее пожертвование.
// Завершенное пожертвование возвращается без повторного списания.
func (u *DonationUseCaseImpl) Process(ctx context.Context, donationID uuid.UUID) (*entities.Donation, error) {
	log := logger.Log(ctx).With(zap.String("method", methodProcessDonation), zap.String("donationID", donationID.String()))

	donation, err := u.donations.FindByID(ctx, donationID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxFetchingDonation, err)
	}
	switch donation.Status() {
	case entities.DonationCompleted:
		log.Debug(ctx, msgDonationNotPending)
		return donation, nil
	case entities.DonationFailed:
		return nil, entities.ErrDonationAlreadyFailed
	}

	log.Debug(ctx, msgChargingDonation, zap.String("amount", donation.Amount().String()))
	req := services.PaymentRequest{
		DonationID:      donation.ID(),
		Amount:          donation.Amount(),
		PaymentMethodID: donation.PaymentMethodID(),
		Description:     paymentDescription(donation),
	}
	transactionID, chargeErr := resilience.ExecuteWithResult(ctx, u.resilience, operationCharge, func() (string, error) {
		return u.payments.Charge(ctx, req)
	})
	if chargeErr != nil {
		log.Warn(ctx, msgErrChargeFailed, zap.Error(chargeErr))
		_, err := update[*entities.Donation](ctx, u.committer, u.donations, donationID, func(d *entities.Donation) error {
			return d.MarkAsFailed(chargeErr.Error())
		})
		if err != nil {
			err = fmt.Errorf("%s: %w", errCtxMarkingFailure, err)
		}
		return nil, errors.Join(fmt.Errorf("%s: %w", errCtxChargingDonation, chargeErr), err)
	}

	settled, err := update[*entities.Donation](ctx, u.committer, u.donations, donationID, func(d *entities.Donation) error {
		return d.MarkAsCompleted(transactionID)
	})
	if err != nil {
		log.Error(ctx, errCtxSettlingDonation, zap.String("transactionID", transactionID), zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxSettlingDonation, err)
	}

	log.Info(ctx, msgDonationCompleted, zap.String("transactionID", transactionID))
	return settled, nil
}

func paymentDescription(d *entities.Donation) string {
	if p := d.Purpose(); p != "" {
		return donationPaymentPurpose + ": " + p
	}
	return donationPaymentPurpose
}
