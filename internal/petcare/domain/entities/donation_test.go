package entities_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"petcare/internal/petcare/domain/domainerr"
	"petcare/internal/petcare/domain/entities"
	"petcare/internal/petcare/domain/events"
)

func donationParams() entities.NewDonationParams {
	userID, shelterID := uuid.New(), uuid.New()
	return entities.NewDonationParams{
		UserID:          &userID,
		ShelterID:       &shelterID,
		Amount:          decimal.RequireFromString("250.00"),
		PaymentMethodID: uuid.New(),
		DonationDate:    time.Date(2024, 1, 31, 12, 0, 0, 0, time.UTC),
	}
}

func TestCreateDonation(t *testing.T) {
	t.Run("значения по умолчанию", func(t *testing.T) {
		p := donationParams()
		p.DonationDate = time.Time{}

		d, err := entities.CreateDonation(p)
		require.NoError(t, err)

		assert.Equal(t, entities.DonationPending, d.Status())
		assert.Equal(t, "UAH", d.Amount().Currency())
		assert.False(t, d.DonationDate().IsZero())
		assert.Equal(t, 1, d.Version())
	})

	tests := []struct {
		name   string
		modify func(p *entities.NewDonationParams)
		err    error
	}{
		{"нулевая сумма", func(p *entities.NewDonationParams) { p.Amount = decimal.Zero }, entities.ErrNonPositiveDonation},
		{"отрицательная сумма", func(p *entities.NewDonationParams) { p.Amount = decimal.NewFromInt(-5) }, nil},
		{"пустой способ оплаты", func(p *entities.NewDonationParams) { p.PaymentMethodID = uuid.Nil }, entities.ErrEmptyPaymentMethodID},
		{"неизвестный статус", func(p *entities.NewDonationParams) { p.Status = "Refunded" }, entities.ErrInvalidDonationStatus},
		{"некорректная валюта", func(p *entities.NewDonationParams) { p.Currency = "UA" }, nil},
		{"завершенное без транзакции", func(p *entities.NewDonationParams) { p.Status = entities.DonationCompleted }, entities.ErrEmptyTransactionID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := donationParams()
			tt.modify(&p)

			d, err := entities.CreateDonation(p)

			assert.Nil(t, d)
			assert.ErrorIs(t, err, domainerr.ErrInvalidArgument)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
			}
		})
	}
}

func TestRecurringDonationCompletion(t *testing.T) {
	p := donationParams()
	p.IsRecurring = true
	d, err := entities.CreateDonation(p)
	require.NoError(t, err)
	d.ClearEvents()

	require.NoError(t, d.MarkAsCompleted("tx-001"))

	assert.Equal(t, entities.DonationCompleted, d.Status())
	assert.Equal(t, "tx-001", d.TransactionID())
	assert.Equal(t, 2, d.Version())

	pending := d.PendingEvents()
	require.Equal(t, []string{
		events.TypeDonationStatusChanged,
		events.TypeDonationCompleted,
		events.TypeRecurringDonationScheduled,
	}, eventTypes(pending))

	scheduled, ok := pending[2].(events.RecurringDonationScheduled)
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 2, 29, 12, 0, 0, 0, time.UTC), scheduled.NextDonationDate)
	assert.Equal(t, "250", scheduled.Amount)
	assert.Equal(t, p.ShelterID, scheduled.ShelterID)
	for _, e := range pending {
		assert.Equal(t, 2, e.Meta().AggregateVersion)
	}

	t.Run("повторное завершение ничего не делает", func(t *testing.T) {
		require.NoError(t, d.MarkAsCompleted("tx-002"))
		assert.Equal(t, "tx-001", d.TransactionID())
		assert.Equal(t, 2, d.Version())
	})

	t.Run("завершенное пожертвование нельзя пометить неуспешным", func(t *testing.T) {
		err := d.MarkAsFailed("chargeback")
		assert.ErrorIs(t, err, entities.ErrDonationAlreadySettled)
		assert.ErrorIs(t, err, domainerr.ErrInvalidState)
		assert.Equal(t, entities.DonationCompleted, d.Status())
	})
}

func TestCreateCompletedDonation(t *testing.T) {
	t.Run("регулярное сразу планирует следующее списание", func(t *testing.T) {
		p := donationParams()
		p.Status = entities.DonationCompleted
		p.TransactionID = " tx-100 "
		p.IsRecurring = true

		d, err := entities.CreateDonation(p)
		require.NoError(t, err)

		assert.Equal(t, "tx-100", d.TransactionID())
		assert.Equal(t, 1, d.Version())
		pending := d.PendingEvents()
		require.Equal(t, []string{events.TypeDonationCreated, events.TypeRecurringDonationScheduled}, eventTypes(pending))
		scheduled := pending[1].(events.RecurringDonationScheduled)
		assert.Equal(t, time.Date(2024, 2, 29, 12, 0, 0, 0, time.UTC), scheduled.NextDonationDate)
		assert.Equal(t, 1, scheduled.Meta().AggregateVersion)
	})

	t.Run("разовое не планирует списание", func(t *testing.T) {
		p := donationParams()
		p.Status = entities.DonationCompleted
		p.TransactionID = "tx-101"

		d, err := entities.CreateDonation(p)
		require.NoError(t, err)

		assert.Equal(t, []string{events.TypeDonationCreated}, eventTypes(d.PendingEvents()))
	})

	t.Run("ожидающее регулярное ждет завершения", func(t *testing.T) {
		p := donationParams()
		p.IsRecurring = true

		d, err := entities.CreateDonation(p)
		require.NoError(t, err)

		assert.Equal(t, []string{events.TypeDonationCreated}, eventTypes(d.PendingEvents()))
	})
}

func TestDonationFailure(t *testing.T) {
	d, err := entities.CreateDonation(donationParams())
	require.NoError(t, err)
	d.ClearEvents()

	assert.ErrorIs(t, d.MarkAsFailed(" "), entities.ErrEmptyFailureReason)
	require.NoError(t, d.MarkAsFailed("card declined"))
	require.NoError(t, d.MarkAsFailed("card declined"))

	assert.Equal(t, 2, d.Version())
	assert.Equal(t, []string{events.TypeDonationStatusChanged, events.TypeDonationFailed}, eventTypes(d.PendingEvents()))

	err = d.MarkAsCompleted("tx-late")
	assert.ErrorIs(t, err, entities.ErrDonationAlreadyFailed)
	assert.ErrorIs(t, d.MarkAsCompleted(""), entities.ErrEmptyTransactionID)
	assert.Equal(t, entities.DonationFailed, d.Status())
}

func TestDonationNonRecurringCompletion(t *testing.T) {
	d, err := entities.CreateDonation(donationParams())
	require.NoError(t, err)
	d.ClearEvents()

	require.NoError(t, d.MarkAsCompleted("tx-1"))

	assert.Equal(t, []string{events.TypeDonationStatusChanged, events.TypeDonationCompleted}, eventTypes(d.PendingEvents()))
}

func TestDonationDetails(t *testing.T) {
	d, err := entities.CreateDonation(donationParams())
	require.NoError(t, err)

	require.NoError(t, d.UpdateReport("Куплено корм"))
	require.NoError(t, d.UpdateReport("Куплено корм"))
	require.NoError(t, d.SetTransactionID("tx-9"))
	assert.ErrorIs(t, d.SetTransactionID(""), entities.ErrEmptyTransactionID)

	assert.Equal(t, 3, d.Version())

	restored := entities.RestoreDonation(d.Snapshot())
	assert.Equal(t, d.Snapshot(), restored.Snapshot())
	assert.True(t, restored.Amount().Equals(d.Amount()))
}
