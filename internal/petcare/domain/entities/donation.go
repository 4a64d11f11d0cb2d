package entities

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"petcare/internal/petcare/domain/domainerr"
	"petcare/internal/petcare/domain/events"
	vo "petcare/internal/petcare/domain/valueobjects"
)

// DonationStatus - статус пожертвования.
type DonationStatus string

const (
	DonationPending   DonationStatus = "Pending"
	DonationCompleted DonationStatus = "Completed"
	DonationFailed    DonationStatus = "Failed"
)

func (s DonationStatus) valid() bool {
	switch s {
	case DonationPending, DonationCompleted, DonationFailed:
		return true
	}
	return false
}

var (
	ErrNonPositiveDonation    = domainerr.InvalidArgument("donation amount must be positive")
	ErrEmptyPaymentMethodID   = domainerr.InvalidArgument("payment method id cannot be empty")
	ErrInvalidDonationStatus  = domainerr.InvalidArgument("unknown donation status")
	ErrEmptyTransactionID     = domainerr.InvalidArgument("transaction id cannot be empty")
	ErrEmptyFailureReason     = domainerr.InvalidArgument("failure reason cannot be empty")
	ErrDonationAlreadyFailed  = domainerr.InvalidState("donation has already failed")
	ErrDonationAlreadySettled = domainerr.InvalidState("donation is already completed")
)

// NewDonationParams - входные данные для CreateDonation.
// DonationDate по умолчанию равна текущему времени. Завершенное пожертвование
// требует TransactionID, как и MarkAsCompleted.
type NewDonationParams struct {
	ID              uuid.UUID
	UserID          *uuid.UUID
	ShelterID       *uuid.UUID
	Amount          decimal.Decimal
	Currency        string
	PaymentMethodID uuid.UUID
	Status          DonationStatus
	TransactionID   string
	Purpose         string
	IsRecurring     bool
	IsAnonymous     bool
	DonationDate    time.Time
	Report          string
}

// Donation - пожертвование пользователя приюту или платформе.
type Donation struct {
	AggregateRoot
	userID          *uuid.UUID
	shelterID       *uuid.UUID
	amount          vo.Money
	paymentMethodID uuid.UUID
	status          DonationStatus
	transactionID   string
	purpose         string
	isRecurring     bool
	isAnonymous     bool
	donationDate    time.Time
	report          string
}

// CreateDonation проверяет параметры и создает пожертвование с событием DonationCreated.
func CreateDonation(p NewDonationParams) (*Donation, error) {
	amount, err := vo.NewMoney(p.Amount, p.Currency)
	if err != nil {
		return nil, err
	}
	if !amount.IsPositive() {
		return nil, ErrNonPositiveDonation
	}
	if p.PaymentMethodID == uuid.Nil {
		return nil, ErrEmptyPaymentMethodID
	}
	status := p.Status
	if status == "" {
		status = DonationPending
	}
	if !status.valid() {
		return nil, ErrInvalidDonationStatus
	}
	tx := strings.TrimSpace(p.TransactionID)
	if status == DonationCompleted && tx == "" {
		return nil, ErrEmptyTransactionID
	}
	date := p.DonationDate
	if date.IsZero() {
		date = nowFunc()
	}

	d := &Donation{
		AggregateRoot:   newAggregateRoot(p.ID),
		userID:          p.UserID,
		shelterID:       p.ShelterID,
		amount:          amount,
		paymentMethodID: p.PaymentMethodID,
		status:          status,
		transactionID:   tx,
		purpose:         strings.TrimSpace(p.Purpose),
		isRecurring:     p.IsRecurring,
		isAnonymous:     p.IsAnonymous,
		donationDate:    date.UTC().Truncate(time.Microsecond),
		report:          strings.TrimSpace(p.Report),
	}
	d.record(events.DonationCreated{
		Envelope:    d.nextEnvelope(),
		UserID:      d.userID,
		ShelterID:   d.shelterID,
		Amount:      amount.Amount().String(),
		Currency:    amount.Currency(),
		IsRecurring: d.isRecurring,
		IsAnonymous: d.isAnonymous,
	})
	if d.status == DonationCompleted {
		d.scheduleNext()
	}
	d.bumpVersion()
	return d, nil
}

func (d *Donation) UserID() *uuid.UUID { return d.userID }

func (d *Donation) ShelterID() *uuid.UUID { return d.shelterID }

func (d *Donation) Amount() vo.Money { return d.amount }

func (d *Donation) PaymentMethodID() uuid.UUID { return d.paymentMethodID }

func (d *Donation) Status() DonationStatus { return d.status }

func (d *Donation) TransactionID() string { return d.transactionID }

func (d *Donation) Purpose() string { return d.purpose }

func (d *Donation) IsRecurring() bool { return d.isRecurring }

func (d *Donation) IsAnonymous() bool { return d.isAnonymous }

func (d *Donation) DonationDate() time.Time { return d.donationDate }

func (d *Donation) Report() string { return d.report }

// NextDonationDate - дата следующего списания для регулярного пожертвования.
func (d *Donation) NextDonationDate() time.Time {
	return addMonths(d.donationDate, 1)
}

// MarkAsCompleted завершает пожертвование. Повторный вызов для завершенного
// пожертвования ничего не делает, неуспешное пожертвование завершить нельзя.
func (d *Donation) MarkAsCompleted(transactionID string) error {
	tx := strings.TrimSpace(transactionID)
	if tx == "" {
		return ErrEmptyTransactionID
	}
	switch d.status {
	case DonationCompleted:
		return nil
	case DonationFailed:
		return ErrDonationAlreadyFailed
	}

	prev := d.status
	d.status = DonationCompleted
	d.transactionID = tx
	d.record(
		events.DonationStatusChanged{
			Envelope:       d.nextEnvelope(),
			PreviousStatus: string(prev),
			NewStatus:      string(DonationCompleted),
			TransactionID:  tx,
		},
		events.DonationCompleted{
			Envelope:      d.nextEnvelope(),
			TransactionID: tx,
			Amount:        d.amount.Amount().String(),
			Currency:      d.amount.Currency(),
		},
	)
	d.scheduleNext()
	d.bumpVersion()
	return nil
}

// scheduleNext планирует следующее списание завершенного регулярного пожертвования.
func (d *Donation) scheduleNext() {
	if !d.isRecurring {
		return
	}
	d.record(events.RecurringDonationScheduled{
		Envelope:         d.nextEnvelope(),
		NextDonationDate: d.NextDonationDate(),
		UserID:           d.userID,
		ShelterID:        d.shelterID,
		Amount:           d.amount.Amount().String(),
		Currency:         d.amount.Currency(),
	})
}

// MarkAsFailed помечает пожертвование неуспешным. Завершенное пожертвование
// пометить неуспешным нельзя.
func (d *Donation) MarkAsFailed(reason string) error {
	r := strings.TrimSpace(reason)
	if r == "" {
		return ErrEmptyFailureReason
	}
	switch d.status {
	case DonationFailed:
		return nil
	case DonationCompleted:
		return ErrDonationAlreadySettled
	}

	prev := d.status
	d.status = DonationFailed
	d.record(
		events.DonationStatusChanged{
			Envelope:       d.nextEnvelope(),
			PreviousStatus: string(prev),
			NewStatus:      string(DonationFailed),
			Reason:         r,
		},
		events.DonationFailed{Envelope: d.nextEnvelope(), Reason: r},
	)
	d.bumpVersion()
	return nil
}

func (d *Donation) UpdateReport(report string) error {
	r := strings.TrimSpace(report)
	if r == d.report {
		return nil
	}

	d.report = r
	d.record(events.DonationReportUpdated{Envelope: d.nextEnvelope(), Report: r})
	d.bumpVersion()
	return nil
}

func (d *Donation) SetTransactionID(transactionID string) error {
	tx := strings.TrimSpace(transactionID)
	if tx == "" {
		return ErrEmptyTransactionID
	}
	if tx == d.transactionID {
		return nil
	}

	d.transactionID = tx
	d.record(events.DonationTransactionIDSet{Envelope: d.nextEnvelope(), TransactionID: tx})
	d.bumpVersion()
	return nil
}

// addMonths прибавляет месяцы, ограничивая день последним днем целевого месяца:
// 31 января + 1 месяц = 28 или 29 февраля.
func addMonths(t time.Time, months int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m+time.Month(months), 1,
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	if last := first.AddDate(0, 1, -1).Day(); d > last {
		d = last
	}
	return first.AddDate(0, 0, d-1)
}

// DonationState - полное состояние пожертвования для слоя хранения.
type DonationState struct {
	AggregateState
	UserID          *uuid.UUID
	ShelterID       *uuid.UUID
	Amount          vo.Money
	PaymentMethodID uuid.UUID
	Status          DonationStatus
	TransactionID   string
	Purpose         string
	IsRecurring     bool
	IsAnonymous     bool
	DonationDate    time.Time
	Report          string
}

func (d *Donation) Snapshot() DonationState {
	return DonationState{
		AggregateState:  d.rootState(),
		UserID:          d.userID,
		ShelterID:       d.shelterID,
		Amount:          d.amount,
		PaymentMethodID: d.paymentMethodID,
		Status:          d.status,
		TransactionID:   d.transactionID,
		Purpose:         d.purpose,
		IsRecurring:     d.isRecurring,
		IsAnonymous:     d.isAnonymous,
		DonationDate:    d.donationDate,
		Report:          d.report,
	}
}

// RestoreDonation восстанавливает пожертвование из хранилища без проверок и без событий.
func RestoreDonation(s DonationState) *Donation {
	return &Donation{
		AggregateRoot:   restoreRoot(s.AggregateState),
		userID:          s.UserID,
		shelterID:       s.ShelterID,
		amount:          s.Amount,
		paymentMethodID: s.PaymentMethodID,
		status:          s.Status,
		transactionID:   s.TransactionID,
		purpose:         s.Purpose,
		isRecurring:     s.IsRecurring,
		isAnonymous:     s.IsAnonymous,
		donationDate:    s.DonationDate,
		report:          s.Report,
	}
}
