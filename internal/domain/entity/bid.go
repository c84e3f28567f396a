package entity

import (
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/ignatzorin/jobmarket-backend/internal/domain/valueobject"
	"github.com/ignatzorin/jobmarket-backend/internal/pkg/apperror"
)

const MaxBidMessageLength = 500

// Bid is a vendor's offer on a job listing. There is at most one per
// (job, vendor) pair.
type Bid struct {
	ID        uuid.UUID
	JobID     uuid.UUID
	VendorID  uuid.UUID
	Amount    valueobject.Amount
	Message   *string
	Status    valueobject.BidStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

func NewBid(jobID, vendorID uuid.UUID, amount valueobject.Amount, message *string) (*Bid, error) {
	if err := validateOffer(amount, message); err != nil {
		return nil, err
	}

	now := time.Now()
	return &Bid{
		ID:        NewID(),
		JobID:     jobID,
		VendorID:  vendorID,
		Amount:    amount,
		Message:   message,
		Status:    valueobject.BidStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func validateOffer(amount valueobject.Amount, message *string) error {
	if amount.IsZero() {
		return apperror.New(apperror.ErrCodeValidation, "amount must be positive")
	}
	if message != nil && utf8.RuneCountInString(*message) > MaxBidMessageLength {
		return apperror.Newf(apperror.ErrCodeValidation, "message must be at most %d characters", MaxBidMessageLength)
	}
	return nil
}

// Rebid replaces the offer and puts the bid back to pending, whatever the
// previous outcome was, unless it already won.
func (b *Bid) Rebid(amount valueobject.Amount, message *string) error {
	if err := validateOffer(amount, message); err != nil {
		return err
	}
	if b.Status == valueobject.BidStatusAccepted {
		return apperror.New(apperror.ErrCodeConflict, "bid was already accepted")
	}
	b.Amount = amount
	b.Message = message
	b.Status = valueobject.BidStatusPending
	b.UpdatedAt = time.Now()
	return nil
}

// Accept is a no-op for an already accepted bid.
func (b *Bid) Accept() error {
	if b.Status == valueobject.BidStatusAccepted {
		return nil
	}
	if !b.Status.CanTransitionTo(valueobject.BidStatusAccepted) {
		return apperror.Newf(apperror.ErrCodeConflict, "cannot accept a %s bid", b.Status)
	}
	b.Status = valueobject.BidStatusAccepted
	b.UpdatedAt = time.Now()
	return nil
}

// Reject is a no-op for an already rejected bid.
func (b *Bid) Reject() error {
	switch b.Status {
	case valueobject.BidStatusRejected:
		return nil
	case valueobject.BidStatusAccepted:
		return apperror.ErrRejectAcceptedBid
	}
	if !b.Status.CanTransitionTo(valueobject.BidStatusRejected) {
		return apperror.Newf(apperror.ErrCodeConflict, "cannot reject a %s bid", b.Status)
	}
	b.Status = valueobject.BidStatusRejected
	b.UpdatedAt = time.Now()
	return nil
}

// Withdraw is a no-op for an already withdrawn bid.
func (b *Bid) Withdraw() error {
	if b.Status == valueobject.BidStatusWithdrawn {
		return nil
	}
	if !b.Status.CanTransitionTo(valueobject.BidStatusWithdrawn) {
		return apperror.Newf(apperror.ErrCodeConflict, "cannot withdraw a %s bid", b.Status)
	}
	b.Status = valueobject.BidStatusWithdrawn
	b.UpdatedAt = time.Now()
	return nil
}

func (b *Bid) IsOwnedBy(vendorID uuid.UUID) bool {
	return b.VendorID == vendorID
}

func (b *Bid) IsPending() bool {
	return b.Status == valueobject.BidStatusPending
}

func (b *Bid) IsAccepted() bool {
	return b.Status == valueobject.BidStatusAccepted
}

func (b *Bid) IsRejected() bool {
	return b.Status == valueobject.BidStatusRejected
}

// CascadeRejectable reports whether accepting a sibling bid turns this one
// into rejected. Withdrawn bids stay withdrawn.
func (b *Bid) CascadeRejectable() bool {
	return b.Status == valueobject.BidStatusPending || b.Status == valueobject.BidStatusRejected
}
