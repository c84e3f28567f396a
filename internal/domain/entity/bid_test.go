package entity_test

import (
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/ignatzorin/jobmarket-backend/internal/domain/entity"
	"github.com/ignatzorin/jobmarket-backend/internal/domain/valueobject"
	"github.com/ignatzorin/jobmarket-backend/internal/pkg/apperror"
)

func newPendingBid(t *testing.T) *entity.Bid {
	t.Helper()
	bid, err := entity.NewBid(uuid.New(), uuid.New(), valueobject.MustAmount("500.00"), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return bid
}

func TestNewBid_MessageLength(t *testing.T) {
	long := strings.Repeat("я", entity.MaxBidMessageLength+1)
	if _, err := entity.NewBid(uuid.New(), uuid.New(), valueobject.MustAmount("1"), &long); !apperror.IsValidation(err) {
		t.Errorf("expected validation error, got %v", err)
	}

	exact := strings.Repeat("я", entity.MaxBidMessageLength)
	if _, err := entity.NewBid(uuid.New(), uuid.New(), valueobject.MustAmount("1"), &exact); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestBid_RejectAccepted(t *testing.T) {
	bid := newPendingBid(t)
	if err := bid.Accept(); err != nil {
		t.Fatalf("accept: %v", err)
	}
	if err := bid.Accept(); err != nil {
		t.Errorf("expected repeated accept to be a no-op, got %v", err)
	}
	if err := bid.Reject(); err != apperror.ErrRejectAcceptedBid {
		t.Errorf("expected ErrRejectAcceptedBid, got %v", err)
	}
	if bid.Status != valueobject.BidStatusAccepted {
		t.Errorf("expected accepted, got %s", bid.Status)
	}
}

func TestBid_RejectedCannotBeAccepted(t *testing.T) {
	bid := newPendingBid(t)
	if err := bid.Reject(); err != nil {
		t.Fatalf("reject: %v", err)
	}
	if err := bid.Reject(); err != nil {
		t.Errorf("expected repeated reject to be a no-op, got %v", err)
	}
	if err := bid.Accept(); !apperror.IsConflict(err) {
		t.Errorf("expected conflict, got %v", err)
	}
}

func TestBid_RebidResetsToPending(t *testing.T) {
	for _, prepare := range []func(*entity.Bid) error{
		func(b *entity.Bid) error { return b.Reject() },
		func(b *entity.Bid) error { return b.Withdraw() },
	} {
		bid := newPendingBid(t)
		id := bid.ID
		if err := prepare(bid); err != nil {
			t.Fatalf("prepare: %v", err)
		}

		msg := "can start tomorrow"
		if err := bid.Rebid(valueobject.MustAmount("420.50"), &msg); err != nil {
			t.Fatalf("rebid: %v", err)
		}
		if bid.ID != id {
			t.Error("expected rebid to keep the bid id")
		}
		if bid.Status != valueobject.BidStatusPending {
			t.Errorf("expected pending, got %s", bid.Status)
		}
		if bid.Amount.String() != "420.50" {
			t.Errorf("expected 420.50, got %s", bid.Amount)
		}
	}
}

func TestBid_Withdraw(t *testing.T) {
	bid := newPendingBid(t)
	if err := bid.Withdraw(); err != nil {
		t.Fatalf("withdraw: %v", err)
	}
	if err := bid.Withdraw(); err != nil {
		t.Errorf("expected repeated withdraw to be a no-op, got %v", err)
	}
	if bid.CascadeRejectable() {
		t.Error("withdrawn bid must not be cascade rejected")
	}

	accepted := newPendingBid(t)
	_ = accepted.Accept()
	if err := accepted.Withdraw(); !apperror.IsConflict(err) {
		t.Errorf("expected conflict, got %v", err)
	}
}
