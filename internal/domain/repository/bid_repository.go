package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/ignatzorin/jobmarket-backend/internal/domain/entity"
	"github.com/ignatzorin/jobmarket-backend/internal/domain/valueobject"
)

type BidRepository interface {
	Create(ctx context.Context, bid *entity.Bid) error
	Update(ctx context.Context, bid *entity.Bid) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Bid, error)
	// FindByJobAndVendor returns nil, nil when the vendor has not bid yet.
	FindByJobAndVendor(ctx context.Context, jobID, vendorID uuid.UUID) (*entity.Bid, error)
	// RejectOthers moves every pending or rejected bid of the job except
	// winnerID to rejected and returns the number of rows touched.
	RejectOthers(ctx context.Context, jobID, winnerID uuid.UUID) (int64, error)
	ListByJob(ctx context.Context, jobID uuid.UUID) ([]BidView, error)
	ListByVendor(ctx context.Context, vendorID uuid.UUID) ([]VendorBidView, error)
}

// BidView is a bid joined with the bidding vendor's public fields.
type BidView struct {
	Bid    *entity.Bid
	Vendor entity.PublicProfile
}

// VendorBidView is a bid joined with a summary of the job it targets.
type VendorBidView struct {
	Bid       *entity.Bid
	JobStatus valueobject.JobStatus
	TaskName  string
	City      *string
}
