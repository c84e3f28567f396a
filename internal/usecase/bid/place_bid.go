package bid

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/jobmarket-backend/internal/authz"
	"github.com/ignatzorin/jobmarket-backend/internal/domain/entity"
	"github.com/ignatzorin/jobmarket-backend/internal/domain/repository"
	"github.com/ignatzorin/jobmarket-backend/internal/domain/valueobject"
	"github.com/ignatzorin/jobmarket-backend/internal/logger"
	"github.com/ignatzorin/jobmarket-backend/internal/pkg/apperror"
)

type PlaceBidInput struct {
	JobID   uuid.UUID
	Amount  string
	Message *string
}

type PlaceBidResult struct {
	Bid *entity.Bid
	// Created is false when an earlier bid of the vendor was overwritten.
	Created bool
}

type PlaceBidUseCase struct {
	uow repository.UnitOfWork
}

func NewPlaceBidUseCase(uow repository.UnitOfWork) *PlaceBidUseCase {
	return &PlaceBidUseCase{uow: uow}
}

// Execute inserts the vendor's bid or overwrites the one they already placed
// on the job. The job row is locked so the bid cannot slip in next to a
// concurrent accept.
func (uc *PlaceBidUseCase) Execute(ctx context.Context, input PlaceBidInput) (*PlaceBidResult, error) {
	vendor, err := authz.RequireVendor(ctx)
	if err != nil {
		return nil, err
	}

	amount, err := valueobject.NewAmount(input.Amount)
	if err != nil {
		return nil, err
	}

	var result PlaceBidResult
	err = uc.uow.Do(ctx, func(ctx context.Context, repos repository.Repositories) error {
		job, err := repos.Jobs.FindByIDForUpdate(ctx, input.JobID)
		if err != nil {
			return err
		}
		if !job.AcceptsBids() {
			return apperror.ErrBiddingClosed
		}

		existing, err := repos.Bids.FindByJobAndVendor(ctx, job.ID, vendor.ID)
		if err != nil {
			return err
		}

		if existing != nil {
			if err := existing.Rebid(amount, input.Message); err != nil {
				return err
			}
			if err := repos.Bids.Update(ctx, existing); err != nil {
				return err
			}
			result = PlaceBidResult{Bid: existing}
			return nil
		}

		bid, err := entity.NewBid(job.ID, vendor.ID, amount, input.Message)
		if err != nil {
			return err
		}
		if err := repos.Bids.Create(ctx, bid); err != nil {
			return err
		}
		result = PlaceBidResult{Bid: bid, Created: true}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).WithFields(logrus.Fields{
		"bid_id":    result.Bid.ID,
		"job_id":    input.JobID,
		"vendor_id": vendor.ID,
		"created":   result.Created,
	}).Info("bid: placed")

	return &result, nil
}
