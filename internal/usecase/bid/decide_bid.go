package bid

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/jobmarket-backend/internal/authz"
	"github.com/ignatzorin/jobmarket-backend/internal/domain/entity"
	"github.com/ignatzorin/jobmarket-backend/internal/domain/repository"
	"github.com/ignatzorin/jobmarket-backend/internal/logger"
	"github.com/ignatzorin/jobmarket-backend/internal/pkg/apperror"
	"github.com/ignatzorin/jobmarket-backend/internal/usecase/job"
)

// lockBid loads the bid and locks its job, then reloads the bid so its status
// is read under the lock.
func lockBid(ctx context.Context, repos repository.Repositories, bidID uuid.UUID) (*entity.Bid, *entity.JobListing, error) {
	b, err := repos.Bids.FindByID(ctx, bidID)
	if err != nil {
		return nil, nil, err
	}
	j, err := repos.Jobs.FindByIDForUpdate(ctx, b.JobID)
	if err != nil {
		return nil, nil, err
	}
	b, err = repos.Bids.FindByID(ctx, bidID)
	if err != nil {
		return nil, nil, err
	}
	return b, j, nil
}

type AcceptBidUseCase struct {
	uow repository.UnitOfWork
}

func NewAcceptBidUseCase(uow repository.UnitOfWork) *AcceptBidUseCase {
	return &AcceptBidUseCase{uow: uow}
}

// Execute accepts the bid, rejects its competitors and assigns the job in one
// unit of work. Accepting an already accepted bid changes nothing.
func (uc *AcceptBidUseCase) Execute(ctx context.Context, bidID uuid.UUID) (*entity.Bid, error) {
	customer, err := authz.RequireCustomer(ctx)
	if err != nil {
		return nil, err
	}

	var (
		accepted *entity.Bid
		rejected int64
		noop     bool
	)
	err = uc.uow.Do(ctx, func(ctx context.Context, repos repository.Repositories) error {
		b, j, err := lockBid(ctx, repos, bidID)
		if err != nil {
			return err
		}
		if err := authz.EnsureOwner(customer, j.CustomerID); err != nil {
			return err
		}

		if b.IsAccepted() {
			accepted, noop = b, true
			return nil
		}
		if !j.AcceptsBids() {
			return apperror.ErrJobNotOpen
		}

		if err := b.Accept(); err != nil {
			return err
		}
		if err := repos.Bids.Update(ctx, b); err != nil {
			return err
		}
		if rejected, err = repos.Bids.RejectOthers(ctx, j.ID, b.ID); err != nil {
			return err
		}
		if err := job.MarkAssigned(ctx, repos.Jobs, j, b.VendorID); err != nil {
			return err
		}

		accepted = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	if !noop {
		logger.FromContext(ctx).WithFields(logrus.Fields{
			"bid_id":    accepted.ID,
			"job_id":    accepted.JobID,
			"vendor_id": accepted.VendorID,
			"rejected":  rejected,
		}).Info("bid: accepted")
	}

	return accepted, nil
}

type RejectBidUseCase struct {
	uow repository.UnitOfWork
}

func NewRejectBidUseCase(uow repository.UnitOfWork) *RejectBidUseCase {
	return &RejectBidUseCase{uow: uow}
}

// Execute rejects a single bid. The job and the other bids are untouched.
func (uc *RejectBidUseCase) Execute(ctx context.Context, bidID uuid.UUID) (*entity.Bid, error) {
	customer, err := authz.RequireCustomer(ctx)
	if err != nil {
		return nil, err
	}

	var rejected *entity.Bid
	err = uc.uow.Do(ctx, func(ctx context.Context, repos repository.Repositories) error {
		b, j, err := lockBid(ctx, repos, bidID)
		if err != nil {
			return err
		}
		if err := authz.EnsureOwner(customer, j.CustomerID); err != nil {
			return err
		}

		rejected = b
		if b.IsRejected() {
			return nil
		}
		if err := b.Reject(); err != nil {
			return err
		}
		return repos.Bids.Update(ctx, b)
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).WithFields(logrus.Fields{
		"bid_id": rejected.ID,
		"job_id": rejected.JobID,
	}).Info("bid: rejected")

	return rejected, nil
}

type WithdrawBidUseCase struct {
	uow repository.UnitOfWork
}

func NewWithdrawBidUseCase(uow repository.UnitOfWork) *WithdrawBidUseCase {
	return &WithdrawBidUseCase{uow: uow}
}

// Execute withdraws the caller's pending bid. Bids of other vendors are
// reported as missing.
func (uc *WithdrawBidUseCase) Execute(ctx context.Context, bidID uuid.UUID) (*entity.Bid, error) {
	vendor, err := authz.RequireVendor(ctx)
	if err != nil {
		return nil, err
	}

	var withdrawn *entity.Bid
	err = uc.uow.Do(ctx, func(ctx context.Context, repos repository.Repositories) error {
		b, _, err := lockBid(ctx, repos, bidID)
		if err != nil {
			return err
		}
		if !b.IsOwnedBy(vendor.ID) {
			return apperror.ErrBidNotFound
		}

		withdrawn = b
		if !b.IsPending() {
			// no-op for withdrawn, conflict for accepted or rejected
			return b.Withdraw()
		}
		if err := b.Withdraw(); err != nil {
			return err
		}
		return repos.Bids.Update(ctx, b)
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).WithFields(logrus.Fields{
		"bid_id":    withdrawn.ID,
		"vendor_id": vendor.ID,
	}).Info("bid: withdrawn")

	return withdrawn, nil
}
