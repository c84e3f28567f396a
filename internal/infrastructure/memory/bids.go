package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/jobmarket-backend/internal/domain/entity"
	"github.com/ignatzorin/jobmarket-backend/internal/domain/repository"
	"github.com/ignatzorin/jobmarket-backend/internal/domain/valueobject"
	"github.com/ignatzorin/jobmarket-backend/internal/pkg/apperror"
)

type bidRepo struct {
	run access
}

func (r *bidRepo) Create(_ context.Context, bid *entity.Bid) error {
	return r.run(func(t *tables) error {
		if _, ok := t.jobs[bid.JobID]; !ok {
			return apperror.ErrJobNotFound
		}
		for _, b := range t.bids {
			if b.JobID == bid.JobID && b.VendorID == bid.VendorID {
				return apperror.New(apperror.ErrCodeConflict, "vendor already bid on this job")
			}
		}
		t.bids[bid.ID] = *bid
		return nil
	})
}

func (r *bidRepo) Update(_ context.Context, bid *entity.Bid) error {
	return r.run(func(t *tables) error {
		if _, ok := t.bids[bid.ID]; !ok {
			return apperror.ErrBidNotFound
		}
		t.bids[bid.ID] = *bid
		return nil
	})
}

func (r *bidRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Bid, error) {
	var out *entity.Bid
	err := r.run(func(t *tables) error {
		b, ok := t.bids[id]
		if !ok {
			return apperror.ErrBidNotFound
		}
		out = &b
		return nil
	})
	return out, err
}

func (r *bidRepo) FindByJobAndVendor(_ context.Context, jobID, vendorID uuid.UUID) (*entity.Bid, error) {
	var out *entity.Bid
	err := r.run(func(t *tables) error {
		for _, b := range t.bids {
			if b.JobID == jobID && b.VendorID == vendorID {
				cp := b
				out = &cp
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *bidRepo) RejectOthers(_ context.Context, jobID, winnerID uuid.UUID) (int64, error) {
	var n int64
	err := r.run(func(t *tables) error {
		now := time.Now()
		for id, b := range t.bids {
			if b.JobID != jobID || id == winnerID || !b.CascadeRejectable() {
				continue
			}
			b.Status = valueobject.BidStatusRejected
			b.UpdatedAt = now
			t.bids[id] = b
			n++
		}
		return nil
	})
	return n, err
}

func (r *bidRepo) ListByJob(_ context.Context, jobID uuid.UUID) ([]repository.BidView, error) {
	var out []repository.BidView
	err := r.run(func(t *tables) error {
		for _, b := range t.bids {
			if b.JobID != jobID {
				continue
			}
			cp := b
			view := repository.BidView{Bid: &cp, Vendor: entity.PublicProfile{ID: b.VendorID}}
			if v, ok := t.vendors[b.VendorID]; ok {
				view.Vendor = v.Public()
			}
			out = append(out, view)
		}
		return nil
	})
	sort.Slice(out, func(i, k int) bool { return newerFirst(out[i].Bid.ID, out[k].Bid.ID) })
	return out, err
}

func (r *bidRepo) ListByVendor(_ context.Context, vendorID uuid.UUID) ([]repository.VendorBidView, error) {
	var out []repository.VendorBidView
	err := r.run(func(t *tables) error {
		for _, b := range t.bids {
			if b.VendorID != vendorID {
				continue
			}
			cp := b
			view := repository.VendorBidView{Bid: &cp}
			if job, ok := t.jobs[b.JobID]; ok {
				view.JobStatus = job.Status
				view.City = job.City
				if it, ok := t.items[job.JobItemID]; ok {
					view.TaskName = it.Name
				}
			}
			out = append(out, view)
		}
		return nil
	})
	sort.Slice(out, func(i, k int) bool { return newerFirst(out[i].Bid.ID, out[k].Bid.ID) })
	return out, err
}
