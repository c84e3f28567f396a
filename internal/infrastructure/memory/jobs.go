package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/ignatzorin/jobmarket-backend/internal/domain/entity"
	"github.com/ignatzorin/jobmarket-backend/internal/domain/repository"
	"github.com/ignatzorin/jobmarket-backend/internal/domain/valueobject"
	"github.com/ignatzorin/jobmarket-backend/internal/pkg/apperror"
)

type jobRepo struct {
	run access
}

// withTask returns a copy of the stored job with its task and category attached.
func withTask(t *tables, job entity.JobListing) *entity.JobListing {
	if it, ok := t.items[job.JobItemID]; ok {
		it.Parent = loadParent(t, &it)
		job.Task = &it
	}
	return &job
}

func (r *jobRepo) Create(_ context.Context, job *entity.JobListing) error {
	return r.run(func(t *tables) error {
		if _, exists := t.jobs[job.ID]; exists {
			return apperror.New(apperror.ErrCodeConflict, "job already exists")
		}
		if _, ok := t.items[job.JobItemID]; !ok {
			return apperror.ErrJobItemNotFound
		}
		cp := *job
		cp.Task = nil
		t.jobs[job.ID] = cp
		return nil
	})
}

func (r *jobRepo) Transition(_ context.Context, job *entity.JobListing, from valueobject.JobStatus) error {
	if err := job.CheckInvariant(); err != nil {
		return err
	}
	return r.run(func(t *tables) error {
		stored, ok := t.jobs[job.ID]
		if !ok {
			return apperror.ErrJobNotFound
		}
		if stored.Status != from {
			return repository.StaleTransitionError(from)
		}
		stored.Status = job.Status
		stored.AssignedVendorID = job.AssignedVendorID
		stored.UpdatedAt = job.UpdatedAt
		t.jobs[job.ID] = stored
		return nil
	})
}

func (r *jobRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.JobListing, error) {
	var out *entity.JobListing
	err := r.run(func(t *tables) error {
		job, ok := t.jobs[id]
		if !ok {
			return apperror.ErrJobNotFound
		}
		out = withTask(t, job)
		return nil
	})
	return out, err
}

// FindByIDForUpdate needs no extra locking: units of work are already serialized.
func (r *jobRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.JobListing, error) {
	return r.FindByID(ctx, id)
}

func (r *jobRepo) FindByIDAndCustomer(_ context.Context, id, customerID uuid.UUID) (*entity.JobListing, error) {
	var out *entity.JobListing
	err := r.run(func(t *tables) error {
		job, ok := t.jobs[id]
		if !ok || job.CustomerID != customerID {
			return apperror.ErrJobNotFound
		}
		out = withTask(t, job)
		return nil
	})
	return out, err
}

func (r *jobRepo) List(_ context.Context, filter repository.JobFilter) ([]*entity.JobListing, int, error) {
	var matched []*entity.JobListing
	err := r.run(func(t *tables) error {
		for _, job := range t.jobs {
			if job.CustomerID != filter.CustomerID {
				continue
			}
			if filter.Status != nil && job.Status != *filter.Status {
				continue
			}
			matched = append(matched, withTask(t, job))
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}

	sort.Slice(matched, func(i, k int) bool {
		if filter.Sort == repository.JobSortOldest {
			return newerFirst(matched[k].ID, matched[i].ID)
		}
		return newerFirst(matched[i].ID, matched[k].ID)
	})

	total := len(matched)
	start := min(max(filter.Offset, 0), total)
	end := total
	if filter.Limit > 0 {
		end = min(start+filter.Limit, total)
	}
	return matched[start:end], total, nil
}

func (r *jobRepo) ListOpen(_ context.Context) ([]repository.OpenJobView, error) {
	var out []repository.OpenJobView
	err := r.run(func(t *tables) error {
		for _, job := range t.jobs {
			if job.Status != valueobject.JobStatusOpen {
				continue
			}
			full := withTask(t, job)
			view := repository.OpenJobView{
				ID:            job.ID,
				Owner:         entity.PublicProfile{ID: job.CustomerID},
				Details:       job.Details,
				City:          job.City,
				Pincode:       job.Pincode,
				ScheduledDate: job.ScheduledDate,
				ScheduledTime: job.ScheduledTime,
				CreatedAt:     job.CreatedAt,
			}
			if full.Task != nil {
				view.TaskName = full.Task.Name
				view.CategoryName = full.Task.CategoryName()
			}
			if c, ok := t.customers[job.CustomerID]; ok {
				view.Owner = c.Public()
			}
			out = append(out, view)
		}
		return nil
	})
	sort.Slice(out, func(i, k int) bool { return newerFirst(out[i].ID, out[k].ID) })
	return out, err
}
