package repository

import "context"

// Repositories is the set of repositories bound to one unit of work.
type Repositories struct {
	JobItems JobItemRepository
	Jobs     JobListingRepository
	Bids     BidRepository
}

// UnitOfWork runs fn atomically. Writes made through repos are committed
// when fn returns nil and discarded otherwise.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error
}
