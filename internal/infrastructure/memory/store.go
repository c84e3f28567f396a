// Package memory is an in-memory implementation of the domain repositories.
// It is safe for concurrent access and is used by tests and local runs.
package memory

import (
	"bytes"
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/ignatzorin/jobmarket-backend/internal/domain/entity"
	"github.com/ignatzorin/jobmarket-backend/internal/domain/repository"
)

var (
	_ repository.JobItemRepository    = (*jobItemRepo)(nil)
	_ repository.JobListingRepository = (*jobRepo)(nil)
	_ repository.BidRepository        = (*bidRepo)(nil)
	_ repository.CustomerRepository   = (*customerRepo)(nil)
	_ repository.VendorRepository     = (*vendorRepo)(nil)
	_ repository.UnitOfWork           = (*Store)(nil)
)

// Store keeps every table in maps guarded by one mutex. A unit of work holds
// the mutex for its whole duration and restores a snapshot on failure.
type Store struct {
	mu   sync.Mutex
	data *tables
}

type tables struct {
	items     map[uuid.UUID]entity.JobItem
	jobs      map[uuid.UUID]entity.JobListing
	bids      map[uuid.UUID]entity.Bid
	customers map[uuid.UUID]entity.Customer
	vendors   map[uuid.UUID]entity.Vendor
}

func New() *Store {
	return &Store{data: newTables()}
}

func newTables() *tables {
	return &tables{
		items:     make(map[uuid.UUID]entity.JobItem),
		jobs:      make(map[uuid.UUID]entity.JobListing),
		bids:      make(map[uuid.UUID]entity.Bid),
		customers: make(map[uuid.UUID]entity.Customer),
		vendors:   make(map[uuid.UUID]entity.Vendor),
	}
}

func (t *tables) clone() *tables {
	c := newTables()
	for k, v := range t.items {
		c.items[k] = v
	}
	for k, v := range t.jobs {
		c.jobs[k] = v
	}
	for k, v := range t.bids {
		c.bids[k] = v
	}
	for k, v := range t.customers {
		c.customers[k] = v
	}
	for k, v := range t.vendors {
		c.vendors[k] = v
	}
	return c
}

// access runs fn against the tables.
type access func(fn func(t *tables) error) error

func (s *Store) locked(fn func(t *tables) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.data)
}

// PingContext always succeeds for the memory store.
func (s *Store) PingContext(_ context.Context) error { return nil }

// Close is a no-op for the memory store.
func (s *Store) Close() error { return nil }

func (s *Store) JobItems() repository.JobItemRepository   { return &jobItemRepo{run: s.locked} }
func (s *Store) Jobs() repository.JobListingRepository    { return &jobRepo{run: s.locked} }
func (s *Store) Bids() repository.BidRepository           { return &bidRepo{run: s.locked} }
func (s *Store) Customers() repository.CustomerRepository { return &customerRepo{run: s.locked} }
func (s *Store) Vendors() repository.VendorRepository     { return &vendorRepo{run: s.locked} }

// Do runs fn with repositories bound to this unit of work. They must not be
// used after Do returns.
func (s *Store) Do(ctx context.Context, fn func(ctx context.Context, repos repository.Repositories) error) (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.data.clone()
	defer func() {
		if p := recover(); p != nil {
			s.data = snapshot
			panic(p)
		}
		if err != nil {
			s.data = snapshot
		}
	}()

	// The mutex is already held; bound repositories skip locking.
	run := func(f func(t *tables) error) error { return f(s.data) }
	if err = ctx.Err(); err != nil {
		return err
	}
	return fn(ctx, repository.Repositories{
		JobItems: &jobItemRepo{run: run},
		Jobs:     &jobRepo{run: run},
		Bids:     &bidRepo{run: run},
	})
}

// newerFirst orders uuid v7 ids by creation time, newest first.
func newerFirst(a, b uuid.UUID) bool {
	return bytes.Compare(a[:], b[:]) > 0
}
