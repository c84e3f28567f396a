package bid_test

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/jobmarket-backend/internal/authz"
	"github.com/ignatzorin/jobmarket-backend/internal/domain/entity"
	"github.com/ignatzorin/jobmarket-backend/internal/domain/valueobject"
	"github.com/ignatzorin/jobmarket-backend/internal/infrastructure/memory"
	"github.com/ignatzorin/jobmarket-backend/internal/logger"
	"github.com/ignatzorin/jobmarket-backend/internal/pkg/apperror"
	"github.com/ignatzorin/jobmarket-backend/internal/usecase/bid"
	"github.com/ignatzorin/jobmarket-backend/internal/usecase/catalog"
	"github.com/ignatzorin/jobmarket-backend/internal/usecase/job"
)

func TestMain(m *testing.M) {
	logger.Silence()
	m.Run()
}

func as(id uuid.UUID, role authz.Role) context.Context {
	return authz.WithPrincipal(context.Background(), authz.Principal{ID: id, Role: role})
}

type market struct {
	store    *memory.Store
	customer uuid.UUID
	job      *entity.JobListing

	place    *bid.PlaceBidUseCase
	accept   *bid.AcceptBidUseCase
	reject   *bid.RejectBidUseCase
	withdraw *bid.WithdrawBidUseCase
	listJob  *bid.ListJobBidsUseCase
	listMine *bid.ListMyBidsUseCase
}

// newMarket builds the Plumbing / Leak repair catalog and one open job.
func newMarket(t *testing.T) *market {
	t.Helper()
	store := memory.New()
	customer := uuid.New()
	ctx := as(customer, authz.RoleCustomer)

	items := catalog.NewCreateItemUseCase(store.JobItems())
	plumbing, err := items.Execute(ctx, catalog.CreateItemInput{Name: "Plumbing", Slug: "plumbing", Kind: "category"})
	require.NoError(t, err)
	leak, err := items.Execute(ctx, catalog.CreateItemInput{Name: "Leak repair", Slug: "leak-repair", Kind: "sub-category", ParentID: &plumbing.ID})
	require.NoError(t, err)

	j, err := job.NewCreateJobUseCase(store.Jobs(), catalog.NewResolveTaskUseCase(store.JobItems())).
		Execute(ctx, job.CreateJobInput{TaskID: leak.ID})
	require.NoError(t, err)
	require.Equal(t, valueobject.JobStatusOpen, j.Status)

	return &market{
		store:    store,
		customer: customer,
		job:      j,
		place:    bid.NewPlaceBidUseCase(store),
		accept:   bid.NewAcceptBidUseCase(store),
		reject:   bid.NewRejectBidUseCase(store),
		withdraw: bid.NewWithdrawBidUseCase(store),
		listJob:  bid.NewListJobBidsUseCase(store.Jobs(), store.Bids()),
		listMine: bid.NewListMyBidsUseCase(store.Bids()),
	}
}

func (m *market) owner() context.Context {
	return as(m.customer, authz.RoleCustomer)
}

func (m *market) bid(t *testing.T, vendor uuid.UUID, amount string) *entity.Bid {
	t.Helper()
	res, err := m.place.Execute(as(vendor, authz.RoleVendor), bid.PlaceBidInput{JobID: m.job.ID, Amount: amount})
	require.NoError(t, err)
	return res.Bid
}

func (m *market) status(t *testing.T, bidID uuid.UUID) valueobject.BidStatus {
	t.Helper()
	b, err := m.store.Bids().FindByID(context.Background(), bidID)
	require.NoError(t, err)
	return b.Status
}

func (m *market) reloadJob(t *testing.T) *entity.JobListing {
	t.Helper()
	j, err := m.store.Jobs().FindByID(context.Background(), m.job.ID)
	require.NoError(t, err)
	require.NoError(t, j.CheckInvariant())
	return j
}

func (m *market) acceptedCount(t *testing.T) int {
	t.Helper()
	views, err := m.store.Bids().ListByJob(context.Background(), m.job.ID)
	require.NoError(t, err)
	n := 0
	for _, v := range views {
		if v.Bid.IsAccepted() {
			n++
		}
	}
	return n
}

func TestPlumbingScenario(t *testing.T) {
	m := newMarket(t)
	v1, v2 := uuid.New(), uuid.New()

	b1 := m.bid(t, v1, "500.00")
	b2 := m.bid(t, v2, "450.00")
	assert.Equal(t, valueobject.BidStatusPending, b1.Status)
	assert.Equal(t, valueobject.BidStatusPending, b2.Status)

	accepted, err := m.accept.Execute(m.owner(), b1.ID)
	require.NoError(t, err)
	assert.Equal(t, valueobject.BidStatusAccepted, accepted.Status)

	assert.Equal(t, valueobject.BidStatusAccepted, m.status(t, b1.ID))
	assert.Equal(t, valueobject.BidStatusRejected, m.status(t, b2.ID))

	j := m.reloadJob(t)
	assert.Equal(t, valueobject.JobStatusAssigned, j.Status)
	require.NotNil(t, j.AssignedVendorID)
	assert.Equal(t, v1, *j.AssignedVendorID)
}

func TestPlaceBid_ClosedJob(t *testing.T) {
	m := newMarket(t)
	b := m.bid(t, uuid.New(), "500")
	_, err := m.accept.Execute(m.owner(), b.ID)
	require.NoError(t, err)

	_, err = m.place.Execute(as(uuid.New(), authz.RoleVendor), bid.PlaceBidInput{JobID: m.job.ID, Amount: "300"})
	require.Error(t, err)
	assert.True(t, apperror.IsForbidden(err))
	assert.ErrorIs(t, err, apperror.ErrBiddingClosed)
}

func TestPlaceBid_Validation(t *testing.T) {
	m := newMarket(t)
	vendor := as(uuid.New(), authz.RoleVendor)

	_, err := m.place.Execute(vendor, bid.PlaceBidInput{JobID: uuid.New(), Amount: "10"})
	assert.True(t, apperror.IsNotFound(err))

	for _, amount := range []string{"0", "-5", "1.234", "ten"} {
		_, err = m.place.Execute(vendor, bid.PlaceBidInput{JobID: m.job.ID, Amount: amount})
		assert.Truef(t, apperror.IsValidation(err), "%s: %v", amount, err)
	}

	_, err = m.place.Execute(m.owner(), bid.PlaceBidInput{JobID: m.job.ID, Amount: "10"})
	assert.True(t, apperror.IsForbidden(err))
}

func TestPlaceBid_RebidUpdatesSameRow(t *testing.T) {
	m := newMarket(t)
	vendor := uuid.New()

	first := m.bid(t, vendor, "500")
	msg := "cheaper now"
	res, err := m.place.Execute(as(vendor, authz.RoleVendor), bid.PlaceBidInput{JobID: m.job.ID, Amount: "420.50", Message: &msg})
	require.NoError(t, err)
	assert.False(t, res.Created)
	assert.Equal(t, first.ID, res.Bid.ID)

	views, err := m.listJob.Execute(m.owner(), m.job.ID)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "420.50", views[0].Bid.Amount.String())
	assert.Equal(t, msg, *views[0].Bid.Message)
}

func TestPlaceBid_RebidAfterWithdrawOrRejectIsPending(t *testing.T) {
	m := newMarket(t)
	withdrawer, rejected := uuid.New(), uuid.New()

	wb := m.bid(t, withdrawer, "100")
	_, err := m.withdraw.Execute(as(withdrawer, authz.RoleVendor), wb.ID)
	require.NoError(t, err)

	rb := m.bid(t, rejected, "100")
	_, err = m.reject.Execute(m.owner(), rb.ID)
	require.NoError(t, err)

	assert.Equal(t, wb.ID, m.bid(t, withdrawer, "90").ID)
	assert.Equal(t, rb.ID, m.bid(t, rejected, "80").ID)
	assert.Equal(t, valueobject.BidStatusPending, m.status(t, wb.ID))
	assert.Equal(t, valueobject.BidStatusPending, m.status(t, rb.ID))
}

func TestRejectBid_AcceptedIsConflict(t *testing.T) {
	m := newMarket(t)
	b := m.bid(t, uuid.New(), "500")
	_, err := m.accept.Execute(m.owner(), b.ID)
	require.NoError(t, err)

	_, err = m.reject.Execute(m.owner(), b.ID)
	require.Error(t, err)
	assert.True(t, apperror.IsConflict(err))
	assert.ErrorIs(t, err, apperror.ErrRejectAcceptedBid)
	assert.Equal(t, valueobject.BidStatusAccepted, m.status(t, b.ID))
}

func TestRejectBid_IdempotentAndIsolated(t *testing.T) {
	m := newMarket(t)
	b1 := m.bid(t, uuid.New(), "500")
	b2 := m.bid(t, uuid.New(), "450")

	for i := 0; i < 2; i++ {
		got, err := m.reject.Execute(m.owner(), b1.ID)
		require.NoError(t, err)
		assert.Equal(t, valueobject.BidStatusRejected, got.Status)
	}
	assert.Equal(t, valueobject.BidStatusPending, m.status(t, b2.ID))
	assert.Equal(t, valueobject.JobStatusOpen, m.reloadJob(t).Status)

	_, err := m.reject.Execute(as(uuid.New(), authz.RoleCustomer), b2.ID)
	assert.True(t, apperror.IsForbidden(err))
}

func TestAcceptBid_Idempotent(t *testing.T) {
	m := newMarket(t)
	b1 := m.bid(t, uuid.New(), "500")
	b2 := m.bid(t, uuid.New(), "450")

	_, err := m.accept.Execute(m.owner(), b1.ID)
	require.NoError(t, err)

	// a rebid is impossible now, so force b2 back to pending to see that the
	// repeated accept leaves it alone
	stored, err := m.store.Bids().FindByID(context.Background(), b2.ID)
	require.NoError(t, err)
	stored.Status = valueobject.BidStatusPending
	require.NoError(t, m.store.Bids().Update(context.Background(), stored))

	again, err := m.accept.Execute(m.owner(), b1.ID)
	require.NoError(t, err)
	assert.Equal(t, valueobject.BidStatusAccepted, again.Status)
	assert.Equal(t, valueobject.BidStatusPending, m.status(t, b2.ID))
	assert.Equal(t, 1, m.acceptedCount(t))
}

func TestAcceptBid_SecondWinnerIsConflict(t *testing.T) {
	m := newMarket(t)
	b1 := m.bid(t, uuid.New(), "500")
	b2 := m.bid(t, uuid.New(), "450")

	_, err := m.accept.Execute(m.owner(), b1.ID)
	require.NoError(t, err)

	_, err = m.accept.Execute(m.owner(), b2.ID)
	assert.True(t, apperror.IsConflict(err))
	assert.Equal(t, 1, m.acceptedCount(t))
	assert.Equal(t, valueobject.BidStatusRejected, m.status(t, b2.ID))
}

func TestAcceptBid_WithdrawnStaysWithdrawn(t *testing.T) {
	m := newMarket(t)
	winner := m.bid(t, uuid.New(), "500")
	quitter := uuid.New()
	wb := m.bid(t, quitter, "450")
	_, err := m.withdraw.Execute(as(quitter, authz.RoleVendor), wb.ID)
	require.NoError(t, err)

	_, err = m.accept.Execute(m.owner(), wb.ID)
	assert.True(t, apperror.IsConflict(err), "withdrawn bid cannot win: %v", err)

	_, err = m.accept.Execute(m.owner(), winner.ID)
	require.NoError(t, err)
	assert.Equal(t, valueobject.BidStatusWithdrawn, m.status(t, wb.ID))
}

func TestAcceptBid_Authorization(t *testing.T) {
	m := newMarket(t)
	b := m.bid(t, uuid.New(), "500")

	_, err := m.accept.Execute(as(uuid.New(), authz.RoleCustomer), b.ID)
	assert.True(t, apperror.IsForbidden(err))

	_, err = m.accept.Execute(as(b.VendorID, authz.RoleVendor), b.ID)
	assert.True(t, apperror.IsForbidden(err))

	_, err = m.accept.Execute(context.Background(), b.ID)
	assert.True(t, apperror.IsUnauthorized(err))

	_, err = m.accept.Execute(m.owner(), uuid.New())
	assert.True(t, apperror.IsNotFound(err))

	assert.Equal(t, valueobject.BidStatusPending, m.status(t, b.ID))
	assert.Equal(t, valueobject.JobStatusOpen, m.reloadJob(t).Status)
}

func TestAcceptBid_ConcurrentAcceptsPickOneWinner(t *testing.T) {
	m := newMarket(t)
	var bids []*entity.Bid
	for i := 0; i < 8; i++ {
		bids = append(bids, m.bid(t, uuid.New(), "100"))
	}

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		wins int
	)
	for _, b := range bids {
		wg.Add(1)
		go func(id uuid.UUID) {
			defer wg.Done()
			if _, err := m.accept.Execute(m.owner(), id); err == nil {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}(b.ID)
	}
	wg.Wait()

	assert.Equal(t, 1, wins)
	assert.Equal(t, 1, m.acceptedCount(t))
	j := m.reloadJob(t)
	assert.Equal(t, valueobject.JobStatusAssigned, j.Status)
}

func TestWithdrawBid(t *testing.T) {
	m := newMarket(t)
	vendor := uuid.New()
	b := m.bid(t, vendor, "500")

	_, err := m.withdraw.Execute(as(uuid.New(), authz.RoleVendor), b.ID)
	assert.True(t, apperror.IsNotFound(err))

	for i := 0; i < 2; i++ {
		got, err := m.withdraw.Execute(as(vendor, authz.RoleVendor), b.ID)
		require.NoError(t, err)
		assert.Equal(t, valueobject.BidStatusWithdrawn, got.Status)
	}

	other := uuid.New()
	ob := m.bid(t, other, "400")
	_, err = m.accept.Execute(m.owner(), ob.ID)
	require.NoError(t, err)
	_, err = m.withdraw.Execute(as(other, authz.RoleVendor), ob.ID)
	assert.True(t, apperror.IsConflict(err))
}

func TestListJobBids_OwnerOnly(t *testing.T) {
	m := newMarket(t)
	m.bid(t, uuid.New(), "500")
	latest := m.bid(t, uuid.New(), "450")

	views, err := m.listJob.Execute(m.owner(), m.job.ID)
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, latest.ID, views[0].Bid.ID)
	assert.Equal(t, latest.VendorID, views[0].Vendor.ID)

	_, err = m.listJob.Execute(as(uuid.New(), authz.RoleCustomer), m.job.ID)
	assert.True(t, apperror.IsForbidden(err))

	_, err = m.listJob.Execute(m.owner(), uuid.New())
	assert.True(t, apperror.IsNotFound(err))
}

func TestListMyBids(t *testing.T) {
	m := newMarket(t)
	vendor := uuid.New()
	b := m.bid(t, vendor, "500")
	m.bid(t, uuid.New(), "450")

	views, err := m.listMine.Execute(as(vendor, authz.RoleVendor))
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, b.ID, views[0].Bid.ID)
	assert.Equal(t, "Leak repair", views[0].TaskName)
	assert.Equal(t, valueobject.JobStatusOpen, views[0].JobStatus)
}
