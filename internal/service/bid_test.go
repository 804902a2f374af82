package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"gig-marketplace-api/internal/common"
	"gig-marketplace-api/internal/entity"
	"gig-marketplace-api/internal/repo"
	"gig-marketplace-api/internal/repo/repo_errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGigRepo struct {
	mu   sync.Mutex
	gigs map[string]*entity.Gig
}

func newFakeGigRepo() *fakeGigRepo {
	return &fakeGigRepo{gigs: make(map[string]*entity.Gig)}
}

func (f *fakeGigRepo) CreateGig(ctx context.Context, input *entity.CreateGigInput) (uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	id := uuid.New()
	f.gigs[id.String()] = &entity.Gig{
		Id:          id,
		Title:       input.Title,
		Description: input.Description,
		Budget:      input.Budget,
		OwnerId:     uuid.MustParse(input.OwnerId),
		Status:      common.GigOpen,
	}

	return id, nil
}

func (f *fakeGigRepo) GetGigById(ctx context.Context, id string) (*entity.Gig, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	gig, ok := f.gigs[id]
	if !ok {
		return nil, repo_errors.ErrNotFound
	}
	copied := *gig

	return &copied, nil
}

func (f *fakeGigRepo) GetOpenGigs(ctx context.Context, titleSearch string, pg *entity.PaginationInput) ([]entity.Gig, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	gigs := make([]entity.Gig, 0)
	for _, gig := range f.gigs {
		if gig.Status == common.GigOpen {
			gigs = append(gigs, *gig)
		}
	}

	return gigs, nil
}

func (f *fakeGigRepo) AssignGigIfOpen(ctx context.Context, id string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	gig, ok := f.gigs[id]
	if !ok || gig.Status != common.GigOpen {
		return false, nil
	}
	gig.Status = common.GigAssigned

	return true, nil
}

type fakeBidRepo struct {
	mu        sync.Mutex
	bids      map[string]*entity.Bid
	statusErr error
	sweepErr  error
}

func newFakeBidRepo() *fakeBidRepo {
	return &fakeBidRepo{bids: make(map[string]*entity.Bid)}
}

func (f *fakeBidRepo) CreateBid(ctx context.Context, input *entity.CreateBidInput) (uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, bid := range f.bids {
		if bid.GigId.String() == input.GigId && bid.FreelancerId.String() == input.FreelancerId {
			return uuid.Nil, repo_errors.ErrAlreadyExists
		}
	}

	id := uuid.New()
	f.bids[id.String()] = &entity.Bid{
		Id:           id,
		GigId:        uuid.MustParse(input.GigId),
		FreelancerId: uuid.MustParse(input.FreelancerId),
		Message:      input.Message,
		Price:        input.Price,
		Status:       common.BidPending,
	}

	return id, nil
}

func (f *fakeBidRepo) GetBidById(ctx context.Context, id string) (*entity.Bid, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	bid, ok := f.bids[id]
	if !ok {
		return nil, repo_errors.ErrNotFound
	}
	copied := *bid

	return &copied, nil
}

func (f *fakeBidRepo) GetGigBids(ctx context.Context, gigId string, pg *entity.PaginationInput) ([]entity.Bid, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	bids := make([]entity.Bid, 0)
	for _, bid := range f.bids {
		if bid.GigId.String() == gigId {
			bids = append(bids, *bid)
		}
	}

	return bids, nil
}

func (f *fakeBidRepo) HasBidFromFreelancer(ctx context.Context, gigId string, freelancerId string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, bid := range f.bids {
		if bid.GigId.String() == gigId && bid.FreelancerId.String() == freelancerId {
			return true, nil
		}
	}

	return false, nil
}

func (f *fakeBidRepo) UpdateBidStatusById(ctx context.Context, id string, newStatus string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.statusErr != nil {
		return f.statusErr
	}

	bid, ok := f.bids[id]
	if !ok {
		return repo_errors.ErrNotFound
	}
	bid.Status = newStatus

	return nil
}

func (f *fakeBidRepo) RejectOtherPendingBids(ctx context.Context, gigId string, hiredBidId string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.sweepErr != nil {
		return 0, f.sweepErr
	}

	var swept int64
	for _, bid := range f.bids {
		if bid.GigId.String() == gigId && bid.Id.String() != hiredBidId && bid.Status == common.BidPending {
			bid.Status = common.BidRejected
			swept++
		}
	}

	return swept, nil
}

type publishedEvent struct {
	UserId string
	Event  string
}

type fakeNotifier struct {
	mu        sync.Mutex
	err       error
	published []publishedEvent
}

func (f *fakeNotifier) Publish(ctx context.Context, userId string, event string, payload any) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, publishedEvent{UserId: userId, Event: event})

	return nil
}

type bidTestEnv struct {
	gigs     *fakeGigRepo
	bids     *fakeBidRepo
	notifier *fakeNotifier
	service  *BidService

	owner       uuid.UUID
	freelancer1 uuid.UUID
	freelancer2 uuid.UUID
	gigId       uuid.UUID
	bid1        uuid.UUID
	bid2        uuid.UUID
}

// newBidTestEnv sets up an open gig by owner with pending bids from two
// different freelancers.
func newBidTestEnv(t *testing.T) *bidTestEnv {
	t.Helper()

	env := &bidTestEnv{
		gigs:        newFakeGigRepo(),
		bids:        newFakeBidRepo(),
		notifier:    &fakeNotifier{},
		owner:       uuid.New(),
		freelancer1: uuid.New(),
		freelancer2: uuid.New(),
	}
	env.service = NewBidService(&repo.Repositories{Gig: env.gigs, Bid: env.bids}, env.notifier)

	gigId, err := env.gigs.CreateGig(context.Background(), &entity.CreateGigInput{
		Title:       "Logo design",
		Description: "Design a logo",
		Budget:      500,
		OwnerId:     env.owner.String(),
	})
	require.NoError(t, err)
	env.gigId = gigId

	env.bid1, err = env.bids.CreateBid(context.Background(), &entity.CreateBidInput{
		GigId:        gigId.String(),
		FreelancerId: env.freelancer1.String(),
		Message:      "I can do this",
		Price:        450,
	})
	require.NoError(t, err)

	env.bid2, err = env.bids.CreateBid(context.Background(), &entity.CreateBidInput{
		GigId:        gigId.String(),
		FreelancerId: env.freelancer2.String(),
		Message:      "Pick me instead",
		Price:        400,
	})
	require.NoError(t, err)

	return env
}

func (env *bidTestEnv) bidStatus(t *testing.T, id uuid.UUID) string {
	t.Helper()

	bid, err := env.bids.GetBidById(context.Background(), id.String())
	require.NoError(t, err)

	return bid.Status
}

func (env *bidTestEnv) gigStatus(t *testing.T) string {
	t.Helper()

	gig, err := env.gigs.GetGigById(context.Background(), env.gigId.String())
	require.NoError(t, err)

	return gig.Status
}

func TestHireBidAssignsGigAndRejectsCompetitors(t *testing.T) {
	env := newBidTestEnv(t)

	result, err := env.service.HireBid(context.Background(), env.bid1.String(), env.owner.String())
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, env.gigId.String(), result.GigId)
	assert.Equal(t, env.bid1.String(), result.BidId)
	assert.False(t, result.CleanupIncomplete)

	assert.Equal(t, common.GigAssigned, env.gigStatus(t))
	assert.Equal(t, common.BidHired, env.bidStatus(t, env.bid1))
	assert.Equal(t, common.BidRejected, env.bidStatus(t, env.bid2))

	require.Len(t, env.notifier.published, 1)
	assert.Equal(t, env.freelancer1.String(), env.notifier.published[0].UserId)
	assert.Equal(t, common.HiredEvent, env.notifier.published[0].Event)
}

func TestHireBidUnknownBid(t *testing.T) {
	env := newBidTestEnv(t)

	_, err := env.service.HireBid(context.Background(), uuid.NewString(), env.owner.String())
	require.ErrorIs(t, err, ErrBidNotFound)

	assert.Equal(t, common.GigOpen, env.gigStatus(t))
	assert.Equal(t, common.BidPending, env.bidStatus(t, env.bid1))
	assert.Empty(t, env.notifier.published)
}

func TestHireBidUnknownGig(t *testing.T) {
	env := newBidTestEnv(t)

	orphan, err := env.bids.CreateBid(context.Background(), &entity.CreateBidInput{
		GigId:        uuid.NewString(),
		FreelancerId: env.freelancer1.String(),
		Message:      "dangling",
		Price:        10,
	})
	require.NoError(t, err)

	_, err = env.service.HireBid(context.Background(), orphan.String(), env.owner.String())
	require.ErrorIs(t, err, ErrGigNotFound)
}

func TestHireBidByNonOwner(t *testing.T) {
	env := newBidTestEnv(t)

	_, err := env.service.HireBid(context.Background(), env.bid1.String(), env.freelancer2.String())
	require.ErrorIs(t, err, ErrNotGigOwner)

	assert.Equal(t, common.GigOpen, env.gigStatus(t))
	assert.Equal(t, common.BidPending, env.bidStatus(t, env.bid1))
	assert.Equal(t, common.BidPending, env.bidStatus(t, env.bid2))
	assert.Empty(t, env.notifier.published)
}

func TestHireBidOnAssignedGig(t *testing.T) {
	env := newBidTestEnv(t)

	_, err := env.service.HireBid(context.Background(), env.bid1.String(), env.owner.String())
	require.NoError(t, err)

	_, err = env.service.HireBid(context.Background(), env.bid2.String(), env.owner.String())
	require.ErrorIs(t, err, ErrGigAlreadyAssigned)

	// repeated attempts keep failing the same way with no state change
	_, err = env.service.HireBid(context.Background(), env.bid2.String(), env.owner.String())
	require.ErrorIs(t, err, ErrGigAlreadyAssigned)

	assert.Equal(t, common.BidHired, env.bidStatus(t, env.bid1))
	assert.Equal(t, common.BidRejected, env.bidStatus(t, env.bid2))
}

func TestHireBidConcurrentSingleWinner(t *testing.T) {
	env := newBidTestEnv(t)

	results := make([]error, 2)
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, results[0] = env.service.HireBid(context.Background(), env.bid1.String(), env.owner.String())
	}()
	go func() {
		defer wg.Done()
		_, results[1] = env.service.HireBid(context.Background(), env.bid2.String(), env.owner.String())
	}()
	wg.Wait()

	var wins, losses int
	for _, err := range results {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, ErrHireRaceLost) || errors.Is(err, ErrGigAlreadyAssigned):
			losses++
		default:
			t.Fatalf("unexpected hire error: %v", err)
		}
	}
	require.Equal(t, 1, wins, "exactly one concurrent hire must win")
	require.Equal(t, 1, losses)

	assert.Equal(t, common.GigAssigned, env.gigStatus(t))

	statuses := []string{env.bidStatus(t, env.bid1), env.bidStatus(t, env.bid2)}
	assert.ElementsMatch(t, []string{common.BidHired, common.BidRejected}, statuses)
	assert.Len(t, env.notifier.published, 1)
}

func TestHireBidSweepFailureIsDegradedSuccess(t *testing.T) {
	env := newBidTestEnv(t)
	env.bids.sweepErr = errors.New("connection reset")

	result, err := env.service.HireBid(context.Background(), env.bid1.String(), env.owner.String())
	require.NoError(t, err, "the committed hire must not be reported as failed")
	require.NotNil(t, result)

	assert.True(t, result.CleanupIncomplete)
	assert.Equal(t, common.GigAssigned, env.gigStatus(t))
	assert.Equal(t, common.BidHired, env.bidStatus(t, env.bid1))
	// the failed sweep left the competing bid pending for reconciliation
	assert.Equal(t, common.BidPending, env.bidStatus(t, env.bid2))
	assert.Len(t, env.notifier.published, 1)
}

func TestHireBidNotifierFailureIsSwallowed(t *testing.T) {
	env := newBidTestEnv(t)
	env.notifier.err = errors.New("channel unavailable")

	result, err := env.service.HireBid(context.Background(), env.bid1.String(), env.owner.String())
	require.NoError(t, err)
	assert.False(t, result.CleanupIncomplete)
	assert.Equal(t, common.GigAssigned, env.gigStatus(t))
}

func TestCreateBid(t *testing.T) {
	env := newBidTestEnv(t)
	freelancer3 := uuid.New()

	bid, err := env.service.CreateBid(context.Background(), &entity.CreateBidInput{
		GigId:        env.gigId.String(),
		FreelancerId: freelancer3.String(),
		Message:      "Third offer",
		Price:        300,
	})
	require.NoError(t, err)

	assert.Equal(t, common.BidPending, bid.Status)
	assert.Equal(t, env.gigId.String(), bid.GigId)
	assert.Equal(t, freelancer3.String(), bid.Freelancer.Id)
}

func TestCreateBidUnknownGig(t *testing.T) {
	env := newBidTestEnv(t)

	_, err := env.service.CreateBid(context.Background(), &entity.CreateBidInput{
		GigId:        uuid.NewString(),
		FreelancerId: env.freelancer1.String(),
		Message:      "hello",
		Price:        100,
	})
	require.ErrorIs(t, err, ErrGigNotFound)
}

func TestCreateBidDuplicateRejected(t *testing.T) {
	env := newBidTestEnv(t)

	_, err := env.service.CreateBid(context.Background(), &entity.CreateBidInput{
		GigId:        env.gigId.String(),
		FreelancerId: env.freelancer1.String(),
		Message:      "second try",
		Price:        440,
	})
	require.ErrorIs(t, err, ErrDuplicateBid)

	bids, err := env.bids.GetGigBids(context.Background(), env.gigId.String(), entity.NewPaginationInput(0, 0))
	require.NoError(t, err)
	assert.Len(t, bids, 2, "no duplicate record must be created")
}

func TestCreateBidOnOwnGig(t *testing.T) {
	env := newBidTestEnv(t)

	_, err := env.service.CreateBid(context.Background(), &entity.CreateBidInput{
		GigId:        env.gigId.String(),
		FreelancerId: env.owner.String(),
		Message:      "bidding on myself",
		Price:        1,
	})
	require.ErrorIs(t, err, ErrOwnGigBid)
}

func TestCreateBidOnAssignedGig(t *testing.T) {
	env := newBidTestEnv(t)

	_, err := env.service.HireBid(context.Background(), env.bid1.String(), env.owner.String())
	require.NoError(t, err)

	_, err = env.service.CreateBid(context.Background(), &entity.CreateBidInput{
		GigId:        env.gigId.String(),
		FreelancerId: uuid.NewString(),
		Message:      "too late",
		Price:        200,
	})
	require.ErrorIs(t, err, ErrGigNotOpen)
}

func TestGetGigBidsOwnerOnly(t *testing.T) {
	env := newBidTestEnv(t)

	bids, err := env.service.GetGigBids(context.Background(), env.gigId.String(), env.owner.String(), entity.NewPaginationInput(0, 0))
	require.NoError(t, err)
	assert.Len(t, bids, 2)

	_, err = env.service.GetGigBids(context.Background(), env.gigId.String(), env.freelancer1.String(), entity.NewPaginationInput(0, 0))
	require.ErrorIs(t, err, ErrNotGigOwner)
}
