package repo

import (
	"context"
	"gig-marketplace-api/internal/entity"
	"gig-marketplace-api/internal/repo/pgdb"
	"gig-marketplace-api/pkg/postgres"

	"github.com/google/uuid"
)

type Diagnostics interface {
	Ping() error
}

type Gig interface {
	CreateGig(ctx context.Context, input *entity.CreateGigInput) (uuid.UUID, error)
	GetGigById(ctx context.Context, id string) (*entity.Gig, error)
	GetOpenGigs(ctx context.Context, titleSearch string, pg *entity.PaginationInput) ([]entity.Gig, error)
	// AssignGigIfOpen flips the gig status open -> assigned with a single
	// conditional update. It reports false when the gig was no longer open,
	// which under concurrent hires means another caller won the race.
	AssignGigIfOpen(ctx context.Context, id string) (bool, error)
}

type Bid interface {
	CreateBid(ctx context.Context, input *entity.CreateBidInput) (uuid.UUID, error)
	GetBidById(ctx context.Context, id string) (*entity.Bid, error)
	GetGigBids(ctx context.Context, gigId string, pg *entity.PaginationInput) ([]entity.Bid, error)
	HasBidFromFreelancer(ctx context.Context, gigId string, freelancerId string) (bool, error)
	UpdateBidStatusById(ctx context.Context, id string, newStatus string) error
	// RejectOtherPendingBids moves every still-pending bid for the gig,
	// except the hired one, to rejected. Returns the number of bids swept.
	RejectOtherPendingBids(ctx context.Context, gigId string, hiredBidId string) (int64, error)
}

type Repositories struct {
	Diagnostics
	Gig
	Bid
}

func NewRepositories(p *postgres.Postgres) *Repositories {
	return &Repositories{
		Diagnostics: pgdb.NewDiagnosticsRepo(p),
		Gig:         pgdb.NewGigRepo(p),
		Bid:         pgdb.NewBidRepo(p),
	}
}
