package service

import (
	"context"
	"gig-marketplace-api/internal/entity"
	"gig-marketplace-api/internal/notify"
	"gig-marketplace-api/internal/repo"
)

type Diagnostics interface {
	Ping() error
}

type Gig interface {
	CreateGig(ctx context.Context, input *entity.CreateGigInput) (*entity.GigOutputModel, error)
	GetGigById(ctx context.Context, gigId string) (*entity.GigOutputModel, error)
	GetOpenGigs(ctx context.Context, titleSearch string, pg *entity.PaginationInput) ([]entity.GigOutputModel, error)
}

type Bid interface {
	CreateBid(ctx context.Context, input *entity.CreateBidInput) (*entity.BidOutputModel, error)
	GetGigBids(ctx context.Context, gigId string, requesterId string, pg *entity.PaginationInput) ([]entity.BidOutputModel, error)
	HireBid(ctx context.Context, bidId string, requesterId string) (*entity.HireOutputModel, error)
}

type Services struct {
	Diagnostics Diagnostics
	Gig         Gig
	Bid         Bid
}

func NewServices(repos *repo.Repositories, notifier notify.Publisher) *Services {
	return &Services{
		Diagnostics: NewDiagnosticsService(repos),
		Gig:         NewGigService(repos),
		Bid:         NewBidService(repos, notifier),
	}
}
