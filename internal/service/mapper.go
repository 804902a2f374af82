package service

import (
	"gig-marketplace-api/internal/entity"
)

func mapGig(g *entity.Gig) *entity.GigOutputModel {
	return &entity.GigOutputModel{
		Id:          g.Id.String(),
		Title:       g.Title,
		Description: g.Description,
		Budget:      g.Budget,
		Status:      g.Status,
		CreatedAt:   g.CreatedAt,
		Owner: entity.UserRef{
			Id:    g.OwnerId.String(),
			Name:  g.OwnerName,
			Email: g.OwnerEmail,
		},
	}
}

func mapGigs(gigs []entity.Gig) []entity.GigOutputModel {
	s := make([]entity.GigOutputModel, 0)
	for _, gig := range gigs {
		s = append(s, *mapGig(&gig))
	}

	return s
}

func mapBid(b *entity.Bid) *entity.BidOutputModel {
	return &entity.BidOutputModel{
		Id:        b.Id.String(),
		GigId:     b.GigId.String(),
		Message:   b.Message,
		Price:     b.Price,
		Status:    b.Status,
		CreatedAt: b.CreatedAt,
		Freelancer: entity.UserRef{
			Id:    b.FreelancerId.String(),
			Name:  b.FreelancerName,
			Email: b.FreelancerEmail,
		},
	}
}

func mapBids(bids []entity.Bid) []entity.BidOutputModel {
	s := make([]entity.BidOutputModel, 0)
	for _, bid := range bids {
		s = append(s, *mapBid(&bid))
	}

	return s
}
