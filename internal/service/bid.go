package service

import (
	"context"
	"errors"
	"fmt"
	"gig-marketplace-api/internal/common"
	"gig-marketplace-api/internal/entity"
	"gig-marketplace-api/internal/notify"
	"gig-marketplace-api/internal/repo"
	"gig-marketplace-api/internal/repo/repo_errors"
	"log/slog"
)

type BidService struct {
	bidRepo  repo.Bid
	gigRepo  repo.Gig
	notifier notify.Publisher
}

func NewBidService(repos *repo.Repositories, notifier notify.Publisher) *BidService {
	return &BidService{
		bidRepo:  repos.Bid,
		gigRepo:  repos.Gig,
		notifier: notifier,
	}
}

func (s *BidService) CreateBid(ctx context.Context, input *entity.CreateBidInput) (*entity.BidOutputModel, error) {
	gig, err := s.gigRepo.GetGigById(ctx, input.GigId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrGigNotFound
		}

		return nil, err
	}

	if gig.Status != common.GigOpen {
		return nil, ErrGigNotOpen
	}

	if gig.OwnerId.String() == input.FreelancerId {
		return nil, ErrOwnGigBid
	}

	alreadyBid, err := s.bidRepo.HasBidFromFreelancer(ctx, input.GigId, input.FreelancerId)
	if err != nil {
		return nil, err
	}
	if alreadyBid {
		return nil, ErrDuplicateBid
	}

	id, err := s.bidRepo.CreateBid(ctx, input)
	if err != nil {
		// the unique (gig_id, freelancer_id) constraint backstops the
		// check above under concurrent submissions
		if errors.Is(err, repo_errors.ErrAlreadyExists) {
			return nil, ErrDuplicateBid
		}

		return nil, err
	}

	bid, err := s.bidRepo.GetBidById(ctx, id.String())
	if err != nil {
		return nil, err
	}

	return mapBid(bid), nil
}

func (s *BidService) GetGigBids(ctx context.Context, gigId string, requesterId string, pg *entity.PaginationInput) ([]entity.BidOutputModel, error) {
	gig, err := s.gigRepo.GetGigById(ctx, gigId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrGigNotFound
		}

		return nil, err
	}

	if gig.OwnerId.String() != requesterId {
		return nil, ErrNotGigOwner
	}

	bids, err := s.bidRepo.GetGigBids(ctx, gigId, pg)
	if err != nil {
		return nil, err
	}

	return mapBids(bids), nil
}

// HireBid selects one bid as the winner of its gig. The open -> assigned
// transition is guarded solely by the store's conditional update; the
// status check before it only fails fast. After the gig flips, the
// winning bid is marked hired and every other pending bid for the gig is
// swept to rejected. A failed sweep after the flip is a degraded
// success, not a failure: the result carries CleanupIncomplete and the
// condition is logged for out-of-band reconciliation.
func (s *BidService) HireBid(ctx context.Context, bidId string, requesterId string) (*entity.HireOutputModel, error) {
	bid, err := s.bidRepo.GetBidById(ctx, bidId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrBidNotFound
		}

		return nil, err
	}

	gig, err := s.gigRepo.GetGigById(ctx, bid.GigId.String())
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrGigNotFound
		}

		return nil, err
	}

	if gig.OwnerId.String() != requesterId {
		return nil, ErrNotGigOwner
	}

	if gig.Status != common.GigOpen {
		return nil, ErrGigAlreadyAssigned
	}

	assigned, err := s.gigRepo.AssignGigIfOpen(ctx, gig.Id.String())
	if err != nil {
		return nil, err
	}
	if !assigned {
		return nil, ErrHireRaceLost
	}

	result := &entity.HireOutputModel{
		GigId:   gig.Id.String(),
		BidId:   bid.Id.String(),
		Message: "Freelancer hired successfully",
	}

	// both writes are attempted even if the first fails; the gig flip is
	// already committed and is never rolled back
	if err := s.bidRepo.UpdateBidStatusById(ctx, bidId, common.BidHired); err != nil {
		slog.Error("hire: marking winning bid hired failed after gig assignment",
			"gigId", result.GigId, "bidId", result.BidId, "error", err)
		result.CleanupIncomplete = true
	}

	if _, err := s.bidRepo.RejectOtherPendingBids(ctx, result.GigId, bidId); err != nil {
		slog.Error("hire: rejecting competing bids failed after gig assignment",
			"gigId", result.GigId, "bidId", result.BidId, "error", err)
		result.CleanupIncomplete = true
	}

	if result.CleanupIncomplete {
		result.Message = "Freelancer hired, bid bookkeeping incomplete"
	}

	s.notifyHired(ctx, gig, bid)

	return result, nil
}

// notifyHired publishes the hired event to the winning freelancer.
// Failures are logged and swallowed: the state transition has already
// committed, so a lost notification must never fail the hire.
func (s *BidService) notifyHired(ctx context.Context, gig *entity.Gig, bid *entity.Bid) {
	payload := entity.HiredNotification{
		GigId:    gig.Id.String(),
		GigTitle: gig.Title,
		BidId:    bid.Id.String(),
		Message:  fmt.Sprintf("You have been hired for %q!", gig.Title),
	}

	if err := s.notifier.Publish(ctx, bid.FreelancerId.String(), common.HiredEvent, payload); err != nil {
		slog.Warn("hire: publishing hired notification failed",
			"freelancerId", bid.FreelancerId.String(), "gigId", payload.GigId, "error", err)
	}
}
