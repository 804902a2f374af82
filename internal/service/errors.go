package service

import "errors"

var (
	ErrGigNotFound = errors.New("gig not found")
	ErrBidNotFound = errors.New("bid not found")

	ErrNotGigOwner = errors.New("user is not the owner of the gig")

	ErrGigNotOpen         = errors.New("gig is no longer accepting bids")
	ErrGigAlreadyAssigned = errors.New("gig has already been assigned")
	// ErrHireRaceLost means the conditional status update affected no rows:
	// a concurrent hire flipped the gig first. Expected under concurrent
	// load, not a bug.
	ErrHireRaceLost = errors.New("another hire request assigned the gig first")

	ErrOwnGigBid    = errors.New("gig owner can't bid on their own gig")
	ErrDuplicateBid = errors.New("freelancer already submitted a bid for this gig")
)
