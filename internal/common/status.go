package common

// Gig statuses. A gig opens for bidding and is assigned at most once;
// the transition never reverses.
const (
	GigOpen     = "open"
	GigAssigned = "assigned"
)

// Bid statuses. Both terminal states are final.
const (
	BidPending  = "pending"
	BidHired    = "hired"
	BidRejected = "rejected"
)

// HiredEvent is the event name published to the winning freelancer's
// notification channel.
const HiredEvent = "hired"
