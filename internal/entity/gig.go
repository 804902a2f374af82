package entity

import (
	"github.com/google/uuid"
)

// db model
type Gig struct {
	Id          uuid.UUID `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	Budget      float64   `json:"budget" db:"budget"`
	OwnerId     uuid.UUID `json:"ownerId" db:"owner_id"`
	Status      string    `json:"status" db:"status"`
	CreatedAt   string    `json:"createdAt" db:"created_at"`
	OwnerName   string    `json:"-" db:"owner_name"`
	OwnerEmail  string    `json:"-" db:"owner_email"`
}

// service + repo input model
type CreateGigInput struct {
	Title       string  // given
	Description string  // given
	Budget      float64 // given
	OwnerId     string  // taken from requester identity
	// Status starts as "open"
	// Id and CreatedAt set automatically
}

// controller model
type GigOutputModel struct {
	Id          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Budget      float64 `json:"budget"`
	Status      string  `json:"status"`
	CreatedAt   string  `json:"createdAt"`
	Owner       UserRef `json:"owner"`
}

// HireOutputModel is the caller-facing result of the hiring workflow.
// CleanupIncomplete marks a degraded success: the gig was assigned and
// the winning bid hired, but a follow-up bid write failed and is left
// for out-of-band reconciliation.
type HireOutputModel struct {
	GigId             string `json:"gigId"`
	BidId             string `json:"bidId"`
	Message           string `json:"message"`
	CleanupIncomplete bool   `json:"cleanupIncomplete,omitempty"`
}
