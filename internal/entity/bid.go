package entity

import (
	"github.com/google/uuid"
)

// db model
type Bid struct {
	Id              uuid.UUID `json:"id" db:"id"`
	GigId           uuid.UUID `json:"gigId" db:"gig_id"`
	FreelancerId    uuid.UUID `json:"freelancerId" db:"freelancer_id"`
	Message         string    `json:"message" db:"message"`
	Price           float64   `json:"price" db:"price"`
	Status          string    `json:"status" db:"status"`
	CreatedAt       string    `json:"createdAt" db:"created_at"`
	FreelancerName  string    `json:"-" db:"freelancer_name"`
	FreelancerEmail string    `json:"-" db:"freelancer_email"`
}

// service + repo input model
type CreateBidInput struct {
	GigId        string  // given
	FreelancerId string  // taken from requester identity
	Message      string  // given
	Price        float64 // given
	// Status starts as "pending"
	// Id and CreatedAt set automatically
}

// controller model
type BidOutputModel struct {
	Id         string  `json:"id"`
	GigId      string  `json:"gigId"`
	Message    string  `json:"message"`
	Price      float64 `json:"price"`
	Status     string  `json:"status"`
	CreatedAt  string  `json:"createdAt"`
	Freelancer UserRef `json:"freelancer"`
}

// HiredNotification is the payload published to the winning freelancer
// when a gig owner accepts their bid.
type HiredNotification struct {
	GigId    string `json:"gigId"`
	GigTitle string `json:"gigTitle"`
	BidId    string `json:"bidId"`
	Message  string `json:"message"`
}
