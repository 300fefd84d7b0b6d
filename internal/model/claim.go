package model

import "time"

// Claim is a user's assertion of ownership over a reported item.
type Claim struct {
	ID         int64     `json:"id"`
	ItemID     int64     `json:"item_id"`
	ClaimantID int64     `json:"claimant_id"`
	Message    string    `json:"message,omitempty"`
	Status     string    `json:"status"`
	ClaimDate  time.Time `json:"claim_date"`

	// Joined for display.
	ItemTitle    string `json:"item_title,omitempty"`
	ClaimantName string `json:"claimant_name,omitempty"`
}

// Claim statuses.
const (
	ClaimStatusPending  = "pending"
	ClaimStatusApproved = "approved"
	ClaimStatusRejected = "rejected"
)

// Message is one chat turn on a claim thread.
type Message struct {
	ID       int64     `json:"id"`
	ClaimID  int64     `json:"claim_id"`
	SenderID int64     `json:"sender_id"`
	Body     string    `json:"body"`
	SentAt   time.Time `json:"sent_at"`

	SenderName string `json:"sender_name,omitempty"`
}
