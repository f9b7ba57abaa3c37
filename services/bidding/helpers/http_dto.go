package helpers

import (
	"encoding/json"
	"fmt"
	"time"

	"offer-bidding/internal/models"
	"offer-bidding/internal/money"
)

// Request/Response DTOs

// PlaceBidRequest takes the amount as a JSON number or a numeric string
type PlaceBidRequest struct {
	Amount json.RawMessage `json:"amount" binding:"required"`
}

type BidResponse struct {
	BidID          string       `json:"bid_id"`
	OfferID        string       `json:"offer_id"`
	UserID         string       `json:"user_id"`
	Amount         money.Money  `json:"amount"`
	PreviousAmount *money.Money `json:"previous_amount,omitempty"`
	RaiseDelta     *money.Money `json:"raise_delta,omitempty"`
	RevisionID     int          `json:"revision_id"`
	RevisionLog    string       `json:"revision_log,omitempty"`
	CreatedAt      string       `json:"created_at"`
}

type HighestBidResponse struct {
	OfferID string      `json:"offer_id"`
	Amount  money.Money `json:"amount"`
	HasBids bool        `json:"has_bids"`
}

type BidFormResponse struct {
	models.BidForm
	StartingPriceLabel string `json:"starting_price_label"`
}

type OfferCountResponse struct {
	UserID string `json:"user_id"`
	Count  int    `json:"count"`
	Label  string `json:"label"`
}

// NewBidResponse converts a bid revision, computing its raise delta
func NewBidResponse(bid models.Bid, delta *money.Money) BidResponse {
	return BidResponse{
		BidID:          bid.BidID,
		OfferID:        bid.OfferID,
		UserID:         bid.UserID,
		Amount:         bid.Amount,
		PreviousAmount: bid.PreviousAmount,
		RaiseDelta:     delta,
		RevisionID:     bid.RevisionID,
		RevisionLog:    bid.RevisionLog,
		CreatedAt:      bid.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func NewBidFormResponse(form models.BidForm) BidFormResponse {
	return BidFormResponse{BidForm: form, StartingPriceLabel: form.StartingPrice.Label()}
}

func NewOfferCountResponse(userID string, count int) OfferCountResponse {
	return OfferCountResponse{UserID: userID, Count: count, Label: fmt.Sprintf("My offers (%d)", count)}
}
