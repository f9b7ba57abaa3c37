package models

import (
	"fmt"
	"time"

	"offer-bidding/internal/money"
)

// Account is the acting user, passed explicitly to every ledger operation
type Account struct {
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
}

// OfferStatus follows the editorial workflow of the listing
type OfferStatus int

const (
	OfferDraft OfferStatus = iota
	OfferPublished
	OfferClosed
)

func (s OfferStatus) String() string {
	switch s {
	case OfferDraft:
		return "draft"
	case OfferPublished:
		return "published"
	case OfferClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// ParseOfferStatus is the inverse of OfferStatus.String
func ParseOfferStatus(s string) (OfferStatus, error) {
	switch s {
	case "draft":
		return OfferDraft, nil
	case "published":
		return OfferPublished, nil
	case "closed":
		return OfferClosed, nil
	default:
		return OfferDraft, fmt.Errorf("unknown offer status %q", s)
	}
}

func (s OfferStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *OfferStatus) UnmarshalText(text []byte) error {
	parsed, err := ParseOfferStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// OfferType is the pricing type chosen by the lister
type OfferType string

const (
	OfferWithMinimum OfferType = "with_minimum"
	OfferNoMinimum   OfferType = "no_minimum"
)

// Offer represents a listing users can bid on
type Offer struct {
	OfferID      string      `json:"offer_id"`
	OwnerID      string      `json:"owner_id"`
	Title        string      `json:"title"`
	Type         OfferType   `json:"offer_type"`
	MinimumPrice money.Money `json:"minimum_price"`
	Status       OfferStatus `json:"status"`
	// BidVersion increments on every write to the offer's bid set.
	BidVersion int64     `json:"-"`
	CreatedAt  time.Time `json:"created_at"`
}

// RequiresMinimum reports whether bids on the offer start at MinimumPrice.
func (o Offer) RequiresMinimum() bool {
	return o.Type == OfferWithMinimum
}

// AcceptsBids reports whether the offer is open for bidding.
func (o Offer) AcceptsBids() bool {
	return o.Status == OfferPublished
}

// Bid is one revision of a user's bid on an offer.
// All revisions of a chain share BidID; RevisionID starts at 1.
type Bid struct {
	BidID          string       `json:"bid_id"`
	OfferID        string       `json:"offer_id"`
	UserID         string       `json:"user_id"`
	Amount         money.Money  `json:"amount"`
	PreviousAmount *money.Money `json:"previous_amount,omitempty"`
	RevisionID     int          `json:"revision_id"`
	CreatedAt      time.Time    `json:"created_at"`
	RevisionLog    string       `json:"revision_log,omitempty"`
}

// StartingPrice is what an offer's bidding starts at.
// NoMinimum distinguishes "bid anything" from "starts at 0.00".
type StartingPrice struct {
	Amount    money.Money `json:"amount"`
	NoMinimum bool        `json:"no_minimum"`
}

func (p StartingPrice) Label() string {
	if p.NoMinimum {
		return "Start bidding at 0$"
	}
	return p.Amount.String() + "$"
}

// BidderRow is one line of an offer's bidding table
type BidderRow struct {
	BidID        string       `json:"bid_id"`
	UserID       string       `json:"user_id"`
	DisplayName  string       `json:"display_name"`
	Amount       money.Money  `json:"amount"`
	RaiseDelta   *money.Money `json:"raise_delta,omitempty"`
	LastActivity time.Time    `json:"last_activity"`
	CanRemove    bool         `json:"can_remove"`
	Winning      bool         `json:"winning"`
}

// BidForm carries what a bidding form needs to render for one user
type BidForm struct {
	OfferID       string        `json:"offer_id"`
	StartingPrice StartingPrice `json:"starting_price"`
	HighestBid    money.Money   `json:"highest_bid"`
	HasBids       bool          `json:"has_bids"`
	Floor         money.Money   `json:"floor"`
	BidCount      int           `json:"bid_count"`
	HasActiveBid  bool          `json:"has_active_bid"`
	CallToAction  string        `json:"call_to_action"`
}

type BidEventType string

const (
	BidPlaced  BidEventType = "bid_placed"
	BidRaised  BidEventType = "bid_raised"
	BidRemoved BidEventType = "bid_removed"
)

// BidEvent is emitted after every committed change to a bid chain
type BidEvent struct {
	Type       BidEventType `json:"type"`
	OfferID    string       `json:"offer_id"`
	BidID      string       `json:"bid_id"`
	UserID     string       `json:"user_id"`
	Amount     money.Money  `json:"amount"`
	RevisionID int          `json:"revision_id"`
	Timestamp  time.Time    `json:"timestamp"`
}
