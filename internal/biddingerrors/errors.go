package biddingerrors

import "errors"

// Repository-level errors
var (
	ErrOfferNotFound          = errors.New("offer not found")
	ErrBidNotFound            = errors.New("bid not found")
	ErrNoBids                 = errors.New("no bids found for offer")
	ErrUserNoBids             = errors.New("user has not placed any bids")
	ErrConcurrentModification = errors.New("offer bids changed concurrently")
)

// business logic errors
var (
	ErrInvalidBid            = errors.New("invalid bid")
	ErrInvalidAmount         = errors.New("invalid bid amount")
	ErrOfferNotAcceptingBids = errors.New("offer is not accepting bids")
	ErrBidTooLow             = errors.New("bid amount too low")
	ErrForbidden             = errors.New("operation not allowed for this account")
	ErrMissingAccount        = errors.New("acting account required")
)
