// Package access holds the ownership predicates an authorization layer
// consults for bids. Every predicate is pure, so results may be cached
// per (bid, account) and dropped when the bid changes.
package access

import "offer-bidding/internal/models"

// Capability is an operation an account may attempt on a bid
type Capability int

const (
	View Capability = iota
	Edit
	Delete
)

func (c Capability) String() string {
	switch c {
	case View:
		return "view"
	case Edit:
		return "edit"
	case Delete:
		return "delete"
	default:
		return "unknown"
	}
}

// Predicate decides a single capability
type Predicate func(bid models.Bid, account models.Account) bool

var predicates = map[Capability]Predicate{
	View:   CanView,
	Edit:   CanEdit,
	Delete: CanDelete,
}

// CanView is true for everyone, anonymous accounts included
func CanView(_ models.Bid, _ models.Account) bool {
	return true
}

// CanEdit is true only for the bid's owner
func CanEdit(bid models.Bid, account models.Account) bool {
	return isOwner(bid, account)
}

// CanDelete is true only for the bid's owner
func CanDelete(bid models.Bid, account models.Account) bool {
	return isOwner(bid, account)
}

// Allowed dispatches to the predicate of c. Unknown capabilities are denied.
func Allowed(c Capability, bid models.Bid, account models.Account) bool {
	p, ok := predicates[c]
	if !ok {
		return false
	}
	return p(bid, account)
}

func isOwner(bid models.Bid, account models.Account) bool {
	return account.UserID != "" && account.UserID == bid.UserID
}
