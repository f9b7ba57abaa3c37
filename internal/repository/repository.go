package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"offer-bidding/internal/biddingerrors"
	model "offer-bidding/internal/models"
)

//go:generate mockgen -destination=mock_repository.go -package=repository offer-bidding/internal/repository BidStore

// BidStore is the persistence contract of the bid ledger.
// Every method is individually atomic. Writes carry the offer's BidVersion
// observed at read time and fail with ErrConcurrentModification when it moved.
type BidStore interface {
	GetOffer(ctx context.Context, offerID string) (model.Offer, error)
	GetOffersByOwner(ctx context.Context, ownerID string) ([]model.Offer, error)
	GetOffersByBidder(ctx context.Context, userID string) ([]model.Offer, error)
	// GetBidsByOffer returns the latest revision of every chain on the offer.
	GetBidsByOffer(ctx context.Context, offerID string) ([]model.Bid, error)
	GetActiveBid(ctx context.Context, offerID, userID string) (model.Bid, error)
	GetBid(ctx context.Context, bidID string) (model.Bid, error)
	// GetRevisions returns a chain ordered by RevisionID ascending.
	GetRevisions(ctx context.Context, bidID string) ([]model.Bid, error)
	SaveRevision(ctx context.Context, bid model.Bid, expectedVersion int64) error
	DeleteBid(ctx context.Context, bidID string, expectedVersion int64) error
	GetAccount(ctx context.Context, userID string) (model.Account, error)
}

type slotKey struct {
	offerID string
	userID  string
}

// MemoryRepo is a concurrency-safe in-memory implementation of BidStore
type MemoryRepo struct {
	mu         sync.RWMutex
	offers     map[string]model.Offer   // key: offerID -> value: offer
	accounts   map[string]model.Account // key: userID -> value: account
	revisions  map[string][]model.Bid   // key: bidID -> value: append-only revision chain
	active     map[slotKey]string       // key: (offerID, userID) -> value: bidID
	offerBids  map[string][]string      // key: offerID -> value: bidIDs in placement order
	userOffers map[string][]string      // key: userID -> value: offerIDs the user has bid on
}

// NewMemoryRepo creates a new in-memory repository instance
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		offers:     make(map[string]model.Offer),
		accounts:   make(map[string]model.Account),
		revisions:  make(map[string][]model.Bid),
		active:     make(map[slotKey]string),
		offerBids:  make(map[string][]string),
		userOffers: make(map[string][]string),
	}
}

// GetOffer returns an offer with its current BidVersion
func (r *MemoryRepo) GetOffer(_ context.Context, offerID string) (model.Offer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	offer, ok := r.offers[offerID]
	if !ok {
		return model.Offer{}, fmt.Errorf("get offer %s: %w", offerID, biddingerrors.ErrOfferNotFound)
	}
	return offer, nil
}

// GetOffersByOwner returns all offers listed by ownerID, oldest first
func (r *MemoryRepo) GetOffersByOwner(_ context.Context, ownerID string) ([]model.Offer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	offers := make([]model.Offer, 0)
	for _, o := range r.offers {
		if o.OwnerID == ownerID {
			offers = append(offers, o)
		}
	}
	sort.Slice(offers, func(i, j int) bool {
		if offers[i].CreatedAt.Equal(offers[j].CreatedAt) {
			return offers[i].OfferID < offers[j].OfferID
		}
		return offers[i].CreatedAt.Before(offers[j].CreatedAt)
	})
	return offers, nil
}

// GetOffersByBidder returns all offers a user holds an active bid on
func (r *MemoryRepo) GetOffersByBidder(_ context.Context, userID string) ([]model.Offer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	offerIDs, ok := r.userOffers[userID]
	if !ok || len(offerIDs) == 0 {
		return nil, fmt.Errorf("get offers for user %s: %w", userID, biddingerrors.ErrUserNoBids)
	}

	offers := make([]model.Offer, 0, len(offerIDs))
	for _, id := range offerIDs {
		if offer, exists := r.offers[id]; exists {
			offers = append(offers, offer)
		}
	}
	return offers, nil
}

// GetBidsByOffer returns the latest revision of every bid chain on an offer
func (r *MemoryRepo) GetBidsByOffer(_ context.Context, offerID string) ([]model.Bid, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, ok := r.offers[offerID]; !ok {
		return nil, fmt.Errorf("get bids for offer %s: %w", offerID, biddingerrors.ErrOfferNotFound)
	}

	ids := r.offerBids[offerID]
	bids := make([]model.Bid, 0, len(ids))
	for _, id := range ids {
		chain := r.revisions[id]
		bids = append(bids, chain[len(chain)-1])
	}
	return bids, nil
}

// GetActiveBid returns the latest revision of a user's bid on an offer
func (r *MemoryRepo) GetActiveBid(_ context.Context, offerID, userID string) (model.Bid, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bidID, ok := r.active[slotKey{offerID: offerID, userID: userID}]
	if !ok {
		return model.Bid{}, fmt.Errorf("get bid of user %s on offer %s: %w", userID, offerID, biddingerrors.ErrBidNotFound)
	}
	chain := r.revisions[bidID]
	return chain[len(chain)-1], nil
}

// GetBid returns the latest revision of a bid chain
func (r *MemoryRepo) GetBid(_ context.Context, bidID string) (model.Bid, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	chain, ok := r.revisions[bidID]
	if !ok || len(chain) == 0 {
		return model.Bid{}, fmt.Errorf("get bid %s: %w", bidID, biddingerrors.ErrBidNotFound)
	}
	return chain[len(chain)-1], nil
}

// GetRevisions returns a copy of the revision chain, oldest first
func (r *MemoryRepo) GetRevisions(_ context.Context, bidID string) ([]model.Bid, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	chain, ok := r.revisions[bidID]
	if !ok || len(chain) == 0 {
		return nil, fmt.Errorf("get revisions of bid %s: %w", bidID, biddingerrors.ErrBidNotFound)
	}
	return append([]model.Bid(nil), chain...), nil
}

// SaveRevision creates a chain (RevisionID 1) or appends to it
func (r *MemoryRepo) SaveRevision(_ context.Context, bid model.Bid, expectedVersion int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	offer, ok := r.offers[bid.OfferID]
	if !ok {
		return fmt.Errorf("save bid for offer %s: %w", bid.OfferID, biddingerrors.ErrOfferNotFound)
	}
	if offer.BidVersion != expectedVersion {
		return fmt.Errorf("save bid for offer %s: version %d, expected %d: %w",
			bid.OfferID, offer.BidVersion, expectedVersion, biddingerrors.ErrConcurrentModification)
	}

	key := slotKey{offerID: bid.OfferID, userID: bid.UserID}
	activeID, hasActive := r.active[key]

	if bid.RevisionID == 1 {
		if hasActive {
			return fmt.Errorf("save bid for offer %s: user %s already holds bid %s: %w",
				bid.OfferID, bid.UserID, activeID, biddingerrors.ErrConcurrentModification)
		}
		if _, exists := r.revisions[bid.BidID]; exists {
			return fmt.Errorf("save bid %s: chain already exists: %w", bid.BidID, biddingerrors.ErrConcurrentModification)
		}
		r.revisions[bid.BidID] = []model.Bid{bid}
		r.active[key] = bid.BidID
		r.offerBids[bid.OfferID] = append(r.offerBids[bid.OfferID], bid.BidID)
		r.addUserOffer(bid.UserID, bid.OfferID)
	} else {
		if !hasActive || activeID != bid.BidID {
			return fmt.Errorf("save bid %s: not the active bid of user %s: %w",
				bid.BidID, bid.UserID, biddingerrors.ErrConcurrentModification)
		}
		chain := r.revisions[bid.BidID]
		if last := chain[len(chain)-1].RevisionID; last != bid.RevisionID-1 {
			return fmt.Errorf("save bid %s: revision %d does not follow %d: %w",
				bid.BidID, bid.RevisionID, last, biddingerrors.ErrConcurrentModification)
		}
		r.revisions[bid.BidID] = append(chain, bid)
	}

	offer.BidVersion++
	r.offers[offer.OfferID] = offer
	return nil
}

// DeleteBid removes an entire revision chain
func (r *MemoryRepo) DeleteBid(_ context.Context, bidID string, expectedVersion int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	chain, ok := r.revisions[bidID]
	if !ok || len(chain) == 0 {
		return fmt.Errorf("delete bid %s: %w", bidID, biddingerrors.ErrBidNotFound)
	}
	first := chain[0]

	offer, ok := r.offers[first.OfferID]
	if !ok {
		return fmt.Errorf("delete bid %s: %w", bidID, biddingerrors.ErrOfferNotFound)
	}
	if offer.BidVersion != expectedVersion {
		return fmt.Errorf("delete bid %s: version %d, expected %d: %w",
			bidID, offer.BidVersion, expectedVersion, biddingerrors.ErrConcurrentModification)
	}

	delete(r.revisions, bidID)
	delete(r.active, slotKey{offerID: first.OfferID, userID: first.UserID})
	r.offerBids[first.OfferID] = removeID(r.offerBids[first.OfferID], bidID)
	r.userOffers[first.UserID] = removeID(r.userOffers[first.UserID], first.OfferID)

	offer.BidVersion++
	r.offers[offer.OfferID] = offer
	return nil
}

// GetAccount returns the account for userID. Unknown users come back with an empty display name.
func (r *MemoryRepo) GetAccount(_ context.Context, userID string) (model.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if acc, ok := r.accounts[userID]; ok {
		return acc, nil
	}
	return model.Account{UserID: userID}, nil
}

// AddOffer adds or replaces an offer. Offers are owned by the listing system; this is for seeding and tests.
func (r *MemoryRepo) AddOffer(offer model.Offer) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.offers[offer.OfferID]; ok && offer.BidVersion < existing.BidVersion {
		offer.BidVersion = existing.BidVersion
	}
	r.offers[offer.OfferID] = offer
}

// AddAccount registers a display name for a user
func (r *MemoryRepo) AddAccount(acc model.Account) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.accounts[acc.UserID] = acc
}

// SetOfferStatus moves an offer through its editorial workflow
func (r *MemoryRepo) SetOfferStatus(offerID string, status model.OfferStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	offer, ok := r.offers[offerID]
	if !ok {
		return fmt.Errorf("set status of offer %s: %w", offerID, biddingerrors.ErrOfferNotFound)
	}
	offer.Status = status
	r.offers[offerID] = offer
	return nil
}

func (r *MemoryRepo) addUserOffer(userID, offerID string) {
	for _, id := range r.userOffers[userID] {
		if id == offerID {
			return
		}
	}
	r.userOffers[userID] = append(r.userOffers[userID], offerID)
}

func removeID(ids []string, target string) []string {
	out := ids[:0]
	for _, id := range ids {
		if id != target {
			out = append(out, id)
		}
	}
	return out
}
