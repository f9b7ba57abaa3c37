package ledger

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"offer-bidding/internal/access"
	"offer-bidding/internal/biddingerrors"
	"offer-bidding/internal/events"
	"offer-bidding/internal/models"
	"offer-bidding/internal/money"
	"offer-bidding/internal/repository"
	"offer-bidding/utils"
)

const (
	DefaultMaxAttempts = 3

	CallToActionSubmit = "Submit"
	CallToActionRaise  = "Raise my bid"
)

// Ledger enforces the bidding rules over a BidStore
type Ledger struct {
	store       repository.BidStore
	publisher   events.Publisher
	now         func() time.Time
	newID       func() string
	maxAttempts int
}

type Option func(*Ledger)

// WithClock replaces time.Now, for deterministic timestamps in tests
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

func WithIDGenerator(newID func() string) Option {
	return func(l *Ledger) { l.newID = newID }
}

func WithPublisher(p events.Publisher) Option {
	return func(l *Ledger) { l.publisher = p }
}

// WithMaxAttempts bounds how often a write is retried after a concurrent modification
func WithMaxAttempts(n int) Option {
	return func(l *Ledger) {
		if n > 0 {
			l.maxAttempts = n
		}
	}
}

// NewLedger creates a new Ledger instance
func NewLedger(store repository.BidStore, opts ...Option) *Ledger {
	l := &Ledger{
		store:       store,
		publisher:   events.NopPublisher{},
		now:         func() time.Time { return time.Now().UTC() },
		newID:       utils.GenerateID,
		maxAttempts: DefaultMaxAttempts,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// ParseAmount validates raw user input as a bid amount
func ParseAmount(raw string) (money.Money, error) {
	amount, err := money.Parse(raw)
	if err != nil {
		return money.Money{}, fmt.Errorf("ledger: %w - %v", biddingerrors.ErrInvalidAmount, err)
	}
	return amount, nil
}

// PlaceOrRaiseBid creates the user's bid on an offer or appends a revision to it.
// The read-validate-write sequence is retried when another write to the offer's bids wins the race.
func (l *Ledger) PlaceOrRaiseBid(ctx context.Context, offerID, userID string, amount money.Money) (models.Bid, error) {
	if offerID == "" || userID == "" {
		return models.Bid{}, fmt.Errorf("ledger: %w - missing offerID or userID", biddingerrors.ErrInvalidBid)
	}

	for attempt := 1; attempt <= l.maxAttempts; attempt++ {
		bid, err := l.tryPlaceOrRaise(ctx, offerID, userID, amount)
		if err == nil {
			eventType := models.BidPlaced
			if bid.RevisionID > 1 {
				eventType = models.BidRaised
			}
			l.publish(ctx, eventFor(eventType, bid))
			return bid, nil
		}
		if !errors.Is(err, biddingerrors.ErrConcurrentModification) {
			return models.Bid{}, err
		}
		utils.Warn("ledger: concurrent bid write, retrying", map[string]any{
			"offer_id": offerID,
			"user_id":  userID,
			"attempt":  attempt,
		})
		if err := ctx.Err(); err != nil {
			return models.Bid{}, fmt.Errorf("ledger: place bid on offer %s: %w", offerID, err)
		}
	}

	return models.Bid{}, fmt.Errorf("ledger: place bid on offer %s gave up after %d attempts: %w",
		offerID, l.maxAttempts, biddingerrors.ErrConcurrentModification)
}

func (l *Ledger) tryPlaceOrRaise(ctx context.Context, offerID, userID string, amount money.Money) (models.Bid, error) {
	// the offer, and with it the version, must be read before its bids
	offer, err := l.store.GetOffer(ctx, offerID)
	if err != nil {
		return models.Bid{}, fmt.Errorf("ledger: failed to load offer %s: %w", offerID, err)
	}
	if !offer.AcceptsBids() {
		return models.Bid{}, fmt.Errorf("ledger: %w - offer %s is %s", biddingerrors.ErrOfferNotAcceptingBids, offerID, offer.Status)
	}

	bids, err := l.store.GetBidsByOffer(ctx, offerID)
	if err != nil {
		return models.Bid{}, fmt.Errorf("ledger: failed to load bids for offer %s: %w", offerID, err)
	}

	floor := floorFor(offer, bids)
	if amount.LessThan(floor) {
		return models.Bid{}, fmt.Errorf("ledger: %w - %s is below the floor of %s", biddingerrors.ErrBidTooLow, amount, floor)
	}

	next := models.Bid{
		BidID:      l.newID(),
		OfferID:    offerID,
		UserID:     userID,
		Amount:     amount,
		RevisionID: 1,
		CreatedAt:  l.now(),
	}
	if current, ok := findByUser(bids, userID); ok {
		prev := current.Amount
		next.BidID = current.BidID
		next.PreviousAmount = &prev
		next.RevisionID = current.RevisionID + 1
		next.RevisionLog = "Bid raised for offer " + offerID
	}

	if err := l.store.SaveRevision(ctx, next, offer.BidVersion); err != nil {
		return models.Bid{}, fmt.Errorf("ledger: failed to save bid for offer %s by user %s: %w", offerID, userID, err)
	}
	return next, nil
}

// CurrentHighestBid returns the top amount on an offer. ok is false when the offer has no bids.
func (l *Ledger) CurrentHighestBid(ctx context.Context, offerID string) (money.Money, bool, error) {
	bids, err := l.bidsFor(ctx, offerID)
	if err != nil {
		return money.Money{}, false, err
	}
	top, ok := SelectHighest(bids)
	if !ok {
		return money.Zero(), false, nil
	}
	return top.Amount, true, nil
}

// WinningBid returns the bid holding the highest amount
func (l *Ledger) WinningBid(ctx context.Context, offerID string) (models.Bid, error) {
	bids, err := l.bidsFor(ctx, offerID)
	if err != nil {
		return models.Bid{}, err
	}
	top, ok := SelectHighest(bids)
	if !ok {
		return models.Bid{}, fmt.Errorf("ledger: offer %s: %w", offerID, biddingerrors.ErrNoBids)
	}
	return top, nil
}

// SelectHighest picks the highest amount. Equal amounts go to the earliest bid, then the lowest id.
func SelectHighest(bids []models.Bid) (models.Bid, bool) {
	if len(bids) == 0 {
		return models.Bid{}, false
	}
	top := bids[0]
	for _, b := range bids[1:] {
		switch c := b.Amount.Cmp(top.Amount); {
		case c > 0:
			top = b
		case c == 0 && b.CreatedAt.Before(top.CreatedAt):
			top = b
		case c == 0 && b.CreatedAt.Equal(top.CreatedAt) && b.BidID < top.BidID:
			top = b
		}
	}
	return top, true
}

// RaiseDelta is amount minus previous amount; ok is false for a first-time bid
func RaiseDelta(bid models.Bid) (money.Money, bool) {
	if bid.PreviousAmount == nil {
		return money.Money{}, false
	}
	delta, err := bid.Amount.Sub(*bid.PreviousAmount)
	if err != nil {
		return money.Money{}, false
	}
	return delta, true
}

// History returns the revisions of a bid newest first, or nothing if it was never raised
func (l *Ledger) History(ctx context.Context, bidID string) ([]models.Bid, error) {
	revisions, err := l.Revisions(ctx, bidID)
	if err != nil {
		return nil, err
	}
	if len(revisions) < 2 {
		return []models.Bid{}, nil
	}

	history := make([]models.Bid, len(revisions))
	for i, r := range revisions {
		history[len(revisions)-1-i] = r
	}
	return history, nil
}

// Revisions returns the full append-only log of a bid, oldest first
func (l *Ledger) Revisions(ctx context.Context, bidID string) ([]models.Bid, error) {
	if bidID == "" {
		return nil, fmt.Errorf("ledger: %w - empty bid ID", biddingerrors.ErrInvalidBid)
	}
	revisions, err := l.store.GetRevisions(ctx, bidID)
	if err != nil {
		return nil, fmt.Errorf("ledger: failed to get revisions of bid %s: %w", bidID, err)
	}
	return revisions, nil
}

func (l *Ledger) HasActiveBid(ctx context.Context, offerID, userID string) (bool, error) {
	if offerID == "" || userID == "" {
		return false, fmt.Errorf("ledger: %w - missing offerID or userID", biddingerrors.ErrInvalidBid)
	}
	if _, err := l.store.GetOffer(ctx, offerID); err != nil {
		return false, fmt.Errorf("ledger: failed to load offer %s: %w", offerID, err)
	}

	_, err := l.store.GetActiveBid(ctx, offerID, userID)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, biddingerrors.ErrBidNotFound):
		return false, nil
	default:
		return false, fmt.Errorf("ledger: failed to look up bid of user %s on offer %s: %w", userID, offerID, err)
	}
}

// BiddersTable lists an offer's bids as seen by viewer, most recent activity first
func (l *Ledger) BiddersTable(ctx context.Context, offerID string, viewer models.Account) ([]models.BidderRow, error) {
	bids, err := l.bidsFor(ctx, offerID)
	if err != nil {
		return nil, err
	}
	top, hasTop := SelectHighest(bids)

	sorted := append([]models.Bid(nil), bids...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].CreatedAt.Equal(sorted[j].CreatedAt) {
			return sorted[i].BidID < sorted[j].BidID
		}
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})

	rows := make([]models.BidderRow, 0, len(sorted))
	for _, b := range sorted {
		acc, err := l.store.GetAccount(ctx, b.UserID)
		if err != nil {
			return nil, fmt.Errorf("ledger: failed to load account %s: %w", b.UserID, err)
		}
		name := acc.DisplayName
		if name == "" {
			name = b.UserID
		}

		row := models.BidderRow{
			BidID:        b.BidID,
			UserID:       b.UserID,
			DisplayName:  name,
			Amount:       b.Amount,
			LastActivity: b.CreatedAt,
			CanRemove:    access.CanDelete(b, viewer),
			Winning:      hasTop && b.BidID == top.BidID,
		}
		if delta, ok := RaiseDelta(b); ok {
			row.RaiseDelta = &delta
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// RemoveBid deletes a bid with its whole revision chain. Only the bid's owner may do this.
func (l *Ledger) RemoveBid(ctx context.Context, bidID string, actor models.Account) error {
	if bidID == "" {
		return fmt.Errorf("ledger: %w - empty bid ID", biddingerrors.ErrInvalidBid)
	}

	for attempt := 1; attempt <= l.maxAttempts; attempt++ {
		bid, err := l.tryRemove(ctx, bidID, actor)
		if err == nil {
			event := eventFor(models.BidRemoved, bid)
			event.Timestamp = l.now()
			l.publish(ctx, event)
			return nil
		}
		if !errors.Is(err, biddingerrors.ErrConcurrentModification) {
			return err
		}
		utils.Warn("ledger: concurrent bid removal, retrying", map[string]any{
			"bid_id":  bidID,
			"attempt": attempt,
		})
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("ledger: remove bid %s: %w", bidID, err)
		}
	}

	return fmt.Errorf("ledger: remove bid %s gave up after %d attempts: %w",
		bidID, l.maxAttempts, biddingerrors.ErrConcurrentModification)
}

func (l *Ledger) tryRemove(ctx context.Context, bidID string, actor models.Account) (models.Bid, error) {
	bid, err := l.store.GetBid(ctx, bidID)
	if err != nil {
		return models.Bid{}, fmt.Errorf("ledger: failed to load bid %s: %w", bidID, err)
	}
	if !access.CanDelete(bid, actor) {
		return models.Bid{}, fmt.Errorf("ledger: %w - user %q cannot remove bid %s", biddingerrors.ErrForbidden, actor.UserID, bidID)
	}

	offer, err := l.store.GetOffer(ctx, bid.OfferID)
	if err != nil {
		return models.Bid{}, fmt.Errorf("ledger: failed to load offer %s: %w", bid.OfferID, err)
	}
	if err := l.store.DeleteBid(ctx, bidID, offer.BidVersion); err != nil {
		return models.Bid{}, fmt.Errorf("ledger: failed to remove bid %s: %w", bidID, err)
	}
	return bid, nil
}

// BidForm returns what a bidding form shows to userID on an offer
func (l *Ledger) BidForm(ctx context.Context, offerID, userID string) (models.BidForm, error) {
	if offerID == "" {
		return models.BidForm{}, fmt.Errorf("ledger: %w - empty offer ID", biddingerrors.ErrInvalidBid)
	}
	offer, err := l.store.GetOffer(ctx, offerID)
	if err != nil {
		return models.BidForm{}, fmt.Errorf("ledger: failed to load offer %s: %w", offerID, err)
	}
	bids, err := l.store.GetBidsByOffer(ctx, offerID)
	if err != nil {
		return models.BidForm{}, fmt.Errorf("ledger: failed to load bids for offer %s: %w", offerID, err)
	}

	form := models.BidForm{
		OfferID:       offerID,
		StartingPrice: EffectiveStartingPrice(offer),
		HighestBid:    money.Zero(),
		Floor:         floorFor(offer, bids),
		BidCount:      len(bids),
		CallToAction:  CallToActionSubmit,
	}
	if top, ok := SelectHighest(bids); ok {
		form.HighestBid = top.Amount
		form.HasBids = true
	}
	if userID != "" {
		if _, ok := findByUser(bids, userID); ok {
			form.HasActiveBid = true
			form.CallToAction = CallToActionRaise
		}
	}
	return form, nil
}

// OffersByBidder returns the offers a user holds a bid on
func (l *Ledger) OffersByBidder(ctx context.Context, userID string) ([]models.Offer, error) {
	if userID == "" {
		return nil, fmt.Errorf("ledger: %w - empty user ID", biddingerrors.ErrInvalidBid)
	}
	offers, err := l.store.GetOffersByBidder(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("ledger: failed to get offers for user %s: %w", userID, err)
	}
	return offers, nil
}

// CountOffersByOwner counts the offers a user has listed
func (l *Ledger) CountOffersByOwner(ctx context.Context, ownerID string) (int, error) {
	if ownerID == "" {
		return 0, fmt.Errorf("ledger: %w - empty user ID", biddingerrors.ErrInvalidBid)
	}
	offers, err := l.store.GetOffersByOwner(ctx, ownerID)
	if err != nil {
		return 0, fmt.Errorf("ledger: failed to get offers of owner %s: %w", ownerID, err)
	}
	return len(offers), nil
}

// EffectiveStartingPrice is the minimum for with_minimum offers, otherwise zero tagged as no minimum
func EffectiveStartingPrice(offer models.Offer) models.StartingPrice {
	if offer.RequiresMinimum() {
		return models.StartingPrice{Amount: offer.MinimumPrice}
	}
	return models.StartingPrice{Amount: money.Zero(), NoMinimum: true}
}

func (l *Ledger) bidsFor(ctx context.Context, offerID string) ([]models.Bid, error) {
	if offerID == "" {
		return nil, fmt.Errorf("ledger: %w - empty offer ID", biddingerrors.ErrInvalidBid)
	}
	bids, err := l.store.GetBidsByOffer(ctx, offerID)
	if err != nil {
		return nil, fmt.Errorf("ledger: failed to get bids for offer %s: %w", offerID, err)
	}
	return bids, nil
}

func (l *Ledger) publish(ctx context.Context, event models.BidEvent) {
	if err := l.publisher.Publish(ctx, event); err != nil {
		utils.Error("ledger: failed to publish bid event", map[string]any{
			"type":     string(event.Type),
			"offer_id": event.OfferID,
			"bid_id":   event.BidID,
			"error":    err.Error(),
		})
		return
	}
	utils.Debug("ledger: published bid event", map[string]any{
		"type":   string(event.Type),
		"bid_id": event.BidID,
	})
}

// floorFor is the smallest acceptable amount for the next bid on offer
func floorFor(offer models.Offer, bids []models.Bid) money.Money {
	if top, ok := SelectHighest(bids); ok {
		return top.Amount
	}
	if offer.RequiresMinimum() {
		return offer.MinimumPrice
	}
	return money.Zero()
}

func findByUser(bids []models.Bid, userID string) (models.Bid, bool) {
	for _, b := range bids {
		if b.UserID == userID {
			return b, true
		}
	}
	return models.Bid{}, false
}

func eventFor(t models.BidEventType, bid models.Bid) models.BidEvent {
	return models.BidEvent{
		Type:       t,
		OfferID:    bid.OfferID,
		BidID:      bid.BidID,
		UserID:     bid.UserID,
		Amount:     bid.Amount,
		RevisionID: bid.RevisionID,
		Timestamp:  bid.CreatedAt,
	}
}
