package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"offer-bidding/internal/biddingerrors"
	model "offer-bidding/internal/models"
	"offer-bidding/internal/money"

	"github.com/go-sql-driver/mysql"
	"github.com/shopspring/decimal"
)

const mysqlDuplicateEntry = 1062

const offerColumns = `o.id, o.owner_id, o.title, o.offer_type, o.minimum_price, o.status, o.bid_version, o.created_at`

// latest revision of each chain
const bidSelect = `
	SELECT b.id, b.offer_id, b.user_id, r.revision_id, r.amount, r.previous_amount, r.revision_log, r.created_at
	FROM bids b
	JOIN bid_revisions r ON r.bid_id = b.id AND r.revision_id = b.current_revision`

// MySQLRepo implements BidStore on MySQL. Revisions are append-only rows in
// bid_revisions; bids holds one row per (offer, user) chain.
type MySQLRepo struct {
	db *sql.DB
}

func NewMySQLRepo(db *sql.DB) *MySQLRepo {
	return &MySQLRepo{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOffer(row rowScanner) (model.Offer, error) {
	var (
		o         model.Offer
		offerType string
		status    string
	)
	if err := row.Scan(&o.OfferID, &o.OwnerID, &o.Title, &offerType, &o.MinimumPrice, &status, &o.BidVersion, &o.CreatedAt); err != nil {
		return model.Offer{}, err
	}
	parsed, err := model.ParseOfferStatus(status)
	if err != nil {
		return model.Offer{}, err
	}
	o.Type = model.OfferType(offerType)
	o.Status = parsed
	return o, nil
}

func scanBid(row rowScanner) (model.Bid, error) {
	var (
		b    model.Bid
		prev decimal.NullDecimal
	)
	if err := row.Scan(&b.BidID, &b.OfferID, &b.UserID, &b.RevisionID, &b.Amount, &prev, &b.RevisionLog, &b.CreatedAt); err != nil {
		return model.Bid{}, err
	}
	if prev.Valid {
		m, err := money.New(prev.Decimal)
		if err != nil {
			return model.Bid{}, err
		}
		b.PreviousAmount = &m
	}
	return b, nil
}

func (r *MySQLRepo) GetOffer(ctx context.Context, offerID string) (model.Offer, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+offerColumns+` FROM offers o WHERE o.id = ?`, offerID)
	offer, err := scanOffer(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Offer{}, fmt.Errorf("get offer %s: %w", offerID, biddingerrors.ErrOfferNotFound)
	}
	if err != nil {
		return model.Offer{}, fmt.Errorf("get offer %s: %w", offerID, err)
	}
	return offer, nil
}

func (r *MySQLRepo) GetOffersByOwner(ctx context.Context, ownerID string) ([]model.Offer, error) {
	offers, err := r.queryOffers(ctx,
		`SELECT `+offerColumns+` FROM offers o WHERE o.owner_id = ? ORDER BY o.created_at, o.id`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("get offers of owner %s: %w", ownerID, err)
	}
	return offers, nil
}

func (r *MySQLRepo) GetOffersByBidder(ctx context.Context, userID string) ([]model.Offer, error) {
	offers, err := r.queryOffers(ctx,
		`SELECT `+offerColumns+` FROM offers o JOIN bids b ON b.offer_id = o.id WHERE b.user_id = ? ORDER BY o.created_at, o.id`, userID)
	if err != nil {
		return nil, fmt.Errorf("get offers for user %s: %w", userID, err)
	}
	if len(offers) == 0 {
		return nil, fmt.Errorf("get offers for user %s: %w", userID, biddingerrors.ErrUserNoBids)
	}
	return offers, nil
}

func (r *MySQLRepo) queryOffers(ctx context.Context, query string, args ...any) ([]model.Offer, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	offers := make([]model.Offer, 0)
	for rows.Next() {
		o, err := scanOffer(rows)
		if err != nil {
			return nil, err
		}
		offers = append(offers, o)
	}
	return offers, rows.Err()
}

func (r *MySQLRepo) GetBidsByOffer(ctx context.Context, offerID string) ([]model.Bid, error) {
	if _, err := r.GetOffer(ctx, offerID); err != nil {
		return nil, err
	}
	bids, err := r.queryBids(ctx, bidSelect+` WHERE b.offer_id = ? ORDER BY r.created_at, b.id`, offerID)
	if err != nil {
		return nil, fmt.Errorf("get bids for offer %s: %w", offerID, err)
	}
	return bids, nil
}

func (r *MySQLRepo) GetActiveBid(ctx context.Context, offerID, userID string) (model.Bid, error) {
	bid, err := scanBid(r.db.QueryRowContext(ctx, bidSelect+` WHERE b.offer_id = ? AND b.user_id = ?`, offerID, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Bid{}, fmt.Errorf("get bid of user %s on offer %s: %w", userID, offerID, biddingerrors.ErrBidNotFound)
	}
	if err != nil {
		return model.Bid{}, fmt.Errorf("get bid of user %s on offer %s: %w", userID, offerID, err)
	}
	return bid, nil
}

func (r *MySQLRepo) GetBid(ctx context.Context, bidID string) (model.Bid, error) {
	bid, err := scanBid(r.db.QueryRowContext(ctx, bidSelect+` WHERE b.id = ?`, bidID))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Bid{}, fmt.Errorf("get bid %s: %w", bidID, biddingerrors.ErrBidNotFound)
	}
	if err != nil {
		return model.Bid{}, fmt.Errorf("get bid %s: %w", bidID, err)
	}
	return bid, nil
}

func (r *MySQLRepo) GetRevisions(ctx context.Context, bidID string) ([]model.Bid, error) {
	bids, err := r.queryBids(ctx, `
	SELECT b.id, b.offer_id, b.user_id, r.revision_id, r.amount, r.previous_amount, r.revision_log, r.created_at
	FROM bid_revisions r
	JOIN bids b ON b.id = r.bid_id
	WHERE r.bid_id = ?
	ORDER BY r.revision_id ASC`, bidID)
	if err != nil {
		return nil, fmt.Errorf("get revisions of bid %s: %w", bidID, err)
	}
	if len(bids) == 0 {
		return nil, fmt.Errorf("get revisions of bid %s: %w", bidID, biddingerrors.ErrBidNotFound)
	}
	return bids, nil
}

func (r *MySQLRepo) queryBids(ctx context.Context, query string, args ...any) ([]model.Bid, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bids := make([]model.Bid, 0)
	for rows.Next() {
		b, err := scanBid(rows)
		if err != nil {
			return nil, err
		}
		bids = append(bids, b)
	}
	return bids, rows.Err()
}

// SaveRevision writes one revision in a single transaction guarded by the offer's bid_version.
func (r *MySQLRepo) SaveRevision(ctx context.Context, bid model.Bid, expectedVersion int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save bid %s: begin: %w", bid.BidID, err)
	}
	defer tx.Rollback()

	if err := bumpBidVersion(ctx, tx, bid.OfferID, expectedVersion); err != nil {
		return fmt.Errorf("save bid %s: %w", bid.BidID, err)
	}

	if bid.RevisionID == 1 {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO bids (id, offer_id, user_id, current_revision) VALUES (?, ?, ?, 1)`,
			bid.BidID, bid.OfferID, bid.UserID)
		var myErr *mysql.MySQLError
		if errors.As(err, &myErr) && myErr.Number == mysqlDuplicateEntry {
			return fmt.Errorf("save bid %s: user %s already bids on offer %s: %w",
				bid.BidID, bid.UserID, bid.OfferID, biddingerrors.ErrConcurrentModification)
		}
		if err != nil {
			return fmt.Errorf("save bid %s: insert chain: %w", bid.BidID, err)
		}
	} else {
		res, err := tx.ExecContext(ctx,
			`UPDATE bids SET current_revision = ? WHERE id = ? AND user_id = ? AND current_revision = ?`,
			bid.RevisionID, bid.BidID, bid.UserID, bid.RevisionID-1)
		if err != nil {
			return fmt.Errorf("save bid %s: advance chain: %w", bid.BidID, err)
		}
		if n, err := res.RowsAffected(); err != nil || n == 0 {
			return fmt.Errorf("save bid %s: revision %d does not follow the chain head: %w",
				bid.BidID, bid.RevisionID, biddingerrors.ErrConcurrentModification)
		}
	}

	var prev any
	if bid.PreviousAmount != nil {
		prev = *bid.PreviousAmount
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO bid_revisions (bid_id, revision_id, amount, previous_amount, revision_log, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		bid.BidID, bid.RevisionID, bid.Amount, prev, bid.RevisionLog, bid.CreatedAt); err != nil {
		return fmt.Errorf("save bid %s: insert revision: %w", bid.BidID, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save bid %s: commit: %w", bid.BidID, err)
	}
	return nil
}

// DeleteBid removes a chain and all of its revisions.
func (r *MySQLRepo) DeleteBid(ctx context.Context, bidID string, expectedVersion int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("delete bid %s: begin: %w", bidID, err)
	}
	defer tx.Rollback()

	var offerID string
	err = tx.QueryRowContext(ctx, `SELECT offer_id FROM bids WHERE id = ?`, bidID).Scan(&offerID)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("delete bid %s: %w", bidID, biddingerrors.ErrBidNotFound)
	}
	if err != nil {
		return fmt.Errorf("delete bid %s: %w", bidID, err)
	}

	if err := bumpBidVersion(ctx, tx, offerID, expectedVersion); err != nil {
		return fmt.Errorf("delete bid %s: %w", bidID, err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM bid_revisions WHERE bid_id = ?`, bidID); err != nil {
		return fmt.Errorf("delete bid %s: revisions: %w", bidID, err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM bids WHERE id = ?`, bidID); err != nil {
		return fmt.Errorf("delete bid %s: chain: %w", bidID, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("delete bid %s: commit: %w", bidID, err)
	}
	return nil
}

func (r *MySQLRepo) GetAccount(ctx context.Context, userID string) (model.Account, error) {
	acc := model.Account{UserID: userID}
	err := r.db.QueryRowContext(ctx, `SELECT display_name FROM accounts WHERE id = ?`, userID).Scan(&acc.DisplayName)
	if errors.Is(err, sql.ErrNoRows) {
		return acc, nil
	}
	if err != nil {
		return model.Account{}, fmt.Errorf("get account %s: %w", userID, err)
	}
	return acc, nil
}

// bumpBidVersion is the optimistic lock: it only succeeds while the offer is at expectedVersion.
func bumpBidVersion(ctx context.Context, tx *sql.Tx, offerID string, expectedVersion int64) error {
	res, err := tx.ExecContext(ctx,
		`UPDATE offers SET bid_version = bid_version + 1 WHERE id = ? AND bid_version = ?`, offerID, expectedVersion)
	if err != nil {
		return fmt.Errorf("bump version of offer %s: %w", offerID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("bump version of offer %s: %w", offerID, err)
	}
	if n > 0 {
		return nil
	}

	var exists int
	err = tx.QueryRowContext(ctx, `SELECT 1 FROM offers WHERE id = ?`, offerID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("offer %s: %w", offerID, biddingerrors.ErrOfferNotFound)
	}
	if err != nil {
		return fmt.Errorf("offer %s: %w", offerID, err)
	}
	return fmt.Errorf("offer %s moved past version %d: %w", offerID, expectedVersion, biddingerrors.ErrConcurrentModification)
}
