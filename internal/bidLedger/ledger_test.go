package ledger

import (
	"context"
	"errors"
	"testing"
	"time"

	"offer-bidding/internal/biddingerrors"
	"offer-bidding/internal/events"
	"offer-bidding/internal/models"
	"offer-bidding/internal/money"
	"offer-bidding/internal/repository"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func publishedOffer(offerID string, version int64) models.Offer {
	return models.Offer{
		OfferID:      offerID,
		OwnerID:      "lister1",
		Type:         models.OfferWithMinimum,
		MinimumPrice: money.MustParse("20"),
		Status:       models.OfferPublished,
		BidVersion:   version,
	}
}

func bidOf(bidID, userID, amount string, revision int) models.Bid {
	return models.Bid{
		BidID:      bidID,
		OfferID:    "offer1",
		UserID:     userID,
		Amount:     money.MustParse(amount),
		RevisionID: revision,
		CreatedAt:  fixedNow,
	}
}

func newMockLedger(t *testing.T, opts ...Option) (*Ledger, *repository.MockBidStore, *events.Recorder) {
	t.Helper()
	ctrl := gomock.NewController(t)
	store := repository.NewMockBidStore(ctrl)
	rec := &events.Recorder{}
	opts = append([]Option{
		WithPublisher(rec),
		WithClock(func() time.Time { return fixedNow }),
		WithIDGenerator(func() string { return "new-bid" }),
	}, opts...)
	return NewLedger(store, opts...), store, rec
}

// Tests PlaceOrRaiseBid
func TestLedger_PlaceOrRaiseBid(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name         string
		offerID      string
		userID       string
		amount       string
		mockSetup    func(store *repository.MockBidStore)
		wantError    error
		wantRevision int
		wantBidID    string
	}{
		{
			name:    "first_bid_at_minimum",
			offerID: "offer1",
			userID:  "user1",
			amount:  "20",
			mockSetup: func(store *repository.MockBidStore) {
				store.EXPECT().GetOffer(gomock.Any(), "offer1").Return(publishedOffer("offer1", 0), nil)
				store.EXPECT().GetBidsByOffer(gomock.Any(), "offer1").Return([]models.Bid{}, nil)
				store.EXPECT().SaveRevision(gomock.Any(), gomock.Any(), int64(0)).Return(nil)
			},
			wantRevision: 1,
			wantBidID:    "new-bid",
		},
		{
			name:    "raise_own_bid",
			offerID: "offer1",
			userID:  "user1",
			amount:  "30",
			mockSetup: func(store *repository.MockBidStore) {
				store.EXPECT().GetOffer(gomock.Any(), "offer1").Return(publishedOffer("offer1", 4), nil)
				store.EXPECT().GetBidsByOffer(gomock.Any(), "offer1").Return([]models.Bid{
					bidOf("bid1", "user1", "25", 2),
					bidOf("bid2", "user2", "22", 1),
				}, nil)
				store.EXPECT().SaveRevision(gomock.Any(), gomock.Any(), int64(4)).Return(nil)
			},
			wantRevision: 3,
			wantBidID:    "bid1",
		},
		{
			name:      "empty_offerID",
			offerID:   "",
			userID:    "user1",
			amount:    "20",
			mockSetup: func(store *repository.MockBidStore) {},
			wantError: biddingerrors.ErrInvalidBid,
		},
		{
			name:      "empty_userID",
			offerID:   "offer1",
			userID:    "",
			amount:    "20",
			mockSetup: func(store *repository.MockBidStore) {},
			wantError: biddingerrors.ErrInvalidBid,
		},
		{
			name:    "offer_not_found",
			offerID: "offerX",
			userID:  "user1",
			amount:  "20",
			mockSetup: func(store *repository.MockBidStore) {
				store.EXPECT().GetOffer(gomock.Any(), "offerX").Return(models.Offer{}, biddingerrors.ErrOfferNotFound)
			},
			wantError: biddingerrors.ErrOfferNotFound,
		},
		{
			name:    "offer_closed",
			offerID: "offer1",
			userID:  "user1",
			amount:  "20",
			mockSetup: func(store *repository.MockBidStore) {
				offer := publishedOffer("offer1", 0)
				offer.Status = models.OfferClosed
				store.EXPECT().GetOffer(gomock.Any(), "offer1").Return(offer, nil)
			},
			wantError: biddingerrors.ErrOfferNotAcceptingBids,
		},
		{
			name:    "offer_draft",
			offerID: "offer1",
			userID:  "user1",
			amount:  "20",
			mockSetup: func(store *repository.MockBidStore) {
				offer := publishedOffer("offer1", 0)
				offer.Status = models.OfferDraft
				store.EXPECT().GetOffer(gomock.Any(), "offer1").Return(offer, nil)
			},
			wantError: biddingerrors.ErrOfferNotAcceptingBids,
		},
		{
			name:    "below_minimum",
			offerID: "offer1",
			userID:  "user1",
			amount:  "15",
			mockSetup: func(store *repository.MockBidStore) {
				store.EXPECT().GetOffer(gomock.Any(), "offer1").Return(publishedOffer("offer1", 0), nil)
				store.EXPECT().GetBidsByOffer(gomock.Any(), "offer1").Return([]models.Bid{}, nil)
			},
			wantError: biddingerrors.ErrBidTooLow,
		},
		{
			name:    "below_highest",
			offerID: "offer1",
			userID:  "user2",
			amount:  "80",
			mockSetup: func(store *repository.MockBidStore) {
				store.EXPECT().GetOffer(gomock.Any(), "offer1").Return(publishedOffer("offer1", 1), nil)
				store.EXPECT().GetBidsByOffer(gomock.Any(), "offer1").Return([]models.Bid{bidOf("bid1", "user1", "100", 1)}, nil)
			},
			wantError: biddingerrors.ErrBidTooLow,
		},
		{
			name:    "store_write_fails",
			offerID: "offer1",
			userID:  "user3",
			amount:  "120",
			mockSetup: func(store *repository.MockBidStore) {
				store.EXPECT().GetOffer(gomock.Any(), "offer1").Return(publishedOffer("offer1", 1), nil)
				store.EXPECT().GetBidsByOffer(gomock.Any(), "offer1").Return([]models.Bid{bidOf("bid1", "user1", "100", 1)}, nil)
				store.EXPECT().SaveRevision(gomock.Any(), gomock.Any(), int64(1)).Return(errors.New("repo write failed"))
			},
			wantError: nil, // ledger wraps the store error, checked by message
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			l, store, rec := newMockLedger(t)
			tc.mockSetup(store)

			bid, err := l.PlaceOrRaiseBid(ctx, tc.offerID, tc.userID, money.MustParse(tc.amount))
			switch {
			case tc.wantError != nil:
				require.ErrorIs(t, err, tc.wantError)
				require.Empty(t, rec.Events())
			case tc.wantRevision == 0:
				require.ErrorContains(t, err, "repo write failed")
				require.Empty(t, rec.Events())
			default:
				require.NoError(t, err)
				require.Equal(t, tc.wantRevision, bid.RevisionID)
				require.Equal(t, tc.wantBidID, bid.BidID)
				require.Equal(t, money.MustParse(tc.amount).String(), bid.Amount.String())
				require.Len(t, rec.Events(), 1)
			}
		})
	}
}

func TestLedger_PlaceOrRaiseBid_RaiseRevisionFields(t *testing.T) {
	l, store, rec := newMockLedger(t)

	store.EXPECT().GetOffer(gomock.Any(), "offer1").Return(publishedOffer("offer1", 7), nil)
	store.EXPECT().GetBidsByOffer(gomock.Any(), "offer1").Return([]models.Bid{bidOf("bid1", "user1", "20", 1)}, nil)
	store.EXPECT().SaveRevision(gomock.Any(), gomock.Any(), int64(7)).DoAndReturn(
		func(_ context.Context, bid models.Bid, _ int64) error {
			require.Equal(t, "bid1", bid.BidID)
			require.Equal(t, 2, bid.RevisionID)
			require.NotNil(t, bid.PreviousAmount)
			require.Equal(t, "20.00", bid.PreviousAmount.String())
			require.Equal(t, "Bid raised for offer offer1", bid.RevisionLog)
			require.Equal(t, fixedNow, bid.CreatedAt)
			return nil
		})

	_, err := l.PlaceOrRaiseBid(context.Background(), "offer1", "user1", money.MustParse("25"))
	require.NoError(t, err)

	published := rec.Events()
	require.Len(t, published, 1)
	require.Equal(t, models.BidRaised, published[0].Type)
	require.Equal(t, 2, published[0].RevisionID)
}

func TestLedger_PlaceOrRaiseBid_Retry(t *testing.T) {
	ctx := context.Background()

	t.Run("succeeds_on_second_attempt", func(t *testing.T) {
		l, store, rec := newMockLedger(t)

		gomock.InOrder(
			store.EXPECT().GetOffer(gomock.Any(), "offer1").Return(publishedOffer("offer1", 0), nil),
			store.EXPECT().GetBidsByOffer(gomock.Any(), "offer1").Return([]models.Bid{}, nil),
			store.EXPECT().SaveRevision(gomock.Any(), gomock.Any(), int64(0)).Return(biddingerrors.ErrConcurrentModification),
			store.EXPECT().GetOffer(gomock.Any(), "offer1").Return(publishedOffer("offer1", 1), nil),
			store.EXPECT().GetBidsByOffer(gomock.Any(), "offer1").Return([]models.Bid{bidOf("bid2", "user2", "20", 1)}, nil),
			store.EXPECT().SaveRevision(gomock.Any(), gomock.Any(), int64(1)).Return(nil),
		)

		bid, err := l.PlaceOrRaiseBid(ctx, "offer1", "user1", money.MustParse("20"))
		require.NoError(t, err)
		require.Equal(t, 1, bid.RevisionID)
		require.Len(t, rec.Events(), 1)
	})

	t.Run("revalidates_after_conflict", func(t *testing.T) {
		l, store, _ := newMockLedger(t)

		gomock.InOrder(
			store.EXPECT().GetOffer(gomock.Any(), "offer1").Return(publishedOffer("offer1", 0), nil),
			store.EXPECT().GetBidsByOffer(gomock.Any(), "offer1").Return([]models.Bid{}, nil),
			store.EXPECT().SaveRevision(gomock.Any(), gomock.Any(), int64(0)).Return(biddingerrors.ErrConcurrentModification),
			store.EXPECT().GetOffer(gomock.Any(), "offer1").Return(publishedOffer("offer1", 1), nil),
			store.EXPECT().GetBidsByOffer(gomock.Any(), "offer1").Return([]models.Bid{bidOf("bid2", "user2", "50", 1)}, nil),
		)

		_, err := l.PlaceOrRaiseBid(ctx, "offer1", "user1", money.MustParse("20"))
		require.ErrorIs(t, err, biddingerrors.ErrBidTooLow)
	})

	t.Run("gives_up_after_max_attempts", func(t *testing.T) {
		l, store, rec := newMockLedger(t, WithMaxAttempts(2))

		store.EXPECT().GetOffer(gomock.Any(), "offer1").Return(publishedOffer("offer1", 0), nil).Times(2)
		store.EXPECT().GetBidsByOffer(gomock.Any(), "offer1").Return([]models.Bid{}, nil).Times(2)
		store.EXPECT().SaveRevision(gomock.Any(), gomock.Any(), int64(0)).Return(biddingerrors.ErrConcurrentModification).Times(2)

		_, err := l.PlaceOrRaiseBid(ctx, "offer1", "user1", money.MustParse("20"))
		require.ErrorIs(t, err, biddingerrors.ErrConcurrentModification)
		require.ErrorContains(t, err, "gave up after 2 attempts")
		require.Empty(t, rec.Events())
	})

	t.Run("stops_on_cancelled_context", func(t *testing.T) {
		l, store, _ := newMockLedger(t)
		cctx, cancel := context.WithCancel(ctx)

		store.EXPECT().GetOffer(gomock.Any(), "offer1").Return(publishedOffer("offer1", 0), nil)
		store.EXPECT().GetBidsByOffer(gomock.Any(), "offer1").Return([]models.Bid{}, nil)
		store.EXPECT().SaveRevision(gomock.Any(), gomock.Any(), int64(0)).DoAndReturn(
			func(context.Context, models.Bid, int64) error {
				cancel()
				return biddingerrors.ErrConcurrentModification
			})

		_, err := l.PlaceOrRaiseBid(cctx, "offer1", "user1", money.MustParse("20"))
		require.ErrorIs(t, err, context.Canceled)
	})
}

type failingPublisher struct{}

func (failingPublisher) Publish(context.Context, models.BidEvent) error {
	return errors.New("redis down")
}

func TestLedger_PublishFailureIsNotReturned(t *testing.T) {
	l, store, _ := newMockLedger(t, WithPublisher(failingPublisher{}))

	store.EXPECT().GetOffer(gomock.Any(), "offer1").Return(publishedOffer("offer1", 0), nil)
	store.EXPECT().GetBidsByOffer(gomock.Any(), "offer1").Return([]models.Bid{}, nil)
	store.EXPECT().SaveRevision(gomock.Any(), gomock.Any(), int64(0)).Return(nil)

	_, err := l.PlaceOrRaiseBid(context.Background(), "offer1", "user1", money.MustParse("20"))
	require.NoError(t, err)
}

// Tests RemoveBid
func TestLedger_RemoveBid(t *testing.T) {
	ctx := context.Background()
	owner := models.Account{UserID: "user1"}

	tests := []struct {
		name      string
		bidID     string
		actor     models.Account
		mockSetup func(store *repository.MockBidStore)
		wantError error
		wantEvent bool
	}{
		{
			name:  "owner_removes",
			bidID: "bid1",
			actor: owner,
			mockSetup: func(store *repository.MockBidStore) {
				store.EXPECT().GetBid(gomock.Any(), "bid1").Return(bidOf("bid1", "user1", "20", 2), nil)
				store.EXPECT().GetOffer(gomock.Any(), "offer1").Return(publishedOffer("offer1", 3), nil)
				store.EXPECT().DeleteBid(gomock.Any(), "bid1", int64(3)).Return(nil)
			},
			wantEvent: true,
		},
		{
			name:  "other_bidder",
			bidID: "bid1",
			actor: models.Account{UserID: "user2"},
			mockSetup: func(store *repository.MockBidStore) {
				store.EXPECT().GetBid(gomock.Any(), "bid1").Return(bidOf("bid1", "user1", "20", 1), nil)
			},
			wantError: biddingerrors.ErrForbidden,
		},
		{
			name:  "offer_lister",
			bidID: "bid1",
			actor: models.Account{UserID: "lister1"},
			mockSetup: func(store *repository.MockBidStore) {
				store.EXPECT().GetBid(gomock.Any(), "bid1").Return(bidOf("bid1", "user1", "20", 1), nil)
			},
			wantError: biddingerrors.ErrForbidden,
		},
		{
			name:      "empty_bidID",
			bidID:     "",
			actor:     owner,
			mockSetup: func(store *repository.MockBidStore) {},
			wantError: biddingerrors.ErrInvalidBid,
		},
		{
			name:  "unknown_bid",
			bidID: "nope",
			actor: owner,
			mockSetup: func(store *repository.MockBidStore) {
				store.EXPECT().GetBid(gomock.Any(), "nope").Return(models.Bid{}, biddingerrors.ErrBidNotFound)
			},
			wantError: biddingerrors.ErrBidNotFound,
		},
		{
			name:  "retried_after_conflict",
			bidID: "bid1",
			actor: owner,
			mockSetup: func(store *repository.MockBidStore) {
				gomock.InOrder(
					store.EXPECT().GetBid(gomock.Any(), "bid1").Return(bidOf("bid1", "user1", "20", 1), nil),
					store.EXPECT().GetOffer(gomock.Any(), "offer1").Return(publishedOffer("offer1", 3), nil),
					store.EXPECT().DeleteBid(gomock.Any(), "bid1", int64(3)).Return(biddingerrors.ErrConcurrentModification),
					store.EXPECT().GetBid(gomock.Any(), "bid1").Return(bidOf("bid1", "user1", "25", 2), nil),
					store.EXPECT().GetOffer(gomock.Any(), "offer1").Return(publishedOffer("offer1", 4), nil),
					store.EXPECT().DeleteBid(gomock.Any(), "bid1", int64(4)).Return(nil),
				)
			},
			wantEvent: true,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			l, store, rec := newMockLedger(t)
			tc.mockSetup(store)

			err := l.RemoveBid(ctx, tc.bidID, tc.actor)
			if tc.wantError != nil {
				require.ErrorIs(t, err, tc.wantError)
			} else {
				require.NoError(t, err)
			}

			published := rec.Events()
			if tc.wantEvent {
				require.Len(t, published, 1)
				require.Equal(t, models.BidRemoved, published[0].Type)
				require.Equal(t, tc.bidID, published[0].BidID)
			} else {
				require.Empty(t, published)
			}
		})
	}
}

func TestLedger_RemoveBid_StopsOnCancelledContext(t *testing.T) {
	l, store, rec := newMockLedger(t)
	ctx, cancel := context.WithCancel(context.Background())

	store.EXPECT().GetBid(gomock.Any(), "bid1").Return(bidOf("bid1", "user1", "20", 1), nil)
	store.EXPECT().GetOffer(gomock.Any(), "offer1").Return(publishedOffer("offer1", 3), nil)
	store.EXPECT().DeleteBid(gomock.Any(), "bid1", int64(3)).DoAndReturn(
		func(context.Context, string, int64) error {
			cancel()
			return biddingerrors.ErrConcurrentModification
		})

	err := l.RemoveBid(ctx, "bid1", models.Account{UserID: "user1"})
	require.ErrorIs(t, err, context.Canceled)
	require.Empty(t, rec.Events())
}

// Tests HasActiveBid
func TestLedger_HasActiveBid(t *testing.T) {
	ctx := context.Background()

	t.Run("active", func(t *testing.T) {
		l, store, _ := newMockLedger(t)
		store.EXPECT().GetOffer(gomock.Any(), "offer1").Return(publishedOffer("offer1", 1), nil)
		store.EXPECT().GetActiveBid(gomock.Any(), "offer1", "user1").Return(bidOf("bid1", "user1", "20", 1), nil)

		ok, err := l.HasActiveBid(ctx, "offer1", "user1")
		require.NoError(t, err)
		require.True(t, ok)
	})

	t.Run("none", func(t *testing.T) {
		l, store, _ := newMockLedger(t)
		store.EXPECT().GetOffer(gomock.Any(), "offer1").Return(publishedOffer("offer1", 1), nil)
		store.EXPECT().GetActiveBid(gomock.Any(), "offer1", "user2").Return(models.Bid{}, biddingerrors.ErrBidNotFound)

		ok, err := l.HasActiveBid(ctx, "offer1", "user2")
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("unknown_offer", func(t *testing.T) {
		l, store, _ := newMockLedger(t)
		store.EXPECT().GetOffer(gomock.Any(), "offerX").Return(models.Offer{}, biddingerrors.ErrOfferNotFound)

		_, err := l.HasActiveBid(ctx, "offerX", "user1")
		require.ErrorIs(t, err, biddingerrors.ErrOfferNotFound)
	})

	t.Run("store_error", func(t *testing.T) {
		l, store, _ := newMockLedger(t)
		store.EXPECT().GetOffer(gomock.Any(), "offer1").Return(publishedOffer("offer1", 1), nil)
		store.EXPECT().GetActiveBid(gomock.Any(), "offer1", "user1").Return(models.Bid{}, errors.New("connection reset"))

		_, err := l.HasActiveBid(ctx, "offer1", "user1")
		require.ErrorContains(t, err, "connection reset")
	})
}

func TestLedger_BiddersTable_AccountError(t *testing.T) {
	l, store, _ := newMockLedger(t)
	store.EXPECT().GetBidsByOffer(gomock.Any(), "offer1").Return([]models.Bid{bidOf("bid1", "user1", "20", 1)}, nil)
	store.EXPECT().GetAccount(gomock.Any(), "user1").Return(models.Account{}, errors.New("accounts unavailable"))

	_, err := l.BiddersTable(context.Background(), "offer1", models.Account{})
	require.ErrorContains(t, err, "accounts unavailable")
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		want      string
		wantError bool
	}{
		{name: "integer", raw: "20", want: "20.00"},
		{name: "decimal", raw: "20.5", want: "20.50"},
		{name: "zero", raw: "0", want: "0.00"},
		{name: "negative", raw: "-1", wantError: true},
		{name: "non_numeric", raw: "twenty", wantError: true},
		{name: "empty", raw: "", wantError: true},
		{name: "sub_cent", raw: "10.995", wantError: true},
		{name: "above_maximum", raw: "10000000000", wantError: true},
		{name: "huge_exponent", raw: "1e100000000", wantError: true},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := ParseAmount(tc.raw)
			if tc.wantError {
				require.ErrorIs(t, err, biddingerrors.ErrInvalidAmount)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.want, got.String())
		})
	}
}

func TestRaiseDelta(t *testing.T) {
	first := bidOf("bid1", "user1", "10", 1)
	_, ok := RaiseDelta(first)
	require.False(t, ok)

	prev := money.MustParse("10")
	raised := bidOf("bid1", "user1", "15", 2)
	raised.PreviousAmount = &prev
	delta, ok := RaiseDelta(raised)
	require.True(t, ok)
	require.Equal(t, "5.00", delta.String())
}

func TestSelectHighest(t *testing.T) {
	early := bidOf("bid-b", "userA", "50", 1)
	late := bidOf("bid-a", "userB", "50", 1)
	late.CreatedAt = fixedNow.Add(time.Second)
	same := bidOf("bid-0", "userC", "50", 1)
	low := bidOf("bid-low", "userD", "10", 1)

	_, ok := SelectHighest(nil)
	require.False(t, ok)

	top, ok := SelectHighest([]models.Bid{late, low, early})
	require.True(t, ok)
	require.Equal(t, "bid-b", top.BidID)

	top, _ = SelectHighest([]models.Bid{early, same})
	require.Equal(t, "bid-0", top.BidID)
}

func TestEffectiveStartingPrice(t *testing.T) {
	withMin := publishedOffer("offer1", 0)
	price := EffectiveStartingPrice(withMin)
	require.False(t, price.NoMinimum)
	require.Equal(t, "20.00", price.Amount.String())
	require.Equal(t, "20.00$", price.Label())

	noMin := models.Offer{OfferID: "offer2", Type: models.OfferNoMinimum, MinimumPrice: money.MustParse("99")}
	price = EffectiveStartingPrice(noMin)
	require.True(t, price.NoMinimum)
	require.True(t, price.Amount.IsZero())
	require.Equal(t, "Start bidding at 0$", price.Label())
}
