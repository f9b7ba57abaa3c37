package handler

import (
	"context"
	"errors"
	"net/http"

	"offer-bidding/internal/biddingerrors"
	ledger "offer-bidding/internal/bidLedger"
	"offer-bidding/internal/models"
	"offer-bidding/internal/money"
	"offer-bidding/services/bidding/helpers"
	"offer-bidding/utils"

	"github.com/gin-gonic/gin"
)

//go:generate mockgen -destination=mock_bidding_handler.go -package=handler offer-bidding/services/bidding/handler LedgerInterface

type LedgerInterface interface {
	PlaceOrRaiseBid(ctx context.Context, offerID, userID string, amount money.Money) (models.Bid, error)
	CurrentHighestBid(ctx context.Context, offerID string) (money.Money, bool, error)
	WinningBid(ctx context.Context, offerID string) (models.Bid, error)
	History(ctx context.Context, bidID string) ([]models.Bid, error)
	Revisions(ctx context.Context, bidID string) ([]models.Bid, error)
	BiddersTable(ctx context.Context, offerID string, viewer models.Account) ([]models.BidderRow, error)
	RemoveBid(ctx context.Context, bidID string, actor models.Account) error
	BidForm(ctx context.Context, offerID, userID string) (models.BidForm, error)
	OffersByBidder(ctx context.Context, userID string) ([]models.Offer, error)
	CountOffersByOwner(ctx context.Context, ownerID string) (int, error)
}

type BiddingHandler struct {
	ledger LedgerInterface
}

func NewBiddingHandler(l LedgerInterface) *BiddingHandler {
	return &BiddingHandler{ledger: l}
}

// PlaceBidHandler handles POST /offers/:offer_id/bids
func (h *BiddingHandler) PlaceBidHandler(c *gin.Context) {
	offerID := c.Param("offer_id")
	acc := helpers.CurrentAccount(c)
	if acc.UserID == "" {
		helpers.RespondError(c, "PlaceBidHandler", biddingerrors.ErrMissingAccount, map[string]any{"offer_id": offerID})
		return
	}

	var req helpers.PlaceBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "PlaceBidHandler", err)
		return
	}

	raw, err := helpers.RawAmount(req.Amount)
	if err != nil {
		helpers.RespondError(c, "PlaceBidHandler", err, map[string]any{"offer_id": offerID, "user_id": acc.UserID})
		return
	}
	amount, err := ledger.ParseAmount(raw)
	if err != nil {
		helpers.RespondError(c, "PlaceBidHandler", err, map[string]any{"offer_id": offerID, "user_id": acc.UserID})
		return
	}

	bid, err := h.ledger.PlaceOrRaiseBid(c.Request.Context(), offerID, acc.UserID, amount)
	if err != nil {
		helpers.RespondError(c, "PlaceBidHandler", err, map[string]any{
			"offer_id": offerID,
			"user_id":  acc.UserID,
			"amount":   amount.String(),
		})
		return
	}

	status, message := http.StatusCreated, "bid placed successfully"
	if bid.RevisionID > 1 {
		status, message = http.StatusOK, "bid raised successfully"
	}
	utils.JSONResponse(c, status, helpers.NewBidResponse(bid, deltaOf(bid)), message)
	helpers.LogSuccess("PlaceBidHandler", message, map[string]any{
		"bid_id":      bid.BidID,
		"offer_id":    bid.OfferID,
		"user_id":     bid.UserID,
		"amount":      bid.Amount.String(),
		"revision_id": bid.RevisionID,
	})
}

// GetBiddersTableHandler handles GET /offers/:offer_id/bids
func (h *BiddingHandler) GetBiddersTableHandler(c *gin.Context) {
	offerID := c.Param("offer_id")
	rows, err := h.ledger.BiddersTable(c.Request.Context(), offerID, helpers.CurrentAccount(c))
	if err != nil {
		helpers.RespondError(c, "GetBiddersTableHandler", err, map[string]any{"offer_id": offerID})
		return
	}

	if rows == nil {
		rows = []models.BidderRow{}
	}

	utils.JSONResponse(c, http.StatusOK, rows, "bids retrieved successfully")
	helpers.LogSuccess("GetBiddersTableHandler", "bids retrieved successfully", map[string]any{
		"offer_id": offerID,
		"count":    len(rows),
	})
}

// GetHighestBidHandler handles GET /offers/:offer_id/highest
func (h *BiddingHandler) GetHighestBidHandler(c *gin.Context) {
	offerID := c.Param("offer_id")
	amount, hasBids, err := h.ledger.CurrentHighestBid(c.Request.Context(), offerID)
	if err != nil {
		helpers.RespondError(c, "GetHighestBidHandler", err, map[string]any{"offer_id": offerID})
		return
	}

	message := "highest bid retrieved successfully"
	if !hasBids {
		message = "no bids yet"
	}
	utils.JSONResponse(c, http.StatusOK, helpers.HighestBidResponse{OfferID: offerID, Amount: amount, HasBids: hasBids}, message)
}

// GetWinningBidHandler handles GET /offers/:offer_id/winning
func (h *BiddingHandler) GetWinningBidHandler(c *gin.Context) {
	offerID := c.Param("offer_id")
	bid, err := h.ledger.WinningBid(c.Request.Context(), offerID)
	if err != nil {
		if errors.Is(err, biddingerrors.ErrNoBids) {
			utils.JSONError(c, http.StatusNotFound, err, "no winning bid found")
			utils.Info("GetWinningBidHandler: no winning bid found", map[string]any{"offer_id": offerID})
			return
		}
		helpers.RespondError(c, "GetWinningBidHandler", err, map[string]any{"offer_id": offerID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.NewBidResponse(bid, deltaOf(bid)), "winning bid retrieved successfully")
	helpers.LogSuccess("GetWinningBidHandler", "winning bid retrieved successfully", map[string]any{
		"bid_id":   bid.BidID,
		"offer_id": bid.OfferID,
		"user_id":  bid.UserID,
		"amount":   bid.Amount.String(),
	})
}

// GetBidFormHandler handles GET /offers/:offer_id/form
func (h *BiddingHandler) GetBidFormHandler(c *gin.Context) {
	offerID := c.Param("offer_id")
	form, err := h.ledger.BidForm(c.Request.Context(), offerID, helpers.CurrentAccount(c).UserID)
	if err != nil {
		helpers.RespondError(c, "GetBidFormHandler", err, map[string]any{"offer_id": offerID})
		return
	}
	utils.JSONResponse(c, http.StatusOK, helpers.NewBidFormResponse(form), "bid form retrieved successfully")
}

// GetBidHistoryHandler handles GET /bids/:bid_id/history
func (h *BiddingHandler) GetBidHistoryHandler(c *gin.Context) {
	h.listRevisions(c, "GetBidHistoryHandler", h.ledger.History)
}

// GetBidRevisionsHandler handles GET /bids/:bid_id/revisions
func (h *BiddingHandler) GetBidRevisionsHandler(c *gin.Context) {
	h.listRevisions(c, "GetBidRevisionsHandler", h.ledger.Revisions)
}

func (h *BiddingHandler) listRevisions(c *gin.Context, handlerName string, load func(context.Context, string) ([]models.Bid, error)) {
	bidID := c.Param("bid_id")
	revisions, err := load(c.Request.Context(), bidID)
	if err != nil {
		helpers.RespondError(c, handlerName, err, map[string]any{"bid_id": bidID})
		return
	}

	resp := make([]helpers.BidResponse, 0, len(revisions))
	for _, r := range revisions {
		resp = append(resp, helpers.NewBidResponse(r, deltaOf(r)))
	}

	utils.JSONResponse(c, http.StatusOK, resp, "revisions retrieved successfully")
	helpers.LogSuccess(handlerName, "revisions retrieved successfully", map[string]any{
		"bid_id": bidID,
		"count":  len(resp),
	})
}

// RemoveBidHandler handles DELETE /bids/:bid_id
func (h *BiddingHandler) RemoveBidHandler(c *gin.Context) {
	bidID := c.Param("bid_id")
	acc := helpers.CurrentAccount(c)
	if acc.UserID == "" {
		helpers.RespondError(c, "RemoveBidHandler", biddingerrors.ErrMissingAccount, map[string]any{"bid_id": bidID})
		return
	}

	if err := h.ledger.RemoveBid(c.Request.Context(), bidID, acc); err != nil {
		helpers.RespondError(c, "RemoveBidHandler", err, map[string]any{"bid_id": bidID, "user_id": acc.UserID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, gin.H{"bid_id": bidID}, "bid removed successfully")
	helpers.LogSuccess("RemoveBidHandler", "bid removed successfully", map[string]any{
		"bid_id":  bidID,
		"user_id": acc.UserID,
	})
}

// GetOffersByUserHandler handles GET /users/:user_id/offers
func (h *BiddingHandler) GetOffersByUserHandler(c *gin.Context) {
	userID := c.Param("user_id")
	offers, err := h.ledger.OffersByBidder(c.Request.Context(), userID)
	if err != nil && !errors.Is(err, biddingerrors.ErrUserNoBids) {
		helpers.RespondError(c, "GetOffersByUserHandler", err, map[string]any{"user_id": userID})
		return
	}

	if offers == nil {
		offers = []models.Offer{}
	}

	utils.JSONResponse(c, http.StatusOK, offers, "offers retrieved successfully")
	helpers.LogSuccess("GetOffersByUserHandler", "offers retrieved successfully", map[string]any{
		"user_id":      userID,
		"offers_count": len(offers),
	})
}

// CountOffersByOwnerHandler handles GET /users/:user_id/offers/count
func (h *BiddingHandler) CountOffersByOwnerHandler(c *gin.Context) {
	userID := c.Param("user_id")
	count, err := h.ledger.CountOffersByOwner(c.Request.Context(), userID)
	if err != nil {
		helpers.RespondError(c, "CountOffersByOwnerHandler", err, map[string]any{"user_id": userID})
		return
	}
	utils.JSONResponse(c, http.StatusOK, helpers.NewOfferCountResponse(userID, count), "offers counted successfully")
}

func deltaOf(bid models.Bid) *money.Money {
	if d, ok := ledger.RaiseDelta(bid); ok {
		return &d
	}
	return nil
}
