package server

import (
	"net/http"

	"offer-bidding/services/bidding/handler"
	"offer-bidding/utils"

	"github.com/gin-gonic/gin"
)

// SetupRouter configures all Gin routes for the application
func SetupRouter(l handler.LedgerInterface) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(AccountMiddleware)
	router.Use(RequestLoggerMiddleware)

	biddingHandler := handler.NewBiddingHandler(l)

	router.GET("/health", func(c *gin.Context) {
		utils.JSONResponse(c, http.StatusOK, gin.H{"status": "ok"}, "service healthy")
	})

	offers := router.Group("/offers/:offer_id")
	{
		offers.POST("/bids", RequireAccount, biddingHandler.PlaceBidHandler)
		offers.GET("/bids", biddingHandler.GetBiddersTableHandler)
		offers.GET("/highest", biddingHandler.GetHighestBidHandler)
		offers.GET("/winning", biddingHandler.GetWinningBidHandler)
		offers.GET("/form", biddingHandler.GetBidFormHandler)
	}

	bids := router.Group("/bids/:bid_id")
	{
		bids.GET("/history", biddingHandler.GetBidHistoryHandler)
		bids.GET("/revisions", biddingHandler.GetBidRevisionsHandler)
		bids.DELETE("", RequireAccount, biddingHandler.RemoveBidHandler)
	}

	users := router.Group("/users/:user_id")
	{
		users.GET("/offers", biddingHandler.GetOffersByUserHandler)
		users.GET("/offers/count", biddingHandler.CountOffersByOwnerHandler)
	}

	return router
}
