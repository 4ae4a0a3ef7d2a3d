package server

import (
	"errors"

	"github.com/gin-gonic/gin"

	"player-auction/internal/auction"
	"player-auction/internal/auth"
	"player-auction/internal/bidding"
	model "player-auction/internal/models"
	"player-auction/internal/registry"
	handler "player-auction/services/auction/handler"
)

var (
	errMissingToken = errors.New("missing bearer token")
	errForbidden    = errors.New("insufficient role")
)

// SetupRouter configures all Gin routes for the application. Administrative
// operations require the ADMIN role; bid submission requires TEAM_USER, as
// only bidding parties may raise prices.
func SetupRouter(
	authService *auth.Service,
	auctionService *auction.Service,
	biddingService *bidding.Service,
	registryService *registry.Service,
) *gin.Engine {
	router := gin.New() // new router without default middleware for full control

	router.Use(gin.Recovery())
	router.Use(RequestLoggerMiddleware)

	authHandler := handler.NewAuthHandler(authService)
	auctionHandler := handler.NewAuctionHandler(auctionService)
	bidHandler := handler.NewBidHandler(biddingService)
	registryHandler := handler.NewRegistryHandler(registryService)

	authRoutes := router.Group("/auth")
	{
		authRoutes.POST("/register", authHandler.RegisterHandler)
		authRoutes.POST("/login", authHandler.LoginHandler)
		authRoutes.GET("/me", AuthRequired(authService), authHandler.MeHandler)
	}

	authed := router.Group("", AuthRequired(authService))
	{
		authed.GET("/auctions/:auction_id", auctionHandler.GetAuctionHandler)
		authed.GET("/auctions/:auction_id/lots", auctionHandler.GetLotsByAuctionHandler)
		authed.GET("/lots/:lot_id", auctionHandler.GetLotHandler)
		authed.GET("/lots/:lot_id/bids", bidHandler.GetBidsByLotHandler)
		authed.GET("/teams", registryHandler.ListTeamsHandler)
		authed.GET("/players", registryHandler.ListPlayersHandler)
	}

	admin := router.Group("", AuthRequired(authService), RequireRole(model.RoleAdmin))
	{
		admin.POST("/auctions", auctionHandler.CreateAuctionHandler)
		admin.POST("/auctions/:auction_id/start", auctionHandler.StartAuctionHandler)
		admin.POST("/auctions/:auction_id/finish", auctionHandler.FinishAuctionHandler)
		admin.POST("/lots", auctionHandler.CreateLotHandler)
		admin.POST("/lots/:lot_id/start", auctionHandler.StartLotHandler)
		admin.POST("/lots/:lot_id/sold", auctionHandler.MarkSoldHandler)
		admin.POST("/lots/:lot_id/unsold", auctionHandler.MarkUnsoldHandler)
		admin.POST("/teams", registryHandler.CreateTeamHandler)
		admin.POST("/players", registryHandler.CreatePlayerHandler)
	}

	bids := router.Group("/bids", AuthRequired(authService), RequireRole(model.RoleTeamUser))
	{
		bids.POST("", bidHandler.PlaceBidHandler)
	}

	return router
}
