package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"player-auction/internal/metrics"
	model "player-auction/internal/models"
	"player-auction/services/auction/helpers"
	"player-auction/utils"
)

type AuctionServiceInterface interface {
	CreateAuction() (model.Auction, error)
	StartAuction(auctionID string) (model.Auction, error)
	FinishAuction(auctionID string) (model.Auction, error)
	GetAuction(auctionID string) (model.Auction, error)
	AddPlayerToAuction(auctionID, playerID string, basePrice decimal.Decimal) (model.Lot, error)
	StartLot(lotID string) (model.Lot, error)
	MarkLotSold(lotID, winningTeamID string, finalPrice decimal.Decimal) (model.Lot, error)
	MarkLotUnsold(lotID string) (model.Lot, error)
	LotsByAuction(auctionID string) ([]model.Lot, error)
	GetLot(lotID string) (model.Lot, error)
}

type AuctionHandler struct {
	service AuctionServiceInterface
}

func NewAuctionHandler(service AuctionServiceInterface) *AuctionHandler {
	return &AuctionHandler{service: service}
}

// CreateAuctionHandler handles POST /auctions
func (h *AuctionHandler) CreateAuctionHandler(c *gin.Context) {
	a, err := h.service.CreateAuction()
	if err != nil {
		h.fail(c, "CreateAuctionHandler", err, nil)
		return
	}
	utils.JSONResponse(c, http.StatusCreated, a, "auction created")
	helpers.LogSuccess("CreateAuctionHandler", "auction created", map[string]any{"auction_id": a.AuctionID})
}

// StartAuctionHandler handles POST /auctions/:auction_id/start
func (h *AuctionHandler) StartAuctionHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")
	a, err := h.service.StartAuction(auctionID)
	if err != nil {
		h.fail(c, "StartAuctionHandler", err, map[string]any{"auction_id": auctionID})
		return
	}
	utils.JSONResponse(c, http.StatusOK, a, "auction started")
	helpers.LogSuccess("StartAuctionHandler", "auction started", map[string]any{"auction_id": a.AuctionID})
}

// FinishAuctionHandler handles POST /auctions/:auction_id/finish
func (h *AuctionHandler) FinishAuctionHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")
	a, err := h.service.FinishAuction(auctionID)
	if err != nil {
		h.fail(c, "FinishAuctionHandler", err, map[string]any{"auction_id": auctionID})
		return
	}
	utils.JSONResponse(c, http.StatusOK, a, "auction finished")
	helpers.LogSuccess("FinishAuctionHandler", "auction finished", map[string]any{"auction_id": a.AuctionID})
}

// GetAuctionHandler handles GET /auctions/:auction_id
func (h *AuctionHandler) GetAuctionHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")
	a, err := h.service.GetAuction(auctionID)
	if err != nil {
		h.fail(c, "GetAuctionHandler", err, map[string]any{"auction_id": auctionID})
		return
	}
	utils.JSONResponse(c, http.StatusOK, a, "auction retrieved successfully")
}

// CreateLotHandler handles POST /lots
func (h *AuctionHandler) CreateLotHandler(c *gin.Context) {
	var req helpers.CreateLotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "CreateLotHandler", err)
		return
	}

	lot, err := h.service.AddPlayerToAuction(req.AuctionID, req.PlayerID, decimal.NewFromFloat(req.BasePrice))
	if err != nil {
		h.fail(c, "CreateLotHandler", err, map[string]any{"auction_id": req.AuctionID, "player_id": req.PlayerID})
		return
	}
	utils.JSONResponse(c, http.StatusCreated, helpers.NewLotResponse(lot), "lot created")
	helpers.LogSuccess("CreateLotHandler", "lot created", map[string]any{
		"lot_id":     lot.LotID,
		"auction_id": lot.AuctionID,
		"player_id":  lot.PlayerID,
	})
}

// StartLotHandler handles POST /lots/:lot_id/start
func (h *AuctionHandler) StartLotHandler(c *gin.Context) {
	lotID := c.Param("lot_id")
	lot, err := h.service.StartLot(lotID)
	if err != nil {
		h.fail(c, "StartLotHandler", err, map[string]any{"lot_id": lotID})
		return
	}
	utils.JSONResponse(c, http.StatusOK, helpers.NewLotResponse(lot), "lot started")
	helpers.LogSuccess("StartLotHandler", "lot started", map[string]any{"lot_id": lot.LotID})
}

// MarkSoldHandler handles POST /lots/:lot_id/sold. An empty body sells to
// the lot's current leader at its current price.
func (h *AuctionHandler) MarkSoldHandler(c *gin.Context) {
	lotID := c.Param("lot_id")

	var req helpers.MarkSoldRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			helpers.HandleBindError(c, "MarkSoldHandler", err)
			return
		}
	}

	teamID := req.TeamID
	finalPrice := decimal.NewFromFloat(req.FinalPrice)
	if teamID == "" {
		lot, err := h.service.GetLot(lotID)
		if err != nil {
			h.fail(c, "MarkSoldHandler", err, map[string]any{"lot_id": lotID})
			return
		}
		teamID = lot.LeadingTeamID
		finalPrice = lot.CurrentPrice
	}

	lot, err := h.service.MarkLotSold(lotID, teamID, finalPrice)
	if err != nil {
		h.fail(c, "MarkSoldHandler", err, map[string]any{"lot_id": lotID, "team_id": teamID})
		return
	}

	metrics.LotsSold.Inc()
	utils.JSONResponse(c, http.StatusOK, helpers.NewLotResponse(lot), "lot sold")
	helpers.LogSuccess("MarkSoldHandler", "lot sold", map[string]any{
		"lot_id":      lot.LotID,
		"team_id":     lot.LeadingTeamID,
		"final_price": lot.CurrentPrice.String(),
	})
}

// MarkUnsoldHandler handles POST /lots/:lot_id/unsold
func (h *AuctionHandler) MarkUnsoldHandler(c *gin.Context) {
	lotID := c.Param("lot_id")
	lot, err := h.service.MarkLotUnsold(lotID)
	if err != nil {
		h.fail(c, "MarkUnsoldHandler", err, map[string]any{"lot_id": lotID})
		return
	}

	metrics.LotsUnsold.Inc()
	utils.JSONResponse(c, http.StatusOK, helpers.NewLotResponse(lot), "lot unsold")
	helpers.LogSuccess("MarkUnsoldHandler", "lot unsold", map[string]any{"lot_id": lot.LotID})
}

// GetLotsByAuctionHandler handles GET /auctions/:auction_id/lots
func (h *AuctionHandler) GetLotsByAuctionHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")
	lots, err := h.service.LotsByAuction(auctionID)
	if err != nil {
		h.fail(c, "GetLotsByAuctionHandler", err, map[string]any{"auction_id": auctionID})
		return
	}

	resp := make([]helpers.LotResponse, 0, len(lots))
	for _, lot := range lots {
		resp = append(resp, helpers.NewLotResponse(lot))
	}
	utils.JSONResponse(c, http.StatusOK, resp, "lots retrieved successfully")
}

// GetLotHandler handles GET /lots/:lot_id
func (h *AuctionHandler) GetLotHandler(c *gin.Context) {
	lotID := c.Param("lot_id")
	lot, err := h.service.GetLot(lotID)
	if err != nil {
		h.fail(c, "GetLotHandler", err, map[string]any{"lot_id": lotID})
		return
	}
	utils.JSONResponse(c, http.StatusOK, helpers.NewLotResponse(lot), "lot retrieved successfully")
}

func (h *AuctionHandler) fail(c *gin.Context, handlerName string, err error, ctx map[string]any) {
	status, message := helpers.MapErrorToHTTP(err)
	utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
	if ctx == nil {
		ctx = map[string]any{}
	}
	ctx["error"] = err.Error()
	utils.Warn(handlerName+": request failed", ctx)
}
