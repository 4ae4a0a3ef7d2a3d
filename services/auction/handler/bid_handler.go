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

type BiddingServiceInterface interface {
	PlaceBid(lotID, teamID string, amount decimal.Decimal) (model.Bid, error)
	BidsForLot(lotID string) ([]model.Bid, error)
}

type BidHandler struct {
	service BiddingServiceInterface
}

func NewBidHandler(service BiddingServiceInterface) *BidHandler {
	return &BidHandler{service: service}
}

// PlaceBidHandler handles POST /bids
func (h *BidHandler) PlaceBidHandler(c *gin.Context) {
	var req helpers.PlaceBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "PlaceBidHandler", err)
		return
	}

	bid, err := h.service.PlaceBid(req.LotID, req.TeamID, decimal.NewFromFloat(req.Amount))
	if err != nil {
		metrics.BidsRejected.WithLabelValues(helpers.RejectionReason(err)).Inc()
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("PlaceBidHandler: bid rejected", map[string]any{
			"lot_id":  req.LotID,
			"team_id": req.TeamID,
			"amount":  req.Amount,
			"error":   err.Error(),
		})
		return
	}

	metrics.BidsAccepted.Inc()
	utils.JSONResponse(c, http.StatusCreated, helpers.NewBidResponse(bid), "bid accepted")
	helpers.LogSuccess("PlaceBidHandler", "bid accepted", map[string]any{
		"bid_id":  bid.BidID,
		"lot_id":  bid.LotID,
		"team_id": bid.TeamID,
		"amount":  bid.Amount.String(),
	})
}

// GetBidsByLotHandler handles GET /lots/:lot_id/bids
func (h *BidHandler) GetBidsByLotHandler(c *gin.Context) {
	lotID := c.Param("lot_id")
	bids, err := h.service.BidsForLot(lotID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("GetBidsByLotHandler: error retrieving bids", map[string]any{"lot_id": lotID, "error": err.Error()})
		return
	}

	resp := make([]helpers.BidResponse, 0, len(bids))
	for _, b := range bids {
		resp = append(resp, helpers.NewBidResponse(b))
	}

	utils.JSONResponse(c, http.StatusOK, resp, "bids retrieved successfully")
	helpers.LogSuccess("GetBidsByLotHandler", "bids retrieved successfully", map[string]any{
		"lot_id": lotID,
		"count":  len(resp),
	})
}
