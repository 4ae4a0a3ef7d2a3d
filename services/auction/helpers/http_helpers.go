package helpers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"player-auction/internal/auctionerrors"
	model "player-auction/internal/models"
	"player-auction/utils"
)

// HandleBindError sends a standardized JSON error for binding failures
func HandleBindError(c *gin.Context, handlerName string, err error) {
	wrappedErr := fmt.Errorf("invalid request payload: %w", err)
	utils.JSONError(c, http.StatusBadRequest, wrappedErr, "invalid request payload")
	utils.Warn(handlerName+": binding error", map[string]any{"error": err.Error()})
}

// MapErrorToHTTP maps domain/service errors to HTTP status code and message
func MapErrorToHTTP(err error) (int, string) {
	switch {
	case errors.Is(err, auctionerrors.ErrNotFound):
		return http.StatusNotFound, "not found"
	case errors.Is(err, auctionerrors.ErrInvalidInput):
		return http.StatusBadRequest, "invalid input"
	case errors.Is(err, auctionerrors.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid username or password"
	case errors.Is(err, auctionerrors.ErrNameTaken):
		return http.StatusConflict, "already exists"
	case errors.Is(err, auctionerrors.ErrInvalidTransition):
		return http.StatusConflict, "invalid state transition"
	case errors.Is(err, auctionerrors.ErrAuctionNotLive):
		return http.StatusConflict, "auction is not live"
	case errors.Is(err, auctionerrors.ErrLotAlreadyLive):
		return http.StatusConflict, "another lot is already live"
	case errors.Is(err, auctionerrors.ErrLotNotLive):
		return http.StatusConflict, "bidding is not open for this lot"
	case errors.Is(err, auctionerrors.ErrBidTooLow):
		return http.StatusConflict, "bid amount too low"
	case errors.Is(err, auctionerrors.ErrIncrementTooSmall):
		return http.StatusConflict, "bid increment too small"
	case errors.Is(err, auctionerrors.ErrInsufficientFunds):
		return http.StatusConflict, "insufficient purse"
	case errors.Is(err, auctionerrors.ErrContention):
		return http.StatusServiceUnavailable, "lot is busy, try again"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

// RejectionReason labels a bid rejection for the metrics counter.
func RejectionReason(err error) string {
	switch {
	case errors.Is(err, auctionerrors.ErrLotNotLive):
		return "lot_not_live"
	case errors.Is(err, auctionerrors.ErrBidTooLow):
		return "bid_too_low"
	case errors.Is(err, auctionerrors.ErrIncrementTooSmall):
		return "increment_too_small"
	case errors.Is(err, auctionerrors.ErrInsufficientFunds):
		return "insufficient_funds"
	case errors.Is(err, auctionerrors.ErrContention):
		return "contention"
	case errors.Is(err, auctionerrors.ErrNotFound):
		return "not_found"
	default:
		return "other"
	}
}

// NewBidResponse converts a bid record to its wire shape.
func NewBidResponse(bid model.Bid) BidResponse {
	return BidResponse{
		BidID:     bid.BidID,
		LotID:     bid.LotID,
		TeamID:    bid.TeamID,
		Amount:    bid.Amount.String(),
		CreatedAt: bid.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// NewLotResponse converts a lot record to its wire shape.
func NewLotResponse(lot model.Lot) LotResponse {
	return LotResponse{
		LotID:         lot.LotID,
		AuctionID:     lot.AuctionID,
		PlayerID:      lot.PlayerID,
		BasePrice:     lot.BasePrice.String(),
		CurrentPrice:  lot.CurrentPrice.String(),
		Status:        string(lot.Status),
		LeadingTeamID: lot.LeadingTeamID,
	}
}

// LogSuccess is a small helper to standardize logging of successful operations
func LogSuccess(handlerName, message string, ctx map[string]any) {
	utils.Info(handlerName+": "+message, ctx)
}
