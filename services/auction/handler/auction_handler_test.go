package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"player-auction/internal/auctionerrors"
	model "player-auction/internal/models"
	"player-auction/services/auction/helpers"
)

func newAuctionRouter(t *testing.T) (*MockAuctionServiceInterface, *gin.Engine) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockService := NewMockAuctionServiceInterface(ctrl)
	handler := NewAuctionHandler(mockService)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/auctions", handler.CreateAuctionHandler)
	router.POST("/auctions/:auction_id/start", handler.StartAuctionHandler)
	router.POST("/auctions/:auction_id/finish", handler.FinishAuctionHandler)
	router.GET("/auctions/:auction_id", handler.GetAuctionHandler)
	router.GET("/auctions/:auction_id/lots", handler.GetLotsByAuctionHandler)
	router.POST("/lots", handler.CreateLotHandler)
	router.POST("/lots/:lot_id/start", handler.StartLotHandler)
	router.POST("/lots/:lot_id/sold", handler.MarkSoldHandler)
	router.POST("/lots/:lot_id/unsold", handler.MarkUnsoldHandler)
	router.GET("/lots/:lot_id", handler.GetLotHandler)

	return mockService, router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w, resp
}

func TestAuctionLifecycleHandlers(t *testing.T) {
	mockService, router := newAuctionRouter(t)

	created := model.Auction{AuctionID: "a1", Status: model.AuctionCreated}
	mockService.EXPECT().CreateAuction().Return(created, nil)

	w, resp := doJSON(t, router, http.MethodPost, "/auctions", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	require.Contains(t, resp["message"], "auction created")

	live := created
	live.Status = model.AuctionLive
	mockService.EXPECT().StartAuction("a1").Return(live, nil)

	w, resp = doJSON(t, router, http.MethodPost, "/auctions/a1/start", nil)
	require.Equal(t, http.StatusOK, w.Code)
	data := resp["data"].(map[string]any)
	require.Equal(t, "LIVE", data["status"])

	mockService.EXPECT().StartAuction("a1").Return(model.Auction{}, auctionerrors.ErrInvalidTransition)

	w, resp = doJSON(t, router, http.MethodPost, "/auctions/a1/start", nil)
	require.Equal(t, http.StatusConflict, w.Code)
	require.Contains(t, resp["message"], "invalid state transition")

	mockService.EXPECT().FinishAuction("a1").Return(model.Auction{AuctionID: "a1", Status: model.AuctionFinished}, nil)

	w, _ = doJSON(t, router, http.MethodPost, "/auctions/a1/finish", nil)
	require.Equal(t, http.StatusOK, w.Code)

	mockService.EXPECT().GetAuction("ghost").Return(model.Auction{}, auctionerrors.ErrNotFound)

	w, resp = doJSON(t, router, http.MethodGet, "/auctions/ghost", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Contains(t, resp["message"], "not found")
}

func TestCreateLotHandler(t *testing.T) {
	mockService, router := newAuctionRouter(t)

	lot := model.Lot{
		LotID:        "l1",
		AuctionID:    "a1",
		PlayerID:     "p1",
		BasePrice:    decimal.NewFromFloat(2.0),
		CurrentPrice: decimal.NewFromFloat(2.0),
		Status:       model.LotNotStarted,
	}
	mockService.EXPECT().
		AddPlayerToAuction("a1", "p1", decimal.NewFromFloat(2.0)).
		Return(lot, nil)

	w, resp := doJSON(t, router, http.MethodPost, "/lots", helpers.CreateLotRequest{
		AuctionID: "a1",
		PlayerID:  "p1",
		BasePrice: 2.0,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	data := resp["data"].(map[string]any)
	require.Equal(t, "l1", data["lot_id"])
	require.Equal(t, "NOT_STARTED", data["status"])
	require.Equal(t, "2", data["base_price"])

	// Missing fields never reach the service.
	w, resp = doJSON(t, router, http.MethodPost, "/lots", helpers.CreateLotRequest{PlayerID: "p1", BasePrice: 2.0})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, resp["message"], "invalid request payload")
}

func TestStartLotHandler(t *testing.T) {
	mockService, router := newAuctionRouter(t)

	mockService.EXPECT().StartLot("l1").Return(model.Lot{
		LotID:        "l1",
		AuctionID:    "a1",
		BasePrice:    decimal.NewFromFloat(2.0),
		CurrentPrice: decimal.NewFromFloat(2.0),
		Status:       model.LotLive,
	}, nil)

	w, resp := doJSON(t, router, http.MethodPost, "/lots/l1/start", nil)
	require.Equal(t, http.StatusOK, w.Code)
	data := resp["data"].(map[string]any)
	require.Equal(t, "LIVE", data["status"])

	mockService.EXPECT().StartLot("l2").Return(model.Lot{}, auctionerrors.ErrLotAlreadyLive)

	w, resp = doJSON(t, router, http.MethodPost, "/lots/l2/start", nil)
	require.Equal(t, http.StatusConflict, w.Code)
	require.Contains(t, resp["message"], "another lot is already live")

	mockService.EXPECT().StartLot("l3").Return(model.Lot{}, auctionerrors.ErrAuctionNotLive)

	w, resp = doJSON(t, router, http.MethodPost, "/lots/l3/start", nil)
	require.Equal(t, http.StatusConflict, w.Code)
	require.Contains(t, resp["message"], "auction is not live")
}

func TestMarkSoldHandler(t *testing.T) {
	mockService, router := newAuctionRouter(t)

	soldLot := model.Lot{
		LotID:         "l1",
		AuctionID:     "a1",
		PlayerID:      "p1",
		BasePrice:     decimal.NewFromFloat(2.0),
		CurrentPrice:  decimal.NewFromFloat(3.4),
		Status:        model.LotSold,
		LeadingTeamID: "team1",
	}

	t.Run("explicit team and price", func(t *testing.T) {
		mockService.EXPECT().
			MarkLotSold("l1", "team1", decimal.NewFromFloat(3.4)).
			Return(soldLot, nil)

		w, resp := doJSON(t, router, http.MethodPost, "/lots/l1/sold", helpers.MarkSoldRequest{
			TeamID:     "team1",
			FinalPrice: 3.4,
		})
		require.Equal(t, http.StatusOK, w.Code)
		data := resp["data"].(map[string]any)
		require.Equal(t, "SOLD", data["status"])
		require.Equal(t, "team1", data["leading_team_id"])
		require.Equal(t, "3.4", data["current_price"])
	})

	t.Run("empty body defaults to current leader", func(t *testing.T) {
		liveLot := soldLot
		liveLot.Status = model.LotLive
		mockService.EXPECT().GetLot("l1").Return(liveLot, nil)
		mockService.EXPECT().
			MarkLotSold("l1", "team1", liveLot.CurrentPrice).
			Return(soldLot, nil)

		w, _ := doJSON(t, router, http.MethodPost, "/lots/l1/sold", nil)
		require.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("not live", func(t *testing.T) {
		mockService.EXPECT().
			MarkLotSold("l2", "team1", decimal.NewFromFloat(3.4)).
			Return(model.Lot{}, auctionerrors.ErrInvalidTransition)

		w, resp := doJSON(t, router, http.MethodPost, "/lots/l2/sold", helpers.MarkSoldRequest{
			TeamID:     "team1",
			FinalPrice: 3.4,
		})
		require.Equal(t, http.StatusConflict, w.Code)
		require.Contains(t, resp["message"], "invalid state transition")
	})
}

func TestMarkUnsoldHandler(t *testing.T) {
	mockService, router := newAuctionRouter(t)

	mockService.EXPECT().MarkLotUnsold("l1").Return(model.Lot{
		LotID:        "l1",
		AuctionID:    "a1",
		BasePrice:    decimal.NewFromFloat(2.0),
		CurrentPrice: decimal.NewFromFloat(2.0),
		Status:       model.LotUnsold,
	}, nil)

	w, resp := doJSON(t, router, http.MethodPost, "/lots/l1/unsold", nil)
	require.Equal(t, http.StatusOK, w.Code)
	data := resp["data"].(map[string]any)
	require.Equal(t, "UNSOLD", data["status"])

	mockService.EXPECT().MarkLotUnsold("ghost").Return(model.Lot{}, auctionerrors.ErrNotFound)

	w, _ = doJSON(t, router, http.MethodPost, "/lots/ghost/unsold", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetLotsByAuctionHandler(t *testing.T) {
	mockService, router := newAuctionRouter(t)

	mockService.EXPECT().LotsByAuction("a1").Return([]model.Lot{
		{LotID: "l1", AuctionID: "a1", BasePrice: decimal.NewFromFloat(2.0), CurrentPrice: decimal.NewFromFloat(2.0), Status: model.LotNotStarted},
		{LotID: "l2", AuctionID: "a1", BasePrice: decimal.NewFromFloat(3.0), CurrentPrice: decimal.NewFromFloat(4.5), Status: model.LotLive},
	}, nil)

	w, resp := doJSON(t, router, http.MethodGet, "/auctions/a1/lots", nil)
	require.Equal(t, http.StatusOK, w.Code)
	data := resp["data"].([]any)
	require.Len(t, data, 2)

	mockService.EXPECT().LotsByAuction("a1").Return(nil, errors.New("database failure"))

	w, resp = doJSON(t, router, http.MethodGet, "/auctions/a1/lots", nil)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.Contains(t, resp["message"], "internal server error")
}
