package integrationtests

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"player-auction/services/auction/helpers"
)

func TestAuthFlow(t *testing.T) {
	router := SetupTestRouter()

	// Protected routes reject anonymous callers.
	_, w := ExecuteRequest(t, router, http.MethodGet, "/teams", "", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	_, w = ExecuteRequest(t, router, http.MethodGet, "/auth/me", "garbage-token", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	adminToken := registerAndLogin(t, router, "admin", "ADMIN", "")

	resp, w := ExecuteRequest(t, router, http.MethodGet, "/auth/me", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	me := data(t, resp)
	require.Equal(t, "admin", me["username"])
	require.Equal(t, "ADMIN", me["role"])
	require.NotContains(t, me, "password", "password hash must never leave the server")

	// Wrong credentials.
	_, w = ExecuteRequest(t, router, http.MethodPost, "/auth/login", "", helpers.LoginRequest{
		Username: "admin",
		Password: "wrong",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)

	// Duplicate username.
	_, w = ExecuteRequest(t, router, http.MethodPost, "/auth/register", "", helpers.RegisterRequest{
		Username: "admin",
		Password: "other",
		Email:    "other@example.com",
		Role:     "ADMIN",
	})
	require.Equal(t, http.StatusConflict, w.Code)
}

func TestRoleEnforcement(t *testing.T) {
	router := SetupTestRouter()

	adminToken := registerAndLogin(t, router, "admin", "ADMIN", "")
	teamID := createTeam(t, router, adminToken, "Chennai", 100)
	bidderToken := registerAndLogin(t, router, "bidder", "TEAM_USER", teamID)

	// Team users cannot reach admin operations.
	_, w := ExecuteRequest(t, router, http.MethodPost, "/auctions", bidderToken, nil)
	require.Equal(t, http.StatusForbidden, w.Code)

	_, w = ExecuteRequest(t, router, http.MethodPost, "/teams", bidderToken, helpers.CreateTeamRequest{Name: "Mumbai", Purse: 100})
	require.Equal(t, http.StatusForbidden, w.Code)

	// Admins cannot bid.
	_, w = ExecuteRequest(t, router, http.MethodPost, "/bids", adminToken, helpers.PlaceBidRequest{
		LotID:  "any",
		TeamID: teamID,
		Amount: 2.2,
	})
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestFullAuctionFlow(t *testing.T) {
	router := SetupTestRouter()

	adminToken := registerAndLogin(t, router, "admin", "ADMIN", "")

	chennaiID := createTeam(t, router, adminToken, "Chennai", 100)
	mumbaiID := createTeam(t, router, adminToken, "Mumbai", 2.5)

	chennaiToken := registerAndLogin(t, router, "chennai_user", "TEAM_USER", chennaiID)
	mumbaiToken := registerAndLogin(t, router, "mumbai_user", "TEAM_USER", mumbaiID)

	playerID := createPlayer(t, router, adminToken, "R Sharma", "BATSMAN", 2.0)

	// Create the auction and schedule the player.
	resp, w := ExecuteRequest(t, router, http.MethodPost, "/auctions", adminToken, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	auctionID := data(t, resp)["auction_id"].(string)

	resp, w = ExecuteRequest(t, router, http.MethodPost, "/lots", adminToken, helpers.CreateLotRequest{
		AuctionID: auctionID,
		PlayerID:  playerID,
		BasePrice: 2.0,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	lotID := data(t, resp)["lot_id"].(string)

	// Bidding before the lot opens is rejected.
	_, w = ExecuteRequest(t, router, http.MethodPost, "/bids", chennaiToken, helpers.PlaceBidRequest{
		LotID: lotID, TeamID: chennaiID, Amount: 2.2,
	})
	require.Equal(t, http.StatusConflict, w.Code)

	// The lot cannot open while the auction is still CREATED.
	_, w = ExecuteRequest(t, router, http.MethodPost, "/lots/"+lotID+"/start", adminToken, nil)
	require.Equal(t, http.StatusConflict, w.Code)

	_, w = ExecuteRequest(t, router, http.MethodPost, "/auctions/"+auctionID+"/start", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	resp, w = ExecuteRequest(t, router, http.MethodPost, "/lots/"+lotID+"/start", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "LIVE", data(t, resp)["status"])

	// Below the 0.2 increment tier.
	_, w = ExecuteRequest(t, router, http.MethodPost, "/bids", chennaiToken, helpers.PlaceBidRequest{
		LotID: lotID, TeamID: chennaiID, Amount: 2.1,
	})
	require.Equal(t, http.StatusConflict, w.Code)

	// Exact minimum increment.
	resp, w = ExecuteRequest(t, router, http.MethodPost, "/bids", chennaiToken, helpers.PlaceBidRequest{
		LotID: lotID, TeamID: chennaiID, Amount: 2.2,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	require.Equal(t, "2.2", data(t, resp)["amount"])

	// A bigger jump is fine.
	resp, w = ExecuteRequest(t, router, http.MethodPost, "/bids", mumbaiToken, helpers.PlaceBidRequest{
		LotID: lotID, TeamID: mumbaiID, Amount: 2.6,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	// Mumbai's purse is 2.5; it cannot afford 2.9 and its own 2.6 already
	// leads, so Chennai raises instead.
	_, w = ExecuteRequest(t, router, http.MethodPost, "/bids", mumbaiToken, helpers.PlaceBidRequest{
		LotID: lotID, TeamID: mumbaiID, Amount: 2.9,
	})
	require.Equal(t, http.StatusConflict, w.Code)

	resp, w = ExecuteRequest(t, router, http.MethodPost, "/bids", chennaiToken, helpers.PlaceBidRequest{
		LotID: lotID, TeamID: chennaiID, Amount: 3.0,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	// Lot state reflects the accepted sequence.
	resp, w = ExecuteRequest(t, router, http.MethodGet, "/lots/"+lotID, chennaiToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	lot := data(t, resp)
	require.Equal(t, "3", lot["current_price"])
	require.Equal(t, chennaiID, lot["leading_team_id"])

	resp, w = ExecuteRequest(t, router, http.MethodGet, "/lots/"+lotID+"/bids", chennaiToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	bids := resp["data"].([]any)
	require.Len(t, bids, 3)

	// Close the lot to its leader; defaults come from the lot itself.
	resp, w = ExecuteRequest(t, router, http.MethodPost, "/lots/"+lotID+"/sold", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	sold := data(t, resp)
	require.Equal(t, "SOLD", sold["status"])
	require.Equal(t, chennaiID, sold["leading_team_id"])
	require.Equal(t, "3", sold["current_price"])

	// No further bids on a closed lot.
	_, w = ExecuteRequest(t, router, http.MethodPost, "/bids", chennaiToken, helpers.PlaceBidRequest{
		LotID: lotID, TeamID: chennaiID, Amount: 3.5,
	})
	require.Equal(t, http.StatusConflict, w.Code)

	// Purse is validated, never debited.
	resp, w = ExecuteRequest(t, router, http.MethodGet, "/teams", chennaiToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	for _, raw := range resp["data"].([]any) {
		team := raw.(map[string]any)
		if team["team_id"] == chennaiID {
			require.Equal(t, "100", team["purse"])
		}
	}

	_, w = ExecuteRequest(t, router, http.MethodPost, "/auctions/"+auctionID+"/finish", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestSingleLiveLotPerAuction(t *testing.T) {
	router := SetupTestRouter()

	adminToken := registerAndLogin(t, router, "admin", "ADMIN", "")

	firstPlayer := createPlayer(t, router, adminToken, "Player One", "BOWLER", 2.0)
	secondPlayer := createPlayer(t, router, adminToken, "Player Two", "ALL_ROUNDER", 3.0)

	resp, w := ExecuteRequest(t, router, http.MethodPost, "/auctions", adminToken, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	auctionID := data(t, resp)["auction_id"].(string)

	_, w = ExecuteRequest(t, router, http.MethodPost, "/auctions/"+auctionID+"/start", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	resp, _ = ExecuteRequest(t, router, http.MethodPost, "/lots", adminToken, helpers.CreateLotRequest{
		AuctionID: auctionID, PlayerID: firstPlayer, BasePrice: 2.0,
	})
	firstLot := data(t, resp)["lot_id"].(string)

	resp, _ = ExecuteRequest(t, router, http.MethodPost, "/lots", adminToken, helpers.CreateLotRequest{
		AuctionID: auctionID, PlayerID: secondPlayer, BasePrice: 3.0,
	})
	secondLot := data(t, resp)["lot_id"].(string)

	_, w = ExecuteRequest(t, router, http.MethodPost, "/lots/"+firstLot+"/start", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// The sibling must wait for the live lot to close.
	_, w = ExecuteRequest(t, router, http.MethodPost, "/lots/"+secondLot+"/start", adminToken, nil)
	require.Equal(t, http.StatusConflict, w.Code)

	resp, w = ExecuteRequest(t, router, http.MethodPost, "/lots/"+firstLot+"/unsold", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "UNSOLD", data(t, resp)["status"])

	_, w = ExecuteRequest(t, router, http.MethodPost, "/lots/"+secondLot+"/start", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
}
