package integrationtests

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"player-auction/internal/auction"
	"player-auction/internal/auth"
	"player-auction/internal/bidding"
	"player-auction/internal/locks"
	"player-auction/internal/registry"
	"player-auction/internal/repository"
	"player-auction/internal/server"
	"player-auction/services/auction/helpers"
)

// SetupTestRouter wires the full HTTP surface against an in-memory store.
func SetupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	repo := repository.NewMemoryRepo()
	lockTable := locks.NewTable()

	tokens := auth.NewTokenProvider("integration-test-secret", time.Hour)
	authService := auth.NewService(repo, tokens)
	auctionService := auction.NewService(repo, lockTable)
	biddingService := bidding.NewService(repo, lockTable, bidding.DefaultRules())
	registryService := registry.NewService(repo)

	return server.SetupRouter(authService, auctionService, biddingService, registryService)
}

// ExecuteRequest executes an HTTP request with an optional bearer token and
// parses the JSON envelope.
func ExecuteRequest(t *testing.T, router *gin.Engine, method, url, token string, body any) (map[string]any, *httptest.ResponseRecorder) {
	t.Helper()

	var reqBody []byte
	var err error

	switch v := body.(type) {
	case nil:
	case []byte:
		reqBody = v
	default:
		reqBody, err = json.Marshal(v)
		require.NoError(t, err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, url, bytes.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	router.ServeHTTP(w, req)

	var resp map[string]any
	if len(w.Body.Bytes()) > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	}
	return resp, w
}

// data unwraps the envelope's data object.
func data(t *testing.T, resp map[string]any) map[string]any {
	t.Helper()
	d, ok := resp["data"].(map[string]any)
	require.True(t, ok, "response has no data object: %v", resp)
	return d
}

// registerAndLogin creates an account and returns its bearer token.
func registerAndLogin(t *testing.T, router *gin.Engine, username, role, teamID string) string {
	t.Helper()

	_, w := ExecuteRequest(t, router, http.MethodPost, "/auth/register", "", helpers.RegisterRequest{
		Username: username,
		Password: "pass-" + username,
		Email:    username + "@example.com",
		Role:     role,
		TeamID:   teamID,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	resp, w := ExecuteRequest(t, router, http.MethodPost, "/auth/login", "", helpers.LoginRequest{
		Username: username,
		Password: "pass-" + username,
	})
	require.Equal(t, http.StatusOK, w.Code)

	token := data(t, resp)["token"].(string)
	require.NotEmpty(t, token)
	return token
}

// createTeam registers a team through the admin API and returns its ID.
func createTeam(t *testing.T, router *gin.Engine, adminToken, name string, purse float64) string {
	t.Helper()

	resp, w := ExecuteRequest(t, router, http.MethodPost, "/teams", adminToken, helpers.CreateTeamRequest{
		Name:  name,
		Purse: purse,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	return data(t, resp)["team_id"].(string)
}

// createPlayer registers a catalog player and returns its ID.
func createPlayer(t *testing.T, router *gin.Engine, adminToken, name, category string, basePrice float64) string {
	t.Helper()

	resp, w := ExecuteRequest(t, router, http.MethodPost, "/players", adminToken, helpers.CreatePlayerRequest{
		Name:      name,
		Category:  category,
		BasePrice: basePrice,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	return data(t, resp)["player_id"].(string)
}
