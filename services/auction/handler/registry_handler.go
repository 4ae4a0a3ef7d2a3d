package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	model "player-auction/internal/models"
	"player-auction/services/auction/helpers"
	"player-auction/utils"
)

type RegistryServiceInterface interface {
	CreateTeam(name string, purse decimal.Decimal) (model.Team, error)
	ListTeams() ([]model.Team, error)
	CreatePlayer(name string, category model.PlayerCategory, basePrice decimal.Decimal) (model.Player, error)
	ListPlayers() ([]model.Player, error)
}

type RegistryHandler struct {
	service RegistryServiceInterface
}

func NewRegistryHandler(service RegistryServiceInterface) *RegistryHandler {
	return &RegistryHandler{service: service}
}

// CreateTeamHandler handles POST /teams
func (h *RegistryHandler) CreateTeamHandler(c *gin.Context) {
	var req helpers.CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "CreateTeamHandler", err)
		return
	}

	team, err := h.service.CreateTeam(req.Name, decimal.NewFromFloat(req.Purse))
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("CreateTeamHandler: failed to create team", map[string]any{"name": req.Name, "error": err.Error()})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, team, "team created")
	helpers.LogSuccess("CreateTeamHandler", "team created", map[string]any{
		"team_id": team.TeamID,
		"name":    team.Name,
	})
}

// ListTeamsHandler handles GET /teams
func (h *RegistryHandler) ListTeamsHandler(c *gin.Context) {
	teams, err := h.service.ListTeams()
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		return
	}
	if teams == nil {
		teams = []model.Team{}
	}
	utils.JSONResponse(c, http.StatusOK, teams, "teams retrieved successfully")
}

// CreatePlayerHandler handles POST /players
func (h *RegistryHandler) CreatePlayerHandler(c *gin.Context) {
	var req helpers.CreatePlayerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "CreatePlayerHandler", err)
		return
	}

	player, err := h.service.CreatePlayer(req.Name, model.PlayerCategory(req.Category), decimal.NewFromFloat(req.BasePrice))
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("CreatePlayerHandler: failed to create player", map[string]any{"name": req.Name, "error": err.Error()})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, player, "player created")
	helpers.LogSuccess("CreatePlayerHandler", "player created", map[string]any{
		"player_id": player.PlayerID,
		"name":      player.Name,
	})
}

// ListPlayersHandler handles GET /players
func (h *RegistryHandler) ListPlayersHandler(c *gin.Context) {
	players, err := h.service.ListPlayers()
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		return
	}
	if players == nil {
		players = []model.Player{}
	}
	utils.JSONResponse(c, http.StatusOK, players, "players retrieved successfully")
}
