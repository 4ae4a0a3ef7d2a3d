package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	model "player-auction/internal/models"
	"player-auction/services/auction/helpers"
	"player-auction/utils"
)

type AuthServiceInterface interface {
	Register(username, password, email string, role model.Role, teamID string) (model.User, error)
	Login(username, password string) (string, error)
}

type AuthHandler struct {
	service AuthServiceInterface
}

func NewAuthHandler(service AuthServiceInterface) *AuthHandler {
	return &AuthHandler{service: service}
}

// RegisterHandler handles POST /auth/register
func (h *AuthHandler) RegisterHandler(c *gin.Context) {
	var req helpers.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "RegisterHandler", err)
		return
	}

	user, err := h.service.Register(req.Username, req.Password, req.Email, model.Role(req.Role), req.TeamID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("RegisterHandler: registration failed", map[string]any{"username": req.Username, "error": err.Error()})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, user, "user registered")
	helpers.LogSuccess("RegisterHandler", "user registered", map[string]any{
		"user_id":  user.UserID,
		"username": user.Username,
		"role":     string(user.Role),
	})
}

// LoginHandler handles POST /auth/login
func (h *AuthHandler) LoginHandler(c *gin.Context) {
	var req helpers.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "LoginHandler", err)
		return
	}

	token, err := h.service.Login(req.Username, req.Password)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("LoginHandler: login failed", map[string]any{"username": req.Username})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.TokenResponse{Token: token}, "login successful")
	helpers.LogSuccess("LoginHandler", "login successful", map[string]any{"username": req.Username})
}

// MeHandler handles GET /auth/me; the auth middleware resolves the user.
func (h *AuthHandler) MeHandler(c *gin.Context) {
	value, ok := c.Get("currentUser")
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, fmt.Errorf("not authenticated"), "not authenticated")
		return
	}
	user := value.(model.User)
	utils.JSONResponse(c, http.StatusOK, user, "user retrieved successfully")
}
