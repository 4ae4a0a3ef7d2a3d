package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"player-auction/internal/auctionerrors"
	model "player-auction/internal/models"
	"player-auction/internal/repository"
	"player-auction/utils"
)

// Service handles account registration, login and token-to-user resolution.
// Passwords are stored as bcrypt hashes only.
type Service struct {
	repo   repository.Store
	tokens *TokenProvider
}

// NewService creates an auth service instance.
func NewService(repo repository.Store, tokens *TokenProvider) *Service {
	return &Service{repo: repo, tokens: tokens}
}

// Register creates a user account. Usernames and emails are unique; a
// TEAM_USER must reference an existing team, admins carry none.
func (s *Service) Register(username, password, email string, role model.Role, teamID string) (model.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || password == "" || email == "" {
		return model.User{}, fmt.Errorf("service: %w - missing username, password or email", auctionerrors.ErrInvalidInput)
	}
	if role != model.RoleAdmin && role != model.RoleTeamUser {
		return model.User{}, fmt.Errorf("service: %w - unknown role %q", auctionerrors.ErrInvalidInput, role)
	}

	if _, err := s.repo.GetUserByUsername(username); err == nil {
		return model.User{}, fmt.Errorf("service: username %q: %w", username, auctionerrors.ErrNameTaken)
	} else if !errors.Is(err, auctionerrors.ErrNotFound) {
		return model.User{}, fmt.Errorf("service: failed to check username: %w", err)
	}
	if _, err := s.repo.GetUserByEmail(email); err == nil {
		return model.User{}, fmt.Errorf("service: email %q: %w", email, auctionerrors.ErrNameTaken)
	} else if !errors.Is(err, auctionerrors.ErrNotFound) {
		return model.User{}, fmt.Errorf("service: failed to check email: %w", err)
	}

	if role == model.RoleTeamUser {
		if teamID == "" {
			return model.User{}, fmt.Errorf("service: %w - team is required for TEAM_USER role", auctionerrors.ErrInvalidInput)
		}
		if _, err := s.repo.GetTeam(teamID); err != nil {
			return model.User{}, fmt.Errorf("service: %w", err)
		}
	} else {
		teamID = ""
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return model.User{}, fmt.Errorf("service: failed to hash password: %w", err)
	}

	user := model.User{
		UserID:    utils.GenerateID(),
		Username:  username,
		Password:  string(hashed),
		Email:     email,
		Role:      role,
		TeamID:    teamID,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.CreateUser(user); err != nil {
		return model.User{}, fmt.Errorf("service: failed to create user %q: %w", username, err)
	}
	return user, nil
}

// Login checks credentials and returns a signed bearer token. The error is
// the same whether the username or the password was wrong.
func (s *Service) Login(username, password string) (string, error) {
	user, err := s.repo.GetUserByUsername(username)
	if err != nil {
		return "", fmt.Errorf("service: %w", auctionerrors.ErrInvalidCredentials)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", fmt.Errorf("service: %w", auctionerrors.ErrInvalidCredentials)
	}

	token, err := s.tokens.Generate(user)
	if err != nil {
		return "", fmt.Errorf("service: failed to issue token: %w", err)
	}
	return token, nil
}

// UserFromToken resolves a bearer token to its account.
func (s *Service) UserFromToken(tokenString string) (model.User, error) {
	claims, err := s.tokens.Parse(tokenString)
	if err != nil {
		return model.User{}, fmt.Errorf("service: %w: %v", auctionerrors.ErrInvalidCredentials, err)
	}
	user, err := s.repo.GetUserByUsername(claims.Username)
	if err != nil {
		return model.User{}, fmt.Errorf("service: %w", auctionerrors.ErrInvalidCredentials)
	}
	return user, nil
}
