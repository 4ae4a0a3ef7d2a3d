package registry

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"player-auction/internal/auctionerrors"
	model "player-auction/internal/models"
	"player-auction/internal/repository"
	"player-auction/utils"
)

// DefaultMaxSquadSize is the squad cap assigned to every new team.
const DefaultMaxSquadSize = 25

// Service owns the administrative catalog: teams and players. It is glue
// around the store; the bidding core only reads what it creates.
type Service struct {
	repo repository.Store
}

// NewService creates a registry service instance.
func NewService(repo repository.Store) *Service {
	return &Service{repo: repo}
}

// CreateTeam registers a bidding party. Names are trimmed and unique; the
// purse must be positive.
func (s *Service) CreateTeam(name string, purse decimal.Decimal) (model.Team, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Team{}, fmt.Errorf("service: %w - team name must not be empty", auctionerrors.ErrInvalidInput)
	}
	if !purse.IsPositive() {
		return model.Team{}, fmt.Errorf("service: %w - purse must be greater than zero", auctionerrors.ErrInvalidInput)
	}

	if _, err := s.repo.GetTeamByName(name); err == nil {
		return model.Team{}, fmt.Errorf("service: team %q: %w", name, auctionerrors.ErrNameTaken)
	} else if !errors.Is(err, auctionerrors.ErrNotFound) {
		return model.Team{}, fmt.Errorf("service: failed to check team name: %w", err)
	}

	team := model.Team{
		TeamID:       utils.GenerateID(),
		Name:         name,
		Purse:        purse,
		MaxSquadSize: DefaultMaxSquadSize,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.repo.CreateTeam(team); err != nil {
		return model.Team{}, fmt.Errorf("service: failed to create team %q: %w", name, err)
	}
	return team, nil
}

// ListTeams returns all registered teams.
func (s *Service) ListTeams() ([]model.Team, error) {
	teams, err := s.repo.ListTeams()
	if err != nil {
		return nil, fmt.Errorf("service: failed to list teams: %w", err)
	}
	return teams, nil
}

// GetTeam returns one team.
func (s *Service) GetTeam(teamID string) (model.Team, error) {
	team, err := s.repo.GetTeam(teamID)
	if err != nil {
		return model.Team{}, fmt.Errorf("service: %w", err)
	}
	return team, nil
}

// CreatePlayer adds a player to the catalog in AVAILABLE state.
func (s *Service) CreatePlayer(name string, category model.PlayerCategory, basePrice decimal.Decimal) (model.Player, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Player{}, fmt.Errorf("service: %w - player name must not be empty", auctionerrors.ErrInvalidInput)
	}
	if !validCategory(category) {
		return model.Player{}, fmt.Errorf("service: %w - unknown player category %q", auctionerrors.ErrInvalidInput, category)
	}
	if !basePrice.IsPositive() {
		return model.Player{}, fmt.Errorf("service: %w - base price must be greater than zero", auctionerrors.ErrInvalidInput)
	}

	player := model.Player{
		PlayerID:  utils.GenerateID(),
		Name:      name,
		Category:  category,
		BasePrice: basePrice,
		Status:    model.PlayerAvailable,
	}
	if err := s.repo.CreatePlayer(player); err != nil {
		return model.Player{}, fmt.Errorf("service: failed to create player %q: %w", name, err)
	}
	return player, nil
}

// ListPlayers returns the full player catalog.
func (s *Service) ListPlayers() ([]model.Player, error) {
	players, err := s.repo.ListPlayers()
	if err != nil {
		return nil, fmt.Errorf("service: failed to list players: %w", err)
	}
	return players, nil
}

func validCategory(c model.PlayerCategory) bool {
	switch c {
	case model.CategoryBatsman, model.CategoryBowler, model.CategoryAllRounder, model.CategoryWicketKeeper:
		return true
	}
	return false
}
