package auction

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"player-auction/internal/auctionerrors"
	"player-auction/internal/locks"
	model "player-auction/internal/models"
	"player-auction/internal/repository"
	"player-auction/utils"
)

// DefaultLockWait bounds how long a lot-start or lot-close waits for its
// exclusion section before failing with ErrContention.
const DefaultLockWait = 250 * time.Millisecond

// Service drives the auction and lot state machines: auctions move
// CREATED -> LIVE -> FINISHED, lots NOT_STARTED -> LIVE -> {SOLD, UNSOLD},
// and at most one lot per auction is LIVE at any instant.
type Service struct {
	repo     repository.Store
	locks    *locks.Table
	lockWait time.Duration
}

// NewService creates an auction service sharing the given lock table with
// the bid sequencer.
func NewService(repo repository.Store, lt *locks.Table) *Service {
	return &Service{repo: repo, locks: lt, lockWait: DefaultLockWait}
}

// SetLockWait overrides the exclusion-section wait bound.
func (s *Service) SetLockWait(wait time.Duration) {
	s.lockWait = wait
}

// CreateAuction creates a new auction in CREATED state.
func (s *Service) CreateAuction() (model.Auction, error) {
	a := model.Auction{
		AuctionID: utils.GenerateID(),
		Status:    model.AuctionCreated,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.CreateAuction(a); err != nil {
		return model.Auction{}, fmt.Errorf("service: failed to create auction: %w", err)
	}
	return a, nil
}

// StartAuction moves a CREATED auction to LIVE.
func (s *Service) StartAuction(auctionID string) (model.Auction, error) {
	return s.transitionAuction(auctionID, (*model.Auction).Start)
}

// FinishAuction moves a LIVE auction to FINISHED. A finished auction
// accepts no further lot operations.
func (s *Service) FinishAuction(auctionID string) (model.Auction, error) {
	return s.transitionAuction(auctionID, (*model.Auction).Finish)
}

func (s *Service) transitionAuction(auctionID string, transition func(*model.Auction) error) (model.Auction, error) {
	if auctionID == "" {
		return model.Auction{}, fmt.Errorf("service: %w - empty auction ID", auctionerrors.ErrInvalidInput)
	}

	a, err := s.repo.GetAuction(auctionID)
	if err != nil {
		return model.Auction{}, fmt.Errorf("service: %w", err)
	}
	if err := transition(&a); err != nil {
		return model.Auction{}, fmt.Errorf("service: auction %s is %s: %w", auctionID, a.Status, err)
	}
	if err := s.repo.UpdateAuction(a); err != nil {
		return model.Auction{}, fmt.Errorf("service: failed to update auction %s: %w", auctionID, err)
	}
	return a, nil
}

// GetAuction returns one auction.
func (s *Service) GetAuction(auctionID string) (model.Auction, error) {
	a, err := s.repo.GetAuction(auctionID)
	if err != nil {
		return model.Auction{}, fmt.Errorf("service: %w", err)
	}
	return a, nil
}

// AddPlayerToAuction schedules a player into an auction as a new lot.
// The lot starts NOT_STARTED with currentPrice = basePrice.
func (s *Service) AddPlayerToAuction(auctionID, playerID string, basePrice decimal.Decimal) (model.Lot, error) {
	if auctionID == "" || playerID == "" {
		return model.Lot{}, fmt.Errorf("service: %w - missing auctionID or playerID", auctionerrors.ErrInvalidInput)
	}
	if !basePrice.IsPositive() {
		return model.Lot{}, fmt.Errorf("service: %w - base price must be greater than zero", auctionerrors.ErrInvalidInput)
	}

	if _, err := s.repo.GetAuction(auctionID); err != nil {
		return model.Lot{}, fmt.Errorf("service: %w", err)
	}
	if _, err := s.repo.GetPlayer(playerID); err != nil {
		return model.Lot{}, fmt.Errorf("service: %w", err)
	}

	lot := model.Lot{
		LotID:        utils.GenerateID(),
		AuctionID:    auctionID,
		PlayerID:     playerID,
		BasePrice:    basePrice,
		CurrentPrice: basePrice,
		Status:       model.LotNotStarted,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.repo.CreateLot(lot); err != nil {
		return model.Lot{}, fmt.Errorf("service: failed to create lot: %w", err)
	}
	return lot, nil
}

// StartLot opens bidding on a lot. The single-LIVE-lot invariant is checked
// against the auction's current lot set inside the auction's exclusion
// section, so two concurrent starts on sibling lots cannot both pass.
func (s *Service) StartLot(lotID string) (model.Lot, error) {
	if lotID == "" {
		return model.Lot{}, fmt.Errorf("service: %w - empty lot ID", auctionerrors.ErrInvalidInput)
	}

	lot, err := s.repo.GetLot(lotID)
	if err != nil {
		return model.Lot{}, fmt.Errorf("service: %w", err)
	}

	key := locks.AuctionKey(lot.AuctionID)
	if !s.locks.Acquire(key, s.lockWait) {
		return model.Lot{}, fmt.Errorf("service: start lot %s: %w", lotID, auctionerrors.ErrContention)
	}
	defer s.locks.Release(key)

	// Re-read inside the section.
	lot, err = s.repo.GetLot(lotID)
	if err != nil {
		return model.Lot{}, fmt.Errorf("service: %w", err)
	}
	if lot.Status != model.LotNotStarted {
		return model.Lot{}, fmt.Errorf("service: lot %s is %s: %w", lotID, lot.Status, auctionerrors.ErrInvalidTransition)
	}

	a, err := s.repo.GetAuction(lot.AuctionID)
	if err != nil {
		return model.Lot{}, fmt.Errorf("service: %w", err)
	}
	if a.Status != model.AuctionLive {
		return model.Lot{}, fmt.Errorf("service: auction %s is %s: %w", a.AuctionID, a.Status, auctionerrors.ErrAuctionNotLive)
	}

	siblings, err := s.repo.LotsByAuction(lot.AuctionID)
	if err != nil {
		return model.Lot{}, fmt.Errorf("service: failed to list lots for auction %s: %w", lot.AuctionID, err)
	}
	for _, sibling := range siblings {
		if sibling.LotID != lotID && sibling.Status == model.LotLive {
			return model.Lot{}, fmt.Errorf("service: lot %s is live: %w", sibling.LotID, auctionerrors.ErrLotAlreadyLive)
		}
	}

	if err := lot.Start(); err != nil {
		return model.Lot{}, fmt.Errorf("service: start lot %s: %w", lotID, err)
	}
	if err := s.repo.UpdateLot(lot); err != nil {
		return model.Lot{}, fmt.Errorf("service: failed to update lot %s: %w", lotID, err)
	}
	return lot, nil
}

// MarkLotSold closes a LIVE lot as SOLD to winningTeamID at finalPrice and
// marks the catalog player SOLD. The team's purse is validated at bid time
// and deliberately not debited here.
func (s *Service) MarkLotSold(lotID, winningTeamID string, finalPrice decimal.Decimal) (model.Lot, error) {
	if lotID == "" || winningTeamID == "" {
		return model.Lot{}, fmt.Errorf("service: %w - missing lotID or teamID", auctionerrors.ErrInvalidInput)
	}
	if !finalPrice.IsPositive() {
		return model.Lot{}, fmt.Errorf("service: %w - non-positive final price", auctionerrors.ErrInvalidInput)
	}
	if _, err := s.repo.GetTeam(winningTeamID); err != nil {
		return model.Lot{}, fmt.Errorf("service: %w", err)
	}

	return s.closeLot(lotID, func(lot *model.Lot) error {
		return lot.MarkSold(winningTeamID, finalPrice)
	}, model.PlayerSold)
}

// MarkLotUnsold closes a LIVE lot as UNSOLD and marks the catalog player
// UNSOLD. There is no automatic trigger; the call is an administrative
// action.
func (s *Service) MarkLotUnsold(lotID string) (model.Lot, error) {
	if lotID == "" {
		return model.Lot{}, fmt.Errorf("service: %w - empty lot ID", auctionerrors.ErrInvalidInput)
	}
	return s.closeLot(lotID, (*model.Lot).MarkUnsold, model.PlayerUnsold)
}

// closeLot runs a terminal lot transition under the lot's exclusion section
// so it cannot interleave with an in-flight bid.
func (s *Service) closeLot(lotID string, transition func(*model.Lot) error, playerStatus model.PlayerStatus) (model.Lot, error) {
	key := locks.LotKey(lotID)
	if !s.locks.Acquire(key, s.lockWait) {
		return model.Lot{}, fmt.Errorf("service: close lot %s: %w", lotID, auctionerrors.ErrContention)
	}
	defer s.locks.Release(key)

	lot, err := s.repo.GetLot(lotID)
	if err != nil {
		return model.Lot{}, fmt.Errorf("service: %w", err)
	}
	if err := transition(&lot); err != nil {
		return model.Lot{}, fmt.Errorf("service: lot %s is %s: %w", lotID, lot.Status, err)
	}
	if err := s.repo.UpdateLot(lot); err != nil {
		return model.Lot{}, fmt.Errorf("service: failed to update lot %s: %w", lotID, err)
	}

	player, err := s.repo.GetPlayer(lot.PlayerID)
	if err != nil {
		return model.Lot{}, fmt.Errorf("service: %w", err)
	}
	player.Status = playerStatus
	if err := s.repo.UpdatePlayer(player); err != nil {
		return model.Lot{}, fmt.Errorf("service: failed to update player %s: %w", player.PlayerID, err)
	}
	return lot, nil
}

// LotsByAuction returns every lot scheduled into an auction.
func (s *Service) LotsByAuction(auctionID string) ([]model.Lot, error) {
	if auctionID == "" {
		return nil, fmt.Errorf("service: %w - empty auction ID", auctionerrors.ErrInvalidInput)
	}
	if _, err := s.repo.GetAuction(auctionID); err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}
	lots, err := s.repo.LotsByAuction(auctionID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list lots for auction %s: %w", auctionID, err)
	}
	return lots, nil
}

// GetLot returns one lot.
func (s *Service) GetLot(lotID string) (model.Lot, error) {
	lot, err := s.repo.GetLot(lotID)
	if err != nil {
		return model.Lot{}, fmt.Errorf("service: %w", err)
	}
	return lot, nil
}
