package bidding

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

// Bid submission defaults: how long one lock acquisition may wait and how
// many times the sequencer retries before surfacing ErrContention.
const (
	DefaultLockWait    = 250 * time.Millisecond
	DefaultLockRetries = 2
)

// Service is the bid sequencer: it makes "read current price -> validate ->
// write new price + append bid" one indivisible operation per lot, so two
// bids racing on the same lot can never both be accepted against the same
// price. Accepted bids on a lot are totally ordered by their passage
// through the lot's exclusion section.
type Service struct {
	repo        repository.Store
	locks       *locks.Table
	rules       Rules
	lockWait    time.Duration
	lockRetries int
}

// NewService creates a bid sequencer over the given store and lock table.
// The lock table must be the same instance the auction service uses, so
// lot closes and bids contend on the same sections.
func NewService(repo repository.Store, lt *locks.Table, rules Rules) *Service {
	return &Service{
		repo:        repo,
		locks:       lt,
		rules:       rules,
		lockWait:    DefaultLockWait,
		lockRetries: DefaultLockRetries,
	}
}

// SetLockBudget overrides the per-acquisition wait and the retry count.
func (s *Service) SetLockBudget(wait time.Duration, retries int) {
	s.lockWait = wait
	s.lockRetries = retries
}

// PlaceBid validates and records one team's bid on a lot. On acceptance the
// bid record and the lot's new price/leader are committed together; on
// rejection nothing changes and the specific rejection error is returned.
func (s *Service) PlaceBid(lotID, teamID string, amount decimal.Decimal) (model.Bid, error) {
	if lotID == "" || teamID == "" {
		return model.Bid{}, fmt.Errorf("service: %w - missing lotID or teamID", auctionerrors.ErrInvalidInput)
	}
	if !amount.IsPositive() {
		return model.Bid{}, fmt.Errorf("service: %w - non-positive bid amount", auctionerrors.ErrInvalidInput)
	}

	key := locks.LotKey(lotID)
	if !s.acquire(key) {
		return model.Bid{}, fmt.Errorf("service: bid on lot %s: %w", lotID, auctionerrors.ErrContention)
	}
	defer s.locks.Release(key)

	// Re-read inside the section: the price the validator sees is the
	// price the write will be applied against.
	lot, err := s.repo.GetLot(lotID)
	if err != nil {
		return model.Bid{}, fmt.Errorf("service: bid on lot %s: %w", lotID, err)
	}

	team, err := s.repo.GetTeam(teamID)
	if err != nil {
		return model.Bid{}, fmt.Errorf("service: bid by team %s: %w", teamID, err)
	}

	if err := ValidateBid(lot, team.Purse, amount, s.rules); err != nil {
		return model.Bid{}, fmt.Errorf("service: bid on lot %s: %w", lotID, err)
	}

	bid := model.Bid{
		BidID:     utils.GenerateID(),
		LotID:     lotID,
		TeamID:    teamID,
		Amount:    amount,
		CreatedAt: time.Now().UTC(),
	}

	if err := lot.ApplyBid(teamID, amount); err != nil {
		return model.Bid{}, fmt.Errorf("service: bid on lot %s: %w", lotID, err)
	}

	if err := s.repo.ApplyBid(bid, lot); err != nil {
		return model.Bid{}, fmt.Errorf("service: failed to record bid on lot %s by team %s: %w", lotID, teamID, err)
	}

	return bid, nil
}

// BidsForLot returns a lot's accepted bids in acceptance order.
func (s *Service) BidsForLot(lotID string) ([]model.Bid, error) {
	if lotID == "" {
		return nil, fmt.Errorf("service: %w - empty lot ID", auctionerrors.ErrInvalidInput)
	}
	if _, err := s.repo.GetLot(lotID); err != nil {
		return nil, fmt.Errorf("service: bids for lot %s: %w", lotID, err)
	}

	bids, err := s.repo.BidsByLot(lotID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to get bids for lot %s: %w", lotID, err)
	}
	return bids, nil
}

func (s *Service) acquire(key string) bool {
	for attempt := 0; attempt <= s.lockRetries; attempt++ {
		if s.locks.Acquire(key, s.lockWait) {
			return true
		}
	}
	return false
}
