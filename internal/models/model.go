package models

import (
	"time"

	"github.com/shopspring/decimal"

	"player-auction/internal/auctionerrors"
)

// AuctionStatus is the lifecycle state of an auction session.
// Transitions only move forward: CREATED -> LIVE -> FINISHED.
type AuctionStatus string

const (
	AuctionCreated  AuctionStatus = "CREATED"
	AuctionLive     AuctionStatus = "LIVE"
	AuctionFinished AuctionStatus = "FINISHED"
)

// LotStatus is the lifecycle state of a lot. SOLD and UNSOLD are terminal.
type LotStatus string

const (
	LotNotStarted LotStatus = "NOT_STARTED"
	LotLive       LotStatus = "LIVE"
	LotSold       LotStatus = "SOLD"
	LotUnsold     LotStatus = "UNSOLD"
)

// PlayerStatus is the catalog-level state of a player, independent of
// any single auction.
type PlayerStatus string

const (
	PlayerAvailable PlayerStatus = "AVAILABLE"
	PlayerSold      PlayerStatus = "SOLD"
	PlayerUnsold    PlayerStatus = "UNSOLD"
)

// PlayerCategory classifies a player in the catalog.
type PlayerCategory string

const (
	CategoryBatsman      PlayerCategory = "BATSMAN"
	CategoryBowler       PlayerCategory = "BOWLER"
	CategoryAllRounder   PlayerCategory = "ALL_ROUNDER"
	CategoryWicketKeeper PlayerCategory = "WICKET_KEEPER"
)

// Role controls what a user account may do over the HTTP surface.
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleTeamUser Role = "TEAM_USER"
)

// Auction is one bidding session during which lots are sold one at a time.
type Auction struct {
	AuctionID string        `json:"auction_id"`
	Status    AuctionStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
}

// Start moves a CREATED auction to LIVE.
func (a *Auction) Start() error {
	if a.Status != AuctionCreated {
		return auctionerrors.ErrInvalidTransition
	}
	a.Status = AuctionLive
	return nil
}

// Finish moves a LIVE auction to FINISHED. A finished auction accepts no
// further lot operations.
func (a *Auction) Finish() error {
	if a.Status != AuctionLive {
		return auctionerrors.ErrInvalidTransition
	}
	a.Status = AuctionFinished
	return nil
}

// Player is a catalog record; lots reference it per auction.
type Player struct {
	PlayerID  string          `json:"player_id"`
	Name      string          `json:"name"`
	Category  PlayerCategory  `json:"category"`
	BasePrice decimal.Decimal `json:"base_price"`
	Status    PlayerStatus    `json:"status"`
}

// Team is a bidding party. Purse is the nominal funds balance; bids are
// validated against it but it is never debited when a lot is won.
type Team struct {
	TeamID       string          `json:"team_id"`
	Name         string          `json:"name"`
	Purse        decimal.Decimal `json:"purse"`
	MaxSquadSize int             `json:"max_squad_size"`
	CreatedAt    time.Time       `json:"created_at"`
}

// Lot is an auction-scoped instance of a player. CurrentPrice starts at
// BasePrice and only moves up, and only while the lot is LIVE.
type Lot struct {
	LotID         string          `json:"lot_id"`
	AuctionID     string          `json:"auction_id"`
	PlayerID      string          `json:"player_id"`
	BasePrice     decimal.Decimal `json:"base_price"`
	CurrentPrice  decimal.Decimal `json:"current_price"`
	Status        LotStatus       `json:"status"`
	LeadingTeamID string          `json:"leading_team_id,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// Start moves a NOT_STARTED lot to LIVE. The caller is responsible for the
// auction-level checks (owning auction LIVE, no sibling lot LIVE).
func (l *Lot) Start() error {
	if l.Status != LotNotStarted {
		return auctionerrors.ErrInvalidTransition
	}
	l.Status = LotLive
	return nil
}

// ApplyBid records an accepted bid: new current price and leading team.
// The amount must already have passed validation against the same price
// this lot currently holds.
func (l *Lot) ApplyBid(teamID string, amount decimal.Decimal) error {
	if l.Status != LotLive {
		return auctionerrors.ErrLotNotLive
	}
	l.CurrentPrice = amount
	l.LeadingTeamID = teamID
	return nil
}

// MarkSold closes a LIVE lot as SOLD to the winning team at the final price.
func (l *Lot) MarkSold(winningTeamID string, finalPrice decimal.Decimal) error {
	if l.Status != LotLive {
		return auctionerrors.ErrInvalidTransition
	}
	l.LeadingTeamID = winningTeamID
	l.CurrentPrice = finalPrice
	l.Status = LotSold
	return nil
}

// MarkUnsold closes a LIVE lot as UNSOLD.
func (l *Lot) MarkUnsold() error {
	if l.Status != LotLive {
		return auctionerrors.ErrInvalidTransition
	}
	l.Status = LotUnsold
	return nil
}

// Bid is an immutable event: one team's price offer for a lot. The ordered
// bid sequence for a lot is the audit trail its current price derives from.
type Bid struct {
	BidID     string          `json:"bid_id"`
	LotID     string          `json:"lot_id"`
	TeamID    string          `json:"team_id"`
	Amount    decimal.Decimal `json:"amount"`
	CreatedAt time.Time       `json:"created_at"`
}

// User is an account on the HTTP surface. Password holds a bcrypt hash,
// never plain text. TeamID is empty for admins.
type User struct {
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	Password  string    `json:"-"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	TeamID    string    `json:"team_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
