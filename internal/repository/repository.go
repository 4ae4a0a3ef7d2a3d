package repository

import (
	"fmt"
	"sync"

	"player-auction/internal/auctionerrors"
	model "player-auction/internal/models"
)

// Store is the durable record store the auction core runs against. A bid
// and the lot state it produced are committed together through ApplyBid,
// which is the lot-level atomic update the bidding sequencer relies on.
type Store interface {
	CreateAuction(a model.Auction) error
	GetAuction(auctionID string) (model.Auction, error)
	UpdateAuction(a model.Auction) error

	CreatePlayer(p model.Player) error
	GetPlayer(playerID string) (model.Player, error)
	UpdatePlayer(p model.Player) error
	ListPlayers() ([]model.Player, error)

	CreateTeam(t model.Team) error
	GetTeam(teamID string) (model.Team, error)
	GetTeamByName(name string) (model.Team, error)
	ListTeams() ([]model.Team, error)

	CreateLot(l model.Lot) error
	GetLot(lotID string) (model.Lot, error)
	UpdateLot(l model.Lot) error
	LotsByAuction(auctionID string) ([]model.Lot, error)

	ApplyBid(bid model.Bid, lot model.Lot) error
	BidsByLot(lotID string) ([]model.Bid, error)

	CreateUser(u model.User) error
	GetUserByUsername(username string) (model.User, error)
	GetUserByEmail(email string) (model.User, error)
}

// MemoryRepo is a concurrency-safe in-memory implementation of Store.
// Records are stored and returned by value so callers never alias the
// maps' contents.
type MemoryRepo struct {
	mu       sync.RWMutex
	auctions map[string]model.Auction
	players  map[string]model.Player
	teams    map[string]model.Team
	lots     map[string]model.Lot
	bids     map[string][]model.Bid // key: lotID -> ordered accepted bids
	users    map[string]model.User  // key: username
}

// NewMemoryRepo creates a new in-memory store instance.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		auctions: make(map[string]model.Auction),
		players:  make(map[string]model.Player),
		teams:    make(map[string]model.Team),
		lots:     make(map[string]model.Lot),
		bids:     make(map[string][]model.Bid),
		users:    make(map[string]model.User),
	}
}

func (r *MemoryRepo) CreateAuction(a model.Auction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.auctions[a.AuctionID] = a
	return nil
}

func (r *MemoryRepo) GetAuction(auctionID string) (model.Auction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.auctions[auctionID]
	if !ok {
		return model.Auction{}, fmt.Errorf("auction %s: %w", auctionID, auctionerrors.ErrNotFound)
	}
	return a, nil
}

func (r *MemoryRepo) UpdateAuction(a model.Auction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.auctions[a.AuctionID]; !ok {
		return fmt.Errorf("auction %s: %w", a.AuctionID, auctionerrors.ErrNotFound)
	}
	r.auctions[a.AuctionID] = a
	return nil
}

func (r *MemoryRepo) CreatePlayer(p model.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.players[p.PlayerID] = p
	return nil
}

func (r *MemoryRepo) GetPlayer(playerID string) (model.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.players[playerID]
	if !ok {
		return model.Player{}, fmt.Errorf("player %s: %w", playerID, auctionerrors.ErrNotFound)
	}
	return p, nil
}

func (r *MemoryRepo) UpdatePlayer(p model.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.players[p.PlayerID]; !ok {
		return fmt.Errorf("player %s: %w", p.PlayerID, auctionerrors.ErrNotFound)
	}
	r.players[p.PlayerID] = p
	return nil
}

func (r *MemoryRepo) ListPlayers() ([]model.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	players := make([]model.Player, 0, len(r.players))
	for _, p := range r.players {
		players = append(players, p)
	}
	return players, nil
}

func (r *MemoryRepo) CreateTeam(t model.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.teams {
		if existing.Name == t.Name {
			return fmt.Errorf("team %q: %w", t.Name, auctionerrors.ErrNameTaken)
		}
	}
	r.teams[t.TeamID] = t
	return nil
}

func (r *MemoryRepo) GetTeam(teamID string) (model.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.teams[teamID]
	if !ok {
		return model.Team{}, fmt.Errorf("team %s: %w", teamID, auctionerrors.ErrNotFound)
	}
	return t, nil
}

func (r *MemoryRepo) GetTeamByName(name string) (model.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, t := range r.teams {
		if t.Name == name {
			return t, nil
		}
	}
	return model.Team{}, fmt.Errorf("team %q: %w", name, auctionerrors.ErrNotFound)
}

func (r *MemoryRepo) ListTeams() ([]model.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	teams := make([]model.Team, 0, len(r.teams))
	for _, t := range r.teams {
		teams = append(teams, t)
	}
	return teams, nil
}

func (r *MemoryRepo) CreateLot(l model.Lot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.auctions[l.AuctionID]; !ok {
		return fmt.Errorf("auction %s: %w", l.AuctionID, auctionerrors.ErrNotFound)
	}
	r.lots[l.LotID] = l
	return nil
}

func (r *MemoryRepo) GetLot(lotID string) (model.Lot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	l, ok := r.lots[lotID]
	if !ok {
		return model.Lot{}, fmt.Errorf("lot %s: %w", lotID, auctionerrors.ErrNotFound)
	}
	return l, nil
}

func (r *MemoryRepo) UpdateLot(l model.Lot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.lots[l.LotID]; !ok {
		return fmt.Errorf("lot %s: %w", l.LotID, auctionerrors.ErrNotFound)
	}
	r.lots[l.LotID] = l
	return nil
}

func (r *MemoryRepo) LotsByAuction(auctionID string) ([]model.Lot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var lots []model.Lot
	for _, l := range r.lots {
		if l.AuctionID == auctionID {
			lots = append(lots, l)
		}
	}
	return lots, nil
}

// ApplyBid appends the bid to the lot's history and writes the updated lot
// state under one lock, so either both are visible or neither is.
func (r *MemoryRepo) ApplyBid(bid model.Bid, lot model.Lot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.lots[lot.LotID]; !ok {
		return fmt.Errorf("lot %s: %w", lot.LotID, auctionerrors.ErrNotFound)
	}
	r.bids[bid.LotID] = append(r.bids[bid.LotID], bid)
	r.lots[lot.LotID] = lot
	return nil
}

func (r *MemoryRepo) BidsByLot(lotID string) ([]model.Bid, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]model.Bid(nil), r.bids[lotID]...), nil
}

func (r *MemoryRepo) CreateUser(u model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[u.Username]; ok {
		return fmt.Errorf("username %q: %w", u.Username, auctionerrors.ErrNameTaken)
	}
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return fmt.Errorf("email %q: %w", u.Email, auctionerrors.ErrNameTaken)
		}
	}
	r.users[u.Username] = u
	return nil
}

func (r *MemoryRepo) GetUserByUsername(username string) (model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[username]
	if !ok {
		return model.User{}, fmt.Errorf("user %q: %w", username, auctionerrors.ErrNotFound)
	}
	return u, nil
}

func (r *MemoryRepo) GetUserByEmail(email string) (model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return model.User{}, fmt.Errorf("email %q: %w", email, auctionerrors.ErrNotFound)
}
