package repository

import (
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/lib/pq"

	"player-auction/internal/auctionerrors"
	model "player-auction/internal/models"
)

// ConnectPostgres opens and pings a Postgres connection.
func ConnectPostgres(dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

// Postgres is the database/sql implementation of Store. Expected schema:
// auctions(id, status, created_at), players(id, name, category, base_price,
// status), teams(id, name unique, purse, max_squad_size, created_at),
// lots(id, auction_id, player_id, base_price, current_price, status,
// leading_team_id, created_at), bids(id, lot_id, team_id, amount,
// created_at), users(id, username unique, password, email unique, role,
// team_id, created_at).
type Postgres struct{ db *sql.DB }

// NewPostgres returns a Postgres store over an open connection.
func NewPostgres(db *sql.DB) *Postgres { return &Postgres{db: db} }

func (p *Postgres) CreateAuction(a model.Auction) error {
	_, err := p.db.Exec(
		`INSERT INTO auctions (id, status, created_at) VALUES ($1, $2, $3)`,
		a.AuctionID, a.Status, a.CreatedAt,
	)
	return err
}

func (p *Postgres) GetAuction(auctionID string) (model.Auction, error) {
	var a model.Auction
	err := p.db.QueryRow(
		`SELECT id, status, created_at FROM auctions WHERE id = $1`, auctionID,
	).Scan(&a.AuctionID, &a.Status, &a.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Auction{}, fmt.Errorf("auction %s: %w", auctionID, auctionerrors.ErrNotFound)
	}
	return a, err
}

func (p *Postgres) UpdateAuction(a model.Auction) error {
	res, err := p.db.Exec(`UPDATE auctions SET status = $1 WHERE id = $2`, a.Status, a.AuctionID)
	if err != nil {
		return err
	}
	return requireRow(res, a.AuctionID)
}

func (p *Postgres) CreatePlayer(pl model.Player) error {
	_, err := p.db.Exec(
		`INSERT INTO players (id, name, category, base_price, status) VALUES ($1, $2, $3, $4, $5)`,
		pl.PlayerID, pl.Name, pl.Category, pl.BasePrice, pl.Status,
	)
	return err
}

func (p *Postgres) GetPlayer(playerID string) (model.Player, error) {
	var pl model.Player
	err := p.db.QueryRow(
		`SELECT id, name, category, base_price, status FROM players WHERE id = $1`, playerID,
	).Scan(&pl.PlayerID, &pl.Name, &pl.Category, &pl.BasePrice, &pl.Status)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Player{}, fmt.Errorf("player %s: %w", playerID, auctionerrors.ErrNotFound)
	}
	return pl, err
}

func (p *Postgres) UpdatePlayer(pl model.Player) error {
	res, err := p.db.Exec(`UPDATE players SET status = $1 WHERE id = $2`, pl.Status, pl.PlayerID)
	if err != nil {
		return err
	}
	return requireRow(res, pl.PlayerID)
}

func (p *Postgres) ListPlayers() ([]model.Player, error) {
	rows, err := p.db.Query(`SELECT id, name, category, base_price, status FROM players ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var players []model.Player
	for rows.Next() {
		var pl model.Player
		if err := rows.Scan(&pl.PlayerID, &pl.Name, &pl.Category, &pl.BasePrice, &pl.Status); err != nil {
			return nil, err
		}
		players = append(players, pl)
	}
	return players, rows.Err()
}

func (p *Postgres) CreateTeam(t model.Team) error {
	_, err := p.db.Exec(
		`INSERT INTO teams (id, name, purse, max_squad_size, created_at) VALUES ($1, $2, $3, $4, $5)`,
		t.TeamID, t.Name, t.Purse, t.MaxSquadSize, t.CreatedAt,
	)
	return err
}

func (p *Postgres) GetTeam(teamID string) (model.Team, error) {
	var t model.Team
	err := p.db.QueryRow(
		`SELECT id, name, purse, max_squad_size, created_at FROM teams WHERE id = $1`, teamID,
	).Scan(&t.TeamID, &t.Name, &t.Purse, &t.MaxSquadSize, &t.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Team{}, fmt.Errorf("team %s: %w", teamID, auctionerrors.ErrNotFound)
	}
	return t, err
}

func (p *Postgres) GetTeamByName(name string) (model.Team, error) {
	var t model.Team
	err := p.db.QueryRow(
		`SELECT id, name, purse, max_squad_size, created_at FROM teams WHERE name = $1`, name,
	).Scan(&t.TeamID, &t.Name, &t.Purse, &t.MaxSquadSize, &t.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Team{}, fmt.Errorf("team %q: %w", name, auctionerrors.ErrNotFound)
	}
	return t, err
}

func (p *Postgres) ListTeams() ([]model.Team, error) {
	rows, err := p.db.Query(`SELECT id, name, purse, max_squad_size, created_at FROM teams ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var teams []model.Team
	for rows.Next() {
		var t model.Team
		if err := rows.Scan(&t.TeamID, &t.Name, &t.Purse, &t.MaxSquadSize, &t.CreatedAt); err != nil {
			return nil, err
		}
		teams = append(teams, t)
	}
	return teams, rows.Err()
}

func (p *Postgres) CreateLot(l model.Lot) error {
	_, err := p.db.Exec(`
		INSERT INTO lots (id, auction_id, player_id, base_price, current_price, status, leading_team_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), $8)`,
		l.LotID, l.AuctionID, l.PlayerID, l.BasePrice, l.CurrentPrice, l.Status, l.LeadingTeamID, l.CreatedAt,
	)
	return err
}

func (p *Postgres) GetLot(lotID string) (model.Lot, error) {
	var l model.Lot
	var leader sql.NullString
	err := p.db.QueryRow(`
		SELECT id, auction_id, player_id, base_price, current_price, status, leading_team_id, created_at
		FROM lots WHERE id = $1`, lotID,
	).Scan(&l.LotID, &l.AuctionID, &l.PlayerID, &l.BasePrice, &l.CurrentPrice, &l.Status, &leader, &l.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Lot{}, fmt.Errorf("lot %s: %w", lotID, auctionerrors.ErrNotFound)
	}
	l.LeadingTeamID = leader.String
	return l, err
}

func (p *Postgres) UpdateLot(l model.Lot) error {
	res, err := p.db.Exec(`
		UPDATE lots SET current_price = $1, status = $2, leading_team_id = NULLIF($3, '')
		WHERE id = $4`,
		l.CurrentPrice, l.Status, l.LeadingTeamID, l.LotID,
	)
	if err != nil {
		return err
	}
	return requireRow(res, l.LotID)
}

func (p *Postgres) LotsByAuction(auctionID string) ([]model.Lot, error) {
	rows, err := p.db.Query(`
		SELECT id, auction_id, player_id, base_price, current_price, status, leading_team_id, created_at
		FROM lots WHERE auction_id = $1 ORDER BY created_at`, auctionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lots []model.Lot
	for rows.Next() {
		var l model.Lot
		var leader sql.NullString
		if err := rows.Scan(&l.LotID, &l.AuctionID, &l.PlayerID, &l.BasePrice, &l.CurrentPrice,
			&l.Status, &leader, &l.CreatedAt); err != nil {
			return nil, err
		}
		l.LeadingTeamID = leader.String
		lots = append(lots, l)
	}
	return lots, rows.Err()
}

// ApplyBid commits the bid record and the lot's new price/leader in one
// transaction, with the lot row locked so no other writer interleaves.
func (p *Postgres) ApplyBid(bid model.Bid, lot model.Lot) error {
	tx, err := p.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var id string
	if err = tx.QueryRow(`SELECT id FROM lots WHERE id = $1 FOR UPDATE`, lot.LotID).Scan(&id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("lot %s: %w", lot.LotID, auctionerrors.ErrNotFound)
		}
		return err
	}

	if _, err = tx.Exec(
		`INSERT INTO bids (id, lot_id, team_id, amount, created_at) VALUES ($1, $2, $3, $4, $5)`,
		bid.BidID, bid.LotID, bid.TeamID, bid.Amount, bid.CreatedAt,
	); err != nil {
		return err
	}

	if _, err = tx.Exec(
		`UPDATE lots SET current_price = $1, leading_team_id = $2 WHERE id = $3`,
		lot.CurrentPrice, lot.LeadingTeamID, lot.LotID,
	); err != nil {
		return err
	}

	return tx.Commit()
}

func (p *Postgres) BidsByLot(lotID string) ([]model.Bid, error) {
	rows, err := p.db.Query(`
		SELECT id, lot_id, team_id, amount, created_at
		FROM bids WHERE lot_id = $1 ORDER BY created_at`, lotID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bids []model.Bid
	for rows.Next() {
		var b model.Bid
		if err := rows.Scan(&b.BidID, &b.LotID, &b.TeamID, &b.Amount, &b.CreatedAt); err != nil {
			return nil, err
		}
		bids = append(bids, b)
	}
	return bids, rows.Err()
}

func (p *Postgres) CreateUser(u model.User) error {
	_, err := p.db.Exec(`
		INSERT INTO users (id, username, password, email, role, team_id, created_at)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7)`,
		u.UserID, u.Username, u.Password, u.Email, u.Role, u.TeamID, u.CreatedAt,
	)
	return err
}

func (p *Postgres) GetUserByUsername(username string) (model.User, error) {
	return p.getUser(`username = $1`, username)
}

func (p *Postgres) GetUserByEmail(email string) (model.User, error) {
	return p.getUser(`email = $1`, email)
}

func (p *Postgres) getUser(where, arg string) (model.User, error) {
	var u model.User
	var teamID sql.NullString
	err := p.db.QueryRow(
		`SELECT id, username, password, email, role, team_id, created_at FROM users WHERE `+where, arg,
	).Scan(&u.UserID, &u.Username, &u.Password, &u.Email, &u.Role, &teamID, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, fmt.Errorf("user %q: %w", arg, auctionerrors.ErrNotFound)
	}
	u.TeamID = teamID.String
	return u, err
}

func requireRow(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", id, auctionerrors.ErrNotFound)
	}
	return nil
}
