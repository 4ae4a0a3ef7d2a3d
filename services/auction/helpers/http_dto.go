package helpers

// Request/Response DTOs

type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Role     string `json:"role" binding:"required"`
	TeamID   string `json:"team_id"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

type CreateTeamRequest struct {
	Name  string  `json:"name" binding:"required"`
	Purse float64 `json:"purse" binding:"required,gt=0"`
}

type CreatePlayerRequest struct {
	Name      string  `json:"name" binding:"required"`
	Category  string  `json:"category" binding:"required"`
	BasePrice float64 `json:"base_price" binding:"required,gt=0"`
}

type CreateLotRequest struct {
	AuctionID string  `json:"auction_id" binding:"required"`
	PlayerID  string  `json:"player_id" binding:"required"`
	BasePrice float64 `json:"base_price" binding:"required,gt=0"`
}

type PlaceBidRequest struct {
	LotID  string  `json:"lot_id" binding:"required"`
	TeamID string  `json:"team_id" binding:"required"`
	Amount float64 `json:"amount" binding:"required,gt=0"`
}

// MarkSoldRequest is optional in full: an empty body sells to the lot's
// current leader at its current price.
type MarkSoldRequest struct {
	TeamID     string  `json:"team_id"`
	FinalPrice float64 `json:"final_price"`
}

type BidResponse struct {
	BidID     string `json:"bid_id"`
	LotID     string `json:"lot_id"`
	TeamID    string `json:"team_id"`
	Amount    string `json:"amount"`
	CreatedAt string `json:"created_at"`
}

type LotResponse struct {
	LotID         string `json:"lot_id"`
	AuctionID     string `json:"auction_id"`
	PlayerID      string `json:"player_id"`
	BasePrice     string `json:"base_price"`
	CurrentPrice  string `json:"current_price"`
	Status        string `json:"status"`
	LeadingTeamID string `json:"leading_team_id,omitempty"`
}
