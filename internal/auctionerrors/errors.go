package auctionerrors

import "errors"

// Lifecycle and lookup errors
var (
	ErrNotFound          = errors.New("not found")
	ErrInvalidInput      = errors.New("invalid input")
	ErrInvalidTransition = errors.New("invalid state transition")
	ErrAuctionNotLive    = errors.New("auction is not live")
	ErrLotAlreadyLive    = errors.New("another lot is already live")
	ErrLotNotLive        = errors.New("bidding is not open for this lot")
)

// Bid rejection errors
var (
	ErrBidTooLow         = errors.New("bid must be higher than current price")
	ErrIncrementTooSmall = errors.New("bid increment below minimum")
	ErrInsufficientFunds = errors.New("insufficient purse for this bid")
)

// Concurrency errors
var (
	ErrContention = errors.New("could not acquire exclusive section")
)

// Admin and auth errors
var (
	ErrNameTaken          = errors.New("name already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
)
