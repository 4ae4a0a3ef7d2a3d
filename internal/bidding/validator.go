package bidding

import (
	"fmt"

	"github.com/shopspring/decimal"

	"player-auction/internal/auctionerrors"
	model "player-auction/internal/models"
)

// Rules parameterize the tiered minimum bid increment: bids on lots priced
// below TierThreshold must raise by at least LowIncrement, bids at or above
// it by at least HighIncrement.
type Rules struct {
	TierThreshold decimal.Decimal
	LowIncrement  decimal.Decimal
	HighIncrement decimal.Decimal
}

// DefaultRules returns the standard tiers: 0.2 below a price of 5, 0.5 from
// 5 upward.
func DefaultRules() Rules {
	return Rules{
		TierThreshold: decimal.NewFromInt(5),
		LowIncrement:  decimal.RequireFromString("0.2"),
		HighIncrement: decimal.RequireFromString("0.5"),
	}
}

// MinIncrement returns the minimum legal increment for a lot at currentPrice.
func (r Rules) MinIncrement(currentPrice decimal.Decimal) decimal.Decimal {
	if currentPrice.LessThan(r.TierThreshold) {
		return r.LowIncrement
	}
	return r.HighIncrement
}

// ValidateBid decides whether a proposed bid is acceptable given the lot's
// current state and the team's available purse. It is pure: the sequencer
// applies its result under the lot's exclusion section against a freshly
// read lot.
func ValidateBid(lot model.Lot, purse, amount decimal.Decimal, rules Rules) error {
	if lot.Status != model.LotLive {
		return fmt.Errorf("lot %s: %w", lot.LotID, auctionerrors.ErrLotNotLive)
	}

	if !amount.GreaterThan(lot.CurrentPrice) {
		return fmt.Errorf("%w - current price is %s", auctionerrors.ErrBidTooLow, lot.CurrentPrice)
	}

	minIncrement := rules.MinIncrement(lot.CurrentPrice)
	if amount.Sub(lot.CurrentPrice).LessThan(minIncrement) {
		return fmt.Errorf("%w - minimum increment is %s", auctionerrors.ErrIncrementTooSmall, minIncrement)
	}

	if purse.LessThan(amount) {
		return fmt.Errorf("%w - purse %s is below bid %s", auctionerrors.ErrInsufficientFunds, purse, amount)
	}

	return nil
}
