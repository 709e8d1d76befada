package game

import "fmt"

// Reason is the machine-readable code sent back to a rejected client.
type Reason string

const (
	ReasonNotYourTurn           Reason = "not_your_turn"
	ReasonAlreadyRolled         Reason = "already_rolled"
	ReasonAlreadyBought         Reason = "already_bought"
	ReasonAuctionStarted        Reason = "auction_started"
	ReasonAuctionAlreadyStarted Reason = "auction_already_started"
	ReasonCannotStartAuction    Reason = "cannot_start_auction"
	ReasonInvalidBidStep        Reason = "invalid_bid_step"
	ReasonBidRejected           Reason = "bid_rejected"
	ReasonInsufficientFunds     Reason = "insufficient_funds"
	ReasonInvalidProperty       Reason = "invalid_property"
	ReasonPropertyOwned         Reason = "property_already_owned"
	ReasonNotOwner              Reason = "not_owner"
	ReasonCannotBuild           Reason = "cannot_build"
	ReasonCannotPayFine         Reason = "cannot_pay_fine"
	ReasonMustRollFirst         Reason = "must_roll_first"
	ReasonInvalidRoll           Reason = "invalid_roll"
	ReasonColorTaken            Reason = "color_taken"
	ReasonTooFast               Reason = "too_fast"
	ReasonGameNotStarted        Reason = "game_not_started"
	ReasonCannotStart           Reason = "cannot_start"
	ReasonLobbyFull             Reason = "lobby_full"
	ReasonGameInProgress        Reason = "game_in_progress"
	ReasonInvalidTrade          Reason = "invalid_trade"
)

// RejectError is a recoverable validation failure. State is never mutated
// before one is returned.
type RejectError struct {
	Reason Reason
}

func (e *RejectError) Error() string {
	return string(e.Reason)
}

func reject(r Reason) error {
	return &RejectError{Reason: r}
}

// RejectReason extracts the reason code from an engine error, or empty if the
// error is not a rejection.
func RejectReason(err error) Reason {
	if re, ok := err.(*RejectError); ok {
		return re.Reason
	}
	return ""
}

// NumericFault records a non-finite money or position value found at a
// mutation boundary. The value is clamped to a safe default so play can
// continue, but the fault itself signals an upstream invariant violation.
type NumericFault struct {
	PlayerID string
	Field    string
	Value    float64
}

func (f *NumericFault) Error() string {
	return fmt.Sprintf("non-finite %s for player %s: %v", f.Field, f.PlayerID, f.Value)
}
