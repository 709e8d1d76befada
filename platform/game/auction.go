package game

import (
	"time"

	"github.com/onlypoly/backend/platform/board"
)

// AuctionState is the collaborator's view of a running auction.
type AuctionState struct {
	PropertyID    int       `json:"propertyId"`
	HighestBid    float64   `json:"highestBid"`
	HighestBidder string    `json:"highestBidder"`
	EndsAt        time.Time `json:"endsAt"`
}

// Auctioneer is the timed-bidding collaborator. It runs outside the room's
// serialization point and settles through the room's exported mutators when
// a round expires.
type Auctioneer interface {
	StartAuction(propertyID int, startingPlayerID string) *AuctionState
	PlaceBid(playerID string, step float64) bool
}

// StartAuction puts the landed-on property up for timed bidding instead of
// buying it. Locks further purchase or auction this turn; a refused
// delegation releases the flag again.
func (r *Room) StartAuction(playerID string, propertyID int) (*AuctionState, error) {
	r.mu.Lock()

	if !r.started {
		r.mu.Unlock()
		return nil, reject(ReasonGameNotStarted)
	}
	if !r.assertTurn(playerID) {
		r.mu.Unlock()
		return nil, reject(ReasonNotYourTurn)
	}
	if r.hasBoughtThisTurn {
		r.mu.Unlock()
		return nil, reject(ReasonAlreadyBought)
	}
	if r.hasStartedAuctionThisTurn {
		r.mu.Unlock()
		return nil, reject(ReasonAuctionAlreadyStarted)
	}
	tile, ok := board.GetTile(propertyID)
	if !ok || !tile.Ownable() {
		r.mu.Unlock()
		return nil, reject(ReasonInvalidProperty)
	}
	if r.findOwner(propertyID) != "" {
		r.mu.Unlock()
		return nil, reject(ReasonPropertyOwned)
	}
	auctioneer := r.auctioneer
	if auctioneer == nil {
		r.mu.Unlock()
		return nil, reject(ReasonCannotStartAuction)
	}
	r.hasStartedAuctionThisTurn = true
	// The collaborator may call back into the room, so delegate unlocked.
	r.mu.Unlock()

	state := auctioneer.StartAuction(propertyID, playerID)
	if state == nil {
		r.mu.Lock()
		r.hasStartedAuctionThisTurn = false
		r.mu.Unlock()
		return nil, reject(ReasonCannotStartAuction)
	}
	return state, nil
}

// CompleteAuction is the collaborator's completion callback: the winner pays
// through the settlement path and takes ownership.
func (r *Room) CompleteAuction(propertyID int, winnerID string, amount float64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if winnerID == "" {
		return
	}
	if _, ok := r.players[winnerID]; !ok {
		return
	}
	if amount > 0 {
		r.settlePayment(winnerID, "", amount, "auction")
	}
	r.assignProperty(propertyID, winnerID)
}
