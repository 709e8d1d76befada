// Package auction runs timed bidding rounds for declined properties. It
// lives outside the room's serialization point and reports results back
// through the room's exported mutators.
package auction

import (
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/onlypoly/backend/platform/board"
	"github.com/onlypoly/backend/platform/game"
)

// RoundDuration is how long a round stays open after it starts.
const RoundDuration = 15 * time.Second

// bidSteps are the only accepted bid increments.
var bidSteps = map[float64]bool{2: true, 10: true, 100: true}

// System auctions one property at a time for one room.
type System struct {
	room     *game.Room
	notifier game.Notifier

	mu      sync.Mutex
	current *game.AuctionState
	timer   *time.Timer
}

func New(room *game.Room, notifier game.Notifier) *System {
	return &System{room: room, notifier: notifier}
}

// StartAuction opens a round for propertyID, refused (nil) while another
// round is running.
func (s *System) StartAuction(propertyID int, startingPlayerID string) *game.AuctionState {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current != nil {
		return nil
	}
	tile, ok := board.GetTile(propertyID)
	if !ok || !tile.Ownable() {
		return nil
	}

	state := &game.AuctionState{
		PropertyID: propertyID,
		EndsAt:     time.Now().Add(RoundDuration),
	}
	s.current = state
	s.timer = time.AfterFunc(RoundDuration, s.finish)
	log.WithFields(log.Fields{"tile": propertyID, "by": startingPlayerID}).Info("auction started")
	s.notifier.Broadcast("auction-started", state)
	return state
}

// PlaceBid raises the current high bid by one of the fixed steps. The bidder
// must be able to afford the resulting amount.
func (s *System) PlaceBid(playerID string, step float64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil || !bidSteps[step] {
		return false
	}
	if time.Now().After(s.current.EndsAt) {
		return false
	}
	balance, ok := s.room.PlayerBalance(playerID)
	if !ok {
		return false
	}
	next := s.current.HighestBid + step
	if balance < next {
		return false
	}
	s.current.HighestBid = next
	s.current.HighestBidder = playerID
	s.notifier.Broadcast("auction-updated", s.current)
	return true
}

// finish settles the expired round through the room's mutators and emits the
// completion notification.
func (s *System) finish() {
	s.mu.Lock()
	state := s.current
	s.current = nil
	s.timer = nil
	s.mu.Unlock()

	if state == nil {
		return
	}
	if state.HighestBidder != "" {
		s.room.CompleteAuction(state.PropertyID, state.HighestBidder, state.HighestBid)
	}
	s.notifier.Broadcast("auction-ended", state)
	s.notifier.Broadcast("state-update", s.room.Snapshot())
}
