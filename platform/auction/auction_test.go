package auction

import (
	"testing"

	"github.com/onlypoly/backend/platform/game"
)

type recordingNotifier struct {
	events []string
}

func (n *recordingNotifier) Broadcast(event string, payload interface{}) {
	n.events = append(n.events, event)
}

func (n *recordingNotifier) NotifyPlayer(string, string, interface{}) {}

func (n *recordingNotifier) saw(event string) bool {
	for _, e := range n.events {
		if e == event {
			return true
		}
	}
	return false
}

func newAuctionRoom(t *testing.T) (*game.Room, *System, *recordingNotifier) {
	t.Helper()
	notifier := &recordingNotifier{}
	room := game.NewRoom("auction-test", notifier)
	for _, id := range []string{"p1", "p2"} {
		if _, err := room.AddPlayer(id, "Player "+id, "sock-"+id, "tok"); err != nil {
			t.Fatalf("AddPlayer(%s): %v", id, err)
		}
		room.MarkReady(id, true)
	}
	if err := room.Start("p1"); err != nil {
		t.Fatalf("Start: %v", err)
	}
	sys := New(room, notifier)
	room.SetAuctioneer(sys)
	return room, sys, notifier
}

func TestStartAuctionValidation(t *testing.T) {
	_, sys, notifier := newAuctionRoom(t)

	if sys.StartAuction(0, "p1") != nil {
		t.Error("auction opened for GO")
	}
	if sys.StartAuction(99, "p1") != nil {
		t.Error("auction opened for out-of-range tile")
	}

	state := sys.StartAuction(1, "p1")
	if state == nil {
		t.Fatal("auction refused for valid tile")
	}
	if state.PropertyID != 1 || state.HighestBid != 0 || state.HighestBidder != "" {
		t.Errorf("initial state = %+v", state)
	}
	if !notifier.saw("auction-started") {
		t.Error("auction-started not broadcast")
	}

	// One round at a time.
	if sys.StartAuction(3, "p2") != nil {
		t.Error("second concurrent round opened")
	}
}

func TestPlaceBidRules(t *testing.T) {
	room, sys, notifier := newAuctionRoom(t)

	if sys.PlaceBid("p1", 10) {
		t.Error("bid accepted with no round open")
	}
	sys.StartAuction(1, "p1")

	for _, step := range []float64{0, 1, 5, 50, -10} {
		if sys.PlaceBid("p1", step) {
			t.Errorf("invalid step %v accepted", step)
		}
	}
	if sys.PlaceBid("ghost", 10) {
		t.Error("bid from unseated player accepted")
	}

	if !sys.PlaceBid("p1", 10) {
		t.Fatal("valid bid refused")
	}
	if !sys.PlaceBid("p2", 100) {
		t.Fatal("raise refused")
	}
	sys.mu.Lock()
	bid, bidder := sys.current.HighestBid, sys.current.HighestBidder
	sys.mu.Unlock()
	if bid != 110 || bidder != "p2" {
		t.Errorf("high bid = %v by %s, want 110 by p2", bid, bidder)
	}
	if !notifier.saw("auction-updated") {
		t.Error("auction-updated not broadcast")
	}

	// Bids are bounded by the bidder's cash.
	if balance, _ := room.PlayerBalance("p1"); balance != game.StartingMoney {
		t.Fatalf("setup: balance %v", balance)
	}
	for i := 0; i < 13; i++ {
		sys.PlaceBid("p1", 100)
	}
	sys.mu.Lock()
	bid = sys.current.HighestBid
	sys.mu.Unlock()
	if bid > game.StartingMoney {
		t.Errorf("high bid %v exceeds bidder cash", bid)
	}
}

func TestFinishSettlesWinner(t *testing.T) {
	room, sys, notifier := newAuctionRoom(t)
	sys.StartAuction(1, "p1")
	sys.PlaceBid("p2", 100)

	sys.finish()

	if room.Owner(1) != "p2" {
		t.Errorf("owner = %s, want p2", room.Owner(1))
	}
	if balance, _ := room.PlayerBalance("p2"); balance != game.StartingMoney-100 {
		t.Errorf("winner balance = %v, want %v", balance, game.StartingMoney-100)
	}
	if !notifier.saw("auction-ended") || !notifier.saw("state-update") {
		t.Errorf("completion broadcasts = %v", notifier.events)
	}

	// The slot frees up for the next round.
	if sys.StartAuction(3, "p1") == nil {
		t.Error("new round refused after finish")
	}
}

func TestFinishWithoutBidsLeavesTileUnowned(t *testing.T) {
	room, sys, _ := newAuctionRoom(t)
	sys.StartAuction(1, "p1")
	sys.finish()

	if owner := room.Owner(1); owner != "" {
		t.Errorf("bidless auction assigned owner %s", owner)
	}
	if balance, _ := room.PlayerBalance("p1"); balance != game.StartingMoney {
		t.Errorf("bidless auction moved money: %v", balance)
	}
}
