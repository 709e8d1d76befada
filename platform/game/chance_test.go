package game

import (
	"encoding/json"
	"testing"

	"github.com/onlypoly/backend/platform/board"
)

func TestChanceDeckReshufflesOnExhaustion(t *testing.T) {
	r := newTestRoom(t, 2)
	r.mu.Lock()
	r.shuffleChanceDeck()
	deckLen := len(r.chanceDeck)

	seen := make(map[string]int)
	for i := 0; i < deckLen; i++ {
		seen[r.drawChanceCard().ID]++
	}
	// One full pass deals every card exactly once.
	for _, card := range baseChanceCards {
		if seen[card.ID] != 1 {
			t.Errorf("card %s drawn %d times in one pass", card.ID, seen[card.ID])
		}
	}

	// The next draw reshuffles instead of failing.
	card := r.drawChanceCard()
	r.mu.Unlock()
	if card.ID == "" {
		t.Fatal("draw after exhaustion returned zero card")
	}
	if r.chanceIndex != 1 {
		t.Errorf("chanceIndex after reshuffle draw = %d, want 1", r.chanceIndex)
	}
}

func TestChanceMoneyCards(t *testing.T) {
	r := newTestRoom(t, 2)
	p := r.players["p1"]

	r.mu.Lock()
	r.applyChanceCard("p1", ChanceCard{Type: "money", Amount: 150})
	r.mu.Unlock()
	if p.Money != StartingMoney+150 {
		t.Errorf("gain card: money = %v", p.Money)
	}

	r.mu.Lock()
	r.applyChanceCard("p1", ChanceCard{Type: "money", Amount: -50})
	r.mu.Unlock()
	if p.Money != StartingMoney+100 {
		t.Errorf("loss card: money = %v", p.Money)
	}
	assertNoFaults(t, r)
}

func TestChanceLossCanBankrupt(t *testing.T) {
	r := newTestRoom(t, 2)
	p := r.players["p1"]
	p.Money = 20

	r.mu.Lock()
	r.applyChanceCard("p1", ChanceCard{Type: "money", Amount: -150})
	r.mu.Unlock()

	if !p.Bankrupt {
		t.Errorf("unpayable chance loss did not bankrupt: money=%v", p.Money)
	}
}

func TestChanceGotoJailCard(t *testing.T) {
	r := newTestRoom(t, 2)

	r.mu.Lock()
	r.applyChanceCard("p1", ChanceCard{Type: "goto", TargetType: "jail"})
	r.mu.Unlock()

	p := r.players["p1"]
	if !p.InJail || p.Position != board.JailTile() {
		t.Errorf("goto card state: %+v", p)
	}
}

func TestChanceMoveResolvesDestination(t *testing.T) {
	r := newTestRoom(t, 2)
	p := r.players["p1"]
	p.Position = 1
	before := p.Money

	// Forward 3 from Karachi lands on Income Tax.
	r.mu.Lock()
	events := r.applyChanceCard("p1", ChanceCard{Type: "move", Delta: 3})
	r.mu.Unlock()

	if p.Position != 4 {
		t.Fatalf("position = %d, want 4", p.Position)
	}
	if p.Money != before-200 {
		t.Errorf("tax not charged on chance move: %v -> %v", before, p.Money)
	}
	if len(events) != 1 {
		t.Fatalf("nested events = %v", events)
	}
	if _, ok := events[0].(TaxEvent); !ok {
		t.Errorf("nested event = %+v, want tax", events[0])
	}
}

func TestChanceMoveBackwardNoSalary(t *testing.T) {
	r := newTestRoom(t, 2)
	p := r.players["p1"]
	p.Position = 1
	before := p.Money

	r.mu.Lock()
	r.applyChanceCard("p1", ChanceCard{Type: "move", Delta: -3})
	r.mu.Unlock()

	if p.Position != 38 {
		t.Fatalf("position = %d, want 38", p.Position)
	}
	// Luxury Tax at 38 charges 100; no salary for the backward wrap.
	if p.Money != before-100 {
		t.Errorf("money = %v, want %v", p.Money, before-100)
	}
}

func TestChanceMoveChargesNoDiceRent(t *testing.T) {
	r := newTestRoom(t, 2)
	p := r.players["p1"]
	p.Position = 2
	before := p.Money

	// Airport rent needs a dice total; a chance move onto one charges
	// nothing.
	r.mu.Lock()
	r.assignProperty(5, "p2")
	events := r.applyChanceCard("p1", ChanceCard{Type: "move", Delta: 3})
	r.mu.Unlock()

	if p.Position != 5 {
		t.Fatalf("position = %d, want 5", p.Position)
	}
	if p.Money != before {
		t.Errorf("no-dice landing charged rent: %v -> %v", before, p.Money)
	}
	if len(events) != 0 {
		t.Errorf("events = %v, want none", events)
	}
}

func TestMarshalEventsTagsTypes(t *testing.T) {
	events := []Event{
		TaxEvent{Amount: 200},
		RentPaidEvent{To: "p2", Amount: 85, PropertyID: 37},
		GotoJailEvent{},
	}
	raw, err := MarshalEvents(events)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if len(raw) != 3 {
		t.Fatalf("len = %d", len(raw))
	}

	wantTypes := []EventType{EventTax, EventRentPaid, EventGotoJail}
	for i, msg := range raw {
		var fields map[string]interface{}
		if err := json.Unmarshal(msg, &fields); err != nil {
			t.Fatalf("event %d: %v", i, err)
		}
		if got := fields["type"]; got != string(wantTypes[i]) {
			t.Errorf("event %d type = %v, want %s", i, got, wantTypes[i])
		}
	}
	if raw[0] == nil {
		t.Fatal("nil payload")
	}

	var rent map[string]interface{}
	json.Unmarshal(raw[1], &rent)
	if rent["amount"] != 85.0 || rent["to"] != "p2" || rent["propertyId"] != 37.0 {
		t.Errorf("rent payload = %v", rent)
	}
}
