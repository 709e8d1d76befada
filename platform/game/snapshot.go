package game

import (
	"github.com/onlypoly/backend/platform/board"
)

// Snapshot is the full serialized room state broadcast after every accepted
// mutation. It is the sole source of client-visible truth.
type Snapshot struct {
	Players                   map[string]*Player `json:"players"`
	TurnOrder                 []string           `json:"turnOrder"`
	CurrentTurnIndex          int                `json:"currentTurnIndex"`
	CurrentPlayerID           string             `json:"currentPlayerId"`
	Started                   bool               `json:"started"`
	HostID                    string             `json:"hostId"`
	Board                     []board.Tile       `json:"board"`
	LastDice                  *Dice              `json:"lastDice"`
	HasRolledThisTurn         bool               `json:"hasRolledThisTurn"`
	HasBoughtThisTurn         bool               `json:"hasBoughtThisTurn"`
	HasStartedAuctionThisTurn bool               `json:"hasStartedAuctionThisTurn"`
	ReadyPlayers              []string           `json:"readyPlayers"`
}

// Snapshot copies the room into its wire form. Player copies are sanitized:
// a non-finite balance surfaces as the starting amount rather than breaking
// serialization, and is recorded as a fault.
func (r *Room) Snapshot() *Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	players := make(map[string]*Player, len(r.players))
	for id, p := range r.players {
		cp := *p
		if !finite(cp.Money) {
			r.faults = append(r.faults, &NumericFault{PlayerID: id, Field: "money", Value: cp.Money})
			cp.Money = StartingMoney
		} else {
			cp.Money = roundMoney(cp.Money)
		}
		holdings := make(map[int]*board.Holding, len(p.OwnedProperties))
		for tid, h := range p.OwnedProperties {
			hc := *h
			holdings[tid] = &hc
		}
		cp.OwnedProperties = holdings
		players[id] = &cp
	}

	turnOrder := make([]string, len(r.turnOrder))
	copy(turnOrder, r.turnOrder)

	ready := make([]string, 0, len(r.readyPlayers))
	for _, id := range turnOrder {
		if r.readyPlayers[id] {
			ready = append(ready, id)
		}
	}

	var lastDice *Dice
	if r.lastDice != nil {
		d := *r.lastDice
		lastDice = &d
	}

	return &Snapshot{
		Players:                   players,
		TurnOrder:                 turnOrder,
		CurrentTurnIndex:          r.currentTurnIndex,
		CurrentPlayerID:           r.currentPlayerID(),
		Started:                   r.started,
		HostID:                    r.hostID,
		Board:                     board.Tiles[:],
		LastDice:                  lastDice,
		HasRolledThisTurn:         r.hasRolledThisTurn,
		HasBoughtThisTurn:         r.hasBoughtThisTurn,
		HasStartedAuctionThisTurn: r.hasStartedAuctionThisTurn,
		ReadyPlayers:              ready,
	}
}
