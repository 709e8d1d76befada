package game

import (
	"github.com/onlypoly/backend/platform/board"
)

// StartingMoney is every player's bankroll on joining the lobby.
const StartingMoney = 1500.0

// MaxPlayers caps one room's roster.
const MaxPlayers = 8

// defaultColors is the palette used to auto-assign colors at game start.
var defaultColors = []string{
	"#00d2ff", "#ff4b81", "#f1c40f", "#2ecc71",
	"#9b59b6", "#e67e22", "#3498db", "#e74c3c",
}

// Player is one seat in a room. Mutable, owned by the room aggregate.
type Player struct {
	ID              string                 `json:"id"`
	Name            string                 `json:"name"`
	Money           float64                `json:"money"`
	Position        int                    `json:"position"`
	SocketID        string                 `json:"socketId"`
	Token           string                 `json:"token"`
	Color           string                 `json:"color,omitempty"`
	InJail          bool                   `json:"inJail"`
	JailTurns       int                    `json:"jailTurns"`
	OwnedProperties map[int]*board.Holding `json:"ownedProperties"`
	Bankrupt        bool                   `json:"bankrupt"`
}

func newPlayer(id, name, socketID, token, color string) *Player {
	return &Player{
		ID:              id,
		Name:            name,
		Money:           StartingMoney,
		SocketID:        socketID,
		Token:           token,
		Color:           color,
		OwnedProperties: make(map[int]*board.Holding),
	}
}

// Owns reports whether the player holds the given tile.
func (p *Player) Owns(propertyID int) bool {
	_, ok := p.OwnedProperties[propertyID]
	return ok
}
