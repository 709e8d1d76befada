package game

import (
	"math/rand"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/onlypoly/backend/platform/board"
)

// JailSentence is the number of turns a jailed player waits out.
const JailSentence = 2

// JailFine buys immediate release during the jailed player's own turn.
const JailFine = 100.0

// RentCapRatio bounds any single rent charge to this share of the payer's
// liquidatable value.
const RentCapRatio = 0.85

// Notifier delivers engine-originated notifications to clients. The sockets
// gateway implements it; tests use the no-op default.
type Notifier interface {
	Broadcast(event string, payload interface{})
	NotifyPlayer(socketID string, event string, payload interface{})
}

type noopNotifier struct{}

func (noopNotifier) Broadcast(string, interface{})             {}
func (noopNotifier) NotifyPlayer(string, string, interface{}) {}

// Room is the authoritative aggregate for one game. All actions for the room
// run through its mutex, one at a time; exported methods lock, unexported
// ones assume the lock is held.
type Room struct {
	ID string

	mu                        sync.Mutex
	players                   map[string]*Player
	turnOrder                 []string
	currentTurnIndex          int
	started                   bool
	hostID                    string
	readyPlayers              map[string]bool
	chanceDeck                []ChanceCard
	chanceIndex               int
	lastDice                  *Dice
	hasRolledThisTurn         bool
	hasBoughtThisTurn         bool
	hasStartedAuctionThisTurn bool

	rng        *rand.Rand
	notifier   Notifier
	auctioneer Auctioneer
	trades     *TradeSystem
	faults     []*NumericFault
}

// NewRoom builds an empty lobby. A nil notifier is replaced with a no-op.
func NewRoom(id string, notifier Notifier) *Room {
	if notifier == nil {
		notifier = noopNotifier{}
	}
	r := &Room{
		ID:       id,
		notifier: notifier,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	r.reset()
	r.trades = &TradeSystem{room: r, active: make(map[string]*Trade)}
	return r
}

// SetAuctioneer wires the auction collaborator. Call before play starts.
func (r *Room) SetAuctioneer(a Auctioneer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.auctioneer = a
}

// Trades returns the room's trade negotiator.
func (r *Room) Trades() *TradeSystem {
	return r.trades
}

func (r *Room) reset() {
	r.players = make(map[string]*Player)
	r.turnOrder = nil
	r.currentTurnIndex = 0
	r.started = false
	r.hostID = ""
	r.readyPlayers = make(map[string]bool)
	r.shuffleChanceDeck()
	r.lastDice = nil
	r.hasRolledThisTurn = false
	r.hasBoughtThisTurn = false
	r.hasStartedAuctionThisTurn = false
}

// Faults returns the numeric faults recorded so far. A non-empty result in a
// test run means an invariant was violated upstream.
func (r *Room) Faults() []*NumericFault {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*NumericFault, len(r.faults))
	copy(out, r.faults)
	return out
}

// AddPlayer seats a new player in the lobby.
func (r *Room) AddPlayer(id, name, socketID, token string) (*Player, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.started {
		return nil, reject(ReasonGameInProgress)
	}
	if len(r.players) >= MaxPlayers {
		return nil, reject(ReasonLobbyFull)
	}
	if len(name) > 16 {
		name = name[:16]
	}

	player := newPlayer(id, name, socketID, token, "")
	r.players[id] = player
	if r.hostID == "" {
		r.hostID = id
	}
	// Turn order is seating order.
	r.turnOrder = append(r.turnOrder, id)
	return player, nil
}

// Rejoin reattaches an existing seat to a fresh socket connection, so a
// reconnecting player resumes mid-game instead of being turned away.
func (r *Room) Rejoin(playerID, socketID string) (*Player, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	player, ok := r.players[playerID]
	if !ok {
		return nil, false
	}
	player.SocketID = socketID
	return player, true
}

// SetPlayerColor assigns a color if it is free. Colors are frozen once the
// game starts.
func (r *Room) SetPlayerColor(playerID, color string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if color == "" {
		return reject(ReasonColorTaken)
	}
	player, ok := r.players[playerID]
	if !ok || r.started {
		return reject(ReasonColorTaken)
	}
	for id, p := range r.players {
		if id != playerID && p.Color == color {
			return reject(ReasonColorTaken)
		}
	}
	player.Color = color
	return nil
}

// MarkReady toggles a player's pre-start ready flag.
func (r *Room) MarkReady(playerID string, ready bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.players[playerID]; !ok || r.started {
		return
	}
	if ready {
		r.readyPlayers[playerID] = true
	} else {
		delete(r.readyPlayers, playerID)
	}
}

func (r *Room) canStart() bool {
	return len(r.players) >= 2 && len(r.readyPlayers) >= 2
}

// Start flips the lobby into active play. Host only, needs at least two
// ready players; missing colors are auto-assigned and every balance is
// revalidated to a finite positive value.
func (r *Room) Start(requestingPlayerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.started {
		return reject(ReasonGameInProgress)
	}
	if requestingPlayerID != r.hostID {
		return reject(ReasonCannotStart)
	}
	if !r.canStart() {
		return reject(ReasonCannotStart)
	}

	used := make(map[string]bool)
	for _, p := range r.players {
		if p.Color != "" {
			used[p.Color] = true
		}
	}
	colorIndex := 0
	for _, id := range r.turnOrder {
		p := r.players[id]
		if p == nil || p.Color != "" {
			continue
		}
		for used[defaultColors[colorIndex%len(defaultColors)]] {
			colorIndex++
		}
		p.Color = defaultColors[colorIndex%len(defaultColors)]
		used[p.Color] = true
		colorIndex++
	}

	for _, p := range r.players {
		r.ensureFiniteMoney(p, StartingMoney)
		if p.Money <= 0 {
			r.faults = append(r.faults, &NumericFault{PlayerID: p.ID, Field: "money", Value: p.Money})
			p.Money = StartingMoney
		}
	}

	r.started = true
	r.currentTurnIndex = 0
	log.WithFields(log.Fields{"game": r.ID, "players": len(r.players)}).Info("game started")
	return nil
}

func (r *Room) currentPlayerID() string {
	if r.currentTurnIndex < 0 || r.currentTurnIndex >= len(r.turnOrder) {
		return ""
	}
	return r.turnOrder[r.currentTurnIndex]
}

// CurrentPlayerID returns the id of the turn holder, or empty.
func (r *Room) CurrentPlayerID() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.currentPlayerID()
}

func (r *Room) assertTurn(playerID string) bool {
	return r.currentPlayerID() == playerID
}

func (r *Room) findOwner(propertyID int) string {
	for id, p := range r.players {
		if p.Owns(propertyID) {
			return id
		}
	}
	return ""
}

// Owner returns the id of the player holding propertyID, or empty.
func (r *Room) Owner(propertyID int) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.findOwner(propertyID)
}

// PlayerBalance reports a player's cash, if the player exists.
func (r *Room) PlayerBalance(playerID string) (float64, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.players[playerID]
	if !ok {
		return 0, false
	}
	return p.Money, true
}

// assignProperty reassigns a tile, clearing any other holder first so that a
// tile id never appears in two rosters.
func (r *Room) assignProperty(propertyID int, playerID string) {
	for _, p := range r.players {
		delete(p.OwnedProperties, propertyID)
	}
	if playerID == "" {
		return
	}
	tile, ok := board.GetTile(propertyID)
	if !ok || !tile.Ownable() {
		return
	}
	owner, ok := r.players[playerID]
	if !ok {
		return
	}
	owner.OwnedProperties[propertyID] = &board.Holding{Type: tile.Type}
}

// movePlayer advances the player delta tiles, wrapping the 40-tile ring and
// crediting salary on every full wrap.
func (r *Room) movePlayer(playerID string, delta int) board.Tile {
	player, ok := r.players[playerID]
	if !ok {
		return board.Tile{}
	}
	newPos := player.Position + delta
	for newPos >= board.TotalTiles {
		newPos -= board.TotalTiles
		if start, ok := board.GetTile(0); ok && start.Salary > 0 {
			r.transferMoney("", playerID, float64(start.Salary), "salary")
		}
	}
	for newPos < 0 {
		newPos += board.TotalTiles
	}
	player.Position = newPos
	tile, _ := board.GetTile(newPos)
	return tile
}

func (r *Room) sendToJail(playerID string) {
	player, ok := r.players[playerID]
	if !ok {
		return
	}
	player.InJail = true
	player.JailTurns = JailSentence
	player.Position = board.JailTile()
}

// EndTurn advances play to the next seat, resetting the per-turn flags.
// Rejected when the holder has not rolled and is not waiting out jail. A
// jailed holder's countdown decrements, releasing them at zero.
func (r *Room) EndTurn(playerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.started {
		return reject(ReasonGameNotStarted)
	}
	if !r.assertTurn(playerID) {
		return reject(ReasonNotYourTurn)
	}
	player := r.players[playerID]
	if player != nil && !player.InJail && !r.hasRolledThisTurn {
		return reject(ReasonMustRollFirst)
	}

	if player != nil && player.InJail {
		player.JailTurns--
		if player.JailTurns <= 0 {
			player.InJail = false
			player.JailTurns = 0
		}
	}
	if len(r.turnOrder) == 0 {
		return reject(ReasonGameNotStarted)
	}
	r.hasRolledThisTurn = false
	r.hasBoughtThisTurn = false
	r.hasStartedAuctionThisTurn = false
	r.currentTurnIndex = (r.currentTurnIndex + 1) % len(r.turnOrder)
	return nil
}

func (r *Room) removeFromTurnOrder(playerID string) {
	kept := r.turnOrder[:0]
	for _, id := range r.turnOrder {
		if id != playerID {
			kept = append(kept, id)
		}
	}
	r.turnOrder = kept
	if r.currentTurnIndex >= len(r.turnOrder) {
		r.currentTurnIndex = 0
	}
}

// RemovePlayer handles a disconnect: holdings are released without
// compensation and the seat leaves the turn order. An emptied room resets.
func (r *Room) RemovePlayer(playerID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	player, ok := r.players[playerID]
	if !ok {
		return
	}
	for id := range player.OwnedProperties {
		delete(player.OwnedProperties, id)
	}
	player.Bankrupt = true
	delete(r.players, playerID)
	delete(r.readyPlayers, playerID)
	r.removeFromTurnOrder(playerID)
	if playerID == r.hostID {
		r.hostID = ""
		if len(r.turnOrder) > 0 {
			r.hostID = r.turnOrder[0]
		}
	}
	if len(r.players) == 0 {
		r.reset()
	}
}

// DropConnection removes the player only while socketID still owns the
// seat, so a stale socket's disconnect cannot evict a reconnected player.
// Reports whether the seat was removed.
func (r *Room) DropConnection(playerID, socketID string) bool {
	r.mu.Lock()
	player, ok := r.players[playerID]
	if !ok || player.SocketID != socketID {
		r.mu.Unlock()
		return false
	}
	r.mu.Unlock()
	r.RemovePlayer(playerID)
	return true
}

// Empty reports whether the room has no seated players.
func (r *Room) Empty() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.players) == 0
}
