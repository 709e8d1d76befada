package game

import (
	"math"

	log "github.com/sirupsen/logrus"

	"github.com/onlypoly/backend/platform/board"
)

// RollResult is the synchronous outcome of one roll: the dice, the landed
// tile, and the ordered events produced while resolving it.
type RollResult struct {
	Dice   Dice       `json:"dice"`
	Tile   board.Tile `json:"landedTile"`
	Events []Event    `json:"-"`
}

// Roll moves the turn holder and resolves the destination tile. Jailed
// players cannot roll; duplicates within a turn are rejected by flag state.
func (r *Room) Roll(playerID string) (*RollResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.started {
		return nil, reject(ReasonGameNotStarted)
	}
	if !r.assertTurn(playerID) {
		return nil, reject(ReasonNotYourTurn)
	}
	if r.hasRolledThisTurn {
		return nil, reject(ReasonAlreadyRolled)
	}
	player, ok := r.players[playerID]
	if !ok || player.InJail || player.Bankrupt {
		return nil, reject(ReasonInvalidRoll)
	}

	dice := r.rollDice()
	r.lastDice = &dice
	r.hasRolledThisTurn = true
	tile := r.movePlayer(playerID, dice.Total)
	events := r.resolveTile(playerID, tile, dice.Total)
	return &RollResult{Dice: dice, Tile: tile, Events: events}, nil
}

// resolveTile applies the landed tile's effect and returns the ordered
// events, including those triggered by chance-card movement.
func (r *Room) resolveTile(playerID string, tile board.Tile, diceTotal int) []Event {
	var events []Event
	player, ok := r.players[playerID]
	if !ok {
		return events
	}

	switch tile.Type {
	case board.TypeStart:
		// Salary is handled on passing; landing adds nothing.

	case board.TypeTax:
		amount := float64(tile.Amount)
		if amount <= 0 {
			amount = 100
		}
		r.settlePayment(playerID, "", amount, "tax")
		events = append(events, TaxEvent{Amount: amount})

	case board.TypeJail:
		// Just visiting.

	case board.TypeGotoJail:
		r.sendToJail(playerID)
		events = append(events, GotoJailEvent{})

	case board.TypeChance:
		card := r.drawChanceCard()
		events = append(events, ChanceEvent{Card: card})
		events = append(events, r.applyChanceCard(playerID, card)...)

	case board.TypeVacation:
		events = append(events, VacationEvent{})

	case board.TypeProperty, board.TypeAirport, board.TypeUtility:
		ownerID := r.findOwner(tile.ID)
		switch {
		case ownerID == "":
			events = append(events, UnownedPropertyEvent{PropertyID: tile.ID})
		case ownerID == playerID:
			events = append(events, OwnPropertyEvent{PropertyID: tile.ID})
		default:
			owner := r.players[ownerID]
			rent := float64(board.CalculateRent(tile.ID, owner.OwnedProperties, diceTotal))
			if rent > 0 {
				// Cap the charge at 85% of the payer's liquidatable
				// value; the excess forces liquidation first.
				maxRent := math.Floor(r.liquidatableValue(player) * RentCapRatio)
				if rent > maxRent {
					r.forceLiquidateAssets(playerID, rent-maxRent)
					rent = maxRent
				}
				if rent > 0 {
					r.settlePayment(playerID, ownerID, rent, "rent")
					events = append(events, RentPaidEvent{To: ownerID, Amount: rent, PropertyID: tile.ID})
				}
			}
		}
	}

	return events
}

// BuyProperty sells an unowned tile to the turn holder at list price. At
// most one purchase or auction start per turn.
func (r *Room) BuyProperty(playerID string, propertyID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.started {
		return reject(ReasonGameNotStarted)
	}
	if !r.assertTurn(playerID) {
		return reject(ReasonNotYourTurn)
	}
	if r.hasBoughtThisTurn {
		return reject(ReasonAlreadyBought)
	}
	if r.hasStartedAuctionThisTurn {
		return reject(ReasonAuctionStarted)
	}
	tile, ok := board.GetTile(propertyID)
	if !ok || !tile.Ownable() {
		return reject(ReasonInvalidProperty)
	}
	player, ok := r.players[playerID]
	if !ok {
		return reject(ReasonInvalidProperty)
	}
	if r.findOwner(propertyID) != "" {
		return reject(ReasonPropertyOwned)
	}
	price := float64(tile.Price)
	if price <= 0 {
		return reject(ReasonInvalidProperty)
	}
	r.ensureFiniteMoney(player, StartingMoney)
	if player.Money < price {
		return reject(ReasonInsufficientFunds)
	}

	r.hasBoughtThisTurn = true
	if !r.transferMoney(playerID, "", price, "purchase") {
		r.hasBoughtThisTurn = false
		return reject(ReasonInsufficientFunds)
	}
	r.assignProperty(propertyID, playerID)
	log.WithFields(log.Fields{"game": r.ID, "player": playerID, "tile": propertyID}).
		Info("property purchased")
	return nil
}

// BuildHouse adds one house to an owned, hotel-free property with fewer
// than four houses, then runs the unconditional bankruptcy check.
func (r *Room) BuildHouse(playerID string, propertyID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.build(playerID, propertyID, false)
}

// BuildHotel upgrades a fully-housed property to a hotel.
func (r *Room) BuildHotel(playerID string, propertyID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.build(playerID, propertyID, true)
}

func (r *Room) build(playerID string, propertyID int, hotel bool) error {
	if !r.started {
		return reject(ReasonGameNotStarted)
	}
	if !r.assertTurn(playerID) {
		return reject(ReasonNotYourTurn)
	}
	player, ok := r.players[playerID]
	if !ok {
		return reject(ReasonNotOwner)
	}
	own, ok := player.OwnedProperties[propertyID]
	if !ok {
		return reject(ReasonNotOwner)
	}
	tile, ok := board.GetTile(propertyID)
	if !ok || tile.Type != board.TypeProperty {
		return reject(ReasonCannotBuild)
	}
	if own.Hotel {
		return reject(ReasonCannotBuild)
	}

	var cost float64
	if hotel {
		if own.Houses < 4 {
			return reject(ReasonCannotBuild)
		}
		cost = float64(tile.HotelPrice)
	} else {
		if own.Houses >= 4 {
			return reject(ReasonCannotBuild)
		}
		cost = float64(tile.HousePrice)
	}
	if cost <= 0 {
		return reject(ReasonCannotBuild)
	}
	r.ensureFiniteMoney(player, 0)
	if player.Money < cost {
		return reject(ReasonInsufficientFunds)
	}

	reason := "build_house"
	if hotel {
		reason = "build_hotel"
	}
	if !r.transferMoney(playerID, "", cost, reason) {
		return reject(ReasonInsufficientFunds)
	}
	if hotel {
		own.Hotel = true
	} else {
		own.Houses++
	}
	r.checkBankruptcy(playerID)
	return nil
}

// PayJailFine clears jail immediately for a fixed fee, within the jailed
// player's own turn.
func (r *Room) PayJailFine(playerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.started {
		return reject(ReasonGameNotStarted)
	}
	if !r.assertTurn(playerID) {
		return reject(ReasonNotYourTurn)
	}
	player, ok := r.players[playerID]
	if !ok || !player.InJail {
		return reject(ReasonCannotPayFine)
	}

	if !r.settlePayment(playerID, "", JailFine, "jail_fine") {
		return reject(ReasonCannotPayFine)
	}
	player.InJail = false
	player.JailTurns = 0
	r.checkBankruptcy(playerID)
	return nil
}
