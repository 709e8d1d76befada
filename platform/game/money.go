package game

import (
	"math"
	"sort"

	log "github.com/sirupsen/logrus"

	"github.com/onlypoly/backend/platform/board"
)

func roundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// ensureFiniteMoney clamps a non-finite balance to fallback and records the
// fault. Clamping is corrective only; a recorded fault means some upstream
// mutation violated the finiteness invariant.
func (r *Room) ensureFiniteMoney(p *Player, fallback float64) {
	if p == nil || finite(p.Money) {
		return
	}
	fault := &NumericFault{PlayerID: p.ID, Field: "money", Value: p.Money}
	r.faults = append(r.faults, fault)
	log.WithFields(log.Fields{"game": r.ID, "player": p.ID, "value": p.Money}).
		Error("non-finite money clamped")
	p.Money = fallback
}

// transferMoney moves amount from one player to another; an empty id on
// either side means the bank. It fails cleanly (no mutation) when the payer
// cannot afford the amount; use settlePayment for mandatory charges.
func (r *Room) transferMoney(fromID, toID string, amount float64, reason string) bool {
	if !finite(amount) || amount <= 0 {
		log.WithFields(log.Fields{"game": r.ID, "amount": amount, "reason": reason}).
			Warn("invalid transfer amount")
		return false
	}

	var from, to *Player
	if fromID != "" {
		if from = r.players[fromID]; from == nil {
			return false
		}
	}
	if toID != "" {
		if to = r.players[toID]; to == nil {
			return false
		}
	}

	if from != nil {
		r.ensureFiniteMoney(from, StartingMoney)
		if from.Money < amount {
			return false
		}
		from.Money = roundMoney(from.Money - amount)
		r.ensureFiniteMoney(from, 0)
		r.checkBankruptcy(fromID)
	}
	if to != nil {
		r.ensureFiniteMoney(to, 0)
		to.Money = roundMoney(to.Money + amount)
		r.ensureFiniteMoney(to, 0)
	}
	return true
}

// settlePayment is the guaranteed-success path for mandatory charges. It
// tries a normal transfer, then liquidates the payer's assets to cover the
// shortfall, and finally allows debt so bankruptcy resolution can run.
func (r *Room) settlePayment(fromID, toID string, amount float64, reason string) bool {
	if !finite(amount) || amount <= 0 {
		log.WithFields(log.Fields{"game": r.ID, "amount": amount, "reason": reason}).
			Warn("invalid settlement amount")
		return false
	}

	var from, to *Player
	if fromID != "" {
		if from = r.players[fromID]; from == nil {
			return false
		}
	}
	if toID != "" {
		if to = r.players[toID]; to == nil {
			return false
		}
	}

	if from == nil {
		// Bank paying a player: just credit the receiver.
		if to != nil {
			r.ensureFiniteMoney(to, 0)
			to.Money = roundMoney(to.Money + amount)
			r.ensureFiniteMoney(to, 0)
		}
		return true
	}

	r.ensureFiniteMoney(from, 0)
	if to != nil {
		r.ensureFiniteMoney(to, 0)
	}

	if r.transferMoney(fromID, toID, amount, reason) {
		return true
	}

	shortfall := amount - from.Money
	if shortfall > 0 {
		r.forceLiquidateAssets(fromID, shortfall)
		r.ensureFiniteMoney(from, 0)
		if r.transferMoney(fromID, toID, amount, reason) {
			return true
		}
	}

	// Still short: allow debt and let bankruptcy resolution run.
	from.Money = roundMoney(from.Money - amount)
	if !finite(from.Money) {
		from.Money = -amount
	}
	if to != nil {
		to.Money = roundMoney(to.Money + amount)
		r.ensureFiniteMoney(to, 0)
	}
	r.checkBankruptcy(fromID)
	return true
}

// liquidatableValue totals cash, the mortgage value of every holding, and
// half the development cost of houses and hotels. It bounds the rent a
// player can ever be charged.
func (r *Room) liquidatableValue(p *Player) float64 {
	if p == nil {
		return 0
	}
	total := p.Money
	for id, own := range p.OwnedProperties {
		tile, ok := board.GetTile(id)
		if !ok {
			continue
		}
		total += float64(tile.MortgageValue)
		if tile.Type == board.TypeProperty {
			if own.Hotel {
				total += math.Round(float64(tile.HotelPrice) * 0.5)
			} else if own.Houses > 0 {
				total += math.Round(float64(tile.HousePrice)*0.5) * float64(own.Houses)
			}
		}
	}
	return total
}

// ownedIDsDescending returns a player's holdings sorted highest id first,
// the order both liquidation passes consume them in.
func ownedIDsDescending(p *Player) []int {
	ids := make([]int, 0, len(p.OwnedProperties))
	for id := range p.OwnedProperties {
		ids = append(ids, id)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(ids)))
	return ids
}

// forceLiquidateAssets sells the player's developments and then whole
// properties, highest tile id first, until targetAmount has been raised or
// nothing is left.
func (r *Room) forceLiquidateAssets(playerID string, targetAmount float64) {
	player := r.players[playerID]
	if player == nil {
		return
	}
	r.ensureFiniteMoney(player, 0)

	liquidated := 0.0
	ids := ownedIDsDescending(player)

	for _, id := range ids {
		if liquidated >= targetAmount {
			break
		}
		own := player.OwnedProperties[id]
		tile, ok := board.GetTile(id)
		if !ok || own == nil {
			continue
		}
		if own.Hotel {
			value := math.Round(float64(tile.HotelPrice) * 0.5)
			player.Money = roundMoney(player.Money + value)
			liquidated += value
			own.Hotel = false
		}
		for own.Houses > 0 && liquidated < targetAmount {
			value := math.Round(float64(tile.HousePrice) * 0.5)
			player.Money = roundMoney(player.Money + value)
			liquidated += value
			own.Houses--
		}
	}

	for _, id := range ids {
		if liquidated >= targetAmount {
			break
		}
		tile, ok := board.GetTile(id)
		if !ok {
			continue
		}
		if _, held := player.OwnedProperties[id]; !held {
			continue
		}
		value := float64(tile.MortgageValue)
		player.Money = roundMoney(player.Money + value)
		liquidated += value
		delete(player.OwnedProperties, id)
	}
}

// checkBankruptcy runs whenever a balance may have gone negative. It
// liquidates automatically (hotels, houses highest id first, then whole
// properties) and, if the debt still stands, marks the player bankrupt,
// releases their remaining holdings and drops them from the turn order.
func (r *Room) checkBankruptcy(playerID string) {
	player := r.players[playerID]
	if player == nil {
		return
	}
	r.ensureFiniteMoney(player, 0)
	if player.Money >= 0 {
		return
	}

	ids := ownedIDsDescending(player)

	for _, id := range ids {
		if player.Money >= 0 {
			break
		}
		own := player.OwnedProperties[id]
		tile, ok := board.GetTile(id)
		if !ok || own == nil {
			continue
		}
		if own.Hotel && player.Money < 0 {
			player.Money = roundMoney(player.Money + math.Round(float64(tile.HotelPrice)*0.5))
			own.Hotel = false
		}
		for own.Houses > 0 && player.Money < 0 {
			player.Money = roundMoney(player.Money + math.Round(float64(tile.HousePrice)*0.5))
			own.Houses--
		}
	}

	for _, id := range ids {
		if player.Money >= 0 {
			break
		}
		tile, ok := board.GetTile(id)
		if !ok {
			continue
		}
		if _, held := player.OwnedProperties[id]; !held {
			continue
		}
		player.Money = roundMoney(player.Money + float64(tile.MortgageValue))
		delete(player.OwnedProperties, id)
	}

	if player.Money < 0 {
		for id := range player.OwnedProperties {
			delete(player.OwnedProperties, id)
		}
		player.Bankrupt = true
		r.removeFromTurnOrder(playerID)
		log.WithFields(log.Fields{"game": r.ID, "player": playerID}).Info("player bankrupt")
		r.notifier.Broadcast("player-bankrupt", map[string]string{"playerId": playerID})
	}
}
