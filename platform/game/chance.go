package game

// ChanceCard is one surprise card. Type is "money" (signed Amount settles
// through the payment path), "move" (Delta re-runs tile resolution without a
// dice total), or "goto" (TargetType "jail").
type ChanceCard struct {
	ID         string  `json:"id"`
	Type       string  `json:"type"`
	Amount     float64 `json:"amount,omitempty"`
	Delta      int     `json:"delta,omitempty"`
	TargetType string  `json:"targetType,omitempty"`
	Text       string  `json:"text"`
}

var baseChanceCards = []ChanceCard{
	{ID: "gain50", Type: "money", Amount: 50, Text: "Side hustle paid off. Collect $50."},
	{ID: "gain150", Type: "money", Amount: 150, Text: "Angel investor backs you. Collect $150."},
	{ID: "lose50", Type: "money", Amount: -50, Text: "Unexpected bill. Pay $50."},
	{ID: "lose150", Type: "money", Amount: -150, Text: "Luxury vacation ran long. Pay $150."},
	{ID: "fwd3", Type: "move", Delta: 3, Text: "Fast-track success. Move forward 3 tiles."},
	{ID: "back3", Type: "move", Delta: -3, Text: "Market correction. Move back 3 tiles."},
	{ID: "gotoJail", Type: "goto", TargetType: "jail", Text: "Audit hits. Go directly to Jail."},
}

func (r *Room) shuffleChanceDeck() {
	deck := make([]ChanceCard, len(baseChanceCards))
	copy(deck, baseChanceCards)
	r.rng.Shuffle(len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})
	r.chanceDeck = deck
	r.chanceIndex = 0
}

// drawChanceCard pops the next card, reshuffling the whole deck once it is
// exhausted.
func (r *Room) drawChanceCard() ChanceCard {
	if r.chanceIndex >= len(r.chanceDeck) {
		r.shuffleChanceDeck()
	}
	card := r.chanceDeck[r.chanceIndex]
	r.chanceIndex++
	return card
}

func (r *Room) applyChanceCard(playerID string, card ChanceCard) []Event {
	if _, ok := r.players[playerID]; !ok {
		return nil
	}

	switch card.Type {
	case "money":
		if card.Amount > 0 {
			r.transferMoney("", playerID, card.Amount, "chance_gain")
		} else if card.Amount < 0 {
			r.settlePayment(playerID, "", -card.Amount, "chance_loss")
		}
	case "move":
		if card.Delta != 0 {
			tile := r.movePlayer(playerID, card.Delta)
			return r.resolveTile(playerID, tile, 0)
		}
	case "goto":
		if card.TargetType == "jail" {
			r.sendToJail(playerID)
		}
	}
	return nil
}
