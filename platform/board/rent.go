package board

// Holding records one player's development state for an owned tile.
type Holding struct {
	Type   TileType `json:"type"`
	Houses int      `json:"houses"`
	Hotel  bool     `json:"hotel"`
}

// hasMonopoly reports whether holdings cover every property in the group.
func hasMonopoly(holdings map[int]*Holding, group string) bool {
	ids := GroupProperties(group)
	if len(ids) == 0 {
		return false
	}
	for _, id := range ids {
		if _, ok := holdings[id]; !ok {
			return false
		}
	}
	return true
}

// CalculateRent computes the rent owed for landing on tileID given the owner's
// holdings. diceTotal is the roll that caused the landing, or 0 when movement
// did not come from a dice roll (chance cards). A diceTotal outside [2,12]
// yields zero rent rather than an error.
func CalculateRent(tileID int, holdings map[int]*Holding, diceTotal int) int {
	tile, ok := GetTile(tileID)
	if !ok {
		return 0
	}
	if diceTotal != 0 && (diceTotal < 2 || diceTotal > 12) {
		return 0
	}

	switch tile.Type {
	case TypeProperty:
		own, ok := holdings[tileID]
		if !ok {
			return 0
		}
		rent := tile.BaseRent
		if !own.Hotel && own.Houses == 0 && hasMonopoly(holdings, tile.Group) {
			rent *= MonopolyBonus
		}
		if own.Hotel {
			rent *= HotelMultiplier
		} else if own.Houses > 0 {
			idx := own.Houses
			if idx >= len(HouseMultipliers) {
				idx = len(HouseMultipliers) - 1
			}
			rent *= HouseMultipliers[idx]
		}
		if rent < 0 {
			return 0
		}
		return rent

	case TypeAirport:
		count := 0
		for _, h := range holdings {
			if h.Type == TypeAirport {
				count++
			}
		}
		if count == 0 || diceTotal == 0 {
			return 0
		}
		return diceTotal * 25 * count

	case TypeUtility:
		count := 0
		for _, h := range holdings {
			if h.Type == TypeUtility {
				count++
			}
		}
		if count == 0 || diceTotal == 0 {
			return 0
		}
		multiplier := 10
		if count > 1 {
			multiplier = 20
		}
		return diceTotal * multiplier
	}

	return 0
}
