package board

import "testing"

func TestRentMonopolyBonus(t *testing.T) {
	// Owning both PAKISTAN properties (base rents 2 and 4) with no houses
	// doubles the rent on each.
	holdings := map[int]*Holding{
		1: {Type: TypeProperty},
		3: {Type: TypeProperty},
	}
	if rent := CalculateRent(1, holdings, 7); rent != 4 {
		t.Errorf("rent on tile 1 = %d, want 4", rent)
	}
	if rent := CalculateRent(3, holdings, 7); rent != 8 {
		t.Errorf("rent on tile 3 = %d, want 8", rent)
	}

	// Partial group: no bonus.
	partial := map[int]*Holding{1: {Type: TypeProperty}}
	if rent := CalculateRent(1, partial, 7); rent != 2 {
		t.Errorf("rent without monopoly = %d, want 2", rent)
	}
}

func TestRentMonopolyBonusSuppressedByDevelopment(t *testing.T) {
	holdings := map[int]*Holding{
		1: {Type: TypeProperty, Houses: 1},
		3: {Type: TypeProperty},
	}
	// One house: house multiplier applies, monopoly bonus does not.
	if rent := CalculateRent(1, holdings, 7); rent != 2*HouseMultipliers[1] {
		t.Errorf("rent with 1 house = %d, want %d", rent, 2*HouseMultipliers[1])
	}
	// Sibling still undeveloped and part of a full group: bonus applies there.
	if rent := CalculateRent(3, holdings, 7); rent != 8 {
		t.Errorf("rent on undeveloped sibling = %d, want 8", rent)
	}
}

func TestRentHouseAndHotelMultipliers(t *testing.T) {
	for houses := 1; houses <= 4; houses++ {
		holdings := map[int]*Holding{1: {Type: TypeProperty, Houses: houses}}
		want := 2 * HouseMultipliers[houses]
		if rent := CalculateRent(1, holdings, 7); rent != want {
			t.Errorf("%d houses: rent = %d, want %d", houses, rent, want)
		}
	}

	// House count beyond the table clamps to the last multiplier.
	over := map[int]*Holding{1: {Type: TypeProperty, Houses: 9}}
	if rent := CalculateRent(1, over, 7); rent != 2*HouseMultipliers[4] {
		t.Errorf("clamped rent = %d, want %d", rent, 2*HouseMultipliers[4])
	}

	hotel := map[int]*Holding{1: {Type: TypeProperty, Hotel: true}}
	if rent := CalculateRent(1, hotel, 7); rent != 2*HotelMultiplier {
		t.Errorf("hotel rent = %d, want %d", rent, 2*HotelMultiplier)
	}
}

func TestRentAirports(t *testing.T) {
	holdings := map[int]*Holding{
		5:  {Type: TypeAirport},
		15: {Type: TypeAirport},
	}
	if rent := CalculateRent(5, holdings, 7); rent != 350 {
		t.Errorf("airport rent = %d, want 350 (7 x 25 x 2)", rent)
	}
	// No dice total: free landing.
	if rent := CalculateRent(5, holdings, 0); rent != 0 {
		t.Errorf("airport rent without dice = %d, want 0", rent)
	}
	if rent := CalculateRent(5, map[int]*Holding{}, 7); rent != 0 {
		t.Errorf("airport rent with no airports held = %d, want 0", rent)
	}
}

func TestRentUtilities(t *testing.T) {
	one := map[int]*Holding{12: {Type: TypeUtility}}
	if rent := CalculateRent(12, one, 6); rent != 60 {
		t.Errorf("single utility rent = %d, want 60", rent)
	}
	two := map[int]*Holding{
		12: {Type: TypeUtility},
		28: {Type: TypeUtility},
	}
	if rent := CalculateRent(12, two, 6); rent != 120 {
		t.Errorf("double utility rent = %d, want 120", rent)
	}
}

func TestRentInvalidDiceTotal(t *testing.T) {
	holdings := map[int]*Holding{
		1: {Type: TypeProperty},
		5: {Type: TypeAirport},
	}
	for _, dice := range []int{1, 13, -5, 100} {
		if rent := CalculateRent(1, holdings, dice); rent != 0 {
			t.Errorf("dice %d: property rent = %d, want 0", dice, rent)
		}
		if rent := CalculateRent(5, holdings, dice); rent != 0 {
			t.Errorf("dice %d: airport rent = %d, want 0", dice, rent)
		}
	}
}

func TestRentNonRentable(t *testing.T) {
	if rent := CalculateRent(0, map[int]*Holding{}, 7); rent != 0 {
		t.Errorf("rent on GO = %d, want 0", rent)
	}
	if rent := CalculateRent(-1, nil, 7); rent != 0 {
		t.Errorf("rent on out-of-range tile = %d, want 0", rent)
	}
	if rent := CalculateRent(1, map[int]*Holding{}, 7); rent != 0 {
		t.Errorf("rent on unowned property = %d, want 0", rent)
	}
}
