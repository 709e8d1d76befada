package game

// Dice is the result of one two-die roll.
type Dice struct {
	D1    int `json:"d1"`
	D2    int `json:"d2"`
	Total int `json:"total"`
}

func (r *Room) rollDice() Dice {
	d1 := r.rng.Intn(6) + 1
	d2 := r.rng.Intn(6) + 1
	return Dice{D1: d1, D2: d2, Total: d1 + d2}
}
