package models

// Game is one row in the room directory. Only lobby discovery lives in the
// database; live room state is memory-resident in platform/game.
type Game struct {
	Id     string `json:"id"`
	Name   string `json:"name"`
	Status string `json:"status"`
}

type GameCreateDto struct {
	Name string `json:"name"`
}

type VerifyGameDto struct {
	Code    string `query:"code"`
	User_id string `query:"user_id"`
}
