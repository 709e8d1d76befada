package board

// TileType discriminates the 40 board tiles.
type TileType string

const (
	TypeStart    TileType = "start"
	TypeProperty TileType = "property"
	TypeAirport  TileType = "airport"
	TypeUtility  TileType = "utility"
	TypeChance   TileType = "chance"
	TypeTax      TileType = "tax"
	TypeJail     TileType = "jail"
	TypeGotoJail TileType = "goto_jail"
	TypeVacation TileType = "vacation"
)

const (
	TotalTiles      = 40
	HotelMultiplier = 80
	MonopolyBonus   = 2
)

// HouseMultipliers indexes rent multipliers by house count (0-4).
var HouseMultipliers = [5]int{1, 5, 15, 45, 65}

// Tile is a single immutable board square. Built once at init, never mutated.
type Tile struct {
	ID            int      `json:"id"`
	Type          TileType `json:"type"`
	Name          string   `json:"name"`
	Country       string   `json:"country,omitempty"`
	Price         int      `json:"price,omitempty"`
	BaseRent      int      `json:"baseRent,omitempty"`
	HousePrice    int      `json:"housePrice,omitempty"`
	HotelPrice    int      `json:"hotelPrice,omitempty"`
	MortgageValue int      `json:"mortgageValue,omitempty"`
	Color         string   `json:"color,omitempty"`
	Group         string   `json:"group,omitempty"`
	Amount        int      `json:"amount,omitempty"`
	Salary        int      `json:"salary,omitempty"`
}

// Ownable reports whether the tile can be bought and rented out.
func (t Tile) Ownable() bool {
	return t.Type == TypeProperty || t.Type == TypeAirport || t.Type == TypeUtility
}

func property(id int, name, country string, price int, color string, baseRent int) Tile {
	half := price / 2
	return Tile{
		ID:            id,
		Type:          TypeProperty,
		Name:          name,
		Country:       country,
		Price:         price,
		BaseRent:      baseRent,
		HousePrice:    half,
		HotelPrice:    half,
		MortgageValue: half,
		Color:         color,
		Group:         country,
	}
}

func airport(id int, name string) Tile {
	return Tile{ID: id, Type: TypeAirport, Name: name, Price: 200, MortgageValue: 100, Group: "airport"}
}

func utility(id int, name string) Tile {
	return Tile{ID: id, Type: TypeUtility, Name: name, Price: 150, MortgageValue: 75, Group: "utility"}
}

func chance(id int) Tile {
	return Tile{ID: id, Type: TypeChance, Name: "Surprise"}
}

func tax(id int, name string, amount int) Tile {
	return Tile{ID: id, Type: TypeTax, Name: name, Amount: amount}
}

// Tiles is the full catalog, indexed by tile id.
// Layout: GO at 0, Jail at 10, Free Parking at 20, Go To Jail at 30.
var Tiles = [TotalTiles]Tile{
	{ID: 0, Type: TypeStart, Name: "GO", Salary: 200},

	property(1, "Karachi", "PAKISTAN", 60, "#8d6e63", 2),
	chance(2),
	property(3, "Lahore", "PAKISTAN", 60, "#8d6e63", 4),
	tax(4, "Income Tax", 200),
	airport(5, "Dubai Int."),
	property(6, "Mexico City", "MEXICO", 100, "#03a9f4", 6),
	chance(7),
	property(8, "Cancún", "MEXICO", 100, "#03a9f4", 6),
	property(9, "Warsaw", "POLAND", 120, "#e91e63", 8),

	{ID: 10, Type: TypeJail, Name: "Jail"},

	property(11, "Krakow", "POLAND", 120, "#e91e63", 8),
	utility(12, "Electric Company"),
	property(13, "Mumbai", "INDIA", 140, "#ff9800", 10),
	property(14, "Delhi", "INDIA", 140, "#ff9800", 10),
	airport(15, "Chhatrapati Int."),
	property(16, "Bangalore", "INDIA", 160, "#ff9800", 12),
	chance(17),
	property(18, "Moscow", "RUSSIA", 180, "#f44336", 14),
	property(19, "St. Petersburg", "RUSSIA", 180, "#f44336", 14),

	{ID: 20, Type: TypeVacation, Name: "Free Parking"},

	property(21, "Shanghai", "CHINA", 220, "#ffeb3b", 18),
	chance(22),
	property(23, "Beijing", "CHINA", 220, "#ffeb3b", 18),
	property(24, "Shenzhen", "CHINA", 240, "#ffeb3b", 20),
	airport(25, "Beijing Capital"),
	property(26, "Doha", "QATAR", 260, "#4caf50", 22),
	property(27, "Al Rayyan", "QATAR", 260, "#4caf50", 22),
	utility(28, "Water Works"),
	property(29, "Tokyo", "JAPAN", 280, "#2196f3", 24),

	{ID: 30, Type: TypeGotoJail, Name: "Go To Jail"},

	property(31, "Osaka", "JAPAN", 300, "#2196f3", 26),
	property(32, "Kyoto", "JAPAN", 300, "#2196f3", 26),
	chance(33),
	property(34, "New York", "USA", 350, "#9c27b0", 35),
	airport(35, "JFK Int."),
	chance(36),
	property(37, "San Francisco", "USA", 400, "#9c27b0", 50),
	tax(38, "Luxury Tax", 100),
	chance(39),
}

// GetTile returns the tile for an id, reporting whether the id is in range.
func GetTile(id int) (Tile, bool) {
	if id < 0 || id >= TotalTiles {
		return Tile{}, false
	}
	return Tiles[id], true
}

// JailTile returns the id of the jail square.
func JailTile() int {
	for _, t := range Tiles {
		if t.Type == TypeJail {
			return t.ID
		}
	}
	return 0
}

// GroupProperties returns the ids of every property tile in a group.
func GroupProperties(group string) []int {
	var ids []int
	for _, t := range Tiles {
		if t.Type == TypeProperty && t.Group == group {
			ids = append(ids, t.ID)
		}
	}
	return ids
}
