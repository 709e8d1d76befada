package game

import "encoding/json"

// EventType names one kind of tile-resolution event.
type EventType string

const (
	EventTax             EventType = "tax"
	EventChance          EventType = "chance"
	EventRentPaid        EventType = "rent_paid"
	EventGotoJail        EventType = "goto_jail"
	EventUnownedProperty EventType = "unowned_property"
	EventOwnProperty     EventType = "own_property"
	EventVacation        EventType = "vacation"
)

// Event is one entry in the ordered list produced by resolving a landed-on
// tile. The set of implementations is closed; each variant carries only the
// fields relevant to its kind.
type Event interface {
	Kind() EventType
}

type TaxEvent struct {
	Amount float64 `json:"amount"`
}

func (TaxEvent) Kind() EventType { return EventTax }

type ChanceEvent struct {
	Card ChanceCard `json:"card"`
}

func (ChanceEvent) Kind() EventType { return EventChance }

type RentPaidEvent struct {
	To         string  `json:"to"`
	Amount     float64 `json:"amount"`
	PropertyID int     `json:"propertyId"`
}

func (RentPaidEvent) Kind() EventType { return EventRentPaid }

type GotoJailEvent struct{}

func (GotoJailEvent) Kind() EventType { return EventGotoJail }

type UnownedPropertyEvent struct {
	PropertyID int `json:"propertyId"`
}

func (UnownedPropertyEvent) Kind() EventType { return EventUnownedProperty }

type OwnPropertyEvent struct {
	PropertyID int `json:"propertyId"`
}

func (OwnPropertyEvent) Kind() EventType { return EventOwnProperty }

type VacationEvent struct{}

func (VacationEvent) Kind() EventType { return EventVacation }

// MarshalEvents encodes events for the wire with their type tag attached.
func MarshalEvents(events []Event) ([]json.RawMessage, error) {
	out := make([]json.RawMessage, 0, len(events))
	for _, ev := range events {
		body, err := json.Marshal(ev)
		if err != nil {
			return nil, err
		}
		var fields map[string]interface{}
		if err := json.Unmarshal(body, &fields); err != nil {
			return nil, err
		}
		fields["type"] = ev.Kind()
		tagged, err := json.Marshal(fields)
		if err != nil {
			return nil, err
		}
		out = append(out, tagged)
	}
	return out, nil
}
