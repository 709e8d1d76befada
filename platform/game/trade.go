package game

import (
	"math"

	log "github.com/sirupsen/logrus"
	uuid "github.com/satori/go.uuid"

	"github.com/onlypoly/backend/platform/board"
)

// TradeStatus tracks a trade through its short life.
type TradeStatus string

const (
	TradePending  TradeStatus = "pending"
	TradeAccepted TradeStatus = "accepted"
	TradeRejected TradeStatus = "rejected"
)

// Trade is an ephemeral two-party offer: money and properties from the
// proposer against money and properties from the recipient.
type Trade struct {
	ID                string      `json:"id"`
	From              string      `json:"from"`
	To                string      `json:"to"`
	OfferMoney        float64     `json:"offerMoney"`
	RequestMoney      float64     `json:"requestMoney"`
	OfferProperties   []int       `json:"offerProperties"`
	RequestProperties []int       `json:"requestProperties"`
	Status            TradeStatus `json:"status"`
}

// TradeSystem negotiates two-party trades against its room. Validation is
// lazy: ownership and funds are only re-checked when a trade is accepted.
type TradeSystem struct {
	room   *Room
	active map[string]*Trade
}

func normalizeMoney(v float64) float64 {
	if !finite(v) || v < 0 {
		return 0
	}
	return math.Floor(v)
}

func normalizePropertyIDs(ids []int) []int {
	out := make([]int, 0, len(ids))
	seen := make(map[int]bool)
	for _, id := range ids {
		if id < 0 || id >= board.TotalTiles || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

// Propose stores a normalized pending trade and notifies the recipient only.
func (ts *TradeSystem) Propose(fromID, toID string, offerMoney, requestMoney float64, offerProperties, requestProperties []int) (*Trade, error) {
	r := ts.room
	r.mu.Lock()
	defer r.mu.Unlock()

	from, ok := r.players[fromID]
	to, ok2 := r.players[toID]
	if !ok || !ok2 || from.Bankrupt || to.Bankrupt || fromID == toID {
		return nil, reject(ReasonInvalidTrade)
	}

	trade := &Trade{
		ID:                uuid.NewV4().String(),
		From:              fromID,
		To:                toID,
		OfferMoney:        normalizeMoney(offerMoney),
		RequestMoney:      normalizeMoney(requestMoney),
		OfferProperties:   normalizePropertyIDs(offerProperties),
		RequestProperties: normalizePropertyIDs(requestProperties),
		Status:            TradePending,
	}
	ts.active[trade.ID] = trade
	r.notifier.NotifyPlayer(to.SocketID, "trade-offer", trade)
	return trade, nil
}

// Reject cancels a pending trade; either party may do so.
func (ts *TradeSystem) Reject(tradeID, byPlayerID string) {
	r := ts.room
	r.mu.Lock()
	defer r.mu.Unlock()

	trade, ok := ts.active[tradeID]
	if !ok || trade.Status != TradePending {
		return
	}
	if trade.From != byPlayerID && trade.To != byPlayerID {
		return
	}
	trade.Status = TradeRejected
	delete(ts.active, tradeID)
	r.notifier.Broadcast("trade-updated", trade)
}

// Accept re-validates funds and ownership at resolution time and executes
// both settlements and both reassignments as one unit. Any validation
// failure downgrades the trade to rejected with zero mutation.
func (ts *TradeSystem) Accept(tradeID, byPlayerID string) {
	r := ts.room
	r.mu.Lock()
	defer r.mu.Unlock()

	trade, ok := ts.active[tradeID]
	if !ok || trade.Status != TradePending || trade.To != byPlayerID {
		return
	}
	from, ok := r.players[trade.From]
	to, ok2 := r.players[trade.To]
	if !ok || !ok2 {
		ts.downgrade(trade)
		return
	}

	// Re-normalize; idempotent for already-normalized trades.
	trade.OfferMoney = normalizeMoney(trade.OfferMoney)
	trade.RequestMoney = normalizeMoney(trade.RequestMoney)
	trade.OfferProperties = normalizePropertyIDs(trade.OfferProperties)
	trade.RequestProperties = normalizePropertyIDs(trade.RequestProperties)

	if from.Money < trade.OfferMoney || to.Money < trade.RequestMoney {
		ts.downgrade(trade)
		return
	}
	for _, id := range trade.OfferProperties {
		if !from.Owns(id) {
			ts.downgrade(trade)
			return
		}
	}
	for _, id := range trade.RequestProperties {
		if !to.Owns(id) {
			ts.downgrade(trade)
			return
		}
	}

	if trade.OfferMoney > 0 {
		r.settlePayment(trade.From, trade.To, trade.OfferMoney, "trade_offer")
	}
	if trade.RequestMoney > 0 {
		r.settlePayment(trade.To, trade.From, trade.RequestMoney, "trade_request")
	}
	for _, id := range trade.OfferProperties {
		r.assignProperty(id, trade.To)
	}
	for _, id := range trade.RequestProperties {
		r.assignProperty(id, trade.From)
	}

	trade.Status = TradeAccepted
	delete(ts.active, tradeID)
	log.WithFields(log.Fields{"game": r.ID, "trade": trade.ID, "from": trade.From, "to": trade.To}).
		Info("trade executed")
	r.notifier.Broadcast("trade-updated", trade)
}

// downgrade marks a stale trade rejected without touching game state.
// Callers hold the room lock.
func (ts *TradeSystem) downgrade(trade *Trade) {
	trade.Status = TradeRejected
	delete(ts.active, trade.ID)
	ts.room.notifier.Broadcast("trade-updated", trade)
}
