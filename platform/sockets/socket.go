package socket

import (
	"encoding/json"
	"net/http"
	"strconv"
	"sync"

	socketio "github.com/googollee/go-socket.io"
	"github.com/rs/cors"
	log "github.com/sirupsen/logrus"

	"github.com/onlypoly/backend/app/models"
	"github.com/onlypoly/backend/pkg"
	"github.com/onlypoly/backend/platform/auction"
	"github.com/onlypoly/backend/platform/cache"
	"github.com/onlypoly/backend/platform/database"
	"github.com/onlypoly/backend/platform/game"
)

// session is the per-connection context set on join.
type session struct {
	GameID string
	UserID string
}

// roomNotifier adapts the socket.io server to the engine's Notifier
// contract. Player-directed messages go to the private room every
// connection joins under its own socket id.
type roomNotifier struct {
	server *socketio.Server
	gameID string
}

func (n roomNotifier) Broadcast(event string, payload interface{}) {
	n.server.BroadcastToRoom("/", n.gameID, event, mustJSON(payload))
}

func (n roomNotifier) NotifyPlayer(socketID string, event string, payload interface{}) {
	n.server.BroadcastToRoom("/", socketID, event, mustJSON(payload))
}

func mustJSON(v interface{}) string {
	b, err := json.Marshal(v)
	if err != nil {
		log.WithError(err).Error("payload marshal failed")
		return "{}"
	}
	return string(b)
}

func CreateSocketIOServer() {

	server, err := socketio.NewServer(nil)
	if err != nil {
		log.WithError(err).Fatal("socket server init failed")
	}
	db := database.PostgreSQLConnection()
	defer db.Close()

	pool := cache.CreateRedisPool()
	defer pool.Close()

	registry := game.NewRegistry()

	// One auction collaborator per room, created lazily with the room.
	var auctionsMu sync.Mutex
	auctions := make(map[string]*auction.System)

	getRoom := func(gameID string) *game.Room {
		notifier := roomNotifier{server: server, gameID: gameID}
		room := registry.GetOrCreate(gameID, notifier)
		auctionsMu.Lock()
		if _, ok := auctions[gameID]; !ok {
			sys := auction.New(room, notifier)
			auctions[gameID] = sys
			room.SetAuctioneer(sys)
		}
		auctionsMu.Unlock()
		return room
	}

	dropRoom := func(gameID string) {
		registry.Remove(gameID)
		auctionsMu.Lock()
		delete(auctions, gameID)
		auctionsMu.Unlock()
		gameRow := &models.Game{Id: gameID}
		if _, err := db.Model(gameRow).WherePK().Delete(); err != nil {
			log.WithError(err).WithField("game", gameID).Warn("directory cleanup failed")
		}
	}

	broadcastState := func(gameID string, room *game.Room) {
		server.BroadcastToRoom("/", gameID, "state-update", mustJSON(room.Snapshot()))
	}

	rejectWith := func(s socketio.Conn, reason game.Reason) {
		s.Emit("action-rejected", mustJSON(map[string]string{"reason": string(reason)}))
	}

	rejectErr := func(s socketio.Conn, err error) {
		if reason := game.RejectReason(err); reason != "" {
			rejectWith(s, reason)
		}
	}

	server.OnConnect("/", func(s socketio.Conn) error {
		// Private room for player-directed notifications.
		s.Join(s.ID())
		return nil
	})

	server.OnEvent("/", "join-game", func(s socketio.Conn, jsonStr string) {
		var result map[string]string
		json.Unmarshal([]byte(jsonStr), &result)

		gameID, ok := result["game_id"]
		if !ok {
			s.Emit("error-message", "Game id not passed")
			return
		}
		userID, ok := result["user_id"]
		if !ok {
			s.Emit("error-message", "User not authenticated")
			s.Emit("failed")
			return
		}
		gameRow := &models.Game{Id: gameID}
		if err := db.Model(gameRow).WherePK().Select(); err != nil {
			s.Emit("error-message", "Invalid game")
			s.Emit("failed")
			return
		}

		room := getRoom(gameID)

		// Reconnects resume the existing seat with a full snapshot replay.
		if player, ok := room.Rejoin(userID, s.ID()); ok {
			s.SetContext(session{GameID: gameID, UserID: userID})
			s.Join(gameID)
			s.Emit("joined-game", mustJSON(map[string]interface{}{
				"playerId": player.ID,
				"token":    player.Token,
				"hostId":   room.Snapshot().HostID,
			}))
			broadcastState(gameID, room)
			log.WithFields(log.Fields{"game": gameID, "player": userID}).Info("player rejoined")
			return
		}

		token := pkg.GenerateToken()
		player, err := room.AddPlayer(userID, result["name"], s.ID(), token)
		if err != nil {
			rejectErr(s, err)
			return
		}

		s.SetContext(session{GameID: gameID, UserID: userID})
		s.Join(gameID)
		s.Emit("joined-game", mustJSON(map[string]interface{}{
			"playerId": player.ID,
			"token":    token,
			"hostId":   room.Snapshot().HostID,
		}))
		broadcastState(gameID, room)
		log.WithFields(log.Fields{"game": gameID, "player": userID}).Info("player joined")
	})

	server.OnEvent("/", "set-color", func(s socketio.Conn, jsonStr string) {
		var result map[string]string
		json.Unmarshal([]byte(jsonStr), &result)

		room, ok := registry.Get(result["game_id"])
		if !ok {
			return
		}
		if err := room.SetPlayerColor(result["user_id"], result["color"]); err != nil {
			s.Emit("color-rejected", mustJSON(map[string]string{"reason": string(game.ReasonColorTaken)}))
			return
		}
		broadcastState(result["game_id"], room)
	})

	server.OnEvent("/", "set-ready", func(s socketio.Conn, jsonStr string) {
		var result map[string]string
		json.Unmarshal([]byte(jsonStr), &result)

		room, ok := registry.Get(result["game_id"])
		if !ok {
			return
		}
		room.MarkReady(result["user_id"], result["ready"] == "true")
		broadcastState(result["game_id"], room)
	})

	server.OnEvent("/", "start-game", func(s socketio.Conn, jsonStr string) {
		var result map[string]string
		json.Unmarshal([]byte(jsonStr), &result)

		room, ok := registry.Get(result["game_id"])
		if !ok {
			return
		}
		if err := room.Start(result["user_id"]); err != nil {
			s.Emit("error-message", "Unable to start game")
			rejectErr(s, err)
			return
		}
		gameRow := &models.Game{Id: result["game_id"]}
		if _, err := db.Model(gameRow).WherePK().Set("status = ?", "in progress").Update(); err != nil {
			log.WithError(err).Warn("directory status update failed")
		}
		broadcastState(result["game_id"], room)
	})

	server.OnEvent("/", "roll-dice", func(s socketio.Conn, jsonStr string) {
		var result map[string]string
		json.Unmarshal([]byte(jsonStr), &result)

		room, ok := registry.Get(result["game_id"])
		if !ok {
			return
		}

		conn := pool.Get()
		allowed := cache.AllowRoll(result["game_id"], result["user_id"], conn)
		conn.Close()
		if !allowed {
			rejectWith(s, game.ReasonTooFast)
			return
		}

		rollResult, err := room.Roll(result["user_id"])
		if err != nil {
			rejectErr(s, err)
			return
		}
		events, merr := game.MarshalEvents(rollResult.Events)
		if merr != nil {
			log.WithError(merr).Error("event marshal failed")
		}
		server.BroadcastToRoom("/", result["game_id"], "dice-rolled", mustJSON(map[string]interface{}{
			"playerId":   result["user_id"],
			"dice":       rollResult.Dice,
			"landedTile": rollResult.Tile,
			"events":     events,
		}))
		broadcastState(result["game_id"], room)
	})

	server.OnEvent("/", "request-buy", func(s socketio.Conn, jsonStr string) {
		var result map[string]string
		json.Unmarshal([]byte(jsonStr), &result)

		room, ok := registry.Get(result["game_id"])
		if !ok {
			return
		}
		propertyID, err := strconv.Atoi(result["property_id"])
		if err != nil {
			rejectWith(s, game.ReasonInvalidProperty)
			return
		}
		if err := room.BuyProperty(result["user_id"], propertyID); err != nil {
			rejectErr(s, err)
			return
		}
		broadcastState(result["game_id"], room)
	})

	server.OnEvent("/", "start-auction", func(s socketio.Conn, jsonStr string) {
		var result map[string]string
		json.Unmarshal([]byte(jsonStr), &result)

		room, ok := registry.Get(result["game_id"])
		if !ok {
			return
		}
		propertyID, err := strconv.Atoi(result["property_id"])
		if err != nil {
			rejectWith(s, game.ReasonInvalidProperty)
			return
		}
		if _, err := room.StartAuction(result["user_id"], propertyID); err != nil {
			rejectErr(s, err)
		}
	})

	server.OnEvent("/", "auction-bid", func(s socketio.Conn, jsonStr string) {
		var result map[string]string
		json.Unmarshal([]byte(jsonStr), &result)

		step, err := strconv.Atoi(result["step"])
		if err != nil || (step != 2 && step != 10 && step != 100) {
			rejectWith(s, game.ReasonInvalidBidStep)
			return
		}
		auctionsMu.Lock()
		sys := auctions[result["game_id"]]
		auctionsMu.Unlock()
		if sys == nil || !sys.PlaceBid(result["user_id"], float64(step)) {
			rejectWith(s, game.ReasonBidRejected)
		}
	})

	server.OnEvent("/", "build-house", func(s socketio.Conn, jsonStr string) {
		var result map[string]string
		json.Unmarshal([]byte(jsonStr), &result)

		room, ok := registry.Get(result["game_id"])
		if !ok {
			return
		}
		propertyID, err := strconv.Atoi(result["property_id"])
		if err != nil {
			rejectWith(s, game.ReasonInvalidProperty)
			return
		}
		if err := room.BuildHouse(result["user_id"], propertyID); err != nil {
			rejectErr(s, err)
			return
		}
		broadcastState(result["game_id"], room)
	})

	server.OnEvent("/", "build-hotel", func(s socketio.Conn, jsonStr string) {
		var result map[string]string
		json.Unmarshal([]byte(jsonStr), &result)

		room, ok := registry.Get(result["game_id"])
		if !ok {
			return
		}
		propertyID, err := strconv.Atoi(result["property_id"])
		if err != nil {
			rejectWith(s, game.ReasonInvalidProperty)
			return
		}
		if err := room.BuildHotel(result["user_id"], propertyID); err != nil {
			rejectErr(s, err)
			return
		}
		broadcastState(result["game_id"], room)
	})

	server.OnEvent("/", "pay-jail-fine", func(s socketio.Conn, jsonStr string) {
		var result map[string]string
		json.Unmarshal([]byte(jsonStr), &result)

		room, ok := registry.Get(result["game_id"])
		if !ok {
			return
		}
		if err := room.PayJailFine(result["user_id"]); err != nil {
			rejectErr(s, err)
			return
		}
		broadcastState(result["game_id"], room)
	})

	server.OnEvent("/", "end-turn", func(s socketio.Conn, jsonStr string) {
		var result map[string]string
		json.Unmarshal([]byte(jsonStr), &result)

		room, ok := registry.Get(result["game_id"])
		if !ok {
			return
		}
		if err := room.EndTurn(result["user_id"]); err != nil {
			rejectErr(s, err)
			return
		}
		broadcastState(result["game_id"], room)
	})

	server.OnEvent("/", "propose-trade", func(s socketio.Conn, jsonStr string) {
		var payload struct {
			GameID            string  `json:"game_id"`
			UserID            string  `json:"user_id"`
			ToPlayerID        string  `json:"toPlayerId"`
			OfferMoney        float64 `json:"offerMoney"`
			RequestMoney      float64 `json:"requestMoney"`
			OfferProperties   []int   `json:"offerProperties"`
			RequestProperties []int   `json:"requestProperties"`
		}
		if err := json.Unmarshal([]byte(jsonStr), &payload); err != nil {
			rejectWith(s, game.ReasonInvalidTrade)
			return
		}
		room, ok := registry.Get(payload.GameID)
		if !ok {
			return
		}
		_, err := room.Trades().Propose(payload.UserID, payload.ToPlayerID,
			payload.OfferMoney, payload.RequestMoney,
			payload.OfferProperties, payload.RequestProperties)
		if err != nil {
			rejectErr(s, err)
		}
	})

	server.OnEvent("/", "accept-trade", func(s socketio.Conn, jsonStr string) {
		var result map[string]string
		json.Unmarshal([]byte(jsonStr), &result)

		room, ok := registry.Get(result["game_id"])
		if !ok {
			return
		}
		room.Trades().Accept(result["trade_id"], result["user_id"])
		broadcastState(result["game_id"], room)
	})

	server.OnEvent("/", "reject-trade", func(s socketio.Conn, jsonStr string) {
		var result map[string]string
		json.Unmarshal([]byte(jsonStr), &result)

		room, ok := registry.Get(result["game_id"])
		if !ok {
			return
		}
		room.Trades().Reject(result["trade_id"], result["user_id"])
	})

	server.OnError("/", func(s socketio.Conn, e error) {
		log.WithError(e).Warn("socket error")
	})

	server.OnDisconnect("/", func(s socketio.Conn, reason string) {
		sess, ok := s.Context().(session)
		if !ok {
			return
		}
		room, found := registry.Get(sess.GameID)
		if !found {
			return
		}
		if !room.DropConnection(sess.UserID, s.ID()) {
			// The seat moved to a newer connection.
			return
		}
		server.BroadcastToRoom("/", sess.GameID, "player-left", sess.UserID)
		if room.Empty() {
			server.BroadcastToRoom("/", sess.GameID, "game-over")
			dropRoom(sess.GameID)
			return
		}
		broadcastState(sess.GameID, room)
	})

	go server.Serve()
	defer server.Close()

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowCredentials: true,
	})

	mux := http.NewServeMux()
	mux.Handle("/socket.io/", server)
	http.ListenAndServe(":8000", c.Handler(mux))
}
