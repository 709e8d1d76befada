package cache

import (
	"fmt"
	"time"

	"github.com/gomodule/redigo/redis"
)

// RollInterval is the minimum gap between two roll submissions from the same
// player, independent of the per-turn flag check.
const RollInterval = time.Second

// AllowRoll reports whether the player may submit a roll now, and if so
// claims the interval. Implemented as SET NX PX so retried submissions
// within the window are rejected atomically.
func AllowRoll(gameID, userID string, conn redis.Conn) bool {
	key := fmt.Sprintf("%s.%s.roll-limit", gameID, userID)
	reply, err := redis.String(conn.Do("SET", key, "1", "NX", "PX", int64(RollInterval/time.Millisecond)))
	if err == redis.ErrNil {
		// Window already claimed.
		return false
	}
	if err != nil {
		// Fail open: the turn-flag check still rejects duplicate rolls.
		return true
	}
	return reply == "OK"
}
