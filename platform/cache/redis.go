package cache

import (
	"os"
	"time"

	"github.com/gomodule/redigo/redis"
)

// CreateRedisPool builds the shared pool used by the roll limiter. REDIS_URL
// is host:port; REDIS_PASSWORD is optional.
func CreateRedisPool() *redis.Pool {
	return &redis.Pool{
		MaxIdle:     10,
		MaxActive:   64,
		IdleTimeout: 60 * time.Second,
		Dial: func() (redis.Conn, error) {
			var opts []redis.DialOption
			if pass := os.Getenv("REDIS_PASSWORD"); pass != "" {
				opts = append(opts, redis.DialPassword(pass))
			}
			return redis.Dial("tcp", os.Getenv("REDIS_URL"), opts...)
		},
	}
}
