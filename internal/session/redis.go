package session

// This file defines a Redis-backed session store for consoles that share
// one login across several shells or hosts.  The client parameters are
// loaded from environment variables.  If connection fails during startup,
// NewRedisClient returns nil and callers should degrade gracefully by
// falling back to the file store.

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"ticketdesk/internal/model"
)

// Key layout of the redis store.  Everything lives under a fixed prefix so
// a shared redis instance is not polluted.
const (
	redisSessionKey = "ticketdesk:session"
	redisBookingKey = "ticketdesk:current_booking"
)

// redisTimeout bounds every store operation; a session lookup must never
// hang a console command.
const redisTimeout = 2 * time.Second

// NewRedisClient instantiates a Redis client using environment variables.
// Supported variables are:
//   REDIS_HOST and REDIS_PORT – hostname and port of the Redis server
//   REDIS_ADDR – host:port shorthand (takes precedence if both host/port and addr are set)
//   REDIS_PASSWORD – optional password
//   REDIS_DB – database number (default 0)
//   REDIS_TLS – enable TLS when "true" or "1"
// The returned client may be nil if a connection cannot be established.
func NewRedisClient() *redis.Client {
	host := os.Getenv("REDIS_HOST")
	port := os.Getenv("REDIS_PORT")
	addr := os.Getenv("REDIS_ADDR")
	if host != "" && port != "" {
		addr = host + ":" + port
	}
	if addr == "" {
		addr = "localhost:6379"
	}
	pwd := os.Getenv("REDIS_PASSWORD")
	dbNum := 0
	if dbStr := os.Getenv("REDIS_DB"); dbStr != "" {
		if n, err := strconv.Atoi(dbStr); err == nil {
			dbNum = n
		}
	}
	var tlsConf *tls.Config
	if tlsEnv := os.Getenv("REDIS_TLS"); strings.EqualFold(tlsEnv, "true") || tlsEnv == "1" {
		tlsConf = &tls.Config{InsecureSkipVerify: true}
	}
	client := redis.NewClient(&redis.Options{
		Addr:      addr,
		Password:  pwd,
		DB:        dbNum,
		TLSConfig: tlsConf,
	})
	// Ping the server with a short timeout.  Return nil on failure.
	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil
	}
	return client
}

// RedisStore persists the session as JSON under a fixed key.  Unlike the
// file store, transport errors are surfaced: a broken redis connection is
// an operational problem, not an absent session.
type RedisStore struct {
	rdb *redis.Client
}

// NewRedisStore wraps an already-connected client.
func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func (r *RedisStore) Get() (*model.Session, error) {
	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()
	b, err := r.rdb.Get(ctx, redisSessionKey).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var s model.Session
	if err := json.Unmarshal(b, &s); err != nil {
		// A corrupt value is unusable; report absence, as the file store does.
		return nil, nil
	}
	return &s, nil
}

func (r *RedisStore) Set(s *model.Session) error {
	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return r.rdb.Set(ctx, redisSessionKey, b, 0).Err()
}

func (r *RedisStore) Clear() error {
	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()
	// DEL of a missing key is a no-op, which gives us idempotent clears.
	return r.rdb.Del(ctx, redisSessionKey).Err()
}

func (r *RedisStore) ActiveBookingID() (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()
	id, err := r.rdb.Get(ctx, redisBookingKey).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *RedisStore) SetActiveBookingID(id int64) error {
	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()
	return r.rdb.Set(ctx, redisBookingKey, id, 0).Err()
}

func (r *RedisStore) ClearActiveBookingID() error {
	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()
	return r.rdb.Del(ctx, redisBookingKey).Err()
}
