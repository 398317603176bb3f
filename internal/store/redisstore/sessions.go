package redisstore

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/promptlab/promptlab/internal/auth"
)

const sessionKeyPrefix = "promptlab:session:"

// SessionStore keeps sessions in Redis with native TTL expiry. It satisfies
// auth.Store so it can be swapped in via SESSION_STORE=redis.
type SessionStore struct {
	rdb *redis.Client
}

func NewSessionStore(addr, password string, db int) *SessionStore {
	return &SessionStore{
		rdb: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
			DB:       db,
		}),
	}
}

func (s *SessionStore) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}

func (s *SessionStore) Close() error {
	return s.rdb.Close()
}

func (s *SessionStore) Put(ctx context.Context, sess auth.Session) error {
	b, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	ttl := time.Until(sess.ExpiresAt)
	if ttl <= 0 {
		return nil
	}
	return s.rdb.Set(ctx, sessionKeyPrefix+sess.ID, b, ttl).Err()
}

func (s *SessionStore) Get(ctx context.Context, id string) (auth.Session, bool) {
	b, err := s.rdb.Get(ctx, sessionKeyPrefix+id).Bytes()
	if err != nil {
		return auth.Session{}, false
	}
	var sess auth.Session
	if err := json.Unmarshal(b, &sess); err != nil {
		return auth.Session{}, false
	}
	if !time.Now().Before(sess.ExpiresAt) {
		_ = s.rdb.Del(ctx, sessionKeyPrefix+id).Err()
		return auth.Session{}, false
	}
	return sess, true
}

func (s *SessionStore) Delete(ctx context.Context, id string) error {
	return s.rdb.Del(ctx, sessionKeyPrefix+id).Err()
}
