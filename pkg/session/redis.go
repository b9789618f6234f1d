package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps session data in Redis; the cookie only carries the id.
type RedisStore struct {
	client *redis.Client
	opts   Options
}

func NewRedisStore(ctx context.Context, addr, password string, opts Options) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("session: ping redis: %w", err)
	}

	return &RedisStore{client: client, opts: opts}, nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

func redisKey(id string) string { return "percetakan:session:" + id }

func (s *RedisStore) Load(ctx context.Context, r *http.Request) (*Session, error) {
	cookie, err := r.Cookie(s.opts.CookieName)
	if err != nil || cookie.Value == "" {
		return newSession(), nil
	}

	raw, err := s.client.Get(ctx, redisKey(cookie.Value)).Bytes()
	if errors.Is(err, redis.Nil) {
		return newSession(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("session: redis get: %w", err)
	}

	sess := &Session{id: cookie.Value}
	if err := json.Unmarshal(raw, &sess.data); err != nil {
		return newSession(), nil
	}
	if sess.data.Values == nil {
		sess.data.Values = map[string]string{}
	}
	return sess, nil
}

func (s *RedisStore) Save(ctx context.Context, w http.ResponseWriter, sess *Session) error {
	if !sess.changed {
		return nil
	}

	if sess.renew || sess.empty() {
		if err := s.client.Del(ctx, redisKey(sess.id)).Err(); err != nil {
			return fmt.Errorf("session: redis del: %w", err)
		}
	}
	if sess.renew {
		sess.id = newSession().id
		sess.renew = false
	}

	if sess.empty() {
		http.SetCookie(w, s.opts.cookie("", -1))
		sess.changed = false
		return nil
	}

	raw, err := json.Marshal(sess.data)
	if err != nil {
		return fmt.Errorf("session: marshal: %w", err)
	}
	if err := s.client.Set(ctx, redisKey(sess.id), raw, s.opts.TTL).Err(); err != nil {
		return fmt.Errorf("session: redis set: %w", err)
	}

	http.SetCookie(w, s.opts.cookie(sess.id, int(s.opts.TTL.Seconds())))
	sess.changed = false
	return nil
}
