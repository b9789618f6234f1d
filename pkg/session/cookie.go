package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type cookieClaims struct {
	Data payload `json:"data"`
	jwt.RegisteredClaims
}

// CookieStore keeps the whole session inside an HS256 signed cookie.
type CookieStore struct {
	opts   Options
	secret []byte
}

func NewCookieStore(secret string, opts Options) (*CookieStore, error) {
	if secret == "" {
		return nil, errors.New("session: cookie store needs a secret")
	}
	return &CookieStore{opts: opts, secret: []byte(secret)}, nil
}

// Load never fails on a bad cookie; tampered or expired cookies start a new session.
func (c *CookieStore) Load(ctx context.Context, r *http.Request) (*Session, error) {
	cookie, err := r.Cookie(c.opts.CookieName)
	if err != nil || cookie.Value == "" {
		return newSession(), nil
	}

	claims := &cookieClaims{}
	token, err := jwt.ParseWithClaims(cookie.Value, claims, func(t *jwt.Token) (interface{}, error) {
		return c.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return newSession(), nil
	}

	sess := &Session{id: claims.ID, data: claims.Data}
	if sess.id == "" {
		sess.id = newSession().id
	}
	if sess.data.Values == nil {
		sess.data.Values = map[string]string{}
	}
	return sess, nil
}

func (c *CookieStore) Save(ctx context.Context, w http.ResponseWriter, s *Session) error {
	if !s.changed {
		return nil
	}
	if s.renew {
		s.id = newSession().id
		s.renew = false
	}

	if s.empty() {
		http.SetCookie(w, c.opts.cookie("", -1))
		s.changed = false
		return nil
	}

	now := time.Now()
	claims := cookieClaims{
		Data: s.data,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        s.id,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.opts.TTL)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return fmt.Errorf("session: sign cookie: %w", err)
	}

	http.SetCookie(w, c.opts.cookie(signed, int(c.opts.TTL.Seconds())))
	s.changed = false
	return nil
}
