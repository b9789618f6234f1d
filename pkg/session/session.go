// Package session keeps per-visitor state between requests: the role markers
// set at login and one-shot flash notices.
//
// Usage:
//
//	r.Use(session.Middleware(store, log))
//
//	sess := session.FromContext(r.Context())
//	sess.Set(session.KeyUser, user.ID)
//	sess.AddFlash(session.FlashSuccess, "Login berhasil!")
package session

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Role markers and the names stored alongside them.
const (
	KeyUser      = "user"
	KeyUserName  = "user_name"
	KeyAdmin     = "admin"
	KeyAdminName = "admin_name"
)

// Flash categories.
const (
	FlashSuccess = "success"
	FlashInfo    = "info"
	FlashWarning = "warning"
	FlashDanger  = "danger"
)

type Options struct {
	CookieName string
	TTL        time.Duration
	Secure     bool
	Path       string
}

func DefaultOptions() Options {
	return Options{
		CookieName: "percetakan_session",
		TTL:        24 * time.Hour,
		Path:       "/",
	}
}

func (o Options) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     o.CookieName,
		Value:    value,
		Path:     o.Path,
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   o.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}

type Flash struct {
	Category string `json:"category"`
	Message  string `json:"message"`
}

type payload struct {
	Values  map[string]string `json:"values,omitempty"`
	Flashes []Flash           `json:"flashes,omitempty"`
}

// Session is the in-request handle. It is not safe for concurrent use.
type Session struct {
	id      string
	data    payload
	changed bool
	renew   bool
}

func newSession() *Session {
	return &Session{
		id:   uuid.NewString(),
		data: payload{Values: map[string]string{}},
	}
}

func (s *Session) ID() string { return s.id }

func (s *Session) Get(key string) (string, bool) {
	v, ok := s.data.Values[key]
	return v, ok && v != ""
}

func (s *Session) Set(key, value string) {
	s.data.Values[key] = value
	s.changed = true
}

func (s *Session) Delete(key string) {
	if _, ok := s.data.Values[key]; ok {
		delete(s.data.Values, key)
		s.changed = true
	}
}

// AddFlash queues a notice for the next rendered page.
func (s *Session) AddFlash(category, message string) {
	s.data.Flashes = append(s.data.Flashes, Flash{Category: category, Message: message})
	s.changed = true
}

// Flashes returns and clears the queued notices.
func (s *Session) Flashes() []Flash {
	flashes := s.data.Flashes
	if len(flashes) > 0 {
		s.data.Flashes = nil
		s.changed = true
	}
	return flashes
}

// Clear drops every value and flash (logout).
func (s *Session) Clear() {
	s.data = payload{Values: map[string]string{}}
	s.changed = true
}

// Renew asks the store to issue a fresh session id on save (login).
func (s *Session) Renew() {
	s.renew = true
	s.changed = true
}

func (s *Session) empty() bool {
	return len(s.data.Values) == 0 && len(s.data.Flashes) == 0
}

// Store loads and persists sessions.
type Store interface {
	Load(ctx context.Context, r *http.Request) (*Session, error)
	Save(ctx context.Context, w http.ResponseWriter, s *Session) error
}

type ctxKey struct{}

// FromContext returns the request session, or a detached empty one.
func FromContext(ctx context.Context) *Session {
	if s, ok := ctx.Value(ctxKey{}).(*Session); ok {
		return s
	}
	return newSession()
}

func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// saveWriter persists the session right before the response header goes out.
type saveWriter struct {
	http.ResponseWriter
	save func()
	done bool
}

func (w *saveWriter) commit() {
	if !w.done {
		w.done = true
		w.save()
	}
}

func (w *saveWriter) WriteHeader(code int) {
	w.commit()
	w.ResponseWriter.WriteHeader(code)
}

func (w *saveWriter) Write(b []byte) (int, error) {
	w.commit()
	return w.ResponseWriter.Write(b)
}

// Flush commits the session before the buffered header is flushed.
func (w *saveWriter) Flush() {
	w.commit()
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (w *saveWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

// Middleware loads the session for every request and saves it when the
// handler starts writing its response.
func Middleware(store Store, log *zap.Logger) func(http.Handler) http.Handler {
	log = log.With(zap.String("middleware", "session"))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, err := store.Load(r.Context(), r)
			if err != nil {
				log.Warn("Failed to load session, starting a new one", zap.Error(err))
				sess = newSession()
			}

			sw := &saveWriter{ResponseWriter: w}
			sw.save = func() {
				if err := store.Save(r.Context(), w, sess); err != nil {
					log.Error("Failed to save session", zap.Error(err), zap.String("path", r.URL.Path))
				}
			}

			next.ServeHTTP(sw, r.WithContext(WithSession(r.Context(), sess)))
			sw.commit()
		})
	}
}
