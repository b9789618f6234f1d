package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testOptions() Options {
	opts := DefaultOptions()
	opts.TTL = time.Hour
	return opts
}

// roundTrip runs handler behind the session middleware and returns the cookies it set.
func roundTrip(t *testing.T, store Store, cookies []*http.Cookie, handler http.HandlerFunc) []*http.Cookie {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	Middleware(store, zap.NewNop())(handler).ServeHTTP(rec, req)
	return rec.Result().Cookies()
}

func TestCookieStoreRoundTrip(t *testing.T) {
	store, err := NewCookieStore("test-secret", testOptions())
	require.NoError(t, err)

	cookies := roundTrip(t, store, nil, func(w http.ResponseWriter, r *http.Request) {
		sess := FromContext(r.Context())
		sess.Set(KeyUser, "u-1")
		sess.AddFlash(FlashSuccess, "Login berhasil!")
		http.Redirect(w, r, "/", http.StatusSeeOther)
	})
	require.Len(t, cookies, 1)

	var userID string
	var flashes []Flash
	roundTrip(t, store, cookies, func(w http.ResponseWriter, r *http.Request) {
		sess := FromContext(r.Context())
		userID, _ = sess.Get(KeyUser)
		flashes = sess.Flashes()
		w.WriteHeader(http.StatusOK)
	})

	assert.Equal(t, "u-1", userID)
	require.Len(t, flashes, 1)
	assert.Equal(t, Flash{Category: FlashSuccess, Message: "Login berhasil!"}, flashes[0])
}

func TestCookieStoreRejectsTamperedCookie(t *testing.T) {
	store, err := NewCookieStore("test-secret", testOptions())
	require.NoError(t, err)
	other, err := NewCookieStore("another-secret", testOptions())
	require.NoError(t, err)

	cookies := roundTrip(t, other, nil, func(w http.ResponseWriter, r *http.Request) {
		FromContext(r.Context()).Set(KeyAdmin, "a-1")
		w.WriteHeader(http.StatusOK)
	})

	var found bool
	roundTrip(t, store, cookies, func(w http.ResponseWriter, r *http.Request) {
		_, found = FromContext(r.Context()).Get(KeyAdmin)
		w.WriteHeader(http.StatusOK)
	})
	assert.False(t, found)
}

func TestCookieStoreClearExpiresCookie(t *testing.T) {
	store, err := NewCookieStore("test-secret", testOptions())
	require.NoError(t, err)

	cookies := roundTrip(t, store, nil, func(w http.ResponseWriter, r *http.Request) {
		FromContext(r.Context()).Set(KeyUser, "u-1")
		w.WriteHeader(http.StatusOK)
	})

	cleared := roundTrip(t, store, cookies, func(w http.ResponseWriter, r *http.Request) {
		FromContext(r.Context()).Clear()
		w.WriteHeader(http.StatusOK)
	})
	require.Len(t, cleared, 1)
	assert.Equal(t, -1, cleared[0].MaxAge)
}

func TestUnchangedSessionSetsNoCookie(t *testing.T) {
	store, err := NewCookieStore("test-secret", testOptions())
	require.NoError(t, err)

	cookies := roundTrip(t, store, nil, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	assert.Empty(t, cookies)
}

func TestFlushSavesSessionFirst(t *testing.T) {
	store, err := NewCookieStore("test-secret", testOptions())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	var unwrapped http.ResponseWriter
	Middleware(store, zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		FromContext(r.Context()).Set(KeyUser, "u-1")
		require.NoError(t, http.NewResponseController(w).Flush())
		unwrapped = w.(interface{ Unwrap() http.ResponseWriter }).Unwrap()
	})).ServeHTTP(rec, req)

	assert.True(t, rec.Flushed)
	assert.Same(t, rec, unwrapped)
	assert.Len(t, rec.Result().Cookies(), 1)
}

func TestFromContextWithoutMiddleware(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	sess := FromContext(req.Context())
	require.NotNil(t, sess)
	_, ok := sess.Get(KeyUser)
	assert.False(t, ok)
}
