package middleware

import (
	"net/http"

	"print-shop/internal/data/repository"
	"print-shop/pkg/session"
	"print-shop/pkg/utils"

	"go.uber.org/zap"
)

// Role is the capability a route requires.
type Role int

const (
	RoleNone Role = iota
	RoleUser
	RoleAdmin
)

func (r Role) String() string {
	switch r {
	case RoleUser:
		return "user"
	case RoleAdmin:
		return "admin"
	default:
		return "none"
	}
}

// per-role session keys, login page and notice
type roleGate struct {
	key, nameKey string
	loginPath    string
	notice       string
}

var gates = map[Role]roleGate{
	RoleUser: {
		key:       session.KeyUser,
		nameKey:   session.KeyUserName,
		loginPath: "/login",
		notice:    "Harap login terlebih dahulu.",
	},
	RoleAdmin: {
		key:       session.KeyAdmin,
		nameKey:   session.KeyAdminName,
		loginPath: "/admin/login",
		notice:    "Harap login sebagai admin terlebih dahulu.",
	},
}

// RequireRole lets the request through only when the session carries the
// marker for role. Otherwise it flashes a warning and redirects to the role's
// login page; it never fails the request. With revalidate set, a marker whose
// account no longer exists is cleared and treated as missing.
func RequireRole(role Role, repo *repository.Repository, revalidate bool, logger *zap.Logger) func(http.Handler) http.Handler {
	gate, guarded := gates[role]

	return func(next http.Handler) http.Handler {
		if !guarded {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := session.FromContext(r.Context())
			id, ok := sess.Get(gate.key)
			if ok && revalidate && !accountExists(r, role, id, repo, logger) {
				logger.Warn("Session refers to a deleted account",
					zap.String("role", role.String()),
					zap.String("account_id", id),
				)
				sess.Delete(gate.key)
				sess.Delete(gate.nameKey)
				ok = false
			}

			if !ok {
				sess.AddFlash(session.FlashWarning, gate.notice)
				utils.ResponseRedirect(w, r, gate.loginPath)
				return
			}

			ctx := r.Context()
			if role == RoleAdmin {
				ctx = utils.SetAdminContext(ctx, id)
			} else {
				ctx = utils.SetUserContext(ctx, id)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// accountExists treats store failures as "not authenticated".
func accountExists(r *http.Request, role Role, id string, repo *repository.Repository, logger *zap.Logger) bool {
	var (
		found bool
		err   error
	)
	switch role {
	case RoleAdmin:
		admin, e := repo.Admin.FindByID(r.Context(), id)
		found, err = admin != nil, e
	default:
		user, e := repo.User.FindByID(r.Context(), id)
		found, err = user != nil, e
	}
	if err != nil {
		logger.Error("Failed to re-validate session",
			zap.Error(err),
			zap.String("role", role.String()),
			zap.String("account_id", id),
		)
		return false
	}
	return found
}

// Viewer resolves the logged-in customer for every request and stores the
// result with utils.SetViewer. A missing or deleted user gives the anonymous
// viewer.
func Viewer(users repository.UserRepository, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			viewer := utils.AnonymousViewer()

			if id, ok := session.FromContext(r.Context()).Get(session.KeyUser); ok {
				user, err := users.FindByID(r.Context(), id)
				if err != nil {
					logger.Warn("Failed to load viewer", zap.Error(err), zap.String("user_id", id))
				}
				if user != nil {
					viewer.LoggedIn = true
					viewer.Name = user.Name
					if user.Photo != "" {
						viewer.Photo = user.Photo
					}
				}
			}

			next.ServeHTTP(w, r.WithContext(utils.SetViewer(r.Context(), viewer)))
		})
	}
}
