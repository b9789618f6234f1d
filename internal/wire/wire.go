package wire

import (
	"net/http"
	"strings"

	"print-shop/internal/adaptor"
	"print-shop/internal/data/repository"
	"print-shop/internal/usecase"
	"print-shop/pkg/mailer"
	"print-shop/pkg/metrics"
	"print-shop/pkg/middleware"
	"print-shop/pkg/session"
	"print-shop/pkg/storage"
	"print-shop/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// App holds the wired HTTP application
type App struct {
	Router *chi.Mux
}

// Deps are the infrastructure pieces opened by the caller.
type Deps struct {
	Repo     *repository.Repository
	Disk     storage.Disk
	Sessions session.Store
	Mailer   mailer.Mailer
}

// Wiring builds services, handlers and routes
func Wiring(deps Deps, config *utils.Config, logger *zap.Logger) *App {
	service := usecase.NewService(deps.Repo, deps.Disk, deps.Mailer, config, logger)
	handler := adaptor.NewHandler(service, config, logger)

	router := setupRouter(handler, deps, config, logger)

	return &App{
		Router: router,
	}
}

// gates builds the role middlewares shared by the route groups
type gates struct {
	user  func(http.Handler) http.Handler
	admin func(http.Handler) http.Handler
}

func setupRouter(
	handler *adaptor.Handler,
	deps Deps,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(chimw.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(metrics.Middleware())
	r.Use(session.Middleware(deps.Sessions, logger))
	r.Use(middleware.Viewer(deps.Repo.User, logger))

	g := gates{
		user:  middleware.RequireRole(middleware.RoleUser, deps.Repo, config.Session.Revalidate, logger),
		admin: middleware.RequireRole(middleware.RoleAdmin, deps.Repo, config.Session.Revalidate, logger),
	}

	// Apply routes
	wireAuth(r, handler.Auth)
	wireUser(r, handler.User, g)
	wireCatalog(r, handler.Product, handler.PaymentMethod, g)
	wireOrder(r, handler.Order, g)
	wireAdmin(r, handler.Admin, g)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	r.Handle("/metrics", metrics.Handler())
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.ResponseNotFound(w, "Halaman tidak ditemukan.")
	})

	if config.Storage.Driver == "local" {
		mountStatic(r, config.Storage.LocalURL, config.Storage.LocalRoot)
	}

	return r
}

// mountStatic serves the local blob root, which is also where the
// default profile photo lives.
func mountStatic(r chi.Router, prefix, root string) {
	prefix = "/" + strings.Trim(prefix, "/")
	if prefix == "/" {
		return
	}
	fs := http.StripPrefix(prefix, http.FileServer(http.Dir(root)))
	r.Get(prefix+"/*", fs.ServeHTTP)
}
