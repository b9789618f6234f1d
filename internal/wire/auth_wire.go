package wire

import (
	"print-shop/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireAuth(r chi.Router, authHandler *adaptor.AuthHandler) {
	// ==================== PUBLIC ROUTES ====================
	r.Get("/login", authHandler.LoginPage)
	r.Post("/login", authHandler.Login)
	r.Get("/register", authHandler.RegisterPage)
	r.Post("/register", authHandler.Register)
	r.Get("/logout", authHandler.Logout)

	// ==================== ADMIN SESSION ROUTES ====================
	r.Get("/admin/login", authHandler.AdminLoginPage)
	r.Post("/admin/login", authHandler.AdminLogin)
	r.Get("/admin/logout", authHandler.AdminLogout)
}
