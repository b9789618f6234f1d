package wire

import (
	"print-shop/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

// wireUser configures the profile pages and the admin customer list
func wireUser(r chi.Router, userHandler *adaptor.UserHandler, g gates) {
	// ==================== USER ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(g.user)

		r.Get("/profil", userHandler.Profile)
		r.Get("/update_profile", userHandler.EditProfile)
		r.Post("/update_profile", userHandler.UpdateProfile)
	})

	// ==================== ADMIN ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(g.admin)

		r.Get("/adminPelanggan", userHandler.ListCustomers) // ?page=N
		r.Get("/hapusDataPelanggan/{id}", userHandler.DeleteCustomer)
		r.Post("/hapusDataPelanggan/{id}", userHandler.DeleteCustomer)
	})
}
