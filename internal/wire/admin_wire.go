package wire

import (
	"print-shop/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireAdmin(r chi.Router, adminHandler *adaptor.AdminHandler, g gates) {
	// ==================== ADMIN ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(g.admin)

		r.Get("/adminDashboard", adminHandler.Dashboard)
		r.Get("/totals", adminHandler.Totals)

		// Admin accounts
		r.Get("/adminDataAdmin", adminHandler.ListAdmins) // ?page=N
		r.Get("/tambahDataAdmin", adminHandler.CreateAdminPage)
		r.Post("/tambahDataAdmin", adminHandler.CreateAdmin)
		r.Get("/editDataAdmin/{id}", adminHandler.EditAdminPage)
		r.Post("/editDataAdmin/{id}", adminHandler.UpdateAdmin)
		r.Get("/hapusDataAdmin/{id}", adminHandler.DeleteAdmin)
		r.Post("/hapusDataAdmin/{id}", adminHandler.DeleteAdmin)
	})
}
