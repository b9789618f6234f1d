package wire

import (
	"print-shop/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireOrder(r chi.Router, orderHandler *adaptor.OrderHandler, g gates) {
	// ==================== USER ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(g.user)

		r.Get("/pemesanan/{productId}", orderHandler.OrderForm)
		r.Post("/pemesanan/{productId}", orderHandler.CreateOrder)
		r.Get("/detail_pesanan/{orderId}", orderHandler.OrderDetail)
		r.Post("/upload_bukti/{orderId}", orderHandler.UploadProof)
		r.Get("/riwayat_pemesanan", orderHandler.History) // ?page=N
	})

	// ==================== ADMIN ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(g.admin)

		r.Get("/adminDaftarPemesanan", orderHandler.AdminListOrders) // ?page=N
		r.Get("/adminDetailPemesanan/{orderId}", orderHandler.AdminOrderDetail)
		r.Post("/update_order_status", orderHandler.UpdateStatus)
		r.Post("/hapusDataPemesanan_order/{orderId}", orderHandler.DeleteOrder)
	})
}
