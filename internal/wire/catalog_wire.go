package wire

import (
	"print-shop/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireCatalog(
	r chi.Router,
	productHandler *adaptor.ProductHandler,
	paymentHandler *adaptor.PaymentMethodHandler,
	g gates,
) {
	// ==================== PUBLIC ROUTES ====================
	r.Get("/", productHandler.Home)
	r.Get("/about", productHandler.About)
	r.Get("/produk", productHandler.ListProducts)
	r.Get("/produk/{id}", productHandler.GetProduct)

	// ==================== ADMIN ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(g.admin)

		// Products
		r.Get("/adminProduk", productHandler.AdminListProducts)
		r.Get("/tambahDataProduk", productHandler.CreateProductPage)
		r.Post("/tambahDataProduk", productHandler.CreateProduct)
		r.Get("/editDataProduk/{id}", productHandler.EditProductPage)
		r.Post("/editDataProduk/{id}", productHandler.UpdateProduct)
		r.Get("/hapusDataProduk/{id}", productHandler.DeleteProduct)
		r.Post("/hapusDataProduk/{id}", productHandler.DeleteProduct)

		// Payment methods
		r.Get("/adminPembayaran", paymentHandler.List)
		r.Get("/tambahDataPembayaran", paymentHandler.CreatePage)
		r.Post("/tambahDataPembayaran", paymentHandler.Create)
		r.Get("/editDataPembayaran/{id}", paymentHandler.EditPage)
		r.Post("/editDataPembayaran/{id}", paymentHandler.Update)
		r.Get("/hapusDataPembayaran/{id}", paymentHandler.Delete)
		r.Post("/hapusDataPembayaran/{id}", paymentHandler.Delete)
	})
}
