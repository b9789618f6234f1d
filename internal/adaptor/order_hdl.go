package adaptor

import (
	"errors"
	"fmt"
	"net/http"

	"print-shop/internal/dto/request"
	"print-shop/internal/usecase"
	"print-shop/pkg/session"
	"print-shop/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const adminOrders = "/adminDaftarPemesanan"

type OrderHandler struct {
	service   usecase.OrderService
	pageSize  int
	maxUpload int64
	log       *zap.Logger
}

func NewOrderHandler(service usecase.OrderService, config *utils.Config, log *zap.Logger) *OrderHandler {
	return &OrderHandler{
		service:   service,
		pageSize:  config.App.PageSize,
		maxUpload: config.App.MaxUploadMB << 20,
		log:       log.With(zap.String("handler", "order")),
	}
}

// OrderForm handles GET /pemesanan/{productId} (user)
func (h *OrderHandler) OrderForm(w http.ResponseWriter, r *http.Request) {
	form, err := h.service.GetOrderForm(r.Context(), chi.URLParam(r, "productId"))
	if err != nil {
		handleServiceError(w, r, h.log, err, "load order form", "/produk")
		return
	}

	renderPage(w, r, "Pemesanan", form)
}

// CreateOrder handles POST /pemesanan/{productId} (user)
func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())
	productID := chi.URLParam(r, "productId")
	back := "/pemesanan/" + productID

	if err := parseForm(w, r, h.maxUpload); err != nil {
		handleServiceError(w, r, h.log, err, "create order", back)
		return
	}
	design, err := formFile(r, "desain")
	if err != nil {
		handleServiceError(w, r, h.log, err, "create order", back)
		return
	}
	defer closeUpload(design)

	req := request.CreateOrderRequest{
		Size:           formValue(r, "ukuran"),
		Quantity:       formInt(r, "jumlah"),
		Note:           formValue(r, "keterangan"),
		DeliveryOption: formValue(r, "opsi_pengiriman"),
		Address:        formValue(r, "alamat"),
		PaymentMethod:  formValue(r, "metode_pembayaran"),
	}

	order, err := h.service.CreateOrder(r.Context(), userID, productID, &req, design)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			back = "/produk"
		}
		handleServiceError(w, r, h.log, err, "create order", back)
		return
	}

	msg := fmt.Sprintf("Pemesanan berhasil dilakukan, Total biaya: %s. Mohon unggah bukti pembayaran!", utils.FormatRupiah(order.Total))
	redirectWithFlash(w, r, session.FlashSuccess, msg, "/detail_pesanan/"+order.ID)
}

// OrderDetail handles GET /detail_pesanan/{orderId} (user)
func (h *OrderHandler) OrderDetail(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	detail, err := h.service.GetOrderDetail(r.Context(), chi.URLParam(r, "orderId"), userID)
	if err != nil {
		handleServiceError(w, r, h.log, err, "get order detail", "/")
		return
	}

	renderPage(w, r, "Detail Pesanan", detail)
}

// UploadProof handles POST /upload_bukti/{orderId} (user)
func (h *OrderHandler) UploadProof(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())
	orderID := chi.URLParam(r, "orderId")
	back := "/detail_pesanan/" + orderID

	if err := parseForm(w, r, h.maxUpload); err != nil {
		handleServiceError(w, r, h.log, err, "upload payment proof", back)
		return
	}
	proof, err := formFile(r, "bukti_pembayaran")
	if err != nil {
		handleServiceError(w, r, h.log, err, "upload payment proof", back)
		return
	}
	defer closeUpload(proof)

	if err := h.service.AttachPaymentProof(r.Context(), orderID, userID, proof); err != nil {
		handleServiceError(w, r, h.log, err, "upload payment proof", back)
		return
	}

	redirectWithFlash(w, r, session.FlashSuccess, "Bukti pembayaran berhasil diunggah.", "/riwayat_pemesanan")
}

// History handles GET /riwayat_pemesanan?page=N (user)
func (h *OrderHandler) History(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	orders, err := h.service.ListOrders(r.Context(), userID, pageRequest(r, h.pageSize))
	if err != nil {
		handleServiceError(w, r, h.log, err, "list order history", "/")
		return
	}

	renderPage(w, r, "Riwayat Pemesanan", orders)
}

// ==================== ADMIN ====================

// AdminListOrders handles GET /adminDaftarPemesanan?page=N (admin)
func (h *OrderHandler) AdminListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.ListOrders(r.Context(), "", pageRequest(r, h.pageSize))
	if err != nil {
		handleServiceError(w, r, h.log, err, "list orders", "/adminDashboard")
		return
	}

	renderPage(w, r, "Daftar Pemesanan", orders)
}

// AdminOrderDetail handles GET /adminDetailPemesanan/{orderId} (admin)
func (h *OrderHandler) AdminOrderDetail(w http.ResponseWriter, r *http.Request) {
	detail, err := h.service.GetOrderDetail(r.Context(), chi.URLParam(r, "orderId"), "")
	if err != nil {
		handleServiceError(w, r, h.log, err, "get order detail", adminOrders)
		return
	}

	renderPage(w, r, "Detail Pemesanan", detail)
}

// UpdateStatus handles POST /update_order_status (admin)
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	const failed = "Terjadi kesalahan saat memperbarui status pesanan"
	const unchanged = "Tidak ada pesanan yang ditemukan atau status tidak berubah!"

	if err := parseForm(w, r, maxPlainForm); err != nil {
		failWith(w, r, h.log, err, "update order status", adminOrders, failed)
		return
	}

	req := request.UpdateOrderStatusRequest{
		OrderID: formValue(r, "order_id"),
		Status:  formValue(r, "new_status"),
	}
	changed, err := h.service.TransitionStatus(r.Context(), req.OrderID, req.Status)
	switch {
	case errors.Is(err, utils.ErrNotFound):
		redirectWithFlash(w, r, session.FlashWarning, unchanged, adminOrders)
	case err != nil:
		failWith(w, r, h.log, err, "update order status", adminOrders, failed)
	case !changed:
		redirectWithFlash(w, r, session.FlashWarning, unchanged, adminOrders)
	default:
		redirectWithFlash(w, r, session.FlashSuccess, "Status pemesanan berhasil diperbarui!", adminOrders)
	}
}

// DeleteOrder handles POST /hapusDataPemesanan_order/{orderId} (admin)
func (h *OrderHandler) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteOrder(r.Context(), chi.URLParam(r, "orderId")); err != nil {
		failWith(w, r, h.log, err, "delete order", adminOrders, "Terjadi kesalahan saat menghapus pesanan")
		return
	}

	redirectWithFlash(w, r, session.FlashSuccess, "Pesanan berhasil dihapus!", adminOrders)
}
