package adaptor

import (
	"net/http"

	"print-shop/internal/dto/request"
	"print-shop/internal/usecase"
	"print-shop/pkg/session"
	"print-shop/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type PaymentMethodHandler struct {
	service  usecase.PaymentMethodService
	pageSize int
	log      *zap.Logger
}

func NewPaymentMethodHandler(service usecase.PaymentMethodService, config *utils.Config, log *zap.Logger) *PaymentMethodHandler {
	return &PaymentMethodHandler{
		service:  service,
		pageSize: config.App.PageSize,
		log:      log.With(zap.String("handler", "payment_method")),
	}
}

// List handles GET /adminPembayaran?page=N (admin)
func (h *PaymentMethodHandler) List(w http.ResponseWriter, r *http.Request) {
	methods, err := h.service.List(r.Context(), pageRequest(r, h.pageSize))
	if err != nil {
		handleServiceError(w, r, h.log, err, "list payment methods", "/adminDashboard")
		return
	}

	renderPage(w, r, "Data Pembayaran", methods)
}

// CreatePage handles GET /tambahDataPembayaran (admin)
func (h *PaymentMethodHandler) CreatePage(w http.ResponseWriter, r *http.Request) {
	renderPage(w, r, "Tambah Pembayaran", nil)
}

// Create handles POST /tambahDataPembayaran (admin)
func (h *PaymentMethodHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, err := readPaymentMethodForm(w, r)
	if err == nil {
		_, err = h.service.Create(r.Context(), req)
	}
	if err != nil {
		handleServiceError(w, r, h.log, err, "create payment method", "/tambahDataPembayaran")
		return
	}

	redirectWithFlash(w, r, session.FlashSuccess, "Data pembayaran berhasil ditambahkan!", "/adminPembayaran")
}

// EditPage handles GET /editDataPembayaran/{id} (admin)
func (h *PaymentMethodHandler) EditPage(w http.ResponseWriter, r *http.Request) {
	method, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, r, h.log, err, "get payment method", "/adminPembayaran")
		return
	}

	renderPage(w, r, "Edit Pembayaran", method)
}

// Update handles POST /editDataPembayaran/{id} (admin)
func (h *PaymentMethodHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	req, err := readPaymentMethodForm(w, r)
	if err == nil {
		err = h.service.Update(r.Context(), id, req)
	}
	if err != nil {
		handleServiceError(w, r, h.log, err, "update payment method", "/editDataPembayaran/"+id)
		return
	}

	redirectWithFlash(w, r, session.FlashSuccess, "Data pembayaran berhasil diperbarui!", "/adminPembayaran")
}

// Delete handles GET|POST /hapusDataPembayaran/{id} (admin)
func (h *PaymentMethodHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, r, h.log, err, "delete payment method", "/adminPembayaran")
		return
	}

	redirectWithFlash(w, r, session.FlashSuccess, "Data pembayaran berhasil dihapus!", "/adminPembayaran")
}

func readPaymentMethodForm(w http.ResponseWriter, r *http.Request) (*request.PaymentMethodRequest, error) {
	if err := parseForm(w, r, maxPlainForm); err != nil {
		return nil, err
	}
	return &request.PaymentMethodRequest{
		Type:   formValue(r, "jenisPembayaran"),
		Name:   formValue(r, "metodePembayaran"),
		Number: formValue(r, "nomorPembayaran"),
	}, nil
}
