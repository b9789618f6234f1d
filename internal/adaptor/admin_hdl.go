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

type AdminHandler struct {
	service   usecase.AdminService
	dashboard usecase.DashboardService
	pageSize  int
	log       *zap.Logger
}

func NewAdminHandler(service usecase.AdminService, dashboard usecase.DashboardService, config *utils.Config, log *zap.Logger) *AdminHandler {
	return &AdminHandler{
		service:   service,
		dashboard: dashboard,
		pageSize:  config.App.PageSize,
		log:       log.With(zap.String("handler", "admin")),
	}
}

// Dashboard handles GET /adminDashboard (admin)
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	renderPage(w, r, "Dashboard Admin", nil)
}

// Totals handles GET /totals (admin)
func (h *AdminHandler) Totals(w http.ResponseWriter, r *http.Request) {
	totals, err := h.dashboard.Totals(r.Context())
	if err != nil {
		h.log.Error("Failed to count dashboard totals", zap.Error(err))
		utils.ResponseInternalError(w, msgGeneric)
		return
	}

	utils.ResponseSuccess(w, "Totals retrieved", totals)
}

// ListAdmins handles GET /adminDataAdmin?page=N (admin)
func (h *AdminHandler) ListAdmins(w http.ResponseWriter, r *http.Request) {
	admins, err := h.service.ListAdmins(r.Context(), pageRequest(r, h.pageSize))
	if err != nil {
		handleServiceError(w, r, h.log, err, "list admins", "/adminDashboard")
		return
	}

	renderPage(w, r, "Data Admin", admins)
}

// CreateAdminPage handles GET /tambahDataAdmin (admin)
func (h *AdminHandler) CreateAdminPage(w http.ResponseWriter, r *http.Request) {
	renderPage(w, r, "Tambah Admin", nil)
}

// CreateAdmin handles POST /tambahDataAdmin (admin)
func (h *AdminHandler) CreateAdmin(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(w, r, maxPlainForm); err != nil {
		handleServiceError(w, r, h.log, err, "create admin", "/tambahDataAdmin")
		return
	}

	req := request.CreateAdminRequest{
		Name:            formValue(r, "name"),
		Email:           formValue(r, "email"),
		Password:        r.PostFormValue("password"),
		ConfirmPassword: r.PostFormValue("confirm_password"),
	}
	if _, err := h.service.CreateAdmin(r.Context(), &req); err != nil {
		handleServiceError(w, r, h.log, err, "create admin", "/tambahDataAdmin")
		return
	}

	redirectWithFlash(w, r, session.FlashSuccess, "Akun admin berhasil ditambahkan!", "/adminDataAdmin")
}

// EditAdminPage handles GET /editDataAdmin/{id} (admin)
func (h *AdminHandler) EditAdminPage(w http.ResponseWriter, r *http.Request) {
	admin, err := h.service.GetAdmin(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, r, h.log, err, "get admin", "/adminDataAdmin")
		return
	}

	renderPage(w, r, "Edit Admin", admin)
}

// UpdateAdmin handles POST /editDataAdmin/{id} (admin)
func (h *AdminHandler) UpdateAdmin(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	back := "/editDataAdmin/" + id

	if err := parseForm(w, r, maxPlainForm); err != nil {
		handleServiceError(w, r, h.log, err, "update admin", back)
		return
	}

	req := request.UpdateAdminRequest{
		Name:     formValue(r, "name"),
		Email:    formValue(r, "email"),
		Password: r.PostFormValue("password"),
	}
	if err := h.service.UpdateAdmin(r.Context(), id, &req); err != nil {
		handleServiceError(w, r, h.log, err, "update admin", back)
		return
	}

	redirectWithFlash(w, r, session.FlashSuccess, "Data admin berhasil diperbarui!", "/adminDataAdmin")
}

// DeleteAdmin handles GET|POST /hapusDataAdmin/{id} (admin)
func (h *AdminHandler) DeleteAdmin(w http.ResponseWriter, r *http.Request) {
	actorID, _ := utils.GetAdminIDFromContext(r.Context())

	if err := h.service.DeleteAdmin(r.Context(), actorID, chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, r, h.log, err, "delete admin", "/adminDataAdmin")
		return
	}

	redirectWithFlash(w, r, session.FlashSuccess, "Akun admin berhasil dihapus!", "/adminDataAdmin")
}
