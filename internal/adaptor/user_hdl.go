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

type UserHandler struct {
	service   usecase.UserService
	pageSize  int
	maxUpload int64
	log       *zap.Logger
}

func NewUserHandler(service usecase.UserService, config *utils.Config, log *zap.Logger) *UserHandler {
	return &UserHandler{
		service:   service,
		pageSize:  config.App.PageSize,
		maxUpload: config.App.MaxUploadMB << 20,
		log:       log.With(zap.String("handler", "user")),
	}
}

// Profile handles GET /profil (user)
func (h *UserHandler) Profile(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	profile, err := h.service.GetProfile(r.Context(), userID)
	if err != nil {
		handleServiceError(w, r, h.log, err, "get profile", "/")
		return
	}

	renderPage(w, r, "Profil", profile)
}

// EditProfile handles GET /update_profile (user); the form lives on the profile page.
func (h *UserHandler) EditProfile(w http.ResponseWriter, r *http.Request) {
	utils.ResponseRedirect(w, r, "/profil")
}

// UpdateProfile handles POST /update_profile (user)
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	if err := parseForm(w, r, h.maxUpload); err != nil {
		handleServiceError(w, r, h.log, err, "update profile", "/profil")
		return
	}
	photo, err := formFile(r, "photo")
	if err != nil {
		handleServiceError(w, r, h.log, err, "update profile", "/profil")
		return
	}
	defer closeUpload(photo)

	req := request.UpdateProfileRequest{
		Name:      formValue(r, "name"),
		Email:     formValue(r, "email"),
		Phone:     formValue(r, "phone"),
		Gender:    formValue(r, "jenis_kelamin"),
		BirthDate: formValue(r, "tanggal_lahir"),
	}
	if err := h.service.UpdateProfile(r.Context(), userID, &req, photo); err != nil {
		handleServiceError(w, r, h.log, err, "update profile", "/profil")
		return
	}

	redirectWithFlash(w, r, session.FlashSuccess, "Profil berhasil diperbarui!", "/profil")
}

// ==================== ADMIN ====================

// ListCustomers handles GET /adminPelanggan?page=N (admin)
func (h *UserHandler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := h.service.ListCustomers(r.Context(), pageRequest(r, h.pageSize))
	if err != nil {
		handleServiceError(w, r, h.log, err, "list customers", "/adminDashboard")
		return
	}

	renderPage(w, r, "Data Pelanggan", customers)
}

// DeleteCustomer handles GET|POST /hapusDataPelanggan/{id} (admin)
func (h *UserHandler) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteCustomer(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, r, h.log, err, "delete customer", "/adminPelanggan")
		return
	}

	redirectWithFlash(w, r, session.FlashSuccess, "Akun pelanggan berhasil dihapus!", "/adminPelanggan")
}
