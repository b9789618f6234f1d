package adaptor

import (
	"net/http"

	"print-shop/internal/dto/request"
	"print-shop/internal/usecase"
	"print-shop/pkg/session"

	"go.uber.org/zap"
)

type AuthHandler struct {
	service usecase.AuthService
	log     *zap.Logger
}

func NewAuthHandler(service usecase.AuthService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		log:     log.With(zap.String("handler", "auth")),
	}
}

// LoginPage handles GET /login
func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	renderPage(w, r, "Login", nil)
}

// Login handles POST /login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(w, r, maxPlainForm); err != nil {
		handleServiceError(w, r, h.log, err, "login", "/login")
		return
	}

	req := request.LoginRequest{
		Email:    formValue(r, "email"),
		Password: r.PostFormValue("password"),
	}
	account, err := h.service.Login(r.Context(), &req)
	if err != nil {
		handleServiceError(w, r, h.log, err, "login", "/login")
		return
	}

	sess := session.FromContext(r.Context())
	sess.Renew()
	sess.Set(session.KeyUser, account.ID)
	sess.Set(session.KeyUserName, account.Name)
	redirectWithFlash(w, r, session.FlashSuccess, "Login berhasil!", "/")
}

// RegisterPage handles GET /register
func (h *AuthHandler) RegisterPage(w http.ResponseWriter, r *http.Request) {
	renderPage(w, r, "Registrasi", nil)
}

// Register handles POST /register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(w, r, maxPlainForm); err != nil {
		handleServiceError(w, r, h.log, err, "register", "/register")
		return
	}

	req := request.RegisterRequest{
		Name:            formValue(r, "name"),
		Phone:           formValue(r, "phone"),
		Email:           formValue(r, "email"),
		Password:        r.PostFormValue("password"),
		ConfirmPassword: r.PostFormValue("confirm_password"),
	}
	if _, err := h.service.Register(r.Context(), &req); err != nil {
		handleServiceError(w, r, h.log, err, "register", "/register")
		return
	}

	redirectWithFlash(w, r, session.FlashSuccess, "Registrasi berhasil! Silakan login.", "/login")
}

// Logout handles GET /logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	session.FromContext(r.Context()).Clear()
	redirectWithFlash(w, r, session.FlashInfo, "Anda telah keluar.", "/login")
}

// ==================== ADMIN ====================

// AdminLoginPage handles GET /admin/login
func (h *AuthHandler) AdminLoginPage(w http.ResponseWriter, r *http.Request) {
	renderPage(w, r, "Login Admin", nil)
}

// AdminLogin handles POST /admin/login
func (h *AuthHandler) AdminLogin(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(w, r, maxPlainForm); err != nil {
		handleServiceError(w, r, h.log, err, "admin login", "/admin/login")
		return
	}

	req := request.LoginRequest{
		Email:    formValue(r, "email"),
		Password: r.PostFormValue("password"),
	}
	account, err := h.service.LoginAdmin(r.Context(), &req)
	if err != nil {
		handleServiceError(w, r, h.log, err, "admin login", "/admin/login")
		return
	}

	sess := session.FromContext(r.Context())
	sess.Renew()
	sess.Set(session.KeyAdmin, account.ID)
	sess.Set(session.KeyAdminName, account.Name)
	redirectWithFlash(w, r, session.FlashSuccess, "Login admin berhasil!", "/adminDashboard")
}

// AdminLogout handles GET /admin/logout
func (h *AuthHandler) AdminLogout(w http.ResponseWriter, r *http.Request) {
	session.FromContext(r.Context()).Clear()
	redirectWithFlash(w, r, session.FlashInfo, "Anda telah keluar sebagai admin.", "/admin/login")
}
