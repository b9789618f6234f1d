package adaptor

import (
	"net/http"

	"print-shop/pkg/session"
	"print-shop/pkg/utils"

	"go.uber.org/zap"
)

const msgGeneric = "Terjadi kesalahan, silakan coba lagi."

// Page is the view model every page answers with.
type Page struct {
	Viewer  utils.Viewer    `json:"viewer"`
	Admin   string          `json:"admin,omitempty"`
	Flashes []session.Flash `json:"flashes"`
	Data    any             `json:"data,omitempty"`
}

// renderPage writes the page view model. Queued flashes are consumed.
func renderPage(w http.ResponseWriter, r *http.Request, message string, data any) {
	sess := session.FromContext(r.Context())
	admin, _ := sess.Get(session.KeyAdminName)

	flashes := sess.Flashes()
	if flashes == nil {
		flashes = []session.Flash{}
	}

	utils.ResponseSuccess(w, message, Page{
		Viewer:  utils.GetViewer(r.Context()),
		Admin:   admin,
		Flashes: flashes,
		Data:    data,
	})
}

// redirectWithFlash queues a notice and answers 303 See Other.
func redirectWithFlash(w http.ResponseWriter, r *http.Request, category, message, location string) {
	session.FromContext(r.Context()).AddFlash(category, message)
	utils.ResponseRedirect(w, r, location)
}

// handleServiceError shows the user-facing message of an AppError, or a
// generic notice for anything else, and redirects to location.
func handleServiceError(w http.ResponseWriter, r *http.Request, log *zap.Logger, err error, operation, location string) {
	failWith(w, r, log, err, operation, location, msgGeneric)
}

func failWith(w http.ResponseWriter, r *http.Request, log *zap.Logger, err error, operation, location, fallback string) {
	if msg, ok := utils.UserMessage(err); ok {
		log.Warn(operation+" failed", zap.Error(err))
		redirectWithFlash(w, r, session.FlashDanger, msg, location)
		return
	}

	log.Error("Failed to "+operation, zap.Error(err), zap.String("operation", operation))
	redirectWithFlash(w, r, session.FlashDanger, fallback, location)
}
