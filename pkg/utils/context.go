package utils

import "context"

type contextKey string

const (
	UserIDKey  contextKey = "user_id"
	AdminIDKey contextKey = "admin_id"
	ViewerKey  contextKey = "viewer"
)

// DefaultPhoto is shown for visitors and users without a profile photo.
const DefaultPhoto = "profil_user/default.png"

// Viewer describes who is looking at the page. It is built once per request.
type Viewer struct {
	LoggedIn bool   `json:"logged_in"`
	Name     string `json:"user_name"`
	Photo    string `json:"user_photo"`
}

// AnonymousViewer is the viewer used when no live user is logged in.
func AnonymousViewer() Viewer {
	return Viewer{Photo: DefaultPhoto}
}

func SetViewer(ctx context.Context, v Viewer) context.Context {
	return context.WithValue(ctx, ViewerKey, v)
}

// GetViewer never fails; a request without a viewer sees the anonymous one.
func GetViewer(ctx context.Context) Viewer {
	v, ok := ctx.Value(ViewerKey).(Viewer)
	if !ok {
		return AnonymousViewer()
	}
	return v
}

func SetUserContext(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, UserIDKey, userID)
}

func GetUserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(UserIDKey).(string)
	return userID, ok && userID != ""
}

func SetAdminContext(ctx context.Context, adminID string) context.Context {
	return context.WithValue(ctx, AdminIDKey, adminID)
}

func GetAdminIDFromContext(ctx context.Context) (string, bool) {
	adminID, ok := ctx.Value(AdminIDKey).(string)
	return adminID, ok && adminID != ""
}
