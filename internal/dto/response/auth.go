package response

import (
	"time"

	"print-shop/internal/data/entity"
)

// UserResponse never carries the password hash.
type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"nama"`
	Phone     string    `json:"no_hp"`
	Email     string    `json:"email"`
	Gender    string    `json:"jenis_kelamin,omitempty"`
	BirthDate string    `json:"tanggal_lahir,omitempty"`
	Photo     string    `json:"photo,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func UserToResponse(user *entity.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Phone:     user.Phone,
		Email:     user.Email,
		Gender:    string(user.Gender),
		BirthDate: user.BirthDate,
		Photo:     user.Photo,
		CreatedAt: user.CreatedAt,
	}
}

type AdminResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"nama"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

func AdminToResponse(admin *entity.Admin) AdminResponse {
	return AdminResponse{
		ID:        admin.ID,
		Name:      admin.Name,
		Email:     admin.Email,
		CreatedAt: admin.CreatedAt,
	}
}

// LoginResponse is what the handler needs to set the session markers.
type LoginResponse struct {
	ID   string `json:"id"`
	Name string `json:"nama"`
}
