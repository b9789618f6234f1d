package request

type RegisterRequest struct {
	Name            string `json:"nama" validate:"required,max=100"`
	Phone           string `json:"no_hp" validate:"required,min=8,max=20"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}
