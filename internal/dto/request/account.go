package request

type UpdateProfileRequest struct {
	Name      string `json:"nama" validate:"required,max=100"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"no_hp" validate:"required,min=8,max=20"`
	Gender    string `json:"jenis_kelamin" validate:"omitempty,oneof=Laki-laki Perempuan"`
	BirthDate string `json:"tanggal_lahir" validate:"omitempty,datetime=2006-01-02"`
}

type CreateAdminRequest struct {
	Name            string `json:"nama" validate:"required,max=100"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
}

// UpdateAdminRequest leaves the password untouched when Password is empty.
type UpdateAdminRequest struct {
	Name     string `json:"nama" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password"`
}
