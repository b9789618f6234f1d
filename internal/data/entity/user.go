package entity

type Gender string

const (
	GenderMale   Gender = "Laki-laki"
	GenderFemale Gender = "Perempuan"
)

type User struct {
	Base         `bson:",inline"`
	Name         string `bson:"name" json:"name"`
	Phone        string `bson:"phone" json:"phone"`
	Email        string `bson:"email" json:"email"`
	PasswordHash string `bson:"password" json:"password"`
	Gender       Gender `bson:"gender,omitempty" json:"gender,omitempty"`
	BirthDate    string `bson:"birth_date,omitempty" json:"birth_date,omitempty"` // YYYY-MM-DD
	Photo        string `bson:"photo,omitempty" json:"photo,omitempty"`
}
