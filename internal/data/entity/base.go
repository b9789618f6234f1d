package entity

import (
	"time"

	"github.com/google/uuid"
)

// Base is embedded in every stored document. Times are kept in UTC.
type Base struct {
	ID        string    `bson:"_id" json:"id"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

func NewBase(now time.Time) Base {
	now = now.UTC()
	return Base{
		ID:        uuid.NewString(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}
