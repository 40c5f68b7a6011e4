package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID        uuid.UUID `db:"id"         json:"id"`
	Name      string    `db:"name"       json:"name"`
	Password  string    `db:"password"   json:"-"`
	Email     string    `db:"email"      json:"email"`
	GoogleID  string    `db:"google_id"  json:"-"`
	Avatar    string    `db:"avatar"     json:"avatar"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}
