package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleEngineer = "engineer"
	RoleAdmin    = "admin"
)

// User owns devices; everything below a user is reachable only through it.
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Username  string    `gorm:"size:50;not null;uniqueIndex" json:"username"`
	Email     string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	Role      string    `gorm:"size:20;not null;default:'engineer'" json:"role"`
	CreatedAt time.Time `json:"created_at"`

	Devices []Device `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}
