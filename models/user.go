package models

import (
	"time"
)

// User mirrors the profile of an account managed by the auth provider.
type User struct {
	ID        string    `json:"id" gorm:"type:uuid;primaryKey"`
	Email     string    `json:"email" gorm:"index"`
	Name      string    `json:"name"`
	Role      string    `json:"role" gorm:"type:varchar(16);not null;default:guest"`
	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}
