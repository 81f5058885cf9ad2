package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"yamdb/internal/domain"
)

type User struct {
	ID          string      `gorm:"primaryKey;type:uuid" json:"id"`
	Username    string      `gorm:"uniqueIndex;size:150;not null" json:"username"`
	Email       string      `gorm:"uniqueIndex;size:254;not null" json:"email"`
	FirstName   string      `gorm:"size:150" json:"first_name"`
	LastName    string      `gorm:"size:150" json:"last_name"`
	Bio         string      `gorm:"type:text" json:"bio"`
	Role        domain.Role `gorm:"size:15;default:'user';not null" json:"role"`
	IsActive    bool        `gorm:"not null;default:false" json:"is_active"`
	IsSuperuser bool        `gorm:"not null;default:false" json:"-"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
	LastLogin   *time.Time  `json:"last_login,omitempty"`
}

// BeforeCreate hook to set UUID before creating a User
func (user *User) BeforeCreate(tx *gorm.DB) (err error) {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.Role == "" {
		user.Role = domain.RoleUser
	}
	return
}

func (User) TableName() string {
	return "users"
}

// Actor is the permission view of an authenticated user.
func (user *User) Actor() domain.Actor {
	return domain.Actor{
		UserID:        user.ID,
		Username:      user.Username,
		Role:          user.Role,
		Superuser:     user.IsSuperuser,
		Authenticated: true,
	}
}
