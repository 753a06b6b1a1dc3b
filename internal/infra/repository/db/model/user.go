package model

import (
	"time"

	"github.com/google/uuid"
)

type UserRole string

const (
	RoleCustomer UserRole = "CUSTOMER"
	RoleAdmin    UserRole = "ADMIN"
)

type User struct {
	ID           uuid.UUID `gorm:"primaryKey;type:uuid"`
	Email        string    `gorm:"unique;not null;type:varchar(255)"`
	PasswordHash string    `gorm:"not null;type:varchar(255)"`
	Role         UserRole  `gorm:"not null;type:varchar(20);default:'CUSTOMER'"`
	IsActive     bool      `gorm:"not null;default:true"`
	CartItems    []CartItem `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Orders       []Order    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time  `gorm:"not null;default:now()"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
