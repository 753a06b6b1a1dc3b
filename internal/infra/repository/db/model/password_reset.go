package model

import (
	"time"

	"github.com/google/uuid"
)

// PasswordResetToken 只儲存token的sha256雜湊值，原始token只存在於寄出的信件內
type PasswordResetToken struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uuid.UUID `gorm:"not null;type:uuid;index"`
	TokenHash string    `gorm:"not null;type:char(64);uniqueIndex"`
	ExpiresAt time.Time `gorm:"not null"`
	IsUsed    bool      `gorm:"not null;default:false"`
	CreatedAt time.Time `gorm:"not null;default:now()"`
}
