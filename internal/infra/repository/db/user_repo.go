package db

import (
	"context"
	"time"

	"github.com/RoyceAzure/lab/shopcenter/internal/infra/repository/db/model"
	"github.com/google/uuid"
)

type IUserRepository interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	CreateResetToken(ctx context.Context, token *model.PasswordResetToken) error
	GetResetTokenByHash(ctx context.Context, tokenHash string) (*model.PasswordResetToken, error)
	MarkResetTokenUsed(ctx context.Context, id uint) error
	DeleteExpiredResetTokens(ctx context.Context, before time.Time) error
}

type UserRepo struct {
	db *DbDao
}

func NewUserRepo(db *DbDao) *UserRepo {
	return &UserRepo{db: db}
}

// Create - 創建用戶
func (s *UserRepo) CreateUser(ctx context.Context, user *model.User) error {
	return s.db.WithContext(ctx).Create(user).Error
}

// Read - 根據ID查詢用戶
func (s *UserRepo) GetUserByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var user model.User
	err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Read - 根據email查詢用戶
func (s *UserRepo) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Update - 更新用戶密碼雜湊
func (s *UserRepo) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	return s.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		Update("password_hash", passwordHash).Error
}

// Create - 創建密碼重設token
func (s *UserRepo) CreateResetToken(ctx context.Context, token *model.PasswordResetToken) error {
	return s.db.WithContext(ctx).Create(token).Error
}

// Read - 根據token雜湊值查詢密碼重設token
func (s *UserRepo) GetResetTokenByHash(ctx context.Context, tokenHash string) (*model.PasswordResetToken, error) {
	var token model.PasswordResetToken
	err := s.db.WithContext(ctx).Where("token_hash = ?", tokenHash).First(&token).Error
	if err != nil {
		return nil, err
	}
	return &token, nil
}

// Update - 標記密碼重設token已使用
func (s *UserRepo) MarkResetTokenUsed(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Model(&model.PasswordResetToken{}).
		Where("id = ?", id).
		Update("is_used", true).Error
}

// Delete - 清除過期的密碼重設token
func (s *UserRepo) DeleteExpiredResetTokens(ctx context.Context, before time.Time) error {
	return s.db.WithContext(ctx).
		Where("expires_at < ?", before).
		Delete(&model.PasswordResetToken{}).Error
}
