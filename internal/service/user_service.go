package service

import (
	"context"
	"errors"
	"time"

	"github.com/RoyceAzure/lab/shopcenter/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/shopcenter/internal/infra/repository/db/model"
	"github.com/RoyceAzure/rj/util/crypt"
	er "github.com/RoyceAzure/rj/util/rj_error"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type IUserService interface {
	// CreateUser 創建一般用戶
	//
	// 錯誤:
	//   - er.InvalidArgumentCode 460: email為空、密碼強度不足或email已存在
	//   - er.InternalErrorCode 500: 內部處理錯誤
	CreateUser(ctx context.Context, email string, password string) (*model.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	// ChangePassword 變更密碼，必須先通過舊密碼驗證
	//
	// 錯誤:
	//   - er.InvalidOperationCode 405: 舊密碼錯誤
	//   - er.InvalidArgumentCode 460: 新密碼強度不足
	//   - er.InternalErrorCode 500: 內部處理錯誤
	ChangePassword(ctx context.Context, id uuid.UUID, oldPassword string, newPassword string) error
}

type UserService struct {
	userRepo db.IUserRepository
}

func NewUserService(userRepo db.IUserRepository) IUserService {
	return &UserService{
		userRepo: userRepo,
	}
}

func (u *UserService) CreateUser(ctx context.Context, email string, password string) (*model.User, error) {
	if email == "" {
		return nil, er.New(er.InvalidArgumentCode, "email is required")
	}

	// 檢查email是否已存在
	existingUser, err := u.userRepo.GetUserByEmail(ctx, email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, er.New(er.InternalErrorCode, err.Error())
	}
	if existingUser != nil {
		return nil, er.New(er.InvalidArgumentCode, "email already exists")
	}

	if err := crypt.ValidateStringPassword(password); err != nil {
		return nil, er.New(er.InvalidArgumentCode, err.Error())
	}

	hashPassword, err := crypt.HashPassword(password)
	if err != nil {
		return nil, er.New(er.InternalErrorCode, err.Error())
	}

	user := &model.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hashPassword,
		Role:         model.RoleCustomer,
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
	}
	if err := u.userRepo.CreateUser(ctx, user); err != nil {
		return nil, er.New(er.InternalErrorCode, err.Error())
	}

	return user, nil
}

func (u *UserService) GetUserByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, err := u.userRepo.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, er.New(er.NotFoundCode, "user not found")
		}
		return nil, er.New(er.InternalErrorCode, err.Error())
	}
	return user, nil
}

func (u *UserService) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	user, err := u.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, er.New(er.NotFoundCode, "user not found")
		}
		return nil, er.New(er.InternalErrorCode, err.Error())
	}
	return user, nil
}

func (u *UserService) ChangePassword(ctx context.Context, id uuid.UUID, oldPassword string, newPassword string) error {
	user, err := u.GetUserByID(ctx, id)
	if err != nil {
		return err
	}

	// 舊密碼必須相符
	if err := crypt.CheckPassword(oldPassword, user.PasswordHash); err != nil {
		return er.New(er.InvalidOperationCode, "wrong password")
	}

	if err := crypt.ValidateStringPassword(newPassword); err != nil {
		return er.New(er.InvalidArgumentCode, err.Error())
	}

	hashPassword, err := crypt.HashPassword(newPassword)
	if err != nil {
		return er.New(er.InternalErrorCode, err.Error())
	}

	if err := u.userRepo.UpdatePassword(ctx, id, hashPassword); err != nil {
		return er.New(er.InternalErrorCode, err.Error())
	}
	return nil
}
