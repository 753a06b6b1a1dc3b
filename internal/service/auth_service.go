package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/RoyceAzure/lab/shopcenter/internal/config"
	"github.com/RoyceAzure/lab/shopcenter/internal/constants"
	"github.com/RoyceAzure/lab/shopcenter/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/shopcenter/internal/infra/repository/db/model"
	"github.com/RoyceAzure/lab/shopcenter/internal/util"
	"github.com/RoyceAzure/rj/api/token"
	"github.com/RoyceAzure/rj/util/crypt"
	"github.com/RoyceAzure/rj/util/random"
	er "github.com/RoyceAzure/rj/util/rj_error"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// LoginResult 包含訪問令牌、刷新令牌和用戶資訊
type LoginResult struct {
	AccessToken  string
	RefreshToken string
	User         *model.User
}

type IAuthService interface {
	// Login 使用email與密碼登入
	//
	// 錯誤:
	//   - er.UnauthenticatedCode 401: email或密碼錯誤
	//   - er.UnauthorizedCode 403: 用戶已禁用
	//   - er.InternalErrorCode 500: 令牌創建錯誤
	Login(ctx context.Context, email string, password string) (*LoginResult, error)
	// ReNewToken 使用刷新令牌生成新的訪問令牌
	//
	// 錯誤:
	//   - er.UnauthenticatedCode 401: 刷新令牌無效或已過期
	//   - er.UnauthorizedCode 403: 用戶不存在或已禁用
	//   - er.InternalErrorCode 500: 內部處理錯誤
	ReNewToken(ctx context.Context, refreshToken string) (string, error)
	// Me 取得當前登入user資訊
	// 錯誤:
	//   - er.UnauthorizedCode 403: 未授權
	Me(ctx context.Context) (*model.User, error)
	// RequestPasswordReset 發送密碼重設信
	//
	// 無論email是否存在，一律回傳成功，避免攻擊者列舉帳號
	RequestPasswordReset(ctx context.Context, email string) error
	// ConfirmPasswordReset 以重設token設定新密碼
	//
	// token無效、過期、已使用、uid格式錯誤或用戶不存在，
	// 一律回傳相同的generic錯誤，不洩漏是哪個檢查失敗
	//
	// 錯誤:
	//   - er.InvalidOperationCode 405: 重設連結無效或已過期
	//   - er.InvalidArgumentCode 460: 新密碼強度不足
	//   - er.InternalErrorCode 500: 內部處理錯誤
	ConfirmPasswordReset(ctx context.Context, uid string, rawToken string, newPassword string) error
	CreateAccessToken(ctx context.Context, upn string, userID uuid.UUID) (string, *token.Payload[uuid.UUID], error)
}

type AuthService struct {
	userRepo    db.IUserRepository
	userService IUserService
	mailService IMailService
	tokenMaker  token.Maker[uuid.UUID]
}

func NewAuthService(userRepo db.IUserRepository, userService IUserService, mailService IMailService, tokenMaker token.Maker[uuid.UUID]) IAuthService {
	if reflect.ValueOf(userRepo).IsNil() {
		panic("auth service initialization failed: userRepo cannot be nil")
	}
	if reflect.ValueOf(userService).IsNil() {
		panic("auth service initialization failed: userService cannot be nil")
	}
	if reflect.ValueOf(mailService).IsNil() {
		panic("auth service initialization failed: mailService cannot be nil")
	}
	if reflect.ValueOf(tokenMaker).IsNil() {
		panic("auth service initialization failed: tokenMaker cannot be nil")
	}

	return &AuthService{
		userRepo:    userRepo,
		userService: userService,
		mailService: mailService,
		tokenMaker:  tokenMaker,
	}
}

func (a *AuthService) Login(ctx context.Context, email string, password string) (*LoginResult, error) {
	user, err := a.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		// 不洩漏email是否存在
		return nil, er.New(er.UnauthenticatedCode, "invalid email or password")
	}

	if !user.IsActive {
		return nil, er.New(er.UnauthorizedCode, "user is disabled")
	}

	if err := crypt.CheckPassword(password, user.PasswordHash); err != nil {
		return nil, er.New(er.UnauthenticatedCode, "invalid email or password")
	}

	accessToken, _, err := a.tokenMaker.CreateToken(user.Email, user.ID, time.Duration(constants.AccessTokenDuration)*time.Hour)
	if err != nil {
		return nil, er.New(er.InternalErrorCode, "created accessToken failed")
	}

	refreshToken, _, err := a.tokenMaker.CreateToken(user.Email, user.ID, time.Duration(constants.RefreshTokenDuration)*time.Hour)
	if err != nil {
		return nil, er.New(er.InternalErrorCode, "created refreshToken failed")
	}

	return &LoginResult{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user,
	}, nil
}

func (a *AuthService) ReNewToken(ctx context.Context, refreshToken string) (string, error) {
	payload, err := a.tokenMaker.VertifyToken(refreshToken)
	if err != nil {
		return "", er.New(er.UnauthenticatedCode, "token invalid")
	}

	//檢查使用者合法性
	user, err := a.userService.GetUserByID(ctx, payload.UserId)
	if err != nil {
		return "", er.New(er.UnauthorizedCode, "unauthorized")
	}
	if !user.IsActive {
		return "", er.New(er.UnauthorizedCode, "unauthorized")
	}

	accessToken, _, err := a.CreateAccessToken(ctx, user.Email, user.ID)
	if err != nil {
		return "", er.New(er.InternalErrorCode, err.Error())
	}

	return accessToken, nil
}

func (a *AuthService) CreateAccessToken(ctx context.Context, upn string, userID uuid.UUID) (string, *token.Payload[uuid.UUID], error) {
	return a.tokenMaker.CreateToken(upn, userID, time.Duration(constants.AccessTokenDuration)*time.Hour)
}

// Me 取得當前登入user資訊
// 錯誤:
//   - er.UnauthorizedCode 403: 未授權
func (a *AuthService) Me(ctx context.Context) (*model.User, error) {
	payload := util.GetTokenPayloadFromContext[uuid.UUID](ctx)
	if payload == nil {
		return nil, er.New(er.UnauthorizedCode, "unauthorized")
	}

	user, err := a.userService.GetUserByID(ctx, payload.UserId)
	if err != nil {
		return nil, er.New(er.UnauthorizedCode, "unauthorized")
	}

	return user, nil
}

// hashResetToken 對原始token取sha256，db只儲存雜湊值
func hashResetToken(rawToken string) string {
	sum := sha256.Sum256([]byte(rawToken))
	return hex.EncodeToString(sum[:])
}

func getPasswordResetLink(uid uuid.UUID, rawToken string) string {
	return fmt.Sprintf("%s/reset-password/%s/%s", config.GetConfig().FrontendUrl, uid.String(), rawToken)
}

func (a *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := a.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// email不存在也回傳成功，避免帳號列舉
			return nil
		}
		return er.New(er.InternalErrorCode, err.Error())
	}

	rawToken := random.RandomString(32)
	resetToken := &model.PasswordResetToken{
		UserID:    user.ID,
		TokenHash: hashResetToken(rawToken),
		ExpiresAt: time.Now().UTC().Add(constants.ResetTokenDurationMinute * time.Minute),
		IsUsed:    false,
		CreatedAt: time.Now().UTC(),
	}
	if err := a.userRepo.CreateResetToken(ctx, resetToken); err != nil {
		return er.New(er.InternalErrorCode, "create reset token failed")
	}

	err = a.mailService.SendPasswordResetEmail(ctx, PasswordResetMailData{
		Email:         user.Email,
		ResetURL:      getPasswordResetLink(user.ID, rawToken),
		ExpiryMinutes: constants.ResetTokenDurationMinute,
	})
	if err != nil {
		// 寄信失敗不回傳錯誤，對外行為必須與email不存在時一致
		log.Error().Err(err).Str("email", user.Email).Msg("send password reset email failed")
	}

	return nil
}

func (a *AuthService) ConfirmPasswordReset(ctx context.Context, uid string, rawToken string, newPassword string) error {
	genericErr := er.New(er.InvalidOperationCode, "reset link is invalid or expired")

	userID, err := uuid.Parse(uid)
	if err != nil {
		return genericErr
	}

	resetToken, err := a.userRepo.GetResetTokenByHash(ctx, hashResetToken(rawToken))
	if err != nil {
		return genericErr
	}

	if resetToken.UserID != userID {
		return genericErr
	}
	if resetToken.IsUsed {
		return genericErr
	}
	if resetToken.ExpiresAt.Before(time.Now()) {
		return genericErr
	}

	user, err := a.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return genericErr
	}

	if err := crypt.ValidateStringPassword(newPassword); err != nil {
		return er.New(er.InvalidArgumentCode, err.Error())
	}

	hashPassword, err := crypt.HashPassword(newPassword)
	if err != nil {
		return er.New(er.InternalErrorCode, err.Error())
	}

	if err := a.userRepo.UpdatePassword(ctx, user.ID, hashPassword); err != nil {
		return er.New(er.InternalErrorCode, err.Error())
	}

	if err := a.userRepo.MarkResetTokenUsed(ctx, resetToken.ID); err != nil {
		return er.New(er.InternalErrorCode, err.Error())
	}

	return nil
}
