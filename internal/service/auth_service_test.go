package service

import (
	"context"
	"testing"
	"time"

	"github.com/RoyceAzure/lab/shopcenter/internal/infra/repository/db/model"
	"github.com/RoyceAzure/rj/api/token"
	"github.com/RoyceAzure/rj/util/crypt"
	"github.com/RoyceAzure/rj/util/random"
	er "github.com/RoyceAzure/rj/util/rj_error"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

const testPassword = "TestPassword123!"

func newTestAuthService(t *testing.T) (IAuthService, *MockUserRepo, *MockMailService) {
	t.Helper()
	userRepo := NewMockUserRepo()
	userService := NewUserService(userRepo)
	mailService := &MockMailService{}
	tokenMaker, err := token.NewPasetoMaker[uuid.UUID](random.RandomString(32))
	require.NoError(t, err)
	return NewAuthService(userRepo, userService, mailService, tokenMaker), userRepo, mailService
}

func addMockUser(t *testing.T, userRepo *MockUserRepo, email string, isActive bool) *model.User {
	t.Helper()
	hashPassword, err := crypt.HashPassword(testPassword)
	require.NoError(t, err)

	user := &model.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hashPassword,
		Role:         model.RoleCustomer,
		IsActive:     isActive,
	}
	require.NoError(t, userRepo.CreateUser(context.Background(), user))
	return user
}

func TestLogin(t *testing.T) {
	authService, userRepo, _ := newTestAuthService(t)
	user := addMockUser(t, userRepo, "login@example.com", true)

	loginRes, err := authService.Login(context.Background(), user.Email, testPassword)

	require.NoError(t, err)
	require.NotEmpty(t, loginRes.AccessToken)
	require.NotEmpty(t, loginRes.RefreshToken)
	require.Equal(t, user.ID, loginRes.User.ID)
}

func TestLogin_WrongPassword(t *testing.T) {
	authService, userRepo, _ := newTestAuthService(t)
	user := addMockUser(t, userRepo, "login@example.com", true)

	_, err := authService.Login(context.Background(), user.Email, "WrongPassword123!")

	requireAnaCode(t, err, int(er.UnauthenticatedCode))
}

func TestLogin_UnknownEmailSameError(t *testing.T) {
	authService, userRepo, _ := newTestAuthService(t)
	user := addMockUser(t, userRepo, "login@example.com", true)

	// 帳號不存在與密碼錯誤回傳相同錯誤，不洩漏email是否註冊
	_, errUnknown := authService.Login(context.Background(), "missing@example.com", testPassword)
	_, errWrongPas := authService.Login(context.Background(), user.Email, "WrongPassword123!")

	requireAnaCode(t, errUnknown, int(er.UnauthenticatedCode))
	requireAnaCode(t, errWrongPas, int(er.UnauthenticatedCode))
	require.Equal(t, errUnknown.Error(), errWrongPas.Error())
}

func TestLogin_DisabledUser(t *testing.T) {
	authService, userRepo, _ := newTestAuthService(t)
	user := addMockUser(t, userRepo, "disabled@example.com", false)

	_, err := authService.Login(context.Background(), user.Email, testPassword)

	requireAnaCode(t, err, int(er.UnauthorizedCode))
}

func TestReNewToken(t *testing.T) {
	authService, userRepo, _ := newTestAuthService(t)
	user := addMockUser(t, userRepo, "renew@example.com", true)

	loginRes, err := authService.Login(context.Background(), user.Email, testPassword)
	require.NoError(t, err)

	accessToken, err := authService.ReNewToken(context.Background(), loginRes.RefreshToken)
	require.NoError(t, err)
	require.NotEmpty(t, accessToken)
}

func TestReNewToken_InvalidToken(t *testing.T) {
	authService, _, _ := newTestAuthService(t)

	_, err := authService.ReNewToken(context.Background(), "not a token")

	requireAnaCode(t, err, int(er.UnauthenticatedCode))
}

func TestRequestPasswordReset_UnknownEmailSucceeds(t *testing.T) {
	authService, userRepo, mailService := newTestAuthService(t)

	// email不存在也回傳成功，不寄信也不建token
	err := authService.RequestPasswordReset(context.Background(), "missing@example.com")

	require.NoError(t, err)
	require.Empty(t, mailService.Sent)
	require.Empty(t, userRepo.ResetTokens)
}

// createResetToken 直接在mock repo內建立重設token，回傳原始token
func createResetToken(t *testing.T, userRepo *MockUserRepo, userID uuid.UUID, expiresAt time.Time, isUsed bool) string {
	t.Helper()
	rawToken := random.RandomString(32)
	err := userRepo.CreateResetToken(context.Background(), &model.PasswordResetToken{
		UserID:    userID,
		TokenHash: hashResetToken(rawToken),
		ExpiresAt: expiresAt,
		IsUsed:    isUsed,
		CreatedAt: time.Now().UTC(),
	})
	require.NoError(t, err)
	return rawToken
}

func TestConfirmPasswordReset(t *testing.T) {
	authService, userRepo, _ := newTestAuthService(t)
	user := addMockUser(t, userRepo, "reset@example.com", true)
	rawToken := createResetToken(t, userRepo, user.ID, time.Now().UTC().Add(15*time.Minute), false)

	err := authService.ConfirmPasswordReset(context.Background(), user.ID.String(), rawToken, "NewPassword123!")
	require.NoError(t, err)

	// 新密碼生效
	_, err = authService.Login(context.Background(), user.Email, "NewPassword123!")
	require.NoError(t, err)

	// token已標記使用，同一token再用一次失敗
	err = authService.ConfirmPasswordReset(context.Background(), user.ID.String(), rawToken, "AnotherPassword123!")
	requireAnaCode(t, err, int(er.InvalidOperationCode))
}

func TestConfirmPasswordReset_FailuresAreIndistinguishable(t *testing.T) {
	authService, userRepo, _ := newTestAuthService(t)
	user := addMockUser(t, userRepo, "reset@example.com", true)
	otherUser := addMockUser(t, userRepo, "other@example.com", true)

	expiredToken := createResetToken(t, userRepo, user.ID, time.Now().UTC().Add(-time.Minute), false)
	usedToken := createResetToken(t, userRepo, user.ID, time.Now().UTC().Add(15*time.Minute), true)
	validToken := createResetToken(t, userRepo, user.ID, time.Now().UTC().Add(15*time.Minute), false)

	// token無效、過期、已使用、uid不符，全部回傳相同錯誤訊息
	cases := []struct {
		name     string
		uid      string
		rawToken string
	}{
		{"unknown token", user.ID.String(), random.RandomString(32)},
		{"expired token", user.ID.String(), expiredToken},
		{"used token", user.ID.String(), usedToken},
		{"uid mismatch", otherUser.ID.String(), validToken},
		{"malformed uid", "not-a-uuid", validToken},
	}

	var messages []string
	for _, tc := range cases {
		err := authService.ConfirmPasswordReset(context.Background(), tc.uid, tc.rawToken, "NewPassword123!")
		requireAnaCode(t, err, int(er.InvalidOperationCode))
		messages = append(messages, err.Error())
	}
	for i := 1; i < len(messages); i++ {
		require.Equal(t, messages[0], messages[i])
	}
}
