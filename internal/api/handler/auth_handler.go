package handler

import (
	"encoding/json"
	"net/http"

	"github.com/RoyceAzure/lab/shopcenter/internal/api/dto"
	"github.com/RoyceAzure/lab/shopcenter/internal/constants"
	"github.com/RoyceAzure/lab/shopcenter/internal/service"
	"github.com/RoyceAzure/rj/api"
	er "github.com/RoyceAzure/rj/util/rj_error"
)

type AuthHandler struct {
	authService service.IAuthService
	userService service.IUserService
}

func NewAuthHandler(authService service.IAuthService, userService service.IUserService) *AuthHandler {
	if authService == nil {
		panic("authService cannot be nil")
	}
	if userService == nil {
		panic("userService cannot be nil")
	}
	return &AuthHandler{
		authService: authService,
		userService: userService,
	}
}

// @Summary register
// @use email and password to register a new customer account
// @Tags auth
// @Accept json
// @Produce json
// @Param accountInfo body dto.RegisterDTO true "email and password"
// @Success 200 {object} api.Response{data=dto.UserDTO} "success"
// @Failure 405 {object} api.ResponseError{data=string} "InvalidOperationCode"
// @Failure 460 {object} api.ResponseError{data=string} "InvalidArgumentCode"
// @Failure 500 {object} api.ResponseError{data=string} "Internal server error"
// @Router /auth/register [post]
func (a *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var registerDTO dto.RegisterDTO
	if err := json.NewDecoder(r.Body).Decode(&registerDTO); err != nil {
		api.ErrorJSON(w, int(er.BadRequestCode), err, er.ErrStrMap[er.BadRequestCode])
		return
	}

	ctx := r.Context()

	user, err := a.userService.CreateUser(ctx, registerDTO.Email, registerDTO.Password)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	api.SuccessJSON(w, convertUserModelToDTO(user), nil)
}

// @Summary email and password login
// @use email and password to login
// @Tags auth
// @Accept json
// @Produce json
// @Param accountInfo body dto.LoginDTO true "email and password"
// @Success 200 {object} api.Response{data=dto.LoginResponse} "success"
// @Failure 401 {object} api.ResponseError{data=string} "UnauthenticatedCode"
// @Failure 403 {object} api.ResponseError{data=string} "UnauthorizedCode"
// @Failure 500 {object} api.ResponseError{data=string} "Internal server error"
// @Router /auth/login [post]
func (a *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var loginDTO dto.LoginDTO
	if err := json.NewDecoder(r.Body).Decode(&loginDTO); err != nil {
		api.ErrorJSON(w, int(er.BadRequestCode), nil, er.ErrStrMap[er.BadRequestCode])
		return
	}

	ctx := r.Context()

	loginRes, err := a.authService.Login(ctx, loginDTO.Email, loginDTO.Password)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	api.SuccessJSON(w, dto.LoginResponse{
		AccessToken: dto.TokenInfo{
			Value:     loginRes.AccessToken,
			ExpiresIn: int(constants.AccessTokenDuration) * 3600,
		},
		RefreshToken: dto.TokenInfo{
			Value:     loginRes.RefreshToken,
			ExpiresIn: int(constants.RefreshTokenDuration) * 3600,
		},
		User: convertUserModelToDTO(loginRes.User),
	}, nil)
}

// @Summary renew token
// @use refresh token to renew access token
// @Tags auth
// @Accept json
// @Produce json
// @Param refresh_token body dto.RefreshTokenDTO true "refresh token"
// @Success 200 {object} api.Response{data=dto.TokenInfo} "success"
// @Failure 401 {object} api.ResponseError{data=string} "UnauthenticatedCode"
// @Failure 403 {object} api.ResponseError{data=string} "UnauthorizedCode"
// @Failure 500 {object} api.ResponseError{data=string} "Internal server error"
// @Router /auth/refresh-token [post]
func (a *AuthHandler) ReNewToken(w http.ResponseWriter, r *http.Request) {
	var refreshTokenDTO dto.RefreshTokenDTO
	if err := json.NewDecoder(r.Body).Decode(&refreshTokenDTO); err != nil {
		api.ErrorJSON(w, int(er.BadRequestCode), err, er.ErrStrMap[er.BadRequestCode])
		return
	}

	ctx := r.Context()

	accessToken, err := a.authService.ReNewToken(ctx, refreshTokenDTO.RefreshToken)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	api.SuccessJSON(w, dto.TokenInfo{
		Value:     accessToken,
		ExpiresIn: int(constants.AccessTokenDuration) * 3600,
	}, nil)
}

// @Summary get current login user info
// @use get current login user info
// @Tags auth
// @Accept json
// @Produce json
// @Success 200 {object} api.Response{data=dto.UserDTO} "success"
// @Failure 403 {object} api.ResponseError{data=string} "UnauthorizedCode"
// @Failure 500 {object} api.ResponseError{data=string} "Internal server error"
// @Security     ApiKeyAuth
// @Router /auth/me [get]
func (a *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userModel, err := a.authService.Me(ctx)
	if err != nil || userModel == nil {
		handleServiceError(w, err)
		return
	}

	api.SuccessJSON(w, convertUserModelToDTO(userModel), nil)
}

// @Summary change password
// @use old password to set a new password
// @Tags auth
// @Accept json
// @Produce json
// @Param passwordInfo body dto.ChangePasswordDTO true "old and new password"
// @Success 200 {object} api.Response{data=string} "success"
// @Failure 401 {object} api.ResponseError{data=string} "UnauthenticatedCode"
// @Failure 405 {object} api.ResponseError{data=string} "InvalidOperationCode"
// @Failure 460 {object} api.ResponseError{data=string} "InvalidArgumentCode"
// @Failure 500 {object} api.ResponseError{data=string} "Internal server error"
// @Security     ApiKeyAuth
// @Router /auth/change-password [post]
func (a *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var changePasswordDTO dto.ChangePasswordDTO
	if err := json.NewDecoder(r.Body).Decode(&changePasswordDTO); err != nil {
		api.ErrorJSON(w, int(er.BadRequestCode), err, er.ErrStrMap[er.BadRequestCode])
		return
	}

	ctx := r.Context()

	operator, err := getOperator(ctx, a.userService)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	err = a.userService.ChangePassword(ctx, operator.ID, changePasswordDTO.OldPassword, changePasswordDTO.NewPassword)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	api.SuccessJSON(w, nil, nil)
}

// @Summary 發送密碼重設信
// @use 發送密碼重設信，無論email是否存在都回傳成功
// @Tags auth
// @Accept json
// @Produce json
// @Param email body dto.RequestPasswordResetDTO true "email"
// @Success 200 {object} api.Response{data=string} "success"
// @Failure 500 {object} api.ResponseError{data=string} "Internal server error"
// @Router /auth/reset-password [post]
func (a *AuthHandler) RequestPasswordReset(w http.ResponseWriter, r *http.Request) {
	var requestPasswordResetDTO dto.RequestPasswordResetDTO
	if err := json.NewDecoder(r.Body).Decode(&requestPasswordResetDTO); err != nil {
		api.ErrorJSON(w, int(er.BadRequestCode), err, er.ErrStrMap[er.BadRequestCode])
		return
	}

	ctx := r.Context()

	err := a.authService.RequestPasswordReset(ctx, requestPasswordResetDTO.Email)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	api.SuccessJSON(w, nil, nil)
}

// @Summary 以重設token設定新密碼
// @use 以重設token設定新密碼
// @Tags auth
// @Accept json
// @Produce json
// @Param resetInfo body dto.ConfirmPasswordResetDTO true "user id, token and new password"
// @Success 200 {object} api.Response{data=string} "success"
// @Failure 405 {object} api.ResponseError{data=string} "InvalidOperationCode"
// @Failure 460 {object} api.ResponseError{data=string} "InvalidArgumentCode"
// @Failure 500 {object} api.ResponseError{data=string} "Internal server error"
// @Router /auth/reset-password/confirm [post]
func (a *AuthHandler) ConfirmPasswordReset(w http.ResponseWriter, r *http.Request) {
	var confirmPasswordResetDTO dto.ConfirmPasswordResetDTO
	if err := json.NewDecoder(r.Body).Decode(&confirmPasswordResetDTO); err != nil {
		api.ErrorJSON(w, int(er.BadRequestCode), err, er.ErrStrMap[er.BadRequestCode])
		return
	}

	ctx := r.Context()

	err := a.authService.ConfirmPasswordReset(ctx, confirmPasswordResetDTO.UserID, confirmPasswordResetDTO.Token, confirmPasswordResetDTO.NewPassword)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	api.SuccessJSON(w, nil, nil)
}
