package dto

// TokenInfo 表示令牌資訊
type TokenInfo struct {
	Value     string `json:"value"`
	ExpiresIn int    `json:"expires_in"`
}

// UserDTO 表示用戶資訊
type UserDTO struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	IsActive bool   `json:"is_active"`
}

// LoginResponse 表示登入響應的完整結構
type LoginResponse struct {
	AccessToken  TokenInfo `json:"access_token"`
	RefreshToken TokenInfo `json:"refresh_token"`
	User         UserDTO   `json:"user"`
}

type RegisterDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"` //密碼明文
}

type LoginDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"` //密碼明文
}

type RefreshTokenDTO struct {
	RefreshToken string `json:"refresh_token"`
}

type ChangePasswordDTO struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

type RequestPasswordResetDTO struct {
	Email string `json:"email"`
}

type ConfirmPasswordResetDTO struct {
	UserID      string `json:"user_id"`
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}
