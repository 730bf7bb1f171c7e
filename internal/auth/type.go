package auth

// SendCodeRequest 发送验证码请求
type SendCodeRequest struct {
	Email string `json:"email" binding:"required,email" example:"user@example.com"` // 邮箱
	Type  int    `json:"type" binding:"required" example:"1" enums:"1,2"`           // 1-注册验证 2-重置密码
}

// RegisterRequest 注册请求
type RegisterRequest struct {
	Username        string `json:"username" binding:"required" example:"newuser"`             // 用户名
	Password        string `json:"password" binding:"required" example:"Password123"`         // 密码
	ConfirmPassword string `json:"confirm_password" binding:"required" example:"Password123"` // 确认密码
	Email           string `json:"email" binding:"required,email" example:"user@example.com"` // 邮箱
	Code            string `json:"code" binding:"required" example:"123456"`                  // 邮箱验证码
}

// PreLoginRequest OAuth 登录前置请求, 换取 state
type PreLoginRequest struct {
	RedirectUrl string `json:"redirect_url" binding:"required" example:"https://example.com/home"` // 登录成功后的回跳地址
}

// PreLoginResponse 返回给前端的 state, 携带到第三方授权页
type PreLoginResponse struct {
	State string `json:"state" example:"abc123def456"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Type      string `json:"type" binding:"required" example:"account" enums:"account,github,google"` // 登录服务提供者
	Email     string `json:"email" example:"user@example.com"`                                        // 账号密码登录的邮箱
	Password  string `json:"password" example:"Password123"`                                          // 账号密码登录的密码
	State     string `json:"state" example:"abc123def456"`                                            // OAuth CSRF 防护 state
	Code      string `json:"code" example:"github_oauth_code"`                                        // 第三方 OAuth 授权码
	IPAddress string `json:"-"`                                                                       // 由 handler 填充, 用于首次登录记录
}

// LoginResponse 登录响应（内部使用，包含token）
type LoginResponse struct {
	AccessToken  string `json:"access_token,omitempty" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."` // JWT 访问令牌（将存入cookie）
	RefreshToken string `json:"refresh_token,omitempty" example:"eyJhbGciOiJIUzI1NiIs..."`                // 刷新令牌（将存入cookie）
	RedirectUrl  string `json:"redirect_url,omitempty" example:"https://example.com/home"`                // 重定向 URL
}

// ResetPasswordRequest 重置密码请求（通过邮箱验证码）
type ResetPasswordRequest struct {
	Email           string `json:"email" binding:"required,email" example:"user@example.com"` // 邮箱
	Code            string `json:"code" binding:"required" example:"123456"`                  // 重置验证码
	NewPassword     string `json:"new_password" binding:"required" example:"NewPassword123"`  // 新密码
	ConfirmPassword string `json:"confirm_password" binding:"required" example:"NewPassword123"`
}

// ChangePasswordRequest 已登录用户修改密码
type ChangePasswordRequest struct {
	NewPassword     string `json:"new_password" binding:"required" example:"NewPassword123"` // 新密码
	ConfirmPassword string `json:"confirm_password" binding:"required" example:"NewPassword123"`
}
