// Package auth 认证相关模型
package auth

import "time"

// CodeType 验证码类型
type CodeType int

const (
	CodeVerified CodeType = 1
	CodeReset    CodeType = 2
)

// SocialProvider 第三方登录提供商
type SocialProvider int

const (
	ProviderGoogle SocialProvider = 1
	ProviderGithub SocialProvider = 2
)

// RefreshToken 刷新令牌表
// 访问令牌无状态不落库, 刷新令牌按会话落库以支持轮换和撤销
type RefreshToken struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index;index:idx_tokens_user_active" json:"user_id"`
	Jit       string    `gorm:"type:varchar(64);not null;uniqueIndex" json:"jit"`
	Token     string    `gorm:"type:varchar(1024);not null" json:"-"`
	IsActive  bool      `gorm:"default:true;index:idx_tokens_user_active" json:"is_active"`
	CreatedAt time.Time `gorm:"index:,sort:desc" json:"created_at"`
	ExpiredAt time.Time `gorm:"not null;index" json:"expired_at"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

// Code 验证码表, 存储邮箱验证码和重置密码码
type Code struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index;index:idx_codes_validate" json:"user_id"`
	Type      CodeType  `gorm:"not null;index:idx_codes_validate" json:"type"`
	Code      string    `gorm:"type:varchar(10);not null" json:"code"`
	IsUsed    bool      `gorm:"not null;default:false;index:idx_codes_validate" json:"is_used"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
}

func (Code) TableName() string {
	return "codes"
}

// SocialAccount 社交账户表, 存储第三方登录账户绑定
type SocialAccount struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	UserID         uint           `gorm:"not null;index:idx_social_accounts_lookup" json:"user_id"`
	Provider       SocialProvider `gorm:"not null;index:idx_social_accounts_lookup" json:"provider"`
	ProviderUserID string         `gorm:"type:varchar(100);not null;uniqueIndex" json:"provider_user_id"`
	CreatedAt      time.Time      `json:"created_at"`
}

func (SocialAccount) TableName() string {
	return "social_accounts"
}
