package user

import "time"

// ProfileResponse 用户个人信息
type ProfileResponse struct {
	ID         uint       `json:"id"`
	Username   *string    `json:"username"`
	Email      string     `json:"email"`
	Role       int        `json:"role"`
	Bio        string     `json:"bio"`
	City       *string    `json:"city,omitempty"`
	AvatarURL  *string    `json:"avatar_url,omitempty"`
	IsVerified bool       `json:"is_verified"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  *time.Time `json:"updated_at"`
}

// PublicProfileResponse 对外公开的用户信息, 不含邮箱等敏感字段
type PublicProfileResponse struct {
	ID        uint      `json:"id"`
	Username  *string   `json:"username"`
	Bio       string    `json:"bio"`
	City      *string   `json:"city,omitempty"`
	AvatarURL *string   `json:"avatar_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// UpdateProfileRequest 更新个人信息请求
type UpdateProfileRequest struct {
	Username  *string  `json:"username" example:"newname"`   // 用户名, 仅补全或修改时传
	Bio       *string  `json:"bio" example:"写点什么介绍自己"`       // 个人简介
	City      *string  `json:"city" example:"Shanghai"`      // 城市
	Longitude *float64 `json:"longitude" example:"121.4737"` // 经度
	Latitude  *float64 `json:"latitude" example:"31.2304"`   // 纬度
}

// AdminUserItem 后台用户列表项
type AdminUserItem struct {
	ID         uint      `json:"id"`
	Username   *string   `json:"username"`
	Email      string    `json:"email"`
	Role       int       `json:"role"`
	IsActive   bool      `json:"is_active"`
	IsVerified bool      `json:"is_verified"`
	IsDeleted  bool      `json:"is_deleted"`
	IPAddress  *string   `json:"ip_address,omitempty"`
	City       *string   `json:"city,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// AdminUserListResponse 后台用户分页列表
type AdminUserListResponse struct {
	Users    []AdminUserItem `json:"users"`
	Total    int64           `json:"total"`
	Page     int             `json:"page"`
	PageSize int             `json:"page_size"`
}
