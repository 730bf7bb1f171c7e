// Package user 用户相关模型
package user

import "time"

// RoleType 用户角色
type RoleType int

const (
	RoleUser  RoleType = 1
	RoleAdmin RoleType = 2
)

// User 用户表
type User struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Username     *string    `gorm:"type:varchar(30);uniqueIndex" json:"username"`
	Email        string     `gorm:"type:varchar(100);not null;uniqueIndex" json:"email"`
	PasswordHash *string    `gorm:"type:varchar(255)" json:"-"`
	Role         RoleType   `gorm:"not null;default:1" json:"role"`
	Bio          string     `gorm:"type:varchar(300);default:'这个人很懒，什么都没有留下。'" json:"bio"`
	IPAddress    *string    `gorm:"column:ip_address;type:varchar(45)" json:"ip_address,omitempty"`
	Longitude    *float64   `json:"longitude,omitempty"`
	Latitude     *float64   `json:"latitude,omitempty"`
	City         *string    `gorm:"type:varchar(50)" json:"city,omitempty"`
	IsActive     bool       `gorm:"not null;default:false;index:idx_users_lookup" json:"is_active"`
	IsVerified   bool       `gorm:"not null;default:false;index:idx_users_lookup" json:"is_verified"`
	IsDeleted    bool       `gorm:"not null;default:false;index:idx_users_lookup" json:"is_deleted"`
	CreatedAt    time.Time  `gorm:"index:,sort:desc" json:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// IsAdmin 是否为管理员
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
