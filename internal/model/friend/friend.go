// Package friend 友链模型
package friend

import "time"

// FriendType 友链展示类型
type FriendType int

const (
	TypeFeatured FriendType = 1
	TypeNormal   FriendType = 2
	TypeHidden   FriendType = 3
)

// Friend 友链分组表
type Friend struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	SectionID          uint      `gorm:"not null;index" json:"section_id"`
	ChineseTitle       string    `gorm:"type:varchar(100);not null" json:"chinese_title"`
	EnglishTitle       *string   `gorm:"type:varchar(100)" json:"english_title"`
	ChineseDescription *string   `gorm:"type:varchar(200)" json:"chinese_description"`
	EnglishDescription *string   `gorm:"type:varchar(200)" json:"english_description"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`

	Links []FriendList `gorm:"foreignKey:FriendID" json:"links,omitempty"`
}

func (Friend) TableName() string {
	return "friends"
}

// FriendList 友链条目表
type FriendList struct {
	ID       uint       `gorm:"primaryKey" json:"id"`
	FriendID uint       `gorm:"not null;index" json:"friend_id"`
	UserID   uint       `gorm:"not null;index" json:"user_id"`
	Type     FriendType `gorm:"not null;default:3;index" json:"type"`
	LogoURL  string     `gorm:"type:varchar(500);not null" json:"logo_url"`
	SiteURL  string     `gorm:"type:varchar(500);not null" json:"site_url"`

	ChineseTitle       string    `gorm:"type:varchar(100);not null" json:"chinese_title"`
	EnglishTitle       *string   `gorm:"type:varchar(100)" json:"english_title"`
	ChineseDescription string    `gorm:"type:varchar(200);not null" json:"chinese_description"`
	EnglishDescription *string   `gorm:"type:varchar(200)" json:"english_description"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

func (FriendList) TableName() string {
	return "friend_lists"
}
