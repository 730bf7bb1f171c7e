// Package board 留言板模型
package board

import (
	"time"

	"github.com/par4d15e/blogbackendserver-sub001/internal/model/user"
)

// Board 留言板表
type Board struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	SectionID          uint      `gorm:"not null;index" json:"section_id"`
	ChineseTitle       string    `gorm:"type:varchar(100);not null;uniqueIndex" json:"chinese_title"`
	EnglishTitle       *string   `gorm:"type:varchar(100)" json:"english_title"`
	ChineseDescription *string   `gorm:"type:varchar(200)" json:"chinese_description"`
	EnglishDescription *string   `gorm:"type:varchar(200)" json:"english_description"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

func (Board) TableName() string {
	return "boards"
}

// BoardComment 留言表, parent_id 自引用构成楼中楼
type BoardComment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	BoardID   uint      `gorm:"not null;index" json:"board_id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	ParentID  *uint     `gorm:"index" json:"parent_id"`
	IsDeleted bool      `gorm:"not null;default:false;index" json:"is_deleted"`
	Comment   string    `gorm:"type:varchar(500);not null" json:"comment"`
	CreatedAt time.Time `gorm:"index:,sort:desc" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	User *user.User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (BoardComment) TableName() string {
	return "board_comments"
}
