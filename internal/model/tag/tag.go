// Package tag 标签模型
package tag

import "time"

// Tag 标签表
type Tag struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	ChineseTitle string    `gorm:"type:varchar(50);not null;uniqueIndex" json:"chinese_title"`
	EnglishTitle string    `gorm:"type:varchar(50);not null" json:"english_title"`
	Slug         string    `gorm:"type:varchar(50);not null;uniqueIndex" json:"slug"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (Tag) TableName() string {
	return "tags"
}
