// Package seo SEO 元信息模型
package seo

import "time"

// Seo SEO 表, 博客/项目/栏目共用
type Seo struct {
	ID                 uint       `gorm:"primaryKey" json:"id"`
	ChineseTitle       string     `gorm:"type:varchar(100);not null" json:"chinese_title"`
	EnglishTitle       *string    `gorm:"type:varchar(100)" json:"english_title"`
	ChineseDescription *string    `gorm:"type:varchar(300)" json:"chinese_description"`
	EnglishDescription *string    `gorm:"type:varchar(300)" json:"english_description"`
	ChineseKeywords    *string    `gorm:"type:varchar(200)" json:"chinese_keywords"`
	EnglishKeywords    *string    `gorm:"type:varchar(200)" json:"english_keywords"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          *time.Time `json:"updated_at"`
}

func (Seo) TableName() string {
	return "seo"
}
