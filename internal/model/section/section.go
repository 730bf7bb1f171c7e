// Package section 栏目模型
package section

import "time"

// SectionType 栏目类型
type SectionType int

const (
	TypeBlog    SectionType = 1
	TypeProject SectionType = 2
	TypeBoard   SectionType = 3
	TypeFriend  SectionType = 4
	TypeAbout   SectionType = 5
)

// Section 栏目表, parent_id 自引用构成栏目树
type Section struct {
	ID                 uint        `gorm:"primaryKey" json:"id"`
	SeoID              *uint       `gorm:"index" json:"seo_id"`
	Type               SectionType `gorm:"not null;index" json:"type"`
	Slug               string      `gorm:"type:varchar(100);not null;uniqueIndex" json:"slug"`
	ChineseTitle       string      `gorm:"type:varchar(100);not null" json:"chinese_title"`
	EnglishTitle       *string     `gorm:"type:varchar(100)" json:"english_title"`
	ChineseDescription *string     `gorm:"type:varchar(300)" json:"chinese_description"`
	EnglishDescription *string     `gorm:"type:varchar(300)" json:"english_description"`
	IsActive           bool        `gorm:"not null;default:true;index" json:"is_active"`
	ParentID           *uint       `gorm:"index" json:"parent_id"`
	CreatedAt          time.Time   `json:"created_at"`
	UpdatedAt          *time.Time  `json:"updated_at"`

	Children []Section `gorm:"foreignKey:ParentID" json:"children,omitempty"`
}

func (Section) TableName() string {
	return "sections"
}
