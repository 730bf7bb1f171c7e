// Package blog 博客相关模型
package blog

import (
	"time"

	"gorm.io/datatypes"

	"github.com/par4d15e/blogbackendserver-sub001/internal/model/media"
	"github.com/par4d15e/blogbackendserver-sub001/internal/model/section"
	"github.com/par4d15e/blogbackendserver-sub001/internal/model/seo"
	"github.com/par4d15e/blogbackendserver-sub001/internal/model/tag"
	"github.com/par4d15e/blogbackendserver-sub001/internal/model/user"
)

// Blog 博客表
type Blog struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	UserID    *uint   `gorm:"index" json:"user_id"`
	SectionID uint    `gorm:"not null;index" json:"section_id"`
	SeoID     *uint   `gorm:"index" json:"seo_id"`
	CoverID   *uint   `gorm:"index" json:"cover_id"`
	Slug      *string `gorm:"type:varchar(255);uniqueIndex" json:"slug"`
	// 中英双语字段, 英文内容可缺省
	ChineseTitle       string         `gorm:"type:varchar(200);not null" json:"chinese_title"`
	EnglishTitle       *string        `gorm:"type:varchar(200)" json:"english_title"`
	ChineseDescription *string        `gorm:"type:varchar(500)" json:"chinese_description"`
	EnglishDescription *string        `gorm:"type:varchar(500)" json:"english_description"`
	ChineseContent     datatypes.JSON `gorm:"not null" json:"chinese_content"`
	EnglishContent     datatypes.JSON `json:"english_content"`
	// 内容 hash, 用于判断内容是否发生变化
	ContentHash *string    `gorm:"type:varchar(64)" json:"content_hash,omitempty"`
	CreatedAt   time.Time  `gorm:"index:,sort:desc" json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at"`

	// 关联
	User    *user.User       `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Section *section.Section `gorm:"foreignKey:SectionID" json:"section,omitempty"`
	Seo     *seo.Seo         `gorm:"foreignKey:SeoID" json:"seo,omitempty"`
	Cover   *media.Media     `gorm:"foreignKey:CoverID" json:"cover,omitempty"`
	Status  *BlogStatus      `gorm:"foreignKey:BlogID" json:"status,omitempty"`
	Stats   *BlogStats       `gorm:"foreignKey:BlogID" json:"stats,omitempty"`
	Summary *BlogSummary     `gorm:"foreignKey:BlogID" json:"summary,omitempty"`
	Tags    []BlogTag        `gorm:"foreignKey:BlogID" json:"tags,omitempty"`
}

func (Blog) TableName() string {
	return "blogs"
}

// BlogStatus 博客状态表
type BlogStatus struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	UserID      *uint      `gorm:"index" json:"user_id"`
	BlogID      uint       `gorm:"not null;uniqueIndex" json:"blog_id"`
	IsPublished bool       `gorm:"not null;index" json:"is_published"`
	IsArchived  bool       `gorm:"not null;index" json:"is_archived"`
	IsFeatured  bool       `gorm:"not null;index" json:"is_featured"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at"`
}

func (BlogStatus) TableName() string {
	return "blog_status"
}

// BlogStats 博客统计表
type BlogStats struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	BlogID   uint `gorm:"not null;uniqueIndex" json:"blog_id"`
	Views    int  `gorm:"not null;default:0" json:"views"`
	Likes    int  `gorm:"not null;default:0" json:"likes"`
	Comments int  `gorm:"not null;default:0" json:"comments"`
	Saves    int  `gorm:"not null;default:0" json:"saves"`
}

func (BlogStats) TableName() string {
	return "blog_stats"
}

// BlogComment 博客评论表, parent_id 自引用构成评论树
type BlogComment struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	BlogID    uint       `gorm:"not null;index" json:"blog_id"`
	UserID    uint       `gorm:"not null;index" json:"user_id"`
	Comment   string     `gorm:"type:varchar(255);not null" json:"comment"`
	IsDeleted bool       `gorm:"not null;default:false;index" json:"is_deleted"`
	ParentID  *uint      `gorm:"index" json:"parent_id"`
	CreatedAt time.Time  `gorm:"index:,sort:desc" json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`

	User *user.User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (BlogComment) TableName() string {
	return "blog_comment"
}

// SavedBlog 收藏博客表
type SavedBlog struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"not null;index:idx_saved_blog_user_blog" json:"user_id"`
	BlogID    uint       `gorm:"not null;index:idx_saved_blog_user_blog" json:"blog_id"`
	CreatedAt time.Time  `gorm:"index:,sort:desc" json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`

	Blog *Blog `gorm:"foreignKey:BlogID" json:"blog,omitempty"`
}

func (SavedBlog) TableName() string {
	return "saved_blog"
}

// BlogTag 博客标签关联表
type BlogTag struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	BlogID    uint      `gorm:"not null;index:idx_blog_tag_blog_tag" json:"blog_id"`
	TagID     uint      `gorm:"not null;index:idx_blog_tag_blog_tag" json:"tag_id"`
	CreatedAt time.Time `json:"created_at"`

	Tag *tag.Tag `gorm:"foreignKey:TagID" json:"tag,omitempty"`
}

func (BlogTag) TableName() string {
	return "blog_tag"
}

// BlogSummary 博客摘要表
type BlogSummary struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	BlogID         uint           `gorm:"not null;uniqueIndex" json:"blog_id"`
	ChineseSummary datatypes.JSON `gorm:"not null" json:"chinese_summary"`
	EnglishSummary datatypes.JSON `gorm:"not null" json:"english_summary"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      *time.Time     `json:"updated_at"`
}

func (BlogSummary) TableName() string {
	return "blog_summary"
}
