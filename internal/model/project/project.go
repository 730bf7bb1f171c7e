// Package project 项目相关模型
package project

import (
	"time"

	"gorm.io/datatypes"

	"github.com/par4d15e/blogbackendserver-sub001/internal/model/media"
	"github.com/par4d15e/blogbackendserver-sub001/internal/model/payment"
	"github.com/par4d15e/blogbackendserver-sub001/internal/model/section"
	"github.com/par4d15e/blogbackendserver-sub001/internal/model/seo"
)

// ProjectType 项目类型
type ProjectType int

const (
	TypeWeb     ProjectType = 1
	TypeMobile  ProjectType = 2
	TypeDesktop ProjectType = 3
	TypeOther   ProjectType = 4
)

// Project 项目表
type Project struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	Type        ProjectType `gorm:"not null;default:1;index" json:"type"`
	SectionID   *uint       `gorm:"index" json:"section_id"`
	SeoID       *uint       `gorm:"index" json:"seo_id"`
	CoverID     *uint       `gorm:"index" json:"cover_id"`
	IsPublished bool        `gorm:"not null;index" json:"is_published"`

	ChineseTitle       string         `gorm:"type:varchar(200);uniqueIndex" json:"chinese_title"`
	EnglishTitle       *string        `gorm:"type:varchar(200)" json:"english_title"`
	Slug               string         `gorm:"type:varchar(300);not null;uniqueIndex" json:"slug"`
	ChineseDescription string         `gorm:"type:varchar(300);not null" json:"chinese_description"`
	EnglishDescription *string        `gorm:"type:varchar(300)" json:"english_description"`
	ChineseContent     datatypes.JSON `gorm:"not null" json:"chinese_content"`
	EnglishContent     datatypes.JSON `json:"english_content"`
	ContentHash        *string        `gorm:"type:varchar(64)" json:"content_hash,omitempty"`
	CreatedAt          time.Time      `gorm:"index:,sort:desc" json:"created_at"`
	UpdatedAt          *time.Time     `json:"updated_at"`

	// 关联
	Section      *section.Section     `gorm:"foreignKey:SectionID" json:"section,omitempty"`
	Seo          *seo.Seo             `gorm:"foreignKey:SeoID" json:"seo,omitempty"`
	Cover        *media.Media         `gorm:"foreignKey:CoverID" json:"cover,omitempty"`
	Attachments  []ProjectAttachment  `gorm:"foreignKey:ProjectID" json:"attachments,omitempty"`
	Monetization *ProjectMonetization `gorm:"foreignKey:ProjectID" json:"monetization,omitempty"`
}

func (Project) TableName() string {
	return "projects"
}

// ProjectAttachment 项目附件关联表
type ProjectAttachment struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	ProjectID    uint       `gorm:"not null;index" json:"project_id"`
	AttachmentID uint       `gorm:"not null;index" json:"attachment_id"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at"`

	Attachment *media.Media `gorm:"foreignKey:AttachmentID" json:"attachment,omitempty"`
}

func (ProjectAttachment) TableName() string {
	return "project_attachments"
}

// ProjectMonetization 项目付费信息表
type ProjectMonetization struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	ProjectID uint       `gorm:"not null;uniqueIndex" json:"project_id"`
	TaxID     *uint      `gorm:"index" json:"tax_id"`
	Price     float64    `gorm:"not null;default:0" json:"price"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`

	Tax *payment.Tax `gorm:"foreignKey:TaxID" json:"tax,omitempty"`
}

func (ProjectMonetization) TableName() string {
	return "project_monetizations"
}
