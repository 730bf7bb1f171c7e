package project

import (
	"time"

	"gorm.io/datatypes"

	projectmodel "github.com/par4d15e/blogbackendserver-sub001/internal/model/project"
	"github.com/par4d15e/blogbackendserver-sub001/pkg/pagination"
)

// ListQuery 项目列表查询参数
type ListQuery struct {
	Cursor string `form:"cursor"` // keyset 游标
	Limit  int    `form:"limit"`
	Asc    bool   `form:"asc"`
}

// ProjectListItem 列表项
type ProjectListItem struct {
	ID                 uint       `json:"id"`
	Type               int        `json:"type"`
	Slug               string     `json:"slug"`
	ChineseTitle       string     `json:"chinese_title"`
	EnglishTitle       *string    `json:"english_title"`
	ChineseDescription string     `json:"chinese_description"`
	EnglishDescription *string    `json:"english_description"`
	CoverURL           *string    `json:"cover_url,omitempty"`
	IsPublished        bool       `json:"is_published"`
	Price              *float64   `json:"price,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          *time.Time `json:"updated_at"`
}

// ProjectListResponse keyset 分页列表
type ProjectListResponse struct {
	Projects []ProjectListItem `json:"projects"`
	Page     pagination.Page   `json:"page"`
}

// CreateProjectRequest 创建项目请求
type CreateProjectRequest struct {
	Type               int            `json:"type" binding:"required" enums:"1,2,3,4"`
	SectionID          *uint          `json:"section_id"`
	SeoID              *uint          `json:"seo_id"`
	CoverID            *uint          `json:"cover_id"`
	Slug               string         `json:"slug" binding:"required"`
	ChineseTitle       string         `json:"chinese_title" binding:"required"`
	EnglishTitle       *string        `json:"english_title"`
	ChineseDescription string         `json:"chinese_description" binding:"required"`
	EnglishDescription *string        `json:"english_description"`
	ChineseContent     datatypes.JSON `json:"chinese_content" binding:"required"`
	EnglishContent     datatypes.JSON `json:"english_content"`
	AttachmentIDs      []uint         `json:"attachment_ids"`
	IsPublished        bool           `json:"is_published"`

	// 付费配置, 可空表示免费项目
	Price *float64 `json:"price"`
	TaxID *uint    `json:"tax_id"`
}

// UpdateProjectRequest 更新项目请求
type UpdateProjectRequest struct {
	Type               *int           `json:"type"`
	SectionID          *uint          `json:"section_id"`
	SeoID              *uint          `json:"seo_id"`
	CoverID            *uint          `json:"cover_id"`
	Slug               *string        `json:"slug"`
	ChineseTitle       *string        `json:"chinese_title"`
	EnglishTitle       *string        `json:"english_title"`
	ChineseDescription *string        `json:"chinese_description"`
	EnglishDescription *string        `json:"english_description"`
	ChineseContent     datatypes.JSON `json:"chinese_content"`
	EnglishContent     datatypes.JSON `json:"english_content"`
	AttachmentIDs      []uint         `json:"attachment_ids"`
	Price              *float64       `json:"price"`
	TaxID              *uint          `json:"tax_id"`
}

func toListItem(p *projectmodel.Project) ProjectListItem {
	item := ProjectListItem{
		ID:                 p.ID,
		Type:               int(p.Type),
		Slug:               p.Slug,
		ChineseTitle:       p.ChineseTitle,
		EnglishTitle:       p.EnglishTitle,
		ChineseDescription: p.ChineseDescription,
		EnglishDescription: p.EnglishDescription,
		IsPublished:        p.IsPublished,
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
	}
	if p.Cover != nil {
		item.CoverURL = &p.Cover.OriginalFilepathURL
	}
	if p.Monetization != nil {
		item.Price = &p.Monetization.Price
	}
	return item
}
