package blog

import (
	"time"

	"gorm.io/datatypes"

	blogmodel "github.com/par4d15e/blogbackendserver-sub001/internal/model/blog"
	"github.com/par4d15e/blogbackendserver-sub001/pkg/pagination"
)

// ListQuery 博客列表查询参数
type ListQuery struct {
	Cursor string `form:"cursor"`                            // keyset 游标
	Limit  int    `form:"limit,default=10" example:"10"`     // 每页数量
	Lang   string `form:"lang,default=zh" enums:"zh,en"`     // 语言
	Asc    bool   `form:"asc,default=false" example:"false"` // 是否正序
}

// BlogListItem 列表项, 不含正文
type BlogListItem struct {
	ID                 uint       `json:"id"`
	Slug               *string    `json:"slug"`
	ChineseTitle       string     `json:"chinese_title"`
	EnglishTitle       *string    `json:"english_title"`
	ChineseDescription *string    `json:"chinese_description"`
	EnglishDescription *string    `json:"english_description"`
	CoverURL           *string    `json:"cover_url,omitempty"`
	SectionID          uint       `json:"section_id"`
	Tags               []string   `json:"tags"`
	Views              int        `json:"views"`
	Likes              int        `json:"likes"`
	Comments           int        `json:"comments"`
	IsFeatured         bool       `json:"is_featured"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          *time.Time `json:"updated_at"`
}

// BlogListResponse keyset 分页列表
type BlogListResponse struct {
	Blogs []BlogListItem  `json:"blogs"`
	Page  pagination.Page `json:"page"`
}

// BlogNavigation 上一篇/下一篇导航
type BlogNavigation struct {
	Prev *BlogListItem `json:"prev"`
	Next *BlogListItem `json:"next"`
}

// CreateBlogRequest 创建博客请求
type CreateBlogRequest struct {
	SectionID          uint           `json:"section_id" binding:"required"`
	Slug               string         `json:"slug" binding:"required"`
	ChineseTitle       string         `json:"chinese_title" binding:"required"`
	EnglishTitle       *string        `json:"english_title"`
	ChineseDescription *string        `json:"chinese_description"`
	EnglishDescription *string        `json:"english_description"`
	ChineseContent     datatypes.JSON `json:"chinese_content" binding:"required"`
	EnglishContent     datatypes.JSON `json:"english_content"`
	SeoID              *uint          `json:"seo_id"`
	CoverID            *uint          `json:"cover_id"`
	TagIDs             []uint         `json:"tag_ids"`
	IsPublished        bool           `json:"is_published"`
}

// UpdateBlogRequest 更新博客请求, 均为增量字段
type UpdateBlogRequest struct {
	Slug               *string        `json:"slug"`
	SectionID          *uint          `json:"section_id"`
	ChineseTitle       *string        `json:"chinese_title"`
	EnglishTitle       *string        `json:"english_title"`
	ChineseDescription *string        `json:"chinese_description"`
	EnglishDescription *string        `json:"english_description"`
	ChineseContent     datatypes.JSON `json:"chinese_content"`
	EnglishContent     datatypes.JSON `json:"english_content"`
	SeoID              *uint          `json:"seo_id"`
	CoverID            *uint          `json:"cover_id"`
	TagIDs             []uint         `json:"tag_ids"`
}

// UpdateStatusRequest 发布/归档/精选状态更新
type UpdateStatusRequest struct {
	IsPublished *bool `json:"is_published"`
	IsArchived  *bool `json:"is_archived"`
	IsFeatured  *bool `json:"is_featured"`
}

// CreateCommentRequest 发表评论
type CreateCommentRequest struct {
	Comment  string `json:"comment" binding:"required,max=255"`
	ParentID *uint  `json:"parent_id"`
}

// UpdateCommentRequest 修改评论
type UpdateCommentRequest struct {
	Comment string `json:"comment" binding:"required,max=255"`
}

// CommentNode 评论树节点
type CommentNode struct {
	ID        uint          `json:"id"`
	UserID    uint          `json:"user_id"`
	Username  *string       `json:"username"`
	Comment   string        `json:"comment"`
	ParentID  *uint         `json:"parent_id"`
	CreatedAt time.Time     `json:"created_at"`
	Children  []CommentNode `json:"children"`
}

// CommentTreeResponse 评论树分页响应
type CommentTreeResponse struct {
	Comments []CommentNode   `json:"comments"`
	Page     pagination.Page `json:"page"`
}

func toListItem(b *blogmodel.Blog) BlogListItem {
	item := BlogListItem{
		ID:                 b.ID,
		Slug:               b.Slug,
		ChineseTitle:       b.ChineseTitle,
		EnglishTitle:       b.EnglishTitle,
		ChineseDescription: b.ChineseDescription,
		EnglishDescription: b.EnglishDescription,
		SectionID:          b.SectionID,
		Tags:               []string{},
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}

	if b.Cover != nil {
		item.CoverURL = &b.Cover.OriginalFilepathURL
	}
	if b.Stats != nil {
		item.Views = b.Stats.Views
		item.Likes = b.Stats.Likes
		item.Comments = b.Stats.Comments
	}
	if b.Status != nil {
		item.IsFeatured = b.Status.IsFeatured
	}
	for _, bt := range b.Tags {
		if bt.Tag != nil {
			item.Tags = append(item.Tags, bt.Tag.Slug)
		}
	}

	return item
}
