package board

import (
	"time"

	"github.com/par4d15e/blogbackendserver-sub001/pkg/pagination"
)

// UpdateBoardRequest 留言板信息更新
type UpdateBoardRequest struct {
	ChineseTitle       *string `json:"chinese_title"`
	EnglishTitle       *string `json:"english_title"`
	ChineseDescription *string `json:"chinese_description"`
	EnglishDescription *string `json:"english_description"`
}

// CreateCommentRequest 发表留言
type CreateCommentRequest struct {
	Comment  string `json:"comment" binding:"required,max=500"`
	ParentID *uint  `json:"parent_id"`
}

// UpdateCommentRequest 修改留言
type UpdateCommentRequest struct {
	Comment string `json:"comment" binding:"required,max=500"`
}

// CommentNode 留言树节点
type CommentNode struct {
	ID        uint          `json:"id"`
	UserID    uint          `json:"user_id"`
	Username  *string       `json:"username"`
	Comment   string        `json:"comment"`
	ParentID  *uint         `json:"parent_id"`
	CreatedAt time.Time     `json:"created_at"`
	Children  []CommentNode `json:"children"`
}

// CommentTreeResponse 留言树分页响应
type CommentTreeResponse struct {
	Comments []CommentNode   `json:"comments"`
	Page     pagination.Page `json:"page"`
}
