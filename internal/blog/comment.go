package blog

import (
	"gorm.io/gorm"

	blogmodel "github.com/par4d15e/blogbackendserver-sub001/internal/model/blog"
	"github.com/par4d15e/blogbackendserver-sub001/pkg/pagination"
)

// ListRootComments 根评论 keyset 分页
func (r *BlogRepository) ListRootComments(blogID uint, cursor string, limit int) ([]blogmodel.BlogComment, bool, error) {
	var comments []blogmodel.BlogComment
	err := r.db.Model(&blogmodel.BlogComment{}).
		Where("blog_comment.blog_id = ? AND blog_comment.parent_id IS NULL AND blog_comment.is_deleted = ?", blogID, false).
		Scopes(pagination.Keyset{}.Scope("blog_comment.created_at", cursor)).
		Limit(limit + 1).
		Preload("User").
		Find(&comments).Error
	if err != nil {
		return nil, false, err
	}

	hasNext := len(comments) > limit
	if hasNext {
		comments = comments[:limit]
	}
	return comments, hasNext, nil
}

// ListReplies 给定根评论集合下的全部回复（任意深度）
// 回复总量可控, 一次取出后在内存中组树
func (r *BlogRepository) ListReplies(blogID uint) ([]blogmodel.BlogComment, error) {
	var replies []blogmodel.BlogComment
	err := r.db.
		Where("blog_id = ? AND parent_id IS NOT NULL AND is_deleted = ?", blogID, false).
		Order("created_at ASC").
		Preload("User").
		Find(&replies).Error
	return replies, err
}

// GetComment 单条评论查询
func (r *BlogRepository) GetComment(commentID uint) (*blogmodel.BlogComment, error) {
	var c blogmodel.BlogComment
	err := r.db.First(&c, commentID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

// CreateComment 发表评论, 同事务维护 stats.comments 计数
func (r *BlogRepository) CreateComment(c *blogmodel.BlogComment) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(c).Error; err != nil {
			return err
		}
		return tx.Model(&blogmodel.BlogStats{}).
			Where("blog_id = ?", c.BlogID).
			UpdateColumn("comments", gorm.Expr("comments + 1")).Error
	})
}

// UpdateComment 修改评论内容
func (r *BlogRepository) UpdateComment(commentID uint, content string) error {
	return r.db.Model(&blogmodel.BlogComment{}).
		Where("id = ?", commentID).
		Update("comment", content).Error
}

// SoftDeleteComment 软删除评论, 同事务递减计数
func (r *BlogRepository) SoftDeleteComment(c *blogmodel.BlogComment) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(c).Update("is_deleted", true).Error; err != nil {
			return err
		}
		return tx.Model(&blogmodel.BlogStats{}).
			Where("blog_id = ?", c.BlogID).
			UpdateColumn("comments", gorm.Expr("GREATEST(comments - 1, 0)")).Error
	})
}

// BuildCommentTree 按 parent_id 组装评论树
// roots 已按分页排序, 回复按创建时间正序挂到各自父节点下
func BuildCommentTree(roots, replies []blogmodel.BlogComment) []CommentNode {
	childrenOf := make(map[uint][]blogmodel.BlogComment)
	for _, reply := range replies {
		if reply.ParentID == nil {
			continue
		}
		childrenOf[*reply.ParentID] = append(childrenOf[*reply.ParentID], reply)
	}

	var build func(c blogmodel.BlogComment) CommentNode
	build = func(c blogmodel.BlogComment) CommentNode {
		node := CommentNode{
			ID:        c.ID,
			UserID:    c.UserID,
			Comment:   c.Comment,
			ParentID:  c.ParentID,
			CreatedAt: c.CreatedAt,
			Children:  []CommentNode{},
		}
		if c.User != nil {
			node.Username = c.User.Username
		}
		for _, child := range childrenOf[c.ID] {
			node.Children = append(node.Children, build(child))
		}
		return node
	}

	nodes := make([]CommentNode, 0, len(roots))
	for _, root := range roots {
		nodes = append(nodes, build(root))
	}
	return nodes
}
