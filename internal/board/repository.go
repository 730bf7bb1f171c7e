package board

import (
	"gorm.io/gorm"

	boardmodel "github.com/par4d15e/blogbackendserver-sub001/internal/model/board"
	"github.com/par4d15e/blogbackendserver-sub001/pkg/pagination"
)

type BoardRepository struct {
	db *gorm.DB
}

func NewBoardRepository(db *gorm.DB) *BoardRepository {
	return &BoardRepository{db: db}
}

// GetBoard 留言板详情, 站点通常只有一块留言板
func (r *BoardRepository) GetBoard() (*boardmodel.Board, error) {
	var b boardmodel.Board
	err := r.db.First(&b).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &b, nil
}

// GetBoardByID 按 ID 查询
func (r *BoardRepository) GetBoardByID(id uint) (*boardmodel.Board, error) {
	var b boardmodel.Board
	err := r.db.First(&b, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &b, nil
}

// UpdateBoard 后台更新留言板信息
func (r *BoardRepository) UpdateBoard(boardID uint, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.Model(&boardmodel.Board{}).
		Where("id = ?", boardID).
		Updates(updates).Error
}

// ListRootComments 根留言 keyset 分页
func (r *BoardRepository) ListRootComments(boardID uint, cursor string, limit int) ([]boardmodel.BoardComment, bool, error) {
	var comments []boardmodel.BoardComment
	err := r.db.Model(&boardmodel.BoardComment{}).
		Where("board_comments.board_id = ? AND board_comments.parent_id IS NULL AND board_comments.is_deleted = ?", boardID, false).
		Scopes(pagination.Keyset{}.Scope("board_comments.created_at", cursor)).
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

// ListReplies 留言板下全部回复
func (r *BoardRepository) ListReplies(boardID uint) ([]boardmodel.BoardComment, error) {
	var replies []boardmodel.BoardComment
	err := r.db.
		Where("board_id = ? AND parent_id IS NOT NULL AND is_deleted = ?", boardID, false).
		Order("created_at ASC").
		Preload("User").
		Find(&replies).Error
	return replies, err
}

// GetComment 单条留言
func (r *BoardRepository) GetComment(commentID uint) (*boardmodel.BoardComment, error) {
	var c boardmodel.BoardComment
	err := r.db.First(&c, commentID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

// CreateComment 发表留言
func (r *BoardRepository) CreateComment(c *boardmodel.BoardComment) error {
	return r.db.Create(c).Error
}

// UpdateComment 修改留言内容
func (r *BoardRepository) UpdateComment(commentID uint, content string) error {
	return r.db.Model(&boardmodel.BoardComment{}).
		Where("id = ?", commentID).
		Update("comment", content).Error
}

// SoftDeleteComment 软删除留言
func (r *BoardRepository) SoftDeleteComment(commentID uint) error {
	return r.db.Model(&boardmodel.BoardComment{}).
		Where("id = ?", commentID).
		Update("is_deleted", true).Error
}

// BuildCommentTree 按 parent_id 组装留言树
func BuildCommentTree(roots, replies []boardmodel.BoardComment) []CommentNode {
	childrenOf := make(map[uint][]boardmodel.BoardComment)
	for _, reply := range replies {
		if reply.ParentID == nil {
			continue
		}
		childrenOf[*reply.ParentID] = append(childrenOf[*reply.ParentID], reply)
	}

	var build func(c boardmodel.BoardComment) CommentNode
	build = func(c boardmodel.BoardComment) CommentNode {
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
