package blog

import (
	blogmodel "github.com/par4d15e/blogbackendserver-sub001/internal/model/blog"
	"github.com/par4d15e/blogbackendserver-sub001/pkg/pagination"
	"github.com/par4d15e/blogbackendserver-sub001/pkg/response"
)

// ListComments 评论树, 根评论 keyset 分页, 回复整棵挂载
func (s *BlogService) ListComments(blogID uint, cursor string, limit int) (*CommentTreeResponse, *response.BusinessError) {
	limit = normalizeLimit(limit)

	b, err := s.repo.GetByID(blogID)
	if err != nil || b == nil {
		return nil, response.NewBusinessError(
			response.WithErrorCode(response.NotFound),
			response.WithErrorMessage("博客不存在"),
		)
	}

	roots, hasNext, err := s.repo.ListRootComments(blogID, cursor, limit)
	if err != nil {
		return nil, response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("查询评论失败"),
			response.WithError(err),
		)
	}

	replies, err := s.repo.ListReplies(blogID)
	if err != nil {
		return nil, response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("查询评论失败"),
			response.WithError(err),
		)
	}

	var last pagination.Cursor
	if len(roots) > 0 {
		tail := roots[len(roots)-1]
		last = pagination.Cursor{CreatedAt: tail.CreatedAt, ID: tail.ID}
	}

	return &CommentTreeResponse{
		Comments: BuildCommentTree(roots, replies),
		Page:     pagination.BuildPage(limit, len(roots), hasNext, last, cursor),
	}, nil
}

// CreateComment 发表评论或回复
func (s *BlogService) CreateComment(userID, blogID uint, req CreateCommentRequest) (*blogmodel.BlogComment, *response.BusinessError) {
	b, err := s.repo.GetByID(blogID)
	if err != nil || b == nil {
		return nil, response.NewBusinessError(
			response.WithErrorCode(response.NotFound),
			response.WithErrorMessage("博客不存在"),
		)
	}

	// 回复必须挂在同一博客的有效评论下
	if req.ParentID != nil {
		parent, err := s.repo.GetComment(*req.ParentID)
		if err != nil {
			return nil, response.NewBusinessError(
				response.WithErrorCode(response.Fail),
				response.WithErrorMessage("查询父评论失败"),
				response.WithError(err),
			)
		}
		if parent == nil || parent.IsDeleted || parent.BlogID != blogID {
			return nil, response.NewBusinessError(
				response.WithErrorCode(response.NotFound),
				response.WithErrorMessage("父评论不存在"),
			)
		}
	}

	c := &blogmodel.BlogComment{
		BlogID:   blogID,
		UserID:   userID,
		Comment:  req.Comment,
		ParentID: req.ParentID,
	}
	if err := s.repo.CreateComment(c); err != nil {
		return nil, response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("发表评论失败"),
			response.WithError(err),
		)
	}

	return c, nil
}

// UpdateComment 修改评论, 仅作者或管理员
func (s *BlogService) UpdateComment(userID uint, isAdmin bool, commentID uint, req UpdateCommentRequest) *response.BusinessError {
	c, bizErr := s.getOwnedComment(userID, isAdmin, commentID)
	if bizErr != nil {
		return bizErr
	}

	if err := s.repo.UpdateComment(c.ID, req.Comment); err != nil {
		return response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("修改评论失败"),
			response.WithError(err),
		)
	}
	return nil
}

// DeleteComment 软删除评论, 仅作者或管理员
func (s *BlogService) DeleteComment(userID uint, isAdmin bool, commentID uint) *response.BusinessError {
	c, bizErr := s.getOwnedComment(userID, isAdmin, commentID)
	if bizErr != nil {
		return bizErr
	}

	if err := s.repo.SoftDeleteComment(c); err != nil {
		return response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("删除评论失败"),
			response.WithError(err),
		)
	}
	return nil
}

// getOwnedComment 权限检查: 评论存在且属于当前用户（或管理员）
func (s *BlogService) getOwnedComment(userID uint, isAdmin bool, commentID uint) (*blogmodel.BlogComment, *response.BusinessError) {
	c, err := s.repo.GetComment(commentID)
	if err != nil {
		return nil, response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("查询评论失败"),
			response.WithError(err),
		)
	}
	if c == nil || c.IsDeleted {
		return nil, response.NewBusinessError(
			response.WithErrorCode(response.NotFound),
			response.WithErrorMessage("评论不存在"),
		)
	}

	if c.UserID != userID && !isAdmin {
		return nil, response.NewBusinessError(
			response.WithErrorCode(response.Forbidden),
			response.WithErrorMessage("无权操作该评论"),
		)
	}
	return c, nil
}
