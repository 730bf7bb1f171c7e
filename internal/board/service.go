package board

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/par4d15e/blogbackendserver-sub001/internal/cache"
	"github.com/par4d15e/blogbackendserver-sub001/internal/database"
	boardmodel "github.com/par4d15e/blogbackendserver-sub001/internal/model/board"
	"github.com/par4d15e/blogbackendserver-sub001/pkg/pagination"
	"github.com/par4d15e/blogbackendserver-sub001/pkg/response"
)

type BoardService struct {
	repo *BoardRepository
}

func NewBoardService() *BoardService {
	return &BoardService{repo: NewBoardRepository(database.MySQLDB)}
}

// GetBoard 留言板详情
func (s *BoardService) GetBoard() (*boardmodel.Board, *response.BusinessError) {
	b, err := s.repo.GetBoard()
	if err != nil {
		return nil, response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("查询留言板失败"),
			response.WithError(err),
		)
	}
	if b == nil {
		return nil, response.NewBusinessError(
			response.WithErrorCode(response.NotFound),
			response.WithErrorMessage("留言板不存在"),
		)
	}
	return b, nil
}

// UpdateBoard 后台更新留言板信息
func (s *BoardService) UpdateBoard(boardID uint, req UpdateBoardRequest) *response.BusinessError {
	b, err := s.repo.GetBoardByID(boardID)
	if err != nil || b == nil {
		return response.NewBusinessError(
			response.WithErrorCode(response.NotFound),
			response.WithErrorMessage("留言板不存在"),
		)
	}

	updates := map[string]any{}
	if req.ChineseTitle != nil {
		updates["chinese_title"] = *req.ChineseTitle
	}
	if req.EnglishTitle != nil {
		updates["english_title"] = *req.EnglishTitle
	}
	if req.ChineseDescription != nil {
		updates["chinese_description"] = *req.ChineseDescription
	}
	if req.EnglishDescription != nil {
		updates["english_description"] = *req.EnglishDescription
	}
	if len(updates) == 0 {
		return response.NewBusinessError(
			response.WithErrorCode(response.InvalidParameter),
			response.WithErrorMessage("没有需要更新的字段"),
		)
	}
	updates["updated_at"] = time.Now().UTC()

	if err := s.repo.UpdateBoard(boardID, updates); err != nil {
		return response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("更新留言板失败"),
			response.WithError(err),
		)
	}
	return nil
}

// commentCacheKey 留言树缓存 key, 前缀与写路径的失效模式保持一致
func commentCacheKey(boardID uint, cursor string, limit int) string {
	return fmt.Sprintf("%sboard=%d:cursor=%s:limit=%d", cache.KeyBoardComments, boardID, cursor, limit)
}

// ListComments 留言树, 根留言 keyset 分页, 带缓存
func (s *BoardService) ListComments(boardID uint, cursor string, limit int) (*CommentTreeResponse, *response.BusinessError) {
	if limit < 1 || limit > 50 {
		limit = 10
	}

	b, err := s.repo.GetBoardByID(boardID)
	if err != nil || b == nil {
		return nil, response.NewBusinessError(
			response.WithErrorCode(response.NotFound),
			response.WithErrorMessage("留言板不存在"),
		)
	}

	key := commentCacheKey(boardID, cursor, limit)
	result, err := cache.GetOrLoad(context.Background(), key, cache.DefaultTTL, func() (*CommentTreeResponse, error) {
		roots, hasNext, err := s.repo.ListRootComments(boardID, cursor, limit)
		if err != nil {
			return nil, err
		}

		replies, err := s.repo.ListReplies(boardID)
		if err != nil {
			return nil, err
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
	})
	if err != nil {
		return nil, response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("查询留言失败"),
			response.WithError(err),
		)
	}

	return result, nil
}

// CreateComment 发表留言或回复
func (s *BoardService) CreateComment(userID, boardID uint, req CreateCommentRequest) (*boardmodel.BoardComment, *response.BusinessError) {
	b, err := s.repo.GetBoardByID(boardID)
	if err != nil || b == nil {
		return nil, response.NewBusinessError(
			response.WithErrorCode(response.NotFound),
			response.WithErrorMessage("留言板不存在"),
		)
	}

	if req.ParentID != nil {
		parent, err := s.repo.GetComment(*req.ParentID)
		if err != nil {
			return nil, response.NewBusinessError(
				response.WithErrorCode(response.Fail),
				response.WithErrorMessage("查询父留言失败"),
				response.WithError(err),
			)
		}
		if parent == nil || parent.IsDeleted || parent.BoardID != boardID {
			return nil, response.NewBusinessError(
				response.WithErrorCode(response.NotFound),
				response.WithErrorMessage("父留言不存在"),
			)
		}
	}

	c := &boardmodel.BoardComment{
		BoardID:  boardID,
		UserID:   userID,
		Comment:  req.Comment,
		ParentID: req.ParentID,
	}
	if err := s.repo.CreateComment(c); err != nil {
		return nil, response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("发表留言失败"),
			response.WithError(err),
		)
	}

	s.invalidateCommentCache(boardID)
	return c, nil
}

// UpdateComment 修改留言, 仅作者或管理员
func (s *BoardService) UpdateComment(userID uint, isAdmin bool, commentID uint, req UpdateCommentRequest) *response.BusinessError {
	c, bizErr := s.getOwnedComment(userID, isAdmin, commentID)
	if bizErr != nil {
		return bizErr
	}

	if err := s.repo.UpdateComment(c.ID, req.Comment); err != nil {
		return response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("修改留言失败"),
			response.WithError(err),
		)
	}

	s.invalidateCommentCache(c.BoardID)
	return nil
}

// DeleteComment 软删除留言, 仅作者或管理员
func (s *BoardService) DeleteComment(userID uint, isAdmin bool, commentID uint) *response.BusinessError {
	c, bizErr := s.getOwnedComment(userID, isAdmin, commentID)
	if bizErr != nil {
		return bizErr
	}

	if err := s.repo.SoftDeleteComment(c.ID); err != nil {
		return response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("删除留言失败"),
			response.WithError(err),
		)
	}

	s.invalidateCommentCache(c.BoardID)
	return nil
}

func (s *BoardService) getOwnedComment(userID uint, isAdmin bool, commentID uint) (*boardmodel.BoardComment, *response.BusinessError) {
	c, err := s.repo.GetComment(commentID)
	if err != nil {
		return nil, response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("查询留言失败"),
			response.WithError(err),
		)
	}
	if c == nil || c.IsDeleted {
		return nil, response.NewBusinessError(
			response.WithErrorCode(response.NotFound),
			response.WithErrorMessage("留言不存在"),
		)
	}

	if c.UserID != userID && !isAdmin {
		return nil, response.NewBusinessError(
			response.WithErrorCode(response.Forbidden),
			response.WithErrorMessage("无权操作该留言"),
		)
	}
	return c, nil
}

func (s *BoardService) invalidateCommentCache(boardID uint) {
	pattern := cache.KeyBoardComments + "*"
	if err := cache.DeletePattern(context.Background(), pattern); err != nil {
		logrus.WithError(err).WithField("board_id", boardID).Warn("清理留言缓存失败")
	}
}
