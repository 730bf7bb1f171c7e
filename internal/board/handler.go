package board

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/par4d15e/blogbackendserver-sub001/internal/dto"
	"github.com/par4d15e/blogbackendserver-sub001/internal/middleware"
	"github.com/par4d15e/blogbackendserver-sub001/pkg/response"
)

type BoardHandler struct {
	service *BoardService
}

func parseIDParam(c *gin.Context, name string) (uint, *response.BusinessError) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, response.NewBusinessError(
			response.WithErrorCode(response.ParseError),
			response.WithErrorMessage("无效的ID"),
		)
	}
	return uint(id), nil
}

// GetBoard 留言板详情
// @Summary 留言板详情
// @Tags board
// @Produce json
// @Success 200 {object} response.Response
// @Router /board [get]
func (h *BoardHandler) GetBoard(c *gin.Context) {
	b, err := h.service.GetBoard()
	if err != nil {
		dto.ErrorResponse(c, err)
		return
	}
	dto.SuccessResponse(c, b)
}

// UpdateBoard 后台更新留言板
// @Summary 更新留言板信息
// @Tags board
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "留言板ID"
// @Param request body UpdateBoardRequest true "更新请求"
// @Success 200 {object} response.Response
// @Router /admin/board/{id} [put]
func (h *BoardHandler) UpdateBoard(c *gin.Context) {
	boardID, bizErr := parseIDParam(c, "id")
	if bizErr != nil {
		dto.ErrorResponse(c, bizErr)
		return
	}

	var req UpdateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.ErrorResponse(c, response.NewBusinessError(
			response.WithErrorCode(response.ParseError),
			response.WithErrorMessage("请检查参数"),
		))
		return
	}

	if err := h.service.UpdateBoard(boardID, req); err != nil {
		dto.ErrorResponse(c, err)
		return
	}
	dto.SuccessResponse(c, gin.H{"message": "更新成功"})
}

// ListComments 留言树
// @Summary 留言板留言树
// @Tags board
// @Produce json
// @Param id path int true "留言板ID"
// @Param cursor query string false "keyset 游标"
// @Param limit query int false "根留言每页数量" default(10)
// @Success 200 {object} response.Response{data=CommentTreeResponse}
// @Router /board/{id}/comments [get]
func (h *BoardHandler) ListComments(c *gin.Context) {
	boardID, bizErr := parseIDParam(c, "id")
	if bizErr != nil {
		dto.ErrorResponse(c, bizErr)
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	result, err := h.service.ListComments(boardID, c.Query("cursor"), limit)
	if err != nil {
		dto.ErrorResponse(c, err)
		return
	}
	dto.SuccessResponse(c, result)
}

// CreateComment 发表留言
// @Summary 发表留言或回复
// @Tags board
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "留言板ID"
// @Param request body CreateCommentRequest true "留言请求"
// @Success 200 {object} response.Response
// @Router /board/{id}/comments [post]
func (h *BoardHandler) CreateComment(c *gin.Context) {
	boardID, bizErr := parseIDParam(c, "id")
	if bizErr != nil {
		dto.ErrorResponse(c, bizErr)
		return
	}

	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.ErrorResponse(c, response.NewBusinessError(
			response.WithErrorCode(response.ParseError),
			response.WithErrorMessage("请检查参数"),
		))
		return
	}

	comment, err := h.service.CreateComment(middleware.GetUserID(c), boardID, req)
	if err != nil {
		dto.ErrorResponse(c, err)
		return
	}
	dto.SuccessResponse(c, comment)
}

// UpdateComment 修改留言
// @Summary 修改留言
// @Tags board
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param comment_id path int true "留言ID"
// @Param request body UpdateCommentRequest true "修改请求"
// @Success 200 {object} response.Response
// @Router /board/comments/{comment_id} [put]
func (h *BoardHandler) UpdateComment(c *gin.Context) {
	commentID, bizErr := parseIDParam(c, "comment_id")
	if bizErr != nil {
		dto.ErrorResponse(c, bizErr)
		return
	}

	var req UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.ErrorResponse(c, response.NewBusinessError(
			response.WithErrorCode(response.ParseError),
			response.WithErrorMessage("请检查参数"),
		))
		return
	}

	if err := h.service.UpdateComment(middleware.GetUserID(c), middleware.IsAdmin(c), commentID, req); err != nil {
		dto.ErrorResponse(c, err)
		return
	}
	dto.SuccessResponse(c, gin.H{"message": "留言已修改"})
}

// DeleteComment 删除留言
// @Summary 删除留言
// @Tags board
// @Produce json
// @Security ApiKeyAuth
// @Param comment_id path int true "留言ID"
// @Success 200 {object} response.Response
// @Router /board/comments/{comment_id} [delete]
func (h *BoardHandler) DeleteComment(c *gin.Context) {
	commentID, bizErr := parseIDParam(c, "comment_id")
	if bizErr != nil {
		dto.ErrorResponse(c, bizErr)
		return
	}

	if err := h.service.DeleteComment(middleware.GetUserID(c), middleware.IsAdmin(c), commentID); err != nil {
		dto.ErrorResponse(c, err)
		return
	}
	dto.SuccessResponse(c, gin.H{"message": "留言已删除"})
}
