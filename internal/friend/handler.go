package friend

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/par4d15e/blogbackendserver-sub001/internal/dto"
	"github.com/par4d15e/blogbackendserver-sub001/internal/middleware"
	"github.com/par4d15e/blogbackendserver-sub001/pkg/response"
)

type FriendHandler struct {
	service *FriendService
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

// GetFriend 友链栏目详情
// @Summary 友链栏目和可见友链
// @Tags friend
// @Produce json
// @Success 200 {object} response.Response
// @Router /friends [get]
func (h *FriendHandler) GetFriend(c *gin.Context) {
	f, err := h.service.GetFriend()
	if err != nil {
		dto.ErrorResponse(c, err)
		return
	}
	dto.SuccessResponse(c, f)
}

// UpdateFriend 后台更新友链栏目
// @Summary 更新友链栏目信息
// @Tags friend
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "栏目ID"
// @Param request body UpdateFriendRequest true "更新请求"
// @Success 200 {object} response.Response
// @Router /admin/friends/{id} [put]
func (h *FriendHandler) UpdateFriend(c *gin.Context) {
	friendID, bizErr := parseIDParam(c, "id")
	if bizErr != nil {
		dto.ErrorResponse(c, bizErr)
		return
	}

	var req UpdateFriendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.ErrorResponse(c, response.NewBusinessError(
			response.WithErrorCode(response.ParseError),
			response.WithErrorMessage("请检查参数"),
		))
		return
	}

	if err := h.service.UpdateFriend(friendID, req); err != nil {
		dto.ErrorResponse(c, err)
		return
	}
	dto.SuccessResponse(c, gin.H{"message": "更新成功"})
}

// CreateLink 申请友链
// @Summary 申请友链
// @Tags friend
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body CreateLinkRequest true "申请请求"
// @Success 200 {object} response.Response
// @Router /friends/links [post]
func (h *FriendHandler) CreateLink(c *gin.Context) {
	var req CreateLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.ErrorResponse(c, response.NewBusinessError(
			response.WithErrorCode(response.ParseError),
			response.WithErrorMessage("请检查参数"),
		))
		return
	}

	l, err := h.service.CreateLink(middleware.GetUserID(c), req)
	if err != nil {
		dto.ErrorResponse(c, err)
		return
	}
	dto.SuccessResponse(c, l)
}

// UpdateLinkType 后台调整友链展示类型
// @Summary 调整友链展示类型
// @Tags friend
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "友链ID"
// @Param request body UpdateLinkTypeRequest true "类型调整请求"
// @Success 200 {object} response.Response
// @Router /admin/friends/links/{id}/type [put]
func (h *FriendHandler) UpdateLinkType(c *gin.Context) {
	linkID, bizErr := parseIDParam(c, "id")
	if bizErr != nil {
		dto.ErrorResponse(c, bizErr)
		return
	}

	var req UpdateLinkTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.ErrorResponse(c, response.NewBusinessError(
			response.WithErrorCode(response.ParseError),
			response.WithErrorMessage("请检查参数"),
		))
		return
	}

	if err := h.service.UpdateLinkType(linkID, req.Type); err != nil {
		dto.ErrorResponse(c, err)
		return
	}
	dto.SuccessResponse(c, gin.H{"message": "类型已更新"})
}

// DeleteLink 删除友链
// @Summary 删除友链, 仅创建者或管理员
// @Tags friend
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "友链ID"
// @Success 200 {object} response.Response
// @Router /friends/links/{id} [delete]
func (h *FriendHandler) DeleteLink(c *gin.Context) {
	linkID, bizErr := parseIDParam(c, "id")
	if bizErr != nil {
		dto.ErrorResponse(c, bizErr)
		return
	}

	if err := h.service.DeleteLink(middleware.GetUserID(c), middleware.IsAdmin(c), linkID); err != nil {
		dto.ErrorResponse(c, err)
		return
	}
	dto.SuccessResponse(c, gin.H{"message": "友链已删除"})
}

// AdminListLinks 后台友链列表
// @Summary 后台分页查看全部友链
// @Tags friend
// @Produce json
// @Security ApiKeyAuth
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(20)
// @Success 200 {object} response.Response
// @Router /admin/friends/links [get]
func (h *FriendHandler) AdminListLinks(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	links, total, err := h.service.AdminListLinks(page, pageSize)
	if err != nil {
		dto.ErrorResponse(c, err)
		return
	}
	dto.SuccessResponse(c, gin.H{"links": links, "total": total, "page": page, "page_size": pageSize})
}
