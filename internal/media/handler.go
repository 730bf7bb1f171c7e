package media

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/par4d15e/blogbackendserver-sub001/internal/dto"
	"github.com/par4d15e/blogbackendserver-sub001/internal/middleware"
	"github.com/par4d15e/blogbackendserver-sub001/pkg/response"
)

type MediaHandler struct {
	service *MediaService
}

func NewMediaHandler(service *MediaService) *MediaHandler {
	return &MediaHandler{service: service}
}

// List 管理端媒体列表
// @Summary 查询媒体列表
// @Tags media
// @Produce json
// @Param type query int false "媒体类型" Enums(1,2,3,4,5)
// @Param is_avatar query bool false "是否头像"
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(20)
// @Success 200 {object} response.Response{data=MediaListResponse}
// @Security BearerAuth
// @Router /admin/media [get]
func (h *MediaHandler) List(c *gin.Context) {
	var q ListQuery
	_ = c.ShouldBindQuery(&q)

	result, err := h.service.List(q)
	if err != nil {
		dto.ErrorResponse(c, err)
		return
	}
	dto.SuccessResponse(c, result)
}

// Upload 上传媒体文件
// @Summary 上传媒体文件
// @Tags media
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "文件"
// @Param is_avatar formData bool false "作为头像上传"
// @Success 200 {object} response.Response
// @Security BearerAuth
// @Router /media [post]
func (h *MediaHandler) Upload(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		dto.ErrorResponse(c, response.NewBusinessError(
			response.WithErrorCode(response.Unauthorized),
			response.WithErrorMessage("请先登录"),
		))
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		dto.ErrorResponse(c, response.NewBusinessError(
			response.WithErrorCode(response.ParseError),
			response.WithErrorMessage("缺少上传文件"),
			response.WithError(err),
		))
		return
	}

	isAvatar := c.PostForm("is_avatar") == "true"
	// 普通媒体上传仅管理员可用, 头像上传对登录用户开放
	if !isAvatar && !middleware.IsAdmin(c) {
		dto.ErrorResponse(c, response.NewBusinessError(
			response.WithErrorCode(response.Forbidden),
			response.WithErrorMessage("无权上传媒体文件"),
		))
		return
	}

	m, bizErr := h.service.Upload(c.Request.Context(), userID, file, isAvatar)
	if bizErr != nil {
		dto.ErrorResponse(c, bizErr)
		return
	}
	dto.SuccessResponse(c, m)
}

// Presign 限时下载地址
// @Summary 获取媒体下载地址
// @Tags media
// @Produce json
// @Param uuid path string true "媒体 UUID"
// @Success 200 {object} response.Response{data=PresignResponse}
// @Security BearerAuth
// @Router /media/{uuid}/presign [get]
func (h *MediaHandler) Presign(c *gin.Context) {
	result, err := h.service.Presign(c.Request.Context(), c.Param("uuid"))
	if err != nil {
		dto.ErrorResponse(c, err)
		return
	}
	dto.SuccessResponse(c, result)
}

// Delete 删除媒体
// @Summary 删除媒体
// @Tags media
// @Produce json
// @Param id path int true "媒体ID"
// @Success 200 {object} response.Response
// @Security BearerAuth
// @Router /admin/media/{id} [delete]
func (h *MediaHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		dto.ErrorResponse(c, response.NewBusinessError(
			response.WithErrorCode(response.ParseError),
			response.WithErrorMessage("无效的ID"),
		))
		return
	}

	if bizErr := h.service.Delete(c.Request.Context(), uint(id)); bizErr != nil {
		dto.ErrorResponse(c, bizErr)
		return
	}
	dto.SuccessResponse(c, gin.H{"id": id})
}
