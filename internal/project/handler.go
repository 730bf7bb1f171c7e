package project

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/par4d15e/blogbackendserver-sub001/internal/dto"
	"github.com/par4d15e/blogbackendserver-sub001/internal/middleware"
	"github.com/par4d15e/blogbackendserver-sub001/pkg/response"
)

type ProjectHandler struct {
	service *ProjectService
}

func NewProjectHandler(service *ProjectService) *ProjectHandler {
	return &ProjectHandler{service: service}
}

func parseIDParam(c *gin.Context) (uint, *response.BusinessError) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, response.NewBusinessError(
			response.WithErrorCode(response.ParseError),
			response.WithErrorMessage("无效的ID"),
		)
	}
	return uint(id), nil
}

// List 项目列表
// @Summary 查询项目列表
// @Tags project
// @Produce json
// @Param cursor query string false "keyset 游标"
// @Param limit query int false "每页数量" default(10)
// @Success 200 {object} response.Response{data=ProjectListResponse}
// @Router /projects [get]
func (h *ProjectHandler) List(c *gin.Context) {
	var q ListQuery
	_ = c.ShouldBindQuery(&q)

	result, err := h.service.List(q, middleware.IsAdmin(c))
	if err != nil {
		dto.ErrorResponse(c, err)
		return
	}
	dto.SuccessResponse(c, result)
}

// GetDetail 项目详情
// @Summary 按 slug 查询项目详情
// @Tags project
// @Produce json
// @Param slug path string true "项目 slug"
// @Success 200 {object} response.Response
// @Router /projects/{slug} [get]
func (h *ProjectHandler) GetDetail(c *gin.Context) {
	p, err := h.service.GetDetail(c.Param("slug"), middleware.IsAdmin(c))
	if err != nil {
		dto.ErrorResponse(c, err)
		return
	}
	dto.SuccessResponse(c, p)
}

// Create 创建项目
// @Summary 创建项目
// @Tags project
// @Accept json
// @Produce json
// @Param request body CreateProjectRequest true "项目内容"
// @Success 200 {object} response.Response
// @Security BearerAuth
// @Router /admin/projects [post]
func (h *ProjectHandler) Create(c *gin.Context) {
	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.ErrorResponse(c, response.NewBusinessError(
			response.WithErrorCode(response.ParseError),
			response.WithErrorMessage("请求参数错误"),
			response.WithError(err),
		))
		return
	}

	p, bizErr := h.service.Create(&req)
	if bizErr != nil {
		dto.ErrorResponse(c, bizErr)
		return
	}
	dto.SuccessResponse(c, p)
}

// Update 更新项目
// @Summary 更新项目
// @Tags project
// @Accept json
// @Produce json
// @Param id path int true "项目ID"
// @Param request body UpdateProjectRequest true "更新内容"
// @Success 200 {object} response.Response
// @Security BearerAuth
// @Router /admin/projects/{id} [put]
func (h *ProjectHandler) Update(c *gin.Context) {
	id, bizErr := parseIDParam(c)
	if bizErr != nil {
		dto.ErrorResponse(c, bizErr)
		return
	}

	var req UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.ErrorResponse(c, response.NewBusinessError(
			response.WithErrorCode(response.ParseError),
			response.WithErrorMessage("请求参数错误"),
			response.WithError(err),
		))
		return
	}

	if err := h.service.Update(id, &req); err != nil {
		dto.ErrorResponse(c, err)
		return
	}
	dto.SuccessResponse(c, gin.H{"id": id})
}

// Delete 删除项目
// @Summary 删除项目
// @Tags project
// @Produce json
// @Param id path int true "项目ID"
// @Success 200 {object} response.Response
// @Security BearerAuth
// @Router /admin/projects/{id} [delete]
func (h *ProjectHandler) Delete(c *gin.Context) {
	id, bizErr := parseIDParam(c)
	if bizErr != nil {
		dto.ErrorResponse(c, bizErr)
		return
	}

	if err := h.service.Delete(id); err != nil {
		dto.ErrorResponse(c, err)
		return
	}
	dto.SuccessResponse(c, gin.H{"id": id})
}

// SetPublished 发布/下架项目
// @Summary 切换项目发布状态
// @Tags project
// @Accept json
// @Produce json
// @Param id path int true "项目ID"
// @Success 200 {object} response.Response
// @Security BearerAuth
// @Router /admin/projects/{id}/publish [put]
func (h *ProjectHandler) SetPublished(c *gin.Context) {
	id, bizErr := parseIDParam(c)
	if bizErr != nil {
		dto.ErrorResponse(c, bizErr)
		return
	}

	var req struct {
		IsPublished bool `json:"is_published"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.ErrorResponse(c, response.NewBusinessError(
			response.WithErrorCode(response.ParseError),
			response.WithErrorMessage("请求参数错误"),
			response.WithError(err),
		))
		return
	}

	if err := h.service.SetPublished(id, req.IsPublished); err != nil {
		dto.ErrorResponse(c, err)
		return
	}
	dto.SuccessResponse(c, gin.H{"id": id, "is_published": req.IsPublished})
}
