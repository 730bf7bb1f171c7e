package section

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/par4d15e/blogbackendserver-sub001/internal/dto"
	"github.com/par4d15e/blogbackendserver-sub001/internal/middleware"
	"github.com/par4d15e/blogbackendserver-sub001/pkg/response"
)

type SectionHandler struct {
	service *SectionService
}

// GetTree 栏目树
// @Summary 栏目树
// @Tags section
// @Produce json
// @Success 200 {object} response.Response
// @Router /sections [get]
func (h *SectionHandler) GetTree(c *gin.Context) {
	tree, err := h.service.GetTree()
	if err != nil {
		dto.ErrorResponse(c, err)
		return
	}
	dto.SuccessResponse(c, gin.H{"sections": tree})
}

// GetBySlug 栏目详情
// @Summary 按 slug 查询栏目
// @Tags section
// @Produce json
// @Param slug path string true "栏目 slug"
// @Success 200 {object} response.Response
// @Router /sections/{slug} [get]
func (h *SectionHandler) GetBySlug(c *gin.Context) {
	sec, err := h.service.GetBySlug(c.Param("slug"))
	if err != nil {
		dto.ErrorResponse(c, err)
		return
	}
	dto.SuccessResponse(c, sec)
}

// Update 后台更新栏目
// @Summary 更新栏目
// @Tags section
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "栏目ID"
// @Param request body UpdateSectionRequest true "更新请求"
// @Success 200 {object} response.Response
// @Router /admin/sections/{id} [put]
func (h *SectionHandler) Update(c *gin.Context) {
	sectionID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || sectionID == 0 {
		dto.ErrorResponse(c, response.NewBusinessError(
			response.WithErrorCode(response.ParseError),
			response.WithErrorMessage("无效的ID"),
		))
		return
	}

	var req UpdateSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.ErrorResponse(c, response.NewBusinessError(
			response.WithErrorCode(response.ParseError),
			response.WithErrorMessage("请检查参数"),
		))
		return
	}

	if bizErr := h.service.Update(uint(sectionID), req); bizErr != nil {
		dto.ErrorResponse(c, bizErr)
		return
	}
	dto.SuccessResponse(c, gin.H{"message": "更新成功"})
}

func RegisterRoutes(r *gin.RouterGroup) {
	h := &SectionHandler{service: NewSectionService()}

	group := r.Group("/sections")
	{
		group.GET("", h.GetTree)
		group.GET("/:slug", h.GetBySlug)
	}

	admin := r.Group("/admin/sections", middleware.JWTAuth(), middleware.AdminOnly())
	{
		admin.PUT("/:id", h.Update)
	}
}
