package blog

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/par4d15e/blogbackendserver-sub001/internal/dto"
	"github.com/par4d15e/blogbackendserver-sub001/internal/middleware"
	"github.com/par4d15e/blogbackendserver-sub001/pkg/response"
)

type BlogHandler struct {
	service *BlogService
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

func bindListQuery(c *gin.Context) ListQuery {
	var q ListQuery
	_ = c.ShouldBindQuery(&q)
	return q
}

// ListBySection 栏目博客列表
// @Summary 按栏目查询博客列表
// @Tags blog
// @Produce json
// @Param section_id path int true "栏目ID"
// @Param cursor query string false "keyset 游标"
// @Param limit query int false "每页数量" default(10)
// @Success 200 {object} response.Response{data=BlogListResponse}
// @Router /blogs/section/{section_id} [get]
func (h *BlogHandler) ListBySection(c *gin.Context) {
	sectionID, bizErr := parseIDParam(c, "section_id")
	if bizErr != nil {
		dto.ErrorResponse(c, bizErr)
		return
	}

	result, err := h.service.ListBySection(sectionID, bindListQuery(c))
	if err != nil {
		dto.ErrorResponse(c, err)
		return
	}
	dto.SuccessResponse(c, result)
}

// ListByTag 标签博客列表
// @Summary 按标签查询博客列表
// @Tags blog
// @Produce json
// @Param slug path string true "标签 slug"
// @Success 200 {object} response.Response{data=BlogListResponse}
// @Router /blogs/tag/{slug} [get]
func (h *BlogHandler) ListByTag(c *gin.Context) {
	result, err := h.service.ListByTag(c.Param("slug"), bindListQuery(c))
	if err != nil {
		dto.ErrorResponse(c, err)
		return
	}
	dto.SuccessResponse(c, result)
}

// ListArchived 归档博客列表
// @Summary 查询归档博客
// @Tags blog
// @Produce json
// @Success 200 {object} response.Response{data=BlogListResponse}
// @Router /blogs/archived [get]
func (h *BlogHandler) ListArchived(c *gin.Context) {
	result, err := h.service.ListArchived(bindListQuery(c))
	if err != nil {
		dto.ErrorResponse(c, err)
		return
	}
	dto.SuccessResponse(c, result)
}

// ListPopular 热门博客
// @Summary 近期热门博客
// @Tags blog
// @Produce json
// @Param limit query int false "数量" default(10)
// @Success 200 {object} response.Response
// @Router /blogs/popular [get]
func (h *BlogHandler) ListPopular(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	result, err := h.service.ListPopular(limit)
	if err != nil {
		dto.ErrorResponse(c, err)
		return
	}
	dto.SuccessResponse(c, gin.H{"blogs": result})
}

// GetDetail 博客详情
// @Summary 按 slug 查询博客详情
// @Tags blog
// @Produce json
// @Param slug path string true "博客 slug"
// @Success 200 {object} response.Response
// @Router /blogs/{slug} [get]
func (h *BlogHandler) GetDetail(c *gin.Context) {
	b, err := h.service.GetDetail(c.Param("slug"), middleware.IsAdmin(c))
	if err != nil {
		dto.ErrorResponse(c, err)
		return
	}
	dto.SuccessResponse(c, b)
}

// GetSeo 博客 SEO 信息
// @Summary 博客 SEO 信息, 供 SSR 渲染 meta 使用
// @Tags blog
// @Produce json
// @Param slug path string true "博客 slug"
// @Success 200 {object} response.Response
// @Router /blogs/{slug}/seo [get]
func (h *BlogHandler) GetSeo(c *gin.Context) {
	b, err := h.service.GetDetail(c.Param("slug"), middleware.IsAdmin(c))
	if err != nil {
		dto.ErrorResponse(c, err)
		return
	}
	dto.SuccessResponse(c, gin.H{"seo": b.Seo, "slug": b.Slug, "chinese_title": b.ChineseTitle, "english_title": b.EnglishTitle})
}

// GetNavigation 上一篇/下一篇
// @Summary 博客导航
// @Tags blog
// @Produce json
// @Param slug path string true "博客 slug"
// @Success 200 {object} response.Response{data=BlogNavigation}
// @Router /blogs/{slug}/navigation [get]
func (h *BlogHandler) GetNavigation(c *gin.Context) {
	nav, err := h.service.GetNavigation(c.Param("slug"))
	if err != nil {
		dto.ErrorResponse(c, err)
		return
	}
	dto.SuccessResponse(c, nav)
}

// Create 创建博客
// @Summary 创建博客
// @Tags blog
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body CreateBlogRequest true "创建请求"
// @Success 200 {object} response.Response
// @Router /admin/blogs [post]
func (h *BlogHandler) Create(c *gin.Context) {
	var req CreateBlogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.ErrorResponse(c, response.NewBusinessError(
			response.WithErrorCode(response.ParseError),
			response.WithErrorMessage("请检查参数"),
		))
		return
	}

	b, bizErr := h.service.Create(middleware.GetUserID(c), req)
	if bizErr != nil {
		dto.ErrorResponse(c, bizErr)
		return
	}
	dto.SuccessResponse(c, gin.H{"id": b.ID, "slug": b.Slug})
}

// Update 更新博客
// @Summary 更新博客
// @Tags blog
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "博客ID"
// @Param request body UpdateBlogRequest true "更新请求"
// @Success 200 {object} response.Response
// @Router /admin/blogs/{id} [put]
func (h *BlogHandler) Update(c *gin.Context) {
	blogID, bizErr := parseIDParam(c, "id")
	if bizErr != nil {
		dto.ErrorResponse(c, bizErr)
		return
	}

	var req UpdateBlogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.ErrorResponse(c, response.NewBusinessError(
			response.WithErrorCode(response.ParseError),
			response.WithErrorMessage("请检查参数"),
		))
		return
	}

	if err := h.service.Update(blogID, req); err != nil {
		dto.ErrorResponse(c, err)
		return
	}
	dto.SuccessResponse(c, gin.H{"message": "更新成功"})
}

// Delete 删除博客
// @Summary 删除博客
// @Tags blog
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "博客ID"
// @Success 200 {object} response.Response
// @Router /admin/blogs/{id} [delete]
func (h *BlogHandler) Delete(c *gin.Context) {
	blogID, bizErr := parseIDParam(c, "id")
	if bizErr != nil {
		dto.ErrorResponse(c, bizErr)
		return
	}

	if err := h.service.Delete(blogID); err != nil {
		dto.ErrorResponse(c, err)
		return
	}
	dto.SuccessResponse(c, gin.H{"message": "删除成功"})
}

// UpdateStatus 发布/归档/精选状态更新
// @Summary 更新博客状态
// @Tags blog
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "博客ID"
// @Param request body UpdateStatusRequest true "状态更新请求"
// @Success 200 {object} response.Response
// @Router /admin/blogs/{id}/status [put]
func (h *BlogHandler) UpdateStatus(c *gin.Context) {
	blogID, bizErr := parseIDParam(c, "id")
	if bizErr != nil {
		dto.ErrorResponse(c, bizErr)
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.ErrorResponse(c, response.NewBusinessError(
			response.WithErrorCode(response.ParseError),
			response.WithErrorMessage("请检查参数"),
		))
		return
	}

	if err := h.service.UpdateStatus(blogID, req); err != nil {
		dto.ErrorResponse(c, err)
		return
	}
	dto.SuccessResponse(c, gin.H{"message": "状态已更新"})
}

// ToggleSave 收藏/取消收藏
// @Summary 收藏或取消收藏博客
// @Tags blog
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "博客ID"
// @Success 200 {object} response.Response
// @Router /blogs/{id}/save [post]
func (h *BlogHandler) ToggleSave(c *gin.Context) {
	blogID, bizErr := parseIDParam(c, "id")
	if bizErr != nil {
		dto.ErrorResponse(c, bizErr)
		return
	}

	saved, err := h.service.ToggleSave(middleware.GetUserID(c), blogID)
	if err != nil {
		dto.ErrorResponse(c, err)
		return
	}
	dto.SuccessResponse(c, gin.H{"saved": saved})
}

// Like 点赞/取消点赞
// @Summary 点赞或取消点赞
// @Tags blog
// @Produce json
// @Param id path int true "博客ID"
// @Param delta query int false "1 点赞 -1 取消" default(1)
// @Success 200 {object} response.Response
// @Router /blogs/{id}/like [post]
func (h *BlogHandler) Like(c *gin.Context) {
	blogID, bizErr := parseIDParam(c, "id")
	if bizErr != nil {
		dto.ErrorResponse(c, bizErr)
		return
	}

	delta, _ := strconv.Atoi(c.DefaultQuery("delta", "1"))
	if err := h.service.Like(blogID, delta); err != nil {
		dto.ErrorResponse(c, err)
		return
	}
	dto.SuccessResponse(c, gin.H{"message": "操作成功"})
}

// ListSaved 当前用户收藏列表
// @Summary 当前用户收藏的博客
// @Tags blog
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} response.Response{data=BlogListResponse}
// @Router /blogs/saved [get]
func (h *BlogHandler) ListSaved(c *gin.Context) {
	result, err := h.service.ListSaved(middleware.GetUserID(c), bindListQuery(c))
	if err != nil {
		dto.ErrorResponse(c, err)
		return
	}
	dto.SuccessResponse(c, result)
}

// ListComments 评论树
// @Summary 博客评论树
// @Tags blog
// @Produce json
// @Param id path int true "博客ID"
// @Param cursor query string false "keyset 游标"
// @Param limit query int false "根评论每页数量" default(10)
// @Success 200 {object} response.Response{data=CommentTreeResponse}
// @Router /blogs/{id}/comments [get]
func (h *BlogHandler) ListComments(c *gin.Context) {
	blogID, bizErr := parseIDParam(c, "id")
	if bizErr != nil {
		dto.ErrorResponse(c, bizErr)
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	result, err := h.service.ListComments(blogID, c.Query("cursor"), limit)
	if err != nil {
		dto.ErrorResponse(c, err)
		return
	}
	dto.SuccessResponse(c, result)
}

// CreateComment 发表评论
// @Summary 发表评论或回复
// @Tags blog
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "博客ID"
// @Param request body CreateCommentRequest true "评论请求"
// @Success 200 {object} response.Response
// @Router /blogs/{id}/comments [post]
func (h *BlogHandler) CreateComment(c *gin.Context) {
	blogID, bizErr := parseIDParam(c, "id")
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

	comment, err := h.service.CreateComment(middleware.GetUserID(c), blogID, req)
	if err != nil {
		dto.ErrorResponse(c, err)
		return
	}
	dto.SuccessResponse(c, comment)
}

// UpdateComment 修改评论
// @Summary 修改评论
// @Tags blog
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param comment_id path int true "评论ID"
// @Param request body UpdateCommentRequest true "修改请求"
// @Success 200 {object} response.Response
// @Router /blogs/comments/{comment_id} [put]
func (h *BlogHandler) UpdateComment(c *gin.Context) {
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
	dto.SuccessResponse(c, gin.H{"message": "评论已修改"})
}

// DeleteComment 删除评论
// @Summary 删除评论
// @Tags blog
// @Produce json
// @Security ApiKeyAuth
// @Param comment_id path int true "评论ID"
// @Success 200 {object} response.Response
// @Router /blogs/comments/{comment_id} [delete]
func (h *BlogHandler) DeleteComment(c *gin.Context) {
	commentID, bizErr := parseIDParam(c, "comment_id")
	if bizErr != nil {
		dto.ErrorResponse(c, bizErr)
		return
	}

	if err := h.service.DeleteComment(middleware.GetUserID(c), middleware.IsAdmin(c), commentID); err != nil {
		dto.ErrorResponse(c, err)
		return
	}
	dto.SuccessResponse(c, gin.H{"message": "评论已删除"})
}
