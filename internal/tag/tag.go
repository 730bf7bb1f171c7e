// Package tag 标签管理
package tag

import (
	"context"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/par4d15e/blogbackendserver-sub001/internal/cache"
	"github.com/par4d15e/blogbackendserver-sub001/internal/database"
	"github.com/par4d15e/blogbackendserver-sub001/internal/dto"
	"github.com/par4d15e/blogbackendserver-sub001/internal/middleware"
	tagmodel "github.com/par4d15e/blogbackendserver-sub001/internal/model/tag"
	"github.com/par4d15e/blogbackendserver-sub001/pkg/response"
)

// CreateTagRequest 创建标签请求
type CreateTagRequest struct {
	ChineseTitle string `json:"chinese_title" binding:"required,max=50"`
	EnglishTitle string `json:"english_title" binding:"required,max=50"`
	Slug         string `json:"slug" binding:"required,max=50"`
}

// UpdateTagRequest 更新标签请求
type UpdateTagRequest struct {
	ChineseTitle *string `json:"chinese_title"`
	EnglishTitle *string `json:"english_title"`
	Slug         *string `json:"slug"`
}

type TagService struct {
	db *gorm.DB
}

func NewTagService() *TagService {
	return &TagService{db: database.MySQLDB}
}

// List 全部标签, 带缓存
func (s *TagService) List() ([]tagmodel.Tag, *response.BusinessError) {
	result, err := cache.GetOrLoad(context.Background(), cache.KeyTagLists, cache.DefaultTTL, func() ([]tagmodel.Tag, error) {
		var tags []tagmodel.Tag
		err := s.db.Order("created_at DESC").Find(&tags).Error
		return tags, err
	})
	if err != nil {
		return nil, response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("查询标签失败"),
			response.WithError(err),
		)
	}
	return result, nil
}

// Create 创建标签, slug 和 chinese_title 唯一
func (s *TagService) Create(req CreateTagRequest) (*tagmodel.Tag, *response.BusinessError) {
	var count int64
	if err := s.db.Model(&tagmodel.Tag{}).
		Where("slug = ? OR chinese_title = ?", req.Slug, req.ChineseTitle).
		Count(&count).Error; err != nil {
		return nil, response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("查询标签失败"),
			response.WithError(err),
		)
	}
	if count > 0 {
		return nil, response.NewBusinessError(
			response.WithErrorCode(response.Conflict),
			response.WithErrorMessage("标签已存在"),
		)
	}

	t := tagmodel.Tag{
		ChineseTitle: req.ChineseTitle,
		EnglishTitle: req.EnglishTitle,
		Slug:         req.Slug,
	}
	if err := s.db.Create(&t).Error; err != nil {
		return nil, response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("创建标签失败"),
			response.WithError(err),
		)
	}

	s.invalidateCache()
	return &t, nil
}

// Update 更新标签
func (s *TagService) Update(tagID uint, req UpdateTagRequest) *response.BusinessError {
	var t tagmodel.Tag
	if err := s.db.First(&t, tagID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NewBusinessError(
				response.WithErrorCode(response.NotFound),
				response.WithErrorMessage("标签不存在"),
			)
		}
		return response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("查询标签失败"),
			response.WithError(err),
		)
	}

	updates := map[string]any{}
	if req.Slug != nil {
		var count int64
		if err := s.db.Model(&tagmodel.Tag{}).
			Where("slug = ? AND id <> ?", *req.Slug, tagID).
			Count(&count).Error; err != nil {
			return response.NewBusinessError(
				response.WithErrorCode(response.Fail),
				response.WithErrorMessage("查询标签失败"),
				response.WithError(err),
			)
		}
		if count > 0 {
			return response.NewBusinessError(
				response.WithErrorCode(response.Conflict),
				response.WithErrorMessage("标签 slug 已存在"),
			)
		}
		updates["slug"] = *req.Slug
	}
	if req.ChineseTitle != nil {
		var count int64
		if err := s.db.Model(&tagmodel.Tag{}).
			Where("chinese_title = ? AND id <> ?", *req.ChineseTitle, tagID).
			Count(&count).Error; err != nil {
			return response.NewBusinessError(
				response.WithErrorCode(response.Fail),
				response.WithErrorMessage("查询标签失败"),
				response.WithError(err),
			)
		}
		if count > 0 {
			return response.NewBusinessError(
				response.WithErrorCode(response.Conflict),
				response.WithErrorMessage("标签已存在"),
			)
		}
		updates["chinese_title"] = *req.ChineseTitle
	}
	if req.EnglishTitle != nil {
		updates["english_title"] = *req.EnglishTitle
	}
	if len(updates) == 0 {
		return response.NewBusinessError(
			response.WithErrorCode(response.InvalidParameter),
			response.WithErrorMessage("没有需要更新的字段"),
		)
	}
	updates["updated_at"] = time.Now().UTC()

	if err := s.db.Model(&t).Updates(updates).Error; err != nil {
		return response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("更新标签失败"),
			response.WithError(err),
		)
	}

	s.invalidateCache()
	return nil
}

// Delete 删除标签
func (s *TagService) Delete(tagID uint) *response.BusinessError {
	result := s.db.Delete(&tagmodel.Tag{}, tagID)
	if result.Error != nil {
		return response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("删除标签失败"),
			response.WithError(result.Error),
		)
	}
	if result.RowsAffected == 0 {
		return response.NewBusinessError(
			response.WithErrorCode(response.NotFound),
			response.WithErrorMessage("标签不存在"),
		)
	}

	s.invalidateCache()
	return nil
}

func (s *TagService) invalidateCache() {
	if err := cache.Delete(context.Background(), cache.KeyTagLists); err != nil {
		logrus.WithError(err).Warn("清理标签缓存失败")
	}
}

type TagHandler struct {
	service *TagService
}

func (h *TagHandler) list(c *gin.Context) {
	tags, err := h.service.List()
	if err != nil {
		dto.ErrorResponse(c, err)
		return
	}
	dto.SuccessResponse(c, gin.H{"tags": tags})
}

func (h *TagHandler) create(c *gin.Context) {
	var req CreateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.ErrorResponse(c, response.NewBusinessError(
			response.WithErrorCode(response.ParseError),
			response.WithErrorMessage("请检查参数"),
		))
		return
	}

	t, err := h.service.Create(req)
	if err != nil {
		dto.ErrorResponse(c, err)
		return
	}
	dto.SuccessResponse(c, t)
}

func (h *TagHandler) update(c *gin.Context) {
	tagID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || tagID == 0 {
		dto.ErrorResponse(c, response.NewBusinessError(
			response.WithErrorCode(response.ParseError),
			response.WithErrorMessage("无效的ID"),
		))
		return
	}

	var req UpdateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.ErrorResponse(c, response.NewBusinessError(
			response.WithErrorCode(response.ParseError),
			response.WithErrorMessage("请检查参数"),
		))
		return
	}

	if bizErr := h.service.Update(uint(tagID), req); bizErr != nil {
		dto.ErrorResponse(c, bizErr)
		return
	}
	dto.SuccessResponse(c, gin.H{"message": "更新成功"})
}

func (h *TagHandler) delete(c *gin.Context) {
	tagID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || tagID == 0 {
		dto.ErrorResponse(c, response.NewBusinessError(
			response.WithErrorCode(response.ParseError),
			response.WithErrorMessage("无效的ID"),
		))
		return
	}

	if bizErr := h.service.Delete(uint(tagID)); bizErr != nil {
		dto.ErrorResponse(c, bizErr)
		return
	}
	dto.SuccessResponse(c, gin.H{"message": "删除成功"})
}

func RegisterRoutes(r *gin.RouterGroup) {
	h := &TagHandler{service: NewTagService()}

	r.GET("/tags", h.list)

	admin := r.Group("/admin/tags", middleware.JWTAuth(), middleware.AdminOnly())
	{
		admin.POST("", h.create)
		admin.PUT("/:id", h.update)
		admin.DELETE("/:id", h.delete)
	}
}
