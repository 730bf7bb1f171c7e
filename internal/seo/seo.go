// Package seo SEO 元信息的后台管理
package seo

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/par4d15e/blogbackendserver-sub001/internal/database"
	"github.com/par4d15e/blogbackendserver-sub001/internal/dto"
	"github.com/par4d15e/blogbackendserver-sub001/internal/middleware"
	seomodel "github.com/par4d15e/blogbackendserver-sub001/internal/model/seo"
	"github.com/par4d15e/blogbackendserver-sub001/pkg/response"
)

// CreateSeoRequest 创建 SEO 请求
type CreateSeoRequest struct {
	ChineseTitle       string  `json:"chinese_title" binding:"required,max=100"`
	EnglishTitle       *string `json:"english_title"`
	ChineseDescription *string `json:"chinese_description"`
	EnglishDescription *string `json:"english_description"`
	ChineseKeywords    *string `json:"chinese_keywords"`
	EnglishKeywords    *string `json:"english_keywords"`
}

// UpdateSeoRequest 更新 SEO 请求
type UpdateSeoRequest struct {
	ChineseTitle       *string `json:"chinese_title"`
	EnglishTitle       *string `json:"english_title"`
	ChineseDescription *string `json:"chinese_description"`
	EnglishDescription *string `json:"english_description"`
	ChineseKeywords    *string `json:"chinese_keywords"`
	EnglishKeywords    *string `json:"english_keywords"`
}

type SeoService struct {
	db *gorm.DB
}

func NewSeoService() *SeoService {
	return &SeoService{db: database.MySQLDB}
}

// List 全部 SEO 记录
func (s *SeoService) List() ([]seomodel.Seo, *response.BusinessError) {
	var items []seomodel.Seo
	if err := s.db.Order("id ASC").Find(&items).Error; err != nil {
		return nil, response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("查询 SEO 失败"),
			response.WithError(err),
		)
	}
	return items, nil
}

// Create 创建 SEO, chinese_title 唯一
func (s *SeoService) Create(req CreateSeoRequest) (*seomodel.Seo, *response.BusinessError) {
	var count int64
	if err := s.db.Model(&seomodel.Seo{}).
		Where("chinese_title = ?", req.ChineseTitle).
		Count(&count).Error; err != nil {
		return nil, response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("查询 SEO 失败"),
			response.WithError(err),
		)
	}
	if count > 0 {
		return nil, response.NewBusinessError(
			response.WithErrorCode(response.Conflict),
			response.WithErrorMessage("同名 SEO 已存在"),
		)
	}

	item := seomodel.Seo{
		ChineseTitle:       req.ChineseTitle,
		EnglishTitle:       req.EnglishTitle,
		ChineseDescription: req.ChineseDescription,
		EnglishDescription: req.EnglishDescription,
		ChineseKeywords:    req.ChineseKeywords,
		EnglishKeywords:    req.EnglishKeywords,
	}
	if err := s.db.Create(&item).Error; err != nil {
		return nil, response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("创建 SEO 失败"),
			response.WithError(err),
		)
	}
	return &item, nil
}

// Update 更新 SEO
func (s *SeoService) Update(seoID uint, req UpdateSeoRequest) *response.BusinessError {
	var item seomodel.Seo
	if err := s.db.First(&item, seoID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NewBusinessError(
				response.WithErrorCode(response.NotFound),
				response.WithErrorMessage("SEO 不存在"),
			)
		}
		return response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("查询 SEO 失败"),
			response.WithError(err),
		)
	}

	updates := map[string]any{}
	if req.ChineseTitle != nil {
		var count int64
		if err := s.db.Model(&seomodel.Seo{}).
			Where("chinese_title = ? AND id <> ?", *req.ChineseTitle, seoID).
			Count(&count).Error; err != nil {
			return response.NewBusinessError(
				response.WithErrorCode(response.Fail),
				response.WithErrorMessage("查询 SEO 失败"),
				response.WithError(err),
			)
		}
		if count > 0 {
			return response.NewBusinessError(
				response.WithErrorCode(response.Conflict),
				response.WithErrorMessage("同名 SEO 已存在"),
			)
		}
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
	if req.ChineseKeywords != nil {
		updates["chinese_keywords"] = *req.ChineseKeywords
	}
	if req.EnglishKeywords != nil {
		updates["english_keywords"] = *req.EnglishKeywords
	}
	if len(updates) == 0 {
		return response.NewBusinessError(
			response.WithErrorCode(response.InvalidParameter),
			response.WithErrorMessage("没有需要更新的字段"),
		)
	}
	updates["updated_at"] = time.Now().UTC()

	if err := s.db.Model(&item).Updates(updates).Error; err != nil {
		return response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("更新 SEO 失败"),
			response.WithError(err),
		)
	}
	return nil
}

// Delete 删除 SEO
func (s *SeoService) Delete(seoID uint) *response.BusinessError {
	result := s.db.Delete(&seomodel.Seo{}, seoID)
	if result.Error != nil {
		return response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("删除 SEO 失败"),
			response.WithError(result.Error),
		)
	}
	if result.RowsAffected == 0 {
		return response.NewBusinessError(
			response.WithErrorCode(response.NotFound),
			response.WithErrorMessage("SEO 不存在"),
		)
	}
	return nil
}

type SeoHandler struct {
	service *SeoService
}

func (h *SeoHandler) list(c *gin.Context) {
	items, err := h.service.List()
	if err != nil {
		dto.ErrorResponse(c, err)
		return
	}
	dto.SuccessResponse(c, gin.H{"seo": items})
}

func (h *SeoHandler) create(c *gin.Context) {
	var req CreateSeoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.ErrorResponse(c, response.NewBusinessError(
			response.WithErrorCode(response.ParseError),
			response.WithErrorMessage("请检查参数"),
		))
		return
	}

	item, err := h.service.Create(req)
	if err != nil {
		dto.ErrorResponse(c, err)
		return
	}
	dto.SuccessResponse(c, item)
}

func (h *SeoHandler) update(c *gin.Context) {
	seoID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || seoID == 0 {
		dto.ErrorResponse(c, response.NewBusinessError(
			response.WithErrorCode(response.ParseError),
			response.WithErrorMessage("无效的ID"),
		))
		return
	}

	var req UpdateSeoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.ErrorResponse(c, response.NewBusinessError(
			response.WithErrorCode(response.ParseError),
			response.WithErrorMessage("请检查参数"),
		))
		return
	}

	if bizErr := h.service.Update(uint(seoID), req); bizErr != nil {
		dto.ErrorResponse(c, bizErr)
		return
	}
	dto.SuccessResponse(c, gin.H{"message": "更新成功"})
}

func (h *SeoHandler) delete(c *gin.Context) {
	seoID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || seoID == 0 {
		dto.ErrorResponse(c, response.NewBusinessError(
			response.WithErrorCode(response.ParseError),
			response.WithErrorMessage("无效的ID"),
		))
		return
	}

	if bizErr := h.service.Delete(uint(seoID)); bizErr != nil {
		dto.ErrorResponse(c, bizErr)
		return
	}
	dto.SuccessResponse(c, gin.H{"message": "删除成功"})
}

func RegisterRoutes(r *gin.RouterGroup) {
	h := &SeoHandler{service: NewSeoService()}

	admin := r.Group("/admin/seo", middleware.JWTAuth(), middleware.AdminOnly())
	{
		admin.GET("", h.list)
		admin.POST("", h.create)
		admin.PUT("/:id", h.update)
		admin.DELETE("/:id", h.delete)
	}
}
