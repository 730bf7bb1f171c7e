package analytic

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/par4d15e/blogbackendserver-sub001/internal/dto"
)

type AnalyticHandler struct {
	service *AnalyticService
}

func NewAnalyticHandler(service *AnalyticService) *AnalyticHandler {
	return &AnalyticHandler{service: service}
}

// Overview 总览统计
// @Summary 后台总览统计
// @Tags analytic
// @Produce json
// @Success 200 {object} response.Response{data=OverviewStatistics}
// @Security BearerAuth
// @Router /admin/analytics/overview [get]
func (h *AnalyticHandler) Overview(c *gin.Context) {
	result, err := h.service.Overview()
	if err != nil {
		dto.ErrorResponse(c, err)
		return
	}
	dto.SuccessResponse(c, result)
}

// UserLocations 用户地理分布
// @Summary 用户地理分布
// @Tags analytic
// @Produce json
// @Success 200 {object} response.Response
// @Security BearerAuth
// @Router /admin/analytics/user-location [get]
func (h *AnalyticHandler) UserLocations(c *gin.Context) {
	result, err := h.service.UserLocations()
	if err != nil {
		dto.ErrorResponse(c, err)
		return
	}
	dto.SuccessResponse(c, result)
}

// UserStatistics 用户统计
// @Summary 用户统计
// @Tags analytic
// @Produce json
// @Success 200 {object} response.Response{data=UserStatistics}
// @Security BearerAuth
// @Router /admin/analytics/user-statistics [get]
func (h *AnalyticHandler) UserStatistics(c *gin.Context) {
	result, err := h.service.UserStatistics()
	if err != nil {
		dto.ErrorResponse(c, err)
		return
	}
	dto.SuccessResponse(c, result)
}

// BlogStatistics 博客统计
// @Summary 博客统计
// @Tags analytic
// @Produce json
// @Success 200 {object} response.Response{data=BlogStatistics}
// @Security BearerAuth
// @Router /admin/analytics/blog-statistics [get]
func (h *AnalyticHandler) BlogStatistics(c *gin.Context) {
	result, err := h.service.BlogStatistics()
	if err != nil {
		dto.ErrorResponse(c, err)
		return
	}
	dto.SuccessResponse(c, result)
}

// TopBlogPerformers 博客排行
// @Summary 博客四项指标前十排行
// @Tags analytic
// @Produce json
// @Success 200 {object} response.Response{data=TopBlogPerformers}
// @Security BearerAuth
// @Router /admin/analytics/top-ten-blog-performers [get]
func (h *AnalyticHandler) TopBlogPerformers(c *gin.Context) {
	result, err := h.service.TopBlogPerformers()
	if err != nil {
		dto.ErrorResponse(c, err)
		return
	}
	dto.SuccessResponse(c, result)
}

// TagStatistics 标签统计
// @Summary 热门标签统计
// @Tags analytic
// @Produce json
// @Param limit query int false "数量" default(20)
// @Success 200 {object} response.Response
// @Security BearerAuth
// @Router /admin/analytics/tag-statistics [get]
func (h *AnalyticHandler) TagStatistics(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	result, err := h.service.TagStatistics(limit)
	if err != nil {
		dto.ErrorResponse(c, err)
		return
	}
	dto.SuccessResponse(c, result)
}

// ProjectStatistics 项目统计
// @Summary 项目统计
// @Tags analytic
// @Produce json
// @Success 200 {object} response.Response{data=ProjectStatistics}
// @Security BearerAuth
// @Router /admin/analytics/project-statistics [get]
func (h *AnalyticHandler) ProjectStatistics(c *gin.Context) {
	result, err := h.service.ProjectStatistics()
	if err != nil {
		dto.ErrorResponse(c, err)
		return
	}
	dto.SuccessResponse(c, result)
}

// PaymentStatistics 支付统计
// @Summary 支付统计
// @Tags analytic
// @Produce json
// @Param period query string false "统计周期" Enums(day,week,month,year) default(month)
// @Success 200 {object} response.Response{data=PaymentStatistics}
// @Security BearerAuth
// @Router /admin/analytics/payment-statistics [get]
func (h *AnalyticHandler) PaymentStatistics(c *gin.Context) {
	result, err := h.service.PaymentStatistics(c.DefaultQuery("period", "month"))
	if err != nil {
		dto.ErrorResponse(c, err)
		return
	}
	dto.SuccessResponse(c, result)
}

// TopRevenueProjects 收入排行
// @Summary 收入前十项目
// @Tags analytic
// @Produce json
// @Success 200 {object} response.Response
// @Security BearerAuth
// @Router /admin/analytics/top-ten-revenue-projects [get]
func (h *AnalyticHandler) TopRevenueProjects(c *gin.Context) {
	result, err := h.service.TopRevenueProjects()
	if err != nil {
		dto.ErrorResponse(c, err)
		return
	}
	dto.SuccessResponse(c, result)
}

// MediaStatistics 媒体统计
// @Summary 媒体文件统计
// @Tags analytic
// @Produce json
// @Success 200 {object} response.Response{data=MediaStatistics}
// @Security BearerAuth
// @Router /admin/analytics/media-statistics [get]
func (h *AnalyticHandler) MediaStatistics(c *gin.Context) {
	result, err := h.service.MediaStatistics()
	if err != nil {
		dto.ErrorResponse(c, err)
		return
	}
	dto.SuccessResponse(c, result)
}

// GrowthTrends 增长趋势
// @Summary 最近 N 天增长趋势
// @Tags analytic
// @Produce json
// @Param days query int false "天数" default(30)
// @Success 200 {object} response.Response{data=GrowthTrends}
// @Security BearerAuth
// @Router /admin/analytics/growth-trends [get]
func (h *AnalyticHandler) GrowthTrends(c *gin.Context) {
	days, _ := strconv.Atoi(c.DefaultQuery("days", "30"))
	result, err := h.service.GrowthTrends(days)
	if err != nil {
		dto.ErrorResponse(c, err)
		return
	}
	dto.SuccessResponse(c, result)
}
