package payment

import (
	"io"

	"github.com/gin-gonic/gin"

	"github.com/par4d15e/blogbackendserver-sub001/internal/dto"
	"github.com/par4d15e/blogbackendserver-sub001/internal/middleware"
	"github.com/par4d15e/blogbackendserver-sub001/pkg/response"
)

type PaymentHandler struct {
	service *PaymentService
}

func NewPaymentHandler(service *PaymentService) *PaymentHandler {
	return &PaymentHandler{service: service}
}

// CreateIntent 创建支付意图
// @Summary 创建支付意图
// @Tags payment
// @Accept json
// @Produce json
// @Param request body CreateIntentRequest true "项目ID"
// @Success 200 {object} response.Response{data=CreateIntentResponse}
// @Security BearerAuth
// @Router /payments/intent [post]
func (h *PaymentHandler) CreateIntent(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		dto.ErrorResponse(c, response.NewBusinessError(
			response.WithErrorCode(response.Unauthorized),
			response.WithErrorMessage("请先登录"),
		))
		return
	}

	var req CreateIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.ErrorResponse(c, response.NewBusinessError(
			response.WithErrorCode(response.ParseError),
			response.WithErrorMessage("请求参数错误"),
			response.WithError(err),
		))
		return
	}

	result, bizErr := h.service.CreateIntent(userID, &req)
	if bizErr != nil {
		dto.ErrorResponse(c, bizErr)
		return
	}
	dto.SuccessResponse(c, result)
}

// Webhook Stripe 支付回调
// @Summary Stripe 支付回调
// @Tags payment
// @Accept json
// @Produce json
// @Success 200 {object} response.Response
// @Router /payments/webhook [post]
func (h *PaymentHandler) Webhook(c *gin.Context) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		dto.ErrorResponse(c, response.NewBusinessError(
			response.WithErrorCode(response.ParseError),
			response.WithErrorMessage("读取回调内容失败"),
			response.WithError(err),
		))
		return
	}

	if bizErr := h.service.HandleWebhook(payload, c.GetHeader("Stripe-Signature")); bizErr != nil {
		dto.ErrorResponse(c, bizErr)
		return
	}
	dto.SuccessResponse(c, gin.H{"status": "success"})
}

// GetSuccessDetails 支付成功详情
// @Summary 按支付意图查询成功订单详情
// @Tags payment
// @Produce json
// @Param intent_id path string true "支付意图ID"
// @Success 200 {object} response.Response{data=SuccessDetailsResponse}
// @Security BearerAuth
// @Router /payments/success/{intent_id} [get]
func (h *PaymentHandler) GetSuccessDetails(c *gin.Context) {
	result, err := h.service.GetSuccessDetails(c.Param("intent_id"))
	if err != nil {
		dto.ErrorResponse(c, err)
		return
	}
	dto.SuccessResponse(c, result)
}

// ListRecords 支付记录
// @Summary 查询支付记录
// @Tags payment
// @Produce json
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(20)
// @Success 200 {object} response.Response{data=RecordListResponse}
// @Security BearerAuth
// @Router /payments/records [get]
func (h *PaymentHandler) ListRecords(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		dto.ErrorResponse(c, response.NewBusinessError(
			response.WithErrorCode(response.Unauthorized),
			response.WithErrorMessage("请先登录"),
		))
		return
	}

	var q RecordListQuery
	_ = c.ShouldBindQuery(&q)

	result, err := h.service.ListRecords(userID, middleware.IsAdmin(c), q)
	if err != nil {
		dto.ErrorResponse(c, err)
		return
	}
	dto.SuccessResponse(c, result)
}
