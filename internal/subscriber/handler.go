package subscriber

import (
	"github.com/gin-gonic/gin"

	"github.com/par4d15e/blogbackendserver-sub001/internal/dto"
	"github.com/par4d15e/blogbackendserver-sub001/pkg/response"
)

type SubscriberHandler struct {
	service *SubscriberService
}

// Subscribe 订阅
// @Summary 订阅邮件通知
// @Tags subscriber
// @Accept json
// @Produce json
// @Param request body SubscribeRequest true "订阅请求"
// @Success 200 {object} response.Response
// @Router /subscribers [post]
func (h *SubscriberHandler) Subscribe(c *gin.Context) {
	var req SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.ErrorResponse(c, response.NewBusinessError(
			response.WithErrorCode(response.ParseError),
			response.WithErrorMessage("请检查参数"),
		))
		return
	}

	if err := h.service.Subscribe(req); err != nil {
		dto.ErrorResponse(c, err)
		return
	}

	dto.SuccessResponse(c, gin.H{"message": "订阅成功"})
}

// Unsubscribe 退订
// @Summary 退订邮件通知
// @Tags subscriber
// @Accept json
// @Produce json
// @Param request body UnsubscribeRequest true "退订请求"
// @Success 200 {object} response.Response
// @Router /subscribers/unsubscribe [post]
func (h *SubscriberHandler) Unsubscribe(c *gin.Context) {
	var req UnsubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.ErrorResponse(c, response.NewBusinessError(
			response.WithErrorCode(response.ParseError),
			response.WithErrorMessage("请检查参数"),
		))
		return
	}

	if err := h.service.Unsubscribe(req); err != nil {
		dto.ErrorResponse(c, err)
		return
	}

	dto.SuccessResponse(c, gin.H{"message": "已退订"})
}

// ListActive 活跃订阅者列表
// @Summary 查看活跃订阅者
// @Tags subscriber
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} response.Response
// @Router /admin/subscribers [get]
func (h *SubscriberHandler) ListActive(c *gin.Context) {
	subs, err := h.service.ListActive()
	if err != nil {
		dto.ErrorResponse(c, err)
		return
	}

	dto.SuccessResponse(c, gin.H{"subscribers": subs, "total": len(subs)})
}

// Broadcast 群发邮件
// @Summary 向全部活跃订阅者群发邮件
// @Tags subscriber
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body BroadcastRequest true "群发请求"
// @Success 200 {object} response.Response{data=BroadcastResponse}
// @Router /admin/subscribers/broadcast [post]
func (h *SubscriberHandler) Broadcast(c *gin.Context) {
	var req BroadcastRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.ErrorResponse(c, response.NewBusinessError(
			response.WithErrorCode(response.ParseError),
			response.WithErrorMessage("请检查参数"),
		))
		return
	}

	result, err := h.service.Broadcast(req)
	if err != nil {
		dto.ErrorResponse(c, err)
		return
	}

	dto.SuccessResponse(c, result)
}
