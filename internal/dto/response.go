package dto

import (
	"github.com/gin-gonic/gin"
	res "github.com/par4d15e/blogbackendserver-sub001/pkg/response"
)

// Response 统一响应格式
type Response struct {
	Code    int    `json:"code" example:"100"`        // 状态码：100-成功，其他-失败
	Message string `json:"message" example:"success"` // 响应消息
	Data    any    `json:"data,omitempty"`            // 响应数据
}

func SuccessResponse(c *gin.Context, data any) {
	c.JSON(200, res.SuccessResponse(data))
}

func ErrorResponse(c *gin.Context, err *res.BusinessError) {
	c.JSON(200, res.ErrorResponse(err.Code, err.Msg))
}
