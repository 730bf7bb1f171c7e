// Package response 统一响应体和业务错误定义
package response

// ResponseCode 业务状态码, 100 为成功, 其余见 errors.go
type ResponseCode int

const Success ResponseCode = 100

// Response 所有接口的统一响应结构, HTTP 状态码恒为 200, 业务结果看 code
type Response struct {
	Message string       `json:"message"`
	Code    ResponseCode `json:"code"`
	Data    any          `json:"data"`
}

// SuccessResponse 成功响应
func SuccessResponse(data any) Response {
	return Response{
		Message: "success",
		Code:    Success,
		Data:    data,
	}
}

// ErrorResponse 失败响应, data 恒为空
func ErrorResponse(code ResponseCode, msg string) Response {
	return Response{
		Message: msg,
		Code:    code,
	}
}
