package subscriber

// SubscribeRequest 订阅请求
type SubscribeRequest struct {
	Email string `json:"email" binding:"required,email" example:"reader@example.com"` // 邮箱
}

// UnsubscribeRequest 退订请求
type UnsubscribeRequest struct {
	Email string `json:"email" binding:"required,email" example:"reader@example.com"` // 邮箱
}

// BroadcastRequest 群发请求
type BroadcastRequest struct {
	Subject string `json:"subject" binding:"required,max=100" example:"本月更新"` // 邮件主题
	Message string `json:"message" binding:"required"`                        // 正文, 支持 HTML
}

// BroadcastResponse 群发结果
type BroadcastResponse struct {
	Enqueued int `json:"enqueued"` // 已投递任务数
}
