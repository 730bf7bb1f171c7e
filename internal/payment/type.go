package payment

import (
	paymentmodel "github.com/par4d15e/blogbackendserver-sub001/internal/model/payment"
)

// CreateIntentRequest 创建支付意图请求
type CreateIntentRequest struct {
	ProjectID uint `json:"project_id" binding:"required"`
}

// CreateIntentResponse 返回给前端的凭据
type CreateIntentResponse struct {
	ClientSecret string  `json:"client_secret"`
	OrderNumber  string  `json:"order_number"`
	FinalAmount  float64 `json:"final_amount"`
}

// intentMetadata Stripe metadata 快照
// Stripe 只接受字符串值, 全部字段扁平化为 string
type intentMetadata struct {
	UserID             string
	UserName           string
	UserEmail          string
	ProjectID          string
	CoverURL           string
	ProjectName        string
	ProjectSlug        string
	ProjectDescription string
	ProjectPrice       string
	ProjectSectionName string
	TaxName            string
	TaxRate            string
	TaxAmount          string
	FinalAmount        string
	OrderNumber        string
}

// SuccessUser 支付详情里的用户信息
type SuccessUser struct {
	UserID   uint   `json:"user_id"`
	UserName string `json:"user_name"`
	Email    string `json:"user_email"`
}

// SuccessProject 支付详情里的项目信息
type SuccessProject struct {
	ProjectID          uint    `json:"project_id"`
	CoverURL           string  `json:"cover_url"`
	ProjectName        string  `json:"project_name"`
	ProjectSlug        string  `json:"project_slug"`
	ProjectDescription string  `json:"project_description"`
	ProjectPrice       float64 `json:"project_price"`
	SectionName        string  `json:"project_section_name"`
}

// SuccessTax 支付详情里的税费快照
type SuccessTax struct {
	TaxName   string  `json:"tax_name"`
	TaxRate   float64 `json:"tax_rate"`
	TaxAmount float64 `json:"tax_amount"`
}

// SuccessDetailsResponse 支付成功详情
type SuccessDetailsResponse struct {
	PaymentIntentID string         `json:"payment_intent_id"`
	PaymentStatus   string         `json:"payment_status"`
	OrderNumber     string         `json:"order_number"`
	PaymentDate     int64          `json:"payment_date"`
	User            SuccessUser    `json:"user"`
	Project         SuccessProject `json:"project"`
	Tax             SuccessTax     `json:"tax"`
	FinalAmount     float64        `json:"final_amount"`
	PaymentType     string         `json:"payment_type"`
}

// RecordListQuery 支付记录分页
type RecordListQuery struct {
	Page     int `form:"page"`
	PageSize int `form:"page_size"`
}

// RecordListResponse 偏移分页支付记录
type RecordListResponse struct {
	Records  []paymentmodel.PaymentRecord `json:"records"`
	Total    int64                        `json:"total"`
	Page     int                          `json:"page"`
	PageSize int                          `json:"page_size"`
}
