// Package payment 支付相关模型
package payment

import "time"

// PaymentType 支付方式
type PaymentType int

const (
	TypeCard             PaymentType = 1
	TypeLink             PaymentType = 2
	TypeKlarna           PaymentType = 3
	TypeAfterpayClearpay PaymentType = 4
	TypeAlipay           PaymentType = 5
)

// PaymentStatus 支付状态
type PaymentStatus int

const (
	StatusCancel  PaymentStatus = 1
	StatusSuccess PaymentStatus = 2
	StatusFailed  PaymentStatus = 3
	StatusPending PaymentStatus = 4
)

// PaymentRecord 支付记录表
// 税费字段为下单时的快照, 税率之后变更不影响历史记录
type PaymentRecord struct {
	ID          uint     `gorm:"primaryKey" json:"id"`
	UserID      *uint    `gorm:"index" json:"user_id"`
	ProjectID   *uint    `gorm:"index" json:"project_id"`
	TaxName     *string  `gorm:"type:varchar(100)" json:"tax_name"`
	TaxRate     *float64 `json:"tax_rate"`
	TaxAmount   *float64 `json:"tax_amount"`
	OrderNumber string   `gorm:"type:varchar(64);not null;uniqueIndex" json:"order_number"`

	PaymentType   PaymentType   `gorm:"not null" json:"payment_type"`
	Amount        float64       `gorm:"not null" json:"amount"`
	PaymentStatus PaymentStatus `gorm:"not null;index" json:"payment_status"`
	CreatedAt     time.Time     `gorm:"index:,sort:desc" json:"created_at"`
}

func (PaymentRecord) TableName() string {
	return "payment_records"
}

// Tax 税率表
type Tax struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	TaxName   string     `gorm:"type:varchar(100);not null;uniqueIndex" json:"tax_name"`
	TaxRate   float64    `gorm:"not null;default:0" json:"tax_rate"`
	IsActive  bool       `gorm:"default:true;index" json:"is_active"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

func (Tax) TableName() string {
	return "taxes"
}
