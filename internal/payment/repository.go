package payment

import (
	"errors"

	"gorm.io/gorm"

	paymentmodel "github.com/par4d15e/blogbackendserver-sub001/internal/model/payment"
	projectmodel "github.com/par4d15e/blogbackendserver-sub001/internal/model/project"
	usermodel "github.com/par4d15e/blogbackendserver-sub001/internal/model/user"
)

// PaymentRepository 支付数据访问层
type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// GetUser 下单用户, 不存在或已删除返回 nil
func (r *PaymentRepository) GetUser(id uint) (*usermodel.User, error) {
	var u usermodel.User
	err := r.db.Where("id = ? AND is_deleted = ?", id, false).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetPayableProject 可支付的项目, 带变现信息/税率/栏目/封面
func (r *PaymentRepository) GetPayableProject(id uint) (*projectmodel.Project, error) {
	var p projectmodel.Project
	err := r.db.Preload("Monetization.Tax").Preload("Section").Preload("Cover").
		Where("id = ? AND is_published = ?", id, true).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetActiveTax 当前启用的税率, 没有返回 nil
func (r *PaymentRepository) GetActiveTax() (*paymentmodel.Tax, error) {
	var tax paymentmodel.Tax
	err := r.db.Where("is_active = ?", true).Order("id DESC").First(&tax).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &tax, nil
}

func (r *PaymentRepository) CreateRecord(record *paymentmodel.PaymentRecord) error {
	return r.db.Create(record).Error
}

// OrderNumberExists 回调可能重复投递, 记录按订单号幂等
func (r *PaymentRepository) OrderNumberExists(orderNumber string) (bool, error) {
	var count int64
	err := r.db.Model(&paymentmodel.PaymentRecord{}).
		Where("order_number = ?", orderNumber).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListRecords userID 为 0 时返回全部记录（管理员）
func (r *PaymentRepository) ListRecords(userID uint, page, pageSize int) ([]paymentmodel.PaymentRecord, int64, error) {
	query := r.db.Model(&paymentmodel.PaymentRecord{})
	if userID > 0 {
		query = query.Where("user_id = ?", userID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var records []paymentmodel.PaymentRecord
	err := query.Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&records).Error
	if err != nil {
		return nil, 0, err
	}
	return records, total, nil
}
