package subscriber

import (
	"time"

	"gorm.io/gorm"

	"github.com/par4d15e/blogbackendserver-sub001/internal/model/subscriber"
)

type SubscriberRepository struct {
	db *gorm.DB
}

func NewSubscriberRepository(db *gorm.DB) *SubscriberRepository {
	return &SubscriberRepository{db: db}
}

// GetByEmail 按邮箱查询, 未找到返回 nil
func (r *SubscriberRepository) GetByEmail(email string) (*subscriber.Subscriber, error) {
	var s subscriber.Subscriber
	err := r.db.Where("email = ?", email).First(&s).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

// EnsureActive 确保邮箱处于订阅状态
// 不存在则创建; 已退订则重新激活; 已订阅则无操作
func (r *SubscriberRepository) EnsureActive(email string) error {
	existing, err := r.GetByEmail(email)
	if err != nil {
		return err
	}

	if existing == nil {
		s := subscriber.Subscriber{
			Email:        email,
			SubscribedAt: time.Now().UTC(),
		}
		return r.db.Create(&s).Error
	}

	if existing.IsActive() {
		return nil
	}

	return r.db.Model(existing).Updates(map[string]any{
		"unsubscribed_at": nil,
		"subscribed_at":   time.Now().UTC(),
	}).Error
}

// Deactivate 退订, 保留记录
func (r *SubscriberRepository) Deactivate(email string) (bool, error) {
	existing, err := r.GetByEmail(email)
	if err != nil {
		return false, err
	}
	if existing == nil || !existing.IsActive() {
		return false, nil
	}

	now := time.Now().UTC()
	if err := r.db.Model(existing).Update("unsubscribed_at", now).Error; err != nil {
		return false, err
	}
	return true, nil
}

// ListActive 活跃订阅者列表, 供后台群发使用
func (r *SubscriberRepository) ListActive() ([]subscriber.Subscriber, error) {
	var subs []subscriber.Subscriber
	err := r.db.
		Where("unsubscribed_at IS NULL").
		Order("subscribed_at ASC").
		Find(&subs).Error
	return subs, err
}

// MarkSent 群发完成后累计发送次数
func (r *SubscriberRepository) MarkSent(ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	now := time.Now().UTC()
	return r.db.Model(&subscriber.Subscriber{}).
		Where("id IN ?", ids).
		Updates(map[string]any{
			"send_count": gorm.Expr("send_count + 1"),
			"send_at":    now,
		}).Error
}
