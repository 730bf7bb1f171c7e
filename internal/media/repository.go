package media

import (
	"errors"

	"gorm.io/gorm"

	mediamodel "github.com/par4d15e/blogbackendserver-sub001/internal/model/media"
)

// MediaRepository 媒体元信息数据访问层
type MediaRepository struct {
	db *gorm.DB
}

func NewMediaRepository(db *gorm.DB) *MediaRepository {
	return &MediaRepository{db: db}
}

// List 偏移分页, 按类型和头像标记筛选
func (r *MediaRepository) List(q ListQuery) ([]mediamodel.Media, int64, error) {
	query := r.db.Model(&mediamodel.Media{})
	if q.Type != nil {
		query = query.Where("type = ?", *q.Type)
	}
	if q.IsAvatar != nil {
		query = query.Where("is_avatar = ?", *q.IsAvatar)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var media []mediamodel.Media
	err := query.Order("created_at DESC").
		Offset((q.Page - 1) * q.PageSize).
		Limit(q.PageSize).
		Find(&media).Error
	if err != nil {
		return nil, 0, err
	}
	return media, total, nil
}

func (r *MediaRepository) GetByID(id uint) (*mediamodel.Media, error) {
	var m mediamodel.Media
	err := r.db.First(&m, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MediaRepository) GetByUUID(uuid string) (*mediamodel.Media, error) {
	var m mediamodel.Media
	err := r.db.Where("uuid = ?", uuid).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MediaRepository) Create(m *mediamodel.Media) error {
	return r.db.Create(m).Error
}

func (r *MediaRepository) Delete(id uint) error {
	return r.db.Delete(&mediamodel.Media{}, id).Error
}

// ClearAvatar 清除用户现有头像标记
func (r *MediaRepository) ClearAvatar(userID uint) error {
	return r.db.Model(&mediamodel.Media{}).
		Where("user_id = ? AND is_avatar = ?", userID, true).
		Update("is_avatar", false).Error
}

// GetAvatar 用户当前头像, 无则返回 nil
func (r *MediaRepository) GetAvatar(userID uint) (*mediamodel.Media, error) {
	var m mediamodel.Media
	err := r.db.Where("user_id = ? AND is_avatar = ?", userID, true).
		Order("created_at DESC").First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// ListByUser 用户名下全部媒体, 账号删除后的清理用
func (r *MediaRepository) ListByUser(userID uint) ([]mediamodel.Media, error) {
	var media []mediamodel.Media
	if err := r.db.Where("user_id = ?", userID).Find(&media).Error; err != nil {
		return nil, err
	}
	return media, nil
}
