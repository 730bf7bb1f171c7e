package user

import (
	"gorm.io/gorm"

	usermodel "github.com/par4d15e/blogbackendserver-sub001/internal/model/user"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// GetByID 按 ID 查用户, 未找到返回 nil
func (r *UserRepository) GetByID(id uint) (*usermodel.User, error) {
	var u usermodel.User
	err := r.db.First(&u, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

// UsernameTakenByOther 用户名是否被其他用户占用
func (r *UserRepository) UsernameTakenByOther(username string, userID uint) (bool, error) {
	var count int64
	err := r.db.Model(&usermodel.User{}).
		Where("username = ? AND id <> ?", username, userID).
		Count(&count).Error
	return count > 0, err
}

// UpdateProfile 按字段增量更新
func (r *UserRepository) UpdateProfile(userID uint, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.Model(&usermodel.User{}).
		Where("id = ?", userID).
		Updates(updates).Error
}

// ListUsers 后台分页查询, 含已删除用户
func (r *UserRepository) ListUsers(page, pageSize int) ([]usermodel.User, int64, error) {
	var total int64
	if err := r.db.Model(&usermodel.User{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []usermodel.User
	err := r.db.
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&users).Error
	return users, total, err
}

// SetRole 修改用户角色
func (r *UserRepository) SetRole(userID uint, role usermodel.RoleType) error {
	return r.db.Model(&usermodel.User{}).
		Where("id = ?", userID).
		Update("role", role).Error
}

// SetActive 启用/禁用账号
func (r *UserRepository) SetActive(userID uint, active bool) error {
	return r.db.Model(&usermodel.User{}).
		Where("id = ?", userID).
		Update("is_active", active).Error
}

// SoftDelete 软删除, 保留数据
func (r *UserRepository) SoftDelete(userID uint) error {
	return r.db.Model(&usermodel.User{}).
		Where("id = ?", userID).
		Update("is_deleted", true).Error
}
