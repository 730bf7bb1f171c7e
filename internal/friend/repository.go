package friend

import (
	"gorm.io/gorm"

	friendmodel "github.com/par4d15e/blogbackendserver-sub001/internal/model/friend"
)

type FriendRepository struct {
	db *gorm.DB
}

func NewFriendRepository(db *gorm.DB) *FriendRepository {
	return &FriendRepository{db: db}
}

// GetFriend 友链分组详情
func (r *FriendRepository) GetFriend() (*friendmodel.Friend, error) {
	var f friendmodel.Friend
	err := r.db.First(&f).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &f, nil
}

// GetFriendByID 按 ID 查询分组
func (r *FriendRepository) GetFriendByID(id uint) (*friendmodel.Friend, error) {
	var f friendmodel.Friend
	err := r.db.First(&f, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &f, nil
}

// UpdateFriend 后台更新分组信息
func (r *FriendRepository) UpdateFriend(friendID uint, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.Model(&friendmodel.Friend{}).
		Where("id = ?", friendID).
		Updates(updates).Error
}

// ListVisibleLinks 公开友链, 精选在前
func (r *FriendRepository) ListVisibleLinks(friendID uint) ([]friendmodel.FriendList, error) {
	var links []friendmodel.FriendList
	err := r.db.
		Where("friend_id = ? AND type IN ?", friendID, []friendmodel.FriendType{friendmodel.TypeFeatured, friendmodel.TypeNormal}).
		Order("type ASC, created_at DESC").
		Find(&links).Error
	return links, err
}

// ListAllLinks 后台全部友链, offset 分页
func (r *FriendRepository) ListAllLinks(page, pageSize int) ([]friendmodel.FriendList, int64, error) {
	var total int64
	if err := r.db.Model(&friendmodel.FriendList{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var links []friendmodel.FriendList
	err := r.db.
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&links).Error
	return links, total, err
}

// GetLink 单条友链
func (r *FriendRepository) GetLink(linkID uint) (*friendmodel.FriendList, error) {
	var l friendmodel.FriendList
	err := r.db.First(&l, linkID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &l, nil
}

// CreateLink 创建友链申请
func (r *FriendRepository) CreateLink(l *friendmodel.FriendList) error {
	return r.db.Create(l).Error
}

// UpdateLinkType 调整展示类型
func (r *FriendRepository) UpdateLinkType(linkID uint, linkType friendmodel.FriendType) error {
	return r.db.Model(&friendmodel.FriendList{}).
		Where("id = ?", linkID).
		Update("type", linkType).Error
}

// DeleteLink 删除友链
func (r *FriendRepository) DeleteLink(linkID uint) error {
	return r.db.Delete(&friendmodel.FriendList{}, linkID).Error
}
