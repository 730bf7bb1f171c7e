package friend

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/par4d15e/blogbackendserver-sub001/internal/cache"
	"github.com/par4d15e/blogbackendserver-sub001/internal/database"
	friendmodel "github.com/par4d15e/blogbackendserver-sub001/internal/model/friend"
	"github.com/par4d15e/blogbackendserver-sub001/internal/task"
	"github.com/par4d15e/blogbackendserver-sub001/pkg/response"
)

type FriendService struct {
	repo *FriendRepository
}

func NewFriendService() *FriendService {
	return &FriendService{repo: NewFriendRepository(database.MySQLDB)}
}

// GetFriend 友链分组详情和可见友链, 带缓存
func (s *FriendService) GetFriend() (*friendmodel.Friend, *response.BusinessError) {
	result, err := cache.GetOrLoad(context.Background(), cache.KeyFriendLists, cache.DefaultTTL, func() (*friendmodel.Friend, error) {
		f, err := s.repo.GetFriend()
		if err != nil {
			return nil, err
		}
		if f == nil {
			return nil, nil
		}

		links, err := s.repo.ListVisibleLinks(f.ID)
		if err != nil {
			return nil, err
		}
		f.Links = links
		return f, nil
	})
	if err != nil {
		return nil, response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("查询友链失败"),
			response.WithError(err),
		)
	}
	if result == nil {
		return nil, response.NewBusinessError(
			response.WithErrorCode(response.NotFound),
			response.WithErrorMessage("友链栏目不存在"),
		)
	}
	return result, nil
}

// UpdateFriend 后台更新分组信息
func (s *FriendService) UpdateFriend(friendID uint, req UpdateFriendRequest) *response.BusinessError {
	f, err := s.repo.GetFriendByID(friendID)
	if err != nil || f == nil {
		return response.NewBusinessError(
			response.WithErrorCode(response.NotFound),
			response.WithErrorMessage("友链栏目不存在"),
		)
	}

	updates := map[string]any{}
	if req.ChineseTitle != nil {
		updates["chinese_title"] = *req.ChineseTitle
	}
	if req.EnglishTitle != nil {
		updates["english_title"] = *req.EnglishTitle
	}
	if req.ChineseDescription != nil {
		updates["chinese_description"] = *req.ChineseDescription
	}
	if req.EnglishDescription != nil {
		updates["english_description"] = *req.EnglishDescription
	}
	if len(updates) == 0 {
		return response.NewBusinessError(
			response.WithErrorCode(response.InvalidParameter),
			response.WithErrorMessage("没有需要更新的字段"),
		)
	}
	updates["updated_at"] = time.Now().UTC()

	if err := s.repo.UpdateFriend(friendID, updates); err != nil {
		return response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("更新友链栏目失败"),
			response.WithError(err),
		)
	}

	s.invalidateCache()
	return nil
}

// CreateLink 申请友链, 新申请默认隐藏, 通知管理员审核
func (s *FriendService) CreateLink(userID uint, req CreateLinkRequest) (*friendmodel.FriendList, *response.BusinessError) {
	f, err := s.repo.GetFriend()
	if err != nil || f == nil {
		return nil, response.NewBusinessError(
			response.WithErrorCode(response.NotFound),
			response.WithErrorMessage("友链栏目不存在"),
		)
	}

	l := &friendmodel.FriendList{
		FriendID:           f.ID,
		UserID:             userID,
		Type:               friendmodel.TypeHidden,
		LogoURL:            req.LogoURL,
		SiteURL:            req.SiteURL,
		ChineseTitle:       req.ChineseTitle,
		EnglishTitle:       req.EnglishTitle,
		ChineseDescription: req.ChineseDescription,
		EnglishDescription: req.EnglishDescription,
	}
	if err := s.repo.CreateLink(l); err != nil {
		return nil, response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("创建友链失败"),
			response.WithError(err),
		)
	}

	// 通知管理员有新的友链申请待审核
	if err := task.EnqueueEmail(context.Background(), task.EmailTask{
		Type:             task.EmailNotification,
		NotificationType: task.NotificationFriendRequest,
		Message:          fmt.Sprintf("收到新的友链申请: %s (%s)", l.ChineseTitle, l.SiteURL),
	}); err != nil {
		logrus.WithError(err).Warn("友链申请通知入队失败")
	}

	return l, nil
}

// UpdateLinkType 后台调整友链展示类型
func (s *FriendService) UpdateLinkType(linkID uint, linkType int) *response.BusinessError {
	t := friendmodel.FriendType(linkType)
	if t != friendmodel.TypeFeatured && t != friendmodel.TypeNormal && t != friendmodel.TypeHidden {
		return response.NewBusinessError(
			response.WithErrorCode(response.InvalidParameter),
			response.WithErrorMessage("不支持的友链类型"),
		)
	}

	l, err := s.repo.GetLink(linkID)
	if err != nil || l == nil {
		return response.NewBusinessError(
			response.WithErrorCode(response.NotFound),
			response.WithErrorMessage("友链不存在"),
		)
	}

	if err := s.repo.UpdateLinkType(linkID, t); err != nil {
		return response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("更新友链类型失败"),
			response.WithError(err),
		)
	}

	s.invalidateCache()
	return nil
}

// DeleteLink 删除友链, 仅创建者或管理员
func (s *FriendService) DeleteLink(userID uint, isAdmin bool, linkID uint) *response.BusinessError {
	l, err := s.repo.GetLink(linkID)
	if err != nil {
		return response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("查询友链失败"),
			response.WithError(err),
		)
	}
	if l == nil {
		return response.NewBusinessError(
			response.WithErrorCode(response.NotFound),
			response.WithErrorMessage("友链不存在"),
		)
	}

	if l.UserID != userID && !isAdmin {
		return response.NewBusinessError(
			response.WithErrorCode(response.Forbidden),
			response.WithErrorMessage("无权删除该友链"),
		)
	}

	if err := s.repo.DeleteLink(linkID); err != nil {
		return response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("删除友链失败"),
			response.WithError(err),
		)
	}

	s.invalidateCache()
	return nil
}

// AdminListLinks 后台全部友链, offset 分页
func (s *FriendService) AdminListLinks(page, pageSize int) ([]friendmodel.FriendList, int64, *response.BusinessError) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	links, total, err := s.repo.ListAllLinks(page, pageSize)
	if err != nil {
		return nil, 0, response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("查询友链列表失败"),
			response.WithError(err),
		)
	}
	return links, total, nil
}

func (s *FriendService) invalidateCache() {
	if err := cache.Delete(context.Background(), cache.KeyFriendLists); err != nil {
		logrus.WithError(err).Warn("清理友链缓存失败")
	}
}
