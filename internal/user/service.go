package user

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/par4d15e/blogbackendserver-sub001/internal/auth"
	"github.com/par4d15e/blogbackendserver-sub001/internal/cache"
	"github.com/par4d15e/blogbackendserver-sub001/internal/database"
	"github.com/par4d15e/blogbackendserver-sub001/internal/media"
	usermodel "github.com/par4d15e/blogbackendserver-sub001/internal/model/user"
	"github.com/par4d15e/blogbackendserver-sub001/pkg/response"
)

var usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

type UserService struct {
	repo     *UserRepository
	sessions *auth.SessionRepository
	media    *media.MediaService
}

func NewUserService() *UserService {
	return &UserService{
		repo:     NewUserRepository(database.MySQLDB),
		sessions: auth.NewSessionRepository(database.MySQLDB),
		media:    media.NewMediaService(),
	}
}

// GetProfile 当前用户信息
func (s *UserService) GetProfile(userID uint) (*ProfileResponse, *response.BusinessError) {
	u, err := s.repo.GetByID(userID)
	if err != nil {
		return nil, response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("查询用户失败"),
			response.WithError(err),
		)
	}
	if u == nil || u.IsDeleted {
		return nil, response.NewBusinessError(
			response.WithErrorCode(response.NotFound),
			response.WithErrorMessage("用户不存在"),
		)
	}

	avatarURL, err := s.media.AvatarURL(userID)
	if err != nil {
		logrus.WithError(err).WithField("user_id", userID).Warn("查询用户头像失败")
	}

	return &ProfileResponse{
		ID:         u.ID,
		Username:   u.Username,
		Email:      u.Email,
		Role:       int(u.Role),
		Bio:        u.Bio,
		City:       u.City,
		AvatarURL:  avatarURL,
		IsVerified: u.IsVerified,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}, nil
}

// GetPublicProfile 公开用户信息, 已删除或禁用的用户视为不存在
func (s *UserService) GetPublicProfile(userID uint) (*PublicProfileResponse, *response.BusinessError) {
	u, err := s.repo.GetByID(userID)
	if err != nil {
		return nil, response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("查询用户失败"),
			response.WithError(err),
		)
	}
	if u == nil || u.IsDeleted || !u.IsActive {
		return nil, response.NewBusinessError(
			response.WithErrorCode(response.NotFound),
			response.WithErrorMessage("用户不存在"),
		)
	}

	avatarURL, err := s.media.AvatarURL(userID)
	if err != nil {
		logrus.WithError(err).WithField("user_id", userID).Warn("查询用户头像失败")
	}

	return &PublicProfileResponse{
		ID:        u.ID,
		Username:  u.Username,
		Bio:       u.Bio,
		City:      u.City,
		AvatarURL: avatarURL,
		CreatedAt: u.CreatedAt,
	}, nil
}

// UpdateProfile 增量更新个人信息
func (s *UserService) UpdateProfile(userID uint, req UpdateProfileRequest) *response.BusinessError {
	updates := map[string]any{}

	if req.Username != nil {
		if len(*req.Username) < 3 || len(*req.Username) > 30 {
			return response.NewBusinessError(
				response.WithErrorCode(response.ParseError),
				response.WithErrorMessage("用户名长度必须在3-30个字符之间"),
			)
		}
		if !usernameRegex.MatchString(*req.Username) {
			return response.NewBusinessError(
				response.WithErrorCode(response.ParseError),
				response.WithErrorMessage("用户名只能包含字母、数字和下划线"),
			)
		}
		taken, err := s.repo.UsernameTakenByOther(*req.Username, userID)
		if err != nil {
			return response.NewBusinessError(
				response.WithErrorCode(response.Fail),
				response.WithErrorMessage("查询用户名失败"),
				response.WithError(err),
			)
		}
		if taken {
			return response.NewBusinessError(
				response.WithErrorCode(response.Conflict),
				response.WithErrorMessage("用户名已存在"),
			)
		}
		updates["username"] = *req.Username
	}

	if req.Bio != nil {
		if len(*req.Bio) > 300 {
			return response.NewBusinessError(
				response.WithErrorCode(response.ParseError),
				response.WithErrorMessage("个人简介不能超过300个字符"),
			)
		}
		updates["bio"] = *req.Bio
	}
	if req.City != nil {
		updates["city"] = *req.City
	}
	if req.Longitude != nil {
		updates["longitude"] = *req.Longitude
	}
	if req.Latitude != nil {
		updates["latitude"] = *req.Latitude
	}

	if len(updates) == 0 {
		return response.NewBusinessError(
			response.WithErrorCode(response.InvalidParameter),
			response.WithErrorMessage("没有需要更新的字段"),
		)
	}
	updates["updated_at"] = time.Now().UTC()

	if err := s.repo.UpdateProfile(userID, updates); err != nil {
		return response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("更新用户信息失败"),
			response.WithError(err),
		)
	}

	s.invalidateAdminCache()
	return nil
}

// DeleteAccount 注销账号: 软删除并撤销所有会话
func (s *UserService) DeleteAccount(userID uint) *response.BusinessError {
	u, err := s.repo.GetByID(userID)
	if err != nil || u == nil || u.IsDeleted {
		return response.NewBusinessError(
			response.WithErrorCode(response.NotFound),
			response.WithErrorMessage("用户不存在"),
		)
	}

	if err := s.repo.SoftDelete(userID); err != nil {
		return response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("注销账号失败"),
			response.WithError(err),
		)
	}

	if _, err := s.sessions.RevokeAll(userID); err != nil {
		logrus.WithError(err).Warn("撤销已删除用户会话失败")
	}

	// 媒体文件异步清理, 失败不影响注销结果
	go func() {
		if err := s.media.CleanupUserMedia(context.Background(), userID); err != nil {
			logrus.WithError(err).WithField("user_id", userID).Warn("清理用户媒体失败")
		}
	}()

	s.invalidateAdminCache()
	return nil
}

// AdminListUsers 后台用户分页列表, 带缓存
func (s *UserService) AdminListUsers(page, pageSize int) (*AdminUserListResponse, *response.BusinessError) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	key := fmt.Sprintf("%spage=%d:size=%d", cache.KeyAdminAllUsers, page, pageSize)
	result, err := cache.GetOrLoad(context.Background(), key, cache.DefaultTTL, func() (*AdminUserListResponse, error) {
		users, total, err := s.repo.ListUsers(page, pageSize)
		if err != nil {
			return nil, err
		}

		items := make([]AdminUserItem, 0, len(users))
		for _, u := range users {
			items = append(items, AdminUserItem{
				ID:         u.ID,
				Username:   u.Username,
				Email:      u.Email,
				Role:       int(u.Role),
				IsActive:   u.IsActive,
				IsVerified: u.IsVerified,
				IsDeleted:  u.IsDeleted,
				IPAddress:  u.IPAddress,
				City:       u.City,
				CreatedAt:  u.CreatedAt,
			})
		}

		return &AdminUserListResponse{
			Users:    items,
			Total:    total,
			Page:     page,
			PageSize: pageSize,
		}, nil
	})
	if err != nil {
		return nil, response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("查询用户列表失败"),
			response.WithError(err),
		)
	}

	return result, nil
}

// AdminSetRole 后台修改用户角色
func (s *UserService) AdminSetRole(userID uint, role int) *response.BusinessError {
	roleType := usermodel.RoleType(role)
	if roleType != usermodel.RoleUser && roleType != usermodel.RoleAdmin {
		return response.NewBusinessError(
			response.WithErrorCode(response.InvalidParameter),
			response.WithErrorMessage("不支持的角色类型"),
		)
	}

	u, err := s.repo.GetByID(userID)
	if err != nil {
		return response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("查询用户失败"),
			response.WithError(err),
		)
	}
	if u == nil || u.IsDeleted {
		return response.NewBusinessError(
			response.WithErrorCode(response.NotFound),
			response.WithErrorMessage("用户不存在"),
		)
	}

	if err := s.repo.SetRole(userID, roleType); err != nil {
		return response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("修改角色失败"),
			response.WithError(err),
		)
	}

	s.invalidateAdminCache()
	return nil
}

// AdminSetActive 后台启用/禁用账号, 禁用时同时撤销会话
func (s *UserService) AdminSetActive(userID uint, active bool) *response.BusinessError {
	u, err := s.repo.GetByID(userID)
	if err != nil {
		return response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("查询用户失败"),
			response.WithError(err),
		)
	}
	if u == nil || u.IsDeleted {
		return response.NewBusinessError(
			response.WithErrorCode(response.NotFound),
			response.WithErrorMessage("用户不存在"),
		)
	}

	if err := s.repo.SetActive(userID, active); err != nil {
		return response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("更新账号状态失败"),
			response.WithError(err),
		)
	}

	if !active {
		if _, err := s.sessions.RevokeAll(userID); err != nil {
			logrus.WithError(err).Warn("撤销被禁用用户会话失败")
		}
	}

	s.invalidateAdminCache()
	return nil
}

// AdminDeleteUser 后台删除用户
func (s *UserService) AdminDeleteUser(userID uint) *response.BusinessError {
	return s.DeleteAccount(userID)
}

func (s *UserService) invalidateAdminCache() {
	if err := cache.DeletePattern(context.Background(), cache.KeyAdminAllUsers+"page=*"); err != nil {
		logrus.WithError(err).Warn("清理用户列表缓存失败")
	}
}
