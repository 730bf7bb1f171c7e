package auth

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/par4d15e/blogbackendserver-sub001/config"
	"github.com/par4d15e/blogbackendserver-sub001/internal/model/auth"
	"github.com/par4d15e/blogbackendserver-sub001/internal/model/user"
	"github.com/par4d15e/blogbackendserver-sub001/internal/pkg"

	"github.com/sirupsen/logrus"
)

// SessionRepository 刷新令牌数据访问层
// 访问令牌无状态不落库, 每个活跃会话对应一行 refresh_tokens
type SessionRepository struct {
	db *gorm.DB
}

// NewSessionRepository 创建会话仓库实例
func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// TokenPair 一次签发的令牌对
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// maxSessions 单用户最大并发会话数
func (r *SessionRepository) maxSessions() int {
	if config.Conf != nil && config.Conf.JWT.MaxSessions > 0 {
		return config.Conf.JWT.MaxSessions
	}
	return 5
}

// activeTokens 查询用户当前有效的刷新令牌
func (r *SessionRepository) activeTokens(userID uint) ([]auth.RefreshToken, error) {
	var tokens []auth.RefreshToken
	err := r.db.
		Where("user_id = ? AND is_active = ? AND expired_at > ?", userID, true, time.Now().UTC()).
		Order("created_at ASC").
		Find(&tokens).Error
	return tokens, err
}

// IssueTokenPair 为用户签发新令牌对
// 活跃会话达到上限时撤销最旧的一个, 总是生成新令牌, 不复用旧令牌
func (r *SessionRepository) IssueTokenPair(u *user.User) (*TokenPair, error) {
	username := ""
	if u.Username != nil {
		username = *u.Username
	}

	valid, err := r.activeTokens(u.ID)
	if err != nil {
		return nil, fmt.Errorf("查询用户会话失败: %w", err)
	}

	if len(valid) >= r.maxSessions() {
		// activeTokens 按创建时间升序, 第一个即最旧
		oldest := valid[0]
		if err := r.db.Model(&auth.RefreshToken{}).
			Where("id = ?", oldest.ID).
			Update("is_active", false).Error; err != nil {
			return nil, fmt.Errorf("撤销最旧会话失败: %w", err)
		}
		logrus.WithFields(logrus.Fields{
			"email": u.Email,
			"jti":   oldest.Jit,
		}).Info("并发会话达到上限, 已撤销最旧会话")
	}

	accessToken, _, err := pkg.GenerateAccessToken(u.ID, username, u.Email, int(u.Role))
	if err != nil {
		return nil, fmt.Errorf("生成访问令牌失败: %w", err)
	}

	refreshToken, refreshJti, expiredAt, err := pkg.GenerateRefreshToken(u.ID, username, u.Email, int(u.Role))
	if err != nil {
		return nil, fmt.Errorf("生成刷新令牌失败: %w", err)
	}

	record := auth.RefreshToken{
		UserID:    u.ID,
		Jit:       refreshJti,
		Token:     refreshToken,
		IsActive:  true,
		ExpiredAt: expiredAt,
	}
	if err := r.db.Create(&record).Error; err != nil {
		return nil, fmt.Errorf("存储刷新令牌失败: %w", err)
	}

	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// Rotate 刷新令牌轮换: 旧令牌立即失效, 签发新令牌对
// 旧令牌查不到说明已被轮换或撤销, 可能被盗用
func (r *SessionRepository) Rotate(u *user.User, jti string) (*TokenPair, error) {
	var old auth.RefreshToken
	err := r.db.
		Where("user_id = ? AND jit = ? AND is_active = ? AND expired_at > ?",
			u.ID, jti, true, time.Now().UTC()).
		First(&old).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, gorm.ErrRecordNotFound
		}
		return nil, fmt.Errorf("查询刷新令牌失败: %w", err)
	}

	if err := r.db.Model(&auth.RefreshToken{}).
		Where("id = ?", old.ID).
		Update("is_active", false).Error; err != nil {
		return nil, fmt.Errorf("撤销旧刷新令牌失败: %w", err)
	}

	pair, err := r.IssueTokenPair(u)
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"email":   u.Email,
		"old_jti": jti,
	}).Info("刷新令牌轮换完成")

	return pair, nil
}

// RevokeAll 撤销用户所有刷新令牌
func (r *SessionRepository) RevokeAll(userID uint) (bool, error) {
	result := r.db.Model(&auth.RefreshToken{}).
		Where("user_id = ? AND is_active = ?", userID, true).
		Update("is_active", false)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// CleanupExpired 清理过期或已撤销的刷新令牌, 由定时任务调用
func (r *SessionRepository) CleanupExpired() (int64, error) {
	result := r.db.
		Where("expired_at < ? OR is_active = ?", time.Now().UTC(), false).
		Delete(&auth.RefreshToken{})
	return result.RowsAffected, result.Error
}
