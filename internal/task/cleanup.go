package task

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/par4d15e/blogbackendserver-sub001/internal/model/auth"
	"github.com/par4d15e/blogbackendserver-sub001/internal/model/user"
)

const (
	// 清理周期
	cleanupInterval = 1 * time.Hour
	// 未验证用户保留时长, 超过即删除
	unverifiedRetention = 24 * time.Hour
)

// CleanupWorker 定时清理过期令牌、过期验证码和未验证用户
type CleanupWorker struct {
	db *gorm.DB
}

func NewCleanupWorker(db *gorm.DB) *CleanupWorker {
	return &CleanupWorker{db: db}
}

func (w *CleanupWorker) Start(ctx context.Context, wg *sync.WaitGroup) {
	wg.Add(1)
	go func() {
		defer wg.Done()
		ticker := time.NewTicker(cleanupInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				w.runOnce()
			}
		}
	}()
}

func (w *CleanupWorker) runOnce() {
	if n, err := w.CleanupExpiredTokens(); err != nil {
		logrus.WithError(err).Error("清理过期刷新令牌失败")
	} else if n > 0 {
		logrus.WithField("count", n).Info("已清理过期刷新令牌")
	}

	if n, err := w.CleanupExpiredCodes(); err != nil {
		logrus.WithError(err).Error("清理过期验证码失败")
	} else if n > 0 {
		logrus.WithField("count", n).Info("已清理过期验证码")
	}

	if n, err := w.CleanupUnverifiedUsers(unverifiedRetention); err != nil {
		logrus.WithError(err).Error("清理未验证用户失败")
	} else if n > 0 {
		logrus.WithField("count", n).Info("已清理未验证用户")
	}
}

// CleanupExpiredTokens 删除过期或已撤销的刷新令牌
func (w *CleanupWorker) CleanupExpiredTokens() (int64, error) {
	result := w.db.
		Where("expired_at < ? OR is_active = ?", time.Now().UTC(), false).
		Delete(&auth.RefreshToken{})
	return result.RowsAffected, result.Error
}

// CleanupExpiredCodes 删除过期或已使用的验证码
func (w *CleanupWorker) CleanupExpiredCodes() (int64, error) {
	result := w.db.
		Where("expires_at < ? OR is_used = ?", time.Now().UTC(), true).
		Delete(&auth.Code{})
	return result.RowsAffected, result.Error
}

// CleanupUnverifiedUsers 删除注册超过保留时长仍未验证的占位用户
func (w *CleanupWorker) CleanupUnverifiedUsers(retention time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-retention)
	result := w.db.
		Where("is_verified = ? AND created_at < ?", false, cutoff).
		Delete(&user.User{})
	return result.RowsAffected, result.Error
}
