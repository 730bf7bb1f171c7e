package auth

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/par4d15e/blogbackendserver-sub001/config"
	"github.com/par4d15e/blogbackendserver-sub001/internal/model/auth"
	mediamodel "github.com/par4d15e/blogbackendserver-sub001/internal/model/media"
	"github.com/par4d15e/blogbackendserver-sub001/internal/model/user"
)

// 验证码有效期（分钟）
const CodeExpireMinutes = 5

// AuthRepository 认证数据访问层
type AuthRepository struct {
	db *gorm.DB
}

func NewAuthRepository(db *gorm.DB) *AuthRepository {
	return &AuthRepository{db: db}
}

// GetUserByEmail 按邮箱查用户, 含未激活的占位用户
func (r *AuthRepository) GetUserByEmail(email string) (*user.User, error) {
	var u user.User
	err := r.db.Where("email = ?", email).First(&u).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

// GetUserByID 按ID查用户
func (r *AuthRepository) GetUserByID(id uint) (*user.User, error) {
	var u user.User
	err := r.db.First(&u, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

// UsernameExists 用户名是否已被占用
func (r *AuthRepository) UsernameExists(username string) (bool, error) {
	var count int64
	err := r.db.Model(&user.User{}).Where("username = ?", username).Count(&count).Error
	return count > 0, err
}

// CreatePlaceholderUser 为注册流程创建仅含邮箱的占位用户
func (r *AuthRepository) CreatePlaceholderUser(email string) (*user.User, error) {
	u := user.User{Email: email}
	if err := r.db.Create(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// GetValidCode 查用户当前未过期未使用的验证码, 用于发送限流
func (r *AuthRepository) GetValidCode(userID uint, codeType auth.CodeType) (*auth.Code, error) {
	var c auth.Code
	err := r.db.
		Where("user_id = ? AND type = ? AND expires_at > ? AND is_used = ?",
			userID, codeType, time.Now().UTC(), false).
		First(&c).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

// CreateCode 创建验证码记录
func (r *AuthRepository) CreateCode(userID uint, codeType auth.CodeType, code string) (*auth.Code, error) {
	c := auth.Code{
		UserID:    userID,
		Type:      codeType,
		Code:      code,
		ExpiresAt: time.Now().UTC().Add(CodeExpireMinutes * time.Minute),
	}
	if err := r.db.Create(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// ValidateCode 校验验证码, 返回匹配的未过期未使用记录
func (r *AuthRepository) ValidateCode(userID uint, code string, codeType auth.CodeType) (*auth.Code, error) {
	var c auth.Code
	err := r.db.
		Where("user_id = ? AND code = ? AND type = ? AND expires_at > ? AND is_used = ?",
			userID, code, codeType, time.Now().UTC(), false).
		First(&c).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

// defaultAvatarURL 站点自带的默认头像地址
func defaultAvatarURL() string {
	return config.Conf.App.Domain + "/static/image/default_avatar.png"
}

// newAvatarMedia 构造头像媒体记录, 三种规格都指向同一地址
func newAvatarMedia(userID uint, avatarURL string) *mediamodel.Media {
	return &mediamodel.Media{
		UUID:                 uuid.NewString(),
		UserID:               userID,
		Type:                 mediamodel.TypeImage,
		IsAvatar:             true,
		FileName:             fmt.Sprintf("avatar_%d.png", userID),
		OriginalFilepathURL:  avatarURL,
		ThumbnailFilepathURL: &avatarURL,
		WatermarkFilepathURL: &avatarURL,
	}
}

// ActivateUser 注册完成: 补全用户信息, 建默认头像并核销验证码, 单事务
func (r *AuthRepository) ActivateUser(u *user.User, username, passwordHash string, code *auth.Code) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"username":      username,
			"password_hash": passwordHash,
			"is_active":     true,
			"is_verified":   true,
		}
		if err := tx.Model(&user.User{}).Where("id = ?", u.ID).Updates(updates).Error; err != nil {
			return err
		}

		if err := tx.Create(newAvatarMedia(u.ID, defaultAvatarURL())).Error; err != nil {
			return err
		}

		return tx.Model(&auth.Code{}).Where("id = ?", code.ID).Update("is_used", true).Error
	})
}

// UpdatePassword 更新密码并核销验证码（验证码可为 nil, 已登录修改密码时不需要）
func (r *AuthRepository) UpdatePassword(userID uint, passwordHash string, code *auth.Code) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&user.User{}).
			Where("id = ?", userID).
			Update("password_hash", passwordHash).Error; err != nil {
			return err
		}

		if code != nil {
			return tx.Model(&auth.Code{}).Where("id = ?", code.ID).Update("is_used", true).Error
		}
		return nil
	})
}

// UpdateLoginIP 首次登录时记录来源 IP
func (r *AuthRepository) UpdateLoginIP(userID uint, ip string) error {
	return r.db.Model(&user.User{}).
		Where("id = ?", userID).
		Update("ip_address", ip).Error
}

// GetSocialAccount 查用户绑定的社交账号
func (r *AuthRepository) GetSocialAccount(userID uint) (*auth.SocialAccount, error) {
	var s auth.SocialAccount
	err := r.db.Where("user_id = ?", userID).First(&s).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

// FindSocialAccount 按 provider 维度查绑定关系
func (r *AuthRepository) FindSocialAccount(provider auth.SocialProvider, providerUserID string) (*auth.SocialAccount, error) {
	var s auth.SocialAccount
	err := r.db.
		Where("provider = ? AND provider_user_id = ?", provider, providerUserID).
		First(&s).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

// CreateSocialUser 社交登录首次进入: 创建用户, 头像和绑定关系, 单事务
// avatarURL 为第三方返回的头像地址, 为空时落默认头像
func (r *AuthRepository) CreateSocialUser(email string, username *string, provider auth.SocialProvider, providerUserID, avatarURL string) (*user.User, error) {
	var newUser user.User

	err := r.db.Transaction(func(tx *gorm.DB) error {
		newUser = user.User{
			Email:      email,
			Username:   username,
			IsActive:   true,
			IsVerified: true,
		}
		if err := tx.Create(&newUser).Error; err != nil {
			return err
		}

		if avatarURL == "" {
			avatarURL = defaultAvatarURL()
		}
		if err := tx.Create(newAvatarMedia(newUser.ID, avatarURL)).Error; err != nil {
			return err
		}

		account := auth.SocialAccount{
			UserID:         newUser.ID,
			Provider:       provider,
			ProviderUserID: providerUserID,
		}
		return tx.Create(&account).Error
	})

	if err != nil {
		return nil, err
	}
	return &newUser, nil
}

// BindSocialAccount 为已存在用户绑定社交账号
func (r *AuthRepository) BindSocialAccount(userID uint, provider auth.SocialProvider, providerUserID string) error {
	account := auth.SocialAccount{
		UserID:         userID,
		Provider:       provider,
		ProviderUserID: providerUserID,
	}
	return r.db.Create(&account).Error
}
