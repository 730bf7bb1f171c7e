package auth

import (
	"context"
	"regexp"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/par4d15e/blogbackendserver-sub001/internal/cache"
	"github.com/par4d15e/blogbackendserver-sub001/internal/database"
	authmodel "github.com/par4d15e/blogbackendserver-sub001/internal/model/auth"
	"github.com/par4d15e/blogbackendserver-sub001/internal/pkg"
	"github.com/par4d15e/blogbackendserver-sub001/internal/subscriber"
	"github.com/par4d15e/blogbackendserver-sub001/internal/task"
	"github.com/par4d15e/blogbackendserver-sub001/pkg/response"

	"github.com/sirupsen/logrus"
)

var (
	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
	upperRegex    = regexp.MustCompile(`[A-Z]`)
	lowerRegex    = regexp.MustCompile(`[a-z]`)
	digitRegex    = regexp.MustCompile(`[0-9]`)
)

type AuthService struct {
	repo     *AuthRepository
	sessions *SessionRepository
	subs     *subscriber.SubscriberRepository
}

func NewAuthService() *AuthService {
	return &AuthService{
		repo:     NewAuthRepository(database.MySQLDB),
		sessions: NewSessionRepository(database.MySQLDB),
		subs:     subscriber.NewSubscriberRepository(database.MySQLDB),
	}
}

// SendCode 发送验证码邮件
// 注册验证码允许为不存在的邮箱创建占位用户; 重置验证码只发给已验证用户
// 同类型存在有效验证码时拒绝重复发送
func (s *AuthService) SendCode(req SendCodeRequest) *response.BusinessError {
	codeType := authmodel.CodeType(req.Type)
	if codeType != authmodel.CodeVerified && codeType != authmodel.CodeReset {
		return response.NewBusinessError(
			response.WithErrorCode(response.InvalidParameter),
			response.WithErrorMessage("不支持的验证码类型"),
		)
	}

	u, err := s.repo.GetUserByEmail(req.Email)
	if err != nil {
		return response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("查询用户失败"),
			response.WithError(err),
		)
	}

	// reset 流程不允许为不存在的邮箱创建账号
	if u == nil && codeType == authmodel.CodeReset {
		return response.NewBusinessError(
			response.WithErrorCode(response.NotFound),
			response.WithErrorMessage("该邮箱未注册"),
		)
	}

	// verified 流程在用户不存在时创建占位用户
	if u == nil {
		u, err = s.repo.CreatePlaceholderUser(req.Email)
		if err != nil {
			return response.NewBusinessError(
				response.WithErrorCode(response.Fail),
				response.WithErrorMessage("创建用户失败"),
				response.WithError(err),
			)
		}
	}

	if u.IsDeleted {
		return response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("该账号已被删除"),
		)
	}

	// 已激活已验证的用户不应再次收到注册验证码
	if codeType == authmodel.CodeVerified && u.IsActive && u.IsVerified {
		return response.NewBusinessError(
			response.WithErrorCode(response.Conflict),
			response.WithErrorMessage("该邮箱已被注册"),
		)
	}

	// reset 仅允许已激活且已验证的用户
	if codeType == authmodel.CodeReset {
		if !u.IsActive {
			return response.NewBusinessError(
				response.WithErrorCode(response.Fail),
				response.WithErrorMessage("该账号未激活"),
			)
		}
		if !u.IsVerified {
			return response.NewBusinessError(
				response.WithErrorCode(response.Fail),
				response.WithErrorMessage("该账号未完成邮箱验证"),
			)
		}
	}

	// 限流: 已有有效验证码时拒绝重复发送
	existing, err := s.repo.GetValidCode(u.ID, codeType)
	if err != nil {
		return response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("查询验证码失败"),
			response.WithError(err),
		)
	}
	if existing != nil {
		return response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("验证码已发送, 请稍后再试"),
		)
	}

	code, err := pkg.GenerateNumericCode(6)
	if err != nil {
		return response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("生成验证码失败"),
			response.WithError(err),
		)
	}

	if _, err := s.repo.CreateCode(u.ID, codeType, code); err != nil {
		return response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("存储验证码失败"),
			response.WithError(err),
		)
	}

	// 邮件走后台任务队列, 不阻塞请求
	taskType := task.EmailVerificationCode
	if codeType == authmodel.CodeReset {
		taskType = task.EmailResetCode
	}
	if err := task.EnqueueEmail(context.Background(), task.EmailTask{
		Type:          taskType,
		To:            req.Email,
		Code:          code,
		ExpireMinutes: CodeExpireMinutes,
	}); err != nil {
		return response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("发送验证码邮件失败"),
			response.WithError(err),
		)
	}

	return nil
}

// Register 注册: 校验验证码后补全占位用户信息
func (s *AuthService) Register(req RegisterRequest) *response.BusinessError {
	if err := s.validateRegisterRequest(req); err != nil {
		return err
	}

	u, err := s.repo.GetUserByEmail(req.Email)
	if err != nil {
		return response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("查询用户失败"),
			response.WithError(err),
		)
	}

	if u == nil {
		return response.NewBusinessError(
			response.WithErrorCode(response.NotFound),
			response.WithErrorMessage("请先获取邮箱验证码"),
		)
	}

	if u.IsDeleted {
		return response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("该账号已被删除"),
		)
	}

	if u.IsActive && u.IsVerified {
		return response.NewBusinessError(
			response.WithErrorCode(response.Conflict),
			response.WithErrorMessage("该邮箱已被注册"),
		)
	}

	code, err := s.repo.ValidateCode(u.ID, req.Code, authmodel.CodeVerified)
	if err != nil {
		return response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("校验验证码失败"),
			response.WithError(err),
		)
	}
	if code == nil {
		return response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("验证码无效或已过期"),
		)
	}

	exists, err := s.repo.UsernameExists(req.Username)
	if err != nil {
		return response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("查询用户名失败"),
			response.WithError(err),
		)
	}
	if exists {
		return response.NewBusinessError(
			response.WithErrorCode(response.Conflict),
			response.WithErrorMessage("用户名已存在"),
		)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("密码加密失败"),
		)
	}

	if err := s.repo.ActivateUser(u, req.Username, string(hashed), code); err != nil {
		return response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("用户创建失败"),
			response.WithError(err),
		)
	}

	// 注册成功即加入订阅者列表
	if err := s.subs.EnsureActive(u.Email); err != nil {
		logrus.WithError(err).Warn("加入订阅者列表失败")
	}

	// 用户列表缓存失效
	if err := cache.DeletePattern(context.Background(), cache.KeyAdminAllUsers+"page=*"); err != nil {
		logrus.WithError(err).Warn("清理用户列表缓存失败")
	}

	return nil
}

// Refresh 刷新令牌轮换
func (s *AuthService) Refresh(refreshToken string) (*TokenPair, *response.BusinessError) {
	claims, err := pkg.ParseAccessToken(refreshToken)
	if err != nil {
		return nil, response.NewBusinessError(
			response.WithErrorCode(response.Unauthorized),
			response.WithErrorMessage("刷新令牌无效或已过期"),
		)
	}

	u, err := s.repo.GetUserByID(claims.UserID)
	if err != nil || u == nil || !u.IsActive || !u.IsVerified || u.IsDeleted {
		return nil, response.NewBusinessError(
			response.WithErrorCode(response.Unauthorized),
			response.WithErrorMessage("用户状态异常"),
		)
	}

	if u.Email != claims.Email {
		return nil, response.NewBusinessError(
			response.WithErrorCode(response.Unauthorized),
			response.WithErrorMessage("令牌与用户不匹配"),
		)
	}

	pair, err := s.sessions.Rotate(u, claims.ID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, response.NewBusinessError(
				response.WithErrorCode(response.NotFound),
				response.WithErrorMessage("刷新令牌不存在或已被撤销"),
			)
		}
		return nil, response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("刷新令牌失败"),
			response.WithError(err),
		)
	}

	return pair, nil
}

// Logout 登出: 撤销所有刷新令牌并拉黑当前访问令牌
func (s *AuthService) Logout(userID uint, accessJti string) *response.BusinessError {
	u, err := s.repo.GetUserByID(userID)
	if err != nil || u == nil || !u.IsActive || !u.IsVerified || u.IsDeleted {
		return response.NewBusinessError(
			response.WithErrorCode(response.Unauthorized),
			response.WithErrorMessage("用户状态异常"),
		)
	}

	if _, err := s.sessions.RevokeAll(userID); err != nil {
		return response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("撤销会话失败"),
			response.WithError(err),
		)
	}

	if accessJti != "" {
		if err := pkg.BlacklistAccessToken(accessJti); err != nil {
			logrus.WithError(err).Warn("访问令牌拉黑失败")
		}
	}

	return nil
}

// ResetPassword 通过邮箱验证码重置密码
func (s *AuthService) ResetPassword(req ResetPasswordRequest) *response.BusinessError {
	if req.NewPassword != req.ConfirmPassword {
		return response.NewBusinessError(
			response.WithErrorCode(response.ParseError),
			response.WithErrorMessage("两次密码输入不一致"),
		)
	}
	if err := validatePasswordStrength(req.NewPassword); err != nil {
		return err
	}

	u, err := s.repo.GetUserByEmail(req.Email)
	if err != nil {
		return response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("查询用户失败"),
			response.WithError(err),
		)
	}
	if u == nil {
		return response.NewBusinessError(
			response.WithErrorCode(response.NotFound),
			response.WithErrorMessage("该邮箱未注册"),
		)
	}
	if u.IsDeleted {
		return response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("该账号已被删除"),
		)
	}
	if !u.IsActive || !u.IsVerified {
		return response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("该账号未完成邮箱验证"),
		)
	}

	// 新密码不能与旧密码相同
	if u.PasswordHash != nil &&
		bcrypt.CompareHashAndPassword([]byte(*u.PasswordHash), []byte(req.NewPassword)) == nil {
		return response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("新密码不能与旧密码相同"),
		)
	}

	code, err := s.repo.ValidateCode(u.ID, req.Code, authmodel.CodeReset)
	if err != nil {
		return response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("校验验证码失败"),
			response.WithError(err),
		)
	}
	if code == nil {
		return response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("验证码无效或已过期"),
		)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("密码加密失败"),
		)
	}

	if err := s.repo.UpdatePassword(u.ID, string(hashed), code); err != nil {
		return response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("更新密码失败"),
			response.WithError(err),
		)
	}

	return nil
}

// ChangePassword 已登录用户修改密码, 不需要验证码
func (s *AuthService) ChangePassword(userID uint, req ChangePasswordRequest) *response.BusinessError {
	if req.NewPassword != req.ConfirmPassword {
		return response.NewBusinessError(
			response.WithErrorCode(response.ParseError),
			response.WithErrorMessage("两次密码输入不一致"),
		)
	}
	if err := validatePasswordStrength(req.NewPassword); err != nil {
		return err
	}

	u, err := s.repo.GetUserByID(userID)
	if err != nil || u == nil {
		return response.NewBusinessError(
			response.WithErrorCode(response.NotFound),
			response.WithErrorMessage("用户不存在"),
		)
	}

	if u.PasswordHash != nil &&
		bcrypt.CompareHashAndPassword([]byte(*u.PasswordHash), []byte(req.NewPassword)) == nil {
		return response.NewBusinessError(
			response.WithErrorCode(response.Conflict),
			response.WithErrorMessage("新密码不能与旧密码相同"),
		)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("密码加密失败"),
		)
	}

	if err := s.repo.UpdatePassword(u.ID, string(hashed), nil); err != nil {
		return response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("更新密码失败"),
			response.WithError(err),
		)
	}

	return nil
}

// validateRegisterRequest 注册参数校验
func (s *AuthService) validateRegisterRequest(req RegisterRequest) *response.BusinessError {
	if len(req.Username) < 3 || len(req.Username) > 30 {
		return response.NewBusinessError(
			response.WithErrorCode(response.ParseError),
			response.WithErrorMessage("用户名长度必须在3-30个字符之间"),
		)
	}
	if !usernameRegex.MatchString(req.Username) {
		return response.NewBusinessError(
			response.WithErrorCode(response.ParseError),
			response.WithErrorMessage("用户名只能包含字母、数字和下划线"),
		)
	}

	if req.ConfirmPassword != req.Password {
		return response.NewBusinessError(
			response.WithErrorCode(response.ParseError),
			response.WithErrorMessage("两次密码输入不一致"),
		)
	}

	return validatePasswordStrength(req.Password)
}

// validatePasswordStrength 密码强度校验
func validatePasswordStrength(password string) *response.BusinessError {
	if len(password) < 8 || len(password) > 100 {
		return response.NewBusinessError(
			response.WithErrorCode(response.ParseError),
			response.WithErrorMessage("密码长度必须在8-100个字符之间"),
		)
	}

	if !upperRegex.MatchString(password) || !lowerRegex.MatchString(password) || !digitRegex.MatchString(password) {
		return response.NewBusinessError(
			response.WithErrorCode(response.ParseError),
			response.WithErrorMessage("密码强度不足，需包含大小写字母、数字"),
		)
	}

	return nil
}
