package auth

import (
	"github.com/par4d15e/blogbackendserver-sub001/internal/database"
	"github.com/par4d15e/blogbackendserver-sub001/pkg/response"

	"golang.org/x/crypto/bcrypt"
)

type AccountLoginService struct {
	repo     *AuthRepository
	sessions *SessionRepository
}

func init() {
	registerLoginService("account", &AccountLoginService{})
}

// getRepo 延迟初始化, init 时数据库尚未连接
func (s *AccountLoginService) getRepo() *AuthRepository {
	if s.repo == nil {
		s.repo = NewAuthRepository(database.MySQLDB)
	}
	return s.repo
}

func (s *AccountLoginService) getSessions() *SessionRepository {
	if s.sessions == nil {
		s.sessions = NewSessionRepository(database.MySQLDB)
	}
	return s.sessions
}

// 账号密码登录
func (s *AccountLoginService) Login(req LoginRequest) (LoginResponse, *response.BusinessError) {
	// 1. 检查参数
	if err := s.validateRequest(req); err != nil {
		return LoginResponse{}, err
	}

	// 2. 查询用户
	foundUser, err := s.getRepo().GetUserByEmail(req.Email)
	if err != nil {
		return LoginResponse{}, response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("登录失败"),
			response.WithError(err),
		)
	}
	if foundUser == nil || foundUser.IsDeleted {
		return LoginResponse{}, response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("邮箱或密码错误"),
		)
	}

	// 3. 检查账号状态
	if !foundUser.IsActive || !foundUser.IsVerified {
		return LoginResponse{}, response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("该账号未完成注册验证"),
		)
	}

	// 4. 社交登录创建的账号没有密码, 不允许密码登录
	if foundUser.PasswordHash == nil {
		return LoginResponse{}, response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("该账号使用第三方登录注册, 请使用对应方式登录或先重置密码"),
		)
	}

	// 5. 校验密码
	if err := bcrypt.CompareHashAndPassword([]byte(*foundUser.PasswordHash), []byte(req.Password)); err != nil {
		return LoginResponse{}, response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("邮箱或密码错误"),
		)
	}

	// 6. 签发令牌对（超出会话上限时淘汰最旧会话）
	pair, err := s.getSessions().IssueTokenPair(foundUser)
	if err != nil {
		return LoginResponse{}, response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("生成令牌失败"),
			response.WithError(err),
		)
	}

	// 7. 首次登录记录 IP 并发送欢迎邮件
	recordFirstLogin(s.getRepo(), foundUser, req.IPAddress)

	// 8. 返回结果
	return LoginResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, nil
}

// 参数校验
func (s *AccountLoginService) validateRequest(req LoginRequest) *response.BusinessError {
	if req.Email == "" {
		return response.NewBusinessError(
			response.WithErrorCode(response.ParseError),
			response.WithErrorMessage("邮箱不能为空"),
		)
	}

	if req.Password == "" {
		return response.NewBusinessError(
			response.WithErrorCode(response.ParseError),
			response.WithErrorMessage("密码不能为空"),
		)
	}

	return nil
}
