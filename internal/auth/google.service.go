package auth

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/par4d15e/blogbackendserver-sub001/config"
	"github.com/par4d15e/blogbackendserver-sub001/internal/database"
	authmodel "github.com/par4d15e/blogbackendserver-sub001/internal/model/auth"
	"github.com/par4d15e/blogbackendserver-sub001/internal/model/user"
	"github.com/par4d15e/blogbackendserver-sub001/internal/pkg"
	"github.com/par4d15e/blogbackendserver-sub001/internal/subscriber"
	"github.com/par4d15e/blogbackendserver-sub001/pkg/response"
)

type GoogleLoginService struct {
	repo     *AuthRepository
	sessions *SessionRepository
	subs     *subscriber.SubscriberRepository
}

func init() {
	registerLoginService("google", &GoogleLoginService{})
}

func (s *GoogleLoginService) getRepo() *AuthRepository {
	if s.repo == nil {
		s.repo = NewAuthRepository(database.MySQLDB)
	}
	return s.repo
}

func (s *GoogleLoginService) getSessions() *SessionRepository {
	if s.sessions == nil {
		s.sessions = NewSessionRepository(database.MySQLDB)
	}
	return s.sessions
}

func (s *GoogleLoginService) getSubs() *subscriber.SubscriberRepository {
	if s.subs == nil {
		s.subs = subscriber.NewSubscriberRepository(database.MySQLDB)
	}
	return s.subs
}

func (s *GoogleLoginService) Login(req LoginRequest) (LoginResponse, *response.BusinessError) {
	// 1. 检查参数
	if err := s.validateRequest(req); err != nil {
		return LoginResponse{}, err
	}

	// 2. 验证 state 并获取重定向地址
	redirectUrl, err := pkg.GetRedirectByState(req.State)
	if err != nil {
		return LoginResponse{}, response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("无效的 state 或 state 已过期"),
		)
	}

	// 3. 使用 code 换取 Google access token
	accessToken, err := s.getGoogleAccessToken(req.Code)
	if err != nil {
		return LoginResponse{}, response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("获取 Google access token 失败"),
		)
	}

	// 4. 使用 access token 获取 Google 用户信息
	googleUser, err := s.getGoogleUserInfo(accessToken)
	if err != nil {
		return LoginResponse{}, response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("获取 Google 用户信息失败"),
		)
	}

	// 5. 查找或创建用户
	foundUser, err := s.findOrCreateUser(googleUser)
	if err != nil {
		return LoginResponse{}, response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("用户创建或查询失败"),
			response.WithError(err),
		)
	}

	if foundUser.IsDeleted {
		return LoginResponse{}, response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("该账号已被删除"),
		)
	}

	// 6. 签发令牌对
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

	// 8. 删除已使用的 state（防止重复使用）
	pkg.DeleteState(req.State)

	// 9. 返回结果
	return LoginResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		RedirectUrl:  redirectUrl,
	}, nil
}

// validateRequest 参数校验
func (s *GoogleLoginService) validateRequest(req LoginRequest) *response.BusinessError {
	if req.State == "" {
		return response.NewBusinessError(
			response.WithErrorCode(response.ParseError),
			response.WithErrorMessage("state 不能为空"),
		)
	}

	if req.Code == "" {
		return response.NewBusinessError(
			response.WithErrorCode(response.ParseError),
			response.WithErrorMessage("code 不能为空"),
		)
	}

	return nil
}

// GoogleTokenResponse Google token 接口响应结构
type GoogleTokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
	TokenType   string `json:"token_type"`
	Scope       string `json:"scope"`
	IDToken     string `json:"id_token"`
}

// getGoogleAccessToken 使用 code 换取 Google access token
func (s *GoogleLoginService) getGoogleAccessToken(code string) (string, error) {
	data := url.Values{}
	data.Set("client_id", config.Conf.Google.ClientID)
	data.Set("client_secret", config.Conf.Google.ClientSecret)
	data.Set("code", code)
	data.Set("grant_type", "authorization_code")
	data.Set("redirect_uri", config.Conf.Google.RedirectURL)

	resp, err := http.PostForm("https://oauth2.googleapis.com/token", data)
	if err != nil {
		return "", fmt.Errorf("请求 Google access token 失败: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("读取 Google 响应失败: %w", err)
	}

	// Google 返回 JSON 格式
	var tokenResp GoogleTokenResponse
	if err := json.Unmarshal(body, &tokenResp); err != nil {
		return "", fmt.Errorf("解析 Google 响应失败: %w", err)
	}

	if tokenResp.AccessToken == "" {
		return "", fmt.Errorf("未获取到 access token: %s", string(body))
	}

	return tokenResp.AccessToken, nil
}

// GoogleUser Google 用户信息结构
type GoogleUser struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

// getGoogleUserInfo 使用 access token 获取 Google 用户信息
func (s *GoogleLoginService) getGoogleUserInfo(accessToken string) (*GoogleUser, error) {
	req, err := http.NewRequest("GET", "https://www.googleapis.com/oauth2/v2/userinfo", nil)
	if err != nil {
		return nil, fmt.Errorf("创建请求失败: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/json")

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("请求 Google 用户信息失败: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("读取 Google 用户信息失败: %w", err)
	}

	var googleUser GoogleUser
	if err := json.Unmarshal(body, &googleUser); err != nil {
		return nil, fmt.Errorf("解析 Google 用户信息失败: %w", err)
	}

	if googleUser.Email == "" {
		return nil, fmt.Errorf("Google 未返回邮箱")
	}

	return &googleUser, nil
}

// findOrCreateUser 查找或创建用户
func (s *GoogleLoginService) findOrCreateUser(googleUser *GoogleUser) (*user.User, error) {
	repo := s.getRepo()

	// 1. 先查找是否已存在该 Google 用户的绑定关系
	account, err := repo.FindSocialAccount(authmodel.ProviderGoogle, googleUser.ID)
	if err != nil {
		return nil, err
	}
	if account != nil {
		return repo.GetUserByID(account.UserID)
	}

	// 2. 同邮箱的账号已存在时直接绑定, 不重复建号
	existing, err := repo.GetUserByEmail(googleUser.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if err := repo.BindSocialAccount(existing.ID, authmodel.ProviderGoogle, googleUser.ID); err != nil {
			return nil, err
		}
		return existing, nil
	}

	// 3. 创建新用户和绑定关系, 用户名留空等待补全
	created, err := repo.CreateSocialUser(googleUser.Email, nil, authmodel.ProviderGoogle, googleUser.ID, googleUser.Picture)
	if err != nil {
		return nil, err
	}

	subscribeNewUser(s.getSubs(), created.Email)
	return created, nil
}
