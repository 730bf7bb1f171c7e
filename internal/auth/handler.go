package auth

import (
	"github.com/gin-gonic/gin"

	"github.com/par4d15e/blogbackendserver-sub001/config"
	"github.com/par4d15e/blogbackendserver-sub001/internal/dto"
	"github.com/par4d15e/blogbackendserver-sub001/internal/middleware"
	"github.com/par4d15e/blogbackendserver-sub001/internal/pkg"
	"github.com/par4d15e/blogbackendserver-sub001/pkg/response"
)

type AuthHandler struct {
	service *AuthService
}

// setTokenCookies 登录态写入 HttpOnly Cookie
func setTokenCookies(c *gin.Context, accessToken, refreshToken string) {
	accessMaxAge := config.Conf.JWT.AccessExpireMins * 60
	refreshMaxAge := config.Conf.JWT.RefreshExpireDays * 24 * 3600

	if accessToken != "" {
		c.SetCookie("access_token", accessToken, accessMaxAge, "/", "", false, true)
	}
	if refreshToken != "" {
		c.SetCookie("refresh_token", refreshToken, refreshMaxAge, "/", "", false, true)
	}
}

// clearTokenCookies 登出时清除 Cookie
func clearTokenCookies(c *gin.Context) {
	c.SetCookie("access_token", "", -1, "/", "", false, true)
	c.SetCookie("refresh_token", "", -1, "/", "", false, true)
}

// SendCode 发送邮箱验证码
// @Summary 发送邮箱验证码
// @Description 发送注册验证码或重置密码验证码, 同类型验证码有效期内不可重复发送
// @Tags auth
// @Accept json
// @Produce json
// @Param request body SendCodeRequest true "验证码请求"
// @Success 200 {object} response.Response
// @Router /auth/code [post]
func (h *AuthHandler) SendCode(c *gin.Context) {
	// 解析参数
	var req SendCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.ErrorResponse(c, response.NewBusinessError(
			response.WithErrorCode(response.ParseError),
			response.WithErrorMessage("请检查参数"),
		))
		return
	}

	if err := h.service.SendCode(req); err != nil {
		dto.ErrorResponse(c, err)
		return
	}

	dto.SuccessResponse(c, gin.H{"message": "验证码已发送"})
}

// Register 注册
// @Summary 用户注册
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "注册请求"
// @Success 200 {object} response.Response
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.ErrorResponse(c, response.NewBusinessError(
			response.WithErrorCode(response.ParseError),
			response.WithErrorMessage("请检查参数"),
		))
		return
	}

	if err := h.service.Register(req); err != nil {
		dto.ErrorResponse(c, err)
		return
	}

	dto.SuccessResponse(c, gin.H{"message": "注册成功"})
}

// PreLogin OAuth 登录前置
// @Summary 获取 OAuth state
// @Description 登记回跳地址并签发一次性 state, 前端携带 state 跳转第三方授权页
// @Tags auth
// @Accept json
// @Produce json
// @Param request body PreLoginRequest true "前置登录请求"
// @Success 200 {object} response.Response{data=PreLoginResponse}
// @Router /auth/prelogin [post]
func (h *AuthHandler) PreLogin(c *gin.Context) {
	var req PreLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.ErrorResponse(c, response.NewBusinessError(
			response.WithErrorCode(response.ParseError),
			response.WithErrorMessage("请检查参数"),
		))
		return
	}

	state, err := pkg.GenerateState()
	if err != nil {
		dto.ErrorResponse(c, response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("生成 state 失败"),
		))
		return
	}

	if err := pkg.SaveStateWithRedirect(state, req.RedirectUrl); err != nil {
		dto.ErrorResponse(c, response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("保存 state 失败"),
		))
		return
	}

	dto.SuccessResponse(c, PreLoginResponse{State: state})
}

// Login 登录
// @Summary 用户登录
// @Description 按 type 分发到账号密码 / GitHub / Google 登录
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "登录请求"
// @Success 200 {object} response.Response
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.ErrorResponse(c, response.NewBusinessError(
			response.WithErrorCode(response.ParseError),
			response.WithErrorMessage("请检查参数"),
		))
		return
	}

	req.IPAddress = c.ClientIP()

	result, err := DoLogin(req)
	if err != nil {
		dto.ErrorResponse(c, err)
		return
	}

	setTokenCookies(c, result.AccessToken, result.RefreshToken)
	dto.SuccessResponse(c, gin.H{
		"redirect_url": result.RedirectUrl,
	})
}

// Refresh 刷新令牌
// @Summary 刷新访问令牌
// @Description 消费 refresh_token cookie, 轮换出新的令牌对
// @Tags auth
// @Produce json
// @Success 200 {object} response.Response
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	refreshToken, err := c.Cookie("refresh_token")
	if err != nil || refreshToken == "" {
		dto.ErrorResponse(c, response.NewBusinessError(
			response.WithErrorCode(response.Unauthorized),
			response.WithErrorMessage("缺少刷新令牌"),
		))
		return
	}

	pair, bizErr := h.service.Refresh(refreshToken)
	if bizErr != nil {
		clearTokenCookies(c)
		dto.ErrorResponse(c, bizErr)
		return
	}

	setTokenCookies(c, pair.AccessToken, pair.RefreshToken)
	dto.SuccessResponse(c, gin.H{"message": "刷新成功"})
}

// Logout 登出
// @Summary 登出
// @Description 撤销该用户的全部刷新令牌并拉黑当前访问令牌
// @Tags auth
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} response.Response
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		dto.ErrorResponse(c, response.NewBusinessError(
			response.WithErrorCode(response.Unauthorized),
			response.WithErrorMessage("未登录"),
		))
		return
	}

	jti := c.GetString("token_jti")
	if err := h.service.Logout(userID, jti); err != nil {
		dto.ErrorResponse(c, err)
		return
	}

	clearTokenCookies(c)
	dto.SuccessResponse(c, gin.H{"message": "已登出"})
}

// ResetPassword 重置密码
// @Summary 通过邮箱验证码重置密码
// @Tags auth
// @Accept json
// @Produce json
// @Param request body ResetPasswordRequest true "重置密码请求"
// @Success 200 {object} response.Response
// @Router /auth/password/reset [post]
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.ErrorResponse(c, response.NewBusinessError(
			response.WithErrorCode(response.ParseError),
			response.WithErrorMessage("请检查参数"),
		))
		return
	}

	if err := h.service.ResetPassword(req); err != nil {
		dto.ErrorResponse(c, err)
		return
	}

	dto.SuccessResponse(c, gin.H{"message": "密码已重置"})
}

// ChangePassword 修改密码
// @Summary 已登录用户修改密码
// @Tags auth
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body ChangePasswordRequest true "修改密码请求"
// @Success 200 {object} response.Response
// @Router /auth/password [put]
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		dto.ErrorResponse(c, response.NewBusinessError(
			response.WithErrorCode(response.Unauthorized),
			response.WithErrorMessage("未登录"),
		))
		return
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.ErrorResponse(c, response.NewBusinessError(
			response.WithErrorCode(response.ParseError),
			response.WithErrorMessage("请检查参数"),
		))
		return
	}

	if err := h.service.ChangePassword(userID, req); err != nil {
		dto.ErrorResponse(c, err)
		return
	}

	dto.SuccessResponse(c, gin.H{"message": "密码已修改"})
}
