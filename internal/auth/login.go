package auth

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/par4d15e/blogbackendserver-sub001/internal/model/user"
	"github.com/par4d15e/blogbackendserver-sub001/internal/subscriber"
	"github.com/par4d15e/blogbackendserver-sub001/internal/task"
	"github.com/par4d15e/blogbackendserver-sub001/pkg/response"
)

type LoginService interface {
	Login(req LoginRequest) (LoginResponse, *response.BusinessError)
}

// provider: loginService
var loginServices = make(map[string]LoginService)

// 在init调用, 之后不再修改
func registerLoginService(name string, service LoginService) {
	loginServices[name] = service
}

// DoLogin 登录入口, 按请求类型分发到具体的登录服务
func DoLogin(req LoginRequest) (LoginResponse, *response.BusinessError) {
	service, exists := loginServices[req.Type]
	if !exists {
		return LoginResponse{}, response.NewBusinessError(
			response.WithErrorCode(response.Fail),
			response.WithErrorMessage("不支持的登录类型"),
		)
	}
	return service.Login(req)
}

// recordFirstLogin 首次登录时记录 IP, 发送欢迎邮件并入队客户端信息补全
// 以 ip_address 是否为空判断是否首次登录
func recordFirstLogin(repo *AuthRepository, u *user.User, ip string) {
	if u.IPAddress != nil || ip == "" {
		return
	}

	if err := repo.UpdateLoginIP(u.ID, ip); err != nil {
		logrus.WithError(err).Warn("记录登录 IP 失败")
		return
	}

	username := u.Email
	if u.Username != nil {
		username = *u.Username
	}
	if err := task.EnqueueEmail(context.Background(), task.EmailTask{
		Type:     task.EmailGreeting,
		To:       u.Email,
		Username: username,
	}); err != nil {
		logrus.WithError(err).Warn("欢迎邮件入队失败")
	}

	// 城市和经纬度由 worker 异步查询补全
	if err := task.EnqueueEmail(context.Background(), task.EmailTask{
		Type:      task.TaskClientInfo,
		UserID:    u.ID,
		IPAddress: ip,
	}); err != nil {
		logrus.WithError(err).Warn("客户端信息任务入队失败")
	}
}

// isUndeliverableEmail GitHub 合成的 noreply 邮箱收不到邮件
func isUndeliverableEmail(email string) bool {
	return strings.HasSuffix(email, "@users.noreply.github.com")
}

// subscribeNewUser 社交登录首次建号后加入订阅者列表
func subscribeNewUser(subs *subscriber.SubscriberRepository, email string) {
	if isUndeliverableEmail(email) {
		return
	}
	if err := subs.EnsureActive(email); err != nil {
		logrus.WithError(err).Warn("加入订阅者列表失败")
	}
}
