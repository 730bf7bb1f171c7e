package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAuthService_validateRegisterRequest(t *testing.T) {
	service := &AuthService{}

	tests := []struct {
		name    string
		req     RegisterRequest
		wantErr bool
		errMsg  string
	}{
		{
			name: "有效的注册请求",
			req: RegisterRequest{
				Username:        "testuser",
				Email:           "test@example.com",
				Password:        "Test123456",
				ConfirmPassword: "Test123456",
				Code:            "123456",
			},
			wantErr: false,
		},
		{
			name: "用户名太短",
			req: RegisterRequest{
				Username:        "ab",
				Email:           "test@example.com",
				Password:        "Test123456",
				ConfirmPassword: "Test123456",
			},
			wantErr: true,
			errMsg:  "用户名长度必须在3-30个字符之间",
		},
		{
			name: "用户名太长",
			req: RegisterRequest{
				Username:        "abcdefghijklmnopqrstuvwxyzabcde",
				Email:           "test@example.com",
				Password:        "Test123456",
				ConfirmPassword: "Test123456",
			},
			wantErr: true,
			errMsg:  "用户名长度必须在3-30个字符之间",
		},
		{
			name: "用户名包含非法字符",
			req: RegisterRequest{
				Username:        "test@user",
				Email:           "test@example.com",
				Password:        "Test123456",
				ConfirmPassword: "Test123456",
			},
			wantErr: true,
			errMsg:  "用户名只能包含字母、数字和下划线",
		},
		{
			name: "两次密码不一致",
			req: RegisterRequest{
				Username:        "testuser",
				Email:           "test@example.com",
				Password:        "Test123456",
				ConfirmPassword: "Test654321",
			},
			wantErr: true,
			errMsg:  "两次密码输入不一致",
		},
		{
			name: "密码太短",
			req: RegisterRequest{
				Username:        "testuser",
				Email:           "test@example.com",
				Password:        "Abc123",
				ConfirmPassword: "Abc123",
			},
			wantErr: true,
			errMsg:  "密码长度必须在8-100个字符之间",
		},
		{
			name: "密码缺少大写字母",
			req: RegisterRequest{
				Username:        "testuser",
				Email:           "test@example.com",
				Password:        "test123456",
				ConfirmPassword: "test123456",
			},
			wantErr: true,
			errMsg:  "密码强度不足，需包含大小写字母、数字",
		},
		{
			name: "密码缺少数字",
			req: RegisterRequest{
				Username:        "testuser",
				Email:           "test@example.com",
				Password:        "TestPassword",
				ConfirmPassword: "TestPassword",
			},
			wantErr: true,
			errMsg:  "密码强度不足，需包含大小写字母、数字",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := service.validateRegisterRequest(tt.req)
			if tt.wantErr {
				assert.NotNil(t, err)
				assert.Equal(t, tt.errMsg, err.Msg)
			} else {
				assert.Nil(t, err)
			}
		})
	}
}

func TestValidatePasswordStrength(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"合规密码", "Abcdef123", false},
		{"太短", "Ab1", true},
		{"缺少大写", "abcdef123", true},
		{"缺少小写", "ABCDEF123", true},
		{"缺少数字", "Abcdefghi", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validatePasswordStrength(tt.password)
			if tt.wantErr {
				assert.NotNil(t, err)
			} else {
				assert.Nil(t, err)
			}
		})
	}
}

func TestAccountLoginService_validateRequest(t *testing.T) {
	service := &AccountLoginService{}

	tests := []struct {
		name    string
		req     LoginRequest
		wantErr bool
		errMsg  string
	}{
		{
			name:    "有效请求",
			req:     LoginRequest{Type: "account", Email: "test@example.com", Password: "Test123456"},
			wantErr: false,
		},
		{
			name:    "邮箱为空",
			req:     LoginRequest{Type: "account", Password: "Test123456"},
			wantErr: true,
			errMsg:  "邮箱不能为空",
		},
		{
			name:    "密码为空",
			req:     LoginRequest{Type: "account", Email: "test@example.com"},
			wantErr: true,
			errMsg:  "密码不能为空",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := service.validateRequest(tt.req)
			if tt.wantErr {
				assert.NotNil(t, err)
				assert.Equal(t, tt.errMsg, err.Msg)
			} else {
				assert.Nil(t, err)
			}
		})
	}
}

func TestDoLogin_UnsupportedType(t *testing.T) {
	_, err := DoLogin(LoginRequest{Type: "wechat"})
	assert.NotNil(t, err)
	assert.Equal(t, "不支持的登录类型", err.Msg)
}

func TestLoginServiceRegistry(t *testing.T) {
	// init 阶段应注册全部三种登录方式
	for _, name := range []string{"account", "github", "google"} {
		_, exists := loginServices[name]
		assert.True(t, exists, "登录服务 %s 未注册", name)
	}
}
