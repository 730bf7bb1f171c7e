package config

import (
	"time"

	"github.com/par4d15e/blogbackendserver-sub001/pkg/email"
)

// AppConfig 应用配置结构
type AppConfig struct {
	App      AppInfoConfig     `koanf:"app"`
	Server   ServerConfig      `koanf:"server"`
	Database DatabaseConfig    `koanf:"database"`
	Redis    RedisConfig       `koanf:"redis"`
	Log      LogConfig         `koanf:"log"`
	JWT      JWTConfig         `koanf:"jwt"`
	Smtp     email.Config      `koanf:"smtp"`
	Github   GithubOAuthConfig `koanf:"github"`
	Google   GoogleOAuthConfig `koanf:"google"`
	Stripe   StripeConfig      `koanf:"stripe"`
	Storage  StorageConfig     `koanf:"storage"`
}

// AppInfoConfig 站点信息
type AppInfoConfig struct {
	Name        string `koanf:"name"`         // 站点名称，用于邮件署名
	Domain      string `koanf:"domain"`       // 后端域名
	FrontendURL string `koanf:"frontend_url"` // 前端地址，OAuth 回调跳转用
	AdminEmail  string `koanf:"admin_email"`  // 管理员通知邮箱
}

type ServerConfig struct {
	Host         string        `koanf:"host"`
	Port         int           `koanf:"port"`
	Mode         string        `koanf:"mode"` // debug, release
	ReadTimeout  time.Duration `koanf:"read_timeout"`
	WriteTimeout time.Duration `koanf:"write_timeout"`
}

type DatabaseConfig struct {
	Host         string `koanf:"host"`
	Port         int    `koanf:"port"`
	Username     string `koanf:"username"`
	Password     string `koanf:"password"`
	Database     string `koanf:"database"`
	Charset      string `koanf:"charset"`
	LogLevel     string `koanf:"log_level"` // 数据库日志级别
	MaxOpenConns int    `koanf:"max_open_conns"`
	MaxIdleConns int    `koanf:"max_idle_conns"`
	MaxLifetime  int    `koanf:"max_lifetime"` // 秒
}

type RedisConfig struct {
	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
	Password string `koanf:"password"`
	DB       int    `koanf:"db"`
	PoolSize int    `koanf:"pool_size"`
}

type LogConfig struct {
	Level  string `koanf:"level"`  // debug, info, warn, error
	Format string `koanf:"format"` // json, text
	Output string `koanf:"output"` // stdout, file
	Path   string `koanf:"path"`   // 日志文件路径
}

type JWTConfig struct {
	Secret            string `koanf:"secret"`
	AccessExpireMins  int    `koanf:"access_expire_mins"`  // 分钟
	RefreshExpireDays int    `koanf:"refresh_expire_days"` // 天
	MaxSessions       int    `koanf:"max_sessions"`        // 单用户最大并发会话数
}

type GithubOAuthConfig struct {
	ClientID     string `koanf:"id"`
	ClientSecret string `koanf:"secret"`
	RedirectURL  string `koanf:"redirect_url"`
}

type GoogleOAuthConfig struct {
	ClientID     string `koanf:"id"`
	ClientSecret string `koanf:"secret"`
	RedirectURL  string `koanf:"redirect_url"`
}

type StripeConfig struct {
	SecretKey      string `koanf:"secret_key"`
	WebhookSecret  string `koanf:"webhook_secret"`
	Currency       string `koanf:"currency"`        // 默认 usd
	TaxRatePercent int    `koanf:"tax_rate_percent"`
}

type StorageConfig struct {
	Endpoint  string `koanf:"endpoint"`
	AccessKey string `koanf:"access_key"`
	SecretKey string `koanf:"secret_key"`
	Bucket    string `koanf:"bucket"`
	UseSSL    bool   `koanf:"use_ssl"`
	PublicURL string `koanf:"public_url"` // 对外访问前缀
}
