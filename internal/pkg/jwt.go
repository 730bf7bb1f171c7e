package pkg

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/par4d15e/blogbackendserver-sub001/config"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
)

// Claims JWT 自定义声明
type Claims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     int    `json:"role"`
	jwt.RegisteredClaims
}

// GenerateAccessToken 生成访问令牌（短期有效，用于 API 访问）
// 返回令牌字符串及其 jti, jti 用于登出时拉黑
func GenerateAccessToken(userID uint, username, email string, role int) (string, string, error) {
	expirationTime := time.Now().Add(time.Duration(config.Conf.JWT.AccessExpireMins) * time.Minute)
	jti := uuid.NewString()

	claims := &Claims{
		UserID:   userID,
		Username: username,
		Email:    email,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(config.Conf.JWT.Secret))
	if err != nil {
		return "", "", err
	}

	return signed, jti, nil
}

// GenerateRefreshToken 生成刷新令牌（长期有效, 按会话落库）
// 返回令牌字符串、jti 和过期时间
func GenerateRefreshToken(userID uint, username, email string, role int) (string, string, time.Time, error) {
	expirationTime := time.Now().Add(time.Duration(config.Conf.JWT.RefreshExpireDays) * 24 * time.Hour)
	jti := uuid.NewString()

	claims := &Claims{
		UserID:   userID,
		Username: username,
		Email:    email,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(config.Conf.JWT.Secret))
	if err != nil {
		return "", "", time.Time{}, err
	}

	return signed, jti, expirationTime, nil
}

// ParseAccessToken 解析并验证访问令牌
func ParseAccessToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// 验证签名算法
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(config.Conf.JWT.Secret), nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, ErrInvalidToken
}
