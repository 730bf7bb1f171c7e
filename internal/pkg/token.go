package pkg

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"math/big"
)

// GenerateNumericCode 生成指定位数的数字验证码
func GenerateNumericCode(digits int) (string, error) {
	max := big.NewInt(1)
	for i := 0; i < digits; i++ {
		max.Mul(max, big.NewInt(10))
	}

	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", fmt.Errorf("生成验证码失败: %w", err)
	}

	return fmt.Sprintf("%0*d", digits, n), nil
}

// 生成一个随机的 state 字符串, 用于 OAuth2 流程中防止 CSRF 攻击
// 理论上在一定时间内不会有重复的, 有的话只能说运气有点好了. :)
func GenerateState() (string, error) {
	b := make([]byte, 32)
	_, err := rand.Read(b)
	if err != nil {
		return "", err
	}

	return base64.URLEncoding.EncodeToString(b), nil
}
