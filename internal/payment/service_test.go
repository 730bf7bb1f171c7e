package payment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	paymentmodel "github.com/par4d15e/blogbackendserver-sub001/internal/model/payment"
)

func TestGenerateOrderNumberFormat(t *testing.T) {
	sectionID := uint(3)
	order := generateOrderNumber(42, &sectionID)

	// 前 14 位是时间戳
	require.Greater(t, len(order), 14)
	_, err := time.Parse("20060102150405", order[:14])
	require.NoError(t, err)
	assert.Equal(t, time.Now().Format("20060102"), order[:8])

	// 时间戳后面紧跟用户ID和栏目ID, 末尾 6 位随机后缀
	assert.Equal(t, "423", order[14:len(order)-6])
	suffix := order[len(order)-6:]
	for _, ch := range suffix {
		assert.True(t, (ch >= '0' && ch <= '9') || (ch >= 'A' && ch <= 'F'),
			"随机后缀应为大写十六进制: %s", suffix)
	}
}

func TestGenerateOrderNumberWithoutSection(t *testing.T) {
	order := generateOrderNumber(7, nil)
	// 没有栏目时按 0 占位
	assert.Equal(t, "70", order[14:len(order)-6])
}

func TestGenerateOrderNumberUnique(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		order := generateOrderNumber(1, nil)
		assert.False(t, seen[order])
		seen[order] = true
	}
}

func TestRound2(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{19.999, 20},
		{19.994, 19.99},
		{0, 0},
		{100, 100},
		{7.125, 7.13},
	}

	for _, tc := range cases {
		assert.InDelta(t, tc.want, round2(tc.in), 1e-9)
	}
}

func TestValidateMetadata(t *testing.T) {
	full := map[string]string{
		"user_id":       "1",
		"user_name":     "alice",
		"user_email":    "alice@example.com",
		"project_id":    "2",
		"project_name":  "作品集",
		"project_price": "99.9",
		"tax_name":      "VAT",
		"tax_rate":      "13",
		"tax_amount":    "12.99",
		"final_amount":  "112.89",
		"order_number":  "202608311200001TESTAB",
	}
	assert.NoError(t, validateMetadata(full))

	for _, field := range requiredMetadata {
		broken := map[string]string{}
		for k, v := range full {
			broken[k] = v
		}
		delete(broken, field)

		err := validateMetadata(broken)
		require.Error(t, err)
		assert.Contains(t, err.Error(), field)
	}
}

func TestPaymentTypeRoundTrip(t *testing.T) {
	cases := []struct {
		name string
		want paymentmodel.PaymentType
	}{
		{"card", paymentmodel.TypeCard},
		{"link", paymentmodel.TypeLink},
		{"klarna", paymentmodel.TypeKlarna},
		{"afterpay_clearpay", paymentmodel.TypeAfterpayClearpay},
		{"alipay", paymentmodel.TypeAlipay},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, parsePaymentType(tc.name))
			assert.Equal(t, tc.name, paymentTypeName(tc.want))
		})
	}

	// 未知方式回落到银行卡
	assert.Equal(t, paymentmodel.TypeCard, parsePaymentType("wechat_pay"))
}
