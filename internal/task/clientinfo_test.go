package task

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsPublicIP(t *testing.T) {
	tests := []struct {
		name string
		ip   string
		want bool
	}{
		{"公网 IPv4", "8.8.8.8", true},
		{"回环地址", "127.0.0.1", false},
		{"内网 10 段", "10.0.0.1", false},
		{"内网 192.168 段", "192.168.1.100", false},
		{"链路本地", "169.254.0.1", false},
		{"未指定", "0.0.0.0", false},
		{"非法输入", "not-an-ip", false},
		{"空字符串", "", false},
		{"公网 IPv6", "2001:4860:4860::8888", true},
		{"IPv6 回环", "::1", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isPublicIP(tt.ip))
		})
	}
}

func TestParseLoc(t *testing.T) {
	lat, lng, ok := parseLoc("39.9042,116.4074")
	require.True(t, ok)
	assert.InDelta(t, 39.9042, lat, 1e-9)
	assert.InDelta(t, 116.4074, lng, 1e-9)

	for _, bad := range []string{"", "39.90", "39.90,abc", "a,b", "1,2,3"} {
		_, _, ok := parseLoc(bad)
		assert.False(t, ok, "应当拒绝: %q", bad)
	}
}

func TestLookupIPInfo(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/8.8.8.8/json", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"city":"Mountain View","loc":"37.4056,-122.0775"}`))
	}))
	defer srv.Close()

	old := ipinfoBase
	ipinfoBase = srv.URL
	defer func() { ipinfoBase = old }()

	info, err := lookupIPInfo("8.8.8.8")
	require.NoError(t, err)
	assert.Equal(t, "Mountain View", info.City)
	assert.Equal(t, "37.4056,-122.0775", info.Loc)
}

func TestEnrichClientInfoSkipsPrivateIP(t *testing.T) {
	// 内网 IP 不触发外部查询, 也不访问数据库
	w := &EmailWorker{}
	err := w.enrichClientInfo(EmailTask{Type: TaskClientInfo, UserID: 1, IPAddress: "192.168.1.5"})
	assert.NoError(t, err)
}

func TestEnrichClientInfoRequiresUserID(t *testing.T) {
	w := &EmailWorker{}
	err := w.enrichClientInfo(EmailTask{Type: TaskClientInfo, IPAddress: "8.8.8.8"})
	assert.Error(t, err)
}
