package board

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 留言接口先限流再鉴权: 超过限额后未登录请求也应被限流拦下
func TestCreateCommentRateLimited(t *testing.T) {
	setupTestRedis(t)
	gin.SetMode(gin.TestMode)

	r := gin.New()
	RegisterRoutes(r.Group(""))

	post := func() string {
		body := strings.NewReader(`{"comment":"hello"}`)
		req := httptest.NewRequest(http.MethodPost, "/board/1/comments", body)
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Message string `json:"message"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		return resp.Message
	}

	// 限额内的请求走到鉴权, 因未登录被拒
	for i := 0; i < 10; i++ {
		assert.Contains(t, post(), "认证令牌")
	}

	// 超限后直接被限流
	assert.Contains(t, post(), "请求过于频繁")
}
