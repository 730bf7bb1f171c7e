package blog

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

// 博客评论接口先限流再鉴权
func TestCreateCommentRateLimited(t *testing.T) {
	setupTestRedis(t)
	gin.SetMode(gin.TestMode)

	r := gin.New()
	RegisterRoutes(r.Group(""))

	post := func() string {
		body := strings.NewReader(`{"comment":"hello"}`)
		req := httptest.NewRequest(http.MethodPost, "/blogs/id/1/comments", body)
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

	for i := 0; i < 10; i++ {
		assert.Contains(t, post(), "认证令牌")
	}

	assert.Contains(t, post(), "请求过于频繁")
}
