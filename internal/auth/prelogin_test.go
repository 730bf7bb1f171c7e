package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	redis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/par4d15e/blogbackendserver-sub001/internal/database"
	"github.com/par4d15e/blogbackendserver-sub001/internal/pkg"
	pkgdb "github.com/par4d15e/blogbackendserver-sub001/pkg/database"
)

func setupTestRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	database.RedisDB = &pkgdb.RedisClient{
		Client: redis.NewClient(&redis.Options{Addr: mr.Addr()}),
	}
	return mr
}

func newAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r.Group("/api/v1"))
	return r
}

func TestAuthHandler_PreLogin(t *testing.T) {
	setupTestRedis(t)
	r := newAuthRouter()

	body := strings.NewReader(`{"redirect_url":"https://example.com/home"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/prelogin", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Code int `json:"code"`
		Data struct {
			State string `json:"state"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, 100, resp.Code)
	require.NotEmpty(t, resp.Data.State)

	// 签发的 state 能换回回跳地址, OAuth 登录服务依赖这一点
	redirect, err := pkg.GetRedirectByState(resp.Data.State)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/home", redirect)
}

func TestAuthHandler_PreLoginMissingRedirect(t *testing.T) {
	setupTestRedis(t)
	r := newAuthRouter()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/prelogin", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Code int `json:"code"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEqual(t, 100, resp.Code)
}
