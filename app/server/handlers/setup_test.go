package handlers

import (
	"account-core/app/server/config"
	"account-core/app/server/jwt"
	"account-core/app/server/middlewares"
	"account-core/app/server/models"
	"account-core/app/server/password"
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestApp(t *testing.T) *App {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Profile{}))

	j, err := jwt.New("test-secret", time.Hour)
	require.NoError(t, err)

	// 指向一个不存在的 redis ，缓存操作失败时自动退化为直接查库
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})

	cfg := &config.Config{}
	cfg.Security.TokenExpireDays = 30
	cfg.Limits.MaxUsersPerRequest = 100

	return NewApp(zap.NewNop(), db, rdb, j, cfg)
}

func mustCreateUser(t *testing.T, a *App, user models.User, plain string) *models.User {
	t.Helper()

	hash, err := password.Hash(plain)
	require.NoError(t, err)

	user.Password = hash
	require.NoError(t, a.db.Create(&user).Error)

	return &user
}

func testContext(t *testing.T, method, target string, body any) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()

	return echo.New().NewContext(req, rec), rec
}

// withUser 模拟认证中间件已经解析好的用户
func withUser(c echo.Context, user *models.User) {
	c.Set(middlewares.UserContextKey, user)
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, target any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), target))
}

func reloadUser(t *testing.T, a *App, id uint) *models.User {
	t.Helper()

	var user models.User
	require.NoError(t, a.db.First(&user, "id = ?", id).Error)
	return &user
}
