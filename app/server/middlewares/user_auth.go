package middlewares

import (
	"account-core/app/server/jwt"
	"account-core/app/server/models"
	"account-core/app/server/types"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// UserContextKey 是解析完成的用户在 echo context 中的键
const UserContextKey = "user"

func UserAuth(db *gorm.DB, j *jwt.JWT, l *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rctx := c.Request().Context()

			// 提取 token
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return invalidCredentials(c)
			}

			splits := strings.Split(authHeader, " ")
			if len(splits) != 2 {
				return invalidCredentials(c)
			}

			if strings.ToLower(splits[0]) != "bearer" {
				return invalidCredentials(c)
			}

			// 验证 token
			jwtUser, err := j.ParseUser(splits[1])
			if err != nil {
				// 过期、格式错误、签名不匹配对外统一 401 ，日志里区分
				if errors.Is(err, jwt.ErrTokenExpired) {
					l.Debug("token expired", zap.Error(err))
				} else {
					l.Debug("invalid token", zap.Error(err))
				}
				return invalidCredentials(c)
			}

			// 查询令牌指向的用户
			var user models.User
			if err = db.WithContext(rctx).First(&user, "id = ?", jwtUser.ID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					// 令牌有效但用户不存在，对外与无效令牌不做区分
					l.Debug("token user not found", zap.Uint("id", jwtUser.ID))
					return invalidCredentials(c)
				}
				l.Error("failed to query token user", zap.Uint("id", jwtUser.ID), zap.Error(err))
				return c.JSON(http.StatusInternalServerError, &types.ErrorMessage{
					Message: http.StatusText(http.StatusInternalServerError),
				})
			}

			// 设置 context
			c.Set(UserContextKey, &user)

			// 继续处理
			return next(c)
		}
	}
}

func invalidCredentials(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, &types.ErrorMessage{
		Message: "invalid credentials",
	})
}
