package handlers

import (
	"account-core/app/server/middlewares"
	"account-core/app/server/models"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
)

// currentUser 提取由认证中间件解析好的用户
func (a *App) currentUser(c echo.Context) (*models.User, error) {
	user, ok := c.Get(middlewares.UserContextKey).(*models.User)
	if !ok || user == nil {
		return nil, fmt.Errorf("no resolved user in context")
	}

	return user, nil
}

// requireAdmin 校验管理员权限，在认证之后、任何写操作之前调用
func (a *App) requireAdmin(user *models.User) (error, int) {
	if !user.IsAdmin {
		return fmt.Errorf("requires admin role"), http.StatusForbidden
	}

	return nil, http.StatusOK
}

// requireSelfOrAdmin 校验目标是本人，或者操作者是管理员
func (a *App) requireSelfOrAdmin(user *models.User, targetID uint) (error, int) {
	if user.ID != targetID && !user.IsAdmin {
		return fmt.Errorf("requires self or admin role"), http.StatusForbidden
	}

	return nil, http.StatusOK
}
