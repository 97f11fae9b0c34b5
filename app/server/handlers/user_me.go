package handlers

import (
	"account-core/app/server/constants"
	"account-core/app/server/models"
	"account-core/app/server/types"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func (a *App) UserInfoGetSelf(c echo.Context) error {
	// 抓取 user 信息（认证）
	user, err := a.currentUser(c)
	if err != nil {
		a.l.Error("failed to get user", zap.Error(err))
		return a.er(c, http.StatusUnauthorized)
	}

	rctx := c.Request().Context()

	// 查询缓存
	cacheKey := fmt.Sprintf(constants.CacheKeyUserSelf, user.ID)
	var res types.UserResponse
	if a.cacheGet(rctx, cacheKey, &res) {
		return c.JSON(http.StatusOK, &res)
	}

	// 从数据库中获得带资料的用户
	var full models.User
	if err := a.db.WithContext(rctx).Preload("Profile").First(&full, "id = ?", user.ID).Error; err != nil {
		a.l.Error("failed to get user", zap.Uint("id", user.ID), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	res = types.NewUserResponse(&full)

	a.cacheSet(rctx, cacheKey, &res, constants.CacheExpireUserSelf)

	return c.JSON(http.StatusOK, &res)
}

func (a *App) UserInfoGet(c echo.Context) error {
	// 抓取 user 信息（认证）
	user, err := a.currentUser(c)
	if err != nil {
		a.l.Error("failed to get user", zap.Error(err))
		return a.er(c, http.StatusUnauthorized)
	}

	// 提取目标 ID
	idUint64, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return a.er(c, http.StatusBadRequest)
	}
	id := uint(idUint64)

	// 只允许本人或管理员查看
	if err, statusCode := a.requireSelfOrAdmin(user, id); err != nil {
		a.l.Debug("failed to auth", zap.Error(err))
		return a.er(c, statusCode)
	}

	rctx := c.Request().Context()

	// 从数据库中获得指定的用户
	var target models.User
	if err := a.db.WithContext(rctx).Preload("Profile").First(&target, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return a.er(c, http.StatusNotFound)
		}
		a.l.Error("failed to get user", zap.Uint("id", id), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	res := types.NewUserResponse(&target)

	return c.JSON(http.StatusOK, &res)
}
