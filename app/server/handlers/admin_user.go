package handlers

import (
	"account-core/app/server/constants"
	"account-core/app/server/models"
	"account-core/app/server/password"
	"account-core/app/server/types"
	"account-core/app/server/utils"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func (a *App) UserList(c echo.Context) error {
	// 抓取 user 信息（认证）
	user, err := a.currentUser(c)
	if err != nil {
		a.l.Error("failed to get user", zap.Error(err))
		return a.er(c, http.StatusUnauthorized)
	}
	if err, statusCode := a.requireAdmin(user); err != nil {
		a.l.Debug("failed to auth", zap.Error(err))
		return a.er(c, statusCode)
	}

	rctx := c.Request().Context()

	// 查询缓存
	var res []types.UserResponse
	if a.cacheGet(rctx, constants.CacheKeyUserList, &res) {
		return c.JSON(http.StatusOK, res)
	}

	// 列出所有非管理员用户
	var users []models.User
	if err := a.db.WithContext(rctx).Preload("Profile").Order("id ASC").Find(&users, "is_admin = ?", false).Error; err != nil {
		a.l.Error("failed to get user list", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	res = []types.UserResponse{}
	for i := range users {
		res = append(res, types.NewUserResponse(&users[i]))
	}

	a.cacheSet(rctx, constants.CacheKeyUserList, res, constants.CacheExpireUserList)

	return c.JSON(http.StatusOK, res)
}

func (a *App) UserBulkCreate(c echo.Context) error {
	// 抓取 user 信息（认证）
	user, err := a.currentUser(c)
	if err != nil {
		a.l.Error("failed to get user", zap.Error(err))
		return a.er(c, http.StatusUnauthorized)
	}
	if err, statusCode := a.requireAdmin(user); err != nil {
		a.l.Debug("failed to auth", zap.Error(err))
		return a.er(c, statusCode)
	}

	// 提取数量并检查范围
	count, err := strconv.Atoi(c.Param("count"))
	if err != nil || count <= 0 || count > a.cfg.Limits.MaxUsersPerRequest {
		return a.erMsg(c, http.StatusBadRequest,
			fmt.Sprintf("User count must be between 1 and %d", a.cfg.Limits.MaxUsersPerRequest))
	}

	rctx := c.Request().Context()

	// 取出现有用户名，保证生成的用户名全局唯一
	var existing []string
	if err := a.db.WithContext(rctx).Model(&models.User{}).Pluck("username", &existing).Error; err != nil {
		a.l.Error("failed to list usernames", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	taken := make(map[string]bool, len(existing))
	for _, name := range existing {
		taken[name] = true
	}

	newUsers := make([]types.NewUser, 0, count)

	// 整批用户在同一个事务里创建
	if err := a.db.WithContext(rctx).Transaction(func(tx *gorm.DB) error {
		for i := 0; i < count; i++ {
			username, err := utils.RandomUsername(taken)
			if err != nil {
				return fmt.Errorf("failed to generate username: %w", err)
			}
			taken[username] = true

			plain, err := utils.RandomPassword(constants.BulkPasswordLength)
			if err != nil {
				return fmt.Errorf("failed to generate password: %w", err)
			}

			passwordHash, err := password.Hash(plain)
			if err != nil {
				return fmt.Errorf("failed to hash password: %w", err)
			}

			// 新用户首次更新资料时必须改掉生成的密码
			if err := tx.Create(&models.User{
				Username:         username,
				Password:         passwordHash,
				IsActive:         true,
				HasPasswordReset: true,
				Group:            "case",
			}).Error; err != nil {
				return err
			}

			newUsers = append(newUsers, types.NewUser{
				Username: username,
				Password: plain,
			})
		}
		return nil
	}); err != nil {
		a.l.Error("failed to create bulk users", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	a.cacheDel(rctx, constants.CacheKeyUserList)

	return c.JSON(http.StatusOK, newUsers)
}

func (a *App) UserBlock(c echo.Context) error {
	// 抓取 user 信息（认证）
	user, err := a.currentUser(c)
	if err != nil {
		a.l.Error("failed to get user", zap.Error(err))
		return a.er(c, http.StatusUnauthorized)
	}
	if err, statusCode := a.requireAdmin(user); err != nil {
		a.l.Debug("failed to auth", zap.Error(err))
		return a.er(c, statusCode)
	}

	rctx := c.Request().Context()

	username := c.Param("username")

	// 忽略大小写查找目标用户
	var target models.User
	if err := a.db.WithContext(rctx).First(&target, "LOWER(username) = LOWER(?)", username).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return a.erMsg(c, http.StatusNotFound, "User not found")
		}
		a.l.Error("failed to find user", zap.String("username", username), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	// 管理员账户不允许被封禁
	if target.IsAdmin {
		return a.erMsg(c, http.StatusBadRequest, "Cannot block/unblock an admin user")
	}

	// 翻转活跃状态
	target.IsActive = !target.IsActive
	if err := a.db.WithContext(rctx).Model(&target).Update("is_active", target.IsActive).Error; err != nil {
		a.l.Error("failed to update user", zap.Uint("id", target.ID), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	a.cacheDel(rctx, constants.CacheKeyUserList, fmt.Sprintf(constants.CacheKeyUserSelf, target.ID))

	action := "blocked"
	if target.IsActive {
		action = "unblocked"
	}

	return c.JSON(http.StatusOK, &types.BlockResponse{
		Success: true,
		Message: fmt.Sprintf("User %s %s successfully", username, action),
	})
}
