package handlers

import (
	"account-core/app/server/constants"
	"account-core/app/server/password"
	"account-core/app/server/types"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func (a *App) ResetPassword(c echo.Context) error {
	// 抓取 user 信息（认证）
	user, err := a.currentUser(c)
	if err != nil {
		a.l.Error("failed to get user", zap.Error(err))
		return a.er(c, http.StatusUnauthorized)
	}

	rctx := c.Request().Context()

	// 绑定请求体
	var req types.ResetPasswordRequest
	if err = c.Bind(&req); err != nil {
		a.l.Error("failed to bind request", zap.Error(err))
		return a.er(c, http.StatusBadRequest)
	}
	if err = req.Validate(); err != nil {
		return a.erMsg(c, http.StatusUnprocessableEntity, err.Error())
	}

	// 只有处于强制重置状态的用户才能走免校验通道
	if !user.HasPasswordReset {
		return a.erMsg(c, http.StatusBadRequest, "Password has already been reset")
	}

	newHash, err := password.Hash(req.NewPassword)
	if err != nil {
		a.l.Error("failed to hash password", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	// 新哈希与标志位必须在同一个事务里落库
	if err := a.db.WithContext(rctx).Transaction(func(tx *gorm.DB) error {
		return tx.Model(user).Updates(map[string]any{
			"password":           newHash,
			"has_password_reset": false,
		}).Error
	}); err != nil {
		a.l.Error("failed to update password", zap.Uint("id", user.ID), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	a.cacheDel(rctx, fmt.Sprintf(constants.CacheKeyUserSelf, user.ID))

	return c.JSON(http.StatusOK, &types.MessageResponse{
		Msg: "Password reset successfully",
	})
}
