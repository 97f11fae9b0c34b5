package handlers

import (
	"account-core/app/server/constants"
	"account-core/app/server/models"
	"account-core/app/server/password"
	"account-core/app/server/types"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func (a *App) AuthLogin(c echo.Context) error {
	rctx := c.Request().Context()

	// 绑定请求体
	var req types.LoginRequest
	if err := c.Bind(&req); err != nil {
		a.l.Error("failed to bind json body", zap.Error(err))
		return a.er(c, http.StatusBadRequest)
	}
	if err := req.Validate(); err != nil {
		return a.erMsg(c, http.StatusUnprocessableEntity, err.Error())
	}

	// 按用户名精确匹配
	var user models.User
	found := true
	if err := a.db.WithContext(rctx).First(&user, "username = ?", req.Username).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			found = false
		} else {
			a.l.Error("failed to find user", zap.Error(err))
			return a.er(c, http.StatusInternalServerError)
		}
	}

	// 校验密码，哈希计算放在独立协程中执行
	match := false
	if found {
		var err error
		if match, err = password.VerifyContext(rctx, req.Password, user.Password); err != nil {
			a.l.Error("failed to check password", zap.Error(err))
			return a.er(c, http.StatusInternalServerError)
		}
	}

	// 可选策略：拒绝被封禁用户登录，响应与密码错误保持一致，避免泄露封禁状态
	if match && a.cfg.Security.LoginRequireActive && !user.IsActive {
		match = false
	}

	if !match {
		// 固定延迟，不区分用户不存在与密码错误
		time.Sleep(constants.LoginFailDelay)
		return a.erMsg(c, http.StatusUnauthorized, "invalid username or password")
	}

	// 签出 JWT
	token, err := a.jwt.SignToken(user.ID, nil)
	if err != nil {
		a.l.Error("failed to sign token", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	// 返回令牌与客户端引导需要的标志位
	return c.JSON(http.StatusOK, &types.TokenResponse{
		AccessToken:      token,
		TokenType:        "bearer",
		Username:         user.Username,
		IsAdmin:          user.IsAdmin,
		IsView:           false,
		HasPasswordReset: user.HasPasswordReset,
		IsAkg:            user.IsAkg,
	})
}
