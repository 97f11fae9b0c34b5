package handlers

import (
	"account-core/app/server/constants"
	"account-core/app/server/models"
	"account-core/app/server/password"
	"account-core/app/server/types"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func (a *App) UpdateProfile(c echo.Context) error {
	// 抓取 user 信息（认证）
	user, err := a.currentUser(c)
	if err != nil {
		a.l.Error("failed to get user", zap.Error(err))
		return a.er(c, http.StatusUnauthorized)
	}

	rctx := c.Request().Context()

	// 绑定请求体
	var req types.ProfileUpdateRequest
	if err = c.Bind(&req); err != nil {
		a.l.Error("failed to bind request", zap.Error(err))
		return a.er(c, http.StatusBadRequest)
	}
	if err = req.Validate(); err != nil {
		return a.erMsg(c, http.StatusUnprocessableEntity, err.Error())
	}

	// 密码修改通道：强制重置状态免校验，自愿修改必须先通过当前密码校验
	newPasswordHash := ""
	clearReset := false
	if req.NewPassword != "" {
		if user.HasPasswordReset {
			clearReset = true
		} else {
			if req.CurrentPassword == "" {
				return a.erMsg(c, http.StatusBadRequest, "current_password_required")
			}

			match, err := password.VerifyContext(rctx, req.CurrentPassword, user.Password)
			if err != nil {
				a.l.Error("failed to check password", zap.Error(err))
				return a.er(c, http.StatusInternalServerError)
			}
			if !match {
				return a.erMsg(c, http.StatusBadRequest, "incorrect_current_password")
			}
		}

		if newPasswordHash, err = password.Hash(req.NewPassword); err != nil {
			a.l.Error("failed to hash password", zap.Error(err))
			return a.er(c, http.StatusInternalServerError)
		}
	}

	// 资料与密码在同一个事务里更新，避免并发读到半更新状态
	var profile models.Profile
	if err := a.db.WithContext(rctx).Transaction(func(tx *gorm.DB) error {
		if newPasswordHash != "" {
			updates := map[string]any{"password": newPasswordHash}
			if clearReset {
				updates["has_password_reset"] = false
			}
			if err := tx.Model(&models.User{}).Where("id = ?", user.ID).Updates(updates).Error; err != nil {
				return err
			}
		}

		// 更新或创建资料
		if err := tx.First(&profile, "user_id = ?", user.ID).Error; err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			profile = models.Profile{UserID: user.ID}
		}

		profile.FirstName = req.FirstName
		profile.LastName = req.LastName
		profile.University = req.University
		profile.Year = req.Year
		profile.Speciality = req.Speciality
		profile.Department = req.Department
		profile.Degree = req.Degree
		profile.Role = req.Role

		return tx.Save(&profile).Error
	}); err != nil {
		a.l.Error("failed to update profile", zap.Uint("id", user.ID), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	a.cacheDel(rctx, fmt.Sprintf(constants.CacheKeyUserSelf, user.ID))

	return c.JSON(http.StatusOK, types.NewProfileResponse(&profile))
}

func (a *App) UpdateAkg(c echo.Context) error {
	// 抓取 user 信息（认证）
	user, err := a.currentUser(c)
	if err != nil {
		a.l.Error("failed to get user", zap.Error(err))
		return a.er(c, http.StatusUnauthorized)
	}

	rctx := c.Request().Context()

	// 幂等：已确认过则不再写库
	if !user.IsAkg {
		if err := a.db.WithContext(rctx).Model(user).Update("is_akg", true).Error; err != nil {
			a.l.Error("failed to update akg flag", zap.Uint("id", user.ID), zap.Error(err))
			return a.er(c, http.StatusInternalServerError)
		}

		a.cacheDel(rctx, fmt.Sprintf(constants.CacheKeyUserSelf, user.ID))
	}

	// 确认标志与资料相互独立：即使没有资料，确认也已经生效
	var profile models.Profile
	if err := a.db.WithContext(rctx).First(&profile, "user_id = ?", user.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return a.erMsg(c, http.StatusNotFound, "User profile not found")
		}
		a.l.Error("failed to get profile", zap.Uint("id", user.ID), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	return c.JSON(http.StatusOK, types.NewProfileResponse(&profile))
}
