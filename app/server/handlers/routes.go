package handlers

import (
	"account-core/app/server/middlewares"

	"github.com/labstack/echo/v4"
)

// RegisterRoutes 绑定全部路由，受保护的路由挂认证中间件
func (a *App) RegisterRoutes(e *echo.Echo) {
	e.POST("/login", a.AuthLogin)

	auth := middlewares.UserAuth(a.db, a.jwt, a.l)

	e.POST("/reset_password", a.ResetPassword, auth)
	e.PUT("/profile", a.UpdateProfile, auth)
	e.GET("/akg", a.UpdateAkg, auth)
	e.GET("/me", a.UserInfoGetSelf, auth)
	e.GET("/user/:id", a.UserInfoGet, auth)
	e.GET("/all_users", a.UserList, auth)
	e.GET("/bulk_users/:count", a.UserBulkCreate, auth)
	e.POST("/users/:username/block", a.UserBlock, auth)
}
