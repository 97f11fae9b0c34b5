package handlers

import (
	"account-core/app/server/types"
	"net/http"

	"github.com/labstack/echo/v4"
)

func (a *App) er(c echo.Context, statusCode int) error {
	return c.JSON(statusCode, &types.ErrorMessage{
		Message: http.StatusText(statusCode),
	})
}

// erMsg 返回带有约定原因字符串的错误，客户端按字符串分支
func (a *App) erMsg(c echo.Context, statusCode int, message string) error {
	return c.JSON(statusCode, &types.ErrorMessage{
		Message: message,
	})
}
