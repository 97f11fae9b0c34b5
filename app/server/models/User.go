package models

import "gorm.io/gorm"

type User struct {
	gorm.Model

	// 基础信息
	Username string `gorm:"column:username;uniqueIndex"` // 用户名，全局唯一
	IsAdmin  bool   `gorm:"column:is_admin"`             // 是否为管理员：管理员可以管理用户，非管理员只能操作自己
	IsActive bool   `gorm:"column:is_active"`            // 是否为活跃用户，被封禁后置为 false
	Group    string `gorm:"column:group"`                // 分组标签（ case / control ）

	// 登录与授权认证相关
	Password         string `gorm:"column:password"`           // 密码，使用 argon2id 储存
	HasPasswordReset bool   `gorm:"column:has_password_reset"` // 是否必须在下次更新时修改密码
	IsAkg            bool   `gorm:"column:is_akg"`             // 是否已经完成一次性确认

	// 连接模型时使用
	Profile *Profile `gorm:"foreignKey:UserID"` // 用户资料，首次更新时才创建
}
