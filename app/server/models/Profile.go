package models

import "gorm.io/gorm"

type Profile struct {
	gorm.Model

	// 基础资料
	FirstName  string `gorm:"column:first_name"` // 名
	LastName   string `gorm:"column:last_name"`  // 姓
	University string `gorm:"column:university"` // 所属学校
	Year       int    `gorm:"column:year"`       // 年份
	Role       string `gorm:"column:role"`       // 角色
	Speciality string `gorm:"column:speciality"` // 专业
	Department string `gorm:"column:department"` // 院系
	Degree     string `gorm:"column:degree"`     // 学位

	// 所属用户
	UserID uint `gorm:"column:user_id;uniqueIndex"` // 每个用户至多一份资料
}
