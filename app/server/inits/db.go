package inits

import (
	"account-core/app/server/config"
	"account-core/app/server/models"
	"account-core/app/server/password"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func DB(cfg *config.Config) (db *gorm.DB, err error) {
	// 打开连接
	if db, err = gorm.Open(postgres.Open(cfg.System.DBConnectionString), &gorm.Config{}); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// 迁移
	if err = mig(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	// 初始化启动数据
	if err = initData(db, cfg); err != nil {
		return nil, fmt.Errorf("failed to init data into database: %w", err)
	}

	// 返回
	return db, nil
}

func mig(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Profile{},
	)
}

func initData(db *gorm.DB, cfg *config.Config) (err error) {
	// 查询现有记录数量
	var counter int64

	// 初始化用户
	if err = db.Model(&models.User{}).Count(&counter).Error; err != nil {
		return fmt.Errorf("failed to get user count: %w", err)
	} else if counter == 0 { // 没有任何用户，添加初始用户
		// 创建密码
		adminHash, err := password.Hash(cfg.Bootstrap.AdminPassword)
		if err != nil {
			return fmt.Errorf("failed to hash admin password: %w", err)
		}

		userHash, err := password.Hash(cfg.Bootstrap.UserPassword)
		if err != nil {
			return fmt.Errorf("failed to hash user password: %w", err)
		}

		// 插入记录
		if err = db.Create([]*models.User{
			{
				Username: cfg.Bootstrap.AdminUsername,
				Password: adminHash,
				IsAdmin:  true,
				IsActive: true,
				Group:    "case",
			},
			{
				Username: cfg.Bootstrap.UserUsername,
				Password: userHash,
				IsActive: true,
				Group:    "case",
			},
		}).Error; err != nil {
			return fmt.Errorf("failed to create initial users: %w", err)
		}
	}

	// 已有数据或全部导入成功
	return nil
}
