package handlers

import (
	"account-core/app/server/config"
	"account-core/app/server/jwt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	l   *zap.Logger    // 日志
	db  *gorm.DB       // 数据库
	rdb *redis.Client  // Redis
	jwt *jwt.JWT       // JWT ，用于无状态验证
	cfg *config.Config // 启动后只读的配置
}

func NewApp(l *zap.Logger, db *gorm.DB, rdb *redis.Client, j *jwt.JWT, cfg *config.Config) *App {
	return &App{
		l:   l,
		db:  db,
		rdb: rdb,
		jwt: j,
		cfg: cfg,
	}
}
