package inits

import (
	"account-core/app/server/config"
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

func Config() (*config.Config, error) {
	// 基于环境变量自动映射配置
	cfg := &config.Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("error parsing environment config: %w", err)
	}

	// required 只保证变量存在，签名密钥还需要确认不是空串
	if cfg.Security.SignatureSecretKey == "" {
		return nil, fmt.Errorf("SIGNATURE_SECRET_KEY is empty")
	}

	cfg.System.IsProd = strings.HasPrefix(strings.ToLower(cfg.System.Mode), "p")

	return cfg, nil
}
