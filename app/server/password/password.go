package password

import (
	"context"

	"github.com/alexedwards/argon2id"
)

// Hash 使用 argon2id 生成密码哈希，盐由算法每次随机产生
func Hash(plain string) (string, error) {
	return argon2id.CreateHash(plain, argon2id.DefaultParams)
}

// Verify 校验明文密码与哈希是否匹配，哈希格式非法时视为不匹配
func Verify(plain string, hash string) bool {
	match, _, err := argon2id.CheckHash(plain, hash)
	return err == nil && match
}

// VerifyContext 在独立的 goroutine 中执行校验，避免哈希计算占用请求协程
func VerifyContext(ctx context.Context, plain string, hash string) (bool, error) {
	resultCh := make(chan bool, 1)
	go func() {
		resultCh <- Verify(plain, hash)
	}()

	select {
	case <-ctx.Done():
		return false, ctx.Err()
	case match := <-resultCh:
		return match, nil
	}
}
