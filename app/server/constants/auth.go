package constants

import "time"

const (
	// 登录失败时的固定延迟，用于增加暴力破解的成本，不随客户端断开取消
	LoginFailDelay = 500 * time.Millisecond

	// 批量创建用户时生成的明文密码长度
	BulkPasswordLength = 12
)
