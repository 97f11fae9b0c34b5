package constants

import "time"

const (
	CacheKeyUserSelf = "account:user:self:%d"
	CacheKeyUserList = "account:user:list"
)

const (
	CacheExpireUserSelf = 1 * time.Minute
	CacheExpireUserList = 1 * time.Minute
)
