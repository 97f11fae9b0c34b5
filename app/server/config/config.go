package config

type Config struct {
	System struct {
		IsProd                bool   `env:"-"`                         // 是否为生产环境（由 MODE 解析而来）
		Mode                  string `env:"MODE"`                      // 运行模式，以 p 开头表示生产环境
		Listen                string `env:"LISTEN" envDefault:":1323"` // 监听地址
		DBConnectionString    string `env:"DB_CONN,required"`          // Postgres 数据库的连接字符串
		RedisConnectionString string `env:"REDIS_CONN,required"`       // Redis 数据库的连接字符串
	}
	Security struct {
		SignatureSecretKey string `env:"SIGNATURE_SECRET_KEY,required"`           // 签名密钥，用于签发 JWT ，更新会导致旧有会话失效
		TokenExpireDays    int    `env:"TOKEN_EXPIRE_DAYS" envDefault:"30"`       // 令牌有效期（天）
		LoginRequireActive bool   `env:"LOGIN_REQUIRE_ACTIVE" envDefault:"false"` // 登录时是否拒绝被封禁用户，默认沿用封禁不影响登录的策略
	}
	Bootstrap struct {
		AdminUsername string `env:"ADMIN_USERNAME" envDefault:"lg_admin"`       // 初始管理员用户名
		AdminPassword string `env:"ADMIN_PASSWORD" envDefault:"admin_password"` // 初始管理员密码
		UserUsername  string `env:"USER_USERNAME" envDefault:"user"`            // 初始普通用户用户名
		UserPassword  string `env:"USER_PASSWORD" envDefault:"user_password"`   // 初始普通用户密码
	}
	Limits struct {
		MaxUsersPerRequest int `env:"MAX_USERS_PER_REQUEST" envDefault:"100"` // 单次批量创建用户的上限
	}
}
