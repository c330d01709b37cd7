package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config 应用配置
type Config struct {
	// 服务
	ServerPort string

	// 跨域放行的来源，"*" 表示全放行
	CORSAllowedOrigins []string

	// 数据库
	DatabaseDSN string

	// JWT
	JWTSecret string
	JWTTTL    time.Duration
	JWTIssuer string

	// 存储
	StorageProvider string // "local" | "s3"
	StoragePath     string // local 模式的上传目录
	AWSBucket       string
	AWSRegion       string
	AWSAccessKey    string
	AWSSecretKey    string
	CDNDomain       string

	// 回调投递
	WebhookTimeout time.Duration
}

// Load 从环境变量加载配置（支持可选的 config.yaml 覆盖默认值）
func Load() *Config {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("DATABASE_DSN", "host=localhost user=deltahub password=123 dbname=deltahub port=5432 sslmode=disable")
	v.SetDefault("JWT_SECRET", "deltahub-secret-key-change-in-production")
	v.SetDefault("JWT_TTL_MINUTES", 30)
	v.SetDefault("JWT_ISSUER", "deltahub")
	v.SetDefault("STORAGE_PROVIDER", "local")
	v.SetDefault("STORAGE_PATH", "uploads")
	v.SetDefault("WEBHOOK_TIMEOUT_SECONDS", 10)

	// 本地开发可放一份 config.yaml，没有就全走环境变量
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	_ = v.ReadInConfig()

	return &Config{
		ServerPort:         v.GetString("SERVER_PORT"),
		CORSAllowedOrigins: splitOrigins(v.GetString("CORS_ALLOWED_ORIGINS")),
		DatabaseDSN:        v.GetString("DATABASE_DSN"),
		JWTSecret:          v.GetString("JWT_SECRET"),
		JWTTTL:             time.Duration(v.GetInt("JWT_TTL_MINUTES")) * time.Minute,
		JWTIssuer:          v.GetString("JWT_ISSUER"),
		StorageProvider:    v.GetString("STORAGE_PROVIDER"),
		StoragePath:        v.GetString("STORAGE_PATH"),
		AWSBucket:          v.GetString("AWS_BUCKET"),
		AWSRegion:          v.GetString("AWS_REGION"),
		AWSAccessKey:       v.GetString("AWS_ACCESS_KEY_ID"),
		AWSSecretKey:       v.GetString("AWS_SECRET_ACCESS_KEY"),
		CDNDomain:          v.GetString("AWS_CDN_DOMAIN"),
		WebhookTimeout:     time.Duration(v.GetInt("WEBHOOK_TIMEOUT_SECONDS")) * time.Second,
	}
}

// splitOrigins 逗号分隔的来源列表
func splitOrigins(raw string) []string {
	var origins []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
