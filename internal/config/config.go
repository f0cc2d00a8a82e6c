package config

import (
	"context"
	"fmt"
	"time"

	"github.com/fhuszti/resizer-ms-go/internal/db"
	"github.com/fhuszti/resizer-ms-go/internal/logger"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Settings struct {
	MariaDB db.MariaDbConfig

	ServerPort     int
	MaxConnections int

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioUseSSL    bool
	SessionsBucket string

	RedisAddr     string
	RedisPassword string

	JWTPublicKey string

	MaxUploadSize  int64
	MaxDimension   int
	LossyFormat    string
	LosslessFormat string
	SizeEstimator  string
	URLTTL         time.Duration
	SessionTTL     time.Duration
}

var required = []string{
	"MARIADB_DSN",
	"MARIADB_MAX_OPEN_CONN",
	"MARIADB_MAX_IDLE_CONNS",
	"MARIADB_CONN_MAX_LIFETIME",
	"SERVER_PORT",
	"MINIO_ENDPOINT",
	"MINIO_ACCESS_KEY",
	"MINIO_SECRET_KEY",
	"SESSIONS_BUCKET",
}

// Load reads settings from the environment, with a .env file in the working
// directory as a fallback. Durations (URL_TTL, SESSION_TTL) use Go syntax
// such as "15m"; MARIADB_CONN_MAX_LIFETIME is in seconds.
func Load() (*Settings, error) {
	ctx := context.Background()
	if err := godotenv.Load(".env"); err != nil {
		logger.Debug(ctx, "no .env file found; proceeding with OS environment variables")
	}

	v := viper.New()
	v.AutomaticEnv()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	if err := v.ReadInConfig(); err != nil {
		logger.Debugf(ctx, "could not read .env file: %v", err)
	}

	for _, key := range required {
		if !v.IsSet(key) {
			return nil, fmt.Errorf("%s is required", key)
		}
	}

	v.SetDefault("MINIO_USE_SSL", false)
	v.SetDefault("MAX_UPLOAD_SIZE", 20*1024*1024)
	v.SetDefault("MAX_DIMENSION", 10000)
	v.SetDefault("MAX_CONNECTIONS", 0)
	v.SetDefault("LOSSY_FORMAT", "jpeg")
	v.SetDefault("LOSSLESS_FORMAT", "png")
	v.SetDefault("SIZE_ESTIMATOR", "estimate")
	v.SetDefault("URL_TTL", "15m")
	v.SetDefault("SESSION_TTL", "24h")

	s := &Settings{
		MariaDB: db.MariaDbConfig{
			DSN:             v.GetString("MARIADB_DSN"),
			MaxOpenConns:    v.GetInt("MARIADB_MAX_OPEN_CONN"),
			MaxIdleConns:    v.GetInt("MARIADB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: time.Duration(v.GetInt("MARIADB_CONN_MAX_LIFETIME")) * time.Second,
		},
		ServerPort:     v.GetInt("SERVER_PORT"),
		MaxConnections: v.GetInt("MAX_CONNECTIONS"),
		MinioEndpoint:  v.GetString("MINIO_ENDPOINT"),
		MinioAccessKey: v.GetString("MINIO_ACCESS_KEY"),
		MinioSecretKey: v.GetString("MINIO_SECRET_KEY"),
		MinioUseSSL:    v.GetBool("MINIO_USE_SSL"),
		SessionsBucket: v.GetString("SESSIONS_BUCKET"),
		RedisAddr:      v.GetString("REDIS_ADDR"),
		RedisPassword:  v.GetString("REDIS_PASSWORD"),
		JWTPublicKey:   v.GetString("JWT_PUBLIC_KEY"),
		MaxUploadSize:  v.GetInt64("MAX_UPLOAD_SIZE"),
		MaxDimension:   v.GetInt("MAX_DIMENSION"),
		LossyFormat:    v.GetString("LOSSY_FORMAT"),
		LosslessFormat: v.GetString("LOSSLESS_FORMAT"),
		SizeEstimator:  v.GetString("SIZE_ESTIMATOR"),
		URLTTL:         v.GetDuration("URL_TTL"),
		SessionTTL:     v.GetDuration("SESSION_TTL"),
	}

	if s.ServerPort <= 0 {
		return nil, fmt.Errorf("SERVER_PORT must be a positive port number")
	}
	if s.MaxUploadSize <= 0 {
		return nil, fmt.Errorf("MAX_UPLOAD_SIZE must be positive")
	}
	if s.URLTTL <= 0 || s.SessionTTL <= 0 {
		return nil, fmt.Errorf("URL_TTL and SESSION_TTL must be positive durations")
	}
	return s, nil
}
