package config

import (
	"time"

	"github.com/VinukaThejana/go-utils/logger"
	"github.com/spf13/viper"
)

// Env is structure containing env variables
type Env struct {
	DSN                      string        `mapstructure:"DATABASE_URL" validate:"required"`
	ResendAPIKey             string        `mapstructure:"RESEND_API_KEY" validate:"required"`
	RedisRatelimiterUsername string        `mapstructure:"REDIS_RATELIMITER_USERNAME"`
	RedisRatelimiterPassword string        `mapstructure:"REDIS_RATELIMITER_PASSWORD"`
	RedisRatelimiterHost     string        `mapstructure:"REDIS_RATELIMITER_HOST" validate:"required"`
	RedisSystemURL           string        `mapstructure:"REDIS_SYSTEM_URL" validate:"required,uri"`
	EmailDomain              string        `mapstructure:"EMAIL_DOMAIN" validate:"required,startswith=@"`
	JWTSecret                string        `mapstructure:"JWT_SECRET" validate:"required"`
	DevEnv                   string        `mapstructure:"DEV_ENV" validate:"required,oneof=DEV PROD TEST"`
	Port                     string        `mapstructure:"PORT" validate:"required,numeric"`
	FrontendHostname         string        `mapstructure:"FRONTEND_HOSTNAME" validate:"required,hostname"`
	FrontendURL              string        `mapstructure:"FRONTEND_URL" validate:"required,url"`
	MinioEndpoint            string        `mapstructure:"MINIO_ENDPOINT" validate:"required"`
	MinioAPIKeyID            string        `mapstructure:"MINIO_API_KEY_ID" validate:"required"`
	MinioAPIKeySecret        string        `mapstructure:"MINIO_API_KEY_SECRET" validate:"required"`
	MinioBucket              string        `mapstructure:"MINIO_BUCKET" validate:"required"`
	TokenExpires             time.Duration `mapstructure:"TOKEN_EXPIRED_IN" validate:"required"`
	TokenMaxAge              int           `mapstructure:"TOKEN_MAXAGE" validate:"required,number"`
	RedisRatelimiterPort     int           `mapstructure:"REDIS_RATELIMITER_PORT" validate:"required,number"`
}

// Load is a function that is used to laod the env variables from the file and the enviroment
func (e *Env) Load() {
	viper.AddConfigPath(".")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	err := viper.ReadInConfig()
	if err != nil {
		logger.Error(err)
	}

	err = viper.Unmarshal(&e)
	if err != nil {
		logger.Errorf(err)
	}

	logger.Validatef(e)
}
