package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	AppEnv       string `envconfig:"APP_ENV"`
	Port         int    `envconfig:"PORT"`
	SentryDSN    string `envconfig:"SENTRY_DSN"`
	AllowOrigins string `envconfig:"ALLOW_ORIGINS"`

	Store struct {
		Driver string `envconfig:"STORE_DRIVER" default:"redis"`
	}
	Redis struct {
		Addr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
		Password string `envconfig:"REDIS_PASSWORD"`
		DB       int    `envconfig:"REDIS_DB"`
	}
	DynamoDB struct {
		Region        string `envconfig:"DDB_REGION"`
		Endpoint      string `envconfig:"DDB_ENDPOINT"`
		AccessKey     string `envconfig:"DDB_ACCESS_KEY"`
		SecretKey     string `envconfig:"DDB_SECRET_KEY"`
		SessionToken  string `envconfig:"DDB_SESSION_TOKEN"`
		ContactsTable string `envconfig:"DDB_CONTACTS_TABLE"`
	}
}

func LoadConfig() (*Config, error) {
	// load default .env file, ignore the error
	_ = godotenv.Load()

	cfg := new(Config)
	err := envconfig.Process("", cfg)
	if err != nil {
		return nil, fmt.Errorf("load config error: %v", err)
	}

	return cfg, nil
}
