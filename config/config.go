package config

import (
	"fmt"
	"log"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds everything the server needs from the environment.
type Config struct {
	AWSAccessKeyID     string `validate:"required_with=AWSSecretAccessKey"`
	AWSSecretAccessKey string `validate:"required_with=AWSAccessKeyID"`
	AWSRegion          string `validate:"required"`
	TableName          string `validate:"required"`
	DynamoDBEndpoint   string // optional, points at a local emulator
	Port               string
}

// Load reads configuration from a .env file (if present) and the process
// environment. Access key and secret may both be empty, in which case the
// SDK default credential chain is used.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment")
	}

	cfg := &Config{
		AWSAccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
		AWSRegion:          getEnv("AWS_REGION", "ap-northeast-1"),
		TableName:          getEnv("TABLE_NAME", "chat_messages"),
		DynamoDBEndpoint:   getEnv("DYNAMODB_ENDPOINT", ""),
		Port:               getEnv("PORT", "8080"),
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
