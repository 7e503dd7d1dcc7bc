package config

import "os"

type Config struct {
	Port                   string
	Env                    string
	PostgresConnStr        string
	AWSRegion              string
	CognitoClientID        string
	CognitoUserPoolID      string
	PostBucketName         string
	ProfileImageBucketName string
	CookieDomain           string
}

func Load() *Config {
	return &Config{
		Port:                   getEnv("PORT", "8080"),
		Env:                    getEnv("ENV", "development"),
		PostgresConnStr:        getEnv("POSTGRES_CONN_STR", ""),
		AWSRegion:              getEnv("AWS_REGION", "eu-west-2"),
		CognitoClientID:        getEnv("AWS_COGNITO_CLIENT_ID", ""),
		CognitoUserPoolID:      getEnv("AWS_COGNITO_POOL_ID", ""),
		PostBucketName:         getEnv("POST_BUCKET_NAME", ""),
		ProfileImageBucketName: getEnv("PROFILE_IMAGE_BUCKET_NAME", ""),
		CookieDomain:           getEnv("COOKIE_DOMAIN", ""),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
