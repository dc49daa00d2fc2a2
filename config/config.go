package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	DatabaseName      string `mapstructure:"DATABASE_NAME"`
	Env               string `mapstructure:"ENV"`
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr      string `mapstructure:"REDIS_ADDR"`
	RedisPassword  string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB   int    `mapstructure:"REDIS_CACHE_DB"`
	RedisSessionDB int    `mapstructure:"REDIS_SESSION_DB"`
	RedisTaskQueue int    `mapstructure:"REDIS_TASK_QUEUE_DB"`
	SessionTTLMin  int    `mapstructure:"SESSION_TTL_MIN"`

	// Gemini API key for the LLM-backed intent strategy (optional).
	GeminiAPIKey string `mapstructure:"GEMINI_API_KEY"`

	// Room matching score weights. Empirically chosen, kept tunable.
	MatchCapacitySnug     float64 `mapstructure:"MATCH_CAPACITY_SNUG"`
	MatchCapacityRoomy    float64 `mapstructure:"MATCH_CAPACITY_ROOMY"`
	MatchCapacityOversize float64 `mapstructure:"MATCH_CAPACITY_OVERSIZE"`
	MatchEquipmentWeight  float64 `mapstructure:"MATCH_EQUIPMENT_WEIGHT"`
	MatchBaseScore        float64 `mapstructure:"MATCH_BASE_SCORE"`
	MatchPoolTTLSec       int     `mapstructure:"MATCH_POOL_TTL_SEC"`

	// Working hours scanned when searching alternative slots.
	BusinessHourStart int `mapstructure:"BUSINESS_HOUR_START"`
	BusinessHourEnd   int `mapstructure:"BUSINESS_HOUR_END"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_SESSION_DB", 1)
	viper.SetDefault("REDIS_TASK_QUEUE_DB", 2)
	viper.SetDefault("SESSION_TTL_MIN", 30)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "roomly")
	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("GEMINI_API_KEY", "")
	viper.SetDefault("MATCH_CAPACITY_SNUG", 0.6)
	viper.SetDefault("MATCH_CAPACITY_ROOMY", 0.4)
	viper.SetDefault("MATCH_CAPACITY_OVERSIZE", 0.2)
	viper.SetDefault("MATCH_EQUIPMENT_WEIGHT", 0.3)
	viper.SetDefault("MATCH_BASE_SCORE", 0.1)
	viper.SetDefault("MATCH_POOL_TTL_SEC", 30)
	viper.SetDefault("BUSINESS_HOUR_START", 9)
	viper.SetDefault("BUSINESS_HOUR_END", 18)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
