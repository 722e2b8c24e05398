package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config содержит все настройки Gift Service
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	JWT      JWTConfig
	Cache    CacheConfig
	Log      LogConfig
}

// ServerConfig - настройки HTTP сервера
type ServerConfig struct {
	Host string
	Port string
}

// DatabaseConfig - настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// RedisConfig - кеш категорий и черный список токенов
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// KafkaConfig - события об изменении товаров. Пустой Brokers отключает отправку
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// JWTConfig - подпись и срок жизни токенов участников
type JWTConfig struct {
	SecretKey           string
	AccessTokenDuration time.Duration
}

type CacheConfig struct {
	CategoriesTTL  time.Duration
	WarmupSchedule string // cron выражение, пустое значение отключает прогрев
}

type LogConfig struct {
	Level        string
	LogstashAddr string
}

// Load загружает конфигурацию из переменных окружения.
// Если рядом лежит .env, его значения подхватываются, но не перекрывают уже заданные переменные
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	accessDuration, err := getEnvDuration("JWT_ACCESS_DURATION", time.Hour)
	if err != nil {
		return nil, err
	}

	categoriesTTL, err := getEnvDuration("CACHE_CATEGORIES_TTL", time.Hour)
	if err != nil {
		return nil, err
	}

	redisDB, err := getEnvInt("REDIS_DB", 0)
	if err != nil {
		return nil, err
	}

	return &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnv("SERVER_PORT", "8080"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "gift_service"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		Kafka: KafkaConfig{
			Brokers: splitList(lookupEnv("KAFKA_BROKERS", "localhost:9092")),
			Topic:   getEnv("KAFKA_TOPIC", "product_events"),
		},
		JWT: JWTConfig{
			SecretKey:           getEnv("JWT_SECRET", "your-secret-key-change-this-in-production"),
			AccessTokenDuration: accessDuration,
		},
		Cache: CacheConfig{
			CategoriesTTL:  categoriesTTL,
			WarmupSchedule: lookupEnv("CACHE_WARMUP_SCHEDULE", "@every 10m"),
		},
		Log: LogConfig{
			Level:        getEnv("LOG_LEVEL", "info"),
			LogstashAddr: os.Getenv("LOGSTASH_ADDR"),
		},
	}, nil
}

// DSN возвращает строку подключения для gorm в формате libpq
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// URL возвращает строку подключения в формате postgres:// для golang-migrate
func (c *DatabaseConfig) URL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     c.Host + ":" + c.Port,
		Path:     c.DBName,
		RawQuery: "sslmode=" + c.SSLMode,
	}
	return u.String()
}

// Address возвращает адрес сервера в формате host:port
func (c *ServerConfig) Address() string {
	return c.Host + ":" + c.Port
}

// Address возвращает адрес Redis в формате host:port
func (c *RedisConfig) Address() string {
	return c.Host + ":" + c.Port
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return i, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

// lookupEnv в отличие от getEnv различает "не задана" и "задана пустой строкой"
func lookupEnv(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return defaultValue
}

func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
