package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	Stripe   StripeConfig
	SMTP     SMTPConfig
	Shop     ShopConfig
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  time.Duration
}

func (d DatabaseConfig) ConnectionString() string {
	return "host=" + d.Host +
		" port=" + strconv.Itoa(d.Port) +
		" user=" + d.User +
		" password=" + d.Password +
		" dbname=" + d.Name +
		" sslmode=" + d.SSLMode
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	TTL      time.Duration
}

func (r RedisConfig) Addr() string {
	return r.Host + ":" + strconv.Itoa(r.Port)
}

type KafkaConfig struct {
	Brokers     []string
	OrdersTopic string
}

type StripeConfig struct {
	SecretKey string
	Currency  string
}

// SMTPConfig carries the mail account credentials. Username doubles as the
// From address, matching how the shop mailbox is set up.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
}

// ShopConfig identifies the shop in outgoing emails. OwnerEmail defaults to
// the mail account itself, which is where order notifications go.
type ShopConfig struct {
	Name       string
	OwnerEmail string
}

func Load() *Config {
	emailUser := getEnvString("EMAIL_USER", "")

	return &Config{
		Server: ServerConfig{
			Port:         getEnvInt("SERVER_PORT", 8080),
			ReadTimeout:  time.Duration(getEnvInt("SERVER_READ_TIMEOUT", 30)) * time.Second,
			WriteTimeout: time.Duration(getEnvInt("SERVER_WRITE_TIMEOUT", 30)) * time.Second,
		},
		Database: DatabaseConfig{
			Host:         getEnvString("DB_HOST", "localhost"),
			Port:         getEnvInt("DB_PORT", 5432),
			User:         getEnvString("DB_USER", "boutique"),
			Password:     getEnvString("DB_PASSWORD", "boutique"),
			Name:         getEnvString("DB_NAME", "boutique_orders"),
			SSLMode:      getEnvString("DB_SSLMODE", "disable"),
			MaxOpenConns: getEnvInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns: getEnvInt("DB_MAX_IDLE_CONNS", 5),
			MaxLifetime:  time.Duration(getEnvInt("DB_CONN_MAX_LIFETIME", 300)) * time.Second,
		},
		Redis: RedisConfig{
			Host:     getEnvString("REDIS_HOST", "localhost"),
			Port:     getEnvInt("REDIS_PORT", 6379),
			Password: getEnvString("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
			TTL:      time.Duration(getEnvInt("REDIS_TTL", 300)) * time.Second,
		},
		Kafka: KafkaConfig{
			Brokers:     strings.Split(getEnvString("KAFKA_BROKERS", "localhost:9092"), ","),
			OrdersTopic: getEnvString("KAFKA_ORDERS_TOPIC", "orders.events"),
		},
		Stripe: StripeConfig{
			SecretKey: getEnvString("STRIPE_SECRET_KEY", ""),
			Currency:  getEnvString("STRIPE_CURRENCY", "usd"),
		},
		SMTP: SMTPConfig{
			Host:     getEnvString("SMTP_HOST", "smtp.gmail.com"),
			Port:     getEnvInt("SMTP_PORT", 587),
			Username: emailUser,
			Password: getEnvString("EMAIL_PASS", ""),
		},
		Shop: ShopConfig{
			Name:       getEnvString("SHOP_NAME", "Alison's Chic & Classics"),
			OwnerEmail: getEnvString("SHOP_OWNER_EMAIL", emailUser),
		},
	}
}

func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
