package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type DBConfig struct {
	// "postgres" или "sqlite".
	Driver string

	// Путь к файлу для sqlite (":memory:" для тестов).
	Path string

	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	SSLMode         string
	TimeZone        string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifeTime int // минут
}

type ServerConfig struct {
	Addr        string
	IdleTimeout time.Duration

	// Учётка администратора, заводимая при пустой таблице admins.
	AdminLogin    string
	AdminPassword string

	DB DBConfig
}

// ClientConfig — адрес сервера для клиентского процесса
// (пара serverIp/serverPort из конфигурации клиента).
type ClientConfig struct {
	ServerIP   string
	ServerPort int
}

func LoadServerConfig() (*ServerConfig, error) {
	cfg := &ServerConfig{
		Addr:          getEnv("SERVER_ADDR", ":4004"),
		IdleTimeout:   time.Duration(getEnvInt("CONN_IDLE_TIMEOUT_SEC", 0)) * time.Second,
		AdminLogin:    getEnv("ADMIN_LOGIN", "admin"),
		AdminPassword: getEnv("ADMIN_PASSWORD", "admin"),
		DB: DBConfig{
			Driver:          getEnv("DB_DRIVER", "postgres"),
			Path:            getEnv("DB_PATH", "barbershop.db"),
			Host:            getEnv("DB_HOST", "postgres"),
			User:            getEnv("DB_USER", "barbershop"),
			Password:        getEnv("DB_PASSWORD", "barbershop"),
			Name:            getEnv("DB_NAME", "barbershop_db"),
			SSLMode:         getEnv("DB_SSLMODE", "disable"),
			TimeZone:        getEnv("DB_TIMEZONE", "Europe/Moscow"),
			Port:            getEnvInt("DB_PORT", 5432),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifeTime: getEnvInt("DB_CONN_MAX_LIFETIME_MIN", 30),
		},
	}

	// минимальная валидация
	switch cfg.DB.Driver {
	case "postgres":
		if cfg.DB.Host == "" || cfg.DB.User == "" || cfg.DB.Name == "" {
			return nil, fmt.Errorf("invalid DB config: host/user/name must not be empty")
		}
	case "sqlite":
		if cfg.DB.Path == "" {
			return nil, fmt.Errorf("invalid DB config: sqlite path must not be empty")
		}
	default:
		return nil, fmt.Errorf("invalid DB config: unknown driver %q", cfg.DB.Driver)
	}

	return cfg, nil
}

func LoadClientConfig() (*ClientConfig, error) {
	cfg := &ClientConfig{
		ServerIP:   getEnv("SERVER_IP", "127.0.0.1"),
		ServerPort: getEnvInt("SERVER_PORT", 4004),
	}
	if cfg.ServerIP == "" || cfg.ServerPort <= 0 {
		return nil, fmt.Errorf("invalid client config: server ip/port must be set")
	}
	return cfg, nil
}

func (c *ClientConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.ServerIP, c.ServerPort)
}

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}
