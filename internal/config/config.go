// Package config предоставляет структуры и функцию для парсинга и загрузки конфига.
package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config общая структура для хранения настроек сервиса.
type Config struct {
	Env                     string `yaml:"env" env:"ENV" env-default:"local"`
	StorageConnectionString string `yaml:"storage_connection_string" env:"STORAGE_CONNECTION_STRING"`
	MigrationsPath          string `yaml:"migrations_path" env:"MIGRATIONS_PATH" env-default:"./migrations"`
	RabbitURL               string `yaml:"rabbit_url" env:"RABBIT_URL"`
	RedisConnection         `yaml:"redis_connection"`
	HTTPServer              `yaml:"http_server"`
	JWTToken                `yaml:"jwttoken"`
	Gateway                 `yaml:"gateway"`
}

// HTTPServer структура для настройки сервера.
type HTTPServer struct {
	AddressHTTP string        `yaml:"addresshttp" env-default:"0.0.0.0:8080"`
	TimeoutHTTP time.Duration `yaml:"timeouthttp" env-default:"5s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

// RedisConnection структура для настройки подключения к redis.
type RedisConnection struct {
	AddressRedis string        `yaml:"addressredis"`
	Password     string        `yaml:"password"`
	User         string        `yaml:"user"`
	DB           int           `yaml:"db"`
	MaxRetries   int           `yaml:"max_retries"`
	DialTimeout  time.Duration `yaml:"dial_timeout"`
	TimeoutRedis time.Duration `yaml:"timeoutredis"`
}

// JWTToken структура для работы с jwt-токеном.
type JWTToken struct {
	JWTSecretKey string        `yaml:"jwt_secret_key" env:"JWT_SECRET_KEY"`
	TokenTTL     time.Duration `yaml:"token_ttl" env-default:"24h"`
}

// Gateway настройки платежного шлюза SSLCommerz: учетные данные магазина,
// адреса API и callback-URL, которые шлюз дергает после оплаты.
type Gateway struct {
	StoreID       string        `yaml:"store_id" env:"SSL_STORE_ID"`
	StorePassword string        `yaml:"store_password" env:"SSL_STORE_PASSWORD"`
	PaymentAPI    string        `yaml:"payment_api" env:"SSL_PAYMENT_API"`
	ValidationAPI string        `yaml:"validation_api" env:"SSL_VALIDATION_API"`
	SuccessURL    string        `yaml:"success_url" env:"SSL_SUCCESS_URL"`
	FailURL       string        `yaml:"fail_url" env:"SSL_FAIL_URL"`
	CancelURL     string        `yaml:"cancel_url" env:"SSL_CANCEL_URL"`
	IPNURL        string        `yaml:"ipn_url" env:"SSL_IPN_URL"`
	Timeout       time.Duration `yaml:"timeout" env-default:"10s"`
}

// MustLoad загружает конфиг из файла, путь к которому задан в CONFIG_PATH.
// Падает, если файл отсутствует или не парсится.
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("file: %s - does not exist", configPath)
	}
	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return &cfg
}
