package config

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type HTTPServer struct {
	Addr string `yaml:"address" env:"HTTP_ADDR" env-default:":8080"`
}

type StoreAPI struct {
	BaseURL string        `yaml:"STORE_API_URL" env:"STORE_API_URL" env-required:"true"`
	Timeout time.Duration `yaml:"STORE_API_TIMEOUT" env:"STORE_API_TIMEOUT" env-default:"10s"`
}

type RedisConnect struct {
	Host     string `yaml:"REDIS_HOST" env:"REDIS_HOST" env-default:"localhost"`
	Port     string `yaml:"REDIS_PORT" env:"REDIS_PORT" env-default:"6379"`
	Username string `yaml:"REDIS_USER" env:"REDIS_USER" env-default:""`
	Password string `yaml:"REDIS_PASSWORD" env:"REDIS_PASSWORD" env-default:""`
	DB       int    `yaml:"REDIS_DB" env:"REDIS_DB" env-default:"0"`
}

type CacheConfig struct {
	DefaultTTL  time.Duration `yaml:"DEFAULT_TTL" env:"CACHE_DEFAULT_TTL" env-default:"5m"`
	ProductTTL  time.Duration `yaml:"PRODUCT_TTL" env:"CACHE_PRODUCT_TTL" env-default:"2m"`
	CategoryTTL time.Duration `yaml:"CATEGORY_TTL" env:"CACHE_CATEGORY_TTL" env-default:"10m"`
}

type PricingConfig struct {
	// TaxRate is the VAT applied on the whole subtotal, Belgian standard
	// rate by default.
	TaxRate string `yaml:"TAX_RATE" env:"TAX_RATE" env-default:"0.21"`
}

type SessionConfig struct {
	TTL             time.Duration `yaml:"TTL" env:"SESSION_TTL" env-default:"30m"`
	CleanupInterval time.Duration `yaml:"CLEANUP_INTERVAL" env:"SESSION_CLEANUP_INTERVAL" env-default:"5m"`
}

type Config struct {
	Env          string `yaml:"env" env:"ENV" env-required:"true"`
	HTTPServer   `yaml:"http_server"`
	StoreAPI     StoreAPI      `yaml:"store_api"`
	RedisConnect RedisConnect  `yaml:"redis"`
	Cache        CacheConfig   `yaml:"cache"`
	Pricing      PricingConfig `yaml:"pricing"`
	Session      SessionConfig `yaml:"session"`
}

func MustLoad() *Config {

	var configPath string

	configPath = os.Getenv("CONFIG_PATH")

	if configPath == "" {

		flags := flag.String("config", "", "gets the config flag value")

		flag.Parse()

		configPath = *flags

		if configPath == "" {
			log.Fatal("Config path is not set")
		}

	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("config file does not exist: %s", configPath)
	}

	var cfg Config

	err := cleanenv.ReadConfig(configPath, &cfg)

	if err != nil {
		log.Fatalf("can not read config file: %s", err.Error())
	}

	return &cfg

}

func (r *RedisConnect) Addr() string {
	return fmt.Sprintf("%s:%s", r.Host, r.Port)
}

func (r *RedisConnect) GetDSN() string {
	if r.Password != "" {
		return fmt.Sprintf("redis://%s:%s@%s:%s/%d", r.Username, r.Password, r.Host, r.Port, r.DB)
	}

	return fmt.Sprintf("redis://%s:%s/%d", r.Host, r.Port, r.DB)
}
