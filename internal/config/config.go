package config

import (
	"flag"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env     string        `yaml:"env" env:"APP_ENV" env-default:"local"`
	HTTP    HTTPConfig    `yaml:"http"`
	Storage StorageConfig `yaml:"storage"`
	Auth    AuthConfig    `yaml:"auth"`
	Calls   CallsConfig   `yaml:"calls"`
	Status  StatusConfig  `yaml:"status"`
	CORS    CORSConfig    `yaml:"cors"`
}

type HTTPConfig struct {
	Address string `yaml:"address" env:"HTTP_ADDRESS" env-default:""`
}

type StorageConfig struct {
	Path string `yaml:"path" env:"STORAGE_PATH" env-default:""`
}

type AuthConfig struct {
	Secret   string        `yaml:"secret" env:"AUTH_SECRET" env-default:""`
	Issuer   string        `yaml:"issuer" env-default:"talkline"`
	TokenTTL time.Duration `yaml:"token_ttl" env-default:"24h"`
}

type CallsConfig struct {
	RingTimeout time.Duration `yaml:"ring_timeout" env-default:"30s"`
}

type StatusConfig struct {
	TTL time.Duration `yaml:"ttl" env-default:"12h"`
}

type CORSConfig struct {
	AllowOrigins []string `yaml:"allow_origins"`
}

func MustLoad() *Config {
	configPath := fetchConfigPath()
	if configPath == "" {
		panic("config path is empty")
	}

	return MustLoadPath(configPath)
}

func MustLoadPath(configPath string) *Config {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}

	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		panic("cannot read config: " + err.Error())
	}

	cfg.setDefaults()

	return &cfg
}

func fetchConfigPath() string {
	var res string

	flag.StringVar(&res, "config", "", "path to config file")
	flag.Parse()

	if res == "" {
		res = os.Getenv("CONFIG_PATH")
	}

	if res == "" {
		res = "config/local.yaml"
	}

	return res
}

func (c *Config) setDefaults() {
	if c.HTTP.Address == "" {
		c.HTTP.Address = ":8080"
	}
	if c.Storage.Path == "" {
		c.Storage.Path = "data/talkline.db"
	}
	if c.Auth.Secret == "" {
		c.Auth.Secret = "dev-secret-change-me"
	}
	if c.Calls.RingTimeout <= 0 {
		c.Calls.RingTimeout = 30 * time.Second
	}
	if c.Status.TTL <= 0 {
		c.Status.TTL = 12 * time.Hour
	}
	if len(c.CORS.AllowOrigins) == 0 {
		c.CORS.AllowOrigins = []string{"http://localhost:3000"}
	}
}
