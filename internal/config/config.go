package config

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

type Config struct {
	Env         string        `yaml:"env" env:"APP_ENV" env-default:"local" env-description:"Environment" env-choices:"local,dev,prod"`
	ApiPort     int           `yaml:"api_port" env:"API_PORT" env-default:"8080"`
	ApiHost     string        `yaml:"api_host" env:"API_HOST" env-default:"localhost"`
	HTTPTimeout time.Duration `yaml:"http_timeout" env-default:"10s"`
	CORSOrigin  string        `yaml:"cors_origin" env:"CORS_ORIGIN" env-default:"*"`
	Storage     string        `yaml:"storage" env:"STORAGE" env-default:"postgres"`
	Postgres    `yaml:"postgres"`
	JWT         `yaml:"jwt"`
	Mail        `yaml:"mail"`
	S3          `yaml:"s3"`
}

type Postgres struct {
	Host        string `yaml:"host" env:"POSTGRES_HOST" env-default:"localhost"`
	Port        string `yaml:"port" env:"POSTGRES_PORT" env-default:"5433"`
	User        string `yaml:"user" env:"POSTGRES_USER" env-default:"test"`
	Pass        string `yaml:"pass" env:"POSTGRES_PASSWORD" env-default:"12345"`
	Db          string `yaml:"db" env:"POSTGRES_DB" env-default:"test_db"`
	SSLMode     string `yaml:"sslmode" env-default:"disable"`
	AutoMigrate bool   `yaml:"auto_migrate" env:"POSTGRES_AUTO_MIGRATE" env-default:"true"`
}

// DSN builds the lib/pq connection URL.
func (p Postgres) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		p.User,
		p.Pass,
		p.Host,
		p.Port,
		p.Db,
		p.SSLMode,
	)
}

type JWT struct {
	Secret     string        `yaml:"secret" env:"JWT_SECRET" env-default:"secret42212"`
	SessionTTL time.Duration `yaml:"session_ttl" env-default:"1h"`
	VerifyTTL  time.Duration `yaml:"verify_ttl" env-default:"15m"`
	ResetTTL   time.Duration `yaml:"reset_ttl" env-default:"15m"`
}

type Mail struct {
	Enabled     bool   `yaml:"enabled" env:"MAIL_ENABLED" env-default:"false"`
	Host        string `yaml:"host" env:"MAIL_HOST" env-default:"smtp.gmail.com"`
	Port        int    `yaml:"port" env:"MAIL_PORT" env-default:"587"`
	User        string `yaml:"user" env:"EMAIL_USER"`
	Pass        string `yaml:"pass" env:"EMAIL_PASSWORD"`
	From        string `yaml:"from" env:"MAIL_FROM" env-default:"WealthTracker <no-reply@wealthtracker.local>"`
	FrontendURL string `yaml:"frontend_url" env:"FRONTEND_URL" env-default:"http://localhost:5173"`
}

type S3 struct {
	Enabled    bool          `yaml:"enabled" env:"S3_ENABLED" env-default:"false"`
	Endpoint   string        `yaml:"endpoint" env:"S3_ENDPOINT" env-default:"http://127.0.0.1:9000/"`
	Region     string        `yaml:"region" env:"S3_REGION" env-default:"us-east-1"`
	Bucket     string        `yaml:"bucket" env:"S3_BUCKET" env-default:"statements"`
	AccessKey  string        `yaml:"access_key" env:"S3_ACCESS_KEY"`
	SecretKey  string        `yaml:"secret_key" env:"S3_SECRET_KEY"`
	PresignTTL time.Duration `yaml:"presign_ttl" env-default:"15m"`
}

func MustLoad() *Config {
	path := fetchConfigPath()

	cfg, err := Load(path)
	if err != nil {
		panic(err.Error())
	}

	return cfg
}

// Load reads the YAML file at path and applies environment overrides on top.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", path)
	}

	var cfg Config

	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if cfg.Storage != StoragePostgres && cfg.Storage != StorageMemory {
		return nil, fmt.Errorf("unknown storage %q", cfg.Storage)
	}

	return &cfg, nil
}

func fetchConfigPath() string {
	var res string

	flag.StringVar(&res, "config", "", "path to config file")
	flag.Parse()

	if res == "" {
		res = os.Getenv("CONFIG_PATH")
	}

	return res
}
