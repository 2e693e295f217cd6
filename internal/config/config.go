package config

import (
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"
)

type Config struct {
	Env              string `yaml:"env" env:"ENV" env-default:"local"`
	ResetPasswordURL string `yaml:"reset_password_url" env:"RESET_PASSWORD_URL" env-default:"http://localhost:3000/api/auth/resetPassword"`
	DB               `yaml:"db"`
	HTTPServer       `yaml:"http_server"`
	JWT              `yaml:"jwt"`
	SMTP             `yaml:"smtp"`
}

type DB struct {
	Driver  string        `yaml:"driver" env:"DB_DRIVER" env-default:"mongo"`
	URI     string        `yaml:"uri" env:"MONGO_URI" env-default:"mongodb://localhost:27017"`
	Name    string        `yaml:"name" env:"MONGO_DB_NAME" env-default:"question_answering"`
	Timeout time.Duration `yaml:"timeout" env:"MONGO_TIMEOUT" env-default:"10s"`
}

type HTTPServer struct {
	Address        string        `yaml:"address" env:"HTTP_ADDRESS" env-required:"true"`
	IdleTimeout    time.Duration `yaml:"idle_timeout" env-default:"60s"`
	ReadTimeout    time.Duration `yaml:"read_timeout" env-default:"10s"`
	WriteTimeout   time.Duration `yaml:"write_timeout" env-default:"10s"`
	AllowedOrigins []string      `yaml:"allowed_origins" env:"CORS_ALLOWED_ORIGINS" env-separator:","`
}

type JWT struct {
	SecretKey string        `yaml:"secret_key" env:"JWT_SECRET_KEY" env-required:"true"`
	TTL       time.Duration `yaml:"ttl" env:"JWT_EXPIRE" env-default:"1h"`
	CookieTTL time.Duration `yaml:"cookie_ttl" env:"JWT_COOKIE_EXPIRE" env-default:"1h"`
	// Also accept "Authorization: Bearer: <token>" when the cookie is absent.
	AllowHeaderToken bool `yaml:"allow_header_token" env:"JWT_ALLOW_HEADER_TOKEN" env-default:"false"`
}

type SMTP struct {
	Host     string `yaml:"host" env:"SMTP_HOST" env-default:"localhost"`
	Port     int    `yaml:"port" env:"SMTP_PORT" env-default:"587"`
	Username string `yaml:"username" env:"SMTP_USERNAME"`
	Password string `yaml:"password" env:"SMTP_PASSWORD"`
	From     string `yaml:"from" env:"SMTP_EMAIL"`
}

// IsDevelopment reports whether the service runs in a development environment.
// Cookies are issued without the Secure flag there.
func (c *Config) IsDevelopment() bool {
	return c.Env == EnvLocal || c.Env == EnvDev
}

func MustLoadConfig(configPath string) *Config {
	if _, err := os.Stat(configPath); err != nil {
		panic("config file not found")
	}

	config, err := loadConfig(configPath)
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}

	return config
}

func loadConfig(path string) (*Config, error) {
	var config Config

	if err := cleanenv.ReadConfig(path, &config); err != nil {
		return nil, err
	}

	switch config.Env {
	case EnvLocal, EnvDev, EnvProd:
	default:
		return nil, fmt.Errorf("unknown env %q", config.Env)
	}

	switch config.DB.Driver {
	case "mongo", "memory":
	default:
		return nil, fmt.Errorf("unknown db driver %q", config.DB.Driver)
	}

	return &config, nil
}
