package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port           string        `env:"PORT,            default=8080"`
	Env            string        `env:"ENV,             default=development"`
	JWTSecret      string        `env:"JWT_SECRET"`
	TokenTTL       time.Duration `env:"TOKEN_TTL,       default=168h"`
	LogLevel       string        `env:"LOG_LEVEL,       default=info"`
	AllowedOrigins []string      `env:"ALLOWED_ORIGINS, default=http://localhost:5173"`

	Mongo      MongoConfig
	Redis      RedisConfig
	Cloudinary CloudinaryConfig
	Gemini     GeminiConfig
	Demo       DemoConfig
	RateLimit  RateLimitConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=nirmaan_hetu"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type CloudinaryConfig struct {
	CloudName string `env:"CLOUDINARY_CLOUD_NAME"`
	APIKey    string `env:"CLOUDINARY_API_KEY"`
	APISecret string `env:"CLOUDINARY_API_SECRET"`
}

func (c CloudinaryConfig) Configured() bool {
	return c.CloudName != "" && c.APIKey != "" && c.APISecret != ""
}

type GeminiConfig struct {
	APIKey string `env:"GEMINI_API_KEY"`
	Model  string `env:"GEMINI_MODEL, default=gemini-1.5-flash"`
}

// DemoConfig names the seeded accounts behind POST /auth/demo-login.
type DemoConfig struct {
	OwnerEmail   string `env:"DEMO_OWNER_EMAIL,   default=demo.owner@nirmaanhetu.in"`
	BuilderEmail string `env:"DEMO_BUILDER_EMAIL, default=demo.builder@nirmaanhetu.in"`
}

type RateLimitConfig struct {
	// AuthPerMinute caps register/login/demo-login calls per client IP.
	AuthPerMinute int `env:"RATE_LIMIT_AUTH,      default=20"`
	// AssistantPerMinute caps assistant messages per client IP.
	AssistantPerMinute int `env:"RATE_LIMIT_ASSISTANT, default=30"`
}

func (c *Config) IsProduction() bool { return c.Env == "production" }

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
