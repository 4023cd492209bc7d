package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Addr          string        `yaml:"addr"`
	JWTSecret     string        `yaml:"jwt_secret"`
	APITimeout    time.Duration `yaml:"timeout"`
	DatabasePath  string        `yaml:"database_path"`
	TokenDuration time.Duration `yaml:"token_duration"`
	LogFile       string        `yaml:"log_file"`
	Email         EmailConfig   `yaml:"email"`
}

// EmailConfig holds the Brevo transactional email settings. An empty APIKey
// puts the service in development mode: OTP codes are returned in API
// responses instead of being mailed.
type EmailConfig struct {
	BaseURL    string        `yaml:"base_url"`
	APIKey     string        `yaml:"api_key"`
	Sender     string        `yaml:"sender"`
	SenderName string        `yaml:"sender_name"`
	Timeout    time.Duration `yaml:"timeout"`
}

func LoadConfig(path string) (*Config, error) {
	apiTimeout := 15 * time.Second
	tokenDuration := 24 * time.Hour

	cfg := &Config{
		Addr:          getEnv("CONNECTPRO_ADDR", ":8080"),
		JWTSecret:     getEnv("CONNECTPRO_JWT_SECRET", "supersecretkey"),
		APITimeout:    apiTimeout,
		DatabasePath:  getEnv("CONNECTPRO_DATABASE_PATH", "connectpro.db"),
		TokenDuration: tokenDuration,
		LogFile:       getEnv("CONNECTPRO_LOG_FILE", ""),
		Email: EmailConfig{
			BaseURL:    getEnv("CONNECTPRO_BREVO_BASE_URL", "https://api.brevo.com"),
			APIKey:     getEnv("CONNECTPRO_BREVO_API_KEY", ""),
			Sender:     getEnv("CONNECTPRO_EMAIL_SENDER", "noreply@connectpro.app"),
			SenderName: "ConnectPro",
			Timeout:    10 * time.Second,
		},
	}
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		dec := yaml.NewDecoder(f)
		if err := dec.Decode(cfg); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return def
}
