package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port       string
	DbHost     string
	DbPort     string
	DbUser     string
	DbPass     string
	DbName     string
	DbSSLMode  string
	DbMaxConns string

	JWTSecret       string
	AccessTokenTTL  string
	RefreshTokenTTL string

	Log      string
	LogLevel string
	Env      string // dev|prod

	PdftotextPath  string
	ExtractTimeout string
	UploadTmpDir   string
	MaxUploadMB    string

	OpenAIKey   string
	OpenAIModel string
}

// LoadConfig loads .env, reads environment variables and applies defaults.
// It logs nothing so it carries no dependency on the logger package.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load(".env")

	def := func(v, d string) string {
		v = strings.TrimSpace(v)
		if v == "" {
			return d
		}
		return v
	}

	cfg := &Config{
		Port:       def(os.Getenv("PORT"), "8080"),
		DbHost:     os.Getenv("DB_HOST"),
		DbPort:     def(os.Getenv("DB_PORT"), "5432"),
		DbUser:     os.Getenv("DB_USER"),
		DbPass:     os.Getenv("DB_PASSWORD"),
		DbName:     os.Getenv("DB_NAME"),
		DbSSLMode:  def(os.Getenv("DB_SSLMODE"), "disable"),
		DbMaxConns: def(os.Getenv("DB_MAX_CONNS"), "10"),

		JWTSecret:       os.Getenv("JWT_SECRET"),
		AccessTokenTTL:  def(os.Getenv("ACCESS_TOKEN_EXPIRY"), "15m"),
		RefreshTokenTTL: def(os.Getenv("REFRESH_TOKEN_EXPIRY"), "720h"),

		Log:      os.Getenv("LOG"),
		LogLevel: strings.ToLower(def(os.Getenv("LOGLEVEL"), "info")),
		Env:      strings.ToLower(def(os.Getenv("ENV"), "prod")),

		PdftotextPath:  def(os.Getenv("PDFTOTEXT_PATH"), "pdftotext"),
		ExtractTimeout: def(os.Getenv("EXTRACT_TIMEOUT"), "30s"),
		UploadTmpDir:   os.Getenv("UPLOAD_TMP_DIR"),
		MaxUploadMB:    def(os.Getenv("MAX_UPLOAD_MB"), "10"),

		OpenAIKey:   os.Getenv("OPENAI_API_KEY"),
		OpenAIModel: def(os.Getenv("OPENAI_MODEL"), "gpt-4o-mini"),
	}

	return cfg, nil
}

// Validate returns warnings plus a fatal error (when critical).
func (c *Config) Validate() (warnings []string, err error) {
	// Critical: database
	if c.DbHost == "" || c.DbUser == "" || c.DbName == "" {
		return nil, fmt.Errorf("incomplete DB config (DB_HOST/DB_USER/DB_NAME)")
	}

	if strings.TrimSpace(c.JWTSecret) == "" {
		warnings = append(warnings, "JWT_SECRET is empty")
	}

	// AI summaries are optional; the summarize endpoint degrades to 503 without a key
	if c.OpenAIKey == "" {
		warnings = append(warnings, "OPENAI_API_KEY is not set, AI summarization is disabled")
	}

	if c.Port == "" {
		warnings = append(warnings, "PORT is empty, using default 8080")
	}

	return warnings, nil
}

// GetDSN returns the full DSN, password included.
func (c *Config) GetDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DbUser, c.DbPass, c.DbHost, c.DbPort, c.DbName, c.DbSSLMode,
	)
}

// GetDSNSafe returns the DSN without the password, for logs.
func (c *Config) GetDSNSafe() string {
	return fmt.Sprintf(
		"postgres://%s:***@%s:%s/%s?sslmode=%s",
		c.DbUser, c.DbHost, c.DbPort, c.DbName, c.DbSSLMode,
	)
}
