package platform

import (
	"os"
)

// Config holds all process-wide settings. It is built once in main from the
// environment (after godotenv has loaded .env) and passed explicitly to the
// components that need it; nothing re-reads the environment afterwards.
type Config struct {
	Port       string
	BaseURL    string
	DBPath     string
	UploadDir  string
	LogDir     string
	JWTSecret  string
	LLMBaseURL string
	LLMAPIKey  string
	LLMModel   string

	SMTPServer   string
	SMTPPort     string
	SMTPEmail    string
	SMTPPassword string
}

// MailConfigured reports whether outbound mail can be sent. When false,
// signup falls back to auto-verifying new accounts.
func (c Config) MailConfigured() bool {
	return c.SMTPEmail != "" && c.SMTPPassword != ""
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// LoadConfig reads the configuration from the environment.
func LoadConfig() Config {
	port := getenv("PORT", "5004")
	return Config{
		Port:       port,
		BaseURL:    getenv("BASE_URL", "http://localhost:"+port),
		DBPath:     getenv("SQLITE_PATH", "safai.db"),
		UploadDir:  getenv("UPLOAD_DIR", "./uploads"),
		LogDir:     getenv("LOG_DIR", "./log"),
		JWTSecret:  getenv("ACCESS_SECRET", "safai-dev-secret"),
		LLMBaseURL: getenv("LLM_BASE_URL", "https://openrouter.ai/api/v1"),
		LLMAPIKey:  os.Getenv("LLM_API_KEY"),
		LLMModel:   getenv("LLM_MODEL", "arcee-ai/trinity-large-preview:free"),

		SMTPServer:   getenv("SMTP_SERVER", "smtp.gmail.com"),
		SMTPPort:     getenv("SMTP_PORT", "587"),
		SMTPEmail:    os.Getenv("SMTP_EMAIL"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
	}
}
