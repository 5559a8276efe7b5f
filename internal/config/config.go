package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          string
	DBDSN         string
	StoreName     string
	SessionSecret string
	AdminUser     string
	AdminPassword string
	BotToken      string
	BotChatID     string
	LogFile       string
}

func Load() Config {
	// .env is optional; real env vars win either way.
	_ = godotenv.Load()

	cfg := Config{
		Port:          getenv("PORT", "3000"),
		DBDSN:         getenv("DB_DSN", "./data/store.sqlite"),
		StoreName:     getenv("STORE_NAME", "3D_MAKC Fishing"),
		SessionSecret: getenv("SESSION_SECRET", "change_me"),
		AdminUser:     getenv("ADMIN_USER", "admin"),
		AdminPassword: getenv("ADMIN_PASSWORD", "ChangeMeStrong123!"),
		BotToken:      os.Getenv("TELEGRAM_BOT_TOKEN"),
		BotChatID:     os.Getenv("TELEGRAM_CHAT_ID"),
		LogFile:       os.Getenv("LOG_FILE"),
	}
	log.Printf("[config] PORT=%s DB_DSN=%s STORE_NAME=%q telegram=%v",
		cfg.Port, cfg.DBDSN, cfg.StoreName, cfg.BotToken != "" && cfg.BotChatID != "")
	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
