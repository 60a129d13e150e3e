package config

import (
	"os"
	"sync"
)

// AppConfig holds global application configuration
var AppConfig *Config
var once sync.Once

type Config struct {
	AppName        string
	Port           string
	Env            string
	Debug          bool
	MediaURL       string
	WhatsAppNumber string
}

// LoadAppConfig initializes the global AppConfig variable
func LoadAppConfig() {
	once.Do(func() {
		AppConfig = &Config{
			AppName:        envDefault("APP_NAME", "conputodo"),
			Port:           os.Getenv("PORT"),
			Env:            os.Getenv("APP_ENV"),
			Debug:          os.Getenv("DEBUG") == "true",
			MediaURL:       envDefault("MEDIA_URL", "/media"),
			WhatsAppNumber: os.Getenv("WHATSAPP_NUMBER"),
		}
	})
}

func envDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
