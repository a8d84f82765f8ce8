package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Catalog  CatalogConfig
	Redis    RedisConfig
	WhatsApp WhatsAppConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type CatalogConfig struct {
	AppScriptURL string
	SheetsURL    string
	APIKey       string
	CacheTTL     time.Duration // freshness window for the catalog snapshot
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type WhatsAppConfig struct {
	PhoneNumber  string
	BusinessName string
}

func Load() *Config {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	// Set defaults
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("SERVER_ENV", "development")
	viper.SetDefault("CATALOG_CACHE_TTL_MINUTES", 30)
	viper.SetDefault("REDIS_HOST", "localhost")
	viper.SetDefault("REDIS_PORT", "6379")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("WHATSAPP_PHONE", "5491145678900")
	viper.SetDefault("WHATSAPP_BUSINESS_NAME", "San Juan Construye")

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: Could not read config file: %v", err)
	}

	return &Config{
		Server: ServerConfig{
			Port: viper.GetString("SERVER_PORT"),
			Env:  viper.GetString("SERVER_ENV"),
		},
		Catalog: CatalogConfig{
			AppScriptURL: viper.GetString("CATALOG_APP_SCRIPT_URL"),
			SheetsURL:    viper.GetString("CATALOG_SHEETS_URL"),
			APIKey:       viper.GetString("CATALOG_API_KEY"),
			CacheTTL:     time.Duration(viper.GetInt("CATALOG_CACHE_TTL_MINUTES")) * time.Minute,
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		WhatsApp: WhatsAppConfig{
			PhoneNumber:  viper.GetString("WHATSAPP_PHONE"),
			BusinessName: viper.GetString("WHATSAPP_BUSINESS_NAME"),
		},
	}
}
