package configuration

import (
	"fmt"
	"os"

	"tubetutor/infrastructure/logger"

	"github.com/spf13/viper"
)

type Config struct {
	App         App         `json:"app"`
	Storage     Storage     `json:"storage"`
	Database    Database    `json:"database"`
	RedisClient RedisClient `json:"redisClient"`
	Captions    Captions    `json:"captions"`
	GenAI       GenAI       `json:"genAI"`
	Cache       Cache       `json:"cache"`
	YouTube     YouTube     `json:"youtube"`
}

type App struct {
	Port        int    `json:"port"`
	TLSEnabled  bool   `json:"tlsEnabled"`
	TLSCertFile string `json:"tlsCertFile"`
	TLSKeyFile  string `json:"tlsKeyFile"`
}

// Storage selects the key-value backend: "sqlite" (default), "redis",
// "postgres" or "memory".
type Storage struct {
	Driver     string `json:"driver"`
	SQLitePath string `json:"sqlitePath"`
}

type Database struct {
	Psql Db `json:"psql"`
}

type Db struct {
	Name     string `json:"name"`
	Host     string `json:"host"`
	Port     string `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
}

type RedisClient struct {
	Host     string `json:"host"`
	Port     string `json:"port"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// Captions configures the primary transcript upstream.
type Captions struct {
	Endpoint string `json:"endpoint"`
	LangCode string `json:"langCode"`
}

// GenAI configures the local model runtime that serves the summarization and
// generative capabilities. An empty host disables both.
type GenAI struct {
	Host  string `json:"host"`
	Model string `json:"model"`
}

type Cache struct {
	TTLDays int `json:"ttlDays"`
}

type YouTube struct {
	APIKey       string `json:"apiKey"`
	ClientID     string `json:"clientId"`
	ClientSecret string `json:"clientSecret"`
	RedirectURI  string `json:"redirectURI"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

var C Config

func init() {
	LoadConfig()
	applyDefaults(&C)
}

func LoadConfig() {
	name := getConfig()
	viper.SetConfigName(name)
	viper.SetConfigType("json")
	viper.AddConfigPath(".")
	viper.AddConfigPath("../")
	viper.AddConfigPath("../../")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			logger.GetLogger().Warn("Config file not found")
		} else {
			logger.GetLogger().WithField("error", err).Error("Error reading config file")
		}
	}

	if err := viper.Unmarshal(&C); err != nil {
		logger.GetLogger().WithField("error", err).Error("Viper unable to decode into struct")
	}
}

func getConfig() string {
	name := "config"
	env := os.Getenv("ENV")
	if env != "" {
		name = fmt.Sprintf("%s-%s", name, env)
	}
	return name
}

func applyDefaults(c *Config) {
	if c.App.Port == 0 {
		c.App.Port = 10010
	}
	if c.Storage.Driver == "" {
		c.Storage.Driver = getEnv("STORAGE_DRIVER", "sqlite")
	}
	if c.Storage.SQLitePath == "" {
		c.Storage.SQLitePath = getEnv("STORAGE_SQLITE_PATH", "tubetutor.db")
	}
	if c.Captions.Endpoint == "" {
		c.Captions.Endpoint = getEnv("CAPTIONS_ENDPOINT", "https://tactiq-apps-prod.tactiq.io/transcript")
	}
	if c.Captions.LangCode == "" {
		c.Captions.LangCode = "en"
	}
	if c.GenAI.Host == "" {
		c.GenAI.Host = os.Getenv("GENAI_HOST")
	}
	if c.GenAI.Model == "" {
		c.GenAI.Model = getEnv("GENAI_MODEL", "gemma3")
	}
	if c.Cache.TTLDays == 0 {
		c.Cache.TTLDays = 7
	}
	if c.RedisClient.Host == "" {
		c.RedisClient.Host = os.Getenv("REDIS_HOST")
	}
	if c.RedisClient.Port == "" {
		c.RedisClient.Port = os.Getenv("REDIS_PORT")
	}
	if c.Database.Psql.Host == "" {
		c.Database.Psql.Host = os.Getenv("DB_HOST")
	}
	if c.Database.Psql.Port == "" {
		c.Database.Psql.Port = os.Getenv("DB_PORT")
	}
	if c.Database.Psql.Name == "" {
		c.Database.Psql.Name = os.Getenv("DB_NAME")
	}
	if c.Database.Psql.User == "" {
		c.Database.Psql.User = os.Getenv("DB_USER")
	}
	if c.Database.Psql.Password == "" {
		c.Database.Psql.Password = os.Getenv("DB_PASSWORD")
	}
	if c.YouTube.APIKey == "" {
		c.YouTube.APIKey = os.Getenv("YOUTUBE_API_KEY")
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
