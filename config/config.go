package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config regroupe la configuration du serveur et du client CLI.
type Config struct {
	Port           string
	OpenAIAPIKey   string
	OpenAIModel    string
	StorageFile    string
	DemoMode       bool
	AllowedOrigins []string

	LogLevel  string
	LogFormat string

	ServerURL     string
	ClientTimeout time.Duration
}

// Default retourne les valeurs par défaut, sans lire l'environnement.
func Default() *Config {
	return &Config{
		Port:           "9000",
		OpenAIModel:    "gpt-3.5-turbo",
		StorageFile:    "pitches.json",
		AllowedOrigins: []string{"*"},
		LogLevel:       "info",
		LogFormat:      "text",
		ServerURL:      "http://localhost:9000",
		ClientTimeout:  60 * time.Second,
	}
}

// Load charge .env s'il existe puis applique les variables d'environnement.
func Load() *Config {
	if err := godotenv.Load(".env"); err != nil {
		logrus.Debug("Fichier .env non trouvé, utilisation des variables système")
	}
	cfg := Default()
	cfg.applyEnv()
	return cfg
}

func (c *Config) applyEnv() {
	c.Port = getEnv("PORT", c.Port)
	c.OpenAIAPIKey = getEnv("OPENAI_API_KEY", c.OpenAIAPIKey)
	c.OpenAIModel = getEnv("OPENAI_MODEL", c.OpenAIModel)
	c.StorageFile = getEnv("PITCH_STORAGE_FILE", c.StorageFile)
	c.DemoMode = getEnvBool("PITCH_DEMO_MODE", c.DemoMode)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.LogFormat = getEnv("LOG_FORMAT", c.LogFormat)
	c.ServerURL = strings.TrimRight(getEnv("PITCH_SERVER_URL", c.ServerURL), "/")

	if v := os.Getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		if len(origins) > 0 {
			c.AllowedOrigins = origins
		}
	}

	if v := os.Getenv("PITCH_CLIENT_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			c.ClientTimeout = d
		} else {
			logrus.WithField("value", v).Warn("PITCH_CLIENT_TIMEOUT invalide, valeur par défaut conservée")
		}
	}
}

// Addr retourne l'adresse d'écoute du serveur.
func (c *Config) Addr() string {
	return ":" + c.Port
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
