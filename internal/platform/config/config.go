package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config agrupa toda la configuración del servicio. Se puede construir en
// código, cargar desde un YAML con Load(), o completar desde env con
// FromEnv(); las env vars pisan lo que venga del archivo.
type Config struct {
	// Addr es la dirección de escucha HTTP (default ":8080").
	Addr string `yaml:"addr"`

	// DatabaseDSN es la cadena de conexión a Postgres. Vacía => repos in-memory.
	DatabaseDSN string `yaml:"database_dsn"`

	// UploadsDir es el directorio raíz para archivos subidos (default "uploads").
	UploadsDir string `yaml:"uploads_dir"`

	// PortalBaseURL es la base de las URLs únicas que reciben los titulares
	// por correo (ej: "https://portal.example.org").
	PortalBaseURL string `yaml:"portal_base_url"`

	// AuthBaseURL y AuthAPIKey configuran el verificador de tokens de staff.
	// Vacíos => modo dev (header X-Debug-User-ID).
	AuthBaseURL string `yaml:"auth_base_url"`
	AuthAPIKey  string `yaml:"auth_api_key"`

	// SMTP configura el mailer. Host vacío => mailer noop (solo loguea).
	SMTP SMTPConfig `yaml:"smtp"`

	LogLevel  string `yaml:"log_level"`  // debug|info|warn|error
	LogFormat string `yaml:"log_format"` // text|json
	AppName   string `yaml:"app_name"`
}

type SMTPConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
}

// Load lee un YAML de configuración. Archivo inexistente no es error:
// devuelve defaults para que FromEnv() complete.
func Load(path string) (Config, error) {
	cfg := defaults()

	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}

	return cfg.normalized(), nil
}

// FromEnv pisa la configuración con las env vars presentes.
func (c Config) FromEnv() Config {
	if v := os.Getenv("PORT"); v != "" {
		c.Addr = ":" + v
	}
	if v := os.Getenv("DB_DSN"); v != "" {
		c.DatabaseDSN = v
	}
	if v := os.Getenv("UPLOADS_DIR"); v != "" {
		c.UploadsDir = v
	}
	if v := os.Getenv("PORTAL_BASE_URL"); v != "" {
		c.PortalBaseURL = v
	}
	if v := os.Getenv("AUTH_BASE_URL"); v != "" {
		c.AuthBaseURL = v
	}
	if v := os.Getenv("AUTH_API_KEY"); v != "" {
		c.AuthAPIKey = v
	}
	if v := os.Getenv("SMTP_HOST"); v != "" {
		c.SMTP.Host = v
	}
	if v := os.Getenv("SMTP_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.SMTP.Port = n
		}
	}
	if v := os.Getenv("SMTP_USERNAME"); v != "" {
		c.SMTP.Username = v
	}
	if v := os.Getenv("SMTP_PASSWORD"); v != "" {
		c.SMTP.Password = v
	}
	if v := os.Getenv("SMTP_FROM"); v != "" {
		c.SMTP.From = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		c.LogFormat = v
	}
	if v := os.Getenv("APP_NAME"); v != "" {
		c.AppName = v
	}
	return c.normalized()
}

func defaults() Config {
	return Config{
		Addr:       ":8080",
		UploadsDir: "uploads",
		LogLevel:   "info",
		LogFormat:  "text",
		AppName:    "titulares-admin",
		SMTP:       SMTPConfig{Port: 587},
	}
}

func (c Config) normalized() Config {
	if c.Addr == "" {
		c.Addr = ":8080"
	}
	if c.UploadsDir == "" {
		c.UploadsDir = "uploads"
	}
	if c.SMTP.Port <= 0 {
		c.SMTP.Port = 587
	}
	return c
}
