// Package config carga la configuración: config.yaml + overrides por
// variables de entorno. Las variables de entorno siempre pisan al YAML.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/dropDatabas3/gatekeep/internal/auth/provider"
)

type Config struct {
	App struct {
		// dev | staging | prod
		Env string `yaml:"env"`
	} `yaml:"app"`

	Server struct {
		Addr               string   `yaml:"addr"`
		CORSAllowedOrigins []string `yaml:"cors_allowed_origins"`
	} `yaml:"server"`

	Storage struct {
		DSN             string `yaml:"dsn"`
		MaxConns        int    `yaml:"max_conns"`
		ConnMaxLifetime string `yaml:"conn_max_lifetime"`
	} `yaml:"storage"`

	Cache struct {
		Kind  string `yaml:"kind"` // "memory" | "redis"
		Redis struct {
			Addr     string `yaml:"addr"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
			Prefix   string `yaml:"prefix"`
		} `yaml:"redis"`
	} `yaml:"cache"`

	JWT struct {
		Issuer     string `yaml:"issuer"`
		Secret     string `yaml:"secret"`
		SessionTTL string `yaml:"session_ttl"`
	} `yaml:"jwt"`

	Auth struct {
		// CredentialsEnabled habilita el login por password. Default: true.
		CredentialsEnabled *bool `yaml:"credentials_enabled"`

		// DisablePasswordWhenLinked: true = usuarios con alguna cuenta OAuth
		// vinculada no pueden entrar por password. Default: false.
		DisablePasswordWhenLinked bool `yaml:"disable_password_when_linked"`

		Session struct {
			CookieName string `yaml:"cookie_name"`
			Domain     string `yaml:"domain"`
			SameSite   string `yaml:"samesite"`
			Secure     bool   `yaml:"secure"`
		} `yaml:"session"`
	} `yaml:"auth"`

	Providers struct {
		// RedirectBase es el origen público para armar callbacks
		// (ej: https://app.example.com). Vacío ⇒ se usa jwt.issuer.
		RedirectBase string `yaml:"redirect_base"`

		Microsoft struct {
			ClientID     string `yaml:"client_id"`
			ClientSecret string `yaml:"client_secret"`
			Tenant       string `yaml:"tenant"` // default "common"
		} `yaml:"microsoft"`

		Google struct {
			ClientID     string `yaml:"client_id"`
			ClientSecret string `yaml:"client_secret"`
		} `yaml:"google"`

		Steam struct {
			APIKey string `yaml:"api_key"`
		} `yaml:"steam"`
	} `yaml:"providers"`

	Rate struct {
		Enabled bool `yaml:"enabled"`

		Login struct {
			Limit  int    `yaml:"limit"`
			Window string `yaml:"window"`
		} `yaml:"login"`

		Preflight struct {
			Limit  int    `yaml:"limit"`
			Window string `yaml:"window"`
		} `yaml:"preflight"`
	} `yaml:"rate"`

	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
}

// Load lee el YAML (si existe), aplica overrides de entorno y defaults.
func Load(path string) (*Config, error) {
	var c Config

	if path != "" {
		b, err := os.ReadFile(path)
		if err == nil {
			if err := yaml.Unmarshal(b, &c); err != nil {
				return nil, fmt.Errorf("config: parse %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	c.applyEnvOverrides()
	c.applyDefaults()

	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) applyDefaults() {
	if c.App.Env == "" {
		c.App.Env = "dev"
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Cache.Kind == "" {
		c.Cache.Kind = "memory"
	}
	if c.JWT.Issuer == "" {
		c.JWT.Issuer = "gatekeep"
	}
	if c.JWT.SessionTTL == "" {
		c.JWT.SessionTTL = "24h"
	}
	if c.Auth.Session.CookieName == "" {
		c.Auth.Session.CookieName = "gk_session"
	}
	if c.Providers.Microsoft.Tenant == "" {
		c.Providers.Microsoft.Tenant = "common"
	}
	if c.Rate.Login.Limit == 0 {
		c.Rate.Login.Limit = 10
	}
	if c.Rate.Login.Window == "" {
		c.Rate.Login.Window = "1m"
	}
	if c.Rate.Preflight.Limit == 0 {
		c.Rate.Preflight.Limit = 30
	}
	if c.Rate.Preflight.Window == "" {
		c.Rate.Preflight.Window = "1m"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

func (c *Config) validate() error {
	if strings.EqualFold(c.App.Env, "prod") && strings.TrimSpace(c.JWT.Secret) == "" {
		return fmt.Errorf("config: jwt.secret vacío, refusing to start in prod")
	}
	return nil
}

// CredentialsEnabled resuelve el flag con su default (true).
func (c *Config) CredentialsEnabled() bool {
	if c.Auth.CredentialsEnabled == nil {
		return true
	}
	return *c.Auth.CredentialsEnabled
}

// ProviderFlags deriva los flags globales de providers.
// Un provider OAuth queda habilitado por PRESENCIA de credenciales:
// no hay flag de enable aparte, config ausente = feature apagada.
func (c *Config) ProviderFlags() provider.Flags {
	return provider.Flags{
		Credentials:               c.CredentialsEnabled(),
		Microsoft:                 c.Providers.Microsoft.ClientID != "" && c.Providers.Microsoft.ClientSecret != "",
		Google:                    c.Providers.Google.ClientID != "" && c.Providers.Google.ClientSecret != "",
		Steam:                     c.Providers.Steam.APIKey != "",
		DisablePasswordWhenLinked: c.Auth.DisablePasswordWhenLinked,
	}
}

// SessionTTL parsea jwt.session_ttl.
func (c *Config) SessionTTL() time.Duration {
	if d, err := time.ParseDuration(c.JWT.SessionTTL); err == nil {
		return d
	}
	return 24 * time.Hour
}

// ConnMaxLifetime parsea storage.conn_max_lifetime.
func (c *Config) ConnMaxLifetime() time.Duration {
	if d, err := time.ParseDuration(c.Storage.ConnMaxLifetime); err == nil {
		return d
	}
	return 0
}

// RedirectBase resuelve el origen público para callbacks OAuth.
func (c *Config) RedirectBase() string {
	if b := strings.TrimSpace(c.Providers.RedirectBase); b != "" {
		return strings.TrimRight(b, "/")
	}
	return strings.TrimRight(c.JWT.Issuer, "/")
}

// ---- Helpers env ----

func getEnvStr(key string) (string, bool) {
	v := os.Getenv(key)
	return v, v != ""
}

func getEnvInt(key string) (int, bool) {
	if s, ok := getEnvStr(key); ok {
		if i, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			return i, true
		}
	}
	return 0, false
}

func getEnvBool(key string) (bool, bool) {
	if s, ok := getEnvStr(key); ok {
		if b, err := strconv.ParseBool(strings.TrimSpace(s)); err == nil {
			return b, true
		}
	}
	return false, false
}

func getEnvCSV(key string) ([]string, bool) {
	if s, ok := getEnvStr(key); ok {
		parts := strings.Split(s, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		return out, true
	}
	return nil, false
}

// applyEnvOverrides: pisa el YAML con variables de entorno.
func (c *Config) applyEnvOverrides() {
	// APP
	if v, ok := getEnvStr("APP_ENV"); ok {
		c.App.Env = strings.ToLower(v)
	}

	// SERVER
	if v, ok := getEnvStr("SERVER_ADDR"); ok {
		c.Server.Addr = v
	}
	if v, ok := getEnvCSV("SERVER_CORS_ALLOWED_ORIGINS"); ok {
		c.Server.CORSAllowedOrigins = v
	}

	// STORAGE
	if v, ok := getEnvStr("STORAGE_DSN"); ok {
		c.Storage.DSN = v
	}
	if v, ok := getEnvInt("STORAGE_MAX_CONNS"); ok {
		c.Storage.MaxConns = v
	}

	// CACHE
	if v, ok := getEnvStr("CACHE_KIND"); ok {
		c.Cache.Kind = v
	}
	if v, ok := getEnvStr("CACHE_REDIS_ADDR"); ok {
		c.Cache.Redis.Addr = v
	}
	if v, ok := getEnvStr("CACHE_REDIS_PASSWORD"); ok {
		c.Cache.Redis.Password = v
	}
	if v, ok := getEnvInt("CACHE_REDIS_DB"); ok {
		c.Cache.Redis.DB = v
	}

	// JWT
	if v, ok := getEnvStr("JWT_ISSUER"); ok {
		c.JWT.Issuer = v
	}
	if v, ok := getEnvStr("JWT_SECRET"); ok {
		c.JWT.Secret = v
	}
	if v, ok := getEnvStr("JWT_SESSION_TTL"); ok {
		c.JWT.SessionTTL = v
	}

	// AUTH
	if v, ok := getEnvBool("AUTH_CREDENTIALS_ENABLED"); ok {
		c.Auth.CredentialsEnabled = &v
	}
	if v, ok := getEnvBool("AUTH_DISABLE_PASSWORD_WHEN_LINKED"); ok {
		c.Auth.DisablePasswordWhenLinked = v
	}
	if v, ok := getEnvStr("AUTH_SESSION_COOKIE_NAME"); ok {
		c.Auth.Session.CookieName = v
	}
	if v, ok := getEnvStr("AUTH_SESSION_DOMAIN"); ok {
		c.Auth.Session.Domain = v
	}
	if v, ok := getEnvStr("AUTH_SESSION_SAMESITE"); ok {
		c.Auth.Session.SameSite = v
	}
	if v, ok := getEnvBool("AUTH_SESSION_SECURE"); ok {
		c.Auth.Session.Secure = v
	}

	// PROVIDERS
	if v, ok := getEnvStr("PROVIDERS_REDIRECT_BASE"); ok {
		c.Providers.RedirectBase = v
	}
	if v, ok := getEnvStr("PROVIDERS_MICROSOFT_CLIENT_ID"); ok {
		c.Providers.Microsoft.ClientID = v
	}
	if v, ok := getEnvStr("PROVIDERS_MICROSOFT_CLIENT_SECRET"); ok {
		c.Providers.Microsoft.ClientSecret = v
	}
	if v, ok := getEnvStr("PROVIDERS_MICROSOFT_TENANT"); ok {
		c.Providers.Microsoft.Tenant = v
	}
	if v, ok := getEnvStr("PROVIDERS_GOOGLE_CLIENT_ID"); ok {
		c.Providers.Google.ClientID = v
	}
	if v, ok := getEnvStr("PROVIDERS_GOOGLE_CLIENT_SECRET"); ok {
		c.Providers.Google.ClientSecret = v
	}
	if v, ok := getEnvStr("PROVIDERS_STEAM_API_KEY"); ok {
		c.Providers.Steam.APIKey = v
	}

	// RATE
	if v, ok := getEnvBool("RATE_ENABLED"); ok {
		c.Rate.Enabled = v
	}
	if v, ok := getEnvInt("RATE_LOGIN_LIMIT"); ok {
		c.Rate.Login.Limit = v
	}
	if v, ok := getEnvStr("RATE_LOGIN_WINDOW"); ok {
		c.Rate.Login.Window = v
	}
	if v, ok := getEnvInt("RATE_PREFLIGHT_LIMIT"); ok {
		c.Rate.Preflight.Limit = v
	}
	if v, ok := getEnvStr("RATE_PREFLIGHT_WINDOW"); ok {
		c.Rate.Preflight.Window = v
	}

	// LOG
	if v, ok := getEnvStr("LOG_LEVEL"); ok {
		c.Log.Level = v
	}
}
