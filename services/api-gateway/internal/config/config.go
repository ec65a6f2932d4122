package config

import (
	"errors"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Port           string `mapstructure:"PORT"`
	BackendURL     string `mapstructure:"BACKEND_URL"`
	AnonKey        string `mapstructure:"BACKEND_ANON_KEY"`
	AllowedOrigins string `mapstructure:"ALLOWED_ORIGINS"`
	RedisAddr      string `mapstructure:"REDIS_ADDR"`
	DBHost         string `mapstructure:"DB_HOST"`
	DBPort         string `mapstructure:"DB_PORT"`
	DBUser         string `mapstructure:"DB_USER"`
	DBPassword     string `mapstructure:"DB_PASSWORD"`
	DBName         string `mapstructure:"DB_NAME"`
	AccessSecret   string `mapstructure:"ACCESS_SECRET"`
	RefreshSecret  string `mapstructure:"REFRESH_SECRET"`
	CookieDomain   string `mapstructure:"COOKIE_DOMAIN"`
	CookieSecure   bool   `mapstructure:"COOKIE_SECURE"`
}

// ErrMissingBackend is returned when either backend setting is absent; the
// gateway cannot do anything useful without them.
var ErrMissingBackend = errors.New("BACKEND_URL and BACKEND_ANON_KEY are required")

var ErrMissingSecrets = errors.New("ACCESS_SECRET and REFRESH_SECRET are required")

var keys = []string{
	"PORT", "BACKEND_URL", "BACKEND_ANON_KEY", "ALLOWED_ORIGINS", "REDIS_ADDR",
	"DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME",
	"ACCESS_SECRET", "REFRESH_SECRET", "COOKIE_DOMAIN", "COOKIE_SECURE",
}

func LoadConfig(path string) (config Config, err error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("app")
	v.SetConfigType("env")

	v.SetDefault("PORT", ":8080")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("ALLOWED_ORIGINS", "http://localhost:5173")
	v.SetDefault("COOKIE_DOMAIN", "localhost")

	v.AutomaticEnv()
	for _, k := range keys {
		v.BindEnv(k)
	}

	err = v.ReadInConfig()
	if err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return
		}
	}

	err = v.Unmarshal(&config)
	if err != nil {
		return
	}
	switch {
	case config.BackendURL == "" || config.AnonKey == "":
		err = ErrMissingBackend
	case config.AccessSecret == "" || config.RefreshSecret == "":
		err = ErrMissingSecrets
	}
	return
}

func (c Config) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

func (c Config) DSN() string {
	return "host=" + c.DBHost + " user=" + c.DBUser + " password=" + c.DBPassword +
		" dbname=" + c.DBName + " port=" + c.DBPort + " sslmode=disable"
}
