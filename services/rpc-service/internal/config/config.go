package config

import (
	"errors"

	"github.com/spf13/viper"
)

type Config struct {
	DBHost     string `mapstructure:"DB_HOST"`
	DBPort     string `mapstructure:"DB_PORT"`
	DBUser     string `mapstructure:"DB_USER"`
	DBPassword string `mapstructure:"DB_PASSWORD"`
	DBName     string `mapstructure:"DB_NAME"`
	GRPCPort   string `mapstructure:"GRPC_PORT"`
	AnonKey    string `mapstructure:"BACKEND_ANON_KEY"`
}

var ErrMissingAnonKey = errors.New("BACKEND_ANON_KEY is required")

func LoadConfig(path string) (config Config, err error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("app")
	v.SetConfigType("env")

	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("GRPC_PORT", ":50051")

	v.AutomaticEnv()

	// bound explicitly so Unmarshal sees them without a config file
	v.BindEnv("DB_HOST")
	v.BindEnv("DB_PORT")
	v.BindEnv("DB_USER")
	v.BindEnv("DB_PASSWORD")
	v.BindEnv("DB_NAME")
	v.BindEnv("GRPC_PORT")
	v.BindEnv("BACKEND_ANON_KEY")

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
	if config.AnonKey == "" {
		err = ErrMissingAnonKey
	}
	return
}

func (c Config) DSN() string {
	return "host=" + c.DBHost + " user=" + c.DBUser + " password=" + c.DBPassword +
		" dbname=" + c.DBName + " port=" + c.DBPort + " sslmode=disable"
}
