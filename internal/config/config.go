package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config stores all configuration of the application.
// The values are read by viper from a config file or environment variables.
type Config struct {
	YahooAppID        string `mapstructure:"YAHOO_APP_ID"`
	YahooFormatString string `mapstructure:"YAHOO_FORMAT_STRING" validate:"required,contains=%s"`
	YahooOutputFormat string `mapstructure:"YAHOO_OUTPUT_FORMAT" validate:"required"`
	PlaceFinderAppID  string `mapstructure:"PLACEFINDER_APP_ID"`
	// Base URLs override the public endpoints when set.
	YahooBaseURL       string        `mapstructure:"YAHOO_BASE_URL" validate:"omitempty,url"`
	PlaceFinderBaseURL string        `mapstructure:"PLACEFINDER_BASE_URL" validate:"omitempty,url"`
	UserAgent          string        `mapstructure:"USER_AGENT"`
	HTTPTimeout        time.Duration `mapstructure:"HTTP_TIMEOUT" validate:"gte=0"`
	ServerAddress      string        `mapstructure:"SERVER_ADDRESS" validate:"required"`
	// DBSource enables the lookup history when set.
	DBSource  string `mapstructure:"DB_SOURCE"`
	LogLevel  string `mapstructure:"LOG_LEVEL" validate:"oneof=trace debug info warn error"`
	LogPretty bool   `mapstructure:"LOG_PRETTY"`
}

var defaults = map[string]any{
	"YAHOO_APP_ID":         "",
	"YAHOO_FORMAT_STRING":  "%s",
	"YAHOO_OUTPUT_FORMAT":  "xml",
	"PLACEFINDER_APP_ID":   "",
	"YAHOO_BASE_URL":       "",
	"PLACEFINDER_BASE_URL": "",
	"USER_AGENT":           "",
	"HTTP_TIMEOUT":         "0s",
	"SERVER_ADDRESS":       ":8080",
	"DB_SOURCE":            "",
	"LOG_LEVEL":            "info",
	"LOG_PRETTY":           false,
}

// LoadConfig reads app.env from path, if present, and overrides its values with
// environment variables.
func LoadConfig(path string) (Config, error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("app")
	v.SetConfigType("env")
	v.AutomaticEnv()

	for k, d := range defaults {
		v.SetDefault(k, d)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("config: reading config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return Config{}, fmt.Errorf("config: decoding config: %w", err)
	}

	if err := validator.New().Struct(config); err != nil {
		return Config{}, fmt.Errorf("config: invalid config: %w", err)
	}

	return config, nil
}
