package config

import (
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Engine   string         `mapstructure:"engine"` // "gemini", "google" or "dummy"
	Server   ServerConfig   `mapstructure:"server"`
	Gemini   GeminiConfig   `mapstructure:"gemini"`
	Google   GoogleConfig   `mapstructure:"google"`
	Vapi     VapiConfig     `mapstructure:"vapi"`
	Database DatabaseConfig `mapstructure:"database"`
}

type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	AssetsDir      string   `mapstructure:"assets_dir"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type GeminiConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	Voice   string `mapstructure:"voice"`
	BaseURL string `mapstructure:"base_url"` // Optional, defaults to the public Generative Language API
	Timeout int    `mapstructure:"timeout"`  // seconds
}

// Google Cloud Text-to-Speech, selectable as an alternate engine
type GoogleConfig struct {
	CredentialsFile string `mapstructure:"credentials_file"`
}

type VapiConfig struct {
	Secret string `mapstructure:"secret"` // shared secret for the /vapi-tts webhook; empty disables the check
}

type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	// Conventional variable names for the credentials and webhook secret
	viper.BindEnv("gemini.api_key", "GEMINI_API_KEY")
	viper.BindEnv("gemini.model", "GEMINI_TTS_MODEL")
	viper.BindEnv("gemini.voice", "GEMINI_TTS_VOICE")
	viper.BindEnv("vapi.secret", "VAPI_SHARED_SECRET")
	viper.BindEnv("server.port", "PORT")
	viper.BindEnv("google.credentials_file", "GOOGLE_APPLICATION_CREDENTIALS")

	viper.SetDefault("engine", "gemini")

	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.assets_dir", "./data/audio")
	viper.SetDefault("server.allowed_origins", []string{"*"})

	viper.SetDefault("gemini.model", "gemini-2.5-flash-preview-tts")
	viper.SetDefault("gemini.voice", "Kore")
	viper.SetDefault("gemini.timeout", 60)

	viper.SetDefault("database.path", "./tts-usage.db")

	// Allow environment variables
	viper.SetEnvPrefix("TTS")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		// Config file not found, use defaults
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}
