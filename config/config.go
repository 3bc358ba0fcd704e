package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

//go:embed config.yml
var embeddedConfig []byte

type DishKeywords struct {
	City     string   `mapstructure:"city"`
	Keywords []string `mapstructure:"keywords"`
}

type Config struct {
	Mode         string `mapstructure:"mode"`
	Dotenv       string `mapstructure:"dotenv"`
	Repositories struct {
		Postgres struct {
			Host              string `mapstructure:"host"`
			Password          string `mapstructure:"password"`
			Port              string `mapstructure:"port"`
			Username          string `mapstructure:"username"`
			DB                string `mapstructure:"db"`
			SSLMODE           string `mapstructure:"SSLMODE"`
			MAXCONWAITINGTIME int    `mapstructure:"MAXCONWAITINGTIME"`
		} `mapstructure:"postgres"`
	} `mapstructure:"repositories"`
	Server struct {
		HTTPPort         string        `mapstructure:"HTTPPort"`
		Timeout          time.Duration `mapstructure:"HTTPTimeout"`
		ExtractRateLimit int           `mapstructure:"extractRateLimit"`
	} `mapstructure:"server"`
	GenAI struct {
		Model           string  `mapstructure:"model"`
		Temperature     float32 `mapstructure:"temperature"`
		MaxOutputTokens int32   `mapstructure:"maxOutputTokens"`
		Concurrency     int     `mapstructure:"concurrency"`
	} `mapstructure:"genai"`
	Auth struct {
		JWTSecret string `mapstructure:"jwtSecret"`
	} `mapstructure:"auth"`
	Observability struct {
		ServiceName string `mapstructure:"serviceName"`
	} `mapstructure:"observability"`
	Tour struct {
		CacheTTL     time.Duration  `mapstructure:"cacheTTL"`
		CacheCleanup time.Duration  `mapstructure:"cacheCleanup"`
		DishKeywords []DishKeywords `mapstructure:"dishKeywords"`
	} `mapstructure:"tour"`
}

// DishKeywordMap flattens the configured keyword lists into a city map.
func (c Config) DishKeywordMap() map[string][]string {
	out := make(map[string][]string, len(c.Tour.DishKeywords))
	for _, dk := range c.Tour.DishKeywords {
		if dk.City == "" {
			continue
		}
		out[dk.City] = dk.Keywords
	}
	return out
}

func InitConfig() (Config, error) {
	var config Config
	v := viper.New()

	// Add file-based config paths
	v.AddConfigPath(".")
	v.AddConfigPath("config")
	v.AddConfigPath("/app/config")

	v.SetConfigName("config")
	v.SetConfigType("yml")

	// FOODIE_SERVER_HTTPPORT overrides server.HTTPPort, etc.
	v.SetEnvPrefix("foodie")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Try to load file-based config
	err := v.ReadInConfig()
	if err != nil {
		fmt.Printf("Warning: Failed to find file-based config: %s. Falling back to embedded config.\n", err)
		if err = v.ReadConfig(bytes.NewReader(embeddedConfig)); err != nil {
			return Config{}, fmt.Errorf("failed to read embedded config: %w", err)
		}
	}

	if err = v.Unmarshal(&config); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	fmt.Println("Successfully loaded app configs...")
	return config, nil
}
