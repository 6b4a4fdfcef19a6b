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

const (
	DatasetSourceFile     = "file"
	DatasetSourcePostgres = "postgres"
)

type Config struct {
	Mode     string `mapstructure:"mode"`
	Dotenv   string `mapstructure:"dotenv"`
	Handlers struct {
		Prometheus struct {
			Port string `mapstructure:"port"`
		} `mapstructure:"prometheus"`
	} `mapstructure:"handlers"`
	Repositories struct {
		Postgres struct {
			Host              string `mapstructure:"host"`
			Password          string `mapstructure:"password"`
			Port              string `mapstructure:"port"`
			Username          string `mapstructure:"username"`
			DB                string `mapstructure:"db"`
			SSLMODE           string `mapstructure:"SSLMODE"`
			MAXCONWAITINGTIME int    `mapstructure:"MAXCONWAITINGTIME"`
			RunMigrations     bool   `mapstructure:"runMigrations"`
		} `mapstructure:"postgres"`
	} `mapstructure:"repositories"`
	Dataset struct {
		Source string `mapstructure:"source"`
		Path   string `mapstructure:"path"`
	} `mapstructure:"dataset"`
	Cache struct {
		TTL     time.Duration `mapstructure:"ttl"`
		Cleanup time.Duration `mapstructure:"cleanup"`
	} `mapstructure:"cache"`
	RateLimit struct {
		Requests int           `mapstructure:"requests"`
		Window   time.Duration `mapstructure:"window"`
	} `mapstructure:"rateLimit"`
	CORS struct {
		AllowedOrigins []string `mapstructure:"allowedOrigins"`
	} `mapstructure:"cors"`
	Server struct {
		HTTPPort string        `mapstructure:"HTTPPort"`
		Timeout  time.Duration `mapstructure:"HTTPTimeout"`
	} `mapstructure:"server"`
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

	// TOURISM_DATASET_PATH overrides dataset.path, and so on
	v.SetEnvPrefix("tourism")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

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

	if err = config.Validate(); err != nil {
		return Config{}, err
	}
	fmt.Println("Successfully loaded app configs...")
	return config, nil
}

// Validate fills in defaults and rejects settings the server cannot start with.
func (c *Config) Validate() error {
	if c.Server.HTTPPort == "" {
		c.Server.HTTPPort = "8000"
	}
	if c.Server.Timeout <= 0 {
		c.Server.Timeout = 60 * time.Second
	}
	switch c.Dataset.Source {
	case "":
		c.Dataset.Source = DatasetSourceFile
	case DatasetSourceFile, DatasetSourcePostgres:
	default:
		return fmt.Errorf("unknown dataset source %q", c.Dataset.Source)
	}
	if c.Dataset.Source == DatasetSourceFile && c.Dataset.Path == "" {
		return fmt.Errorf("dataset.path is required when dataset.source is %q", DatasetSourceFile)
	}
	if c.RateLimit.Requests > 0 && c.RateLimit.Window <= 0 {
		c.RateLimit.Window = time.Minute
	}
	return nil
}
