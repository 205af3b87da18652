package config

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
	"sigs.k8s.io/yaml"
)

const (
	// EnvConfigFile names the environment variable holding the config file path.
	EnvConfigFile = "PLANNER_CONFIG_FILE"
	// DotEnvFile is read, when present, before the environment is processed.
	DotEnvFile = ".env"
)

type Config struct {
	Service *svcConfig `json:"service"`
}

type svcConfig struct {
	Address        string   `envconfig:"PLANNER_ADDRESS" default:":3443" json:"address"`
	MetricsAddress string   `envconfig:"PLANNER_METRICS_ADDRESS" default:":8080" json:"metricsAddress"`
	LogLevel       string   `envconfig:"PLANNER_LOG_LEVEL" default:"info" json:"logLevel"`
	LogFormat      string   `envconfig:"PLANNER_LOG_FORMAT" default:"console" json:"logFormat"`
	AllowedOrigins []string `envconfig:"PLANNER_ALLOWED_ORIGINS" default:"*" json:"allowedOrigins"`
}

// ConfigFile returns the config file path named by PLANNER_CONFIG_FILE, or
// an empty string when none is set.
func ConfigFile() string {
	return os.Getenv(EnvConfigFile)
}

// Load builds the configuration from the defaults, the yaml file (if file is
// not empty) and the environment, in increasing order of precedence.
func Load(file string) (*Config, error) {
	if err := loadDotEnv(DotEnvFile); err != nil {
		return nil, err
	}

	cfg, err := fromEnv()
	if err != nil {
		return nil, err
	}

	if file == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(file)
	if err != nil {
		return nil, errors.Wrapf(err, "reading config file %s", file)
	}

	fromFile := &Config{}
	if err := yaml.UnmarshalStrict(data, fromFile); err != nil {
		return nil, errors.Wrapf(err, "parsing config file %s", file)
	}
	if fromFile.Service != nil {
		overlay(cfg.Service, fromFile.Service)
	}

	return cfg, nil
}

func (c *Config) String() string {
	data, err := yaml.Marshal(c)
	if err != nil {
		return "<invalid config>"
	}
	return string(data)
}

func fromEnv() (*Config, error) {
	cfg := &Config{Service: &svcConfig{}}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, errors.Wrap(err, "processing environment")
	}
	return cfg, nil
}

// loadDotEnv sets the variables of path that are not already in the
// environment. A missing file is not an error.
func loadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	return errors.Wrapf(godotenv.Load(path), "loading %s", path)
}

// overlay copies the values set in the file unless the matching variable is
// present in the environment.
func overlay(dst, src *svcConfig) {
	set := func(env string, target *string, value string) {
		if _, inEnv := os.LookupEnv(env); !inEnv && value != "" {
			*target = value
		}
	}

	set("PLANNER_ADDRESS", &dst.Address, src.Address)
	set("PLANNER_METRICS_ADDRESS", &dst.MetricsAddress, src.MetricsAddress)
	set("PLANNER_LOG_LEVEL", &dst.LogLevel, src.LogLevel)
	set("PLANNER_LOG_FORMAT", &dst.LogFormat, src.LogFormat)

	if _, inEnv := os.LookupEnv("PLANNER_ALLOWED_ORIGINS"); !inEnv && len(src.AllowedOrigins) > 0 {
		dst.AllowedOrigins = src.AllowedOrigins
	}
}
