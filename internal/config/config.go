package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port        int
	LogLevel    string
	LogFormat   string
	LogDir      string
	Environment string
	Version     string

	APIKey         string
	TrustedProxies []string

	DBEnabled  bool
	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string

	// RegistryPath points at a JSON enchantment registry. Empty means the
	// built-in vanilla set.
	RegistryPath string

	Progression ProgressionConfig
}

// ProgressionConfig is the tunable coefficient surface for the mastery
// cost/XP curves. Defaults match the shipped balance.
type ProgressionConfig struct {
	AbsorbBaseCost  float64
	AbsorbQuadratic float64

	ApplyBaseCost  float64
	ApplyQuadratic float64

	MasteryXPBase      float64
	MasteryXPLinear    float64
	MasteryXPQuadratic float64

	XPGainMultiplier float64

	DecodeBaseCost float64
	DecodeScaling  float64
}

// DefaultProgression returns the default curve coefficients.
func DefaultProgression() ProgressionConfig {
	return ProgressionConfig{
		AbsorbBaseCost:     3.0,
		AbsorbQuadratic:    1.5,
		ApplyBaseCost:      2.0,
		ApplyQuadratic:     1.2,
		MasteryXPBase:      10.0,
		MasteryXPLinear:    3.0,
		MasteryXPQuadratic: 1.5,
		XPGainMultiplier:   5.0,
		DecodeBaseCost:     1.0,
		DecodeScaling:      0.5,
	}
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:     getEnv("LOG_LEVEL", "INFO"),
		LogFormat:    getEnv("LOG_FORMAT", "text"),
		LogDir:       getEnv("LOG_DIR", "logs"),
		Environment:  getEnv("ENVIRONMENT", "dev"),
		Version:      getEnv("VERSION", "dev"),
		APIKey:       getEnv("API_KEY", ""),
		DBUser:       getEnv("DB_USER", "postgres"),
		DBPassword:   getEnv("DB_PASSWORD", "postgres"),
		DBHost:       getEnv("DB_HOST", "localhost"),
		DBPort:       getEnv("DB_PORT", "5432"),
		DBName:       getEnv("DB_NAME", "enchantmastery"),
		RegistryPath: getEnv("REGISTRY_PATH", ""),
	}

	if proxies := getEnv("TRUSTED_PROXIES", ""); proxies != "" {
		for _, p := range strings.Split(proxies, ",") {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				cfg.TrustedProxies = append(cfg.TrustedProxies, trimmed)
			}
		}
	}

	portStr := getEnv("PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT value: %w", err)
	}
	cfg.Port = port

	dbEnabled, err := strconv.ParseBool(getEnv("DB_ENABLED", "false"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_ENABLED value: %w", err)
	}
	cfg.DBEnabled = dbEnabled

	prog, err := loadProgression()
	if err != nil {
		return nil, err
	}
	cfg.Progression = prog

	return cfg, nil
}

func loadProgression() (ProgressionConfig, error) {
	p := DefaultProgression()

	fields := []struct {
		key string
		dst *float64
	}{
		{"ABSORB_BASE_COST", &p.AbsorbBaseCost},
		{"ABSORB_QUADRATIC", &p.AbsorbQuadratic},
		{"APPLY_BASE_COST", &p.ApplyBaseCost},
		{"APPLY_QUADRATIC", &p.ApplyQuadratic},
		{"MASTERY_XP_BASE", &p.MasteryXPBase},
		{"MASTERY_XP_LINEAR", &p.MasteryXPLinear},
		{"MASTERY_XP_QUADRATIC", &p.MasteryXPQuadratic},
		{"XP_GAIN_MULTIPLIER", &p.XPGainMultiplier},
		{"DECODE_BASE_COST", &p.DecodeBaseCost},
		{"DECODE_SCALING", &p.DecodeScaling},
	}

	for _, f := range fields {
		raw, exists := os.LookupEnv(f.key)
		if !exists {
			continue
		}
		val, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return p, fmt.Errorf("invalid %s value: %w", f.key, err)
		}
		*f.dst = val
	}

	return p, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}
