package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Port        string   `mapstructure:"PORT"`
	Env         string   `mapstructure:"ENV"`
	DatabaseURL string   `mapstructure:"DATABASE_URL"`
	DBMaxConns  int32    `mapstructure:"DB_MAX_CONNS"`
	DBMinConns  int32    `mapstructure:"DB_MIN_CONNS"`
	JWTSecret   string   `mapstructure:"JWT_SECRET"`
	CORSOrigins []string `mapstructure:"CORS_ORIGINS"`

	// Reporting
	OverdueVLMonths int    `mapstructure:"OVERDUE_VL_MONTHS"`
	OverdueFUMonths int    `mapstructure:"OVERDUE_FU_MONTHS"`
	JoinArrayBy     string `mapstructure:"JOIN_ARRAY_BY"`
	DateFormat      string `mapstructure:"DATE_FORMAT"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("PORT", "8000")
	v.SetDefault("ENV", "development")
	v.SetDefault("DB_MAX_CONNS", 20)
	v.SetDefault("DB_MIN_CONNS", 5)
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")
	v.SetDefault("OVERDUE_VL_MONTHS", 12)
	v.SetDefault("OVERDUE_FU_MONTHS", 12)
	v.SetDefault("JOIN_ARRAY_BY", ", ")
	v.SetDefault("DATE_FORMAT", "02-01-2006")

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("PORT")
	v.BindEnv("ENV")
	v.BindEnv("DATABASE_URL")
	v.BindEnv("DB_MAX_CONNS")
	v.BindEnv("DB_MIN_CONNS")
	v.BindEnv("JWT_SECRET")
	v.BindEnv("CORS_ORIGINS")
	v.BindEnv("OVERDUE_VL_MONTHS")
	v.BindEnv("OVERDUE_FU_MONTHS")
	v.BindEnv("JOIN_ARRAY_BY")
	v.BindEnv("DATE_FORMAT")

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.CORSOrigins == nil {
		origins := v.GetString("CORS_ORIGINS")
		if origins != "" {
			cfg.CORSOrigins = strings.Split(origins, ",")
		}
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// Validate checks that the configuration is safe to run. Outside development
// JWT_SECRET must be set so real authentication is enforced, and the overdue
// lookback windows must be positive.
func (c *Config) Validate() error {
	if !c.IsDev() && c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required when ENV=%q", c.Env)
	}
	if c.OverdueVLMonths <= 0 {
		return fmt.Errorf("OVERDUE_VL_MONTHS must be positive, got %d", c.OverdueVLMonths)
	}
	if c.OverdueFUMonths <= 0 {
		return fmt.Errorf("OVERDUE_FU_MONTHS must be positive, got %d", c.OverdueFUMonths)
	}
	return nil
}
