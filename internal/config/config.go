package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config holds runtime configuration for a qsq session. Values are
// populated from .qsq.yaml, QSQ_* env vars, and CLI flags; the caps
// here bound every search the engine runs, since a bounded enumeration
// is the only cancellation mechanism the core offers.
type Config struct {
	// Trunc is the default series truncation order.
	Trunc int64 `mapstructure:"trunc"`

	// FindprodMaxDegree and FindprodMaxExponent bound the exponent
	// vectors findprod enumerates.
	FindprodMaxDegree   int64 `mapstructure:"findprod_max_degree"`
	FindprodMaxExponent int64 `mapstructure:"findprod_max_exponent"`

	// FindcongModuli are the arithmetic-progression moduli findcong
	// scans by default.
	FindcongModuli []int64 `mapstructure:"findcong_moduli"`

	// ZeilbergerMaxOrder caps the recurrence order escalation.
	ZeilbergerMaxOrder int `mapstructure:"zeilberger_max_order"`

	// BaileyDepth is the default chain depth and BaileyMaxN the number
	// of pair terms tabulated per chain step.
	BaileyDepth int   `mapstructure:"bailey_depth"`
	BaileyMaxN  int64 `mapstructure:"bailey_max_n"`

	// HistoryPath locates the SQLite result log.
	HistoryPath string `mapstructure:"history_path"`

	Verbose bool `mapstructure:"verbose"`
}

// Load reads configuration from viper, applying built-in defaults for
// any values not set by config file, environment, or flags.
func Load() (Config, error) {
	viper.SetDefault("trunc", 50)
	viper.SetDefault("findprod_max_degree", 6)
	viper.SetDefault("findprod_max_exponent", 3)
	viper.SetDefault("findcong_moduli", []int64{2, 3, 5, 7, 11, 13})
	viper.SetDefault("zeilberger_max_order", 3)
	viper.SetDefault("bailey_depth", 1)
	viper.SetDefault("bailey_max_n", 8)
	viper.SetDefault("history_path", ".qsq-history.db")
	viper.SetDefault("verbose", false)

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}
