package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g.
// TRUEREV_UNDERWRITING_MAX_WITHHOLD_PERCENTAGE.
const EnvPrefix = "TRUEREV"

// scalar keys that may be overridden from the environment. viper only
// resolves env vars for keys it already knows about.
var envKeys = []string{
	"logging.level",
	"logging.format",
	"database.path",
	"business_days_per_month",
	"classification.heuristics.large_deposit_threshold",
	"classification.heuristics.round_number_threshold",
	"classification.heuristics.suspicious_tolerance",
	"classification.heuristics.default_confidence",
	"learning.enabled",
	"learning.match_threshold",
	"learning.min_confidence",
	"volatility.low_below",
	"volatility.high_above",
	"underwriting.max_withhold_percentage",
	"underwriting.min_withhold_percentage",
	"underwriting.min_funding_amount",
	"underwriting.max_funding_amount",
	"underwriting.default_term_months",
	"underwriting.default_risk_score",
	"underwriting.min_risk_score",
	"underwriting.stacking.max_positions",
}

// NewViper returns a viper instance wired for the TRUEREV_ environment.
func NewViper() *viper.Viper {
	v := viper.New()
	Bind(v)
	return v
}

// Bind registers the env prefix and the overridable scalar keys on v.
func Bind(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range envKeys {
		_ = v.BindEnv(key)
	}
}

// Load reads the config file at path (if any) into v and returns the
// defaults overlaid with whatever v holds. A missing path uses the search
// locations already registered on v; no config file at all is not an error.
func Load(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(ExpandPath(path))
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || path != "" {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}
	return FromViper(v)
}

// FromViper decodes v over Default and validates the result. Tables present
// in v replace the default table as a whole.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := Default()
	err := v.Unmarshal(cfg, func(dc *mapstructure.DecoderConfig) {
		dc.ZeroFields = true
	})
	if err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
