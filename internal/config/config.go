package config

import (
	"fmt"
	"path/filepath"

	"github.com/pohpos/solana-credit-score/internal/latitude"
	"github.com/pohpos/solana-credit-score/internal/utils"
	"github.com/pohpos/solana-credit-score/internal/validator"
	"github.com/pohpos/solana-credit-score/pkg/constants"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

const (
	// DefaultCluster is the default cluster for the validator
	DefaultCluster = "mainnet-beta"

	// DefaultCommissionScanMaxSlots is the default bound on the historical
	// commission block scan - 0 means one full epoch of slots
	DefaultCommissionScanMaxSlots = uint64(0)
)

var (
	// DefaultConfigPath is the default path to the config file
	DefaultConfigPath = filepath.Join("~", constants.AppName, constants.AppName+".yaml")
)

// SolanaCreditScore is the configuration for the program
type SolanaCreditScore struct {
	Validator validator.Config `mapstructure:"validator"`
	Latitude  latitude.Config  `mapstructure:"latitude"`
}

// NewFromFile creates a new SolanaCreditScore configuration from a config file
func NewFromFile(configPath string) (s *SolanaCreditScore, err error) {
	s = &SolanaCreditScore{}

	err = s.LoadFromConfigFile(configPath)
	if err != nil {
		return nil, err
	}

	return
}

// LoadFromConfigFile loads the config from a config file
func (s *SolanaCreditScore) LoadFromConfigFile(configPath string) (err error) {
	logger := log.With().Str("component", "config").Logger()
	v := viper.New()

	loadConfigPath := DefaultConfigPath

	if configPath != "" {
		loadConfigPath = configPath
	}

	loadConfigPath, err = utils.ResolvePath(loadConfigPath)
	if err != nil {
		return fmt.Errorf("failed to resolve config path: %w", err)
	}

	v.SetConfigFile(loadConfigPath)

	// Set defaults
	v.SetDefault("validator.cluster", DefaultCluster)
	v.SetDefault("validator.commission_scan.max_slots", DefaultCommissionScanMaxSlots)
	v.SetDefault("latitude.base_url", latitude.DefaultBaseURL)
	v.SetDefault("latitude.billing_cycle_start_day", latitude.DefaultBillingCycleStartDay)

	// The API key may be supplied via the environment instead of the file
	err = v.BindEnv("latitude.api_key", constants.AppEnvVarLatitudeAPIKey)
	if err != nil {
		return fmt.Errorf("failed to bind latitude api key env var: %w", err)
	}

	// Read config file
	logger.Debug().Str("config_file", loadConfigPath).Msg("loading")
	err = v.ReadInConfig()
	if err != nil {
		return
	}

	// Unmarshal into the full config structure
	return v.Unmarshal(&s)
}
