package constants

import (
	// embed
	_ "embed"
)

var (
	// AppVersion ...
	//go:embed app.version
	AppVersion string
)

const (
	// AppName ...
	AppName = "solana-credit-score"
	// AppEnvVarLogLevel ...
	AppEnvVarLogLevel = "SOLANA_CREDIT_SCORE_LOG_LEVEL"
	// AppEnvVarLatitudeAPIKey ...
	AppEnvVarLatitudeAPIKey = "SOLANA_CREDIT_SCORE_LATITUDE_API_KEY"
)
