package solanacreditscore

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/pohpos/solana-credit-score/internal/config"
	"github.com/pohpos/solana-credit-score/internal/style"
	"github.com/pohpos/solana-credit-score/pkg/constants"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	// Validator available to all commands
	configPath string
	logLevel   string
	rootCmd    = &cobra.Command{
		Aliases: []string{},
		Use:     style.RenderPurpleString(constants.AppName),
		Version: constants.AppVersion,
		Short: fmt.Sprintf(
			"%s (%s) - 📊 %s",
			style.RenderPurpleString(constants.AppName),
			style.RenderPurpleString(constants.AppVersion),
			style.RenderHealthyString("solana validator credit scores and bandwidth usage", false),
		),
		Long: fmt.Sprintf(`
%s - %s

Version:
    %s
`, style.RenderPurpleString(constants.AppName),
			style.RenderHealthyString("📊 solana validator credit scores and bandwidth usage", false),
			style.RenderPurpleString(constants.AppVersion),
		),
		PersistentPreRunE: persistentPreRun,
	}
)

// Execute ...
func Execute() {
	// config flag
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultConfigPath, "path to config file")
	// log level flag
	rootCmd.PersistentFlags().StringVarP(&logLevel, "log-level", "l", "info", "log level")

	// execute
	if err := rootCmd.Execute(); err != nil {
		log.Fatal().Err(err)
	}
}

func init() {
	cobra.OnInitialize(initLog)
}

func initLog() {
	// configure logger
	log.Logger = log.Output(zerolog.ConsoleWriter{
		Out:          os.Stderr,
		TimeLocation: time.UTC,
		NoColor:      false,
		TimeFormat:   time.RFC3339Nano, // RFC3339 with UTC timezone and nanoseconds
		FormatLevel: func(i any) string {
			levelStr := i.(string)
			return style.LogLevels[levelStr].Bold(true).Width(5).Render(strings.ToUpper(levelStr))
		},
		FormatFieldName: func(i any) string {
			return style.RenderGreyString(i.(string)+"=", false)
		},
	}).With().Timestamp().Logger()
}

// persistentPreRun configures the logger
func persistentPreRun(cmd *cobra.Command, args []string) (err error) {
	// set zerolog level
	logLevel, err := zerolog.ParseLevel(logLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", logLevel, err)
	}
	zerolog.SetGlobalLevel(logLevel)

	return nil
}
