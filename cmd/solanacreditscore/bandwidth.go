package solanacreditscore

import (
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/pohpos/solana-credit-score/internal/config"
	"github.com/pohpos/solana-credit-score/internal/latitude"
	"github.com/pohpos/solana-credit-score/internal/style"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var bandwidthCmd = &cobra.Command{
	Use:          "bandwidth",
	Short:        "show bandwidth usage against the hosting provider quota for the current billing cycle",
	SilenceUsage: true,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.NewFromFile(configPath)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to load config")
		}

		client, err := latitude.NewFromConfig(&cfg.Latitude)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create latitude client")
		}

		usage, err := client.BandwidthUsage()
		if errors.Is(err, latitude.ErrDisabled) {
			log.Warn().Msg("latitude is disabled - set latitude.api_key in the config or the SOLANA_CREDIT_SCORE_LATITUDE_API_KEY env var")
			return
		}
		if err != nil {
			log.Fatal().Err(err).Msg("failed to get bandwidth usage")
		}

		fmt.Println(renderBandwidthUsage(usage))
	},
}

func init() {
	rootCmd.AddCommand(bandwidthCmd)
}

// renderBandwidthUsage renders the bandwidth usage as a table, warning when a
// direction is close to quota
func renderBandwidthUsage(usage *latitude.BandwidthUsage) string {
	rows := [][]string{
		{"quota", humanize.Comma(int64(usage.QuotaGB)) + " GB"},
		{"inbound", fmt.Sprintf("%s GB (%s)", humanize.Comma(int64(usage.InboundGB)), renderUsagePercent(usage.InboundPercent))},
		{"outbound", fmt.Sprintf("%s GB (%s)", humanize.Comma(int64(usage.OutboundGB)), renderUsagePercent(usage.OutboundPercent))},
	}

	return style.RenderTable([]string{"traffic", "billing cycle usage"}, rows, nil)
}

func renderUsagePercent(percent uint64) string {
	rendered := fmt.Sprintf("%d%%", percent)
	if percent >= 80 {
		return style.RenderWarningString(rendered)
	}
	return style.RenderHealthyString(rendered, false)
}
