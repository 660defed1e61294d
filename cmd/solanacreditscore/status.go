package solanacreditscore

import (
	"fmt"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/pohpos/solana-credit-score/internal/config"
	"github.com/pohpos/solana-credit-score/internal/style"
	"github.com/pohpos/solana-credit-score/internal/validator"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	statusEpoch uint64
	statusCmd   = &cobra.Command{
		Use:          "status",
		Short:        "show the configured validator's performance snapshot for an epoch",
		SilenceUsage: true,
		Run: func(cmd *cobra.Command, args []string) {
			cfg, err := config.NewFromFile(configPath)
			if err != nil {
				log.Fatal().Err(err).Msg("failed to load config")
			}

			v, err := validator.NewFromConfig(&cfg.Validator)
			if err != nil {
				log.Fatal().Err(err).Msg("failed to create validator")
			}

			targetEpoch, err := v.TargetEpoch(statusEpoch)
			if err != nil {
				log.Fatal().Err(err).Msg("failed to resolve target epoch")
			}

			status, err := v.Status(targetEpoch)
			if err != nil {
				log.Fatal().Err(err).Msg("failed to get validator status")
			}

			if status == nil {
				log.Warn().
					Str("vote_pubkey", v.VotePubkey.String()).
					Msg("validator not found in current or delinquent vote account sets")
				return
			}

			fmt.Println(renderStatus(status))
		},
	}
)

func init() {
	statusCmd.Flags().Uint64Var(&statusEpoch, "epoch", 0, "epoch to inspect (default: current epoch)")
	rootCmd.AddCommand(statusCmd)
}

// renderStatus renders the status snapshot as a two-column table
func renderStatus(status *validator.Status) string {
	health := style.RenderHealthyString("not delinquent", true)
	if status.IsDelinquent {
		health = style.RenderDelinquentString("!! delinquent !!", true)
	}

	rows := [][]string{
		{"epoch", strconv.FormatUint(status.Epoch, 10)},
		{"epoch progress", fmt.Sprintf("%d%%", status.EpochProgress)},
		{"health", health},
		{"delegated stake (SOL)", humanize.Comma(int64(status.DelegatedStake))},
		{"leader slots", strconv.Itoa(status.LeaderSlotsCount)},
		{"blocks produced", fmt.Sprintf("%d of %d", status.BlocksProduced, status.LeaderSlotsElapsed)},
		{"skip rate", fmt.Sprintf("%.2f%%", status.SkipRate)},
		{"vote distance", strconv.FormatUint(status.VoteDistance, 10)},
		{"vote credits", humanize.Comma(int64(status.Credits))},
	}

	return style.RenderTable([]string{"metric", "value"}, rows, nil)
}
