package solanacreditscore

import (
	"context"
	"fmt"
	"strconv"

	"github.com/charmbracelet/huh/spinner"
	"github.com/dustin/go-humanize"
	solanago "github.com/gagliardetto/solana-go"
	"github.com/pohpos/solana-credit-score/internal/config"
	"github.com/pohpos/solana-credit-score/internal/style"
	"github.com/pohpos/solana-credit-score/internal/validator"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	creditsEpoch            uint64
	creditsIgnoreCommission bool
	creditsTop              int
	creditsCmd              = &cobra.Command{
		Use:          "credits",
		Short:        "rank all validators by staker credits earned in an epoch, net of commission",
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

			targetEpoch, err := v.TargetEpoch(creditsEpoch)
			if err != nil {
				log.Fatal().Err(err).Msg("failed to resolve target epoch")
			}

			var ranking []validator.RankedEntry
			sp := spinner.New().
				TitleStyle(style.SpinnerTitleStyle).
				Title(fmt.Sprintf("ranking validators by staker credits for epoch %d...", targetEpoch))
			sp.ActionWithErr(func(ctx context.Context) error {
				ranking, err = v.CreditRanking(targetEpoch, creditsIgnoreCommission)
				return err
			})
			if err := sp.Run(); err != nil {
				log.Fatal().Err(err).Msg("failed to rank validators")
			}

			fmt.Println(renderRanking(ranking, v.VotePubkey, creditsTop))
		},
	}
)

func init() {
	creditsCmd.Flags().Uint64Var(&creditsEpoch, "epoch", 0, "epoch to rank (default: current epoch)")
	creditsCmd.Flags().BoolVar(&creditsIgnoreCommission, "ignore-commission", false, "rank by gross epoch credits, as if every commission were zero")
	creditsCmd.Flags().IntVar(&creditsTop, "top", 25, "number of validators to show (0 shows all)")
	rootCmd.AddCommand(creditsCmd)
}

// renderRanking renders the ranking as a table, highlighting the configured
// validator's own row
func renderRanking(ranking []validator.RankedEntry, own solanago.PublicKey, top int) string {
	if top <= 0 || top > len(ranking) {
		top = len(ranking)
	}

	rows := make([][]string, 0, top)
	for i, entry := range ranking {
		if i >= top && entry.VotePubkey != own {
			continue
		}

		votePubkey := entry.VotePubkey.String()
		if entry.VotePubkey == own {
			votePubkey = style.RenderHealthyString(votePubkey, true)
		}

		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			votePubkey,
			humanize.Comma(int64(entry.StakerCredits)),
			humanize.Comma(int64(entry.ActivatedStake / solanago.LAMPORTS_PER_SOL)),
		})
	}

	return style.RenderTable([]string{"rank", "vote account", "staker credits", "stake (SOL)"}, rows, nil)
}
