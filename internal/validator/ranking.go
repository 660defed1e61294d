package validator

import (
	"fmt"
	"math/bits"
	"sort"

	solanago "github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
)

// RankedEntry is one validator's staker-attributable credits for an epoch
type RankedEntry struct {
	StakerCredits  uint64
	VotePubkey     solanago.PublicKey
	ActivatedStake uint64
}

// CreditRanking ranks every known vote account by the epoch credits left to
// stakers after commission, descending. Ties keep the order the accounts were
// returned in. For a historical epoch the commission is recovered from the
// epoch's first available block; the current epoch uses the live commission
// field. ignoreCommission treats every commission as zero.
func (v *Validator) CreditRanking(targetEpoch uint64, ignoreCommission bool) ([]RankedEntry, error) {
	info, err := v.solanaRPCClient.GetEpochInfo()
	if err != nil {
		return nil, err
	}

	// the live commission field only describes the current epoch; older
	// epochs need the commissions recorded in the epoch's first block
	var epochCommissions map[solanago.PublicKey]uint8
	if targetEpoch != info.Epoch {
		epochCommissions, err = v.solanaRPCClient.GetEpochCommissions(info, targetEpoch)
		if err != nil {
			return nil, err
		}
	}

	voteAccounts, err := v.solanaRPCClient.GetVoteAccounts(nil)
	if err != nil {
		return nil, err
	}

	accounts := make([]rpc.VoteAccountsResult, 0, len(voteAccounts.Current)+len(voteAccounts.Delinquent))
	accounts = append(accounts, voteAccounts.Current...)
	accounts = append(accounts, voteAccounts.Delinquent...)

	entries := make([]RankedEntry, 0, len(accounts))
	for _, account := range accounts {
		stakerCredits := uint64(0)
		epochCredits := epochCreditsFor(account, targetEpoch)
		if epochCredits > 0 {
			commission := uint8(0)
			switch {
			case ignoreCommission:
			case epochCommissions != nil:
				var ok bool
				commission, ok = epochCommissions[account.VotePubkey]
				if !ok {
					return nil, fmt.Errorf(
						"no commission recorded for vote account %s in the first block of epoch %d",
						account.VotePubkey,
						targetEpoch,
					)
				}
			default:
				commission = account.Commission
			}

			stakerCredits = stakerCreditsFor(epochCredits, commission)

			v.logger.Debug().
				Str("vote_pubkey", account.VotePubkey.String()).
				Uint64("epoch_credits", epochCredits).
				Uint64("staker_credits", stakerCredits).
				Uint64("epoch", targetEpoch).
				Msg("staker credits computed")
		}

		entries = append(entries, RankedEntry{
			StakerCredits:  stakerCredits,
			VotePubkey:     account.VotePubkey,
			ActivatedStake: account.ActivatedStake,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].StakerCredits > entries[j].StakerCredits
	})

	return entries, nil
}

// stakerCreditsFor returns floor(credits * (100 - commission) / 100) using a
// 128-bit intermediate so large credit counts cannot overflow
func stakerCreditsFor(credits uint64, commission uint8) uint64 {
	if commission >= 100 {
		return 0
	}
	hi, lo := bits.Mul64(credits, uint64(100-commission))
	quo, _ := bits.Div64(hi, lo, 100)
	return quo
}
