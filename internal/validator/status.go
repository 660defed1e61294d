package validator

import (
	solanago "github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/pohpos/solana-credit-score/internal/epoch"
)

// Status is a point-in-time performance snapshot for one validator in one
// epoch
type Status struct {
	Epoch              uint64
	EpochProgress      uint64
	Credits            uint64
	VoteDistance       uint64
	DelegatedStake     uint64
	LeaderSlotsCount   int
	LeaderSlotsElapsed int64
	BlocksProduced     int64
	SkipRate           float64
	IsDelinquent       bool
}

// Status computes the performance snapshot of this validator for the given
// epoch. It returns nil without error when the vote account is in neither the
// current nor the delinquent set.
func (v *Validator) Status(targetEpoch uint64) (*Status, error) {
	voteAccounts, err := v.solanaRPCClient.GetVoteAccounts(&v.VotePubkey)
	if err != nil {
		return nil, err
	}

	isDelinquent := len(voteAccounts.Current) == 0
	accounts := voteAccounts.Current
	if isDelinquent {
		accounts = voteAccounts.Delinquent
	}
	if len(accounts) == 0 {
		v.logger.Debug().
			Str("vote_pubkey", v.VotePubkey.String()).
			Msg("vote account not found in current or delinquent sets")
		return nil, nil
	}
	account := accounts[0]

	info, err := v.solanaRPCClient.GetEpochInfo()
	if err != nil {
		return nil, err
	}

	window, err := epoch.WindowFor(info, targetEpoch)
	if err != nil {
		return nil, err
	}

	identity := account.NodePubkey

	leaderSlotsElapsed, blocksProduced, skipRate, err := v.blockProductionFor(identity, window)
	if err != nil {
		return nil, err
	}

	leaderSlotsCount, err := v.leaderSlotsCountFor(identity, window.FirstSlot)
	if err != nil {
		return nil, err
	}

	epochProgress := uint64(100)
	if info.Epoch == targetEpoch {
		epochProgress = info.SlotIndex * 100 / info.SlotsInEpoch
	}

	return &Status{
		Epoch:              targetEpoch,
		EpochProgress:      epochProgress,
		Credits:            epochCreditsFor(account, targetEpoch),
		VoteDistance:       voteDistance(account),
		DelegatedStake:     account.ActivatedStake / solanago.LAMPORTS_PER_SOL,
		LeaderSlotsCount:   leaderSlotsCount,
		LeaderSlotsElapsed: leaderSlotsElapsed,
		BlocksProduced:     blocksProduced,
		SkipRate:           skipRate,
		IsDelinquent:       isDelinquent,
	}, nil
}

// blockProductionFor returns the elapsed leader slots, produced blocks and
// skip rate of the identity over the slot window. An identity absent from the
// block production result has simply had no leader slots yet.
func (v *Validator) blockProductionFor(identity solanago.PublicKey, window epoch.Window) (leaderSlots, blocksProduced int64, skipRate float64, err error) {
	byIdentity, err := v.solanaRPCClient.GetBlockProduction(identity, window)
	if err != nil {
		return 0, 0, 0, err
	}

	production, ok := byIdentity[identity]
	if !ok {
		return 0, 0, 0, nil
	}

	leaderSlots, blocksProduced = production[0], production[1]
	if leaderSlots > 0 {
		skipRate = 100 * float64(leaderSlots-blocksProduced) / float64(leaderSlots)
	}
	return leaderSlots, blocksProduced, skipRate, nil
}

// leaderSlotsCountFor returns how many slots the identity is scheduled to
// lead in the epoch containing firstSlot, 0 when the schedule is unavailable
// or the identity has none
func (v *Validator) leaderSlotsCountFor(identity solanago.PublicKey, firstSlot uint64) (int, error) {
	schedule, err := v.solanaRPCClient.GetLeaderSchedule(firstSlot, identity)
	if err != nil {
		return 0, err
	}
	if schedule == nil {
		return 0, nil
	}
	return len(schedule[identity]), nil
}

// epochCreditsFor returns the credits the account earned in the given epoch,
// 0 when the account has no entry for that epoch. Entries are
// (epoch, cumulative credits, previous cumulative credits) triples.
func epochCreditsFor(account rpc.VoteAccountsResult, targetEpoch uint64) uint64 {
	for _, entry := range account.EpochCredits {
		if len(entry) < 3 || entry[0] < 0 || uint64(entry[0]) != targetEpoch {
			continue
		}
		credits, prevCredits := entry[1], entry[2]
		if credits <= prevCredits {
			return 0
		}
		return uint64(credits - prevCredits)
	}
	return 0
}

// voteDistance returns how far the account's last vote is ahead of its root
// slot. The upstream invariant is last vote >= root slot but it is not
// trusted here.
func voteDistance(account rpc.VoteAccountsResult) uint64 {
	if account.LastVote < account.RootSlot {
		return 0
	}
	return account.LastVote - account.RootSlot
}
