package solana

import (
	"context"
	"errors"
	"fmt"

	solanago "github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/gagliardetto/solana-go/rpc/jsonrpc"
	"github.com/pohpos/solana-credit-score/internal/constants"
	"github.com/pohpos/solana-credit-score/internal/epoch"
	"github.com/rs/zerolog/log"
)

// RPCClientInterface defines the interface for RPC client operations - a solana rpc client interface
type RPCClientInterface interface {
	GetEpochInfo(ctx context.Context, commitment rpc.CommitmentType) (*rpc.GetEpochInfoResult, error)
	GetVoteAccounts(ctx context.Context, opts *rpc.GetVoteAccountsOpts) (*rpc.GetVoteAccountsResult, error)
	GetBlockWithOpts(ctx context.Context, slot uint64, opts *rpc.GetBlockOpts) (*rpc.GetBlockResult, error)
	GetBlockProductionWithOpts(ctx context.Context, opts *rpc.GetBlockProductionOpts) (*rpc.GetBlockProductionResult, error)
	GetLeaderScheduleWithOpts(ctx context.Context, opts *rpc.GetLeaderScheduleOpts) (rpc.GetLeaderScheduleResult, error)
}

// ClientInterface defines the interface for solana rpc operations - just simple wrappers around the rpc client
type ClientInterface interface {
	// GetEpochInfo returns the current epoch info snapshot
	GetEpochInfo() (*rpc.GetEpochInfoResult, error)
	// GetVoteAccounts returns the current and delinquent vote account sets,
	// optionally filtered to a single vote pubkey
	GetVoteAccounts(votePubkey *solanago.PublicKey) (*rpc.GetVoteAccountsResult, error)
	// GetEpochCommissions returns the per-validator voting commissions recorded
	// in the first non-skipped block of the given epoch
	GetEpochCommissions(info *rpc.GetEpochInfoResult, targetEpoch uint64) (map[solanago.PublicKey]uint8, error)
	// GetBlockProduction returns leader slot and block production counts per
	// identity over the given slot window
	GetBlockProduction(identity solanago.PublicKey, window epoch.Window) (rpc.IdentityToSlotsBlocks, error)
	// GetLeaderSchedule returns the leader schedule of the epoch containing
	// firstSlot, restricted to the given identity
	GetLeaderSchedule(firstSlot uint64, identity solanago.PublicKey) (rpc.GetLeaderScheduleResult, error)
}

// BlockFetchError is a non-skip failure while scanning an epoch for its first
// available block
type BlockFetchError struct {
	Slot  uint64
	Cause error
}

func (e *BlockFetchError) Error() string {
	return fmt.Sprintf("failed to fetch the block for slot %d: %v", e.Slot, e.Cause)
}

func (e *BlockFetchError) Unwrap() error {
	return e.Cause
}

// Client implements ClientInterface using an RPC client
type Client struct {
	rpcClient    RPCClientInterface
	maxScanSlots uint64
}

// NewClientParams is the parameters for creating a new client
type NewClientParams struct {
	RPCURL string
	// MaxCommissionScanSlots bounds the skip-tolerant block scan. 0 means
	// scan at most one full epoch of slots.
	MaxCommissionScanSlots uint64
}

// NewRPCClient creates a new client for the given solana rpc url
func NewRPCClient(params NewClientParams) ClientInterface {
	return &Client{
		rpcClient:    rpc.New(params.RPCURL),
		maxScanSlots: params.MaxCommissionScanSlots,
	}
}

// GetEpochInfo returns the current epoch info snapshot
func (c *Client) GetEpochInfo() (*rpc.GetEpochInfoResult, error) {
	info, err := c.rpcClient.GetEpochInfo(context.Background(), rpc.CommitmentConfirmed)
	if err != nil {
		return nil, fmt.Errorf("failed to get epoch info: %w", err)
	}
	return info, nil
}

// GetVoteAccounts returns the current and delinquent vote account sets,
// optionally filtered to a single vote pubkey
func (c *Client) GetVoteAccounts(votePubkey *solanago.PublicKey) (*rpc.GetVoteAccountsResult, error) {
	voteAccounts, err := c.rpcClient.GetVoteAccounts(
		context.Background(),
		&rpc.GetVoteAccountsOpts{
			Commitment: rpc.CommitmentConfirmed,
			VotePubkey: votePubkey,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get vote accounts: %w", err)
	}
	return voteAccounts, nil
}

// GetEpochCommissions scans the given epoch from its first slot for the first
// non-skipped block and returns the voting commissions recorded as rewards in
// that block. Skipped slots advance the scan by one slot; any other fetch
// failure aborts with a BlockFetchError. The scan is bounded so an epoch tail
// of skipped slots cannot stall the caller forever.
func (c *Client) GetEpochCommissions(info *rpc.GetEpochInfoResult, targetEpoch uint64) (map[solanago.PublicKey]uint8, error) {
	window, err := epoch.WindowFor(info, targetEpoch)
	if err != nil {
		return nil, err
	}

	maxAttempts := c.maxScanSlots
	if maxAttempts == 0 {
		maxAttempts = info.SlotsInEpoch
	}

	rewardsOnly := true
	maxSupportedTransactionVersion := uint64(0)

	slot := window.FirstSlot
	for attempts := uint64(0); attempts < maxAttempts; attempts++ {
		log.Debug().Uint64("slot", slot).Msg("fetching block")

		block, err := c.rpcClient.GetBlockWithOpts(
			context.Background(),
			slot,
			&rpc.GetBlockOpts{
				TransactionDetails:             rpc.TransactionDetailsNone,
				Rewards:                        &rewardsOnly,
				Commitment:                     rpc.CommitmentFinalized,
				MaxSupportedTransactionVersion: &maxSupportedTransactionVersion,
			},
		)
		if err != nil {
			if isSlotSkippedError(err) {
				log.Debug().Uint64("slot", slot).Msg("slot skipped")
				slot++
				continue
			}
			return nil, &BlockFetchError{Slot: slot, Cause: err}
		}

		commissions := make(map[solanago.PublicKey]uint8)
		for _, reward := range block.Rewards {
			if reward.RewardType != rpc.RewardTypeVoting || reward.Commission == nil {
				continue
			}
			commissions[reward.Pubkey] = *reward.Commission
		}
		return commissions, nil
	}

	return nil, fmt.Errorf(
		"no block found for epoch %d after scanning %d slots from slot %d",
		targetEpoch,
		maxAttempts,
		window.FirstSlot,
	)
}

// GetBlockProduction returns leader slot and block production counts per
// identity over the given slot window
func (c *Client) GetBlockProduction(identity solanago.PublicKey, window epoch.Window) (rpc.IdentityToSlotsBlocks, error) {
	lastSlot := window.LastSlot
	production, err := c.rpcClient.GetBlockProductionWithOpts(
		context.Background(),
		&rpc.GetBlockProductionOpts{
			Identity: &identity,
			Range: &rpc.SlotRangeRequest{
				FirstSlot: window.FirstSlot,
				LastSlot:  &lastSlot,
			},
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get block production for identity %s: %w", identity, err)
	}
	return production.Value.ByIdentity, nil
}

// GetLeaderSchedule returns the leader schedule of the epoch containing
// firstSlot, restricted to the given identity
func (c *Client) GetLeaderSchedule(firstSlot uint64, identity solanago.PublicKey) (rpc.GetLeaderScheduleResult, error) {
	schedule, err := c.rpcClient.GetLeaderScheduleWithOpts(
		context.Background(),
		&rpc.GetLeaderScheduleOpts{
			Epoch:    &firstSlot,
			Identity: &identity,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get leader schedule for identity %s: %w", identity, err)
	}
	return schedule, nil
}

// isSlotSkippedError reports whether the error is one of the two skip-class
// JSON-RPC server errors
func isSlotSkippedError(err error) bool {
	var rpcErr *jsonrpc.RPCError
	if !errors.As(err, &rpcErr) {
		return false
	}
	return rpcErr.Code == constants.JSONRPCSlotSkipped ||
		rpcErr.Code == constants.JSONRPCLongTermStorageSlotSkipped
}
