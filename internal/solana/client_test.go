package solana

import (
	"context"
	"errors"
	"testing"

	solanago "github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/gagliardetto/solana-go/rpc/jsonrpc"
	"github.com/pohpos/solana-credit-score/internal/constants"
	"github.com/pohpos/solana-credit-score/internal/epoch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockRPCClient is a mock implementation of the RPC client interface
type MockRPCClient struct {
	mock.Mock
}

func (m *MockRPCClient) GetEpochInfo(ctx context.Context, commitment rpc.CommitmentType) (*rpc.GetEpochInfoResult, error) {
	args := m.Called(ctx, commitment)
	return args.Get(0).(*rpc.GetEpochInfoResult), args.Error(1)
}

func (m *MockRPCClient) GetVoteAccounts(ctx context.Context, opts *rpc.GetVoteAccountsOpts) (*rpc.GetVoteAccountsResult, error) {
	args := m.Called(ctx, opts)
	return args.Get(0).(*rpc.GetVoteAccountsResult), args.Error(1)
}

func (m *MockRPCClient) GetBlockWithOpts(ctx context.Context, slot uint64, opts *rpc.GetBlockOpts) (*rpc.GetBlockResult, error) {
	args := m.Called(ctx, slot, opts)
	return args.Get(0).(*rpc.GetBlockResult), args.Error(1)
}

func (m *MockRPCClient) GetBlockProductionWithOpts(ctx context.Context, opts *rpc.GetBlockProductionOpts) (*rpc.GetBlockProductionResult, error) {
	args := m.Called(ctx, opts)
	return args.Get(0).(*rpc.GetBlockProductionResult), args.Error(1)
}

func (m *MockRPCClient) GetLeaderScheduleWithOpts(ctx context.Context, opts *rpc.GetLeaderScheduleOpts) (rpc.GetLeaderScheduleResult, error) {
	args := m.Called(ctx, opts)
	return args.Get(0).(rpc.GetLeaderScheduleResult), args.Error(1)
}

// createTestClient creates a test client with a mock RPC client
func createTestClient(maxScanSlots uint64) (*Client, *MockRPCClient) {
	rpcMock := &MockRPCClient{}
	client := &Client{
		rpcClient:    rpcMock,
		maxScanSlots: maxScanSlots,
	}
	return client, rpcMock
}

func testEpochInfo() *rpc.GetEpochInfoResult {
	return &rpc.GetEpochInfoResult{
		Epoch:        500,
		AbsoluteSlot: 216_001_000,
		SlotIndex:    1_000,
		SlotsInEpoch: 432_000,
	}
}

func slotSkippedError(code int) error {
	return &jsonrpc.RPCError{Code: code, Message: "slot was skipped"}
}

func TestGetEpochInfo(t *testing.T) {
	client, rpcMock := createTestClient(0)

	expected := testEpochInfo()
	rpcMock.On("GetEpochInfo", mock.Anything, rpc.CommitmentConfirmed).Return(expected, nil)

	info, err := client.GetEpochInfo()
	require.NoError(t, err)
	assert.Equal(t, expected, info)
	rpcMock.AssertExpectations(t)
}

func TestGetEpochInfo_Error(t *testing.T) {
	client, rpcMock := createTestClient(0)

	rpcMock.On("GetEpochInfo", mock.Anything, rpc.CommitmentConfirmed).
		Return((*rpc.GetEpochInfoResult)(nil), errors.New("rpc down"))

	info, err := client.GetEpochInfo()
	assert.Error(t, err)
	assert.Nil(t, info)
}

func TestGetVoteAccounts_FiltersByVotePubkey(t *testing.T) {
	client, rpcMock := createTestClient(0)

	votePubkey := solanago.NewWallet().PublicKey()
	expected := &rpc.GetVoteAccountsResult{
		Current: []rpc.VoteAccountsResult{{VotePubkey: votePubkey}},
	}

	rpcMock.On("GetVoteAccounts", mock.Anything, mock.MatchedBy(func(opts *rpc.GetVoteAccountsOpts) bool {
		return opts.Commitment == rpc.CommitmentConfirmed && opts.VotePubkey != nil && opts.VotePubkey.Equals(votePubkey)
	})).Return(expected, nil)

	voteAccounts, err := client.GetVoteAccounts(&votePubkey)
	require.NoError(t, err)
	assert.Equal(t, expected, voteAccounts)
	rpcMock.AssertExpectations(t)
}

func TestGetEpochCommissions_SkipsSkippedSlots(t *testing.T) {
	client, rpcMock := createTestClient(0)

	votePubkey := solanago.NewWallet().PublicKey()
	otherPubkey := solanago.NewWallet().PublicKey()
	commission := uint8(7)

	// first slot of epoch 499
	firstSlot := uint64(215_568_000)

	rpcMock.On("GetBlockWithOpts", mock.Anything, firstSlot, mock.Anything).
		Return((*rpc.GetBlockResult)(nil), slotSkippedError(constants.JSONRPCSlotSkipped))
	rpcMock.On("GetBlockWithOpts", mock.Anything, firstSlot+1, mock.Anything).
		Return((*rpc.GetBlockResult)(nil), slotSkippedError(constants.JSONRPCLongTermStorageSlotSkipped))
	rpcMock.On("GetBlockWithOpts", mock.Anything, firstSlot+2, mock.Anything).
		Return(&rpc.GetBlockResult{
			Rewards: []rpc.BlockReward{
				{Pubkey: votePubkey, RewardType: rpc.RewardTypeVoting, Commission: &commission},
				// voting reward with no commission is dropped
				{Pubkey: otherPubkey, RewardType: rpc.RewardTypeVoting},
				// non-voting rewards are dropped
				{Pubkey: otherPubkey, RewardType: rpc.RewardTypeFee, Commission: &commission},
			},
		}, nil)

	commissions, err := client.GetEpochCommissions(testEpochInfo(), 499)
	require.NoError(t, err)
	assert.Len(t, commissions, 1)
	assert.Equal(t, commission, commissions[votePubkey])
	rpcMock.AssertExpectations(t)
}

func TestGetEpochCommissions_NonSkipErrorAborts(t *testing.T) {
	client, rpcMock := createTestClient(0)

	firstSlot := uint64(215_568_000)
	rpcMock.On("GetBlockWithOpts", mock.Anything, firstSlot, mock.Anything).
		Return((*rpc.GetBlockResult)(nil), errors.New("connection refused"))

	commissions, err := client.GetEpochCommissions(testEpochInfo(), 499)
	require.Error(t, err)
	assert.Nil(t, commissions)

	var fetchErr *BlockFetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, firstSlot, fetchErr.Slot)
}

func TestGetEpochCommissions_ScanIsBounded(t *testing.T) {
	client, rpcMock := createTestClient(3)

	// every slot in the scan budget is skipped
	rpcMock.On("GetBlockWithOpts", mock.Anything, mock.Anything, mock.Anything).
		Return((*rpc.GetBlockResult)(nil), slotSkippedError(constants.JSONRPCSlotSkipped))

	commissions, err := client.GetEpochCommissions(testEpochInfo(), 499)
	require.Error(t, err)
	assert.Nil(t, commissions)
	assert.Contains(t, err.Error(), "no block found for epoch 499")
	rpcMock.AssertNumberOfCalls(t, "GetBlockWithOpts", 3)
}

func TestGetEpochCommissions_FutureEpoch(t *testing.T) {
	client, _ := createTestClient(0)

	commissions, err := client.GetEpochCommissions(testEpochInfo(), 501)
	require.Error(t, err)
	assert.Nil(t, commissions)

	var futureErr *epoch.FutureEpochError
	assert.True(t, errors.As(err, &futureErr))
}

func TestGetBlockProduction(t *testing.T) {
	client, rpcMock := createTestClient(0)

	identity := solanago.NewWallet().PublicKey()
	window := epoch.Window{FirstSlot: 100, LastSlot: 200}

	expected := rpc.IdentityToSlotsBlocks{
		identity: [2]int64{10, 9},
	}

	rpcMock.On("GetBlockProductionWithOpts", mock.Anything, mock.MatchedBy(func(opts *rpc.GetBlockProductionOpts) bool {
		return opts.Identity != nil && opts.Identity.Equals(identity) &&
			opts.Range != nil && opts.Range.FirstSlot == window.FirstSlot &&
			opts.Range.LastSlot != nil && *opts.Range.LastSlot == window.LastSlot
	})).Return(&rpc.GetBlockProductionResult{
		Value: rpc.BlockProductionResult{ByIdentity: expected},
	}, nil)

	byIdentity, err := client.GetBlockProduction(identity, window)
	require.NoError(t, err)
	assert.Equal(t, expected, byIdentity)
	rpcMock.AssertExpectations(t)
}

func TestGetLeaderSchedule(t *testing.T) {
	client, rpcMock := createTestClient(0)

	identity := solanago.NewWallet().PublicKey()
	firstSlot := uint64(215_568_000)

	expected := rpc.GetLeaderScheduleResult{
		identity: []uint64{1, 5, 9},
	}

	rpcMock.On("GetLeaderScheduleWithOpts", mock.Anything, mock.MatchedBy(func(opts *rpc.GetLeaderScheduleOpts) bool {
		return opts.Epoch != nil && *opts.Epoch == firstSlot &&
			opts.Identity != nil && opts.Identity.Equals(identity)
	})).Return(expected, nil)

	schedule, err := client.GetLeaderSchedule(firstSlot, identity)
	require.NoError(t, err)
	assert.Equal(t, expected, schedule)
	rpcMock.AssertExpectations(t)
}

func TestIsSlotSkippedError(t *testing.T) {
	assert.True(t, isSlotSkippedError(slotSkippedError(constants.JSONRPCSlotSkipped)))
	assert.True(t, isSlotSkippedError(slotSkippedError(constants.JSONRPCLongTermStorageSlotSkipped)))
	assert.False(t, isSlotSkippedError(slotSkippedError(-32000)))
	assert.False(t, isSlotSkippedError(errors.New("not an rpc error")))
}
