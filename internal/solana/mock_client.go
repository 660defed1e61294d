package solana

import (
	solanago "github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/pohpos/solana-credit-score/internal/epoch"
)

// MockClient is a mock implementation of ClientInterface for testing
type MockClient struct {
	getEpochInfo        func() (*rpc.GetEpochInfoResult, error)
	getVoteAccounts     func(votePubkey *solanago.PublicKey) (*rpc.GetVoteAccountsResult, error)
	getEpochCommissions func(info *rpc.GetEpochInfoResult, targetEpoch uint64) (map[solanago.PublicKey]uint8, error)
	getBlockProduction  func(identity solanago.PublicKey, window epoch.Window) (rpc.IdentityToSlotsBlocks, error)
	getLeaderSchedule   func(firstSlot uint64, identity solanago.PublicKey) (rpc.GetLeaderScheduleResult, error)
}

// NewMockClient creates a new mock client with default behaviors
func NewMockClient() *MockClient {
	return &MockClient{}
}

// WithGetEpochInfo sets a custom GetEpochInfo function
func (m *MockClient) WithGetEpochInfo(fn func() (*rpc.GetEpochInfoResult, error)) *MockClient {
	m.getEpochInfo = fn
	return m
}

// WithGetVoteAccounts sets a custom GetVoteAccounts function
func (m *MockClient) WithGetVoteAccounts(fn func(votePubkey *solanago.PublicKey) (*rpc.GetVoteAccountsResult, error)) *MockClient {
	m.getVoteAccounts = fn
	return m
}

// WithGetEpochCommissions sets a custom GetEpochCommissions function
func (m *MockClient) WithGetEpochCommissions(fn func(info *rpc.GetEpochInfoResult, targetEpoch uint64) (map[solanago.PublicKey]uint8, error)) *MockClient {
	m.getEpochCommissions = fn
	return m
}

// WithGetBlockProduction sets a custom GetBlockProduction function
func (m *MockClient) WithGetBlockProduction(fn func(identity solanago.PublicKey, window epoch.Window) (rpc.IdentityToSlotsBlocks, error)) *MockClient {
	m.getBlockProduction = fn
	return m
}

// WithGetLeaderSchedule sets a custom GetLeaderSchedule function
func (m *MockClient) WithGetLeaderSchedule(fn func(firstSlot uint64, identity solanago.PublicKey) (rpc.GetLeaderScheduleResult, error)) *MockClient {
	m.getLeaderSchedule = fn
	return m
}

// GetEpochInfo implements ClientInterface.GetEpochInfo
func (m *MockClient) GetEpochInfo() (*rpc.GetEpochInfoResult, error) {
	if m.getEpochInfo != nil {
		return m.getEpochInfo()
	}
	return &rpc.GetEpochInfoResult{}, nil
}

// GetVoteAccounts implements ClientInterface.GetVoteAccounts
func (m *MockClient) GetVoteAccounts(votePubkey *solanago.PublicKey) (*rpc.GetVoteAccountsResult, error) {
	if m.getVoteAccounts != nil {
		return m.getVoteAccounts(votePubkey)
	}
	return &rpc.GetVoteAccountsResult{}, nil
}

// GetEpochCommissions implements ClientInterface.GetEpochCommissions
func (m *MockClient) GetEpochCommissions(info *rpc.GetEpochInfoResult, targetEpoch uint64) (map[solanago.PublicKey]uint8, error) {
	if m.getEpochCommissions != nil {
		return m.getEpochCommissions(info, targetEpoch)
	}
	return map[solanago.PublicKey]uint8{}, nil
}

// GetBlockProduction implements ClientInterface.GetBlockProduction
func (m *MockClient) GetBlockProduction(identity solanago.PublicKey, window epoch.Window) (rpc.IdentityToSlotsBlocks, error) {
	if m.getBlockProduction != nil {
		return m.getBlockProduction(identity, window)
	}
	return rpc.IdentityToSlotsBlocks{}, nil
}

// GetLeaderSchedule implements ClientInterface.GetLeaderSchedule
func (m *MockClient) GetLeaderSchedule(firstSlot uint64, identity solanago.PublicKey) (rpc.GetLeaderScheduleResult, error) {
	if m.getLeaderSchedule != nil {
		return m.getLeaderSchedule(firstSlot, identity)
	}
	return rpc.GetLeaderScheduleResult{}, nil
}
