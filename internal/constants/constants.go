package constants

import (
	"github.com/gagliardetto/solana-go/rpc"
)

const (
	// JSONRPCSlotSkipped is the JSON-RPC server error code returned when the
	// requested slot produced no block
	JSONRPCSlotSkipped = -32007

	// JSONRPCLongTermStorageSlotSkipped is the JSON-RPC server error code
	// returned when long-term storage reports the requested slot as skipped
	JSONRPCLongTermStorageSlotSkipped = -32009
)

var (
	// SolanaClusters is a map of solana clusters to their rpc urls
	SolanaClusters = map[string]rpc.Cluster{
		rpc.MainNetBeta.Name: rpc.MainNetBeta,
		rpc.TestNet.Name:     rpc.TestNet,
		rpc.DevNet.Name:      rpc.DevNet,
		rpc.LocalNet.Name:    rpc.LocalNet,
	}

	// SolanaClusterNames is a list of solana cluster names
	SolanaClusterNames []string
)

func init() {
	SolanaClusterNames = make([]string, 0, len(SolanaClusters))
	for name := range SolanaClusters {
		SolanaClusterNames = append(SolanaClusterNames, name)
	}
}
