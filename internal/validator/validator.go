// Package validator derives performance and reward-ranking metrics for
// Solana validators from ledger state fetched over RPC.
package validator

import (
	"fmt"

	solanago "github.com/gagliardetto/solana-go"
	"github.com/pohpos/solana-credit-score/internal/constants"
	"github.com/pohpos/solana-credit-score/internal/solana"
	"github.com/pohpos/solana-credit-score/internal/utils"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Validator inspects a single validator's vote account and the wider
// validator set over a solana RPC client
type Validator struct {
	VotePubkey solanago.PublicKey
	Cluster    string

	logger          zerolog.Logger
	solanaRPCClient solana.ClientInterface
}

// NewSolanaRPCClient creates a new Solana RPC client
func (v *Validator) NewSolanaRPCClient(params solana.NewClientParams) solana.ClientInterface {
	return solana.NewRPCClient(params)
}

// NewFromConfig creates a new validator from a config
func NewFromConfig(cfg *Config) (*Validator, error) {
	validator := &Validator{
		logger: log.With().Str("component", "validator").Logger(),
	}
	err := validator.configure(cfg)
	if err != nil {
		return nil, err
	}
	return validator, nil
}

// configure initializes the validator from a config
func (v *Validator) configure(cfg *Config) error {
	v.logger.Debug().Msg("configuring...")
	defer v.logger.Debug().Msg("configuration done")

	err := v.configureVotePubkey(cfg.VotePubkey)
	if err != nil {
		return err
	}

	err = v.configureRPCClient(cfg)
	if err != nil {
		return err
	}

	return nil
}

// configureVotePubkey ensures the vote pubkey is valid and sets it
func (v *Validator) configureVotePubkey(votePubkey string) error {
	if votePubkey == "" {
		return fmt.Errorf("validator.vote_pubkey is required")
	}

	pubkey, err := solanago.PublicKeyFromBase58(votePubkey)
	if err != nil {
		return fmt.Errorf("invalid vote pubkey %s: %w", votePubkey, err)
	}

	v.VotePubkey = pubkey
	v.logger.Debug().
		Str("vote_pubkey", v.VotePubkey.String()).
		Msg("vote pubkey set")
	return nil
}

// configureRPCClient configures the solana rpc client
func (v *Validator) configureRPCClient(cfg *Config) error {
	err := utils.ValidateCluster(cfg.Cluster)
	if err != nil {
		return err
	}
	v.Cluster = cfg.Cluster

	rpcURL := constants.SolanaClusters[cfg.Cluster].RPC
	if cfg.RPCAddress != "" {
		if !utils.IsValidURL(cfg.RPCAddress) {
			return fmt.Errorf("invalid rpc address: %s, must be a valid url", cfg.RPCAddress)
		}
		rpcURL = cfg.RPCAddress
	}

	v.logger.Debug().
		Str("cluster", cfg.Cluster).
		Str("rpc_url", rpcURL).
		Uint64("commission_scan_max_slots", cfg.CommissionScan.MaxSlots).
		Msg("rpc client configured")

	v.solanaRPCClient = v.NewSolanaRPCClient(solana.NewClientParams{
		RPCURL:                 rpcURL,
		MaxCommissionScanSlots: cfg.CommissionScan.MaxSlots,
	})

	return nil
}

// TargetEpoch resolves the epoch to inspect. 0 means the current epoch.
func (v *Validator) TargetEpoch(requested uint64) (targetEpoch uint64, err error) {
	info, err := v.solanaRPCClient.GetEpochInfo()
	if err != nil {
		return 0, err
	}
	if requested == 0 {
		return info.Epoch, nil
	}
	return requested, nil
}
