package validator

// Config is the configuration for the validator being inspected
type Config struct {
	VotePubkey     string               `mapstructure:"vote_pubkey"`
	Cluster        string               `mapstructure:"cluster"`
	RPCAddress     string               `mapstructure:"rpc_address"`
	CommissionScan CommissionScanConfig `mapstructure:"commission_scan"`
}

// CommissionScanConfig bounds the skip-tolerant block scan used to recover
// historical commissions
type CommissionScanConfig struct {
	// MaxSlots is the maximum number of consecutive slots inspected before
	// the scan gives up. 0 means one full epoch of slots.
	MaxSlots uint64 `mapstructure:"max_slots"`
}
