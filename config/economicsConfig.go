package config

// EconomicsAddresses will hold economics addresses
type EconomicsAddresses struct {
	CommunityAddress string
}

// RewardsSettings will hold economics rewards settings
type RewardsSettings struct {
	BaseBlockReward       string
	PerTransactionReward  string
	ValidationReward      string
	HalvingIntervalBlocks uint64
	LeaderPercentage      float64
	CommunityPercentage   float64
}

// EconomicsConfig will hold economics config
type EconomicsConfig struct {
	EconomicsAddresses EconomicsAddresses
	RewardsSettings    RewardsSettings
}
