package config

// CacheConfig will map the cache configuration
type CacheConfig struct {
	Type     string
	Capacity uint32
	Shards   uint32
}

// DBConfig will map the database configuration
type DBConfig struct {
	FilePath          string
	Type              string
	BatchDelaySeconds int
	MaxBatchSize      int
	MaxOpenFiles      int
}

// StorageConfig will map the storage unit configuration
type StorageConfig struct {
	Cache CacheConfig
	DB    DBConfig
}

// GeneralSettingsConfig will hold the general settings for a node
type GeneralSettingsConfig struct {
	ChainID  string
	LogLevel string
}

// ConsensusConfig will hold the consensus engine settings
type ConsensusConfig struct {
	BlockIntervalMs       uint64
	FinalityConfirmations uint64
	ShardCount            uint32
	BlocksPerEpoch        uint64
}

// NTPConfig will hold the configuration for NTP queries
type NTPConfig struct {
	Hosts               []string
	Port                int
	TimeoutMilliseconds int
	SyncPeriodSeconds   int
	Version             int
}

// GenesisValidatorConfig will hold one genesis validator entry
type GenesisValidatorConfig struct {
	Address string
	PubKey  string
	Stake   string
}

// GenesisConfig will hold the initial validator set
type GenesisConfig struct {
	Validators []GenesisValidatorConfig
}

// Config will hold the whole configuration of the node
type Config struct {
	GeneralSettings  GeneralSettingsConfig
	Consensus        ConsensusConfig
	Economics        EconomicsConfig
	ConsensusStorage StorageConfig
	NTPConfig        NTPConfig
	Genesis          GenesisConfig
}
