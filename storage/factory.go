package storage

import (
	"github.com/multiversx/mx-chain-storage-go/leveldb"
	"github.com/multiversx/mx-chain-storage-go/lrucache"
	"github.com/multiversx/mx-chain-storage-go/memorydb"
	"github.com/multiversx/mx-chain-storage-go/storageUnit"

	"github.com/polyshard/ps-chain-go/config"
)

// NewStorageUnitFromConfig creates a cached LevelDB backed storage unit from
// the given configuration
func NewStorageUnitFromConfig(storageConfig config.StorageConfig) (Storer, error) {
	cache, err := lrucache.NewCache(int(storageConfig.Cache.Capacity))
	if err != nil {
		return nil, err
	}

	db, err := leveldb.NewDB(
		storageConfig.DB.FilePath,
		storageConfig.DB.BatchDelaySeconds,
		storageConfig.DB.MaxBatchSize,
		storageConfig.DB.MaxOpenFiles,
	)
	if err != nil {
		return nil, err
	}

	return storageUnit.NewStorageUnit(cache, db)
}

// NewMemoryStorageUnit creates a storage unit backed by an in-memory map,
// used in tests and ephemeral runs
func NewMemoryStorageUnit() (Storer, error) {
	cache, err := lrucache.NewCache(1000)
	if err != nil {
		return nil, err
	}

	return storageUnit.NewStorageUnit(cache, memorydb.New())
}
