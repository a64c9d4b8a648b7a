package main

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/multiversx/mx-chain-core-go/hashing/blake2b"
	"github.com/multiversx/mx-chain-core-go/marshal"
	crypto "github.com/multiversx/mx-chain-crypto-go"
	"github.com/multiversx/mx-chain-crypto-go/signing"
	"github.com/multiversx/mx-chain-crypto-go/signing/ed25519"
	"github.com/multiversx/mx-chain-crypto-go/signing/ed25519/singlesig"
	logger "github.com/multiversx/mx-chain-logger-go"
	"github.com/urfave/cli"

	"github.com/polyshard/ps-chain-go/config"
	"github.com/polyshard/ps-chain-go/consensus"
	"github.com/polyshard/ps-chain-go/consensus/dpos"
	"github.com/polyshard/ps-chain-go/consensus/validators"
	"github.com/polyshard/ps-chain-go/data/block"
	"github.com/polyshard/ps-chain-go/epochStart"
	"github.com/polyshard/ps-chain-go/ntp"
	"github.com/polyshard/ps-chain-go/process/economics"
	"github.com/polyshard/ps-chain-go/process/pool"
	"github.com/polyshard/ps-chain-go/process/proof"
	"github.com/polyshard/ps-chain-go/storage"
)

var log = logger.GetOrCreate("main")

const (
	defaultDBSubdirectory = "db"
	txPoolCapacity        = 30000
)

// transactionPoolManager extends the consensus-facing pool surface with the
// maintenance operations the node loop needs
type transactionPoolManager interface {
	consensus.TransactionPoolHandler
	AddTransaction(shardID uint32, tx *block.Transaction) error
	RemoveProcessed(shardID uint32, txs []*block.Transaction)
}

func main() {
	app := cli.NewApp()
	app.Name = "PolyShard Node CLI App"
	app.Version = "v1.0.0"
	app.Usage = "This binary runs a PolyShard validator node: it keeps the validator registry in sync, " +
		"produces blocks for the shards it is scheduled on and validates blocks received from peers"
	app.Flags = []cli.Flag{
		configurationFile,
		validatorKeyFile,
		selfAddress,
		workingDirectory,
		logLevel,
	}
	app.Authors = []cli.Author{
		{
			Name:  "The PolyShard Team",
			Email: "contact@polyshard.com",
		},
	}
	app.Action = startNode

	err := app.Run(os.Args)
	if err != nil {
		log.Error("node exited with error", "error", err.Error())
		os.Exit(1)
	}
}

func startNode(ctx *cli.Context) error {
	err := logger.SetLogLevel(ctx.GlobalString(logLevel.Name))
	if err != nil {
		return err
	}

	configurationFilePath := ctx.GlobalString(configurationFile.Name)
	cfg, err := config.LoadConfigFromFile(configurationFilePath)
	if err != nil {
		return fmt.Errorf("cannot load configuration file %s: %w", configurationFilePath, err)
	}
	log.Info("configuration loaded", "file", configurationFilePath, "chain id", cfg.GeneralSettings.ChainID)

	workingDir := ctx.GlobalString(workingDirectory.Name)
	if len(workingDir) == 0 {
		workingDir, err = os.Getwd()
		if err != nil {
			return err
		}
	}

	selfAddressBytes, err := decodeSelfAddress(ctx.GlobalString(selfAddress.Name))
	if err != nil {
		return err
	}

	suite := ed25519.NewEd25519()
	keyGenerator := signing.NewKeyGenerator(suite)
	privateKey, err := loadValidatorKey(ctx.GlobalString(validatorKeyFile.Name), keyGenerator)
	if err != nil {
		return err
	}

	validatorPool, err := createGenesisValidatorPool(cfg.Genesis)
	if err != nil {
		return err
	}

	rewardsHandler, err := economics.NewRewardsData(cfg.Economics)
	if err != nil {
		return err
	}

	cfg.ConsensusStorage.DB.FilePath = filepath.Join(workingDir, defaultDBSubdirectory, cfg.ConsensusStorage.DB.FilePath)
	bootStorer, err := storage.NewStorageUnitFromConfig(cfg.ConsensusStorage)
	if err != nil {
		return err
	}
	defer func() {
		errClose := bootStorer.Close()
		log.LogIfError(errClose)
	}()

	syncTimer := ntp.NewSyncTime(cfg.NTPConfig, nil)
	syncTimer.StartSyncingTime()
	defer func() {
		errClose := syncTimer.Close()
		log.LogIfError(errClose)
	}()

	txPool, err := pool.NewTransactionPool(txPoolCapacity)
	if err != nil {
		return err
	}

	proofProvider, err := proof.NewHashProofProvider(blake2b.NewBlake2b())
	if err != nil {
		return err
	}

	epochStartNotifier := epochStart.NewEpochStartSubscriptionHandler()
	epochStartNotifier.RegisterHandler(epochStart.MakeHandlerForEpochStart(func(epoch uint64) {
		log.Info("epoch started", "epoch", epoch)
	}))

	engine, err := dpos.NewDPoSConsensus(dpos.ArgsDPoSConsensus{
		ConsensusConfig:    cfg.Consensus,
		ValidatorPool:      validatorPool,
		SelfAddress:        selfAddressBytes,
		PrivateKey:         privateKey,
		KeyGenerator:       keyGenerator,
		SingleSigner:       &singlesig.Ed25519Signer{},
		Marshalizer:        &marshal.JsonMarshalizer{},
		Hasher:             blake2b.NewBlake2b(),
		TransactionPool:    txPool,
		ProofProvider:      proofProvider,
		RewardsHandler:     rewardsHandler,
		BootStorer:         bootStorer,
		EpochStartNotifier: epochStartNotifier,
		SyncTimer:          syncTimer,
	})
	if err != nil {
		return err
	}

	errLoad := engine.LoadState()
	if errLoad != nil {
		log.Info("no previous consensus state found, starting from genesis", "reason", errLoad.Error())
	}

	log.Info("node is running",
		"address", selfAddressBytes,
		"height", engine.CurrentHeight(),
		"epoch", engine.CurrentEpoch())

	return runProductionLoop(engine, txPool, cfg.Consensus)
}

// runProductionLoop drives the consensus engine: on every block interval it
// checks, for each shard, whether the local validator is the scheduled
// producer and if so produces, validates and commits a block. It blocks
// until SIGINT or SIGTERM.
func runProductionLoop(engine consensus.ConsensusHandler, txPool transactionPoolManager, consensusConfig config.ConsensusConfig) error {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(time.Duration(consensusConfig.BlockIntervalMs) * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			err := produceScheduledBlocks(engine, txPool, consensusConfig.ShardCount)
			if err != nil {
				return err
			}
		case sig := <-sigs:
			log.Info("terminating at user's signal", "signal", sig.String())
			return nil
		}
	}
}

// produceScheduledBlocks returns an error only when a commit fails, which
// means the persisted consensus state can no longer be trusted and the node
// must stop participating
func produceScheduledBlocks(engine consensus.ConsensusHandler, txPool transactionPoolManager, shardCount uint32) error {
	height := engine.CurrentHeight()

	for shardID := uint32(0); shardID < shardCount; shardID++ {
		if !engine.IsScheduledProducer(height, shardID) {
			continue
		}

		producedBlock, err := engine.ProduceBlock(height, shardID)
		if err != nil {
			log.Warn("block production failed", "height", height, "shard", shardID, "error", err.Error())
			continue
		}

		err = engine.ValidateBlock(producedBlock)
		if err != nil {
			log.Warn("produced block failed validation", "height", height, "shard", shardID, "error", err.Error())
			continue
		}

		err = engine.CommitBlock(producedBlock)
		if err != nil {
			log.Error("block commit failed, stopping participation",
				"height", height, "shard", shardID, "error", err.Error())
			return fmt.Errorf("commit failed at height %d, shard %d: %w", height, shardID, err)
		}

		for _, shardData := range producedBlock.ShardData {
			txPool.RemoveProcessed(shardData.ShardID, shardData.Transactions)
		}

		log.Info("block committed",
			"height", height,
			"shard", shardID,
			"num txs", producedBlock.TxCount())

		// one block per height: the remaining shards get their turn at the
		// next heights
		break
	}

	return nil
}

func decodeSelfAddress(selfAddressHex string) ([]byte, error) {
	if len(selfAddressHex) == 0 {
		return nil, fmt.Errorf("missing required flag --%s", selfAddress.Name)
	}

	selfAddressBytes, err := hex.DecodeString(selfAddressHex)
	if err != nil {
		return nil, fmt.Errorf("invalid self address %s: %w", selfAddressHex, err)
	}

	return selfAddressBytes, nil
}

func loadValidatorKey(keyFilePath string, keyGenerator crypto.KeyGenerator) (crypto.PrivateKey, error) {
	contents, err := os.ReadFile(keyFilePath)
	if err != nil {
		return nil, fmt.Errorf("cannot read validator key file %s: %w", keyFilePath, err)
	}

	skBytes, err := hex.DecodeString(strings.TrimSpace(string(contents)))
	if err != nil {
		return nil, fmt.Errorf("invalid validator key in %s: %w", keyFilePath, err)
	}

	return keyGenerator.PrivateKeyFromByteArray(skBytes)
}

func createGenesisValidatorPool(genesis config.GenesisConfig) (dpos.ValidatorPoolManager, error) {
	validatorPool := validators.NewValidatorPool()

	for _, entry := range genesis.Validators {
		address, err := hex.DecodeString(entry.Address)
		if err != nil {
			return nil, fmt.Errorf("invalid genesis validator address %s: %w", entry.Address, err)
		}
		pubKey, err := hex.DecodeString(entry.PubKey)
		if err != nil {
			return nil, fmt.Errorf("invalid genesis validator public key %s: %w", entry.PubKey, err)
		}
		stake, ok := big.NewInt(0).SetString(entry.Stake, 10)
		if !ok {
			return nil, fmt.Errorf("invalid genesis validator stake %s", entry.Stake)
		}

		v, err := validators.NewValidator(address, pubKey, stake)
		if err != nil {
			return nil, err
		}
		err = validatorPool.AddValidator(v)
		if err != nil {
			return nil, err
		}
	}

	return validatorPool, nil
}
