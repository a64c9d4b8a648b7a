package main

import (
	"github.com/urfave/cli"
)

var (
	// configurationFile defines a flag for the path to the main toml configuration file
	configurationFile = cli.StringFlag{
		Name: "config",
		Usage: "The `" + filePathPlaceholder + "` for the main configuration file. This TOML file contains " +
			"the main configurations such as consensus, economics, storage and genesis parameters",
		Value: "./config/config.toml",
	}
	// validatorKeyFile defines a flag for the path to the validator's private key file
	validatorKeyFile = cli.StringFlag{
		Name: "validator-key-file",
		Usage: "The `" + filePathPlaceholder + "` for the file holding the hex-encoded ed25519 private key " +
			"of this validator",
		Value: "./config/validatorKey.hex",
	}
	// selfAddress defines a flag for the hex-encoded account address of this validator
	selfAddress = cli.StringFlag{
		Name:  "self-address",
		Usage: "The hex-encoded account address this node validates with. It must match a registered validator",
		Value: "",
	}
	// workingDirectory defines a flag for the path to the working directory where databases are kept
	workingDirectory = cli.StringFlag{
		Name:  "working-directory",
		Usage: "This flag specifies the `directory` where the node will store databases and logs",
		Value: "",
	}
	// logLevel defines the logger level
	logLevel = cli.StringFlag{
		Name: "log-level",
		Usage: "This flag specifies the logger `level(s)`. It can contain multiple comma-separated value. For example" +
			", if set to *:INFO the logs for all packages will have the INFO level. However, if set to *:INFO " +
			"and consensus/dpos:TRACE, the consensus engine will log at TRACE level",
		Value: "*:" + defaultLogLevel,
	}
)

const (
	filePathPlaceholder = "filepath"
	defaultLogLevel     = "INFO"
)
