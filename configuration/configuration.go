// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/registryd/account"
	"github.com/bitmark-inc/registryd/chain"
	"github.com/bitmark-inc/registryd/fault"
	"github.com/bitmark-inc/registryd/genesis"
	"github.com/bitmark-inc/registryd/producer"
	"github.com/bitmark-inc/registryd/reservoir"
	"github.com/bitmark-inc/registryd/rpc/listeners"
)

// basic defaults (directories and files are relative to the "DataDirectory" from Configuration file)
const (
	defaultDataDirectory = "" // this will error; use "." for the same directory as the config file

	defaultRegistryDatabase = "registry.leveldb"
	defaultTestingDatabase  = "testing.leveldb"
	defaultLocalDatabase    = "local.leveldb"

	defaultLogDirectory = "log"
	defaultLogFile      = "registryd.log"
	defaultLogCount     = 10          //  number of log files retained
	defaultLogSize      = 1024 * 1024 // rotate when <logfile> exceeds this size

	defaultRPCClients   = 10
	defaultRPCBandwidth = 25000000

	defaultCertificateFile = "registryd-rpc.crt"
	defaultPrivateKeyFile  = "registryd-rpc.key"
)

// LoglevelMap - to hold log levels
type LoglevelMap map[string]string

var defaultLogLevels = LoglevelMap{
	logger.DefaultTag: "critical",
}

// DatabaseType - location of the LevelDB store
type DatabaseType struct {
	Directory string `gluamapper:"directory" json:"directory"`
	Name      string `gluamapper:"name" json:"name"`
}

// EndowmentType - one initial balance
//
// the balance is text since Lua numbers cannot hold every uint64
type EndowmentType struct {
	Account string `gluamapper:"account" json:"account"`
	Balance string `gluamapper:"balance" json:"balance"`
}

// GenesisType - genesis block parameters
type GenesisType struct {
	Timestamp  uint64          `gluamapper:"timestamp" json:"timestamp"`
	Endowments []EndowmentType `gluamapper:"endowments" json:"endowments"`
}

// ReservoirType - pending pool settings
type ReservoirType struct {
	Expiry string `gluamapper:"expiry" json:"expiry"`
}

// Configuration - everything read from the registryd configuration file
type Configuration struct {
	DataDirectory string        `gluamapper:"data_directory" json:"data_directory"`
	PidFile       string        `gluamapper:"pidfile" json:"pidfile"`
	Chain         string        `gluamapper:"chain" json:"chain"`
	Database      DatabaseType  `gluamapper:"database" json:"database"`
	BlockInterval string        `gluamapper:"block_interval" json:"block_interval"`
	BlockAuthor   string        `gluamapper:"block_author" json:"block_author"`
	Genesis       GenesisType   `gluamapper:"genesis" json:"genesis"`
	Reservoir     ReservoirType `gluamapper:"reservoir" json:"reservoir"`

	ClientRPC listeners.RPCConfiguration     `gluamapper:"client_rpc" json:"client_rpc"`
	Metrics   listeners.MetricsConfiguration `gluamapper:"metrics" json:"metrics"`
	Logging   logger.Configuration           `gluamapper:"logging" json:"logging"`
}

// Get - read, decode and verify the configuration
func Get(configurationFileName string, variables map[string]string) (*Configuration, error) {

	configurationFileName, err := filepath.Abs(filepath.Clean(configurationFileName))
	if nil != err {
		return nil, err
	}

	// absolute path to the main directory
	dataDirectory, _ := filepath.Split(configurationFileName)

	// the mapper merges into existing maps
	logLevels := make(LoglevelMap, len(defaultLogLevels))
	for tag, level := range defaultLogLevels {
		logLevels[tag] = level
	}

	options := &Configuration{
		DataDirectory: defaultDataDirectory,
		PidFile:       "", // no PidFile by default
		Chain:         chain.Registry,

		Database: DatabaseType{
			Directory: "data",
			Name:      "",
		},

		BlockInterval: producer.DefaultInterval.String(),
		Reservoir: ReservoirType{
			Expiry: reservoir.DefaultExpiry.String(),
		},

		ClientRPC: listeners.RPCConfiguration{
			MaximumConnections: defaultRPCClients,
			Bandwidth:          defaultRPCBandwidth,
			Certificate:        defaultCertificateFile,
			PrivateKey:         defaultPrivateKeyFile,
		},

		Logging: logger.Configuration{
			Directory: defaultLogDirectory,
			File:      defaultLogFile,
			Size:      defaultLogSize,
			Count:     defaultLogCount,
			Levels:    logLevels,
		},
	}

	if err := ParseConfigurationFile(configurationFileName, options, variables); nil != err {
		return nil, err
	}

	// if the database file was not specified switch to the chain
	// default; abort if the chain name is not recognised
	options.Chain = strings.ToLower(options.Chain)
	if !chain.Valid(options.Chain) {
		return nil, fault.InvalidChain
	}

	if "" == options.Database.Name {
		switch options.Chain {
		case chain.Registry:
			options.Database.Name = defaultRegistryDatabase
		case chain.Testing:
			options.Database.Name = defaultTestingDatabase
		case chain.Local:
			options.Database.Name = defaultLocalDatabase
		}
	}

	// fail early on values only checked at startup
	if _, err := options.Interval(); nil != err {
		return nil, err
	}
	if _, err := options.Expiry(); nil != err {
		return nil, err
	}
	if _, err := options.Author(); nil != err {
		return nil, err
	}
	if _, err := options.GenesisParameters(); nil != err {
		return nil, err
	}

	// ensure absolute data directory
	if "" == options.DataDirectory || "~" == options.DataDirectory {
		return nil, fault.InvalidDataDirectory
	} else if "." == options.DataDirectory {
		options.DataDirectory = dataDirectory // same directory as the configuration file
	}
	options.DataDirectory = filepath.Clean(options.DataDirectory)

	// this directory must exist - i.e. must be created prior to running
	if fileInfo, err := os.Stat(options.DataDirectory); nil != err {
		return nil, err
	} else if !fileInfo.IsDir() {
		return nil, fault.InvalidDataDirectory
	}

	// force all relevant items to be absolute paths
	// if not, assign them to the data directory
	mustBeAbsolute := []*string{
		&options.Database.Directory,
		&options.Logging.Directory,
		&options.ClientRPC.Certificate,
		&options.ClientRPC.PrivateKey,
	}
	for _, f := range mustBeAbsolute {
		*f = ensureAbsolute(options.DataDirectory, *f)
	}

	// optional absolute paths i.e. blank or an absolute path
	if "" != options.PidFile {
		options.PidFile = ensureAbsolute(options.DataDirectory, options.PidFile)
	}

	// fail if any of these are not simple file names i.e. must not
	// contain path separator, then add the correct directory prefix,
	// file item is first and corresponding directory is second (or
	// nil if no prefix can be added)
	mustNotBePaths := [][2]*string{
		{&options.Database.Name, &options.Database.Directory},
		{&options.Logging.File, nil},
	}
	for _, f := range mustNotBePaths {
		switch filepath.Dir(*f[0]) {
		case "", ".":
			if nil != f[1] {
				*f[0] = ensureAbsolute(*f[1], *f[0])
			}
		default:
			return nil, fault.NotPlainFileName
		}
	}

	// create directories if they do not already exist
	for _, d := range []string{
		options.Database.Directory,
		options.Logging.Directory,
	} {
		if err := os.MkdirAll(d, 0o700); nil != err {
			return nil, err
		}
	}

	return options, nil
}

// Interval - time between produced blocks
func (c *Configuration) Interval() (time.Duration, error) {
	return parseDuration(c.BlockInterval)
}

// Expiry - how long a transaction may stay pending
func (c *Configuration) Expiry() (time.Duration, error) {
	return parseDuration(c.Reservoir.Expiry)
}

// Author - account receiving block rewards, nil if fees are burned
func (c *Configuration) Author() (*account.Account, error) {
	if "" == c.BlockAuthor {
		return nil, nil
	}
	a, err := account.FromBase58(c.BlockAuthor)
	if nil != err {
		return nil, fault.InvalidBlockAuthor
	}
	return &a, nil
}

// GenesisParameters - the genesis block for the configured chain
//
// development chains always endow the named development accounts
func (c *Configuration) GenesisParameters() (genesis.Parameters, error) {
	p := genesis.Parameters{
		Chain:     c.Chain,
		Timestamp: c.Genesis.Timestamp,
	}
	if chain.IsDevelopment(c.Chain) {
		p = genesis.DevelopmentParameters(c.Chain, c.Genesis.Timestamp)
	}

	for _, e := range c.Genesis.Endowments {
		a, err := account.FromBase58(e.Account)
		if nil != err {
			return genesis.Parameters{}, fault.InvalidEndowment
		}
		balance, err := strconv.ParseUint(e.Balance, 10, 64)
		if nil != err || 0 == balance {
			return genesis.Parameters{}, fault.InvalidEndowment
		}
		p.Endowments = append(p.Endowments, genesis.Endowment{
			Account: a,
			Balance: balance,
		})
	}
	return p, nil
}

func parseDuration(s string) (time.Duration, error) {
	d, err := time.ParseDuration(s)
	if nil != err || d <= 0 {
		return 0, fault.InvalidDuration
	}
	return d, nil
}

// ensureAbsolute - if path is relative then prepend directory
func ensureAbsolute(directory string, filePath string) string {
	if !filepath.IsAbs(filePath) {
		filePath = filepath.Join(directory, filePath)
	}
	return filepath.Clean(filePath)
}
