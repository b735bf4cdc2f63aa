// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/getoptions"
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/registryd/background"
	"github.com/bitmark-inc/registryd/block"
	"github.com/bitmark-inc/registryd/configuration"
	"github.com/bitmark-inc/registryd/counter"
	"github.com/bitmark-inc/registryd/genesis"
	"github.com/bitmark-inc/registryd/producer"
	"github.com/bitmark-inc/registryd/reservoir"
	"github.com/bitmark-inc/registryd/rpc/certificate"
	"github.com/bitmark-inc/registryd/rpc/listeners"
	"github.com/bitmark-inc/registryd/rpc/node"
	"github.com/bitmark-inc/registryd/rpc/server"
	"github.com/bitmark-inc/registryd/storage"
)

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

// main program
func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	flags := []getoptions.Option{
		{Long: "help", HasArg: getoptions.NO_ARGUMENT, Short: 'h'},
		{Long: "verbose", HasArg: getoptions.NO_ARGUMENT, Short: 'v'},
		{Long: "quiet", HasArg: getoptions.NO_ARGUMENT, Short: 'q'},
		{Long: "version", HasArg: getoptions.NO_ARGUMENT, Short: 'V'},
		{Long: "config-file", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'c'},
		{Long: "memory-stats", HasArg: getoptions.NO_ARGUMENT, Short: 'm'},
	}

	program, options, arguments, err := getoptions.GetOS(flags)
	if nil != err {
		exitwithstatus.Message("%s: getoptions error: %s", program, err)
	}

	if len(options["version"]) > 0 {
		processSetupCommand(program, []string{"version"})
		return
	}

	if len(options["help"]) > 0 {
		processSetupCommand(program, []string{"help"})
		return
	}

	// these commands do not require the configuration and
	// process data needed for initial setup
	if len(arguments) > 0 && processSetupCommand(program, arguments) {
		return
	}

	if 1 != len(options["config-file"]) {
		exitwithstatus.Message("%s: only one config-file option is required, %d were detected", program, len(options["config-file"]))
	}

	// read options and parse the configuration file
	configurationFile := options["config-file"][0]
	variables := configurationVariables()
	theConfiguration, err := configuration.Get(configurationFile, variables)
	if nil != err {
		exitwithstatus.Message("%s: failed to read configuration from: %q  error: %s", program, configurationFile, err)
	}

	// these commands require the configuration and
	// perform enquiries on the configuration
	if len(arguments) > 0 && processConfigCommand(arguments, theConfiguration) {
		return
	}

	// start logging
	if err = logger.Initialise(theConfiguration.Logging); nil != err {
		exitwithstatus.Message("%s: logger setup failed with error: %s", program, err)
	}
	defer logger.Finalise()

	// create a logger channel for the main program
	log := logger.New("main")
	defer log.Info("finished")
	log.Info("starting…")
	log.Infof("version: %s", version)
	log.Debugf("theConfiguration: %v", theConfiguration)

	// optional PID file
	// use if not running under a supervisor program like daemon(8)
	if "" != theConfiguration.PidFile {
		lockFile, err := os.OpenFile(theConfiguration.PidFile, os.O_WRONLY|os.O_EXCL|os.O_CREATE, os.ModeExclusive|0600)
		if err != nil {
			if os.IsExist(err) {
				exitwithstatus.Message("%s: another instance is already running", program)
			}
			exitwithstatus.Message("%s: PID file: %q creation failed, error: %s", program, theConfiguration.PidFile, err)
		}
		fmt.Fprintf(lockFile, "%d\n", os.Getpid())
		lockFile.Close()
		defer os.Remove(theConfiguration.PidFile)
	}

	// general info
	log.Infof("chain: %s", theConfiguration.Chain)
	log.Infof("database: %q", theConfiguration.Database.Name)
	log.Debugf("%s = %#v", "ClientRPC", theConfiguration.ClientRPC)
	log.Debugf("%s = %#v", "Metrics", theConfiguration.Metrics)

	// start the data storage
	log.Info("initialise storage")
	store, err := storage.Open(theConfiguration.Database.Name, false)
	if nil != err {
		log.Criticalf("storage initialise error: %s", err)
		exitwithstatus.Message("storage initialise error: %s", err)
	}
	defer store.Close()

	parameters, _ := theConfiguration.GenesisParameters()
	genesisHash, err := genesis.Initialise(store, parameters)
	if nil != err {
		log.Criticalf("genesis initialise error: %s", err)
		exitwithstatus.Message("genesis initialise error: %s", err)
	}
	log.Infof("genesis: %s", genesisHash)

	// these commands are allowed to access the internal database
	if len(arguments) > 0 && processDataCommand(log, arguments, store) {
		return
	}

	log.Info("initialise block")
	executor, err := block.NewExecutor(logger.New("block"), store)
	if nil != err {
		log.Criticalf("block initialise error: %s", err)
		exitwithstatus.Message("block initialise error: %s", err)
	}
	block.RegisterMetrics()

	// the start of the configuration already validated these
	interval, _ := theConfiguration.Interval()
	expiry, _ := theConfiguration.Expiry()
	author, _ := theConfiguration.Author()
	if nil == author {
		log.Warn("no block author: all fees are burned")
	}

	log.Info("initialise reservoir")
	pool := reservoir.New(logger.New("reservoir"), executor, expiry)
	blockProducer := producer.New(logger.New("producer"), executor, pool, author, interval)

	processes := background.Processes{blockProducer}

	// follow configuration changes to the block author
	watcher, err := configuration.NewWatcher(configurationFile, logger.New("watcher"))
	if nil != err {
		log.Warnf("configuration watcher error: %s", err)
	} else {
		processes = append(processes, watcher, &reloader{
			log:       logger.New("reload"),
			fileName:  configurationFile,
			variables: variables,
			watcher:   watcher,
			producer:  blockProducer,
		})
	}

	// if memory logging enabled
	if len(options["memory-stats"]) > 0 {
		processes = append(processes, &memstats{})
	}

	running := background.Start(processes, nil)
	defer running.Stop()

	// start up the rpc listeners
	log.Info("initialise rpc")
	tlsConfig, fingerprint, err := certificate.Load(log, "client_rpc", theConfiguration.ClientRPC.Certificate, theConfiguration.ClientRPC.PrivateKey)
	if nil != err {
		log.Criticalf("rpc certificate error: %s", err)
		exitwithstatus.Message("rpc certificate error: %s", err)
	}

	start := time.Now()
	rpcCount := counter.Counter{}
	rpcServer := server.Create(logger.New("rpc-server"), version, theConfiguration.Chain, store, pool, &rpcCount)

	rpcListener, err := listeners.NewRPC(&theConfiguration.ClientRPC, logger.New("rpc-listener"), &rpcCount, rpcServer, tlsConfig, fingerprint)
	if nil != err {
		log.Criticalf("rpc initialise error: %s", err)
		exitwithstatus.Message("rpc initialise error: %s", err)
	}
	if err := rpcListener.Serve(); nil != err {
		log.Criticalf("rpc serve error: %s", err)
		exitwithstatus.Message("rpc serve error: %s", err)
	}
	defer rpcListener.Stop()
	log.Infof("rpc listening on: %v", rpcListener.Addresses())

	details := node.New(logger.New("details"), store, pool, theConfiguration.Chain, start, version, &rpcCount)
	metricsListener, err := listeners.NewMetrics(&theConfiguration.Metrics, logger.New("metrics"), func() interface{} {
		reply := node.InfoReply{}
		if err := details.Info(&node.InfoArguments{}, &reply); nil != err {
			return map[string]string{"error": err.Error()}
		}
		return reply
	})
	if nil != err {
		log.Criticalf("metrics initialise error: %s", err)
		exitwithstatus.Message("metrics initialise error: %s", err)
	}
	if nil != metricsListener {
		if err := metricsListener.Serve(); nil != err {
			log.Criticalf("metrics serve error: %s", err)
			exitwithstatus.Message("metrics serve error: %s", err)
		}
		defer metricsListener.Stop()
		log.Infof("metrics listening on: %v", metricsListener.Addresses())
	}

	// wait for CTRL-C before shutting down to allow manual testing
	if 0 == len(options["quiet"]) {
		fmt.Printf("\n\nWaiting for CTRL-C (SIGINT) or 'kill <pid>' (SIGTERM)…")
	}

	// turn Signals into channel messages
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	sig := <-ch
	log.Infof("received signal: %v", sig)
	if 0 == len(options["quiet"]) {
		fmt.Printf("\nreceived signal: %v\n", sig)
		fmt.Printf("\nshutting down…\n")
	}

	log.Info("shutting down…")
}

// environment items made visible to the configuration script
func configurationVariables() map[string]string {
	variables := map[string]string{}
	for _, name := range []string{"REGISTRY_AUTHOR", "REGISTRY_DATA"} {
		if value, ok := os.LookupEnv(name); ok {
			variables[name] = value
		}
	}
	return variables
}
