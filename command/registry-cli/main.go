// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/registryd/client"
)

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

const defaultTimeout = 30 * time.Second

func main() {
	app := newApp(os.Stdout, os.Stderr, nil)

	err := app.Run(os.Args)
	if nil != err {
		fmt.Fprintf(app.ErrWriter, "terminated with error: %s\n", err)
		os.Exit(1)
	}
}

// build the command tree; a nil backend connects to the node given
// by the global flags
func newApp(w io.Writer, e io.Writer, backend client.Backend) *cli.App {

	s := &session{
		w:       w,
		e:       e,
		backend: backend,
	}

	app := cli.NewApp()
	app.Name = "registry-cli"
	app.Usage = "query and update a registryd node"
	app.Version = version
	app.HideVersion = true

	app.Writer = w
	app.ErrWriter = e

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: " verbose result",
		},
		cli.StringFlag{
			Name:   "connect, c",
			Value:  "127.0.0.1:2130",
			Usage:  " registryd RPC `HOST:PORT`",
			EnvVar: "REGISTRY_CONNECT",
		},
		cli.StringFlag{
			Name:   "fingerprint, f",
			Value:  "",
			Usage:  "*SHA3-256 `HEX` fingerprint of the node certificate",
			EnvVar: "REGISTRY_FINGERPRINT",
		},
		cli.StringFlag{
			Name:   "key, k",
			Value:  "",
			Usage:  " Base58 key pair `KEY` used to sign",
			EnvVar: "REGISTRY_KEY",
		},
		cli.StringFlag{
			Name:  "dev, d",
			Value: "",
			Usage: " sign as the development account `NAME`",
		},
		cli.Uint64Flag{
			Name:  "fee",
			Value: 0,
			Usage: " transaction fee `AMOUNT` (default is the minimum)",
		},
		cli.DurationFlag{
			Name:  "timeout, t",
			Value: defaultTimeout,
			Usage: " give up waiting after `DURATION`",
		},
	}

	domainFlag := cli.StringFlag{
		Name:  "domain",
		Value: "",
		Usage: " only projects of `DOMAIN` as org:ID or user:ID",
	}

	app.Commands = []cli.Command{
		{
			Name:   "generate",
			Usage:  "generate a new key pair",
			Action: s.runGenerate,
		},
		{
			Name:   "info",
			Usage:  "display node status",
			Action: s.runInfo,
		},
		{
			Name:      "balance",
			Usage:     "display the free balance of an account",
			ArgsUsage: "[ACCOUNT]",
			Action:    s.runBalance,
		},
		{
			Name:      "nonce",
			Usage:     "display the next nonce of an account",
			ArgsUsage: "[ACCOUNT]",
			Action:    s.runNonce,
		},
		{
			Name:      "status",
			Usage:     "display the status of a transaction",
			ArgsUsage: "TXID",
			Action:    s.runStatus,
		},
		{
			Name:      "transfer",
			Usage:     "transfer balance to another account",
			ArgsUsage: "ACCOUNT AMOUNT",
			Action:    s.runTransfer,
		},
		{
			Name:  "org",
			Usage: "org commands",
			Subcommands: []cli.Command{
				{
					Name:   "list",
					Usage:  "list all orgs",
					Action: s.runOrgList,
				},
				{
					Name:      "show",
					Usage:     "display one org",
					ArgsUsage: "ORG",
					Action:    s.runOrgShow,
				},
				{
					Name:      "register",
					Usage:     "register an org with the signer's user as member",
					ArgsUsage: "ORG",
					Action:    s.runOrgRegister,
				},
				{
					Name:      "unregister",
					Usage:     "unregister an org",
					ArgsUsage: "ORG",
					Action:    s.runOrgUnregister,
				},
				{
					Name:      "add-member",
					Usage:     "add a user to an org",
					ArgsUsage: "ORG USER",
					Action:    s.runOrgAddMember,
				},
				{
					Name:      "transfer",
					Usage:     "transfer balance from the org account",
					ArgsUsage: "ORG ACCOUNT AMOUNT",
					Action:    s.runOrgTransfer,
				},
			},
		},
		{
			Name:  "user",
			Usage: "user commands",
			Subcommands: []cli.Command{
				{
					Name:   "list",
					Usage:  "list all users",
					Action: s.runUserList,
				},
				{
					Name:      "show",
					Usage:     "display one user",
					ArgsUsage: "USER",
					Action:    s.runUserShow,
				},
				{
					Name:      "register",
					Usage:     "register a user for the signer's account",
					ArgsUsage: "USER",
					Action:    s.runUserRegister,
				},
				{
					Name:      "unregister",
					Usage:     "unregister the signer's user",
					ArgsUsage: "USER",
					Action:    s.runUserUnregister,
				},
			},
		},
		{
			Name:  "project",
			Usage: "project commands",
			Subcommands: []cli.Command{
				{
					Name:   "list",
					Usage:  "list projects",
					Flags:  []cli.Flag{domainFlag},
					Action: s.runProjectList,
				},
				{
					Name:      "show",
					Usage:     "display one project",
					ArgsUsage: "NAME@DOMAIN",
					Action:    s.runProjectShow,
				},
				{
					Name:      "register",
					Usage:     "register a project at an existing checkpoint",
					ArgsUsage: "NAME@DOMAIN CHECKPOINT",
					Flags: []cli.Flag{
						cli.StringFlag{
							Name:  "metadata, m",
							Value: "",
							Usage: " up to 128 bytes of `TEXT`",
						},
					},
					Action: s.runProjectRegister,
				},
				{
					Name:      "set-checkpoint",
					Usage:     "move a project to a descendant checkpoint",
					ArgsUsage: "NAME@DOMAIN CHECKPOINT",
					Action:    s.runProjectSetCheckpoint,
				},
			},
		},
		{
			Name:  "checkpoint",
			Usage: "checkpoint commands",
			Subcommands: []cli.Command{
				{
					Name:      "create",
					Usage:     "create a checkpoint of a project state",
					ArgsUsage: "[HASH]",
					Flags: []cli.Flag{
						cli.StringFlag{
							Name:  "parent, p",
							Value: "",
							Usage: " previous checkpoint `ID`",
						},
						cli.StringFlag{
							Name:  "file",
							Value: "",
							Usage: " hash the contents of `FILE` instead of giving HASH",
						},
					},
					Action: s.runCheckpointCreate,
				},
				{
					Name:      "show",
					Usage:     "display one checkpoint",
					ArgsUsage: "CHECKPOINT",
					Action:    s.runCheckpointShow,
				},
			},
		},
		{
			Name:  "version",
			Usage: "display registry-cli version",
			Action: func(c *cli.Context) error {
				fmt.Fprintf(c.App.Writer, "%s\n", version)
				return nil
			},
		},
	}

	app.After = func(c *cli.Context) error {
		return s.close()
	}

	return app
}
