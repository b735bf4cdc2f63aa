// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"strconv"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/registryd/account"
	"github.com/bitmark-inc/registryd/client"
	"github.com/bitmark-inc/registryd/digest"
	"github.com/bitmark-inc/registryd/fault"
	"github.com/bitmark-inc/registryd/fees"
	"github.com/bitmark-inc/registryd/identifier"
	"github.com/bitmark-inc/registryd/transactionrecord"
)

// state shared by the commands of one run
type session struct {
	w       io.Writer
	e       io.Writer
	backend client.Backend
	remote  *client.Remote
}

// the backend, connecting on first use
func (s *session) connect(c *cli.Context) (client.Backend, error) {
	if nil != s.backend {
		return s.backend, nil
	}

	text := c.GlobalString("fingerprint")
	if "" == text {
		return nil, fmt.Errorf("missing certificate fingerprint")
	}
	fingerprint, err := parseFingerprint(text)
	if nil != err {
		return nil, err
	}

	address := c.GlobalString("connect")
	if c.GlobalBool("verbose") {
		fmt.Fprintf(s.e, "connect: %s\n", address)
	}
	remote, err := client.NewRemote(address, client.PinnedTLSConfig(fingerprint))
	if nil != err {
		return nil, err
	}
	s.remote = remote
	s.backend = remote
	return remote, nil
}

func (s *session) close() error {
	if nil == s.remote {
		return nil
	}
	err := s.remote.Close()
	s.remote = nil
	return err
}

// the signing key from --key or --dev
func (s *session) keyPair(c *cli.Context) (*account.KeyPair, error) {
	key := c.GlobalString("key")
	name := c.GlobalString("dev")

	switch {
	case "" != key && "" != name:
		return nil, fmt.Errorf("only one of key and dev may be given")
	case "" != key:
		return account.KeyPairFromBase58(key)
	case "" != name:
		return account.KeyPairFromString(name), nil
	default:
		return nil, fmt.Errorf("missing signing key: use --key or --dev")
	}
}

// the account argument at index, or the signer's account
func (s *session) accountArgument(c *cli.Context, index int) (account.Account, error) {
	if c.NArg() > index {
		return account.FromBase58(c.Args().Get(index))
	}
	keyPair, err := s.keyPair(c)
	if nil != err {
		return account.Account{}, err
	}
	return keyPair.Account(), nil
}

func (s *session) context(c *cli.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), c.GlobalDuration("timeout"))
}

// sign, submit, wait for inclusion and print the outcome
func (s *session) apply(c *cli.Context, message transactionrecord.Message) error {
	item, err := s.applyItem(c, message)
	if nil != item {
		if perr := printJson(s.w, item); nil != perr {
			return perr
		}
	}
	return err
}

// the item is also returned with the error of a failed message
func (s *session) applyItem(c *cli.Context, message transactionrecord.Message) (*appliedItem, error) {
	keyPair, err := s.keyPair(c)
	if nil != err {
		return nil, err
	}
	backend, err := s.connect(c)
	if nil != err {
		return nil, err
	}

	fee := c.GlobalUint64("fee")
	if 0 == fee {
		fee = fees.Minimum(message)
	}

	if c.GlobalBool("verbose") {
		name, _ := transactionrecord.RecordName(message)
		fmt.Fprintf(s.e, "message: %s  author: %s  fee: %d\n", name, keyPair.Account(), fee)
	}

	ctx, cancel := s.context(c)
	defer cancel()

	applied, err := client.New(backend).Apply(ctx, keyPair, message, fee)
	if nil == applied {
		return nil, err
	}
	return appliedResult(applied), err
}

// argument at index as an org or user id
func idArgument(c *cli.Context, index int) (identifier.Id, error) {
	if c.NArg() <= index {
		return "", fault.MissingParameters
	}
	return identifier.NewId(c.Args().Get(index))
}

// argument at index as a checkpoint id
func digestArgument(c *cli.Context, index int) (digest.Digest, error) {
	if c.NArg() <= index {
		return digest.Digest{}, fault.MissingParameters
	}
	return digest.FromHex(c.Args().Get(index))
}

// argument at index as a decimal amount
func amountArgument(c *cli.Context, index int) (uint64, error) {
	if c.NArg() <= index {
		return 0, fault.MissingParameters
	}
	amount, err := strconv.ParseUint(c.Args().Get(index), 10, 64)
	if nil != err {
		return 0, fmt.Errorf("invalid amount: %q", c.Args().Get(index))
	}
	return amount, nil
}

// argument at index as NAME@DOMAIN
func projectArgument(c *cli.Context, index int) (identifier.ProjectId, error) {
	if c.NArg() <= index {
		return identifier.ProjectId{}, fault.MissingParameters
	}
	return identifier.ParseProjectId(c.Args().Get(index))
}

func parseFingerprint(text string) ([32]byte, error) {
	var fingerprint [32]byte
	b, err := hex.DecodeString(text)
	if nil != err || len(b) != len(fingerprint) {
		return fingerprint, fmt.Errorf("fingerprint must be %d hex digits", 2*len(fingerprint))
	}
	copy(fingerprint[:], b)
	return fingerprint, nil
}
