// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/registryd/account"
	"github.com/bitmark-inc/registryd/configuration"
)

// authorSetter - the part of the producer a reload can change
type authorSetter interface {
	Author() *account.Account
	SetAuthor(*account.Account)
}

// re-read the configuration file after each change and apply the
// block author; everything else needs a restart
type reloader struct {
	log       *logger.L
	fileName  string
	variables map[string]string
	watcher   *configuration.Watcher
	producer  authorSetter
}

func (r *reloader) Run(args interface{}, shutdown <-chan struct{}) {
	r.log.Info("starting…")

loop:
	for {
		select {
		case <-shutdown:
			break loop
		case <-r.watcher.Remove():
			r.log.Warnf("configuration file removed: keeping current settings")
		case <-r.watcher.Change():
			r.reload()
		}
	}

	r.log.Info("stopped")
}

func (r *reloader) reload() {
	c, err := configuration.Get(r.fileName, r.variables)
	if nil != err {
		r.log.Errorf("reload error: %s", err)
		return
	}
	author, err := c.Author()
	if nil != err {
		r.log.Errorf("reload block author error: %s", err)
		return
	}

	current := r.producer.Author()
	if current == author || (nil != current && nil != author && *current == *author) {
		return
	}

	if nil == author {
		r.log.Warn("block author removed: all fees are burned")
	} else {
		r.log.Infof("block author: %s", author)
	}
	r.producer.SetAuthor(author)
}
