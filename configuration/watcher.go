// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration

import (
	"os"
	"path/filepath"

	"github.com/bitmark-inc/logger"
	"github.com/fsnotify/fsnotify"
)

// Watcher - reports writes to and removal of the configuration file
type Watcher struct {
	log      *logger.L
	watcher  *fsnotify.Watcher
	filePath string
	change   chan struct{}
	remove   chan struct{}
}

// NewWatcher - watch an existing file
//
// the containing directory is watched so that editors replacing the
// file are still seen
func NewWatcher(fileName string, log *logger.L) (*Watcher, error) {
	filePath, err := filepath.Abs(filepath.Clean(fileName))
	if nil != err {
		return nil, err
	}

	if _, err := os.Stat(filePath); nil != err {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if nil != err {
		return nil, err
	}

	if err := watcher.Add(filepath.Dir(filePath)); nil != err {
		watcher.Close()
		return nil, err
	}

	return &Watcher{
		log:      log,
		watcher:  watcher,
		filePath: filePath,
		change:   make(chan struct{}, 1),
		remove:   make(chan struct{}, 1),
	}, nil
}

// Change - signalled after the file was written
func (w *Watcher) Change() <-chan struct{} {
	return w.change
}

// Remove - signalled after the file was removed or renamed away
func (w *Watcher) Remove() <-chan struct{} {
	return w.remove
}

// Run - background process forwarding file events until shutdown
func (w *Watcher) Run(args interface{}, shutdown <-chan struct{}) {
	w.log.Infof("watching: %s", w.filePath)
	defer w.watcher.Close()

loop:
	for {
		select {
		case <-shutdown:
			break loop

		case event, ok := <-w.watcher.Events:
			if !ok {
				break loop
			}
			if filepath.Clean(event.Name) != w.filePath {
				continue loop
			}
			w.log.Debugf("file event: %v", event)

			switch {
			case isRemove(event):
				w.log.Warnf("file: %s removed", w.filePath)
				send(w.remove)
			case isChange(event):
				send(w.change)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				break loop
			}
			w.log.Errorf("watcher error: %s", err)
		}
	}

	w.log.Info("stopped")
}

// coalesce events; a pending signal already covers this one
func send(ch chan<- struct{}) {
	select {
	case ch <- struct{}{}:
	default:
	}
}

func isRemove(event fsnotify.Event) bool {
	return 0 != event.Op&(fsnotify.Remove|fsnotify.Rename)
}

func isChange(event fsnotify.Event) bool {
	return 0 != event.Op&(fsnotify.Write|fsnotify.Create)
}
