// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	cache "github.com/patrickmn/go-cache"
)

// Cache - pending writes of one transaction layer
type Cache interface {
	Get(string) (cacheData, bool)
	Set(int, string, []byte)
	Items() map[string]cacheData
	Clear()
}

const (
	dbPut = iota
	dbDelete
)

type dbCache struct {
	cache *cache.Cache
}

type cacheData struct {
	op    int
	value []byte
}

// pending writes must never expire and no janitor is needed
func newCache() Cache {
	return &dbCache{
		cache: cache.New(cache.NoExpiration, 0),
	}
}

// a deleted key is found with op == dbDelete so that lower
// layers and the database are shadowed
func (c *dbCache) Get(key string) (cacheData, bool) {
	obj, found := c.cache.Get(key)
	if !found {
		return cacheData{}, false
	}
	return obj.(cacheData), true
}

func (c *dbCache) Set(op int, key string, value []byte) {
	cached := cacheData{
		op:    op,
		value: value,
	}
	c.cache.Set(key, cached, cache.NoExpiration)
}

func (c *dbCache) Items() map[string]cacheData {
	items := c.cache.Items()
	result := make(map[string]cacheData, len(items))
	for k, item := range items {
		result[k] = item.Object.(cacheData)
	}
	return result
}

func (c *dbCache) Clear() {
	c.cache.Flush()
}
