// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package listeners_test

import (
	"encoding/json"
	"io/ioutil"
	"net/http"
	"strings"
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/registryd/block"
	"github.com/bitmark-inc/registryd/rpc/fixtures"
	"github.com/bitmark-inc/registryd/rpc/listeners"
)

func TestMetrics(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	block.RegisterMetrics()

	details := func() interface{} {
		return map[string]string{"chain": "testing"}
	}
	l, err := listeners.NewMetrics(&listeners.MetricsConfiguration{
		Listen: []string{"127.0.0.1:0"},
	}, logger.New(fixtures.LogCategory), details)
	require.Nil(t, err)
	require.Nil(t, l.Serve())
	defer l.Stop()

	base := "http://" + l.Addresses()[0]

	response, err := http.Get(base + "/metrics")
	require.Nil(t, err)
	body, _ := ioutil.ReadAll(response.Body)
	response.Body.Close()
	assert.Equal(t, http.StatusOK, response.StatusCode, "wrong status")
	assert.True(t, strings.Contains(string(body), "registry_block_height"), "missing block metric")

	response, err = http.Get(base + "/registryd/details")
	require.Nil(t, err)
	defer response.Body.Close()
	var decoded map[string]string
	require.Nil(t, json.NewDecoder(response.Body).Decode(&decoded))
	assert.Equal(t, "testing", decoded["chain"], "wrong details")
}

func TestMetricsAllow(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	l, err := listeners.NewMetrics(&listeners.MetricsConfiguration{
		Listen: []string{"127.0.0.1:0"},
		Allow:  []string{"10.0.0.0/8"},
	}, logger.New(fixtures.LogCategory), func() interface{} { return nil })
	require.Nil(t, err)
	require.Nil(t, l.Serve())
	defer l.Stop()

	response, err := http.Get("http://" + l.Addresses()[0] + "/metrics")
	require.Nil(t, err)
	response.Body.Close()
	assert.Equal(t, http.StatusForbidden, response.StatusCode, "loopback allowed")
}

func TestMetricsDisabled(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	l, err := listeners.NewMetrics(&listeners.MetricsConfiguration{}, logger.New(fixtures.LogCategory), nil)
	assert.Nil(t, err, "wrong error")
	assert.Nil(t, l, "listener without addresses")

	_, err = listeners.NewMetrics(&listeners.MetricsConfiguration{
		Listen: []string{"127.0.0.1:0"},
		Allow:  []string{"not a network"},
	}, logger.New(fixtures.LogCategory), nil)
	assert.NotNil(t, err, "bad allow accepted")
}
