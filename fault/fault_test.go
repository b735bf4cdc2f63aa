// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/registryd/fault"
)

var (
	ErrExistsOne     = fault.ExistsError("exists one ")
	ErrExistsTwo     = fault.ExistsError("exists two")
	ErrInvalidOne    = fault.InvalidError("invalid one")
	ErrInvalidTwo    = fault.InvalidError("invalid two")
	ErrNotFoundOne   = fault.NotFoundError("not found one")
	ErrNotFoundTwo   = fault.NotFoundError("not found two")
	ErrPermissionOne = fault.PermissionError("permission one")
	ErrBalanceOne    = fault.BalanceError("balance one")
	ErrProcessOne    = fault.ProcessError("process one")
	ErrProcessTwo    = fault.ProcessError("process two")
	ErrRecordOne     = fault.RecordError("record one")
	ErrRecordTwo     = fault.RecordError("record two")
)

// test that various errors can be subclassed
func TestClasses(t *testing.T) {
	errorList := []struct {
		err        error
		exists     bool
		invalid    bool
		notFound   bool
		permission bool
		balance    bool
		process    bool
		record     bool
	}{
		{ErrExistsOne, true, false, false, false, false, false, false},
		{ErrExistsTwo, true, false, false, false, false, false, false},
		{ErrInvalidOne, false, true, false, false, false, false, false},
		{ErrInvalidTwo, false, true, false, false, false, false, false},
		{ErrNotFoundOne, false, false, true, false, false, false, false},
		{ErrNotFoundTwo, false, false, true, false, false, false, false},
		{ErrPermissionOne, false, false, false, true, false, false, false},
		{ErrBalanceOne, false, false, false, false, true, false, false},
		{ErrProcessOne, false, false, false, false, false, true, false},
		{ErrProcessTwo, false, false, false, false, false, true, false},
		{ErrRecordOne, false, false, false, false, false, false, true},
		{ErrRecordTwo, false, false, false, false, false, false, true},
	}

	for i, e := range errorList {
		err := e.err
		assert.Equal(t, e.exists, fault.IsErrExists(err), "%d: exists for err = %v", i, err)
		assert.Equal(t, e.invalid, fault.IsErrInvalid(err), "%d: invalid for err = %v", i, err)
		assert.Equal(t, e.notFound, fault.IsErrNotFound(err), "%d: not found for err = %v", i, err)
		assert.Equal(t, e.permission, fault.IsErrPermission(err), "%d: permission for err = %v", i, err)
		assert.Equal(t, e.balance, fault.IsErrBalance(err), "%d: balance for err = %v", i, err)
		assert.Equal(t, e.process, fault.IsErrProcess(err), "%d: process for err = %v", i, err)
		assert.Equal(t, e.record, fault.IsErrRecord(err), "%d: record for err = %v", i, err)
	}
}

func TestLookup(t *testing.T) {
	for _, e := range []error{
		fault.IdRetired,
		fault.InvalidCheckpointAncestry,
		fault.InsufficientBalance,
		fault.UnregisterableUser,
	} {
		assert.Equal(t, e, fault.Lookup(e.Error()), "lookup of %q", e)
		assert.True(t, fault.IsDispatchError(e), "dispatch error: %v", e)
	}

	err := fault.Lookup("something unexpected")
	assert.True(t, fault.IsErrProcess(err), "unknown text class")
	assert.Equal(t, "something unexpected", err.Error())

	assert.False(t, fault.IsDispatchError(fault.InvalidSignature))
	assert.False(t, fault.IsDispatchError(nil))

	// submission errors come back typed but are not dispatch outcomes
	assert.Equal(t, fault.NonceTooLow, fault.Lookup(fault.NonceTooLow.Error()))
	assert.False(t, fault.IsDispatchError(fault.NonceTooLow))
}
