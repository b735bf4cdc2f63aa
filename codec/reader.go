// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package codec

import (
	"github.com/bitmark-inc/registryd/fault"
)

// Reader - sequential decoder for packed records
//
// the first error is sticky: all later reads return zero values and
// Err reports the original failure
type Reader struct {
	buffer []byte
	n      int
	err    error
}

// NewReader - start reading a packed record
func NewReader(buffer []byte) *Reader {
	return &Reader{
		buffer: buffer,
	}
}

// Err - the first error encountered
func (r *Reader) Err() error {
	return r.err
}

// Remaining - count of unread bytes
func (r *Reader) Remaining() int {
	return len(r.buffer) - r.n
}

// Finish - error if the record failed to decode or has trailing data
func (r *Reader) Finish() error {
	if nil != r.err {
		return r.err
	}
	if r.n != len(r.buffer) {
		return fault.TrailingBytes
	}
	return nil
}

// Varint64 - read one Varint64
func (r *Reader) Varint64() uint64 {
	if nil != r.err {
		return 0
	}
	value, count := FromVarint64(r.buffer[r.n:])
	if 0 == count {
		r.err = fault.Truncated
		return 0
	}
	r.n += count
	return value
}

// Byte - read a single byte
func (r *Reader) Byte() byte {
	b := r.Fixed(1)
	if nil == b {
		return 0
	}
	return b[0]
}

// Bool - read a byte written by AppendBool
func (r *Reader) Bool() bool {
	switch r.Byte() {
	case 0x00:
		return false
	case 0x01:
		return true
	default:
		if nil == r.err {
			r.err = fault.CorruptRecord
		}
		return false
	}
}

// Fixed - read exactly length bytes
//
// the result is a copy and safe to retain
func (r *Reader) Fixed(length int) []byte {
	if nil != r.err {
		return nil
	}
	if length < 0 || r.Remaining() < length {
		r.err = fault.Truncated
		return nil
	}
	result := make([]byte, length)
	copy(result, r.buffer[r.n:r.n+length])
	r.n += length
	return result
}

// Bytes - read a length prefixed byte slice of at most maximum bytes
func (r *Reader) Bytes(maximum int) []byte {
	length := r.Varint64()
	if nil != r.err {
		return nil
	}
	if length > uint64(maximum) {
		r.err = fault.CorruptRecord
		return nil
	}
	return r.Fixed(int(length))
}

// String - read a length prefixed string of at most maximum bytes
func (r *Reader) String(maximum int) string {
	return string(r.Bytes(maximum))
}
