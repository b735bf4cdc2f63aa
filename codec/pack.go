// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package codec

// AppendVarint64 - append a Varint64 to a buffer
func AppendVarint64(buffer []byte, value uint64) []byte {
	return append(buffer, ToVarint64(value)...)
}

// AppendBytes - append a length prefixed byte slice
func AppendBytes(buffer []byte, data []byte) []byte {
	buffer = AppendVarint64(buffer, uint64(len(data)))
	return append(buffer, data...)
}

// AppendString - append a length prefixed string
func AppendString(buffer []byte, s string) []byte {
	buffer = AppendVarint64(buffer, uint64(len(s)))
	return append(buffer, s...)
}

// AppendFixed - append bytes whose length is implied by the field
func AppendFixed(buffer []byte, data []byte) []byte {
	return append(buffer, data...)
}

// AppendBool - append a single byte 0x00 or 0x01
func AppendBool(buffer []byte, b bool) []byte {
	if b {
		return append(buffer, 0x01)
	}
	return append(buffer, 0x00)
}
