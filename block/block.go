// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package block

import (
	"github.com/bitmark-inc/registryd/account"
	"github.com/bitmark-inc/registryd/codec"
	"github.com/bitmark-inc/registryd/digest"
	"github.com/bitmark-inc/registryd/fault"
	"github.com/bitmark-inc/registryd/transactionrecord"
)

// limits on a block
const (
	MaximumTransactions    = 10000
	maximumTransactionSize = 65536
)

// Header - the hashed part of a block
type Header struct {
	Number           uint64           `json:"number,string"`
	Parent           digest.Digest    `json:"parent"`
	Author           *account.Account `json:"author"`
	Timestamp        uint64           `json:"timestamp,string"`
	Randomness       digest.Digest    `json:"randomness"`
	TransactionsHash digest.Digest    `json:"transactionsHash"`
}

// Block - a header and the transactions it included, in order
type Block struct {
	Header
	Transactions []transactionrecord.Packed `json:"transactions"`
}

// Pack - header fields in order, the author as an option
func (header *Header) Pack() []byte {
	buffer := codec.AppendVarint64(nil, header.Number)
	buffer = codec.AppendFixed(buffer, header.Parent[:])
	buffer = codec.AppendBool(buffer, nil != header.Author)
	if nil != header.Author {
		buffer = codec.AppendFixed(buffer, header.Author[:])
	}
	buffer = codec.AppendVarint64(buffer, header.Timestamp)
	buffer = codec.AppendFixed(buffer, header.Randomness[:])
	return codec.AppendFixed(buffer, header.TransactionsHash[:])
}

// Hash - the block id
func (header *Header) Hash() digest.Digest {
	return digest.NewDigest(header.Pack())
}

// Randomness - seed for values generated while applying a block
func Randomness(parent digest.Digest, number uint64) digest.Digest {
	return digest.NewDigest(codec.AppendVarint64(parent[:], number))
}

// TransactionsHash - binds the ordered transaction ids into the header
func TransactionsHash(transactions []transactionrecord.Packed) digest.Digest {
	buffer := make([]byte, 0, len(transactions)*len(digest.Digest{}))
	for _, packed := range transactions {
		id := packed.Id()
		buffer = append(buffer, id[:]...)
	}
	return digest.NewDigest(buffer)
}

// Pack - header ++ count ++ length prefixed transactions
func (block *Block) Pack() []byte {
	buffer := block.Header.Pack()
	buffer = codec.AppendVarint64(buffer, uint64(len(block.Transactions)))
	for _, packed := range block.Transactions {
		buffer = codec.AppendBytes(buffer, packed)
	}
	return buffer
}

// Unpack - inverse of Block.Pack
func Unpack(buffer []byte) (*Block, error) {
	r := codec.NewReader(buffer)
	block := &Block{}

	block.Number = r.Varint64()
	copy(block.Parent[:], r.Fixed(len(block.Parent)))
	if r.Bool() {
		author := account.Account{}
		copy(author[:], r.Fixed(len(author)))
		block.Author = &author
	}
	block.Timestamp = r.Varint64()
	copy(block.Randomness[:], r.Fixed(len(block.Randomness)))
	copy(block.TransactionsHash[:], r.Fixed(len(block.TransactionsHash)))

	n := r.Varint64()
	if nil != r.Err() {
		return nil, r.Err()
	}
	if n > MaximumTransactions {
		return nil, fault.CorruptRecord
	}
	block.Transactions = make([]transactionrecord.Packed, 0, n)
	for i := uint64(0); i < n; i += 1 {
		block.Transactions = append(block.Transactions, r.Bytes(maximumTransactionSize))
	}
	if err := r.Finish(); nil != err {
		return nil, err
	}
	return block, nil
}
