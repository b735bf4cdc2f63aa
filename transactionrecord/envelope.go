// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transactionrecord

import (
	"encoding/json"

	"github.com/bitmark-inc/registryd/account"
	"github.com/bitmark-inc/registryd/codec"
	"github.com/bitmark-inc/registryd/digest"
	"github.com/bitmark-inc/registryd/fault"
)

// limit on the signature field when decoding
const maxSignatureLength = 1024

// Transaction - a message signed by its author
//
// the nonce orders the author's transactions and the genesis hash
// binds the transaction to one chain
type Transaction struct {
	Message     Message           `json:"message"`
	Author      account.Account   `json:"author"`
	Nonce       uint64            `json:"nonce"`
	GenesisHash digest.Digest     `json:"genesisHash"`
	Fee         uint64            `json:"fee"`
	Signature   account.Signature `json:"signature"`
}

// SigningPayload - everything except the signature
func (tx *Transaction) SigningPayload() []byte {
	buffer := []byte(tx.Message.Pack())
	buffer = codec.AppendFixed(buffer, tx.Author[:])
	buffer = codec.AppendVarint64(buffer, tx.Nonce)
	buffer = codec.AppendFixed(buffer, tx.GenesisHash[:])
	return codec.AppendVarint64(buffer, tx.Fee)
}

// Sign - set the author and sign
func (tx *Transaction) Sign(keyPair *account.KeyPair) {
	tx.Author = keyPair.Account()
	tx.Signature = keyPair.Sign(tx.SigningPayload())
}

// CheckSignature - verify the signature against the author
func (tx *Transaction) CheckSignature() error {
	return tx.Author.CheckSignature(tx.SigningPayload(), tx.Signature)
}

// Pack - signing payload ++ signature
func (tx *Transaction) Pack() Packed {
	return codec.AppendBytes(tx.SigningPayload(), tx.Signature)
}

// Id - the transaction id is the hash of its packed form
func (tx *Transaction) Id() digest.Digest {
	return digest.NewDigest(tx.Pack())
}

// Id - the transaction id of a packed transaction
func (record Packed) Id() digest.Digest {
	return digest.NewDigest(record)
}

// UnpackTransaction - decode a packed transaction
//
// the signature is not checked
func (record Packed) UnpackTransaction() (*Transaction, error) {
	r := codec.NewReader(record)
	message, err := unpackMessage(r)
	if nil != err {
		return nil, err
	}

	tx := &Transaction{
		Message: message,
	}
	tx.Author = readAccount(r)
	tx.Nonce = r.Varint64()
	tx.GenesisHash = readDigest(r)
	tx.Fee = r.Varint64()
	tx.Signature = r.Bytes(maxSignatureLength)
	if err := r.Finish(); nil != err {
		return nil, fault.NotTransactionPack
	}
	return tx, nil
}

// MarshalJSON - include the message name so the message can be read back
func (tx *Transaction) MarshalJSON() ([]byte, error) {
	name, _ := RecordName(tx.Message)
	type plain Transaction
	return json.Marshal(struct {
		Record string `json:"record"`
		*plain
	}{
		Record: name,
		plain:  (*plain)(tx),
	})
}
