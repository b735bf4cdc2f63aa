// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

import (
	"bytes"

	"github.com/mr-tron/base58"
	"golang.org/x/crypto/ed25519"
	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/registryd/codec"
	"github.com/bitmark-inc/registryd/fault"
)

// enumeration of supported key algorithms
const (
	Nothing = iota // zero keytype **Just for Testing**
	ED25519 = iota
	// end of list (one greater than last item)
	algorithmLimit = iota
)

// miscellaneous constants
const (
	checksumLength = 4

	// bits in key code starting from LSB
	publicKeyCode  = 0x01
	privateKeyCode = 0x00

	algorithmShift = 4 // shift 4 bits to get algorithm
)

// Length - bytes in an account id
const Length = ed25519.PublicKeySize

// Account - an ed25519 public key identifying a balance holder
//
// signers, users and orgs are all identified by an Account
type Account [Length]byte

// FromBase58 - convert a Base58 encoded string to an account
func FromBase58(accountBase58Encoded string) (Account, error) {
	account := Account{}

	accountDecoded, err := base58.Decode(accountBase58Encoded)
	if nil != err || 0 == len(accountDecoded) {
		return account, fault.InvalidBase58
	}

	// parse the key variant
	keyVariant, keyVariantLength := codec.FromVarint64(accountDecoded)
	if 0 == keyVariantLength || keyVariant&publicKeyCode != publicKeyCode {
		return account, fault.NotPublicKey
	}

	// compute algorithm
	keyAlgorithm := keyVariant >> algorithmShift
	if ED25519 != keyAlgorithm {
		return account, fault.InvalidKeyType
	}

	keyLength := len(accountDecoded) - keyVariantLength - checksumLength
	if Length != keyLength {
		return account, fault.InvalidKeyLength
	}

	checksumStart := len(accountDecoded) - checksumLength
	checksum := sha3.Sum256(accountDecoded[:checksumStart])
	if !bytes.Equal(checksum[:checksumLength], accountDecoded[checksumStart:]) {
		return account, fault.InvalidChecksum
	}

	copy(account[:], accountDecoded[keyVariantLength:checksumStart])
	return account, nil
}

// FromBytes - convert a raw public key to an account
func FromBytes(buffer []byte) (Account, error) {
	account := Account{}
	if Length != len(buffer) {
		return account, fault.InvalidKeyLength
	}
	copy(account[:], buffer)
	return account, nil
}

// CheckSignature - verify the signature of a message
func (account Account) CheckSignature(message []byte, signature Signature) error {
	if ed25519.SignatureSize != len(signature) {
		return fault.InvalidSignature
	}
	if !ed25519.Verify(account[:], message, signature) {
		return fault.InvalidSignature
	}
	return nil
}

// Bytes - key variant followed by the public key
func (account Account) Bytes() []byte {
	keyVariant := byte(ED25519<<algorithmShift) | publicKeyCode
	return append([]byte{keyVariant}, account[:]...)
}

// String - base58 encoding of encoded key with checksum
func (account Account) String() string {
	buffer := account.Bytes()
	checksum := sha3.Sum256(buffer)
	buffer = append(buffer, checksum[:checksumLength]...)
	return base58.Encode(buffer)
}

// GoString - for %#v
func (account Account) GoString() string {
	return "<account:" + account.String() + ">"
}

// MarshalText - convert an account to its Base58 JSON form
func (account Account) MarshalText() ([]byte, error) {
	return []byte(account.String()), nil
}

// UnmarshalText - convert Base58 text to an account
func (account *Account) UnmarshalText(s []byte) error {
	a, err := FromBase58(string(s))
	if nil != err {
		return err
	}
	*account = a
	return nil
}
