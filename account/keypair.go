// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

import (
	"bytes"
	"crypto/rand"

	"github.com/mr-tron/base58"
	"golang.org/x/crypto/ed25519"
	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/registryd/codec"
	"github.com/bitmark-inc/registryd/fault"
)

// prefix for deriving development key pairs from a name
const devSeedContext = "registry-dev-seed:"

// KeyPair - signing key for an account
type KeyPair struct {
	privateKey ed25519.PrivateKey
}

// NewKeyPair - generate a random key pair
func NewKeyPair() (*KeyPair, error) {
	_, privateKey, err := ed25519.GenerateKey(rand.Reader)
	if nil != err {
		return nil, err
	}
	return &KeyPair{privateKey: privateKey}, nil
}

// KeyPairFromSeed - deterministic key pair from a 32 byte seed
func KeyPairFromSeed(seed []byte) (*KeyPair, error) {
	if ed25519.SeedSize != len(seed) {
		return nil, fault.InvalidSeed
	}
	return &KeyPair{privateKey: ed25519.NewKeyFromSeed(seed)}, nil
}

// KeyPairFromString - development key pair derived from a name
//
// e.g. "Alice", "Bob"; never use these for real funds
func KeyPairFromString(name string) *KeyPair {
	seed := sha3.Sum256([]byte(devSeedContext + name))
	return &KeyPair{privateKey: ed25519.NewKeyFromSeed(seed[:])}
}

// KeyPairFromBase58 - decode the text form produced by String
func KeyPairFromBase58(s string) (*KeyPair, error) {
	decoded, err := base58.Decode(s)
	if nil != err || 0 == len(decoded) {
		return nil, fault.InvalidBase58
	}

	keyVariant, keyVariantLength := codec.FromVarint64(decoded)
	if 0 == keyVariantLength || keyVariant&publicKeyCode != privateKeyCode {
		return nil, fault.NotPrivateKey
	}
	if ED25519 != keyVariant>>algorithmShift {
		return nil, fault.InvalidKeyType
	}

	checksumStart := len(decoded) - checksumLength
	if checksumStart-keyVariantLength != ed25519.SeedSize {
		return nil, fault.InvalidKeyLength
	}
	checksum := sha3.Sum256(decoded[:checksumStart])
	if !bytes.Equal(checksum[:checksumLength], decoded[checksumStart:]) {
		return nil, fault.InvalidChecksum
	}
	return KeyPairFromSeed(decoded[keyVariantLength:checksumStart])
}

// Account - the public side of the key pair
func (keyPair *KeyPair) Account() Account {
	account := Account{}
	copy(account[:], keyPair.privateKey.Public().(ed25519.PublicKey))
	return account
}

// Seed - the 32 byte seed
func (keyPair *KeyPair) Seed() []byte {
	return keyPair.privateKey.Seed()
}

// Sign - sign a message
func (keyPair *KeyPair) Sign(message []byte) Signature {
	return ed25519.Sign(keyPair.privateKey, message)
}

// String - base58 of the seed with key variant and checksum
func (keyPair *KeyPair) String() string {
	keyVariant := byte(ED25519<<algorithmShift) | privateKeyCode
	buffer := append([]byte{keyVariant}, keyPair.Seed()...)
	checksum := sha3.Sum256(buffer)
	buffer = append(buffer, checksum[:checksumLength]...)
	return base58.Encode(buffer)
}
