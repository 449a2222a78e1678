// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package keypair - ed25519 identities that fund accounts
package keypair

import (
	"bytes"
	"crypto/rand"
	"encoding/json"
	"io/ioutil"
	"os"

	"github.com/mr-tron/base58"
	"golang.org/x/crypto/ed25519"

	"github.com/bitmark-inc/descriptor/address"
	"github.com/bitmark-inc/descriptor/fault"
)

var (
	ErrKeyLength        = fault.InvalidError("key length is invalid")
	ErrKeyMismatch      = fault.InvalidError("public key does not match private key")
	ErrUnknownKeyFormat = fault.InvalidError("unknown key file format")
)

// KeyPair - structure to hold public and private keys
type KeyPair struct {
	PublicKey  ed25519.PublicKey
	PrivateKey ed25519.PrivateKey
}

// RawKeyPair - text version of the keys
type RawKeyPair struct {
	PublicKey  string `json:"public_key"`
	PrivateKey string `json:"private_key"`
}

// New - create a new key pair from secure random data
func New() (*KeyPair, error) {
	publicKey, privateKey, err := ed25519.GenerateKey(rand.Reader)
	if nil != err {
		return nil, err
	}
	return &KeyPair{
		PublicKey:  publicKey,
		PrivateKey: privateKey,
	}, nil
}

// FromSeed - the key pair for a 32 byte seed
func FromSeed(seed []byte) (*KeyPair, error) {
	if ed25519.SeedSize != len(seed) {
		return nil, ErrKeyLength
	}
	privateKey := ed25519.NewKeyFromSeed(seed)
	return &KeyPair{
		PublicKey:  privateKey.Public().(ed25519.PublicKey),
		PrivateKey: privateKey,
	}, nil
}

// FromPrivateKey - rebuild a key pair from the 64 byte private key
func FromPrivateKey(privateKey []byte) (*KeyPair, error) {
	if ed25519.PrivateKeySize != len(privateKey) {
		return nil, ErrKeyLength
	}
	keyPair, err := FromSeed(privateKey[:ed25519.SeedSize])
	if nil != err {
		return nil, err
	}
	if !bytes.Equal(keyPair.PrivateKey, privateKey) {
		return nil, ErrKeyMismatch
	}
	return keyPair, nil
}

// FromRaw - decode the text version
func FromRaw(raw *RawKeyPair) (*KeyPair, error) {
	privateKey, err := base58.Decode(raw.PrivateKey)
	if nil != err {
		return nil, ErrKeyLength
	}
	keyPair, err := FromPrivateKey(privateKey)
	if nil != err {
		return nil, err
	}
	if "" != raw.PublicKey && raw.PublicKey != base58.Encode(keyPair.PublicKey) {
		return nil, ErrKeyMismatch
	}
	return keyPair, nil
}

// Address - the ledger account of the key pair
func (keyPair *KeyPair) Address() address.Address {
	a, _ := address.FromBytes(keyPair.PublicKey)
	return a
}

// Raw - the text version
func (keyPair *KeyPair) Raw() *RawKeyPair {
	return &RawKeyPair{
		PublicKey:  base58.Encode(keyPair.PublicKey),
		PrivateKey: base58.Encode(keyPair.PrivateKey),
	}
}

// Load - read a key file
//
// accepts the RawKeyPair JSON object or a JSON array of the 64
// private key bytes as written by the usual wallet tools
func Load(fileName string) (*KeyPair, error) {
	data, err := ioutil.ReadFile(fileName)
	if nil != err {
		return nil, err
	}
	data = bytes.TrimSpace(data)

	switch {
	case bytes.HasPrefix(data, []byte("{")):
		var raw RawKeyPair
		if err := json.Unmarshal(data, &raw); nil != err {
			return nil, err
		}
		return FromRaw(&raw)

	case bytes.HasPrefix(data, []byte("[")):
		var numbers []int
		if err := json.Unmarshal(data, &numbers); nil != err {
			return nil, err
		}
		privateKey := make([]byte, len(numbers))
		for i, n := range numbers {
			if n < 0 || n > 255 {
				return nil, ErrUnknownKeyFormat
			}
			privateKey[i] = byte(n)
		}
		return FromPrivateKey(privateKey)

	default:
		return nil, ErrUnknownKeyFormat
	}
}

// Save - write the key pair as a RawKeyPair JSON object, readable only
// by the owner
func (keyPair *KeyPair) Save(fileName string) error {
	data, err := json.MarshalIndent(keyPair.Raw(), "", "  ")
	if nil != err {
		return err
	}
	return ioutil.WriteFile(fileName, append(data, '\n'), 0600)
}

// LoadOrCreate - load a key file, creating a new key pair if the file
// does not exist; created is true for a new key pair
func LoadOrCreate(fileName string) (keyPair *KeyPair, created bool, err error) {
	keyPair, err = Load(fileName)
	if nil == err {
		return keyPair, false, nil
	}
	if !os.IsNotExist(err) {
		return nil, false, err
	}

	keyPair, err = New()
	if nil != err {
		return nil, false, err
	}
	if err := keyPair.Save(fileName); nil != err {
		return nil, false, err
	}
	return keyPair, true, nil
}
