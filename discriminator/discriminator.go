// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package discriminator - fixed width record tags
//
// A discriminator tags the first bytes of an account and also seeds
// the address of the account that describes it, so anyone knowing
// the (namespace, name) pair can locate both accounts.
package discriminator

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/bitmark-inc/descriptor/constants"
	"github.com/bitmark-inc/descriptor/fault"
)

// T - an 8 byte discriminator
type T [constants.DiscriminatorLength]byte

// Derive - first 8 bytes of SHA-256("namespace:name")
func Derive(namespace string, name string) T {
	digest := sha256.Sum256([]byte(namespace + ":" + name))
	var d T
	copy(d[:], digest[:constants.DiscriminatorLength])
	return d
}

// FromBytes - read a discriminator from the start of a buffer
func FromBytes(buffer []byte) (T, error) {
	var d T
	if len(buffer) < len(d) {
		return d, fault.ErrTruncated
	}
	copy(d[:], buffer)
	return d, nil
}

// Matches - true if the buffer starts with this discriminator
func (d T) Matches(buffer []byte) bool {
	return len(buffer) >= len(d) && bytes.Equal(d[:], buffer[:len(d)])
}

// Bytes - slice copy for use as a seed
func (d T) Bytes() []byte {
	b := make([]byte, len(d))
	copy(b, d[:])
	return b
}

// String - hex form
func (d T) String() string {
	return hex.EncodeToString(d[:])
}

// MarshalText - convert to hex text
func (d T) MarshalText() ([]byte, error) {
	size := hex.EncodedLen(len(d))
	buffer := make([]byte, size)
	hex.Encode(buffer, d[:])
	return buffer, nil
}

// UnmarshalText - convert from hex text
func (d *T) UnmarshalText(s []byte) error {
	if hex.DecodedLen(len(s)) != len(d) {
		return fault.ErrInvalidDiscriminator
	}
	if _, err := hex.Decode(d[:], s); nil != err {
		return fault.ErrInvalidDiscriminator
	}
	return nil
}

// Scan - convert from hex for fmt.Sscan
func (d *T) Scan(state fmt.ScanState, verb rune) error {
	token, err := state.Token(true, func(c rune) bool {
		return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
	})
	if nil != err {
		return err
	}
	return d.UnmarshalText(token)
}
