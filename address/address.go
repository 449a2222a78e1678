// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package address

import (
	"bytes"
	"encoding/hex"

	"github.com/mr-tron/base58"

	"github.com/bitmark-inc/descriptor/constants"
	"github.com/bitmark-inc/descriptor/fault"
)

// Address - a 32 byte account or program identity
type Address [constants.AddressLength]byte

// Zero - the all zero address, used as the system program identity
var Zero Address

// FromBase58 - convert a base58 string to an address
func FromBase58(s string) (Address, error) {
	var a Address
	decoded, err := base58.Decode(s)
	if nil != err {
		return a, fault.ErrInvalidAddress
	}
	return FromBytes(decoded)
}

// FromBytes - copy exactly 32 bytes into an address
func FromBytes(buffer []byte) (Address, error) {
	var a Address
	if len(buffer) != len(a) {
		return a, fault.ErrInvalidAddress
	}
	copy(a[:], buffer)
	return a, nil
}

// Bytes - byte slice copy of the address
func (a Address) Bytes() []byte {
	b := make([]byte, len(a))
	copy(b, a[:])
	return b
}

// Equal - compare two addresses
func (a Address) Equal(b Address) bool {
	return bytes.Equal(a[:], b[:])
}

// String - base58 form
func (a Address) String() string {
	return base58.Encode(a[:])
}

// GoString - hex form for debugging
func (a Address) GoString() string {
	return "<address:" + hex.EncodeToString(a[:]) + ">"
}

// MarshalText - convert to base58 text for JSON
func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText - convert from base58 text
func (a *Address) UnmarshalText(s []byte) error {
	decoded, err := FromBase58(string(s))
	if nil != err {
		return err
	}
	*a = decoded
	return nil
}
