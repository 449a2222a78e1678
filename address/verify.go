// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package address

import (
	"github.com/bitmark-inc/descriptor/fault"
)

// Derived - an address together with the exact seeds that produced it
//
// only the verification functions below can create one, so seeds
// used for signing are always the seeds that were checked
type Derived struct {
	address Address
	seeds   [][]byte
	bump    byte
}

// Address - the verified address
func (d Derived) Address() Address {
	return d.address
}

// Bump - the bump seed appended to the base seeds
func (d Derived) Bump() byte {
	return d.bump
}

// Seeds - copy of the full signer seeds, bump last
func (d Derived) Seeds() [][]byte {
	seeds := make([][]byte, len(d.seeds))
	for i, s := range d.seeds {
		seeds[i] = append([]byte(nil), s...)
	}
	return seeds
}

// IsZero - true for an unverified value
func (d Derived) IsZero() bool {
	return nil == d.seeds
}

// Verify - derive from seeds plus a caller supplied bump and check
// the result is the supplied account
func Verify(seeds [][]byte, bump byte, program Address, supplied Address) (Derived, error) {
	full := withBump(seeds, bump)
	a, err := CreateProgramAddress(full, program)
	if nil != err {
		return Derived{}, err
	}
	if !a.Equal(supplied) {
		return Derived{}, fault.ErrAddressMismatch
	}
	return Derived{address: a, seeds: full, bump: bump}, nil
}

// Locate - find the canonical bump for the seeds and check the
// result is the supplied account
func Locate(seeds [][]byte, program Address, supplied Address) (Derived, error) {
	a, bump, err := FindProgramAddress(seeds, program)
	if nil != err {
		return Derived{}, err
	}
	if !a.Equal(supplied) {
		return Derived{}, fault.ErrAddressMismatch
	}
	return Derived{address: a, seeds: withBump(seeds, bump), bump: bump}, nil
}

// copy seeds and append a single byte bump
func withBump(seeds [][]byte, bump byte) [][]byte {
	full := make([][]byte, 0, len(seeds)+1)
	for _, s := range seeds {
		full = append(full, append([]byte(nil), s...))
	}
	return append(full, []byte{bump})
}
