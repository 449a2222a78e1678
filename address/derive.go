// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package address

import (
	"crypto/sha256"

	"filippo.io/edwards25519"

	"github.com/bitmark-inc/descriptor/constants"
	"github.com/bitmark-inc/descriptor/fault"
)

// CreateProgramAddress - hash the seeds with the program identity
//
// the result must not be a valid ed25519 point so that no private
// key can exist for it
func CreateProgramAddress(seeds [][]byte, program Address) (Address, error) {
	var a Address
	if len(seeds) > constants.MaximumSeeds {
		return a, fault.ErrInvalidSeeds
	}

	h := sha256.New()
	for _, seed := range seeds {
		if len(seed) > constants.MaximumSeedLength {
			return a, fault.ErrInvalidSeeds
		}
		h.Write(seed)
	}
	h.Write(program[:])
	h.Write([]byte(constants.PDAMarker))
	copy(a[:], h.Sum(nil))

	if IsOnCurve(a[:]) {
		return Address{}, fault.ErrOnCurve
	}
	return a, nil
}

// FindProgramAddress - search bumps from 255 down for the first
// address that is off the curve
func FindProgramAddress(seeds [][]byte, program Address) (Address, byte, error) {
	bumped := make([][]byte, len(seeds), len(seeds)+1)
	copy(bumped, seeds)
	bumped = append(bumped, []byte{0})

	for bump := 255; bump >= 0; bump -= 1 {
		bumped[len(seeds)][0] = byte(bump)
		a, err := CreateProgramAddress(bumped, program)
		if nil == err {
			return a, byte(bump), nil
		}
		if fault.ErrOnCurve != err {
			return Address{}, 0, err
		}
	}
	return Address{}, 0, fault.ErrNoViableBump
}

// IsOnCurve - true if the bytes decode to an ed25519 point
func IsOnCurve(b []byte) bool {
	_, err := new(edwards25519.Point).SetBytes(b)
	return nil == err
}
