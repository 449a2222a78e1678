// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"github.com/bitmark-inc/descriptor/address"
	"github.com/bitmark-inc/descriptor/constants"
)

//go:generate mockgen -destination=mocks/ledger.go -package=mocks github.com/bitmark-inc/descriptor/ledger Ledger

// Ledger - the account model of the host as seen by one invocation
type Ledger interface {
	// lamports needed for an account of size bytes to be rent exempt
	MinimumBalance(size uint64) uint64

	// fund and allocate target, signed for by the seeds that derive
	// target from owner
	CreateAccount(funder address.Address, target address.Address, lamports uint64, size uint64, owner address.Address, signerSeeds [][]byte) error

	// copy of the data of an existing account
	AccountData(target address.Address) ([]byte, error)

	// replace the whole data of an account owned by owner
	WriteAccountData(owner address.Address, target address.Address, data []byte) error
}

// RentExemptMinimum - (size + overhead) × lamports per byte-year × years
func RentExemptMinimum(size uint64) uint64 {
	return (size + constants.AccountStorageOverhead) * constants.LamportsPerByteYear * constants.ExemptionThresholdYears
}
