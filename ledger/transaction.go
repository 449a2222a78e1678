// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"github.com/syndtr/goleveldb/leveldb"

	"github.com/bitmark-inc/descriptor/address"
	"github.com/bitmark-inc/descriptor/constants"
	"github.com/bitmark-inc/descriptor/fault"
)

// transaction - writes staged in a batch, reads see staged writes first
type transaction struct {
	db      *leveldb.DB
	batch   *leveldb.Batch
	pending map[address.Address]*Account
	created uint64
}

func newTransaction(db *leveldb.DB) *transaction {
	return &transaction{
		db:      db,
		batch:   new(leveldb.Batch),
		pending: make(map[address.Address]*Account),
	}
}

// nil, nil if the account does not exist
func (t *transaction) get(target address.Address) (*Account, error) {
	if account, ok := t.pending[target]; ok {
		return account, nil
	}
	buffer, err := t.db.Get(accountKey(target), nil)
	if leveldb.ErrNotFound == err {
		return nil, nil
	}
	if nil != err {
		return nil, err
	}
	return unpackAccount(buffer)
}

func (t *transaction) put(target address.Address, account *Account) error {
	buffer, err := packAccount(account)
	if nil != err {
		return err
	}
	t.pending[target] = account
	t.batch.Put(accountKey(target), buffer)
	return nil
}

// MinimumBalance - rent exempt minimum
func (t *transaction) MinimumBalance(size uint64) uint64 {
	return RentExemptMinimum(size)
}

// CreateAccount - the system program's create account, invoked with
// the program's signer seeds
func (t *transaction) CreateAccount(funder address.Address, target address.Address, lamports uint64, size uint64, owner address.Address, signerSeeds [][]byte) error {
	if size > constants.MaximumAccountSize {
		return fault.ErrInvalidAccountSize
	}

	signer, err := address.CreateProgramAddress(signerSeeds, owner)
	if nil != err || !signer.Equal(target) {
		return fault.ErrSeedsMismatch
	}

	existing, err := t.get(target)
	if nil != err {
		return err
	}
	if existing.exists() {
		return fault.ErrAccountAlreadyInUse
	}

	if lamports < RentExemptMinimum(size) {
		return fault.ErrInsufficientFunds
	}
	payer, err := t.get(funder)
	if nil != err {
		return err
	}
	if nil == payer || payer.Lamports < lamports {
		return fault.ErrInsufficientFunds
	}

	payer.Lamports -= lamports
	if err := t.put(funder, payer); nil != err {
		return err
	}
	err = t.put(target, &Account{
		Lamports: lamports,
		Owner:    owner,
		Data:     make([]byte, size),
	})
	if nil == err {
		t.created += 1
	}
	return err
}

// AccountData - copy of account data
func (t *transaction) AccountData(target address.Address) ([]byte, error) {
	account, err := t.get(target)
	if nil != err {
		return nil, err
	}
	if nil == account {
		return nil, fault.ErrAccountNotFound
	}
	return append([]byte(nil), account.Data...), nil
}

// WriteAccountData - overwrite the data of an owned account
//
// accounts never resize, so data must be exactly the allocated size
func (t *transaction) WriteAccountData(owner address.Address, target address.Address, data []byte) error {
	account, err := t.get(target)
	if nil != err {
		return err
	}
	if nil == account {
		return fault.ErrAccountNotFound
	}
	if !account.Owner.Equal(owner) {
		return fault.ErrNotAccountOwner
	}
	if len(data) != len(account.Data) {
		return fault.ErrSizeMismatch
	}

	updated := *account
	updated.Data = append([]byte(nil), data...)
	return t.put(target, &updated)
}
