// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"github.com/vmihailenco/msgpack/v5"

	"github.com/bitmark-inc/descriptor/address"
)

// Account - state of one ledger account
type Account struct {
	Lamports uint64
	Owner    address.Address
	Data     []byte
}

// stored form of an account
type accountRecord struct {
	Lamports uint64 `msgpack:"l"`
	Owner    []byte `msgpack:"o"`
	Data     []byte `msgpack:"d"`
}

// key prefix of account records
const accountPrefix = 'A'

func accountKey(a address.Address) []byte {
	key := make([]byte, 1, 1+len(a))
	key[0] = accountPrefix
	return append(key, a[:]...)
}

func packAccount(account *Account) ([]byte, error) {
	return msgpack.Marshal(&accountRecord{
		Lamports: account.Lamports,
		Owner:    account.Owner[:],
		Data:     account.Data,
	})
}

func unpackAccount(buffer []byte) (*Account, error) {
	var r accountRecord
	if err := msgpack.Unmarshal(buffer, &r); nil != err {
		return nil, err
	}
	owner, err := address.FromBytes(r.Owner)
	if nil != err {
		return nil, err
	}
	data := r.Data
	if nil == data {
		data = []byte{}
	}
	return &Account{
		Lamports: r.Lamports,
		Owner:    owner,
		Data:     data,
	}, nil
}

// exists - an account with lamports or data cannot be created again
func (a *Account) exists() bool {
	return nil != a && (0 != a.Lamports || 0 != len(a.Data))
}
