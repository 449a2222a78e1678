// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package program

import (
	"github.com/bitmark-inc/descriptor/address"
	"github.com/bitmark-inc/descriptor/ledger"
	"github.com/bitmark-inc/descriptor/record"
)

// read - decode the primary account with the codec, no side effects
func (p *Program) read(l ledger.Ledger, accounts []address.Address, codec record.Codec) (*record.Record, error) {
	primary := accounts[primaryIndex]

	data, err := l.AccountData(primary)
	if nil != err {
		p.log.Warnf("%s: read: %s  error: %s", codec.Name(), primary, err)
		return nil, err
	}

	r, err := codec.Decode(data)
	if nil != err {
		p.log.Warnf("%s: decode: %s  error: %s", codec.Name(), primary, err)
		return nil, err
	}

	p.log.Infof("%s: %q %q", codec.Name(), r.FirstName, r.LastName)
	return &r, nil
}
