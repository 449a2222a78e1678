// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package program

import (
	"bytes"

	"github.com/bitmark-inc/descriptor/address"
	"github.com/bitmark-inc/descriptor/constants"
	"github.com/bitmark-inc/descriptor/fault"
	"github.com/bitmark-inc/descriptor/ledger"
	"github.com/bitmark-inc/descriptor/provision"
	"github.com/bitmark-inc/descriptor/record"
)

// initialise - create the primary account holding r in the codec's
// encoding, and the descriptor account for the record type
//
// every check runs before the first ledger mutation
func (p *Program) initialise(l ledger.Ledger, accounts []address.Address, bump byte, codec record.Codec, r record.Record) (*record.Record, error) {
	funder := accounts[funderIndex]

	primary, err := address.Verify(p.PrimarySeeds(funder), bump, p.id, accounts[primaryIndex])
	if nil != err {
		p.log.Warnf("%s: primary: %s  bump: %d  error: %s", codec.Name(), accounts[primaryIndex], bump, err)
		return nil, err
	}

	descriptor, err := address.Locate(p.DescriptorSeeds(), p.id, accounts[descriptorIndex])
	if nil != err {
		p.log.Warnf("%s: descriptor: %s  error: %s", codec.Name(), accounts[descriptorIndex], err)
		return nil, err
	}

	payload, err := codec.Encode(r)
	if nil != err {
		return nil, err
	}
	description := codec.Descriptor()
	if 0 == len(payload) || len(payload) > constants.MaximumAccountSize ||
		0 == len(description) || len(description) > constants.MaximumAccountSize {
		return nil, fault.ErrInvalidAccountSize
	}

	createDescriptor, err := p.needsDescriptor(l, descriptor.Address(), description)
	if nil != err {
		p.log.Warnf("%s: descriptor: %s  error: %s", codec.Name(), descriptor.Address(), err)
		return nil, err
	}

	// mutations start here
	provisioner := provision.New(l, p.id)

	if err := provisioner.Provision(funder, primary, uint64(len(payload))); nil != err {
		return nil, err
	}
	if err := l.WriteAccountData(p.id, primary.Address(), payload); nil != err {
		return nil, err
	}

	if createDescriptor {
		if err := provisioner.Provision(funder, descriptor, uint64(len(description))); nil != err {
			return nil, err
		}
		if err := l.WriteAccountData(p.id, descriptor.Address(), description); nil != err {
			return nil, err
		}
	}

	p.log.Infof("%s: initialised: %s  record: %s", codec.Name(), primary.Address(), r)
	return &r, nil
}

// needsDescriptor - false if the descriptor account already holds
// exactly the description, an error if it holds anything else
func (p *Program) needsDescriptor(l ledger.Ledger, descriptor address.Address, description []byte) (bool, error) {
	existing, err := l.AccountData(descriptor)
	if fault.ErrAccountNotFound == err {
		return true, nil
	}
	if nil != err {
		return false, err
	}
	if !bytes.Equal(existing, description) {
		return false, fault.ErrAccountAlreadyInUse
	}
	p.log.Debugf("descriptor: %s  already present", descriptor)
	return false, nil
}
