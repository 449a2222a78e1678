// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package provision_test

import (
	"os"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/descriptor/address"
	"github.com/bitmark-inc/descriptor/constants"
	"github.com/bitmark-inc/descriptor/fault"
	"github.com/bitmark-inc/descriptor/ledger"
	"github.com/bitmark-inc/descriptor/ledger/mocks"
	"github.com/bitmark-inc/descriptor/provision"
	"github.com/bitmark-inc/logger"
)

const (
	testingDirName = "testing"
)

var (
	program = address.Address{
		0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08,
		0x09, 0x0a, 0x0b, 0x0c, 0x0d, 0x0e, 0x0f, 0x10,
		0x11, 0x12, 0x13, 0x14, 0x15, 0x16, 0x17, 0x18,
		0x19, 0x1a, 0x1b, 0x1c, 0x1d, 0x1e, 0x1f, 0x20,
	}
	funder = address.Address{
		0xaa, 0xaa, 0xaa, 0xaa, 0xaa, 0xaa, 0xaa, 0xaa,
		0xaa, 0xaa, 0xaa, 0xaa, 0xaa, 0xaa, 0xaa, 0xaa,
		0xaa, 0xaa, 0xaa, 0xaa, 0xaa, 0xaa, 0xaa, 0xaa,
		0xaa, 0xaa, 0xaa, 0xaa, 0xaa, 0xaa, 0xaa, 0xaa,
	}
)

func TestMain(m *testing.M) {
	setupTestLogger()
	result := m.Run()
	teardownTestLogger()
	os.Exit(result)
}

func setupTestLogger() {
	removeFiles()
	_ = os.Mkdir(testingDirName, 0700)

	logging := logger.Configuration{
		Directory: testingDirName,
		File:      "testing.log",
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}

	// start logging
	_ = logger.Initialise(logging)
}

func removeFiles() {
	os.RemoveAll(testingDirName)
}

func teardownTestLogger() {
	logger.Finalise()
	removeFiles()
}

func verifiedPrimary(t *testing.T) address.Derived {
	seeds := [][]byte{[]byte(constants.PrimarySeedPrefix), funder.Bytes()}
	a, bump, err := address.FindProgramAddress(seeds, program)
	if nil != err {
		t.Fatalf("find error: %s", err)
	}
	d, err := address.Verify(seeds, bump, program, a)
	if nil != err {
		t.Fatalf("verify error: %s", err)
	}
	return d
}

func TestProvision(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	target := verifiedPrimary(t)
	m := mocks.NewMockLedger(ctl)

	gomock.InOrder(
		m.EXPECT().MinimumBalance(uint64(56)).Return(uint64(1280640)).Times(1),
		m.EXPECT().CreateAccount(funder, target.Address(), uint64(1280640), uint64(56), program, target.Seeds()).Return(nil).Times(1),
	)

	p := provision.New(m, program)
	err := p.Provision(funder, target, 56)
	assert.Nil(t, err, "wrong error")
}

func TestProvisionPassesLedgerErrors(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	target := verifiedPrimary(t)

	for _, expected := range []error{
		fault.ErrInsufficientFunds,
		fault.ErrAccountAlreadyInUse,
		fault.ErrSeedsMismatch,
	} {
		m := mocks.NewMockLedger(ctl)
		m.EXPECT().MinimumBalance(gomock.Any()).Return(uint64(1)).Times(1)
		m.EXPECT().CreateAccount(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(expected).Times(1)

		err := provision.New(m, program).Provision(funder, target, 57)
		assert.Equal(t, expected, err, "ledger error not returned unchanged")
	}
}

func TestProvisionRejectsBeforeFunding(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	// no calls expected on the ledger
	m := mocks.NewMockLedger(ctl)
	p := provision.New(m, program)
	target := verifiedPrimary(t)

	assert.Equal(t, fault.ErrInvalidAccountSize, p.Provision(funder, target, 0), "empty account")
	assert.Equal(t, fault.ErrInvalidAccountSize, p.Provision(funder, target, constants.MaximumAccountSize+1), "oversize account")
	assert.Equal(t, fault.ErrInvalidSeeds, p.Provision(funder, address.Derived{}, 56), "unverified target")
}

func TestProvisionWithStore(t *testing.T) {
	s, err := ledger.OpenMemory()
	if nil != err {
		t.Fatalf("open memory ledger error: %s", err)
	}
	defer s.Close()

	target := verifiedPrimary(t)
	rent := ledger.RentExemptMinimum(57)
	assert.Nil(t, s.Airdrop(funder, rent+5), "airdrop")

	err = s.Invoke(func(l ledger.Ledger) error {
		return provision.New(l, program).Provision(funder, target, 57)
	})
	assert.Nil(t, err, "wrong error")

	account, err := s.Account(target.Address())
	assert.Nil(t, err, "wrong error")
	assert.Equal(t, rent, account.Lamports, "wrong lamports")
	assert.Equal(t, program, account.Owner, "wrong owner")
	assert.Equal(t, 57, len(account.Data), "wrong size")
	assert.Equal(t, uint64(5), s.Balance(funder), "wrong change")
}
