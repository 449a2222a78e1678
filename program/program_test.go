// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package program_test

import (
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/descriptor/address"
	"github.com/bitmark-inc/descriptor/discriminator"
	"github.com/bitmark-inc/descriptor/fault"
	"github.com/bitmark-inc/descriptor/ledger"
	"github.com/bitmark-inc/descriptor/ledger/mocks"
	"github.com/bitmark-inc/descriptor/program"
	"github.com/bitmark-inc/descriptor/record"
	"github.com/bitmark-inc/descriptor/util"
)

func TestAddresses(t *testing.T) {
	ts := setupTest(t)
	defer ts.store.Close()

	assert.Equal(t, byte(expectedPrimaryBump), ts.bump, "wrong primary bump")
	assert.Equal(t, expectedPrimaryBase58, ts.primary.String(), "wrong primary")
	assert.Equal(t, expectedDescriptor, ts.descriptor.String(), "wrong descriptor")
	assert.Equal(t, programID, ts.program.ID(), "wrong program")
	assert.Equal(t, discriminator.Derive("account", "person"), ts.program.Discriminator(), "wrong discriminator")
}

func TestInitialiseSelfDescribing(t *testing.T) {
	ts := setupTest(t)
	defer ts.store.Close()

	var written *record.Record
	err := ts.store.Invoke(func(l ledger.Ledger) error {
		var err error
		written, err = ts.program.Process(l, ts.accounts(), []byte{0, ts.bump, 0, 0, 0})
		return err
	})
	assert.Nil(t, err, "wrong error")
	assert.Equal(t, &record.Record{FirstName: "Captain", LastName: "Proto"}, written, "wrong record written")

	primary, err := ts.store.Account(ts.primary)
	assert.Nil(t, err, "wrong error")
	assert.Equal(t, programID, primary.Owner, "wrong primary owner")
	assert.Equal(t, 56, len(primary.Data), "primary not sized to the payload")
	assert.Equal(t, ledger.RentExemptMinimum(56), primary.Lamports, "primary not rent exempt")

	r, err := record.NewSelfDescribing(ts.program.Discriminator()).Decode(primary.Data)
	assert.Nil(t, err, "wrong error")
	if diff := cmp.Diff(record.Record{FirstName: "Captain", LastName: "Proto"}, r); "" != diff {
		t.Errorf("record mismatch (-want +got):\n%s", diff)
	}

	descriptor, err := ts.store.AccountData(ts.descriptor)
	assert.Nil(t, err, "wrong error")
	if !assert.Equal(t, record.Schema, descriptor, "descriptor is not the schema") {
		t.Logf("descriptor: %s", util.FormatBytes("descriptor", descriptor))
	}

	var read *record.Record
	err = ts.store.Invoke(func(l ledger.Ledger) error {
		var err error
		read, err = ts.program.Process(l, ts.accounts(), []byte{1})
		return err
	})
	assert.Nil(t, err, "wrong error")
	assert.Equal(t, written, read, "wrong record read")
}

func TestInitialiseCompact(t *testing.T) {
	ts := setupTest(t)
	defer ts.store.Close()

	err := ts.process([]byte{2, ts.bump, 0, 0, 0})
	assert.Nil(t, err, "wrong error")

	data, err := ts.store.AccountData(ts.primary)
	assert.Nil(t, err, "wrong error")
	assert.Equal(t, record.CompactSize, len(data), "wrong primary size")
	assert.Equal(t, discriminator.Derive("account", "person").Bytes(), data[:8], "wrong leading tag")

	r, err := record.NewCompact(ts.program.Discriminator()).Decode(data)
	assert.Nil(t, err, "wrong error")
	if diff := cmp.Diff(record.Record{FirstName: "John", LastName: "Borsh"}, r); "" != diff {
		t.Errorf("record mismatch (-want +got):\n%s", diff)
	}

	descriptor, err := ts.store.AccountData(ts.descriptor)
	assert.Nil(t, err, "wrong error")
	layout, err := record.UnpackLayout(descriptor)
	assert.Nil(t, err, "descriptor is not a layout")
	assert.Equal(t, record.CompactLayout(ts.program.Discriminator()), layout, "wrong layout")

	var read *record.Record
	err = ts.store.Invoke(func(l ledger.Ledger) error {
		var err error
		read, err = ts.program.Process(l, ts.accounts(), []byte{3})
		return err
	})
	assert.Nil(t, err, "wrong error")
	assert.Equal(t, &record.Record{FirstName: "John", LastName: "Borsh"}, read, "wrong record read")
}

func TestReadUninitialised(t *testing.T) {
	ts := setupTest(t)
	defer ts.store.Close()

	for _, op := range []byte{1, 3} {
		err := ts.process([]byte{op})
		assert.True(t, fault.IsErrDecode(err), "opcode %d: not a decode error: %v", op, err)
	}

	// an allocated account that was never written
	seeds := append(ts.program.PrimarySeeds(funder), []byte{ts.bump})
	err := ts.store.Invoke(func(l ledger.Ledger) error {
		return l.CreateAccount(funder, ts.primary, ledger.RentExemptMinimum(64), 64, programID, seeds)
	})
	assert.Nil(t, err, "create error")

	for _, op := range []byte{1, 3} {
		err := ts.process([]byte{op})
		assert.Equal(t, fault.ErrDiscriminatorMismatch, err, "opcode %d: wrong error", op)
	}
}

func TestReadWithOtherCodec(t *testing.T) {
	ts := setupTest(t)
	defer ts.store.Close()

	assert.Nil(t, ts.process([]byte{0, ts.bump}), "initialise self describing")
	err := ts.process([]byte{3})
	assert.Equal(t, fault.ErrTruncated, err, "compact read of self describing account")

	other := setupTest(t)
	defer other.store.Close()

	assert.Nil(t, other.process([]byte{2, other.bump}), "initialise compact")
	err = other.process([]byte{1})
	assert.True(t, fault.IsErrDecode(err), "self describing read of compact account: %v", err)
}

func TestInitialiseIsExclusive(t *testing.T) {
	ts := setupTest(t)
	defer ts.store.Close()

	assert.Nil(t, ts.process([]byte{0, ts.bump}), "first initialise")
	balance := ts.store.Balance(funder)
	before, _ := ts.store.AccountData(ts.primary)

	for _, op := range []byte{0, 2} {
		err := ts.process([]byte{op, ts.bump})
		assert.Equal(t, fault.ErrAccountAlreadyInUse, err, "opcode %d: wrong error", op)
	}

	after, _ := ts.store.AccountData(ts.primary)
	assert.Equal(t, before, after, "primary changed")
	assert.Equal(t, balance, ts.store.Balance(funder), "funder charged")
}

func TestDescriptorShared(t *testing.T) {
	ts := setupTest(t)
	defer ts.store.Close()

	assert.Nil(t, ts.process([]byte{0, ts.bump}), "first funder")

	assert.Nil(t, ts.store.Airdrop(otherFunder, airdropLamports), "airdrop")
	otherPrimary, otherBump, err := ts.program.PrimaryAddress(otherFunder)
	assert.Nil(t, err, "wrong error")

	accounts := []address.Address{otherFunder, otherPrimary, ts.descriptor}
	err = ts.store.Invoke(func(l ledger.Ledger) error {
		_, err := ts.program.Process(l, accounts, []byte{0, otherBump})
		return err
	})
	assert.Nil(t, err, "second funder")
	assert.Equal(t, airdropLamports-ledger.RentExemptMinimum(56), ts.store.Balance(otherFunder), "descriptor paid twice")

	// the compact description differs from the stored schema
	err = ts.store.Invoke(func(l ledger.Ledger) error {
		_, err := ts.program.Process(l, accounts, []byte{2, otherBump})
		return err
	})
	assert.Equal(t, fault.ErrAccountAlreadyInUse, err, "descriptor overwritten")
}

func TestInitialiseRollsBack(t *testing.T) {
	ts := setupTest(t)
	defer ts.store.Close()

	poor := otherFunder
	primary, bump, err := ts.program.PrimaryAddress(poor)
	assert.Nil(t, err, "wrong error")

	// enough for the primary account only
	assert.Nil(t, ts.store.Airdrop(poor, ledger.RentExemptMinimum(56)), "airdrop")

	err = ts.store.Invoke(func(l ledger.Ledger) error {
		_, err := ts.program.Process(l, []address.Address{poor, primary, ts.descriptor}, []byte{0, bump})
		return err
	})
	assert.Equal(t, fault.ErrInsufficientFunds, err, "wrong error")

	_, err = ts.store.Account(primary)
	assert.Equal(t, fault.ErrAccountNotFound, err, "primary left behind")
	assert.Equal(t, ledger.RentExemptMinimum(56), ts.store.Balance(poor), "funds spent")
}

func TestProcessErrors(t *testing.T) {
	ts := setupTest(t)
	defer ts.store.Close()

	testItems := []struct {
		accounts []address.Address
		data     []byte
		err      error
	}{
		{ts.accounts(), nil, fault.ErrInvalidInstructionData},
		{ts.accounts(), []byte{4}, fault.ErrInvalidInstructionData},
		{ts.accounts(), []byte{0}, fault.ErrInvalidInstructionData},
		{ts.accounts()[:2], []byte{0, ts.bump}, fault.ErrNotEnoughAccounts},
		{nil, []byte{1}, fault.ErrNotEnoughAccounts},
		{ts.accounts(), []byte{0, 255}, fault.ErrOnCurve},
	}

	for i, item := range testItems {
		err := ts.store.Invoke(func(l ledger.Ledger) error {
			_, err := ts.program.Process(l, item.accounts, item.data)
			return err
		})
		assert.Equal(t, item.err, err, "%d: wrong error", i)
	}
}

func TestAddressMismatchNeverFunds(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	ts := setupTest(t)
	defer ts.store.Close()

	// any ledger call fails the test
	m := mocks.NewMockLedger(ctl)

	otherPrimary, otherBump, err := ts.program.PrimaryAddress(otherFunder)
	assert.Nil(t, err, "wrong error")

	testItems := []struct {
		accounts []address.Address
		data     []byte
	}{
		{[]address.Address{funder, ts.descriptor, ts.descriptor}, []byte{0, ts.bump}},
		{[]address.Address{otherFunder, ts.primary, ts.descriptor}, []byte{2, otherBump}},
		{[]address.Address{funder, otherPrimary, ts.descriptor}, []byte{0, ts.bump}},
		{[]address.Address{funder, ts.primary, ts.primary}, []byte{0, ts.bump}},
		{[]address.Address{funder, ts.primary, funder}, []byte{2, ts.bump}},
	}

	for i, item := range testItems {
		_, err := ts.program.Process(m, item.accounts, item.data)
		assert.Equal(t, fault.ErrAddressMismatch, err, "%d: wrong error", i)
	}
}

func TestInitialiseCallOrder(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	ts := setupTest(t)
	defer ts.store.Close()

	payload, err := record.NewSelfDescribing(ts.program.Discriminator()).Encode(record.Record{FirstName: "Captain", LastName: "Proto"})
	assert.Nil(t, err, "wrong error")
	schemaSize := uint64(len(record.Schema))

	m := mocks.NewMockLedger(ctl)
	gomock.InOrder(
		m.EXPECT().AccountData(ts.descriptor).Return(nil, fault.ErrAccountNotFound),
		m.EXPECT().MinimumBalance(uint64(56)).Return(uint64(100)),
		m.EXPECT().CreateAccount(funder, ts.primary, uint64(100), uint64(56), programID, [][]byte{[]byte("customaddress"), funder.Bytes(), {ts.bump}}).Return(nil),
		m.EXPECT().WriteAccountData(programID, ts.primary, payload).Return(nil),
		m.EXPECT().MinimumBalance(schemaSize).Return(uint64(200)),
		m.EXPECT().CreateAccount(funder, ts.descriptor, uint64(200), schemaSize, programID, gomock.Any()).Return(nil),
		m.EXPECT().WriteAccountData(programID, ts.descriptor, record.Schema).Return(nil),
	)

	_, err = ts.program.Process(m, ts.accounts(), []byte{0, ts.bump})
	assert.Nil(t, err, "wrong error")
}

func TestNewRejectsUnstorableValues(t *testing.T) {
	c := program.DefaultConfiguration(programID)
	c.Compact.FirstName = "a name much longer than twenty bytes"
	_, err := program.New(c)
	assert.Equal(t, fault.ErrFieldTooLong, err, "wrong error")

	c = program.DefaultConfiguration(programID)
	c.SeedPrefix = ""
	_, err = program.New(c)
	assert.Equal(t, fault.ErrMissingParameters, err, "wrong error")

	c = program.DefaultConfiguration(programID)
	c.SeedPrefix = "a seed prefix longer than thirty two bytes"
	_, err = program.New(c)
	assert.Equal(t, fault.ErrInvalidSeeds, err, "wrong error")
}
