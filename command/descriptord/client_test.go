// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/descriptor/address"
	"github.com/bitmark-inc/descriptor/fault"
	"github.com/bitmark-inc/descriptor/inspect"
	"github.com/bitmark-inc/descriptor/instruction"
	"github.com/bitmark-inc/descriptor/keypair"
	"github.com/bitmark-inc/descriptor/ledger"
	"github.com/bitmark-inc/descriptor/program"
	"github.com/bitmark-inc/logger"
)

const (
	testingDirName = "testing"
)

var programID = address.Address{
	0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08,
	0x09, 0x0a, 0x0b, 0x0c, 0x0d, 0x0e, 0x0f, 0x10,
	0x11, 0x12, 0x13, 0x14, 0x15, 0x16, 0x17, 0x18,
	0x19, 0x1a, 0x1b, 0x1c, 0x1d, 0x1e, 0x1f, 0x20,
}

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

func setupTestClient(t *testing.T) *client {
	p, err := program.New(program.DefaultConfiguration(programID))
	if nil != err {
		t.Fatalf("new program error: %s", err)
	}
	store, err := ledger.OpenMemory()
	if nil != err {
		t.Fatalf("open memory ledger error: %s", err)
	}
	payer, err := keypair.New()
	if nil != err {
		t.Fatalf("new payer error: %s", err)
	}
	return &client{
		log:     logger.New("main"),
		program: p,
		store:   store,
		reader:  inspect.NewReader(store, p.ID()),
		payer:   payer,
		airdrop: 1000000000,
		quiet:   true,
	}
}

func TestRunDemo(t *testing.T) {
	c := setupTestClient(t)
	defer c.store.Close()

	results, err := c.runDemo()
	if !assert.Nil(t, err, "wrong error") {
		return
	}
	if !assert.Equal(t, 2, len(results), "wrong result count") {
		return
	}

	expected := []struct {
		strategy string
		kind     string
	}{
		{"self-describing", inspect.SchemaKind},
		{"compact", inspect.LayoutKind},
	}
	for i, item := range expected {
		r := results[i]
		assert.Equal(t, item.strategy, r.Strategy, "%d: wrong strategy", i)
		assert.Equal(t, item.kind, r.Description.Kind, "%d: wrong description kind", i)
		assert.Equal(t, r.Written, r.Read, "%d: read back differs", i)
		assert.Equal(t, r.Addresses.Primary, r.Description.Account, "%d: wrong account described", i)
	}

	// both strategies share one descriptor address
	assert.Equal(t, results[0].Addresses.Descriptor, results[1].Addresses.Descriptor, "descriptor not shared")

	// the configured ledger is untouched
	assert.Equal(t, ledger.Statistics{}, c.store.Statistics(), "demo wrote to the ledger")
}

func TestDemoStrategiesCollideOnOneLedger(t *testing.T) {
	c := setupTestClient(t)
	defer c.store.Close()

	_, err := c.demo(instruction.InitialiseSelfDescribing, instruction.ReadSelfDescribing)
	assert.Nil(t, err, "wrong error")

	_, err = c.demo(instruction.InitialiseCompact, instruction.ReadCompact)
	assert.Equal(t, fault.ErrAccountAlreadyInUse, err, "second strategy stored a descriptor")
}
