// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package constants - address seeds and layout limits
//
// every seed used to derive an account address is declared here so
// derivation and signing always agree
package constants

// seeds and discriminator inputs
const (
	// first seed of every primary record account
	PrimarySeedPrefix = "customaddress"

	// (namespace, name) of the person record discriminator
	RecordNamespace = "account"
	RecordName      = "person"

	// (namespace, name) tagging a compact layout descriptor
	LayoutNamespace = "descriptor"
	LayoutName      = "layout"
)

// program derived address limits
const (
	MaximumSeeds      = 16
	MaximumSeedLength = 32
	AddressLength     = 32
	PDAMarker         = "ProgramDerivedAddress"
)

// record limits
const (
	DiscriminatorLength = 8

	// compact layout: [disc][is_initialized][len+text][len+text]
	CompactFlagWidth   = 1
	CompactLengthWidth = 4
	CompactTextWidth   = 20
	CompactSlotWidth   = CompactLengthWidth + CompactTextWidth

	// bound on a self-describing text field
	MaximumTextLength = 1024

	// host imposed upper bound on a single account allocation
	MaximumAccountSize = 10 * 1024 * 1024
)

// rent parameters of the host ledger
const (
	AccountStorageOverhead  = 128
	LamportsPerByteYear     = 3480
	ExemptionThresholdYears = 2
)
