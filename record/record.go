// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package record - the person record and its two account encodings
package record

import (
	_ "embed" // for the schema text

	"github.com/bitmark-inc/descriptor/discriminator"
)

// Record - the logical entity stored in a primary account
type Record struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// Schema - the exact schema text stored in a self-describing
// descriptor account
//
//go:embed person.capnp
var Schema []byte

// Codec - one physical encoding of a Record in a primary account
type Codec interface {
	// short name for logging
	Name() string

	// tag at the start of every primary account
	Discriminator() discriminator.T

	// full primary account image
	Encode(Record) ([]byte, error)

	// validate and decode a primary account image
	Decode([]byte) (Record, error)

	// bytes to store in the descriptor account
	Descriptor() []byte
}

// String - for log messages
func (r Record) String() string {
	return r.FirstName + " " + r.LastName
}
