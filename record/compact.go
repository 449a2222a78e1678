// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package record

import (
	"encoding/binary"
	"unicode/utf8"

	"github.com/bitmark-inc/descriptor/constants"
	"github.com/bitmark-inc/descriptor/discriminator"
	"github.com/bitmark-inc/descriptor/fault"
)

// offsets of the compact layout
const (
	flagOffset      = constants.DiscriminatorLength
	firstNameOffset = flagOffset + constants.CompactFlagWidth
	lastNameOffset  = firstNameOffset + constants.CompactSlotWidth

	// CompactSize - bytes in a compact primary account
	CompactSize = lastNameOffset + constants.CompactSlotWidth
)

// Compact - [discriminator][is_initialized][first_name slot][last_name slot]
//
// each slot is a little endian u32 length followed by a fixed text
// area; text longer than the area is rejected, never truncated
type Compact struct {
	tag    discriminator.T
	layout *Layout
}

// NewCompact - codec tagging accounts with d
func NewCompact(d discriminator.T) *Compact {
	return &Compact{
		tag:    d,
		layout: CompactLayout(d),
	}
}

// Name - codec name
func (c *Compact) Name() string {
	return "compact"
}

// Discriminator - account tag
func (c *Compact) Discriminator() discriminator.T {
	return c.tag
}

// Layout - description of the fixed offsets
func (c *Compact) Layout() *Layout {
	return c.layout
}

// Descriptor - the packed layout record
func (c *Compact) Descriptor() []byte {
	return c.layout.Pack()
}

// Encode - fixed size account image
func (c *Compact) Encode(r Record) ([]byte, error) {
	account := make([]byte, CompactSize)
	copy(account, c.tag[:])
	account[flagOffset] = 1

	if err := putSlot(account[firstNameOffset:lastNameOffset], r.FirstName); nil != err {
		return nil, err
	}
	if err := putSlot(account[lastNameOffset:CompactSize], r.LastName); nil != err {
		return nil, err
	}
	return account, nil
}

// Decode - validate the tag before reading any fixed offset
func (c *Compact) Decode(account []byte) (Record, error) {
	if len(account) < CompactSize {
		return Record{}, fault.ErrTruncated
	}
	if !c.tag.Matches(account) {
		return Record{}, fault.ErrDiscriminatorMismatch
	}
	if 1 != account[flagOffset] {
		return Record{}, fault.ErrNotInitialised
	}

	first, err := getSlot(account[firstNameOffset:lastNameOffset])
	if nil != err {
		return Record{}, err
	}
	last, err := getSlot(account[lastNameOffset:CompactSize])
	if nil != err {
		return Record{}, err
	}
	return Record{FirstName: first, LastName: last}, nil
}

// write length and text into a slot, rest of the slot stays zero
func putSlot(slot []byte, text string) error {
	if len(text) > len(slot)-constants.CompactLengthWidth {
		return fault.ErrFieldTooLong
	}
	binary.LittleEndian.PutUint32(slot, uint32(len(text)))
	copy(slot[constants.CompactLengthWidth:], text)
	return nil
}

func getSlot(slot []byte) (string, error) {
	n := binary.LittleEndian.Uint32(slot)
	if uint64(n) > uint64(len(slot)-constants.CompactLengthWidth) {
		return "", fault.ErrSlotOverflow
	}
	text := slot[constants.CompactLengthWidth : constants.CompactLengthWidth+int(n)]
	if !utf8.Valid(text) {
		return "", fault.ErrMalformedText
	}
	return string(text), nil
}
