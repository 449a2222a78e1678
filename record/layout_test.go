// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package record_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/descriptor/fault"
	"github.com/bitmark-inc/descriptor/record"
)

func TestLayoutPack(t *testing.T) {
	layout := record.CompactLayout(personTag)
	packed := layout.Pack()

	assert.Equal(t, 70, len(packed), "wrong packed size")
	assert.Equal(t, layout.PackedSize(), len(packed), "PackedSize disagrees with Pack")
	assert.True(t, record.IsLayout(packed), "missing layout tag")
	assert.Equal(t, personTag[:], packed[8:16], "wrong record discriminator")
	assert.Equal(t, []byte{57, 0, 3}, packed[16:19], "wrong size and count")
	assert.Equal(t, packed, record.NewCompact(personTag).Descriptor(), "codec descriptor differs")
}

func TestLayoutRoundTrip(t *testing.T) {
	layout := record.CompactLayout(personTag)

	recovered, err := record.UnpackLayout(layout.Pack())
	assert.Nil(t, err, "unpack error")
	assert.Equal(t, layout, recovered, "layout changed")
}

func TestLayoutTruncated(t *testing.T) {
	packed := record.CompactLayout(personTag).Pack()
	for n := 0; n < len(packed); n += 1 {
		_, err := record.UnpackLayout(packed[:n])
		assert.Error(t, err, "%d: truncated layout accepted", n)
	}
}

func TestLayoutInvalid(t *testing.T) {
	packed := record.CompactLayout(personTag).Pack()

	corrupt := func(offset int, values ...byte) []byte {
		b := append([]byte(nil), packed...)
		copy(b[offset:], values)
		return b
	}

	items := [][]byte{
		corrupt(0, 0x00),        // layout tag
		corrupt(19, 0x09),       // unknown kind
		corrupt(20, 0x00),       // flag inside discriminator
		corrupt(22, 0x02),       // flag width two
		corrupt(16, 0x20),       // record shorter than fields
		corrupt(24, 0x00),       // empty name
		corrupt(24, 0x41),       // name too long
		corrupt(42, 0x04, 0x00), // text width only holds the length
	}

	for i, item := range items {
		_, err := record.UnpackLayout(item)
		assert.Equal(t, fault.ErrInvalidLayout, err, "%d: wrong error", i)
	}
}

func TestLayoutDecode(t *testing.T) {
	codec := record.NewCompact(personTag)
	packed, err := codec.Encode(record.Record{FirstName: "John", LastName: "Borsh"})
	assert.Nil(t, err, "encode error")

	values, err := codec.Layout().Decode(packed)
	assert.Nil(t, err, "decode error")
	assert.Equal(t, []record.FieldValue{
		{Name: "is_initialized", Value: "true"},
		{Name: "first_name", Value: "John"},
		{Name: "last_name", Value: "Borsh"},
	}, values, "wrong values")

	_, err = codec.Layout().Decode(packed[:20])
	assert.Equal(t, fault.ErrTruncated, err, "wrong error")

	copy(packed, otherTag[:])
	_, err = codec.Layout().Decode(packed)
	assert.Equal(t, fault.ErrDiscriminatorMismatch, err, "wrong error")
}
