// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package record

import (
	"encoding/binary"
	"strconv"

	"github.com/bitmark-inc/descriptor/constants"
	"github.com/bitmark-inc/descriptor/discriminator"
	"github.com/bitmark-inc/descriptor/fault"
	"github.com/bitmark-inc/descriptor/util"
)

// FieldKind - how a compact field is stored
type FieldKind uint8

// field kinds
const (
	FlagField FieldKind = 1 // single byte, 0 or 1
	TextField FieldKind = 2 // u32 length + fixed text area
)

const (
	maximumFieldNameLength = 64
	layoutHeaderSize       = 2*constants.DiscriminatorLength + 2 + 1
)

// LayoutTag - first bytes of every packed layout
var LayoutTag = discriminator.Derive(constants.LayoutNamespace, constants.LayoutName)

// Field - one fixed position field of a compact account
type Field struct {
	Name   string    `json:"name"`
	Kind   FieldKind `json:"kind"`
	Offset uint16    `json:"offset"`
	Width  uint16    `json:"width"`
}

// Layout - descriptor account contents for the compact encoding
//
// packed form:
//	[LayoutTag][record discriminator][u16 size][u8 count]
//	count × [u8 kind][u16 offset][u16 width][Varint64 name length][name]
type Layout struct {
	Record discriminator.T `json:"record"`
	Size   uint16          `json:"size"`
	Fields []Field         `json:"fields"`
}

// FieldValue - a decoded field
type FieldValue struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// CompactLayout - the layout written by the Compact codec
func CompactLayout(d discriminator.T) *Layout {
	return &Layout{
		Record: d,
		Size:   CompactSize,
		Fields: []Field{
			{Name: "is_initialized", Kind: FlagField, Offset: flagOffset, Width: constants.CompactFlagWidth},
			{Name: "first_name", Kind: TextField, Offset: firstNameOffset, Width: constants.CompactSlotWidth},
			{Name: "last_name", Kind: TextField, Offset: lastNameOffset, Width: constants.CompactSlotWidth},
		},
	}
}

// IsLayout - true if the buffer starts with the layout tag
func IsLayout(buffer []byte) bool {
	return LayoutTag.Matches(buffer)
}

// PackedSize - bytes needed by Pack
func (l *Layout) PackedSize() int {
	n := layoutHeaderSize
	for _, f := range l.Fields {
		n += 5 + len(util.ToVarint64(uint64(len(f.Name)))) + len(f.Name)
	}
	return n
}

// Pack - serialise the layout
func (l *Layout) Pack() []byte {
	buffer := make([]byte, layoutHeaderSize, l.PackedSize())
	copy(buffer, LayoutTag[:])
	copy(buffer[constants.DiscriminatorLength:], l.Record[:])
	binary.LittleEndian.PutUint16(buffer[2*constants.DiscriminatorLength:], l.Size)
	buffer[layoutHeaderSize-1] = byte(len(l.Fields))

	for _, f := range l.Fields {
		buffer = append(buffer, byte(f.Kind))
		buffer = appendUint16(buffer, f.Offset)
		buffer = appendUint16(buffer, f.Width)
		buffer = append(buffer, util.ToVarint64(uint64(len(f.Name)))...)
		buffer = append(buffer, f.Name...)
	}
	return buffer
}

// UnpackLayout - parse and validate a packed layout
func UnpackLayout(buffer []byte) (*Layout, error) {
	if len(buffer) < layoutHeaderSize {
		return nil, fault.ErrTruncated
	}
	if !IsLayout(buffer) {
		return nil, fault.ErrInvalidLayout
	}

	l := &Layout{
		Size: binary.LittleEndian.Uint16(buffer[2*constants.DiscriminatorLength:]),
	}
	copy(l.Record[:], buffer[constants.DiscriminatorLength:])
	count := int(buffer[layoutHeaderSize-1])

	n := layoutHeaderSize
	for i := 0; i < count; i += 1 {
		if len(buffer) < n+5 {
			return nil, fault.ErrTruncated
		}
		f := Field{
			Kind:   FieldKind(buffer[n]),
			Offset: binary.LittleEndian.Uint16(buffer[n+1:]),
			Width:  binary.LittleEndian.Uint16(buffer[n+3:]),
		}
		n += 5

		nameLength, nameLengthLength := util.ClippedVarint64(buffer[n:], 1, maximumFieldNameLength)
		if 0 == nameLengthLength {
			return nil, fault.ErrInvalidLayout
		}
		n += nameLengthLength
		if len(buffer) < n+nameLength {
			return nil, fault.ErrTruncated
		}
		f.Name = string(buffer[n : n+nameLength])
		n += nameLength

		if err := f.validate(l.Size); nil != err {
			return nil, err
		}
		l.Fields = append(l.Fields, f)
	}
	return l, nil
}

// check a field lies inside the record and after the discriminator
func (f Field) validate(size uint16) error {
	if int(f.Offset) < constants.DiscriminatorLength || int(f.Offset)+int(f.Width) > int(size) {
		return fault.ErrInvalidLayout
	}
	switch f.Kind {
	case FlagField:
		if 1 != f.Width {
			return fault.ErrInvalidLayout
		}
	case TextField:
		if f.Width <= constants.CompactLengthWidth {
			return fault.ErrInvalidLayout
		}
	default:
		return fault.ErrInvalidLayout
	}
	return nil
}

// Decode - read every field of an account using only the layout
func (l *Layout) Decode(account []byte) ([]FieldValue, error) {
	if len(account) < int(l.Size) {
		return nil, fault.ErrTruncated
	}
	if !l.Record.Matches(account) {
		return nil, fault.ErrDiscriminatorMismatch
	}

	values := make([]FieldValue, 0, len(l.Fields))
	for _, f := range l.Fields {
		area := account[f.Offset : f.Offset+f.Width]
		v := FieldValue{Name: f.Name}
		switch f.Kind {
		case FlagField:
			v.Value = strconv.FormatBool(0 != area[0])
		case TextField:
			text, err := getSlot(area)
			if nil != err {
				return nil, err
			}
			v.Value = text
		}
		values = append(values, v)
	}
	return values, nil
}

func appendUint16(buffer []byte, value uint16) []byte {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], value)
	return append(buffer, b[:]...)
}
