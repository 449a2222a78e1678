// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package message

import (
	"encoding/binary"

	"github.com/bitmark-inc/descriptor/fault"
)

// Reader - parsed segment table over a caller owned buffer
type Reader struct {
	segments [][]byte
	size     int
}

// Struct - a struct located inside a segment
//
// the zero value is a null struct whose fields all read as empty
type Struct struct {
	segment      []byte
	offset       int
	dataWords    uint16
	pointerCount uint16
}

// Read - parse the segment table, no data is copied
//
// the buffer may be longer than the message but never shorter than
// the end declared by the segment table
func Read(buffer []byte) (*Reader, error) {
	if len(buffer) < 4 {
		return nil, fault.ErrTruncated
	}
	count := uint64(binary.LittleEndian.Uint32(buffer)) + 1
	if count > maximumSegments {
		return nil, fault.ErrTooManySegments
	}

	headerSize := wordsFor(int(4+4*count)) * wordSize
	if len(buffer) < headerSize {
		return nil, fault.ErrTruncated
	}

	total := uint64(headerSize)
	sizes := make([]uint64, count)
	for i := range sizes {
		sizes[i] = uint64(binary.LittleEndian.Uint32(buffer[4+4*i:])) * wordSize
		total += sizes[i]
	}
	if uint64(len(buffer)) < total {
		return nil, fault.ErrTruncated
	}

	r := &Reader{
		segments: make([][]byte, count),
		size:     int(total),
	}
	start := uint64(headerSize)
	for i, n := range sizes {
		r.segments[i] = buffer[start : start+n : start+n]
		start += n
	}
	return r, nil
}

// Size - number of bytes occupied by the message
func (r *Reader) Size() int {
	return r.size
}

// Segments - number of segments
func (r *Reader) Segments() int {
	return len(r.segments)
}

// Root - follow the root pointer at word 0 of segment 0
func (r *Reader) Root() (Struct, error) {
	segment := r.segments[0]
	if len(segment) < wordSize {
		return Struct{}, fault.ErrTruncated
	}
	return readStruct(segment, 0)
}

func readStruct(segment []byte, at int) (Struct, error) {
	pointer := wordAt(segment, at)
	if 0 == pointer {
		return Struct{}, nil
	}

	switch pointerKind(pointer) {
	case structPointer:
	case farPointer, otherPointer:
		return Struct{}, fault.ErrUnsupportedPointer
	default:
		return Struct{}, fault.ErrWrongStructType
	}

	s := Struct{
		segment:      segment,
		offset:       at + 1 + pointerOffset(pointer),
		dataWords:    uint16(pointer >> 32),
		pointerCount: uint16(pointer >> 48),
	}
	end := s.offset + int(s.dataWords) + int(s.pointerCount)
	if s.offset < 0 || end > len(segment)/wordSize {
		return Struct{}, fault.ErrPointerOutOfBounds
	}
	return s, nil
}

// IsNull - true if the pointer to this struct was null
func (s Struct) IsNull() bool {
	return nil == s.segment
}

// DataWords - size of the data section
func (s Struct) DataWords() int {
	return int(s.dataWords)
}

// PointerCount - size of the pointer section
func (s Struct) PointerCount() int {
	return int(s.pointerCount)
}

// byteList - the elements of a byte list pointer in a slot
//
// a null pointer or a slot beyond the pointer section is nil
func (s Struct) byteList(slot int) ([]byte, error) {
	if slot < 0 {
		return nil, fault.ErrPointerOutOfBounds
	}
	if slot >= int(s.pointerCount) {
		return nil, nil
	}

	at := s.offset + int(s.dataWords) + slot
	pointer := wordAt(s.segment, at)
	if 0 == pointer {
		return nil, nil
	}

	switch pointerKind(pointer) {
	case listPointer:
	case farPointer, otherPointer:
		return nil, fault.ErrUnsupportedPointer
	default:
		return nil, fault.ErrMalformedText
	}

	elementSize := (pointer >> 32) & 7
	count := int(pointer >> 35)
	if byteElements != elementSize {
		return nil, fault.ErrMalformedText
	}

	target := at + 1 + pointerOffset(pointer)
	if target < 0 || target+wordsFor(count) > len(s.segment)/wordSize {
		return nil, fault.ErrPointerOutOfBounds
	}

	start := target * wordSize
	return s.segment[start : start+count : start+count], nil
}

// ReadField - text bytes of a pointer slot without the trailing NUL
//
// the result aliases the message buffer; a null pointer or a slot
// beyond the pointer section reads as empty
func (s Struct) ReadField(slot int) ([]byte, error) {
	data, err := s.byteList(slot)
	if nil != err || nil == data {
		return nil, err
	}
	count := len(data)
	if 0 == count || 0 != data[count-1] {
		return nil, fault.ErrMalformedText
	}
	return data[:count-1], nil
}

// ReadData - every byte of a byte list slot, no terminator
//
// the result aliases the message buffer
func (s Struct) ReadData(slot int) ([]byte, error) {
	return s.byteList(slot)
}

// Text - string copy of ReadField
func (s Struct) Text(slot int) (string, error) {
	data, err := s.ReadField(slot)
	if nil != err {
		return "", err
	}
	return string(data), nil
}
