// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package message

import (
	"encoding/binary"

	"github.com/bitmark-inc/descriptor/fault"
)

// Builder - single segment message under construction
type Builder struct {
	segment []byte
	root    *StructBuilder
}

// StructBuilder - a struct allocated inside a Builder
type StructBuilder struct {
	builder      *Builder
	offset       int
	dataWords    uint16
	pointerCount uint16
}

// NewBuilder - empty message with room for the root pointer
func NewBuilder() *Builder {
	return &Builder{
		segment: make([]byte, wordSize, 8*wordSize),
	}
}

// allocate zeroed words at the end of the segment and return the
// index of the first one
func (b *Builder) allocate(words int) int {
	index := len(b.segment) / wordSize
	b.segment = append(b.segment, make([]byte, words*wordSize)...)
	return index
}

// InitRoot - allocate the root struct and point word 0 at it
func (b *Builder) InitRoot(dataWords uint16, pointerCount uint16) (*StructBuilder, error) {
	if nil != b.root {
		return nil, fault.ErrAlreadyInitialised
	}
	offset := b.allocate(int(dataWords) + int(pointerCount))
	putWord(b.segment, 0, encodeStructPointer(0, offset, dataWords, pointerCount))

	b.root = &StructBuilder{
		builder:      b,
		offset:       offset,
		dataWords:    dataWords,
		pointerCount: pointerCount,
	}
	return b.root, nil
}

// Words - current segment size in words
func (b *Builder) Words() int {
	return len(b.segment) / wordSize
}

// Size - number of bytes Bytes will return
func (b *Builder) Size() int {
	return 2*4 + len(b.segment)
}

// Bytes - the framed message: segment table followed by the segment
func (b *Builder) Bytes() []byte {
	buffer := make([]byte, 8, b.Size())
	binary.LittleEndian.PutUint32(buffer[0:], 0) // one segment
	binary.LittleEndian.PutUint32(buffer[4:], uint32(b.Words()))
	return append(buffer, b.segment...)
}

// WriteField - store bytes as NUL terminated text in a pointer slot
func (s *StructBuilder) WriteField(slot int, data []byte) error {
	if slot < 0 || slot >= int(s.pointerCount) {
		return fault.ErrInvalidStructPointer
	}
	count := len(data) + 1
	if count > maximumListCount {
		return fault.ErrFieldTooLong
	}

	b := s.builder
	at := s.offset + int(s.dataWords) + slot
	if 0 != wordAt(b.segment, at) {
		return fault.ErrAlreadyInitialised
	}

	target := b.allocate(wordsFor(count))
	copy(b.segment[target*wordSize:], data)
	putWord(b.segment, at, encodeListPointer(at, target, byteElements, uint64(count)))
	return nil
}

// SetText - string form of WriteField
func (s *StructBuilder) SetText(slot int, text string) error {
	return s.WriteField(slot, []byte(text))
}

