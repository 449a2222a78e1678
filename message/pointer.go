// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package message

import (
	"encoding/binary"
)

const (
	wordSize = 8

	// pointer kinds in the two low bits
	structPointer = 0
	listPointer   = 1
	farPointer    = 2
	otherPointer  = 3

	// list element size code for single bytes
	byteElements = 2

	// element count is a 29 bit field
	maximumListCount = 1<<29 - 1

	maximumSegments = 64
)

// read the word at index
func wordAt(segment []byte, index int) uint64 {
	return binary.LittleEndian.Uint64(segment[index*wordSize:])
}

// write the word at index
func putWord(segment []byte, index int, value uint64) {
	binary.LittleEndian.PutUint64(segment[index*wordSize:], value)
}

// offset field relative to the word following the pointer
func pointerOffset(pointer uint64) int {
	return int(int32(uint32(pointer)) >> 2)
}

func pointerKind(pointer uint64) int {
	return int(pointer & 3)
}

func encodeStructPointer(at int, target int, dataWords uint16, pointerCount uint16) uint64 {
	offset := int32(target - at - 1)
	return uint64(uint32(offset)<<2|structPointer) |
		uint64(dataWords)<<32 |
		uint64(pointerCount)<<48
}

func encodeListPointer(at int, target int, elementSize uint64, count uint64) uint64 {
	offset := int32(target - at - 1)
	return uint64(uint32(offset)<<2|listPointer) |
		(count<<3|elementSize)<<32
}

// words needed to hold n bytes
func wordsFor(n int) int {
	return (n + wordSize - 1) / wordSize
}
