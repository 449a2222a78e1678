// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

// Varint64MaximumBytes - longest possible Varint64
const Varint64MaximumBytes = 9

// ToVarint64 - seven bits per byte, least significant group first
//
// the ninth byte, if present, carries all eight remaining bits so no
// value needs more than Varint64MaximumBytes
func ToVarint64(value uint64) []byte {
	result := make([]byte, 0, Varint64MaximumBytes)
	for i := 1; i < Varint64MaximumBytes && value >= 0x80; i += 1 {
		result = append(result, byte(value)|0x80)
		value >>= 7
	}
	return append(result, byte(value))
}

// FromVarint64 - decode a Varint64 and the number of bytes it used
//
// returns 0, 0 for a truncated buffer
func FromVarint64(buffer []byte) (uint64, int) {
	result := uint64(0)
	shift := uint(0)

	for count := 1; count <= len(buffer) && count <= Varint64MaximumBytes; count += 1 {
		b := uint64(buffer[count-1])
		if Varint64MaximumBytes == count {
			return result | b<<shift, count
		}
		result |= (b & 0x7f) << shift
		if 0 == b&0x80 {
			return result, count
		}
		shift += 7
	}
	return 0, 0
}

// ClippedVarint64 - decode a Varint64 that must lie in minimum..maximum
//
// returns 0, 0 if truncated or out of range
func ClippedVarint64(buffer []byte, minimum int, maximum int) (int, int) {
	if minimum < 0 || maximum < 0 || minimum >= maximum {
		return 0, 0
	}

	value, count := FromVarint64(buffer)
	if 0 == count || value > uint64(maximum) || value < uint64(minimum) {
		return 0, 0
	}
	return int(value), count
}
