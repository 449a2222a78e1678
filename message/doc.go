// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package message - word aligned pointer message format
//
// A message is a stream header followed by segments of 8 byte words:
//
//	header:  u32 (segment count - 1) | u32 words per segment ... | pad to 8
//	word 0 of segment 0:  root struct pointer
//
// Struct pointer (little endian 64 bits):
//	bits 0-1  : 0
//	bits 2-31 : signed offset in words from the end of the pointer
//	bits 32-47: data section size in words
//	bits 48-63: pointer section size in words
//
// List pointer:
//	bits 0-1  : 1
//	bits 2-31 : signed offset in words from the end of the pointer
//	bits 32-34: element size (2 = byte)
//	bits 35-63: element count
//
// Text is a byte list whose last element is NUL, Data is a byte list
// taken whole.  Readers return slices of the original buffer, nothing
// is copied.  Only single segment messages are built and far pointers
// are not followed.
package message
