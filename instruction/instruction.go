// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package instruction decodes the instruction data sent to the program
//
// the first byte selects the operation; the initialise operations
// take the primary account bump as the next byte and ignore anything
// after it, so a client sending a little endian u32 bump is accepted
package instruction

import (
	"fmt"

	"github.com/bitmark-inc/descriptor/fault"
)

// Opcode - operation selector
type Opcode byte

// the supported operations
const (
	InitialiseSelfDescribing Opcode = 0
	ReadSelfDescribing       Opcode = 1
	InitialiseCompact        Opcode = 2
	ReadCompact              Opcode = 3
)

// String - printable name of the opcode
func (op Opcode) String() string {
	switch op {
	case InitialiseSelfDescribing:
		return "InitialiseSelfDescribing"
	case ReadSelfDescribing:
		return "ReadSelfDescribing"
	case InitialiseCompact:
		return "InitialiseCompact"
	case ReadCompact:
		return "ReadCompact"
	default:
		return fmt.Sprintf("Opcode(%d)", byte(op))
	}
}

// IsInitialise - true for operations that create accounts
func (op Opcode) IsInitialise() bool {
	return InitialiseSelfDescribing == op || InitialiseCompact == op
}

// IsCompact - true for operations on the compact representation
func (op Opcode) IsCompact() bool {
	return InitialiseCompact == op || ReadCompact == op
}

// Instruction - a decoded instruction
type Instruction struct {
	Opcode Opcode
	Bump   byte // only meaningful for initialise operations
}

// Unpack - decode instruction data
func Unpack(data []byte) (*Instruction, error) {
	if 0 == len(data) {
		return nil, fault.ErrInvalidInstructionData
	}

	op := Opcode(data[0])
	switch op {
	case InitialiseSelfDescribing, InitialiseCompact:
		if len(data) < 2 {
			return nil, fault.ErrInvalidInstructionData
		}
		return &Instruction{Opcode: op, Bump: data[1]}, nil

	case ReadSelfDescribing, ReadCompact:
		return &Instruction{Opcode: op}, nil

	default:
		return nil, fault.ErrInvalidInstructionData
	}
}

// Pack - encode an instruction, the bump as a little endian u32 the
// way clients send it
func (instruction *Instruction) Pack() []byte {
	if instruction.Opcode.IsInitialise() {
		return []byte{byte(instruction.Opcode), instruction.Bump, 0, 0, 0}
	}
	return []byte{byte(instruction.Opcode)}
}

// String - printable form
func (instruction *Instruction) String() string {
	if instruction.Opcode.IsInitialise() {
		return fmt.Sprintf("%s bump: %d", instruction.Opcode, instruction.Bump)
	}
	return instruction.Opcode.String()
}
