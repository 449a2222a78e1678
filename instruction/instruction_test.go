// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package instruction_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/descriptor/fault"
	"github.com/bitmark-inc/descriptor/instruction"
)

func TestUnpack(t *testing.T) {
	testItems := []struct {
		data     []byte
		expected *instruction.Instruction
		err      error
	}{
		{[]byte{0, 251, 0, 0, 0}, &instruction.Instruction{Opcode: instruction.InitialiseSelfDescribing, Bump: 251}, nil},
		{[]byte{0, 7}, &instruction.Instruction{Opcode: instruction.InitialiseSelfDescribing, Bump: 7}, nil},
		{[]byte{2, 254, 0, 0, 0, 99}, &instruction.Instruction{Opcode: instruction.InitialiseCompact, Bump: 254}, nil},
		{[]byte{1}, &instruction.Instruction{Opcode: instruction.ReadSelfDescribing}, nil},
		{[]byte{3, 255, 0, 0, 0}, &instruction.Instruction{Opcode: instruction.ReadCompact}, nil},
		{[]byte{}, nil, fault.ErrInvalidInstructionData},
		{nil, nil, fault.ErrInvalidInstructionData},
		{[]byte{0}, nil, fault.ErrInvalidInstructionData},
		{[]byte{2}, nil, fault.ErrInvalidInstructionData},
		{[]byte{4, 1}, nil, fault.ErrInvalidInstructionData},
		{[]byte{0xff}, nil, fault.ErrInvalidInstructionData},
	}

	for i, item := range testItems {
		actual, err := instruction.Unpack(item.data)
		assert.Equal(t, item.err, err, "%d: wrong error", i)
		assert.Equal(t, item.expected, actual, "%d: wrong instruction", i)
	}
}

func TestPack(t *testing.T) {
	for _, op := range []instruction.Opcode{
		instruction.InitialiseSelfDescribing,
		instruction.ReadSelfDescribing,
		instruction.InitialiseCompact,
		instruction.ReadCompact,
	} {
		i := &instruction.Instruction{Opcode: op}
		if op.IsInitialise() {
			i.Bump = 253
		}
		actual, err := instruction.Unpack(i.Pack())
		assert.Nil(t, err, "%s: wrong error", op)
		assert.Equal(t, i, actual, "%s: wrong instruction", op)
	}

	assert.Equal(t, []byte{2, 251, 0, 0, 0}, (&instruction.Instruction{Opcode: instruction.InitialiseCompact, Bump: 251}).Pack(), "wrong init bytes")
	assert.Equal(t, []byte{1}, (&instruction.Instruction{Opcode: instruction.ReadSelfDescribing}).Pack(), "wrong read bytes")
}

func TestOpcode(t *testing.T) {
	assert.Equal(t, "InitialiseCompact", instruction.InitialiseCompact.String(), "wrong name")
	assert.Equal(t, "Opcode(9)", instruction.Opcode(9).String(), "wrong unknown name")
	assert.True(t, instruction.ReadCompact.IsCompact(), "read compact")
	assert.False(t, instruction.ReadSelfDescribing.IsCompact(), "read self describing")
	assert.False(t, instruction.ReadCompact.IsInitialise(), "read initialises")
}
