// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package record

import (
	"unicode/utf8"

	"github.com/bitmark-inc/descriptor/constants"
	"github.com/bitmark-inc/descriptor/discriminator"
	"github.com/bitmark-inc/descriptor/fault"
	"github.com/bitmark-inc/descriptor/message"
)

// pointer slots of the Person struct
const (
	firstNameSlot  = 0
	lastNameSlot   = 1
	personPointers = 2
)

// SelfDescribing - [discriminator][framed pointer message]
type SelfDescribing struct {
	tag discriminator.T
}

// NewSelfDescribing - codec tagging accounts with d
func NewSelfDescribing(d discriminator.T) *SelfDescribing {
	return &SelfDescribing{tag: d}
}

// Name - codec name
func (c *SelfDescribing) Name() string {
	return "self-describing"
}

// Discriminator - account tag
func (c *SelfDescribing) Discriminator() discriminator.T {
	return c.tag
}

// Descriptor - the schema text
func (c *SelfDescribing) Descriptor() []byte {
	return append([]byte(nil), Schema...)
}

// Encode - discriminator followed by the message
func (c *SelfDescribing) Encode(r Record) ([]byte, error) {
	payload, err := EncodePayload(r)
	if nil != err {
		return nil, err
	}
	account := make([]byte, 0, len(c.tag)+len(payload))
	account = append(account, c.tag[:]...)
	return append(account, payload...), nil
}

// Decode - check the discriminator then decode the message
func (c *SelfDescribing) Decode(account []byte) (Record, error) {
	if len(account) < len(c.tag) {
		return Record{}, fault.ErrTruncated
	}
	if !c.tag.Matches(account) {
		return Record{}, fault.ErrDiscriminatorMismatch
	}
	return DecodePayload(account[len(c.tag):])
}

// EncodePayload - the message without discriminator
func EncodePayload(r Record) ([]byte, error) {
	if len(r.FirstName) > constants.MaximumTextLength || len(r.LastName) > constants.MaximumTextLength {
		return nil, fault.ErrFieldTooLong
	}

	b := message.NewBuilder()
	root, err := b.InitRoot(0, personPointers)
	if nil != err {
		return nil, err
	}
	if err := root.SetText(firstNameSlot, r.FirstName); nil != err {
		return nil, err
	}
	if err := root.SetText(lastNameSlot, r.LastName); nil != err {
		return nil, err
	}
	return b.Bytes(), nil
}

// DecodePayload - read both text fields from a framed message
func DecodePayload(payload []byte) (Record, error) {
	reader, err := message.Read(payload)
	if nil != err {
		return Record{}, err
	}
	root, err := reader.Root()
	if nil != err {
		return Record{}, err
	}

	first, err := readText(root, firstNameSlot)
	if nil != err {
		return Record{}, err
	}
	last, err := readText(root, lastNameSlot)
	if nil != err {
		return Record{}, err
	}
	return Record{FirstName: first, LastName: last}, nil
}

func readText(root message.Struct, slot int) (string, error) {
	data, err := root.ReadField(slot)
	if nil != err {
		return "", err
	}
	if len(data) > constants.MaximumTextLength || !utf8.Valid(data) {
		return "", fault.ErrMalformedText
	}
	return string(data), nil
}
