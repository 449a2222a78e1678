// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package inspect reads primary accounts without compiled knowledge of
// the record they hold
//
// the leading discriminator of a primary account locates its
// descriptor account, and the descriptor holds either the schema text
// or a packed layout that is enough to decode the primary
package inspect

import (
	"time"

	cache "github.com/patrickmn/go-cache"

	"github.com/bitmark-inc/descriptor/address"
	"github.com/bitmark-inc/descriptor/constants"
	"github.com/bitmark-inc/descriptor/discriminator"
	"github.com/bitmark-inc/descriptor/fault"
	"github.com/bitmark-inc/descriptor/record"
	"github.com/bitmark-inc/descriptor/schema"
	"github.com/bitmark-inc/logger"
)

const (
	defaultExpiration = 10 * time.Minute
	cleanupInterval   = 20 * time.Minute
)

// description kinds
const (
	SchemaKind = "schema"
	LayoutKind = "layout"
)

// AccountSource - committed account data
type AccountSource interface {
	AccountData(address.Address) ([]byte, error)
}

// Reader - decodes the primary accounts of one program
type Reader struct {
	source      AccountSource
	program     address.Address
	descriptors *cache.Cache
	log         *logger.L
}

// Description - a primary account decoded through its descriptor
type Description struct {
	Account       address.Address     `json:"account"`
	Descriptor    address.Address     `json:"descriptor"`
	Discriminator discriminator.T     `json:"discriminator"`
	Kind          string              `json:"kind"`
	Struct        string              `json:"struct,omitempty"`
	Fields        []record.FieldValue `json:"fields"`
}

// NewReader - reader for accounts owned by program
func NewReader(source AccountSource, program address.Address) *Reader {
	return &Reader{
		source:      source,
		program:     program,
		descriptors: cache.New(defaultExpiration, cleanupInterval),
		log:         logger.New("inspect"),
	}
}

// DescriptorAddress - descriptor account of a record type
func (r *Reader) DescriptorAddress(d discriminator.T) (address.Address, error) {
	key := d.String()
	if cached, found := r.descriptors.Get(key); found {
		return cached.(address.Address), nil
	}

	a, bump, err := address.FindProgramAddress([][]byte{d.Bytes()}, r.program)
	if nil != err {
		return address.Zero, err
	}
	r.log.Debugf("descriptor of: %s  is: %s  bump: %d", d, a, bump)

	r.descriptors.Set(key, a, cache.DefaultExpiration)
	return a, nil
}

// RawAccountData - the discriminator and payload of a primary account
func (r *Reader) RawAccountData(primary address.Address) (discriminator.T, []byte, error) {
	data, err := r.source.AccountData(primary)
	if nil != err {
		return discriminator.T{}, nil, err
	}
	d, err := discriminator.FromBytes(data)
	if nil != err {
		return discriminator.T{}, nil, err
	}
	return d, data[constants.DiscriminatorLength:], nil
}

// AccountSchema - the descriptor bytes for a primary account
func (r *Reader) AccountSchema(primary address.Address) (address.Address, []byte, error) {
	d, _, err := r.RawAccountData(primary)
	if nil != err {
		return address.Zero, nil, err
	}
	return r.descriptorOf(primary, d)
}

// descriptorOf - locate and fetch the descriptor for a discriminator
func (r *Reader) descriptorOf(primary address.Address, d discriminator.T) (address.Address, []byte, error) {
	descriptor, err := r.DescriptorAddress(d)
	if nil != err {
		return address.Zero, nil, err
	}
	data, err := r.source.AccountData(descriptor)
	if nil != err {
		r.log.Warnf("descriptor: %s  of: %s  error: %s", descriptor, primary, err)
		return address.Zero, nil, err
	}
	return descriptor, data, nil
}

// Describe - decode a primary account using only its descriptor
func (r *Reader) Describe(primary address.Address) (*Description, error) {
	return r.DescribeAs(primary, "")
}

// DescribeAs - Describe with the named schema struct instead of the
// first one; layout descriptors have no struct names and ignore it
func (r *Reader) DescribeAs(primary address.Address, structName string) (*Description, error) {
	account, err := r.source.AccountData(primary)
	if nil != err {
		return nil, err
	}
	d, err := discriminator.FromBytes(account)
	if nil != err {
		return nil, err
	}
	descriptor, description, err := r.descriptorOf(primary, d)
	if nil != err {
		return nil, err
	}

	result := &Description{
		Account:       primary,
		Descriptor:    descriptor,
		Discriminator: d,
	}

	if record.IsLayout(description) {
		layout, err := record.UnpackLayout(description)
		if nil != err {
			return nil, err
		}
		if layout.Record != d {
			return nil, fault.ErrDiscriminatorMismatch
		}
		fields, err := layout.Decode(account)
		if nil != err {
			return nil, err
		}
		result.Kind = LayoutKind
		result.Fields = fields
		return result, nil
	}

	file, err := schema.Parse(description)
	if nil != err {
		return nil, err
	}
	root := file.Root()
	if "" != structName {
		s, ok := file.Lookup(structName)
		if !ok {
			return nil, fault.ErrStructNotFound
		}
		root = s
	}
	fields, err := root.Decode(account[constants.DiscriminatorLength:])
	if nil != err {
		return nil, err
	}
	result.Kind = SchemaKind
	result.Struct = root.Name
	result.Fields = fields
	return result, nil
}
