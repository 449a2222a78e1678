// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package schema - read the schema text stored in a descriptor account
//
// Only the subset written by this program is understood: a file id,
// comments and flat structs of Text or Data fields.  That is enough to
// decode a self-describing account without compiled knowledge of the
// record.
package schema

import (
	"encoding/hex"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/bitmark-inc/descriptor/fault"
	"github.com/bitmark-inc/descriptor/message"
	"github.com/bitmark-inc/descriptor/record"
)

// File - a parsed schema
type File struct {
	ID      uint64
	Structs []*Struct
}

// Struct - one struct declaration
type Struct struct {
	Name   string
	Fields []Field
}

// Field - one field declaration
type Field struct {
	Name    string
	Ordinal int
	Type    string
}

var (
	commentPattern = regexp.MustCompile(`#[^\n]*`)
	fileIDPattern  = regexp.MustCompile(`^\s*@(0x[0-9a-fA-F]{16})\s*;`)
	structPattern  = regexp.MustCompile(`struct\s+([A-Za-z][A-Za-z0-9_]*)\s*(?:@0x[0-9a-fA-F]{16}\s*)?\{([^{}]*)\}`)
	fieldPattern   = regexp.MustCompile(`^([a-z][A-Za-z0-9_]*)\s*@([0-9]+)\s*:\s*([A-Za-z][A-Za-z0-9_]*)$`)
)

// types stored behind a pointer as a byte list
var pointerTypes = map[string]bool{
	"Text": true,
	"Data": true,
}

// Parse - read schema text
func Parse(text []byte) (*File, error) {
	if !utf8.Valid(text) {
		return nil, fault.ErrInvalidSchema
	}
	source := commentPattern.ReplaceAllString(string(text), "")

	match := fileIDPattern.FindStringSubmatch(source)
	if nil == match {
		return nil, fault.ErrInvalidSchema
	}
	id, err := strconv.ParseUint(match[1][2:], 16, 64)
	if nil != err {
		return nil, fault.ErrInvalidSchema
	}

	f := &File{ID: id}
	for _, m := range structPattern.FindAllStringSubmatch(source, -1) {
		s, err := parseStruct(m[1], m[2])
		if nil != err {
			return nil, err
		}
		f.Structs = append(f.Structs, s)
	}
	if 0 == len(f.Structs) {
		return nil, fault.ErrInvalidSchema
	}
	return f, nil
}

func parseStruct(name string, body string) (*Struct, error) {
	s := &Struct{Name: name}
	seen := make(map[int]bool)

	for _, declaration := range strings.Split(body, ";") {
		declaration = strings.TrimSpace(declaration)
		if "" == declaration {
			continue
		}
		m := fieldPattern.FindStringSubmatch(declaration)
		if nil == m {
			return nil, fault.ErrInvalidSchema
		}
		ordinal, err := strconv.Atoi(m[2])
		if nil != err || seen[ordinal] {
			return nil, fault.ErrInvalidSchema
		}
		seen[ordinal] = true
		s.Fields = append(s.Fields, Field{Name: m[1], Ordinal: ordinal, Type: m[3]})
	}

	// ordinals must be 0..n-1
	sort.Slice(s.Fields, func(i, j int) bool { return s.Fields[i].Ordinal < s.Fields[j].Ordinal })
	for i, f := range s.Fields {
		if i != f.Ordinal {
			return nil, fault.ErrInvalidSchema
		}
	}
	return s, nil
}

// Root - the first struct in the file
func (f *File) Root() *Struct {
	return f.Structs[0]
}

// Lookup - find a struct by name
func (f *File) Lookup(name string) (*Struct, bool) {
	for _, s := range f.Structs {
		if name == s.Name {
			return s, true
		}
	}
	return nil, false
}

// Decode - read every field of a framed message using this struct
//
// pointer slots are allocated in ordinal order, which for a struct of
// only pointer fields means slot == ordinal; Data values are hex
func (s *Struct) Decode(payload []byte) ([]record.FieldValue, error) {
	for _, f := range s.Fields {
		if !pointerTypes[f.Type] {
			return nil, fault.ErrUnsupportedFieldType
		}
	}

	reader, err := message.Read(payload)
	if nil != err {
		return nil, err
	}
	root, err := reader.Root()
	if nil != err {
		return nil, err
	}

	values := make([]record.FieldValue, 0, len(s.Fields))
	for slot, f := range s.Fields {
		v := record.FieldValue{Name: f.Name}
		switch f.Type {
		case "Text":
			text, err := root.ReadField(slot)
			if nil != err {
				return nil, err
			}
			if !utf8.Valid(text) {
				return nil, fault.ErrMalformedText
			}
			v.Value = string(text)
		default:
			data, err := root.ReadData(slot)
			if nil != err {
				return nil, err
			}
			v.Value = hex.EncodeToString(data)
		}
		values = append(values, v)
	}
	return values, nil
}
