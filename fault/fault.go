// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type (
	DecodeError   GenericError
	ExistsError   GenericError
	InvalidError  GenericError
	LengthError   GenericError
	NotFoundError GenericError
	ProcessError  GenericError
	RecordError   GenericError
)

// common errors - keep in alphabetic order
var (
	ErrAccountAlreadyInUse    = ExistsError("account already in use")
	ErrAccountNotFound        = DecodeError("account not found")
	ErrAddressMismatch        = InvalidError("derived address does not match supplied account")
	ErrAlreadyInitialised     = ExistsError("already initialised")
	ErrConfigurationNotTable  = InvalidError("configuration did not return a table")
	ErrDiscriminatorMismatch  = DecodeError("discriminator mismatch")
	ErrFieldTooLong           = LengthError("field too long")
	ErrInsufficientFunds      = ProcessError("insufficient funds")
	ErrInvalidAccountSize     = LengthError("invalid account size")
	ErrInvalidAddress         = InvalidError("invalid address")
	ErrInvalidDiscriminator   = InvalidError("invalid discriminator")
	ErrInvalidInstructionData = InvalidError("invalid instruction data")
	ErrInvalidLayout          = RecordError("invalid layout record")
	ErrInvalidSchema          = RecordError("invalid schema")
	ErrInvalidSeeds           = InvalidError("invalid seeds")
	ErrInvalidStructPointer   = InvalidError("invalid struct pointer")
	ErrMalformedText          = DecodeError("malformed text field")
	ErrMissingParameters      = InvalidError("missing parameters")
	ErrNoViableBump           = NotFoundError("unable to find a viable bump")
	ErrNotAccountOwner        = InvalidError("program does not own account")
	ErrNotEnoughAccounts      = InvalidError("not enough account keys")
	ErrNotInitialised         = DecodeError("account not initialised")
	ErrOnCurve                = InvalidError("derived address is on the ed25519 curve")
	ErrPointerOutOfBounds     = DecodeError("pointer out of bounds")
	ErrSeedsMismatch          = InvalidError("signer seeds do not derive target address")
	ErrSizeMismatch           = LengthError("data size does not match account size")
	ErrSlotOverflow           = DecodeError("text length exceeds slot width")
	ErrStructNotFound         = NotFoundError("struct not found in schema")
	ErrTooManySegments        = DecodeError("too many segments")
	ErrTruncated              = DecodeError("truncated data")
	ErrUnsupportedFieldType   = RecordError("unsupported field type")
	ErrUnsupportedPointer     = DecodeError("unsupported pointer type")
	ErrWrongStructType        = DecodeError("root pointer is not a struct")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e DecodeError) Error() string   { return string(e) }
func (e ExistsError) Error() string   { return string(e) }
func (e InvalidError) Error() string  { return string(e) }
func (e LengthError) Error() string   { return string(e) }
func (e NotFoundError) Error() string { return string(e) }
func (e ProcessError) Error() string  { return string(e) }
func (e RecordError) Error() string   { return string(e) }

// determine the class of an error
func IsErrDecode(e error) bool   { _, ok := e.(DecodeError); return ok }
func IsErrExists(e error) bool   { _, ok := e.(ExistsError); return ok }
func IsErrInvalid(e error) bool  { _, ok := e.(InvalidError); return ok }
func IsErrLength(e error) bool   { _, ok := e.(LengthError); return ok }
func IsErrNotFound(e error) bool { _, ok := e.(NotFoundError); return ok }
func IsErrProcess(e error) bool  { _, ok := e.(ProcessError); return ok }
func IsErrRecord(e error) bool   { _, ok := e.(RecordError); return ok }
