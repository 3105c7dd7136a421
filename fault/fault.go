// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type (
	BalanceError    GenericError
	CapacityError   GenericError
	ExistsError     GenericError
	InvalidError    GenericError
	LengthError     GenericError
	NotFoundError   GenericError
	PermissionError GenericError
	ProcessError    GenericError
	RecordError     GenericError
)

// common errors - keep in alphabetic order
var (
	ErrAlreadyInitialised           = ExistsError("already initialised")
	ErrBalanceOverflow              = BalanceError("balance overflow")
	ErrBuyerIsKittyOwner            = InvalidError("buyer is kitty owner")
	ErrCannotDecodeAccount          = InvalidError("cannot decode account")
	ErrCertificateFileAlreadyExists = ExistsError("certificate file already exists")
	ErrCertificateFileNotFound      = NotFoundError("certificate file not found")
	ErrChecksumMismatch             = InvalidError("checksum mismatch")
	ErrDatabaseIsNotSet             = ProcessError("database is not set")
	ErrDatabaseIsReadOnly           = ProcessError("database is read only")
	ErrDatabaseVersion              = RecordError("incompatible database version")
	ErrHeightNotFound               = NotFoundError("ledger height not found")
	ErrHistoryRecordCorrupt         = RecordError("history record corrupt")
	ErrInsufficientBalance          = BalanceError("insufficient balance")
	ErrInvalidAccountLength         = LengthError("invalid account length")
	ErrInvalidChain                 = InvalidError("invalid chain")
	ErrInvalidCount                 = InvalidError("invalid count")
	ErrInvalidDNALength             = LengthError("invalid dna length")
	ErrInvalidGender                = InvalidError("invalid gender")
	ErrInvalidIPAddress             = InvalidError("invalid IP address")
	ErrInvalidKittyIdLength         = LengthError("invalid kitty id length")
	ErrInvalidPortNumber            = InvalidError("invalid port number")
	ErrInvalidStructPointer         = InvalidError("invalid struct pointer")
	ErrKeyFileAlreadyExists         = ExistsError("key file already exists")
	ErrKeyFileNotFound              = NotFoundError("key file not found")
	ErrKittyAlreadyExists           = ExistsError("kitty already exists")
	ErrKittyBidPriceTooLow          = InvalidError("kitty bid price too low")
	ErrKittyCountOverflow           = CapacityError("kitty count overflow")
	ErrKittyNotForSale              = InvalidError("kitty not for sale")
	ErrKittyNotFound                = NotFoundError("kitty not found")
	ErrMaximumOwnedOutOfRange       = InvalidError("maximum owned out of range")
	ErrMissingParameters            = InvalidError("missing parameters")
	ErrNonceExhausted               = CapacityError("dna nonce exhausted")
	ErrNotConfigurationTable        = InvalidError("configuration is not a table")
	ErrNotInitialised               = NotFoundError("not initialised")
	ErrNotKittyOwner                = PermissionError("not kitty owner")
	ErrNotKittyPack                 = RecordError("not kitty pack")
	ErrRateLimiting                 = ProcessError("rate limiting")
	ErrRegistryLimitsMismatch       = InvalidError("registry limits differ from ledger")
	ErrSameGenderParents            = InvalidError("parents have the same gender")
	ErrTooManyKittiesOwned          = CapacityError("too many kitties owned")
	ErrTransactionAlreadyInUse      = ProcessError("transaction already in use")
	ErrTransactionNotInUse          = ProcessError("transaction not in use")
	ErrTransferToSelf               = InvalidError("transfer to self")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e BalanceError) Error() string    { return string(e) }
func (e CapacityError) Error() string   { return string(e) }
func (e ExistsError) Error() string     { return string(e) }
func (e InvalidError) Error() string    { return string(e) }
func (e LengthError) Error() string     { return string(e) }
func (e NotFoundError) Error() string   { return string(e) }
func (e PermissionError) Error() string { return string(e) }
func (e ProcessError) Error() string    { return string(e) }
func (e RecordError) Error() string     { return string(e) }

// determine the class of an error
func IsErrBalance(e error) bool    { _, ok := e.(BalanceError); return ok }
func IsErrCapacity(e error) bool   { _, ok := e.(CapacityError); return ok }
func IsErrExists(e error) bool     { _, ok := e.(ExistsError); return ok }
func IsErrInvalid(e error) bool    { _, ok := e.(InvalidError); return ok }
func IsErrLength(e error) bool     { _, ok := e.(LengthError); return ok }
func IsErrNotFound(e error) bool   { _, ok := e.(NotFoundError); return ok }
func IsErrPermission(e error) bool { _, ok := e.(PermissionError); return ok }
func IsErrProcess(e error) bool    { _, ok := e.(ProcessError); return ok }
func IsErrRecord(e error) bool     { _, ok := e.(RecordError); return ok }
