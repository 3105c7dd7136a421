// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

import (
	"bytes"
	"encoding/hex"

	"github.com/mr-tron/base58"
	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/kittyd/fault"
)

// miscellaneous constants
const (
	// Length - bytes in an account (ed25519 public key size)
	Length = 32

	checksumLength = 4
)

// Account - identifies the owner of kitties and balances
type Account [Length]byte

// FromBytes - make an account from a byte slice
func FromBytes(buffer []byte) (Account, error) {
	a := Account{}
	if Length != len(buffer) {
		return a, fault.ErrInvalidAccountLength
	}
	copy(a[:], buffer)
	return a, nil
}

// FromBase58 - this converts a Base58 encoded string and returns an account
//
// the encoded form is: public key ⧺ first four bytes of SHA3-256(public key)
func FromBase58(accountBase58Encoded string) (Account, error) {
	decoded, err := base58.Decode(accountBase58Encoded)
	if nil != err || 0 == len(decoded) {
		return Account{}, fault.ErrCannotDecodeAccount
	}

	if Length+checksumLength != len(decoded) {
		return Account{}, fault.ErrInvalidAccountLength
	}

	checksumStart := len(decoded) - checksumLength
	checksum := sha3.Sum256(decoded[:checksumStart])
	if !bytes.Equal(checksum[:checksumLength], decoded[checksumStart:]) {
		return Account{}, fault.ErrChecksumMismatch
	}

	return FromBytes(decoded[:checksumStart])
}

// Bytes - the account as a byte slice, safe to append to
func (account Account) Bytes() []byte {
	b := make([]byte, Length)
	copy(b, account[:])
	return b
}

// IsZero - true for the all-zero account
func (account Account) IsZero() bool {
	return account == Account{}
}

// String - base58 encoding of account and checksum
func (account Account) String() string {
	checksum := sha3.Sum256(account[:])
	buffer := make([]byte, 0, Length+checksumLength)
	buffer = append(buffer, account[:]...)
	buffer = append(buffer, checksum[:checksumLength]...)
	return base58.Encode(buffer)
}

// GoString - for the %#v format
func (account Account) GoString() string {
	return "<account:" + hex.EncodeToString(account[:]) + ">"
}

// MarshalText - convert an account to its base58 text form
func (account Account) MarshalText() ([]byte, error) {
	return []byte(account.String()), nil
}

// UnmarshalText - convert a base58 text form to an account
func (account *Account) UnmarshalText(s []byte) error {
	a, err := FromBase58(string(s))
	if nil != err {
		return err
	}
	*account = a
	return nil
}
