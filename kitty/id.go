// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package kitty

import (
	"encoding/hex"

	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/kittyd/fault"
)

// IdLength - number of bytes in a kitty identifier
const IdLength = 32

// Id - SHA3-256 of the packed kitty at creation
type Id [IdLength]byte

// NewId - create an identifier from packed data
func NewId(packed []byte) Id {
	return sha3.Sum256(packed)
}

// IdFromBytes - make an identifier from a byte slice
func IdFromBytes(buffer []byte) (Id, error) {
	id := Id{}
	if IdLength != len(buffer) {
		return id, fault.ErrInvalidKittyIdLength
	}
	copy(id[:], buffer)
	return id, nil
}

// String - hex form of the identifier
func (id Id) String() string {
	return hex.EncodeToString(id[:])
}

// GoString - for the %#v format
func (id Id) GoString() string {
	return "<kitty:" + hex.EncodeToString(id[:]) + ">"
}

// MarshalText - convert an identifier to hex text
func (id Id) MarshalText() ([]byte, error) {
	buffer := make([]byte, hex.EncodedLen(IdLength))
	hex.Encode(buffer, id[:])
	return buffer, nil
}

// UnmarshalText - convert hex text to an identifier
func (id *Id) UnmarshalText(s []byte) error {
	if hex.EncodedLen(IdLength) != len(s) {
		return fault.ErrInvalidKittyIdLength
	}
	buffer := make([]byte, IdLength)
	if _, err := hex.Decode(buffer, s); nil != err {
		return err
	}
	copy(id[:], buffer)
	return nil
}
