// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package dna

import (
	"encoding/binary"
	"encoding/hex"

	"golang.org/x/crypto/blake2b"

	"github.com/bitmark-inc/kittyd/account"
	"github.com/bitmark-inc/kittyd/fault"
)

// Length - number of bytes in a DNA blob
const Length = 16

// DNA - the attribute blob of a kitty
type DNA [Length]byte

// Derive - mix a nonce, external entropy and the requesting account
// into a new DNA value
//
// BLAKE2b with a 16 byte digest over: entropy ⧺ account ⧺ nonce
func Derive(nonce uint64, entropy []byte, owner account.Account) DNA {
	h, err := blake2b.New(Length, nil)
	if nil != err {
		// only possible for an invalid size or key
		panic(err)
	}

	n := make([]byte, 8)
	binary.BigEndian.PutUint64(n, nonce)

	h.Write(entropy)
	h.Write(owner[:])
	h.Write(n)

	d := DNA{}
	copy(d[:], h.Sum(nil))
	return d
}

// Breed - combine two parents bit by bit
//
// a set bit in selector takes the bit from first, a clear bit takes
// the bit from second
func Breed(selector DNA, first DNA, second DNA) DNA {
	child := DNA{}
	for i := 0; i < Length; i += 1 {
		child[i] = (selector[i] & first[i]) | (^selector[i] & second[i])
	}
	return child
}

// Gender - the gender derived from a DNA blob
func (d DNA) Gender() Gender {
	return GenderOf(d)
}

// FromBytes - make a DNA from a byte slice
func FromBytes(buffer []byte) (DNA, error) {
	d := DNA{}
	if Length != len(buffer) {
		return d, fault.ErrInvalidDNALength
	}
	copy(d[:], buffer)
	return d, nil
}

// String - hex form of DNA
func (d DNA) String() string {
	return hex.EncodeToString(d[:])
}

// GoString - for the %#v format
func (d DNA) GoString() string {
	return "<dna:" + hex.EncodeToString(d[:]) + ">"
}

// MarshalText - convert DNA to hex text
func (d DNA) MarshalText() ([]byte, error) {
	buffer := make([]byte, hex.EncodedLen(Length))
	hex.Encode(buffer, d[:])
	return buffer, nil
}

// UnmarshalText - convert hex text to DNA
func (d *DNA) UnmarshalText(s []byte) error {
	if hex.EncodedLen(Length) != len(s) {
		return fault.ErrInvalidDNALength
	}
	buffer := make([]byte, Length)
	if _, err := hex.Decode(buffer, s); nil != err {
		return err
	}
	copy(d[:], buffer)
	return nil
}
