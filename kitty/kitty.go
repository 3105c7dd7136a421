// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package kitty

import (
	"encoding/binary"

	"github.com/bitmark-inc/kittyd/account"
	"github.com/bitmark-inc/kittyd/dna"
	"github.com/bitmark-inc/kittyd/fault"
)

// structure of the packed record
//
//	dna ⧺ gender ⧺ owner ⧺ listed flag [ ⧺ price ]
const (
	dnaStart  = 0
	dnaFinish = dnaStart + dna.Length

	genderStart  = dnaFinish
	genderFinish = genderStart + 1

	ownerStart  = genderFinish
	ownerFinish = ownerStart + account.Length

	listedStart  = ownerFinish
	listedFinish = listedStart + 1

	priceStart  = listedFinish
	priceFinish = priceStart + 8

	unlistedPackLength = listedFinish
	listedPackLength   = priceFinish
)

// listed flag values
const (
	unlisted = 0x00
	listed   = 0x01
)

// Record - a single kitty
type Record struct {
	Id     Id              `json:"id"`
	DNA    dna.DNA         `json:"dna"`
	Price  *uint64         `json:"price"`
	Gender dna.Gender      `json:"gender"`
	Owner  account.Account `json:"owner"`
}

// Packed - packed kitty record as stored in the database
type Packed []byte

// New - create a record with its identifier, price is not set
func New(d dna.DNA, gender dna.Gender, owner account.Account) *Record {
	r := &Record{
		DNA:    d,
		Gender: gender,
		Owner:  owner,
	}
	r.Id = NewId(r.Pack())
	return r
}

// IsListed - true if the kitty is for sale
func (r *Record) IsListed() bool {
	return nil != r.Price
}

// SetPrice - set or clear the price; the value is copied
func (r *Record) SetPrice(price *uint64) {
	if nil == price {
		r.Price = nil
		return
	}
	p := *price
	r.Price = &p
}

// Pack - convert a record to its binary form, the id is the key and is not included
func (r *Record) Pack() Packed {
	length := unlistedPackLength
	if r.IsListed() {
		length = listedPackLength
	}

	buffer := make(Packed, length)
	copy(buffer[dnaStart:dnaFinish], r.DNA[:])
	buffer[genderStart] = byte(r.Gender)
	copy(buffer[ownerStart:ownerFinish], r.Owner[:])

	if r.IsListed() {
		buffer[listedStart] = listed
		binary.BigEndian.PutUint64(buffer[priceStart:priceFinish], *r.Price)
	} else {
		buffer[listedStart] = unlisted
	}
	return buffer
}

// Unpack - convert a stored record back into a kitty
func (packed Packed) Unpack(id Id) (*Record, error) {
	if len(packed) < unlistedPackLength {
		return nil, fault.ErrNotKittyPack
	}

	r := &Record{
		Id:     id,
		Gender: dna.Gender(packed[genderStart]),
	}
	if !r.Gender.Valid() {
		return nil, fault.ErrNotKittyPack
	}
	copy(r.DNA[:], packed[dnaStart:dnaFinish])
	copy(r.Owner[:], packed[ownerStart:ownerFinish])

	switch packed[listedStart] {
	case unlisted:
		if unlistedPackLength != len(packed) {
			return nil, fault.ErrNotKittyPack
		}
	case listed:
		if listedPackLength != len(packed) {
			return nil, fault.ErrNotKittyPack
		}
		price := binary.BigEndian.Uint64(packed[priceStart:priceFinish])
		r.Price = &price
	default:
		return nil, fault.ErrNotKittyPack
	}
	return r, nil
}
