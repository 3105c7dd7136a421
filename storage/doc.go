// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage - maintain the on-disk data store
//
// maintain separate pools of a number of elements in key->value form
//
// This maintains a LevelDB database split into a series of tables.
// Each table is defined by a prefix byte that is obtained from the
// prefix tag in the struct defining the available tables.
//
// Notes:
// 1. each separate pool has a single byte prefix (to spread the keys in LevelDB)
// 2. ⧺            = concatenation of byte data
// 3. id           = kitty identifier, 32 byte SHA3-256(packed kitty)
// 4. owner        = account (32 bytes)
// 5. count        = successive index value as big endian uint64 (8 bytes)
// 6. height       = ledger height as big endian uint64 (8 bytes)
//
// Kitties:
//
//	K ⧺ id              - kitty record
//	                      data: dna ⧺ gender ⧺ owner ⧺ listed flag [⧺ price]
//
// Ownership:
//
//	N ⧺ owner           - next count value to use for appending to owned items
//	                      data: count
//	L ⧺ owner ⧺ count   - list of owned items in acquisition order
//	                      data: id
//	D ⧺ owner ⧺ id      - position in list of owned items, for delete after transfer
//	                      data: count
//	T ⧺ owner           - number of items currently owned
//	                      data: count
//
// Balances:
//
//	B ⧺ owner           - free balance
//	                      data: big endian uint64
//
// Ledger:
//
//	G ⧺ name            - global scalars: "kitties" (kitty count), "height"
//	                      data: big endian uint64
//	H ⧺ height          - ledger history
//	                      data: kitty count ⧺ digest
//
// Testing:
//
//	Z ⧺ key             - testing data
package storage
