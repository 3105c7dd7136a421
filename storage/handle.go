// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"

	"github.com/bitmark-inc/logger"
	"github.com/syndtr/goleveldb/leveldb"
	ldb_util "github.com/syndtr/goleveldb/leveldb/util"

	"github.com/bitmark-inc/kittyd/fault"
)

// PoolHandle - the structure for a pool handle
type PoolHandle struct {
	prefix byte
	store  *Store
}

// Element - a binary data item
type Element struct {
	Key   []byte
	Value []byte
}

// Handle - read only access to a pool
type Handle interface {
	Get(key []byte) []byte
	GetN(key []byte) (uint64, bool)
	Has(key []byte) bool
	Read(key []byte) ([]byte, error)
	ReadN(key []byte) (uint64, bool, error)
	Range(keyPrefix []byte) ([]Element, error)
}

// prepend the prefix onto the key
func (p *PoolHandle) prefixKey(key []byte) []byte {
	prefixedKey := make([]byte, 1, len(key)+1)
	prefixedKey[0] = p.prefix
	return append(prefixedKey, key...)
}

// Prefix - the single byte prefix of this pool
func (p *PoolHandle) Prefix() byte {
	return p.prefix
}

// Read - read a value for a given key
//
// returns nil value without error if the key does not exist
func (p *PoolHandle) Read(key []byte) ([]byte, error) {
	p.store.RLock()
	defer p.store.RUnlock()

	if nil == p.store.db {
		return nil, fault.ErrDatabaseIsNotSet
	}

	value, err := p.store.db.Get(p.prefixKey(key), nil)
	if leveldb.ErrNotFound == err {
		return nil, nil
	}
	if nil != err {
		return nil, err
	}
	return value, nil
}

// ReadN - read a big endian uint64 value for a given key
func (p *PoolHandle) ReadN(key []byte) (uint64, bool, error) {
	value, err := p.Read(key)
	if nil != err {
		return 0, false, err
	}
	if 8 != len(value) {
		return 0, false, nil
	}
	return binary.BigEndian.Uint64(value), true, nil
}

// Get - read a value for a given key
//
// this returns the actual element - copy the result if it must be preserved
func (p *PoolHandle) Get(key []byte) []byte {
	value, err := p.Read(key)
	if fault.ErrDatabaseIsNotSet == err {
		return nil
	}
	logger.PanicIfError("pool.Get", err)
	return value
}

// GetN - read a record and decode the first 8 bytes as big endian uint64
//
// the boolean result is false if the key is missing or the value is not 8 bytes
func (p *PoolHandle) GetN(key []byte) (uint64, bool) {
	value := p.Get(key)
	if 8 != len(value) {
		return 0, false
	}
	return binary.BigEndian.Uint64(value), true
}

// Has - check if a key exists
func (p *PoolHandle) Has(key []byte) bool {
	p.store.RLock()
	defer p.store.RUnlock()

	if nil == p.store.db {
		return false
	}

	value, err := p.store.db.Has(p.prefixKey(key), nil)
	logger.PanicIfError("pool.Has", err)
	return value
}

// Put - store a key/value bytes pair to the database outside of any transaction
//
// only used for data not forming part of the ledger
func (p *PoolHandle) Put(key []byte, value []byte) error {
	p.store.RLock()
	defer p.store.RUnlock()

	if nil == p.store.db {
		return fault.ErrDatabaseIsNotSet
	}
	return p.store.db.Put(p.prefixKey(key), value, nil)
}

// Delete - remove a key from the database outside of any transaction
func (p *PoolHandle) Delete(key []byte) error {
	p.store.RLock()
	defer p.store.RUnlock()

	if nil == p.store.db {
		return fault.ErrDatabaseIsNotSet
	}
	return p.store.db.Delete(p.prefixKey(key), nil)
}

// Range - all elements whose key starts with keyPrefix
//
// returned keys have the pool prefix removed and are in ascending order
func (p *PoolHandle) Range(keyPrefix []byte) ([]Element, error) {
	p.store.RLock()
	defer p.store.RUnlock()

	if nil == p.store.db {
		return nil, fault.ErrDatabaseIsNotSet
	}

	iter := p.store.db.NewIterator(ldb_util.BytesPrefix(p.prefixKey(keyPrefix)), nil)
	defer iter.Release()

	elements := make([]Element, 0, 16)
	for iter.Next() {
		key := iter.Key()
		if 0 == len(key) || p.prefix != key[0] {
			break
		}
		elements = append(elements, Element{
			Key:   append([]byte{}, key[1:]...),
			Value: append([]byte{}, iter.Value()...),
		})
	}
	if err := iter.Error(); nil != err {
		return nil, err
	}
	return elements, nil
}
