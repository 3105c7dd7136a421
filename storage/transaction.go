// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"
	"sync"

	"github.com/bitmark-inc/logger"
	"github.com/syndtr/goleveldb/leveldb"

	"github.com/bitmark-inc/kittyd/fault"
)

// Transaction - a batch of writes that become visible together on Commit
//
// reads through a transaction see its own pending writes
type Transaction interface {
	Abort()
	Commit() error
	Delete(*PoolHandle, []byte)
	Dump() []byte
	Get(*PoolHandle, []byte) []byte
	GetN(*PoolHandle, []byte) (uint64, bool)
	Has(*PoolHandle, []byte) bool
	InUse() bool
	Put(*PoolHandle, []byte, []byte)
	PutN(*PoolHandle, []byte, uint64)
}

type transaction struct {
	sync.Mutex
	inUse bool
	store *Store
	batch *leveldb.Batch
	cache Cache
}

func newTransaction(store *Store) *transaction {
	return &transaction{
		inUse: true,
		store: store,
		batch: new(leveldb.Batch),
		cache: newCache(),
	}
}

func (t *transaction) Put(p *PoolHandle, key []byte, value []byte) {
	t.Lock()
	defer t.Unlock()

	prefixedKey := p.prefixKey(key)
	t.cache.Set(dbPut, string(prefixedKey), value)
	t.batch.Put(prefixedKey, value)
}

// PutN - store a uint64 as an 8 byte big endian value
func (t *transaction) PutN(p *PoolHandle, key []byte, value uint64) {
	buffer := make([]byte, 8)
	binary.BigEndian.PutUint64(buffer, value)
	t.Put(p, key, buffer)
}

func (t *transaction) Delete(p *PoolHandle, key []byte) {
	t.Lock()
	defer t.Unlock()

	prefixedKey := p.prefixKey(key)
	t.cache.Set(dbDelete, string(prefixedKey), nil)
	t.batch.Delete(prefixedKey)
}

func (t *transaction) Get(p *PoolHandle, key []byte) []byte {
	t.Lock()
	value, found := t.cache.Get(string(p.prefixKey(key)))
	t.Unlock()

	if found {
		return value
	}
	return p.Get(key)
}

func (t *transaction) GetN(p *PoolHandle, key []byte) (uint64, bool) {
	value := t.Get(p, key)
	if 8 != len(value) {
		return 0, false
	}
	return binary.BigEndian.Uint64(value), true
}

func (t *transaction) Has(p *PoolHandle, key []byte) bool {
	t.Lock()
	value, found := t.cache.Get(string(p.prefixKey(key)))
	t.Unlock()

	if found {
		return nil != value
	}
	return p.Has(key)
}

// Dump - the serialised pending writes
func (t *transaction) Dump() []byte {
	t.Lock()
	defer t.Unlock()

	return t.batch.Dump()
}

func (t *transaction) InUse() bool {
	t.Lock()
	defer t.Unlock()

	return t.inUse
}

// Commit - write all pending data and end the transaction
//
// on error nothing has been written and the transaction is ended
func (t *transaction) Commit() error {
	t.Lock()
	defer t.Unlock()

	if !t.inUse {
		return fault.ErrTransactionNotInUse
	}

	err := t.write()
	t.reset()

	return err
}

func (t *transaction) write() error {
	t.store.RLock()
	defer t.store.RUnlock()

	if nil == t.store.db {
		return fault.ErrDatabaseIsNotSet
	}
	err := t.store.db.Write(t.batch, nil)
	if nil != err {
		logger.Criticalf("storage: batch write failed: %s", err)
	}
	return err
}

// Abort - discard all pending data and end the transaction
func (t *transaction) Abort() {
	t.Lock()
	defer t.Unlock()

	if t.inUse {
		t.reset()
	}
}

// must hold lock
func (t *transaction) reset() {
	t.batch.Reset()
	t.cache.Clear()
	t.inUse = false
	t.store.release(t)
}
