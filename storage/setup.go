// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"
	"fmt"
	"reflect"
	"sync"

	"github.com/syndtr/goleveldb/leveldb"
	ldb_opt "github.com/syndtr/goleveldb/leveldb/opt"
	ldb_storage "github.com/syndtr/goleveldb/leveldb/storage"

	"github.com/bitmark-inc/kittyd/fault"
)

// Pools - the set of exported pools
//
// note all must be exported (i.e. initial capital) or initialisation will panic
type Pools struct {
	Kitties        *PoolHandle `prefix:"K"`
	OwnerNextCount *PoolHandle `prefix:"N"`
	OwnerList      *PoolHandle `prefix:"L"`
	OwnerIndex     *PoolHandle `prefix:"D"`
	OwnerTotal     *PoolHandle `prefix:"T"`
	Balances       *PoolHandle `prefix:"B"`
	Global         *PoolHandle `prefix:"G"`
	History        *PoolHandle `prefix:"H"`
	TestData       *PoolHandle `prefix:"Z"`
}

// for database version
var versionKey = []byte{0x00, 'V', 'E', 'R', 'S', 'I', 'O', 'N'}

const (
	currentVersion = 0x100
)

// pool access modes
const (
	ReadOnly  = true
	ReadWrite = false
)

// Store - an open database and its pools
type Store struct {
	sync.RWMutex
	Pool Pools

	db       *leveldb.DB
	readOnly bool

	trxLock sync.Mutex
	trx     *transaction
}

// Open - open up the database connection
//
// the database directory is created if necessary unless read only
func Open(name string, readOnly bool) (*Store, error) {
	opt := &ldb_opt.Options{
		ErrorIfExist:   false,
		ErrorIfMissing: readOnly,
		ReadOnly:       readOnly,
	}

	db, err := leveldb.OpenFile(name, opt)
	if nil != err {
		return nil, err
	}
	return setup(db, readOnly)
}

// OpenMemory - an empty database held only in memory
func OpenMemory() (*Store, error) {
	db, err := leveldb.Open(ldb_storage.NewMemStorage(), nil)
	if nil != err {
		return nil, err
	}
	return setup(db, ReadWrite)
}

func setup(db *leveldb.DB, readOnly bool) (*Store, error) {
	ok := false
	defer func() {
		if !ok {
			db.Close()
		}
	}()

	version, err := getVersion(db)
	if nil != err {
		return nil, err
	}

	switch {
	case 0 == version && readOnly:
		return nil, fault.ErrDatabaseVersion
	case 0 == version:
		// database was empty so tag as current version
		if err := putVersion(db, currentVersion); nil != err {
			return nil, err
		}
	case currentVersion != version:
		return nil, fmt.Errorf("%s: actual: 0x%x  expected: 0x%x", fault.ErrDatabaseVersion, version, currentVersion)
	}

	s := &Store{
		db:       db,
		readOnly: readOnly,
	}

	// this will be a struct type
	poolType := reflect.TypeOf(s.Pool)

	// get write access by using pointer + Elem()
	poolValue := reflect.ValueOf(&s.Pool).Elem()

	// scan each field
	for i := 0; i < poolType.NumField(); i += 1 {

		fieldInfo := poolType.Field(i)

		prefixTag := fieldInfo.Tag.Get("prefix")
		if 1 != len(prefixTag) {
			return nil, fmt.Errorf("pool: %v has invalid prefix: %q", fieldInfo, prefixTag)
		}

		p := &PoolHandle{
			prefix: prefixTag[0],
			store:  s,
		}
		poolValue.Field(i).Set(reflect.ValueOf(p))
	}

	ok = true // prevent db close
	return s, nil
}

// Close - close the database connection
func (s *Store) Close() {
	s.Lock()
	defer s.Unlock()
	if nil != s.db {
		s.db.Close()
		s.db = nil
	}
}

// IsReadOnly - true if writes are rejected
func (s *Store) IsReadOnly() bool {
	return s.readOnly
}

// Begin - start the single write transaction
func (s *Store) Begin() (Transaction, error) {
	s.trxLock.Lock()
	defer s.trxLock.Unlock()

	if nil != s.trx {
		return nil, fault.ErrTransactionAlreadyInUse
	}

	s.RLock()
	closed := nil == s.db
	s.RUnlock()
	if closed {
		return nil, fault.ErrDatabaseIsNotSet
	}
	if s.readOnly {
		return nil, fault.ErrDatabaseIsReadOnly
	}

	s.trx = newTransaction(s)
	return s.trx, nil
}

// called by the transaction when it completes
func (s *Store) release(trx *transaction) {
	s.trxLock.Lock()
	if s.trx == trx {
		s.trx = nil
	}
	s.trxLock.Unlock()
}

// return:
//
//	version number (zero for an empty database)
func getVersion(db *leveldb.DB) (int, error) {
	versionValue, err := db.Get(versionKey, nil)
	if leveldb.ErrNotFound == err {
		return 0, nil
	} else if nil != err {
		return 0, err
	}

	if 4 != len(versionValue) {
		return 0, fmt.Errorf("incompatible database version length: expected: %d  actual: %d", 4, len(versionValue))
	}

	return int(binary.BigEndian.Uint32(versionValue)), nil
}

func putVersion(db *leveldb.DB, version int) error {
	currentVersion := make([]byte, 4)
	binary.BigEndian.PutUint32(currentVersion, uint32(version))

	return db.Put(versionKey, currentVersion, nil)
}
