// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package registry

import (
	"encoding/binary"

	"github.com/bitmark-inc/logger"
	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/kittyd/entropy"
	"github.com/bitmark-inc/kittyd/fault"
	"github.com/bitmark-inc/kittyd/storage"
)

// keys in the global pool
var (
	kittiesKey = []byte("kitties")
	heightKey  = []byte("height")
)

// history record: count ⧺ digest
const (
	historyCountFinish  = 8
	historyDigestFinish = historyCountFinish + 32
)

// Digest - the ledger state digest after a commit
type Digest [32]byte

// run one transition
//
// f must validate everything before its first write; when f fails the
// transaction is discarded, otherwise the ledger height advances and
// all writes are committed together
func (r *Registry) apply(f func(trx storage.Transaction) error) error {
	trx, err := r.store.Begin()
	if nil != err {
		return err
	}

	err = f(trx)
	if nil != err {
		trx.Abort()
		return err
	}

	digest := r.advance(trx)

	err = trx.Commit()
	if nil != err {
		return err
	}

	if a, ok := r.entropy.(entropy.Accumulator); ok {
		a.Add(digest)
	}
	return nil
}

// append a history record for the pending writes
func (r *Registry) advance(trx storage.Transaction) Digest {
	height, _ := trx.GetN(r.pool.Global, heightKey)
	count, _ := trx.GetN(r.pool.Global, kittiesKey)

	previous := Digest{}
	if 0 != height {
		record := trx.Get(r.pool.History, heightBytes(height))
		if historyDigestFinish != len(record) {
			logger.Criticalf("registry: history at height: %d has length: %d", height, len(record))
			logger.Panic("registry: History database corrupt")
		}
		copy(previous[:], record[historyCountFinish:historyDigestFinish])
	}

	h := sha3.New256()
	h.Write(previous[:])
	h.Write(trx.Dump())
	digest := Digest{}
	copy(digest[:], h.Sum(nil))

	height += 1
	record := make([]byte, historyDigestFinish)
	binary.BigEndian.PutUint64(record[:historyCountFinish], count)
	copy(record[historyCountFinish:], digest[:])

	trx.Put(r.pool.History, heightBytes(height), record)
	trx.PutN(r.pool.Global, heightKey, height)

	return digest
}

// Height - the number of committed transitions
func (r *Registry) Height() (uint64, error) {
	height, _, err := r.pool.Global.ReadN(heightKey)
	return height, err
}

// CountAt - the kitty count as it was at a ledger height
//
// height zero is the empty ledger
func (r *Registry) CountAt(height uint64) (uint64, error) {
	if 0 == height {
		return 0, nil
	}
	record, err := r.pool.History.Read(heightBytes(height))
	if nil != err {
		return 0, err
	}
	if nil == record {
		return 0, fault.ErrHeightNotFound
	}
	if historyDigestFinish != len(record) {
		return 0, fault.ErrHistoryRecordCorrupt
	}
	return binary.BigEndian.Uint64(record[:historyCountFinish]), nil
}

// DigestAt - the state digest at a ledger height
func (r *Registry) DigestAt(height uint64) (Digest, error) {
	digest := Digest{}
	if 0 == height {
		return digest, nil
	}
	record, err := r.pool.History.Read(heightBytes(height))
	if nil != err {
		return digest, err
	}
	if nil == record {
		return digest, fault.ErrHeightNotFound
	}
	if historyDigestFinish != len(record) {
		return digest, fault.ErrHistoryRecordCorrupt
	}
	copy(digest[:], record[historyCountFinish:historyDigestFinish])
	return digest, nil
}

// replay the most recent digests into an accumulating entropy source
func (r *Registry) restoreEntropy() error {
	a, ok := r.entropy.(entropy.Accumulator)
	if !ok {
		return nil
	}

	height, err := r.Height()
	if nil != err {
		return err
	}

	first := uint64(1)
	if height > entropy.CollectiveLength {
		first = height - entropy.CollectiveLength + 1
	}
	for h := first; 0 != height && h <= height; h += 1 {
		digest, err := r.DigestAt(h)
		if nil != err {
			return err
		}
		a.Add(digest)
	}
	return nil
}

func heightBytes(height uint64) []byte {
	buffer := make([]byte, 8)
	binary.BigEndian.PutUint64(buffer, height)
	return buffer
}
