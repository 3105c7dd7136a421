// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ownership

import (
	"github.com/bitmark-inc/kittyd/account"
	"github.com/bitmark-inc/kittyd/kitty"
	"github.com/bitmark-inc/kittyd/storage"
)

const (
	uint64ByteSize = 8
)

// from storage/doc.go:
//
// Ownership:
//   OwnerNextCount  N   - next count value to use for appending to owned items
//   OwnerList       L   - list of owned items
//   OwnerIndex      D   - position in list of owned items, for delete after transfer
//   OwnerTotal      T   - number of items currently owned

// Index - the bounded per owner collection of kitties
//
// all updates are made inside a storage transaction and the caller
// must ensure that only one update runs at a time
type Index struct {
	nextCount *storage.PoolHandle
	list      *storage.PoolHandle
	index     *storage.PoolHandle
	total     *storage.PoolHandle
	capacity  uint64
}

// New - ownership index over the store's ownership pools
//
// capacity is the maximum number of kitties one owner can hold
func New(pools *storage.Pools, capacity uint64) *Index {
	return &Index{
		nextCount: pools.OwnerNextCount,
		list:      pools.OwnerList,
		index:     pools.OwnerIndex,
		total:     pools.OwnerTotal,
		capacity:  capacity,
	}
}

// Capacity - maximum kitties per owner
func (o *Index) Capacity() uint64 {
	return o.capacity
}

func (o *Index) indexKey(owner account.Account, id kitty.Id) []byte {
	return append(owner.Bytes(), id[:]...)
}
