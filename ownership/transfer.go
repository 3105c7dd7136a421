// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ownership

import (
	"encoding/binary"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/kittyd/account"
	"github.com/bitmark-inc/kittyd/fault"
	"github.com/bitmark-inc/kittyd/kitty"
	"github.com/bitmark-inc/kittyd/storage"
)

// HasSpace - true if owner can accept one more kitty
func (o *Index) HasSpace(trx storage.Transaction, owner account.Account) bool {
	total, _ := trx.GetN(o.total, owner.Bytes())
	return total < o.capacity
}

// Owns - ownership check that sees the transaction's pending writes
func (o *Index) Owns(trx storage.Transaction, owner account.Account, id kitty.Id) bool {
	return trx.Has(o.index, o.indexKey(owner, id))
}

// Create - append a new kitty to the owner's collection
func (o *Index) Create(trx storage.Transaction, owner account.Account, id kitty.Id) error {
	if !o.HasSpace(trx, owner) {
		return fault.ErrTooManyKittiesOwned
	}
	if o.Owns(trx, owner, id) {
		return fault.ErrKittyAlreadyExists
	}
	o.create(trx, owner, id)
	return nil
}

// Transfer - move a kitty between collections
//
// nothing is written unless the current owner holds the kitty and
// the new owner has space
func (o *Index) Transfer(trx storage.Transaction, currentOwner account.Account, newOwner account.Account, id kitty.Id) error {
	if currentOwner == newOwner {
		return fault.ErrTransferToSelf
	}
	if !o.Owns(trx, currentOwner, id) {
		return fault.ErrNotKittyOwner
	}
	if !o.HasSpace(trx, newOwner) {
		return fault.ErrTooManyKittiesOwned
	}

	o.remove(trx, currentOwner, id)
	o.create(trx, newOwner, id)
	return nil
}

// internal creation routine
// adds the id to the end of owner's list of properties
func (o *Index) create(trx storage.Transaction, owner account.Account, id kitty.Id) {
	nKey := owner.Bytes()
	count := trx.Get(o.nextCount, nKey)
	if nil == count {
		count = []byte{0, 0, 0, 0, 0, 0, 0, 0}
	} else if uint64ByteSize != len(count) {
		logger.Panic("OwnerNextCount database corrupt")
	}
	trx.PutN(o.nextCount, nKey, binary.BigEndian.Uint64(count)+1)

	// write to the owner list
	oKey := append(owner.Bytes(), count...)
	trx.Put(o.list, oKey, id[:])

	// write new index record
	trx.Put(o.index, o.indexKey(owner, id), count)

	total, _ := trx.GetN(o.total, nKey)
	trx.PutN(o.total, nKey, total+1)
}

// internal removal routine, the owner must hold id
func (o *Index) remove(trx storage.Transaction, owner account.Account, id kitty.Id) {
	dKey := o.indexKey(owner, id)
	dCount := trx.Get(o.index, dKey)
	if uint64ByteSize != len(dCount) {
		logger.Criticalf("ownership.remove: dKey: %x", dKey)
		logger.Panic("ownership.remove: OwnerIndex database corrupt")
	}

	oKey := append(owner.Bytes(), dCount...)
	trx.Delete(o.list, oKey)
	trx.Delete(o.index, dKey)

	nKey := owner.Bytes()
	total, ok := trx.GetN(o.total, nKey)
	if !ok || 0 == total {
		logger.Criticalf("ownership.remove: owner: %s has no total", owner)
		logger.Panic("ownership.remove: OwnerTotal database corrupt")
	}
	if 1 == total {
		trx.Delete(o.total, nKey)
	} else {
		trx.PutN(o.total, nKey, total-1)
	}
}
