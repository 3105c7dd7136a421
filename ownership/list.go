// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ownership

import (
	"encoding/binary"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/kittyd/account"
	"github.com/bitmark-inc/kittyd/kitty"
)

// Item - one entry of an owner's collection
type Item struct {
	N  uint64   `json:"n,string"`
	Id kitty.Id `json:"id"`
}

// Count - number of kitties held by owner
func (o *Index) Count(owner account.Account) uint64 {
	total, _ := o.total.GetN(owner.Bytes())
	return total
}

// CurrentlyOwns - check if owner holds the kitty in committed state
func (o *Index) CurrentlyOwns(owner account.Account, id kitty.Id) bool {
	return o.index.Has(o.indexKey(owner, id))
}

// List - fetch the kitties of an owner in acquisition order
//
// start is the first N to return, count limits the result size
func (o *Index) List(owner account.Account, start uint64, count int) ([]Item, error) {
	elements, err := o.list.Range(owner.Bytes())
	if nil != err {
		return nil, err
	}

	records := make([]Item, 0, len(elements))

	// owner ⧺ count → id
loop:
	for _, element := range elements {
		if len(records) >= count {
			break loop
		}

		if account.Length+uint64ByteSize != len(element.Key) {
			logger.Panicf("ownership list key length: %d", len(element.Key))
		}
		n := binary.BigEndian.Uint64(element.Key[account.Length:])
		if n < start {
			continue loop
		}

		id, err := kitty.IdFromBytes(element.Value)
		if nil != err {
			return nil, err
		}
		records = append(records, Item{
			N:  n,
			Id: id,
		})
	}

	return records, nil
}
