// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package registry

import (
	"github.com/bitmark-inc/kittyd/constants"
	"github.com/bitmark-inc/kittyd/fault"
	"github.com/bitmark-inc/kittyd/storage"
)

// keys in the global pool
var (
	maximumOwnedKey   = []byte("maximum-owned")
	maximumKittiesKey = []byte("maximum-kitties")
)

// the capacity limits of a ledger
//
// the first read-write open records them; afterwards the recorded
// values hold and a non-zero configured value must agree with them
func resolveLimits(store *storage.Store, configuration Configuration) (uint64, uint64, error) {
	if configuration.MaximumOwned > constants.MaximumOwnedLimit {
		return 0, 0, fault.ErrMaximumOwnedOutOfRange
	}

	owned, ownedFound, err := store.Pool.Global.ReadN(maximumOwnedKey)
	if nil != err {
		return 0, 0, err
	}
	kitties, kittiesFound, err := store.Pool.Global.ReadN(maximumKittiesKey)
	if nil != err {
		return 0, 0, err
	}

	if ownedFound && kittiesFound {
		if 0 != configuration.MaximumOwned && owned != configuration.MaximumOwned {
			return 0, 0, fault.ErrRegistryLimitsMismatch
		}
		if 0 != configuration.MaximumKitties && kitties != configuration.MaximumKitties {
			return 0, 0, fault.ErrRegistryLimitsMismatch
		}
		return owned, kitties, nil
	}

	owned = configuration.MaximumOwned
	if 0 == owned {
		owned = constants.MaximumKittiesOwned
	}
	kitties = configuration.MaximumKitties
	if 0 == kitties {
		kitties = constants.MaximumKitties
	}

	if store.IsReadOnly() {
		return owned, kitties, nil
	}

	trx, err := store.Begin()
	if nil != err {
		return 0, 0, err
	}
	trx.PutN(store.Pool.Global, maximumOwnedKey, owned)
	trx.PutN(store.Pool.Global, maximumKittiesKey, kitties)
	err = trx.Commit()
	if nil != err {
		return 0, 0, err
	}

	return owned, kitties, nil
}
