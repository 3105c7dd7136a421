// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package registry

import (
	"github.com/bitmark-inc/kittyd/fault"
	"github.com/bitmark-inc/kittyd/genesis"
	"github.com/bitmark-inc/kittyd/kitty"
	"github.com/bitmark-inc/kittyd/storage"
)

// Seed - write a genesis state into an empty ledger as one transition
//
// returns false without error if the ledger already has history or the
// genesis is empty; on error nothing is written
func (r *Registry) Seed(g *genesis.Genesis) (bool, error) {
	if nil == g {
		return false, fault.ErrMissingParameters
	}
	if 0 == len(g.Seeds) && 0 == len(g.Endowments) {
		return false, nil
	}
	for _, seed := range g.Seeds {
		if !seed.Gender.Valid() {
			return false, fault.ErrInvalidGender
		}
	}

	r.Lock()
	defer r.Unlock()

	hasHistory := false
	records := make([]*kitty.Record, 0, len(g.Seeds))
	err := r.apply(func(trx storage.Transaction) error {
		height, _ := trx.GetN(r.pool.Global, heightKey)
		if 0 != height {
			hasHistory = true
			return errHasHistory
		}

		for i, seed := range g.Seeds {
			err := r.checkSpace(trx, seed.Owner)
			if nil != err {
				r.log.Errorf("seed[%d]: owner: %s  error: %s", i, seed.Owner, err)
				return err
			}
			record, err := r.insert(trx, seed.Owner, seed.DNA, seed.Gender)
			if nil != err {
				r.log.Errorf("seed[%d]: owner: %s  error: %s", i, seed.Owner, err)
				return err
			}
			records = append(records, record)
		}

		for i, endowment := range g.Endowments {
			err := r.balances.Deposit(trx, endowment.Owner, endowment.Amount)
			if nil != err {
				r.log.Errorf("endowment[%d]: owner: %s  error: %s", i, endowment.Owner, err)
				return err
			}
		}
		return nil
	})
	if hasHistory {
		return false, nil
	}
	if nil != err {
		return false, err
	}

	for _, record := range records {
		r.log.Infof("seeded: %s  owner: %s  gender: %s", record.Id, record.Owner, record.Gender)
		r.notify(EventCreated, record.Id[:], record.Owner.Bytes())
	}
	for _, endowment := range g.Endowments {
		amount := endowment.Amount
		r.log.Infof("endowed: %d  to: %s", amount, endowment.Owner)
		r.notify(EventDeposited, endowment.Owner.Bytes(), uint64Bytes(&amount))
	}
	return true, nil
}

// aborts a seed transition on a ledger with history
var errHasHistory = fault.ProcessError("ledger has history")
