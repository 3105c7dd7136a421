// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package registry

import (
	"math"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/kittyd/account"
	"github.com/bitmark-inc/kittyd/dna"
	"github.com/bitmark-inc/kittyd/fault"
	"github.com/bitmark-inc/kittyd/kitty"
	"github.com/bitmark-inc/kittyd/storage"
)

// Create - a new kitty with random dna
func (r *Registry) Create(owner account.Account) (*kitty.Record, error) {
	return r.Mint(owner, nil, nil)
}

// Mint - a new kitty, optionally with explicit dna and gender
//
// dna is derived when nil; gender follows the dna when nil
func (r *Registry) Mint(owner account.Account, d *dna.DNA, gender *dna.Gender) (*kitty.Record, error) {
	if nil != gender && !gender.Valid() {
		return nil, fault.ErrInvalidGender
	}

	r.Lock()
	defer r.Unlock()

	var record *kitty.Record
	err := r.apply(func(trx storage.Transaction) error {
		err := r.checkSpace(trx, owner)
		if nil != err {
			return err
		}

		var kittyDNA dna.DNA
		if nil != d {
			kittyDNA = *d
		} else {
			kittyDNA, err = r.draw(owner, owner.Bytes())
			if nil != err {
				return err
			}
		}

		kittyGender := kittyDNA.Gender()
		if nil != gender {
			kittyGender = *gender
		}

		record, err = r.insert(trx, owner, kittyDNA, kittyGender)
		return err
	})
	if nil != err {
		r.log.Debugf("create for: %s  error: %s", owner, err)
		return nil, err
	}

	r.log.Infof("created: %s  owner: %s  gender: %s", record.Id, owner, record.Gender)
	r.notify(EventCreated, record.Id[:], owner.Bytes())
	return record, nil
}

// SetPrice - list a kitty for sale, a nil price removes it from sale
func (r *Registry) SetPrice(owner account.Account, id kitty.Id, price *uint64) (*kitty.Record, error) {
	r.Lock()
	defer r.Unlock()

	var record *kitty.Record
	err := r.apply(func(trx storage.Transaction) error {
		var err error
		record, err = r.getOwned(trx, owner, id)
		if nil != err {
			return err
		}

		record.SetPrice(price)
		r.put(trx, record)
		return nil
	})
	if nil != err {
		r.log.Debugf("set price: %s  error: %s", id, err)
		return nil, err
	}

	r.log.Infof("priced: %s  price: %s", id, formatPrice(record.Price))
	r.notify(EventPriced, id[:], owner.Bytes(), uint64Bytes(record.Price))
	return record, nil
}

// Transfer - give a kitty to another account, the kitty is no longer for sale
func (r *Registry) Transfer(from account.Account, to account.Account, id kitty.Id) (*kitty.Record, error) {
	r.Lock()
	defer r.Unlock()

	var record *kitty.Record
	err := r.apply(func(trx storage.Transaction) error {
		var err error
		record, err = r.getOwned(trx, from, id)
		if nil != err {
			return err
		}
		if from == to {
			return fault.ErrTransferToSelf
		}
		if !r.owners.HasSpace(trx, to) {
			return fault.ErrTooManyKittiesOwned
		}

		return r.move(trx, record, to)
	})
	if nil != err {
		r.log.Debugf("transfer: %s  error: %s", id, err)
		return nil, err
	}

	r.log.Infof("transferred: %s  from: %s  to: %s", id, from, to)
	r.notify(EventTransferred, id[:], from.Bytes(), to.Bytes())
	return record, nil
}

// Buy - pay the listed price to the owner and take the kitty
//
// maximumPrice is the most the buyer will pay
func (r *Registry) Buy(buyer account.Account, id kitty.Id, maximumPrice uint64) (*kitty.Record, error) {
	r.Lock()
	defer r.Unlock()

	var record *kitty.Record
	var seller account.Account
	var price uint64
	err := r.apply(func(trx storage.Transaction) error {
		var err error
		record, err = r.get(trx, id)
		if nil != err {
			return err
		}
		if !record.IsListed() {
			return fault.ErrKittyNotForSale
		}
		price = *record.Price
		if price > maximumPrice {
			return fault.ErrKittyBidPriceTooLow
		}
		seller = record.Owner
		if buyer == seller {
			return fault.ErrBuyerIsKittyOwner
		}
		if r.balances.TransferableBalance(trx, buyer) < price {
			return fault.ErrInsufficientBalance
		}
		if !r.owners.HasSpace(trx, buyer) {
			return fault.ErrTooManyKittiesOwned
		}

		err = r.balances.Transfer(trx, buyer, seller, price)
		if nil != err {
			return err
		}
		return r.move(trx, record, buyer)
	})
	if nil != err {
		r.log.Debugf("buy: %s  error: %s", id, err)
		return nil, err
	}

	r.log.Infof("bought: %s  seller: %s  buyer: %s  price: %d", id, seller, buyer, price)
	r.notify(EventBought, id[:], seller.Bytes(), buyer.Bytes(), uint64Bytes(&price))
	return record, nil
}

// Breed - a new kitty from two parents of opposite gender held by owner
//
// the child's gender always follows its dna
func (r *Registry) Breed(owner account.Account, first kitty.Id, second kitty.Id) (*kitty.Record, error) {
	r.Lock()
	defer r.Unlock()

	var record *kitty.Record
	err := r.apply(func(trx storage.Transaction) error {
		parent1, err := r.get(trx, first)
		if nil != err {
			return err
		}
		parent2, err := r.get(trx, second)
		if nil != err {
			return err
		}
		if owner != parent1.Owner || owner != parent2.Owner {
			return fault.ErrNotKittyOwner
		}
		if !parent1.Gender.Opposite(parent2.Gender) {
			return fault.ErrSameGenderParents
		}

		err = r.checkSpace(trx, owner)
		if nil != err {
			return err
		}

		subject := append(first[:], second[:]...)
		selector, err := r.draw(owner, subject)
		if nil != err {
			return err
		}
		child := dna.Breed(selector, parent1.DNA, parent2.DNA)

		record, err = r.insert(trx, owner, child, child.Gender())
		return err
	})
	if nil != err {
		r.log.Debugf("breed: %s × %s  error: %s", first, second, err)
		return nil, err
	}

	r.log.Infof("bred: %s  from: %s × %s  owner: %s", record.Id, first, second, owner)
	r.notify(EventBred, record.Id[:], owner.Bytes(), first[:], second[:])
	return record, nil
}

// Deposit - credit an account, for genesis endowments and operator use
func (r *Registry) Deposit(owner account.Account, amount uint64) error {
	r.Lock()
	defer r.Unlock()

	err := r.apply(func(trx storage.Transaction) error {
		return r.balances.Deposit(trx, owner, amount)
	})
	if nil != err {
		return err
	}

	r.log.Infof("deposited: %d  to: %s", amount, owner)
	r.notify(EventDeposited, owner.Bytes(), uint64Bytes(&amount))
	return nil
}

// ---

// both the global counter and the owner's collection must have room
func (r *Registry) checkSpace(trx storage.Transaction, owner account.Account) error {
	count, _ := trx.GetN(r.pool.Global, kittiesKey)
	if count >= r.maximumKitties {
		return fault.ErrKittyCountOverflow
	}
	if !r.owners.HasSpace(trx, owner) {
		return fault.ErrTooManyKittiesOwned
	}
	return nil
}

// fresh dna from the next nonce
func (r *Registry) draw(owner account.Account, subject []byte) (dna.DNA, error) {
	nonce, ok := r.nonce.IncrementBelow(math.MaxUint64)
	if !ok {
		return dna.DNA{}, fault.ErrNonceExhausted
	}
	return dna.Derive(nonce, r.entropy.Random(subject), owner), nil
}

// store a new unlisted kitty and count it
func (r *Registry) insert(trx storage.Transaction, owner account.Account, d dna.DNA, gender dna.Gender) (*kitty.Record, error) {
	record := kitty.New(d, gender, owner)
	if trx.Has(r.pool.Kitties, record.Id[:]) {
		return nil, fault.ErrKittyAlreadyExists
	}

	err := r.owners.Create(trx, owner, record.Id)
	if nil != err {
		return nil, err
	}
	r.put(trx, record)

	count, _ := trx.GetN(r.pool.Global, kittiesKey)
	trx.PutN(r.pool.Global, kittiesKey, count+1)

	return record, nil
}

// change owner and clear the price
func (r *Registry) move(trx storage.Transaction, record *kitty.Record, newOwner account.Account) error {
	err := r.owners.Transfer(trx, record.Owner, newOwner, record.Id)
	if nil != err {
		return err
	}
	record.Owner = newOwner
	record.SetPrice(nil)
	r.put(trx, record)
	return nil
}

func (r *Registry) get(trx storage.Transaction, id kitty.Id) (*kitty.Record, error) {
	packed := trx.Get(r.pool.Kitties, id[:])
	if nil == packed {
		return nil, fault.ErrKittyNotFound
	}
	record, err := kitty.Packed(packed).Unpack(id)
	if nil != err {
		logger.Criticalf("registry: kitty: %s  unpack error: %s", id, err)
		logger.Panic("registry: Kitties database corrupt")
	}
	return record, nil
}

func (r *Registry) getOwned(trx storage.Transaction, owner account.Account, id kitty.Id) (*kitty.Record, error) {
	record, err := r.get(trx, id)
	if nil != err {
		return nil, err
	}
	if owner != record.Owner {
		return nil, fault.ErrNotKittyOwner
	}
	return record, nil
}

func (r *Registry) put(trx storage.Transaction, record *kitty.Record) {
	trx.Put(r.pool.Kitties, record.Id[:], record.Pack())
}
