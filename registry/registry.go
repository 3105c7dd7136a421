// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package registry - the kitty registry and its state transitions
//
// one transition runs at a time; each one validates every
// precondition inside a storage transaction and writes only if all
// of them pass, so a failed transition leaves no trace
package registry

import (
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/kittyd/account"
	"github.com/bitmark-inc/kittyd/balances"
	"github.com/bitmark-inc/kittyd/counter"
	"github.com/bitmark-inc/kittyd/entropy"
	"github.com/bitmark-inc/kittyd/fault"
	"github.com/bitmark-inc/kittyd/kitty"
	"github.com/bitmark-inc/kittyd/ownership"
	"github.com/bitmark-inc/kittyd/storage"
)

// Configuration - registry limits
//
// zero values select the limits already recorded in the ledger, or the
// defaults for a new ledger
type Configuration struct {
	MaximumOwned   uint64 `gluamapper:"maximum_owned" json:"maximum_owned" validate:"max=2147483647"`
	MaximumKitties uint64 `gluamapper:"maximum_kitties" json:"maximum_kitties"`
}

// Registry - the kitty registry state
type Registry struct {
	sync.Mutex

	log *logger.L

	store    *storage.Store
	pool     *storage.Pools
	owners   *ownership.Index
	balances balances.Ledger

	nonce   counter.Counter
	entropy entropy.Source
	events  EventSink

	maximumKitties uint64
}

// New - registry over an open store
//
// events may be nil if no notifications are wanted
func New(store *storage.Store, source entropy.Source, events EventSink, configuration Configuration) (*Registry, error) {
	if nil == store || nil == source {
		return nil, fault.ErrMissingParameters
	}

	maximumOwned, maximumKitties, err := resolveLimits(store, configuration)
	if nil != err {
		return nil, err
	}

	r := &Registry{
		log:            logger.New("registry"),
		store:          store,
		pool:           &store.Pool,
		owners:         ownership.New(&store.Pool, maximumOwned),
		balances:       balances.New(&store.Pool),
		entropy:        source,
		events:         events,
		maximumKitties: maximumKitties,
	}

	if err := r.restoreEntropy(); nil != err {
		return nil, err
	}

	r.log.Infof("maximum owned: %d  maximum kitties: %d", maximumOwned, maximumKitties)
	return r, nil
}

// Get - fetch a kitty
func (r *Registry) Get(id kitty.Id) (*kitty.Record, error) {
	packed, err := r.pool.Kitties.Read(id[:])
	if nil != err {
		return nil, err
	}
	if nil == packed {
		return nil, fault.ErrKittyNotFound
	}
	return kitty.Packed(packed).Unpack(id)
}

// Owned - kitties of an owner in acquisition order, paged by start and count
func (r *Registry) Owned(owner account.Account, start uint64, count int) ([]ownership.Item, error) {
	return r.owners.List(owner, start, count)
}

// OwnedCount - number of kitties held by owner
func (r *Registry) OwnedCount(owner account.Account) uint64 {
	return r.owners.Count(owner)
}

// Count - the number of kitties ever created
func (r *Registry) Count() (uint64, error) {
	n, _, err := r.pool.Global.ReadN(kittiesKey)
	return n, err
}

// Balance - free balance of an account
func (r *Registry) Balance(owner account.Account) uint64 {
	return r.balances.Balance(owner)
}

// MaximumKitties - the limit of the global counter
func (r *Registry) MaximumKitties() uint64 {
	return r.maximumKitties
}

// MaximumOwned - capacity of each owner's collection
func (r *Registry) MaximumOwned() uint64 {
	return r.owners.Capacity()
}
