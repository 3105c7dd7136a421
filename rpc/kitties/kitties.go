// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package kitties - RPC queries against the kitty registry
package kitties

import (
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/kittyd/account"
	"github.com/bitmark-inc/kittyd/constants"
	"github.com/bitmark-inc/kittyd/fault"
	"github.com/bitmark-inc/kittyd/kitty"
	"github.com/bitmark-inc/kittyd/ownership"
	"github.com/bitmark-inc/kittyd/rpc/ratelimit"
	"github.com/bitmark-inc/logger"
)

// Reader - the read side of the registry used by this service
type Reader interface {
	Count() (uint64, error)
	CountAt(height uint64) (uint64, error)
	Get(id kitty.Id) (*kitty.Record, error)
	Owned(owner account.Account, start uint64, count int) ([]ownership.Item, error)
	OwnedCount(owner account.Account) uint64
}

// Kitties - type for RPC calls
type Kitties struct {
	Log     *logger.L
	Limiter *rate.Limiter
	Reader  Reader
}

// New - create the kitties RPC handler
func New(log *logger.L, reader Reader) *Kitties {
	return &Kitties{
		Log:     log,
		Limiter: ratelimit.New(constants.RPCRequestsPerSecond),
		Reader:  reader,
	}
}

// ---

// CountArguments - optional ledger height, latest if nil
type CountArguments struct {
	At *uint64 `json:"at"`
}

// CountReply - number of kitties ever created
type CountReply struct {
	Count uint64 `json:"count,string"`
}

// Count - the global kitty counter
func (k *Kitties) Count(arguments *CountArguments, reply *CountReply) error {

	if err := ratelimit.Limit(k.Limiter); nil != err {
		return err
	}

	var n uint64
	var err error
	if nil == arguments || nil == arguments.At {
		n, err = k.Reader.Count()
	} else {
		n, err = k.Reader.CountAt(*arguments.At)
	}
	if nil != err {
		k.Log.Errorf("count error: %s", err)
		return fault.NewRuntimeError("unable to get kitties count", err)
	}

	reply.Count = n
	return nil
}

// ---

// GetArguments - kitty to fetch
type GetArguments struct {
	Id kitty.Id `json:"id"`
}

// GetReply - the kitty record
type GetReply struct {
	Kitty *kitty.Record `json:"kitty"`
}

// Get - fetch one kitty
func (k *Kitties) Get(arguments *GetArguments, reply *GetReply) error {

	if err := ratelimit.Limit(k.Limiter); nil != err {
		return err
	}

	if nil == arguments {
		return fault.ErrMissingParameters
	}

	record, err := k.Reader.Get(arguments.Id)
	if nil != err {
		k.Log.Debugf("get: %s  error: %s", arguments.Id, err)
		return err
	}

	reply.Kitty = record
	return nil
}

// ---

// OwnedArguments - owner and paging window
type OwnedArguments struct {
	Owner account.Account `json:"owner"`
	Start uint64          `json:"start,string"`
	Count int             `json:"count"`
}

// OwnedReply - a page of the owner's kitties
type OwnedReply struct {
	Kitties   []ownership.Item `json:"kitties"`
	Total     uint64           `json:"total,string"`
	NextStart uint64           `json:"nextStart,string"`
}

// Owned - kitties held by an account in acquisition order
func (k *Kitties) Owned(arguments *OwnedArguments, reply *OwnedReply) error {

	if nil == arguments {
		return fault.ErrMissingParameters
	}

	if err := ratelimit.LimitN(k.Limiter, arguments.Count, constants.RPCMaximumPageSize); nil != err {
		return err
	}

	items, err := k.Reader.Owned(arguments.Owner, arguments.Start, arguments.Count)
	if nil != err {
		k.Log.Errorf("owned: %s  error: %s", arguments.Owner, err)
		return err
	}

	nextStart := arguments.Start
	if n := len(items); n > 0 {
		nextStart = items[n-1].N + 1
	}

	reply.Kitties = items
	reply.Total = k.Reader.OwnedCount(arguments.Owner)
	reply.NextStart = nextStart
	return nil
}
