// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package balances - free balances of accounts
//
// every change is written into the caller's storage transaction so a
// payment commits or fails together with whatever it pays for
package balances

import (
	"github.com/bitmark-inc/kittyd/account"
	"github.com/bitmark-inc/kittyd/fault"
	"github.com/bitmark-inc/kittyd/storage"
)

// Ledger - the balances collaborator
type Ledger interface {
	Balance(account.Account) uint64
	Deposit(storage.Transaction, account.Account, uint64) error
	Transfer(storage.Transaction, account.Account, account.Account, uint64) error
	TransferableBalance(storage.Transaction, account.Account) uint64
}

type ledger struct {
	pool *storage.PoolHandle
}

// New - balances held in the store's balance pool
func New(pools *storage.Pools) Ledger {
	return &ledger{
		pool: pools.Balances,
	}
}

// Balance - the committed balance of an account
func (l *ledger) Balance(owner account.Account) uint64 {
	balance, _ := l.pool.GetN(owner.Bytes())
	return balance
}

// TransferableBalance - the balance including pending writes of trx
func (l *ledger) TransferableBalance(trx storage.Transaction, owner account.Account) uint64 {
	balance, _ := trx.GetN(l.pool, owner.Bytes())
	return balance
}

// Deposit - increase an account balance
func (l *ledger) Deposit(trx storage.Transaction, owner account.Account, amount uint64) error {
	balance := l.TransferableBalance(trx, owner)
	if balance+amount < balance {
		return fault.ErrBalanceOverflow
	}
	l.put(trx, owner, balance+amount)
	return nil
}

// Transfer - move amount from source to destination
//
// fails without writing anything if source holds less than amount
func (l *ledger) Transfer(trx storage.Transaction, source account.Account, destination account.Account, amount uint64) error {
	sourceBalance := l.TransferableBalance(trx, source)
	if sourceBalance < amount {
		return fault.ErrInsufficientBalance
	}
	if source == destination || 0 == amount {
		return nil
	}

	destinationBalance := l.TransferableBalance(trx, destination)
	if destinationBalance+amount < destinationBalance {
		return fault.ErrBalanceOverflow
	}

	l.put(trx, source, sourceBalance-amount)
	l.put(trx, destination, destinationBalance+amount)
	return nil
}

// zero balances are removed
func (l *ledger) put(trx storage.Transaction, owner account.Account, balance uint64) {
	if 0 == balance {
		trx.Delete(l.pool, owner.Bytes())
		return
	}
	trx.PutN(l.pool, owner.Bytes(), balance)
}
