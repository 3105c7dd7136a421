// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"strconv"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/kittyd/chain"
)

func runDeposit(c *cli.Context) error {
	m, err := getMetadata(c)
	if nil != err {
		return err
	}

	if !chain.IsTesting(m.chain) {
		return fmt.Errorf("deposit is not allowed on chain: %s", m.chain)
	}

	owner, err := checkAccount(c, "owner")
	if nil != err {
		return err
	}

	amount := c.Uint64("amount")
	if 0 == amount {
		return fmt.Errorf("amount is required")
	}

	err = m.registry.Deposit(owner, amount)
	if nil != err {
		return err
	}

	return printJson(m.w, balanceReply{
		Owner:   owner,
		Balance: m.registry.Balance(owner),
	})
}

func runCreate(c *cli.Context) error {
	m, err := getMetadata(c)
	if nil != err {
		return err
	}

	owner, err := checkAccount(c, "owner")
	if nil != err {
		return err
	}

	record, err := m.registry.Create(owner)
	if nil != err {
		return err
	}
	return printJson(m.w, record)
}

func runPrice(c *cli.Context) error {
	m, err := getMetadata(c)
	if nil != err {
		return err
	}

	owner, err := checkAccount(c, "owner")
	if nil != err {
		return err
	}
	id, err := checkKittyId(c, "id")
	if nil != err {
		return err
	}

	s := c.String("price")
	withdraw := c.Bool("clear")

	var price *uint64
	switch {
	case withdraw && "" != s:
		return fmt.Errorf("only one of price or clear may be given")
	case withdraw:
		price = nil
	case "" == s:
		return fmt.Errorf("one of price or clear is required")
	default:
		p, err := strconv.ParseUint(s, 10, 64)
		if nil != err {
			return fmt.Errorf("invalid price: %q", s)
		}
		price = &p
	}

	record, err := m.registry.SetPrice(owner, id, price)
	if nil != err {
		return err
	}
	return printJson(m.w, record)
}

func runTransfer(c *cli.Context) error {
	m, err := getMetadata(c)
	if nil != err {
		return err
	}

	owner, err := checkAccount(c, "owner")
	if nil != err {
		return err
	}
	receiver, err := checkAccount(c, "receiver")
	if nil != err {
		return err
	}
	id, err := checkKittyId(c, "id")
	if nil != err {
		return err
	}

	record, err := m.registry.Transfer(owner, receiver, id)
	if nil != err {
		return err
	}
	return printJson(m.w, record)
}

func runBuy(c *cli.Context) error {
	m, err := getMetadata(c)
	if nil != err {
		return err
	}

	buyer, err := checkAccount(c, "buyer")
	if nil != err {
		return err
	}
	id, err := checkKittyId(c, "id")
	if nil != err {
		return err
	}

	record, err := m.registry.Buy(buyer, id, c.Uint64("max"))
	if nil != err {
		return err
	}
	return printJson(m.w, record)
}

func runBreed(c *cli.Context) error {
	m, err := getMetadata(c)
	if nil != err {
		return err
	}

	owner, err := checkAccount(c, "owner")
	if nil != err {
		return err
	}
	first, err := checkKittyId(c, "first")
	if nil != err {
		return err
	}
	second, err := checkKittyId(c, "second")
	if nil != err {
		return err
	}

	record, err := m.registry.Breed(owner, first, second)
	if nil != err {
		return err
	}
	return printJson(m.w, record)
}
