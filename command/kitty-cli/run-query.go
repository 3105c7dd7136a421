// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"strconv"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/kittyd/account"
	"github.com/bitmark-inc/kittyd/ownership"
)

type countReply struct {
	Height *uint64 `json:"height,omitempty"`
	Count  uint64  `json:"count"`
}

func runCount(c *cli.Context) error {
	m, err := getMetadata(c)
	if nil != err {
		return err
	}

	reply := countReply{}
	if at := c.String("at"); "" != at {
		height, err := strconv.ParseUint(at, 10, 64)
		if nil != err {
			return fmt.Errorf("invalid height: %q", at)
		}
		reply.Height = &height
		reply.Count, err = m.registry.CountAt(height)
		if nil != err {
			return fmt.Errorf("unable to get kitties count: %s", err)
		}
	} else {
		reply.Count, err = m.registry.Count()
		if nil != err {
			return fmt.Errorf("unable to get kitties count: %s", err)
		}
	}

	return printJson(m.w, reply)
}

type heightReply struct {
	Height uint64 `json:"height"`
	Digest string `json:"digest"`
}

func runHeight(c *cli.Context) error {
	m, err := getMetadata(c)
	if nil != err {
		return err
	}

	height, err := m.registry.Height()
	if nil != err {
		return err
	}
	digest, err := m.registry.DigestAt(height)
	if nil != err {
		return err
	}

	return printJson(m.w, heightReply{
		Height: height,
		Digest: fmt.Sprintf("%x", digest),
	})
}

func runShow(c *cli.Context) error {
	m, err := getMetadata(c)
	if nil != err {
		return err
	}

	id, err := checkKittyId(c, "id")
	if nil != err {
		return err
	}

	record, err := m.registry.Get(id)
	if nil != err {
		return err
	}
	return printJson(m.w, record)
}

type ownedReply struct {
	Owner   account.Account  `json:"owner"`
	Total   uint64           `json:"total"`
	Kitties []ownership.Item `json:"kitties"`
}

func runOwned(c *cli.Context) error {
	m, err := getMetadata(c)
	if nil != err {
		return err
	}

	owner, err := checkAccount(c, "owner")
	if nil != err {
		return err
	}

	start := c.Uint64("start")

	count := c.Int("count")
	if count <= 0 {
		return fmt.Errorf("invalid count: %d", count)
	}

	if m.verbose {
		fmt.Fprintf(m.e, "owner: %s\n", owner)
		fmt.Fprintf(m.e, "start: %d\n", start)
		fmt.Fprintf(m.e, "count: %d\n", count)
	}

	items, err := m.registry.Owned(owner, start, count)
	if nil != err {
		return err
	}

	return printJson(m.w, ownedReply{
		Owner:   owner,
		Total:   m.registry.OwnedCount(owner),
		Kitties: items,
	})
}

type balanceReply struct {
	Owner   account.Account `json:"owner"`
	Balance uint64          `json:"balance"`
}

func runBalance(c *cli.Context) error {
	m, err := getMetadata(c)
	if nil != err {
		return err
	}

	owner, err := checkAccount(c, "owner")
	if nil != err {
		return err
	}

	return printJson(m.w, balanceReply{
		Owner:   owner,
		Balance: m.registry.Balance(owner),
	})
}
