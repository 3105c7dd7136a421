// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package genesis - the initial state of a new ledger
//
// seed kitties are inserted with explicit dna and gender, bypassing
// random derivation; endowments give accounts a starting balance
package genesis

import (
	"encoding/hex"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/kittyd/account"
	"github.com/bitmark-inc/kittyd/dna"
	"github.com/bitmark-inc/kittyd/fault"
)

// Seed - one initial kitty
type Seed struct {
	Owner  account.Account `json:"owner"`
	DNA    dna.DNA         `json:"dna"`
	Gender dna.Gender      `json:"gender"`
}

// Endowment - one initial balance
type Endowment struct {
	Owner  account.Account `json:"owner"`
	Amount uint64          `json:"amount"`
}

// Genesis - the complete initial state
type Genesis struct {
	Seeds      []Seed      `json:"seeds"`
	Endowments []Endowment `json:"endowments"`
}

// Seeder - the registry operation that applies a genesis
//
// all seeds and endowments must be written in one transition so that
// a failure leaves the ledger empty
type Seeder interface {
	Seed(*Genesis) (bool, error)
}

// Apply - write the genesis state into an empty ledger
//
// returns false without error if the ledger already has history
func Apply(r Seeder, g *Genesis) (bool, error) {
	log := logger.New("genesis")

	applied, err := r.Seed(g)
	if nil != err {
		log.Errorf("genesis not applied: %s", err)
		return false, err
	}
	if !applied {
		log.Info("genesis empty or ledger has history: not applied")
		return false, nil
	}

	log.Infof("seeds: %d  endowments: %d", len(g.Seeds), len(g.Endowments))
	return true, nil
}

// ---

// KittyConfiguration - a seed as written in the configuration file
type KittyConfiguration struct {
	Owner  string `gluamapper:"owner" json:"owner" validate:"required"`
	DNA    string `gluamapper:"dna" json:"dna" validate:"required"`
	Gender string `gluamapper:"gender" json:"gender" validate:"omitempty,oneof=female male f m"`
}

// BalanceConfiguration - an endowment as written in the configuration file
type BalanceConfiguration struct {
	Owner  string `gluamapper:"owner" json:"owner" validate:"required"`
	Amount uint64 `gluamapper:"amount" json:"amount"`
}

// Configuration - the genesis section of the configuration file
type Configuration struct {
	Kitties  []KittyConfiguration   `gluamapper:"kitties" json:"kitties" validate:"dive"`
	Balances []BalanceConfiguration `gluamapper:"balances" json:"balances" validate:"dive"`
}

// IsEmpty - true if nothing is configured
func (c *Configuration) IsEmpty() bool {
	return 0 == len(c.Kitties) && 0 == len(c.Balances)
}

// Parse - convert the configuration text forms
//
// owners are base58 accounts; dna is either 32 hex digits or exactly
// 16 characters used as raw bytes; an empty gender follows the dna
func (c *Configuration) Parse() (*Genesis, error) {
	g := &Genesis{
		Seeds:      make([]Seed, 0, len(c.Kitties)),
		Endowments: make([]Endowment, 0, len(c.Balances)),
	}

	for _, k := range c.Kitties {
		owner, err := account.FromBase58(k.Owner)
		if nil != err {
			return nil, err
		}
		d, err := parseDNA(k.DNA)
		if nil != err {
			return nil, err
		}
		gender := d.Gender()
		if "" != k.Gender {
			gender, err = dna.ParseGender(k.Gender)
			if nil != err {
				return nil, err
			}
		}
		g.Seeds = append(g.Seeds, Seed{
			Owner:  owner,
			DNA:    d,
			Gender: gender,
		})
	}

	for _, b := range c.Balances {
		owner, err := account.FromBase58(b.Owner)
		if nil != err {
			return nil, err
		}
		g.Endowments = append(g.Endowments, Endowment{
			Owner:  owner,
			Amount: b.Amount,
		})
	}

	return g, nil
}

func parseDNA(s string) (dna.DNA, error) {
	switch len(s) {
	case 2 * dna.Length:
		b, err := hex.DecodeString(s)
		if nil != err {
			return dna.DNA{}, err
		}
		return dna.FromBytes(b)
	case dna.Length:
		return dna.FromBytes([]byte(s))
	default:
		return dna.DNA{}, fault.ErrInvalidDNALength
	}
}
